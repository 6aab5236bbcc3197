// Package verify asserts that a downloaded release artifact matches the
// digest recorded for it in the release's checksum manifest.
//
// The digest-tool fallback chain (sha256sum → shasum → sha256) is resolved
// once at construction. The check itself runs from inside the scratch
// directory because manifest entries reference bare filenames, not paths;
// the previous working directory is always restored.
package verify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/getcroc/getcroc/internal/tool"
)

var (
	// ErrNoTool indicates no SHA-256 tool is on PATH. Distinct from a
	// verification mismatch: with no tool the artifact's validity is
	// simply unknown and the run must abort.
	ErrNoTool = errors.New("no SHA-256 tool found (need sha256sum, shasum, or sha256)")

	// ErrMismatch indicates the artifact's digest differs from the
	// manifest entry.
	ErrMismatch = errors.New("checksum mismatch")

	// ErrWorkdir indicates the working-directory change around the check
	// failed.
	ErrWorkdir = errors.New("could not change working directory")
)

// Tool identifies the resolved digest tool.
type Tool string

const (
	// ToolSHA256Sum is GNU coreutils sha256sum, compare mode built in.
	ToolSHA256Sum Tool = "sha256sum"
	// ToolShasum is Perl shasum, needs an explicit -a 256 mode.
	ToolShasum Tool = "shasum"
	// ToolSHA256 is BSD sha256. Its own compare mode is unreliable on at
	// least one platform, so the digest is computed and compared here.
	ToolSHA256 Tool = "sha256"
)

// MismatchError carries the expected and actual digests of a failed
// verification. It wraps ErrMismatch for errors.Is classification.
type MismatchError struct {
	Filename string
	Expected string
	Actual   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch for %s\nexpected: %s\nactual:   %s",
		e.Filename, e.Expected, e.Actual)
}

func (e *MismatchError) Unwrap() error { return ErrMismatch }

// Verifier checks downloaded files against a checksum manifest using a
// resolved digest tool.
type Verifier struct {
	tool   Tool
	runner tool.Runner
}

// NewVerifier resolves the digest strategy in preference order. It returns
// ErrNoTool when the host has none of the three tools.
func NewVerifier(runner tool.Runner) (*Verifier, error) {
	name, ok := tool.Resolve(string(ToolSHA256Sum), string(ToolShasum), string(ToolSHA256))
	if !ok {
		return nil, ErrNoTool
	}
	return &Verifier{tool: Tool(name), runner: runner}, nil
}

// Tool returns the resolved digest tool.
func (v *Verifier) Tool() Tool {
	return v.tool
}

// Verify asserts that the file named filename inside dir matches the digest
// recorded for it in the manifest named manifestName, also inside dir. On a
// mismatch the returned error carries both digests.
func (v *Verifier) Verify(ctx context.Context, dir, filename, manifestName string) error {
	return inDir(dir, func() error {
		return v.verify(ctx, filename, manifestName)
	})
}

// verify runs with the working directory already inside the scratch dir.
func (v *Verifier) verify(ctx context.Context, filename, manifestName string) error {
	f, err := os.Open(manifestName)
	if err != nil {
		return fmt.Errorf("open manifest: %w", err)
	}
	entries, err := parseManifest(f)
	f.Close()
	if err != nil {
		return err
	}

	expected, err := findDigest(entries, filename)
	if err != nil {
		return err
	}

	switch v.tool {
	case ToolSHA256Sum, ToolShasum:
		return v.compareWithTool(ctx, filename, expected)
	case ToolSHA256:
		return v.compareManually(ctx, filename, expected)
	}
	return ErrNoTool
}

// compareWithTool runs the digest tool's own compare mode against a
// manifest filtered down to the one relevant entry. On failure the actual
// digest is recomputed so the mismatch can surface both values.
func (v *Verifier) compareWithTool(ctx context.Context, filename, expected string) error {
	filtered, err := writeFiltered(filename, expected)
	if err != nil {
		return err
	}

	var runErr error
	switch v.tool {
	case ToolSHA256Sum:
		runErr = v.runner.Run(ctx, "sha256sum", "-c", filtered)
	case ToolShasum:
		runErr = v.runner.Run(ctx, "shasum", "-a", "256", "-c", filtered)
	}
	if runErr == nil {
		return nil
	}

	actual, digestErr := v.digest(ctx, filename)
	if digestErr != nil {
		return fmt.Errorf("verify %s: %w", filename, runErr)
	}
	if strings.EqualFold(actual, expected) {
		// The digests agree, so the compare tool failed for some other
		// reason. Surface its error instead of a bogus mismatch.
		return fmt.Errorf("verify %s: %w", filename, runErr)
	}
	return &MismatchError{Filename: filename, Expected: expected, Actual: actual}
}

// compareManually computes the digest and compares it here.
func (v *Verifier) compareManually(ctx context.Context, filename, expected string) error {
	actual, err := v.digest(ctx, filename)
	if err != nil {
		return fmt.Errorf("digest %s: %w", filename, err)
	}
	if !strings.EqualFold(actual, expected) {
		return &MismatchError{Filename: filename, Expected: expected, Actual: actual}
	}
	return nil
}

// digest computes the file's SHA-256 via the resolved tool and returns the
// lowercase hex digest.
func (v *Verifier) digest(ctx context.Context, filename string) (string, error) {
	var out []byte
	var err error
	switch v.tool {
	case ToolSHA256Sum:
		out, err = v.runner.Output(ctx, "sha256sum", filename)
	case ToolShasum:
		out, err = v.runner.Output(ctx, "shasum", "-a", "256", filename)
	case ToolSHA256:
		out, err = v.runner.Output(ctx, "sha256", "-q", filename)
	}
	if err != nil {
		return "", err
	}

	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return "", fmt.Errorf("%s produced no digest", v.tool)
	}
	return strings.ToLower(fields[0]), nil
}
