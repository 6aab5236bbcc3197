// Package tool probes for and runs the external executables the installer
// orchestrates (uname, curl, wget, tar, unzip, the sha256 family, mkdir,
// sudo, install).
//
// Fallback chains such as curl→wget are resolved once, up front, via Resolve;
// the rest of the run consumes the resolved tool name instead of re-probing
// at each call site.
package tool

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// lookPath is a test seam for exec.LookPath.
var lookPath = exec.LookPath

// Probe reports whether an executable with the given name is on PATH.
func Probe(name string) bool {
	_, err := lookPath(name)
	return err == nil
}

// Resolve returns the first name from candidates that is present on PATH.
// The bool result is false when none of the candidates exist.
func Resolve(candidates ...string) (string, bool) {
	for _, name := range candidates {
		if Probe(name) {
			return name, true
		}
	}
	return "", false
}

// Runner executes external tools. The interface exists so tests can observe
// invocations without spawning real processes.
type Runner interface {
	// Run executes the tool and waits for it to exit. Stdin and stderr are
	// inherited from the process: sudo must be able to prompt for
	// credentials on the controlling terminal.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the tool and returns its raw standard output.
	// Stderr is inherited.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs tools via os/exec.
type ExecRunner struct {
	// Stdout receives the tool's standard output during Run. Defaults to
	// io.Discard; the installer speaks through its reporter, not through
	// the tools it drives.
	Stdout io.Writer
	// Stderr receives the tool's standard error. Defaults to os.Stderr.
	Stderr io.Writer
}

// NewRunner returns an ExecRunner with default stream wiring.
func NewRunner() *ExecRunner {
	return &ExecRunner{
		Stdout: io.Discard,
		Stderr: os.Stderr,
	}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = r.stdout()
	cmd.Stderr = r.stderr()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// Output implements Runner.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = r.stderr()
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

func (r *ExecRunner) stdout() io.Writer {
	if r.Stdout != nil {
		return r.Stdout
	}
	return io.Discard
}

func (r *ExecRunner) stderr() io.Writer {
	if r.Stderr != nil {
		return r.Stderr
	}
	return os.Stderr
}
