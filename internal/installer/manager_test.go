package installer_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/getcroc/getcroc/internal/installer"
	"github.com/getcroc/getcroc/internal/platform"
	"github.com/getcroc/getcroc/internal/release"
	"github.com/getcroc/getcroc/internal/report"
	"github.com/getcroc/getcroc/internal/testutil"
	"github.com/getcroc/getcroc/internal/verify"
)

// fakeDetector returns canned platform info without consulting uname.
type fakeDetector struct {
	info *platform.Info
	err  error
}

func (d *fakeDetector) Detect(context.Context) (*platform.Info, error) {
	return d.info, d.err
}

func linuxInfo() *platform.Info {
	return &platform.Info{
		OSRaw: "Linux", ArchRaw: "x86_64",
		OS: "Linux", Arch: "64bit", Ext: "tar.gz",
	}
}

// stubPipelineTools stubs every external tool the happy path needs. The
// curl stub records its invocations so tests can assert whether any
// download was attempted, and serves a well-formed manifest for the
// checksum URL so verification has an entry to find.
func stubPipelineTools(t *testing.T, pathDir, curlLog string) {
	t.Helper()

	manifestLine := strings.Repeat("a", 64) + "  croc_v10.2.2_Linux-64bit.tar.gz"
	testutil.StubTool(t, pathDir, "curl",
		`printf '%s\n' "$*" >> "`+curlLog+`"
case "$4" in
*checksums.txt) printf '`+manifestLine+`\n' > "$3" ;;
*) printf 'content\n' > "$3" ;;
esac`)
	testutil.StubToolExit(t, pathDir, "sha256sum", 0)
	// tar -xzf <archive> -C <dest>: drop the croc binary into <dest>.
	testutil.StubTool(t, pathDir, "tar", `: > "$4/croc"`)
	testutil.StubToolExit(t, pathDir, "install", 0)
	testutil.StubTool(t, pathDir, "sudo", `exec "$@"`)
	testutil.StubToolExit(t, pathDir, "mkdir", 0)
}

func newManager(t *testing.T, cfg installer.Config, detector platform.Detector) (*installer.Manager, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	mgr := installer.NewManager(cfg, installer.Options{
		Detector: detector,
		Reporter: report.New(&out),
	})
	return mgr, &out
}

func TestRunHappyPathWithExistingPrefix(t *testing.T) {
	pathDir := testutil.ScratchPath(t)
	curlLog := filepath.Join(t.TempDir(), "curl.log")
	stubPipelineTools(t, pathDir, curlLog)

	prefixDir := t.TempDir() // pre-existing: Prefix Manager must no-op
	cfg := installer.Config{
		Coordinates: release.Default,
		Prefix:      prefixDir,
	}
	mgr, out := newManager(t, cfg, &fakeDetector{info: linuxInfo()})

	if err := mgr.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v\noutput:\n%s", err, out.String())
	}

	output := out.String()
	for _, want := range []string{
		"detected platform Linux-64bit",
		"downloading croc_v10.2.2_Linux-64bit.tar.gz",
		"checksums verified",
		"already exists",
		"installed croc v10.2.2 to " + prefixDir,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}

	// Both the archive and the manifest were fetched, in that order.
	calls, err := os.ReadFile(curlLog)
	if err != nil {
		t.Fatalf("curl never invoked: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(calls)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 downloads, got %d:\n%s", len(lines), calls)
	}
	if !strings.Contains(lines[0], "croc_v10.2.2_Linux-64bit.tar.gz") {
		t.Errorf("first download should be the archive: %q", lines[0])
	}
	if !strings.Contains(lines[1], "croc_v10.2.2_checksums.txt") {
		t.Errorf("second download should be the manifest: %q", lines[1])
	}
}

func TestRunUnsupportedWindowsAbortsBeforeDownload(t *testing.T) {
	pathDir := testutil.ScratchPath(t)
	curlLog := filepath.Join(t.TempDir(), "curl.log")
	stubPipelineTools(t, pathDir, curlLog)

	info := &platform.Info{
		OSRaw: "CYGWIN_NT-10.0", ArchRaw: "x86_64",
		OS: "Windows", Arch: "64bit", Ext: "zip",
	}
	cfg := installer.Config{Coordinates: release.Default, Prefix: t.TempDir()}
	mgr, out := newManager(t, cfg, &fakeDetector{info: info})

	err := mgr.Run(context.Background())
	if !errors.Is(err, installer.ErrUnsupportedPlatform) {
		t.Fatalf("expected ErrUnsupportedPlatform, got %v", err)
	}
	if !strings.Contains(out.String(), "unsupported") {
		t.Errorf("output should mention unsupported platform:\n%s", out.String())
	}
	if _, err := os.Stat(curlLog); !errors.Is(err, os.ErrNotExist) {
		t.Error("no download may happen for an unsupported platform")
	}
}

func TestRunDigestToolMissingAbortsBeforeDownload(t *testing.T) {
	pathDir := testutil.ScratchPath(t)
	curlLog := filepath.Join(t.TempDir(), "curl.log")
	// Download tool present, no digest tool at all.
	testutil.StubTool(t, pathDir, "curl",
		`printf '%s\n' "$*" >> "`+curlLog+`"`)

	cfg := installer.Config{Coordinates: release.Default, Prefix: t.TempDir()}
	mgr, out := newManager(t, cfg, &fakeDetector{info: linuxInfo()})

	err := mgr.Run(context.Background())
	if !errors.Is(err, verify.ErrNoTool) {
		t.Fatalf("expected verify.ErrNoTool, got %v", err)
	}
	if !strings.Contains(out.String(), "sha256") {
		t.Errorf("output should name the missing tool family:\n%s", out.String())
	}
	if _, err := os.Stat(curlLog); !errors.Is(err, os.ErrNotExist) {
		t.Error("a host that cannot verify must not download")
	}
}

func TestRunDetectFailure(t *testing.T) {
	testutil.ScratchPath(t)

	cfg := installer.Config{Coordinates: release.Default, Prefix: t.TempDir()}
	detectErr := platform.ErrUnameMissing
	mgr, out := newManager(t, cfg, &fakeDetector{err: detectErr})

	if err := mgr.Run(context.Background()); !errors.Is(err, detectErr) {
		t.Fatalf("expected detect error to propagate, got %v", err)
	}
	if !strings.Contains(out.String(), "could not detect platform") {
		t.Errorf("output should explain the stage:\n%s", out.String())
	}
}

func TestRunTransferFailureKeepsScratch(t *testing.T) {
	pathDir := testutil.ScratchPath(t)
	testutil.StubToolExit(t, pathDir, "curl", 22)
	testutil.StubToolExit(t, pathDir, "sha256sum", 0)

	cfg := installer.Config{Coordinates: release.Default, Prefix: t.TempDir()}
	mgr, out := newManager(t, cfg, &fakeDetector{info: linuxInfo()})

	if err := mgr.Run(context.Background()); err == nil {
		t.Fatal("expected transfer failure")
	}

	output := out.String()
	if !strings.Contains(output, "could not download") {
		t.Errorf("output should explain the stage:\n%s", output)
	}
	if !strings.Contains(output, "keeping scratch directory") {
		t.Errorf("failure must announce the retained scratch directory:\n%s", output)
	}
}

func TestRunMismatchSurfacesDigests(t *testing.T) {
	pathDir := testutil.ScratchPath(t)
	curlLog := filepath.Join(t.TempDir(), "curl.log")

	goodDigest := strings.Repeat("a", 64)
	badDigest := strings.Repeat("b", 64)

	// The manifest download writes an entry that cannot match what the
	// digest tool reports for the archive.
	testutil.StubTool(t, pathDir, "curl",
		`printf '%s\n' "$*" >> "`+curlLog+`"
case "$4" in
*checksums.txt) printf '`+goodDigest+`  croc_v10.2.2_Linux-64bit.tar.gz\n' > "$3" ;;
*) printf 'content\n' > "$3" ;;
esac`)
	testutil.StubTool(t, pathDir, "sha256sum",
		`if [ "$1" = "-c" ]; then exit 1; fi
printf '`+badDigest+`  %s\n' "$1"`)

	cfg := installer.Config{Coordinates: release.Default, Prefix: t.TempDir()}
	mgr, out := newManager(t, cfg, &fakeDetector{info: linuxInfo()})

	err := mgr.Run(context.Background())
	if !errors.Is(err, verify.ErrMismatch) {
		t.Fatalf("expected ErrMismatch, got %v", err)
	}

	output := out.String()
	if !strings.Contains(output, goodDigest) || !strings.Contains(output, badDigest) {
		t.Errorf("mismatch report must surface expected and actual digests:\n%s", output)
	}
}
