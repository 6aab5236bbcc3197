package prefix

import (
	"context"
	"fmt"

	"github.com/getcroc/getcroc/internal/platform"
	"github.com/getcroc/getcroc/internal/tool"
)

// backupSuffix is appended to any previously installed binary before the
// new one is copied in.
const backupSuffix = ".bak"

// Installer copies the extracted binary into the prefix. Three variants
// exist because the install tool's flag surface differs: BSD install spells
// the backup-suffix flag -B, GNU install spells it -S and takes a target
// directory, and the Cygwin variant is a best-effort plain copy.
type Installer struct {
	runner tool.Runner
	termux bool
}

// NewInstaller creates an Installer. termux marks a Termux sandbox, where
// installing into the sandbox prefix without elevation is the sanctioned
// exception to the sudo requirement.
func NewInstaller(runner tool.Runner, termux bool) *Installer {
	return &Installer{runner: runner, termux: termux}
}

// Install copies binPath into prefixDir using the platform-appropriate
// install variant, backing up any prior version. A failed copy is fatal to
// the run; the extracted binary in the scratch directory then remains the
// only copy.
func (i *Installer) Install(ctx context.Context, info *platform.Info, binPath, prefixDir string) error {
	if !tool.Probe("install") {
		return fmt.Errorf("%w: install", ErrNoTool)
	}

	switch {
	case info.IsMacOS():
		return i.installBSD(ctx, binPath, prefixDir)
	case info.IsWindows():
		return i.installWindows(ctx, binPath, prefixDir)
	default:
		return i.installGNU(ctx, binPath, prefixDir)
	}
}

// installBSD uses BSD install's single-character backup-suffix flag.
func (i *Installer) installBSD(ctx context.Context, binPath, prefixDir string) error {
	elevate := geteuid() != 0
	if elevate && !tool.Probe("sudo") {
		return fmt.Errorf("%w (needed to install into %s)", ErrNoElevation, prefixDir)
	}
	return i.run(ctx, elevate, "install", "-b", "-B", backupSuffix, binPath, prefixDir)
}

// installGNU uses GNU install's long-form suffix flag and target-directory
// form. In a Termux sandbox with no sudo, the copy runs unelevated: the
// prefix lives inside the app sandbox and is writable by the invoking user.
func (i *Installer) installGNU(ctx context.Context, binPath, prefixDir string) error {
	elevate := geteuid() != 0
	if elevate && !tool.Probe("sudo") {
		if !i.termux {
			return fmt.Errorf("%w (needed to install into %s)", ErrNoElevation, prefixDir)
		}
		elevate = false
	}
	return i.run(ctx, elevate, "install", "-b", "-S", backupSuffix, "-t", prefixDir, binPath)
}

// installWindows is the best-effort Cygwin variant: no backup flag, no
// elevation helper. Unverified upstream.
func (i *Installer) installWindows(ctx context.Context, binPath, prefixDir string) error {
	return i.run(ctx, false, "install", binPath, prefixDir)
}

// run executes name, optionally through sudo.
func (i *Installer) run(ctx context.Context, elevate bool, name string, args ...string) error {
	if elevate {
		if err := i.runner.Run(ctx, "sudo", append([]string{name}, args...)...); err != nil {
			return fmt.Errorf("install binary: %w", err)
		}
		return nil
	}
	if err := i.runner.Run(ctx, name, args...); err != nil {
		return fmt.Errorf("install binary: %w", err)
	}
	return nil
}
