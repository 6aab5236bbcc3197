// Package prefix manages the install directory and the final copy of the
// binary into it, elevating privileges through sudo when the invoking
// identity is not root.
package prefix

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/getcroc/getcroc/internal/tool"
)

var (
	// ErrNoTool indicates a required filesystem tool (mkdir, install) is
	// not on PATH.
	ErrNoTool = errors.New("required tool not found")

	// ErrNoElevation indicates elevation is required but sudo is not
	// available. Distinct from ErrNoTool so the operator knows whether to
	// install sudo or the missing tool.
	ErrNoElevation = errors.New("sudo not found and not running as root")
)

// completionDir is created best-effort after a successful install; shells
// pick up completion scripts dropped there by the binary itself.
const completionDir = "/etc/bash_completion.d"

// geteuid is a test seam for os.Geteuid.
var geteuid = os.Geteuid

// Manager ensures the install prefix exists.
type Manager struct {
	runner tool.Runner
}

// NewManager creates a prefix Manager that shells out through runner.
func NewManager(runner tool.Runner) *Manager {
	return &Manager{runner: runner}
}

// Exists reports whether dir is already present as a directory.
func (m *Manager) Exists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// Ensure creates dir with parents as needed, elevating when not running as
// root. Callers check Exists first; an existing prefix skips creation
// entirely.
func (m *Manager) Ensure(ctx context.Context, dir string) error {
	if !tool.Probe("mkdir") {
		return fmt.Errorf("%w: mkdir", ErrNoTool)
	}

	if geteuid() == 0 {
		if err := m.runner.Run(ctx, "mkdir", "-p", dir); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
		return nil
	}

	if !tool.Probe("sudo") {
		return fmt.Errorf("%w (needed to create %s)", ErrNoElevation, dir)
	}
	if err := m.runner.Run(ctx, "sudo", "mkdir", "-p", dir); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}

// EnsureCompletionDir attempts to create the shell-completion directory.
// The attempt is best-effort: callers ignore the returned error, which
// exists only for logging.
func (m *Manager) EnsureCompletionDir(ctx context.Context) error {
	if !tool.Probe("mkdir") {
		return fmt.Errorf("%w: mkdir", ErrNoTool)
	}

	if geteuid() == 0 {
		return m.runner.Run(ctx, "mkdir", "-p", completionDir)
	}
	if !tool.Probe("sudo") {
		return ErrNoElevation
	}
	return m.runner.Run(ctx, "sudo", "mkdir", "-p", completionDir)
}
