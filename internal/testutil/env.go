// Package testutil provides utilities for testing the installer in
// isolation from the host's real tools and environment.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// ScratchPath creates a temp directory and points PATH at it exclusively,
// so tests control exactly which external tools exist. It returns the
// directory so callers can stub tools into it. Cleanup is handled by
// t.TempDir and t.Setenv.
func ScratchPath(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("PATH", dir)
	return dir
}

// StubTool writes an executable shell script named name into dir. The
// script body runs under /bin/sh with the original arguments.
func StubTool(t *testing.T, dir, name, body string) {
	t.Helper()

	script := fmt.Sprintf("#!/bin/sh\n%s\n", body)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write stub tool %s: %v", name, err)
	}
}

// StubToolExit stubs a tool that ignores its arguments and exits with code.
func StubToolExit(t *testing.T, dir, name string, code int) {
	t.Helper()
	StubTool(t, dir, name, fmt.Sprintf("exit %d", code))
}
