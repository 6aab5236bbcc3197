// Package platform detects the host operating system and machine
// architecture and maps them onto the naming scheme croc release artifacts
// use.
//
// Release artifacts are named after uname output, not Go's runtime
// identifiers, so detection shells out to uname: a BusyBox userland reports
// itself through uname in ways runtime.GOOS cannot see. Mapping is a pure
// string function with no failure mode; values outside the known tables
// resolve to an explicit sentinel and the resulting download fails later,
// which is the accepted failure path.
package platform

import "context"

// Canonical release OS names produced by MapOS.
const (
	OSMacOS   = "macOS"
	OSLinux   = "Linux"
	OSWindows = "Windows"
)

// Canonical release architecture names produced by MapArch.
const (
	Arch64Bit   = "64bit"
	ArchARM64   = "ARM64"
	ArchARM     = "ARM"
	Arch32Bit   = "32bit"
	ArchUnknown = "unknown"
)

// Archive extensions for release artifacts. The set is closed; the
// extractor rejects anything else as a misconfiguration.
const (
	ExtTarGz = "tar.gz"
	ExtZip   = "zip"
)

// Info contains the detected platform, immutable once constructed.
type Info struct {
	OSRaw   string // uname output, e.g. "Linux", "Darwin", "CYGWIN_NT-10.0"
	ArchRaw string // uname -m output, e.g. "x86_64", "aarch64"
	OS      string // mapped release OS name
	Arch    string // mapped release architecture name
	Ext     string // archive extension for this platform
}

// IsWindows reports whether the detected platform mapped to Windows
// (a Cygwin environment). Windows is explicitly unsupported; the run
// aborts before any download.
func (i *Info) IsWindows() bool {
	return i.OS == OSWindows
}

// IsLinux reports whether the detected platform mapped to Linux.
func (i *Info) IsLinux() bool {
	return i.OS == OSLinux
}

// IsMacOS reports whether the detected platform mapped to macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == OSMacOS
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
