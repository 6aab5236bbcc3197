package platform

import "strings"

// MapOS maps a raw uname OS string to the release artifact's OS name.
// Darwin becomes macOS, any BusyBox userland counts as Linux, and Cygwin
// environments map to Windows. Everything else passes through unchanged so
// that an unrecognized OS surfaces as a missing release artifact rather
// than a detection failure.
func MapOS(raw string) string {
	switch {
	case raw == "Darwin":
		return OSMacOS
	case strings.Contains(raw, "BusyBox"):
		return OSLinux
	case strings.HasPrefix(raw, "CYGWIN"):
		return OSWindows
	}
	return raw
}

// MapArch maps a raw uname -m machine string to the release artifact's
// architecture name. Values outside the known table map to ArchUnknown,
// never to an error: the download for an unknown architecture fails with a
// missing artifact, which is the accepted failure path.
func MapArch(raw string) string {
	switch raw {
	case "x86_64", "amd64":
		return Arch64Bit
	case "aarch64", "arm64":
		return ArchARM64
	case "armv7l", "armv8l", "armv9l":
		return ArchARM
	case "i686":
		return Arch32Bit
	}
	return ArchUnknown
}

// ExtFor returns the archive extension for a mapped OS name. Only the
// Windows releases ship as zip; everything else is tar.gz.
func ExtFor(os string) string {
	if os == OSWindows {
		return ExtZip
	}
	return ExtTarGz
}
