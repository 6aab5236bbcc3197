// Package release describes the pinned croc release and constructs artifact
// names and download URLs from the detected platform.
package release

import (
	"fmt"

	"github.com/getcroc/getcroc/internal/platform"
)

// Coordinates pins the release to install. The version is fixed at build
// time, never discovered at runtime.
type Coordinates struct {
	Binary  string // binary name inside the archive, e.g. "croc"
	Version string // bare version, no "v" prefix, e.g. "10.2.2"
	BaseURL string // release download root, no trailing slash
}

// Default is the croc release this installer ships for.
var Default = Coordinates{
	Binary:  "croc",
	Version: "10.2.2",
	BaseURL: "https://github.com/schollz/croc/releases/download",
}

// ArchiveName returns the artifact filename for the given platform.
// Pattern: {binary}_v{version}_{OS}-{Arch}.{ext}
func (c Coordinates) ArchiveName(info *platform.Info) string {
	return fmt.Sprintf("%s_v%s_%s-%s.%s", c.Binary, c.Version, info.OS, info.Arch, info.Ext)
}

// ChecksumName returns the checksum manifest filename for this release.
// Pattern: {binary}_v{version}_checksums.txt
func (c Coordinates) ChecksumName() string {
	return fmt.Sprintf("%s_v%s_checksums.txt", c.Binary, c.Version)
}

// ArchiveURL returns the fully-qualified download URL for the platform's
// artifact.
func (c Coordinates) ArchiveURL(info *platform.Info) string {
	return c.releaseURL(c.ArchiveName(info))
}

// ChecksumURL returns the fully-qualified download URL for the checksum
// manifest.
func (c Coordinates) ChecksumURL() string {
	return c.releaseURL(c.ChecksumName())
}

// releaseURL joins a filename onto the versioned release directory.
func (c Coordinates) releaseURL(filename string) string {
	return fmt.Sprintf("%s/v%s/%s", c.BaseURL, c.Version, filename)
}
