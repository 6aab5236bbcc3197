// Package archive unpacks verified release archives with the host's tar or
// unzip. The archive format is a declared, closed enum supplied by the
// caller from platform mapping. It is never inferred from the filename.
package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/getcroc/getcroc/internal/platform"
	"github.com/getcroc/getcroc/internal/tool"
)

var (
	// ErrNoTool indicates the tool required for the declared format is
	// not on PATH. Its absence is fatal, not a skip.
	ErrNoTool = errors.New("extraction tool not found")

	// ErrUnknownFormat indicates the declared extension is outside the
	// closed {tar.gz, zip} set. This is a misconfiguration, distinct from
	// a missing tool.
	ErrUnknownFormat = errors.New("cannot determine extraction tool for format")
)

// Extractor unpacks archives via external tools.
type Extractor struct {
	runner tool.Runner
}

// NewExtractor creates an Extractor that shells out through runner.
func NewExtractor(runner tool.Runner) *Extractor {
	return &Extractor{runner: runner}
}

// Extract unpacks the archive at archivePath into destDir according to the
// declared extension. Tool exit errors pass through wrapped so corrupt or
// partial archives surface the tool's own status.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir, ext string) error {
	switch ext {
	case platform.ExtTarGz:
		if !tool.Probe("tar") {
			return fmt.Errorf("%w: tar", ErrNoTool)
		}
		if err := e.runner.Run(ctx, "tar", "-xzf", archivePath, "-C", destDir); err != nil {
			return fmt.Errorf("extract %s: %w", archivePath, err)
		}
		return nil

	case platform.ExtZip:
		if !tool.Probe("unzip") {
			return fmt.Errorf("%w: unzip", ErrNoTool)
		}
		if err := e.runner.Run(ctx, "unzip", "-o", "-q", archivePath, "-d", destDir); err != nil {
			return fmt.Errorf("extract %s: %w", archivePath, err)
		}
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
}
