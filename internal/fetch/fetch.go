// Package fetch downloads release files using whichever download tool the
// host provides. The curl→wget fallback is resolved once when the Fetcher
// is constructed; transfer failures pass the underlying tool's exit status
// through unmodified.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/getcroc/getcroc/internal/tool"
)

// ErrNoTool indicates neither curl nor wget is on PATH. This is a distinct
// condition from a transfer failure.
var ErrNoTool = errors.New("no download tool found (need curl or wget)")

// Tool identifies the resolved download tool.
type Tool string

const (
	ToolCurl Tool = "curl"
	ToolWget Tool = "wget"
)

// Fetcher downloads URLs to local files through a resolved download tool.
type Fetcher struct {
	tool   Tool
	runner tool.Runner
}

// NewFetcher resolves the download strategy: curl preferred, wget fallback.
// It returns ErrNoTool when neither exists.
func NewFetcher(runner tool.Runner) (*Fetcher, error) {
	name, ok := tool.Resolve(string(ToolCurl), string(ToolWget))
	if !ok {
		return nil, ErrNoTool
	}
	return &Fetcher{tool: Tool(name), runner: runner}, nil
}

// Tool returns the resolved download tool.
func (f *Fetcher) Tool() Tool {
	return f.tool
}

// Fetch downloads url into destDir under destName. The tool is invoked in
// its quiet form; curl fails on HTTP error statuses and follows redirects,
// wget is run with equivalent behavior.
func (f *Fetcher) Fetch(ctx context.Context, url, destDir, destName string) error {
	dest := filepath.Join(destDir, destName)

	var err error
	switch f.tool {
	case ToolCurl:
		err = f.runner.Run(ctx, "curl", "-fsSL", "-o", dest, url)
	case ToolWget:
		err = f.runner.Run(ctx, "wget", "-q", "-O", dest, url)
	default:
		return ErrNoTool
	}
	if err != nil {
		return fmt.Errorf("download %s: %w", url, err)
	}
	return nil
}
