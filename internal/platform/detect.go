package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/shirou/gopsutil/v4/host"

	"github.com/getcroc/getcroc/internal/tool"
)

var (
	// ErrUnameMissing indicates the uname executable is not on PATH.
	ErrUnameMissing = errors.New("uname not found on PATH")

	// ErrUndetermined indicates uname ran but produced no usable output.
	// This is a distinct condition from the tool being absent.
	ErrUndetermined = errors.New("could not determine platform")
)

// UnameDetector implements Detector by querying the system's uname tool.
type UnameDetector struct {
	runner tool.Runner
	logger *log.Logger
}

// NewDetector creates a platform detector that shells out through runner.
// logger may be nil; it is only used for verbose host diagnostics.
func NewDetector(runner tool.Runner, logger *log.Logger) *UnameDetector {
	return &UnameDetector{
		runner: runner,
		logger: logger,
	}
}

// Detect queries uname for the OS and machine names and maps both onto the
// release naming scheme. There is no retry: any failure aborts the run.
func (d *UnameDetector) Detect(ctx context.Context) (*Info, error) {
	if !tool.Probe("uname") {
		return nil, ErrUnameMissing
	}

	osRaw, err := d.query(ctx, "uname")
	if err != nil {
		return nil, fmt.Errorf("query OS name: %w", err)
	}
	if osRaw == "" {
		return nil, fmt.Errorf("%w: uname returned no OS name", ErrUndetermined)
	}

	archRaw, err := d.query(ctx, "uname", "-m")
	if err != nil {
		return nil, fmt.Errorf("query machine type: %w", err)
	}
	if archRaw == "" {
		return nil, fmt.Errorf("%w: uname -m returned no machine type", ErrUndetermined)
	}

	info := &Info{
		OSRaw:   osRaw,
		ArchRaw: archRaw,
		OS:      MapOS(osRaw),
		Arch:    MapArch(archRaw),
	}
	info.Ext = ExtFor(info.OS)

	d.logHostDetails(ctx, info)

	return info, nil
}

// query runs uname and returns its trimmed output.
func (d *UnameDetector) query(ctx context.Context, name string, args ...string) (string, error) {
	out, err := d.runner.Output(ctx, name, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// logHostDetails emits verbose host diagnostics via gopsutil. The values
// are informational only and never feed into mapping decisions.
func (d *UnameDetector) logHostDetails(ctx context.Context, info *Info) {
	if d.logger == nil {
		return
	}

	d.logger.Debug("detected platform",
		"os_raw", info.OSRaw, "arch_raw", info.ArchRaw,
		"os", info.OS, "arch", info.Arch, "ext", info.Ext)

	hostPlatform, family, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		d.logger.Debug("host details unavailable", "err", err)
		return
	}
	d.logger.Debug("host details",
		"platform", hostPlatform, "family", family, "version", version)
}
