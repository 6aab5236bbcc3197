package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/getcroc/getcroc/internal/archive"
	"github.com/getcroc/getcroc/internal/fetch"
	"github.com/getcroc/getcroc/internal/platform"
	"github.com/getcroc/getcroc/internal/prefix"
	"github.com/getcroc/getcroc/internal/release"
	"github.com/getcroc/getcroc/internal/report"
	"github.com/getcroc/getcroc/internal/tool"
	"github.com/getcroc/getcroc/internal/verify"
)

// ErrUnsupportedPlatform indicates the detected platform has no supported
// release (Cygwin/Windows).
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Config is the immutable run configuration, constructed once at startup
// from flags and environment and passed into the Manager.
type Config struct {
	// Coordinates pins the release to install.
	Coordinates release.Coordinates
	// Prefix is the resolved install directory.
	Prefix string
	// Termux marks a Termux sandbox environment.
	Termux bool
}

// Options carries the Manager's injectable dependencies. Nil fields are
// replaced with production defaults.
type Options struct {
	Runner   tool.Runner
	Detector platform.Detector
	Reporter *report.Reporter
	Logger   *log.Logger
}

// Manager runs the installation pipeline.
type Manager struct {
	cfg      Config
	runner   tool.Runner
	detector platform.Detector
	reporter *report.Reporter
	logger   *log.Logger
}

// NewManager creates a Manager from cfg, filling unset options with
// production defaults.
func NewManager(cfg Config, opts Options) *Manager {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	runner := opts.Runner
	if runner == nil {
		runner = tool.NewRunner()
	}
	detector := opts.Detector
	if detector == nil {
		detector = platform.NewDetector(runner, logger)
	}
	reporter := opts.Reporter
	if reporter == nil {
		reporter = report.New(os.Stdout)
	}

	return &Manager{
		cfg:      cfg,
		runner:   runner,
		detector: detector,
		reporter: reporter,
		logger:   logger,
	}
}

// Run executes the pipeline. The returned error is already reported to the
// operator; callers translate any error into exit code 1.
func (m *Manager) Run(ctx context.Context) error {
	info, err := m.detector.Detect(ctx)
	if err != nil {
		m.reporter.Errorf("could not detect platform: %v", err)
		return err
	}
	m.reporter.Infof("detected platform %s-%s", info.OS, info.Arch)

	if info.IsWindows() {
		m.reporter.Errorf("%s is based on Windows and unsupported, exiting", info.OSRaw)
		return fmt.Errorf("%w: %s", ErrUnsupportedPlatform, info.OSRaw)
	}

	// Resolve all tool strategies before touching the network: a host
	// that cannot verify downloads should not download at all.
	fetcher, err := fetch.NewFetcher(m.runner)
	if err != nil {
		m.reporter.Errorf("%v", err)
		return err
	}
	verifier, err := verify.NewVerifier(m.runner)
	if err != nil {
		m.reporter.Errorf("%v", err)
		return err
	}
	m.logger.Debug("resolved tool strategies",
		"download", fetcher.Tool(), "digest", verifier.Tool())

	scratch, err := os.MkdirTemp("", "getcroc-")
	if err != nil {
		m.reporter.Errorf("could not create scratch directory: %v", err)
		return err
	}
	m.logger.Debug("created scratch directory", "path", scratch)

	if err := m.install(ctx, info, fetcher, verifier, scratch); err != nil {
		// Retained deliberately: the partial download or extraction is
		// the only evidence of what went wrong.
		m.reporter.Infof("keeping scratch directory %s for inspection", scratch)
		return err
	}

	if err := os.RemoveAll(scratch); err != nil {
		m.logger.Debug("could not remove scratch directory", "path", scratch, "err", err)
	}
	return nil
}

// install runs the downloadable part of the pipeline against an existing
// scratch directory.
func (m *Manager) install(ctx context.Context, info *platform.Info, fetcher *fetch.Fetcher, verifier *verify.Verifier, scratch string) error {
	coords := m.cfg.Coordinates
	archiveName := coords.ArchiveName(info)
	manifestName := coords.ChecksumName()

	m.reporter.Infof("downloading %s", archiveName)
	if err := fetcher.Fetch(ctx, coords.ArchiveURL(info), scratch, archiveName); err != nil {
		m.reporter.Errorf("could not download %s: %v", archiveName, err)
		return err
	}
	if err := fetcher.Fetch(ctx, coords.ChecksumURL(), scratch, manifestName); err != nil {
		m.reporter.Errorf("could not download %s: %v", manifestName, err)
		return err
	}
	m.reporter.OKf("downloaded %s", archiveName)

	if err := verifier.Verify(ctx, scratch, archiveName, manifestName); err != nil {
		m.reporter.Errorf("checksum verification failed: %v", err)
		return err
	}
	m.reporter.OKf("checksums verified with %s", verifier.Tool())

	extractor := archive.NewExtractor(m.runner)
	if err := extractor.Extract(ctx, filepath.Join(scratch, archiveName), scratch, info.Ext); err != nil {
		m.reporter.Errorf("could not extract %s: %v", archiveName, err)
		return err
	}
	binPath := filepath.Join(scratch, coords.Binary)
	if _, err := os.Stat(binPath); err != nil {
		err = fmt.Errorf("binary %s not found in archive: %w", coords.Binary, err)
		m.reporter.Errorf("%v", err)
		return err
	}
	m.reporter.OKf("extracted %s", coords.Binary)

	prefixMgr := prefix.NewManager(m.runner)
	if prefixMgr.Exists(m.cfg.Prefix) {
		m.reporter.Infof("install prefix %s already exists", m.cfg.Prefix)
	} else {
		if err := prefixMgr.Ensure(ctx, m.cfg.Prefix); err != nil {
			m.reporter.Errorf("could not create %s: %v", m.cfg.Prefix, err)
			return err
		}
		m.reporter.OKf("created install prefix %s", m.cfg.Prefix)
	}

	inst := prefix.NewInstaller(m.runner, m.cfg.Termux)
	if err := inst.Install(ctx, info, binPath, m.cfg.Prefix); err != nil {
		m.reporter.Errorf("could not install %s: %v", coords.Binary, err)
		return err
	}
	m.reporter.OKf("installed %s v%s to %s", coords.Binary, coords.Version, m.cfg.Prefix)

	// Best-effort; the binary drops completion scripts there on first run.
	if err := prefixMgr.EnsureCompletionDir(ctx); err != nil {
		m.logger.Debug("completion directory not created", "err", err)
	}

	return nil
}
