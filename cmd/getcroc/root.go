// Package main implements the getcroc command, which downloads, verifies,
// and installs the croc binary for the current platform.
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/getcroc/getcroc/internal/installer"
	"github.com/getcroc/getcroc/internal/release"
)

// Version will be set at build time via -ldflags.
var Version = "v0.0.1-alpha"

var (
	prefixFlag string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "getcroc",
	Short: "Install the croc binary for this platform",
	Long: `getcroc detects the host OS and architecture, downloads the matching
croc release archive, verifies it against the published SHA-256 checksum
manifest, and installs the binary into the chosen prefix directory.

Everything runs through the host's own tools (curl or wget, sha256sum or
shasum or sha256, tar or unzip, install), so the same flow works across
Linux, macOS, BSD flavors, and Termux.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Unknown flags are tolerated so the command keeps the forgiving
	// behavior of a curl-piped install script; they are warned about
	// instead of failing the run.
	FParseErrWhitelist: cobra.FParseErrWhitelist{UnknownFlags: true},
	RunE:               runInstall,
}

func init() {
	rootCmd.Flags().StringVarP(&prefixFlag, "prefix", "p", "", "install prefix directory (default /usr/local/bin, or $PREFIX/bin on Termux)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

func runInstall(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	warnUnknownFlags(logger, cmd.Flags(), os.Args[1:])
	warnUnknownArgs(logger, args)

	prefix, termux := defaultPrefix()
	if prefixFlag != "" {
		prefix = prefixFlag
	}

	mgr := installer.NewManager(installer.Config{
		Coordinates: release.Default,
		Prefix:      prefix,
		Termux:      termux,
	}, installer.Options{Logger: logger})

	return mgr.Run(cmd.Context())
}

// defaultPrefix returns the install prefix to use when none is given, and
// whether the host is a Termux sandbox. Termux keeps its own rooted
// filesystem under $PREFIX and has no sudo.
func defaultPrefix() (string, bool) {
	if env := os.Getenv("PREFIX"); strings.Contains(env, "/com.termux/") {
		return filepath.Join(env, "bin"), true
	}
	return "/usr/local/bin", false
}

// warnUnknownFlags scans the raw command line for flags that are not in
// the registered set and warns about each one. The whitelist above makes
// pflag swallow unknown flags without surfacing them anywhere, so the
// warning needs its own pass over the original arguments.
func warnUnknownFlags(logger *log.Logger, flags *pflag.FlagSet, rawArgs []string) {
	for _, arg := range rawArgs {
		switch {
		case arg == "--":
			// Everything after the terminator is positional.
			return
		case strings.HasPrefix(arg, "--"):
			name := strings.TrimPrefix(arg, "--")
			if i := strings.IndexByte(name, '='); i >= 0 {
				name = name[:i]
			}
			if name != "" && flags.Lookup(name) == nil {
				logger.Warn("ignoring unknown flag", "flag", "--"+name)
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			for _, c := range arg[1:] {
				if c == '=' {
					break
				}
				f := flags.ShorthandLookup(string(c))
				if f == nil {
					logger.Warn("ignoring unknown flag", "flag", "-"+string(c))
					continue
				}
				if f.Value.Type() != "bool" {
					// The rest of the token is this flag's value.
					break
				}
			}
		}
	}
}

// warnUnknownArgs flags stray positional arguments left over after flag
// parsing.
func warnUnknownArgs(logger *log.Logger, args []string) {
	for _, arg := range args {
		logger.Warn("ignoring unrecognized argument", "arg", arg)
	}
}

// Execute runs the root command. Pipeline errors are already reported
// through the Reporter, so the only remaining job is the exit status.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
