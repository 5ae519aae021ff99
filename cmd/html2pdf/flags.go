package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"
)

// ErrBadFlags wraps flag parsing failures.
var ErrBadFlags = errors.New("invalid arguments")

// commonFlags are shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// browserFlags configure the browser backend.
type browserFlags struct {
	backend    string
	chromePath string
	noSandbox  bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	output  string
	workers int
	timeout string
	common  commonFlags
	browser browserFlags
}

// addCommonFlags registers shared flags on fs.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file or name")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "suppress progress output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose output")
}

// addBrowserFlags registers backend flags on fs.
func addBrowserFlags(fs *flag.FlagSet, f *browserFlags) {
	fs.StringVar(&f.backend, "backend", "", "browser backend: chromedp or rod")
	fs.StringVar(&f.chromePath, "chrome-path", "", "browser binary path")
	fs.BoolVar(&f.noSandbox, "no-sandbox", false, "disable Chrome sandbox (Docker/CI)")
}

// buildConvertFlagSet creates a FlagSet with all convert command flags
// bound to f. Shared by parsing and completion so the flag registry has
// a single source of truth.
func buildConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-conversion timeout (default 2m)")

	addCommonFlags(fs, &f.common)
	addBrowserFlags(fs, &f.browser)

	return fs
}

// parseConvertFlags parses convert command arguments.
// Returns flags, positional arguments, and error.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildConvertFlagSet(f)
	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
