package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// defaultTimeout bounds each conversion when neither flag, environment,
// nor config says otherwise.
const defaultTimeout = 2 * time.Minute

// runConvert executes the convert command.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrBadFlags, err)
	}

	setupMaxProcs(flags.common.verbose, env)

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := resolveConfig(flags, envCfg)
	if err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.timeout, envCfg.Timeout, cfg)
	if err != nil {
		return err
	}

	workers := resolveWorkers(flags.workers, envCfg.Workers, cfg)
	if err := validateWorkers(workers); err != nil {
		return err
	}

	outputSpec := flags.output
	if outputSpec == "" {
		outputSpec = cfg.Output.DefaultDir
	}

	jobs, err := resolveJobs(positional, cfg, outputSpec)
	if err != nil {
		return err
	}

	poolSize := html2pdf.ResolvePoolSize(workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting %d input(s) with %d worker(s)\n", len(jobs), poolSize)
	}

	pool := newConverterPool(poolSize, buildOptions(cfg, timeout)...)
	defer func() { _ = pool.Close() }()

	results := convertBatch(ctx, pool, jobs, env)
	summary := countResults(results)
	printResults(env.Stdout, results, summary, flags.common.quiet, flags.common.verbose)

	if summary.Failed > 0 {
		// A single failed input reports its own error so scripts get the
		// specific exit code.
		if len(results) == 1 && results[0].Err != nil {
			return results[0].Err
		}
		return fmt.Errorf("%d conversion(s) failed", summary.Failed)
	}
	return nil
}

// resolveConfig loads the config file (if any), layers environment
// values on top, merges flag overrides, and validates the result.
func resolveConfig(flags *convertFlags, envCfg *envConfig) (*config.Config, error) {
	configName := flags.common.config
	if configName == "" {
		configName = envCfg.ConfigPath
	}

	var cfg *config.Config
	if configName != "" {
		loaded, err := config.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(configSearchPaths(configName)))
			}
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	applyEnvConfig(envCfg, cfg)
	mergeFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configSearchPaths lists the locations a named config would be looked
// up in, for the not-found hint.
func configSearchPaths(name string) []string {
	paths := []string{name + ".yaml"}
	if userDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(userDir, "go-html2pdf", name+".yaml"))
	}
	return paths
}

// mergeFlags applies CLI flag values over config. Flags win.
// Timeout and workers are resolved separately to keep their three-way
// precedence explicit.
func mergeFlags(cfg *config.Config, flags *convertFlags) {
	if flags.browser.backend != "" {
		cfg.Browser.Backend = flags.browser.backend
	}
	if flags.browser.chromePath != "" {
		cfg.Browser.ChromePath = flags.browser.chromePath
	}
	if flags.browser.noSandbox {
		cfg.Browser.NoSandbox = true
	}
}

// resolveTimeout picks the conversion timeout: flag > env > config > default.
func resolveTimeout(flagTimeout string, envTimeout time.Duration, cfg *config.Config) (time.Duration, error) {
	if flagTimeout != "" {
		return config.ConvertConfig{Timeout: flagTimeout}.ParseTimeout()
	}
	if envTimeout > 0 {
		return envTimeout, nil
	}
	d, err := cfg.Convert.ParseTimeout()
	if err != nil {
		return 0, err
	}
	if d > 0 {
		return d, nil
	}
	return defaultTimeout, nil
}

// resolveWorkers picks the worker count: flag > env > config.
// Zero means automatic sizing.
func resolveWorkers(flagWorkers, envWorkers int, cfg *config.Config) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return envWorkers
	}
	return cfg.Convert.Workers
}

// buildOptions maps the resolved configuration to library options.
func buildOptions(cfg *config.Config, timeout time.Duration) []html2pdf.Option {
	var opts []html2pdf.Option
	if timeout > 0 {
		opts = append(opts, html2pdf.WithTimeout(timeout))
	}
	if cfg.Browser.Backend != "" {
		opts = append(opts, html2pdf.WithBackend(strings.ToLower(cfg.Browser.Backend)))
	}
	if cfg.Browser.ChromePath != "" {
		opts = append(opts, html2pdf.WithChromePath(cfg.Browser.ChromePath))
	}
	if cfg.Browser.NoSandbox {
		opts = append(opts, html2pdf.WithNoSandbox())
	}
	return opts
}
