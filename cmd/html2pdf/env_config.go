package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // HTML2PDF_CONFIG: config file path
	Timeout    time.Duration // HTML2PDF_TIMEOUT: per-conversion timeout
	Backend    string        // HTML2PDF_BACKEND: chromedp or rod
	ChromePath string        // HTML2PDF_CHROME_PATH: browser binary
	NoSandbox  bool          // HTML2PDF_NO_SANDBOX: disable Chrome sandbox
	InputDir   string        // HTML2PDF_INPUT_DIR: default input directory
	OutputDir  string        // HTML2PDF_OUTPUT_DIR: default output directory
	Workers    int           // HTML2PDF_WORKERS: parallel workers
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":      true,
	"HTML2PDF_TIMEOUT":     true,
	"HTML2PDF_BACKEND":     true,
	"HTML2PDF_CHROME_PATH": true,
	"HTML2PDF_NO_SANDBOX":  true,
	"HTML2PDF_INPUT_DIR":   true,
	"HTML2PDF_OUTPUT_DIR":  true,
	"HTML2PDF_WORKERS":     true,
	"HTML2PDF_CONTAINER":   true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Returns a struct with all recognized HTML2PDF_* values.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("HTML2PDF_CONFIG"),
		Backend:    os.Getenv("HTML2PDF_BACKEND"),
		ChromePath: os.Getenv("HTML2PDF_CHROME_PATH"),
		InputDir:   os.Getenv("HTML2PDF_INPUT_DIR"),
		OutputDir:  os.Getenv("HTML2PDF_OUTPUT_DIR"),
	}

	if v := os.Getenv("HTML2PDF_NO_SANDBOX"); v == "1" || strings.EqualFold(v, "true") {
		cfg.NoSandbox = true
	}

	// Parse duration for timeout
	if timeout := os.Getenv("HTML2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	// Parse int for workers
	if workers := os.Getenv("HTML2PDF_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized HTML2PDF_* variables.
// Helps catch typos like HTML2PDF_BACKEDN instead of HTML2PDF_BACKEND.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "HTML2PDF_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Only sets values if the env var is set AND the config value is empty.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeFlags; timeout and workers are
// resolved separately).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Backend != "" && cfg.Browser.Backend == "" {
		cfg.Browser.Backend = env.Backend
	}
	if env.ChromePath != "" && cfg.Browser.ChromePath == "" {
		cfg.Browser.ChromePath = env.ChromePath
	}
	if env.NoSandbox && !cfg.Browser.NoSandbox {
		cfg.Browser.NoSandbox = true
	}
	if env.InputDir != "" && cfg.Input.DefaultDir == "" {
		cfg.Input.DefaultDir = env.InputDir
	}
	if env.OutputDir != "" && cfg.Output.DefaultDir == "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
}
