package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidBackend  = errors.New("invalid backend")
	ErrInvalidTimeout  = errors.New("invalid timeout")
	ErrInvalidWorkers  = errors.New("invalid workers")
)

// Field length limits so a hostile config cannot smuggle unbounded data.
const (
	MaxPathLength    = 4096 // filesystem limit on most platforms
	MaxBackendLength = 20   // "chromedp", "rod"
	MaxTimeoutLength = 30   // "2m", "1h30m"
)

// Known backend names. Mirrors the library's backend constants; kept
// here so config validation does not depend on the root package.
var knownBackends = []string{"chromedp", "rod"}

// Config holds all configuration for PDF generation.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Browser BrowserConfig `yaml:"browser"`
	Convert ConvertConfig `yaml:"convert"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// BrowserConfig defines browser backend options.
type BrowserConfig struct {
	Backend    string `yaml:"backend"`    // "chromedp" (default) or "rod"
	ChromePath string `yaml:"chromePath"` // Browser binary (empty = auto-discover)
	NoSandbox  bool   `yaml:"noSandbox"`  // Disable Chrome sandbox (Docker/CI)
}

// ConvertConfig defines conversion run options.
type ConvertConfig struct {
	Timeout string `yaml:"timeout"` // Per-conversion timeout, e.g. "2m" (empty = none)
	Workers int    `yaml:"workers"` // Parallel workers (0 = auto)
}

// ParseTimeout returns the configured timeout as a duration.
// An empty value means no timeout.
func (c ConvertConfig) ParseTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, c.Timeout)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, c.Timeout)
	}
	return d, nil
}

// Validate checks field lengths and value domains.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.chromePath", c.Browser.ChromePath, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("browser.backend", c.Browser.Backend, MaxBackendLength); err != nil {
		return err
	}
	if err := validateFieldLength("convert.timeout", c.Convert.Timeout, MaxTimeoutLength); err != nil {
		return err
	}

	if c.Browser.Backend != "" && !isKnownBackend(c.Browser.Backend) {
		return fmt.Errorf("%w: %q (must be %s)",
			ErrInvalidBackend, c.Browser.Backend, strings.Join(knownBackends, " or "))
	}

	if _, err := c.Convert.ParseTimeout(); err != nil {
		return err
	}

	if c.Convert.Workers < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkers, c.Convert.Workers)
	}

	return nil
}

// isKnownBackend checks backend against the known names (case-insensitive).
func isKnownBackend(name string) bool {
	for _, b := range knownBackends {
		if strings.EqualFold(name, b) {
			return true
		}
	}
	return false
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Input:   InputConfig{DefaultDir: ""},
		Output:  OutputConfig{DefaultDir: ""},
		Browser: BrowserConfig{Backend: ""},
		Convert: ConvertConfig{Timeout: "", Workers: 0},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-html2pdf/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "go-html2pdf", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
