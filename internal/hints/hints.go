// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors.
// Detects CI/Docker environment and suggests relevant flags and
// environment variables.
func ForBrowserConnect() string {
	var hints []string

	// Detect CI environment
	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	// Suggest disabling the sandbox for container/CI environments
	if inCI || IsInContainer() {
		hints = append(hints, "pass --no-sandbox for Docker/CI")
	}

	// Suggest pointing at a specific browser binary
	hints = append(hints, "use --chrome-path (or ROD_BROWSER_BIN with --backend rod) to select a browser")

	return formatHints(hints)
}

// ForPrintUnsupported returns hints when the browser lacks PDF printing.
func ForPrintUnsupported() string {
	return format("PDF printing needs a headless Chrome or Chromium; update the browser or use --chrome-path")
}

// ForTimeout returns a hint about increasing timeout for slow pages.
func ForTimeout() string {
	return format("for large or slow pages, raise --timeout")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-html2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-html2pdf) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-html2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
