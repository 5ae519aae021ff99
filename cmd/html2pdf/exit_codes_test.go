package main

// Notes:
// - exitCodeFor: we test all sentinel errors from html2pdf and config packages,
//   plus wrapped errors to verify errors.Is() chain works correctly.
// - Exit code constants: we verify Unix conventions (0=success, 1=general, 2=usage)
//   and custom codes are below 126.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestExitCodeFor - Error to exit code mapping
// ---------------------------------------------------------------------------

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"browser connect", html2pdf.ErrBrowserConnect, ExitBrowser},
		{"page create", html2pdf.ErrPageCreate, ExitBrowser},
		{"page load", html2pdf.ErrPageLoad, ExitBrowser},
		{"print unsupported", html2pdf.ErrPrintUnsupported, ExitBrowser},
		{"print failed", html2pdf.ErrPrint, ExitBrowser},
		{"wrapped browser connect", fmt.Errorf("failed: %w", html2pdf.ErrBrowserConnect), ExitBrowser},

		// I/O errors (exit 3)
		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"temp file create", html2pdf.ErrTempFileCreate, ExitIO},
		{"temp file open", html2pdf.ErrTempFileOpen, ExitIO},
		{"temp file read", html2pdf.ErrTempFileRead, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"write pdf", ErrWritePDF, ExitIO},
		{"wrapped file not exist", fmt.Errorf("reading: %w", os.ErrNotExist), ExitIO},

		// Usage/config/validation errors (exit 2)
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"empty config name", config.ErrEmptyConfigName, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"field too long", config.ErrFieldTooLong, ExitUsage},
		{"invalid backend", config.ErrInvalidBackend, ExitUsage},
		{"invalid timeout", config.ErrInvalidTimeout, ExitUsage},
		{"invalid workers", config.ErrInvalidWorkers, ExitUsage},
		{"empty content", html2pdf.ErrEmptyContent, ExitUsage},
		{"unknown backend", html2pdf.ErrUnknownBackend, ExitUsage},
		{"not html", ErrNotHTML, ExitUsage},
		{"bad flags", ErrBadFlags, ExitUsage},
		{"invalid worker count", ErrInvalidWorkerCount, ExitUsage},
		{"unsupported shell", ErrUnsupportedShell, ExitUsage},
		{"wrapped bad flags", fmt.Errorf("%w: oops", ErrBadFlags), ExitUsage},

		// Everything else (exit 1)
		{"unknown error", errors.New("mystery"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodes_Conventions(t *testing.T) {
	t.Parallel()

	if ExitSuccess != 0 {
		t.Error("ExitSuccess must be 0")
	}
	for _, code := range []int{ExitGeneral, ExitUsage, ExitIO, ExitBrowser} {
		if code <= 0 || code >= 126 {
			t.Errorf("exit code %d outside the usable range", code)
		}
	}
}
