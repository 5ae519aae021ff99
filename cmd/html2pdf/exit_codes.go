package main

import (
	"errors"
	"os"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
)

// Exit codes for scripting.
const (
	ExitSuccess = 0 // conversion succeeded
	ExitGeneral = 1 // unspecified failure
	ExitUsage   = 2 // bad arguments or config
	ExitIO      = 3 // file system problems
	ExitBrowser = 4 // browser start or render problems
)

// exitCodeFor maps an error to its exit code.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	switch {
	case errors.Is(err, html2pdf.ErrBrowserConnect),
		errors.Is(err, html2pdf.ErrPageCreate),
		errors.Is(err, html2pdf.ErrPageLoad),
		errors.Is(err, html2pdf.ErrPrintUnsupported),
		errors.Is(err, html2pdf.ErrPrint):
		return ExitBrowser
	}

	// I/O errors (exit 3)
	switch {
	case errors.Is(err, os.ErrNotExist),
		errors.Is(err, os.ErrPermission),
		errors.Is(err, html2pdf.ErrTempFileCreate),
		errors.Is(err, html2pdf.ErrTempFileOpen),
		errors.Is(err, html2pdf.ErrTempFileRead),
		errors.Is(err, ErrNoInput),
		errors.Is(err, ErrWritePDF):
		return ExitIO
	}

	// Usage and config errors (exit 2)
	switch {
	case errors.Is(err, config.ErrConfigNotFound),
		errors.Is(err, config.ErrEmptyConfigName),
		errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrFieldTooLong),
		errors.Is(err, config.ErrInvalidBackend),
		errors.Is(err, config.ErrInvalidTimeout),
		errors.Is(err, config.ErrInvalidWorkers),
		errors.Is(err, html2pdf.ErrEmptyContent),
		errors.Is(err, html2pdf.ErrUnknownBackend),
		errors.Is(err, ErrNotHTML),
		errors.Is(err, ErrBadFlags),
		errors.Is(err, ErrInvalidWorkerCount),
		errors.Is(err, ErrUnsupportedShell):
		return ExitUsage
	}

	return ExitGeneral
}
