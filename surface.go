package html2pdf

import (
	"context"
	"fmt"
	"strings"
)

// Surface is one browser page prepared for a single conversion. Load
// calls return once the page reports the load finished or failed, and
// PrintToFile returns once the PDF has been written to path. Background
// graphics are always printed.
//
// A surface is used by one conversion at a time and closed afterwards.
type Surface interface {
	// LoadHTML loads inline markup into the page.
	LoadHTML(ctx context.Context, html string) error

	// Navigate loads the page from a URL.
	Navigate(ctx context.Context, url string) error

	// PrintToFile renders the current page to a PDF at path.
	PrintToFile(ctx context.Context, path string) error

	// Close releases the page.
	Close() error
}

// Provider owns a running browser and hands out surfaces.
// Implementations are safe for concurrent Acquire calls.
type Provider interface {
	Acquire(ctx context.Context) (Surface, error)
	Close() error
}

// newProvider builds the provider selected by cfg, starting its browser
// eagerly so connection failures surface here.
func newProvider(cfg config) (Provider, error) {
	switch cfg.backend {
	case BackendChromedp, "":
		return newChromedpProvider(cfg)
	case BackendRod:
		return newRodProvider(cfg)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.backend)
	}
}

// isPrintUnsupported reports whether a print error means the browser
// does not implement the PDF printing command at all. Headful Chrome
// answers "PrintToPDF is not implemented"; binaries predating the
// command answer that the method wasn't found.
func isPrintUnsupported(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "PrintToPDF is not implemented") ||
		strings.Contains(msg, "wasn't found") ||
		strings.Contains(msg, "is not supported")
}
