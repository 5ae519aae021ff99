package html2pdf

import (
	"time"
)

// Backend names for WithBackend.
const (
	// BackendChromedp drives Chrome over the DevTools protocol through
	// chromedp. This is the default.
	BackendChromedp = "chromedp"

	// BackendRod drives Chrome through rod's managed launcher. It honors
	// the ROD_BROWSER_BIN and ROD_NO_SANDBOX environment variables.
	BackendRod = "rod"
)

// Request describes one conversion.
type Request struct {
	// Content is the HTML markup to render, or the URL to navigate to
	// when IsURL is set. It is passed to the browser verbatim.
	Content string

	// IsURL marks Content as a URL instead of inline HTML.
	IsURL bool

	// OutputPath is where the PDF is written. When empty, the engine
	// renders into a temp file of its own, reads it back, removes it,
	// and delivers the bytes through the Result instead.
	OutputPath string
}

// CompletionFunc receives the outcome of a conversion, exactly once per
// Generate call. On success err is nil; on failure res is nil.
//
// The Result and its backing buffer belong to the engine only for the
// duration of the call. Copy any bytes needed afterwards, for example
// with bytes.Clone(res.Bytes()), before returning.
type CompletionFunc func(res *Result, err error)

// Option configures an Engine or Converter.
type Option func(*config)

// config holds internal engine configuration.
type config struct {
	timeout    time.Duration
	backend    string
	chromePath string
	noSandbox  bool
	provider   Provider
}

func defaultConfig() config {
	return config{backend: BackendChromedp}
}

// WithTimeout bounds each conversion pipeline. The zero default applies
// no bound at all; rendering runs until the browser answers.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("html2pdf: WithTimeout duration must be positive")
	}
	return func(c *config) {
		c.timeout = d
	}
}

// WithBackend selects the browser backend, BackendChromedp or
// BackendRod. Unknown names fail the first conversion with
// ErrUnknownBackend.
func WithBackend(name string) Option {
	return func(c *config) {
		c.backend = name
	}
}

// WithChromePath points the backend at a specific browser binary
// instead of letting it discover or download one.
func WithChromePath(path string) Option {
	return func(c *config) {
		c.chromePath = path
	}
}

// WithNoSandbox disables the Chrome sandbox. Required in most Docker
// and CI environments where the kernel denies sandbox setup.
func WithNoSandbox() Option {
	return func(c *config) {
		c.noSandbox = true
	}
}

// WithProvider injects a caller-owned surface provider, bypassing
// backend selection. The engine will not close an injected provider;
// its lifetime stays with the caller. Intended for sharing one browser
// across many engines and for tests.
func WithProvider(p Provider) Option {
	return func(c *config) {
		c.provider = p
	}
}
