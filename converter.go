package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Converter is the reusable, synchronous entry point to the conversion
// pipeline. It owns one browser, brought up lazily on first use, and
// runs a fresh engine session per Convert call.
//
// A Converter is safe for concurrent use; parallel conversions share
// its single browser as separate tabs. For one browser per worker, use
// a ConverterPool.
type Converter struct {
	cfg config

	mu           sync.Mutex
	provider     Provider
	ownsProvider bool
	closed       bool
}

// NewConverter creates a Converter with the given options. No browser
// is started until the first conversion.
func NewConverter(opts ...Option) *Converter {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Converter{cfg: cfg}
	if cfg.provider != nil {
		c.provider = cfg.provider
	}
	return c
}

// Convert runs one conversion and waits for its outcome. The context
// bounds the whole pipeline; on cancellation Convert returns the
// context's error and the abandoned session is cleaned up in the
// background once the browser lets go.
func (c *Converter) Convert(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	provider, err := c.ensureProvider()
	if err != nil {
		return nil, err
	}

	// One engine per call; the provider stays with the converter.
	eng := &Engine{
		id:       uuid.NewString(),
		cfg:      c.cfg,
		provider: provider,
		parent:   ctx,
	}

	done := make(chan struct{})
	var (
		res  *Result
		cerr error
	)
	eng.Generate(req, func(r *Result, err error) {
		res, cerr = r, err
		close(done)
	})

	select {
	case <-done:
		_ = eng.Close()
		return res, cerr
	case <-ctx.Done():
		go func() {
			<-done
			_ = eng.Close()
		}()
		return nil, ctx.Err()
	}
}

// ensureProvider brings the browser up on first use.
func (c *Converter) ensureProvider() (Provider, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrConverterClosed
	}
	if c.provider != nil {
		return c.provider, nil
	}

	p, err := newProvider(c.cfg)
	if err != nil {
		if errors.Is(err, ErrUnknownBackend) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	c.provider = p
	c.ownsProvider = true
	return p, nil
}

// Close releases the browser when the converter owns it. Idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	provider := c.provider
	owns := c.ownsProvider
	c.provider = nil
	c.mu.Unlock()

	if owns && provider != nil {
		return provider.Close()
	}
	return nil
}
