package html2pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// sessionState tracks an engine through its single conversion.
type sessionState int

const (
	stateCreated sessionState = iota
	stateLoading
	statePrinting
	stateDone
)

// Engine is a single-use conversion session: one engine renders one
// Request into one PDF. Create it with NewEngine, start the conversion
// with Generate, receive the outcome through the completion callback,
// then Close. Browser bring-up is deferred to the conversion itself, so
// construction never fails.
//
// For a reusable, synchronous API over the same pipeline, see Converter.
type Engine struct {
	id  string
	cfg config

	mu           sync.Mutex
	state        sessionState
	fn           CompletionFunc
	provider     Provider
	ownsProvider bool
	surface      Surface
	closed       bool

	// parent, when set, roots the pipeline context. Used by Converter to
	// tie an engine's work to its caller's context.
	parent context.Context
}

// NewEngine creates an idle conversion session.
func NewEngine(opts ...Option) *Engine {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	e := &Engine{id: uuid.NewString(), cfg: cfg}
	if cfg.provider != nil {
		e.provider = cfg.provider
	}
	return e
}

// ID returns the engine's opaque identity, stable for its lifetime.
func (e *Engine) ID() string {
	return e.id
}

// Generate starts the engine's single conversion and returns without
// waiting for it. The outcome arrives through fn exactly once, from a
// separate goroutine, whichever way the pipeline ends.
//
// The one exception is temp file creation: when req.OutputPath is empty
// the engine claims a temp file before any rendering starts, and a
// failure to create it is reported by calling fn synchronously, before
// Generate returns.
//
// Generate panics if fn is nil. Misuse (closed engine, conversion in
// flight, engine already used, empty content) is reported through fn
// rather than a return value, so every call observes exactly one
// completion.
func (e *Engine) Generate(req Request, fn CompletionFunc) {
	if fn == nil {
		panic("html2pdf: Generate requires a completion callback")
	}

	e.mu.Lock()

	if e.closed {
		e.mu.Unlock()
		go fn(nil, ErrEngineClosed)
		return
	}
	switch e.state {
	case stateLoading, statePrinting:
		e.mu.Unlock()
		go fn(nil, ErrConversionInFlight)
		return
	case stateDone:
		e.mu.Unlock()
		go fn(nil, ErrEngineUsed)
		return
	}
	if req.Content == "" {
		// Validation failure; the session stays available.
		e.mu.Unlock()
		go fn(nil, ErrEmptyContent)
		return
	}

	// Claim the output file up front. With no caller path the engine
	// owns a temp file whose creation must succeed before rendering.
	outPath := req.OutputPath
	ownsTemp := false
	if outPath == "" {
		path, err := fileutil.CreateTempFile("pdf")
		if err != nil {
			e.state = stateDone
			e.mu.Unlock()
			fn(nil, fmt.Errorf("%w: %v", ErrTempFileCreate, err))
			return
		}
		outPath = path
		ownsTemp = true
	}

	e.state = stateLoading
	e.fn = fn
	e.mu.Unlock()

	go e.run(req, outPath, ownsTemp)
}

// run drives the pipeline: acquire a surface, load the content, print,
// assemble the result. Steps are strictly sequential; each failure is
// terminal.
func (e *Engine) run(req Request, outPath string, ownsTemp bool) {
	ctx, cancel := e.pipelineContext()
	defer cancel()

	surface, err := e.acquireSurface(ctx)
	if err != nil {
		e.fail(outPath, ownsTemp, err)
		return
	}

	if req.IsURL {
		err = surface.Navigate(ctx, req.Content)
	} else {
		err = surface.LoadHTML(ctx, req.Content)
	}
	if err != nil {
		e.fail(outPath, ownsTemp, fmt.Errorf("%w: %v", ErrPageLoad, err))
		return
	}

	e.setState(statePrinting)

	if err := surface.PrintToFile(ctx, outPath); err != nil {
		if isPrintUnsupported(err) {
			err = fmt.Errorf("%w: %v", ErrPrintUnsupported, err)
		} else {
			err = fmt.Errorf("%w: %v", ErrPrint, err)
		}
		e.fail(outPath, ownsTemp, err)
		return
	}

	if !ownsTemp {
		// The PDF stays on disk at the caller's path; no bytes are
		// carried in the result.
		e.complete(&Result{path: outPath}, nil)
		return
	}

	data, err := readBackAndRemove(outPath)
	if err != nil {
		e.complete(nil, err)
		return
	}
	e.complete(&Result{data: data}, nil)
}

// acquireSurface readies a render surface, creating the configured
// provider on first use when none was injected.
func (e *Engine) acquireSurface(ctx context.Context) (Surface, error) {
	e.mu.Lock()
	p := e.provider
	e.mu.Unlock()

	if p == nil {
		created, err := newProvider(e.cfg)
		if err != nil {
			if errors.Is(err, ErrUnknownBackend) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
		}
		e.mu.Lock()
		e.provider = created
		e.ownsProvider = true
		e.mu.Unlock()
		p = created
	}

	surface, err := p.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	e.mu.Lock()
	e.surface = surface
	e.mu.Unlock()
	return surface, nil
}

func (e *Engine) setState(s sessionState) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// fail finishes an aborted conversion. A session-owned temp file is
// removed so failures leave nothing behind; caller paths are never
// touched.
func (e *Engine) fail(outPath string, ownsTemp bool, err error) {
	if ownsTemp {
		_ = os.Remove(outPath)
	}
	e.complete(nil, err)
}

// complete delivers the outcome. The callback reference is consumed
// under the lock before invocation, so racing terminal paths cannot
// observe it twice.
func (e *Engine) complete(res *Result, err error) {
	e.mu.Lock()
	fn := e.fn
	e.fn = nil
	e.state = stateDone
	e.mu.Unlock()

	if fn != nil {
		fn(res, err)
	}
}

// readBackAndRemove loads the rendered PDF from a session-owned temp
// file. An open failure keeps the file on disk for inspection; once the
// open succeeds the file is removed however the read itself goes.
func readBackAndRemove(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempFileOpen, err)
	}
	data, readErr := io.ReadAll(f)
	_ = f.Close()
	_ = os.Remove(path)
	if readErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrTempFileRead, readErr)
	}
	return data, nil
}

// pipelineContext roots a conversion's context, applying the configured
// timeout when one was set.
func (e *Engine) pipelineContext() (context.Context, context.CancelFunc) {
	parent := e.parent
	if parent == nil {
		parent = context.Background()
	}
	if e.cfg.timeout > 0 {
		return context.WithTimeout(parent, e.cfg.timeout)
	}
	return context.WithCancel(parent)
}

// Close releases the engine's surface and, when the engine created it,
// its provider. Closing is idempotent. Closing while a conversion is in
// flight is refused with ErrConversionInFlight; close after the
// completion callback has run.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	if e.state == stateLoading || e.state == statePrinting {
		e.mu.Unlock()
		return ErrConversionInFlight
	}

	e.closed = true
	surface := e.surface
	e.surface = nil
	provider := e.provider
	owns := e.ownsProvider
	e.provider = nil
	e.mu.Unlock()

	var errs []error
	if surface != nil {
		if err := surface.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if owns && provider != nil {
		if err := provider.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
