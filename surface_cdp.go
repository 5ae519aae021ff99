package html2pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Compile-time interface checks.
var (
	_ Provider = (*chromedpProvider)(nil)
	_ Surface  = (*chromedpSurface)(nil)
)

// chromedpProvider runs one Chrome process through chromedp and opens
// a tab per conversion.
type chromedpProvider struct {
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// newChromedpProvider launches the browser immediately so that startup
// failures surface here rather than mid-conversion.
func newChromedpProvider(cfg config) (*chromedpProvider, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
	)
	if cfg.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}

	return &chromedpProvider{
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Acquire opens a fresh tab. The empty Run creates the target eagerly
// so acquisition failures are reported here.
func (p *chromedpProvider) Acquire(ctx context.Context) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, tabCancel := chromedp.NewContext(p.browserCtx)
	if err := chromedp.Run(tabCtx); err != nil {
		tabCancel()
		return nil, fmt.Errorf("creating tab: %w", err)
	}

	return &chromedpSurface{ctx: tabCtx, cancel: tabCancel}, nil
}

// Close shuts the browser down by cancelling its contexts. The exec
// allocator waits for the process to exit.
func (p *chromedpProvider) Close() error {
	p.browserCancel()
	p.allocCancel()
	return nil
}

// chromedpSurface is a single tab.
type chromedpSurface struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// LoadHTML loads inline markup by staging it in a temp .html file and
// navigating to its file:// URL, which gives relative asset references
// and large documents the same load path as a real navigation.
func (s *chromedpSurface) LoadHTML(ctx context.Context, html string) error {
	path, cleanup, err := fileutil.WriteTempFile(html, "html")
	if err != nil {
		return fmt.Errorf("staging HTML: %w", err)
	}
	defer cleanup()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving temp path: %w", err)
	}
	return s.Navigate(ctx, "file://"+abs)
}

// Navigate loads url and waits for the document body to be ready.
func (s *chromedpSurface) Navigate(ctx context.Context, url string) error {
	return s.run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// PrintToFile renders the tab to PDF and writes it to path.
func (s *chromedpSurface) PrintToFile(ctx context.Context, path string) error {
	var buf []byte
	err := s.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		buf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			Do(ctx)
		return err
	}))
	if err != nil {
		return err
	}
	// #nosec G306 -- PDFs are meant to be readable
	return os.WriteFile(path, buf, 0o644)
}

// Close discards the tab.
func (s *chromedpSurface) Close() error {
	s.cancel()
	return nil
}

// run executes actions against the tab, honoring the cancellation and
// deadline of the caller's context on top of the tab's own lifetime.
func (s *chromedpSurface) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx := s.ctx
	if ctx.Done() != nil {
		var cancel context.CancelFunc
		if deadline, ok := ctx.Deadline(); ok {
			runCtx, cancel = context.WithDeadline(runCtx, deadline)
		} else {
			runCtx, cancel = context.WithCancel(runCtx)
		}
		defer cancel()
		stop := context.AfterFunc(ctx, cancel)
		defer stop()
	}
	return chromedp.Run(runCtx, actions...)
}
