package html2pdf

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-html2pdf/internal/process"
)

// Compile-time interface checks.
var (
	_ Provider = (*rodProvider)(nil)
	_ Surface  = (*rodSurface)(nil)
)

// rodProvider runs one Chrome process through rod's managed launcher
// and opens a page per conversion.
type rodProvider struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	pid      int
}

// newRodProvider launches and connects immediately. A configured path
// wins over ROD_BROWSER_BIN; otherwise the launcher discovers or
// downloads a browser on its own.
func newRodProvider(cfg config) (*rodProvider, error) {
	l := launcher.New()

	bin := cfg.chromePath
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// Sandbox must be off under CI and most containers.
	if cfg.noSandbox || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return &rodProvider{launcher: l, browser: browser, pid: l.PID()}, nil
}

// Acquire opens a blank page for one conversion.
func (p *rodProvider) Acquire(ctx context.Context) (Surface, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pg, err := p.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("creating page: %w", err)
	}
	return &rodSurface{page: pg}, nil
}

// Close disconnects and stops the browser. The launcher kills the main
// process; the group sweep catches forked renderers left behind.
func (p *rodProvider) Close() error {
	var err error
	if p.browser != nil {
		err = p.browser.Close()
		p.browser = nil
	}
	if p.launcher != nil {
		p.launcher.Kill()
		if p.pid > 0 {
			process.KillProcessGroup(p.pid)
		}
		p.launcher = nil
	}
	return err
}

// rodSurface is a single page.
type rodSurface struct {
	page *rod.Page
}

// LoadHTML replaces the document with the given markup and waits for
// the load event.
func (s *rodSurface) LoadHTML(ctx context.Context, html string) error {
	pg := s.page.Context(ctx)
	if err := pg.SetDocumentContent(html); err != nil {
		return fmt.Errorf("setting document content: %w", err)
	}
	if err := pg.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for load: %w", err)
	}
	return nil
}

// Navigate loads url and waits for the load event.
func (s *rodSurface) Navigate(ctx context.Context, url string) error {
	pg := s.page.Context(ctx)
	if err := pg.Navigate(url); err != nil {
		return fmt.Errorf("navigating: %w", err)
	}
	if err := pg.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for load: %w", err)
	}
	return nil
}

// PrintToFile renders the page to PDF and writes it to path.
func (s *rodSurface) PrintToFile(ctx context.Context, path string) error {
	pg := s.page.Context(ctx)

	reader, err := pg.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
	})
	if err != nil {
		return err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("reading PDF stream: %w", err)
	}

	// #nosec G306 -- PDFs are meant to be readable
	return os.WriteFile(path, data, 0o644)
}

// Close discards the page.
func (s *rodSurface) Close() error {
	return s.page.Close()
}
