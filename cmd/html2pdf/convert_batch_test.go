package main

// Notes:
// - convertBatch/convertOne are tested against a fake pool and converter,
//   never a real browser.
// - annotateError: we verify hints are appended for the failure classes
//   users commonly hit.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - fake pool and converter
// ---------------------------------------------------------------------------

type fakeConverter struct {
	mu       sync.Mutex
	requests []html2pdf.Request
	err      error
}

func (f *fakeConverter) Convert(_ context.Context, req html2pdf.Request) (*html2pdf.Result, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return &html2pdf.Result{}, nil
}

type fakePool struct {
	conv *fakeConverter
	size int
}

func (f *fakePool) Acquire() CLIConverter  { return f.conv }
func (f *fakePool) Release(_ CLIConverter) {}
func (f *fakePool) Size() int              { return f.size }

func batchEnv() *Environment {
	var out bytes.Buffer
	return &Environment{Now: time.Now, Stdout: &out, Stderr: &out}
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Batch execution
// ---------------------------------------------------------------------------

func TestConvertBatch_ResultsInJobOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "a.html", "b.html", "c.html")

	jobs := []job{
		{input: filepath.Join(dir, "a.html"), output: filepath.Join(dir, "a.pdf")},
		{input: filepath.Join(dir, "b.html"), output: filepath.Join(dir, "b.pdf")},
		{input: filepath.Join(dir, "c.html"), output: filepath.Join(dir, "c.pdf")},
	}
	pool := &fakePool{conv: &fakeConverter{}, size: 2}

	results := convertBatch(context.Background(), pool, jobs, batchEnv())

	if len(results) != len(jobs) {
		t.Fatalf("got %d results, want %d", len(results), len(jobs))
	}
	for i, r := range results {
		if r.InputPath != jobs[i].input {
			t.Errorf("result %d input = %q, want %q", i, r.InputPath, jobs[i].input)
		}
		if r.Err != nil {
			t.Errorf("result %d failed: %v", i, r.Err)
		}
	}
}

func TestConvertBatch_CanceledContext(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "a.html")
	jobs := []job{{input: filepath.Join(dir, "a.html"), output: filepath.Join(dir, "a.pdf")}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Workers never pick jobs up once the context is gone; every job
	// still gets a result.
	pool := &fakePool{conv: &fakeConverter{}, size: 0}
	results := convertBatch(ctx, pool, jobs, batchEnv())

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if !errors.Is(results[0].Err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", results[0].Err)
	}
}

// ---------------------------------------------------------------------------
// TestConvertOne - Single job handling
// ---------------------------------------------------------------------------

func TestConvertOne_LocalFileBecomesFileURL(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "page.html")
	conv := &fakeConverter{}
	pool := &fakePool{conv: conv, size: 1}

	j := job{input: filepath.Join(dir, "page.html"), output: filepath.Join(dir, "page.pdf")}
	res := convertOne(context.Background(), pool, j, batchEnv())
	if res.Err != nil {
		t.Fatalf("convertOne failed: %v", res.Err)
	}

	req := conv.requests[0]
	if !req.IsURL {
		t.Error("local file not sent as a URL request")
	}
	if !strings.HasPrefix(req.Content, "file://") {
		t.Errorf("content = %q, want a file:// URL", req.Content)
	}
	if req.OutputPath != j.output {
		t.Errorf("OutputPath = %q, want %q", req.OutputPath, j.output)
	}
}

func TestConvertOne_URLPassedThrough(t *testing.T) {
	t.Parallel()

	conv := &fakeConverter{}
	pool := &fakePool{conv: conv, size: 1}

	j := job{input: "https://example.com", isURL: true, output: filepath.Join(t.TempDir(), "x.pdf")}
	res := convertOne(context.Background(), pool, j, batchEnv())
	if res.Err != nil {
		t.Fatalf("convertOne failed: %v", res.Err)
	}

	if got := conv.requests[0].Content; got != "https://example.com" {
		t.Errorf("content = %q", got)
	}
}

func TestConvertOne_CreatesOutputDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "page.html")
	pool := &fakePool{conv: &fakeConverter{}, size: 1}

	out := filepath.Join(dir, "deeply", "nested", "page.pdf")
	j := job{input: filepath.Join(dir, "page.html"), output: out}
	if res := convertOne(context.Background(), pool, j, batchEnv()); res.Err != nil {
		t.Fatalf("convertOne failed: %v", res.Err)
	}
}

func TestConvertOne_ConversionError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, "page.html")
	conv := &fakeConverter{err: fmt.Errorf("%w: no browser", html2pdf.ErrBrowserConnect)}
	pool := &fakePool{conv: conv, size: 1}

	j := job{input: filepath.Join(dir, "page.html"), output: filepath.Join(dir, "page.pdf")}
	res := convertOne(context.Background(), pool, j, batchEnv())

	if !errors.Is(res.Err, html2pdf.ErrBrowserConnect) {
		t.Errorf("error = %v, want ErrBrowserConnect", res.Err)
	}
	if !strings.Contains(res.Err.Error(), "hint:") {
		t.Error("browser-connect failure not annotated with a hint")
	}
}

// ---------------------------------------------------------------------------
// TestAnnotateError - Hint annotation
// ---------------------------------------------------------------------------

func TestAnnotateError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"browser connect", fmt.Errorf("%w: x", html2pdf.ErrBrowserConnect), true},
		{"print unsupported", fmt.Errorf("%w: x", html2pdf.ErrPrintUnsupported), true},
		{"deadline", fmt.Errorf("load: %v", context.DeadlineExceeded), true},
		{"plain error", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := annotateError(tt.err)
			if hasHint := strings.Contains(got.Error(), "hint:"); hasHint != tt.wantHint {
				t.Errorf("annotateError(%v) hint presence = %v, want %v", tt.err, hasHint, tt.wantHint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCountResults / TestPrintResults - Reporting
// ---------------------------------------------------------------------------

func TestCountResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.html"},
		{InputPath: "b.html", Err: errors.New("x")},
		{InputPath: "c.html"},
	}

	s := countResults(results)
	if s.Succeeded != 2 || s.Failed != 1 {
		t.Errorf("summary = %+v, want 2 succeeded / 1 failed", s)
	}
}

func TestPrintResults(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.html", OutputPath: "a.pdf", Duration: 120 * time.Millisecond},
		{InputPath: "b.html", Err: errors.New("render failed")},
	}
	summary := countResults(results)

	t.Run("default", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		printResults(&buf, results, summary, false, false)
		out := buf.String()

		if !strings.Contains(out, "Created a.pdf") {
			t.Error("success line missing")
		}
		if !strings.Contains(out, "FAILED b.html") {
			t.Error("failure line missing")
		}
		if !strings.Contains(out, "1 succeeded, 1 failed") {
			t.Error("summary line missing")
		}
	})

	t.Run("quiet keeps failures", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		printResults(&buf, results, summary, true, false)
		out := buf.String()

		if strings.Contains(out, "Created") {
			t.Error("quiet mode printed a success line")
		}
		if !strings.Contains(out, "FAILED b.html") {
			t.Error("quiet mode dropped a failure line")
		}
	})

	t.Run("verbose adds durations", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		printResults(&buf, results, summary, false, true)

		if !strings.Contains(buf.String(), "120ms") {
			t.Errorf("verbose output missing duration: %q", buf.String())
		}
	})
}
