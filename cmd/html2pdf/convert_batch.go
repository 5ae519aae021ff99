package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// Permission constants.
const (
	dirPermissions = 0o750
)

// Batch sentinel errors.
var (
	ErrWritePDF      = errors.New("failed to write PDF")
	ErrConverterInit = errors.New("converter not initialized")
)

// CLIConverter abstracts conversion operations for testability.
type CLIConverter interface {
	Convert(ctx context.Context, req html2pdf.Request) (*html2pdf.Result, error)
}

// Pool abstracts converter pool operations for testability.
type Pool interface {
	Acquire() CLIConverter
	Release(c CLIConverter)
	Size() int
}

// ConversionResult records the outcome of one conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
}

// convertBatch runs the jobs across the pool's workers and returns one
// result per job, in job order.
func convertBatch(ctx context.Context, pool Pool, jobs []job, env *Environment) []ConversionResult {
	results := make([]ConversionResult, len(jobs))
	jobCh := make(chan int)

	concurrency := pool.Size()
	if len(jobs) < concurrency {
		concurrency = len(jobs)
	}

	var wg sync.WaitGroup
	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobCh {
				results[idx] = convertOne(ctx, pool, jobs[idx], env)
			}
		}()
	}

	for i := range jobs {
		select {
		case jobCh <- i:
		case <-ctx.Done():
			results[i] = ConversionResult{InputPath: jobs[i].input, OutputPath: jobs[i].output, Err: ctx.Err()}
		}
	}
	close(jobCh)
	wg.Wait()

	return results
}

// convertOne renders a single job with a pooled converter.
// Local files are handed to the browser as file:// URLs so relative
// stylesheets and images next to the input keep resolving.
func convertOne(ctx context.Context, pool Pool, j job, env *Environment) ConversionResult {
	start := env.Now()

	res := ConversionResult{InputPath: j.input, OutputPath: j.output}
	finish := func() ConversionResult {
		res.Duration = env.Now().Sub(start)
		return res
	}

	conv := pool.Acquire()
	defer pool.Release(conv)
	if conv == nil {
		res.Err = ErrConverterInit
		return finish()
	}

	req := html2pdf.Request{OutputPath: j.output, IsURL: true, Content: j.input}
	if !j.isURL {
		abs, err := filepath.Abs(j.input)
		if err != nil {
			res.Err = fmt.Errorf("%w: %v", ErrNoInput, err)
			return finish()
		}
		req.Content = "file://" + abs
	}

	if dir := filepath.Dir(j.output); dir != "." {
		if err := os.MkdirAll(dir, dirPermissions); err != nil {
			res.Err = fmt.Errorf("%w: %v%s", ErrWritePDF, err, hints.ForOutputDirectory())
			return finish()
		}
	}

	if _, err := conv.Convert(ctx, req); err != nil {
		res.Err = annotateError(err)
		return finish()
	}

	return finish()
}

// annotateError appends environment hints to errors users commonly hit.
func annotateError(err error) error {
	switch {
	case errors.Is(err, html2pdf.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, html2pdf.ErrPrintUnsupported):
		return fmt.Errorf("%w%s", err, hints.ForPrintUnsupported())
	case strings.Contains(err.Error(), context.DeadlineExceeded.Error()):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	}
	return err
}

// ResultSummary aggregates batch outcomes.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies successes and failures.
func countResults(results []ConversionResult) ResultSummary {
	var s ResultSummary
	for _, r := range results {
		if r.Err != nil {
			s.Failed++
		} else {
			s.Succeeded++
		}
	}
	return s
}

// printResults reports per-input outcomes and a summary.
// Failures always print; successes respect quiet mode, and verbose mode
// adds durations.
func printResults(w io.Writer, results []ConversionResult, summary ResultSummary, quiet, verbose bool) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}
		if verbose {
			fmt.Fprintf(w, "Created %s (%s)\n", r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(w, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(w, "%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}
}
