package main

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Sentinel errors for input discovery.
var (
	ErrNoInput            = errors.New("no input found")
	ErrNotHTML            = errors.New("not an HTML file")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// job describes one conversion unit of a batch.
type job struct {
	input  string // file path or URL
	isURL  bool
	output string // resolved output PDF path
}

// resolveJobs turns the positional argument (file, directory, or URL)
// into concrete conversion jobs with resolved output paths.
func resolveJobs(args []string, cfg *config.Config, outputSpec string) ([]job, error) {
	var input string
	switch len(args) {
	case 0:
		if cfg.Input.DefaultDir == "" {
			return nil, fmt.Errorf("%w: provide an HTML file, a directory, or a URL", ErrNoInput)
		}
		input = cfg.Input.DefaultDir
	case 1:
		input = args[0]
	default:
		return nil, fmt.Errorf("%w: expected one input, got %d", ErrBadFlags, len(args))
	}

	if fileutil.IsURL(input) {
		return []job{{input: input, isURL: true, output: resolveURLOutput(input, outputSpec)}}, nil
	}

	files, err := discoverFiles(input)
	if err != nil {
		return nil, err
	}

	// Directory inputs keep their structure under the output directory.
	baseDir := ""
	if info, statErr := os.Stat(input); statErr == nil && info.IsDir() {
		baseDir = input
	}

	jobs := make([]job, 0, len(files))
	for _, f := range files {
		jobs = append(jobs, job{input: f, output: resolveOutputPath(f, baseDir, outputSpec)})
	}
	return jobs, nil
}

// discoverFiles expands an input path to the HTML files it names.
// A file must have an .html or .htm extension; a directory is walked
// recursively.
func discoverFiles(input string) ([]string, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoInput, input)
	}

	if !info.IsDir() {
		if !isHTMLFile(input) {
			return nil, fmt.Errorf("%w: %s", ErrNotHTML, input)
		}
		return []string{input}, nil
	}

	var files []string
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isHTMLFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", input, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no HTML files in %s", ErrNoInput, input)
	}
	return files, nil
}

// isHTMLFile checks the extension, case-insensitively.
func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// resolveOutputPath determines where the PDF for inputPath goes.
//   - empty outputSpec: next to the input, same name with .pdf
//   - outputSpec ending in .pdf: exactly that file
//   - otherwise: under the outputSpec directory, preserving the input's
//     structure relative to baseDir
func resolveOutputPath(inputPath, baseDir, outputSpec string) string {
	pdfName := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)) + ".pdf"

	if outputSpec == "" {
		return filepath.Join(filepath.Dir(inputPath), pdfName)
	}
	if strings.HasSuffix(outputSpec, ".pdf") {
		return outputSpec
	}
	if baseDir != "" {
		if rel, err := filepath.Rel(baseDir, inputPath); err == nil && !strings.HasPrefix(rel, "..") {
			if relDir := filepath.Dir(rel); relDir != "." {
				return filepath.Join(outputSpec, relDir, pdfName)
			}
		}
	}
	return filepath.Join(outputSpec, pdfName)
}

// resolveURLOutput determines where the PDF for a URL input goes.
func resolveURLOutput(rawURL, outputSpec string) string {
	if strings.HasSuffix(outputSpec, ".pdf") {
		return outputSpec
	}
	name := urlOutputName(rawURL)
	if outputSpec == "" {
		return name
	}
	return filepath.Join(outputSpec, name)
}

// urlOutputName derives a PDF file name from a URL, for example
// "https://example.com/docs/intro" becomes "example.com-docs-intro.pdf".
func urlOutputName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "page.pdf"
	}

	name := u.Host
	if p := strings.Trim(u.Path, "/"); p != "" {
		name += "-" + strings.ReplaceAll(p, "/", "-")
	}

	// Keep the name shell-friendly.
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)

	return name + ".pdf"
}

// validateWorkers checks the worker count is usable.
// Zero means automatic sizing.
func validateWorkers(workers int) error {
	if workers < 0 {
		return fmt.Errorf("%w: %d (must be >= 0)", ErrInvalidWorkerCount, workers)
	}
	if workers > html2pdf.MaxPoolSize {
		return fmt.Errorf("%w: %d (max %d)", ErrInvalidWorkerCount, workers, html2pdf.MaxPoolSize)
	}
	return nil
}
