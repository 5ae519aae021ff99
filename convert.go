package html2pdf

import "context"

// Convert runs a single conversion with a throwaway converter. Each
// call pays full browser startup; for repeated work create a Converter
// once and reuse it.
func Convert(ctx context.Context, req Request, opts ...Option) (*Result, error) {
	c := NewConverter(opts...)
	defer func() { _ = c.Close() }()
	return c.Convert(ctx, req)
}

// ConvertHTML renders inline HTML and returns the PDF bytes.
func ConvertHTML(ctx context.Context, html string, opts ...Option) (*Result, error) {
	return Convert(ctx, Request{Content: html}, opts...)
}

// ConvertURL renders the page at url and returns the PDF bytes.
func ConvertURL(ctx context.Context, url string, opts ...Option) (*Result, error) {
	return Convert(ctx, Request{Content: url, IsURL: true}, opts...)
}
