package main

import (
	html2pdf "github.com/alnah/go-html2pdf"
)

// converterPool adapts html2pdf.ConverterPool to the CLI's Pool
// interface, narrowing pooled converters to the CLIConverter surface
// the batch runner needs.
type converterPool struct {
	inner *html2pdf.ConverterPool
}

// Compile-time check that converterPool implements Pool.
var _ Pool = (*converterPool)(nil)

// newConverterPool creates a pool of n converters, each configured
// with opts. Converters are created lazily on first acquire.
func newConverterPool(n int, opts ...html2pdf.Option) *converterPool {
	return &converterPool{inner: html2pdf.NewConverterPool(n, opts...)}
}

// Acquire gets a converter, blocking if all are in use.
func (p *converterPool) Acquire() CLIConverter {
	return p.inner.Acquire()
}

// Release returns a converter to the pool.
func (p *converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*html2pdf.Converter); ok {
		p.inner.Release(conv)
	}
}

// Size returns the pool capacity.
func (p *converterPool) Size() int {
	return p.inner.Size()
}

// Close releases all pooled browsers.
func (p *converterPool) Close() error {
	return p.inner.Close()
}
