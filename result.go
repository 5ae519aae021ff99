package html2pdf

import (
	"bytes"
	"encoding/base64"
	"io"
	"os"
)

// Result holds the outcome of a successful conversion. Exactly one of
// the two shapes applies: when the request carried an output path the
// PDF is on disk at Path() and the buffer accessors return empty; when
// it did not, the bytes are held in memory and Path() returns "".
type Result struct {
	data []byte
	path string
}

// Bytes returns the raw PDF bytes. The slice is shared, not copied.
func (r *Result) Bytes() []byte {
	return r.data
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// Path returns the location of the PDF when the request supplied an
// output path, and "" otherwise.
func (r *Result) Path() string {
	return r.path
}

// Base64 returns the PDF encoded as standard base64, convenient for
// embedding in JSON responses.
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns a reader over the PDF bytes.
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the PDF to w, implementing io.WriterTo.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to path with the given permissions.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}
