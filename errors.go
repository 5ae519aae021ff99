package html2pdf

import "errors"

// Sentinel errors for library operations.
// Pipeline failures are wrapped with fmt.Errorf("%w: %v", Err, cause) so
// callers can classify them with errors.Is.
var (
	ErrEmptyContent   = errors.New("content cannot be empty")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load content")

	// Print errors. ErrPrintUnsupported means the browser does not expose
	// the PDF printing command at all, typically a headful or very old
	// binary; ErrPrint covers every other print failure.
	ErrPrintUnsupported = errors.New("PDF printing not supported by browser")
	ErrPrint            = errors.New("failed to print to PDF")

	// Temp file lifecycle errors. Creation failure is the only error
	// Generate reports synchronously. An open failure leaves the file in
	// place; once opened, the file is removed whether or not the read
	// succeeds.
	ErrTempFileCreate = errors.New("failed to create temp file")
	ErrTempFileOpen   = errors.New("failed to open back temp PDF file")
	ErrTempFileRead   = errors.New("failed to read temp PDF file")

	// Session misuse errors.
	ErrEngineClosed       = errors.New("engine is closed")
	ErrEngineUsed         = errors.New("engine already performed its conversion")
	ErrConversionInFlight = errors.New("conversion in flight")
	ErrConverterClosed    = errors.New("converter is closed")

	// Backend selection errors.
	ErrUnknownBackend = errors.New("unknown backend")
)
