// Package html2pdf converts HTML documents and web pages to PDF using
// a headless Chrome browser.
//
// # Quick Start
//
// The package-level helpers cover one-off conversions:
//
//	res, err := html2pdf.ConvertHTML(ctx, "<h1>Invoice</h1>")
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := res.WriteToFile("invoice.pdf", 0o644); err != nil {
//		log.Fatal(err)
//	}
//
// For repeated conversions, create one Converter and reuse it so the
// browser is started once:
//
//	conv := html2pdf.NewConverter(html2pdf.WithTimeout(2 * time.Minute))
//	defer conv.Close()
//
//	res, err := conv.Convert(ctx, html2pdf.Request{
//		Content: "https://example.com",
//		IsURL:   true,
//	})
//
// # Conversion Sessions
//
// Underneath the synchronous API sits the Engine, a single-use
// asynchronous conversion session. Generate starts the pipeline and
// returns immediately; the outcome is delivered to a completion
// callback exactly once:
//
//	eng := html2pdf.NewEngine()
//	eng.Generate(html2pdf.Request{Content: doc}, func(res *html2pdf.Result, err error) {
//		// runs once, on a separate goroutine
//	})
//
// A session renders either into a caller-supplied output path, leaving
// the file on disk, or into a temp file of its own that it reads back
// and removes, delivering the bytes in the Result.
//
// # Backends
//
// Two browser backends are available: BackendChromedp (the default)
// drives Chrome over the DevTools protocol via chromedp, and
// BackendRod uses rod's managed launcher, which can download a browser
// when none is installed. Select with WithBackend, point at a specific
// binary with WithChromePath, or inject a custom Provider with
// WithProvider.
//
// # Parallel Processing
//
// ConverterPool manages several converters, one browser each, for
// batch workloads:
//
//	pool := html2pdf.NewConverterPool(html2pdf.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv := pool.Acquire()
//	defer pool.Release(conv)
//
// # Browser Requirements
//
// A Chrome or Chromium binary must be reachable: installed locally,
// named via WithChromePath, or (rod backend) via ROD_BROWSER_BIN. In
// Docker and CI environments the sandbox usually has to be disabled
// with WithNoSandbox or ROD_NO_SANDBOX=1.
package html2pdf
