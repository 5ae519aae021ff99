package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert       Convert HTML files or URLs to PDF")
	fmt.Fprintln(w, "  doctor        Diagnose the browser environment")
	fmt.Fprintln(w, "  completion    Generate shell completion script")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML files or URLs to PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file, directory, or http(s) URL")
	fmt.Fprintln(w, "           (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Per-conversion timeout (default 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintln(w, "      --backend <s>         Browser backend: chromedp, rod")
	fmt.Fprintln(w, "      --chrome-path <path>  Browser binary path")
	fmt.Fprintln(w, "      --no-sandbox          Disable Chrome sandbox (Docker/CI)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  html2pdf convert page.html")
	fmt.Fprintln(w, "  html2pdf convert docs/ -o build/")
	fmt.Fprintln(w, "  html2pdf convert https://example.com -o example.pdf")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagnose the browser environment: Chrome presence and version,")
	fmt.Fprintln(w, "container/CI detection, sandbox configuration, and temp directory")
	fmt.Fprintln(w, "writability.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  --json    Output machine-readable JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
