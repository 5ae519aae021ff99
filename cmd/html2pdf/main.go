package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set via ldflags at build time.
var Version = "dev"

func main() {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	env := DefaultEnv()
	code := runCLI(ctx, os.Args, env)

	stop()
	os.Exit(code)
}

// runCLI dispatches to the requested command and maps its error to an
// exit code.
func runCLI(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch args[1] {
	case "convert":
		err = runConvert(ctx, args[2:], env)
	case "doctor":
		return runDoctorCmd(args[2:], env)
	case "completion":
		err = runCompletion(args[2:], env)
	case "version":
		fmt.Fprintf(env.Stdout, "html2pdf %s\n", Version)
	case "help", "--help", "-h":
		runHelp(args[2:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %q\n\n", args[1])
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, "Error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// setupMaxProcs aligns GOMAXPROCS with the container CPU quota so the
// automatic pool size stays honest under cgroup limits.
func setupMaxProcs(verbose bool, env *Environment) {
	logger := func(string, ...interface{}) {}
	if verbose {
		logger = func(format string, args ...interface{}) {
			fmt.Fprintf(env.Stderr, format+"\n", args...)
		}
	}
	if _, err := maxprocs.Set(maxprocs.Logger(logger)); err != nil && verbose {
		fmt.Fprintf(env.Stderr, "maxprocs: %v\n", err)
	}
}
