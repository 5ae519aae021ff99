package main

import (
	"strings"
	"testing"

	flag "github.com/spf13/pflag"
)

func TestRunHelp_NoArgs(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	runHelp(nil, env)
	if !strings.Contains(stdout.String(), "Usage: html2pdf <command>") {
		t.Errorf("main usage not printed: %q", stdout.String())
	}
}

func TestRunHelp_PerCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		command string
		want    string
	}{
		{"convert", "Usage: html2pdf convert"},
		{"doctor", "Usage: html2pdf doctor"},
		{"completion", "Usage: html2pdf completion"},
		{"version", "Usage: html2pdf version"},
		{"help", "Usage: html2pdf help"},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			t.Parallel()
			env, stdout, _ := testEnv()
			runHelp([]string{tt.command}, env)
			if !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("help %s: missing %q in %q", tt.command, tt.want, stdout.String())
			}
		})
	}
}

func TestRunHelp_Unknown(t *testing.T) {
	t.Parallel()

	env, stdout, stderr := testEnv()
	runHelp([]string{"transmogrify"}, env)
	if !strings.Contains(stderr.String(), "Unknown command: transmogrify") {
		t.Errorf("unknown command not reported: %q", stderr.String())
	}
	if !strings.Contains(stderr.String(), "Usage: html2pdf <command>") {
		t.Error("main usage not printed after unknown command")
	}
	if stdout.Len() != 0 {
		t.Errorf("unexpected stdout: %q", stdout.String())
	}
}

func TestPrintConvertUsage_DocumentsAllFlags(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	printConvertUsage(env.Stdout)
	usage := stdout.String()

	var f convertFlags
	buildConvertFlagSet(&f).VisitAll(func(fl *flag.Flag) {
		if !strings.Contains(usage, "--"+fl.Name) {
			t.Errorf("convert usage missing --%s", fl.Name)
		}
	})
}
