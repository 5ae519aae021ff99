package main

import (
	"io"
	"os"
	"time"
)

// Environment groups the process-level dependencies of the CLI so tests
// can substitute them.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
