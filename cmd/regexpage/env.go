package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/browser"

	"github.com/alnah/go-regexpage"
)

// PageChecker compiles the examples of a built page.
type PageChecker interface {
	CheckFile(ctx context.Context, path string) ([]regexpage.CheckResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ PageChecker = (*regexpage.Checker)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, the system browser and the headless checker.
type Environment struct {
	Now        func() time.Time
	Stdout     io.Writer
	Stderr     io.Writer
	OpenFile   func(path string) error // shows a built page to the user
	NewChecker func(timeout time.Duration) PageChecker
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		OpenFile: browser.OpenFile,
		NewChecker: func(timeout time.Duration) PageChecker {
			return regexpage.NewChecker(timeout)
		},
	}
}
