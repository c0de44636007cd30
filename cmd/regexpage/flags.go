package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	timeout string
	quiet   bool
	verbose bool
}

// sourceFlags holds the input and output locations.
type sourceFlags struct {
	input  string
	style  string
	output string
}

// pageFlags holds rendering flags.
type pageFlags struct {
	highlight string
	assetPath string
	minify    bool
	unsafe    bool
	noCorner  bool
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common commonFlags
	source sourceFlags
	page   pageFlags
	open   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "build or check timeout (e.g., 30s, 2m)")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addSourceFlags adds input and output flags to a FlagSet.
func addSourceFlags(fs *flag.FlagSet, f *sourceFlags) {
	fs.StringVarP(&f.input, "input", "i", "", "markdown document (default README.md)")
	fs.StringVarP(&f.style, "style", "s", "", "stylesheet path or \"builtin\" (default scripts/style.css)")
	fs.StringVarP(&f.output, "output", "o", "", "output directory, emptied first (default web)")
}

// addPageFlags adds rendering flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.highlight, "highlight", "", "code highlight style or \"none\" (default github)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.minify, "minify", false, "minify the generated HTML")
	fs.BoolVar(&f.unsafe, "unsafe", false, "pass raw HTML in markdown through")
	fs.BoolVar(&f.noCorner, "no-corner", false, "omit the repository corner ribbon")
}

// newFlagSet creates a FlagSet that reports to w instead of os.Stderr.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseErr keeps --help distinct and marks everything else as a usage error.
func parseErr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", w, printBuildUsage)

	addCommonFlags(fs, &f.common)
	addSourceFlags(fs, &f.source)
	addPageFlags(fs, &f.page)
	fs.BoolVar(&f.open, "open", false, "open the page in the system browser")

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseErr(err)
	}
	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string, w io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newFlagSet("check", w, printCheckUsage)
	addCommonFlags(fs, f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseErr(err)
	}
	return f, fs.Args(), nil
}

// parseConfigFlags parses config command flags and returns positional args.
func parseConfigFlags(args []string, w io.Writer) (*commonFlags, []string, error) {
	f := &commonFlags{}
	fs := newFlagSet("config", w, printConfigUsage)
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseErr(err)
	}
	return f, fs.Args(), nil
}
