package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: regexpage [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the regex example page (default)")
	fmt.Fprintln(w, "  check      Compile every example of a built page in headless Chrome")
	fmt.Fprintln(w, "  config     Print the effective configuration as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, regexpage reads README.md and scripts/style.css")
	fmt.Fprintln(w, "and writes web/index.html.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'regexpage help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: regexpage build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build one HTML page from a markdown document. Fenced code blocks whose")
	fmt.Fprintln(w, "language ends in the example suffix (```lang-regex) get a copy link, a")
	fmt.Fprintln(w, "report link and an input that tests the pattern as the reader types.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Markdown document (default README.md)")
	fmt.Fprintln(w, "  -s, --style <path>        Stylesheet, or \"builtin\" (default scripts/style.css)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory, emptied first (default web)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --highlight <style>   Code highlight style, or \"none\" (default github)")
	fmt.Fprintln(w, "      --minify              Minify the generated HTML")
	fmt.Fprintln(w, "      --unsafe              Pass raw HTML in markdown through")
	fmt.Fprintln(w, "      --no-corner           Omit the repository corner ribbon")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --open                Open the page in the system browser")
	fmt.Fprintln(w, "  -t, --timeout <d>         Build timeout (default 30s)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  REGEXPAGE_CONFIG, REGEXPAGE_INPUT, REGEXPAGE_STYLE, REGEXPAGE_OUTPUT_DIR,")
	fmt.Fprintln(w, "  REGEXPAGE_HIGHLIGHT, REGEXPAGE_TIMEOUT (flags take precedence)")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: regexpage check [page] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Open a built page in headless Chrome and compile every example the way")
	fmt.Fprintln(w, "the page does. Exits 1 if any example fails to compile.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  page    Built HTML page (default: output of the config, web/index.html)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -t, --timeout <d>         Browser timeout (default 30s)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             List every example")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: regexpage config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the effective configuration (defaults, config file and environment)")
	fmt.Fprintln(w, "as YAML. The output is a valid config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdBuild:
		printBuildUsage(env.Stdout)
	case cmdCheck:
		printCheckUsage(env.Stdout)
	case cmdConfig:
		printConfigUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: regexpage version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: regexpage help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command: %s", ErrUsage, args[0])
	}
	return nil
}
