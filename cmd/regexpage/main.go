package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild   = "build"
	cmdCheck   = "check"
	cmdConfig  = "config"
	cmdVersion = "version"
	cmdHelp    = "help"
)

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches a command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := dispatch(ctx, args[1:], env)
	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// dispatch runs the command named by the first argument. No command, or
// flags only, means build.
func dispatch(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runBuild(ctx, args, env)
	}
	if !isCommand(args[0]) {
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command: %s", ErrUsage, args[0])
	}

	switch args[0] {
	case cmdBuild:
		return runBuild(ctx, args[1:], env)
	case cmdCheck:
		return runCheck(ctx, args[1:], env)
	case cmdConfig:
		return runConfig(args[1:], env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "regexpage %s\n", Version)
		return nil
	default:
		return runHelp(args[1:], env)
	}
}

// isCommand reports whether s names a command.
func isCommand(s string) bool {
	switch s {
	case cmdBuild, cmdCheck, cmdConfig, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// valueFlags lists flags that consume a value, so a "-v" after them is the
// value and not the verbose switch.
var valueFlags = map[string]bool{
	"c": true, "config": true,
	"t": true, "timeout": true,
	"i": true, "input": true,
	"s": true, "style": true,
	"o": true, "output": true,
	"highlight": true, "asset-path": true,
}

// wantsVerbose reports whether -v or --verbose is set before any "--",
// reading short clusters such as -qv the way pflag does. main needs it
// before flags are parsed.
func wantsVerbose(args []string) bool {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--":
			return false
		case strings.HasPrefix(arg, "--"):
			name, value, inline := strings.Cut(arg[2:], "=")
			if name == "verbose" {
				return !inline || value != "false"
			}
			if valueFlags[name] && !inline {
				i++
			}
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			for j, c := range arg[1:] {
				if c == 'v' {
					return true
				}
				if valueFlags[string(c)] {
					// Rest of the cluster, or the next argument, is the value.
					if j == len(arg)-2 {
						i++
					}
					break
				}
			}
		}
	}
	return false
}
