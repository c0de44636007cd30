package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/alnah/go-regexpage"
	"github.com/alnah/go-regexpage/internal/fileutil"
	"github.com/alnah/go-regexpage/internal/hints"
)

// Sentinel errors for the check command.
var (
	ErrNoPage          = errors.New("page not found")
	ErrInvalidPatterns = errors.New("examples fail to compile")
)

// runCheck compiles every example of a built page in headless Chrome.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) > 1 {
		return fmt.Errorf("%w: check takes at most one page, got %d", ErrUsage, len(rest))
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	timeout, err := resolveTimeout(flags.timeout, envCfg)
	if err != nil {
		return err
	}

	var path string
	if len(rest) == 1 {
		path = rest[0]
	} else {
		cfg, err := loadConfig(flags.config, envCfg)
		if err != nil {
			return err
		}
		applyEnvConfig(envCfg, cfg)
		path = filepath.Join(cfg.Output.Dir, cfg.Output.File)
	}
	if !fileutil.FileExists(path) {
		return fmt.Errorf("%w: %s%s", ErrNoPage, path, hints.ForMissingPage())
	}

	checker := env.NewChecker(timeout)
	defer func() { _ = checker.Close() }()

	stage := newStageLogger(env, flags.verbose)
	results, err := checker.CheckFile(ctx, path)
	if err != nil {
		switch {
		case errors.Is(err, regexpage.ErrBrowserConnect):
			return fmt.Errorf("checking %s: %w%s", path, err, hints.ForBrowserConnect())
		case errors.Is(err, context.DeadlineExceeded):
			return fmt.Errorf("checking %s: %w%s", path, err, hints.ForTimeout())
		default:
			return fmt.Errorf("checking %s: %w", path, err)
		}
	}
	stage("check", path)

	return reportCheck(results, flags, env)
}

// reportCheck prints failures to stderr and, unless quiet, a summary to
// stdout. Verbose lists every example.
func reportCheck(results []regexpage.CheckResult, flags *commonFlags, env *Environment) error {
	invalid := regexpage.Invalid(results)

	for _, r := range results {
		switch {
		case !r.Valid:
			fmt.Fprintf(env.Stderr, "FAILED #%d %s: %s\n", r.Index+1, r.Pattern, r.Error)
		case flags.verbose && !flags.quiet:
			fmt.Fprintf(env.Stdout, "ok     #%d %s\n", r.Index+1, r.Pattern)
		}
	}

	if !flags.quiet {
		fmt.Fprintf(env.Stdout, "%s, %d invalid\n", pluralize(len(results), "example"), len(invalid))
	}

	if len(invalid) > 0 {
		return fmt.Errorf("%w: %d of %d%s", ErrInvalidPatterns, len(invalid), len(results), hints.ForInvalidPatterns())
	}
	return nil
}
