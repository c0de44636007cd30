package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alnah/go-regexpage"
	"github.com/alnah/go-regexpage/internal/config"
	"github.com/alnah/go-regexpage/internal/fileutil"
	"github.com/alnah/go-regexpage/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrInvalidTimeout = errors.New("invalid timeout")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrReadStyle      = errors.New("failed to read stylesheet")
	ErrOutputDir      = errors.New("failed to prepare output directory")
	ErrWriteHTML      = errors.New("failed to write HTML file")
)

// filePermissions is rw-r--r--: the page is meant to be served.
const filePermissions = 0o644

// defaultTimeout bounds one build or one check when nothing else is set.
const defaultTimeout = 30 * time.Second

// Builder is the interface for the page builder.
type Builder interface {
	Build(ctx context.Context, input regexpage.Input) (*regexpage.Result, error)
}

// Compile-time interface implementation check.
var _ Builder = (*regexpage.Builder)(nil)

// buildReport describes a finished build.
type buildReport struct {
	OutputPath string
	Examples   int
}

// runBuild builds the page: resolve configuration, create the builder, then
// run the four page steps.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: unexpected argument %q (use --input)", ErrUsage, rest[0])
	}

	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeBuildFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	timeout, err := resolveTimeout(flags.common.timeout, envCfg)
	if err != nil {
		return err
	}

	opts, err := builderOptions(cfg, timeout)
	if err != nil {
		return err
	}
	builder, err := regexpage.NewBuilder(opts...)
	if err != nil {
		if errors.Is(err, regexpage.ErrUnknownHighlightStyle) {
			return fmt.Errorf("%w%s", err, hints.ForHighlightStyle(regexpage.HighlightStyles()))
		}
		return err
	}

	report, err := buildPage(ctx, builder, cfg, env, flags.common.verbose)
	if err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s (%s)\n", report.OutputPath, pluralize(report.Examples, "example"))
	}

	if flags.open {
		// A missing desktop browser does not fail a finished build.
		if err := env.OpenFile(report.OutputPath); err != nil {
			fmt.Fprintf(env.Stderr, "warning: opening %s: %v\n", report.OutputPath, err)
		}
	}
	return nil
}

// buildPage runs the page steps in order: empty the output directory, read
// the markdown and stylesheet, build, write. Any failure aborts; nothing is
// cleaned up beyond the first step.
func buildPage(ctx context.Context, builder Builder, cfg *config.Config, env *Environment, verbose bool) (*buildReport, error) {
	stage := newStageLogger(env, verbose)

	if err := fileutil.EnsureEmptyDir(cfg.Output.Dir); err != nil {
		return nil, fmt.Errorf("%w: %w%s", ErrOutputDir, err, hints.ForOutputDirectory())
	}
	stage("prepare", cfg.Output.Dir)

	markdown, err := os.ReadFile(cfg.Input.Markdown) // #nosec G304 -- user-provided path
	if err != nil {
		return nil, fmt.Errorf("%w: %v%s", ErrReadMarkdown, err, hints.ForMissingMarkdown())
	}

	var css []byte
	if cfg.Input.Style != config.BuiltinStyle {
		css, err = os.ReadFile(cfg.Input.Style) // #nosec G304 -- user-provided path
		if err != nil {
			return nil, fmt.Errorf("%w: %v%s", ErrReadStyle, err, hints.ForMissingStylesheet())
		}
	}
	stage("read", cfg.Input.Markdown)

	result, err := builder.Build(ctx, regexpage.Input{
		Markdown: string(markdown),
		CSS:      string(css),
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("building page: %w%s", err, hints.ForTimeout())
		}
		return nil, fmt.Errorf("building page: %w", err)
	}
	stage("build", pluralize(len(result.Examples), "example"))

	outPath := filepath.Join(cfg.Output.Dir, cfg.Output.File)
	// #nosec G306 -- the page is meant to be readable
	if err := os.WriteFile(outPath, []byte(result.HTML), filePermissions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}
	stage("write", outPath)

	return &buildReport{OutputPath: outPath, Examples: len(result.Examples)}, nil
}

// newStageLogger returns a function printing the time spent since the
// previous stage. It prints nothing unless verbose.
func newStageLogger(env *Environment, verbose bool) func(name, detail string) {
	last := env.Now()
	return func(name, detail string) {
		if !verbose {
			return
		}
		now := env.Now()
		fmt.Fprintf(env.Stderr, "  %-8s %-10v %s\n", name, now.Sub(last).Round(time.Microsecond), detail)
		last = now
	}
}

// loadConfig loads the config named by the flag or REGEXPAGE_CONFIG, or the
// defaults when neither is set.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name == "" {
		return config.DefaultConfig(), nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			var searched []string
			if !fileutil.IsFilePath(name) {
				searched = config.SearchPaths(name)
			}
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(searched))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeBuildFlags merges CLI flags into config. CLI values override config values.
func mergeBuildFlags(flags *buildFlags, cfg *config.Config) {
	if flags.source.input != "" {
		cfg.Input.Markdown = flags.source.input
	}
	if flags.source.style != "" {
		cfg.Input.Style = flags.source.style
	}
	if flags.source.output != "" {
		cfg.Output.Dir = flags.source.output
	}
	if flags.page.highlight != "" {
		cfg.Highlight.Style = flags.page.highlight
	}
	if flags.page.assetPath != "" {
		cfg.Assets.BasePath = flags.page.assetPath
	}

	// Boolean flags can only switch features on.
	if flags.page.minify {
		cfg.Output.Minify = true
	}
	if flags.page.unsafe {
		cfg.Markdown.Unsafe = true
	}
	if flags.page.noCorner {
		cfg.Page.NoCorner = true
	}
}

// resolveTimeout picks the flag value, then REGEXPAGE_TIMEOUT, then the default.
func resolveTimeout(flagValue string, envCfg *envConfig) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q must be positive", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	if envCfg.Timeout > 0 {
		return envCfg.Timeout, nil
	}
	return defaultTimeout, nil
}

// builderOptions maps the configuration onto library options.
func builderOptions(cfg *config.Config, timeout time.Duration) ([]regexpage.Option, error) {
	highlight := cfg.Highlight.Style
	if highlight == config.NoHighlight {
		highlight = ""
	}
	labels := regexpage.Labels(cfg.Labels)

	opts := []regexpage.Option{
		regexpage.WithTimeout(timeout),
		regexpage.WithPage(&regexpage.Page{
			Lang:        cfg.Page.Lang,
			Title:       cfg.Page.Title,
			Description: cfg.Page.Description,
			Keywords:    cfg.Page.Keywords,
			Favicon:     cfg.Page.Favicon,
			Scripts:     cfg.Page.Scripts,
			NoCorner:    cfg.Page.NoCorner,
		}),
		regexpage.WithRepository(&regexpage.Repository{
			URL:          cfg.Repository.URL,
			Assignee:     cfg.Repository.Assignee,
			ReportLabels: cfg.Repository.ReportLabels,
			ShareLabels:  cfg.Repository.ShareLabels,
		}),
		regexpage.WithLabels(&labels),
		regexpage.WithSuffix(cfg.Widget.Suffix),
		regexpage.WithAnchor(cfg.Widget.Anchor),
		regexpage.WithHighlightStyle(highlight),
		regexpage.WithMinify(cfg.Output.Minify),
		regexpage.WithUnsafeHTML(cfg.Markdown.Unsafe),
	}

	if cfg.Assets.BasePath != "" {
		loader, err := regexpage.NewAssetLoader(cfg.Assets.BasePath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, regexpage.WithAssetLoader(loader))
	}
	return opts, nil
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
