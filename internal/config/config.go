package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-regexpage"
	"github.com/alnah/go-regexpage/internal/fileutil"
	"github.com/alnah/go-regexpage/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidField    = errors.New("invalid config value")
)

// Field length limits, in bytes.
const (
	MaxPathLength       = 4096
	MaxFileNameLength   = 255
	MaxLangLength       = 35 // BCP 47 tags
	MaxTitleLength      = regexpage.MaxTitleLength * 4
	MaxDescriptionLen   = regexpage.MaxDescriptionLength * 4
	MaxKeywordsLength   = regexpage.MaxKeywordsLength * 4
	MaxURLLength        = regexpage.MaxURLLength
	MaxNameLength       = 100 // assignee, issue label
	MaxLabelLength      = regexpage.MaxLabelLength * 4
	MaxIdentifierLength = 64 // suffix, anchor, highlight style
)

// Default file locations. The build reads and writes these relative to the
// working directory.
const (
	DefaultMarkdown  = "README.md"
	DefaultStyle     = "scripts/style.css"
	DefaultOutputDir = "web"
	DefaultOutput    = "index.html"
)

// BuiltinStyle as input.style selects the embedded stylesheet instead of a
// file.
const BuiltinStyle = "builtin"

// NoHighlight as highlight.style disables syntax highlighting.
const NoHighlight = "none"

// appDirName is the directory searched under the user config directory.
const appDirName = "go-regexpage"

// Config holds all configuration for a page build.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Page       PageConfig       `yaml:"page"`
	Repository RepositoryConfig `yaml:"repository"`
	Widget     WidgetConfig     `yaml:"widget"`
	Labels     LabelsConfig     `yaml:"labels"`
	Highlight  HighlightConfig  `yaml:"highlight"`
	Markdown   MarkdownConfig   `yaml:"markdown"`
	Assets     AssetsConfig     `yaml:"assets"`
}

// InputConfig defines the source files.
type InputConfig struct {
	Markdown string `yaml:"markdown"` // default README.md
	Style    string `yaml:"style"`    // stylesheet path, or "builtin"
}

// OutputConfig defines the output destination.
type OutputConfig struct {
	Dir    string `yaml:"dir"`  // emptied before every build
	File   string `yaml:"file"` // file name inside Dir
	Minify bool   `yaml:"minify"`
}

// PageConfig defines the document head and chrome.
type PageConfig struct {
	Lang        string   `yaml:"lang"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Keywords    string   `yaml:"keywords"`
	Favicon     string   `yaml:"favicon"`
	Scripts     []string `yaml:"scripts"`
	NoCorner    bool     `yaml:"noCorner"`
}

// RepositoryConfig defines where report and share links open issues.
type RepositoryConfig struct {
	URL          string   `yaml:"url"`
	Assignee     string   `yaml:"assignee"`
	ReportLabels []string `yaml:"reportLabels"`
	ShareLabels  []string `yaml:"shareLabels"`
}

// WidgetConfig defines example detection and the page anchor.
type WidgetConfig struct {
	Suffix string `yaml:"suffix"`
	Anchor string `yaml:"anchor"`
}

// LabelsConfig holds the literal strings shown on the page.
type LabelsConfig struct {
	Copy        string `yaml:"copy"`
	Copied      string `yaml:"copied"`
	Report      string `yaml:"report"`
	Share       string `yaml:"share"`
	Top         string `yaml:"top"`
	Placeholder string `yaml:"placeholder"`
	Pass        string `yaml:"pass"`
	Fail        string `yaml:"fail"`
	ReportTitle string `yaml:"reportTitle"`
	ReportBody  string `yaml:"reportBody"`
	ShareTitle  string `yaml:"shareTitle"`
	ShareBody   string `yaml:"shareBody"`
}

// HighlightConfig defines syntax highlighting of non-example code blocks.
type HighlightConfig struct {
	Style string `yaml:"style"` // chroma style name, or "none"
}

// MarkdownConfig defines markdown rendering options.
type MarkdownConfig struct {
	Unsafe bool `yaml:"unsafe"` // pass raw HTML through
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultConfig returns the configuration of the regex example collection.
func DefaultConfig() *Config {
	page := regexpage.DefaultPage()
	repo := regexpage.DefaultRepository()
	labels := regexpage.DefaultLabels()

	return &Config{
		Input:  InputConfig{Markdown: DefaultMarkdown, Style: DefaultStyle},
		Output: OutputConfig{Dir: DefaultOutputDir, File: DefaultOutput},
		Page: PageConfig{
			Lang:        page.Lang,
			Title:       page.Title,
			Description: page.Description,
			Keywords:    page.Keywords,
			Favicon:     page.Favicon,
			Scripts:     page.Scripts,
			NoCorner:    page.NoCorner,
		},
		Repository: RepositoryConfig{
			URL:          repo.URL,
			Assignee:     repo.Assignee,
			ReportLabels: repo.ReportLabels,
			ShareLabels:  repo.ShareLabels,
		},
		Widget:    WidgetConfig{Suffix: regexpage.DefaultSuffix, Anchor: regexpage.DefaultAnchor},
		Labels:    LabelsConfig(*labels),
		Highlight: HighlightConfig{Style: regexpage.DefaultHighlightStyle},
	}
}

// applyDefaults fills every unset string or list with its default.
// Booleans default to false and need no filling.
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	setString(&c.Input.Markdown, d.Input.Markdown)
	setString(&c.Input.Style, d.Input.Style)
	setString(&c.Output.Dir, d.Output.Dir)
	setString(&c.Output.File, d.Output.File)

	setString(&c.Page.Lang, d.Page.Lang)
	setString(&c.Page.Title, d.Page.Title)
	setString(&c.Page.Description, d.Page.Description)
	setString(&c.Page.Keywords, d.Page.Keywords)
	if c.Page.Scripts == nil {
		c.Page.Scripts = d.Page.Scripts
	}

	if c.Repository.URL == "" {
		// A custom repository does not inherit the default assignee.
		c.Repository.URL = d.Repository.URL
		setString(&c.Repository.Assignee, d.Repository.Assignee)
	}
	if c.Repository.ReportLabels == nil {
		c.Repository.ReportLabels = d.Repository.ReportLabels
	}
	if c.Repository.ShareLabels == nil {
		c.Repository.ShareLabels = d.Repository.ShareLabels
	}

	setString(&c.Widget.Suffix, d.Widget.Suffix)
	setString(&c.Widget.Anchor, d.Widget.Anchor)
	setString(&c.Highlight.Style, d.Highlight.Style)

	l := &c.Labels
	setString(&l.Copy, d.Labels.Copy)
	setString(&l.Copied, d.Labels.Copied)
	setString(&l.Report, d.Labels.Report)
	setString(&l.Share, d.Labels.Share)
	setString(&l.Top, d.Labels.Top)
	setString(&l.Placeholder, d.Labels.Placeholder)
	setString(&l.Pass, d.Labels.Pass)
	setString(&l.Fail, d.Labels.Fail)
	setString(&l.ReportTitle, d.Labels.ReportTitle)
	setString(&l.ReportBody, d.Labels.ReportBody)
	setString(&l.ShareTitle, d.Labels.ShareTitle)
	setString(&l.ShareBody, d.Labels.ShareBody)
}

func setString(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

// Validate checks field lengths and the shape of the output location.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
// Semantic checks on page, repository and labels belong to the library
// types and run when the builder is created.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		limit int
	}{
		{"input.markdown", c.Input.Markdown, MaxPathLength},
		{"input.style", c.Input.Style, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"output.file", c.Output.File, MaxFileNameLength},
		{"page.lang", c.Page.Lang, MaxLangLength},
		{"page.title", c.Page.Title, MaxTitleLength},
		{"page.description", c.Page.Description, MaxDescriptionLen},
		{"page.keywords", c.Page.Keywords, MaxKeywordsLength},
		{"page.favicon", c.Page.Favicon, MaxURLLength},
		{"repository.url", c.Repository.URL, MaxURLLength},
		{"repository.assignee", c.Repository.Assignee, MaxNameLength},
		{"widget.suffix", c.Widget.Suffix, MaxIdentifierLength},
		{"widget.anchor", c.Widget.Anchor, MaxIdentifierLength},
		{"highlight.style", c.Highlight.Style, MaxIdentifierLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
		{"labels.copy", c.Labels.Copy, MaxLabelLength},
		{"labels.copied", c.Labels.Copied, MaxLabelLength},
		{"labels.report", c.Labels.Report, MaxLabelLength},
		{"labels.share", c.Labels.Share, MaxLabelLength},
		{"labels.top", c.Labels.Top, MaxLabelLength},
		{"labels.placeholder", c.Labels.Placeholder, MaxLabelLength},
		{"labels.pass", c.Labels.Pass, MaxLabelLength},
		{"labels.fail", c.Labels.Fail, MaxLabelLength},
		{"labels.reportTitle", c.Labels.ReportTitle, MaxLabelLength},
		{"labels.reportBody", c.Labels.ReportBody, MaxLabelLength},
		{"labels.shareTitle", c.Labels.ShareTitle, MaxLabelLength},
		{"labels.shareBody", c.Labels.ShareBody, MaxLabelLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.limit); err != nil {
			return err
		}
	}

	for i, s := range c.Page.Scripts {
		if err := validateFieldLength(fmt.Sprintf("page.scripts[%d]", i), s, MaxURLLength); err != nil {
			return err
		}
	}
	for i, l := range c.Repository.ReportLabels {
		if err := validateFieldLength(fmt.Sprintf("repository.reportLabels[%d]", i), l, MaxNameLength); err != nil {
			return err
		}
	}
	for i, l := range c.Repository.ShareLabels {
		if err := validateFieldLength(fmt.Sprintf("repository.shareLabels[%d]", i), l, MaxNameLength); err != nil {
			return err
		}
	}

	if f := c.Output.File; f != "" && (f != filepath.Base(f) || f == "." || f == "..") {
		return fmt.Errorf("%w: output.file: %q must be a file name, not a path", ErrInvalidField, f)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Unset fields take their defaults. Returns error if the file is not found
// (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if strings.TrimSpace(nameOrPath) == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, configPath, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files a config name resolves to, in lookup order:
// .yaml before .yml, current directory before <user config dir>/go-regexpage/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, appDirName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file among SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
