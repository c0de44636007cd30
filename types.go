package regexpage

import (
	"fmt"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alnah/go-regexpage/internal/fileutil"
)

// Example detection and page anchor defaults.
const (
	DefaultSuffix         = "-regex"
	DefaultAnchor         = "totop"
	DefaultHighlightStyle = "github"
)

// Field length limits.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
	MaxKeywordsLength    = 500
	MaxLabelLength       = 200
	MaxURLLength         = 2048
)

// DefaultClipboardScript is the copy-to-clipboard helper loaded by default.
const DefaultClipboardScript = "https://unpkg.com/@uiw/copy-to-clipboard/dist/copy-to-clipboard.umd.js"

// Input contains the document to build.
type Input struct {
	Markdown string // markdown source, may be empty
	CSS      string // stylesheet inlined verbatim; empty selects the built-in style
}

// Result contains the build output.
type Result struct {
	HTML     string   // complete HTML document
	Examples []string // regex of every example block, in document order
}

// Page configures the document head and chrome.
type Page struct {
	Lang        string
	Title       string
	Description string
	Keywords    string
	Favicon     string
	Scripts     []string // external scripts loaded before the client script
	NoCorner    bool     // omit the repository corner ribbon
}

// DefaultPage returns the page settings of the regex example collection.
func DefaultPage() *Page {
	return &Page{
		Lang:        "en",
		Title:       "RegExp Example 正则实例大全",
		Description: "正则实例大全，正则表达式实例搜集，通过实例来学习正则表达式。",
		Keywords:    "RegExp,example",
		Scripts:     []string{DefaultClipboardScript},
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *Page) Validate() error {
	if p == nil {
		return nil
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", ErrInvalidTitle)
	}
	if err := checkLength("title", p.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := checkLength("description", p.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := checkLength("keywords", p.Keywords, MaxKeywordsLength); err != nil {
		return err
	}
	if err := checkLength("favicon", p.Favicon, MaxURLLength); err != nil {
		return err
	}
	for _, s := range p.Scripts {
		if !fileutil.IsURL(s) {
			return fmt.Errorf("%w: %q (must be http or https)", ErrInvalidScriptURL, s)
		}
		if err := checkLength("script URL", s, MaxURLLength); err != nil {
			return err
		}
	}
	return nil
}

// Repository configures where report and share links open new issues.
type Repository struct {
	URL          string   // e.g. https://github.com/owner/repo
	Assignee     string   // optional
	ReportLabels []string // labels of a "fix this example" issue
	ShareLabels  []string // labels of a "new example" issue
}

// DefaultRepository returns the repository of the regex example collection.
func DefaultRepository() *Repository {
	return &Repository{
		URL:          "https://github.com/jaywcjlove/regexp-example",
		Assignee:     "jaywcjlove",
		ReportLabels: []string{"bug", "enhancement"},
		ShareLabels:  []string{"new", "enhancement"},
	}
}

// Validate checks that repository settings are valid.
// Returns nil if r is nil (nil means use defaults).
func (r *Repository) Validate() error {
	if r == nil {
		return nil
	}
	if len(r.URL) > MaxURLLength {
		return fmt.Errorf("%w: repository URL: %d characters (max %d)", ErrFieldTooLong, len(r.URL), MaxURLLength)
	}
	u, err := url.Parse(r.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q (must be an absolute http or https URL)", ErrInvalidRepositoryURL, r.URL)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return fmt.Errorf("%w: %q (must not carry a query or fragment)", ErrInvalidRepositoryURL, r.URL)
	}
	for _, l := range append(append([]string(nil), r.ReportLabels...), r.ShareLabels...) {
		if strings.TrimSpace(l) == "" || strings.Contains(l, ",") {
			return fmt.Errorf("%w: %q (must be non-empty and without commas)", ErrInvalidLabel, l)
		}
	}
	return nil
}

// Labels holds every literal string shown by the page widgets and the client
// script.
type Labels struct {
	Copy        string // copy link
	Copied      string // shown after copying
	Report      string // report-issue link
	Share       string // share-example link
	Top         string // back-to-top link
	Placeholder string // example input placeholder
	Pass        string // verdict when the input matches
	Fail        string // verdict when it does not
	ReportTitle string
	ReportBody  string // "{regex}" is replaced by the example's regex
	ShareTitle  string
	ShareBody   string
}

// DefaultLabels returns the labels of the regex example collection.
func DefaultLabels() *Labels {
	return &Labels{
		Copy:        "点击复制",
		Copied:      "复制成功!",
		Report:      "🐞修改正则",
		Share:       "分享例子",
		Top:         "Top",
		Placeholder: "请输入下方【E.g】字符串验证实例",
		Pass:        "通过",
		Fail:        "×不通过",
		ReportTitle: "修改实例：xxx",
		ReportBody:  "❌正则：~~`{regex}`~~",
		ShareTitle:  "新增实例：xxx",
		ShareBody:   "<!--新增正则实例说明-->",
	}
}

// Validate checks that labels are valid.
// Returns nil if l is nil (nil means use defaults).
func (l *Labels) Validate() error {
	if l == nil {
		return nil
	}
	fields := []struct {
		name     string
		val      string
		required bool
	}{
		{"copy", l.Copy, true},
		{"copied", l.Copied, true},
		{"report", l.Report, true},
		{"share", l.Share, true},
		{"top", l.Top, true},
		{"pass", l.Pass, true},
		{"fail", l.Fail, true},
		{"placeholder", l.Placeholder, false},
		{"report title", l.ReportTitle, false},
		{"share title", l.ShareTitle, false},
	}
	for _, f := range fields {
		if f.required && strings.TrimSpace(f.val) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyLabel, f.name)
		}
		if err := checkLength(f.name, f.val, MaxLabelLength); err != nil {
			return err
		}
	}
	return nil
}

// checkLength counts characters, not bytes.
func checkLength(name, val string, limit int) error {
	if n := utf8.RuneCountInString(val); n > limit {
		return fmt.Errorf("%w: %s: %d characters (max %d)", ErrFieldTooLong, name, n, limit)
	}
	return nil
}

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	page           Page
	repo           Repository
	labels         Labels
	suffix         string
	anchor         string
	highlightStyle string
	minify         bool
	unsafeHTML     bool
	timeout        time.Duration
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// copyResetMillis is how long the copy confirmation stays visible.
const copyResetMillis = 2000

// WithTimeout sets the build timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("regexpage: WithTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.cfg.timeout = d
	}
}

// WithPage replaces the page settings. A nil page keeps the defaults.
func WithPage(p *Page) Option {
	return func(b *Builder) {
		if p != nil {
			b.cfg.page = *p
		}
	}
}

// WithRepository replaces the issue tracker settings. A nil repository keeps
// the defaults.
func WithRepository(r *Repository) Option {
	return func(b *Builder) {
		if r != nil {
			b.cfg.repo = *r
		}
	}
}

// WithLabels replaces the widget labels. A nil value keeps the defaults.
func WithLabels(l *Labels) Option {
	return func(b *Builder) {
		if l != nil {
			b.cfg.labels = *l
		}
	}
}

// WithSuffix sets the class suffix that marks a code block as a regex
// example. The default is "-regex", matching fences such as ```lang-regex.
func WithSuffix(suffix string) Option {
	return func(b *Builder) {
		b.cfg.suffix = suffix
	}
}

// WithAnchor sets the id given to <body> and targeted by the back-to-top link.
func WithAnchor(anchor string) Option {
	return func(b *Builder) {
		b.cfg.anchor = anchor
	}
}

// WithHighlightStyle sets the chroma style for non-example code blocks.
// An empty name disables highlighting.
func WithHighlightStyle(name string) Option {
	return func(b *Builder) {
		b.cfg.highlightStyle = name
	}
}

// WithMinify enables minification of the final document.
func WithMinify(enabled bool) Option {
	return func(b *Builder) {
		b.cfg.minify = enabled
	}
}

// WithUnsafeHTML passes raw HTML found in the markdown through to the page.
func WithUnsafeHTML(enabled bool) Option {
	return func(b *Builder) {
		b.cfg.unsafeHTML = enabled
	}
}

// WithAssetLoader sets a custom asset loader for the style, client script and
// page template.
func WithAssetLoader(loader AssetLoader) Option {
	return func(b *Builder) {
		b.assetLoader = loader
	}
}
