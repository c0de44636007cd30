package regexpage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-regexpage/internal/assets"
	"github.com/alnah/go-regexpage/internal/hast"
	"github.com/alnah/go-regexpage/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ assets.AssetLoader            = AssetLoader(nil)
)

// Builder orchestrates the markdown-to-page pipeline.
// Create with NewBuilder() and call Build() for each document. A Builder holds
// no per-build state and is safe for concurrent use.
type Builder struct {
	cfg           builderConfig
	assetLoader   AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	pageRenderer  *pipeline.PageRenderer
	rewriter      *pipeline.Rewriter
	defaultStyle  string // built-in stylesheet, used when Input.CSS is empty
	highlightCSS  string // chroma classes for the configured style
	script        string // rendered client script
}

// NewBuilder creates a Builder with default configuration.
// Use options to customize behavior (e.g., WithRepository, WithLabels, WithMinify).
// Returns error if a setting is invalid or an asset cannot be loaded or parsed.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			page:           *DefaultPage(),
			repo:           *DefaultRepository(),
			labels:         *DefaultLabels(),
			suffix:         DefaultSuffix,
			anchor:         DefaultAnchor,
			highlightStyle: DefaultHighlightStyle,
			timeout:        defaultTimeout,
		},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(b)
	}

	if err := b.validate(); err != nil {
		return nil, err
	}

	if b.assetLoader == nil {
		loader, err := NewAssetLoader("")
		if err != nil {
			return nil, err
		}
		b.assetLoader = loader
	}

	// Create converter if not injected (e.g., by tests)
	if b.htmlConverter == nil {
		b.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.GoldmarkOptions{
			Highlight: b.cfg.highlightStyle != "",
			Unsafe:    b.cfg.unsafeHTML,
		})
	}

	if err := b.loadAssets(); err != nil {
		return nil, err
	}

	b.rewriter = &pipeline.Rewriter{
		Suffix:  b.cfg.suffix,
		Widgets: b.widgets(),
	}

	return b, nil
}

// validate checks option values before any asset is loaded.
func (b *Builder) validate() error {
	if err := b.cfg.page.Validate(); err != nil {
		return err
	}
	if err := b.cfg.repo.Validate(); err != nil {
		return err
	}
	if err := b.cfg.labels.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(b.cfg.suffix) == "" {
		return fmt.Errorf("%w: suffix cannot be empty", ErrInvalidSuffix)
	}
	if b.cfg.anchor == "" || strings.ContainsAny(b.cfg.anchor, " \t\n\r\f#") {
		return fmt.Errorf("%w: %q (must be non-empty, without whitespace or '#')", ErrInvalidAnchor, b.cfg.anchor)
	}
	return nil
}

// loadAssets loads and prepares the page template, client script, built-in
// style and highlight stylesheet.
func (b *Builder) loadAssets() error {
	tmpl, err := b.assetLoader.LoadTemplate(DefaultTemplate)
	if err != nil {
		return fmt.Errorf("loading page template: %w", err)
	}
	b.pageRenderer, err = pipeline.NewPageRenderer(tmpl)
	if err != nil {
		return fmt.Errorf("initializing page renderer: %w", err)
	}

	scriptTmpl, err := b.assetLoader.LoadScript(DefaultScript)
	if err != nil {
		return fmt.Errorf("loading client script: %w", err)
	}
	scriptRenderer, err := pipeline.NewScriptRenderer(scriptTmpl)
	if err != nil {
		return fmt.Errorf("initializing script renderer: %w", err)
	}
	b.script, err = scriptRenderer.RenderScript(&pipeline.ScriptData{
		Pass:        b.cfg.labels.Pass,
		Fail:        b.cfg.labels.Fail,
		Copy:        b.cfg.labels.Copy,
		Copied:      b.cfg.labels.Copied,
		ResetMillis: copyResetMillis,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	b.defaultStyle, err = b.assetLoader.LoadStyle(DefaultStyle)
	if err != nil {
		return fmt.Errorf("loading style %q: %w", DefaultStyle, err)
	}

	b.highlightCSS, err = pipeline.HighlightCSS(b.cfg.highlightStyle)
	if err != nil {
		if errors.Is(err, pipeline.ErrUnknownHighlightStyle) {
			return fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, b.cfg.highlightStyle)
		}
		return err
	}
	return nil
}

// widgets maps the public settings onto the injected widget builders.
func (b *Builder) widgets() pipeline.Widgets {
	l := b.cfg.labels
	return pipeline.Widgets{
		Text: pipeline.WidgetText{
			Copy:        l.Copy,
			Report:      l.Report,
			Share:       l.Share,
			Top:         l.Top,
			Placeholder: l.Placeholder,
			ReportTitle: l.ReportTitle,
			ReportBody:  l.ReportBody,
			ShareTitle:  l.ShareTitle,
			ShareBody:   l.ShareBody,
		},
		Issues: pipeline.IssueTracker{
			URL:          b.cfg.repo.URL,
			Assignee:     b.cfg.repo.Assignee,
			ReportLabels: b.cfg.repo.ReportLabels,
			ShareLabels:  b.cfg.repo.ShareLabels,
		},
		Anchor: b.cfg.anchor,
	}
}

// Build runs the full pipeline and returns the page and its examples.
// The context is used for cancellation; the builder timeout is applied on top.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, b.cfg.timeout)
	defer cancel()

	// Preprocess markdown
	mdContent := b.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to an HTML fragment
	fragment, err := b.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrHTMLConversion, err)
	}

	// Wrap the fragment in the page chrome
	page, err := b.pageRenderer.RenderPage(ctx, b.pageData(input, fragment))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	// Parse, normalize and rewrite the document tree
	root, err := hast.ParseString(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	rewritten := b.rewriter.Rewrite(pipeline.LiftCodeLanguage(root, b.cfg.suffix))

	out, err := hast.RenderString(rewritten.Root)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageRender, err)
	}

	if b.cfg.minify {
		out, err = pipeline.MinifyHTML(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMinify, err)
		}
	}

	return &Result{HTML: out, Examples: rewritten.Examples}, nil
}

// pageData assembles the template data for one build.
// Order matters: highlight classes first, document stylesheet last.
func (b *Builder) pageData(input Input, body string) *pipeline.PageData {
	css := input.CSS
	if css == "" {
		css = b.defaultStyle
	}
	if b.highlightCSS != "" {
		css = b.highlightCSS + "\n" + css
	}

	p := b.cfg.page
	data := &pipeline.PageData{
		Lang:        p.Lang,
		Title:       p.Title,
		Description: p.Description,
		Keywords:    p.Keywords,
		Favicon:     p.Favicon,
		Style:       css,
		Scripts:     p.Scripts,
		Script:      b.script,
		Body:        body,
	}
	if !p.NoCorner {
		data.CornerURL = b.cfg.repo.URL
	}
	return data
}

// HighlightStyles returns the names accepted by WithHighlightStyle, sorted.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}
