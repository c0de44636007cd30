package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
)

// Sentinel errors for page rendering.
var (
	ErrPageRender             = errors.New("page template rendering failed")
	ErrScriptRender           = errors.New("client script rendering failed")
	ErrUnknownHighlightStyle  = errors.New("unknown highlight style")
	ErrHighlightCSSGeneration = errors.New("highlight CSS generation failed")
)

// PageData holds everything the page template needs.
type PageData struct {
	Lang        string
	Title       string
	Description string
	Keywords    string
	Favicon     string
	Style       string   // raw CSS, inlined in <style>
	Scripts     []string // external script URLs, loaded before Script
	Script      string   // inline client script
	CornerURL   string   // repository URL for the corner ribbon, empty to omit
	Body        string   // converted markdown fragment
}

// templatePage is what the template actually sees: trusted content types
// for the blocks that must not be escaped.
type templatePage struct {
	PageData
	Style  template.CSS
	Script template.JS
	Body   template.HTML
}

// PageRenderer renders the page chrome around the converted markdown.
type PageRenderer struct {
	tmpl *template.Template
}

// NewPageRenderer creates a PageRenderer from template content.
// Returns error if the template cannot be parsed.
func NewPageRenderer(tmplContent string) (*PageRenderer, error) {
	tmpl, err := template.New("page").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &PageRenderer{tmpl: tmpl}, nil
}

// RenderPage renders a complete HTML document.
// Style and script content are sanitized so they cannot close their element.
func (p *PageRenderer) RenderPage(ctx context.Context, data *PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// #nosec G203 -- style and script are sanitized, body is goldmark output
	view := templatePage{
		PageData: *data,
		Style:    template.CSS(escapeClosingTags(data.Style)),
		Script:   template.JS(escapeClosingTags(data.Script)),
		Body:     template.HTML(data.Body),
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPageRender, err)
	}
	return buf.String(), nil
}

// escapeClosingTags escapes sequences that could break out of a <style> or
// <script> block.
func escapeClosingTags(s string) string {
	return strings.ReplaceAll(s, "</", `<\/`)
}

// ScriptData holds the strings baked into the client script.
type ScriptData struct {
	Pass        string // verdict when the input matches
	Fail        string // verdict when it does not
	Copy        string // copy link label, restored after the confirmation
	Copied      string // confirmation shown after copying
	ResetMillis int    // how long the confirmation stays
}

// ScriptRenderer renders the inline client script.
type ScriptRenderer struct {
	tmpl *texttemplate.Template
}

// NewScriptRenderer creates a ScriptRenderer from template content.
// Strings are inserted with the js escaper, so templates quote them.
func NewScriptRenderer(tmplContent string) (*ScriptRenderer, error) {
	tmpl, err := texttemplate.New("script").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("parsing script template: %w", err)
	}
	return &ScriptRenderer{tmpl: tmpl}, nil
}

// RenderScript renders the client script.
func (s *ScriptRenderer) RenderScript(data *ScriptData) (string, error) {
	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrScriptRender, err)
	}
	return buf.String(), nil
}

// HighlightCSS returns the stylesheet for chroma's CSS classes in the named
// style. An empty name returns an empty stylesheet.
func HighlightCSS(name string) (string, error) {
	if name == "" {
		return "", nil
	}
	style, ok := lookupStyle(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownHighlightStyle, name)
	}

	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, style); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHighlightCSSGeneration, err)
	}
	return buf.String(), nil
}

// HighlightStyles lists the available highlight style names.
func HighlightStyles() []string {
	return styles.Names()
}

func lookupStyle(name string) (*chroma.Style, bool) {
	for _, n := range styles.Names() {
		if n == name {
			return styles.Get(name), true
		}
	}
	return nil, false
}
