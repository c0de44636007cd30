// Package regexpage builds an interactive regex example page from a markdown
// document.
//
// # Quick Start
//
// Create a builder and build markdown into a complete HTML page:
//
//	b, err := regexpage.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.Build(ctx, regexpage.Input{
//	    Markdown: "## Digits\n\n```lang-regex\n^\\d+$\n```\n",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("web/index.html", []byte(result.HTML), 0o644)
//
// result.Examples lists the regex of every example block in document order.
//
// # Example Blocks
//
// A fenced code block whose language ends in "-regex" (```lang-regex,
// ```js-regex, ...) is an example. Its text, with the first newline removed,
// is the example's regex. Each example gains a toolbar above the code (a copy
// link and a link opening a prefilled issue) and a text input below it. The
// page script compiles the regex in the browser and marks the input as
// passing or failing as the reader types.
//
// # Build Pipeline
//
//  1. Markdown preprocessing (line ending normalization)
//  2. Markdown to HTML via Goldmark (GFM, chroma highlighting with classes)
//  3. Page chrome from the embedded template (style, scripts, corner ribbon)
//  4. Parse into an immutable tree and inject widgets
//  5. Serialize, optionally minified
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	b, err := regexpage.NewBuilder(
//	    regexpage.WithRepository(&regexpage.Repository{
//	        URL:          "https://github.com/owner/regex-notes",
//	        ReportLabels: []string{"bug"},
//	        ShareLabels:  []string{"new"},
//	    }),
//	    regexpage.WithLabels(&labels),
//	    regexpage.WithMinify(true),
//	)
//
// # Browser Check
//
// Checker opens a built page in headless Chrome (go-rod) and reports every
// example whose regex does not compile. Set ROD_BROWSER_BIN to use a custom
// Chrome binary and ROD_NO_SANDBOX=1 in containers.
package regexpage
