package pipeline

import (
	"net/url"
	"strings"

	"github.com/alnah/go-regexpage/internal/hast"
)

// RegexPlaceholder is replaced by the example's regex in WidgetText.ReportBody.
const RegexPlaceholder = "{regex}"

// WidgetText holds the literal strings shown by injected widgets.
type WidgetText struct {
	Copy        string // copy link label
	Report      string // report link label
	Share       string // share-example link label
	Top         string // back-to-top link label
	Placeholder string // input placeholder
	ReportTitle string
	ReportBody  string // may contain RegexPlaceholder
	ShareTitle  string
	ShareBody   string
}

// IssueTracker describes where report and share links point.
type IssueTracker struct {
	URL          string // repository URL, e.g. https://github.com/owner/repo
	Assignee     string
	ReportLabels []string
	ShareLabels  []string
}

// NewIssueURL returns the tracker's new-issue URL with the given labels,
// title and body encoded in the query.
func (t IssueTracker) NewIssueURL(labels []string, title, body string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(t.URL, "/"), ".git") + "/issues/new"

	q := url.Values{}
	if len(labels) > 0 {
		q.Set("labels", strings.Join(labels, ","))
	}
	if t.Assignee != "" {
		q.Set("assignees", t.Assignee)
	}
	if body != "" {
		q.Set("body", body)
	}
	if title != "" {
		q.Set("title", title)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

// Widgets builds the nodes injected into the page.
type Widgets struct {
	Text   WidgetText
	Issues IssueTracker
	Anchor string // id given to <body>, target of the back-to-top link
}

// Toolbar returns the div.issue bar placed before an example's code: a copy
// link carrying the regex in data-code and a link opening a prefilled issue.
func (w Widgets) Toolbar(code string) *hast.Element {
	body := strings.ReplaceAll(w.Text.ReportBody, RegexPlaceholder, code)
	return hast.NewElement("div", hast.A("class", "issue"),
		hast.NewElement("a", hast.A(
			"class", "copy",
			"data-code", code,
			"onclick", "copied(this)",
			"href", "javascript: this;",
		), hast.NewText(w.Text.Copy)),
		hast.NewElement("a", hast.A(
			"target", "__blank",
			"href", w.Issues.NewIssueURL(w.Issues.ReportLabels, w.Text.ReportTitle, body),
		), hast.NewText(w.Text.Report)),
	)
}

// Input returns the div.regex widget placed after an example's code: a text
// field carrying the regex in data-code and an empty span.info the client
// script fills with the verdict.
func (w Widgets) Input(code string) *hast.Element {
	return hast.NewElement("div", hast.A("class", "regex"),
		hast.NewElement("input", hast.A(
			"type", "text",
			"value", "",
			"placeholder", w.Text.Placeholder,
			"data-code", code,
		)),
		hast.NewElement("span", hast.A("class", "info")),
	)
}

// PageLinks returns the share-example and back-to-top links prepended to
// <body>.
func (w Widgets) PageLinks() []hast.Node {
	return []hast.Node{
		hast.NewElement("a", hast.A(
			"class", "btn create",
			"target", "__blank",
			"href", w.Issues.NewIssueURL(w.Issues.ShareLabels, w.Text.ShareTitle, w.Text.ShareBody),
		), hast.NewText(w.Text.Share)),
		hast.NewElement("a", hast.A(
			"class", "btn totop",
			"href", "#"+w.Anchor,
		), hast.NewText(w.Text.Top)),
	}
}
