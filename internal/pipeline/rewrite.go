package pipeline

import (
	"github.com/alnah/go-regexpage/internal/hast"
)

// Rewriter injects page links into <body> and widgets around every regex
// example block.
type Rewriter struct {
	Suffix  string // class suffix marking an example block, e.g. "-regex"
	Widgets Widgets
}

// RewriteResult holds the rewritten tree and the regex of every example, in
// document order.
type RewriteResult struct {
	Root     hast.Node
	Examples []string
}

// Rewrite returns a rewritten copy of root. The input tree is not modified.
//
// Running Rewrite twice on its own output prepends the page links again;
// the build runs it exactly once.
func (r *Rewriter) Rewrite(root hast.Node) RewriteResult {
	var examples []string
	out := hast.Transform(root, func(el *hast.Element) *hast.Element {
		switch {
		case el.Tag == "body":
			return r.rewriteBody(el)
		case IsExample(el, r.Suffix):
			code := ExtractRegex(el)
			examples = append(examples, code)
			return r.rewriteExample(el, code)
		}
		return el
	})
	return RewriteResult{Root: out, Examples: examples}
}

// rewriteBody sets the anchor id and prepends the page links.
func (r *Rewriter) rewriteBody(body *hast.Element) *hast.Element {
	links := r.Widgets.PageLinks()
	children := make([]hast.Node, 0, len(links)+len(body.Children))
	children = append(children, links...)
	children = append(children, body.Children...)
	return body.WithAttr("id", r.Widgets.Anchor).WithChildren(children...)
}

// rewriteExample wraps the block's children as [toolbar, children..., input].
func (r *Rewriter) rewriteExample(pre *hast.Element, code string) *hast.Element {
	children := make([]hast.Node, 0, len(pre.Children)+2)
	children = append(children, r.Widgets.Toolbar(code))
	children = append(children, pre.Children...)
	children = append(children, r.Widgets.Input(code))
	return pre.WithChildren(children...)
}
