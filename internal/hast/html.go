package hast

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parse parses a complete HTML document into a Root.
func Parse(r io.Reader) (*Root, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	root, ok := FromHTML(doc).(*Root)
	if !ok {
		return nil, fmt.Errorf("parsing HTML: unexpected top-level node")
	}
	return root, nil
}

// ParseString parses a complete HTML document held in a string.
func ParseString(s string) (*Root, error) {
	return Parse(strings.NewReader(s))
}

// FromHTML converts an x/net/html node and its descendants. Error and raw
// nodes are dropped; a nil result is returned for them.
func FromHTML(n *html.Node) Node {
	switch n.Type {
	case html.DocumentNode:
		return &Root{Children: fromChildren(n)}
	case html.ElementNode:
		el := &Element{Tag: n.Data, Namespace: n.Namespace}
		for _, a := range n.Attr {
			if a.Namespace == "" && a.Key == "class" {
				el.Class = append(el.Class, strings.Fields(a.Val)...)
				continue
			}
			el.Attrs = append(el.Attrs, Attr{Namespace: a.Namespace, Key: a.Key, Val: a.Val})
		}
		el.Children = fromChildren(n)
		return el
	case html.TextNode:
		return &Text{Value: n.Data}
	case html.CommentNode:
		return &Comment{Value: n.Data}
	case html.DoctypeNode:
		return &Doctype{Name: n.Data}
	}
	return nil
}

func fromChildren(n *html.Node) []Node {
	var out []Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if cn := FromHTML(c); cn != nil {
			out = append(out, cn)
		}
	}
	return out
}

// ToHTML converts a node back into an x/net/html tree.
func ToHTML(n Node) *html.Node {
	switch v := n.(type) {
	case *Root:
		doc := &html.Node{Type: html.DocumentNode}
		appendChildren(doc, v.Children)
		return doc
	case *Element:
		hn := &html.Node{
			Type:      html.ElementNode,
			Data:      v.Tag,
			Namespace: v.Namespace,
		}
		if v.Namespace == "" {
			hn.DataAtom = atom.Lookup([]byte(v.Tag))
		}
		if len(v.Class) > 0 {
			hn.Attr = append(hn.Attr, html.Attribute{Key: "class", Val: strings.Join(v.Class, " ")})
		}
		for _, a := range v.Attrs {
			hn.Attr = append(hn.Attr, html.Attribute{Namespace: a.Namespace, Key: a.Key, Val: a.Val})
		}
		appendChildren(hn, v.Children)
		return hn
	case *Text:
		return &html.Node{Type: html.TextNode, Data: v.Value}
	case *Comment:
		return &html.Node{Type: html.CommentNode, Data: v.Value}
	case *Doctype:
		return &html.Node{Type: html.DoctypeNode, Data: v.Name}
	}
	return nil
}

func appendChildren(parent *html.Node, children []Node) {
	for _, c := range children {
		if hn := ToHTML(c); hn != nil {
			parent.AppendChild(hn)
		}
	}
}

// Render serializes n as HTML to w.
func Render(w io.Writer, n Node) error {
	hn := ToHTML(n)
	if hn == nil {
		return nil
	}
	if err := html.Render(w, hn); err != nil {
		return fmt.Errorf("rendering HTML: %w", err)
	}
	return nil
}

// RenderString serializes n as an HTML string.
func RenderString(n Node) (string, error) {
	var b strings.Builder
	if err := Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}
