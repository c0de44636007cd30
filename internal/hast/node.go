// Package hast models an HTML document as an immutable tree of tagged nodes.
//
// The tree is built from golang.org/x/net/html output (see FromHTML) and
// rendered back through the same package (see Render). Transforms never
// mutate their input: every helper that changes an element returns a copy.
// Class attributes are normalized into an ordered list at parse time so
// matching logic never has to care whether a class was written as one token
// or several.
package hast

import "strings"

// Kind identifies the variant held by a Node.
type Kind int

// Node kinds.
const (
	KindRoot Kind = iota
	KindElement
	KindText
	KindComment
	KindDoctype
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComment:
		return "comment"
	case KindDoctype:
		return "doctype"
	}
	return "unknown"
}

// Node is one of *Root, *Element, *Text, *Comment or *Doctype.
type Node interface {
	Kind() Kind
}

// Parent is implemented by nodes that carry children.
type Parent interface {
	Node
	Nodes() []Node
}

// Root is the document node.
type Root struct {
	Children []Node
}

// Element is an HTML element. Class holds the normalized class list; Attrs
// never contains a "class" entry.
type Element struct {
	Tag       string
	Namespace string
	Attrs     []Attr
	Class     []string
	Children  []Node
}

// Attr is a single non-class attribute.
type Attr struct {
	Namespace string
	Key       string
	Val       string
}

// Text is a literal text value.
type Text struct {
	Value string
}

// Comment is an HTML comment.
type Comment struct {
	Value string
}

// Doctype is a document type declaration.
type Doctype struct {
	Name string
}

func (*Root) Kind() Kind    { return KindRoot }
func (*Element) Kind() Kind { return KindElement }
func (*Text) Kind() Kind    { return KindText }
func (*Comment) Kind() Kind { return KindComment }
func (*Doctype) Kind() Kind { return KindDoctype }

// Nodes returns the root children.
func (r *Root) Nodes() []Node { return r.Children }

// Nodes returns the element children.
func (e *Element) Nodes() []Node { return e.Children }

// NewElement builds an element from a tag, attributes and children.
// A "class" key in attrs is split into the class list.
func NewElement(tag string, attrs []Attr, children ...Node) *Element {
	el := &Element{Tag: tag}
	for _, a := range attrs {
		if a.Namespace == "" && a.Key == "class" {
			el.Class = append(el.Class, strings.Fields(a.Val)...)
			continue
		}
		el.Attrs = append(el.Attrs, a)
	}
	if len(children) > 0 {
		el.Children = children
	}
	return el
}

// NewText returns a text node.
func NewText(value string) *Text {
	return &Text{Value: value}
}

// A builds an attribute list from key/value pairs. An odd trailing key is
// ignored.
func A(pairs ...string) []Attr {
	attrs := make([]Attr, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		attrs = append(attrs, Attr{Key: pairs[i], Val: pairs[i+1]})
	}
	return attrs
}

// Get returns the value of a non-class attribute.
func (e *Element) Get(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// ClassName returns the class list joined with sep.
func (e *Element) ClassName(sep string) string {
	return strings.Join(e.Class, sep)
}

// HasClass reports whether name is in the class list.
func (e *Element) HasClass(name string) bool {
	for _, c := range e.Class {
		if c == name {
			return true
		}
	}
	return false
}

// Clone returns a shallow copy: attribute, class and child slices are copied,
// child nodes are shared.
func (e *Element) Clone() *Element {
	out := &Element{Tag: e.Tag, Namespace: e.Namespace}
	if e.Attrs != nil {
		out.Attrs = append([]Attr(nil), e.Attrs...)
	}
	if e.Class != nil {
		out.Class = append([]string(nil), e.Class...)
	}
	if e.Children != nil {
		out.Children = append([]Node(nil), e.Children...)
	}
	return out
}

// WithAttr returns a copy of e with key set to val, replacing any existing
// value in place or appending otherwise.
func (e *Element) WithAttr(key, val string) *Element {
	out := e.Clone()
	for i, a := range out.Attrs {
		if a.Namespace == "" && a.Key == key {
			out.Attrs[i].Val = val
			return out
		}
	}
	out.Attrs = append(out.Attrs, Attr{Key: key, Val: val})
	return out
}

// WithClass returns a copy of e with the given class list.
func (e *Element) WithClass(class ...string) *Element {
	out := e.Clone()
	out.Class = append([]string(nil), class...)
	return out
}

// WithChildren returns a copy of e with the given children.
func (e *Element) WithChildren(children ...Node) *Element {
	out := e.Clone()
	out.Children = append([]Node(nil), children...)
	return out
}

// TextContent concatenates the values of all descendant text nodes in
// document order. Comments, doctypes and childless elements contribute
// nothing.
func TextContent(n Node) string {
	var b strings.Builder
	writeText(&b, n)
	return b.String()
}

func writeText(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Text:
		b.WriteString(v.Value)
	case Parent:
		for _, c := range v.Nodes() {
			writeText(b, c)
		}
	}
}

// FirstElement returns the first direct element child of p with the given
// tag, or nil.
func FirstElement(p Parent, tag string) *Element {
	for _, c := range p.Nodes() {
		if el, ok := c.(*Element); ok && el.Tag == tag {
			return el
		}
	}
	return nil
}

// Find returns every element in the tree, in document order, for which match
// returns true.
func Find(n Node, match func(*Element) bool) []*Element {
	var out []*Element
	var walk func(Node)
	walk = func(n Node) {
		if el, ok := n.(*Element); ok && match(el) {
			out = append(out, el)
		}
		if p, ok := n.(Parent); ok {
			for _, c := range p.Nodes() {
				walk(c)
			}
		}
	}
	walk(n)
	return out
}
