package pipeline

import (
	"strings"

	"github.com/alnah/go-regexpage/internal/hast"
)

// languageClassPrefix is the class goldmark puts on <code> for fenced blocks.
const languageClassPrefix = "language-"

// ExtractRegex returns the regex source held by a code block: the depth-first
// concatenation of its descendant text values with the first newline removed.
// Only the first newline goes; the client script strips the rest before
// compiling, so multi-line patterns still work in the browser.
func ExtractRegex(block *hast.Element) string {
	return strings.Replace(hast.TextContent(block), "\n", "", 1)
}

// IsExample reports whether el is a <pre> whose joined class list ends with
// suffix.
func IsExample(el *hast.Element, suffix string) bool {
	if el.Tag != "pre" || len(el.Class) == 0 || suffix == "" {
		return false
	}
	return strings.HasSuffix(el.ClassName(""), suffix)
}

// LiftCodeLanguage copies the language-* classes ending in suffix from a
// <pre>'s first <code> child onto the <pre> when the <pre> has no classes of
// its own. Goldmark only annotates the inner <code>; after lifting, every
// example block has its language on the <pre> where the rewriter looks for
// it. Other blocks are returned as goldmark produced them.
func LiftCodeLanguage(root hast.Node, suffix string) hast.Node {
	if suffix == "" {
		return root
	}
	return hast.Transform(root, func(el *hast.Element) *hast.Element {
		if el.Tag != "pre" || len(el.Class) > 0 {
			return el
		}
		code := hast.FirstElement(el, "code")
		if code == nil {
			return el
		}
		var langs []string
		for _, c := range code.Class {
			if strings.HasPrefix(c, languageClassPrefix) && strings.HasSuffix(c, suffix) {
				langs = append(langs, c)
			}
		}
		if len(langs) == 0 {
			return el
		}
		return el.WithClass(langs...)
	})
}
