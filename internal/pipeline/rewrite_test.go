package pipeline

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/alnah/go-regexpage/internal/hast"
)

func testDocument(children ...hast.Node) *hast.Root {
	return &hast.Root{Children: []hast.Node{
		&hast.Doctype{Name: "html"},
		hast.NewElement("html", nil,
			hast.NewElement("head", nil),
			hast.NewElement("body", nil, children...),
		),
	}}
}

func exampleBlock(lang, code string) *hast.Element {
	return hast.NewElement("pre", hast.A("class", "language-"+lang),
		hast.NewElement("code", hast.A("class", "language-"+lang), hast.NewText(code)),
	)
}

func bodyOf(t *testing.T, root hast.Node) *hast.Element {
	t.Helper()
	bodies := hast.Find(root, func(el *hast.Element) bool { return el.Tag == "body" })
	if len(bodies) != 1 {
		t.Fatalf("found %d bodies, want 1", len(bodies))
	}
	return bodies[0]
}

func TestRewriter_ExampleBlock(t *testing.T) {
	t.Parallel()

	r := &Rewriter{Suffix: "-regex", Widgets: testWidgets()}
	code := exampleBlock("lang-regex", "a\nb\nc")
	doc := testDocument(code)

	res := r.Rewrite(doc)

	if diff := cmp.Diff([]string{"ab\nc"}, res.Examples); diff != "" {
		t.Errorf("examples mismatch (-want +got):\n%s", diff)
	}

	pres := hast.Find(res.Root, func(el *hast.Element) bool { return el.Tag == "pre" })
	if len(pres) != 1 {
		t.Fatalf("found %d pre, want 1", len(pres))
	}
	pre := pres[0]
	if len(pre.Children) != 3 {
		t.Fatalf("pre has %d children, want toolbar, code, input", len(pre.Children))
	}
	if el := pre.Children[0].(*hast.Element); !el.HasClass("issue") {
		t.Error("first child is not div.issue")
	}
	if pre.Children[1] != hast.Node(code.Children[0]) {
		t.Error("original code child not kept in place")
	}
	last := pre.Children[2].(*hast.Element)
	if !last.HasClass("regex") {
		t.Error("last child is not div.regex")
	}
	input := hast.FirstElement(last, "input")
	if v, _ := input.Get("data-code"); v != "ab\nc" {
		t.Errorf("input data-code = %q, want %q", v, "ab\nc")
	}
}

func TestRewriter_NonExampleUntouched(t *testing.T) {
	t.Parallel()

	r := &Rewriter{Suffix: "-regex", Widgets: testWidgets()}
	goBlock := exampleBlock("go", "package main\n")
	doc := testDocument(hast.NewElement("p", nil, hast.NewText("hi")), goBlock)

	res := r.Rewrite(doc)

	if len(res.Examples) != 0 {
		t.Errorf("examples = %v, want none", res.Examples)
	}
	body := bodyOf(t, res.Root)
	if body.Children[len(body.Children)-1] != hast.Node(goBlock) {
		t.Error("non-example pre should be shared unchanged")
	}
}

func TestRewriter_Body(t *testing.T) {
	t.Parallel()

	r := &Rewriter{Suffix: "-regex", Widgets: testWidgets()}
	para := hast.NewElement("p", nil, hast.NewText("x"))
	doc := testDocument(para)

	res := r.Rewrite(doc)
	body := bodyOf(t, res.Root)

	if id, _ := body.Get("id"); id != "totop" {
		t.Errorf("body id = %q, want totop", id)
	}
	if len(body.Children) != 3 {
		t.Fatalf("body has %d children, want 3", len(body.Children))
	}
	if el := body.Children[0].(*hast.Element); !el.HasClass("create") {
		t.Error("first body child is not the share link")
	}
	if el := body.Children[1].(*hast.Element); !el.HasClass("totop") {
		t.Error("second body child is not the back-to-top link")
	}
	if body.Children[2] != hast.Node(para) {
		t.Error("original body content should follow the links")
	}
}

func TestRewriter_ReplacesExistingBodyID(t *testing.T) {
	t.Parallel()

	r := &Rewriter{Suffix: "-regex", Widgets: testWidgets()}
	doc := &hast.Root{Children: []hast.Node{
		hast.NewElement("body", hast.A("id", "old", "lang", "en")),
	}}

	body := bodyOf(t, r.Rewrite(doc).Root)
	want := []hast.Attr{{Key: "id", Val: "totop"}, {Key: "lang", Val: "en"}}
	if diff := cmp.Diff(want, body.Attrs); diff != "" {
		t.Errorf("body attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriter_ExamplesInDocumentOrder(t *testing.T) {
	t.Parallel()

	r := &Rewriter{Suffix: "-regex", Widgets: testWidgets()}
	doc := testDocument(
		exampleBlock("lang-regex", "first\n"),
		hast.NewElement("div", nil, exampleBlock("js-regex", "second\n")),
		exampleBlock("lang-regex", "third\n"),
	)

	res := r.Rewrite(doc)
	if diff := cmp.Diff([]string{"first", "second", "third"}, res.Examples); diff != "" {
		t.Errorf("examples mismatch (-want +got):\n%s", diff)
	}
}

func TestRewriter_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	r := &Rewriter{Suffix: "-regex", Widgets: testWidgets()}
	doc := testDocument(exampleBlock("lang-regex", "x\n"))
	before, err := hast.RenderString(doc)
	if err != nil {
		t.Fatal(err)
	}

	r.Rewrite(doc)

	after, err := hast.RenderString(doc)
	if err != nil {
		t.Fatal(err)
	}
	if after != before {
		t.Errorf("input tree changed:\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestRewriter_NoBody(t *testing.T) {
	t.Parallel()

	r := &Rewriter{Suffix: "-regex", Widgets: testWidgets()}
	frag := &hast.Root{Children: []hast.Node{exampleBlock("lang-regex", "y\n")}}

	res := r.Rewrite(frag)
	if len(res.Examples) != 1 {
		t.Errorf("examples = %v, want one", res.Examples)
	}
	if len(hast.Find(res.Root, func(el *hast.Element) bool { return el.HasClass("totop") })) != 0 {
		t.Error("page links injected without a body")
	}
}
