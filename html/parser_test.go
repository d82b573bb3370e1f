package html

import (
	"strings"
	"testing"

	"github.com/gohtml5/parser/dom"
)

func mustParse(t *testing.T, input string) *dom.Document {
	t.Helper()
	res, err := ParseString(input, Options{})
	if err != nil {
		t.Fatalf("ParseString(%q): %v", input, err)
	}
	return res.Document
}

func elementChild(n dom.Node, i int) *dom.Element {
	c := n.Children()[i]
	return c.(*dom.Element)
}

func textChild(n dom.Node, i int) *dom.Text {
	c := n.Children()[i]
	return c.(*dom.Text)
}

func TestParseSimpleElement(t *testing.T) {
	doc := mustParse(t, "<div>Hello</div>")
	body := doc.Body()
	if body == nil {
		t.Fatal("expected a body")
	}
	if len(body.Children()) != 1 {
		t.Fatalf("expected 1 child of body, got %d", len(body.Children()))
	}
	div := elementChild(body, 0)
	if div.TagName != "div" {
		t.Errorf("expected div, got %q", div.TagName)
	}
	text := textChild(div, 0)
	if text.Data != "Hello" {
		t.Errorf("expected %q, got %q", "Hello", text.Data)
	}
}

func TestParseImpliedHTMLHeadBodySkeleton(t *testing.T) {
	doc := mustParse(t, "")
	if doc.Html() == nil {
		t.Fatal("expected an implicit <html>")
	}
	if doc.Head() == nil {
		t.Fatal("expected an implicit <head>")
	}
	if doc.Body() == nil {
		t.Fatal("expected an implicit <body>")
	}
	if len(doc.Body().Children()) != 0 {
		t.Fatalf("expected an empty body, got %d children", len(doc.Body().Children()))
	}
}

func TestParseNestedElements(t *testing.T) {
	doc := mustParse(t, "<html><body><div><p>Hello</p></div></body></html>")
	body := doc.Body()
	div := elementChild(body, 0)
	if div.TagName != "div" {
		t.Fatalf("expected div, got %q", div.TagName)
	}
	p := elementChild(div, 0)
	if p.TagName != "p" {
		t.Fatalf("expected p, got %q", p.TagName)
	}
}

func TestParseAttributes(t *testing.T) {
	doc := mustParse(t, `<div id="main" class="container active">`)
	div := elementChild(doc.Body(), 0)
	if v, _ := div.Attr("id"); v != "main" {
		t.Errorf("expected id=main, got %q", v)
	}
	if v, _ := div.Attr("class"); v != "container active" {
		t.Errorf("expected class='container active', got %q", v)
	}
}

func TestParseDuplicateAttributeKeepsFirst(t *testing.T) {
	doc := mustParse(t, `<div id="first" id="second">`)
	div := elementChild(doc.Body(), 0)
	if v, _ := div.Attr("id"); v != "first" {
		t.Errorf("expected duplicate attribute to keep the first value, got %q", v)
	}
}

func TestParseVoidElement(t *testing.T) {
	doc := mustParse(t, "<div><img src='test.jpg'><p>Text</p></div>")
	div := elementChild(doc.Body(), 0)
	if len(div.Children()) != 2 {
		t.Fatalf("expected 2 children, got %d", len(div.Children()))
	}
	img := elementChild(div, 0)
	if img.TagName != "img" {
		t.Errorf("expected img, got %q", img.TagName)
	}
	if len(img.Children()) != 0 {
		t.Errorf("expected img to have no children, got %d", len(img.Children()))
	}
	if v, _ := img.Attr("src"); v != "test.jpg" {
		t.Errorf("expected src=test.jpg, got %q", v)
	}
	p := elementChild(div, 1)
	if p.TagName != "p" {
		t.Errorf("expected p, got %q", p.TagName)
	}
}

func TestParseMixedContentCoalescesNoAdjacentText(t *testing.T) {
	doc := mustParse(t, "<p>Hello <strong>World</strong>!</p>")
	p := elementChild(doc.Body(), 0)
	if len(p.Children()) != 3 {
		t.Fatalf("expected 3 children, got %d", len(p.Children()))
	}
	if text := textChild(p, 0); text.Data != "Hello " {
		t.Errorf("expected 'Hello ', got %q", text.Data)
	}
	strong := elementChild(p, 1)
	if strong.TagName != "strong" || textChild(strong, 0).Data != "World" {
		t.Errorf("unexpected strong contents: %+v", strong)
	}
	if text := textChild(p, 2); text.Data != "!" {
		t.Errorf("expected '!', got %q", text.Data)
	}
}

// Scenario 1 from spec.md §8: adoption agency on </p> clones the inner <i>.
func TestAdoptionAgencyParagraphBoldItalic(t *testing.T) {
	doc := mustParse(t, "<p>a<b>b<i>c</p>d</i>e</b>")
	body := doc.Body()
	if len(body.Children()) != 3 {
		t.Fatalf("expected body>[p,i,b], got %d children: %s", len(body.Children()), dom.DumpTree(doc))
	}
	p := elementChild(body, 0)
	if p.TagName != "p" {
		t.Fatalf("expected p, got %q", p.TagName)
	}
	b := elementChild(p, 1)
	if b.TagName != "b" {
		t.Fatalf("expected nested b, got %q", b.TagName)
	}
	i := elementChild(b, 1)
	if i.TagName != "i" {
		t.Fatalf("expected nested i, got %q", i.TagName)
	}

	outerI := elementChild(body, 1)
	if outerI.TagName != "i" {
		t.Fatalf("expected a cloned i at body level, got %q", outerI.TagName)
	}
	if textChild(outerI, 0).Data != "d" {
		t.Fatalf("expected cloned i to contain 'd', got %q", dom.DumpTree(doc))
	}

	outerB := elementChild(body, 2)
	if outerB.TagName != "b" {
		t.Fatalf("expected a b at body level, got %q", outerB.TagName)
	}
}

// Scenario 2 from spec.md §8: </table> resets the mode to in body, so
// trailing text becomes a sibling of the table rather than foster-parented.
func TestTableFollowedByTrailingText(t *testing.T) {
	doc := mustParse(t, "<table><tr><td>x</td></tr></table>foo")
	body := doc.Body()
	if len(body.Children()) != 2 {
		t.Fatalf("expected table + text, got %d children: %s", len(body.Children()), dom.DumpTree(doc))
	}
	table := elementChild(body, 0)
	if table.TagName != "table" {
		t.Fatalf("expected table, got %q", table.TagName)
	}
	tbody := elementChild(table, 0)
	if tbody.TagName != "tbody" {
		t.Fatalf("expected implicit tbody, got %q", tbody.TagName)
	}
	tr := elementChild(tbody, 0)
	td := elementChild(tr, 0)
	if td.TagName != "td" || textChild(td, 0).Data != "x" {
		t.Fatalf("unexpected table contents: %s", dom.DumpTree(doc))
	}
	text := textChild(body, 1)
	if text.Data != "foo" {
		t.Fatalf("expected trailing text 'foo', got %q", text.Data)
	}
}

// Scenario 3 from spec.md §8: an SVG foreignObject is an HTML integration
// point, so <p> lands inside it rather than being escaped to HTML body.
func TestForeignObjectIsIntegrationPoint(t *testing.T) {
	doc := mustParse(t, `<!DOCTYPE html><html><head></head><body><svg><foreignObject><p>x</p></foreignObject></svg></body></html>`)
	body := doc.Body()
	svg := elementChild(body, 0)
	if svg.TagName != "svg" || svg.Namespace != dom.NamespaceSVG {
		t.Fatalf("expected svg element, got %+v", svg)
	}
	fo := elementChild(svg, 0)
	if fo.TagName != "foreignObject" || fo.Namespace != dom.NamespaceSVG {
		t.Fatalf("expected foreignObject, got %+v", fo)
	}
	p := elementChild(fo, 0)
	if p.TagName != "p" || p.Namespace != dom.NamespaceHTML {
		t.Fatalf("expected HTML p under foreignObject, got %+v", p)
	}
}

// Scenario 4 from spec.md §8: a second <a> inside the first triggers
// adoption agency, relocating a freshly-cloned <a> under the <div>.
func TestAdoptionAgencyNestedAnchor(t *testing.T) {
	doc := mustParse(t, "<a><div><a>x</a></div>")
	body := doc.Body()
	if len(body.Children()) != 1 {
		t.Fatalf("expected a single top-level a, got %d: %s", len(body.Children()), dom.DumpTree(doc))
	}
	outerA := elementChild(body, 0)
	if outerA.TagName != "a" {
		t.Fatalf("expected outer a, got %q", outerA.TagName)
	}
	div := elementChild(outerA, 0)
	if div.TagName != "div" {
		t.Fatalf("expected div under outer a, got %q", div.TagName)
	}
	innerA := elementChild(div, 0)
	if innerA.TagName != "a" || textChild(innerA, 0).Data != "x" {
		t.Fatalf("expected inner a containing 'x', got %s", dom.DumpTree(doc))
	}
}

// Scenario 5 from spec.md §8: text directly inside <table> before any
// cell is foster-parented out, and <td> triggers implicit tbody+tr.
func TestFosterParentingBeforeTable(t *testing.T) {
	doc := mustParse(t, "<table>A<td>B</td></table>")
	body := doc.Body()
	if text := textChild(body, 0); text.Data != "A" {
		t.Fatalf("expected foster-parented 'A' before the table, got %s", dom.DumpTree(doc))
	}
	table := elementChild(body, 1)
	tbody := elementChild(table, 0)
	tr := elementChild(tbody, 0)
	td := elementChild(tr, 0)
	if td.TagName != "td" || textChild(td, 0).Data != "B" {
		t.Fatalf("unexpected table contents: %s", dom.DumpTree(doc))
	}
}

func TestParseEmptyInputYieldsSkeletonNotFragment(t *testing.T) {
	doc := mustParse(t, "")
	if doc.Html() == nil || doc.Head() == nil || doc.Body() == nil {
		t.Fatalf("expected html>head,body skeleton, got %s", dom.DumpTree(doc))
	}
}

func TestParseFragmentTableContext(t *testing.T) {
	res, err := ParseFragment("<tr><td>x</td></tr>", "tbody", dom.NamespaceHTML, Options{})
	if err != nil {
		t.Fatalf("ParseFragment: %v", err)
	}
	if len(res.Nodes) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(res.Nodes))
	}
	tr := res.Nodes[0].(*dom.Element)
	if tr.TagName != "tr" {
		t.Fatalf("expected tr, got %q", tr.TagName)
	}
}

func TestParseStrictModeAbortsOnFirstError(t *testing.T) {
	_, err := ParseString("<div id=a id=b>", Options{Strict: true})
	if err == nil {
		t.Fatal("expected strict mode to abort on the duplicate-attribute error")
	}
	if !strings.Contains(err.Error(), "duplicate-attribute") {
		t.Errorf("expected duplicate-attribute in error, got %v", err)
	}
}

func TestParseDoctypeForcesQuirksMode(t *testing.T) {
	doc := mustParse(t, "<!DOCTYPE foo><html></html>")
	if doc.QuirksMode != dom.Quirks {
		t.Errorf("expected quirks mode, got %v", doc.QuirksMode)
	}
}

// spec.md §4.4.7: a literal <image> start tag is a parse error and is
// rewritten to <img> rather than creating an <image> element.
func TestImageStartTagRewritesToImg(t *testing.T) {
	doc := mustParse(t, `<image src="x.png">`)
	img := elementChild(doc.Body(), 0)
	if img.TagName != "img" {
		t.Fatalf("expected <image> to rewrite to img, got %q", img.TagName)
	}
	if v, _ := img.Attr("src"); v != "x.png" {
		t.Errorf("expected src=x.png to survive the rewrite, got %q", v)
	}
}

func TestParseErrorsAreDeterministic(t *testing.T) {
	input := `<div id=a id=b><span class=c class=d>`
	res1, _ := ParseString(input, Options{})
	res2, _ := ParseString(input, Options{})
	if len(res1.Errors) != len(res2.Errors) {
		t.Fatalf("expected identical error counts across runs, got %d vs %d", len(res1.Errors), len(res2.Errors))
	}
	for i := range res1.Errors {
		if res1.Errors[i].Code != res2.Errors[i].Code {
			t.Errorf("error %d differs across runs: %q vs %q", i, res1.Errors[i].Code, res2.Errors[i].Code)
		}
	}
	if len(res1.Errors) < 2 {
		t.Fatalf("expected at least 2 duplicate-attribute errors, got %d", len(res1.Errors))
	}
}
