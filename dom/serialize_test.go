package dom

import "testing"

func TestSerializeVoidElement(t *testing.T) {
	br := NewElement("br")
	got := Serialize(br)
	want := "<br>"
	if got != want {
		t.Errorf("Serialize(br) = %q, want %q", got, want)
	}
}

func TestSerializeElementWithAttributesAndText(t *testing.T) {
	div := NewElement("div")
	div.SetAttr("class", "main")
	div.AppendChild(NewText("hi & bye"))

	got := Serialize(div)
	want := `<div class=main>hi &amp; bye</div>`
	if got != want {
		t.Errorf("Serialize(div) = %q, want %q", got, want)
	}
}

func TestFormatAttrValueQuoting(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"safe unquoted", "container", "container"},
		{"needs double quotes", "a b", `"a b"`},
		{"double quote in value uses single quotes", `say "hi"`, `'say "hi"'`},
		{"both quote kinds falls back to double", `say "hi" it's me`, `"say &quot;hi&quot; it's me"`},
		{"empty value is quoted", "", `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatAttrValue(tt.value)
			if got != tt.want {
				t.Errorf("formatAttrValue(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestSerializeComment(t *testing.T) {
	c := NewComment(" hi ")
	got := Serialize(c)
	want := "<!-- hi -->"
	if got != want {
		t.Errorf("Serialize(comment) = %q, want %q", got, want)
	}
}

func TestDumpTreeBasicDocument(t *testing.T) {
	doc := NewDocument()
	doc.Doctype = NewDocumentType("html", "", "")
	html := NewElement("html")
	head := NewElement("head")
	body := NewElement("body")
	body.AppendChild(NewText("hi"))
	html.AppendChild(head)
	html.AppendChild(body)
	doc.AppendChild(html)

	got := DumpTree(doc)
	want := "| <!DOCTYPE html>\n" +
		"| <html>\n" +
		"|   <head>\n" +
		"|   <body>\n" +
		"|     \"hi\""
	if got != want {
		t.Errorf("DumpTree() mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpTreeSortsAttributesAndNamespacesForeignTags(t *testing.T) {
	doc := NewDocument()
	html := NewElement("html")
	body := NewElement("body")
	svg := NewElementNS("svg", NamespaceSVG)
	svg.SetAttr("viewBox", "0 0 1 1")
	svg.SetAttr("class", "icon")
	body.AppendChild(svg)
	html.AppendChild(body)
	doc.AppendChild(html)

	got := DumpTree(doc)
	want := "| <html>\n" +
		"|   <body>\n" +
		"|     <svg svg>\n" +
		"|       class=\"icon\"\n" +
		"|       viewBox=\"0 0 1 1\""
	if got != want {
		t.Errorf("DumpTree() mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpTreeTemplateContent(t *testing.T) {
	doc := NewDocument()
	html := NewElement("html")
	body := NewElement("body")
	tmpl := NewElement("template")
	tmpl.TemplateContent = NewDocumentFragment()
	tmpl.TemplateContent.AppendChild(NewText("hidden"))
	body.AppendChild(tmpl)
	html.AppendChild(body)
	doc.AppendChild(html)

	got := DumpTree(doc)
	want := "| <html>\n" +
		"|   <body>\n" +
		"|     <template>\n" +
		"|       content\n" +
		"|         \"hidden\""
	if got != want {
		t.Errorf("DumpTree() mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpAttrNameXlink(t *testing.T) {
	a := Attribute{Namespace: "http://www.w3.org/1999/xlink", Name: "href"}
	got := dumpAttrName(a)
	want := "xlink href"
	if got != want {
		t.Errorf("dumpAttrName() = %q, want %q", got, want)
	}
}
