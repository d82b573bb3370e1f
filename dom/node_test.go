package dom

import "testing"

func TestNewElement(t *testing.T) {
	elem := NewElement("div")
	if elem.TagName != "div" {
		t.Errorf("Expected tag name 'div', got %v", elem.TagName)
	}
	if elem.Namespace != NamespaceHTML {
		t.Errorf("Expected HTML namespace, got %q", elem.Namespace)
	}
	if elem.Attributes == nil {
		t.Error("Expected attributes to be initialized")
	}
	if elem.Children() != nil {
		t.Error("Expected no children on a fresh element")
	}
}

func TestNewElementNS(t *testing.T) {
	elem := NewElementNS("circle", NamespaceSVG)
	if elem.Namespace != NamespaceSVG {
		t.Errorf("Expected SVG namespace, got %q", elem.Namespace)
	}
}

func TestNewText(t *testing.T) {
	text := NewText("Hello, World!")
	if text.Data != "Hello, World!" {
		t.Errorf("Expected text 'Hello, World!', got %v", text.Data)
	}
}

func TestAppendChild(t *testing.T) {
	parent := NewElement("div")
	child := NewElement("p")

	parent.AppendChild(child)

	if len(parent.Children()) != 1 {
		t.Errorf("Expected 1 child, got %d", len(parent.Children()))
	}
	if parent.Children()[0] != Node(child) {
		t.Error("Child not properly appended")
	}
	if child.Parent() != Node(parent) {
		t.Error("Child's parent not set correctly")
	}
}

func TestAppendChildReparents(t *testing.T) {
	first := NewElement("div")
	second := NewElement("section")
	child := NewText("x")

	first.AppendChild(child)
	second.AppendChild(child)

	if len(first.Children()) != 0 {
		t.Error("Expected child to be removed from its old parent")
	}
	if len(second.Children()) != 1 {
		t.Error("Expected child to be appended to the new parent")
	}
	if child.Parent() != Node(second) {
		t.Error("Child's parent not updated correctly")
	}
}

func TestInsertBefore(t *testing.T) {
	parent := NewElement("ul")
	a := NewElement("li")
	b := NewElement("li")
	c := NewElement("li")

	parent.AppendChild(a)
	parent.AppendChild(c)
	parent.InsertBefore(b, c)

	got := parent.Children()
	if len(got) != 3 || got[0] != Node(a) || got[1] != Node(b) || got[2] != Node(c) {
		t.Errorf("Expected [a b c], got %v", got)
	}
}

func TestInsertBeforeNilRefAppends(t *testing.T) {
	parent := NewElement("ul")
	a := NewElement("li")
	b := NewElement("li")

	parent.AppendChild(a)
	parent.InsertBefore(b, nil)

	got := parent.Children()
	if len(got) != 2 || got[1] != Node(b) {
		t.Errorf("Expected b appended last, got %v", got)
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewElement("div")
	child := NewElement("p")
	parent.AppendChild(child)

	parent.RemoveChild(child)

	if len(parent.Children()) != 0 {
		t.Errorf("Expected 0 children after removal, got %d", len(parent.Children()))
	}
	if child.Parent() != nil {
		t.Error("Expected removed child's parent to be cleared")
	}
}

func TestAttributes(t *testing.T) {
	elem := NewElement("div")
	elem.SetAttr("id", "main")
	elem.SetAttr("class", "container")

	if v, _ := elem.Attr("id"); v != "main" {
		t.Errorf("Expected id 'main', got %v", v)
	}
	if v, _ := elem.Attr("class"); v != "container" {
		t.Errorf("Expected class 'container', got %v", v)
	}
	if _, ok := elem.Attr("nonexistent"); ok {
		t.Error("Expected ok=false for nonexistent attribute")
	}
}

func TestAttrOverwritePreservesOrder(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("id", "one")
	attrs.Set("class", "two")
	attrs.Set("id", "three")

	all := attrs.All()
	if len(all) != 2 {
		t.Fatalf("Expected 2 attributes, got %d", len(all))
	}
	if all[0].Name != "id" || all[0].Value != "three" {
		t.Errorf("Expected overwritten id to keep its original position, got %+v", all[0])
	}
}

func TestNamespacedAttributesAreDistinct(t *testing.T) {
	attrs := NewAttributes()
	attrs.Set("href", "plain")
	attrs.SetNS("http://www.w3.org/1999/xlink", "href", "xlink")

	plain, _ := attrs.Get("href")
	xlink, _ := attrs.GetNS("http://www.w3.org/1999/xlink", "href")
	if plain != "plain" || xlink != "xlink" {
		t.Errorf("Expected distinct values per namespace, got plain=%q xlink=%q", plain, xlink)
	}
	if attrs.Len() != 2 {
		t.Errorf("Expected 2 distinct attributes, got %d", attrs.Len())
	}
}

func TestDocumentAccessors(t *testing.T) {
	doc := NewDocument()
	html := NewElement("html")
	head := NewElement("head")
	body := NewElement("body")
	html.AppendChild(head)
	html.AppendChild(body)
	doc.AppendChild(html)

	if doc.Html() != html {
		t.Error("Expected Html() to return the <html> element")
	}
	if doc.Head() != head {
		t.Error("Expected Head() to return the <head> element")
	}
	if doc.Body() != body {
		t.Error("Expected Body() to return the <body> element")
	}
}

func TestDocumentBodyFindsFrameset(t *testing.T) {
	doc := NewDocument()
	html := NewElement("html")
	frameset := NewElement("frameset")
	html.AppendChild(frameset)
	doc.AppendChild(html)

	if doc.Body() != frameset {
		t.Error("Expected Body() to fall back to a <frameset> element")
	}
}

func TestTemplateContentIsSeparateFromChildren(t *testing.T) {
	tmpl := NewElement("template")
	tmpl.TemplateContent = NewDocumentFragment()
	inner := NewText("hidden")
	tmpl.TemplateContent.AppendChild(inner)

	if len(tmpl.Children()) != 0 {
		t.Error("Expected template element itself to hold no direct children")
	}
	if len(tmpl.TemplateContent.Children()) != 1 {
		t.Error("Expected template content fragment to hold the appended node")
	}
}

func TestLeafNodesPanicOnAppendChild(t *testing.T) {
	tests := []struct {
		name string
		node Node
	}{
		{"text", NewText("x")},
		{"comment", NewComment("x")},
		{"doctype", NewDocumentType("html", "", "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Expected AppendChild on %s to panic", tt.name)
				}
			}()
			tt.node.AppendChild(NewText("y"))
		})
	}
}
