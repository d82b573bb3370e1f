// Package dom provides the Document Object Model tree structure produced by
// package html's tokenizer and tree builder.
//
// Spec references:
// - DOM Level 2 Core: https://www.w3.org/TR/DOM-Level-2-Core/
// - HTML5 §3.2.1 Nodes: https://html.spec.whatwg.org/multipage/dom.html#nodes
package dom

// Namespace tags. A Node's namespace selects how its local name and
// attributes are serialized and how foreign-content rules apply to it.
const (
	NamespaceHTML   = ""
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

// QuirksMode records the document compatibility mode selected from the
// doctype (HTML5 §3.2.5.4.2 "using the rules for quirks mode").
type QuirksMode int

const (
	NoQuirks QuirksMode = iota
	Quirks
	LimitedQuirks
)

// Node is the tagged-variant interface every tree member implements.
// Concrete types are *Document, *DocumentFragment, *DocumentType, *Element,
// *Text, *Comment.
type Node interface {
	// Parent returns the node's parent, or nil for a root.
	Parent() Node
	// Children returns the node's ordered child list. Callers must not
	// mutate the returned slice.
	Children() []Node
	// AppendChild appends child to the node's child list, reassigning
	// child's parent. Panics if the node cannot contain children.
	AppendChild(child Node)
	// InsertBefore inserts newChild immediately before ref in the node's
	// child list. If ref is nil, behaves like AppendChild.
	InsertBefore(newChild, ref Node)
	// RemoveChild detaches child from the node's child list.
	RemoveChild(child Node)

	setParent(Node)
}

// container is embedded by every Node implementation that can hold children.
type container struct {
	parent   Node
	children []Node
}

func (c *container) Parent() Node     { return c.parent }
func (c *container) Children() []Node { return c.children }
func (c *container) setParent(p Node) { c.parent = p }

func (c *container) appendChild(self Node, child Node) {
	if p := child.Parent(); p != nil {
		p.RemoveChild(child)
	}
	child.setParent(self)
	c.children = append(c.children, child)
}

func (c *container) insertBefore(self Node, newChild, ref Node) {
	if p := newChild.Parent(); p != nil {
		p.RemoveChild(newChild)
	}
	newChild.setParent(self)
	if ref == nil {
		c.children = append(c.children, newChild)
		return
	}
	for i, n := range c.children {
		if n == ref {
			c.children = append(c.children, nil)
			copy(c.children[i+1:], c.children[i:])
			c.children[i] = newChild
			return
		}
	}
	c.children = append(c.children, newChild)
}

func (c *container) removeChild(child Node) {
	for i, n := range c.children {
		if n == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			child.setParent(nil)
			return
		}
	}
}

// Document is the root of a parsed document.
type Document struct {
	container
	Doctype    *DocumentType
	QuirksMode QuirksMode
	// IframeSrcdoc records whether this document was parsed with the
	// "iframe srcdoc" flag set, which suppresses quirks mode for
	// non-conforming doctypes (spec.md §6 Input).
	IframeSrcdoc bool
}

func NewDocument() *Document {
	return &Document{}
}

func (d *Document) AppendChild(child Node)          { d.appendChild(d, child) }
func (d *Document) InsertBefore(newChild, ref Node) { d.insertBefore(d, newChild, ref) }
func (d *Document) RemoveChild(child Node)          { d.removeChild(child) }

// Html returns the document's root <html> element, if present.
func (d *Document) Html() *Element {
	for _, c := range d.children {
		if el, ok := c.(*Element); ok && el.TagName == "html" {
			return el
		}
	}
	return nil
}

// Head returns the <head> element under the document's <html> root, if present.
func (d *Document) Head() *Element {
	return childElementByName(d.Html(), "head")
}

// Body returns the <body> or <frameset> element under the document's <html>
// root, if present.
func (d *Document) Body() *Element {
	html := d.Html()
	if html == nil {
		return nil
	}
	for _, c := range html.children {
		if el, ok := c.(*Element); ok && (el.TagName == "body" || el.TagName == "frameset") {
			return el
		}
	}
	return nil
}

func childElementByName(parent *Element, name string) *Element {
	if parent == nil {
		return nil
	}
	for _, c := range parent.children {
		if el, ok := c.(*Element); ok && el.TagName == name {
			return el
		}
	}
	return nil
}

// DocumentFragment is the insertion target for a template element's content,
// and the synthetic container a fragment parse returns children under.
type DocumentFragment struct {
	container
}

func NewDocumentFragment() *DocumentFragment {
	return &DocumentFragment{}
}

func (f *DocumentFragment) AppendChild(child Node)          { f.appendChild(f, child) }
func (f *DocumentFragment) InsertBefore(newChild, ref Node) { f.insertBefore(f, newChild, ref) }
func (f *DocumentFragment) RemoveChild(child Node)          { f.removeChild(child) }

// DocumentType represents a DOCTYPE declaration.
type DocumentType struct {
	container
	Name     string
	PublicID string
	SystemID string
}

func NewDocumentType(name, publicID, systemID string) *DocumentType {
	return &DocumentType{Name: name, PublicID: publicID, SystemID: systemID}
}

func (d *DocumentType) AppendChild(Node)        { panic("dom: DocumentType cannot have children") }
func (d *DocumentType) InsertBefore(Node, Node) { panic("dom: DocumentType cannot have children") }
func (d *DocumentType) RemoveChild(Node)        {}

// Element is an HTML, SVG, or MathML element.
type Element struct {
	container
	// TagName is always ASCII-lowercased for HTML-namespace elements;
	// original case is preserved for SVG/MathML tag-name adjustments
	// (spec.md §4.4.6).
	TagName    string
	Namespace  string
	Attributes *Attributes
	// TemplateContent is non-nil only for <template> elements in the HTML
	// namespace; it receives children in place of the template element
	// itself (spec.md §3, §4.4.2).
	TemplateContent *DocumentFragment
}

func NewElement(tagName string) *Element {
	return NewElementNS(tagName, NamespaceHTML)
}

func NewElementNS(tagName, namespace string) *Element {
	return &Element{
		TagName:    tagName,
		Namespace:  namespace,
		Attributes: NewAttributes(),
	}
}

func (e *Element) AppendChild(child Node)          { e.appendChild(e, child) }
func (e *Element) InsertBefore(newChild, ref Node) { e.insertBefore(e, newChild, ref) }
func (e *Element) RemoveChild(child Node)          { e.removeChild(child) }

// Attr returns the value of a plain (no-namespace) attribute, and whether it
// was present.
func (e *Element) Attr(name string) (string, bool) {
	return e.Attributes.Get(name)
}

// HasAttr reports whether a plain attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attributes.Get(name)
	return ok
}

// SetAttr sets a plain (no-namespace) attribute.
func (e *Element) SetAttr(name, value string) {
	e.Attributes.Set(name, value)
}

// Text is a run of character data.
type Text struct {
	container
	Data string
}

func NewText(data string) *Text { return &Text{Data: data} }

func (t *Text) AppendChild(Node)        { panic("dom: Text cannot have children") }
func (t *Text) InsertBefore(Node, Node) { panic("dom: Text cannot have children") }
func (t *Text) RemoveChild(Node)        {}

// Comment is an HTML comment.
type Comment struct {
	container
	Data string
}

func NewComment(data string) *Comment { return &Comment{Data: data} }

func (c *Comment) AppendChild(Node)        { panic("dom: Comment cannot have children") }
func (c *Comment) InsertBefore(Node, Node) { panic("dom: Comment cannot have children") }
func (c *Comment) RemoveChild(Node)        {}
