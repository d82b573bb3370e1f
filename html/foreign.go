package html

import (
	"strings"

	"github.com/gohtml5/parser/dom"
)

// adjustedCurrentNode implements spec.md §4.4.1's "adjusted current node":
// the context element during a fragment parse when the stack holds only
// the synthetic root, otherwise the current node.
func (tb *TreeBuilder) adjustedCurrentNode() *dom.Element {
	if tb.fragment && len(tb.openElements) == 1 {
		return tb.fragmentContext
	}
	return tb.currentNode()
}

// shouldUseForeignContent implements the tree construction dispatcher
// (spec.md §4.4.1): tokens are processed under the foreign content rules
// unless one of the listed HTML-rules exceptions applies.
func (tb *TreeBuilder) shouldUseForeignContent(tok *Token) bool {
	if len(tb.openElements) == 0 {
		return false
	}
	node := tb.adjustedCurrentNode()
	if node == nil || node.Namespace == dom.NamespaceHTML {
		return false
	}
	if mathMLTextIntegrationPoints[nsName{node.Namespace, node.TagName}] {
		if tok.Type == CharacterToken {
			return false
		}
		if tok.Type == StartTagToken && tok.Data != "mglyph" && tok.Data != "malignmark" {
			return false
		}
	}
	if node.Namespace == dom.NamespaceMathML && node.TagName == "annotation-xml" &&
		tok.Type == StartTagToken && tok.Data == "svg" {
		return false
	}
	if htmlIntegrationPoints[nsName{node.Namespace, node.TagName}] &&
		(tok.Type == StartTagToken || tok.Type == CharacterToken) {
		return false
	}
	if tok.Type == EOFToken {
		return false
	}
	return true
}

// processForeignContent implements spec.md §4.4.6, "Parsing tokens in
// foreign content", grounded on the adjustment tables in constants.go.
func (tb *TreeBuilder) processForeignContent(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if strings.ContainsRune(tok.Data, 0) {
			tb.parseError(ErrUnexpectedNullCharacter, tok)
			tb.insertText(strings.ReplaceAll(tok.Data, "\x00", "�"))
			return
		}
		tb.insertText(tok.Data)
		if !isAllWhitespace(tok.Data) {
			tb.framesetOK = false
		}
		return
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrUnexpectedDoctype, tok)
		return
	case StartTagToken:
		tb.foreignStartTag(tok)
		return
	case EndTagToken:
		tb.foreignEndTag(tok)
		return
	}
}

func (tb *TreeBuilder) foreignStartTag(tok *Token) {
	if foreignBreakoutElements[tok.Data] || isFontBreakout(tok) {
		tb.parseError(ErrUnexpectedStartTag, tok)
		for len(tb.openElements) > 0 {
			cur := tb.currentNode()
			if cur.Namespace == dom.NamespaceHTML ||
				htmlIntegrationPoints[nsName{cur.Namespace, cur.TagName}] ||
				mathMLTextIntegrationPoints[nsName{cur.Namespace, cur.TagName}] {
				break
			}
			tb.popCurrent()
		}
		tb.forceHTMLMode = true
		return
	}

	node := tb.adjustedCurrentNode()
	ns := dom.NamespaceHTML
	if node != nil {
		ns = node.Namespace
	}
	name := tok.Data
	var attrs []dom.Attribute
	switch ns {
	case dom.NamespaceSVG:
		if adj, ok := svgTagNameAdjustments[name]; ok {
			name = adj
		}
		attrs = adjustForeignAttrs(prepareSVGAttrs(tok.Attrs))
	case dom.NamespaceMathML:
		attrs = adjustForeignAttrs(prepareMathMLAttrs(tok.Attrs))
	default:
		attrs = adjustForeignAttrs(plainAttrs(tok.Attrs))
	}
	tb.insertForeignElement(name, ns, attrs, tok.SelfClosing)
	if tok.SelfClosing {
		if ns == dom.NamespaceSVG && strings.EqualFold(name, "script") {
			// scripting is disabled throughout; nothing further to do.
		}
	}
}

// isFontBreakout reports the one non-tag-name-keyed breakout case: a <font>
// start tag carrying color, face, or size (spec.md §4.4.6).
func isFontBreakout(tok *Token) bool {
	if tok.Data != "font" {
		return false
	}
	_, hasColor := tok.Attr("color")
	_, hasFace := tok.Attr("face")
	_, hasSize := tok.Attr("size")
	return hasColor || hasFace || hasSize
}

func (tb *TreeBuilder) foreignEndTag(tok *Token) {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		node := tb.openElements[i]
		if strings.EqualFold(node.TagName, tok.Data) {
			tb.popUntilIndex(i)
			return
		}
		if i == 0 {
			return
		}
		if node.Namespace == dom.NamespaceHTML {
			tb.forceHTMLMode = true
			return
		}
	}
}

func (tb *TreeBuilder) popUntilIndex(i int) {
	for len(tb.openElements) > i {
		tb.popCurrent()
	}
}

func plainAttrs(attrs []tagAttr) []dom.Attribute {
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, dom.Attribute{Name: a.Name, Value: a.Value})
	}
	return out
}

// prepareSVGAttrs restores camelCase SVG attribute names before foreign
// namespace adjustment (spec.md §4.4.6).
func prepareSVGAttrs(attrs []tagAttr) []dom.Attribute {
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		name := a.Name
		if adj, ok := svgAttributeAdjustments[name]; ok {
			name = adj
		}
		out = append(out, dom.Attribute{Name: name, Value: a.Value})
	}
	return out
}

// prepareMathMLAttrs restores the definitionURL casing exception before
// foreign namespace adjustment (spec.md §4.4.6).
func prepareMathMLAttrs(attrs []tagAttr) []dom.Attribute {
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		name := a.Name
		if adj, ok := mathMLAttributeAdjustments[name]; ok {
			name = adj
		}
		out = append(out, dom.Attribute{Name: name, Value: a.Value})
	}
	return out
}

// adjustForeignAttrs applies the xlink/xml/xmlns namespace adjustments
// (spec.md §4.4.6), leaving every other attribute as a plain, no-namespace
// attribute on the element.
func adjustForeignAttrs(attrs []dom.Attribute) []dom.Attribute {
	out := make([]dom.Attribute, 0, len(attrs))
	for _, a := range attrs {
		if adj, ok := foreignAttributeAdjustments[a.Name]; ok {
			out = append(out, dom.Attribute{Namespace: adj.Namespace, Name: adj.LocalName, Value: a.Value})
			continue
		}
		out = append(out, a)
	}
	return out
}
