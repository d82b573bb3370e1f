package html

import "github.com/gohtml5/parser/dom"

// finish runs the post-parse fixups that happen once the token stream is
// exhausted and the tree is otherwise complete (spec.md §4.4.10).
func (tb *TreeBuilder) finish() {
	populateSelectedContent(tb.document)
}

// populateSelectedContent implements the implementation-specific
// <selectedcontent> post-pass flagged in spec.md §9 "Open questions": for
// every <select> in the tree, the first <selectedcontent> descendant (if any) is
// populated with a deep clone of the currently selected <option>'s children
// (or the first <option>'s, if none carries the "selected" attribute).
// This is not part of the WHATWG tree-construction algorithm proper; it
// mirrors a behavior the source carries regardless.
func populateSelectedContent(root dom.Node) {
	walkElements(root, func(e *dom.Element) {
		if e.TagName != "select" || e.Namespace != dom.NamespaceHTML {
			return
		}
		populateSelectForSelect(e)
	})
}

func populateSelectForSelect(sel *dom.Element) {
	var target *dom.Element
	var selected *dom.Element
	var first *dom.Element

	var scan func(dom.Node)
	scan = func(n dom.Node) {
		for _, c := range n.Children() {
			el, ok := c.(*dom.Element)
			if !ok {
				continue
			}
			switch {
			case el.TagName == "selectedcontent" && el.Namespace == dom.NamespaceHTML && target == nil:
				target = el
			case el.TagName == "option" && el.Namespace == dom.NamespaceHTML:
				if first == nil {
					first = el
				}
				if el.HasAttr("selected") && selected == nil {
					selected = el
				}
				continue // options don't nest further option/selectedcontent content worth scanning
			case el.TagName == "select" && el.Namespace == dom.NamespaceHTML:
				continue // a nested select owns its own options
			}
			scan(el)
		}
	}
	scan(sel)

	if target == nil {
		return
	}
	chosen := selected
	if chosen == nil {
		chosen = first
	}
	if chosen == nil {
		return
	}

	for _, c := range append([]dom.Node{}, target.Children()...) {
		target.RemoveChild(c)
	}
	for _, c := range chosen.Children() {
		target.AppendChild(cloneNodeDeep(c))
	}
}

// walkElements visits every *dom.Element in the subtree rooted at n,
// parents before children.
func walkElements(n dom.Node, fn func(*dom.Element)) {
	if el, ok := n.(*dom.Element); ok {
		fn(el)
	}
	for _, c := range n.Children() {
		walkElements(c, fn)
	}
}

// cloneNodeDeep deep-copies a node and its descendants, detached from any
// tree (spec.md §4.4.10's <selectedcontent> post-pass).
func cloneNodeDeep(n dom.Node) dom.Node {
	switch v := n.(type) {
	case *dom.Element:
		clone := dom.NewElementNS(v.TagName, v.Namespace)
		for _, a := range v.Attributes.All() {
			clone.Attributes.SetNS(a.Namespace, a.Name, a.Value)
		}
		for _, c := range v.Children() {
			clone.AppendChild(cloneNodeDeep(c))
		}
		return clone
	case *dom.Text:
		return dom.NewText(v.Data)
	case *dom.Comment:
		return dom.NewComment(v.Data)
	default:
		return dom.NewComment("")
	}
}
