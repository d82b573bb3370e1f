package dom

import (
	"sort"
	"strings"
)

// VoidElements is the HTML5 void element set (spec.md §6): these render
// without an end tag and can never have children.
var VoidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true,
	"br": true, "col": true, "embed": true, "frame": true, "hr": true,
	"img": true, "input": true, "keygen": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// Serialize renders a node and its descendants using the serialization
// contracts of spec.md §6, for consumption by an external pretty-printer.
// This is the HTML fragment serialization, not the html5lib test-tree dump
// (see DumpTree for that).
func Serialize(n Node) string {
	var sb strings.Builder
	serializeNode(&sb, n)
	return sb.String()
}

func serializeNode(sb *strings.Builder, n Node) {
	switch v := n.(type) {
	case *Element:
		serializeElement(sb, v)
	case *Text:
		sb.WriteString(escapeText(v.Data))
	case *Comment:
		sb.WriteString("<!--")
		sb.WriteString(v.Data)
		sb.WriteString("-->")
	case *DocumentType:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(v.Name)
		sb.WriteString(">")
	default:
		for _, c := range n.Children() {
			serializeNode(sb, c)
		}
	}
}

func serializeElement(sb *strings.Builder, e *Element) {
	sb.WriteByte('<')
	sb.WriteString(e.TagName)
	for _, attr := range e.Attributes.All() {
		sb.WriteByte(' ')
		sb.WriteString(attr.Name)
		sb.WriteByte('=')
		sb.WriteString(formatAttrValue(attr.Value))
	}
	sb.WriteByte('>')

	if VoidElements[e.TagName] && e.Namespace == NamespaceHTML {
		return
	}

	if e.TemplateContent != nil {
		for _, c := range e.TemplateContent.Children() {
			serializeNode(sb, c)
		}
	}
	for _, c := range e.children {
		serializeNode(sb, c)
	}

	sb.WriteString("</")
	sb.WriteString(e.TagName)
	sb.WriteByte('>')
}

// formatAttrValue applies the attribute-value quoting rule of spec.md §6:
// unquoted when safe, double-quoted by default, single-quoted only when the
// value contains a double quote but no single quote.
func formatAttrValue(v string) string {
	if isSafeUnquoted(v) {
		return v
	}
	hasDouble := strings.ContainsRune(v, '"')
	hasSingle := strings.ContainsRune(v, '\'')
	if hasDouble && !hasSingle {
		return "'" + escapeAttr(v, '\'') + "'"
	}
	return "\"" + escapeAttr(v, '"') + "\""
}

func isSafeUnquoted(v string) bool {
	if v == "" {
		return false
	}
	for _, r := range v {
		switch r {
		case ' ', '\t', '\n', '\f', '\r', '>', '"', '\'', '=', '<', '`':
			return false
		}
	}
	return true
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

func escapeAttr(s string, quote rune) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	if quote == '"' {
		s = strings.ReplaceAll(s, "\"", "&quot;")
	} else {
		s = strings.ReplaceAll(s, "'", "&#39;")
	}
	return s
}

// DumpTree renders a document using the html5lib canonical tree-construction
// test format (spec.md §6), e.g.:
//
//	| <html>
//	|   <head>
//	|   <body>
//	|     "text"
func DumpTree(doc *Document) string {
	var sb strings.Builder
	if doc.Doctype != nil {
		sb.WriteString(dumpDoctype(doc.Doctype))
		sb.WriteByte('\n')
	}
	sb.WriteString(DumpNodes(doc.Children()))
	return strings.TrimRight(sb.String(), "\n")
}

// DumpNodes renders a list of nodes (e.g. a fragment parse's result) using
// the html5lib canonical test format.
func DumpNodes(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		dumpNode(&sb, n, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func dumpDoctype(dt *DocumentType) string {
	if dt.Name == "" {
		return "| <!DOCTYPE >"
	}
	if dt.PublicID != "" || dt.SystemID != "" {
		return "| <!DOCTYPE " + dt.Name + " \"" + dt.PublicID + "\" \"" + dt.SystemID + "\">"
	}
	return "| <!DOCTYPE " + dt.Name + ">"
}

func dumpNode(sb *strings.Builder, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case *Element:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteByte('<')
		sb.WriteString(dumpTagName(v))
		sb.WriteString(">\n")

		attrs := v.Attributes.All()
		sort.Slice(attrs, func(i, j int) bool {
			return dumpAttrName(attrs[i]) < dumpAttrName(attrs[j])
		})
		for _, a := range attrs {
			sb.WriteString("| ")
			sb.WriteString(indent)
			sb.WriteString("  ")
			sb.WriteString(dumpAttrName(a))
			sb.WriteString("=\"")
			sb.WriteString(a.Value)
			sb.WriteString("\"\n")
		}

		if v.TemplateContent != nil {
			sb.WriteString("| ")
			sb.WriteString(strings.Repeat("  ", depth+1))
			sb.WriteString("content\n")
			for _, c := range v.TemplateContent.Children() {
				dumpNode(sb, c, depth+2)
			}
		}
		for _, c := range v.children {
			dumpNode(sb, c, depth+1)
		}
	case *Text:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteString("\"")
		sb.WriteString(v.Data)
		sb.WriteString("\"\n")
	case *Comment:
		sb.WriteString("| ")
		sb.WriteString(indent)
		sb.WriteString("<!-- ")
		sb.WriteString(v.Data)
		sb.WriteString(" -->\n")
	case *DocumentType:
		// Represented via Document.Doctype; nothing to do here.
	}
}

func dumpTagName(e *Element) string {
	switch e.Namespace {
	case NamespaceHTML:
		return e.TagName
	case NamespaceSVG:
		return "svg " + e.TagName
	case NamespaceMathML:
		return "math " + e.TagName
	default:
		return e.Namespace + " " + e.TagName
	}
}

func dumpAttrName(a Attribute) string {
	var designator string
	switch a.Namespace {
	case "":
		return a.Name
	case "http://www.w3.org/1999/xlink":
		designator = "xlink "
	case "http://www.w3.org/XML/1998/namespace":
		designator = "xml "
	case "http://www.w3.org/2000/xmlns/":
		designator = "xmlns "
	default:
		designator = a.Namespace + " "
	}
	local := a.Name
	if idx := strings.IndexByte(local, ':'); idx >= 0 {
		local = local[idx+1:]
	}
	return designator + local
}
