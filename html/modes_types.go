package html

import "github.com/gohtml5/parser/dom"

// InsertionMode identifies one of the tree construction stage's 22
// insertion modes (spec.md §4.4.7, GLOSSARY "Insertion mode").
type InsertionMode int

const (
	initialMode InsertionMode = iota
	beforeHTMLMode
	beforeHeadMode
	inHeadMode
	inHeadNoscriptMode
	afterHeadMode
	inBodyMode
	textMode
	inTableMode
	inTableTextMode
	inCaptionMode
	inColumnGroupMode
	inTableBodyMode
	inRowMode
	inCellMode
	inSelectMode
	inSelectInTableMode
	inTemplateMode
	afterBodyMode
	inFramesetMode
	afterFramesetMode
	afterAfterBodyMode
	afterAfterFramesetMode
)

var insertionModeNames = [...]string{
	"initial", "before html", "before head", "in head", "in head noscript",
	"after head", "in body", "text", "in table", "in table text",
	"in caption", "in column group", "in table body", "in row", "in cell",
	"in select", "in select in table", "in template", "after body",
	"in frameset", "after frameset", "after after body", "after after frameset",
}

func (m InsertionMode) String() string {
	if int(m) >= 0 && int(m) < len(insertionModeNames) {
		return insertionModeNames[m]
	}
	return "unknown"
}

// formattingEntry is a slot on the active formatting elements list
// (spec.md §4.4.5): either a live element-and-attrs pair or a scope
// marker inserted at a template, applet/marquee/object, caption, or table
// cell boundary.
type formattingEntry struct {
	marker bool
	name   string
	attrs  []tagAttr
	node   *dom.Element
}
