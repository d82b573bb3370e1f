package html

import (
	"testing"

	"github.com/gohtml5/parser/dom"
)

func newTestTreeBuilder() *TreeBuilder {
	errs := &errorSink{}
	return NewTreeBuilder(NewTokenizer("", errs), errs)
}

// spec.md §4.4.5's Noah's Ark clause: once a fourth entry with the same
// name and attributes would be active (no intervening marker), the oldest
// of the matching entries is removed, not the newest.
func TestNoahsArkRemovesOldestMatchingEntry(t *testing.T) {
	tb := newTestTreeBuilder()
	var attrs []tagAttr
	first := dom.NewElement("b")
	second := dom.NewElement("b")
	third := dom.NewElement("b")
	fourth := dom.NewElement("b")

	tb.appendActiveFormattingEntry("b", attrs, first)
	tb.appendActiveFormattingEntry("b", attrs, second)
	tb.appendActiveFormattingEntry("b", attrs, third)
	tb.appendActiveFormattingEntry("b", attrs, fourth)

	if len(tb.activeFormatting) != 3 {
		t.Fatalf("expected Noah's Ark to cap the list at 3 entries, got %d", len(tb.activeFormatting))
	}
	if tb.activeFormatting[0].node != second {
		t.Fatalf("expected the oldest entry to be removed, leaving second as the earliest survivor, got %v",
			tb.activeFormatting[0].node)
	}
	if tb.activeFormatting[1].node != third || tb.activeFormatting[2].node != fourth {
		t.Fatalf("expected survivors in original order [second, third, fourth], got %v", tb.activeFormatting)
	}
}

// A marker (e.g. from an <object> or template boundary) resets the count,
// so matches beyond it don't contribute to the Noah's Ark clause.
func TestNoahsArkDoesNotCrossAMarker(t *testing.T) {
	tb := newTestTreeBuilder()
	var attrs []tagAttr
	tb.appendActiveFormattingEntry("b", attrs, dom.NewElement("b"))
	tb.appendActiveFormattingEntry("b", attrs, dom.NewElement("b"))
	tb.appendActiveFormattingEntry("b", attrs, dom.NewElement("b"))
	tb.pushFormattingMarker()
	tb.appendActiveFormattingEntry("b", attrs, dom.NewElement("b"))

	if len(tb.activeFormatting) != 5 {
		t.Fatalf("expected the marker to shield the first 3 entries, got %d entries", len(tb.activeFormatting))
	}
}
