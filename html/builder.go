package html

import (
	"strings"

	"github.com/gohtml5/parser/dom"
	"github.com/gohtml5/parser/log"
)

// TreeBuilder implements the tree construction stage (spec.md §4.4):
// consuming tokens from a Tokenizer and building a dom.Document (or, for a
// fragment parse, the children of a synthetic context element). Grounded
// on the JustGoHTML treebuilder package's field layout and dispatch shape.
type TreeBuilder struct {
	document *dom.Document

	openElements []*dom.Element
	mode         InsertionMode
	originalMode InsertionMode

	headElement *dom.Element
	formElement *dom.Element

	activeFormatting []formattingEntry

	templateModes []InsertionMode

	pendingTableChars   strings.Builder
	pendingTableNonWS   bool
	tableTextOrigMode   InsertionMode

	framesetOK bool

	// forceHTMLMode is set when foreign content processing decides a
	// token must be reprocessed under the HTML insertion modes
	// (spec.md §4.4.6's "process the token according to the rules for
	// parsing tokens in HTML content").
	forceHTMLMode bool

	fragment        bool
	fragmentContext *dom.Element // context element for a fragment parse

	tokenizer *Tokenizer
	errs      *errorSink

	iframeSrcdoc bool

	stop bool
}

// NewTreeBuilder creates a document-mode tree builder (spec.md §4.4.1).
func NewTreeBuilder(tok *Tokenizer, errs *errorSink) *TreeBuilder {
	return &TreeBuilder{
		document:   dom.NewDocument(),
		tokenizer:  tok,
		errs:       errs,
		mode:       initialMode,
		framesetOK: true,
	}
}

// NewFragmentTreeBuilder creates a tree builder for parsing a fragment in
// the context of contextTag/contextNamespace (spec.md §4.4.9, the "HTML
// fragment parsing algorithm").
func NewFragmentTreeBuilder(tok *Tokenizer, errs *errorSink, contextTag, contextNamespace string) *TreeBuilder {
	doc := dom.NewDocument()
	ctx := dom.NewElementNS(contextTag, contextNamespace)

	tb := &TreeBuilder{
		document:        doc,
		tokenizer:       tok,
		errs:            errs,
		framesetOK:      true,
		fragment:        true,
		fragmentContext: ctx,
	}

	root := dom.NewElement("html")
	doc.AppendChild(root)
	tb.openElements = []*dom.Element{root}

	if contextNamespace == dom.NamespaceHTML {
		switch contextTag {
		case "title", "textarea":
			tok.SetState(rcdataState)
		case "style", "xmp", "iframe", "noembed", "noframes", "script":
			tok.SetState(rawtextState)
		case "plaintext":
			tok.SetState(plaintextState)
		}
	}
	tok.SetLastStartTag(contextTag)

	if contextTag == "template" && contextNamespace == dom.NamespaceHTML {
		tb.templateModes = append(tb.templateModes, inTemplateMode)
	}

	tb.resetInsertionModeAppropriately()

	if contextTag == "form" && contextNamespace == dom.NamespaceHTML {
		tb.formElement = ctx
	}

	return tb
}

// Document returns the parsed document (non-fragment parses only).
func (tb *TreeBuilder) Document() *dom.Document { return tb.document }

// FragmentNodes returns the fragment root's children (fragment parses
// only), per spec.md §4.4.9 step discarding the synthetic <html> wrapper.
func (tb *TreeBuilder) FragmentNodes() []dom.Node {
	if len(tb.openElements) == 0 {
		return nil
	}
	return tb.openElements[0].Children()
}

func (tb *TreeBuilder) logf(format string, args ...interface{}) {
	log.Debugf(format, args...)
}

func (tb *TreeBuilder) parseError(code string, tok *Token) {
	tb.errs.record(code, tok.Line, tok.Column)
	log.Warnf("parse error: %s at %d:%d", Message(code), tok.Line, tok.Column)
}

// ProcessToken runs one token through the tree construction stage,
// dispatching to foreign content processing first when applicable
// (spec.md §4.4.1, §4.4.6).
func (tb *TreeBuilder) ProcessToken(tok *Token) {
	if tb.shouldUseForeignContent(tok) {
		tb.processForeignContent(tok)
	} else {
		tb.dispatch(tok)
	}
	for tb.forceHTMLMode {
		tb.forceHTMLMode = false
		tb.dispatch(tok)
	}
}

func (tb *TreeBuilder) dispatch(tok *Token) {
	tb.logf("tree builder: mode=%s token=%s(%q)", tb.mode, tok.Type, tok.Data)
	switch tb.mode {
	case initialMode:
		tb.processInitial(tok)
	case beforeHTMLMode:
		tb.processBeforeHTML(tok)
	case beforeHeadMode:
		tb.processBeforeHead(tok)
	case inHeadMode:
		tb.processInHead(tok)
	case inHeadNoscriptMode:
		tb.processInHeadNoscript(tok)
	case afterHeadMode:
		tb.processAfterHead(tok)
	case inBodyMode:
		tb.processInBody(tok)
	case textMode:
		tb.processText(tok)
	case inTableMode:
		tb.processInTable(tok)
	case inTableTextMode:
		tb.processInTableText(tok)
	case inCaptionMode:
		tb.processInCaption(tok)
	case inColumnGroupMode:
		tb.processInColumnGroup(tok)
	case inTableBodyMode:
		tb.processInTableBody(tok)
	case inRowMode:
		tb.processInRow(tok)
	case inCellMode:
		tb.processInCell(tok)
	case inSelectMode:
		tb.processInSelect(tok)
	case inSelectInTableMode:
		tb.processInSelectInTable(tok)
	case inTemplateMode:
		tb.processInTemplate(tok)
	case afterBodyMode:
		tb.processAfterBody(tok)
	case inFramesetMode:
		tb.processInFrameset(tok)
	case afterFramesetMode:
		tb.processAfterFrameset(tok)
	case afterAfterBodyMode:
		tb.processAfterAfterBody(tok)
	case afterAfterFramesetMode:
		tb.processAfterAfterFrameset(tok)
	}
}

func (tb *TreeBuilder) switchMode(m InsertionMode) {
	tb.mode = m
	tb.logf("tree builder: switched to insertion mode %s", m)
}

// --- open elements stack -------------------------------------------------

func (tb *TreeBuilder) currentNode() *dom.Element {
	if len(tb.openElements) == 0 {
		return nil
	}
	return tb.openElements[len(tb.openElements)-1]
}

func (tb *TreeBuilder) nodeAt(fromTop int) *dom.Element {
	i := len(tb.openElements) - 1 - fromTop
	if i < 0 {
		return nil
	}
	return tb.openElements[i]
}

func (tb *TreeBuilder) push(e *dom.Element) {
	tb.openElements = append(tb.openElements, e)
}

func (tb *TreeBuilder) popCurrent() *dom.Element {
	n := len(tb.openElements)
	if n == 0 {
		return nil
	}
	e := tb.openElements[n-1]
	tb.openElements = tb.openElements[:n-1]
	return e
}

// popUntilCaseInsensitive pops the stack including the nearest element
// named name (ASCII case-insensitive), per the many "pop until an X has
// been popped" spec steps.
func (tb *TreeBuilder) popUntilCaseInsensitive(name string) {
	for len(tb.openElements) > 0 {
		e := tb.popCurrent()
		if strings.EqualFold(e.TagName, name) {
			return
		}
	}
}

func (tb *TreeBuilder) popUntilAnyCell() {
	for len(tb.openElements) > 0 {
		name := tb.currentNode().TagName
		tb.popCurrent()
		if name == "td" || name == "th" {
			return
		}
	}
}

func (tb *TreeBuilder) elementInStack(e *dom.Element) bool {
	for _, o := range tb.openElements {
		if o == e {
			return true
		}
	}
	return false
}

func (tb *TreeBuilder) stackContains(name string) bool {
	for _, o := range tb.openElements {
		if o.TagName == name {
			return true
		}
	}
	return false
}

// generateImpliedEndTags pops elements whose tag is in
// impliedEndTagNames, skipping exceptFor (spec.md §4.4.7's "generate
// implied end tags").
func (tb *TreeBuilder) generateImpliedEndTags(exceptFor string) {
	for len(tb.openElements) > 0 {
		name := tb.currentNode().TagName
		if name == exceptFor || !impliedEndTagNames[name] {
			return
		}
		tb.popCurrent()
	}
}

func (tb *TreeBuilder) generateImpliedEndTagsThorough() {
	for len(tb.openElements) > 0 {
		name := tb.currentNode().TagName
		if !impliedEndTagNamesThorough[name] {
			return
		}
		tb.popCurrent()
	}
}

// --- scope predicates -----------------------------------------------------

// hasElementInScope reports whether name appears on the stack of open
// elements within the given scope flavor (spec.md §4.4.3).
func (tb *TreeBuilder) hasElementInScope(name string, kind scopeKind) bool {
	terms := scopeTerminators(kind)
	invert := kind == selectScope
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		e := tb.openElements[i]
		if e.Namespace == dom.NamespaceHTML && e.TagName == name {
			return true
		}
		if e.Namespace == dom.NamespaceHTML {
			if invert {
				if !terms[e.TagName] {
					return false
				}
			} else if terms[e.TagName] {
				return false
			}
		} else if !invert && foreignScopeTerminators[nsName{e.Namespace, e.TagName}] {
			return false
		}
	}
	return false
}

func (tb *TreeBuilder) hasAnyElementInScope(names map[string]bool, kind scopeKind) bool {
	terms := scopeTerminators(kind)
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		e := tb.openElements[i]
		if e.Namespace == dom.NamespaceHTML && names[e.TagName] {
			return true
		}
		if e.Namespace == dom.NamespaceHTML && terms[e.TagName] {
			return false
		}
		if e.Namespace != dom.NamespaceHTML && foreignScopeTerminators[nsName{e.Namespace, e.TagName}] {
			return false
		}
	}
	return false
}

// --- insertion location / foster parenting --------------------------------

type insertionLocation struct {
	parent dom.Node
	before dom.Node // nil means append
}

func (loc insertionLocation) insert(n dom.Node) {
	loc.parent.InsertBefore(n, loc.before)
}

// appropriateInsertionLocation implements spec.md §4.4.2's "appropriate
// place for inserting a node", including the foster-parenting special
// case for content that would otherwise land directly inside a table.
func (tb *TreeBuilder) appropriateInsertionLocation(override *dom.Element) insertionLocation {
	target := tb.currentNode()
	if override != nil {
		target = override
	}
	if tableFosterTargets[target.TagName] && target.Namespace == dom.NamespaceHTML {
		return tb.fosterInsertionLocation()
	}
	if target.TemplateContent != nil {
		return insertionLocation{parent: target.TemplateContent}
	}
	return insertionLocation{parent: target}
}

func (tb *TreeBuilder) fosterInsertionLocation() insertionLocation {
	var lastTemplate, lastTable *dom.Element
	templateIdx, tableIdx := -1, -1
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		e := tb.openElements[i]
		if e.TagName == "template" && lastTemplate == nil {
			lastTemplate = e
			templateIdx = i
		}
		if e.TagName == "table" && lastTable == nil {
			lastTable = e
			tableIdx = i
		}
	}
	if lastTemplate != nil && (lastTable == nil || templateIdx > tableIdx) {
		return insertionLocation{parent: lastTemplate.TemplateContent}
	}
	if lastTable == nil {
		return insertionLocation{parent: tb.openElements[0]}
	}
	if parent := lastTable.Parent(); parent != nil {
		return insertionLocation{parent: parent, before: lastTable}
	}
	return insertionLocation{parent: tb.nodeAt(len(tb.openElements) - 1 - tableIdx + 1)}
}

// insertElement creates an element from tok in the given namespace at the
// appropriate insertion location, pushes it, and returns it.
func (tb *TreeBuilder) insertElement(tok *Token, namespace string) *dom.Element {
	e := dom.NewElementNS(tok.Data, namespace)
	for _, a := range tok.Attrs {
		e.SetAttr(a.Name, a.Value)
	}
	loc := tb.appropriateInsertionLocation(nil)
	loc.insert(e)
	if e.TagName == "template" && namespace == dom.NamespaceHTML {
		e.TemplateContent = dom.NewDocumentFragment()
	}
	tb.push(e)
	return e
}

// insertForeignElement mirrors insertElement for foreign-content start
// tags, whose attributes have already been namespace-adjusted (spec.md
// §4.4.6).
func (tb *TreeBuilder) insertForeignElement(name, namespace string, attrs []dom.Attribute, selfClosing bool) *dom.Element {
	e := dom.NewElementNS(name, namespace)
	for _, a := range attrs {
		e.Attributes.SetNS(a.Namespace, a.Name, a.Value)
	}
	loc := tb.appropriateInsertionLocation(nil)
	loc.insert(e)
	if !selfClosing {
		tb.push(e)
	}
	return e
}

func (tb *TreeBuilder) insertComment(tok *Token, override *dom.Element) {
	loc := tb.appropriateInsertionLocation(override)
	loc.insert(dom.NewComment(tok.Data))
}

// insertText inserts data at the appropriate insertion location, merging
// into an immediately preceding text node when present (spec.md §4.4.2).
func (tb *TreeBuilder) insertText(data string) {
	if data == "" {
		return
	}
	loc := tb.appropriateInsertionLocation(nil)
	if loc.before == nil {
		children := loc.parent.Children()
		if n := len(children); n > 0 {
			if txt, ok := children[n-1].(*dom.Text); ok {
				txt.Data += data
				return
			}
		}
		loc.parent.AppendChild(dom.NewText(data))
		return
	}
	children := loc.parent.Children()
	for i, c := range children {
		if c == loc.before {
			if i > 0 {
				if txt, ok := children[i-1].(*dom.Text); ok {
					txt.Data += data
					return
				}
			}
			break
		}
	}
	loc.parent.InsertBefore(dom.NewText(data), loc.before)
}

// --- active formatting elements list ---------------------------------------

func (tb *TreeBuilder) pushFormattingMarker() {
	tb.activeFormatting = append(tb.activeFormatting, formattingEntry{marker: true})
}

func (tb *TreeBuilder) clearActiveFormattingToMarker() {
	for len(tb.activeFormatting) > 0 {
		n := len(tb.activeFormatting) - 1
		e := tb.activeFormatting[n]
		tb.activeFormatting = tb.activeFormatting[:n]
		if e.marker {
			return
		}
	}
}

// appendActiveFormattingEntry implements the "Noah's Ark clause"
// (spec.md §4.4.5): when 3 matching entries already sit after the last
// marker, the oldest is removed, so at most 3 remain once node is appended.
func (tb *TreeBuilder) appendActiveFormattingEntry(name string, attrs []tagAttr, node *dom.Element) {
	matches := 0
	matchIdx := -1
	for i := len(tb.activeFormatting) - 1; i >= 0; i-- {
		e := tb.activeFormatting[i]
		if e.marker {
			break
		}
		if e.name == name && attrsEqual(e.attrs, attrs) {
			matches++
			// Iterating tail-to-head, so the last assignment here lands on
			// the oldest matching entry, the one spec.md §4.4.5 requires
			// Noah's Ark to remove.
			matchIdx = i
		}
	}
	if matches >= 3 && matchIdx >= 0 {
		tb.activeFormatting = append(tb.activeFormatting[:matchIdx], tb.activeFormatting[matchIdx+1:]...)
	}
	tb.activeFormatting = append(tb.activeFormatting, formattingEntry{name: name, attrs: attrs, node: node})
}

func attrsEqual(a, b []tagAttr) bool {
	if len(a) != len(b) {
		return false
	}
	av := map[string]string{}
	for _, x := range a {
		av[x.Name] = x.Value
	}
	for _, y := range b {
		v, ok := av[y.Name]
		if !ok || v != y.Value {
			return false
		}
	}
	return true
}

func (tb *TreeBuilder) findActiveFormattingEntry(name string) (int, *formattingEntry) {
	for i := len(tb.activeFormatting) - 1; i >= 0; i-- {
		if tb.activeFormatting[i].marker {
			return -1, nil
		}
		if tb.activeFormatting[i].name == name {
			return i, &tb.activeFormatting[i]
		}
	}
	return -1, nil
}

func (tb *TreeBuilder) findActiveFormattingByNode(e *dom.Element) int {
	for i := len(tb.activeFormatting) - 1; i >= 0; i-- {
		if tb.activeFormatting[i].node == e {
			return i
		}
	}
	return -1
}

func (tb *TreeBuilder) removeActiveFormattingAt(i int) {
	tb.activeFormatting = append(tb.activeFormatting[:i], tb.activeFormatting[i+1:]...)
}

// reconstructActiveFormattingElements (spec.md §4.4.5) re-inserts elements
// from the active formatting list that fell off the stack of open
// elements (e.g. a table implicitly closed a <b>).
func (tb *TreeBuilder) reconstructActiveFormattingElements() {
	if len(tb.activeFormatting) == 0 {
		return
	}
	last := len(tb.activeFormatting) - 1
	entry := tb.activeFormatting[last]
	if entry.marker || tb.elementInStack(entry.node) {
		return
	}
	i := last
	for i > 0 {
		i--
		entry = tb.activeFormatting[i]
		if entry.marker || tb.elementInStack(entry.node) {
			i++
			break
		}
	}
	for ; i < len(tb.activeFormatting); i++ {
		entry := &tb.activeFormatting[i]
		clone := dom.NewElementNS(entry.node.TagName, entry.node.Namespace)
		for _, a := range entry.node.Attributes.All() {
			clone.Attributes.SetNS(a.Namespace, a.Name, a.Value)
		}
		loc := tb.appropriateInsertionLocation(nil)
		loc.insert(clone)
		tb.push(clone)
		entry.node = clone
	}
}

// --- adoption agency --------------------------------------------------------

// adoptionAgency implements the adoption agency algorithm (spec.md
// §4.4.4) for an end tag named name encountered in the "in body"
// insertion mode.
func (tb *TreeBuilder) adoptionAgency(name string) {
	for outer := 0; outer < 8; outer++ {
		idx, entry := tb.findActiveFormattingEntry(name)
		if entry == nil {
			tb.inBodyAnyOtherEndTag(name)
			return
		}
		formattingElem := entry.node
		if !tb.elementInStack(formattingElem) {
			tb.removeActiveFormattingAt(idx)
			return
		}
		if !tb.hasElementInScope(name, defaultScope) {
			return
		}

		var furthestBlock *dom.Element
		feIdx := -1
		for i, e := range tb.openElements {
			if e == formattingElem {
				feIdx = i
				continue
			}
			if feIdx >= 0 && specialElements[e.TagName] {
				furthestBlock = e
				break
			}
		}

		if furthestBlock == nil {
			for len(tb.openElements) > 0 && tb.currentNode() != formattingElem {
				tb.popCurrent()
			}
			if len(tb.openElements) > 0 {
				tb.popCurrent()
			}
			if fi := tb.findActiveFormattingByNode(formattingElem); fi >= 0 {
				tb.removeActiveFormattingAt(fi)
			}
			return
		}

		commonAncestor := tb.openElements[feIdx-1]
		bookmark := tb.findActiveFormattingByNode(formattingElem)
		node := furthestBlock
		lastNode := furthestBlock
		nodeIdx := indexOfElement(tb.openElements, node)

		for inner := 0; inner < 3; inner++ {
			nodeIdx--
			if nodeIdx < 0 {
				break
			}
			node = tb.openElements[nodeIdx]
			if node == formattingElem {
				break
			}
			nfIdx := tb.findActiveFormattingByNode(node)
			if nfIdx < 0 {
				tb.removeOpenElementAt(nodeIdx)
				nodeIdx++
				continue
			}
			clone := dom.NewElementNS(node.TagName, node.Namespace)
			for _, a := range node.Attributes.All() {
				clone.Attributes.SetNS(a.Namespace, a.Name, a.Value)
			}
			tb.activeFormatting[nfIdx].node = clone
			tb.openElements[nodeIdx] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = nfIdx + 1
			}
			if p := lastNode.Parent(); p != nil {
				p.RemoveChild(lastNode)
			}
			node.AppendChild(lastNode)
			lastNode = node
		}

		if p := lastNode.Parent(); p != nil {
			p.RemoveChild(lastNode)
		}
		if commonAncestor.TemplateContent != nil {
			commonAncestor.TemplateContent.AppendChild(lastNode)
		} else if tableFosterTargets[commonAncestor.TagName] {
			tb.fosterInsertionLocation().insert(lastNode)
		} else {
			commonAncestor.AppendChild(lastNode)
		}

		newFormatting := dom.NewElementNS(formattingElem.TagName, formattingElem.Namespace)
		for _, a := range formattingElem.Attributes.All() {
			newFormatting.Attributes.SetNS(a.Namespace, a.Name, a.Value)
		}
		for _, c := range append([]dom.Node{}, furthestBlock.Children()...) {
			furthestBlock.RemoveChild(c)
			newFormatting.AppendChild(c)
		}
		furthestBlock.AppendChild(newFormatting)

		if fi := tb.findActiveFormattingByNode(formattingElem); fi >= 0 {
			tb.removeActiveFormattingAt(fi)
		}
		if bookmark > len(tb.activeFormatting) {
			bookmark = len(tb.activeFormatting)
		}
		tb.activeFormatting = append(tb.activeFormatting, formattingEntry{})
		copy(tb.activeFormatting[bookmark+1:], tb.activeFormatting[bookmark:])
		tb.activeFormatting[bookmark] = formattingEntry{name: name, attrs: attrsFromElement(newFormatting), node: newFormatting}

		if fi := indexOfElement(tb.openElements, formattingElem); fi >= 0 {
			tb.removeOpenElementAt(fi)
		}
		if bi := indexOfElement(tb.openElements, furthestBlock); bi >= 0 {
			tb.openElements = append(tb.openElements[:bi+1], append([]*dom.Element{newFormatting}, tb.openElements[bi+1:]...)...)
		}
	}
}

func attrsFromElement(e *dom.Element) []tagAttr {
	var out []tagAttr
	for _, a := range e.Attributes.All() {
		if a.Namespace == "" {
			out = append(out, tagAttr{Name: a.Name, Value: a.Value})
		}
	}
	return out
}

func indexOfElement(s []*dom.Element, e *dom.Element) int {
	for i, x := range s {
		if x == e {
			return i
		}
	}
	return -1
}

func (tb *TreeBuilder) removeOpenElementAt(i int) {
	tb.openElements = append(tb.openElements[:i], tb.openElements[i+1:]...)
}

// inBodyAnyOtherEndTag is the "any other end tag" fallback shared by
// processInBody and the adoption agency's no-match case (spec.md
// §4.4.7).
func (tb *TreeBuilder) inBodyAnyOtherEndTag(name string) {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		e := tb.openElements[i]
		if e.TagName == name {
			tb.generateImpliedEndTags(name)
			for len(tb.openElements) > i {
				tb.popCurrent()
			}
			return
		}
		if specialElements[e.TagName] {
			return
		}
	}
}

// --- misc helpers used by the mode handlers --------------------------------

func isAllWhitespace(s string) bool {
	for _, r := range s {
		if !isWhitespace(r) {
			return false
		}
	}
	return true
}

// resetInsertionModeAppropriately implements spec.md §4.4.7's algorithm of
// the same name, used after popping elements (e.g. leaving a table cell)
// and when starting a fragment parse.
func (tb *TreeBuilder) resetInsertionModeAppropriately() {
	for i := len(tb.openElements) - 1; i >= 0; i-- {
		node := tb.openElements[i]
		last := i == 0
		if tb.fragment && last {
			node = tb.fragmentContext
		}
		switch node.TagName {
		case "select":
			for j := i - 1; j > 0 && tb.fragment == false; j-- {
				anc := tb.openElements[j]
				if anc.TagName == "template" {
					break
				}
				if anc.TagName == "table" {
					tb.switchMode(inSelectInTableMode)
					return
				}
			}
			tb.switchMode(inSelectMode)
			return
		case "td", "th":
			if !last {
				tb.switchMode(inCellMode)
				return
			}
		case "tr":
			tb.switchMode(inRowMode)
			return
		case "tbody", "thead", "tfoot":
			tb.switchMode(inTableBodyMode)
			return
		case "caption":
			tb.switchMode(inCaptionMode)
			return
		case "colgroup":
			tb.switchMode(inColumnGroupMode)
			return
		case "table":
			tb.switchMode(inTableMode)
			return
		case "template":
			if len(tb.templateModes) > 0 {
				tb.switchMode(tb.templateModes[len(tb.templateModes)-1])
				return
			}
		case "head":
			if !last {
				tb.switchMode(inHeadMode)
				return
			}
		case "body":
			tb.switchMode(inBodyMode)
			return
		case "frameset":
			tb.switchMode(inFramesetMode)
			return
		case "html":
			if tb.headElement == nil {
				tb.switchMode(beforeHeadMode)
			} else {
				tb.switchMode(afterHeadMode)
			}
			return
		}
		if last {
			tb.switchMode(inBodyMode)
			return
		}
	}
}
