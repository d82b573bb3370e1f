package html

import (
	"strings"

	"github.com/gohtml5/parser/dom"
)

// publicIDStartsWithAny reports whether the doctype's public identifier
// begins with any of prefixes, ASCII case-insensitively (spec.md §4.4.1's
// quirks-mode detection table).
func publicIDStartsWithAny(publicID string, prefixes ...string) bool {
	low := strings.ToLower(publicID)
	for _, p := range prefixes {
		if strings.HasPrefix(low, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

func (tb *TreeBuilder) processInitial(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			return
		}
	case CommentToken:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return
	case DoctypeToken:
		dt := dom.NewDocumentType(tok.DoctypeName, tok.DoctypePublicID, tok.DoctypeSystemID)
		tb.document.Doctype = dt
		tb.document.AppendChild(dt)
		if tb.iframeSrcdoc {
			tb.switchMode(beforeHTMLMode)
			return
		}
		tb.document.QuirksMode = tb.quirksModeFor(tok)
		tb.switchMode(beforeHTMLMode)
		return
	}
	tb.switchMode(beforeHTMLMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) quirksModeFor(tok *Token) dom.QuirksMode {
	if tok.ForceQuirks || !strings.EqualFold(tok.DoctypeName, "html") {
		return dom.Quirks
	}
	if tok.HasSystemID && tok.DoctypeSystemID != "" && !tok.HasPublicID {
		// "about:legacy-compat" style system-identifier-only doctypes stay
		// in no-quirks mode; nothing further to check.
	}
	if publicIDStartsWithAny(tok.DoctypePublicID,
		"-//W3O//DTD W3 HTML Strict 3.0//", "-/W3D/DTD HTML 4.0 Transitional/",
		"HTML", "+//Silmaril//", "-//AS//DTD HTML", "-//AdvaSoft Ltd//",
		"-//IETF//DTD HTML", "-//Metrius//", "-//Microsoft//DTD Internet Explorer",
		"-//Netscape Comm. Corp.//", "-//O'Reilly and Associates//",
		"-//SQ//DTD HTML", "-//SoftQuad Software//", "-//SoftQuad//",
		"-//Spyglass//", "-//Sun Microsystems Corp.//", "-//W3C//DTD HTML 3",
		"-//W3C//DTD HTML 4.0 Transitional//", "-//W3C//DTD HTML Experimental",
		"-//W3C//DTD W3 HTML", "-//W3O//DTD W3 HTML 3.0//", "-//WebTechs//",
		"-//W3C//DTD HTML 4.01 Frameset//", "-//W3C//DTD HTML 4.01 Transitional//") {
		return dom.Quirks
	}
	if tok.DoctypeSystemID == "" && publicIDStartsWithAny(tok.DoctypePublicID,
		"-//W3C//DTD HTML 4.01 Frameset//", "-//W3C//DTD HTML 4.01 Transitional//") {
		return dom.Quirks
	}
	if publicIDStartsWithAny(tok.DoctypePublicID, "-//W3C//DTD XHTML 1.0 Frameset//", "-//W3C//DTD XHTML 1.0 Transitional//") {
		return dom.LimitedQuirks
	}
	if tok.DoctypeSystemID != "" && publicIDStartsWithAny(tok.DoctypePublicID, "-//W3C//DTD HTML 4.01 Frameset//", "-//W3C//DTD HTML 4.01 Transitional//") {
		return dom.LimitedQuirks
	}
	return dom.NoQuirks
}

func (tb *TreeBuilder) processBeforeHTML(tok *Token) {
	switch tok.Type {
	case DoctypeToken:
		return
	case CommentToken:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			return
		}
	case StartTagToken:
		if tok.Data == "html" {
			e := tb.insertHTMLRoot(tok)
			tb.push(e)
			tb.switchMode(beforeHeadMode)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "head", "body", "html", "br":
		default:
			return
		}
	}
	e := dom.NewElement("html")
	tb.document.AppendChild(e)
	tb.push(e)
	tb.switchMode(beforeHeadMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) insertHTMLRoot(tok *Token) *dom.Element {
	e := dom.NewElement("html")
	for _, a := range tok.Attrs {
		e.SetAttr(a.Name, a.Value)
	}
	tb.document.AppendChild(e)
	return e
}

func (tb *TreeBuilder) processBeforeHead(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			return
		}
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrMisplacedDoctype, tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "head":
			e := tb.insertElement(tok, dom.NamespaceHTML)
			tb.headElement = e
			tb.switchMode(inHeadMode)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "head", "body", "html", "br":
		default:
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
	}
	e := tb.insertElement(&Token{Type: StartTagToken, Data: "head"}, dom.NamespaceHTML)
	tb.headElement = e
	tb.switchMode(inHeadMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) processInHead(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return
		}
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrMisplacedDoctype, tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "base", "basefont", "bgsound", "link", "meta":
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.popCurrent()
			return
		case "title":
			tb.insertRCDATA(tok)
			return
		case "noframes", "style":
			tb.insertRawtext(tok)
			return
		case "noscript":
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.switchMode(inHeadNoscriptMode)
			return
		case "script":
			tb.insertRawtext(tok)
			return
		case "template":
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.pushFormattingMarker()
			tb.framesetOK = false
			tb.switchMode(inTemplateMode)
			tb.templateModes = append(tb.templateModes, inTemplateMode)
			return
		case "head":
			tb.parseError(ErrMisplacedStartTagForHeadElement, tok)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "head":
			tb.popCurrent()
			tb.switchMode(afterHeadMode)
			return
		case "body", "html", "br":
		case "template":
			tb.endTemplate(tok)
			return
		default:
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
	}
	tb.popCurrent()
	tb.switchMode(afterHeadMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) endTemplate(tok *Token) {
	if !tb.stackContains("template") {
		tb.parseError(ErrStrayEndTag, tok)
		return
	}
	tb.generateImpliedEndTagsThorough()
	tb.popUntilCaseInsensitive("template")
	tb.clearActiveFormattingToMarker()
	if len(tb.templateModes) > 0 {
		tb.templateModes = tb.templateModes[:len(tb.templateModes)-1]
	}
	tb.resetInsertionModeAppropriately()
}

func (tb *TreeBuilder) insertRCDATA(tok *Token) {
	tb.insertElement(tok, dom.NamespaceHTML)
	tb.tokenizer.SetState(rcdataState)
	tb.originalMode = tb.mode
	tb.switchMode(textMode)
}

func (tb *TreeBuilder) insertRawtext(tok *Token) {
	tb.insertElement(tok, dom.NamespaceHTML)
	tb.tokenizer.SetState(rawtextState)
	tb.originalMode = tb.mode
	tb.switchMode(textMode)
}

func (tb *TreeBuilder) processInHeadNoscript(tok *Token) {
	switch tok.Type {
	case DoctypeToken:
		tb.parseError(ErrMisplacedDoctype, tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			tb.processInHead(tok)
			return
		case "head", "noscript":
			tb.parseError(ErrStrayStartTag, tok)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "noscript":
			tb.popCurrent()
			tb.switchMode(inHeadMode)
			return
		case "br":
		default:
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.processInHead(tok)
			return
		}
	case CommentToken:
		tb.processInHead(tok)
		return
	}
	tb.popCurrent()
	tb.switchMode(inHeadMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) processAfterHead(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return
		}
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrMisplacedDoctype, tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "body":
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.framesetOK = false
			tb.switchMode(inBodyMode)
			return
		case "frameset":
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.switchMode(inFramesetMode)
			return
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
			"style", "template", "title":
			tb.push(tb.headElement)
			tb.processInHead(tok)
			tb.removeOpenElementByValue(tb.headElement)
			return
		case "head":
			tb.parseError(ErrMisplacedStartTagForHeadElement, tok)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "template":
			tb.processInHead(tok)
			return
		case "body", "html", "br":
		default:
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
	}
	tb.insertElement(&Token{Type: StartTagToken, Data: "body"}, dom.NamespaceHTML)
	tb.switchMode(inBodyMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) removeOpenElementByValue(e *dom.Element) {
	if i := indexOfElement(tb.openElements, e); i >= 0 {
		tb.removeOpenElementAt(i)
	}
}

func (tb *TreeBuilder) processText(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		tb.insertText(tok.Data)
	case EOFToken:
		if tb.currentNode() != nil && tb.currentNode().TagName == "script" {
			tb.currentNode().SetAttr("already-started", "true")
		}
		tb.popCurrent()
		tb.switchMode(tb.originalMode)
		tb.dispatch(tok)
	case EndTagToken:
		tb.popCurrent()
		tb.switchMode(tb.originalMode)
	}
}

// --- in body ---------------------------------------------------------------

var inBodyEndFormatting = formattingElements

func (tb *TreeBuilder) processInBody(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if strings.ContainsRune(tok.Data, 0) {
			tb.parseError(ErrUnexpectedNullCharacter, tok)
		}
		tb.reconstructActiveFormattingElements()
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
	case EOFToken:
		if len(tb.templateModes) > 0 {
			tb.processInTemplate(tok)
			return
		}
		return
	case StartTagToken:
		tb.inBodyStartTag(tok)
		return
	case EndTagToken:
		tb.inBodyEndTag(tok)
		return
	}
}

func (tb *TreeBuilder) inBodyStartTag(tok *Token) {
	switch tok.Data {
	case "html":
		tb.parseError(ErrStrayStartTag, tok)
		if len(tb.openElements) > 0 {
			for _, a := range tok.Attrs {
				if !tb.openElements[0].HasAttr(a.Name) {
					tb.openElements[0].SetAttr(a.Name, a.Value)
				}
			}
		}
		return
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
		"style", "template", "title":
		tb.processInHead(tok)
		return
	case "body":
		tb.parseError(ErrStrayStartTag, tok)
		return
	case "frameset":
		tb.parseError(ErrStrayStartTag, tok)
		return
	case "address", "article", "aside", "blockquote", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure",
		"footer", "header", "hgroup", "main", "menu", "nav", "ol", "p",
		"search", "section", "summary", "ul":
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		if headingElements[tb.currentNode().TagName] {
			tb.popCurrent()
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		return
	case "pre", "listing":
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.framesetOK = false
		return
	case "form":
		if tb.formElement != nil && !tb.stackContains("template") {
			tb.parseError(ErrNestedFormElement, tok)
			return
		}
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		e := tb.insertElement(tok, dom.NamespaceHTML)
		if !tb.stackContains("template") {
			tb.formElement = e
		}
		return
	case "li":
		tb.framesetOK = false
		for i := len(tb.openElements) - 1; i >= 0; i-- {
			e := tb.openElements[i]
			if e.TagName == "li" {
				tb.generateImpliedEndTags("li")
				tb.popUntilCaseInsensitive("li")
				break
			}
			if specialElements[e.TagName] && e.TagName != "address" && e.TagName != "div" && e.TagName != "p" {
				break
			}
		}
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		return
	case "dd", "dt":
		tb.framesetOK = false
		for i := len(tb.openElements) - 1; i >= 0; i-- {
			e := tb.openElements[i]
			if e.TagName == "dd" || e.TagName == "dt" {
				tb.generateImpliedEndTags(e.TagName)
				tb.popUntilCaseInsensitive(e.TagName)
				break
			}
			if specialElements[e.TagName] && e.TagName != "address" && e.TagName != "div" && e.TagName != "p" {
				break
			}
		}
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		return
	case "plaintext":
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.tokenizer.SetState(plaintextState)
		return
	case "button":
		if tb.hasElementInScope("button", defaultScope) {
			tb.parseError(ErrUnexpectedStartTag, tok)
			tb.generateImpliedEndTags("")
			tb.popUntilCaseInsensitive("button")
		}
		tb.reconstructActiveFormattingElements()
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.framesetOK = false
		return
	case "a":
		if _, e := tb.findActiveFormattingEntry("a"); e != nil {
			tb.adoptionAgency("a")
			if fi := tb.findActiveFormattingByNode(e.node); fi >= 0 {
				tb.removeActiveFormattingAt(fi)
			}
			tb.removeOpenElementByValue(e.node)
		}
		tb.reconstructActiveFormattingElements()
		el := tb.insertElement(tok, dom.NamespaceHTML)
		tb.appendActiveFormattingEntry("a", tok.Attrs, el)
		return
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike",
		"strong", "tt", "u":
		tb.reconstructActiveFormattingElements()
		el := tb.insertElement(tok, dom.NamespaceHTML)
		tb.appendActiveFormattingEntry(tok.Data, tok.Attrs, el)
		return
	case "nobr":
		tb.reconstructActiveFormattingElements()
		if tb.hasElementInScope("nobr", defaultScope) {
			tb.adoptionAgency("nobr")
			tb.reconstructActiveFormattingElements()
		}
		el := tb.insertElement(tok, dom.NamespaceHTML)
		tb.appendActiveFormattingEntry("nobr", tok.Attrs, el)
		return
	case "applet", "marquee", "object":
		tb.reconstructActiveFormattingElements()
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.pushFormattingMarker()
		tb.framesetOK = false
		return
	case "table":
		if tb.document.QuirksMode != dom.Quirks && tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.framesetOK = false
		tb.switchMode(inTableMode)
		return
	case "image":
		// Not a typo in this code: browsers rewrite the misnamed "image"
		// tag to "img" and reprocess it (spec.md §4.4.7).
		tb.parseError(ErrUnexpectedStartTag, tok)
		tok.Data = "img"
		tb.inBodyStartTag(tok)
		return
	case "area", "br", "embed", "img", "keygen", "wbr":
		tb.reconstructActiveFormattingElements()
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.popCurrent()
		tb.framesetOK = false
		return
	case "input":
		tb.reconstructActiveFormattingElements()
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.popCurrent()
		if typ, _ := tok.Attr("type"); !strings.EqualFold(typ, "hidden") {
			tb.framesetOK = false
		}
		return
	case "param", "source", "track":
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.popCurrent()
		return
	case "hr":
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.popCurrent()
		tb.framesetOK = false
		return
	case "textarea":
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.tokenizer.SetState(rcdataState)
		tb.originalMode = tb.mode
		tb.framesetOK = false
		tb.switchMode(textMode)
		return
	case "xmp":
		if tb.hasElementInScope("p", buttonScope) {
			tb.closePElement(tok)
		}
		tb.reconstructActiveFormattingElements()
		tb.framesetOK = false
		tb.insertRawtext(tok)
		return
	case "iframe":
		tb.framesetOK = false
		tb.insertRawtext(tok)
		return
	case "noembed":
		tb.insertRawtext(tok)
		return
	case "select":
		tb.reconstructActiveFormattingElements()
		tb.insertElement(tok, dom.NamespaceHTML)
		tb.framesetOK = false
		switch tb.mode {
		case inTableMode, inCaptionMode, inTableBodyMode, inRowMode, inCellMode:
			tb.switchMode(inSelectInTableMode)
		default:
			tb.switchMode(inSelectMode)
		}
		return
	case "optgroup", "option":
		if tb.currentNode().TagName == "option" {
			tb.popCurrent()
		}
		tb.reconstructActiveFormattingElements()
		tb.insertElement(tok, dom.NamespaceHTML)
		return
	case "rb", "rtc":
		if tb.hasElementInScope("ruby", defaultScope) {
			tb.generateImpliedEndTags("")
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		return
	case "rp", "rt":
		if tb.hasElementInScope("ruby", defaultScope) {
			tb.generateImpliedEndTags("rtc")
		}
		tb.insertElement(tok, dom.NamespaceHTML)
		return
	case "math":
		tb.reconstructActiveFormattingElements()
		attrs := adjustForeignAttrs(prepareMathMLAttrs(tok.Attrs))
		tb.insertForeignElement("math", dom.NamespaceMathML, attrs, tok.SelfClosing)
		if tok.SelfClosing {
			tb.popCurrent()
		}
		return
	case "svg":
		tb.reconstructActiveFormattingElements()
		attrs := adjustForeignAttrs(prepareSVGAttrs(tok.Attrs))
		tb.insertForeignElement("svg", dom.NamespaceSVG, attrs, tok.SelfClosing)
		if tok.SelfClosing {
			tb.popCurrent()
		}
		return
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td",
		"tfoot", "th", "thead", "tr":
		tb.parseError(ErrStrayStartTag, tok)
		return
	}
	tb.reconstructActiveFormattingElements()
	tb.insertElement(tok, dom.NamespaceHTML)
}

func (tb *TreeBuilder) closePElement(tok *Token) {
	tb.generateImpliedEndTags("p")
	if tb.currentNode() == nil || tb.currentNode().TagName != "p" {
		tb.parseError(ErrUnclosedElements, tok)
	}
	tb.popUntilCaseInsensitive("p")
}

func (tb *TreeBuilder) inBodyEndTag(tok *Token) {
	switch tok.Data {
	case "template":
		tb.endTemplate(tok)
		return
	case "body":
		if !tb.hasElementInScope("body", defaultScope) {
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
		tb.switchMode(afterBodyMode)
		return
	case "html":
		if !tb.hasElementInScope("body", defaultScope) {
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
		tb.switchMode(afterBodyMode)
		tb.dispatch(tok)
		return
	case "address", "article", "aside", "blockquote", "button", "center",
		"details", "dialog", "dir", "div", "dl", "fieldset", "figcaption",
		"figure", "footer", "header", "hgroup", "listing", "main", "menu",
		"nav", "ol", "pre", "search", "section", "summary", "ul":
		if !tb.hasElementInScope(tok.Data, defaultScope) {
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
		tb.generateImpliedEndTags("")
		tb.popUntilCaseInsensitive(tok.Data)
		return
	case "form":
		if tb.stackContains("template") {
			if !tb.hasElementInScope("form", defaultScope) {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.generateImpliedEndTags("")
			tb.popUntilCaseInsensitive("form")
			return
		}
		node := tb.formElement
		tb.formElement = nil
		if node == nil || !tb.hasElementInScope("form", defaultScope) {
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
		tb.generateImpliedEndTags("")
		tb.removeOpenElementByValue(node)
		return
	case "p":
		if !tb.hasElementInScope("p", buttonScope) {
			tb.parseError(ErrStrayEndTag, tok)
			tb.insertElement(&Token{Type: StartTagToken, Data: "p"}, dom.NamespaceHTML)
		}
		tb.closePElement(tok)
		return
	case "li":
		if !tb.hasElementInScope("li", listItemScope) {
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
		tb.generateImpliedEndTags("li")
		tb.popUntilCaseInsensitive("li")
		return
	case "dd", "dt":
		if !tb.hasElementInScope(tok.Data, defaultScope) {
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
		tb.generateImpliedEndTags(tok.Data)
		tb.popUntilCaseInsensitive(tok.Data)
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !tb.hasAnyElementInScope(headingElements, defaultScope) {
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
		tb.generateImpliedEndTags("")
		tb.popUntilAnyHeading()
		return
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small",
		"strike", "strong", "tt", "u":
		tb.adoptionAgency(tok.Data)
		return
	case "applet", "marquee", "object":
		if !tb.hasElementInScope(tok.Data, defaultScope) {
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
		tb.generateImpliedEndTags("")
		tb.popUntilCaseInsensitive(tok.Data)
		tb.clearActiveFormattingToMarker()
		return
	case "br":
		tb.reconstructActiveFormattingElements()
		tb.insertElement(&Token{Type: StartTagToken, Data: "br"}, dom.NamespaceHTML)
		tb.popCurrent()
		tb.framesetOK = false
		return
	}
	tb.inBodyAnyOtherEndTag(tok.Data)
}

func (tb *TreeBuilder) popUntilAnyHeading() {
	for len(tb.openElements) > 0 {
		name := tb.currentNode().TagName
		tb.popCurrent()
		if headingElements[name] {
			return
		}
	}
}

// --- table family ------------------------------------------------------

func (tb *TreeBuilder) clearStackToTableContext(stopAt map[string]bool) {
	for len(tb.openElements) > 0 && !stopAt[tb.currentNode().TagName] {
		tb.popCurrent()
	}
}

var tableContextStops = map[string]bool{"table": true, "template": true, "html": true}
var tableBodyContextStops = map[string]bool{"tbody": true, "tfoot": true, "thead": true, "template": true, "html": true}
var rowContextStops = map[string]bool{"tr": true, "template": true, "html": true}

func (tb *TreeBuilder) processInTable(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if tableFosterTargets[tb.currentNode().TagName] {
			tb.pendingTableChars.Reset()
			tb.pendingTableNonWS = false
			tb.tableTextOrigMode = tb.mode
			tb.switchMode(inTableTextMode)
			tb.dispatch(tok)
			return
		}
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrUnexpectedDoctype, tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "caption":
			tb.clearStackToTableContext(tableContextStops)
			tb.pushFormattingMarker()
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.switchMode(inCaptionMode)
			return
		case "colgroup":
			tb.clearStackToTableContext(tableContextStops)
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.switchMode(inColumnGroupMode)
			return
		case "col":
			tb.clearStackToTableContext(tableContextStops)
			tb.insertElement(&Token{Type: StartTagToken, Data: "colgroup"}, dom.NamespaceHTML)
			tb.switchMode(inColumnGroupMode)
			tb.dispatch(tok)
			return
		case "tbody", "tfoot", "thead":
			tb.clearStackToTableContext(tableContextStops)
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.switchMode(inTableBodyMode)
			return
		case "td", "th", "tr":
			tb.clearStackToTableContext(tableContextStops)
			tb.insertElement(&Token{Type: StartTagToken, Data: "tbody"}, dom.NamespaceHTML)
			tb.switchMode(inTableBodyMode)
			tb.dispatch(tok)
			return
		case "table":
			tb.parseError(ErrUnexpectedStartTagImpliesTable, tok)
			if tb.hasElementInScope("table", tableScope) {
				tb.popUntilCaseInsensitive("table")
				tb.resetInsertionModeAppropriately()
				tb.dispatch(tok)
			}
			return
		case "style", "script", "template":
			tb.processInHead(tok)
			return
		case "input":
			if typ, _ := tok.Attr("type"); strings.EqualFold(typ, "hidden") {
				tb.insertElement(tok, dom.NamespaceHTML)
				tb.popCurrent()
				return
			}
		case "form":
			if tb.formElement == nil && !tb.stackContains("template") {
				e := tb.insertElement(tok, dom.NamespaceHTML)
				tb.formElement = e
				tb.popCurrent()
			}
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "table":
			if !tb.hasElementInScope("table", tableScope) {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.popUntilCaseInsensitive("table")
			tb.resetInsertionModeAppropriately()
			return
		case "body", "caption", "col", "colgroup", "html", "tbody", "td",
			"tfoot", "th", "thead", "tr":
			tb.parseError(ErrStrayEndTag, tok)
			return
		case "template":
			tb.processInHead(tok)
			return
		}
	case EOFToken:
		tb.processInBody(tok)
		return
	}
	tb.inTableFosterText(tok)
}

// inTableFosterText handles the "anything else" case for in-table, which
// reprocesses using in-body rules but with foster parenting engaged for
// direct table children (spec.md §4.4.8.4 note).
func (tb *TreeBuilder) inTableFosterText(tok *Token) {
	tb.parseError(ErrFosterParentedElement, tok)
	tb.processInBody(tok)
}

func (tb *TreeBuilder) processInTableText(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if strings.ContainsRune(tok.Data, 0) {
			return
		}
		if !isAllWhitespace(tok.Data) {
			tb.pendingTableNonWS = true
		}
		tb.pendingTableChars.WriteString(tok.Data)
		return
	default:
		text := tb.pendingTableChars.String()
		if tb.pendingTableNonWS {
			tb.parseError(ErrNonSpaceCharacterInTableText, tok)
			for _, r := range text {
				tb.fosterParentText(string(r))
			}
		} else {
			tb.insertText(text)
		}
		tb.switchMode(tb.tableTextOrigMode)
		tb.dispatch(tok)
	}
}

func (tb *TreeBuilder) fosterParentText(s string) {
	loc := tb.fosterInsertionLocation()
	if loc.before == nil {
		children := loc.parent.Children()
		if n := len(children); n > 0 {
			if txt, ok := children[n-1].(*dom.Text); ok {
				txt.Data += s
				return
			}
		}
		loc.parent.AppendChild(dom.NewText(s))
		return
	}
	loc.parent.InsertBefore(dom.NewText(s), loc.before)
}

func (tb *TreeBuilder) processInCaption(tok *Token) {
	switch tok.Type {
	case EndTagToken:
		switch tok.Data {
		case "caption":
			if !tb.hasElementInScope("caption", tableScope) {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.generateImpliedEndTags("")
			tb.popUntilCaseInsensitive("caption")
			tb.clearActiveFormattingToMarker()
			tb.switchMode(inTableMode)
			return
		case "table":
			if !tb.hasElementInScope("caption", tableScope) {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.generateImpliedEndTags("")
			tb.popUntilCaseInsensitive("caption")
			tb.clearActiveFormattingToMarker()
			tb.switchMode(inTableMode)
			tb.dispatch(tok)
			return
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
	case StartTagToken:
		switch tok.Data {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !tb.hasElementInScope("caption", tableScope) {
				return
			}
			tb.popUntilCaseInsensitive("caption")
			tb.clearActiveFormattingToMarker()
			tb.switchMode(inTableMode)
			tb.dispatch(tok)
			return
		}
	}
	tb.processInBody(tok)
}

func (tb *TreeBuilder) processInColumnGroup(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
			return
		}
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrUnexpectedDoctype, tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "col":
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.popCurrent()
			return
		case "template":
			tb.processInHead(tok)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "colgroup":
			if tb.currentNode().TagName != "colgroup" {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.popCurrent()
			tb.switchMode(inTableMode)
			return
		case "col":
			tb.parseError(ErrStrayEndTag, tok)
			return
		case "template":
			tb.processInHead(tok)
			return
		}
	case EOFToken:
		tb.processInBody(tok)
		return
	}
	if tb.currentNode().TagName != "colgroup" {
		return
	}
	tb.popCurrent()
	tb.switchMode(inTableMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) processInTableBody(tok *Token) {
	switch tok.Type {
	case StartTagToken:
		switch tok.Data {
		case "tr":
			tb.clearStackToTableContext(tableBodyContextStops)
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.switchMode(inRowMode)
			return
		case "th", "td":
			tb.parseError(ErrUnexpectedStartTagImpliesTable, tok)
			tb.clearStackToTableContext(tableBodyContextStops)
			tb.insertElement(&Token{Type: StartTagToken, Data: "tr"}, dom.NamespaceHTML)
			tb.switchMode(inRowMode)
			tb.dispatch(tok)
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !tb.hasAnyElementInScope(tableBodyContextStops, tableScope) {
				return
			}
			tb.clearStackToTableContext(tableBodyContextStops)
			tb.popCurrent()
			tb.switchMode(inTableMode)
			tb.dispatch(tok)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "tbody", "tfoot", "thead":
			if !tb.stackContains(tok.Data) {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.clearStackToTableContext(tableBodyContextStops)
			tb.popCurrent()
			tb.switchMode(inTableMode)
			return
		case "table":
			if !tb.hasAnyElementInScope(tableBodyContextStops, tableScope) {
				return
			}
			tb.clearStackToTableContext(tableBodyContextStops)
			tb.popCurrent()
			tb.switchMode(inTableMode)
			tb.dispatch(tok)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
	}
	tb.processInTable(tok)
}

func (tb *TreeBuilder) processInRow(tok *Token) {
	switch tok.Type {
	case StartTagToken:
		switch tok.Data {
		case "th", "td":
			tb.clearStackToTableContext(rowContextStops)
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.switchMode(inCellMode)
			tb.pushFormattingMarker()
			return
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !tb.hasElementInScope("tr", tableScope) {
				return
			}
			tb.clearStackToTableContext(rowContextStops)
			tb.popCurrent()
			tb.switchMode(inTableBodyMode)
			tb.dispatch(tok)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "tr":
			if !tb.hasElementInScope("tr", tableScope) {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.clearStackToTableContext(rowContextStops)
			tb.popCurrent()
			tb.switchMode(inTableBodyMode)
			return
		case "table":
			if !tb.hasElementInScope("tr", tableScope) {
				return
			}
			tb.clearStackToTableContext(rowContextStops)
			tb.popCurrent()
			tb.switchMode(inTableBodyMode)
			tb.dispatch(tok)
			return
		case "tbody", "tfoot", "thead":
			if !tb.stackContains(tok.Data) || !tb.hasElementInScope("tr", tableScope) {
				return
			}
			tb.clearStackToTableContext(rowContextStops)
			tb.popCurrent()
			tb.switchMode(inTableBodyMode)
			tb.dispatch(tok)
			return
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			tb.parseError(ErrStrayEndTag, tok)
			return
		}
	}
	tb.processInTable(tok)
}

func (tb *TreeBuilder) processInCell(tok *Token) {
	switch tok.Type {
	case StartTagToken:
		switch tok.Data {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !tb.hasAnyElementInScope(map[string]bool{"td": true, "th": true}, tableScope) {
				return
			}
			tb.closeCell(tok)
			tb.dispatch(tok)
			return
		}
	case EndTagToken:
		switch tok.Data {
		case "td", "th":
			if !tb.hasElementInScope(tok.Data, tableScope) {
				tb.parseError(ErrUnexpectedCellEndTag, tok)
				return
			}
			tb.generateImpliedEndTags("")
			tb.popUntilCaseInsensitive(tok.Data)
			tb.clearActiveFormattingToMarker()
			tb.switchMode(inRowMode)
			return
		case "body", "caption", "col", "colgroup", "html":
			tb.parseError(ErrStrayEndTag, tok)
			return
		case "table", "tbody", "tfoot", "thead", "tr":
			if !tb.hasElementInScope(tok.Data, tableScope) {
				return
			}
			tb.closeCell(tok)
			tb.dispatch(tok)
			return
		}
	}
	tb.processInBody(tok)
}

func (tb *TreeBuilder) closeCell(tok *Token) {
	tb.generateImpliedEndTags("")
	tb.popUntilAnyCell()
	tb.clearActiveFormattingToMarker()
	tb.switchMode(inRowMode)
}

// --- select family -------------------------------------------------------

func (tb *TreeBuilder) processInSelect(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if strings.ContainsRune(tok.Data, 0) {
			return
		}
		tb.insertText(tok.Data)
		return
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrUnexpectedDoctype, tok)
		return
	case EOFToken:
		tb.processInBody(tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "option":
			if tb.currentNode().TagName == "option" {
				tb.popCurrent()
			}
			tb.insertElement(tok, dom.NamespaceHTML)
			return
		case "optgroup":
			if tb.currentNode().TagName == "option" {
				tb.popCurrent()
			}
			if tb.currentNode().TagName == "optgroup" {
				tb.popCurrent()
			}
			tb.insertElement(tok, dom.NamespaceHTML)
			return
		case "hr":
			if tb.currentNode().TagName == "option" {
				tb.popCurrent()
			}
			if tb.currentNode().TagName == "optgroup" {
				tb.popCurrent()
			}
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.popCurrent()
			return
		case "select":
			tb.parseError(ErrUnexpectedStartTag, tok)
			if tb.hasElementInScope("select", selectScope) {
				tb.popUntilCaseInsensitive("select")
				tb.resetInsertionModeAppropriately()
			}
			return
		case "input", "keygen", "textarea":
			tb.parseError(ErrUnexpectedStartTag, tok)
			if tb.hasElementInScope("select", selectScope) {
				tb.popUntilCaseInsensitive("select")
				tb.resetInsertionModeAppropriately()
				tb.dispatch(tok)
			}
			return
		case "script", "template":
			tb.processInHead(tok)
			return
		default:
			if selectAllowedElements[tok.Data] {
				tb.insertElement(tok, dom.NamespaceHTML)
				return
			}
		}
	case EndTagToken:
		switch tok.Data {
		case "optgroup":
			if tb.currentNode().TagName == "option" && len(tb.openElements) > 1 &&
				tb.openElements[len(tb.openElements)-2].TagName == "optgroup" {
				tb.popCurrent()
			}
			if tb.currentNode().TagName == "optgroup" {
				tb.popCurrent()
			} else {
				tb.parseError(ErrStrayEndTag, tok)
			}
			return
		case "option":
			if tb.currentNode().TagName == "option" {
				tb.popCurrent()
			} else {
				tb.parseError(ErrStrayEndTag, tok)
			}
			return
		case "select":
			if !tb.hasElementInScope("select", selectScope) {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.popUntilCaseInsensitive("select")
			tb.resetInsertionModeAppropriately()
			return
		case "template":
			tb.processInHead(tok)
			return
		}
	}
}

func (tb *TreeBuilder) processInSelectInTable(tok *Token) {
	if tok.Type == StartTagToken {
		switch tok.Data {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			tb.parseError(ErrUnexpectedStartTagImpliesTable, tok)
			tb.popUntilCaseInsensitive("select")
			tb.resetInsertionModeAppropriately()
			tb.dispatch(tok)
			return
		}
	}
	if tok.Type == EndTagToken {
		switch tok.Data {
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			if !tb.hasElementInScope(tok.Data, tableScope) {
				tb.parseError(ErrStrayEndTag, tok)
				return
			}
			tb.popUntilCaseInsensitive("select")
			tb.resetInsertionModeAppropriately()
			tb.dispatch(tok)
			return
		}
	}
	tb.processInSelect(tok)
}

func (tb *TreeBuilder) processInTemplate(tok *Token) {
	switch tok.Type {
	case CharacterToken, CommentToken, DoctypeToken:
		tb.processInBody(tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "base", "basefont", "bgsound", "link", "meta", "noframes",
			"script", "style", "template", "title":
			tb.processInHead(tok)
			return
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			tb.templateModes[len(tb.templateModes)-1] = inTableMode
			tb.switchMode(inTableMode)
			tb.dispatch(tok)
			return
		case "col":
			tb.templateModes[len(tb.templateModes)-1] = inColumnGroupMode
			tb.switchMode(inColumnGroupMode)
			tb.dispatch(tok)
			return
		case "tr":
			tb.templateModes[len(tb.templateModes)-1] = inTableBodyMode
			tb.switchMode(inTableBodyMode)
			tb.dispatch(tok)
			return
		case "td", "th":
			tb.templateModes[len(tb.templateModes)-1] = inRowMode
			tb.switchMode(inRowMode)
			tb.dispatch(tok)
			return
		default:
			tb.templateModes[len(tb.templateModes)-1] = inBodyMode
			tb.switchMode(inBodyMode)
			tb.dispatch(tok)
			return
		}
	case EndTagToken:
		if tok.Data == "template" {
			tb.endTemplate(tok)
			return
		}
		return
	case EOFToken:
		if !tb.stackContains("template") {
			return
		}
		tb.parseError(ErrEOFInTag, tok)
		tb.popUntilCaseInsensitive("template")
		tb.clearActiveFormattingToMarker()
		if len(tb.templateModes) > 0 {
			tb.templateModes = tb.templateModes[:len(tb.templateModes)-1]
		}
		tb.resetInsertionModeAppropriately()
		tb.dispatch(tok)
		return
	}
}

// --- after body / frameset family ----------------------------------------

func (tb *TreeBuilder) processAfterBody(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.processInBody(tok)
			return
		}
	case CommentToken:
		tb.insertComment(tok, tb.openElements[0])
		return
	case DoctypeToken:
		tb.parseError(ErrUnexpectedDoctype, tok)
		return
	case StartTagToken:
		if tok.Data == "html" {
			tb.processInBody(tok)
			return
		}
	case EndTagToken:
		if tok.Data == "html" {
			tb.switchMode(afterAfterBodyMode)
			return
		}
	case EOFToken:
		return
	}
	tb.switchMode(inBodyMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) processInFrameset(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
		}
		return
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrUnexpectedDoctype, tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "frameset":
			tb.insertElement(tok, dom.NamespaceHTML)
			return
		case "frame":
			tb.insertElement(tok, dom.NamespaceHTML)
			tb.popCurrent()
			return
		case "noframes":
			tb.processInHead(tok)
			return
		}
	case EndTagToken:
		if tok.Data == "frameset" {
			if len(tb.openElements) > 1 {
				tb.popCurrent()
			}
			if len(tb.openElements) > 0 && tb.currentNode().TagName != "frameset" {
				tb.switchMode(afterFramesetMode)
			}
			return
		}
	case EOFToken:
		return
	}
	tb.parseError(ErrStrayStartTag, tok)
}

func (tb *TreeBuilder) processAfterFrameset(tok *Token) {
	switch tok.Type {
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.insertText(tok.Data)
		}
		return
	case CommentToken:
		tb.insertComment(tok, nil)
		return
	case DoctypeToken:
		tb.parseError(ErrUnexpectedDoctype, tok)
		return
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "noframes":
			tb.processInHead(tok)
			return
		}
	case EndTagToken:
		if tok.Data == "html" {
			tb.switchMode(afterAfterFramesetMode)
			return
		}
	case EOFToken:
		return
	}
	tb.parseError(ErrStrayStartTag, tok)
}

func (tb *TreeBuilder) processAfterAfterBody(tok *Token) {
	switch tok.Type {
	case CommentToken:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return
	case DoctypeToken:
		tb.processInBody(tok)
		return
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.processInBody(tok)
			return
		}
	case StartTagToken:
		if tok.Data == "html" {
			tb.processInBody(tok)
			return
		}
	case EOFToken:
		return
	}
	tb.switchMode(inBodyMode)
	tb.dispatch(tok)
}

func (tb *TreeBuilder) processAfterAfterFrameset(tok *Token) {
	switch tok.Type {
	case CommentToken:
		tb.document.AppendChild(dom.NewComment(tok.Data))
		return
	case DoctypeToken:
		tb.processInBody(tok)
		return
	case CharacterToken:
		if isAllWhitespace(tok.Data) {
			tb.processInBody(tok)
			return
		}
	case StartTagToken:
		switch tok.Data {
		case "html":
			tb.processInBody(tok)
			return
		case "noframes":
			tb.processInHead(tok)
			return
		}
	case EOFToken:
		return
	}
}
