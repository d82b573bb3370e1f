package html

import "strings"

// Tokenizer implements the WHATWG HTML5 tokenization algorithm (spec.md
// §4.3): a state machine driven one character at a time over the decoded
// input string, emitting Character, StartTag, EndTag, Comment, and Doctype
// tokens plus a terminal EOF token.
//
// Character-reference sub-states are named in tokenizerState for
// completeness but are not individually driven: references are decoded in
// one pass at text-flush and attribute-value-finalization boundaries via
// decodeCharacterReferences (spec.md §4.2, §4.3, §9), which is
// behaviorally equivalent to the per-character machine for well-formed
// input and considerably simpler to keep correct.
type Tokenizer struct {
	src       []rune
	pos       int
	line, col int

	state tokenizerState

	lastStartTag string
	allowCDATA   bool

	errs *errorSink

	queue []Token
	tok   Token

	text strings.Builder // pending character data (Data/RCDATA/RAWTEXT/ScriptData/Plaintext)

	tagName      strings.Builder
	tagIsEnd     bool
	tagSelfClose bool
	tagAttrs     []tagAttr
	attrName     strings.Builder
	attrValue    strings.Builder
	haveAttr     bool

	comment strings.Builder

	doctype Token

	tmp strings.Builder // end-tag-open matching buffer for RCDATA/RAWTEXT/ScriptData

	done bool
}

// NewTokenizer constructs a tokenizer over already-decoded input (spec.md
// §4.1 hands this function UTF-8 text after encoding sniffing). "\r\n" and
// bare "\r" in the input are normalized to "\n" here.
func NewTokenizer(input string, errs *errorSink) *Tokenizer {
	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")
	return &Tokenizer{
		src:   []rune(input),
		line:  1,
		col:   1,
		state: dataState,
		errs:  errs,
	}
}

// SetState forces the tokenizer into state. The tree builder calls this
// after inserting an element whose content model is RCDATA, RAWTEXT,
// ScriptData, or PLAINTEXT (spec.md §4.3, §4.4.7).
func (t *Tokenizer) SetState(s tokenizerState) { t.state = s }

// State returns the tokenizer's current state.
func (t *Tokenizer) State() tokenizerState { return t.state }

// SetLastStartTag records the most recently emitted start tag's name, used
// to recognize the "appropriate end tag token" in RCDATA/RAWTEXT/ScriptData
// (spec.md §4.3).
func (t *Tokenizer) SetLastStartTag(name string) { t.lastStartTag = name }

// SetAllowCDATA toggles whether CDATA sections are parsed as such rather
// than as bogus comments (spec.md §4.3: only true in foreign content).
func (t *Tokenizer) SetAllowCDATA(allow bool) { t.allowCDATA = allow }

// Next returns the next token. The returned pointer is reused on the next
// call; callers must copy any field they retain (spec.md §9).
func (t *Tokenizer) Next() *Token {
	for len(t.queue) == 0 {
		t.step()
	}
	t.tok = t.queue[0]
	t.queue = t.queue[1:]
	return &t.tok
}

func (t *Tokenizer) emit(tok Token) {
	tok.Line, tok.Column = t.line, t.col
	t.queue = append(t.queue, tok)
	if tok.Type == StartTagToken {
		t.lastStartTag = tok.Data
	}
}

func (t *Tokenizer) emitEOF() {
	if t.done {
		t.queue = append(t.queue, Token{Type: EOFToken})
		return
	}
	t.done = true
	t.emit(Token{Type: EOFToken})
}

func (t *Tokenizer) peek() (rune, bool) {
	if t.pos >= len(t.src) {
		return 0, false
	}
	return t.src[t.pos], true
}

func (t *Tokenizer) peekAt(n int) (rune, bool) {
	i := t.pos + n
	if i >= len(t.src) {
		return 0, false
	}
	return t.src[i], true
}

func (t *Tokenizer) advance() (rune, bool) {
	r, ok := t.peek()
	if !ok {
		return 0, false
	}
	t.pos++
	if r == '\n' {
		t.line++
		t.col = 1
	} else {
		t.col++
	}
	return r, true
}

// matchFold consumes s (ASCII) case-insensitively from the current
// position if it matches, returning true on success.
func (t *Tokenizer) matchFold(s string) bool {
	for i, want := range s {
		r, ok := t.peekAt(i)
		if !ok || lowerASCII(r) != lowerASCII(want) {
			return false
		}
	}
	for range s {
		t.advance()
	}
	return true
}

func lowerASCII(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ', '\r':
		return true
	}
	return false
}

func (t *Tokenizer) recordErr(code string) {
	t.errs.record(code, t.line, t.col)
}

// flushText emits the pending character buffer, decoding entities when
// decode is true (RCDATA and Data states decode; RAWTEXT/ScriptData/
// PLAINTEXT/CDATA do not — spec.md §4.2).
func (t *Tokenizer) flushText(decode bool) {
	if t.text.Len() == 0 {
		return
	}
	s := t.text.String()
	t.text.Reset()
	if decode {
		s = decodeCharacterReferences(s, false, t.recordErr)
	}
	t.emit(Token{Type: CharacterToken, Data: s})
}

func (t *Tokenizer) startTag(isEnd bool) {
	t.tagName.Reset()
	t.tagIsEnd = isEnd
	t.tagSelfClose = false
	t.tagAttrs = nil
	t.haveAttr = false
}

func (t *Tokenizer) finishAttr() {
	if !t.haveAttr {
		return
	}
	name := t.attrName.String()
	val := decodeCharacterReferences(t.attrValue.String(), true, t.recordErr)
	t.attrName.Reset()
	t.attrValue.Reset()
	t.haveAttr = false
	for _, a := range t.tagAttrs {
		if a.Name == name {
			t.recordErr(ErrDuplicateAttribute)
			return
		}
	}
	t.tagAttrs = append(t.tagAttrs, tagAttr{Name: name, Value: val})
}

func (t *Tokenizer) emitTag() {
	t.finishAttr()
	tok := Token{
		Type:        StartTagToken,
		Data:        t.tagName.String(),
		Attrs:       t.tagAttrs,
		SelfClosing: t.tagSelfClose,
	}
	if t.tagIsEnd {
		tok.Type = EndTagToken
		if len(tok.Attrs) > 0 {
			t.recordErr(ErrEndTagWithAttributes)
			tok.Attrs = nil
		}
		if tok.SelfClosing {
			t.recordErr(ErrEndTagWithTrailingSolidus)
		}
	}
	t.emit(tok)
}

// step advances the state machine by one character (or EOF), possibly
// queuing one or more tokens.
func (t *Tokenizer) step() {
	switch t.state {
	case dataState:
		t.stepData()
	case rcdataState:
		t.stepRcdata()
	case rawtextState:
		t.stepRawtext()
	case scriptDataState:
		t.stepScriptData()
	case plaintextState:
		t.stepPlaintext()
	case tagOpenState:
		t.stepTagOpen()
	case endTagOpenState:
		t.stepEndTagOpen()
	case tagNameState:
		t.stepTagName()
	case rcdataLessThanSignState:
		t.stepRCDATALessThanSign(rcdataEndTagOpenState, rcdataState)
	case rcdataEndTagOpenState:
		t.stepEndTagOpenInText(rcdataEndTagNameState, rcdataState)
	case rcdataEndTagNameState:
		t.stepEndTagNameInText(rcdataState)
	case rawtextLessThanSignState:
		t.stepRCDATALessThanSign(rawtextEndTagOpenState, rawtextState)
	case rawtextEndTagOpenState:
		t.stepEndTagOpenInText(rawtextEndTagNameState, rawtextState)
	case rawtextEndTagNameState:
		t.stepEndTagNameInText(rawtextState)
	case scriptDataLessThanSignState:
		t.stepScriptDataLessThanSign()
	case scriptDataEndTagOpenState:
		t.stepEndTagOpenInText(scriptDataEndTagNameState, scriptDataState)
	case scriptDataEndTagNameState:
		t.stepEndTagNameInText(scriptDataState)
	case scriptDataEscapeStartState:
		t.stepScriptDataEscapeStart()
	case scriptDataEscapeStartDashState:
		t.stepScriptDataEscapeStartDash()
	case scriptDataEscapedState:
		t.stepScriptDataEscaped()
	case scriptDataEscapedDashState:
		t.stepScriptDataEscapedDash()
	case scriptDataEscapedDashDashState:
		t.stepScriptDataEscapedDashDash()
	case scriptDataEscapedLessThanSignState:
		t.stepScriptDataEscapedLessThanSign()
	case scriptDataEscapedEndTagOpenState:
		t.stepEndTagOpenInText(scriptDataEscapedEndTagNameState, scriptDataEscapedState)
	case scriptDataEscapedEndTagNameState:
		t.stepEndTagNameInText(scriptDataEscapedState)
	case scriptDataDoubleEscapeStartState:
		t.stepScriptDataDoubleEscapeStart()
	case scriptDataDoubleEscapedState:
		t.stepScriptDataDoubleEscaped()
	case scriptDataDoubleEscapedDashState:
		t.stepScriptDataDoubleEscapedDash()
	case scriptDataDoubleEscapedDashDashState:
		t.stepScriptDataDoubleEscapedDashDash()
	case scriptDataDoubleEscapedLessThanSignState:
		t.stepScriptDataDoubleEscapedLessThanSign()
	case scriptDataDoubleEscapeEndState:
		t.stepScriptDataDoubleEscapeEnd()
	case beforeAttributeNameState:
		t.stepBeforeAttributeName()
	case attributeNameState:
		t.stepAttributeName()
	case afterAttributeNameState:
		t.stepAfterAttributeName()
	case beforeAttributeValueState:
		t.stepBeforeAttributeValue()
	case attributeValueDoubleQuotedState:
		t.stepAttributeValueQuoted('"')
	case attributeValueSingleQuotedState:
		t.stepAttributeValueQuoted('\'')
	case attributeValueUnquotedState:
		t.stepAttributeValueUnquoted()
	case afterAttributeValueQuotedState:
		t.stepAfterAttributeValueQuoted()
	case selfClosingStartTagState:
		t.stepSelfClosingStartTag()
	case bogusCommentState:
		t.stepBogusComment()
	case markupDeclarationOpenState:
		t.stepMarkupDeclarationOpen()
	case commentStartState:
		t.stepCommentStart()
	case commentStartDashState:
		t.stepCommentStartDash()
	case commentState:
		t.stepComment()
	case commentLessThanSignState:
		t.stepCommentLessThanSign()
	case commentLessThanSignBangState:
		t.stepCommentLessThanSignBang()
	case commentLessThanSignBangDashState:
		t.stepCommentLessThanSignBangDash()
	case commentLessThanSignBangDashDashState:
		t.stepCommentLessThanSignBangDashDash()
	case commentEndDashState:
		t.stepCommentEndDash()
	case commentEndState:
		t.stepCommentEnd()
	case commentEndBangState:
		t.stepCommentEndBang()
	case doctypeState:
		t.stepDoctype()
	case beforeDoctypeNameState:
		t.stepBeforeDoctypeName()
	case doctypeNameState:
		t.stepDoctypeName()
	case afterDoctypeNameState:
		t.stepAfterDoctypeName()
	case afterDoctypePublicKeywordState:
		t.stepAfterDoctypeKeyword(true)
	case beforeDoctypePublicIdentifierState:
		t.stepBeforeDoctypeIdentifier(true)
	case doctypePublicIdentifierDoubleQuotedState:
		t.stepDoctypeIdentifierQuoted(true, '"')
	case doctypePublicIdentifierSingleQuotedState:
		t.stepDoctypeIdentifierQuoted(true, '\'')
	case afterDoctypePublicIdentifierState:
		t.stepAfterDoctypeIdentifier(true)
	case betweenDoctypePublicAndSystemIdentifiersState:
		t.stepBetweenDoctypeIdentifiers()
	case afterDoctypeSystemKeywordState:
		t.stepAfterDoctypeKeyword(false)
	case beforeDoctypeSystemIdentifierState:
		t.stepBeforeDoctypeIdentifier(false)
	case doctypeSystemIdentifierDoubleQuotedState:
		t.stepDoctypeIdentifierQuoted(false, '"')
	case doctypeSystemIdentifierSingleQuotedState:
		t.stepDoctypeIdentifierQuoted(false, '\'')
	case afterDoctypeSystemIdentifierState:
		t.stepAfterDoctypeSystemIdentifier()
	case bogusDoctypeState:
		t.stepBogusDoctype()
	case cdataSectionState:
		t.stepCDATASection()
	case cdataSectionBracketState:
		t.stepCDATASectionBracket()
	case cdataSectionEndState:
		t.stepCDATASectionEnd()
	default:
		// Character-reference sub-states are not individually driven
		// (see the Tokenizer doc comment); reaching one is a bug.
		t.state = dataState
	}
}

func (t *Tokenizer) stepData() {
	r, ok := t.advance()
	if !ok {
		t.flushText(true)
		t.emitEOF()
		return
	}
	switch r {
	case '<':
		t.flushText(true)
		t.state = tagOpenState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
	default:
		t.text.WriteRune(r)
	}
}

func (t *Tokenizer) stepRcdata() {
	r, ok := t.advance()
	if !ok {
		t.flushText(true)
		t.emitEOF()
		return
	}
	switch r {
	case '<':
		t.flushText(true)
		t.state = rcdataLessThanSignState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
	default:
		t.text.WriteRune(r)
	}
}

func (t *Tokenizer) stepRawtext() {
	r, ok := t.advance()
	if !ok {
		t.flushText(false)
		t.emitEOF()
		return
	}
	switch r {
	case '<':
		t.flushText(false)
		t.state = rawtextLessThanSignState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
	default:
		t.text.WriteRune(r)
	}
}

func (t *Tokenizer) stepScriptData() {
	r, ok := t.advance()
	if !ok {
		t.flushText(false)
		t.emitEOF()
		return
	}
	switch r {
	case '<':
		t.flushText(false)
		t.state = scriptDataLessThanSignState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
	default:
		t.text.WriteRune(r)
	}
}

func (t *Tokenizer) stepPlaintext() {
	r, ok := t.advance()
	if !ok {
		t.flushText(false)
		t.emitEOF()
		return
	}
	if r == 0 {
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
		return
	}
	t.text.WriteRune(r)
}

func (t *Tokenizer) stepTagOpen() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFBeforeTagName)
		t.text.WriteRune('<')
		t.flushText(true)
		t.emitEOF()
		return
	}
	switch {
	case r == '!':
		t.advance()
		t.state = markupDeclarationOpenState
	case r == '/':
		t.advance()
		t.state = endTagOpenState
	case isASCIIAlnum(r):
		t.startTag(false)
		t.state = tagNameState
	case r == '?':
		t.recordErr(ErrUnexpectedQuestionMarkInsteadOf)
		t.comment.Reset()
		t.state = bogusCommentState
	default:
		t.recordErr(ErrInvalidFirstCharOfTagName)
		t.text.WriteRune('<')
		t.state = dataState
	}
}

func (t *Tokenizer) stepEndTagOpen() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFBeforeTagName)
		t.text.WriteString("</")
		t.flushText(true)
		t.emitEOF()
		return
	}
	switch {
	case isASCIIAlnum(r):
		t.startTag(true)
		t.state = tagNameState
	case r == '>':
		t.advance()
		t.recordErr(ErrMissingEndTagName)
		t.state = dataState
	default:
		t.recordErr(ErrInvalidFirstCharOfTagName)
		t.comment.Reset()
		t.state = bogusCommentState
	}
}

func (t *Tokenizer) stepTagName() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInTag)
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.state = beforeAttributeNameState
	case r == '/':
		t.state = selfClosingStartTagState
	case r == '>':
		t.state = dataState
		t.emitTag()
	case r >= 'A' && r <= 'Z':
		t.tagName.WriteRune(r + ('a' - 'A'))
	case r == 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.tagName.WriteRune('�')
	default:
		t.tagName.WriteRune(r)
	}
}

// stepRCDATALessThanSign handles the "<" seen inside RCDATA/RAWTEXT: a "/"
// begins a candidate end tag, anything else is ordinary text.
func (t *Tokenizer) stepRCDATALessThanSign(openState, textState tokenizerState) {
	r, ok := t.peek()
	if ok && r == '/' {
		t.advance()
		t.tmp.Reset()
		t.state = openState
		return
	}
	t.text.WriteRune('<')
	t.state = textState
}

func (t *Tokenizer) stepEndTagOpenInText(nameState, textState tokenizerState) {
	r, ok := t.peek()
	if ok && isASCIIAlnum(r) {
		t.startTag(true)
		t.state = nameState
		return
	}
	t.text.WriteString("</")
	t.state = textState
}

// appropriateEndTag reports whether the tag name currently being built
// matches the last emitted start tag (spec.md §4.3's "appropriate end tag
// token"), required before RCDATA/RAWTEXT/ScriptData honor a "</name"
// sequence as a real end tag rather than literal text.
func (t *Tokenizer) appropriateEndTag() bool {
	return t.lastStartTag != "" && strings.EqualFold(t.tagName.String(), t.lastStartTag)
}

func (t *Tokenizer) stepEndTagNameInText(textState tokenizerState) {
	r, ok := t.peek()
	if ok {
		switch {
		case isWhitespace(r) && t.appropriateEndTag():
			t.advance()
			t.state = beforeAttributeNameState
			return
		case r == '/' && t.appropriateEndTag():
			t.advance()
			t.state = selfClosingStartTagState
			return
		case r == '>' && t.appropriateEndTag():
			t.advance()
			t.state = dataState
			t.emitTag()
			return
		case r >= 'A' && r <= 'Z':
			t.advance()
			t.tagName.WriteRune(r + ('a' - 'A'))
			t.tmp.WriteRune(r)
			return
		case isASCIIAlnum(r):
			t.advance()
			t.tagName.WriteRune(r)
			t.tmp.WriteRune(r)
			return
		}
	}
	t.text.WriteString("</")
	t.text.WriteString(t.tagName.String())
	t.state = textState
}

func (t *Tokenizer) stepScriptDataLessThanSign() {
	r, ok := t.peek()
	switch {
	case ok && r == '/':
		t.advance()
		t.tmp.Reset()
		t.state = scriptDataEndTagOpenState
	case ok && r == '!':
		t.advance()
		t.text.WriteString("<!")
		t.state = scriptDataEscapeStartState
	default:
		t.text.WriteRune('<')
		t.state = scriptDataState
	}
}

func (t *Tokenizer) stepScriptDataEscapeStart() {
	r, ok := t.peek()
	if ok && r == '-' {
		t.advance()
		t.text.WriteRune('-')
		t.state = scriptDataEscapeStartDashState
		return
	}
	t.state = scriptDataState
}

func (t *Tokenizer) stepScriptDataEscapeStartDash() {
	r, ok := t.peek()
	if ok && r == '-' {
		t.advance()
		t.text.WriteRune('-')
		t.state = scriptDataEscapedDashDashState
		return
	}
	t.state = scriptDataState
}

func (t *Tokenizer) stepScriptDataEscaped() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInScriptHTMLCommentLikeText)
		t.flushText(false)
		t.emitEOF()
		return
	}
	switch r {
	case '-':
		t.text.WriteRune('-')
		t.state = scriptDataEscapedDashState
	case '<':
		t.state = scriptDataEscapedLessThanSignState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
	default:
		t.text.WriteRune(r)
	}
}

func (t *Tokenizer) stepScriptDataEscapedDash() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInScriptHTMLCommentLikeText)
		t.flushText(false)
		t.emitEOF()
		return
	}
	switch r {
	case '-':
		t.text.WriteRune('-')
		t.state = scriptDataEscapedDashDashState
	case '<':
		t.state = scriptDataEscapedLessThanSignState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
		t.state = scriptDataEscapedState
	default:
		t.text.WriteRune(r)
		t.state = scriptDataEscapedState
	}
}

func (t *Tokenizer) stepScriptDataEscapedDashDash() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInScriptHTMLCommentLikeText)
		t.flushText(false)
		t.emitEOF()
		return
	}
	switch r {
	case '-':
		t.text.WriteRune('-')
	case '<':
		t.state = scriptDataEscapedLessThanSignState
	case '>':
		t.text.WriteRune('>')
		t.state = scriptDataState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
		t.state = scriptDataEscapedState
	default:
		t.text.WriteRune(r)
		t.state = scriptDataEscapedState
	}
}

func (t *Tokenizer) stepScriptDataEscapedLessThanSign() {
	r, ok := t.peek()
	switch {
	case ok && r == '/':
		t.advance()
		t.tmp.Reset()
		t.state = scriptDataEscapedEndTagOpenState
	case ok && isASCIIAlnum(r):
		t.tmp.Reset()
		t.text.WriteRune('<')
		t.state = scriptDataDoubleEscapeStartState
	default:
		t.text.WriteRune('<')
		t.state = scriptDataEscapedState
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapeStart() {
	r, ok := t.peek()
	if ok && (isWhitespace(r) || r == '/' || r == '>') {
		t.advance()
		t.text.WriteRune(r)
		if strings.EqualFold(t.tmp.String(), "script") {
			t.state = scriptDataDoubleEscapedState
		} else {
			t.state = scriptDataEscapedState
		}
		return
	}
	if ok && isASCIIAlnum(r) {
		t.advance()
		t.tmp.WriteRune(lowerASCII(r))
		t.text.WriteRune(r)
		return
	}
	t.state = scriptDataEscapedState
}

func (t *Tokenizer) stepScriptDataDoubleEscaped() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInScriptHTMLCommentLikeText)
		t.flushText(false)
		t.emitEOF()
		return
	}
	switch r {
	case '-':
		t.text.WriteRune('-')
		t.state = scriptDataDoubleEscapedDashState
	case '<':
		t.text.WriteRune('<')
		t.state = scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
	default:
		t.text.WriteRune(r)
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedDash() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInScriptHTMLCommentLikeText)
		t.flushText(false)
		t.emitEOF()
		return
	}
	switch r {
	case '-':
		t.text.WriteRune('-')
		t.state = scriptDataDoubleEscapedDashDashState
	case '<':
		t.text.WriteRune('<')
		t.state = scriptDataDoubleEscapedLessThanSignState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
		t.state = scriptDataDoubleEscapedState
	default:
		t.text.WriteRune(r)
		t.state = scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedDashDash() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInScriptHTMLCommentLikeText)
		t.flushText(false)
		t.emitEOF()
		return
	}
	switch r {
	case '-':
		t.text.WriteRune('-')
	case '<':
		t.text.WriteRune('<')
		t.state = scriptDataDoubleEscapedLessThanSignState
	case '>':
		t.text.WriteRune('>')
		t.state = scriptDataState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.text.WriteRune('�')
		t.state = scriptDataDoubleEscapedState
	default:
		t.text.WriteRune(r)
		t.state = scriptDataDoubleEscapedState
	}
}

func (t *Tokenizer) stepScriptDataDoubleEscapedLessThanSign() {
	r, ok := t.peek()
	if ok && r == '/' {
		t.advance()
		t.tmp.Reset()
		t.text.WriteRune('/')
		t.state = scriptDataDoubleEscapeEndState
		return
	}
	t.state = scriptDataDoubleEscapedState
}

func (t *Tokenizer) stepScriptDataDoubleEscapeEnd() {
	r, ok := t.peek()
	if ok && (isWhitespace(r) || r == '/' || r == '>') {
		t.advance()
		t.text.WriteRune(r)
		if strings.EqualFold(t.tmp.String(), "script") {
			t.state = scriptDataEscapedState
		} else {
			t.state = scriptDataDoubleEscapedState
		}
		return
	}
	if ok && isASCIIAlnum(r) {
		t.advance()
		t.tmp.WriteRune(lowerASCII(r))
		t.text.WriteRune(r)
		return
	}
	t.state = scriptDataDoubleEscapedState
}

func (t *Tokenizer) stepBeforeAttributeName() {
	r, ok := t.peek()
	if !ok {
		t.state = tagNameState
		t.recordErr(ErrEOFInTag)
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
	case r == '/' || r == '>':
		t.finishAttr()
		t.state = afterAttributeNameState
	case r == '=':
		t.advance()
		t.recordErr(ErrUnexpectedEqualsSignBeforeAttr)
		t.finishAttr()
		t.haveAttr = true
		t.attrName.WriteRune(r)
		t.state = attributeNameState
	default:
		t.finishAttr()
		t.haveAttr = true
		t.state = attributeNameState
	}
}

func (t *Tokenizer) stepAttributeName() {
	r, ok := t.peek()
	if !ok {
		t.state = afterAttributeNameState
		return
	}
	switch {
	case isWhitespace(r) || r == '/' || r == '>':
		t.state = afterAttributeNameState
	case r == '=':
		t.advance()
		t.state = beforeAttributeValueState
	case r >= 'A' && r <= 'Z':
		t.advance()
		t.attrName.WriteRune(r + ('a' - 'A'))
	case r == 0:
		t.advance()
		t.recordErr(ErrUnexpectedNullCharacter)
		t.attrName.WriteRune('�')
	case r == '"' || r == '\'' || r == '<':
		t.advance()
		t.recordErr(ErrUnexpectedCharInAttrName)
		t.attrName.WriteRune(r)
	default:
		t.advance()
		t.attrName.WriteRune(r)
	}
}

func (t *Tokenizer) stepAfterAttributeName() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInTag)
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
	case r == '/':
		t.advance()
		t.state = selfClosingStartTagState
	case r == '=':
		t.advance()
		t.state = beforeAttributeValueState
	case r == '>':
		t.advance()
		t.state = dataState
		t.emitTag()
	default:
		t.haveAttr = true
		t.state = attributeNameState
	}
}

func (t *Tokenizer) stepBeforeAttributeValue() {
	r, ok := t.peek()
	if !ok {
		t.state = attributeValueUnquotedState
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
	case r == '"':
		t.advance()
		t.state = attributeValueDoubleQuotedState
	case r == '\'':
		t.advance()
		t.state = attributeValueSingleQuotedState
	case r == '>':
		t.advance()
		t.recordErr(ErrMissingAttributeValue)
		t.state = dataState
		t.emitTag()
	default:
		t.state = attributeValueUnquotedState
	}
}

func (t *Tokenizer) stepAttributeValueQuoted(quote rune) {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInTag)
		t.emitEOF()
		return
	}
	switch {
	case r == quote:
		t.state = afterAttributeValueQuotedState
	case r == 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.attrValue.WriteRune('�')
	default:
		t.attrValue.WriteRune(r)
	}
}

func (t *Tokenizer) stepAttributeValueUnquoted() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInTag)
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.state = beforeAttributeNameState
	case r == '>':
		t.state = dataState
		t.emitTag()
	case r == 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.attrValue.WriteRune('�')
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		t.recordErr(ErrUnexpectedCharInUnquotedAttr)
		t.attrValue.WriteRune(r)
	default:
		t.attrValue.WriteRune(r)
	}
}

func (t *Tokenizer) stepAfterAttributeValueQuoted() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInTag)
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
		t.state = beforeAttributeNameState
	case r == '/':
		t.advance()
		t.state = selfClosingStartTagState
	case r == '>':
		t.advance()
		t.state = dataState
		t.emitTag()
	default:
		t.recordErr(ErrMissingWhitespaceBetweenAttrs)
		t.state = beforeAttributeNameState
	}
}

func (t *Tokenizer) stepSelfClosingStartTag() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInTag)
		t.emitEOF()
		return
	}
	if r == '>' {
		t.advance()
		t.tagSelfClose = true
		t.state = dataState
		t.emitTag()
		return
	}
	t.recordErr(ErrUnexpectedSolidusInTag)
	t.state = beforeAttributeNameState
}

func (t *Tokenizer) stepBogusComment() {
	r, ok := t.advance()
	if !ok {
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emitEOF()
		return
	}
	switch r {
	case '>':
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.state = dataState
	case 0:
		t.comment.WriteRune('�')
	default:
		t.comment.WriteRune(r)
	}
}

func (t *Tokenizer) stepMarkupDeclarationOpen() {
	if t.matchFold("--") {
		t.comment.Reset()
		t.state = commentStartState
		return
	}
	if t.matchFold("DOCTYPE") {
		t.state = doctypeState
		return
	}
	if t.allowCDATA && t.matchFold("[CDATA[") {
		t.state = cdataSectionState
		return
	}
	t.recordErr(ErrIncorrectlyOpenedComment)
	t.comment.Reset()
	t.state = bogusCommentState
}

func (t *Tokenizer) stepCommentStart() {
	r, ok := t.peek()
	if ok && r == '-' {
		t.advance()
		t.state = commentStartDashState
		return
	}
	if ok && r == '>' {
		t.advance()
		t.recordErr(ErrAbruptClosingOfEmptyComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.state = dataState
		return
	}
	t.state = commentState
}

func (t *Tokenizer) stepCommentStartDash() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emitEOF()
		return
	}
	switch r {
	case '-':
		t.advance()
		t.state = commentEndState
	case '>':
		t.advance()
		t.recordErr(ErrAbruptClosingOfEmptyComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.state = dataState
	default:
		t.comment.WriteRune('-')
		t.state = commentState
	}
}

func (t *Tokenizer) stepComment() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emitEOF()
		return
	}
	switch r {
	case '<':
		t.comment.WriteRune('<')
		t.state = commentLessThanSignState
	case '-':
		t.state = commentEndDashState
	case 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.comment.WriteRune('�')
	default:
		t.comment.WriteRune(r)
	}
}

func (t *Tokenizer) stepCommentLessThanSign() {
	r, ok := t.peek()
	switch {
	case ok && r == '!':
		t.advance()
		t.comment.WriteRune('!')
		t.state = commentLessThanSignBangState
	case ok && r == '<':
		t.advance()
		t.comment.WriteRune('<')
	default:
		t.state = commentState
	}
}

func (t *Tokenizer) stepCommentLessThanSignBang() {
	r, ok := t.peek()
	if ok && r == '-' {
		t.advance()
		t.state = commentLessThanSignBangDashState
		return
	}
	t.state = commentState
}

func (t *Tokenizer) stepCommentLessThanSignBangDash() {
	r, ok := t.peek()
	if ok && r == '-' {
		t.advance()
		t.state = commentLessThanSignBangDashDashState
		return
	}
	t.state = commentEndDashState
}

func (t *Tokenizer) stepCommentLessThanSignBangDashDash() {
	t.state = commentEndState
}

func (t *Tokenizer) stepCommentEndDash() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emitEOF()
		return
	}
	if r == '-' {
		t.advance()
		t.state = commentEndState
		return
	}
	t.comment.WriteRune('-')
	t.state = commentState
}

func (t *Tokenizer) stepCommentEnd() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emitEOF()
		return
	}
	switch r {
	case '>':
		t.advance()
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.state = dataState
	case '!':
		t.advance()
		t.state = commentEndBangState
	case '-':
		t.advance()
		t.comment.WriteRune('-')
	default:
		t.comment.WriteString("--")
		t.state = commentState
	}
}

func (t *Tokenizer) stepCommentEndBang() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.emitEOF()
		return
	}
	switch r {
	case '-':
		t.advance()
		t.comment.WriteString("--!")
		t.state = commentEndDashState
	case '>':
		t.advance()
		t.recordErr(ErrIncorrectlyClosedComment)
		t.emit(Token{Type: CommentToken, Data: t.comment.String()})
		t.state = dataState
	default:
		t.comment.WriteString("--!")
		t.state = commentState
	}
}

func (t *Tokenizer) newDoctype() {
	t.doctype = Token{Type: DoctypeToken}
}

func (t *Tokenizer) emitDoctype() {
	t.emit(t.doctype)
}

func (t *Tokenizer) stepDoctype() {
	r, ok := t.peek()
	t.newDoctype()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	if isWhitespace(r) {
		t.advance()
		t.state = beforeDoctypeNameState
		return
	}
	if r == '>' {
		t.state = beforeDoctypeNameState
		return
	}
	t.recordErr(ErrMissingWhitespaceBeforeDoctype)
	t.state = beforeDoctypeNameState
}

func (t *Tokenizer) stepBeforeDoctypeName() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
	case r == '>':
		t.advance()
		t.recordErr(ErrMissingDoctypeName)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		t.state = doctypeNameState
	}
}

func (t *Tokenizer) stepDoctypeName() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.state = afterDoctypeNameState
	case r == '>':
		t.emitDoctype()
		t.state = dataState
	case r >= 'A' && r <= 'Z':
		t.doctype.DoctypeName += string(r + ('a' - 'A'))
	case r == 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		t.doctype.DoctypeName += "�"
	default:
		t.doctype.DoctypeName += string(r)
	}
}

func (t *Tokenizer) stepAfterDoctypeName() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	if isWhitespace(r) {
		t.advance()
		return
	}
	if r == '>' {
		t.advance()
		t.emitDoctype()
		t.state = dataState
		return
	}
	if t.matchFold("PUBLIC") {
		t.state = afterDoctypePublicKeywordState
		return
	}
	if t.matchFold("SYSTEM") {
		t.state = afterDoctypeSystemKeywordState
		return
	}
	t.advance()
	t.recordErr(ErrInvalidCharSequenceAfterDoctype)
	t.doctype.ForceQuirks = true
	t.state = bogusDoctypeState
}

func (t *Tokenizer) stepAfterDoctypeKeyword(public bool) {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
		if public {
			t.state = beforeDoctypePublicIdentifierState
		} else {
			t.state = beforeDoctypeSystemIdentifierState
		}
	case r == '"' || r == '\'':
		if public {
			t.recordErr(ErrMissingWhitespaceAfterDoctype)
		} else {
			t.recordErr(ErrMissingWhitespaceAfterSystemKw)
		}
		t.advance()
		t.beginIdentifier(public)
		t.state = t.quotedIdentifierState(public, r)
	case r == '>':
		t.advance()
		if public {
			t.recordErr(ErrMissingQuoteBeforePublicID)
		} else {
			t.recordErr(ErrMissingQuoteBeforeSystemID)
		}
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		if public {
			t.recordErr(ErrMissingQuoteBeforePublicID)
		} else {
			t.recordErr(ErrMissingQuoteBeforeSystemID)
		}
		t.doctype.ForceQuirks = true
		t.state = bogusDoctypeState
	}
}

func (t *Tokenizer) beginIdentifier(public bool) {
	if public {
		t.doctype.HasPublicID = true
	} else {
		t.doctype.HasSystemID = true
	}
}

func (t *Tokenizer) quotedIdentifierState(public bool, quote rune) tokenizerState {
	if public && quote == '"' {
		return doctypePublicIdentifierDoubleQuotedState
	}
	if public {
		return doctypePublicIdentifierSingleQuotedState
	}
	if quote == '"' {
		return doctypeSystemIdentifierDoubleQuotedState
	}
	return doctypeSystemIdentifierSingleQuotedState
}

func (t *Tokenizer) stepBeforeDoctypeIdentifier(public bool) {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
	case r == '"' || r == '\'':
		t.advance()
		t.beginIdentifier(public)
		t.state = t.quotedIdentifierState(public, r)
	case r == '>':
		t.advance()
		if public {
			t.recordErr(ErrMissingQuoteBeforePublicID)
		} else {
			t.recordErr(ErrMissingQuoteBeforeSystemID)
		}
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		if public {
			t.recordErr(ErrMissingQuoteBeforePublicID)
		} else {
			t.recordErr(ErrMissingQuoteBeforeSystemID)
		}
		t.doctype.ForceQuirks = true
		t.state = bogusDoctypeState
	}
}

func (t *Tokenizer) stepDoctypeIdentifierQuoted(public bool, quote rune) {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	field := &t.doctype.DoctypeSystemID
	if public {
		field = &t.doctype.DoctypePublicID
	}
	switch {
	case r == quote:
		if public {
			t.state = afterDoctypePublicIdentifierState
		} else {
			t.state = afterDoctypeSystemIdentifierState
		}
	case r == 0:
		t.recordErr(ErrUnexpectedNullCharacter)
		*field += "�"
	case r == '>':
		if public {
			t.recordErr(ErrAbruptDoctypePublicIdentifier)
		} else {
			t.recordErr(ErrAbruptDoctypeSystemIdentifier)
		}
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.state = dataState
	default:
		*field += string(r)
	}
}

func (t *Tokenizer) stepAfterDoctypeIdentifier(public bool) {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
	case r == '>':
		t.advance()
		t.emitDoctype()
		t.state = dataState
	case public && (r == '"' || r == '\''):
		t.recordErr(ErrMissingWhitespaceBetweenPubSys)
		t.advance()
		t.beginIdentifier(false)
		t.state = t.quotedIdentifierState(false, r)
	default:
		t.recordErr(ErrUnexpectedCharAfterDoctypeSys)
		t.doctype.ForceQuirks = true
		t.state = bogusDoctypeState
	}
}

func (t *Tokenizer) stepBetweenDoctypeIdentifiers() {
	t.stepAfterDoctypeIdentifier(true)
}

func (t *Tokenizer) stepAfterDoctypeSystemIdentifier() {
	r, ok := t.peek()
	if !ok {
		t.recordErr(ErrEOFInDoctype)
		t.doctype.ForceQuirks = true
		t.emitDoctype()
		t.emitEOF()
		return
	}
	switch {
	case isWhitespace(r):
		t.advance()
	case r == '>':
		t.advance()
		t.emitDoctype()
		t.state = dataState
	default:
		t.recordErr(ErrUnexpectedCharAfterDoctypeSys)
		t.state = bogusDoctypeState
	}
}

func (t *Tokenizer) stepBogusDoctype() {
	r, ok := t.advance()
	if !ok {
		t.emitDoctype()
		t.emitEOF()
		return
	}
	if r == '>' {
		t.emitDoctype()
		t.state = dataState
	}
}

func (t *Tokenizer) stepCDATASection() {
	r, ok := t.advance()
	if !ok {
		t.recordErr(ErrEOFInCDATA)
		t.flushText(false)
		t.emitEOF()
		return
	}
	if r == ']' {
		t.state = cdataSectionBracketState
		return
	}
	if r == 0 {
		t.text.WriteRune(0)
		return
	}
	t.text.WriteRune(r)
}

func (t *Tokenizer) stepCDATASectionBracket() {
	r, ok := t.peek()
	if ok && r == ']' {
		t.advance()
		t.state = cdataSectionEndState
		return
	}
	t.text.WriteRune(']')
	t.state = cdataSectionState
}

func (t *Tokenizer) stepCDATASectionEnd() {
	r, ok := t.peek()
	switch {
	case ok && r == ']':
		t.advance()
		t.text.WriteRune(']')
	case ok && r == '>':
		t.advance()
		t.flushText(false)
		t.state = dataState
	default:
		t.text.WriteString("]]")
		t.state = cdataSectionState
	}
}
