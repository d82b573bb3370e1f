package html

import (
	"errors"
	"fmt"
)

// ErrUnsupportedEncoding is returned when a resolved encoding has no decoder
// wired (spec.md §4.1 names windows-1252 as the universal fallback, so this
// should not surface from DecodeDocument itself).
var ErrUnsupportedEncoding = errors.New("html: unsupported encoding")

// ParseError is a single recoverable parse error recorded during
// tokenization or tree construction (spec.md §6, §7). Code is a stable
// kebab-case identifier; Line and Column are 1-indexed.
type ParseError struct {
	Code    string
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s (%s)", e.Line, e.Column, e.Message, e.Code)
}

// Parse error codes. Mirrors the WHATWG tokenization and tree-construction
// error list; names are the stable kebab-case identifiers callers match on.
const (
	ErrAbruptClosingOfEmptyComment     = "abrupt-closing-of-empty-comment"
	ErrAbruptDoctypePublicIdentifier   = "abrupt-doctype-public-identifier"
	ErrAbruptDoctypeSystemIdentifier   = "abrupt-doctype-system-identifier"
	ErrAbsenceOfDigitsInNumericCharRef = "absence-of-digits-in-numeric-character-reference"
	ErrCDATAInHTMLContent              = "cdata-in-html-content"
	ErrCharRefOutsideUnicodeRange      = "character-reference-outside-unicode-range"
	ErrControlCharInInputStream        = "control-character-in-input-stream"
	ErrControlCharReference            = "control-character-reference"
	ErrDuplicateAttribute              = "duplicate-attribute"
	ErrEndTagWithAttributes            = "end-tag-with-attributes"
	ErrEndTagWithTrailingSolidus       = "end-tag-with-trailing-solidus"
	ErrEOFBeforeTagName                = "eof-before-tag-name"
	ErrEOFInCDATA                      = "eof-in-cdata"
	ErrEOFInComment                    = "eof-in-comment"
	ErrEOFInDoctype                    = "eof-in-doctype"
	ErrEOFInScriptHTMLCommentLikeText  = "eof-in-script-html-comment-like-text"
	ErrEOFInTag                        = "eof-in-tag"
	ErrIncorrectlyClosedComment        = "incorrectly-closed-comment"
	ErrIncorrectlyOpenedComment        = "incorrectly-opened-comment"
	ErrInvalidCharSequenceAfterDoctype = "invalid-character-sequence-after-doctype-name"
	ErrInvalidFirstCharOfTagName       = "invalid-first-character-of-tag-name"
	ErrMissingAttributeValue           = "missing-attribute-value"
	ErrMissingDoctypeName              = "missing-doctype-name"
	ErrMissingDoctypePublicIdentifier  = "missing-doctype-public-identifier"
	ErrMissingDoctypeSystemIdentifier  = "missing-doctype-system-identifier"
	ErrMissingEndTagName               = "missing-end-tag-name"
	ErrMissingQuoteBeforePublicID      = "missing-quote-before-doctype-public-identifier"
	ErrMissingQuoteBeforeSystemID      = "missing-quote-before-doctype-system-identifier"
	ErrMissingSemicolonAfterCharRef    = "missing-semicolon-after-character-reference"
	ErrMissingWhitespaceAfterDoctype   = "missing-whitespace-after-doctype-public-keyword"
	ErrMissingWhitespaceAfterSystemKw  = "missing-whitespace-after-doctype-system-keyword"
	ErrMissingWhitespaceBeforeDoctype  = "missing-whitespace-before-doctype-name"
	ErrMissingWhitespaceBetweenAttrs   = "missing-whitespace-between-attributes"
	ErrMissingWhitespaceBetweenPubSys  = "missing-whitespace-between-doctype-public-and-system-identifiers"
	ErrNestedComment                   = "nested-comment"
	ErrNonCharInInputStream            = "noncharacter-character-reference"
	ErrNonVoidHTMLElementStartTagWith  = "non-void-html-element-start-tag-with-trailing-solidus"
	ErrNullCharRef                     = "null-character-reference"
	ErrSurrogateCharRef                = "surrogate-character-reference"
	ErrUnexpectedCharAfterDoctypeSys   = "unexpected-character-after-doctype-system-identifier"
	ErrUnexpectedCharInAttrName        = "unexpected-character-in-attribute-name"
	ErrUnexpectedCharInUnquotedAttr    = "unexpected-character-in-unquoted-attribute-value"
	ErrUnexpectedEqualsSignBeforeAttr  = "unexpected-equals-sign-before-attribute-name"
	ErrUnexpectedNullCharacter         = "unexpected-null-character"
	ErrUnexpectedQuestionMarkInsteadOf = "unexpected-question-mark-instead-of-tag-name"
	ErrUnexpectedSolidusInTag          = "unexpected-solidus-in-tag"
	ErrUnknownNamedCharacterReference  = "unknown-named-character-reference"

	ErrUnexpectedDoctype               = "unexpected-doctype"
	ErrUnexpectedStartTagImpliesTable  = "unexpected-start-tag-implies-table-voodoo"
	ErrUnexpectedEndTag                = "unexpected-end-tag"
	ErrUnexpectedStartTag              = "unexpected-start-tag"
	ErrUnexpectedCellEndTag            = "unexpected-cell-end-tag"
	ErrUnclosedElements                = "unclosed-elements"
	ErrStrayStartTag                   = "stray-start-tag"
	ErrStrayEndTag                     = "stray-end-tag"
	ErrMisplacedDoctype                = "misplaced-doctype"
	ErrMisplacedStartTagForHeadElement = "misplaced-start-tag-for-head-element"
	ErrFosterParentedCharacter         = "foster-parented-character"
	ErrFosterParentedElement           = "foster-parented-element"
	ErrNonSpaceCharacterInTableText    = "non-space-character-in-table-text"
	ErrNestedFormElement               = "nested-form-element"
	ErrGenericParseError               = "generic-parse-error"
)

var errorMessages = map[string]string{
	ErrAbruptClosingOfEmptyComment:     "abrupt closing of empty comment",
	ErrAbruptDoctypePublicIdentifier:   "abrupt doctype public identifier",
	ErrAbruptDoctypeSystemIdentifier:   "abrupt doctype system identifier",
	ErrAbsenceOfDigitsInNumericCharRef: "numeric character reference has no digits",
	ErrCDATAInHTMLContent:              "CDATA section outside foreign content",
	ErrCharRefOutsideUnicodeRange:      "character reference outside unicode range",
	ErrControlCharInInputStream:        "control character in input stream",
	ErrControlCharReference:            "control character reference",
	ErrDuplicateAttribute:              "duplicate attribute",
	ErrEndTagWithAttributes:            "end tag with attributes",
	ErrEndTagWithTrailingSolidus:       "end tag with trailing solidus",
	ErrEOFBeforeTagName:                "end of file before tag name",
	ErrEOFInCDATA:                      "end of file in CDATA section",
	ErrEOFInComment:                    "end of file in comment",
	ErrEOFInDoctype:                    "end of file in doctype",
	ErrEOFInScriptHTMLCommentLikeText:  "end of file in script HTML comment-like text",
	ErrEOFInTag:                        "end of file in tag",
	ErrIncorrectlyClosedComment:        "incorrectly closed comment",
	ErrIncorrectlyOpenedComment:        "incorrectly opened comment",
	ErrInvalidCharSequenceAfterDoctype: "invalid character sequence after doctype name",
	ErrInvalidFirstCharOfTagName:       "invalid first character of tag name",
	ErrMissingAttributeValue:           "missing attribute value",
	ErrMissingDoctypeName:              "missing doctype name",
	ErrMissingDoctypePublicIdentifier:  "missing doctype public identifier",
	ErrMissingDoctypeSystemIdentifier:  "missing doctype system identifier",
	ErrMissingEndTagName:               "missing end tag name",
	ErrMissingQuoteBeforePublicID:      "missing quote before doctype public identifier",
	ErrMissingQuoteBeforeSystemID:      "missing quote before doctype system identifier",
	ErrMissingSemicolonAfterCharRef:    "missing semicolon after character reference",
	ErrMissingWhitespaceAfterDoctype:   "missing whitespace after doctype public keyword",
	ErrMissingWhitespaceAfterSystemKw:  "missing whitespace after doctype system keyword",
	ErrMissingWhitespaceBeforeDoctype:  "missing whitespace before doctype name",
	ErrMissingWhitespaceBetweenAttrs:   "missing whitespace between attributes",
	ErrMissingWhitespaceBetweenPubSys:  "missing whitespace between doctype public and system identifiers",
	ErrNestedComment:                   "nested comment",
	ErrNonCharInInputStream:            "noncharacter character reference",
	ErrNonVoidHTMLElementStartTagWith:  "non-void HTML element start tag with trailing solidus",
	ErrNullCharRef:                     "null character reference",
	ErrSurrogateCharRef:                "surrogate character reference",
	ErrUnexpectedCharAfterDoctypeSys:   "unexpected character after doctype system identifier",
	ErrUnexpectedCharInAttrName:        "unexpected character in attribute name",
	ErrUnexpectedCharInUnquotedAttr:    "unexpected character in unquoted attribute value",
	ErrUnexpectedEqualsSignBeforeAttr:  "unexpected equals sign before attribute name",
	ErrUnexpectedNullCharacter:         "unexpected null character",
	ErrUnexpectedQuestionMarkInsteadOf: "unexpected question mark instead of tag name",
	ErrUnexpectedSolidusInTag:          "unexpected solidus in tag",
	ErrUnknownNamedCharacterReference:  "unknown named character reference",

	ErrUnexpectedDoctype:               "unexpected doctype",
	ErrUnexpectedStartTagImpliesTable:  "unexpected start tag implies table voodoo",
	ErrUnexpectedEndTag:                "unexpected end tag",
	ErrUnexpectedStartTag:              "unexpected start tag",
	ErrUnexpectedCellEndTag:            "unexpected cell end tag",
	ErrUnclosedElements:                "unclosed elements at end of input",
	ErrStrayStartTag:                   "stray start tag",
	ErrStrayEndTag:                     "stray end tag",
	ErrMisplacedDoctype:                "misplaced doctype",
	ErrMisplacedStartTagForHeadElement: "misplaced start tag for head element",
	ErrFosterParentedCharacter:         "foster parented character",
	ErrFosterParentedElement:           "foster parented element",
	ErrNonSpaceCharacterInTableText:    "non-space character in table text",
	ErrNestedFormElement:               "nested form element",
	ErrGenericParseError:               "parse error",
}

// Message returns the human-readable description for a parse error code, or
// a generic fallback if code is unrecognized.
func Message(code string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "parse error"
}

// errorSink collects parse errors with position information and supports a
// strict-mode abort on the first recorded error (spec.md §7).
type errorSink struct {
	errors []ParseError
	strict bool
	first  error
}

func (s *errorSink) record(code string, line, column int) {
	if s.first != nil {
		return
	}
	e := ParseError{Code: code, Line: line, Column: column, Message: Message(code)}
	s.errors = append(s.errors, e)
	if s.strict {
		s.first = fmt.Errorf("%w", &e)
	}
}

func (s *errorSink) aborted() bool { return s.strict && s.first != nil }
