package html

// tokenizerState identifies one of the tokenizer's states (spec.md §4.3).
type tokenizerState int

const (
	dataState tokenizerState = iota
	rcdataState
	rawtextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcdataLessThanSignState
	rcdataEndTagOpenState
	rcdataEndTagNameState
	rawtextLessThanSignState
	rawtextEndTagOpenState
	rawtextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
	characterReferenceState
	namedCharacterReferenceState
	ambiguousAmpersandState
	numericCharacterReferenceState
	hexadecimalCharacterReferenceStartState
	decimalCharacterReferenceStartState
	hexadecimalCharacterReferenceState
	decimalCharacterReferenceState
	numericCharacterReferenceEndState
)

var tokenizerStateNames = [...]string{
	"Data",
	"RCDATA",
	"RAWTEXT",
	"ScriptData",
	"PLAINTEXT",
	"TagOpen",
	"EndTagOpen",
	"TagName",
	"RCDATALessThanSign",
	"RCDATAEndTagOpen",
	"RCDATAEndTagName",
	"RAWTEXTLessThanSign",
	"RAWTEXTEndTagOpen",
	"RAWTEXTEndTagName",
	"ScriptDataLessThanSign",
	"ScriptDataEndTagOpen",
	"ScriptDataEndTagName",
	"ScriptDataEscapeStart",
	"ScriptDataEscapeStartDash",
	"ScriptDataEscaped",
	"ScriptDataEscapedDash",
	"ScriptDataEscapedDashDash",
	"ScriptDataEscapedLessThanSign",
	"ScriptDataEscapedEndTagOpen",
	"ScriptDataEscapedEndTagName",
	"ScriptDataDoubleEscapeStart",
	"ScriptDataDoubleEscaped",
	"ScriptDataDoubleEscapedDash",
	"ScriptDataDoubleEscapedDashDash",
	"ScriptDataDoubleEscapedLessThanSign",
	"ScriptDataDoubleEscapeEnd",
	"BeforeAttributeName",
	"AttributeName",
	"AfterAttributeName",
	"BeforeAttributeValue",
	"AttributeValueDoubleQuoted",
	"AttributeValueSingleQuoted",
	"AttributeValueUnquoted",
	"AfterAttributeValueQuoted",
	"SelfClosingStartTag",
	"BogusComment",
	"MarkupDeclarationOpen",
	"CommentStart",
	"CommentStartDash",
	"Comment",
	"CommentLessThanSign",
	"CommentLessThanSignBang",
	"CommentLessThanSignBangDash",
	"CommentLessThanSignBangDashDash",
	"CommentEndDash",
	"CommentEnd",
	"CommentEndBang",
	"DOCTYPE",
	"BeforeDOCTYPEName",
	"DOCTYPEName",
	"AfterDOCTYPEName",
	"AfterDOCTYPEPublicKeyword",
	"BeforeDOCTYPEPublicIdentifier",
	"DOCTYPEPublicIdentifierDoubleQuoted",
	"DOCTYPEPublicIdentifierSingleQuoted",
	"AfterDOCTYPEPublicIdentifier",
	"BetweenDOCTYPEPublicAndSystemIdentifiers",
	"AfterDOCTYPESystemKeyword",
	"BeforeDOCTYPESystemIdentifier",
	"DOCTYPESystemIdentifierDoubleQuoted",
	"DOCTYPESystemIdentifierSingleQuoted",
	"AfterDOCTYPESystemIdentifier",
	"BogusDOCTYPE",
	"CDATASection",
	"CDATASectionBracket",
	"CDATASectionEnd",
	"CharacterReference",
	"NamedCharacterReference",
	"AmbiguousAmpersand",
	"NumericCharacterReference",
	"HexadecimalCharacterReferenceStart",
	"DecimalCharacterReferenceStart",
	"HexadecimalCharacterReference",
	"DecimalCharacterReference",
	"NumericCharacterReferenceEnd",
}

func (s tokenizerState) String() string {
	if int(s) >= 0 && int(s) < len(tokenizerStateNames) {
		return tokenizerStateNames[s]
	}
	return "Unknown"
}
