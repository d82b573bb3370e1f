package html

import "github.com/gohtml5/parser/dom"

// TokenType identifies which variant a Token carries (spec.md §2, §9).
type TokenType int

const (
	EOFToken TokenType = iota
	CharacterToken
	StartTagToken
	EndTagToken
	CommentToken
	DoctypeToken
)

func (t TokenType) String() string {
	switch t {
	case EOFToken:
		return "EOF"
	case CharacterToken:
		return "Character"
	case StartTagToken:
		return "StartTag"
	case EndTagToken:
		return "EndTag"
	case CommentToken:
		return "Comment"
	case DoctypeToken:
		return "Doctype"
	default:
		return "Unknown"
	}
}

// tagAttr is a single attribute as produced by the tokenizer, before any
// foreign-content namespace adjustment (spec.md §4.4.6) is applied.
type tagAttr struct {
	Name  string
	Value string
}

// Token is the tokenizer's reusable emission record (spec.md §9: "the sink
// must copy any field it retains beyond the call"). The tree builder copies
// Data/Attrs into owned dom types before the tokenizer advances.
type Token struct {
	Type TokenType

	// Character data, comment data, or tag name depending on Type.
	Data string

	// StartTagToken / EndTagToken only.
	Attrs        []tagAttr
	SelfClosing  bool

	// DoctypeToken only.
	DoctypeName     string
	DoctypePublicID string
	DoctypeSystemID string
	HasPublicID     bool
	HasSystemID     bool
	ForceQuirks     bool

	// Line/Column record the token's end position (the input position just
	// after its last character) for error reporting (spec.md §4.3
	// "position tracking").
	Line   int
	Column int
}

// Attr looks up a start/end tag attribute by name, returning the value of
// its first occurrence (later duplicates are dropped at tokenization).
func (t *Token) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// attributesFromToken builds a dom.Attributes from the token's flat list.
// The tree builder does not call it; insertElement sets attributes one at
// a time.
func attributesFromToken(t *Token) *dom.Attributes {
	attrs := dom.NewAttributes()
	for _, a := range t.Attrs {
		attrs.Set(a.Name, a.Value)
	}
	return attrs
}
