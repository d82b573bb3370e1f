package html

import "testing"

func decodeText(s string) string {
	return decodeCharacterReferences(s, false, nil)
}

func decodeAttr(s string) string {
	return decodeCharacterReferences(s, true, nil)
}

func TestDecodeNamedReference(t *testing.T) {
	if got := decodeText("a&amp;b"); got != "a&b" {
		t.Errorf("got %q, want %q", got, "a&b")
	}
}

func TestDecodeLegacySemicolonOptional(t *testing.T) {
	if got := decodeText("&ampfoo"); got != "&foo" {
		t.Errorf("got %q, want %q", got, "&foo")
	}
}

func TestDecodeLegacySuppressedBeforeAlnumInAttribute(t *testing.T) {
	// In attribute context, &not followed by an alphanumeric or '=' is not
	// expanded (spec.md §4.2).
	if got := decodeAttr("&notit"); got != "&notit" {
		t.Errorf("got %q, want %q (suppressed)", got, "&notit")
	}
	if got := decodeText("&notit"); got == "&notit" {
		t.Errorf("expected text context to still expand &not, got %q", got)
	}
}

func TestDecodeLegacySuppressedBeforeEqualsInAttribute(t *testing.T) {
	if got := decodeAttr("&amp=b"); got != "&amp=b" {
		t.Errorf("got %q, want %q (suppressed before '=')", got, "&amp=b")
	}
}

func TestDecodeLongestPrefixMatch(t *testing.T) {
	// "&notit" has no full named match; "&not" (legacy) + "it" is the
	// longest-prefix fallback (spec.md §4.2).
	if got := decodeText("&notit;"); got != "¬it;" {
		t.Errorf("got %q, want %q", got, "¬it;")
	}
}

func TestDecodeNumericDecimal(t *testing.T) {
	if got := decodeText("&#65;"); got != "A" {
		t.Errorf("got %q, want %q", got, "A")
	}
}

func TestDecodeNumericHex(t *testing.T) {
	if got := decodeText("&#x41;"); got != "A" {
		t.Errorf("got %q, want %q", got, "A")
	}
}

func TestDecodeNumericWindows1252C1Substitution(t *testing.T) {
	// 0x80 substitutes to U+20AC (EURO SIGN) per the HTML5 table.
	if got := decodeText("&#128;"); got != "€" {
		t.Errorf("got %q, want %q", got, "€")
	}
}

func TestDecodeNumericNullSubstitution(t *testing.T) {
	if got := decodeText("&#0;"); got != "�" {
		t.Errorf("got %q, want U+FFFD", got)
	}
}

func TestDecodeNumericOutOfRangeSubstitution(t *testing.T) {
	if got := decodeText("&#x110000;"); got != "�" {
		t.Errorf("got %q, want U+FFFD", got)
	}
}

func TestDecodeNumericSurrogateSubstitution(t *testing.T) {
	if got := decodeText("&#xD800;"); got != "�" {
		t.Errorf("got %q, want U+FFFD", got)
	}
}

func TestDecodeUnterminatedAmpersandPassesThrough(t *testing.T) {
	if got := decodeText("a & b"); got != "a & b" {
		t.Errorf("got %q, want %q", got, "a & b")
	}
}

func TestDecodeNoAmpersandIsNoop(t *testing.T) {
	if got := decodeText("plain text"); got != "plain text" {
		t.Errorf("got %q, want unchanged", got)
	}
}

func TestDecodeLongFormArrow(t *testing.T) {
	if got := decodeText("a&rightarrow;b"); got != "a→b" {
		t.Errorf("got %q, want %q", got, "a→b")
	}
}

func TestDecodeDoubleStruckLetter(t *testing.T) {
	if got := decodeText("&Copf;"); got != "ℂ" {
		t.Errorf("got %q, want %q", got, "ℂ")
	}
	if got := decodeText("&Aopf;"); got != "\U0001D538" {
		t.Errorf("got %q, want U+1D538", got)
	}
}

func TestDecodeBigOperator(t *testing.T) {
	if got := decodeText("&bigcap;"); got != "⋂" {
		t.Errorf("got %q, want %q", got, "⋂")
	}
}
