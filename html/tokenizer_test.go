package html

import "testing"

func newTestTokenizer(input string) *Tokenizer {
	return NewTokenizer(input, &errorSink{})
}

func TestTokenizerText(t *testing.T) {
	tok := newTestTokenizer("Hello, World!")
	got := tok.Next()
	if got.Type != CharacterToken {
		t.Fatalf("Expected CharacterToken, got %v", got.Type)
	}
	if got.Data != "Hello, World!" {
		t.Errorf("Expected 'Hello, World!', got %q", got.Data)
	}
}

func TestTokenizerSimpleTag(t *testing.T) {
	tok := newTestTokenizer("<div>")
	got := tok.Next()
	if got.Type != StartTagToken {
		t.Fatalf("Expected StartTagToken, got %v", got.Type)
	}
	if got.Data != "div" {
		t.Errorf("Expected tag name 'div', got %q", got.Data)
	}
}

func TestTokenizerEndTag(t *testing.T) {
	tok := newTestTokenizer("</div>")
	got := tok.Next()
	if got.Type != EndTagToken {
		t.Fatalf("Expected EndTagToken, got %v", got.Type)
	}
	if got.Data != "div" {
		t.Errorf("Expected tag name 'div', got %q", got.Data)
	}
}

func TestTokenizerSelfClosingTag(t *testing.T) {
	tok := newTestTokenizer("<br />")
	got := tok.Next()
	if got.Type != StartTagToken {
		t.Fatalf("Expected StartTagToken, got %v", got.Type)
	}
	if got.Data != "br" {
		t.Errorf("Expected tag name 'br', got %q", got.Data)
	}
	if !got.SelfClosing {
		t.Error("Expected SelfClosing flag to be set")
	}
}

func TestTokenizerAttributes(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		expectedID    string
		expectedClass string
	}{
		{
			name:          "double quoted attributes",
			input:         `<div id="main" class="container">`,
			expectedID:    "main",
			expectedClass: "container",
		},
		{
			name:          "single quoted attributes",
			input:         `<div id='main' class='container'>`,
			expectedID:    "main",
			expectedClass: "container",
		},
		{
			name:          "unquoted attributes",
			input:         `<div id=main class=container>`,
			expectedID:    "main",
			expectedClass: "container",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := newTestTokenizer(tt.input)
			got := tok.Next()
			if got.Type != StartTagToken {
				t.Fatalf("Expected StartTagToken, got %v", got.Type)
			}
			if id, _ := got.Attr("id"); id != tt.expectedID {
				t.Errorf("Expected id=%q, got %q", tt.expectedID, id)
			}
			if class, _ := got.Attr("class"); class != tt.expectedClass {
				t.Errorf("Expected class=%q, got %q", tt.expectedClass, class)
			}
		})
	}
}

func TestTokenizerDuplicateAttributeDropped(t *testing.T) {
	tok := newTestTokenizer(`<div id="first" id="second">`)
	got := tok.Next()
	if id, _ := got.Attr("id"); id != "first" {
		t.Errorf("Expected first occurrence to win, got %q", id)
	}
	if len(got.Attrs) != 1 {
		t.Errorf("Expected duplicate attribute to be dropped, got %v", got.Attrs)
	}
}

func TestTokenizerComment(t *testing.T) {
	tok := newTestTokenizer("<!-- This is a comment -->")
	got := tok.Next()
	if got.Type != CommentToken {
		t.Fatalf("Expected CommentToken, got %v", got.Type)
	}
	if got.Data != " This is a comment " {
		t.Errorf("Expected ' This is a comment ', got %q", got.Data)
	}
}

func TestTokenizerDoctype(t *testing.T) {
	tok := newTestTokenizer("<!DOCTYPE html>")
	got := tok.Next()
	if got.Type != DoctypeToken {
		t.Fatalf("Expected DoctypeToken, got %v", got.Type)
	}
	if got.DoctypeName != "html" {
		t.Errorf("Expected doctype name 'html', got %q", got.DoctypeName)
	}
}

func TestTokenizerMultipleTokens(t *testing.T) {
	tok := newTestTokenizer("<html><body>Hello</body></html>")

	expected := []struct {
		tokenType TokenType
		data      string
	}{
		{StartTagToken, "html"},
		{StartTagToken, "body"},
		{CharacterToken, "Hello"},
		{EndTagToken, "body"},
		{EndTagToken, "html"},
		{EOFToken, ""},
	}

	for i, want := range expected {
		got := tok.Next()
		if got.Type != want.tokenType {
			t.Errorf("Token %d: expected type %v, got %v", i, want.tokenType, got.Type)
		}
		if got.Data != want.data {
			t.Errorf("Token %d: expected data %q, got %q", i, want.data, got.Data)
		}
	}
}

func TestTokenizerRawtextDoesNotDecodeEntities(t *testing.T) {
	tok := newTestTokenizer("<style>")
	start := tok.Next()
	if start.Type != StartTagToken || start.Data != "style" {
		t.Fatalf("expected <style> start tag, got %v %q", start.Type, start.Data)
	}
	tok.SetState(rawtextState)
	text := tok.Next()
	if text.Type != CharacterToken {
		t.Fatalf("expected character token, got %v", text.Type)
	}
}

func TestTokenizerRCDATADecodesEntitiesUntilMatchingEndTag(t *testing.T) {
	tok := newTestTokenizer("<title>&amp;</title>")
	start := tok.Next()
	if start.Data != "title" {
		t.Fatalf("expected title start tag, got %q", start.Data)
	}
	tok.SetState(rcdataState)
	tok.SetLastStartTag("title")
	text := tok.Next()
	if text.Type != CharacterToken || text.Data != "&" {
		t.Fatalf("expected decoded '&', got %v %q", text.Type, text.Data)
	}
	end := tok.Next()
	if end.Type != EndTagToken || end.Data != "title" {
		t.Fatalf("expected </title>, got %v %q", end.Type, end.Data)
	}
}

func TestTokenizerCDATASectionRequiresForeignContent(t *testing.T) {
	tok := newTestTokenizer("<![CDATA[hi]]>")
	tok.SetAllowCDATA(true)
	got := tok.Next()
	if got.Type != CharacterToken || got.Data != "hi" {
		t.Fatalf("expected CDATA character data, got %v %q", got.Type, got.Data)
	}
}

func TestTokenizerCDATAOutsideForeignContentIsBogusComment(t *testing.T) {
	errs := &errorSink{}
	tok := NewTokenizer("<![CDATA[hi]]>", errs)
	got := tok.Next()
	if got.Type != CommentToken {
		t.Fatalf("expected bogus comment, got %v", got.Type)
	}
}
