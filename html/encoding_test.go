package html

import (
	"strings"
	"testing"
)

func TestDecodeDocumentBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...)
	text, enc, err := DecodeDocument(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Name != "UTF-8" {
		t.Errorf("expected UTF-8, got %s", enc.Name)
	}
	if text != "hello" {
		t.Errorf("expected %q, got %q", "hello", text)
	}
}

func TestDecodeDocumentUTF16LEBOM(t *testing.T) {
	data := []byte{0xFF, 0xFE, 'h', 0, 'i', 0}
	text, enc, err := DecodeDocument(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Name != "utf-16le" {
		t.Errorf("expected utf-16le, got %s", enc.Name)
	}
	if text != "hi" {
		t.Errorf("expected %q, got %q", "hi", text)
	}
}

func TestDecodeDocumentTransportLabelWins(t *testing.T) {
	data := []byte("<meta charset=utf-8>caf\xe9")
	text, enc, err := DecodeDocument(data, "windows-1252")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Name != "windows-1252" {
		t.Errorf("expected windows-1252, got %s", enc.Name)
	}
	if !strings.Contains(text, "café") {
		t.Errorf("expected decoded latin-1 e-acute, got %q", text)
	}
}

func TestDecodeDocumentMetaCharsetPrescan(t *testing.T) {
	data := []byte(`<html><head><meta charset="iso-8859-2"></head></html>`)
	_, enc, err := DecodeDocument(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Name != "iso-8859-2" {
		t.Errorf("expected iso-8859-2, got %s", enc.Name)
	}
}

// Scenario 6 from spec.md §8: a meta-charset prescan hit selects UTF-8 and
// the trailing bytes decode to "é" (the raw hex from spec.md §8, 0xC3 0xA9).
func TestDecodeDocumentMetaCharsetUTF8DecodesTrailingBytes(t *testing.T) {
	data := []byte{
		0x3C, 0x6D, 0x65, 0x74, 0x61, 0x20, 0x63, 0x68, 0x61, 0x72,
		0x73, 0x65, 0x74, 0x3D, 0x22, 0x75, 0x74, 0x66, 0x2D, 0x38, 0x22, 0x3E,
		0xC3, 0xA9,
	}
	text, enc, err := DecodeDocument(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Name != "UTF-8" {
		t.Fatalf("expected UTF-8, got %s", enc.Name)
	}
	if !strings.HasSuffix(text, "é") {
		t.Errorf("expected trailing 'é', got %q", text)
	}
}

func TestDecodeDocumentMetaHTTPEquiv(t *testing.T) {
	data := []byte(`<meta http-equiv="Content-Type" content="text/html; charset=ISO-8859-2">`)
	_, enc, err := DecodeDocument(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Name != "iso-8859-2" {
		t.Errorf("expected iso-8859-2, got %s", enc.Name)
	}
}

func TestDecodeDocumentFallsBackToWindows1252(t *testing.T) {
	data := []byte("plain ascii text")
	_, enc, err := DecodeDocument(data, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enc.Name != "windows-1252" {
		t.Errorf("expected windows-1252 fallback, got %s", enc.Name)
	}
}

func TestNormalizeEncodingLabelUTF7Security(t *testing.T) {
	enc := normalizeEncodingLabel("utf-7")
	if enc == nil || enc.Name != "windows-1252" {
		t.Fatalf("expected utf-7 to be rejected to windows-1252, got %v", enc)
	}
}

func TestNormalizeEncodingLabelISO88591AliasesWindows1252(t *testing.T) {
	enc := normalizeEncodingLabel("latin1")
	if enc == nil || enc.Name != "windows-1252" {
		t.Fatalf("expected latin1 to alias windows-1252, got %v", enc)
	}
}

func TestNormalizeEncodingLabelUnknown(t *testing.T) {
	if enc := normalizeEncodingLabel("bogus-charset"); enc != nil {
		t.Errorf("expected nil for unknown label, got %v", enc)
	}
}

func TestNormalizeMetaDeclaredEncodingRewritesUTF16(t *testing.T) {
	enc := normalizeMetaDeclaredEncoding([]byte("utf-16le"))
	if enc == nil || enc.Name != "UTF-8" {
		t.Fatalf("expected meta-declared utf-16le to rewrite to UTF-8, got %v", enc)
	}
}

func TestExtractCharsetFromContent(t *testing.T) {
	got := extractCharsetFromContent([]byte(`text/html; charset=UTF-8`))
	if string(got) != "utf-8" {
		t.Errorf("expected utf-8, got %q", got)
	}
}

func TestExtractCharsetFromContentQuoted(t *testing.T) {
	got := extractCharsetFromContent([]byte(`text/html; charset="iso-8859-2"`))
	if string(got) != "iso-8859-2" {
		t.Errorf("expected iso-8859-2, got %q", got)
	}
}

func TestPrescanSkipsComments(t *testing.T) {
	data := []byte(`<!-- <meta charset="iso-8859-2"> --><meta charset="euc-jp">`)
	enc := prescanForMetaCharset(data)
	if enc == nil || enc.Name != "euc-jp" {
		t.Fatalf("expected euc-jp after skipping commented meta, got %v", enc)
	}
}

func TestDecodeWithEncodingEUCJP(t *testing.T) {
	text, err := decodeWithEncoding([]byte("ascii only"), encEUCJP)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "ascii only" {
		t.Errorf("expected ascii pass-through, got %q", text)
	}
}
