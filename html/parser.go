// Package html implements the WHATWG HTML5 tokenization and tree
// construction algorithms (spec.md §§2-4): a character-stream tokenizer
// feeding a tree-construction state machine that builds a dom.Document
// tree.
package html

import (
	"github.com/gohtml5/parser/dom"
)

// Options configures a parse (spec.md §6 "External interfaces").
type Options struct {
	// TransportEncodingLabel is the Content-Type charset parameter, if any
	// (spec.md §4.1 step 1). Only meaningful for Parse, which takes raw
	// bytes; ParseString callers already hold decoded text.
	TransportEncodingLabel string

	// IframeSrcdoc suppresses quirks mode for a non-"html" doctype, per
	// the "iframe srcdoc document" parsing context (spec.md §6).
	IframeSrcdoc bool

	// Strict aborts parsing (returning an error) on the first recorded
	// parse error instead of collecting it and continuing (spec.md §7).
	Strict bool
}

// Result is everything a parse produces: the tree and the error list
// collected along the way (spec.md §6 "Output").
type Result struct {
	Document *dom.Document
	Errors   []ParseError
	Encoding *CharsetEncoding // nil for ParseString, which bypasses sniffing
}

// Parse decodes and parses a complete HTML document from raw bytes,
// sniffing its encoding first (spec.md §4.1, §6).
func Parse(data []byte, opts Options) (*Result, error) {
	text, enc, err := DecodeDocument(data, opts.TransportEncodingLabel)
	if err != nil {
		return nil, err
	}
	res, err := parseString(text, opts)
	if res != nil {
		res.Encoding = enc
	}
	return res, err
}

// ParseString parses an already-decoded HTML document (spec.md §6's
// "pre-decoded text" input form).
func ParseString(input string, opts Options) (*Result, error) {
	return parseString(input, opts)
}

func parseString(input string, opts Options) (*Result, error) {
	errs := &errorSink{strict: opts.Strict}
	tok := NewTokenizer(input, errs)
	tb := NewTreeBuilder(tok, errs)
	tb.iframeSrcdoc = opts.IframeSrcdoc

	if err := runLoop(tb, tok, errs); err != nil {
		return &Result{Document: tb.document, Errors: errs.errors}, err
	}

	tb.finish()
	return &Result{Document: tb.document, Errors: errs.errors}, nil
}

// FragmentResult is the output of a fragment parse: the context element's
// would-be children, plus the collected errors (spec.md §4.4.10, §6).
type FragmentResult struct {
	Nodes  []dom.Node
	Errors []ParseError
}

// ParseFragment implements the "HTML fragment parsing algorithm" (spec.md
// §6): parses input as if it were the contents of contextTag (in
// contextNamespace), returning the resulting child nodes rather than a full
// document.
func ParseFragment(input, contextTag, contextNamespace string, opts Options) (*FragmentResult, error) {
	errs := &errorSink{strict: opts.Strict}
	tok := NewTokenizer(input, errs)
	tb := NewFragmentTreeBuilder(tok, errs, contextTag, contextNamespace)
	tb.iframeSrcdoc = opts.IframeSrcdoc

	if err := runLoop(tb, tok, errs); err != nil {
		return &FragmentResult{Nodes: tb.FragmentNodes(), Errors: errs.errors}, err
	}

	tb.finish()
	return &FragmentResult{Nodes: tb.FragmentNodes(), Errors: errs.errors}, nil
}

// runLoop drives the tokenizer to exhaustion, feeding each token to the
// tree builder (spec.md §2 "control flow is pull-based from the
// tokenizer"). It stops early, returning the sink's recorded error, if
// strict mode aborted.
func runLoop(tb *TreeBuilder, tok *Tokenizer, errs *errorSink) error {
	for {
		t := tok.Next()
		tb.ProcessToken(t)
		if errs.aborted() {
			return errs.first
		}
		if t.Type == EOFToken {
			return nil
		}
	}
}
