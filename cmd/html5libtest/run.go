package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gohtml5/parser/dom"
	"github.com/gohtml5/parser/html"
)

// caseResult is the outcome of running a single testCase.
type caseResult struct {
	File    string `json:"file"`
	Index   int    `json:"index"`
	Data    string `json:"data"`
	Passed  bool   `json:"passed"`
	Want    string `json:"want,omitempty"`
	Got     string `json:"got,omitempty"`
}

// Summary aggregates the results of running every test case across every
// file given to the runner.
type Summary struct {
	Total   int          `json:"total"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Results []caseResult `json:"results,omitempty"`
}

func runCase(file string, idx int, tc testCase) caseResult {
	res := caseResult{File: file, Index: idx, Data: tc.data}

	var got string
	if tc.hasFragment {
		contextTag, ns := parseFragmentContext(tc.fragmentContext)
		fr, err := html.ParseFragment(tc.data, contextTag, ns, html.Options{})
		if err != nil {
			res.Got = "error: " + err.Error()
			res.Want = tc.wantDocument
			return res
		}
		got = dom.DumpNodes(fr.Nodes)
	} else {
		r, err := html.ParseString(tc.data, html.Options{})
		if err != nil {
			res.Got = "error: " + err.Error()
			res.Want = tc.wantDocument
			return res
		}
		got = dom.DumpTree(r.Document)
	}

	res.Want = strings.TrimRight(tc.wantDocument, "\n")
	res.Got = got
	res.Passed = res.Got == res.Want
	return res
}

// parseFragmentContext splits an html5lib-tests "#document-fragment"
// context line (e.g. "svg foreignObject", or a bare HTML tag name) into a
// tag name and namespace.
func parseFragmentContext(line string) (tag, namespace string) {
	fields := strings.Fields(line)
	switch len(fields) {
	case 2:
		switch fields[0] {
		case "svg":
			return fields[1], dom.NamespaceSVG
		case "math":
			return fields[1], dom.NamespaceMathML
		}
		return fields[1], dom.NamespaceHTML
	case 1:
		return fields[0], dom.NamespaceHTML
	default:
		return "div", dom.NamespaceHTML
	}
}

// runFile runs every test case in a single ".dat" file and folds the
// results into summary.
func runFile(path string, summary *Summary) error {
	cases, err := parseDatFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	rel := filepath.Base(path)
	for i, tc := range cases {
		r := runCase(rel, i, tc)
		summary.Total++
		if r.Passed {
			summary.Passed++
		} else {
			summary.Failed++
			summary.Results = append(summary.Results, r)
		}
	}
	return nil
}
