package main

import (
	"bufio"
	"os"
	"strings"
)

// testCase is one html5lib-tests tree-construction test case, as parsed
// from a ".dat" file's "#data"/"#errors"/"#document-fragment"/"#document"
// sections (spec.md §6 "Test format").
type testCase struct {
	data             string
	fragmentContext  string // empty unless "#document-fragment" is present
	hasFragment      bool
	wantDocument     string
	scriptingEnabled bool // "#script-on" vs "#script-off"; this parser never scripts
}

// parseDatFile splits a ".dat" file into its test cases. The html5lib-tests
// format has no blank-line test separator: a new "#data" marker begins the
// next case wherever it occurs.
func parseDatFile(path string) ([]testCase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cases []testCase
	var cur *testCase
	var section string
	var buf []string

	flushSection := func() {
		if cur == nil {
			return
		}
		text := strings.Join(buf, "\n")
		switch section {
		case "data":
			cur.data = text
		case "document-fragment":
			cur.hasFragment = true
			cur.fragmentContext = strings.TrimSpace(text)
		case "document":
			cur.wantDocument = text
		}
		buf = nil
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case "#data":
			flushSection()
			if cur != nil {
				cases = append(cases, *cur)
			}
			cur = &testCase{scriptingEnabled: true}
			section = "data"
			continue
		case "#errors", "#new-errors":
			flushSection()
			section = "errors"
			continue
		case "#document-fragment":
			flushSection()
			section = "document-fragment"
			continue
		case "#document":
			flushSection()
			section = "document"
			continue
		case "#script-on":
			flushSection()
			if cur != nil {
				cur.scriptingEnabled = true
			}
			section = "ignore"
			continue
		case "#script-off":
			flushSection()
			if cur != nil {
				cur.scriptingEnabled = false
			}
			section = "ignore"
			continue
		}
		if section == "ignore" || section == "errors" {
			continue
		}
		buf = append(buf, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flushSection()
	if cur != nil {
		cases = append(cases, *cur)
	}
	return cases, nil
}
