// Command html5libtest runs the html5lib-tests tree-construction corpus
// (".dat" files, spec.md §6 "Test format") against this module's parser and
// reports a pass/fail summary. Modeled on the teacher's wptrunner command,
// rebuilt on cobra in place of the stdlib flag package.
//
// Usage:
//
//	html5libtest [options] <file-or-directory>...
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "html5libtest <file-or-directory>...",
	Short: "Run html5lib-tests tree-construction cases against this parser",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var summary Summary
		for _, path := range args {
			if err := runPath(path, &summary); err != nil {
				return err
			}
		}

		if jsonOutput {
			out, err := json.MarshalIndent(summary, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal summary: %w", err)
			}
			fmt.Println(string(out))
		} else {
			printSummary(&summary)
		}

		if summary.Failed > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "output results as JSON")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print a want/got diff for every failure")
}

func runPath(path string, summary *Summary) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return runFile(path, summary)
	}
	return filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() || filepath.Ext(p) != ".dat" {
			return nil
		}
		return runFile(p, summary)
	})
}

func printSummary(s *Summary) {
	fmt.Printf("%d/%d passed\n", s.Passed, s.Total)
	if !verbose {
		for _, r := range s.Results {
			fmt.Printf("FAIL %s#%d: %q\n", r.File, r.Index, r.Data)
		}
		return
	}
	for _, r := range s.Results {
		fmt.Printf("FAIL %s#%d: %q\n--- want ---\n%s\n--- got ---\n%s\n\n", r.File, r.Index, r.Data, r.Want, r.Got)
	}
}
