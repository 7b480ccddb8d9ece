package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chaofengc/scholar/internal/author"
	"github.com/chaofengc/scholar/internal/bibtex"
	"github.com/chaofengc/scholar/internal/pdfcheck"
	"github.com/chaofengc/scholar/internal/site"
)

var checkPDFs bool

func init() {
	checkCmd.Flags().BoolVar(&checkPDFs, "pdfs", false, "Verify local PDFs against entry DOIs")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the bibliography and data files",
	Long: `Check the site source for problems a build would silently tolerate:
malformed bibliography blocks, override keys that match no entry, coauthor
names that never appear in any author list, and (with --pdfs) local PDFs
whose DOI does not match their entry.

Exits 3 when problems are found.

Examples:
  scholar check
  scholar check --pdfs`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	problems := 0

	body, err := os.ReadFile(site.BibPath(root))
	if err != nil {
		exitWithError(ExitDataError, "reading bibliography: %v", err)
	}
	entries, parseErrs := bibtex.Parse(string(body))
	for _, perr := range parseErrs {
		outputHuman("bibliography: %v\n", perr)
		problems++
	}
	outputHuman("Parsed %d entries from %s\n", len(entries), site.BibFile)

	keys := make(map[string]bool, len(entries))
	authors := author.Set{}
	for _, e := range entries {
		keys[e.CiteKey] = true
		for _, name := range author.SplitList(e.Field("author")) {
			authors.Add(name)
		}
	}

	pubCfg, err := site.LoadPubConfig(root)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		outputHuman("%s: %v\n", site.PubConfigFile, err)
		problems++
	}
	for key := range pubCfg {
		if !keys[key] {
			outputHuman("%s: key %q matches no bibliography entry\n", site.PubConfigFile, key)
			problems++
		}
	}

	coauthors, err := site.LoadCoauthors(root)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		outputHuman("%s: %v\n", site.CoauthorsFile, err)
		problems++
	}
	for name := range coauthors {
		if !authors.Contains(name) {
			outputHuman("%s: %q never appears in an author list\n", site.CoauthorsFile, name)
			problems++
		}
	}

	// Missing data files are fine; only malformed ones count.
	if _, dataErrs := site.LoadData(root); len(dataErrs) > 0 {
		for _, derr := range dataErrs {
			if errors.Is(derr, fs.ErrNotExist) {
				continue
			}
			outputHuman("data: %v\n", derr)
			problems++
		}
	}

	if checkPDFs {
		problems += verifyPDFs(root, entries, pubCfg)
	}

	if problems > 0 {
		exitWithError(ExitDataError, "%d problem(s) found", problems)
	}
	outputHuman("No problems found.\n")
	return nil
}

// verifyPDFs checks entries whose override points at a local PDF file.
func verifyPDFs(root string, entries []bibtex.Entry, pubCfg site.PubConfig) int {
	problems := 0
	for _, e := range entries {
		path := pubCfg[e.CiteKey].PDF
		if path == "" || strings.Contains(path, "://") {
			continue // remote links are not verifiable
		}
		if e.Field("doi") == "" {
			continue
		}

		abs := filepath.Join(root, filepath.FromSlash(path))
		if _, err := os.Stat(abs); err != nil {
			outputHuman("%s: pdf %s: %v\n", e.CiteKey, path, err)
			problems++
			continue
		}

		result, err := pdfcheck.Check(e, abs)
		if err != nil {
			outputHuman("%s: %v\n", e.CiteKey, err)
			problems++
			continue
		}
		if !result.Match {
			outputHuman("%s: pdf %s has DOI %q, entry says %q\n", e.CiteKey, path, result.FoundDOI, result.WantDOI)
			problems++
		}
	}
	return problems
}

