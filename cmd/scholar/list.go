package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chaofengc/scholar/internal/bibtex"
	"github.com/chaofengc/scholar/internal/site"
)

var (
	listType string
	listCite bool
)

func init() {
	listCmd.Flags().StringVar(&listType, "type", "all", "Filter by entry type (journal, conference, preprint, or a literal type)")
	listCmd.Flags().BoolVar(&listCite, "cite", false, "Print full citation text instead of one line per entry")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bibliography entries",
	Long: `List the entries in the local bibliography, newest first.

The --type filter accepts the coarse categories journal, conference, and
preprint, or any literal entry type such as book.

Examples:
  scholar list
  scholar list --type journal
  scholar list --type preprint --cite`,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	root := mustFindSite()

	body, err := os.ReadFile(site.BibPath(root))
	if err != nil {
		exitWithError(ExitDataError, "reading bibliography: %v", err)
	}

	entries, parseErrs := bibtex.Parse(string(body))
	for _, perr := range parseErrs {
		log.Warn().Err(perr).Msg("skipping malformed bibliography block")
	}

	entries = bibtex.SortByYear(bibtex.FilterByType(entries, listType))
	for _, e := range entries {
		if listCite {
			outputHuman("%s\n", bibtex.FormatCitation(e))
			continue
		}
		year := e.Field("year")
		if year == "" {
			year = "----"
		}
		outputHuman("%s  %-24s  %s\n", year, e.CiteKey, e.Field("title"))
	}
	return nil
}
