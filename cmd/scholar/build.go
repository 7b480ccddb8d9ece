package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/chaofengc/scholar/internal/bibtex"
	"github.com/chaofengc/scholar/internal/cache"
	"github.com/chaofengc/scholar/internal/fetch"
	"github.com/chaofengc/scholar/internal/github"
	"github.com/chaofengc/scholar/internal/render"
	"github.com/chaofengc/scholar/internal/site"
)

// bibSlot is the cache slot holding the last successfully fetched
// bibliography.
const bibSlot = "bibliography"

var buildOffline bool

func init() {
	buildCmd.Flags().BoolVar(&buildOffline, "offline", false, "Skip network fetches (bibliography and star counts)")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the site into the output directory",
	Long: `Render the full site: fetch the bibliography, parse it, apply
per-entry overrides, and write HTML pages plus static assets.

The bibliography is loaded through a fallback chain: remote URL (when
configured), cached copy, local publications.bib, built-in sample. A build
therefore always produces output, even fully offline.

Examples:
  scholar build
  scholar build --offline`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)
	db := openCache(root)
	if db != nil {
		defer db.Close()
	}

	if err := buildSite(cmd.Context(), root, cfg, db, buildOffline); err != nil {
		exitWithError(ExitError, "build failed: %v", err)
	}
	outputHuman("Site written to %s\n", cfg.Output(root))
	return nil
}

// buildSite renders one complete site. Shared by build and serve.
func buildSite(ctx context.Context, root string, cfg *site.Config, db *cache.DB, offline bool) error {
	body, source, err := bibliographyChain(root, cfg, db, offline).Fetch(ctx)
	if err != nil {
		return err
	}
	log.Info().Str("source", source).Msg("bibliography loaded")

	entries, parseErrs := bibtex.Parse(body)
	for _, perr := range parseErrs {
		log.Warn().Err(perr).Msg("skipping malformed bibliography block")
	}
	entries = bibtex.SortByYear(entries)
	log.Info().Int("entries", len(entries)).Msg("bibliography parsed")

	pubCfg, err := site.LoadPubConfig(root)
	if err != nil {
		log.Warn().Err(err).Msg("publication overrides unavailable")
	}
	coauthors, err := site.LoadCoauthors(root)
	if err != nil {
		log.Warn().Err(err).Msg("coauthor metadata unavailable")
	}
	data, dataErrs := site.LoadData(root)
	for _, derr := range dataErrs {
		log.Warn().Err(derr).Msg("data file unavailable")
	}

	var client *github.Client
	if !offline {
		client = github.NewClient()
	}
	resolver := github.NewResolver(client, db, log)

	builder := &render.Builder{
		Site:     cfg,
		Renderer: render.New(cfg.Author, pubCfg, coauthors),
		Data:     data,
		Stars:    resolver.Stars,
		Log:      log,
	}

	out := cfg.Output(root)
	if err := builder.Build(ctx, entries, out); err != nil {
		return err
	}
	return render.CopyStatic(site.StaticPath(root), out)
}

// bibliographyChain assembles the bibliography fallback chain for a site.
func bibliographyChain(root string, cfg *site.Config, db *cache.DB, offline bool) *fetch.Chain {
	var sources []fetch.Source
	if !offline && cfg.Bibliography.URL != "" {
		sources = append(sources, fetch.NewHTTPSource(cfg.Bibliography.URL))
	}
	if db != nil {
		sources = append(sources, &fetch.CacheSource{DB: db, Slot: bibSlot})
	}
	sources = append(sources,
		&fetch.FileSource{Path: site.BibPath(root)},
		&fetch.BuiltinSource{Body: fetch.SampleBibliography},
	)

	chain := fetch.NewChain(log, sources...)
	if db != nil {
		chain.SaveNetworkResult(db, bibSlot)
	}
	return chain
}
