package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/chaofengc/scholar/internal/fetch"
	"github.com/chaofengc/scholar/internal/site"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Create a new site skeleton",
	Long: `Create a new site source directory with a starter configuration, a
sample bibliography, and empty data files.

Examples:
  scholar init
  scholar init ~/mysite`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		exitWithError(ExitError, "creating %s: %v", dir, err)
	}
	if site.IsSite(dir) {
		exitWithError(ExitConfigError, "%s already contains %s", dir, site.ConfigFile)
	}

	cfg := &site.Config{
		Title:  "My Research Site",
		Author: "Your Name",
		Nav: []site.NavItem{
			{Label: "Home", Href: "index.html"},
			{Label: "Publications", Href: "publications.html"},
			{Label: "Members", Href: "members.html"},
			{Label: "Projects", Href: "projects.html"},
			{Label: "Gallery", Href: "gallery.html"},
		},
	}
	if err := cfg.Save(dir); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	seeds := map[string]string{
		site.BibFile:       fetch.SampleBibliography,
		site.PubConfigFile: "{}\n",
		site.CoauthorsFile: "{}\n",
		site.MembersFile:   "[]\n",
		site.ProjectsFile:  "[]\n",
		site.GalleryFile:   "[]\n",
		site.NewsFile:      "[]\n",
	}
	for name, body := range seeds {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			exitWithError(ExitError, "writing %s: %v", name, err)
		}
	}
	if err := os.MkdirAll(filepath.Join(dir, site.StaticDir), 0o755); err != nil {
		exitWithError(ExitError, "creating static directory: %v", err)
	}

	outputHuman("Initialized site in %s\n", dir)
	outputHuman("Edit %s, then run 'scholar build'.\n", site.ConfigFile)
	return nil
}
