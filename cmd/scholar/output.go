package main

import (
	"fmt"
	"os"

	"github.com/chaofengc/scholar/internal/cache"
	"github.com/chaofengc/scholar/internal/site"
)

// outputHuman writes a message to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError writes an error to stderr and exits with the given code.
func exitWithError(code int, format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(code)
}

// mustFindSite locates the site root from the working directory, exits on
// error.
func mustFindSite() string {
	cwd, err := os.Getwd()
	if err != nil {
		exitWithError(ExitError, "getting current directory: %v", err)
	}

	root, err := site.FindSite(cwd)
	if err != nil {
		exitWithError(ExitConfigError, "%v\n  Hint: run 'scholar init' to create a site here", err)
	}
	return root
}

// mustLoadConfig loads site.yml, exits on error.
func mustLoadConfig(root string) *site.Config {
	cfg, err := site.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading site config: %v", err)
	}
	return cfg
}

// openCache opens the site's cache database. Failure is logged, not fatal:
// every cache consumer tolerates a nil DB.
func openCache(root string) *cache.DB {
	db, err := cache.OpenDB(site.DBPath(root))
	if err != nil {
		log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		return nil
	}
	return db
}
