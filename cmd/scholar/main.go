// Package main provides the scholar CLI entry point.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// verbose enables debug-level logging
var verbose bool

// log is the process-wide logger, configured before any command runs.
var log = newLogger(false)

func main() {
	// Pick up GITHUB_TOKEN and friends from a local .env, when present.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "scholar",
	Short: "Static academic portfolio site generator",
	Long: `scholar builds a static academic portfolio website from a BibTeX
bibliography and a handful of JSON data files.

Core features:
  - BibTeX parsing with per-entry error recovery
  - Publication pages grouped by year, with per-entry overrides
    (venue, acceptance info, PDF/code links, author markers)
  - Bibliography loading with network, cache, file, and built-in fallback
  - GitHub star badges for project cards
  - Local preview server with rebuild on change
  - Deployment over SSH

A site lives in a directory with site.yml at its root; run commands from
anywhere inside it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = newLogger(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// newLogger builds a console logger on stderr so stdout stays clean for
// command output.
func newLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
