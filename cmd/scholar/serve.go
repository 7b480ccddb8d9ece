package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chaofengc/scholar/internal/preview"
)

var (
	servePort    int
	serveOffline bool
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveOffline, "offline", false, "Skip network fetches (bibliography and star counts)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the site locally, rebuilding on change",
	Long: `Build the site, serve the output directory on localhost, and watch
the source tree. Edits to the bibliography, data files, or static assets
trigger a rebuild; when a rebuild fails the previous output stays up.

Examples:
  scholar serve
  scholar serve --port 3000 --offline`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)
	db := openCache(root)
	if db != nil {
		defer db.Close()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := buildSite(ctx, root, cfg, db, serveOffline); err != nil {
		exitWithError(ExitError, "initial build failed: %v", err)
	}

	srv := &preview.Server{
		SiteRoot: root,
		OutDir:   cfg.Output(root),
		Addr:     fmt.Sprintf("127.0.0.1:%d", servePort),
		Rebuild: func(ctx context.Context) error {
			return buildSite(ctx, root, cfg, db, serveOffline)
		},
		Log: log,
	}
	if err := srv.Run(ctx); err != nil {
		exitWithError(ExitError, "preview server: %v", err)
	}
	return nil
}
