package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chaofengc/scholar/internal/deploy"
)

var deploySkipBuild bool

func init() {
	deployCmd.Flags().BoolVar(&deploySkipBuild, "skip-build", false, "Upload the existing output directory without rebuilding")
	rootCmd.AddCommand(deployCmd)
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Build and upload the site over SSH",
	Long: `Build the site and upload the output directory to the host
configured under deploy: in site.yml. Authentication uses the local SSH
agent.

Examples:
  scholar deploy
  scholar deploy --skip-build`,
	RunE: runDeploy,
}

func runDeploy(cmd *cobra.Command, args []string) error {
	root := mustFindSite()
	cfg := mustLoadConfig(root)

	if !deploySkipBuild {
		db := openCache(root)
		if db != nil {
			defer db.Close()
		}
		if err := buildSite(cmd.Context(), root, cfg, db, false); err != nil {
			exitWithError(ExitError, "build failed: %v", err)
		}
	}

	out := cfg.Output(root)
	if _, err := os.Stat(out); err != nil {
		exitWithError(ExitError, "output directory missing: %v\n  Hint: run 'scholar build' first", err)
	}

	client, err := deploy.NewClient(log)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer client.Close()

	if err := client.Push(cmd.Context(), cfg.Deploy, out); err != nil {
		exitWithError(ExitError, "deploy failed: %v", err)
	}
	outputHuman("Deployed %s to %s:%s\n", out, cfg.Deploy.Host, cfg.Deploy.Path)
	return nil
}
