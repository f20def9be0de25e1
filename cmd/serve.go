package cmd

import (
	"github.com/engramdev/engram/core"
	"github.com/engramdev/engram/internal/contract"
	"github.com/spf13/cobra"
)

// serveCmd hosts the local viewer over generated analysis output.
var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve a local viewer for generated analysis output.",
	Long: `Start a local HTTP server that renders previously generated analysis.

DIR is the output directory to serve and defaults to .engram. It may hold
either a single engram-analysis.json or one subdirectory per analyzed
repository. Files are re-read when they change on disk, so the viewer can
stay open while analyses are re-run.

Examples:
  # Serve the default output directory
  engram serve

  # Serve a directory of per-repo analyses on another port
  engram serve ./analyses --port 9000`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		// The positional argument is a directory, not an analysis target.
		return sharedSetup(cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		cfg.ServeDir = contract.DefaultOutputDir
		if len(args) == 1 {
			cfg.ServeDir = args[0]
		}
		if err := core.ExecuteServe(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run serve", err)
		}
	},
}
