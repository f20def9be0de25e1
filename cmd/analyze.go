package cmd

import (
	"github.com/engramdev/engram/core"
	"github.com/engramdev/engram/internal/resolve"
	"github.com/spf13/cobra"
)

// analyzeCmd runs the full analyze-and-generate pipeline.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [target]",
	Short: "Analyze a repository and generate skills + memories.",
	Long: `Analyze a repository and generate skills and memories from what is found.

TARGET can be a local path, a GitHub URL, or owner/repo shorthand. Remote
targets are shallow-cloned into a temporary directory that is removed when
the run finishes.

The heuristic pass inspects the tree, manifests, license and Git history
without any model involvement. The generation pass then turns that analysis
into agent-ready documents:
- skills/architecture.md and skills/patterns.md always
- skills/testing.md when the repository has tests
- memories/repo-overview.md always
- memories/recent-activity.md when recent commits exist

Examples:
  # Analyze the current directory
  engram analyze .

  # Analyze a public GitHub repository
  engram analyze https://github.com/facebook/react

  # Shorthand form with an explicit org
  engram analyze pallets/flask --org pallets

  # Heuristic-only analysis, no model inference
  engram analyze ./my-project --skip-model

  # Pipe the raw report into jq
  engram analyze . --json-only | jq .analysis.languages

  # Keep a snapshot of every run in the local store
  engram analyze . --store yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := "."
		if len(args) == 1 {
			target = args[0]
		}

		res, err := resolve.EnsureLocal(rootCtx, target)
		if err != nil {
			return err
		}
		defer res.Cleanup()

		// Validation needs the resolved local path, so setup runs here
		// rather than in PreRunE.
		input.TargetStr = res.Path
		if err := sharedSetup(cmd, nil); err != nil {
			return err
		}
		if cfg.OrgName == "" && res.Org != "" {
			cfg.OrgName = res.Org
		}

		return core.ExecuteAnalyze(rootCtx, cfg)
	},
}
