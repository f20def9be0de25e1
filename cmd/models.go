package cmd

import (
	"github.com/engramdev/engram/core"
	"github.com/engramdev/engram/internal/contract"
	"github.com/spf13/cobra"
)

// modelsCmd lists recommended models and what Ollama has installed.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List recommended and installed models.",
	Long: `Show the recommended model table with size, RAM and quality notes,
then report whether Ollama is reachable and which models it has installed.

The recommendation table is static, so this works without a running server.

Examples:
  # See what to pull before a first analysis
  engram models

  # Check a remote Ollama host
  engram models --model-host http://gpu-box:11434`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteModels(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot run models", err)
		}
	},
}
