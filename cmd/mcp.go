package cmd

import (
	"github.com/engramdev/engram/core"
	"github.com/engramdev/engram/internal/contract"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command. Stdio carries the protocol, so nothing
// on this path may print to stdout before the server takes over.
var mcpCmd = &cobra.Command{
	Use:     "mcp",
	Short:   "Start the Engram MCP server",
	Long:    `Launch an MCP server that allows AI agents to run repository analysis via standard tools.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetup,
	RunE: func(_ *cobra.Command, _ []string) error {
		return withSnapshotStore(func(store contract.SnapshotStore) error {
			return core.ExecuteMCP(rootCtx, cfg, store)
		})
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
