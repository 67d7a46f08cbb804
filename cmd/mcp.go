package cmd

import (
	"github.com/huangsam/scorecard/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Scorecard MCP server",
	Long:  `Launch an MCP server that allows AI agents to compile and inspect scorecard descriptions via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, registryManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
