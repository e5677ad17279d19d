package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arete-cli/arete/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the MCP server over stdio",
	Long: `Start a Model Context Protocol server exposing the engine's tools
(resolve_entity, get_context, search_memory, assemble_briefing,
get_timeline) over stdio, for use by MCP-capable agents and editors.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Resolver == nil || Assembler == nil {
			return fmt.Errorf("engine not initialized")
		}
		srv := mcp.NewServer(Resolver, Assembler, Memory, Timeline, Synthesizer, appVersion)
		return srv.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
