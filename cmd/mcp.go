package cmd

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/abhisek/studypal/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the study assistant over MCP (stdio transport)",
	Long: "Expose import, extraction, quiz generation, and grading as MCP tools so an AI\n" +
		"host (Claude Desktop, Claude Code, etc.) can run study sessions for you.",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		assistant := newAssistant(cmd.Context(), cmd, st)
		return server.ServeStdio(mcpserver.New(assistant))
	},
}
