package cmd

import (
	"github.com/spf13/cobra"

	"github.com/computeruseprotocol/go-sdk/internal/server"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve snapshot/find/execute as MCP tools",
	Long:  "Start an MCP server exposing the snapshot, find, execute, and batch operations as tools over stdio or streamable HTTP.",
	RunE:  runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport: stdio or streamable-http")
	mcpCmd.Flags().Int("port", 8822, "Port for streamable-http transport")
}

func runMCP(cmd *cobra.Command, args []string) error {
	transport, _ := cmd.Flags().GetString("transport")
	port, _ := cmd.Flags().GetInt("port")

	cfg := server.Config{
		Transport: transport,
		Port:      port,
		Session:   sessionConfig(cmd),
	}
	srv, err := server.New(cfg)
	if err != nil {
		return err
	}
	return srv.Serve(cfg)
}
