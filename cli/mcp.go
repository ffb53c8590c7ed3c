// ABOUTME: MCP server subcommand
// ABOUTME: Serves the portfolio tools over stdio for desktop assistants
package cli

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/harperreed/leasebook/app"
	"github.com/harperreed/leasebook/handlers"
)

// MCPCommand starts the MCP server on stdio and blocks until the client
// disconnects or ctx is cancelled.
func MCPCommand(ctx context.Context, a *app.App, version, exportDir string) error {
	a.Logger.Info("starting MCP server", zap.String("version", version))

	server := handlers.NewServer(a, version, exportDir)
	return server.Run(ctx, &mcp.StdioTransport{})
}
