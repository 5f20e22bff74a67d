package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/angelmondragon/skyvia-mcp/internal/skyvia"
	"github.com/angelmondragon/skyvia-mcp/pkg/logger"
)

// Register wires every tool onto the MCP server. Tools are grouped by
// the resource they operate on.
func Register(s *server.MCPServer, client *skyvia.Client, log *logger.Logger) {
	h := &handlers{client: client, log: log}
	h.registerWorkspaceTools(s)
	h.registerConnectionTools(s)
	h.registerAgentTools(s)
	h.registerAutomationTools(s)
	h.registerBackupTools(s)
	h.registerIntegrationTools(s)
	h.registerAccountTools(s)
	h.registerEndpointTools(s)
}

func newTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	all := append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)
	return mcp.NewTool(name, all...)
}
