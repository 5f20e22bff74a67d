package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *handlers) registerConnectionTools(s *server.MCPServer) {
	s.AddTool(newTool("list_connections",
		"List the connections defined in a workspace, paged.",
		withWorkspaceID(pagingOptions()...)...,
	), h.listConnections)

	s.AddTool(newTool("get_connection_details",
		"Get the details of a single connection, including whether it is Direct or Agent based.",
		withWorkspaceID(
			mcp.WithNumber("connection_id",
				mcp.Required(),
				mcp.Description("The unique identifier of the connection."),
			),
		)...,
	), h.getConnectionDetails)

	s.AddTool(newTool("test_connection",
		"Verify that a connection can reach its data source. Reports the diagnostic message on failure.",
		withWorkspaceID(
			mcp.WithNumber("connection_id",
				mcp.Required(),
				mcp.Description("The unique identifier of the connection to test."),
			),
		)...,
	), h.testConnection)
}

func (h *handlers) listConnections(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "list_connections", err)
	}
	page, err := h.client.ListConnections(ctx, workspaceID, pageArgs(request))
	if err != nil {
		return h.errorResult(ctx, "list_connections", err)
	}
	return jsonResult(page)
}

func (h *handlers) getConnectionDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "get_connection_details", err)
	}
	connectionID, err := idArg(request, "connection_id")
	if err != nil {
		return h.validationResult(ctx, "get_connection_details", err)
	}
	connection, err := h.client.GetConnection(ctx, workspaceID, connectionID)
	if err != nil {
		return h.errorResult(ctx, "get_connection_details", err)
	}
	return jsonResult(connection)
}

func (h *handlers) testConnection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "test_connection", err)
	}
	connectionID, err := idArg(request, "connection_id")
	if err != nil {
		return h.validationResult(ctx, "test_connection", err)
	}
	result, err := h.client.TestConnection(ctx, workspaceID, connectionID)
	if err != nil {
		return h.errorResult(ctx, "test_connection", err)
	}
	return jsonResult(result)
}
