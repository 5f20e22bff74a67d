package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *handlers) registerWorkspaceTools(s *server.MCPServer) {
	s.AddTool(newTool("list_workspaces",
		"List all workspaces available to the current account.",
	), h.listWorkspaces)

	s.AddTool(newTool("get_workspace",
		"Get the details of a single workspace by its identifier.",
		mcp.WithNumber("workspace_id",
			mcp.Required(),
			mcp.Description("The unique identifier of the workspace."),
		),
	), h.getWorkspace)
}

func (h *handlers) listWorkspaces(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaces, err := h.client.ListWorkspaces(ctx)
	if err != nil {
		return h.errorResult(ctx, "list_workspaces", err)
	}
	return jsonResult(workspaces)
}

func (h *handlers) getWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "get_workspace", err)
	}
	workspace, err := h.client.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return h.errorResult(ctx, "get_workspace", err)
	}
	return jsonResult(workspace)
}
