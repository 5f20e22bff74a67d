package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *handlers) registerAgentTools(s *server.MCPServer) {
	s.AddTool(newTool("list_agents",
		"List the on-premise agents registered in a workspace, paged.",
		withWorkspaceID(pagingOptions()...)...,
	), h.listAgents)

	s.AddTool(newTool("get_agent",
		"Get the details of a single on-premise agent.",
		withWorkspaceID(
			mcp.WithNumber("agent_id",
				mcp.Required(),
				mcp.Description("The unique identifier of the agent."),
			),
		)...,
	), h.getAgent)

	s.AddTool(newTool("test_agent",
		"Check that an on-premise agent is online and reachable.",
		withWorkspaceID(
			mcp.WithNumber("agent_id",
				mcp.Required(),
				mcp.Description("The unique identifier of the agent to test."),
			),
		)...,
	), h.testAgent)
}

func (h *handlers) listAgents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "list_agents", err)
	}
	page, err := h.client.ListAgents(ctx, workspaceID, pageArgs(request))
	if err != nil {
		return h.errorResult(ctx, "list_agents", err)
	}
	return jsonResult(page)
}

func (h *handlers) getAgent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "get_agent", err)
	}
	agentID, err := idArg(request, "agent_id")
	if err != nil {
		return h.validationResult(ctx, "get_agent", err)
	}
	agent, err := h.client.GetAgent(ctx, workspaceID, agentID)
	if err != nil {
		return h.errorResult(ctx, "get_agent", err)
	}
	return jsonResult(agent)
}

func (h *handlers) testAgent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "test_agent", err)
	}
	agentID, err := idArg(request, "agent_id")
	if err != nil {
		return h.validationResult(ctx, "test_agent", err)
	}
	result, err := h.client.TestAgent(ctx, workspaceID, agentID)
	if err != nil {
		return h.errorResult(ctx, "test_agent", err)
	}
	return jsonResult(result)
}
