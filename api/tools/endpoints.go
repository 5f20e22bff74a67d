package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

func (h *handlers) registerEndpointTools(s *server.MCPServer) {
	s.AddTool(newTool("list_endpoints",
		"List the endpoints exposed from a workspace, paged.",
		withWorkspaceID(pagingOptions()...)...,
	), h.listEndpoints)

	s.AddTool(newTool("get_endpoint_types",
		"Get the catalog of available endpoint types and their numeric codes.",
	), h.getEndpointTypes)

	s.AddTool(newTool("get_endpoint",
		"Get the details of a single endpoint.",
		withWorkspaceID(endpointIDOption())...,
	), h.getEndpoint)

	s.AddTool(newTool("enable_endpoint",
		"Enable an endpoint so it starts serving requests.",
		withWorkspaceID(endpointIDOption())...,
	), h.enableEndpoint)

	s.AddTool(newTool("disable_endpoint",
		"Disable an endpoint so it stops serving requests.",
		withWorkspaceID(endpointIDOption())...,
	), h.disableEndpoint)

	s.AddTool(newTool("get_endpoint_executions",
		"List the request log of an endpoint with paging, sorting, and date filters.",
		withWorkspaceID(append([]mcp.ToolOption{endpointIDOption()},
			logQueryOptions("date", "executionId")...)...)...,
	), h.getEndpointExecutions)

	s.AddTool(newTool("get_endpoint_execution_details",
		"Get the full details of one endpoint request, including its log lines.",
		withWorkspaceID(
			endpointIDOption(),
			mcp.WithString("execution_id",
				mcp.Required(),
				mcp.Description("The identifier of the logged request. Endpoint execution identifiers are strings."),
			),
		)...,
	), h.getEndpointExecutionDetails)
}

func endpointIDOption() mcp.ToolOption {
	return mcp.WithNumber("endpoint_id",
		mcp.Required(),
		mcp.Description("The unique identifier of the endpoint."),
	)
}

func (h *handlers) endpointArgs(ctx context.Context, tool string, request mcp.CallToolRequest) (int64, int64, *mcp.CallToolResult) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		result, _ := h.validationResult(ctx, tool, err)
		return 0, 0, result
	}
	endpointID, err := idArg(request, "endpoint_id")
	if err != nil {
		result, _ := h.validationResult(ctx, tool, err)
		return 0, 0, result
	}
	return workspaceID, endpointID, nil
}

func (h *handlers) listEndpoints(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "list_endpoints", err)
	}
	page, err := h.client.ListEndpoints(ctx, workspaceID, pageArgs(request))
	if err != nil {
		return h.errorResult(ctx, "list_endpoints", err)
	}
	return jsonResult(page)
}

func (h *handlers) getEndpointTypes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	types, err := h.client.ListEndpointTypes(ctx)
	if err != nil {
		return h.errorResult(ctx, "get_endpoint_types", err)
	}
	return jsonResult(types)
}

func (h *handlers) getEndpoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, endpointID, bad := h.endpointArgs(ctx, "get_endpoint", request)
	if bad != nil {
		return bad, nil
	}
	endpoint, err := h.client.GetEndpoint(ctx, workspaceID, endpointID)
	if err != nil {
		return h.errorResult(ctx, "get_endpoint", err)
	}
	return jsonResult(endpoint)
}

func (h *handlers) enableEndpoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, endpointID, bad := h.endpointArgs(ctx, "enable_endpoint", request)
	if bad != nil {
		return bad, nil
	}
	if err := h.client.EnableEndpoint(ctx, workspaceID, endpointID); err != nil {
		return h.errorResult(ctx, "enable_endpoint", err)
	}
	return textResult("Endpoint enabled.")
}

func (h *handlers) disableEndpoint(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, endpointID, bad := h.endpointArgs(ctx, "disable_endpoint", request)
	if bad != nil {
		return bad, nil
	}
	if err := h.client.DisableEndpoint(ctx, workspaceID, endpointID); err != nil {
		return h.errorResult(ctx, "disable_endpoint", err)
	}
	return textResult("Endpoint disabled.")
}

func (h *handlers) getEndpointExecutions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, endpointID, bad := h.endpointArgs(ctx, "get_endpoint_executions", request)
	if bad != nil {
		return bad, nil
	}
	query, err := logQueryArgs(request)
	if err != nil {
		return h.validationResult(ctx, "get_endpoint_executions", err)
	}
	page, err := h.client.ListEndpointExecutions(ctx, workspaceID, endpointID, query)
	if err != nil {
		return h.errorResult(ctx, "get_endpoint_executions", err)
	}
	return jsonResult(page)
}

func (h *handlers) getEndpointExecutionDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, endpointID, bad := h.endpointArgs(ctx, "get_endpoint_execution_details", request)
	if bad != nil {
		return bad, nil
	}
	executionID, err := request.RequireString("execution_id")
	if err != nil || executionID == "" {
		return h.validationResult(ctx, "get_endpoint_execution_details",
			errors.New(errors.CodeValidation, "execution_id is required"))
	}
	details, err := h.client.GetEndpointExecution(ctx, workspaceID, endpointID, executionID)
	if err != nil {
		return h.errorResult(ctx, "get_endpoint_execution_details", err)
	}
	return jsonResult(details)
}
