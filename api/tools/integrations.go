package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *handlers) registerIntegrationTools(s *server.MCPServer) {
	s.AddTool(newTool("list_integrations",
		"List the integration packages defined in a workspace, paged.",
		withWorkspaceID(pagingOptions()...)...,
	), h.listIntegrations)

	s.AddTool(newTool("get_integration",
		"Get the details of a single integration package.",
		withWorkspaceID(integrationIDOption())...,
	), h.getIntegration)

	s.AddTool(newTool("run_integration",
		"Queue an execution of an integration package and return its initial state.",
		withWorkspaceID(integrationIDOption())...,
	), h.runIntegration)

	s.AddTool(newTool("get_integration_executions",
		"List the execution history of an integration with paging, sorting, and date filters.",
		withWorkspaceID(append([]mcp.ToolOption{integrationIDOption()},
			logQueryOptions("date", "runId")...)...)...,
	), h.getIntegrationExecutions)

	s.AddTool(newTool("get_integration_execution_details",
		"Get the full details of one integration execution, including timing and result.",
		withWorkspaceID(integrationIDOption(), runIDOption())...,
	), h.getIntegrationExecutionDetails)

	s.AddTool(newTool("get_active_integration_execution",
		"Get the currently running execution of an integration, if any.",
		withWorkspaceID(integrationIDOption())...,
	), h.getActiveIntegrationExecution)

	s.AddTool(newTool("cancel_integration_execution",
		"Ask the running execution of an integration to stop after the current batch.",
		withWorkspaceID(integrationIDOption())...,
	), h.cancelIntegrationExecution)

	s.AddTool(newTool("kill_integration_execution",
		"Abort the running execution of an integration immediately.",
		withWorkspaceID(integrationIDOption())...,
	), h.killIntegrationExecution)

	s.AddTool(newTool("get_integration_schedule",
		"Get whether the schedule of an integration is active.",
		withWorkspaceID(integrationIDOption())...,
	), h.getIntegrationSchedule)

	s.AddTool(newTool("enable_integration_schedule",
		"Enable the schedule of an integration.",
		withWorkspaceID(integrationIDOption())...,
	), h.enableIntegrationSchedule)

	s.AddTool(newTool("disable_integration_schedule",
		"Disable the schedule of an integration.",
		withWorkspaceID(integrationIDOption())...,
	), h.disableIntegrationSchedule)
}

func integrationIDOption() mcp.ToolOption {
	return mcp.WithNumber("integration_id",
		mcp.Required(),
		mcp.Description("The unique identifier of the integration package."),
	)
}

func runIDOption() mcp.ToolOption {
	return mcp.WithNumber("run_id",
		mcp.Required(),
		mcp.Description("The identifier of the integration execution."),
	)
}

func (h *handlers) integrationArgs(ctx context.Context, tool string, request mcp.CallToolRequest) (int64, int64, *mcp.CallToolResult) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		result, _ := h.validationResult(ctx, tool, err)
		return 0, 0, result
	}
	integrationID, err := idArg(request, "integration_id")
	if err != nil {
		result, _ := h.validationResult(ctx, tool, err)
		return 0, 0, result
	}
	return workspaceID, integrationID, nil
}

func (h *handlers) listIntegrations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "list_integrations", err)
	}
	page, err := h.client.ListIntegrations(ctx, workspaceID, pageArgs(request))
	if err != nil {
		return h.errorResult(ctx, "list_integrations", err)
	}
	return jsonResult(page)
}

func (h *handlers) getIntegration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "get_integration", request)
	if bad != nil {
		return bad, nil
	}
	integration, err := h.client.GetIntegration(ctx, workspaceID, integrationID)
	if err != nil {
		return h.errorResult(ctx, "get_integration", err)
	}
	return jsonResult(integration)
}

func (h *handlers) runIntegration(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "run_integration", request)
	if bad != nil {
		return bad, nil
	}
	execution, err := h.client.RunIntegration(ctx, workspaceID, integrationID)
	if err != nil {
		return h.errorResult(ctx, "run_integration", err)
	}
	return jsonResult(execution)
}

func (h *handlers) getIntegrationExecutions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "get_integration_executions", request)
	if bad != nil {
		return bad, nil
	}
	query, err := logQueryArgs(request)
	if err != nil {
		return h.validationResult(ctx, "get_integration_executions", err)
	}
	page, err := h.client.ListIntegrationExecutions(ctx, workspaceID, integrationID, query)
	if err != nil {
		return h.errorResult(ctx, "get_integration_executions", err)
	}
	return jsonResult(page)
}

func (h *handlers) getIntegrationExecutionDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "get_integration_execution_details", request)
	if bad != nil {
		return bad, nil
	}
	runID, err := idArg(request, "run_id")
	if err != nil {
		return h.validationResult(ctx, "get_integration_execution_details", err)
	}
	result, err := h.client.GetIntegrationExecution(ctx, workspaceID, integrationID, runID)
	if err != nil {
		return h.errorResult(ctx, "get_integration_execution_details", err)
	}
	return jsonResult(result)
}

func (h *handlers) getActiveIntegrationExecution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "get_active_integration_execution", request)
	if bad != nil {
		return bad, nil
	}
	execution, err := h.client.GetActiveIntegrationExecution(ctx, workspaceID, integrationID)
	if err != nil {
		return h.errorResult(ctx, "get_active_integration_execution", err)
	}
	if execution == nil {
		return textResult("No execution is currently active for this integration.")
	}
	return jsonResult(execution)
}

func (h *handlers) cancelIntegrationExecution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "cancel_integration_execution", request)
	if bad != nil {
		return bad, nil
	}
	if err := h.client.CancelIntegrationExecution(ctx, workspaceID, integrationID); err != nil {
		return h.errorResult(ctx, "cancel_integration_execution", err)
	}
	return textResult("Cancellation requested for the integration execution.")
}

func (h *handlers) killIntegrationExecution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "kill_integration_execution", request)
	if bad != nil {
		return bad, nil
	}
	if err := h.client.KillIntegrationExecution(ctx, workspaceID, integrationID); err != nil {
		return h.errorResult(ctx, "kill_integration_execution", err)
	}
	return textResult("The integration execution was aborted.")
}

func (h *handlers) getIntegrationSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "get_integration_schedule", request)
	if bad != nil {
		return bad, nil
	}
	schedule, err := h.client.GetIntegrationSchedule(ctx, workspaceID, integrationID)
	if err != nil {
		return h.errorResult(ctx, "get_integration_schedule", err)
	}
	return jsonResult(schedule)
}

func (h *handlers) enableIntegrationSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "enable_integration_schedule", request)
	if bad != nil {
		return bad, nil
	}
	schedule, err := h.client.EnableIntegrationSchedule(ctx, workspaceID, integrationID)
	if err != nil {
		return h.errorResult(ctx, "enable_integration_schedule", err)
	}
	return jsonResult(schedule)
}

func (h *handlers) disableIntegrationSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, integrationID, bad := h.integrationArgs(ctx, "disable_integration_schedule", request)
	if bad != nil {
		return bad, nil
	}
	schedule, err := h.client.DisableIntegrationSchedule(ctx, workspaceID, integrationID)
	if err != nil {
		return h.errorResult(ctx, "disable_integration_schedule", err)
	}
	return jsonResult(schedule)
}
