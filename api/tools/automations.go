package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *handlers) registerAutomationTools(s *server.MCPServer) {
	s.AddTool(newTool("list_automations",
		"List the automations defined in a workspace, paged.",
		withWorkspaceID(pagingOptions()...)...,
	), h.listAutomations)

	s.AddTool(newTool("get_automation",
		"Get the details of a single automation.",
		withWorkspaceID(automationIDOption())...,
	), h.getAutomation)

	s.AddTool(newTool("get_automation_executions",
		"List the execution history of an automation with paging, sorting, and date filters.",
		withWorkspaceID(append([]mcp.ToolOption{automationIDOption()},
			logQueryOptions("date", "executionId")...)...)...,
	), h.getAutomationExecutions)

	s.AddTool(newTool("get_automation_execution_details",
		"Get the full details of one automation execution, including timing and errors.",
		withWorkspaceID(
			automationIDOption(),
			mcp.WithNumber("execution_id",
				mcp.Required(),
				mcp.Description("The identifier of the execution to inspect."),
			),
		)...,
	), h.getAutomationExecutionDetails)

	s.AddTool(newTool("get_automation_state",
		"Get the runtime state of an automation: trigger status, queue depth, and any running execution.",
		withWorkspaceID(automationIDOption())...,
	), h.getAutomationState)

	s.AddTool(newTool("get_active_automation_execution",
		"Get the currently running execution of an automation, if any.",
		withWorkspaceID(automationIDOption())...,
	), h.getActiveAutomationExecution)

	s.AddTool(newTool("enable_automation",
		"Enable an automation so its trigger starts firing.",
		withWorkspaceID(automationIDOption())...,
	), h.enableAutomation)

	s.AddTool(newTool("disable_automation",
		"Disable an automation so its trigger stops firing.",
		withWorkspaceID(automationIDOption())...,
	), h.disableAutomation)
}

func automationIDOption() mcp.ToolOption {
	return mcp.WithNumber("automation_id",
		mcp.Required(),
		mcp.Description("The unique identifier of the automation."),
	)
}

func (h *handlers) automationArgs(ctx context.Context, tool string, request mcp.CallToolRequest) (int64, int64, *mcp.CallToolResult) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		result, _ := h.validationResult(ctx, tool, err)
		return 0, 0, result
	}
	automationID, err := idArg(request, "automation_id")
	if err != nil {
		result, _ := h.validationResult(ctx, tool, err)
		return 0, 0, result
	}
	return workspaceID, automationID, nil
}

func (h *handlers) listAutomations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "list_automations", err)
	}
	page, err := h.client.ListAutomations(ctx, workspaceID, pageArgs(request))
	if err != nil {
		return h.errorResult(ctx, "list_automations", err)
	}
	return jsonResult(page)
}

func (h *handlers) getAutomation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, automationID, bad := h.automationArgs(ctx, "get_automation", request)
	if bad != nil {
		return bad, nil
	}
	automation, err := h.client.GetAutomation(ctx, workspaceID, automationID)
	if err != nil {
		return h.errorResult(ctx, "get_automation", err)
	}
	return jsonResult(automation)
}

func (h *handlers) getAutomationExecutions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, automationID, bad := h.automationArgs(ctx, "get_automation_executions", request)
	if bad != nil {
		return bad, nil
	}
	query, err := logQueryArgs(request)
	if err != nil {
		return h.validationResult(ctx, "get_automation_executions", err)
	}
	page, err := h.client.ListAutomationExecutions(ctx, workspaceID, automationID, query)
	if err != nil {
		return h.errorResult(ctx, "get_automation_executions", err)
	}
	return jsonResult(page)
}

func (h *handlers) getAutomationExecutionDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, automationID, bad := h.automationArgs(ctx, "get_automation_execution_details", request)
	if bad != nil {
		return bad, nil
	}
	executionID, err := idArg(request, "execution_id")
	if err != nil {
		return h.validationResult(ctx, "get_automation_execution_details", err)
	}
	details, err := h.client.GetAutomationExecution(ctx, workspaceID, automationID, executionID)
	if err != nil {
		return h.errorResult(ctx, "get_automation_execution_details", err)
	}
	return jsonResult(details)
}

func (h *handlers) getAutomationState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, automationID, bad := h.automationArgs(ctx, "get_automation_state", request)
	if bad != nil {
		return bad, nil
	}
	state, err := h.client.GetAutomationState(ctx, workspaceID, automationID)
	if err != nil {
		return h.errorResult(ctx, "get_automation_state", err)
	}
	return jsonResult(state)
}

func (h *handlers) getActiveAutomationExecution(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, automationID, bad := h.automationArgs(ctx, "get_active_automation_execution", request)
	if bad != nil {
		return bad, nil
	}
	execution, err := h.client.GetActiveAutomationExecution(ctx, workspaceID, automationID)
	if err != nil {
		return h.errorResult(ctx, "get_active_automation_execution", err)
	}
	if execution == nil {
		return textResult("No execution is currently active for this automation.")
	}
	return jsonResult(execution)
}

func (h *handlers) enableAutomation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, automationID, bad := h.automationArgs(ctx, "enable_automation", request)
	if bad != nil {
		return bad, nil
	}
	if err := h.client.EnableAutomation(ctx, workspaceID, automationID); err != nil {
		return h.errorResult(ctx, "enable_automation", err)
	}
	return textResult("Automation enabled.")
}

func (h *handlers) disableAutomation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, automationID, bad := h.automationArgs(ctx, "disable_automation", request)
	if bad != nil {
		return bad, nil
	}
	if err := h.client.DisableAutomation(ctx, workspaceID, automationID); err != nil {
		return h.errorResult(ctx, "disable_automation", err)
	}
	return textResult("Automation disabled.")
}
