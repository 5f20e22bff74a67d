package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func (h *handlers) registerBackupTools(s *server.MCPServer) {
	s.AddTool(newTool("list_backups",
		"List the backup packages defined in a workspace, paged.",
		withWorkspaceID(pagingOptions()...)...,
	), h.listBackups)

	s.AddTool(newTool("get_backup",
		"Get the details of a single backup package.",
		withWorkspaceID(backupIDOption())...,
	), h.getBackup)

	s.AddTool(newTool("get_backup_snapshots",
		"List the snapshot history of a backup package with paging, sorting, and date filters.",
		withWorkspaceID(append([]mcp.ToolOption{backupIDOption()},
			logQueryOptions("startTime", "snapshotId")...)...)...,
	), h.getBackupSnapshots)

	s.AddTool(newTool("run_backup_snapshot",
		"Queue a new snapshot run for a backup package and return its initial state.",
		withWorkspaceID(backupIDOption())...,
	), h.runBackupSnapshot)

	s.AddTool(newTool("get_backup_snapshot_details",
		"Get the full details of one backup snapshot, including its result.",
		withWorkspaceID(
			backupIDOption(),
			mcp.WithNumber("snapshot_id",
				mcp.Required(),
				mcp.Description("The identifier of the snapshot to inspect."),
			),
		)...,
	), h.getBackupSnapshotDetails)

	s.AddTool(newTool("get_active_backup_run",
		"Get the currently running snapshot of a backup package, if any.",
		withWorkspaceID(backupIDOption())...,
	), h.getActiveBackupRun)

	s.AddTool(newTool("get_backup_schedule",
		"Get whether the schedule of a backup package is active.",
		withWorkspaceID(backupIDOption())...,
	), h.getBackupSchedule)

	s.AddTool(newTool("enable_backup_schedule",
		"Enable the schedule of a backup package.",
		withWorkspaceID(backupIDOption())...,
	), h.enableBackupSchedule)

	s.AddTool(newTool("disable_backup_schedule",
		"Disable the schedule of a backup package.",
		withWorkspaceID(backupIDOption())...,
	), h.disableBackupSchedule)
}

func backupIDOption() mcp.ToolOption {
	return mcp.WithNumber("backup_id",
		mcp.Required(),
		mcp.Description("The unique identifier of the backup package."),
	)
}

func (h *handlers) backupArgs(ctx context.Context, tool string, request mcp.CallToolRequest) (int64, int64, *mcp.CallToolResult) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		result, _ := h.validationResult(ctx, tool, err)
		return 0, 0, result
	}
	backupID, err := idArg(request, "backup_id")
	if err != nil {
		result, _ := h.validationResult(ctx, tool, err)
		return 0, 0, result
	}
	return workspaceID, backupID, nil
}

func (h *handlers) listBackups(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, err := idArg(request, "workspace_id")
	if err != nil {
		return h.validationResult(ctx, "list_backups", err)
	}
	page, err := h.client.ListBackups(ctx, workspaceID, pageArgs(request))
	if err != nil {
		return h.errorResult(ctx, "list_backups", err)
	}
	return jsonResult(page)
}

func (h *handlers) getBackup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, backupID, bad := h.backupArgs(ctx, "get_backup", request)
	if bad != nil {
		return bad, nil
	}
	backup, err := h.client.GetBackup(ctx, workspaceID, backupID)
	if err != nil {
		return h.errorResult(ctx, "get_backup", err)
	}
	return jsonResult(backup)
}

func (h *handlers) getBackupSnapshots(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, backupID, bad := h.backupArgs(ctx, "get_backup_snapshots", request)
	if bad != nil {
		return bad, nil
	}
	query, err := logQueryArgs(request)
	if err != nil {
		return h.validationResult(ctx, "get_backup_snapshots", err)
	}
	page, err := h.client.ListBackupSnapshots(ctx, workspaceID, backupID, query)
	if err != nil {
		return h.errorResult(ctx, "get_backup_snapshots", err)
	}
	return jsonResult(page)
}

func (h *handlers) runBackupSnapshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, backupID, bad := h.backupArgs(ctx, "run_backup_snapshot", request)
	if bad != nil {
		return bad, nil
	}
	run, err := h.client.RunBackup(ctx, workspaceID, backupID)
	if err != nil {
		return h.errorResult(ctx, "run_backup_snapshot", err)
	}
	return jsonResult(run)
}

func (h *handlers) getBackupSnapshotDetails(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, backupID, bad := h.backupArgs(ctx, "get_backup_snapshot_details", request)
	if bad != nil {
		return bad, nil
	}
	snapshotID, err := idArg(request, "snapshot_id")
	if err != nil {
		return h.validationResult(ctx, "get_backup_snapshot_details", err)
	}
	details, err := h.client.GetBackupSnapshot(ctx, workspaceID, backupID, snapshotID)
	if err != nil {
		return h.errorResult(ctx, "get_backup_snapshot_details", err)
	}
	return jsonResult(details)
}

func (h *handlers) getActiveBackupRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, backupID, bad := h.backupArgs(ctx, "get_active_backup_run", request)
	if bad != nil {
		return bad, nil
	}
	run, err := h.client.GetActiveBackupRun(ctx, workspaceID, backupID)
	if err != nil {
		return h.errorResult(ctx, "get_active_backup_run", err)
	}
	if run == nil {
		return textResult("No snapshot run is currently active for this backup.")
	}
	return jsonResult(run)
}

func (h *handlers) getBackupSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, backupID, bad := h.backupArgs(ctx, "get_backup_schedule", request)
	if bad != nil {
		return bad, nil
	}
	schedule, err := h.client.GetBackupSchedule(ctx, workspaceID, backupID)
	if err != nil {
		return h.errorResult(ctx, "get_backup_schedule", err)
	}
	return jsonResult(schedule)
}

func (h *handlers) enableBackupSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, backupID, bad := h.backupArgs(ctx, "enable_backup_schedule", request)
	if bad != nil {
		return bad, nil
	}
	schedule, err := h.client.EnableBackupSchedule(ctx, workspaceID, backupID)
	if err != nil {
		return h.errorResult(ctx, "enable_backup_schedule", err)
	}
	return jsonResult(schedule)
}

func (h *handlers) disableBackupSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workspaceID, backupID, bad := h.backupArgs(ctx, "disable_backup_schedule", request)
	if bad != nil {
		return bad, nil
	}
	schedule, err := h.client.DisableBackupSchedule(ctx, workspaceID, backupID)
	if err != nil {
		return h.errorResult(ctx, "disable_backup_schedule", err)
	}
	return jsonResult(schedule)
}
