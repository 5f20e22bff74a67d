package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/angelmondragon/skyvia-mcp/internal/skyvia"
	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

func (h *handlers) registerAccountTools(s *server.MCPServer) {
	userOpts := pagingOptions()
	userOpts = append(userOpts, mcp.WithString("search_mask",
		mcp.Description("Optional filter matched against user names and emails."),
	))
	s.AddTool(newTool("get_account_users",
		"List the users of the current account, paged, optionally filtered by a search mask.",
		userOpts...,
	), h.getAccountUsers)

	s.AddTool(newTool("remove_account_user",
		"Remove a user from the account by email address.",
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address of the user to remove."),
		),
	), h.removeAccountUser)

	s.AddTool(newTool("get_account_invitations",
		"List the pending invitations of the current account, paged.",
		pagingOptions()...,
	), h.getAccountInvitations)

	s.AddTool(newTool("invite_user",
		"Invite a user to the account, optionally assigning workspace roles.",
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Email address to send the invitation to."),
		),
		mcp.WithString("user_type",
			mcp.Required(),
			mcp.Description("Account role for the invited user."),
			mcp.Enum("Administrator", "Member"),
		),
		mcp.WithArray("workspaces",
			mcp.Description("Optional workspace role assignments, each with workspace_id and role_id."),
		),
	), h.inviteUser)

	s.AddTool(newTool("resend_invitation",
		"Resend a pending account invitation.",
		invitationIDOption(),
	), h.resendInvitation)

	s.AddTool(newTool("delete_invitation",
		"Delete a pending account invitation.",
		invitationIDOption(),
	), h.deleteInvitation)
}

func invitationIDOption() mcp.ToolOption {
	return mcp.WithNumber("invitation_id",
		mcp.Required(),
		mcp.Description("The identifier of the invitation."),
	)
}

func (h *handlers) getAccountUsers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := h.client.ListAccountUsers(ctx, pageArgs(request), request.GetString("search_mask", ""))
	if err != nil {
		return h.errorResult(ctx, "get_account_users", err)
	}
	return jsonResult(page)
}

func (h *handlers) removeAccountUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := request.RequireString("email")
	if err != nil {
		return h.validationResult(ctx, "remove_account_user",
			errors.New(errors.CodeValidation, "email is required"))
	}
	if err := h.client.RemoveAccountUser(ctx, email); err != nil {
		return h.errorResult(ctx, "remove_account_user", err)
	}
	return textResult(fmt.Sprintf("User %s was removed from the account.", email))
}

func (h *handlers) getAccountInvitations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page, err := h.client.ListInvitations(ctx, pageArgs(request))
	if err != nil {
		return h.errorResult(ctx, "get_account_invitations", err)
	}
	return jsonResult(page)
}

func (h *handlers) inviteUser(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := request.RequireString("email")
	if err != nil {
		return h.validationResult(ctx, "invite_user",
			errors.New(errors.CodeValidation, "email is required"))
	}
	userType, err := request.RequireString("user_type")
	if err != nil {
		return h.validationResult(ctx, "invite_user",
			errors.New(errors.CodeValidation, "user_type is required"))
	}
	invite := skyvia.InviteUserRequest{Email: email, UserType: userType}

	assignments, err := workspaceInvites(request)
	if err != nil {
		return h.validationResult(ctx, "invite_user", err)
	}
	invite.Workspaces = assignments

	status, err := h.client.InviteUser(ctx, invite)
	if err != nil {
		return h.errorResult(ctx, "invite_user", err)
	}
	return jsonResult(status)
}

// workspaceInvites decodes the optional workspaces argument, a list of
// objects carrying workspace_id and role_id.
func workspaceInvites(request mcp.CallToolRequest) ([]skyvia.WorkspaceInvite, error) {
	raw, ok := request.GetArguments()["workspaces"]
	if !ok || raw == nil {
		return nil, nil
	}
	entries, ok := raw.([]any)
	if !ok {
		return nil, errors.New(errors.CodeValidation, "workspaces must be an array of objects")
	}
	invites := make([]skyvia.WorkspaceInvite, 0, len(entries))
	for i, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, errors.New(errors.CodeValidation,
				fmt.Sprintf("workspaces[%d] must be an object with workspace_id and role_id", i))
		}
		workspaceID, okW := numberField(fields, "workspace_id")
		roleID, okR := numberField(fields, "role_id")
		if !okW || !okR {
			return nil, errors.New(errors.CodeValidation,
				fmt.Sprintf("workspaces[%d] must carry numeric workspace_id and role_id", i))
		}
		invites = append(invites, skyvia.WorkspaceInvite{WorkspaceID: workspaceID, RoleID: roleID})
	}
	return invites, nil
}

func numberField(fields map[string]any, name string) (int64, bool) {
	value, ok := fields[name].(float64)
	if !ok {
		return 0, false
	}
	return int64(value), true
}

func (h *handlers) resendInvitation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	invitationID, err := idArg(request, "invitation_id")
	if err != nil {
		return h.validationResult(ctx, "resend_invitation", err)
	}
	status, err := h.client.ResendInvitation(ctx, invitationID)
	if err != nil {
		return h.errorResult(ctx, "resend_invitation", err)
	}
	return jsonResult(status)
}

func (h *handlers) deleteInvitation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	invitationID, err := idArg(request, "invitation_id")
	if err != nil {
		return h.validationResult(ctx, "delete_invitation", err)
	}
	if err := h.client.DeleteInvitation(ctx, invitationID); err != nil {
		return h.errorResult(ctx, "delete_invitation", err)
	}
	return textResult("The invitation was deleted.")
}
