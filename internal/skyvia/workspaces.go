package skyvia

import (
	"context"
	"fmt"
)

// Workspace is the account-level container every other resource lives
// in.
type Workspace struct {
	ID         int64  `json:"id" validate:"required"`
	Name       string `json:"name"`
	IsPersonal bool   `json:"isPersonal"`
}

// ListWorkspaces returns every workspace visible to the account. This
// is the one enumeration endpoint that returns a bare JSON array
// instead of a paged envelope.
func (c *Client) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	return fetchList[Workspace](ctx, c, "list workspaces", "/v1/workspaces")
}

func (c *Client) GetWorkspace(ctx context.Context, workspaceID int64) (Workspace, error) {
	return fetchRecord[Workspace](ctx, c,
		fmt.Sprintf("get workspace %d", workspaceID),
		fmt.Sprintf("/v1/workspaces/%d", workspaceID))
}
