package skyvia

import (
	"context"
	"fmt"

	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

// Agent is an on-premise agent installation registered in a
// workspace.
type Agent struct {
	ID   int64  `json:"id" validate:"required"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

func (c *Client) ListAgents(ctx context.Context, workspaceID int64, page PageParams) (Page[Agent], error) {
	query, err := pageQuery(page)
	if err != nil {
		return Page[Agent]{}, err
	}
	return fetchPage[Agent](ctx, c,
		fmt.Sprintf("list agents in workspace %d", workspaceID),
		fmt.Sprintf("/v1/workspaces/%d/agents", workspaceID), query)
}

func (c *Client) GetAgent(ctx context.Context, workspaceID, agentID int64) (Agent, error) {
	return fetchRecord[Agent](ctx, c,
		fmt.Sprintf("get agent %d", agentID),
		fmt.Sprintf("/v1/workspaces/%d/agents/%d", workspaceID, agentID))
}

// TestAgent checks that the agent is online and reachable. Failures
// are reported in-band the same way connection tests are.
func (c *Client) TestAgent(ctx context.Context, workspaceID, agentID int64) (TestResult, error) {
	op := fmt.Sprintf("test agent %d", agentID)
	out, err := c.Do(ctx, Request{
		Method: "POST",
		Path:   fmt.Sprintf("/v1/workspaces/%d/agents/%d/test", workspaceID, agentID),
	})
	if err != nil {
		return TestResult{}, errors.Op(op, err)
	}
	return testResult(op, out)
}
