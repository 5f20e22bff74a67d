package skyvia

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
)

type Connection struct {
	ID        int64  `json:"id" validate:"required"`
	Name      string `json:"name"`
	Connector string `json:"connector"`
}

// ConnectionDetails adds the connector kind. Type is "Direct" for
// cloud-to-cloud connections and "Agent" for ones routed through an
// on-premise agent.
type ConnectionDetails struct {
	Connection
	Type string `json:"type" validate:"required"`
}

// TestResult is what the connectivity probes for connections and
// agents report back.
type TestResult struct {
	Message string `json:"message"`
	Refresh bool   `json:"refresh"`
}

func (c *Client) ListConnections(ctx context.Context, workspaceID int64, page PageParams) (Page[Connection], error) {
	query, err := pageQuery(page)
	if err != nil {
		return Page[Connection]{}, err
	}
	return fetchPage[Connection](ctx, c,
		fmt.Sprintf("list connections in workspace %d", workspaceID),
		fmt.Sprintf("/v1/workspaces/%d/connections", workspaceID), query)
}

func (c *Client) GetConnection(ctx context.Context, workspaceID, connectionID int64) (ConnectionDetails, error) {
	return fetchRecord[ConnectionDetails](ctx, c,
		fmt.Sprintf("get connection %d", connectionID),
		fmt.Sprintf("/v1/workspaces/%d/connections/%d", workspaceID, connectionID))
}

// TestConnection probes the connection. The upstream reports failures
// in-band through the message text rather than an HTTP status, so a
// message mentioning an error is surfaced as one.
func (c *Client) TestConnection(ctx context.Context, workspaceID, connectionID int64) (TestResult, error) {
	op := fmt.Sprintf("test connection %d", connectionID)
	out, err := c.Do(ctx, Request{
		Method: "POST",
		Path:   fmt.Sprintf("/v1/workspaces/%d/connections/%d/test", workspaceID, connectionID),
	})
	if err != nil {
		return TestResult{}, errors.Op(op, err)
	}
	return testResult(op, out)
}

func testResult(op string, out Outcome) (TestResult, error) {
	if out.NoContent() {
		return TestResult{Message: "Test completed successfully"}, nil
	}
	result, err := Record[TestResult](out)
	if err != nil {
		return TestResult{}, errors.Op(op, err)
	}
	lower := strings.ToLower(result.Message)
	if strings.Contains(lower, "error") || strings.Contains(lower, "fail") {
		return TestResult{}, errors.Op(op,
			errors.New(errors.CodeInternal, "test reported a failure").
				WithDetails(result.Message))
	}
	return result, nil
}
