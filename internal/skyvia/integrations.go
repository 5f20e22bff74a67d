package skyvia

import (
	"context"
	"fmt"
	"time"
)

type Integration struct {
	ID   int64  `json:"id" validate:"required"`
	Name string `json:"name"`
	// Type is the package kind (dataflow, export, import...). The
	// upstream may omit it.
	Type      string    `json:"type"`
	Created   time.Time `json:"created"`
	Modified  time.Time `json:"modified"`
	Scheduled bool      `json:"scheduled"`
}

// IntegrationExecution is the state a freshly queued run comes back
// with, and one row of the execution history.
type IntegrationExecution struct {
	RunID       int64     `json:"runId" validate:"required"`
	Date        time.Time `json:"date"`
	Duration    int64     `json:"duration"`
	State       string    `json:"state" validate:"required"`
	SuccessRows int64     `json:"successRows"`
	ErrorRows   int64     `json:"errorRows"`
}

type IntegrationExecutionResult struct {
	RunID     int64      `json:"runId" validate:"required"`
	QueueTime time.Time  `json:"queueTime"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	State     string     `json:"state" validate:"required"`
	Result    string     `json:"result"`
}

type IntegrationSchedule struct {
	Active bool `json:"active"`
}

func (c *Client) ListIntegrations(ctx context.Context, workspaceID int64, page PageParams) (Page[Integration], error) {
	query, err := pageQuery(page)
	if err != nil {
		return Page[Integration]{}, err
	}
	return fetchPage[Integration](ctx, c,
		fmt.Sprintf("list integrations in workspace %d", workspaceID),
		fmt.Sprintf("/v1/workspaces/%d/integrations", workspaceID), query)
}

func (c *Client) GetIntegration(ctx context.Context, workspaceID, integrationID int64) (Integration, error) {
	return fetchRecord[Integration](ctx, c,
		fmt.Sprintf("get integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d", workspaceID, integrationID))
}

// RunIntegration queues an execution and returns its initial state.
func (c *Client) RunIntegration(ctx context.Context, workspaceID, integrationID int64) (IntegrationExecution, error) {
	return postRecord[IntegrationExecution](ctx, c,
		fmt.Sprintf("run integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/executions", workspaceID, integrationID))
}

func (c *Client) ListIntegrationExecutions(ctx context.Context, workspaceID, integrationID int64, query LogQuery) (Page[IntegrationExecution], error) {
	values, err := query.values("date", "runId")
	if err != nil {
		return Page[IntegrationExecution]{}, err
	}
	return fetchPage[IntegrationExecution](ctx, c,
		fmt.Sprintf("list executions of integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/executions", workspaceID, integrationID), values)
}

func (c *Client) GetIntegrationExecution(ctx context.Context, workspaceID, integrationID, runID int64) (IntegrationExecutionResult, error) {
	return fetchRecord[IntegrationExecutionResult](ctx, c,
		fmt.Sprintf("get execution %d of integration %d", runID, integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/executions/%d", workspaceID, integrationID, runID))
}

// GetActiveIntegrationExecution returns nil when no run is in flight.
func (c *Client) GetActiveIntegrationExecution(ctx context.Context, workspaceID, integrationID int64) (*IntegrationExecution, error) {
	return fetchOptional(ctx, c,
		fmt.Sprintf("get active execution of integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/executions/active", workspaceID, integrationID),
		func(e IntegrationExecution) bool { return e.RunID != 0 })
}

// CancelIntegrationExecution asks the integration's running execution
// to stop after the current batch. KillIntegrationExecution aborts it
// immediately. Both address the run through the integration; the
// upstream tracks at most one execution per integration at a time.
func (c *Client) CancelIntegrationExecution(ctx context.Context, workspaceID, integrationID int64) error {
	return postNoContent(ctx, c,
		fmt.Sprintf("cancel execution of integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/executions/cancel", workspaceID, integrationID))
}

func (c *Client) KillIntegrationExecution(ctx context.Context, workspaceID, integrationID int64) error {
	return postNoContent(ctx, c,
		fmt.Sprintf("kill execution of integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/executions/kill", workspaceID, integrationID))
}

func (c *Client) GetIntegrationSchedule(ctx context.Context, workspaceID, integrationID int64) (IntegrationSchedule, error) {
	return fetchRecord[IntegrationSchedule](ctx, c,
		fmt.Sprintf("get schedule of integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/schedule", workspaceID, integrationID))
}

func (c *Client) EnableIntegrationSchedule(ctx context.Context, workspaceID, integrationID int64) (IntegrationSchedule, error) {
	return postRecord[IntegrationSchedule](ctx, c,
		fmt.Sprintf("enable schedule of integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/schedule/enable", workspaceID, integrationID))
}

func (c *Client) DisableIntegrationSchedule(ctx context.Context, workspaceID, integrationID int64) (IntegrationSchedule, error) {
	return postRecord[IntegrationSchedule](ctx, c,
		fmt.Sprintf("disable schedule of integration %d", integrationID),
		fmt.Sprintf("/v1/workspaces/%d/integrations/%d/schedule/disable", workspaceID, integrationID))
}
