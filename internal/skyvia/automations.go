package skyvia

import (
	"context"
	"fmt"
	"time"
)

type Automation struct {
	ID          int64     `json:"id" validate:"required"`
	Name        string    `json:"name"`
	TriggerType string    `json:"triggerType" validate:"required"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

// AutomationLogItem is one row of an automation's execution history.
type AutomationLogItem struct {
	ExecutionID int64     `json:"executionId" validate:"required"`
	State       string    `json:"state" validate:"required"`
	Date        time.Time `json:"date"`
	BilledTasks int64     `json:"billedTasks"`
	TestMode    bool      `json:"testMode"`
}

type AutomationExecutionDetails struct {
	ExecutionID int64      `json:"executionId" validate:"required"`
	State       string     `json:"state" validate:"required"`
	Version     int        `json:"version"`
	TestMode    bool       `json:"testMode"`
	Comment     string     `json:"comment"`
	Started     *time.Time `json:"started"`
	Executed    *time.Time `json:"executed"`
	BilledTasks *int64     `json:"billedTasks"`
	Error       string     `json:"error"`
}

// AutomationExecutionState describes a run that is currently in
// flight.
type AutomationExecutionState struct {
	ExecutionID int64     `json:"executionId"`
	Date        time.Time `json:"date"`
	State       string    `json:"state"`
	TestMode    bool      `json:"testMode"`
}

type AutomationTriggerState struct {
	Enabled bool `json:"enabled"`
}

type AutomationQueueState struct {
	QueuedCount int64 `json:"queuedCount"`
}

// AutomationState is the composite runtime snapshot of an automation:
// trigger status, queue depth, and whichever execution is running.
type AutomationState struct {
	Trigger   *AutomationTriggerState   `json:"trigger"`
	Queue     *AutomationQueueState     `json:"queue"`
	Executing *AutomationExecutionState `json:"executing"`
	TestMode  *bool                     `json:"testMode"`
}

func (c *Client) ListAutomations(ctx context.Context, workspaceID int64, page PageParams) (Page[Automation], error) {
	query, err := pageQuery(page)
	if err != nil {
		return Page[Automation]{}, err
	}
	return fetchPage[Automation](ctx, c,
		fmt.Sprintf("list automations in workspace %d", workspaceID),
		fmt.Sprintf("/v1/workspaces/%d/automations", workspaceID), query)
}

func (c *Client) GetAutomation(ctx context.Context, workspaceID, automationID int64) (Automation, error) {
	return fetchRecord[Automation](ctx, c,
		fmt.Sprintf("get automation %d", automationID),
		fmt.Sprintf("/v1/workspaces/%d/automations/%d", workspaceID, automationID))
}

func (c *Client) ListAutomationExecutions(ctx context.Context, workspaceID, automationID int64, query LogQuery) (Page[AutomationLogItem], error) {
	values, err := query.values("date", "executionId")
	if err != nil {
		return Page[AutomationLogItem]{}, err
	}
	return fetchPage[AutomationLogItem](ctx, c,
		fmt.Sprintf("list executions of automation %d", automationID),
		fmt.Sprintf("/v1/workspaces/%d/automations/%d/executions", workspaceID, automationID), values)
}

func (c *Client) GetAutomationExecution(ctx context.Context, workspaceID, automationID, executionID int64) (AutomationExecutionDetails, error) {
	return fetchRecord[AutomationExecutionDetails](ctx, c,
		fmt.Sprintf("get execution %d of automation %d", executionID, automationID),
		fmt.Sprintf("/v1/workspaces/%d/automations/%d/executions/%d", workspaceID, automationID, executionID))
}

func (c *Client) GetAutomationState(ctx context.Context, workspaceID, automationID int64) (AutomationState, error) {
	return fetchRecord[AutomationState](ctx, c,
		fmt.Sprintf("get state of automation %d", automationID),
		fmt.Sprintf("/v1/workspaces/%d/automations/%d/state", workspaceID, automationID))
}

// GetActiveAutomationExecution returns nil when nothing is running.
func (c *Client) GetActiveAutomationExecution(ctx context.Context, workspaceID, automationID int64) (*AutomationExecutionState, error) {
	return fetchOptional(ctx, c,
		fmt.Sprintf("get active execution of automation %d", automationID),
		fmt.Sprintf("/v1/workspaces/%d/automations/%d/active", workspaceID, automationID),
		func(s AutomationExecutionState) bool { return s.ExecutionID != 0 })
}

func (c *Client) EnableAutomation(ctx context.Context, workspaceID, automationID int64) error {
	return postNoContent(ctx, c,
		fmt.Sprintf("enable automation %d", automationID),
		fmt.Sprintf("/v1/workspaces/%d/automations/%d/enable", workspaceID, automationID))
}

func (c *Client) DisableAutomation(ctx context.Context, workspaceID, automationID int64) error {
	return postNoContent(ctx, c,
		fmt.Sprintf("disable automation %d", automationID),
		fmt.Sprintf("/v1/workspaces/%d/automations/%d/disable", workspaceID, automationID))
}
