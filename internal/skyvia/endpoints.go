package skyvia

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type Endpoint struct {
	ID       int64     `json:"id" validate:"required"`
	Name     string    `json:"name"`
	Token    string    `json:"token"`
	Active   bool      `json:"active"`
	Type     string    `json:"type" validate:"required"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`
}

// EndpointTypes maps endpoint type names to their numeric codes. The
// set of types grows over time, so the shape is left open.
type EndpointTypes map[string]int64

// EndpointRequestLog is one request served by an endpoint. Endpoint
// execution identifiers are opaque strings, not numbers, and may be
// null in the log.
type EndpointRequestLog struct {
	ExecutionID string    `json:"executionId"`
	Date        time.Time `json:"date"`
	Method      string    `json:"method" validate:"required"`
	Failed      bool      `json:"failed"`
	Bytes       int64     `json:"bytes"`
	RemoteIP    string    `json:"remoteIP"`
	URL         string    `json:"url"`
}

type EndpointRequestLogDetails struct {
	Date      time.Time `json:"date"`
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	RemoteIP  string    `json:"remoteIP"`
	UserAgent string    `json:"userAgent"`
	User      string    `json:"user"`
	Error     string    `json:"error"`
	Log       []string  `json:"log"`
	Bytes     int64     `json:"bytes"`
	Rows      int64     `json:"rows"`
	PageToken string    `json:"pageToken"`
	External  bool      `json:"external"`
}

func (c *Client) ListEndpoints(ctx context.Context, workspaceID int64, page PageParams) (Page[Endpoint], error) {
	query, err := pageQuery(page)
	if err != nil {
		return Page[Endpoint]{}, err
	}
	return fetchPage[Endpoint](ctx, c,
		fmt.Sprintf("list endpoints in workspace %d", workspaceID),
		fmt.Sprintf("/v1/workspaces/%d/endpoints", workspaceID), query)
}

// ListEndpointTypes returns the catalog of available endpoint types.
func (c *Client) ListEndpointTypes(ctx context.Context) (EndpointTypes, error) {
	return fetchRecord[EndpointTypes](ctx, c, "list endpoint types", "/v1/endpoints/types")
}

func (c *Client) GetEndpoint(ctx context.Context, workspaceID, endpointID int64) (Endpoint, error) {
	return fetchRecord[Endpoint](ctx, c,
		fmt.Sprintf("get endpoint %d", endpointID),
		fmt.Sprintf("/v1/workspaces/%d/endpoints/%d", workspaceID, endpointID))
}

func (c *Client) EnableEndpoint(ctx context.Context, workspaceID, endpointID int64) error {
	return postNoContent(ctx, c,
		fmt.Sprintf("enable endpoint %d", endpointID),
		fmt.Sprintf("/v1/workspaces/%d/endpoints/%d/enable", workspaceID, endpointID))
}

func (c *Client) DisableEndpoint(ctx context.Context, workspaceID, endpointID int64) error {
	return postNoContent(ctx, c,
		fmt.Sprintf("disable endpoint %d", endpointID),
		fmt.Sprintf("/v1/workspaces/%d/endpoints/%d/disable", workspaceID, endpointID))
}

func (c *Client) ListEndpointExecutions(ctx context.Context, workspaceID, endpointID int64, query LogQuery) (Page[EndpointRequestLog], error) {
	values, err := query.values("date", "executionId")
	if err != nil {
		return Page[EndpointRequestLog]{}, err
	}
	return fetchPage[EndpointRequestLog](ctx, c,
		fmt.Sprintf("list executions of endpoint %d", endpointID),
		fmt.Sprintf("/v1/workspaces/%d/endpoints/%d/executions", workspaceID, endpointID), values)
}

func (c *Client) GetEndpointExecution(ctx context.Context, workspaceID, endpointID int64, executionID string) (EndpointRequestLogDetails, error) {
	return fetchRecord[EndpointRequestLogDetails](ctx, c,
		fmt.Sprintf("get execution %s of endpoint %d", executionID, endpointID),
		fmt.Sprintf("/v1/workspaces/%d/endpoints/%d/executions/%s", workspaceID, endpointID, url.PathEscape(executionID)))
}
