package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/angelmondragon/skyvia-mcp/internal/skyvia"
	"github.com/angelmondragon/skyvia-mcp/pkg/errors"
	"github.com/angelmondragon/skyvia-mcp/pkg/logger"
)

// handlers carries the shared dependencies every tool closure needs.
type handlers struct {
	client *skyvia.Client
	log    *logger.Logger
}

// jsonResult renders a payload as indented JSON so MCP clients get
// readable structured output.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// textResult is for operations that have no payload to return.
func textResult(msg string) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(msg), nil
}

// errorResult logs the failure and reports it to the MCP client as a
// tool error rather than a protocol error.
func (h *handlers) errorResult(ctx context.Context, tool string, err error) (*mcp.CallToolResult, error) {
	ctx = h.log.WithTool(ctx, tool)
	h.log.Error(ctx, "tool call failed", err)
	if dump, marshalErr := json.Marshal(errors.Dump(err)); marshalErr == nil {
		h.log.Debug(ctx, "error chain: "+string(dump))
	}
	return mcp.NewToolResultError(err.Error()), nil
}

// validationResult reports a bad argument without going through the
// error log at error level.
func (h *handlers) validationResult(ctx context.Context, tool string, err error) (*mcp.CallToolResult, error) {
	ctx = h.log.WithTool(ctx, tool)
	h.log.Warn(ctx, "rejected tool arguments: "+err.Error())
	return mcp.NewToolResultError(err.Error()), nil
}

// idArg reads a required integer identifier argument.
func idArg(request mcp.CallToolRequest, name string) (int64, error) {
	value, err := request.RequireInt(name)
	if err != nil {
		return 0, errors.New(errors.CodeValidation, fmt.Sprintf("%s must be an integer", name))
	}
	if value <= 0 {
		return 0, errors.New(errors.CodeValidation, fmt.Sprintf("%s must be a positive integer", name))
	}
	return int64(value), nil
}

// pageArgs reads the shared skip/take pagination arguments.
func pageArgs(request mcp.CallToolRequest) skyvia.PageParams {
	return skyvia.PageParams{
		Skip: request.GetInt("skip", 0),
		Take: request.GetInt("take", skyvia.DefaultTake),
	}
}

func dateArg(request mcp.CallToolRequest, name string) (*time.Time, error) {
	value := request.GetString(name, "")
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, errors.New(errors.CodeValidation,
			fmt.Sprintf("%s must be an RFC 3339 timestamp, e.g. 2024-01-31T00:00:00Z", name))
	}
	return &parsed, nil
}

// logQueryArgs reads the filter and sort arguments shared by the
// execution-log listings.
func logQueryArgs(request mcp.CallToolRequest) (skyvia.LogQuery, error) {
	query := skyvia.LogQuery{
		PageParams: pageArgs(request),
		SortOrder:  request.GetString("sort_order", ""),
		SortBy:     request.GetString("sort_by", ""),
	}
	start, err := dateArg(request, "start_date")
	if err != nil {
		return skyvia.LogQuery{}, err
	}
	end, err := dateArg(request, "end_date")
	if err != nil {
		return skyvia.LogQuery{}, err
	}
	query.StartDate = start
	query.EndDate = end
	if raw, ok := request.GetArguments()["failed"]; ok {
		failed, ok := raw.(bool)
		if !ok {
			return skyvia.LogQuery{}, errors.New(errors.CodeValidation, "failed must be a boolean")
		}
		query.Failed = &failed
	}
	return query, nil
}

// pagingOptions are the tool schema options for skip/take arguments.
func pagingOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("skip",
			mcp.Description("Number of items to skip from the start of the listing."),
			mcp.Min(0),
			mcp.DefaultNumber(0),
		),
		mcp.WithNumber("take",
			mcp.Description("Number of items to return, between 1 and 200."),
			mcp.Min(1),
			mcp.Max(float64(skyvia.MaxTake)),
			mcp.DefaultNumber(float64(skyvia.DefaultTake)),
		),
	}
}

// logQueryOptions are the schema options for execution-log listings.
// sortFields names the fields the resource can sort by; the first is
// the default.
func logQueryOptions(sortFields ...string) []mcp.ToolOption {
	opts := pagingOptions()
	opts = append(opts,
		mcp.WithString("sort_order",
			mcp.Description("Sort direction, asc or desc. Defaults to asc."),
			mcp.Enum("asc", "desc"),
		),
		mcp.WithString("sort_by",
			mcp.Description(fmt.Sprintf("Field to sort by. One of: %v. Defaults to %s.", sortFields, sortFields[0])),
			mcp.Enum(sortFields...),
		),
		mcp.WithString("start_date",
			mcp.Description("Only include entries at or after this RFC 3339 timestamp."),
		),
		mcp.WithString("end_date",
			mcp.Description("Only include entries at or before this RFC 3339 timestamp."),
		),
		mcp.WithBoolean("failed",
			mcp.Description("When set, filter entries by failure status."),
		),
	)
	return opts
}

func withWorkspaceID(opts ...mcp.ToolOption) []mcp.ToolOption {
	return append([]mcp.ToolOption{
		mcp.WithNumber("workspace_id",
			mcp.Required(),
			mcp.Description("Identifier of the workspace to operate in."),
		),
	}, opts...)
}
