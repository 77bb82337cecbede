package mcp

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/2beens/levelup/internal/users"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler adapts tool calls to the context service and formats the results.
type Handler struct {
	service       contextService
	defaultUserID int
}

func NewHandler(service contextService, defaultUserID int) *Handler {
	return &Handler{
		service:       service,
		defaultUserID: defaultUserID,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	res := textResult(text)
	res.IsError = true
	return res
}

func jsonResult(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error())
	}
	return textResult(string(raw))
}

func (h *Handler) userID(requested int) int {
	if requested > 0 {
		return requested
	}
	return h.defaultUserID
}

func (h *Handler) GetSchemaTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		text, err := h.service.GetSchema(ctx)
		if err != nil {
			return errorResult("Error fetching schema: " + err.Error()), nil, nil
		}
		return textResult(text), nil, nil
	}
}

// UserInput is the input of the per-user tools.
type UserInput struct {
	UserID int `json:"user_id,omitempty" jsonschema:"User id, defaults to the installation user"`
}

func (h *Handler) GetUserProgressTool() func(context.Context, *mcp.CallToolRequest, UserInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in UserInput) (*mcp.CallToolResult, any, error) {
		progress, err := h.service.GetUserProgress(ctx, h.userID(in.UserID))
		if errors.Is(err, users.ErrUserNotFound) {
			return errorResult("User not found"), nil, nil
		}
		if err != nil {
			return errorResult("Error fetching progress: " + err.Error()), nil, nil
		}
		return jsonResult(progress), nil, nil
	}
}

// MissionsInput is the input of get_missions.
type MissionsInput struct {
	Type string `json:"type,omitempty" jsonschema:"Mission type: daily or weekly, both when empty"`
}

func (h *Handler) GetMissionsTool() func(context.Context, *mcp.CallToolRequest, MissionsInput) (*mcp.CallToolResult, any, error) {
	return func(_ context.Context, _ *mcp.CallToolRequest, in MissionsInput) (*mcp.CallToolResult, any, error) {
		list, err := h.service.GetMissions(in.Type)
		if err != nil {
			return errorResult("Invalid type: use daily or weekly"), nil, nil
		}
		return jsonResult(list), nil, nil
	}
}

// SeriesInput is the input of get_metric_series.
type SeriesInput struct {
	Metric string `json:"metric" jsonschema:"One of: water, sleep, flexibility, endurance, calories, meal_balance, training_time"`
	UserID int    `json:"user_id,omitempty" jsonschema:"User id, defaults to the installation user"`
}

func (h *Handler) GetMetricSeriesTool() func(context.Context, *mcp.CallToolRequest, SeriesInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in SeriesInput) (*mcp.CallToolResult, any, error) {
		series, err := h.service.GetMetricSeries(ctx, h.userID(in.UserID), in.Metric)
		if err != nil {
			return errorResult("Error fetching series: " + err.Error()), nil, nil
		}
		return jsonResult(series), nil, nil
	}
}
