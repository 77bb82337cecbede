package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ServerParams struct {
	Schema        SchemaRepo
	Users         UsersRepo
	Missions      MissionsReader
	Series        SeriesReader
	DefaultUserID int
}

// NewServer builds the read-only levelup MCP server. The backend mounts it
// at /mcp, cmd/levelup_mcp serves it over stdio.
func NewServer(params ServerParams) *mcp.Server {
	svc := NewContextService(params.Schema, params.Users, params.Missions, params.Series)
	h := NewHandler(svc, params.DefaultUserID)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "levelup-context",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_levelup_schema",
		Description: "Returns the DB schema of the levelup tables (users, programs, training sessions and sets, water, sleep, flexibility, endurance and meal records).",
	}, h.GetSchemaTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_user_progress",
		Description: "Returns level, XP, XP required for the next level, level ratio and the mission summary of a user. Optional arg: user_id.",
	}, h.GetUserProgressTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_missions",
		Description: "Returns the mission catalog with completion flags and rewards. Optional arg: type (daily or weekly).",
	}, h.GetMissionsTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_metric_series",
		Description: "Returns the chart series of a metric over the last 30 days or weeks, one bucket per day or ISO week. Args: metric; optional: user_id.",
	}, h.GetMetricSeriesTool())

	return s
}
