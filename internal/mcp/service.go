package mcp

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/levelup/internal/leveling"
	"github.com/2beens/levelup/internal/missions"
	"github.com/2beens/levelup/internal/records"
	"github.com/2beens/levelup/internal/users"
)

type UsersRepo interface {
	Get(ctx context.Context, id int) (*users.User, error)
}

type MissionsReader interface {
	GetDaily() []missions.Mission
	GetWeekly() []missions.Mission
	Summary() missions.Summary
}

type SeriesReader interface {
	Get(ctx context.Context, userID int, metric records.Metric) (*records.SeriesResult, error)
}

// contextService is what the tool handlers read from.
type contextService interface {
	GetSchema(ctx context.Context) (string, error)
	GetUserProgress(ctx context.Context, userID int) (*UserProgress, error)
	GetMissions(missionType string) ([]missions.Mission, error)
	GetMetricSeries(ctx context.Context, userID int, metric string) (*records.SeriesResult, error)
}

type UserProgress struct {
	UserID            int               `json:"userId"`
	Name              string            `json:"name"`
	Progress          leveling.Progress `json:"progress"`
	Missions          missions.Summary  `json:"missions"`
	MissionEfficiency float64           `json:"missionEfficiency"`
}

// ContextService implements the read-only queries exposed as MCP tools.
type ContextService struct {
	schema   SchemaRepo
	users    UsersRepo
	missions MissionsReader
	series   SeriesReader
}

func NewContextService(schema SchemaRepo, users UsersRepo, missions MissionsReader, series SeriesReader) *ContextService {
	return &ContextService{
		schema:   schema,
		users:    users,
		missions: missions,
		series:   series,
	}
}

func (s *ContextService) GetSchema(ctx context.Context) (string, error) {
	cols, err := s.schema.Columns(ctx)
	if err != nil {
		return "", err
	}
	return formatSchema(cols), nil
}

func formatSchema(cols []SchemaColumn) string {
	if len(cols) == 0 {
		return "# Levelup DB Schema\n\nNo levelup tables found in the database.\n"
	}

	byTable := make(map[string][]SchemaColumn)
	for _, c := range cols {
		byTable[c.TableName] = append(byTable[c.TableName], c)
	}
	tables := make([]string, 0, len(byTable))
	for t := range byTable {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	var b strings.Builder
	b.WriteString("# Levelup DB Schema\n")
	for _, table := range tables {
		fmt.Fprintf(&b, "\n## %s\n\n| Column | Type | Nullable | Default |\n|--------|------|----------|---------|\n", table)
		for _, c := range byTable[table] {
			def := "-"
			if c.ColumnDef != nil && *c.ColumnDef != "" {
				def = *c.ColumnDef
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", c.ColumnName, c.DataType, c.IsNullable, def)
		}
	}

	return b.String()
}

func (s *ContextService) GetUserProgress(ctx context.Context, userID int) (*UserProgress, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := s.missions.Summary()
	return &UserProgress{
		UserID:            user.ID,
		Name:              user.Name,
		Progress:          leveling.ProgressOf(user.XP, user.Level),
		Missions:          summary,
		MissionEfficiency: summary.Efficiency(),
	}, nil
}

// GetMissions returns the catalog of the given type, or both when
// missionType is empty.
func (s *ContextService) GetMissions(missionType string) ([]missions.Mission, error) {
	if missionType == "" {
		return append(s.missions.GetDaily(), s.missions.GetWeekly()...), nil
	}

	t, err := missions.ParseType(missionType)
	if err != nil {
		return nil, err
	}
	if t == missions.Daily {
		return s.missions.GetDaily(), nil
	}
	return s.missions.GetWeekly(), nil
}

func (s *ContextService) GetMetricSeries(ctx context.Context, userID int, metric string) (*records.SeriesResult, error) {
	m, err := records.ParseMetric(metric)
	if err != nil {
		return nil, err
	}
	return s.series.Get(ctx, userID, m)
}
