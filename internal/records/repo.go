package records

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/levelup/internal/aggregate"
	"github.com/2beens/levelup/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

type sampleSource struct {
	table  string
	column string
}

// metrics readable straight from a record table
var sampleSources = map[Metric]sampleSource{
	MetricWater:       {table: "water_record", column: "liters"},
	MetricSleep:       {table: "sleep_record", column: "minutes"},
	MetricFlexibility: {table: "flexibility_record", column: "duration_seconds"},
	MetricEndurance:   {table: "endurance_record", column: "distance_meters"},
	MetricCalories:    {table: "meal_record", column: "calories"},
	MetricMealBalance: {table: "meal_record", column: "balance_index"},
}

func (r *Repo) AddWater(ctx context.Context, w Water) (_ *Water, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.addwater")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx,
		`INSERT INTO water_record (user_id, timestamp, liters) VALUES ($1, $2, $3) RETURNING id`,
		w.UserID, w.Timestamp, w.Liters,
	).Scan(&w.ID)
	if err != nil {
		return nil, fmt.Errorf("insert water record: %w", err)
	}
	return &w, nil
}

func (r *Repo) AddSleep(ctx context.Context, s Sleep) (_ *Sleep, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.addsleep")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx,
		`INSERT INTO sleep_record (user_id, timestamp, minutes) VALUES ($1, $2, $3) RETURNING id`,
		s.UserID, s.Timestamp, s.Minutes,
	).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("insert sleep record: %w", err)
	}
	return &s, nil
}

func (r *Repo) AddFlexibility(ctx context.Context, f Flexibility) (_ *Flexibility, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.addflexibility")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx,
		`INSERT INTO flexibility_record (user_id, timestamp, duration_seconds) VALUES ($1, $2, $3) RETURNING id`,
		f.UserID, f.Timestamp, f.DurationSeconds,
	).Scan(&f.ID)
	if err != nil {
		return nil, fmt.Errorf("insert flexibility record: %w", err)
	}
	return &f, nil
}

func (r *Repo) AddEndurance(ctx context.Context, e Endurance) (_ *Endurance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.addendurance")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		INSERT INTO endurance_record (user_id, timestamp, duration_seconds, distance_meters)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, e.UserID, e.Timestamp, e.DurationSeconds, e.DistanceMeters).Scan(&e.ID)
	if err != nil {
		return nil, fmt.Errorf("insert endurance record: %w", err)
	}
	return &e, nil
}

func (r *Repo) AddMeal(ctx context.Context, m Meal) (_ *Meal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.addmeal")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	err = r.db.QueryRow(ctx, `
		INSERT INTO meal_record (user_id, timestamp, name, calories, protein, carbs, fat, balance_index)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, m.UserID, m.Timestamp, m.Name, m.Calories, m.Protein, m.Carbs, m.Fat, m.BalanceIndex).Scan(&m.ID)
	if err != nil {
		return nil, fmt.Errorf("insert meal record: %w", err)
	}
	return &m, nil
}

// Samples returns the values of a metric recorded by the user in [from, to),
// oldest first.
func (r *Repo) Samples(ctx context.Context, metric Metric, userID int, from, to time.Time) (_ []aggregate.Sample, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.records.samples")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("metric", string(metric)), attribute.Int("user", userID))

	src, ok := sampleSources[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}

	rows, err := r.db.Query(ctx, fmt.Sprintf(`
		SELECT timestamp, %s::double precision
		FROM %s
		WHERE user_id = $1 AND timestamp >= $2 AND timestamp < $3
		ORDER BY timestamp
	`, src.column, src.table), userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []aggregate.Sample
	for rows.Next() {
		var s aggregate.Sample
		if err := rows.Scan(&s.Timestamp, &s.Value); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}
