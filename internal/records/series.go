package records

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/levelup/internal/aggregate"
	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/internal/training"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	seriesCacheExpire = 5 * 60 // seconds
	seriesWindow      = 30
)

type samplesRepo interface {
	Samples(ctx context.Context, metric Metric, userID int, from, to time.Time) ([]aggregate.Sample, error)
}

type sessionsRepo interface {
	CompletedSessions(ctx context.Context, userID int, from, to time.Time) ([]training.Session, error)
}

type seriesSpec struct {
	bucketing aggregate.Bucketing
	reducer   aggregate.Reducer
	// multiplies stored values into the chart unit
	scale float64
	unit  string
}

var seriesSpecs = map[Metric]seriesSpec{
	MetricWater:        {bucketing: aggregate.Daily, reducer: aggregate.Sum, scale: 1, unit: "l"},
	MetricSleep:        {bucketing: aggregate.Daily, reducer: aggregate.Sum, scale: 1.0 / 60, unit: "h"},
	MetricFlexibility:  {bucketing: aggregate.Daily, reducer: aggregate.Sum, scale: 1.0 / 60, unit: "min"},
	MetricEndurance:    {bucketing: aggregate.Weekly, reducer: aggregate.Sum, scale: 1, unit: "m"},
	MetricCalories:     {bucketing: aggregate.Daily, reducer: aggregate.Sum, scale: 1, unit: "kcal"},
	MetricMealBalance:  {bucketing: aggregate.Daily, reducer: aggregate.Average, scale: 1, unit: ""},
	MetricTrainingTime: {bucketing: aggregate.Weekly, reducer: aggregate.Sum, scale: 1, unit: "h"},
}

type SeriesResult struct {
	Metric    Metric             `json:"metric"`
	Bucketing string             `json:"bucketing"`
	Unit      string             `json:"unit"`
	From      time.Time          `json:"from"`
	To        time.Time          `json:"to"`
	Buckets   []aggregate.Bucket `json:"buckets"`
}

// Series builds rolling chart series: 30 days for daily metrics, 30 weeks
// for weekly ones. Results are cached until the next record is added.
type Series struct {
	records  samplesRepo
	sessions sessionsRepo
	cache    *freecache.Cache
	loc      *time.Location
	now      func() time.Time
}

func NewSeries(records samplesRepo, sessions sessionsRepo, loc *time.Location) *Series {
	megabyte := 1024 * 1024
	if loc == nil {
		loc = time.Local
	}
	return &Series{
		records:  records,
		sessions: sessions,
		cache:    freecache.NewCache(8 * megabyte),
		loc:      loc,
		now:      time.Now,
	}
}

func (s *Series) Get(ctx context.Context, userID int, metric Metric) (_ *SeriesResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.series.get")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("metric", string(metric)), attribute.Int("user", userID))

	spec, ok := seriesSpecs[metric]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, metric)
	}

	now := s.now()
	cacheKey := fmt.Sprintf("series::%s::%d::%d", metric, userID, aggregate.DayNumber(now, s.loc))
	if cached, err := s.cache.Get([]byte(cacheKey)); err == nil {
		result := &SeriesResult{}
		if err := json.Unmarshal(cached, result); err == nil {
			span.SetAttributes(attribute.Bool("cached", true))
			return result, nil
		}
		log.Errorf("unmarshal cached series %s: %s", cacheKey, err)
	}

	var from, to time.Time
	if spec.bucketing == aggregate.Weekly {
		from, to = aggregate.LastWeeks(now, seriesWindow, s.loc)
	} else {
		from, to = aggregate.LastDays(now, seriesWindow, s.loc)
	}

	samples, err := s.samples(ctx, metric, userID, from, to)
	if err != nil {
		return nil, err
	}
	for i := range samples {
		samples[i].Value *= spec.scale
	}

	result := &SeriesResult{
		Metric:    metric,
		Bucketing: spec.bucketing.String(),
		Unit:      spec.unit,
		From:      from,
		To:        to,
		Buckets:   aggregate.Aggregate(samples, spec.bucketing, spec.reducer, s.loc),
	}

	if raw, err := json.Marshal(result); err != nil {
		log.Errorf("marshal series %s: %s", cacheKey, err)
	} else if err := s.cache.Set([]byte(cacheKey), raw, seriesCacheExpire); err != nil {
		log.Errorf("cache series %s: %s", cacheKey, err)
	}

	return result, nil
}

func (s *Series) samples(ctx context.Context, metric Metric, userID int, from, to time.Time) ([]aggregate.Sample, error) {
	if metric != MetricTrainingTime {
		return s.records.Samples(ctx, metric, userID, from, to)
	}

	if s.sessions == nil {
		return nil, nil
	}
	sessions, err := s.sessions.CompletedSessions(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("completed sessions: %w", err)
	}
	samples := make([]aggregate.Sample, 0, len(sessions))
	for _, session := range sessions {
		samples = append(samples, aggregate.Sample{
			Timestamp: session.StartTime,
			Value:     session.Duration().Hours(),
		})
	}
	return samples, nil
}

// Invalidate drops all cached series.
func (s *Series) Invalidate() {
	s.cache.Clear()
}
