package records

//go:generate mockgen -source=$GOFILE -destination=tracker_mocks_test.go -package=records_test

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/levelup/internal/aggregate"
	"github.com/2beens/levelup/internal/missions"
	"github.com/2beens/levelup/internal/telemetry/metrics"
	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/internal/users"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	SleepGoalMinutes          = 7 * 60
	FlexibilityGoalSeconds    = 15 * 60
	WeeklyEnduranceGoalMeters = 10000
)

type recordsRepo interface {
	AddWater(ctx context.Context, water Water) (*Water, error)
	AddSleep(ctx context.Context, sleep Sleep) (*Sleep, error)
	AddFlexibility(ctx context.Context, flexibility Flexibility) (*Flexibility, error)
	AddEndurance(ctx context.Context, endurance Endurance) (*Endurance, error)
	AddMeal(ctx context.Context, meal Meal) (*Meal, error)
	Samples(ctx context.Context, metric Metric, userID int, from, to time.Time) ([]aggregate.Sample, error)
}

type userStore interface {
	Get(ctx context.Context, id int) (*users.User, error)
	UpdateWeight(ctx context.Context, id int, weight float64) error
}

type MissionCompleter interface {
	CompleteByID(ctx context.Context, userID int, missionID string, missionType missions.Type) (bool, error)
}

type TrackerParams struct {
	Repo                 recordsRepo
	Users                userStore
	Missions             MissionCompleter
	Series               *Series
	MetricsManager       *metrics.Manager
	Location             *time.Location
	WaterExerciseMinutes int
}

// Tracker stores records and completes the missions whose thresholds the
// aggregated records of the current day or week reach.
type Tracker struct {
	repo                 recordsRepo
	users                userStore
	missions             MissionCompleter
	series               *Series
	metricsManager       *metrics.Manager
	loc                  *time.Location
	waterExerciseMinutes int
	now                  func() time.Time
}

func NewTracker(params TrackerParams) *Tracker {
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	return &Tracker{
		repo:                 params.Repo,
		users:                params.Users,
		missions:             params.Missions,
		series:               params.Series,
		metricsManager:       params.MetricsManager,
		loc:                  loc,
		waterExerciseMinutes: params.WaterExerciseMinutes,
		now:                  time.Now,
	}
}

// Result of adding a record; MissionCompleted reports whether the record
// completed its mission right now.
type Result[T any] struct {
	Record           T    `json:"record"`
	MissionCompleted bool `json:"missionCompleted"`
}

func (t *Tracker) AddWater(ctx context.Context, w Water) (_ Result[*Water], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.addwater")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if w.Liters <= 0 {
		return Result[*Water]{}, fmt.Errorf("%w: water amount must be positive", ErrInvalidRecord)
	}
	t.stamp(&w.Record)
	added, err := t.repo.AddWater(ctx, w)
	if err != nil {
		return Result[*Water]{}, err
	}
	t.added("water")

	completed := t.checkDaily(ctx, w.UserID, MetricWater, missions.DailyWater, func(total float64) bool {
		user, err := t.users.Get(ctx, w.UserID)
		if err != nil {
			log.Warnf("water requirement of user %d: %s", w.UserID, err)
			return false
		}
		required := user.WaterRequirementLiters(t.waterExerciseMinutes)
		return required > 0 && total >= required
	})

	return Result[*Water]{Record: added, MissionCompleted: completed}, nil
}

func (t *Tracker) AddSleep(ctx context.Context, s Sleep) (_ Result[*Sleep], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.addsleep")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if s.Minutes <= 0 {
		return Result[*Sleep]{}, fmt.Errorf("%w: sleep duration must be positive", ErrInvalidRecord)
	}
	t.stamp(&s.Record)
	added, err := t.repo.AddSleep(ctx, s)
	if err != nil {
		return Result[*Sleep]{}, err
	}
	t.added("sleep")

	completed := t.checkDaily(ctx, s.UserID, MetricSleep, missions.DailySleep, func(total float64) bool {
		return total >= SleepGoalMinutes
	})

	return Result[*Sleep]{Record: added, MissionCompleted: completed}, nil
}

func (t *Tracker) AddFlexibility(ctx context.Context, f Flexibility) (_ Result[*Flexibility], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.addflexibility")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if f.DurationSeconds <= 0 {
		return Result[*Flexibility]{}, fmt.Errorf("%w: flexibility duration must be positive", ErrInvalidRecord)
	}
	t.stamp(&f.Record)
	added, err := t.repo.AddFlexibility(ctx, f)
	if err != nil {
		return Result[*Flexibility]{}, err
	}
	t.added("flexibility")

	completed := t.checkDaily(ctx, f.UserID, MetricFlexibility, missions.DailyFlexibility, func(total float64) bool {
		return total >= FlexibilityGoalSeconds
	})

	return Result[*Flexibility]{Record: added, MissionCompleted: completed}, nil
}

func (t *Tracker) AddEndurance(ctx context.Context, e Endurance) (_ Result[*Endurance], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.addendurance")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if e.DurationSeconds < 0 || e.DistanceMeters < 0 {
		return Result[*Endurance]{}, fmt.Errorf("%w: endurance values must not be negative", ErrInvalidRecord)
	}
	t.stamp(&e.Record)
	added, err := t.repo.AddEndurance(ctx, e)
	if err != nil {
		return Result[*Endurance]{}, err
	}
	t.added("endurance")

	completed := t.check(ctx, e.UserID, MetricEndurance, aggregate.Weekly, missions.WeeklyEndurance, missions.Weekly, func(total float64) bool {
		return total > WeeklyEnduranceGoalMeters
	})

	return Result[*Endurance]{Record: added, MissionCompleted: completed}, nil
}

// AddMeal stores a meal with its balance index. The nutrition mission needs
// a computable calorie requirement, so users without a birth date or body
// measurements never complete it.
func (t *Tracker) AddMeal(ctx context.Context, m Meal) (_ Result[*Meal], err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.addmeal")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if m.Calories < 0 || m.Protein < 0 || m.Carbs < 0 || m.Fat < 0 {
		return Result[*Meal]{}, fmt.Errorf("%w: meal values must not be negative", ErrInvalidRecord)
	}
	t.stamp(&m.Record)
	m.BalanceIndex = BalanceIndex(m.Protein, m.Carbs, m.Fat)
	added, err := t.repo.AddMeal(ctx, m)
	if err != nil {
		return Result[*Meal]{}, err
	}
	t.added("meal")

	completed := t.checkDaily(ctx, m.UserID, MetricCalories, missions.DailyNutrition, func(total float64) bool {
		user, err := t.users.Get(ctx, m.UserID)
		if err != nil {
			log.Warnf("kcal requirement of user %d: %s", m.UserID, err)
			return false
		}
		required, ok := user.DailyKcalRequirement(t.now())
		if !ok {
			log.Debugf("kcal requirement of user %d not computable", m.UserID)
			return false
		}
		return total > required
	})

	return Result[*Meal]{Record: added, MissionCompleted: completed}, nil
}

// AddWeight registers the user's current weight and completes the weekly
// weigh-in.
func (t *Tracker) AddWeight(ctx context.Context, userID int, weight float64) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.addweight")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	if weight <= 0 {
		return false, fmt.Errorf("%w: weight must be positive", ErrInvalidRecord)
	}
	if err := t.users.UpdateWeight(ctx, userID, weight); err != nil {
		return false, err
	}
	t.added("weight")

	return t.complete(ctx, userID, missions.WeeklyWeigh, missions.Weekly), nil
}

func (t *Tracker) stamp(r *Record) {
	if r.Timestamp.IsZero() {
		r.Timestamp = t.now()
	}
}

func (t *Tracker) added(kind string) {
	if t.series != nil {
		t.series.Invalidate()
	}
	if t.metricsManager != nil {
		t.metricsManager.CounterRecordsAdded.WithLabelValues(kind).Inc()
	}
}

func (t *Tracker) checkDaily(ctx context.Context, userID int, metric Metric, missionID string, reached func(total float64) bool) bool {
	return t.check(ctx, userID, metric, aggregate.Daily, missionID, missions.Daily, reached)
}

// check sums the metric over the current day or week and completes the
// mission once reached returns true. Failures are logged and absorbed.
func (t *Tracker) check(
	ctx context.Context,
	userID int,
	metric Metric,
	bucketing aggregate.Bucketing,
	missionID string,
	missionType missions.Type,
	reached func(total float64) bool,
) bool {
	ctx, span := tracing.GlobalTracer.Start(ctx, "records.tracker.check")
	defer span.End()
	span.SetAttributes(attribute.String("metric", string(metric)), attribute.String("mission", missionID))

	now := t.now()
	from, to := bucketing.Bounds(now, t.loc)
	samples, err := t.repo.Samples(ctx, metric, userID, from, to)
	if err != nil {
		log.Errorf("%s samples of user %d: %s", metric, userID, err)
		return false
	}

	total := aggregate.ValueAt(samples, bucketing, aggregate.Sum, now, t.loc)
	if !reached(total) {
		log.Tracef("%s total %.2f, %s not reached", metric, total, missionID)
		return false
	}
	return t.complete(ctx, userID, missionID, missionType)
}

func (t *Tracker) complete(ctx context.Context, userID int, missionID string, missionType missions.Type) bool {
	if t.missions == nil {
		return false
	}
	completed, err := t.missions.CompleteByID(ctx, userID, missionID, missionType)
	if err != nil {
		log.Errorf("complete %s: %s", missionID, err)
		return false
	}
	return completed
}
