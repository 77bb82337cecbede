package missions

//go:generate mockgen -source=$GOFILE -destination=engine_mocks_test.go -package=missions_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/levelup/internal/leveling"
	"github.com/2beens/levelup/internal/telemetry/metrics"
	"github.com/2beens/levelup/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type XPGranter interface {
	AddXP(ctx context.Context, userID int, delta int) (leveling.Result, error)
}

type BadgeNotifier interface {
	UpdateMissionBadge(ctx context.Context, dailyLeft int, weeklyLeft int)
}

// Summary counts completed missions of the current periods.
type Summary struct {
	DailyDone   int `json:"dailyDone"`
	DailyTotal  int `json:"dailyTotal"`
	WeeklyDone  int `json:"weeklyDone"`
	WeeklyTotal int `json:"weeklyTotal"`
}

func (s Summary) DailyLeft() int  { return s.DailyTotal - s.DailyDone }
func (s Summary) WeeklyLeft() int { return s.WeeklyTotal - s.WeeklyDone }

// Efficiency is the ratio of completed to all missions, 0 for an empty catalog.
func (s Summary) Efficiency() float64 {
	total := s.DailyTotal + s.WeeklyTotal
	if total == 0 {
		return 0
	}
	return float64(s.DailyDone+s.WeeklyDone) / float64(total)
}

// Engine owns the mission catalog and its completion state. Storage writes
// happen under the engine lock, so the in-memory flags always follow the
// order in which writes were committed.
type Engine struct {
	mu     sync.Mutex
	daily  []Mission
	weekly []Mission

	// serializes badge updates and events, so the last one reflects the latest state
	announceMu sync.Mutex

	store          FlagStore
	xp             XPGranter
	badge          BadgeNotifier
	events         *Broadcaster
	metricsManager *metrics.Manager
	now            func() time.Time
}

type EngineParams struct {
	Catalog        []Mission
	Store          FlagStore
	XP             XPGranter
	Badge          BadgeNotifier
	MetricsManager *metrics.Manager
}

// NewEngine builds the catalog and hydrates completion flags from the
// store; missions without a persisted flag start not completed.
func NewEngine(ctx context.Context, params EngineParams) (*Engine, error) {
	if err := validateCatalog(params.Catalog); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if params.Store == nil {
		return nil, fmt.Errorf("flag store is required")
	}

	flags, err := params.Store.Flags(ctx)
	if err != nil {
		return nil, fmt.Errorf("hydrate mission flags: %w", err)
	}

	e := &Engine{
		store:          params.Store,
		xp:             params.XP,
		badge:          params.Badge,
		events:         NewBroadcaster(),
		metricsManager: params.MetricsManager,
		now:            time.Now,
	}
	for _, m := range params.Catalog {
		m.IsCompleted = flags[m.ID]
		if m.Type == Daily {
			e.daily = append(e.daily, m)
		} else {
			e.weekly = append(e.weekly, m)
		}
	}

	e.observe(e.summaryLocked())
	return e, nil
}

func (e *Engine) GetDaily() []Mission {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Mission(nil), e.daily...)
}

func (e *Engine) GetWeekly() []Mission {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Mission(nil), e.weekly...)
}

func (e *Engine) Get(missionID string) (Mission, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if m := e.findLocked(missionID); m != nil {
		return *m, true
	}
	return Mission{}, false
}

func (e *Engine) Summary() Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.summaryLocked()
}

// Subscribe registers for catalog change events. Events emitted before the
// subscription are not replayed.
func (e *Engine) Subscribe() (<-chan Event, func()) {
	return e.events.Subscribe(16)
}

// Complete marks the mission completed and grants its reward to the user.
// It reports false for unknown or already completed missions, which grant
// nothing. A failed XP grant (e.g. unknown user) is logged and the mission
// stays completed.
func (e *Engine) Complete(ctx context.Context, userID int, missionID string) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "missions.engine.complete")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("mission", missionID), attribute.Int("user", userID))

	e.mu.Lock()
	m := e.findLocked(missionID)
	if m == nil {
		e.mu.Unlock()
		log.Debugf("complete mission: %s: %s", ErrUnknownMission, missionID)
		return false, nil
	}
	if m.IsCompleted {
		e.mu.Unlock()
		return false, nil
	}
	if err := e.store.SetFlag(ctx, m.ID, true); err != nil {
		e.mu.Unlock()
		return false, fmt.Errorf("persist mission %s flag: %w", missionID, err)
	}
	m.IsCompleted = true
	completed := *m
	e.mu.Unlock()

	if e.xp != nil {
		if _, err := e.xp.AddXP(ctx, userID, completed.Reward); err != nil {
			log.Warnf("mission %s completed, reward of %d XP not applied: %s", completed.ID, completed.Reward, err)
		}
	}

	if e.metricsManager != nil {
		e.metricsManager.CounterMissionsCompleted.WithLabelValues(string(completed.Type)).Inc()
	}
	e.announce(ctx, Event{
		Kind:      EventCompleted,
		Type:      completed.Type,
		MissionID: completed.ID,
	})

	return true, nil
}

// CompleteByID completes the mission only if it belongs to the catalog of
// the given type.
func (e *Engine) CompleteByID(ctx context.Context, userID int, missionID string, missionType Type) (bool, error) {
	m, ok := e.Get(missionID)
	if !ok || m.Type != missionType {
		log.Debugf("complete by id: no %s mission %s", missionType, missionID)
		return false, nil
	}
	return e.Complete(ctx, userID, missionID)
}

func (e *Engine) ResetDaily(ctx context.Context) error {
	return e.reset(ctx, Daily)
}

func (e *Engine) ResetWeekly(ctx context.Context) error {
	return e.reset(ctx, Weekly)
}

// reset clears every flag of the catalog of the given type. Granted XP is
// never revoked and resetting an already cleared catalog changes nothing.
func (e *Engine) reset(ctx context.Context, missionType Type) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "missions.engine.reset")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.String("type", string(missionType)))

	e.mu.Lock()
	catalog := e.catalogLocked(missionType)
	flags := make(map[string]bool, len(catalog))
	for _, m := range catalog {
		flags[m.ID] = false
	}
	if err := e.store.SetFlags(ctx, flags); err != nil {
		e.mu.Unlock()
		return fmt.Errorf("persist %s reset: %w", missionType, err)
	}
	for i := range catalog {
		catalog[i].IsCompleted = false
	}
	e.mu.Unlock()

	log.Infof("%s missions reset", missionType)
	if e.metricsManager != nil {
		e.metricsManager.CounterMissionResets.WithLabelValues(string(missionType)).Inc()
	}
	e.announce(ctx, Event{Kind: EventReset, Type: missionType})

	return nil
}

func (e *Engine) announce(ctx context.Context, event Event) {
	e.announceMu.Lock()
	defer e.announceMu.Unlock()

	summary := e.Summary()
	e.observe(summary)
	if e.badge != nil {
		e.badge.UpdateMissionBadge(ctx, summary.DailyLeft(), summary.WeeklyLeft())
	}

	event.DailyLeft = summary.DailyLeft()
	event.WeeklyLeft = summary.WeeklyLeft()
	event.At = e.now()
	e.events.Publish(event)
}

func (e *Engine) observe(summary Summary) {
	if e.metricsManager == nil {
		return
	}
	e.metricsManager.GaugeMissionsLeft.WithLabelValues(string(Daily)).Set(float64(summary.DailyLeft()))
	e.metricsManager.GaugeMissionsLeft.WithLabelValues(string(Weekly)).Set(float64(summary.WeeklyLeft()))
}

func (e *Engine) catalogLocked(missionType Type) []Mission {
	if missionType == Daily {
		return e.daily
	}
	return e.weekly
}

func (e *Engine) findLocked(missionID string) *Mission {
	for i := range e.daily {
		if e.daily[i].ID == missionID {
			return &e.daily[i]
		}
	}
	for i := range e.weekly {
		if e.weekly[i].ID == missionID {
			return &e.weekly[i]
		}
	}
	return nil
}

func (e *Engine) summaryLocked() Summary {
	s := Summary{
		DailyTotal:  len(e.daily),
		WeeklyTotal: len(e.weekly),
	}
	for _, m := range e.daily {
		if m.IsCompleted {
			s.DailyDone++
		}
	}
	for _, m := range e.weekly {
		if m.IsCompleted {
			s.WeeklyDone++
		}
	}
	return s
}
