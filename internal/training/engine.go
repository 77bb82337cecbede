package training

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/levelup/internal/aggregate"
	"github.com/2beens/levelup/internal/missions"
	"github.com/2beens/levelup/internal/telemetry/metrics"
	"github.com/2beens/levelup/internal/telemetry/tracing"
	"github.com/2beens/levelup/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Repository is the storage the engine needs, implemented by Repo.
type Repository interface {
	ExercisesForBlueprint(ctx context.Context, blueprintSessionID int) ([]Exercise, error)
	CreateSession(ctx context.Context, blueprintSessionID, userID int, start time.Time) (*Session, error)
	GetSession(ctx context.Context, id int) (*Session, error)
	FinishSession(ctx context.Context, id int, end time.Time) error
	AddSets(ctx context.Context, sets []Set) error
	PreviousSets(ctx context.Context, exerciseID, beforeSessionID int) (map[int]SetValues, error)
	ProgramOfBlueprint(ctx context.Context, blueprintSessionID int) (programID, sessionsCount int, err error)
	CountCompletedBlueprints(ctx context.Context, programID, userID int, from, to time.Time) (int, error)
}

type activeSession struct {
	mu        sync.Mutex
	session   Session
	state     State
	exercises []Exercise
	index     int
	pending   []PendingSet
	// sets of the current exercise are stored, XP applied
	persisted bool
	xpEarned  int
}

func (s *activeSession) viewLocked() View {
	v := View{
		Session:       s.session,
		State:         s.state,
		ExerciseIndex: s.index,
		ExerciseCount: len(s.exercises),
		Sets:          make([]PendingSet, len(s.pending)),
		XPEarned:      s.xpEarned,
	}
	for i, p := range s.pending {
		if p.Previous != nil {
			prev := *p.Previous
			p.Previous = &prev
		}
		v.Sets[i] = p
	}
	if s.state == Active && s.index < len(s.exercises) {
		ex := s.exercises[s.index]
		v.Exercise = &ex
	}
	return v
}

type EngineParams struct {
	Repo           Repository
	XP             XPGranter
	Missions       MissionCompleter
	Stats          StatsInvalidator
	MetricsManager *metrics.Manager
	Location       *time.Location
}

// Engine runs the training session state machines. Each active session is
// owned by a single writer. Sessions are kept in memory until finished.
type Engine struct {
	mu       sync.Mutex
	sessions map[int]*activeSession

	repo           Repository
	xp             XPGranter
	missions       MissionCompleter
	stats          StatsInvalidator
	metricsManager *metrics.Manager
	loc            *time.Location
	now            func() time.Time
}

func NewEngine(params EngineParams) (*Engine, error) {
	if params.Repo == nil {
		return nil, errors.New("training repository is required")
	}
	loc := params.Location
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		sessions:       map[int]*activeSession{},
		repo:           params.Repo,
		xp:             params.XP,
		missions:       params.Missions,
		stats:          params.Stats,
		metricsManager: params.MetricsManager,
		loc:            loc,
		now:            time.Now,
	}, nil
}

// Start begins a session of the given blueprint. No session row is created
// when the blueprint has no exercises.
func (e *Engine) Start(ctx context.Context, userID, blueprintSessionID int) (_ View, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "training.engine.start")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user", userID), attribute.Int("blueprint_session", blueprintSessionID))

	exercises, err := e.repo.ExercisesForBlueprint(ctx, blueprintSessionID)
	if err != nil {
		return View{}, fmt.Errorf("load exercises: %w", err)
	}
	if len(exercises) == 0 {
		return View{}, ErrNoExercises
	}

	session, err := e.repo.CreateSession(ctx, blueprintSessionID, userID, e.now())
	if err != nil {
		return View{}, err
	}

	s := &activeSession{
		session:   *session,
		state:     Active,
		exercises: exercises,
	}
	s.pending = e.loadSets(ctx, session.ID, exercises[0])

	e.mu.Lock()
	e.sessions[session.ID] = s
	active := len(e.sessions)
	e.mu.Unlock()

	if e.metricsManager != nil {
		e.metricsManager.GaugeActiveSessions.Set(float64(active))
	}
	log.Debugf("training session %d started with %d exercises", session.ID, len(exercises))

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(), nil
}

// loadSets materializes the pending sets of an exercise, pre-filled from the
// most recent previous session. A failed lookup counts as no history.
func (e *Engine) loadSets(ctx context.Context, sessionID int, exercise Exercise) []PendingSet {
	previous, err := e.repo.PreviousSets(ctx, exercise.ID, sessionID)
	if err != nil {
		log.Warnf("previous sets of exercise %d: %s", exercise.ID, err)
		previous = nil
	}

	sets := make([]PendingSet, normalizeSetsCount(exercise.SetsCount))
	for i := range sets {
		sets[i].Ordinal = i
		if prev, ok := previous[i]; ok {
			sets[i].Reps = prev.Reps
			sets[i].Weight = prev.Weight
			sets[i].Previous = &prev
		}
	}
	return sets
}

// Get returns the state of a session. Sessions no longer in memory are
// looked up in storage.
func (e *Engine) Get(ctx context.Context, sessionID int) (View, error) {
	s, err := e.lookup(ctx, sessionID)
	if errors.Is(err, ErrSessionFinished) {
		session, err := e.repo.GetSession(ctx, sessionID)
		if err != nil {
			return View{}, err
		}
		return View{Session: *session, State: Finished}, nil
	}
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked(), nil
}

// RecordSet updates a pending set of the current exercise. Nothing is
// persisted until Advance.
func (e *Engine) RecordSet(ctx context.Context, sessionID, ordinal, reps int, weight float64) (View, error) {
	s, err := e.lookup(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Finished {
		return View{}, ErrSessionFinished
	}
	if ordinal < 0 || ordinal >= len(s.pending) {
		return View{}, fmt.Errorf("%w: %d", ErrInvalidOrdinal, ordinal)
	}
	if s.persisted {
		return View{}, fmt.Errorf("%w: exercise %d", ErrSetsStored, s.exercises[s.index].ID)
	}

	v := clampSet(SetValues{Reps: reps, Weight: weight})
	s.pending[ordinal].Reps = v.Reps
	s.pending[ordinal].Weight = v.Weight
	return s.viewLocked(), nil
}

// RecordSetInput is RecordSet for raw user input; malformed or negative
// numbers are coerced to 0, values above MaxReps/MaxWeight are clamped.
func (e *Engine) RecordSetInput(ctx context.Context, sessionID, ordinal int, reps, weight string) (View, error) {
	return e.RecordSet(ctx, sessionID, ordinal, pkg.IntOrDefault(reps, 0), pkg.FloatOrDefault(weight, 0))
}

// Advance stores the sets of the current exercise and applies their XP, then
// moves to the next exercise or finishes the session. A failed write leaves
// the state machine where it was, so Advance can be retried.
func (e *Engine) Advance(ctx context.Context, sessionID int) (_ AdvanceResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "training.engine.advance")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("session", sessionID))

	s, err := e.lookup(ctx, sessionID)
	if err != nil {
		return AdvanceResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Finished {
		return AdvanceResult{}, ErrSessionFinished
	}

	var result AdvanceResult
	if !s.persisted {
		exercise := s.exercises[s.index]
		sets := make([]Set, 0, len(s.pending))
		for _, p := range s.pending {
			sets = append(sets, Set{
				TrainingSessionID: s.session.ID,
				ExerciseID:        exercise.ID,
				Ordinal:           p.Ordinal,
				Reps:              p.Reps,
				Weight:            p.Weight,
			})
			result.ExerciseXP += p.XP()
		}
		if err := e.repo.AddSets(ctx, sets); err != nil {
			if !errors.Is(err, ErrSetsStored) {
				return AdvanceResult{}, fmt.Errorf("store sets: %w", err)
			}
			log.Warnf("training session %d: sets of exercise %d already stored", s.session.ID, exercise.ID)
		}
		s.persisted = true
		s.xpEarned += result.ExerciseXP

		if e.metricsManager != nil {
			e.metricsManager.CounterSetsRecorded.Add(float64(len(sets)))
		}
		e.grantXP(ctx, s.session.UserID, result.ExerciseXP)
	}

	if s.index+1 < len(s.exercises) {
		s.index++
		s.persisted = false
		s.pending = e.loadSets(ctx, s.session.ID, s.exercises[s.index])
		result.View = s.viewLocked()
		return result, nil
	}

	end := e.now()
	if err := e.repo.FinishSession(ctx, s.session.ID, end); err != nil {
		return AdvanceResult{}, fmt.Errorf("finish session: %w", err)
	}
	s.session.EndTime = &end
	s.state = Finished
	s.pending = nil

	e.mu.Lock()
	delete(e.sessions, s.session.ID)
	active := len(e.sessions)
	e.mu.Unlock()
	if e.metricsManager != nil {
		e.metricsManager.GaugeActiveSessions.Set(float64(active))
	}

	if e.stats != nil {
		e.stats.Invalidate()
	}

	result.ProgramCompleted = e.checkProgramCompletion(ctx, s.session, end)
	result.View = s.viewLocked()
	log.Infof("training session %d finished, %d XP earned", s.session.ID, s.xpEarned)

	return result, nil
}

func (e *Engine) grantXP(ctx context.Context, userID, xp int) {
	if xp <= 0 || e.xp == nil {
		return
	}
	if _, err := e.xp.AddXP(ctx, userID, xp); err != nil {
		log.Warnf("training XP of %d not applied to user %d: %s", xp, userID, err)
	}
}

// checkProgramCompletion completes the weekly workout mission once every
// blueprint session of the program has a completed session this week.
func (e *Engine) checkProgramCompletion(ctx context.Context, session Session, at time.Time) bool {
	programID, sessionsCount, err := e.repo.ProgramOfBlueprint(ctx, session.BlueprintSessionID)
	if err != nil {
		log.Warnf("program of blueprint session %d: %s", session.BlueprintSessionID, err)
		return false
	}

	from, to := aggregate.WeekBounds(at, e.loc)
	completed, err := e.repo.CountCompletedBlueprints(ctx, programID, session.UserID, from, to)
	if err != nil {
		log.Warnf("count completed sessions of program %d: %s", programID, err)
		return false
	}
	if sessionsCount == 0 || completed != sessionsCount {
		log.Debugf("program %d: %d/%d sessions completed this week", programID, completed, sessionsCount)
		return false
	}

	if e.missions != nil {
		if _, err := e.missions.CompleteByID(ctx, session.UserID, missions.WeeklyWorkout, missions.Weekly); err != nil {
			log.Errorf("complete %s: %s", missions.WeeklyWorkout, err)
		}
	}
	return true
}

// lookup finds an in-memory session. ErrSessionFinished is returned for
// sessions completed in storage.
func (e *Engine) lookup(ctx context.Context, sessionID int) (*activeSession, error) {
	e.mu.Lock()
	s, ok := e.sessions[sessionID]
	e.mu.Unlock()
	if ok {
		return s, nil
	}

	session, err := e.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, ErrSessionFinished
	}
	// started before a restart, no in-memory state left
	return nil, ErrSessionNotFound
}

func (e *Engine) ActiveCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sessions)
}
