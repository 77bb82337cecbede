package leveling

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=leveling_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/2beens/levelup/internal/telemetry/metrics"
	"github.com/2beens/levelup/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type ProgressStore interface {
	GetProgress(ctx context.Context, userID int) (xp int, level int, err error)
	SetProgress(ctx context.Context, userID int, xp int, level int) error
}

type LevelUpNotifier interface {
	NotifyLevelUp(ctx context.Context, userID int, level int)
}

// Service applies XP to persisted users. Updates are serialized so that
// concurrent grants for the same user never lose XP.
type Service struct {
	mu             sync.Mutex
	store          ProgressStore
	notifier       LevelUpNotifier
	metricsManager *metrics.Manager
}

func NewService(store ProgressStore, notifier LevelUpNotifier, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		notifier:       notifier,
		metricsManager: metricsManager,
	}
}

func (s *Service) AddXP(ctx context.Context, userID int, delta int) (_ Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.leveling.addxp")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("user", userID), attribute.Int("delta", delta))

	s.mu.Lock()
	defer s.mu.Unlock()

	xp, level, err := s.store.GetProgress(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("get progress of user %d: %w", userID, err)
	}

	res := Apply(xp, level, delta)
	if delta <= 0 {
		return res, nil
	}

	if err := s.store.SetProgress(ctx, userID, res.XP, res.Level); err != nil {
		return Result{}, fmt.Errorf("set progress of user %d: %w", userID, err)
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterXPGranted.Add(float64(delta))
		s.metricsManager.CounterLevelUps.Add(float64(res.LevelsGained()))
	}

	if res.LeveledUp {
		log.Infof("user %d leveled up: %d -> %d", userID, res.PreviousLevel, res.Level)
		if s.notifier != nil {
			s.notifier.NotifyLevelUp(ctx, userID, res.Level)
		}
	}

	return res, nil
}
