package training

//go:generate mockgen -source=$GOFILE -destination=collaborators_mocks_test.go -package=training_test

import (
	"context"

	"github.com/2beens/levelup/internal/leveling"
	"github.com/2beens/levelup/internal/missions"
)

type XPGranter interface {
	AddXP(ctx context.Context, userID int, delta int) (leveling.Result, error)
}

type MissionCompleter interface {
	CompleteByID(ctx context.Context, userID int, missionID string, missionType missions.Type) (bool, error)
}

// StatsInvalidator drops cached stats derived from finished sessions.
type StatsInvalidator interface {
	Invalidate()
}
