package training

import (
	"errors"
	"time"
)

var (
	ErrProgramNotFound = errors.New("program not found")
	ErrSessionNotFound = errors.New("training session not found")
	ErrSessionFinished = errors.New("training session already finished")
	ErrNoExercises     = errors.New("blueprint session has no exercises")
	ErrInvalidOrdinal  = errors.New("invalid set ordinal")
	ErrSetsStored      = errors.New("sets of current exercise already stored")
)

type Program struct {
	ID       int                `json:"id"`
	Name     string             `json:"name"`
	Sessions []BlueprintSession `json:"sessions"`
}

// BlueprintSession is one reusable session template of a program.
type BlueprintSession struct {
	ID        int        `json:"id"`
	ProgramID int        `json:"programId"`
	Name      string     `json:"name"`
	Position  int        `json:"position"`
	Exercises []Exercise `json:"exercises"`
}

type Exercise struct {
	ID                 int    `json:"id"`
	BlueprintSessionID int    `json:"blueprintSessionId"`
	Name               string `json:"name"`
	SetsCount          int    `json:"setsCount"`
	Position           int    `json:"position"`
}

// Session is a dated, concrete run of a blueprint session.
type Session struct {
	ID                 int        `json:"id"`
	BlueprintSessionID int        `json:"blueprintSessionId"`
	UserID             int        `json:"userId"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            *time.Time `json:"endTime,omitempty"`
}

func (s Session) Completed() bool {
	return s.EndTime != nil
}

func (s Session) Duration() time.Duration {
	if s.EndTime == nil {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

type Set struct {
	TrainingSessionID int     `json:"trainingSessionId"`
	ExerciseID        int     `json:"exerciseId"`
	Ordinal           int     `json:"ordinal"`
	Reps              int     `json:"reps"`
	Weight            float64 `json:"weight"`
}

type SetValues struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// Upper bounds of a recorded set, larger values are clamped.
const (
	MaxReps   = 10_000
	MaxWeight = 10_000.0
)

// clampSet bounds reps and weight to [0, Max*]. NaN weight becomes 0.
func clampSet(v SetValues) SetValues {
	v.Reps = min(max(v.Reps, 0), MaxReps)
	if !(v.Weight > 0) {
		v.Weight = 0
	}
	v.Weight = min(v.Weight, MaxWeight)
	return v
}

// SetXP rewards progress over the previous performance of the same set:
// 5 XP per extra rep and 5 XP per extra kilo, the weight term truncated.
// Regressions earn nothing.
func SetXP(current, previous SetValues) int {
	current, previous = clampSet(current), clampSet(previous)

	xp := 0
	if current.Reps > previous.Reps {
		xp += (current.Reps - previous.Reps) * 5
	}
	if current.Weight > previous.Weight {
		xp += int((current.Weight - previous.Weight) * 5)
	}
	return xp
}

// normalizeSetsCount coerces a missing or invalid sets count to one set.
func normalizeSetsCount(n int) int {
	if n < 1 {
		return 1
	}
	return n
}
