package training

import "fmt"

type State int

const (
	NotStarted State = iota
	Active
	Finished
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Active:
		return "active"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{NotStarted, Active, Finished} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown session state: %q", text)
}

// PendingSet is the editable, not yet persisted input of one set. Reps and
// Weight start pre-filled from Previous when a previous set exists.
type PendingSet struct {
	Ordinal  int        `json:"ordinal"`
	Reps     int        `json:"reps"`
	Weight   float64    `json:"weight"`
	Previous *SetValues `json:"previous,omitempty"`
}

// XP of the pending set against its previous one, zero without history.
func (p PendingSet) XP() int {
	if p.Previous == nil {
		return 0
	}
	return SetXP(SetValues{Reps: p.Reps, Weight: p.Weight}, *p.Previous)
}

// View is a snapshot of a training session's state machine.
type View struct {
	Session       Session      `json:"session"`
	State         State        `json:"state"`
	ExerciseIndex int          `json:"exerciseIndex"`
	ExerciseCount int          `json:"exerciseCount"`
	Exercise      *Exercise    `json:"exercise,omitempty"`
	Sets          []PendingSet `json:"sets"`
	XPEarned      int          `json:"xpEarned"`
}

type AdvanceResult struct {
	View
	ExerciseXP       int  `json:"exerciseXp"`
	ProgramCompleted bool `json:"programCompleted"`
}
