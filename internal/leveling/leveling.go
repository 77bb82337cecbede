// Package leveling converts XP gains into levels. The curve requires
// 100*level^2 XP to leave a level, and the remainder carries over.
package leveling

import "math"

func Threshold(level int) int {
	if level < 1 {
		level = 1
	}
	return 100 * level * level
}

type Result struct {
	XP            int  `json:"xp"`
	Level         int  `json:"level"`
	PreviousLevel int  `json:"previousLevel"`
	LeveledUp     bool `json:"leveledUp"`
}

func (r Result) LevelsGained() int {
	return r.Level - r.PreviousLevel
}

// Apply adds delta to xp and consumes thresholds until xp < Threshold(level).
// Negative inputs are clamped, XP is never taken away, and a sum past
// math.MaxInt saturates.
func Apply(xp, level, delta int) Result {
	if level < 1 {
		level = 1
	}
	if xp < 0 {
		xp = 0
	}
	if delta < 0 {
		delta = 0
	}

	total := math.MaxInt
	if delta <= math.MaxInt-xp {
		total = xp + delta
	}

	res := Result{
		XP:            total,
		Level:         level,
		PreviousLevel: level,
	}
	for res.XP >= Threshold(res.Level) {
		res.XP -= Threshold(res.Level)
		res.Level++
	}
	res.LeveledUp = res.Level > res.PreviousLevel

	return res
}

// Progress summarizes where a user stands within the current level.
type Progress struct {
	XP          int     `json:"xp"`
	Level       int     `json:"level"`
	RequiredXP  int     `json:"requiredXp"`
	LevelRatio  float64 `json:"levelRatio"`
	XPRemaining int     `json:"xpRemaining"`
}

func ProgressOf(xp, level int) Progress {
	required := Threshold(level)
	return Progress{
		XP:          xp,
		Level:       level,
		RequiredXP:  required,
		LevelRatio:  float64(xp) / float64(required),
		XPRemaining: required - xp,
	}
}
