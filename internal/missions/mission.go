package missions

import (
	"errors"
	"fmt"
)

var ErrUnknownMission = errors.New("unknown mission")

type Type string

const (
	Daily  Type = "daily"
	Weekly Type = "weekly"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case Daily, Weekly:
		return Type(s), nil
	default:
		return "", fmt.Errorf("invalid mission type: %q", s)
	}
}

type Mission struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Type        Type   `json:"type"`
	IsCompleted bool   `json:"isCompleted"`
	Reward      int    `json:"reward"`
}

// Mission ids completed automatically by trackers.
const (
	DailyFlexibility = "daily_flex"
	DailyWater       = "daily_water"
	DailySleep       = "daily_sleep"
	DailyNutrition   = "daily_nutrition"
	WeeklyWorkout    = "weekly_workout"
	WeeklyEndurance  = "weekly_endurance"
	WeeklyWeigh      = "weekly_weigh"
)

func DefaultCatalog() []Mission {
	return []Mission{
		{ID: DailyFlexibility, Description: "Complete a 15-minutes flexibility training", Type: Daily, Reward: 50},
		{ID: DailyWater, Description: "Drink the correct amount of water", Type: Daily, Reward: 30},
		{ID: "daily_learn", Description: "Practice micro learning for 30 minutes", Type: Daily, Reward: 40},
		{ID: "daily_meditate", Description: "Meditate for 10 minutes", Type: Daily, Reward: 25},
		{ID: "daily_hygiene", Description: "Make sure to have proper hygiene", Type: Daily, Reward: 20},
		{ID: DailySleep, Description: "Sleep over 7 hours", Type: Daily, Reward: 20},
		{ID: DailyNutrition, Description: "Be sure to have a proper nutrition", Type: Daily, Reward: 20},
		{ID: "daily_planning", Description: "Respect today's planning", Type: Daily, Reward: 20},
		{ID: "daily_planning_2", Description: "Fine tune tomorrow's planning", Type: Daily, Reward: 20},
		{ID: "daily_appearance", Description: "Work on external appearance", Type: Daily, Reward: 20},

		{ID: WeeklyWorkout, Description: "Complete the workout program", Type: Weekly, Reward: 100},
		{ID: "weekly_planning", Description: "Create next week planning", Type: Weekly, Reward: 80},
		{ID: WeeklyEndurance, Description: "Run 10 kilometers", Type: Weekly, Reward: 60},
		{ID: "weekly_cook", Description: "Cook a new recipe", Type: Weekly, Reward: 50},
		{ID: "weekly_clean", Description: "Clean your living space", Type: Weekly, Reward: 40},
		{ID: "weekly_report", Description: "Check the progress of the week", Type: Weekly, Reward: 40},
		{ID: WeeklyWeigh, Description: "Register new weight", Type: Weekly, Reward: 10},
	}
}

func validateCatalog(catalog []Mission) error {
	seen := make(map[string]bool, len(catalog))
	for _, m := range catalog {
		if m.ID == "" {
			return errors.New("mission with empty id")
		}
		if seen[m.ID] {
			return fmt.Errorf("duplicate mission id: %s", m.ID)
		}
		seen[m.ID] = true
		if m.Reward <= 0 {
			return fmt.Errorf("mission %s: reward must be positive", m.ID)
		}
		if _, err := ParseType(string(m.Type)); err != nil {
			return fmt.Errorf("mission %s: %w", m.ID, err)
		}
	}
	return nil
}
