// Package notify keeps the user facing notifications: a feed of level-ups
// and the permanent mission status badge.
package notify

import (
	"fmt"
	"time"
)

type Kind string

const (
	KindLevelUp       Kind = "level_up"
	KindMissionStatus Kind = "mission_status"
)

type Notification struct {
	Kind       Kind      `json:"kind"`
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	UserID     int       `json:"userId,omitempty"`
	Level      int       `json:"level,omitempty"`
	DailyLeft  int       `json:"dailyLeft"`
	WeeklyLeft int       `json:"weeklyLeft"`
	At         time.Time `json:"at"`
}

func levelUp(userID, level int, at time.Time) Notification {
	return Notification{
		Kind:   KindLevelUp,
		Title:  "Level Up!",
		Text:   fmt.Sprintf("Congratulations! You've reached level %d.", level),
		UserID: userID,
		Level:  level,
		At:     at,
	}
}

func missionStatus(dailyLeft, weeklyLeft int, at time.Time) Notification {
	return Notification{
		Kind:       KindMissionStatus,
		Title:      "Mission Status",
		Text:       fmt.Sprintf("Daily missions left: %d, Weekly missions left: %d", dailyLeft, weeklyLeft),
		DailyLeft:  dailyLeft,
		WeeklyLeft: weeklyLeft,
		At:         at,
	}
}
