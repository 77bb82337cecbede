package users

import (
	"errors"
	"math"
	"time"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	XP        int        `json:"xp"`
	Level     int        `json:"level"`
	Weight    float64    `json:"weight"` // kg
	Height    float64    `json:"height"` // cm
	BirthDate *time.Time `json:"birthDate,omitempty"`
}

// Age returns the age in full years at now; false if the birth date is unknown.
func (u *User) Age(now time.Time) (int, bool) {
	if u.BirthDate == nil || u.BirthDate.IsZero() {
		return 0, false
	}

	birth := u.BirthDate.In(now.Location())
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0, false
	}
	return age, true
}

const activityFactor = 1.55

// DailyKcalRequirement estimates the daily energy need from the
// Harris-Benedict BMR with a moderate activity factor. It is not computable
// without a birth date or body measurements.
func (u *User) DailyKcalRequirement(now time.Time) (float64, bool) {
	age, ok := u.Age(now)
	if !ok || u.Weight <= 0 || u.Height <= 0 {
		return 0, false
	}
	bmr := 88.362 + 13.397*u.Weight + 4.799*u.Height - 5.677*float64(age)
	return bmr * activityFactor, true
}

// WaterRequirementLiters returns the daily water need: 35ml per kg of body
// weight plus 350ml per full half hour of exercise.
func (u *User) WaterRequirementLiters(exerciseMinutes int) float64 {
	if exerciseMinutes < 0 {
		exerciseMinutes = 0
	}
	liters := u.Weight*0.035 + float64(exerciseMinutes/30)*0.35
	return math.Round(liters*1000) / 1000
}
