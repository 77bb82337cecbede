// Package records stores the append-only health records (water, sleep,
// flexibility, endurance, meals), checks the missions they can complete
// and builds chart series from them.
package records

import (
	"errors"
	"math"
	"time"
)

var (
	ErrUnknownMetric = errors.New("unknown metric")
	ErrInvalidRecord = errors.New("invalid record")
)

type Record struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
}

type Water struct {
	Record
	Liters float64 `json:"liters"`
}

type Sleep struct {
	Record
	Minutes int `json:"minutes"`
}

type Flexibility struct {
	Record
	DurationSeconds int `json:"durationSeconds"`
}

type Endurance struct {
	Record
	DurationSeconds int     `json:"durationSeconds"`
	DistanceMeters  float64 `json:"distanceMeters"`
}

type Meal struct {
	Record
	Name         string  `json:"name"`
	Calories     float64 `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
	BalanceIndex float64 `json:"balanceIndex"`
}

// Metric names a numeric series derived from records.
type Metric string

const (
	MetricWater        Metric = "water"
	MetricSleep        Metric = "sleep"
	MetricFlexibility  Metric = "flexibility"
	MetricEndurance    Metric = "endurance"
	MetricCalories     Metric = "calories"
	MetricMealBalance  Metric = "meal_balance"
	MetricTrainingTime Metric = "training_time"
)

func ParseMetric(raw string) (Metric, error) {
	m := Metric(raw)
	if _, ok := seriesSpecs[m]; !ok {
		return "", ErrUnknownMetric
	}
	return m, nil
}

// Target share of calories per macro.
const (
	targetProteinRatio = 0.3
	targetCarbsRatio   = 0.4
	targetFatRatio     = 0.3
)

// BalanceIndex rates the macro split of a meal from 0 to 1, 1 being the
// 30/40/30 protein/carbs/fat split. Meals without macros rate 0.5.
func BalanceIndex(protein, carbs, fat float64) float64 {
	totalCal := protein*4 + carbs*4 + fat*9
	if totalCal <= 0 {
		return 0.5
	}

	diff := math.Abs(protein*4/totalCal-targetProteinRatio) +
		math.Abs(carbs*4/totalCal-targetCarbsRatio) +
		math.Abs(fat*9/totalCal-targetFatRatio)

	return math.Max(0, math.Min(1, 1-diff/1.5))
}
