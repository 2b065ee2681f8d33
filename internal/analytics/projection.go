// Package analytics turns logged history into the progress view: a projected
// weight curve from daily energy balance and summary statistics.
package analytics

import (
	"math"
	"time"

	"lg/fitpulse-api/internal/workouts"
)

const (
	// KcalPerKG is the energy balance treated as one kilogram of body mass.
	KcalPerKG = 7700.0
	// FallbackWeightKG is the baseline used when no weight has ever been logged.
	FallbackWeightKG = 75.0
	// fallbackLookbackDays places the fallback baseline before today.
	fallbackLookbackDays = 3
)

const dateLayout = "2006-01-02"

type WeightLog struct {
	Date   time.Time
	Weight *float64
}

type WorkoutLog struct {
	Date          time.Time
	Type          workouts.Type
	Completed     bool
	CaloriesBurnt float64
}

type NutritionLog struct {
	Date             time.Time
	CaloriesConsumed int
	ProteinG         int
	CarbsG           int
	FatG             int
}

type Point struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
}

type Projection struct {
	Series       []Point `json:"series"`
	LatestWeight float64 `json:"latest_weight"`
	// Baseline is the date the series starts from.
	Baseline string `json:"baseline"`
	// Fallback is set when no weight log existed and the default baseline was used.
	Fallback bool `json:"fallback"`
}

// day truncates t to its UTC calendar date.
func day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// baseline returns the most recent log carrying a weight.
func baseline(weights []WeightLog) (WeightLog, bool) {
	var latest WeightLog
	found := false
	for _, w := range weights {
		if w.Weight == nil {
			continue
		}
		if !found || w.Date.After(latest.Date) {
			latest = w
			found = true
		}
	}
	return latest, found
}

// dailyNet is consumed minus burned kcal per UTC date; only completed
// workouts burn.
func dailyNet(workoutLogs []WorkoutLog, nutrition []NutritionLog) map[string]float64 {
	net := make(map[string]float64)
	for _, n := range nutrition {
		net[day(n.Date).Format(dateLayout)] += float64(n.CaloriesConsumed)
	}
	for _, w := range workoutLogs {
		if !w.Completed {
			continue
		}
		net[day(w.Date).Format(dateLayout)] -= w.CaloriesBurnt
	}
	return net
}

// Project integrates daily energy balance forward from the latest logged
// weight, emitting one point per calendar day through today. Every call
// starts from scratch.
func Project(weights []WeightLog, workoutLogs []WorkoutLog, nutrition []NutritionLog, now time.Time) Projection {
	today := day(now)

	start, ok := baseline(weights)
	startWeight := FallbackWeightKG
	startDate := today.AddDate(0, 0, -fallbackLookbackDays)
	if ok {
		startWeight = *start.Weight
		startDate = day(start.Date)
	}

	net := dailyNet(workoutLogs, nutrition)

	series := []Point{{Date: startDate.Format(dateLayout), Weight: startWeight}}
	current := startWeight
	for d := startDate.AddDate(0, 0, 1); !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format(dateLayout)
		current += net[key] / KcalPerKG
		series = append(series, Point{Date: key, Weight: round2(current)})
	}

	return Projection{
		Series:       series,
		LatestWeight: startWeight,
		Baseline:     startDate.Format(dateLayout),
		Fallback:     !ok,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
