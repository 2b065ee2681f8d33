package analytics

import (
	"fmt"
	"math"
	"time"
)

type Band string

const (
	BandSurplusHigh Band = "surplus_high"
	BandSurplus     Band = "surplus"
	BandMaintenance Band = "maintenance"
	BandDeficit     Band = "deficit"
	BandDeficitHigh Band = "deficit_high"
)

type BalanceInsight struct {
	Band    Band   `json:"band"`
	Message string `json:"message"`
}

// Insight classifies a day's net kcal balance.
func Insight(net float64) BalanceInsight {
	abs := math.Abs(net)
	switch {
	case net > 500:
		return BalanceInsight{BandSurplusHigh, fmt.Sprintf("Large surplus of +%.0f kcal today. Time to add some cardio.", abs)}
	case net > 100:
		return BalanceInsight{BandSurplus, fmt.Sprintf("Moderate surplus of +%.0f kcal. Good fuel for muscle growth if the macros stay clean.", abs)}
	case net < -500:
		return BalanceInsight{BandDeficitHigh, fmt.Sprintf("Big deficit of -%.0f kcal today. Keep protein high to hold on to muscle.", abs)}
	case net < -100:
		return BalanceInsight{BandDeficit, fmt.Sprintf("Solid deficit of -%.0f kcal. Consistent days like this add up.", abs)}
	default:
		return BalanceInsight{BandMaintenance, fmt.Sprintf("Net balance is close to zero (%.0f kcal). Holding steady.", net)}
	}
}

type Summary struct {
	TodayConsumed float64        `json:"today_consumed"`
	TodayBurned   float64        `json:"today_burned"`
	TodayNet      float64        `json:"today_net"`
	Insight       BalanceInsight `json:"insight"`

	CompletedWorkouts int     `json:"completed_workouts"`
	TotalBurned       float64 `json:"total_burned"`
	StrengthPercent   int     `json:"strength_percent"`
	CardioPercent     int     `json:"cardio_percent"`

	TotalConsumed int `json:"total_consumed"`
	TotalProteinG int `json:"total_protein_g"`
	TotalCarbsG   int `json:"total_carbs_g"`
	TotalFatG     int `json:"total_fat_g"`

	// WeightChangeKG is the latest logged weight minus the oldest; zero with fewer than two.
	WeightChangeKG float64 `json:"weight_change_kg"`
}

// Summarize aggregates the logged history for the progress overview.
func Summarize(weights []WeightLog, workoutLogs []WorkoutLog, nutrition []NutritionLog, now time.Time) Summary {
	var s Summary
	today := day(now)

	for _, n := range nutrition {
		s.TotalConsumed += n.CaloriesConsumed
		s.TotalProteinG += n.ProteinG
		s.TotalCarbsG += n.CarbsG
		s.TotalFatG += n.FatG
		if day(n.Date).Equal(today) {
			s.TodayConsumed += float64(n.CaloriesConsumed)
		}
	}

	var strength, cardio int
	for _, w := range workoutLogs {
		if !w.Completed {
			continue
		}
		s.CompletedWorkouts++
		s.TotalBurned += w.CaloriesBurnt
		if day(w.Date).Equal(today) {
			s.TodayBurned += w.CaloriesBurnt
		}
		switch {
		case w.Type.IsStrength():
			strength++
		case w.Type.IsCardio():
			cardio++
		}
	}
	if s.CompletedWorkouts > 0 {
		s.StrengthPercent = percent(strength, s.CompletedWorkouts)
		s.CardioPercent = percent(cardio, s.CompletedWorkouts)
	}

	s.TodayNet = s.TodayConsumed - s.TodayBurned
	s.Insight = Insight(s.TodayNet)
	s.WeightChangeKG = weightChange(weights)
	return s
}

func percent(part, whole int) int {
	return int(math.Round(float64(part) / float64(whole) * 100))
}

func weightChange(weights []WeightLog) float64 {
	var oldest, latest *WeightLog
	for i := range weights {
		w := &weights[i]
		if w.Weight == nil {
			continue
		}
		if oldest == nil || w.Date.Before(oldest.Date) {
			oldest = w
		}
		if latest == nil || w.Date.After(latest.Date) {
			latest = w
		}
	}
	if oldest == nil || oldest == latest {
		return 0
	}
	return round2(*latest.Weight - *oldest.Weight)
}
