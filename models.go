package main

import (
	"lg/fitpulse-api/internal/analytics"
	"lg/fitpulse-api/internal/nutrition"
)

/* ─── Auth ────────────────────────────────────────────────────────────── */

type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authResponse struct {
	Token  string `json:"token"`
	UserID int    `json:"user_id"`
}

/* ─── Profile ─────────────────────────────────────────────────────────── */

// profileRequest is the body of PUT /api/profile. Omitted fields are stored
// as NULL, matching a full-form save.
type profileRequest struct {
	Name     *string  `json:"name"`
	Age      *int     `json:"age"`
	HeightCM *float64 `json:"height"`
	WeightKG *float64 `json:"weight"`
	Gender   *string  `json:"gender"`
	Goal     *string  `json:"goal"`
}

type goalWeightRequest struct {
	GoalWeightKG float64 `json:"goal_weight"`
}

/* ─── Nutrition ───────────────────────────────────────────────────────── */

// planResponse pairs the cached week plan with the targets it was built from.
type planResponse struct {
	Targets nutrition.MacroTargets `json:"targets"`
	Plan    nutrition.WeekPlan     `json:"plan"`
}

// cachedPlan is the value stored in the plan cache.
type cachedPlan struct {
	Targets nutrition.MacroTargets
	Plan    nutrition.WeekPlan
}

type swapRequest struct {
	Day      int    `json:"day"`
	Meal     int    `json:"meal"`
	Category string `json:"category"`
}

type swapResponse struct {
	Swapped bool               `json:"swapped"`
	Plan    nutrition.WeekPlan `json:"plan"`
}

type mealCompletionRequest struct {
	Day      int  `json:"day"`
	Meal     int  `json:"meal"`
	Complete bool `json:"complete"`
}

type logDayRequest struct {
	Day int `json:"day"`
}

// nutritionLogRequest is the body of POST /api/nutrition/logs. Date defaults
// to today.
type nutritionLogRequest struct {
	Date             string         `json:"date"`
	MealKey          string         `json:"meal_key"`
	MealTime         *string        `json:"meal_time"`
	CaloriesConsumed int            `json:"calories_consumed"`
	MacroProteinG    int            `json:"macro_protein_g"`
	MacroCarbsG      int            `json:"macro_carbs_g"`
	MacroFatG        int            `json:"macro_fat_g"`
	CaloriesTotal    *int           `json:"calories_total"`
	ConsumedFoods    map[string]any `json:"consumed_foods"`
}

/* ─── Workouts ────────────────────────────────────────────────────────── */

// createWorkoutRequest is the body of POST /api/workouts. Catalog fields
// fill anything omitted when title names a catalog exercise.
type createWorkoutRequest struct {
	Title           string   `json:"title"`
	Type            string   `json:"type"`
	Date            string   `json:"date"`
	DurationMinutes *int     `json:"duration"`
	CaloriesBurnt   *float64 `json:"calories_burnt"`
}

type completeWorkoutsRequest struct {
	IDs []int `json:"ids"`
}

/* ─── Progress ────────────────────────────────────────────────────────── */

type weightRequest struct {
	Date   string  `json:"date"`
	Weight float64 `json:"weight"`
	Notes  *string `json:"notes"`
}

type summaryResponse struct {
	analytics.Summary
	LatestWeight *float64 `json:"latest_weight"`
	GoalWeightKG *float64 `json:"goal_weight"`
}
