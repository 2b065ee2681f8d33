package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"

	"lg/fitpulse-api/internal/nutrition"
	"lg/fitpulse-api/internal/store"
)

const endOfDayMealTime = "End of Day"

var errNoTargets = errors.New("no targets")

func planKey(userID int) string {
	return "plan:" + strconv.Itoa(userID)
}

/* ─── Targets ─────────────────────────────────────────────────────────── */

// profileTargets computes the user's macro targets from their stored profile.
// errNoTargets when the profile is missing or incomplete.
func (h *Handler) profileTargets(c *gin.Context, userID int) (nutrition.MacroTargets, error) {
	p, err := h.db.GetProfile(c, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nutrition.MacroTargets{}, errNoTargets
	}
	if err != nil {
		return nutrition.MacroTargets{}, err
	}
	if p.Age == nil || p.HeightCM == nil || p.WeightKG == nil || p.Goal == nil {
		return nutrition.MacroTargets{}, errNoTargets
	}

	var gender string
	if p.Gender != nil {
		gender = *p.Gender
	}
	targets, ok := h.planner.Targets(nutrition.Profile{
		Age:      *p.Age,
		HeightCM: *p.HeightCM,
		WeightKG: *p.WeightKG,
		Gender:   nutrition.Gender(gender),
		Goal:     *p.Goal,
	})
	if !ok {
		return nutrition.MacroTargets{}, errNoTargets
	}
	return targets, nil
}

// targetsError writes the response for a profileTargets failure.
func targetsError(c *gin.Context, fn string, userID int, err error) {
	if errors.Is(err, errNoTargets) {
		apiError(c, http.StatusNotFound, "no targets")
		return
	}
	log.Errorf("[%s] targets for user %d: %s", fn, userID, err)
	apiError(c, http.StatusInternalServerError, "failed to load profile")
}

// getTargets returns the daily calorie and macro targets.
// GET /api/nutrition/targets. 404 "no targets" while the profile is incomplete.
func (h *Handler) getTargets(c *gin.Context) {
	userID := c.GetInt("user_id")
	targets, err := h.profileTargets(c, userID)
	if err != nil {
		targetsError(c, "getTargets", userID, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

/* ─── Week plan ───────────────────────────────────────────────────────── */

// currentPlan returns the user's cached plan, generating and caching a new
// one when there is none or regenerate is set.
func (h *Handler) currentPlan(c *gin.Context, userID int, regenerate bool) (cachedPlan, error) {
	if !regenerate {
		if v, ok := h.plans.Get(planKey(userID)); ok {
			h.metrics.CounterPlanCacheHits.Inc()
			return v.(cachedPlan), nil
		}
	}

	targets, err := h.profileTargets(c, userID)
	if err != nil {
		return cachedPlan{}, err
	}
	plan := cachedPlan{
		Targets: targets,
		Plan:    h.planner.GenerateWeekPlan(targets.ProteinGrams, targets.CarbGrams, targets.FatGrams),
	}
	h.plans.Set(planKey(userID), plan, cache.DefaultExpiration)
	h.metrics.CounterPlansGenerated.Inc()
	log.Debugf("[currentPlan] generated plan for user %d (%s, %d kcal)", userID, targets.Goal, targets.TargetCalories)
	return plan, nil
}

// getPlan returns the cached week plan, generating one on first use.
// GET /api/nutrition/plan.
func (h *Handler) getPlan(c *gin.Context) {
	userID := c.GetInt("user_id")
	plan, err := h.currentPlan(c, userID, false)
	if err != nil {
		targetsError(c, "getPlan", userID, err)
		return
	}
	c.JSON(http.StatusOK, planResponse(plan))
}

// regeneratePlan replaces the cached week plan with a fresh one.
// POST /api/nutrition/plan.
func (h *Handler) regeneratePlan(c *gin.Context) {
	userID := c.GetInt("user_id")
	plan, err := h.currentPlan(c, userID, true)
	if err != nil {
		targetsError(c, "regeneratePlan", userID, err)
		return
	}
	c.JSON(http.StatusOK, planResponse(plan))
}

// swapFood replaces one food of a meal with another of the same category.
// POST /api/nutrition/plan/swap. Body: {"day": 0, "meal": 1, "category": "protein"}.
func (h *Handler) swapFood(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body swapRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	role, ok := nutrition.ParseCategory(body.Category)
	if !ok {
		h.metrics.CounterSwaps.WithLabelValues("invalid").Inc()
		apiError(c, http.StatusBadRequest, "unknown category")
		return
	}

	current, err := h.currentPlan(c, userID, false)
	if err != nil {
		targetsError(c, "swapFood", userID, err)
		return
	}

	plan, swapped, err := h.planner.Swap(current.Plan, body.Day, body.Meal, role)
	if errors.Is(err, nutrition.ErrSlotNotFound) {
		h.metrics.CounterSwaps.WithLabelValues("invalid").Inc()
		apiError(c, http.StatusBadRequest, "meal slot not found")
		return
	}
	if err != nil {
		log.Errorf("[swapFood] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to swap food")
		return
	}

	if !swapped {
		h.metrics.CounterSwaps.WithLabelValues("no_alternative").Inc()
		c.JSON(http.StatusOK, swapResponse{Swapped: false, Plan: current.Plan})
		return
	}
	// Concurrent swaps for the same user are last-write-wins.
	h.plans.Set(planKey(userID), cachedPlan{Targets: current.Targets, Plan: plan}, cache.DefaultExpiration)
	h.metrics.CounterSwaps.WithLabelValues("swapped").Inc()
	c.JSON(http.StatusOK, swapResponse{Swapped: true, Plan: plan})
}

// mealKey is the progress key of a plan meal, e.g. "Monday-Breakfast".
func mealKey(day, meal int) (string, bool) {
	names := nutrition.MealNames()
	if day < 0 || day >= len(nutrition.Weekdays) || meal < 0 || meal >= len(names) {
		return "", false
	}
	return nutrition.Weekdays[day] + "-" + names[meal], true
}

// setMealCompletion marks a plan meal eaten (or not) for today.
// PUT /api/nutrition/plan/completion. Body: {"day": 0, "meal": 0, "complete": true}.
func (h *Handler) setMealCompletion(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body mealCompletionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	key, ok := mealKey(body.Day, body.Meal)
	if !ok {
		apiError(c, http.StatusBadRequest, "meal slot not found")
		return
	}

	entry, err := h.db.UpsertProgress(c, store.ProgressEntry{
		UserID:   userID,
		Date:     store.NewDateOnly(h.now()),
		MealKey:  key,
		Complete: &body.Complete,
	})
	if err != nil {
		log.Errorf("[setMealCompletion] user %d %s: %s", userID, key, err)
		apiError(c, http.StatusInternalServerError, "failed to save completion")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// logPlanDay records a plan day's totals as today's daily nutrition summary.
// POST /api/nutrition/plan/log-day. Body: {"day": 0}.
func (h *Handler) logPlanDay(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body logDayRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	current, err := h.currentPlan(c, userID, false)
	if err != nil {
		targetsError(c, "logPlanDay", userID, err)
		return
	}
	if body.Day < 0 || body.Day >= len(current.Plan.Days) {
		apiError(c, http.StatusBadRequest, "day must be between 0 and 6")
		return
	}

	day := current.Plan.Days[body.Day]
	totals := day.Totals()
	mealTime := endOfDayMealTime
	targetCalories := current.Targets.TargetCalories

	entry, err := h.db.CreateNutritionLog(c, store.NutritionLog{
		UserID:           userID,
		Date:             store.NewDateOnly(h.now()),
		MealKey:          store.MealKeyDailySummary,
		MealTime:         &mealTime,
		CaloriesConsumed: totals.Calories,
		MacroProteinG:    totals.Protein,
		MacroCarbsG:      totals.Carbs,
		MacroFatG:        totals.Fat,
		CaloriesTotal:    &targetCalories,
		ConsumedFoods:    map[string]any{"summary": fmt.Sprintf("Generated from %s plan.", day.Day)},
	})
	if err != nil {
		log.Errorf("[logPlanDay] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to log day")
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// createNutritionLog stores a free-form nutrition log entry.
// POST /api/nutrition/logs.
func (h *Handler) createNutritionLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body nutritionLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.MealKey = strings.TrimSpace(body.MealKey)
	if body.MealKey == "" {
		apiError(c, http.StatusBadRequest, "meal_key is required")
		return
	}
	if body.CaloriesConsumed < 0 || body.MacroProteinG < 0 || body.MacroCarbsG < 0 || body.MacroFatG < 0 {
		apiError(c, http.StatusBadRequest, "calories and macros must not be negative")
		return
	}
	date, ok := dateOrToday(c, body.Date, h.now())
	if !ok {
		return
	}

	entry, err := h.db.CreateNutritionLog(c, store.NutritionLog{
		UserID:           userID,
		Date:             date,
		MealKey:          body.MealKey,
		MealTime:         body.MealTime,
		CaloriesConsumed: body.CaloriesConsumed,
		MacroProteinG:    body.MacroProteinG,
		MacroCarbsG:      body.MacroCarbsG,
		MacroFatG:        body.MacroFatG,
		CaloriesTotal:    body.CaloriesTotal,
		ConsumedFoods:    body.ConsumedFoods,
	})
	if err != nil {
		log.Errorf("[createNutritionLog] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to save nutrition log")
		return
	}
	c.JSON(http.StatusCreated, entry)
}
