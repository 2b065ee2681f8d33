package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"lg/fitpulse-api/internal/analytics"
	"lg/fitpulse-api/internal/store"
	"lg/fitpulse-api/internal/workouts"
)

const maxWeightKG = 700

// dateOrToday parses an optional YYYY-MM-DD date, defaulting to now's date.
// On a bad date it writes the 400 response and returns ok=false.
func dateOrToday(c *gin.Context, s string, now time.Time) (store.DateOnly, bool) {
	if s == "" {
		return store.NewDateOnly(now), true
	}
	d, err := store.ParseDateOnly(s)
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return store.DateOnly{}, false
	}
	return d, true
}

// listProgress returns weight/notes entries, newest first. Meal completion
// flags live in the same table and are filtered out.
// GET /api/progress.
func (h *Handler) listProgress(c *gin.Context) {
	userID := c.GetInt("user_id")

	entries, err := h.db.ListProgress(c, userID)
	if err != nil {
		log.Errorf("[listProgress] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch progress")
		return
	}
	out := make([]store.ProgressEntry, 0, len(entries))
	for _, e := range entries {
		if e.MealKey == store.MealKeyWeight {
			out = append(out, e)
		}
	}
	c.JSON(http.StatusOK, out)
}

// upsertWeight records the weight for a date; posting the same date again
// updates it in place.
// POST /api/progress/weight. Body: {"date": "YYYY-MM-DD", "weight": 80.5, "notes": "..."}.
func (h *Handler) upsertWeight(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body weightRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Weight <= 0 || body.Weight > maxWeightKG {
		apiError(c, http.StatusBadRequest, "weight must be between 0 and 700 kg")
		return
	}
	date, ok := dateOrToday(c, body.Date, h.now())
	if !ok {
		return
	}

	entry, err := h.db.UpsertProgress(c, store.ProgressEntry{
		UserID:  userID,
		Date:    date,
		MealKey: store.MealKeyWeight,
		Weight:  &body.Weight,
		Notes:   body.Notes,
	})
	if err != nil {
		log.Errorf("[upsertWeight] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to save weight")
		return
	}
	c.JSON(http.StatusOK, entry)
}

/* ─── Analytics ───────────────────────────────────────────────────────── */

// history is a user's logs converted to the analytics inputs.
type history struct {
	weights   []analytics.WeightLog
	workouts  []analytics.WorkoutLog
	nutrition []analytics.NutritionLog
}

// loadHistory reads every log the analytics need.
func (h *Handler) loadHistory(c *gin.Context, userID int) (history, error) {
	var out history

	entries, err := h.db.ListProgress(c, userID)
	if err != nil {
		return out, err
	}
	for _, e := range entries {
		if e.MealKey == store.MealKeyWeight {
			out.weights = append(out.weights, analytics.WeightLog{Date: e.Date.Time, Weight: e.Weight})
		}
	}

	list, err := h.db.ListWorkouts(c, userID, store.WorkoutsAll)
	if err != nil {
		return out, err
	}
	for _, w := range list {
		out.workouts = append(out.workouts, analytics.WorkoutLog{
			Date:          w.Date.Time,
			Type:          workouts.Type(w.Type),
			Completed:     w.Completed,
			CaloriesBurnt: w.CaloriesBurnt,
		})
	}

	logs, err := h.db.ListNutritionLogs(c, userID)
	if err != nil {
		return out, err
	}
	for _, n := range logs {
		out.nutrition = append(out.nutrition, analytics.NutritionLog{
			Date:             n.Date.Time,
			CaloriesConsumed: n.CaloriesConsumed,
			ProteinG:         n.MacroProteinG,
			CarbsG:           n.MacroCarbsG,
			FatG:             n.MacroFatG,
		})
	}
	return out, nil
}

// getProjection projects the user's weight day by day from the latest
// weigh-in using the logged calorie balance.
// GET /api/progress/projection.
func (h *Handler) getProjection(c *gin.Context) {
	userID := c.GetInt("user_id")

	hist, err := h.loadHistory(c, userID)
	if err != nil {
		log.Errorf("[getProjection] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to load history")
		return
	}

	projection := analytics.Project(hist.weights, hist.workouts, hist.nutrition, h.now())
	h.metrics.CounterProjections.Inc()
	c.JSON(http.StatusOK, projection)
}

// getSummary returns the progress overview: today's balance, workout split,
// totals and weight change.
// GET /api/progress/summary.
func (h *Handler) getSummary(c *gin.Context) {
	userID := c.GetInt("user_id")

	hist, err := h.loadHistory(c, userID)
	if err != nil {
		log.Errorf("[getSummary] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to load history")
		return
	}

	resp := summaryResponse{Summary: analytics.Summarize(hist.weights, hist.workouts, hist.nutrition, h.now())}
	// ListProgress is newest first.
	for _, w := range hist.weights {
		if w.Weight != nil {
			resp.LatestWeight = w.Weight
			break
		}
	}
	if p, err := h.db.GetProfile(c, userID); err == nil {
		resp.GoalWeightKG = p.GoalWeightKG
	}
	c.JSON(http.StatusOK, resp)
}
