package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"lg/fitpulse-api/internal/store"
	"lg/fitpulse-api/internal/workouts"
)

// getWorkoutCatalog returns the suggested exercises by muscle group plus the
// daily cardio preset.
// GET /api/workouts/catalog.
func (h *Handler) getWorkoutCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"groups":       workouts.Catalog(),
		"daily_cardio": workouts.DailyCardio,
	})
}

// listWorkouts returns the user's workouts, newest first.
// GET /api/workouts?status=pending|completed|all (default all).
func (h *Handler) listWorkouts(c *gin.Context) {
	userID := c.GetInt("user_id")

	status := store.WorkoutStatus(strings.ToLower(c.DefaultQuery("status", string(store.WorkoutsAll))))
	switch status {
	case store.WorkoutsAll, store.WorkoutsPending, store.WorkoutsCompleted:
	default:
		apiError(c, http.StatusBadRequest, "status must be one of: pending, completed, all")
		return
	}

	list, err := h.db.ListWorkouts(c, userID, status)
	if err != nil {
		log.Errorf("[listWorkouts] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch workouts")
		return
	}
	c.JSON(http.StatusOK, list)
}

// createWorkout schedules a pending workout. A title naming a catalog
// exercise fills in any omitted type, duration and calories.
// POST /api/workouts.
func (h *Handler) createWorkout(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createWorkoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Title = strings.TrimSpace(body.Title)
	if body.Title == "" {
		apiError(c, http.StatusBadRequest, "title is required")
		return
	}
	if workouts.IsDailyCardio(body.Title) {
		apiError(c, http.StatusBadRequest, "daily cardio is logged with POST /api/workouts/daily-cardio")
		return
	}

	w := store.Workout{UserID: userID, Title: body.Title}
	if ex, ok := workouts.Lookup(body.Title); ok {
		w.Title = ex.Title
		w.Type = string(ex.Type)
		duration := ex.DurationMinutes
		w.DurationMinutes = &duration
		w.CaloriesBurnt = float64(ex.Calories)
	}

	if body.Type != "" {
		t, ok := workouts.ParseType(body.Type)
		if !ok {
			apiError(c, http.StatusBadRequest, "type must be one of: Strength, Compound, Isolation, Bodyweight, Cardio")
			return
		}
		w.Type = string(t)
	}
	if w.Type == "" {
		apiError(c, http.StatusBadRequest, "type is required")
		return
	}
	if body.DurationMinutes != nil {
		if *body.DurationMinutes <= 0 {
			apiError(c, http.StatusBadRequest, "duration must be positive")
			return
		}
		w.DurationMinutes = body.DurationMinutes
	}
	if body.CaloriesBurnt != nil {
		if *body.CaloriesBurnt < 0 {
			apiError(c, http.StatusBadRequest, "calories_burnt must not be negative")
			return
		}
		w.CaloriesBurnt = *body.CaloriesBurnt
	}

	date, ok := dateOrToday(c, body.Date, h.now())
	if !ok {
		return
	}
	w.Date = date

	created, err := h.db.CreateWorkout(c, w)
	if err != nil {
		log.Errorf("[createWorkout] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to create workout")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// logDailyCardio records the daily cardio preset as already completed.
// POST /api/workouts/daily-cardio. 409 when one was logged in the last 24 hours.
func (h *Handler) logDailyCardio(c *gin.Context) {
	userID := c.GetInt("user_id")

	list, err := h.db.ListWorkouts(c, userID, store.WorkoutsCompleted)
	if err != nil {
		log.Errorf("[logDailyCardio] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch workouts")
		return
	}
	entries := make([]workouts.Entry, len(list))
	for i, w := range list {
		entries[i] = workouts.Entry{Title: w.Title, Completed: w.Completed, LoggedAt: w.CreatedAt}
	}
	now := h.now()
	if workouts.DailyCardioLogged(entries, now) {
		apiError(c, http.StatusConflict, "daily cardio already logged in the last 24 hours")
		return
	}

	preset := workouts.DailyCardio
	duration := preset.DurationMinutes
	created, err := h.db.CreateWorkout(c, store.Workout{
		UserID:          userID,
		Title:           preset.Title,
		Type:            string(preset.Type),
		Date:            store.NewDateOnly(now),
		DurationMinutes: &duration,
		CaloriesBurnt:   float64(preset.Calories),
		Completed:       true,
	})
	if err != nil {
		log.Errorf("[logDailyCardio] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to log daily cardio")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// completeWorkouts marks the given pending workouts completed.
// POST /api/workouts/complete. Body: {"ids": [1, 2]}.
func (h *Handler) completeWorkouts(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body completeWorkoutsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(body.IDs) == 0 {
		apiError(c, http.StatusBadRequest, "ids must not be empty")
		return
	}

	n, err := h.db.CompleteWorkouts(c, userID, body.IDs)
	if err != nil {
		log.Errorf("[completeWorkouts] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to complete workouts")
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}

// deleteWorkout removes a pending workout. Completed workouts are history
// and cannot be deleted.
// DELETE /api/workouts/:id.
func (h *Handler) deleteWorkout(c *gin.Context) {
	userID := c.GetInt("user_id")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		apiError(c, http.StatusBadRequest, "invalid id")
		return
	}

	err = h.db.DeleteWorkout(c, userID, id)
	switch {
	case errors.Is(err, store.ErrNotFound):
		apiError(c, http.StatusNotFound, "workout not found")
	case errors.Is(err, store.ErrWorkoutCompleted):
		apiError(c, http.StatusConflict, "completed workouts cannot be deleted")
	case err != nil:
		log.Errorf("[deleteWorkout] user %d workout %d: %s", userID, id, err)
		apiError(c, http.StatusInternalServerError, "failed to delete workout")
	default:
		c.Status(http.StatusNoContent)
	}
}
