package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"lg/fitpulse-api/internal/nutrition"
	"lg/fitpulse-api/internal/store"
)

// getProfile returns the authenticated user's profile.
// GET /api/profile.
func (h *Handler) getProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	p, err := h.db.GetProfile(c, userID)
	if errors.Is(err, store.ErrNotFound) {
		apiError(c, http.StatusNotFound, "profile not found")
		return
	}
	if err != nil {
		log.Errorf("[getProfile] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, p)
}

// putProfile replaces the profile's body fields, keeping the goal weight.
// Any cached plan is dropped since its targets may no longer apply.
// PUT /api/profile.
func (h *Handler) putProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body profileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Age != nil && (*body.Age <= 0 || *body.Age > 130) {
		apiError(c, http.StatusBadRequest, "age must be between 1 and 130")
		return
	}
	if body.HeightCM != nil && (*body.HeightCM <= 0 || *body.HeightCM > 300) {
		apiError(c, http.StatusBadRequest, "height must be between 0 and 300 cm")
		return
	}
	if body.WeightKG != nil && (*body.WeightKG <= 0 || *body.WeightKG > 700) {
		apiError(c, http.StatusBadRequest, "weight must be between 0 and 700 kg")
		return
	}
	if body.Gender != nil {
		g := string(nutrition.ParseGender(*body.Gender))
		body.Gender = &g
	}
	if body.Goal != nil {
		goal, ok := nutrition.ParseGoal(*body.Goal)
		if !ok {
			apiError(c, http.StatusBadRequest, "goal must be one of: "+strings.Join(goalNames(), ", "))
			return
		}
		name := goal.String()
		body.Goal = &name
	}

	p, err := h.db.UpsertProfile(c, store.Profile{
		UserID:   userID,
		Name:     body.Name,
		Age:      body.Age,
		HeightCM: body.HeightCM,
		WeightKG: body.WeightKG,
		Gender:   body.Gender,
		Goal:     body.Goal,
	})
	if err != nil {
		log.Errorf("[putProfile] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to save profile")
		return
	}

	h.plans.Delete(planKey(userID))
	c.JSON(http.StatusOK, p)
}

// putGoalWeight sets the goal weight without touching the rest of the profile.
// PUT /api/profile/goal-weight.
func (h *Handler) putGoalWeight(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body goalWeightRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.GoalWeightKG <= 0 || body.GoalWeightKG > 700 {
		apiError(c, http.StatusBadRequest, "goal_weight must be between 0 and 700 kg")
		return
	}

	p, err := h.db.SetGoalWeight(c, userID, body.GoalWeightKG)
	if err != nil {
		log.Errorf("[putGoalWeight] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to save goal weight")
		return
	}
	c.JSON(http.StatusOK, p)
}

func goalNames() []string {
	goals := nutrition.Goals
	names := make([]string, len(goals))
	for i, g := range goals {
		names[i] = g.String()
	}
	return names
}
