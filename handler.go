package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lg/fitpulse-api/internal/metrics"
	"lg/fitpulse-api/internal/nutrition"
	"lg/fitpulse-api/internal/store"
)

// repository is the table store the handlers run against. *store.Store in
// production, *store.Memory in tests.
type repository interface {
	Ping(ctx context.Context) error

	CreateUser(ctx context.Context, username, email, passwordHash, token string) (store.User, error)
	UserByUsername(ctx context.Context, username string) (store.User, error)
	UserByID(ctx context.Context, id int) (store.User, error)
	UserIDByToken(ctx context.Context, token string) (int, error)
	RotateToken(ctx context.Context, userID int, token string) error

	GetProfile(ctx context.Context, userID int) (store.Profile, error)
	UpsertProfile(ctx context.Context, p store.Profile) (store.Profile, error)
	SetGoalWeight(ctx context.Context, userID int, kg float64) (store.Profile, error)

	ListProgress(ctx context.Context, userID int) ([]store.ProgressEntry, error)
	UpsertProgress(ctx context.Context, e store.ProgressEntry) (store.ProgressEntry, error)

	ListWorkouts(ctx context.Context, userID int, status store.WorkoutStatus) ([]store.Workout, error)
	CreateWorkout(ctx context.Context, w store.Workout) (store.Workout, error)
	CompleteWorkouts(ctx context.Context, userID int, ids []int) (int64, error)
	DeleteWorkout(ctx context.Context, userID, id int) error

	ListNutritionLogs(ctx context.Context, userID int) ([]store.NutritionLog, error)
	CreateNutritionLog(ctx context.Context, n store.NutritionLog) (store.NutritionLog, error)
}

// Handler holds shared dependencies for all route handlers.
type Handler struct {
	db      repository
	planner *nutrition.Planner
	// plans caches each user's current WeekPlan, keyed by user id.
	plans   *cache.Cache
	metrics *metrics.Manager
	now     func() time.Time
}

func newHandler(db repository, planner *nutrition.Planner, plans *cache.Cache, m *metrics.Manager) *Handler {
	return &Handler{
		db:      db,
		planner: planner,
		plans:   plans,
		metrics: m,
		now:     time.Now,
	}
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// newRouter builds the gin engine with every route registered.
func (h *Handler) newRouter(gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.metrics.Middleware())
	_ = router.SetTrustedProxies(nil)

	router.GET("/healthz", h.healthz)
	if gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	h.registerRoutes(router)
	return router
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/signup", h.signup)
	router.POST("/api/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())
	api.GET("/me", h.me)
	api.POST("/logout", h.logout)

	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.putProfile)
	api.PUT("/profile/goal-weight", h.putGoalWeight)

	api.GET("/nutrition/targets", h.getTargets)
	api.GET("/nutrition/plan", h.getPlan)
	api.POST("/nutrition/plan", h.regeneratePlan)
	api.POST("/nutrition/plan/swap", h.swapFood)
	api.PUT("/nutrition/plan/completion", h.setMealCompletion)
	api.POST("/nutrition/plan/log-day", h.logPlanDay)
	api.POST("/nutrition/logs", h.createNutritionLog)

	api.GET("/workouts/catalog", h.getWorkoutCatalog)
	api.GET("/workouts", h.listWorkouts)
	api.POST("/workouts", h.createWorkout)
	api.POST("/workouts/daily-cardio", h.logDailyCardio)
	api.POST("/workouts/complete", h.completeWorkouts)
	api.DELETE("/workouts/:id", h.deleteWorkout)

	api.GET("/progress", h.listProgress)
	api.POST("/progress/weight", h.upsertWeight)
	api.GET("/progress/projection", h.getProjection)
	api.GET("/progress/summary", h.getSummary)
}

// healthz reports whether the store is reachable.
// GET /healthz (public).
func (h *Handler) healthz(c *gin.Context) {
	if err := h.db.Ping(c); err != nil {
		apiError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
