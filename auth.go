package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"lg/fitpulse-api/internal/store"
)

// dummyHash is a pre-computed bcrypt hash used when a login username isn't found.
// Running bcrypt against it keeps response time constant for unknown usernames.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

const minPasswordLen = 8

// signup creates an account with an empty profile and returns its token.
// POST /api/signup (public).
func (h *Handler) signup(c *gin.Context) {
	var body signupRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.TrimSpace(body.Email)
	if body.Username == "" || body.Email == "" {
		apiError(c, http.StatusBadRequest, "username and email are required")
		return
	}
	if len(body.Password) < minPasswordLen {
		apiError(c, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Errorf("[signup] hash password: %s", err)
		apiError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	u, err := h.db.CreateUser(c, body.Username, body.Email, string(hash), uuid.New().String())
	if errors.Is(err, store.ErrDuplicate) {
		apiError(c, http.StatusConflict, "username or email already taken")
		return
	}
	if err != nil {
		log.Errorf("[signup] create user: %s", err)
		apiError(c, http.StatusInternalServerError, "failed to create account")
		return
	}

	if _, err := h.db.UpsertProfile(c, store.Profile{UserID: u.ID}); err != nil {
		log.Errorf("[signup] create profile for user %d: %s", u.ID, err)
	}
	h.metrics.CounterSignups.Inc()

	c.JSON(http.StatusCreated, authResponse{Token: u.AuthToken, UserID: u.ID})
}

// login verifies username/password and returns the user's auth token.
// POST /api/login (public).
func (h *Handler) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, lookupErr := h.db.UserByUsername(c, body.Username)

	// Always run bcrypt, found or not.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil {
		if !errors.Is(lookupErr, store.ErrNotFound) {
			log.Errorf("[login] lookup user: %s", lookupErr)
		}
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if compareErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: u.AuthToken, UserID: u.ID})
}

// logout rotates the user's token, invalidating the one in use.
// POST /api/logout.
func (h *Handler) logout(c *gin.Context) {
	userID := c.GetInt("user_id")
	if err := h.db.RotateToken(c, userID, uuid.New().String()); err != nil {
		log.Errorf("[logout] rotate token for user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to log out")
		return
	}
	h.plans.Delete(planKey(userID))
	c.Status(http.StatusNoContent)
}

// me returns the authenticated user.
// GET /api/me.
func (h *Handler) me(c *gin.Context) {
	userID := c.GetInt("user_id")
	u, err := h.db.UserByID(c, userID)
	if errors.Is(err, store.ErrNotFound) {
		apiError(c, http.StatusNotFound, "user not found")
		return
	}
	if err != nil {
		log.Errorf("[me] user %d: %s", userID, err)
		apiError(c, http.StatusInternalServerError, "failed to load user")
		return
	}
	c.JSON(http.StatusOK, u)
}

// authMiddleware validates the Bearer token and sets user_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}
		token := strings.TrimPrefix(header, "Bearer ")

		userID, err := h.db.UserIDByToken(c, token)
		if err != nil {
			if !errors.Is(err, store.ErrNotFound) {
				log.Errorf("[authMiddleware] token lookup: %s", err)
			}
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
