package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"lg/fitpulse-api/internal/metrics"
	"lg/fitpulse-api/internal/nutrition"
	"lg/fitpulse-api/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// testEnv is a router over an in-memory store with a controllable clock.
type testEnv struct {
	router *gin.Engine
	h      *Handler
	db     *store.Memory
	now    time.Time
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	env := &testEnv{
		db:  store.NewMemory(),
		now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return env.now }
	env.db.SetClock(clock)

	planner, err := nutrition.NewPlanner(nutrition.DefaultSettings(), nutrition.NewRand(7))
	require.NoError(t, err)

	// No janitor goroutine: cleanup interval 0.
	env.h = newHandler(env.db, planner, cache.New(time.Hour, 0), metrics.NewTestManager())
	env.h.now = clock
	env.router = env.h.newRouter(nil)
	return env
}

// do sends a JSON request, authenticated when token is non-empty.
func (e *testEnv) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			_ = json.NewEncoder(&buf).Encode(body)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// signup creates an account and returns its token.
func (e *testEnv) signup(t *testing.T, username string) string {
	t.Helper()
	w := e.do(http.MethodPost, "/api/signup", "", signupRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

/* ─── Auth ────────────────────────────────────────────────────────────── */

func TestSignupLoginLogout(t *testing.T) {
	env := setupTest(t)
	token := env.signup(t, "sam")
	assert.Equal(t, 1.0, testutil.ToFloat64(env.h.metrics.CounterSignups))

	w := env.do(http.MethodGet, "/api/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[map[string]any](t, w)
	assert.Equal(t, "sam", me["username"])
	assert.NotContains(t, me, "password")

	w = env.do(http.MethodPost, "/api/login", "", loginRequest{Username: "sam", Password: "correct horse"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, token, decode[authResponse](t, w).Token)

	w = env.do(http.MethodPost, "/api/logout", token, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodPost, "/api/login", "", loginRequest{Username: "sam", Password: "correct horse"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEqual(t, token, decode[authResponse](t, w).Token)
}

func TestSignup_Validation(t *testing.T) {
	env := setupTest(t)
	env.signup(t, "sam")

	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"malformed", "{", http.StatusBadRequest},
		{"missing email", signupRequest{Username: "alex", Password: "long enough"}, http.StatusBadRequest},
		{"short password", signupRequest{Username: "alex", Email: "a@x.io", Password: "short"}, http.StatusBadRequest},
		{"duplicate username", signupRequest{Username: "sam", Email: "other@x.io", Password: "long enough"}, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodPost, "/api/signup", "", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	env := setupTest(t)
	env.signup(t, "sam")

	w := env.do(http.MethodPost, "/api/login", "", loginRequest{Username: "sam", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", errorMessage(t, w))

	w = env.do(http.MethodPost, "/api/login", "", loginRequest{Username: "nobody", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid credentials", errorMessage(t, w))
}

func TestAuthMiddleware(t *testing.T) {
	env := setupTest(t)

	w := env.do(http.MethodGet, "/api/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "missing or invalid authorization header", errorMessage(t, w))

	w = env.do(http.MethodGet, "/api/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid token", errorMessage(t, w))
}

func TestHealthz(t *testing.T) {
	env := setupTest(t)
	w := env.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

/* ─── Profile ─────────────────────────────────────────────────────────── */

func TestProfile(t *testing.T) {
	env := setupTest(t)
	token := env.signup(t, "sam")

	w := env.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[store.Profile](t, w).Age)

	w = env.do(http.MethodPut, "/api/profile/goal-weight", token, goalWeightRequest{GoalWeightKG: 75})
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodPut, "/api/profile", token,
		`{"name":"Sam","age":30,"height":180,"weight":80,"gender":"MALE","goal":"Maintain"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	p := decode[store.Profile](t, w)
	require.NotNil(t, p.Goal)
	assert.Equal(t, "maintain", *p.Goal)
	assert.Equal(t, "male", *p.Gender)
	require.NotNil(t, p.GoalWeightKG)
	assert.Equal(t, 75.0, *p.GoalWeightKG)
}

func TestProfile_Validation(t *testing.T) {
	env := setupTest(t)
	token := env.signup(t, "sam")

	for _, body := range []string{
		`{"goal":"shred"}`,
		`{"age":0}`,
		`{"height":-1}`,
		`{"weight":900}`,
		`not json`,
	} {
		w := env.do(http.MethodPut, "/api/profile", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := env.do(http.MethodPut, "/api/profile/goal-weight", token, goalWeightRequest{GoalWeightKG: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// brokenUserLookup fails every UserByID call with err.
type brokenUserLookup struct {
	*store.Memory
	err error
}

func (b brokenUserLookup) UserByID(context.Context, int) (store.User, error) {
	return store.User{}, b.err
}

func TestMe_StoreErrors(t *testing.T) {
	env := setupTest(t)
	token := env.signup(t, "sam")

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"missing user", store.ErrNotFound, http.StatusNotFound},
		{"store failure", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env.h.db = brokenUserLookup{Memory: env.db, err: tc.err}
			w := env.do(http.MethodGet, "/api/me", token, nil)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}
