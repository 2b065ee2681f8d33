package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func day(s string) DateOnly {
	d, err := ParseDateOnly(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDateOnly_JSON(t *testing.T) {
	d := day("2026-03-09")
	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-09"`, string(b))

	var back DateOnly
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d.Time))

	assert.Error(t, json.Unmarshal([]byte(`"09/03/2026"`), &back))

	local := time.Date(2026, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC-5", -5*3600))
	assert.Equal(t, "2026-03-10", NewDateOnly(local).String())
}

func TestMemory_Users(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	username := gofakeit.Username()
	email := gofakeit.Email()
	u, err := m.CreateUser(ctx, username, email, "hash", "token-1")
	require.NoError(t, err)

	_, err = m.CreateUser(ctx, username, gofakeit.Email(), "hash", "token-2")
	assert.ErrorIs(t, err, ErrDuplicate)

	got, err := m.UserByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	id, err := m.UserIDByToken(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	require.NoError(t, m.RotateToken(ctx, u.ID, "token-3"))
	_, err = m.UserIDByToken(ctx, "token-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.RotateToken(ctx, 999, "x"), ErrNotFound)
}

func TestMemory_ProfileKeepsGoalWeight(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.GetProfile(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	p, err := m.SetGoalWeight(ctx, 1, 72.5)
	require.NoError(t, err)
	require.NotNil(t, p.GoalWeightKG)

	age := 31
	p, err = m.UpsertProfile(ctx, Profile{UserID: 1, Age: &age})
	require.NoError(t, err)
	require.NotNil(t, p.GoalWeightKG)
	assert.Equal(t, 72.5, *p.GoalWeightKG)
	assert.Equal(t, 31, *p.Age)
}

func TestMemory_ProgressUpsertByKey(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	w1, w2 := 80.0, 79.4

	first, err := m.UpsertProgress(ctx, ProgressEntry{UserID: 1, Date: day("2026-03-01"), MealKey: MealKeyWeight, Weight: &w1})
	require.NoError(t, err)
	second, err := m.UpsertProgress(ctx, ProgressEntry{UserID: 1, Date: day("2026-03-01"), MealKey: MealKeyWeight, Weight: &w2})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	_, err = m.UpsertProgress(ctx, ProgressEntry{UserID: 1, Date: day("2026-03-04"), MealKey: "Monday-Lunch"})
	require.NoError(t, err)
	_, err = m.UpsertProgress(ctx, ProgressEntry{UserID: 2, Date: day("2026-03-05"), MealKey: MealKeyWeight})
	require.NoError(t, err)

	list, err := m.ListProgress(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2026-03-04", list[0].Date.String())
	assert.Equal(t, 79.4, *list[1].Weight)
}

func TestMemory_Workouts(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	a, err := m.CreateWorkout(ctx, Workout{UserID: 1, Title: "T-Bar Row", Date: day("2026-03-01")})
	require.NoError(t, err)
	b, err := m.CreateWorkout(ctx, Workout{UserID: 1, Title: "HIIT Sprints", Date: day("2026-03-02")})
	require.NoError(t, err)
	other, err := m.CreateWorkout(ctx, Workout{UserID: 2, Title: "Plank (Timed)", Date: day("2026-03-02")})
	require.NoError(t, err)

	n, err := m.CompleteWorkouts(ctx, 1, []int{a.ID, other.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = m.CompleteWorkouts(ctx, 1, []int{a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "already completed")

	pending, err := m.ListWorkouts(ctx, 1, WorkoutsPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, b.ID, pending[0].ID)

	all, err := m.ListWorkouts(ctx, 1, WorkoutsAll)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, b.ID, all[0].ID, "newest first")

	assert.ErrorIs(t, m.DeleteWorkout(ctx, 1, a.ID), ErrWorkoutCompleted)
	assert.ErrorIs(t, m.DeleteWorkout(ctx, 1, other.ID), ErrNotFound)
	require.NoError(t, m.DeleteWorkout(ctx, 1, b.ID))

	completed, err := m.ListWorkouts(ctx, 1, WorkoutsCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}

func TestMemory_NutritionLogs(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.CreateNutritionLog(ctx, NutritionLog{UserID: 1, Date: day("2026-03-01"), MealKey: MealKeyDailySummary, CaloriesConsumed: 2400})
	require.NoError(t, err)
	_, err = m.CreateNutritionLog(ctx, NutritionLog{UserID: 1, Date: day("2026-03-02"), MealKey: "Lunch", CaloriesConsumed: 700})
	require.NoError(t, err)

	logs, err := m.ListNutritionLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, 700, logs[0].CaloriesConsumed)

	empty, err := m.ListNutritionLogs(ctx, 3)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
