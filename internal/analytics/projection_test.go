package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"lg/fitpulse-api/internal/workouts"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func kg(v float64) *float64 { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// assertContiguous checks there is exactly one point per calendar day.
func assertContiguous(t *testing.T, series []Point) {
	t.Helper()
	for i := 1; i < len(series); i++ {
		prev, err := time.Parse(dateLayout, series[i-1].Date)
		require.NoError(t, err)
		cur, err := time.Parse(dateLayout, series[i].Date)
		require.NoError(t, err)
		assert.Equal(t, prev.AddDate(0, 0, 1), cur, "gap between %s and %s", series[i-1].Date, series[i].Date)
	}
}

func TestProject_SurplusOfOneKilogram(t *testing.T) {
	now := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	weights := []WeightLog{{Date: date(2026, 3, 1), Weight: kg(80)}}
	nutrition := []NutritionLog{{Date: date(2026, 3, 2), CaloriesConsumed: 7700}}

	got := Project(weights, nil, nutrition, now)

	require.Len(t, got.Series, 2)
	assert.Equal(t, Point{Date: "2026-03-01", Weight: 80}, got.Series[0])
	assert.Equal(t, Point{Date: "2026-03-02", Weight: 81.00}, got.Series[1])
	assert.Equal(t, 80.0, got.LatestWeight)
	assert.False(t, got.Fallback)
}

func TestProject_EmptyHistoryFallsBack(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	got := Project(nil, nil, nil, now)

	require.Len(t, got.Series, 4)
	assert.Equal(t, "2026-03-07", got.Series[0].Date)
	assert.Equal(t, "2026-03-10", got.Series[3].Date)
	for _, p := range got.Series {
		assert.Equal(t, FallbackWeightKG, p.Weight)
	}
	assert.Equal(t, FallbackWeightKG, got.LatestWeight)
	assert.True(t, got.Fallback)
	assertContiguous(t, got.Series)
}

func TestProject_LogsWithoutWeightAreIgnored(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	weights := []WeightLog{
		{Date: date(2026, 3, 9)},
		{Date: date(2026, 3, 5), Weight: kg(90)},
		{Date: date(2026, 3, 8), Weight: kg(88.4)},
		{Date: date(2026, 3, 1), Weight: kg(91)},
	}

	got := Project(weights, nil, nil, now)

	assert.Equal(t, "2026-03-08", got.Baseline)
	assert.Equal(t, 88.4, got.LatestWeight)
	require.Len(t, got.Series, 3)
	assertContiguous(t, got.Series)
}

func TestProject_OnlyCompletedWorkoutsBurn(t *testing.T) {
	now := date(2026, 3, 2)
	weights := []WeightLog{{Date: date(2026, 3, 1), Weight: kg(80)}}
	workoutLogs := []WorkoutLog{
		{Date: date(2026, 3, 2), Type: workouts.TypeCardio, Completed: true, CaloriesBurnt: 3850},
		{Date: date(2026, 3, 2), Type: workouts.TypeStrength, Completed: false, CaloriesBurnt: 3850},
	}
	nutrition := []NutritionLog{
		{Date: date(2026, 3, 2), CaloriesConsumed: 3850},
		{Date: date(2026, 3, 2), CaloriesConsumed: 3850},
	}

	got := Project(weights, workoutLogs, nutrition, now)

	require.Len(t, got.Series, 2)
	// 7700 consumed - 3850 burned = +0.5 kg
	assert.Equal(t, 80.5, got.Series[1].Weight)
}

// TestProject_AccumulatesUnrounded checks that rounding applies only to the
// emitted points, not to the running weight.
func TestProject_AccumulatesUnrounded(t *testing.T) {
	now := date(2026, 3, 4)
	weights := []WeightLog{{Date: date(2026, 3, 1), Weight: kg(80)}}
	var nutrition []NutritionLog
	for d := 2; d <= 4; d++ {
		nutrition = append(nutrition, NutritionLog{Date: date(2026, 3, d), CaloriesConsumed: 31})
	}

	got := Project(weights, nil, nutrition, now)

	require.Len(t, got.Series, 4)
	assert.Equal(t, 80.00, got.Series[1].Weight)
	assert.Equal(t, 80.01, got.Series[2].Weight)
	assert.Equal(t, 80.01, got.Series[3].Weight)
}

func TestProject_FutureBaseline(t *testing.T) {
	now := date(2026, 3, 1)
	weights := []WeightLog{{Date: date(2026, 3, 5), Weight: kg(70)}}

	got := Project(weights, nil, nil, now)

	require.Len(t, got.Series, 1)
	assert.Equal(t, Point{Date: "2026-03-05", Weight: 70}, got.Series[0])
}

func TestProject_LongGapIsContiguous(t *testing.T) {
	now := date(2026, 4, 15)
	weights := []WeightLog{{Date: date(2026, 2, 20), Weight: kg(72)}}
	nutrition := []NutritionLog{{Date: date(2026, 3, 31), CaloriesConsumed: 2000}}

	got := Project(weights, nil, nutrition, now)

	assert.Len(t, got.Series, 55)
	assertContiguous(t, got.Series)
	assert.Equal(t, "2026-04-15", got.Series[len(got.Series)-1].Date)
}
