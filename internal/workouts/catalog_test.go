package workouts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestCatalog_Shape(t *testing.T) {
	groups := Catalog()
	require.Len(t, groups, 7)
	for _, g := range groups {
		assert.Len(t, g.Exercises, 3, g.Muscle)
		for _, e := range g.Exercises {
			_, ok := ParseType(string(e.Type))
			assert.True(t, ok, "%s has unknown type %q", e.Title, e.Type)
			assert.Positive(t, e.Calories)
		}
	}

	// Callers get a copy.
	groups[0].Exercises[0].Title = "changed"
	assert.Equal(t, "Barbell Bench Press", Catalog()[0].Exercises[0].Title)
}

func TestLookup(t *testing.T) {
	e, ok := Lookup("  barbell squats ")
	require.True(t, ok)
	assert.Equal(t, TypeCompound, e.Type)
	assert.Equal(t, 480, e.Calories)

	_, ok = Lookup(DailyCardio.Title)
	assert.False(t, ok)

	_, ok = Lookup("Underwater Basket Weaving")
	assert.False(t, ok)
}

func TestIsDailyCardio(t *testing.T) {
	assert.True(t, IsDailyCardio(DailyCardio.Title))
	assert.True(t, IsDailyCardio("  daily 30-minute cardio session "))
	assert.False(t, IsDailyCardio("HIIT Sprints"))
}

func TestType_Split(t *testing.T) {
	cases := []struct {
		typ      Type
		strength bool
		cardio   bool
	}{
		{TypeStrength, true, false},
		{TypeCompound, true, false},
		{TypeIsolation, true, false},
		{TypeBodyweight, false, true},
		{TypeCardio, false, true},
		{Type("Yoga"), false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.strength, tc.typ.IsStrength(), tc.typ)
		assert.Equal(t, tc.cardio, tc.typ.IsCardio(), tc.typ)
	}
}

func TestDailyCardioLogged(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		entries []Entry
		want    bool
	}{
		{"no entries", nil, false},
		{"logged an hour ago", []Entry{{Title: DailyCardio.Title, Completed: true, LoggedAt: now.Add(-time.Hour)}}, true},
		{"logged 25 hours ago", []Entry{{Title: DailyCardio.Title, Completed: true, LoggedAt: now.Add(-25 * time.Hour)}}, false},
		{"not completed", []Entry{{Title: DailyCardio.Title, Completed: false, LoggedAt: now.Add(-time.Hour)}}, false},
		{"other workout", []Entry{{Title: "HIIT Sprints", Completed: true, LoggedAt: now.Add(-time.Hour)}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DailyCardioLogged(tc.entries, now))
		})
	}
}
