package nutrition

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func validProfile() Profile {
	return Profile{Age: 30, HeightCM: 180, WeightKG: 80, Gender: GenderMale, Goal: "maintain"}
}

/* ─── Missing-field guard tests ──────────────────────────────────────── */

// TestComputeTargets_MissingFields verifies that ok=false is returned when any
// required profile field is absent or non-positive.
func TestComputeTargets_MissingFields(t *testing.T) {
	cases := []struct {
		name  string
		mutFn func(p *Profile)
	}{
		{"zero age", func(p *Profile) { p.Age = 0 }},
		{"negative age", func(p *Profile) { p.Age = -4 }},
		{"zero height", func(p *Profile) { p.HeightCM = 0 }},
		{"zero weight", func(p *Profile) { p.WeightKG = 0 }},
		{"NaN weight", func(p *Profile) { p.WeightKG = math.NaN() }},
		{"empty goal", func(p *Profile) { p.Goal = "" }},
		{"blank goal", func(p *Profile) { p.Goal = "   " }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validProfile()
			tc.mutFn(&p)
			_, ok := ComputeTargets(p)
			assert.False(t, ok)
		})
	}
}

/* ─── Formula accuracy tests ─────────────────────────────────────────── */

// TestComputeTargets_MaintainExample walks the reference profile through every step.
func TestComputeTargets_MaintainExample(t *testing.T) {
	got, ok := ComputeTargets(validProfile())
	require.True(t, ok)

	assert.Equal(t, 1780, got.BMR)
	assert.Equal(t, 2759, got.TDEE)
	assert.Equal(t, 2759, got.ClampedCalories)
	assert.Equal(t, 128, got.ProteinGrams)
	assert.Equal(t, 75, got.FatGrams)
	assert.Equal(t, 393, got.CarbGrams)
	assert.Equal(t, 2759, got.TargetCalories)
	assert.Equal(t, GoalMaintain, got.Goal)
	assert.Equal(t, GoalMaintain.Description(), got.Description)
}

func TestComputeTargets_ClampsToBand(t *testing.T) {
	t.Run("lean clamps down to max", func(t *testing.T) {
		p := validProfile()
		p.Goal = "LEAN"
		got, ok := ComputeTargets(p)
		require.True(t, ok)

		// 2759 - 300 = 2459, above the lean ceiling.
		assert.Equal(t, 2400, got.ClampedCalories)
		assert.Equal(t, 176, got.ProteinGrams)
		assert.Equal(t, 57, got.FatGrams)
		assert.Equal(t, 297, got.CarbGrams)
		assert.Equal(t, 2405, got.TargetCalories)
	})

	t.Run("female bulk clamps up to min", func(t *testing.T) {
		p := Profile{Age: 30, HeightCM: 165, WeightKG: 60, Gender: "Female", Goal: "bulk"}
		got, ok := ComputeTargets(p)
		require.True(t, ok)

		assert.Equal(t, 1320, got.BMR)
		assert.Equal(t, 2900, got.ClampedCalories)
		assert.Equal(t, 120, got.ProteinGrams)
		assert.Equal(t, 67, got.FatGrams)
		assert.Equal(t, 454, got.CarbGrams)
		assert.Equal(t, 2899, got.TargetCalories)
	})
}

// TestComputeTargets_ProteinExceedsBand verifies remaining calories never go
// negative when protein alone overshoots the clamped target.
func TestComputeTargets_ProteinExceedsBand(t *testing.T) {
	p := validProfile()
	p.WeightKG = 300
	p.Goal = "lean"
	got, ok := ComputeTargets(p)
	require.True(t, ok)

	assert.Equal(t, 660, got.ProteinGrams)
	assert.Zero(t, got.FatGrams)
	assert.Zero(t, got.CarbGrams)
	assert.Equal(t, 2640, got.TargetCalories)
}

func TestComputeTargets_UnknownGoalFallsBack(t *testing.T) {
	p := validProfile()
	p.Goal = "yoga"
	got, ok := ComputeTargets(p)
	require.True(t, ok)
	assert.Equal(t, GoalRecomposition, got.Goal)
	assert.Equal(t, 144, got.ProteinGrams)
}

func TestGender(t *testing.T) {
	assert.Equal(t, GenderFemale, ParseGender(" FEMALE "))
	assert.Equal(t, GenderMale, ParseGender("male"))
	assert.Equal(t, GenderMale, ParseGender(""))
	assert.Equal(t, GenderMale, ParseGender("other"))
	assert.InDelta(t, 1780.0, BMR(GenderMale, 80, 180, 30), 1e-9)
	assert.InDelta(t, 1614.0, BMR(GenderFemale, 80, 180, 30), 1e-9)
}

/* ─── Property tests ─────────────────────────────────────────────────── */

// TestComputeTargets_Properties checks, over randomized profiles, that the
// displayed calories are the exact sum of the rounded macros and that the
// clamped value always lies within the goal's band.
func TestComputeTargets_Properties(t *testing.T) {
	faker := gofakeit.New(42)
	goals := []string{"lean", "bulk", "recomposition", "maintain", "performance", "Unknown"}

	for i := 0; i < 500; i++ {
		p := Profile{
			Age:      faker.IntRange(14, 90),
			HeightCM: faker.Float64Range(140, 210),
			WeightKG: faker.Float64Range(40, 160),
			Gender:   Gender(faker.RandomString([]string{"male", "female", "MALE", ""})),
			Goal:     faker.RandomString(goals),
		}

		got, ok := ComputeTargets(p)
		require.True(t, ok, "profile %+v", p)

		assert.Equal(t, 4*got.ProteinGrams+4*got.CarbGrams+9*got.FatGrams, got.TargetCalories, "profile %+v", p)

		band := got.Goal.DefaultBand()
		assert.GreaterOrEqual(t, got.ClampedCalories, band.Min, "profile %+v", p)
		assert.LessOrEqual(t, got.ClampedCalories, band.Max, "profile %+v", p)
	}
}

/* ─── Settings ───────────────────────────────────────────────────────── */

func TestPlanner_TargetsUsesConfiguredBand(t *testing.T) {
	s := DefaultSettings()
	s.Bands = map[string]CalorieBand{"maintain": {Min: 3000, Max: 3200}}
	planner, err := NewPlanner(s, NewRand(1))
	require.NoError(t, err)

	got, ok := planner.Targets(validProfile())
	require.True(t, ok)
	assert.Equal(t, 3000, got.ClampedCalories)
}

func TestSettings_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutFn   func(s *Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"shares off by a tenth", func(s *Settings) { s.SnackShare = 0.2 }, true},
		{"negative share", func(s *Settings) { s.LunchShare = -0.1; s.DinnerShare = 0.75 }, true},
		{"NaN share", func(s *Settings) { s.SnackShare = math.NaN() }, true},
		{"infinite share", func(s *Settings) { s.SnackShare = math.Inf(1) }, true},
		{"zero portion cap", func(s *Settings) { s.MaxPortionG = 0 }, true},
		{"negative macro floor", func(s *Settings) { s.MinMacroG = -1 }, true},
		{"unknown band goal", func(s *Settings) { s.Bands = map[string]CalorieBand{"cut": {Min: 1, Max: 2}} }, true},
		{"inverted band", func(s *Settings) { s.Bands = map[string]CalorieBand{"bulk": {Min: 3000, Max: 2000}} }, true},
		{"valid band", func(s *Settings) { s.Bands = map[string]CalorieBand{"bulk": {Min: 3000, Max: 3600}} }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutFn(&s)
			err := s.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseGoal(t *testing.T) {
	for _, g := range Goals {
		parsed, ok := ParseGoal(g.String())
		assert.True(t, ok)
		assert.Equal(t, g, parsed)
	}
	_, ok := ParseGoal("cut")
	assert.False(t, ok)

	var g Goal
	assert.Error(t, g.UnmarshalText([]byte("cut")))
	require.NoError(t, g.UnmarshalText([]byte("Performance")))
	assert.Equal(t, GoalPerformance, g)
}
