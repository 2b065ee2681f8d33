package nutrition

import (
	"math"
	"strings"
)

// activityMultiplier is the fixed "moderately active" TDEE factor.
const activityMultiplier = 1.55

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// ParseGender returns female only for "female" (any case); everything else is male.
func ParseGender(s string) Gender {
	if strings.EqualFold(strings.TrimSpace(s), string(GenderFemale)) {
		return GenderFemale
	}
	return GenderMale
}

// Profile is the body-metrics input to the target calculator.
type Profile struct {
	Age      int
	HeightCM float64
	WeightKG float64
	Gender   Gender
	Goal     string
}

// MacroTargets are the daily calorie and macro targets derived from a Profile.
// TargetCalories always equals 4*Protein + 4*Carb + 9*Fat.
type MacroTargets struct {
	TargetCalories int    `json:"target_calories"`
	ProteinGrams   int    `json:"protein_g"`
	CarbGrams      int    `json:"carb_g"`
	FatGrams       int    `json:"fat_g"`
	Goal           Goal   `json:"goal"`
	Description    string `json:"description"`

	BMR             int `json:"bmr"`
	TDEE            int `json:"tdee"`
	ClampedCalories int `json:"clamped_calories"`
}

// BMR uses the revised Harris-Benedict (Mifflin-St Jeor) formula.
func BMR(gender Gender, weightKG, heightCM float64, age int) float64 {
	bmr := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if gender == GenderFemale {
		return bmr - 161
	}
	return bmr + 5
}

// ComputeTargets derives targets with the default settings.
// ok=false when the profile is missing age, height, weight or goal.
func ComputeTargets(p Profile) (MacroTargets, bool) {
	return computeTargets(p, DefaultSettings())
}

func computeTargets(p Profile, s Settings) (MacroTargets, bool) {
	if p.Age <= 0 || p.HeightCM <= 0 || p.WeightKG <= 0 || strings.TrimSpace(p.Goal) == "" {
		return MacroTargets{}, false
	}
	if math.IsNaN(p.HeightCM) || math.IsNaN(p.WeightKG) {
		return MacroTargets{}, false
	}

	goal, _ := ParseGoal(p.Goal)
	policy := goal.policy()

	bmr := BMR(ParseGender(string(p.Gender)), p.WeightKG, p.HeightCM, p.Age)
	tdee := bmr * activityMultiplier

	dynamic := int(math.Round(tdee + policy.calorieOffset))
	clamped := s.Band(goal).clamp(dynamic)

	protein := int(math.Round(p.WeightKG * policy.proteinPerKG))
	remaining := math.Max(0, float64(clamped-protein*4))

	ratioTotal := policy.fatRatio + policy.carbRatio
	fat := int(math.Round(remaining * (policy.fatRatio / ratioTotal) / 9))
	carbs := int(math.Round(remaining * (policy.carbRatio / ratioTotal) / 4))

	return MacroTargets{
		TargetCalories:  protein*4 + carbs*4 + fat*9,
		ProteinGrams:    protein,
		CarbGrams:       carbs,
		FatGrams:        fat,
		Goal:            goal,
		Description:     policy.description,
		BMR:             int(math.Round(bmr)),
		TDEE:            int(math.Round(tdee)),
		ClampedCalories: clamped,
	}, true
}
