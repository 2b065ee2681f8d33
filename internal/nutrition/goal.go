package nutrition

import (
	"fmt"
	"strings"
)

// Goal is the user's training goal. The zero value is GoalRecomposition,
// which is also the policy used for goal strings we don't recognise.
type Goal int

const (
	GoalRecomposition Goal = iota
	GoalLean
	GoalBulk
	GoalMaintain
	GoalPerformance
)

// Goals lists every goal in display order.
var Goals = []Goal{GoalLean, GoalBulk, GoalRecomposition, GoalMaintain, GoalPerformance}

func (g Goal) String() string {
	switch g {
	case GoalLean:
		return "lean"
	case GoalBulk:
		return "bulk"
	case GoalMaintain:
		return "maintain"
	case GoalPerformance:
		return "performance"
	default:
		return "recomposition"
	}
}

// ParseGoal matches s case-insensitively against the known goals.
// ok=false means s is not one of them; the returned goal is then recomposition.
func ParseGoal(s string) (Goal, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lean":
		return GoalLean, true
	case "bulk":
		return GoalBulk, true
	case "recomposition":
		return GoalRecomposition, true
	case "maintain":
		return GoalMaintain, true
	case "performance":
		return GoalPerformance, true
	default:
		return GoalRecomposition, false
	}
}

func (g Goal) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *Goal) UnmarshalText(b []byte) error {
	parsed, ok := ParseGoal(string(b))
	if !ok {
		return fmt.Errorf("unknown goal %q", string(b))
	}
	*g = parsed
	return nil
}

// CalorieBand is the inclusive [Min, Max] kcal range a goal's daily target is clamped into.
type CalorieBand struct {
	Min int `toml:"min" json:"min"`
	Max int `toml:"max" json:"max"`
}

func (b CalorieBand) clamp(kcal int) int {
	return max(b.Min, min(b.Max, kcal))
}

// goalPolicy holds the fixed per-goal constants.
type goalPolicy struct {
	proteinPerKG  float64
	calorieOffset float64
	fatRatio      float64
	carbRatio     float64
	band          CalorieBand
	description   string
}

func (g Goal) policy() goalPolicy {
	switch g {
	case GoalLean:
		return goalPolicy{
			proteinPerKG:  2.2,
			calorieOffset: -300,
			fatRatio:      30,
			carbRatio:     70,
			band:          CalorieBand{Min: 2200, Max: 2400},
			description:   "A deficit focused on very high protein to preserve muscle mass during aggressive fat loss.",
		}
	case GoalBulk:
		return goalPolicy{
			proteinPerKG:  2.0,
			calorieOffset: 300,
			fatRatio:      25,
			carbRatio:     75,
			band:          CalorieBand{Min: 2900, Max: 3400},
			description:   "A moderate surplus with high protein and carbs to support muscle and strength gain.",
		}
	case GoalMaintain:
		return goalPolicy{
			proteinPerKG:  1.6,
			calorieOffset: 0,
			fatRatio:      30,
			carbRatio:     70,
			band:          CalorieBand{Min: 2600, Max: 2900},
			description:   "Calorie equilibrium for long-term fitness and performance maintenance.",
		}
	case GoalPerformance:
		return goalPolicy{
			proteinPerKG:  1.6,
			calorieOffset: 200,
			fatRatio:      20,
			carbRatio:     80,
			band:          CalorieBand{Min: 2600, Max: 2900},
			description:   "High carbohydrate focus to maximize energy stores for intense endurance workouts.",
		}
	default:
		return goalPolicy{
			proteinPerKG:  1.8,
			calorieOffset: 0,
			fatRatio:      25,
			carbRatio:     75,
			band:          CalorieBand{Min: 2600, Max: 2900},
			description:   "Focus on maintaining calories while prioritizing high protein to optimize muscle gain and fat loss.",
		}
	}
}

// Description returns the short explanation shown next to a goal's targets.
func (g Goal) Description() string {
	return g.policy().description
}

// DefaultBand returns the built-in calorie band for g.
func (g Goal) DefaultBand() CalorieBand {
	return g.policy().band
}
