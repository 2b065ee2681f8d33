package nutrition

import (
	"errors"
	"fmt"
	"math"
)

// Settings are the planner's business constants. The defaults reproduce the
// fixed meal template.
type Settings struct {
	BreakfastShare float64 `json:"breakfast_share"`
	LunchShare     float64 `json:"lunch_share"`
	DinnerShare    float64 `json:"dinner_share"`
	SnackShare     float64 `json:"snack_share"`

	// MaxPortionG caps every serving, in grams.
	MaxPortionG int `json:"max_portion_g"`
	// MinMacroG is the floor for a split meal's per-macro target.
	MinMacroG int `json:"min_macro_g"`

	// Bands overrides the calorie band of a goal, keyed by goal name.
	Bands map[string]CalorieBand `json:"bands,omitempty"`
}

func DefaultSettings() Settings {
	return Settings{
		BreakfastShare: 0.25,
		LunchShare:     0.30,
		DinnerShare:    0.35,
		SnackShare:     0.10,
		MaxPortionG:    350,
		MinMacroG:      5,
	}
}

// Band returns the calorie band for g, preferring a configured override.
func (s Settings) Band(g Goal) CalorieBand {
	if b, ok := s.Bands[g.String()]; ok {
		return b
	}
	return g.DefaultBand()
}

func (s Settings) Validate() error {
	shares := []float64{s.BreakfastShare, s.LunchShare, s.DinnerShare, s.SnackShare}
	var sum float64
	for _, share := range shares {
		if math.IsNaN(share) || math.IsInf(share, 0) {
			return errors.New("meal shares must be finite")
		}
		if share < 0 {
			return errors.New("meal shares must not be negative")
		}
		sum += share
	}
	if math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("meal shares must sum to 1, got %.4f", sum)
	}
	if s.MaxPortionG <= 0 {
		return errors.New("max_portion_g must be positive")
	}
	if s.MinMacroG < 0 {
		return errors.New("min_macro_g must not be negative")
	}
	for name, band := range s.Bands {
		if _, ok := ParseGoal(name); !ok {
			return fmt.Errorf("calorie band for unknown goal %q", name)
		}
		if band.Min <= 0 || band.Min > band.Max {
			return fmt.Errorf("calorie band for %s: invalid range [%d, %d]", name, band.Min, band.Max)
		}
	}
	return nil
}
