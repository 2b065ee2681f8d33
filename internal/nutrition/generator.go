package nutrition

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

var ErrSlotNotFound = errors.New("meal slot not found")

// Rand is the source of randomness for food selection.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a seeded PCG source; the same seed yields the same plans.
func NewRand(seed uint64) Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Planner derives targets and builds week plans. It is safe for concurrent
// use; the random source is serialized behind mu.
type Planner struct {
	settings Settings
	slots    []mealSlot

	mu  sync.Mutex
	rng Rand
}

// NewPlanner validates s and returns a planner drawing from rng. A nil rng
// is replaced with a time-seeded source.
func NewPlanner(s Settings, rng Rand) (*Planner, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid planner settings: %w", err)
	}
	if rng == nil {
		rng = NewRand(uint64(time.Now().UnixNano()))
	}
	return &Planner{settings: s, slots: mealSlots(s), rng: rng}, nil
}

func (p *Planner) Settings() Settings {
	return p.settings
}

// Targets computes the macro targets for profile using the planner's calorie bands.
func (p *Planner) Targets(profile Profile) (MacroTargets, bool) {
	return computeTargets(profile, p.settings)
}

// GenerateWeekPlan builds a seven day plan sized to the daily macro targets.
func (p *Planner) GenerateWeekPlan(proteinG, carbG, fatG int) WeekPlan {
	p.mu.Lock()
	defer p.mu.Unlock()

	daily := map[Macro]int{MacroProtein: proteinG, MacroCarbs: carbG, MacroFat: fatG}
	dailyCals := float64(4*proteinG + 4*carbG + 9*fatG)

	lastByRole := make(map[Category]string)
	var yesterday map[string]bool

	plan := WeekPlan{Days: make([]DayPlan, 0, len(Weekdays))}
	for _, day := range Weekdays {
		used := make(map[string]bool)
		dp := DayPlan{Day: day, Meals: make([]Meal, 0, len(p.slots))}

		for _, slot := range p.slots {
			meal := Meal{Name: slot.name, Time: slot.time}
			for _, role := range slot.roles {
				if !p.roleFillable(role, slot.share, daily, dailyCals) {
					continue
				}
				food, ok := p.choose(role, yesterday, lastByRole[role])
				if !ok {
					continue
				}
				meal.Foods = append(meal.Foods, p.portion(food, role, slot.share, daily, dailyCals))
				lastByRole[role] = food.Name
				used[food.Name] = true
			}
			meal.Macros = mealMacros(meal.Foods)
			dp.Meals = append(dp.Meals, meal)
		}

		plan.Days = append(plan.Days, dp)
		yesterday = used
	}
	return plan
}

// Swap replaces the food filling role in plan.Days[day].Meals[meal] with a
// different food of the same category, re-sized to keep its base macro grams.
// The input plan is never modified. swapped=false when the category has no
// alternative.
func (p *Planner) Swap(plan WeekPlan, day, meal int, role Category) (WeekPlan, bool, error) {
	if day < 0 || day >= len(plan.Days) {
		return plan, false, fmt.Errorf("day %d: %w", day, ErrSlotNotFound)
	}
	if meal < 0 || meal >= len(plan.Days[day].Meals) {
		return plan, false, fmt.Errorf("meal %d: %w", meal, ErrSlotNotFound)
	}
	current, ok := plan.Days[day].Meals[meal].Food(role)
	if !ok {
		return plan, false, fmt.Errorf("%s in %s: %w", role, plan.Days[day].Meals[meal].Name, ErrSlotNotFound)
	}

	p.mu.Lock()
	replacement, ok := p.pickStrict(role, map[string]bool{current.Name: true})
	p.mu.Unlock()
	if !ok {
		return plan, false, nil
	}

	density := math.Max(1, replacement.Macro(role.SizingMacro()))
	quantity := p.capPortion(float64(current.BaseMacroG) * 100 / density)

	out := plan.clone()
	m := &out.Days[day].Meals[meal]
	for i := range m.Foods {
		if m.Foods[i].Category == role {
			m.Foods[i] = newPlannedFood(replacement, quantity, current.BaseMacroG)
		}
	}
	m.Macros = mealMacros(m.Foods)
	return out, true, nil
}

/* ─── Selection ─── */

// choose prefers foods not eaten yesterday, then retries once if the pick
// repeats the role's previous food.
func (p *Planner) choose(role Category, yesterday map[string]bool, last string) (Food, bool) {
	food, ok := p.pick(role, yesterday)
	if !ok {
		return Food{}, false
	}
	if last != "" && food.Name == last {
		if alt, ok := p.pick(role, map[string]bool{last: true}); ok {
			food = alt
		}
	}
	return food, true
}

// pick draws uniformly from the category minus excluded names, falling back
// to the whole category when everything is excluded.
func (p *Planner) pick(role Category, excluded map[string]bool) (Food, bool) {
	if food, ok := p.pickStrict(role, excluded); ok {
		return food, true
	}
	all := Foods(role)
	if len(all) == 0 {
		return Food{}, false
	}
	return all[p.rng.IntN(len(all))], true
}

func (p *Planner) pickStrict(role Category, excluded map[string]bool) (Food, bool) {
	var pool []Food
	for _, f := range Foods(role) {
		if !excluded[f.Name] {
			pool = append(pool, f)
		}
	}
	if len(pool) == 0 {
		return Food{}, false
	}
	return pool[p.rng.IntN(len(pool))], true
}

/* ─── Portion sizing ─── */

func (p *Planner) roleFillable(role Category, share float64, daily map[Macro]int, dailyCals float64) bool {
	if role.Combined() {
		return dailyCals*share > 0
	}
	return daily[role.SizingMacro()] > 0
}

func (p *Planner) portion(food Food, role Category, share float64, daily map[Macro]int, dailyCals float64) PlannedFood {
	if role.Combined() {
		quantity := p.capPortion(dailyCals * share / food.CaloriesPer100() * 100)
		base := int(math.Round(food.Protein * float64(quantity) / 100))
		return newPlannedFood(food, quantity, base)
	}

	macro := role.SizingMacro()
	target := int(math.Round(math.Max(float64(p.settings.MinMacroG), float64(daily[macro])*share)))
	density := math.Max(1, food.Macro(macro))
	return newPlannedFood(food, p.capPortion(float64(target)*100/density), target)
}

func (p *Planner) capPortion(grams float64) int {
	return min(p.settings.MaxPortionG, int(math.Round(grams)))
}
