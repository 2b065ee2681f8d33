package nutrition

import (
	"fmt"
	"math"
)

// Weekdays are the day labels of a WeekPlan, in order.
var Weekdays = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// PlannedFood is a catalog food placed into a meal with a sized portion.
// Its Category is the role it fills in the meal.
type PlannedFood struct {
	Food
	QuantityG int    `json:"quantity_g"`
	Quantity  string `json:"quantity"`
	// BaseMacroG is the grams of the role's sizing macro the portion was sized to hit.
	BaseMacroG int `json:"base_macro_g"`
}

func newPlannedFood(f Food, quantityG, baseMacroG int) PlannedFood {
	return PlannedFood{
		Food:       f,
		QuantityG:  quantityG,
		Quantity:   fmt.Sprintf("%dg", quantityG),
		BaseMacroG: baseMacroG,
	}
}

type MealMacros struct {
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fat      int `json:"fat"`
	Calories int `json:"calories"`
}

type Meal struct {
	Name   string        `json:"name"`
	Time   string        `json:"time"`
	Macros MealMacros    `json:"macros"`
	Foods  []PlannedFood `json:"foods"`
}

// Food returns the planned food filling role, if any.
func (m Meal) Food(role Category) (PlannedFood, bool) {
	for _, f := range m.Foods {
		if f.Category == role {
			return f, true
		}
	}
	return PlannedFood{}, false
}

type DayPlan struct {
	Day   string `json:"day"`
	Meals []Meal `json:"meals"`
}

// Totals sums the rounded macros of every meal in the day.
func (d DayPlan) Totals() MealMacros {
	var t MealMacros
	for _, m := range d.Meals {
		t.Protein += m.Macros.Protein
		t.Carbs += m.Macros.Carbs
		t.Fat += m.Macros.Fat
		t.Calories += m.Macros.Calories
	}
	return t
}

// WeekPlan is seven DayPlans generated from one targets snapshot.
// Treat it as a value: Swap returns a new plan rather than editing this one.
type WeekPlan struct {
	Days []DayPlan `json:"days"`
}

func (w WeekPlan) clone() WeekPlan {
	out := WeekPlan{Days: make([]DayPlan, len(w.Days))}
	for i, d := range w.Days {
		meals := make([]Meal, len(d.Meals))
		for j, m := range d.Meals {
			m.Foods = append([]PlannedFood(nil), m.Foods...)
			meals[j] = m
		}
		out.Days[i] = DayPlan{Day: d.Day, Meals: meals}
	}
	return out
}

// mealMacros sums food macros scaled by quantity and rounds once at the end.
func mealMacros(foods []PlannedFood) MealMacros {
	var protein, carbs, fat float64
	for _, f := range foods {
		scale := float64(f.QuantityG) / 100
		protein += f.Protein * scale
		carbs += f.Carbs * scale
		fat += f.Fat * scale
	}
	return MealMacros{
		Protein:  int(math.Round(protein)),
		Carbs:    int(math.Round(carbs)),
		Fat:      int(math.Round(fat)),
		Calories: int(math.Round(4*protein + 4*carbs + 9*fat)),
	}
}

/* ─── Meal template ─── */

type mealSlot struct {
	name  string
	time  string
	share float64
	roles []Category
}

var splitRoles = []Category{CategoryProtein, CategoryCarb, CategoryFat}

func mealSlots(s Settings) []mealSlot {
	return []mealSlot{
		{name: "Breakfast", time: "8:00 AM", share: s.BreakfastShare, roles: []Category{CategoryBreakfast}},
		{name: "Lunch", time: "1:00 PM", share: s.LunchShare, roles: splitRoles},
		{name: "Dinner", time: "7:30 PM", share: s.DinnerShare, roles: splitRoles},
		{name: "Snack (Pre/Post)", time: "4:00 PM", share: s.SnackShare, roles: []Category{CategorySnack}},
	}
}

// MealNames lists the meal names of the template in plan order.
func MealNames() []string {
	slots := mealSlots(DefaultSettings())
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.name
	}
	return names
}
