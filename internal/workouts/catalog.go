// Package workouts holds the static exercise catalog suggested to users and
// the rules around the daily cardio preset.
package workouts

import (
	"strings"
	"time"
)

type Type string

const (
	TypeStrength   Type = "Strength"
	TypeCompound   Type = "Compound"
	TypeIsolation  Type = "Isolation"
	TypeBodyweight Type = "Bodyweight"
	TypeCardio     Type = "Cardio"
)

// ParseType matches s case-insensitively against the known workout types.
func ParseType(s string) (Type, bool) {
	for _, t := range []Type{TypeStrength, TypeCompound, TypeIsolation, TypeBodyweight, TypeCardio} {
		if strings.EqualFold(strings.TrimSpace(s), string(t)) {
			return t, true
		}
	}
	return "", false
}

// IsStrength reports whether t counts towards the strength side of the focus split.
func (t Type) IsStrength() bool {
	switch t {
	case TypeStrength, TypeCompound, TypeIsolation:
		return true
	}
	return false
}

// IsCardio reports whether t counts towards the cardio side of the focus split.
func (t Type) IsCardio() bool {
	switch t {
	case TypeCardio, TypeBodyweight:
		return true
	}
	return false
}

type Exercise struct {
	Title           string `json:"title"`
	Type            Type   `json:"type"`
	DurationMinutes int    `json:"duration"`
	Calories        int    `json:"calories"`
	Description     string `json:"description"`
	VideoURL        string `json:"youtube_link"`
}

type MuscleGroup struct {
	Muscle    string     `json:"muscle"`
	Exercises []Exercise `json:"workouts"`
}

// DailyCardio is the one-tap preset that may be logged once per 24 hours.
var DailyCardio = Exercise{
	Title:           "Daily 30-Minute Cardio Session",
	Type:            TypeCardio,
	DurationMinutes: 30,
	Calories:        300,
	Description:     "A crucial daily session to boost metabolism and cardiovascular health. Can be walking, jogging, cycling, or rowing.",
	VideoURL:        "https://www.youtube.com/embed/P6i2y8Q8S_g",
}

var catalog = []MuscleGroup{
	{Muscle: "Chest", Exercises: []Exercise{
		{"Barbell Bench Press", TypeStrength, 60, 400, "A compound exercise for the chest, shoulders, and triceps. Focus on keeping a slight arch in your lower back, elbows tucked at a 45° angle, and driving up through your heels.", "https://www.youtube.com/embed/vthMCtgVtFw"},
		{"Cable Crossover", TypeIsolation, 45, 250, "An isolation movement that targets the inner and lower chest. Place pulleys high, step forward, and bring your arms together in a wide arc, focusing on squeezing the chest muscles.", "https://www.youtube.com/embed/aoP0s_MjN-g"},
		{"Dumbbell Flyes (Incline)", TypeIsolation, 30, 200, "Targets the upper/outer chest. Lie on an incline bench (30-45 degrees) and maintain a slight bend in your elbows throughout the movement.", "https://www.youtube.com/embed/ajd32jD-m5U"},
	}},
	{Muscle: "Back", Exercises: []Exercise{
		{"Barbell Deadlifts", TypeCompound, 60, 500, "A full-body lift targeting the posterior chain (glutes, hamstrings, back). Keep your back flat, chest high, and the bar close to your body. Drive your hips through the bar at the top.", "https://www.youtube.com/embed/DCEIwcA_gJo"},
		{"Lat Pulldown (Wide Grip)", TypeStrength, 40, 300, "A key exercise for building back width. Focus on pulling the bar down to your upper chest by driving your elbows down and back, squeezing your lats.", "https://www.youtube.com/embed/Il23QYhVCzQ"},
		{"T-Bar Row", TypeStrength, 45, 350, "Excellent for thickness in the middle back and lats. Keep your chest rested on the pad and pull with your elbows, contracting your shoulder blades.", "https://www.youtube.com/embed/7r-A6d8J-gQ"},
	}},
	{Muscle: "Legs", Exercises: []Exercise{
		{"Barbell Squats", TypeCompound, 55, 480, "The 'king of all exercises' targeting quads, glutes, and hamstrings. Sit back as if sitting in a chair, keep your chest up, and push up through your heels. Track knees over toes.", "https://www.youtube.com/embed/1xMaFs0L3ao"},
		{"Leg Extension (Quads)", TypeIsolation, 35, 220, "An isolation exercise focused on the quadriceps. Ensure your knees align with the machine's pivot point. Slowly extend the leg and squeeze the quads at the top of the movement.", "https://www.youtube.com/embed/rT7DgCr-3pg"},
		{"Romanian Deadlifts (RDL)", TypeCompound, 40, 350, "Targets the hamstrings and glutes with a focus on the stretch. Keep your knees slightly bent and push your hips backward until you feel a deep stretch.", "https://www.youtube.com/embed/JCXUYvkb2YY"},
	}},
	{Muscle: "Biceps", Exercises: []Exercise{
		{"Incline Dumbbell Curl", TypeIsolation, 30, 180, "An effective variation that isolates the bicep long head and provides a deeper stretch. Lie on an incline bench and let your arms hang straight down, curling the weight up slowly.", "https://www.youtube.com/embed/ql6SRu7tZcw"},
		{"Cable Rope Hammer Curl", TypeStrength, 25, 160, "Targets the brachialis and brachioradialis (forearm), giving your arm thickness. Use a rope attachment and keep your thumbs up while pulling the rope towards your shoulders.", "https://www.youtube.com/embed/vsarApmqJmo"},
		{"Preacher Curl (EZ Bar)", TypeIsolation, 30, 150, "Locks the arms in position, preventing cheating and increasing isolation on the bicep. Control the eccentric (lowering) phase fully.", "https://www.youtube.com/embed/n4Pq6Q582i0"},
	}},
	{Muscle: "Triceps", Exercises: []Exercise{
		{"Skullcrushers (EZ Bar)", TypeIsolation, 35, 200, "Targets all three heads of the triceps. Lie on a flat bench and slowly lower the bar towards your forehead, extending back up using only your triceps. Use a spotter or lighter weight.", "https://www.youtube.com/embed/UCnIm8l8Bxc"},
		{"Cable Tricep Pushdown", TypeIsolation, 30, 170, "A great finishing exercise to ensure a full tricep contraction. Keep your elbows pinned to your sides and push the bar down until your arms are fully extended.", "https://www.youtube.com/embed/2-LAMcpzODU"},
		{"Dumbbell Overhead Extension", TypeIsolation, 30, 160, "Targets the long head of the triceps. Hold one heavy dumbbell overhead with both hands and lower it behind your head, stretching the tricep fully.", "https://www.youtube.com/embed/uG-YQh-lY1E"},
	}},
	{Muscle: "Abs", Exercises: []Exercise{
		{"Hanging Leg Raises", TypeBodyweight, 20, 140, "Targets the lower abdominal muscles and core stability. Hang from a pull-up bar and slowly lift your legs up towards your chest, controlling the descent.", "https://www.youtube.com/embed/rbOJSK07AGA"},
		{"Weighted Crunches", TypeIsolation, 15, 110, "Targets the upper abs. Hold a plate across your chest and perform a controlled crunch, avoiding pulling on your neck. Focus on contracting the abdominal muscles.", "https://www.youtube.com/embed/UhRf7kzLAmc"},
		{"Plank (Timed)", TypeBodyweight, 10, 80, "Excellent for full core stability. Maintain a straight line from head to heels, squeezing the glutes and abs. Focus on holding for maximum time under tension.", "https://www.youtube.com/embed/ASdvN_X5M60"},
	}},
	{Muscle: "Cardio", Exercises: []Exercise{
		{"HIIT Sprints", TypeCardio, 25, 350, "High-Intensity Interval Training. Alternate between 30 seconds of all-out effort (sprint) and 60 seconds of light jogging or rest. Repeat for 15-25 minutes.", "https://www.youtube.com/embed/PMQ4WVUZvW8"},
		{"Steady State Cycling", TypeCardio, 45, 450, "Maintain a consistent, moderate effort on a stationary bike or outdoors for extended fat burning and cardiovascular endurance. Keep your heart rate stable.", "https://www.youtube.com/embed/uMqLmIs0ax4"},
		{"Battle Ropes (HIIT)", TypeCardio, 20, 300, "A high-intensity, low-impact option that hits the upper body. Alternate between waves, slams, and spirals for 30 seconds on, 30 seconds off.", "https://www.youtube.com/embed/i0-T5u48Y78"},
	}},
}

// Catalog returns a copy of the suggested exercises grouped by muscle.
func Catalog() []MuscleGroup {
	out := make([]MuscleGroup, len(catalog))
	for i, g := range catalog {
		out[i] = MuscleGroup{Muscle: g.Muscle, Exercises: append([]Exercise(nil), g.Exercises...)}
	}
	return out
}

// IsDailyCardio reports whether title names the daily cardio preset, ignoring case.
func IsDailyCardio(title string) bool {
	return strings.EqualFold(strings.TrimSpace(title), DailyCardio.Title)
}

// Lookup finds a catalog exercise by title, ignoring case. The daily cardio
// preset is not part of the catalog.
func Lookup(title string) (Exercise, bool) {
	title = strings.TrimSpace(title)
	for _, g := range catalog {
		for _, e := range g.Exercises {
			if strings.EqualFold(title, e.Title) {
				return e, true
			}
		}
	}
	return Exercise{}, false
}

// Entry is the slice of a logged workout the daily cardio rule looks at.
type Entry struct {
	Title     string
	Completed bool
	LoggedAt  time.Time
}

// DailyCardioLogged reports whether a completed daily cardio session was
// logged within the 24 hours before now.
func DailyCardioLogged(entries []Entry, now time.Time) bool {
	cutoff := now.Add(-24 * time.Hour)
	for _, e := range entries {
		if e.Title == DailyCardio.Title && e.Completed && e.LoggedAt.After(cutoff) {
			return true
		}
	}
	return false
}
