package store

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const DateLayout = "2006-01-02"

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func NewDateOnly(t time.Time) DateOnly {
	y, m, d := t.UTC().Date()
	return DateOnly{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDateOnly parses a YYYY-MM-DD string.
func ParseDateOnly(s string) (DateOnly, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{t}, nil
}

func (d DateOnly) String() string {
	return d.Time.Format(DateLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"`+DateLayout+`"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan date columns into
// DateOnly. NULL zeroes the time.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// User maps to the users table. AuthToken and Password are hidden from JSON responses.
type User struct {
	ID        int        `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Email     string     `json:"email" db:"email"`
	AuthToken string     `json:"-" db:"auth_token"`
	Password  string     `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// Profile maps to profiles, one row per user. Every body field is nullable
// so a half-filled profile can be saved.
type Profile struct {
	ID           int        `json:"id"          db:"id"`
	UserID       int        `json:"user_id"     db:"user_id"`
	Name         *string    `json:"name"        db:"name"`
	Age          *int       `json:"age"         db:"age"`
	HeightCM     *float64   `json:"height"      db:"height_cm"`
	WeightKG     *float64   `json:"weight"      db:"weight_kg"`
	Gender       *string    `json:"gender"      db:"gender"`
	Goal         *string    `json:"goal"        db:"goal"`
	GoalWeightKG *float64   `json:"goal_weight" db:"goal_weight_kg"`
	UpdatedAt    *time.Time `json:"updated_at"  db:"updated_at"`
}

// Meal keys with special meaning in progress and nutrition_logs.
const (
	MealKeyWeight       = "WEIGHT"
	MealKeyDailySummary = "DAILY_SUMMARY"
)

// ProgressEntry maps to progress. A row is either a weight/notes entry
// (meal_key WEIGHT) or a meal completion flag (meal_key "<Day>-<Meal>").
type ProgressEntry struct {
	ID        int        `json:"id"         db:"id"`
	UserID    int        `json:"user_id"    db:"user_id"`
	Date      DateOnly   `json:"date"       db:"date"`
	MealKey   string     `json:"meal_key"   db:"meal_key"`
	Weight    *float64   `json:"weight"     db:"weight"`
	Notes     *string    `json:"notes"      db:"notes"`
	Complete  *bool      `json:"complete"   db:"complete"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

type Workout struct {
	ID              int       `json:"id"             db:"id"`
	UserID          int       `json:"user_id"        db:"user_id"`
	Title           string    `json:"title"          db:"title"`
	Type            string    `json:"type"           db:"type"`
	Date            DateOnly  `json:"date"           db:"date"`
	DurationMinutes *int      `json:"duration"       db:"duration"`
	CaloriesBurnt   float64   `json:"calories_burnt" db:"calories_burnt"`
	Completed       bool      `json:"completed"      db:"completed"`
	CreatedAt       time.Time `json:"created_at"     db:"created_at"`
}

// WorkoutStatus filters ListWorkouts.
type WorkoutStatus string

const (
	WorkoutsAll       WorkoutStatus = "all"
	WorkoutsPending   WorkoutStatus = "pending"
	WorkoutsCompleted WorkoutStatus = "completed"
)

type NutritionLog struct {
	ID               int            `json:"id"                db:"id"`
	UserID           int            `json:"user_id"           db:"user_id"`
	Date             DateOnly       `json:"date"              db:"date"`
	MealKey          string         `json:"meal_key"          db:"meal_key"`
	MealTime         *string        `json:"meal_time"         db:"meal_time"`
	CaloriesConsumed int            `json:"calories_consumed" db:"calories_consumed"`
	MacroProteinG    int            `json:"macro_protein_g"   db:"macro_protein_g"`
	MacroCarbsG      int            `json:"macro_carbs_g"     db:"macro_carbs_g"`
	MacroFatG        int            `json:"macro_fat_g"       db:"macro_fat_g"`
	CaloriesTotal    *int           `json:"calories_total"    db:"calories_total"`
	ConsumedFoods    map[string]any `json:"consumed_foods"    db:"consumed_foods"`
	CreatedAt        *time.Time     `json:"created_at"        db:"created_at"`
}
