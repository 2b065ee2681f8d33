package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func (s *Store) GetProfile(ctx context.Context, userID int) (Profile, error) {
	return queryOne[Profile](ctx, s.pool,
		"SELECT * FROM profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
}

// UpsertProfile writes the body fields of p keyed by user. The goal weight is
// left alone; it has its own setter.
func (s *Store) UpsertProfile(ctx context.Context, p Profile) (Profile, error) {
	return queryOne[Profile](ctx, s.pool,
		`INSERT INTO profiles (user_id, name, age, height_cm, weight_kg, gender, goal)
		 VALUES (@userID, @name, @age, @heightCM, @weightKG, @gender, @goal)
		 ON CONFLICT (user_id) DO UPDATE SET
			name       = EXCLUDED.name,
			age        = EXCLUDED.age,
			height_cm  = EXCLUDED.height_cm,
			weight_kg  = EXCLUDED.weight_kg,
			gender     = EXCLUDED.gender,
			goal       = EXCLUDED.goal,
			updated_at = now()
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":   p.UserID,
			"name":     p.Name,
			"age":      p.Age,
			"heightCM": p.HeightCM,
			"weightKG": p.WeightKG,
			"gender":   p.Gender,
			"goal":     p.Goal,
		})
}

// SetGoalWeight upserts only the goal weight, creating the profile row if needed.
func (s *Store) SetGoalWeight(ctx context.Context, userID int, kg float64) (Profile, error) {
	return queryOne[Profile](ctx, s.pool,
		`INSERT INTO profiles (user_id, goal_weight_kg)
		 VALUES (@userID, @kg)
		 ON CONFLICT (user_id) DO UPDATE SET goal_weight_kg = EXCLUDED.goal_weight_kg, updated_at = now()
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "kg": kg})
}
