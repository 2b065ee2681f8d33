package store

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// ListProgress returns every progress row for the user, newest first.
func (s *Store) ListProgress(ctx context.Context, userID int) ([]ProgressEntry, error) {
	return queryMany[ProgressEntry](ctx, s.pool,
		`SELECT * FROM progress
		 WHERE user_id = @userID
		 ORDER BY date DESC, id DESC`,
		pgx.NamedArgs{"userID": userID})
}

// UpsertProgress writes e keyed by (user_id, date, meal_key); posting the same
// key again updates in place.
func (s *Store) UpsertProgress(ctx context.Context, e ProgressEntry) (ProgressEntry, error) {
	return queryOne[ProgressEntry](ctx, s.pool,
		`INSERT INTO progress (user_id, date, meal_key, weight, notes, complete)
		 VALUES (@userID, @date, @mealKey, @weight, @notes, @complete)
		 ON CONFLICT (user_id, date, meal_key) DO UPDATE SET
			weight   = EXCLUDED.weight,
			notes    = EXCLUDED.notes,
			complete = EXCLUDED.complete
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":   e.UserID,
			"date":     e.Date.String(),
			"mealKey":  e.MealKey,
			"weight":   e.Weight,
			"notes":    e.Notes,
			"complete": e.Complete,
		})
}
