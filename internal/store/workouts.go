package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// ListWorkouts returns the user's workouts matching status, newest first.
func (s *Store) ListWorkouts(ctx context.Context, userID int, status WorkoutStatus) ([]Workout, error) {
	query := "SELECT * FROM workouts WHERE user_id = @userID"
	switch status {
	case WorkoutsPending:
		query += " AND completed = false"
	case WorkoutsCompleted:
		query += " AND completed = true"
	}
	query += " ORDER BY date DESC, created_at DESC"

	return queryMany[Workout](ctx, s.pool, query, pgx.NamedArgs{"userID": userID})
}

func (s *Store) CreateWorkout(ctx context.Context, w Workout) (Workout, error) {
	return queryOne[Workout](ctx, s.pool,
		`INSERT INTO workouts (user_id, title, type, date, duration, calories_burnt, completed)
		 VALUES (@userID, @title, @type, @date, @duration, @caloriesBurnt, @completed)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":        w.UserID,
			"title":         w.Title,
			"type":          w.Type,
			"date":          w.Date.String(),
			"duration":      w.DurationMinutes,
			"caloriesBurnt": w.CaloriesBurnt,
			"completed":     w.Completed,
		})
}

// CompleteWorkouts marks the given workouts of the user completed and returns
// how many rows changed. IDs belonging to other users or already completed
// are ignored.
func (s *Store) CompleteWorkouts(ctx context.Context, userID int, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	// Build the IN list from named args; the simple protocol has no array binding.
	placeholders := make([]string, len(ids))
	args := pgx.NamedArgs{"userID": userID}
	for i, id := range ids {
		name := fmt.Sprintf("id%d", i)
		placeholders[i] = "@" + name
		args[name] = id
	}

	result, err := s.pool.Exec(ctx,
		"UPDATE workouts SET completed = true WHERE user_id = @userID AND completed = false AND id IN ("+
			strings.Join(placeholders, ", ")+")",
		args)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

// DeleteWorkout removes a pending workout. Completed workouts are kept and
// yield ErrWorkoutCompleted.
func (s *Store) DeleteWorkout(ctx context.Context, userID, id int) error {
	w, err := queryOne[Workout](ctx, s.pool,
		"SELECT * FROM workouts WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		return err
	}
	if w.Completed {
		return ErrWorkoutCompleted
	}

	result, err := s.pool.Exec(ctx,
		"DELETE FROM workouts WHERE id = @id AND user_id = @userID AND completed = false",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		// Completed between the read and the delete.
		return ErrWorkoutCompleted
	}
	return nil
}
