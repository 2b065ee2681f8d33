package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (s *Store) ListNutritionLogs(ctx context.Context, userID int) ([]NutritionLog, error) {
	return queryMany[NutritionLog](ctx, s.pool,
		`SELECT * FROM nutrition_logs
		 WHERE user_id = @userID
		 ORDER BY date DESC, id DESC`,
		pgx.NamedArgs{"userID": userID})
}

func (s *Store) CreateNutritionLog(ctx context.Context, n NutritionLog) (NutritionLog, error) {
	foods, err := json.Marshal(n.ConsumedFoods)
	if err != nil {
		return NutritionLog{}, fmt.Errorf("encode consumed_foods: %w", err)
	}

	return queryOne[NutritionLog](ctx, s.pool,
		`INSERT INTO nutrition_logs
			(user_id, date, meal_key, meal_time, calories_consumed,
			 macro_protein_g, macro_carbs_g, macro_fat_g, calories_total, consumed_foods)
		 VALUES
			(@userID, @date, @mealKey, @mealTime, @caloriesConsumed,
			 @protein, @carbs, @fat, @caloriesTotal, @consumedFoods::jsonb)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID":           n.UserID,
			"date":             n.Date.String(),
			"mealKey":          n.MealKey,
			"mealTime":         n.MealTime,
			"caloriesConsumed": n.CaloriesConsumed,
			"protein":          n.MacroProteinG,
			"carbs":            n.MacroCarbsG,
			"fat":              n.MacroFatG,
			"caloriesTotal":    n.CaloriesTotal,
			"consumedFoods":    string(foods),
		})
}
