package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/model"
)

// SaveMealPlanEntry inserts or updates a scheduled recipe.
func (s *SQLiteStorage) SaveMealPlanEntry(ctx context.Context, entry *model.MealPlanEntry) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateEntry(entry); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meal_plan (id, date, meal, recipe_id, recipe_name)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			meal = excluded.meal,
			recipe_id = excluded.recipe_id,
			recipe_name = excluded.recipe_name
	`, entry.ID, entry.Date, string(entry.Meal), entry.RecipeID, entry.RecipeName)
	if err != nil {
		return fmt.Errorf("failed to save meal plan entry: %w", err)
	}

	return nil
}

// GetMealPlanEntries returns entries scheduled in [start, end], ordered by
// date then meal slot.
func (s *SQLiteStorage) GetMealPlanEntries(ctx context.Context, start, end time.Time) ([]model.MealPlanEntry, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, ErrInvalidDateRng
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, date, meal, recipe_id, recipe_name
		FROM meal_plan
		WHERE date >= ? AND date <= ?
		ORDER BY date, CASE meal WHEN 'breakfast' THEN 0 WHEN 'lunch' THEN 1 ELSE 2 END
	`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []model.MealPlanEntry
	for rows.Next() {
		var entry model.MealPlanEntry
		var meal string
		if err := rows.Scan(&entry.ID, &entry.Date, &meal, &entry.RecipeID, &entry.RecipeName); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan entry: %w", err)
		}
		entry.Meal = model.ParseMealType(meal)
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// DeleteMealPlanEntry removes a scheduled recipe.
func (s *SQLiteStorage) DeleteMealPlanEntry(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM meal_plan WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal plan entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
