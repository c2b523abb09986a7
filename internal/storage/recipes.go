package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/model"
)

// SaveRecipe inserts or updates a recipe and its ingredient list. The
// ingredient list is replaced wholesale on update.
func (s *SQLiteStorage) SaveRecipe(ctx context.Context, recipe *model.Recipe) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecipe(recipe); err != nil {
		return err
	}

	now := time.Now()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now

	tags, err := json.Marshal(recipe.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO recipes (id, name, description, tags, is_favorite, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				description = excluded.description,
				tags = excluded.tags,
				is_favorite = excluded.is_favorite,
				updated_at = excluded.updated_at
		`, recipe.ID, recipe.Name, recipe.Description, string(tags), recipe.IsFavorite,
			recipe.CreatedAt, recipe.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to save recipe: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = ?`, recipe.ID); err != nil {
			return fmt.Errorf("failed to clear recipe ingredients: %w", err)
		}

		for i, ing := range recipe.Ingredients {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO recipe_ingredients (recipe_id, position, name, quantity, category)
				VALUES (?, ?, ?, ?, ?)
			`, recipe.ID, i, ing.Name, ing.Quantity, string(ing.Category))
			if err != nil {
				return fmt.Errorf("failed to save recipe ingredient: %w", err)
			}
		}

		return nil
	})
}

// GetRecipe retrieves a recipe by id.
func (s *SQLiteStorage) GetRecipe(ctx context.Context, id string) (*model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	return s.getRecipe(ctx, `WHERE id = ?`, id)
}

// GetRecipeByName retrieves a recipe by exact name, case-insensitively.
func (s *SQLiteStorage) GetRecipeByName(ctx context.Context, name string) (*model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	return s.getRecipe(ctx, `WHERE name = ? COLLATE NOCASE`, name)
}

func (s *SQLiteStorage) getRecipe(ctx context.Context, where string, args ...any) (*model.Recipe, error) {
	var recipe model.Recipe
	var tags string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, description, tags, is_favorite, created_at, updated_at
		FROM recipes `+where, args...).Scan(
		&recipe.ID,
		&recipe.Name,
		&recipe.Description,
		&tags,
		&recipe.IsFavorite,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	if err := json.Unmarshal([]byte(tags), &recipe.Tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags: %w", err)
	}

	recipe.Ingredients, err = s.getRecipeIngredients(ctx, s.db, recipe.ID)
	if err != nil {
		return nil, err
	}

	return &recipe, nil
}

func (s *SQLiteStorage) getRecipeIngredients(ctx context.Context, q queryable, recipeID string) ([]model.Ingredient, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT name, quantity, category
		FROM recipe_ingredients
		WHERE recipe_id = ?
		ORDER BY position
	`, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ingredients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ingredients []model.Ingredient
	for rows.Next() {
		var ing model.Ingredient
		var category string
		if err := rows.Scan(&ing.Name, &ing.Quantity, &category); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		ing.Category = model.ParseCategory(category)
		ingredients = append(ingredients, ing)
	}

	return ingredients, rows.Err()
}

// ListRecipes returns all recipes with their ingredient lists, favorites
// first, then by name.
func (s *SQLiteStorage) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, tags, is_favorite, created_at, updated_at
		FROM recipes
		ORDER BY is_favorite DESC, name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var recipes []model.Recipe
	for rows.Next() {
		var recipe model.Recipe
		var tags string
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.Description, &tags,
			&recipe.IsFavorite, &recipe.CreatedAt, &recipe.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &recipe.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		recipes[i].Ingredients, err = s.getRecipeIngredients(ctx, s.db, recipes[i].ID)
		if err != nil {
			return nil, err
		}
	}

	return recipes, nil
}

// DeleteRecipe removes a recipe and its ingredients.
func (s *SQLiteStorage) DeleteRecipe(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
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

// SetRecipeFavorite toggles the favorite flag on a recipe.
func (s *SQLiteStorage) SetRecipeFavorite(ctx context.Context, id string, favorite bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE recipes SET is_favorite = ?, updated_at = ? WHERE id = ?
	`, favorite, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update recipe favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}

	return nil
}
