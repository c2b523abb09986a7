package storage

import (
	"context"
	"fmt"
)

// GetKnownIngredientNames returns every distinct ingredient and shopping
// item name in the database. This is the corpus the similar-pair finder
// scans for merge suggestions.
func (s *SQLiteStorage) GetKnownIngredientNames(ctx context.Context) ([]string, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name FROM recipe_ingredients
		UNION
		SELECT name FROM shopping_items
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient names: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient name: %w", err)
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
