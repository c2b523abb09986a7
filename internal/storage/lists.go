package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/model"
)

const currentListKey = "current_list_id"

// CreateList creates a new shopping list and makes it the current one.
func (s *SQLiteStorage) CreateList(ctx context.Context, name string) (*model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	now := time.Now()
	list := &model.ShoppingList{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shopping_lists (id, name, created_at, updated_at)
			VALUES (?, ?, ?, ?)
		`, list.ID, list.Name, list.CreatedAt, list.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create shopping list: %w", err)
		}

		return s.setSettingTx(ctx, tx, currentListKey, list.ID)
	})
	if err != nil {
		return nil, err
	}

	return list, nil
}

// ImportList upserts a list by its existing ID, items included. Sync pull
// uses it so list IDs stay stable across devices.
func (s *SQLiteStorage) ImportList(ctx context.Context, list *model.ShoppingList) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(list.ID, "id"); err != nil {
		return err
	}
	if err := validateString(list.Name, "name"); err != nil {
		return err
	}
	for i := range list.Items {
		if err := validateItem(&list.Items[i]); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO shopping_lists (id, name, created_at, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at
		`, list.ID, list.Name, list.CreatedAt, list.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import shopping list: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM shopping_items WHERE list_id = ?`, list.ID); err != nil {
			return fmt.Errorf("failed to clear shopping items: %w", err)
		}
		for i, item := range list.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO shopping_items (id, list_id, position, name, quantity, category, checked, from_recipe, from_recipe_id)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, item.ID, list.ID, i, item.Name, item.Quantity, string(item.Category),
				item.Checked, item.FromRecipe, item.FromRecipeID)
			if err != nil {
				return fmt.Errorf("failed to import shopping item: %w", err)
			}
		}

		return nil
	})
}

// GetList retrieves a shopping list with its items.
func (s *SQLiteStorage) GetList(ctx context.Context, id string) (*model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	return s.getList(ctx, `WHERE id = ?`, id)
}

// GetListByName retrieves a shopping list by name, case-insensitively.
func (s *SQLiteStorage) GetListByName(ctx context.Context, name string) (*model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	return s.getList(ctx, `WHERE name = ? COLLATE NOCASE`, name)
}

func (s *SQLiteStorage) getList(ctx context.Context, where string, args ...any) (*model.ShoppingList, error) {
	var list model.ShoppingList

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM shopping_lists `+where, args...).Scan(
		&list.ID, &list.Name, &list.CreatedAt, &list.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	list.Items, err = s.getItems(ctx, list.ID)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

func (s *SQLiteStorage) getItems(ctx context.Context, listID string) ([]model.ShoppingItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, quantity, category, checked, from_recipe, from_recipe_id
		FROM shopping_items
		WHERE list_id = ?
		ORDER BY position
	`, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []model.ShoppingItem
	for rows.Next() {
		var item model.ShoppingItem
		var category string
		if err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &category,
			&item.Checked, &item.FromRecipe, &item.FromRecipeID); err != nil {
			return nil, fmt.Errorf("failed to scan shopping item: %w", err)
		}
		item.Category = model.ParseCategory(category)
		items = append(items, item)
	}

	return items, rows.Err()
}

// ListLists returns all shopping lists without their items, newest first.
func (s *SQLiteStorage) ListLists(ctx context.Context) ([]model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at
		FROM shopping_lists
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping lists: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lists []model.ShoppingList
	for rows.Next() {
		var list model.ShoppingList
		if err := rows.Scan(&list.ID, &list.Name, &list.CreatedAt, &list.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		lists = append(lists, list)
	}

	return lists, rows.Err()
}

// DeleteList removes a shopping list and its items. If it was the current
// list, the current selection is cleared.
func (s *SQLiteStorage) DeleteList(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete shopping list: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check delete result: %w", err)
		}
		if affected == 0 {
			return common.ErrNotFound
		}

		current, err := s.getSettingTx(ctx, tx, currentListKey)
		if err != nil {
			return err
		}
		if current == id {
			if _, err := tx.ExecContext(ctx, `DELETE FROM app_settings WHERE key = ?`, currentListKey); err != nil {
				return fmt.Errorf("failed to clear current list: %w", err)
			}
		}
		return nil
	})
}

// CurrentList returns the list item operations target by default.
func (s *SQLiteStorage) CurrentList(ctx context.Context) (*model.ShoppingList, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	id, err := s.getSettingTx(ctx, s.db, currentListKey)
	if err != nil {
		return nil, err
	}
	if id == "" {
		return nil, common.ErrNoCurrentList
	}

	return s.GetList(ctx, id)
}

// SetCurrentList selects the list item operations target by default.
func (s *SQLiteStorage) SetCurrentList(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	var exists bool
	err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM shopping_lists WHERE id = ?)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check list existence: %w", err)
	}
	if !exists {
		return common.ErrNotFound
	}

	return s.setSettingTx(ctx, s.db, currentListKey, id)
}

// ReplaceItems swaps a list's items for the given set, preserving slice
// order. Used to persist the result of an aggregation pass.
func (s *SQLiteStorage) ReplaceItems(ctx context.Context, listID string, items []model.ShoppingItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(listID, "listID"); err != nil {
		return err
	}
	for i := range items {
		if err := validateItem(&items[i]); err != nil {
			return fmt.Errorf("item at index %d: %w", i, err)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM shopping_items WHERE list_id = ?`, listID); err != nil {
			return fmt.Errorf("failed to clear shopping items: %w", err)
		}

		for i, item := range items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO shopping_items (id, list_id, position, name, quantity, category, checked, from_recipe, from_recipe_id)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, item.ID, listID, i, item.Name, item.Quantity, string(item.Category),
				item.Checked, item.FromRecipe, item.FromRecipeID)
			if err != nil {
				return fmt.Errorf("failed to save shopping item: %w", err)
			}
		}

		return s.touchListTx(ctx, tx, listID)
	})
}

// AddItem appends a single item to a list.
func (s *SQLiteStorage) AddItem(ctx context.Context, listID string, item model.ShoppingItem) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(listID, "listID"); err != nil {
		return err
	}
	if err := validateItem(&item); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var next int
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(MAX(position), -1) + 1 FROM shopping_items WHERE list_id = ?
		`, listID).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to compute item position: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO shopping_items (id, list_id, position, name, quantity, category, checked, from_recipe, from_recipe_id)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, item.ID, listID, next, item.Name, item.Quantity, string(item.Category),
			item.Checked, item.FromRecipe, item.FromRecipeID)
		if err != nil {
			return fmt.Errorf("failed to add shopping item: %w", err)
		}

		return s.touchListTx(ctx, tx, listID)
	})
}

// SetItemChecked marks an item checked or unchecked.
func (s *SQLiteStorage) SetItemChecked(ctx context.Context, listID, itemID string, checked bool) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(listID, "listID"); err != nil {
		return err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE shopping_items SET checked = ? WHERE list_id = ? AND id = ?
	`, checked, listID, itemID)
	if err != nil {
		return fmt.Errorf("failed to update item checked state: %w", err)
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

// DeleteItem removes a single item from a list.
func (s *SQLiteStorage) DeleteItem(ctx context.Context, listID, itemID string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(listID, "listID"); err != nil {
		return err
	}
	if err := validateString(itemID, "itemID"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM shopping_items WHERE list_id = ? AND id = ?
	`, listID, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete shopping item: %w", err)
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

// ClearCheckedItems deletes all checked items from a list and reports how
// many were removed.
func (s *SQLiteStorage) ClearCheckedItems(ctx context.Context, listID string) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	if err := validateString(listID, "listID"); err != nil {
		return 0, err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM shopping_items WHERE list_id = ? AND checked = 1
	`, listID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear checked items: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check delete result: %w", err)
	}

	return int(affected), nil
}

func (s *SQLiteStorage) touchListTx(ctx context.Context, q queryable, listID string) error {
	if _, err := q.ExecContext(ctx, `UPDATE shopping_lists SET updated_at = ? WHERE id = ?`,
		time.Now(), listID); err != nil {
		return fmt.Errorf("failed to touch shopping list: %w", err)
	}
	return nil
}
