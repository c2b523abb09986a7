package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// ExpectedSchemaVersion is the latest schema version that the application
// expects. If the database cannot be migrated to this version, it's a
// fatal error.
const ExpectedSchemaVersion = 3

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema: recipes and shopping lists",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS recipes (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					tags TEXT NOT NULL DEFAULT '[]',
					is_favorite INTEGER NOT NULL DEFAULT 0,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_recipes_name ON recipes(name)`,

				`CREATE TABLE IF NOT EXISTS recipe_ingredients (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					recipe_id TEXT NOT NULL REFERENCES recipes(id) ON DELETE CASCADE,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					quantity TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL DEFAULT 'other'
				)`,
				`CREATE INDEX idx_recipe_ingredients_recipe ON recipe_ingredients(recipe_id)`,

				`CREATE TABLE IF NOT EXISTS shopping_lists (
					id TEXT PRIMARY KEY,
					name TEXT NOT NULL,
					created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
					updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
				)`,

				`CREATE TABLE IF NOT EXISTS shopping_items (
					id TEXT PRIMARY KEY,
					list_id TEXT NOT NULL REFERENCES shopping_lists(id) ON DELETE CASCADE,
					position INTEGER NOT NULL,
					name TEXT NOT NULL,
					quantity TEXT NOT NULL DEFAULT '',
					category TEXT NOT NULL DEFAULT 'other',
					checked INTEGER NOT NULL DEFAULT 0,
					from_recipe TEXT NOT NULL DEFAULT '',
					from_recipe_id TEXT NOT NULL DEFAULT ''
				)`,
				`CREATE INDEX idx_shopping_items_list ON shopping_items(list_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Merge rules and app settings",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				// position preserves rule order; resolution is first-match
				`CREATE TABLE IF NOT EXISTS merge_rules (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					canonical_name TEXT NOT NULL,
					source_names TEXT NOT NULL DEFAULT '[]',
					position INTEGER NOT NULL
				)`,
				`CREATE UNIQUE INDEX idx_merge_rules_canonical ON merge_rules(canonical_name COLLATE NOCASE)`,

				`CREATE TABLE IF NOT EXISTS app_settings (
					key TEXT PRIMARY KEY,
					value TEXT NOT NULL
				)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
	{
		Version:     3,
		Description: "Meal plan entries",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS meal_plan (
					id TEXT PRIMARY KEY,
					date DATETIME NOT NULL,
					meal TEXT NOT NULL DEFAULT 'dinner',
					recipe_id TEXT NOT NULL,
					recipe_name TEXT NOT NULL
				)`,
				`CREATE INDEX idx_meal_plan_date ON meal_plan(date)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query: %w", err)
				}
			}
			return nil
		},
	},
}

// Migrate brings the database schema up to the expected version.
func (s *SQLiteStorage) Migrate(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current int
	err := s.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.Version <= current {
			continue
		}

		err := s.withTx(ctx, func(tx *sql.Tx) error {
			if err := m.Up(tx); err != nil {
				return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
			}
			if _, err := tx.Exec(`INSERT INTO schema_migrations (version, description) VALUES (?, ?)`,
				m.Version, m.Description); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		slog.Debug("Applied migration", "version", m.Version, "description", m.Description)
	}

	if current > ExpectedSchemaVersion {
		return fmt.Errorf("database schema version %d is newer than expected %d", current, ExpectedSchemaVersion)
	}

	return nil
}
