package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kitchenwise/pantry/internal/common"
	"github.com/kitchenwise/pantry/internal/model"
)

// SaveMergeRule appends a merge rule to the end of the rule list. A rule
// with the same canonical name (case-insensitive) already present is a
// duplicate.
func (s *SQLiteStorage) SaveMergeRule(ctx context.Context, rule model.IngredientMerge) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRule(&rule); err != nil {
		return err
	}

	sources, err := json.Marshal(rule.SourceNames)
	if err != nil {
		return fmt.Errorf("failed to encode source names: %w", err)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM merge_rules WHERE canonical_name = ? COLLATE NOCASE)
		`, rule.CanonicalName).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check merge rule existence: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: merge rule for %q", common.ErrDuplicateEntry, rule.CanonicalName)
		}

		var next int
		err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position), -1) + 1 FROM merge_rules`).Scan(&next)
		if err != nil {
			return fmt.Errorf("failed to compute rule position: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO merge_rules (canonical_name, source_names, position)
			VALUES (?, ?, ?)
		`, rule.CanonicalName, string(sources), next)
		if err != nil {
			return fmt.Errorf("failed to save merge rule: %w", err)
		}
		return nil
	})
}

// GetMergeRules returns all merge rules in their persisted order. Order
// matters: resolution is first-match.
func (s *SQLiteStorage) GetMergeRules(ctx context.Context) ([]model.IngredientMerge, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT canonical_name, source_names
		FROM merge_rules
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get merge rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.IngredientMerge
	for rows.Next() {
		var rule model.IngredientMerge
		var sources string
		if err := rows.Scan(&rule.CanonicalName, &sources); err != nil {
			return nil, fmt.Errorf("failed to scan merge rule: %w", err)
		}
		if err := json.Unmarshal([]byte(sources), &rule.SourceNames); err != nil {
			return nil, fmt.Errorf("failed to decode source names: %w", err)
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// DeleteMergeRule removes the rule with the given canonical name.
func (s *SQLiteStorage) DeleteMergeRule(ctx context.Context, canonicalName string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(canonicalName, "canonicalName"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM merge_rules WHERE canonical_name = ? COLLATE NOCASE
	`, canonicalName)
	if err != nil {
		return fmt.Errorf("failed to delete merge rule: %w", err)
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

// ReplaceMergeRules swaps the whole rule list, preserving slice order.
// Used when importing synced data.
func (s *SQLiteStorage) ReplaceMergeRules(ctx context.Context, rules []model.IngredientMerge) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range rules {
		if err := validateRule(&rules[i]); err != nil {
			return fmt.Errorf("rule at index %d: %w", i, err)
		}
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM merge_rules`); err != nil {
			return fmt.Errorf("failed to clear merge rules: %w", err)
		}

		for i, rule := range rules {
			sources, err := json.Marshal(rule.SourceNames)
			if err != nil {
				return fmt.Errorf("failed to encode source names: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO merge_rules (canonical_name, source_names, position)
				VALUES (?, ?, ?)
			`, rule.CanonicalName, string(sources), i); err != nil {
				return fmt.Errorf("failed to save merge rule: %w", err)
			}
		}
		return nil
	})
}
