package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kitchenwise/pantry/internal/model"
)

const (
	settingGistID    = "gist_id"
	settingGistToken = "gist_token"
	settingLastSync  = "last_sync"
)

// GetSettings loads the gist sync configuration. Missing keys come back as
// zero values.
func (s *SQLiteStorage) GetSettings(ctx context.Context) (*model.Settings, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	settings := &model.Settings{}

	var err error
	if settings.GistID, err = s.getSettingTx(ctx, s.db, settingGistID); err != nil {
		return nil, err
	}
	if settings.GistToken, err = s.getSettingTx(ctx, s.db, settingGistToken); err != nil {
		return nil, err
	}

	lastSync, err := s.getSettingTx(ctx, s.db, settingLastSync)
	if err != nil {
		return nil, err
	}
	if lastSync != "" {
		t, err := time.Parse(time.RFC3339, lastSync)
		if err != nil {
			return nil, fmt.Errorf("failed to parse last sync time: %w", err)
		}
		settings.LastSync = t
	}

	return settings, nil
}

// UpdateSettings persists the gist sync configuration.
func (s *SQLiteStorage) UpdateSettings(ctx context.Context, settings *model.Settings) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if settings == nil {
		return fmt.Errorf("%w: settings", ErrNilParameter)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.setSettingTx(ctx, tx, settingGistID, settings.GistID); err != nil {
			return err
		}
		if err := s.setSettingTx(ctx, tx, settingGistToken, settings.GistToken); err != nil {
			return err
		}

		lastSync := ""
		if !settings.LastSync.IsZero() {
			lastSync = settings.LastSync.Format(time.RFC3339)
		}
		return s.setSettingTx(ctx, tx, settingLastSync, lastSync)
	})
}

func (s *SQLiteStorage) getSettingTx(ctx context.Context, q queryable, key string) (string, error) {
	var value string
	err := q.QueryRowContext(ctx, `SELECT value FROM app_settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteStorage) setSettingTx(ctx context.Context, q queryable, key, value string) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO app_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}
