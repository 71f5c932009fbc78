// Package settings persists user preferences as string key/value pairs.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/settings/mock_repository.go -package=mock_settings

// Setting is one stored preference.
type Setting struct {
	ID        int64     `db:"id" json:"id"`
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Repository defines persistence operations for settings.
type Repository interface {
	Get(ctx context.Context, key string) (*Setting, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) ([]Setting, error)
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Get returns the setting stored under key, or nil if not set.
func (r *DBRepository) Get(ctx context.Context, key string) (*Setting, error) {
	var setting Setting
	err := r.db.GetContext(ctx, &setting, "SELECT * FROM user_settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(setting) > %w", err)
	}
	return &setting, nil
}

// Set stores value under key, replacing any previous value.
func (r *DBRepository) Set(ctx context.Context, key, value string) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO user_settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value); err != nil {
		return fmt.Errorf("db.ExecContext(upsert setting) > %w", err)
	}
	return nil
}

// All returns every stored setting ordered by key.
func (r *DBRepository) All(ctx context.Context) ([]Setting, error) {
	var settings []Setting
	if err := r.db.SelectContext(ctx, &settings, "SELECT * FROM user_settings ORDER BY key"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(settings) > %w", err)
	}
	return settings, nil
}
