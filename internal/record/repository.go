// Package record persists personal bests and the streak history log.
package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/record/mock_repository.go -package=mock_record

// Record types tracked in personal_records, one row each.
const (
	TypeBestStreak     = "best_streak"
	TypeMostDay        = "most_day"
	TypeMostWeek       = "most_week"
	TypeMostMonth      = "most_month"
	TypeMostConsistent = "most_consistent"
)

// PersonalRecord is one personal best, recomputed and upserted on demand.
type PersonalRecord struct {
	ID           int64      `db:"id" json:"id"`
	RecordType   string     `db:"record_type" json:"record_type"`
	Value        int        `db:"value" json:"value"`
	AchievedDate *time.Time `db:"achieved_date" json:"achieved_date,omitempty"`
	Details      *string    `db:"details" json:"details,omitempty"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// Streak is one run logged to the append-only streak history.
type Streak struct {
	ID           int64      `db:"id" json:"id"`
	StreakLength int        `db:"streak_length" json:"streak_length"`
	StartDate    *time.Time `db:"start_date" json:"start_date,omitempty"`
	EndDate      *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Repository defines persistence operations for personal records.
type Repository interface {
	FindAll(ctx context.Context) ([]PersonalRecord, error)
	Find(ctx context.Context, recordType string) (*PersonalRecord, error)
	Upsert(ctx context.Context, record PersonalRecord) error
}

// StreakHistoryRepository defines persistence operations for the streak log.
type StreakHistoryRepository interface {
	MaxLength(ctx context.Context) (int, error)
	Append(ctx context.Context, length int, start, end *time.Time) error
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns every stored personal record.
func (r *DBRepository) FindAll(ctx context.Context) ([]PersonalRecord, error) {
	var records []PersonalRecord
	if err := r.db.SelectContext(ctx, &records,
		"SELECT * FROM personal_records ORDER BY record_type"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(personal records) > %w", err)
	}
	return records, nil
}

// Find returns the record of one type, or nil if never computed.
func (r *DBRepository) Find(ctx context.Context, recordType string) (*PersonalRecord, error) {
	var record PersonalRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM personal_records WHERE record_type = ?", recordType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(personal record) > %w", err)
	}
	return &record, nil
}

// Upsert replaces the stored record of the given type.
func (r *DBRepository) Upsert(ctx context.Context, record PersonalRecord) error {
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO personal_records (record_type, value, achieved_date, details)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(record_type) DO UPDATE SET
			value = excluded.value,
			achieved_date = excluded.achieved_date,
			details = excluded.details,
			updated_at = CURRENT_TIMESTAMP`,
		record.RecordType, record.Value, record.AchievedDate, record.Details); err != nil {
		return fmt.Errorf("db.ExecContext(upsert personal record) > %w", err)
	}
	return nil
}

// DBStreakHistoryRepository implements StreakHistoryRepository using SQLite.
type DBStreakHistoryRepository struct {
	db *sqlx.DB
}

// NewDBStreakHistoryRepository creates a new DBStreakHistoryRepository.
func NewDBStreakHistoryRepository(db *sqlx.DB) *DBStreakHistoryRepository {
	return &DBStreakHistoryRepository{db: db}
}

// MaxLength returns the longest streak ever logged, 0 when the log is empty.
func (r *DBStreakHistoryRepository) MaxLength(ctx context.Context) (int, error) {
	var best sql.NullInt64
	if err := r.db.GetContext(ctx, &best,
		"SELECT MAX(streak_length) FROM streak_history"); err != nil {
		return 0, fmt.Errorf("db.GetContext(max streak) > %w", err)
	}
	return int(best.Int64), nil
}

// Append logs one finished streak run.
func (r *DBStreakHistoryRepository) Append(ctx context.Context, length int, start, end *time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO streak_history (streak_length, start_date, end_date) VALUES (?, ?, ?)",
		length, start, end); err != nil {
		return fmt.Errorf("db.ExecContext(append streak) > %w", err)
	}
	return nil
}
