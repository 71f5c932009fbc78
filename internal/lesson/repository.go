package lesson

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/lesson/mock_repository.go -package=mock_lesson

// Repository defines persistence operations for lessons.
type Repository interface {
	FindByID(ctx context.Context, id int64) (*Lesson, error)
	FindSyncStates(ctx context.Context) (map[string]SyncState, error)
	FindPage(ctx context.Context, filter Filter, limit, offset int) ([]Lesson, error)
	Count(ctx context.Context, filter Filter) (int, error)
	ApplySync(ctx context.Context, creates []Lesson, updates []FileUpdate) error
	ArchiveMissing(ctx context.Context, seenHashes []string) ([]SyncState, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
	FindInProgress(ctx context.Context, limit int) ([]Lesson, error)
	FindRandom(ctx context.Context, statuses []Status, limit int) ([]Lesson, error)
	FindCompletedBefore(ctx context.Context, cutoff time.Time) (*Lesson, error)
	FindCompletedBetween(ctx context.Context, start, end time.Time, limit int, excludeIDs []int64, taggedOnly bool) ([]Lesson, error)
	Years(ctx context.Context) ([]int, error)
	CompletionTimes(ctx context.Context) ([]time.Time, error)
	CountByStatus(ctx context.Context) (map[Status]int, error)
	AuthorStats(ctx context.Context) ([]AuthorStat, error)
	RecentCompletions(ctx context.Context, limit int) ([]Lesson, error)
	SearchTranscripts(ctx context.Context, query string, limit int) ([]Lesson, error)
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindByID returns a lesson by id, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Lesson, error) {
	var l Lesson
	err := r.db.GetContext(ctx, &l, "SELECT * FROM lessons WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(lesson) > %w", err)
	}
	return &l, nil
}

// FindSyncStates returns the sync-relevant fields of every lesson, keyed by
// file hash.
func (r *DBRepository) FindSyncStates(ctx context.Context) (map[string]SyncState, error) {
	var states []SyncState
	if err := r.db.SelectContext(ctx, &states,
		"SELECT id, file_hash, filepath, filename, status, file_mtime, transcript FROM lessons"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(sync states) > %w", err)
	}
	byHash := make(map[string]SyncState, len(states))
	for _, state := range states {
		byHash[state.FileHash] = state
	}
	return byHash, nil
}

// FindPage returns one page of lessons matching the filter, newest lesson
// date first.
func (r *DBRepository) FindPage(ctx context.Context, filter Filter, limit, offset int) ([]Lesson, error) {
	where, args := filter.Clauses()
	query := "SELECT * FROM lessons" + where + " ORDER BY lesson_date DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(lessons page) > %w", err)
	}
	return lessons, nil
}

// Count returns the number of lessons matching the filter.
func (r *DBRepository) Count(ctx context.Context, filter Filter) (int, error) {
	where, args := filter.Clauses()
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM lessons"+where, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext(lessons count) > %w", err)
	}
	return count, nil
}

// ApplySync inserts new lessons and refreshes file info on changed ones in a
// single transaction.
func (r *DBRepository) ApplySync(ctx context.Context, creates []Lesson, updates []FileUpdate) error {
	if len(creates) == 0 && len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range creates {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO lessons (file_hash, filepath, filename, author, title, lesson_date, file_mtime, status, transcript)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			l.FileHash, l.Filepath, l.Filename, l.Author, l.Title,
			l.LessonDate.UTC(), l.FileMtime, l.Status, l.Transcript); err != nil {
			return fmt.Errorf("tx.ExecContext(insert lesson) > %w", err)
		}
	}
	for _, u := range updates {
		if _, err := tx.ExecContext(ctx,
			`UPDATE lessons
			SET filepath = ?, filename = ?, file_mtime = ?,
				transcript = COALESCE(?, transcript),
				updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`,
			u.Filepath, u.Filename, u.FileMtime, u.Transcript, u.ID); err != nil {
			return fmt.Errorf("tx.ExecContext(update lesson file info) > %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

const archiveChunkSize = 500

// ArchiveMissing archives every non-archived lesson whose file hash was not
// observed in the current scan and returns the affected lessons.
func (r *DBRepository) ArchiveMissing(ctx context.Context, seenHashes []string) ([]SyncState, error) {
	var states []SyncState
	if err := r.db.SelectContext(ctx, &states,
		"SELECT id, file_hash, filepath, filename, status, file_mtime, transcript FROM lessons WHERE status != ?",
		StatusArchived); err != nil {
		return nil, fmt.Errorf("db.SelectContext(non-archived lessons) > %w", err)
	}

	seen := make(map[string]struct{}, len(seenHashes))
	for _, hash := range seenHashes {
		seen[hash] = struct{}{}
	}
	var missing []SyncState
	for _, state := range states {
		if _, ok := seen[state.FileHash]; !ok {
			missing = append(missing, state)
		}
	}
	if len(missing) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for start := 0; start < len(missing); start += archiveChunkSize {
		chunk := missing[start:min(start+archiveChunkSize, len(missing))]
		ids := make([]int64, 0, len(chunk))
		for _, state := range chunk {
			ids = append(ids, state.ID)
		}
		query, args, err := sqlx.In(
			"UPDATE lessons SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id IN (?)",
			StatusArchived, ids)
		if err != nil {
			return nil, fmt.Errorf("sqlx.In(archive lessons) > %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return nil, fmt.Errorf("tx.ExecContext(archive lessons) > %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx.Commit() > %w", err)
	}
	return missing, nil
}

// UpdateStatus moves a lesson to the given status. completed_at is set when
// the lesson becomes Completed and cleared on any other status.
func (r *DBRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	var completedAt any
	if status == StatusCompleted {
		completedAt = time.Now().UTC()
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE lessons SET status = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		status, completedAt, id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update lesson status) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindInProgress returns in-progress lessons, most recently touched first.
func (r *DBRepository) FindInProgress(ctx context.Context, limit int) ([]Lesson, error) {
	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons,
		"SELECT * FROM lessons WHERE status = ? ORDER BY updated_at DESC LIMIT ?",
		StatusInProgress, limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(in-progress lessons) > %w", err)
	}
	return lessons, nil
}

// FindRandom returns up to limit random lessons in any of the given statuses.
func (r *DBRepository) FindRandom(ctx context.Context, statuses []Status, limit int) ([]Lesson, error) {
	if len(statuses) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(
		"SELECT * FROM lessons WHERE status IN (?) ORDER BY RANDOM() LIMIT ?",
		statuses, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(random lessons) > %w", err)
	}
	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(random lessons) > %w", err)
	}
	return lessons, nil
}

// FindCompletedBefore returns one random lesson completed at or before the
// cutoff, or nil if none qualifies.
func (r *DBRepository) FindCompletedBefore(ctx context.Context, cutoff time.Time) (*Lesson, error) {
	var l Lesson
	err := r.db.GetContext(ctx, &l,
		"SELECT * FROM lessons WHERE status = ? AND completed_at <= ? ORDER BY RANDOM() LIMIT 1",
		StatusCompleted, cutoff.UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(completed lesson before cutoff) > %w", err)
	}
	return &l, nil
}

// FindCompletedBetween returns up to limit random lessons completed in
// [start, end). With taggedOnly only lessons carrying at least one tag
// qualify; excludeIDs are skipped.
func (r *DBRepository) FindCompletedBetween(ctx context.Context, start, end time.Time, limit int, excludeIDs []int64, taggedOnly bool) ([]Lesson, error) {
	query := "SELECT * FROM lessons WHERE status = ? AND completed_at >= ? AND completed_at < ?"
	args := []any{StatusCompleted, start.UTC(), end.UTC()}
	if taggedOnly {
		query += " AND id IN (SELECT DISTINCT lesson_id FROM lesson_tags)"
	}
	if len(excludeIDs) > 0 {
		query += " AND id NOT IN (?)"
		args = append(args, excludeIDs)
	}
	query += " ORDER BY RANDOM() LIMIT ?"
	args = append(args, limit)

	query, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(completed lessons between) > %w", err)
	}
	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons, query, expanded...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(completed lessons between) > %w", err)
	}
	return lessons, nil
}

// Years returns the distinct lesson years present in the library, newest
// first. Archived lessons are excluded.
func (r *DBRepository) Years(ctx context.Context) ([]int, error) {
	var dates []time.Time
	if err := r.db.SelectContext(ctx, &dates,
		"SELECT lesson_date FROM lessons WHERE status != ?", StatusArchived); err != nil {
		return nil, fmt.Errorf("db.SelectContext(lesson dates) > %w", err)
	}

	seen := map[int]struct{}{}
	var years []int
	for _, date := range dates {
		year := date.UTC().Year()
		if _, ok := seen[year]; !ok {
			seen[year] = struct{}{}
			years = append(years, year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years, nil
}

// CompletionTimes returns the completion times of currently completed
// lessons in ascending order. Lessons archived after completion drop out;
// the streak history log is what preserves bests across such resets.
func (r *DBRepository) CompletionTimes(ctx context.Context) ([]time.Time, error) {
	var times []time.Time
	if err := r.db.SelectContext(ctx, &times,
		"SELECT completed_at FROM lessons WHERE status = ? AND completed_at IS NOT NULL ORDER BY completed_at",
		StatusCompleted); err != nil {
		return nil, fmt.Errorf("db.SelectContext(completion times) > %w", err)
	}
	return times, nil
}

// CountByStatus returns lesson counts grouped by status.
func (r *DBRepository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	var rows []struct {
		Status Status `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT status, COUNT(*) AS count FROM lessons GROUP BY status"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(lesson status counts) > %w", err)
	}
	counts := make(map[Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// AuthorStats returns per-author totals over non-archived lessons, largest
// catalog first.
func (r *DBRepository) AuthorStats(ctx context.Context) ([]AuthorStat, error) {
	var stats []AuthorStat
	if err := r.db.SelectContext(ctx, &stats,
		`SELECT author, COUNT(*) AS total,
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS completed
		FROM lessons WHERE status != ?
		GROUP BY author ORDER BY total DESC, author`,
		StatusCompleted, StatusArchived); err != nil {
		return nil, fmt.Errorf("db.SelectContext(author stats) > %w", err)
	}
	return stats, nil
}

// RecentCompletions returns the most recently completed lessons.
func (r *DBRepository) RecentCompletions(ctx context.Context, limit int) ([]Lesson, error) {
	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons,
		"SELECT * FROM lessons WHERE status = ? ORDER BY completed_at DESC LIMIT ?",
		StatusCompleted, limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(recent completions) > %w", err)
	}
	return lessons, nil
}

// SearchTranscripts returns non-archived lessons whose transcript contains
// the query, newest lesson date first.
func (r *DBRepository) SearchTranscripts(ctx context.Context, query string, limit int) ([]Lesson, error) {
	var lessons []Lesson
	if err := r.db.SelectContext(ctx, &lessons,
		`SELECT * FROM lessons
		WHERE status != ? AND transcript IS NOT NULL AND transcript LIKE ?
		ORDER BY lesson_date DESC, id DESC LIMIT ?`,
		StatusArchived, "%"+query+"%", limit); err != nil {
		return nil, fmt.Errorf("db.SelectContext(transcript search) > %w", err)
	}
	return lessons, nil
}
