// Package tag provides lesson tagging: the tag model, its repository and a
// service with taxonomy import.
package tag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/tag/mock_repository.go -package=mock_tag

// Tag is a reusable label attached to lessons.
type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TagCount is a tag together with how many lessons carry it.
type TagCount struct {
	Tag
	LessonCount int `db:"lesson_count" json:"lesson_count"`
}

// Repository defines persistence operations for tags.
type Repository interface {
	FindAll(ctx context.Context) ([]Tag, error)
	FindByID(ctx context.Context, id int64) (*Tag, error)
	FindByName(ctx context.Context, name string) (*Tag, error)
	Create(ctx context.Context, name string) (*Tag, bool, error)
	Delete(ctx context.Context, id int64) error
	Attach(ctx context.Context, lessonID, tagID int64) (bool, error)
	Detach(ctx context.Context, lessonID, tagID int64) (bool, error)
	FindByLesson(ctx context.Context, lessonID int64) ([]Tag, error)
	FindByLessonIDs(ctx context.Context, lessonIDs []int64) (map[int64][]Tag, error)
	UsageCounts(ctx context.Context) ([]TagCount, error)
}

// DBRepository implements Repository using SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// FindAll returns all tags ordered by name.
func (r *DBRepository) FindAll(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags, "SELECT * FROM tags ORDER BY name"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(tags) > %w", err)
	}
	return tags, nil
}

// FindByID returns a tag by id, or nil if not found.
func (r *DBRepository) FindByID(ctx context.Context, id int64) (*Tag, error) {
	var tag Tag
	err := r.db.GetContext(ctx, &tag, "SELECT * FROM tags WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(tag) > %w", err)
	}
	return &tag, nil
}

// FindByName returns a tag by exact name, or nil if not found.
func (r *DBRepository) FindByName(ctx context.Context, name string) (*Tag, error) {
	var tag Tag
	err := r.db.GetContext(ctx, &tag, "SELECT * FROM tags WHERE name = ?", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(tag by name) > %w", err)
	}
	return &tag, nil
}

// Create inserts a tag and returns it with a true flag, or returns the
// existing tag with a false flag when the name is already taken.
func (r *DBRepository) Create(ctx context.Context, name string) (*Tag, bool, error) {
	result, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO tags (name) VALUES (?)", name)
	if err != nil {
		return nil, false, fmt.Errorf("db.ExecContext(insert tag) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	tag, err := r.FindByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("FindByName(%s) > %w", name, err)
	}
	return tag, affected > 0, nil
}

// Delete removes a tag; its lesson links cascade away.
func (r *DBRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tags WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(delete tag) > %w", err)
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

// Attach links a tag to a lesson. Returns false when the pair already
// existed.
func (r *DBRepository) Attach(ctx context.Context, lessonID, tagID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO lesson_tags (lesson_id, tag_id) VALUES (?, ?)", lessonID, tagID)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext(attach tag) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected > 0, nil
}

// Detach unlinks a tag from a lesson. Returns false when no link existed.
func (r *DBRepository) Detach(ctx context.Context, lessonID, tagID int64) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM lesson_tags WHERE lesson_id = ? AND tag_id = ?", lessonID, tagID)
	if err != nil {
		return false, fmt.Errorf("db.ExecContext(detach tag) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("result.RowsAffected() > %w", err)
	}
	return affected > 0, nil
}

// FindByLesson returns the tags of one lesson ordered by name.
func (r *DBRepository) FindByLesson(ctx context.Context, lessonID int64) ([]Tag, error) {
	var tags []Tag
	if err := r.db.SelectContext(ctx, &tags,
		`SELECT t.* FROM tags t
		JOIN lesson_tags lt ON lt.tag_id = t.id
		WHERE lt.lesson_id = ? ORDER BY t.name`, lessonID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(lesson tags) > %w", err)
	}
	return tags, nil
}

// FindByLessonIDs returns the tags of many lessons in one query, keyed by
// lesson id.
func (r *DBRepository) FindByLessonIDs(ctx context.Context, lessonIDs []int64) (map[int64][]Tag, error) {
	if len(lessonIDs) == 0 {
		return map[int64][]Tag{}, nil
	}
	query, args, err := sqlx.In(
		`SELECT lt.lesson_id AS lesson_id, t.id AS id, t.name AS name, t.created_at AS created_at
		FROM lesson_tags lt
		JOIN tags t ON t.id = lt.tag_id
		WHERE lt.lesson_id IN (?) ORDER BY t.name`, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("sqlx.In(lesson tags) > %w", err)
	}

	var rows []struct {
		LessonID int64 `db:"lesson_id"`
		Tag
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(lesson tags batch) > %w", err)
	}
	byLesson := make(map[int64][]Tag, len(lessonIDs))
	for _, row := range rows {
		byLesson[row.LessonID] = append(byLesson[row.LessonID], row.Tag)
	}
	return byLesson, nil
}

// UsageCounts returns every tag with its lesson count, ordered by name.
func (r *DBRepository) UsageCounts(ctx context.Context) ([]TagCount, error) {
	var counts []TagCount
	if err := r.db.SelectContext(ctx, &counts,
		`SELECT t.id, t.name, t.created_at, COUNT(lt.lesson_id) AS lesson_count
		FROM tags t
		LEFT JOIN lesson_tags lt ON lt.tag_id = t.id
		GROUP BY t.id, t.name, t.created_at
		ORDER BY t.name`); err != nil {
		return nil, fmt.Errorf("db.SelectContext(tag usage counts) > %w", err)
	}
	return counts, nil
}
