// Package lesson provides the lesson domain model, query filters and the
// repository over the lessons table.
package lesson

import (
	"time"
)

// Status is the progress state of a lesson.
type Status string

// Lesson progress states. Archived is reserved for the sync engine when a
// file disappears from the library.
const (
	StatusNew        Status = "New"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusArchived   Status = "Archived"
)

// ValidTransition reports whether users may move a lesson to this status
// directly.
func (s Status) ValidTransition() bool {
	return s == StatusNew || s == StatusInProgress || s == StatusCompleted
}

// ParseStatus maps raw user input onto a Status.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusNew, StatusInProgress, StatusCompleted, StatusArchived:
		return s, true
	}
	return "", false
}

// Lesson represents one instructional video tracked in the library.
// Author, title and lesson date are parsed from the filename at ingestion
// and never re-derived afterwards.
type Lesson struct {
	ID          int64      `db:"id" json:"id"`
	FileHash    string     `db:"file_hash" json:"file_hash"`
	Filepath    string     `db:"filepath" json:"filepath"`
	Filename    string     `db:"filename" json:"filename"`
	Author      string     `db:"author" json:"author"`
	Title       string     `db:"title" json:"title"`
	LessonDate  time.Time  `db:"lesson_date" json:"lesson_date"`
	FileMtime   int64      `db:"file_mtime" json:"file_mtime"`
	Status      Status     `db:"status" json:"status"`
	CompletedAt *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	Transcript  *string    `db:"transcript" json:"transcript,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// HasTranscript reports whether a non-empty transcript is stored.
func (l Lesson) HasTranscript() bool {
	return l.Transcript != nil && *l.Transcript != ""
}

// SyncState is the subset of a lesson the sync engine diffs a folder scan
// against.
type SyncState struct {
	ID         int64   `db:"id"`
	FileHash   string  `db:"file_hash"`
	Filepath   string  `db:"filepath"`
	Filename   string  `db:"filename"`
	Status     Status  `db:"status"`
	FileMtime  int64   `db:"file_mtime"`
	Transcript *string `db:"transcript"`
}

// HasTranscript reports whether a non-empty transcript is stored.
func (s SyncState) HasTranscript() bool {
	return s.Transcript != nil && *s.Transcript != ""
}

// FileUpdate carries the mutable file fields refreshed by a sync. A nil
// Transcript leaves the stored transcript untouched.
type FileUpdate struct {
	ID         int64
	Filepath   string
	Filename   string
	FileMtime  int64
	Transcript *string
}

// AuthorStat is the per-author lesson count projection.
type AuthorStat struct {
	Author    string `db:"author" json:"author"`
	Total     int    `db:"total" json:"total"`
	Completed int    `db:"completed" json:"completed"`
}
