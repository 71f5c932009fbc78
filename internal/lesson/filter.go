package lesson

import (
	"fmt"
	"strings"
	"time"
)

// Filter narrows lesson queries. The zero value matches every non-archived
// lesson; set IncludeArchived to widen it to the whole table.
type Filter struct {
	Status          Status
	Author          string // substring match
	Title           string // substring match
	Search          string // substring match on author or title
	Year            int
	Month           int // 1-12
	DateFrom        *time.Time
	DateTo          *time.Time
	TagIDs          []int64 // a lesson must carry all of them
	IncludeArchived bool
}

// Clauses renders the filter as a parameterized WHERE fragment. The returned
// string is empty or starts with " WHERE"; values travel as args only.
//
// lesson_date is always written by this package as a UTC timestamp with an
// ISO date prefix, so the year and month predicates read fixed substrings
// instead of relying on SQLite date functions.
func (f Filter) Clauses() (string, []any) {
	var conds []string
	var args []any

	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	} else if !f.IncludeArchived {
		conds = append(conds, "status != ?")
		args = append(args, StatusArchived)
	}
	if f.Author != "" {
		conds = append(conds, "author LIKE ?")
		args = append(args, "%"+f.Author+"%")
	}
	if f.Title != "" {
		conds = append(conds, "title LIKE ?")
		args = append(args, "%"+f.Title+"%")
	}
	if f.Search != "" {
		conds = append(conds, "(author LIKE ? OR title LIKE ?)")
		args = append(args, "%"+f.Search+"%", "%"+f.Search+"%")
	}
	if f.Year > 0 {
		conds = append(conds, "CAST(substr(lesson_date, 1, 4) AS INTEGER) = ?")
		args = append(args, f.Year)
	}
	if f.Month >= 1 && f.Month <= 12 {
		conds = append(conds, "CAST(substr(lesson_date, 6, 2) AS INTEGER) = ?")
		args = append(args, f.Month)
	}
	if f.DateFrom != nil {
		conds = append(conds, "lesson_date >= ?")
		args = append(args, f.DateFrom.UTC())
	}
	if f.DateTo != nil {
		conds = append(conds, "lesson_date <= ?")
		args = append(args, f.DateTo.UTC())
	}
	if len(f.TagIDs) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(f.TagIDs)), ",")
		conds = append(conds, fmt.Sprintf(
			"id IN (SELECT lesson_id FROM lesson_tags WHERE tag_id IN (%s) GROUP BY lesson_id HAVING COUNT(DISTINCT tag_id) = ?)",
			placeholders))
		for _, tagID := range f.TagIDs {
			args = append(args, tagID)
		}
		args = append(args, len(f.TagIDs))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
