// Package cli renders shed output for the terminal and drives the
// non-interactive commands.
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/ay-kasimov/shed/internal/datasync"
	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/record"
	"github.com/ay-kasimov/shed/internal/settings"
	"github.com/ay-kasimov/shed/internal/statistics"
	"github.com/ay-kasimov/shed/internal/tag"
)

// Renderer writes human-readable output for the shed commands.
type Renderer struct {
	writer io.Writer
	bold   *color.Color
	green  *color.Color
	yellow *color.Color
	cyan   *color.Color
	red    *color.Color
}

// NewRenderer creates a Renderer writing to writer.
func NewRenderer(writer io.Writer) *Renderer {
	return &Renderer{
		writer: writer,
		bold:   color.New(color.Bold),
		green:  color.New(color.FgGreen),
		yellow: color.New(color.FgYellow),
		cyan:   color.New(color.FgCyan),
		red:    color.New(color.FgRed),
	}
}

// SyncSummary prints the counters of one sync run.
func (r *Renderer) SyncSummary(result *datasync.Result, dryRun bool) {
	if dryRun {
		r.yellow.Fprintln(r.writer, "Dry run, nothing was written.")
	}
	fmt.Fprintf(r.writer, "Sync finished: %s added, %s updated, %s archived, %d unchanged, %s failed\n",
		r.green.Sprintf("%d", result.Added),
		r.cyan.Sprintf("%d", result.Updated),
		r.yellow.Sprintf("%d", result.Archived),
		result.Unchanged,
		r.red.Sprintf("%d", result.Errors),
	)
}

// LessonTable prints one page of the library listing.
func (r *Renderer) LessonTable(page *lesson.Page) {
	if page.Total == 0 {
		fmt.Fprintln(r.writer, "No lessons found.")
		return
	}

	r.bold.Fprintf(r.writer, "%-5s  %-10s  %-20s  %-36s  %s\n", "ID", "Date", "Author", "Title", "Status")
	for _, l := range page.Lessons {
		fmt.Fprintf(r.writer, "%-5d  %-10s  %-20s  %-36s  %s\n",
			l.ID,
			l.LessonDate.Format("2006-01-02"),
			truncate(l.Author, 20),
			truncate(l.Title, 36),
			r.status(l.Status),
		)
	}
	fmt.Fprintf(r.writer, "Page %d/%d, %d lessons\n", page.Page, page.Pages, page.Total)
}

// LessonDetail prints a single lesson with its tags.
func (r *Renderer) LessonDetail(l *lesson.Lesson, tags []tag.Tag) {
	r.bold.Fprintln(r.writer, l.Title)
	fmt.Fprintf(r.writer, "  Author:  %s\n", l.Author)
	fmt.Fprintf(r.writer, "  Date:    %s\n", l.LessonDate.Format("2006-01-02"))
	fmt.Fprintf(r.writer, "  Status:  %s\n", r.status(l.Status))
	fmt.Fprintf(r.writer, "  File:    %s\n", l.Filepath)
	if l.CompletedAt != nil {
		fmt.Fprintf(r.writer, "  Completed on %s\n", l.CompletedAt.Format("2006-01-02"))
	}
	if l.HasTranscript() {
		fmt.Fprintln(r.writer, "  Transcript available")
	}
	if len(tags) > 0 {
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			names = append(names, t.Name)
		}
		fmt.Fprintf(r.writer, "  Tags:    %s\n", strings.Join(names, ", "))
	}
}

// StatsOverview prints the library totals.
func (r *Renderer) StatsOverview(o *statistics.Overview) {
	r.bold.Fprintf(r.writer, "Library: %d lessons\n", o.Total)
	fmt.Fprintf(r.writer, "  %s  %d (%.1f%%)\n", r.green.Sprintf("%-12s", "Completed"), o.Completed, o.CompletionRate)
	fmt.Fprintf(r.writer, "  %s  %d\n", r.yellow.Sprintf("%-12s", "In progress"), o.InProgress)
	fmt.Fprintf(r.writer, "  %s  %d\n", r.cyan.Sprintf("%-12s", "New"), o.New)
}

// Streak prints the current and best streak.
func (r *Renderer) Streak(info *statistics.StreakInfo) {
	fmt.Fprintf(r.writer, "🔥 Current streak: %s, best %d\n",
		r.bold.Sprintf("%d days", info.Current),
		info.Best,
	)
	switch {
	case info.IsAtBest:
		r.green.Fprintln(r.writer, "   This is your all-time best. Keep it rolling.")
	case info.DaysToBeat > 0:
		fmt.Fprintf(r.writer, "   %d more days to set a new record\n", info.DaysToBeat)
	}
}

// GoalProgress prints a labelled progress bar for a daily or weekly goal.
func (r *Renderer) GoalProgress(label string, p *statistics.GoalProgress) {
	bar := progressBar(p.Percent)
	if p.Overachieved {
		bar = r.green.Sprint(bar)
	}
	fmt.Fprintf(r.writer, "%-7s [%s] %d/%d (%.1f%%)", label, bar, p.Completed, p.Goal, p.ActualPercent)
	if p.Overachieved {
		r.green.Fprint(r.writer, "  goal beaten!")
	}
	fmt.Fprintln(r.writer)
}

// RecordsTable prints the personal records.
func (r *Renderer) RecordsTable(records []record.PersonalRecord) {
	if len(records) == 0 {
		fmt.Fprintln(r.writer, "No records yet. Complete a lesson to start one.")
		return
	}
	r.bold.Fprintln(r.writer, "Personal records")
	for _, rec := range records {
		line := fmt.Sprintf("  %-22s %d", recordLabel(rec.RecordType), rec.Value)
		if detail := recordDetail(rec); detail != "" {
			line += fmt.Sprintf("  (%s)", detail)
		}
		fmt.Fprintln(r.writer, line)
	}
}

// Suggestions prints the practice suggestion sections, skipping empty ones.
func (r *Renderer) Suggestions(priority []lesson.Lesson, ofTheDay []lesson.Lesson, rediscover *lesson.Lesson, review []lesson.ReviewBucket) {
	if len(priority) > 0 {
		r.bold.Fprintln(r.writer, "Continue where you left off")
		for _, l := range priority {
			r.suggestionLine(l)
		}
	}
	if len(ofTheDay) > 0 {
		r.bold.Fprintln(r.writer, "Lesson of the day")
		for _, l := range ofTheDay {
			r.suggestionLine(l)
		}
	}
	if rediscover != nil {
		r.bold.Fprintln(r.writer, "Worth a second pass")
		r.suggestionLine(*rediscover)
	}
	for _, bucket := range review {
		if len(bucket.Lessons) == 0 {
			continue
		}
		r.bold.Fprintf(r.writer, "Review: completed %s ago\n", reviewLabel(bucket.Interval))
		for _, l := range bucket.Lessons {
			r.suggestionLine(l)
		}
	}
}

// SearchResults prints transcript search hits with their snippets.
func (r *Renderer) SearchResults(query string, results []lesson.SearchResult) {
	if len(results) == 0 {
		fmt.Fprintf(r.writer, "No transcripts mention %q.\n", query)
		return
	}
	r.bold.Fprintf(r.writer, "%d transcripts mention %q\n", len(results), query)
	for _, res := range results {
		fmt.Fprintf(r.writer, "  [%d] %s (%s)\n", res.Lesson.ID, res.Lesson.Title, res.Lesson.Author)
		fmt.Fprintf(r.writer, "      ...%s...\n", res.Snippet)
	}
}

// Tags prints every tag with its lesson count.
func (r *Renderer) Tags(counts []tag.TagCount) {
	if len(counts) == 0 {
		fmt.Fprintln(r.writer, "No tags yet.")
		return
	}
	for _, c := range counts {
		fmt.Fprintf(r.writer, "  %s (%d)\n", r.cyan.Sprint(c.Name), c.LessonCount)
	}
}

// Settings prints the stored preferences.
func (r *Renderer) Settings(items []settings.Setting) {
	if len(items) == 0 {
		fmt.Fprintln(r.writer, "No settings stored, defaults apply.")
		return
	}
	for _, item := range items {
		fmt.Fprintf(r.writer, "  %s = %s\n", r.bold.Sprint(item.Key), item.Value)
	}
}

func (r *Renderer) suggestionLine(l lesson.Lesson) {
	fmt.Fprintf(r.writer, "  [%d] %s (%s, %s)\n", l.ID, l.Title, l.Author, l.LessonDate.Format("2006-01-02"))
}

func (r *Renderer) status(s lesson.Status) string {
	switch s {
	case lesson.StatusCompleted:
		return r.green.Sprint(string(s))
	case lesson.StatusInProgress:
		return r.yellow.Sprint(string(s))
	case lesson.StatusNew:
		return r.cyan.Sprint(string(s))
	default:
		return string(s)
	}
}

const progressBarWidth = 20

// progressBar renders percent as a fixed-width block bar. Percent is already
// capped at 100 by the statistics service.
func progressBar(percent float64) string {
	filled := int(percent / 100 * progressBarWidth)
	if filled > progressBarWidth {
		filled = progressBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

func recordLabel(recordType string) string {
	switch recordType {
	case record.TypeBestStreak:
		return "Longest streak"
	case record.TypeMostDay:
		return "Most in a day"
	case record.TypeMostWeek:
		return "Most in a week"
	case record.TypeMostMonth:
		return "Most in a month"
	case record.TypeMostConsistent:
		return "Most consistent week"
	default:
		return recordType
	}
}

func recordDetail(rec record.PersonalRecord) string {
	if rec.AchievedDate != nil {
		return rec.AchievedDate.Format("2006-01-02")
	}
	if rec.Details != nil {
		return *rec.Details
	}
	return ""
}

func reviewLabel(interval string) string {
	return strings.ReplaceAll(interval, "_", " ")
}
