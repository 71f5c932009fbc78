package assets

import (
	"fmt"
	"io"
	"time"
)

// ReportData is the top-level data structure for practice report templates.
type ReportData struct {
	Scope       string
	GeneratedAt time.Time
	Overview    ReportOverview
	Streak      ReportStreak
	Records     []ReportRecord
	Months      []ReportMonth
	Authors     []ReportAuthor
}

// ReportOverview carries the library totals for rendering.
type ReportOverview struct {
	Total          int
	Completed      int
	InProgress     int
	New            int
	CompletionRate float64
}

// ReportStreak carries the streak summary for rendering.
type ReportStreak struct {
	Current int
	Best    int
}

// ReportRecord is a personal record row with a display name.
type ReportRecord struct {
	Name   string
	Value  int
	Detail string
}

// ReportMonth is one row of the monthly completions table.
type ReportMonth struct {
	Month string
	Count int
}

// ReportAuthor is one row of the top-authors table.
type ReportAuthor struct {
	Author    string
	Completed int
	Total     int
}

// WriteReport renders the practice report to output, preferring an on-disk
// template override at templatePath.
func WriteReport(output io.Writer, templatePath string, data ReportData) error {
	tmpl, err := parseTemplateWithFallback(templatePath, fallbackReportTemplate)
	if err != nil {
		return fmt.Errorf("parseTemplateWithFallback() > %w", err)
	}
	if err := tmpl.Execute(output, data); err != nil {
		return fmt.Errorf("tmpl.Execute() > %w", err)
	}
	return nil
}
