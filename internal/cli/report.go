package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ay-kasimov/shed/internal/assets"
	"github.com/ay-kasimov/shed/internal/pdf"
	"github.com/ay-kasimov/shed/internal/statistics"
)

// ReportOptions select the practice report scope and output.
type ReportOptions struct {
	Year         int
	Month        int // 1-12, requires Year
	OutputDir    string
	TemplatePath string
	PDF          bool
}

const reportAuthorLimit = 10

// RunReport writes a practice report for the selected scope under the output
// directory and returns the path of the generated file.
func RunReport(ctx context.Context, stats *statistics.Service, opts ReportOptions) (string, error) {
	scope, err := reportScope(opts)
	if err != nil {
		return "", err
	}

	data, err := reportData(ctx, stats, scope, opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", opts.OutputDir, err)
	}
	reportPath := filepath.Join(opts.OutputDir, fmt.Sprintf("practice-report-%s.md", scope))
	file, err := os.Create(reportPath)
	if err != nil {
		return "", fmt.Errorf("os.Create(%s) > %w", reportPath, err)
	}
	if err := assets.WriteReport(file, opts.TemplatePath, *data); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("assets.WriteReport() > %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("file.Close() > %w", err)
	}

	if opts.PDF {
		pdfPath, err := pdf.ConvertMarkdownToPDF(reportPath)
		if err != nil {
			return "", fmt.Errorf("pdf.ConvertMarkdownToPDF() > %w", err)
		}
		return pdfPath, nil
	}
	return reportPath, nil
}

// reportScope validates the year/month selection and returns the scope label
// used in the report title and filename.
func reportScope(opts ReportOptions) (string, error) {
	if opts.Month != 0 {
		if opts.Year == 0 {
			return "", errors.New("a month scope needs a year")
		}
		if opts.Month < 1 || opts.Month > 12 {
			return "", fmt.Errorf("month out of range: %d", opts.Month)
		}
		return fmt.Sprintf("%d-%02d", opts.Year, opts.Month), nil
	}
	if opts.Year != 0 {
		return fmt.Sprintf("%d", opts.Year), nil
	}
	return "all-time", nil
}

func reportData(ctx context.Context, stats *statistics.Service, scope string, opts ReportOptions) (*assets.ReportData, error) {
	overview, err := stats.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("Overview() > %w", err)
	}
	streak, err := stats.StreakInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("StreakInfo() > %w", err)
	}
	records, err := stats.ComputeRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("ComputeRecords() > %w", err)
	}
	months, err := stats.MonthlyVelocity(ctx, monthsToCover(opts.Year, time.Now()))
	if err != nil {
		return nil, fmt.Errorf("MonthlyVelocity() > %w", err)
	}
	authors, err := stats.AuthorBreakdown(ctx)
	if err != nil {
		return nil, fmt.Errorf("AuthorBreakdown() > %w", err)
	}

	data := &assets.ReportData{
		Scope:       scope,
		GeneratedAt: time.Now(),
		Overview: assets.ReportOverview{
			Total:          overview.Total,
			Completed:      overview.Completed,
			InProgress:     overview.InProgress,
			New:            overview.New,
			CompletionRate: overview.CompletionRate,
		},
		Streak: assets.ReportStreak{Current: streak.Current, Best: streak.Best},
	}
	for _, rec := range records {
		data.Records = append(data.Records, assets.ReportRecord{
			Name:   recordLabel(rec.RecordType),
			Value:  rec.Value,
			Detail: recordDetail(rec),
		})
	}
	for _, m := range months {
		if !monthInScope(m.Month, scope, opts) {
			continue
		}
		data.Months = append(data.Months, assets.ReportMonth{Month: m.Month, Count: m.Count})
	}
	for i, a := range authors {
		if i == reportAuthorLimit {
			break
		}
		data.Authors = append(data.Authors, assets.ReportAuthor{
			Author:    a.Author,
			Completed: a.Completed,
			Total:     a.Total,
		})
	}
	return data, nil
}

// monthsToCover widens the velocity window so a year scope reaches back to
// January of that year.
func monthsToCover(year int, now time.Time) int {
	if year == 0 {
		return 12
	}
	months := (now.Year()-year)*12 + int(now.Month())
	if months < 12 {
		return 12
	}
	return months
}

func monthInScope(month, scope string, opts ReportOptions) bool {
	switch {
	case opts.Month != 0:
		return month == scope
	case opts.Year != 0:
		return strings.HasPrefix(month, scope+"-")
	default:
		return true
	}
}
