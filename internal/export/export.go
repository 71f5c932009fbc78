// Package export assembles the full statistics snapshot for outside analysis.
package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/ay-kasimov/shed/internal/record"
	"github.com/ay-kasimov/shed/internal/statistics"
)

// Bundle holds everything one export run captures. Field names are part of
// the file format consumed by downstream analysis, so treat them as frozen.
type Bundle struct {
	ExportedAt         time.Time                  `json:"exported_at"`
	Library            *statistics.Overview       `json:"library_stats"`
	Streak             *statistics.StreakInfo     `json:"streak"`
	DailyProgress      *statistics.GoalProgress   `json:"daily_progress"`
	WeeklyProgress     *statistics.GoalProgress   `json:"weekly_progress"`
	PersonalRecords    []record.PersonalRecord    `json:"personal_records"`
	MonthlyCompletions []statistics.MonthCount    `json:"monthly_completions"`
	DayOfWeek          []statistics.WeekdayBucket `json:"day_of_week_distribution"`
	MonthlyComparison  *statistics.Comparison     `json:"monthly_comparison"`
	LastSevenDays      []statistics.WeekdayCount  `json:"last_7_days"`
}

// Exporter reads the statistics service and returns export bundles.
type Exporter struct {
	stats *statistics.Service
}

// NewExporter creates a new Exporter.
func NewExporter(stats *statistics.Service) *Exporter {
	return &Exporter{stats: stats}
}

// Snapshot assembles a bundle from the current library state. Personal
// records are recomputed first so the export always carries fresh bests.
func (e *Exporter) Snapshot(ctx context.Context) (*Bundle, error) {
	overview, err := e.stats.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("Overview() > %w", err)
	}

	streak, err := e.stats.StreakInfo(ctx)
	if err != nil {
		return nil, fmt.Errorf("StreakInfo() > %w", err)
	}

	daily, err := e.stats.DailyProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("DailyProgress() > %w", err)
	}

	weekly, err := e.stats.WeeklyProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("WeeklyProgress() > %w", err)
	}

	records, err := e.stats.ComputeRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("ComputeRecords() > %w", err)
	}

	monthly, err := e.stats.MonthlyVelocity(ctx, 12)
	if err != nil {
		return nil, fmt.Errorf("MonthlyVelocity(12) > %w", err)
	}

	dayOfWeek, err := e.stats.DayOfWeekDistribution(ctx)
	if err != nil {
		return nil, fmt.Errorf("DayOfWeekDistribution() > %w", err)
	}

	comparison, err := e.stats.MonthlyComparison(ctx)
	if err != nil {
		return nil, fmt.Errorf("MonthlyComparison() > %w", err)
	}

	lastSeven, err := e.stats.LastSevenDays(ctx)
	if err != nil {
		return nil, fmt.Errorf("LastSevenDays() > %w", err)
	}

	return &Bundle{
		ExportedAt:         time.Now(),
		Library:            overview,
		Streak:             streak,
		DailyProgress:      daily,
		WeeklyProgress:     weekly,
		PersonalRecords:    records,
		MonthlyCompletions: monthly,
		DayOfWeek:          dayOfWeek,
		MonthlyComparison:  comparison,
		LastSevenDays:      lastSeven,
	}, nil
}

// WriteJSON assembles a bundle and writes it as indented JSON.
func (e *Exporter) WriteJSON(ctx context.Context, w io.Writer) error {
	bundle, err := e.Snapshot(ctx)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(bundle); err != nil {
		return fmt.Errorf("json.Encoder.Encode() > %w", err)
	}
	return nil
}
