package statistics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ay-kasimov/shed/internal/cache"
	"github.com/ay-kasimov/shed/internal/lesson"
	"github.com/ay-kasimov/shed/internal/record"
	"github.com/ay-kasimov/shed/internal/settings"
)

// Overview is the library-wide status summary, archived lessons excluded.
type Overview struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	New            int     `json:"new"`
	CompletionRate float64 `json:"completion_rate"`
}

// StreakInfo describes the current streak against the all-time best.
type StreakInfo struct {
	Current    int  `json:"current"`
	Best       int  `json:"best"`
	DaysToBeat int  `json:"days_to_beat"`
	IsAtBest   bool `json:"is_at_best"`
}

// GoalProgress is the completion count against a configured goal. Percent is
// capped at 100 for display; ActualPercent is not.
type GoalProgress struct {
	Completed     int     `json:"completed"`
	Goal          int     `json:"goal"`
	Percent       float64 `json:"percentage"`
	ActualPercent float64 `json:"actual_percentage"`
	Overachieved  bool    `json:"is_overachieved"`
}

// Service derives statistics from the stored lessons, records and settings.
type Service struct {
	lessons  lesson.Repository
	records  record.Repository
	streaks  record.StreakHistoryRepository
	settings *settings.Service
	cache    *cache.Cache
}

// NewService creates a new statistics Service.
func NewService(
	lessons lesson.Repository,
	records record.Repository,
	streaks record.StreakHistoryRepository,
	settings *settings.Service,
	cache *cache.Cache,
) *Service {
	return &Service{
		lessons:  lessons,
		records:  records,
		streaks:  streaks,
		settings: settings,
		cache:    cache,
	}
}

// Overview returns the status totals and completion rate, cached until the
// next mutation.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	if cached, ok := s.cache.Get("stats"); ok {
		return cached.(*Overview), nil
	}
	counts, err := s.lessons.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("CountByStatus() > %w", err)
	}

	overview := &Overview{
		Completed:  counts[lesson.StatusCompleted],
		InProgress: counts[lesson.StatusInProgress],
		New:        counts[lesson.StatusNew],
	}
	overview.Total = overview.Completed + overview.InProgress + overview.New
	if overview.Total > 0 {
		overview.CompletionRate = round1(float64(overview.Completed) / float64(overview.Total) * 100)
	}
	s.cache.Set("stats", overview)
	return overview, nil
}

// StreakInfo returns the current streak, the all-time best and how far the
// current one is from beating it.
func (s *Service) StreakInfo(ctx context.Context) (*StreakInfo, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	best, err := s.streaks.MaxLength(ctx)
	if err != nil {
		return nil, fmt.Errorf("MaxLength() > %w", err)
	}

	current := CurrentStreak(times, today())
	if current > best {
		best = current
	}
	info := &StreakInfo{
		Current:  current,
		Best:     best,
		IsAtBest: current >= best && current > 0,
	}
	if best > current {
		info.DaysToBeat = best - current + 1
	}
	return info, nil
}

// RecordStreak logs the current run to the streak history when it beats
// every previously logged run. Returns whether it was logged.
func (s *Service) RecordStreak(ctx context.Context) (bool, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return false, err
	}
	length, start, end := CurrentStreakRun(times, today())
	if length == 0 {
		return false, nil
	}
	best, err := s.streaks.MaxLength(ctx)
	if err != nil {
		return false, fmt.Errorf("MaxLength() > %w", err)
	}
	if length <= best {
		return false, nil
	}
	if err := s.streaks.Append(ctx, length, &start, &end); err != nil {
		return false, fmt.Errorf("Append(%d) > %w", length, err)
	}
	return true, nil
}

// DailyProgress returns today's completions against the daily goal.
func (s *Service) DailyProgress(ctx context.Context) (*GoalProgress, error) {
	goal, err := s.settings.DailyGoal(ctx)
	if err != nil {
		return nil, fmt.Errorf("DailyGoal() > %w", err)
	}
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	return goalProgress(TodayCount(times, today()), goal), nil
}

// WeeklyProgress returns this week's completions against the weekly goal.
// Weeks run Monday through Sunday.
func (s *Service) WeeklyProgress(ctx context.Context) (*GoalProgress, error) {
	goal, err := s.settings.WeeklyGoal(ctx)
	if err != nil {
		return nil, fmt.Errorf("WeeklyGoal() > %w", err)
	}
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	return goalProgress(WeekCount(times, today()), goal), nil
}

// Records returns the stored personal records without recomputing them.
func (s *Service) Records(ctx context.Context) ([]record.PersonalRecord, error) {
	records, err := s.records.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindAll() > %w", err)
	}
	return records, nil
}

// ComputeRecords recomputes all personal records from the completion
// history, stores them and returns them in a fixed order.
func (s *Service) ComputeRecords(ctx context.Context) ([]record.PersonalRecord, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	day := today()
	loc := day.Location()

	historyBest, err := s.streaks.MaxLength(ctx)
	if err != nil {
		return nil, fmt.Errorf("MaxLength() > %w", err)
	}
	bestStreak := CurrentStreak(times, day)
	if historyBest > bestStreak {
		bestStreak = historyBest
	}

	records := []record.PersonalRecord{
		{RecordType: record.TypeBestStreak, Value: bestStreak},
	}

	mostDay, achievedDay := MostInDay(times, loc)
	dayRecord := record.PersonalRecord{RecordType: record.TypeMostDay, Value: mostDay}
	if mostDay > 0 {
		dayRecord.AchievedDate = &achievedDay
	}
	records = append(records, dayRecord)

	mostWeek, weekLabel := MostInWeek(times, loc)
	weekRecord := record.PersonalRecord{RecordType: record.TypeMostWeek, Value: mostWeek}
	if mostWeek > 0 {
		weekRecord.Details = &weekLabel
	}
	records = append(records, weekRecord)

	mostMonth, monthLabel := MostInMonth(times, loc)
	monthRecord := record.PersonalRecord{RecordType: record.TypeMostMonth, Value: mostMonth}
	if mostMonth > 0 {
		monthRecord.Details = &monthLabel
	}
	records = append(records, monthRecord)

	consistentRecord := record.PersonalRecord{RecordType: record.TypeMostConsistent}
	if consistent := MostConsistentWeek(times, loc); consistent != nil {
		consistentRecord.Value = int(math.Round(consistent.AvgPerDay * 10))
		details := fmt.Sprintf("%s avg %.1f/day", consistent.Week, consistent.AvgPerDay)
		consistentRecord.Details = &details
	}
	records = append(records, consistentRecord)

	for _, r := range records {
		if err := s.records.Upsert(ctx, r); err != nil {
			return nil, fmt.Errorf("Upsert(%s) > %w", r.RecordType, err)
		}
	}
	return records, nil
}

// Heatmap returns the per-day completion counts of one calendar year.
func (s *Service) Heatmap(ctx context.Context, year int) ([]DayCount, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	return Heatmap(times, time.Local, year), nil
}

// HeatmapYears returns the years that have completion data, newest first.
func (s *Service) HeatmapYears(ctx context.Context) ([]int, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	return HeatmapYears(times, time.Local), nil
}

// ActivitySeries returns the active days of the trailing window.
func (s *Service) ActivitySeries(ctx context.Context, days int) ([]DayCount, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	return ActivitySeries(times, today(), days), nil
}

// LastSevenDays returns the zero-filled series for the trailing week.
func (s *Service) LastSevenDays(ctx context.Context) ([]WeekdayCount, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	return LastSevenDays(times, today()), nil
}

// DayOfWeekDistribution returns completions per weekday, Monday first.
func (s *Service) DayOfWeekDistribution(ctx context.Context) ([]WeekdayBucket, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	return DayOfWeekDistribution(times, time.Local), nil
}

// MonthlyVelocity returns completions per month over the trailing window,
// newest first.
func (s *Service) MonthlyVelocity(ctx context.Context, months int) ([]MonthCount, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	return MonthlyBuckets(times, time.Now(), months), nil
}

// BacklogTrend returns the cumulative completions against the remaining
// backlog of non-archived lessons.
func (s *Service) BacklogTrend(ctx context.Context) ([]BacklogPoint, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.lessons.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("CountByStatus() > %w", err)
	}
	total := counts[lesson.StatusNew] + counts[lesson.StatusInProgress] + counts[lesson.StatusCompleted]
	return BacklogTrend(times, time.Local, total), nil
}

// MonthlyComparison compares this month's completions to the previous
// month's.
func (s *Service) MonthlyComparison(ctx context.Context) (*Comparison, error) {
	times, err := s.completionTimes(ctx)
	if err != nil {
		return nil, err
	}
	comparison := CompareMonths(times, time.Now())
	return &comparison, nil
}

// AuthorBreakdown returns per-author totals, largest catalog first.
func (s *Service) AuthorBreakdown(ctx context.Context) ([]lesson.AuthorStat, error) {
	stats, err := s.lessons.AuthorStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("AuthorStats() > %w", err)
	}
	return stats, nil
}

// RecentCompletions returns the most recently completed lessons.
func (s *Service) RecentCompletions(ctx context.Context, limit int) ([]lesson.Lesson, error) {
	lessons, err := s.lessons.RecentCompletions(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("RecentCompletions(%d) > %w", limit, err)
	}
	return lessons, nil
}

func (s *Service) completionTimes(ctx context.Context) ([]time.Time, error) {
	times, err := s.lessons.CompletionTimes(ctx)
	if err != nil {
		return nil, fmt.Errorf("CompletionTimes() > %w", err)
	}
	return times, nil
}

func goalProgress(completed, goal int) *GoalProgress {
	percent := 0.0
	if goal > 0 {
		percent = float64(completed) / float64(goal) * 100
	}
	return &GoalProgress{
		Completed:     completed,
		Goal:          goal,
		Percent:       round1(math.Min(percent, 100)),
		ActualPercent: round1(percent),
		Overachieved:  completed > goal,
	}
}

func today() time.Time {
	return dayOf(time.Now(), time.Local)
}
