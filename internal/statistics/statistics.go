// Package statistics derives streaks, personal bests and time-bucketed
// aggregates from completion timestamps. Every function here is pure: it
// takes the stored completion times plus a reference day and buckets them
// into calendar days in that day's location, so callers control both the
// clock and the timezone.
package statistics

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DayCount is one calendar day with its completion count.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// WeekdayCount is one day of the trailing week with its weekday label.
type WeekdayCount struct {
	Date  string `json:"date"`
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// WeekdayBucket is one day of the week across all completions, Monday first.
type WeekdayBucket struct {
	DayIndex int    `json:"day_index"`
	Day      string `json:"day"`
	Count    int    `json:"count"`
}

// MonthCount is one calendar month with its completion count.
type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// BacklogPoint is one day in the cumulative completed-versus-backlog trend.
type BacklogPoint struct {
	Date      string `json:"date"`
	Completed int    `json:"completed_cumulative"`
	Backlog   int    `json:"backlog"`
}

// Comparison compares the current month's completions to the previous
// month's.
type Comparison struct {
	Current       int     `json:"current"`
	Previous      int     `json:"previous"`
	ChangePercent float64 `json:"change_percent"`
	Direction     string  `json:"direction"`
}

// ConsistentWeek is the week with the steadiest daily completion counts.
type ConsistentWeek struct {
	Week      string  `json:"week"`
	Variance  float64 `json:"variance"`
	AvgPerDay float64 `json:"avg_per_day"`
}

// dayOf truncates a completion time to its calendar day in loc.
func dayOf(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// dayCounts buckets completions into calendar days in loc.
func dayCounts(completions []time.Time, loc *time.Location) map[time.Time]int {
	counts := make(map[time.Time]int, len(completions))
	for _, t := range completions {
		counts[dayOf(t, loc)]++
	}
	return counts
}

// sortedDays returns the keys of a day bucket in ascending order.
func sortedDays(counts map[time.Time]int) []time.Time {
	days := make([]time.Time, 0, len(counts))
	for day := range counts {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// isoWeekLabel formats a day as its ISO week, e.g. "2024-W15".
func isoWeekLabel(day time.Time) string {
	year, week := day.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
