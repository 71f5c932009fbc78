package statistics

import (
	"sort"
	"time"
)

// MostInDay returns the highest completion count of any single day and the
// day it happened. Ties go to the earliest day.
func MostInDay(completions []time.Time, loc *time.Location) (int, time.Time) {
	counts := dayCounts(completions, loc)
	best, bestDay := 0, time.Time{}
	for _, day := range sortedDays(counts) {
		if counts[day] > best {
			best = counts[day]
			bestDay = day
		}
	}
	return best, bestDay
}

// MostInWeek returns the highest completion count of any ISO week and that
// week's label. Ties go to the earliest week.
func MostInWeek(completions []time.Time, loc *time.Location) (int, string) {
	return mostInBucket(completions, loc, isoWeekLabel)
}

// MostInMonth returns the highest completion count of any calendar month and
// that month's label. Ties go to the earliest month.
func MostInMonth(completions []time.Time, loc *time.Location) (int, string) {
	return mostInBucket(completions, loc, func(day time.Time) string {
		return day.Format(monthLayout)
	})
}

func mostInBucket(completions []time.Time, loc *time.Location, label func(time.Time) string) (int, string) {
	buckets := make(map[string]int)
	for day, n := range dayCounts(completions, loc) {
		buckets[label(day)] += n
	}
	labels := make([]string, 0, len(buckets))
	for l := range buckets {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	best, bestLabel := 0, ""
	for _, l := range labels {
		if buckets[l] > best {
			best = buckets[l]
			bestLabel = l
		}
	}
	return best, bestLabel
}

// MostConsistentWeek finds the ISO week with the lowest variance of daily
// completion counts among weeks with at least three active days. Ties keep
// the earliest week. Returns nil when no week qualifies.
func MostConsistentWeek(completions []time.Time, loc *time.Location) *ConsistentWeek {
	counts := dayCounts(completions, loc)
	weeks := make(map[string][]int)
	for _, day := range sortedDays(counts) {
		label := isoWeekLabel(day)
		weeks[label] = append(weeks[label], counts[day])
	}
	labels := make([]string, 0, len(weeks))
	for label := range weeks {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	var best *ConsistentWeek
	for _, label := range labels {
		daily := weeks[label]
		if len(daily) < 3 {
			continue
		}
		sum := 0
		for _, n := range daily {
			sum += n
		}
		avg := float64(sum) / float64(len(daily))
		variance := 0.0
		for _, n := range daily {
			diff := float64(n) - avg
			variance += diff * diff
		}
		variance /= float64(len(daily))
		if best == nil || variance < best.Variance {
			best = &ConsistentWeek{Week: label, Variance: variance, AvgPerDay: round1(avg)}
		}
	}
	return best
}

// LastSevenDays returns a zero-filled series for the trailing seven days,
// oldest first.
func LastSevenDays(completions []time.Time, today time.Time) []WeekdayCount {
	counts := dayCounts(completions, today.Location())
	series := make([]WeekdayCount, 0, 7)
	for i := 6; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		series = append(series, WeekdayCount{
			Date:  day.Format(dayLayout),
			Day:   day.Format("Mon"),
			Count: counts[day],
		})
	}
	return series
}

// DayOfWeekDistribution counts completions per weekday, Monday first.
func DayOfWeekDistribution(completions []time.Time, loc *time.Location) []WeekdayBucket {
	buckets := make([]WeekdayBucket, 7)
	for i := range buckets {
		weekday := time.Weekday((i + 1) % 7)
		buckets[i] = WeekdayBucket{DayIndex: i, Day: weekday.String()}
	}
	for _, t := range completions {
		buckets[mondayIndex(t.In(loc).Weekday())].Count++
	}
	return buckets
}

// MonthlyBuckets counts completions per calendar month over the trailing
// window, newest month first. Months without completions are omitted.
func MonthlyBuckets(completions []time.Time, now time.Time, months int) []MonthCount {
	cutoff := now.AddDate(0, -months, 0)
	buckets := make(map[string]int)
	for _, t := range completions {
		if t.Before(cutoff) {
			continue
		}
		buckets[t.In(now.Location()).Format(monthLayout)]++
	}
	result := make([]MonthCount, 0, len(buckets))
	for month, count := range buckets {
		result = append(result, MonthCount{Month: month, Count: count})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month > result[j].Month })
	return result
}

// BacklogTrend walks the distinct completion days in order and tracks the
// cumulative completed count against the remaining backlog out of total.
func BacklogTrend(completions []time.Time, loc *time.Location, total int) []BacklogPoint {
	counts := dayCounts(completions, loc)
	trend := make([]BacklogPoint, 0, len(counts))
	cumulative := 0
	for _, day := range sortedDays(counts) {
		cumulative += counts[day]
		trend = append(trend, BacklogPoint{
			Date:      day.Format(dayLayout),
			Completed: cumulative,
			Backlog:   total - cumulative,
		})
	}
	return trend
}

// CompareMonths compares this month's completions to the previous month's.
// A jump from zero counts as +100%, staying at zero as 0%.
func CompareMonths(completions []time.Time, now time.Time) Comparison {
	loc := now.Location()
	current := now.Format(monthLayout)
	previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).
		AddDate(0, -1, 0).Format(monthLayout)

	currentCount, previousCount := 0, 0
	for _, t := range completions {
		switch t.In(loc).Format(monthLayout) {
		case current:
			currentCount++
		case previous:
			previousCount++
		}
	}

	change := 0.0
	switch {
	case previousCount > 0:
		change = round1(float64(currentCount-previousCount) / float64(previousCount) * 100)
	case currentCount > 0:
		change = 100
	}
	direction := "down"
	if currentCount >= previousCount {
		direction = "up"
	}
	return Comparison{
		Current:       currentCount,
		Previous:      previousCount,
		ChangePercent: change,
		Direction:     direction,
	}
}

// ActivitySeries returns the active days within the trailing window, oldest
// first.
func ActivitySeries(completions []time.Time, today time.Time, days int) []DayCount {
	start := today.AddDate(0, 0, -days)
	counts := dayCounts(completions, today.Location())
	series := make([]DayCount, 0, len(counts))
	for _, day := range sortedDays(counts) {
		if day.Before(start) || day.After(today) {
			continue
		}
		series = append(series, DayCount{Date: day.Format(dayLayout), Count: counts[day]})
	}
	return series
}

// Heatmap returns the per-day completion counts of one calendar year, oldest
// first.
func Heatmap(completions []time.Time, loc *time.Location, year int) []DayCount {
	counts := dayCounts(completions, loc)
	series := make([]DayCount, 0, len(counts))
	for _, day := range sortedDays(counts) {
		if day.Year() != year {
			continue
		}
		series = append(series, DayCount{Date: day.Format(dayLayout), Count: counts[day]})
	}
	return series
}

// HeatmapYears returns the years with any completion, newest first.
func HeatmapYears(completions []time.Time, loc *time.Location) []int {
	seen := make(map[int]struct{})
	for _, t := range completions {
		seen[t.In(loc).Year()] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}
