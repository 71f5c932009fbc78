package statistics

import "time"

// CurrentStreak counts consecutive calendar days with at least one
// completion. A streak exists only while its latest day is today or
// yesterday; one missed day beyond that breaks it to zero.
func CurrentStreak(completions []time.Time, today time.Time) int {
	length, _, _ := CurrentStreakRun(completions, today)
	return length
}

// CurrentStreakRun returns the length and the first and last day of the
// current streak. A zero length comes with zero times.
func CurrentStreakRun(completions []time.Time, today time.Time) (int, time.Time, time.Time) {
	loc := today.Location()
	counts := dayCounts(completions, loc)
	if len(counts) == 0 {
		return 0, time.Time{}, time.Time{}
	}

	latest := time.Time{}
	for day := range counts {
		if day.After(latest) {
			latest = day
		}
	}
	yesterday := today.AddDate(0, 0, -1)
	if !latest.Equal(today) && !latest.Equal(yesterday) {
		return 0, time.Time{}, time.Time{}
	}

	length := 1
	start := latest
	for {
		previous := start.AddDate(0, 0, -1)
		if _, ok := counts[previous]; !ok {
			break
		}
		start = previous
		length++
	}
	return length, start, latest
}

// TodayCount counts completions on the given day.
func TodayCount(completions []time.Time, today time.Time) int {
	return dayCounts(completions, today.Location())[today]
}

// WeekCount counts completions from Monday of today's week through today.
func WeekCount(completions []time.Time, today time.Time) int {
	monday := today.AddDate(0, 0, -mondayIndex(today.Weekday()))
	count := 0
	for day, n := range dayCounts(completions, today.Location()) {
		if !day.Before(monday) && !day.After(today) {
			count += n
		}
	}
	return count
}

// mondayIndex maps a weekday to its offset from Monday (Monday=0, Sunday=6).
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
