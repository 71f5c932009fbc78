package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustParseDay(dateStr string) time.Time {
	t, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// at turns a day string into a completion timestamp within that day.
func at(dateStr string, hour int) time.Time {
	return mustParseDay(dateStr).Add(time.Duration(hour) * time.Hour)
}

func TestCurrentStreak(t *testing.T) {
	today := mustParseDay("2024-03-13")

	tests := []struct {
		name        string
		completions []time.Time
		want        int
	}{
		{
			name: "no completions",
			want: 0,
		},
		{
			name: "three consecutive days ending today",
			completions: []time.Time{
				at("2024-03-13", 9),
				at("2024-03-12", 20),
				at("2024-03-11", 7),
			},
			want: 3,
		},
		{
			name:        "single completion two days ago",
			completions: []time.Time{at("2024-03-11", 12)},
			want:        0,
		},
		{
			name:        "single completion yesterday",
			completions: []time.Time{at("2024-03-12", 12)},
			want:        1,
		},
		{
			name: "gap breaks the walk",
			completions: []time.Time{
				at("2024-03-13", 9),
				at("2024-03-12", 9),
				at("2024-03-09", 9),
			},
			want: 2,
		},
		{
			name: "several completions on one day count once",
			completions: []time.Time{
				at("2024-03-13", 9),
				at("2024-03-13", 14),
				at("2024-03-13", 21),
			},
			want: 1,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, CurrentStreak(test.completions, today))
		})
	}
}

func TestCurrentStreakRun(t *testing.T) {
	today := mustParseDay("2024-03-13")

	t.Run("run ending yesterday", func(t *testing.T) {
		length, start, end := CurrentStreakRun([]time.Time{
			at("2024-03-12", 9),
			at("2024-03-11", 9),
			at("2024-03-10", 9),
		}, today)

		assert.Equal(t, 3, length)
		assert.Equal(t, mustParseDay("2024-03-10"), start)
		assert.Equal(t, mustParseDay("2024-03-12"), end)
	})

	t.Run("no active run", func(t *testing.T) {
		length, start, end := CurrentStreakRun([]time.Time{at("2024-03-01", 9)}, today)

		assert.Equal(t, 0, length)
		assert.True(t, start.IsZero())
		assert.True(t, end.IsZero())
	})
}

func TestTodayCount(t *testing.T) {
	today := mustParseDay("2024-03-13")
	completions := []time.Time{
		at("2024-03-13", 8),
		at("2024-03-13", 19),
		at("2024-03-12", 10),
	}

	assert.Equal(t, 2, TodayCount(completions, today))
}

func TestWeekCount(t *testing.T) {
	// 2024-03-13 is a Wednesday; its week starts Monday 2024-03-11.
	today := mustParseDay("2024-03-13")
	completions := []time.Time{
		at("2024-03-11", 9),
		at("2024-03-12", 9),
		at("2024-03-13", 9),
		at("2024-03-10", 9),
		at("2024-03-15", 9),
	}

	assert.Equal(t, 3, WeekCount(completions, today))

	t.Run("sunday closes the week", func(t *testing.T) {
		sunday := mustParseDay("2024-03-17")
		assert.Equal(t, 4, WeekCount(completions, sunday))
	})
}
