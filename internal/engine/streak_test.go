package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStreak(t *testing.T) {
	today := time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC)
	ago := func(n int) time.Time { return today.AddDate(0, 0, -n) }

	tests := []struct {
		name  string
		dates []time.Time
		want  int
	}{
		{"empty history", nil, 0},
		{"three consecutive days with an older gap", []time.Time{ago(0), ago(1), ago(2), ago(5)}, 3},
		{"single session three days ago is a broken streak", []time.Time{ago(3)}, 0},
		{"yesterday keeps the streak alive", []time.Time{ago(1), ago(2)}, 2},
		{"two days ago does not", []time.Time{ago(2), ago(3)}, 0},
		{"today alone", []time.Time{ago(0)}, 1},
		{"unsorted input", []time.Time{ago(2), ago(0), ago(1)}, 3},
		{"future-dated entries are ignored", []time.Time{ago(-1), ago(0), ago(1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateStreak(tt.dates, today))
		})
	}
}

// Duplicate same-day entries must not change the streak.
func TestCalculateStreakIdempotentUnderDuplicates(t *testing.T) {
	today := time.Date(2026, 3, 20, 8, 0, 0, 0, time.UTC)
	ago := func(n int) time.Time { return today.AddDate(0, 0, -n) }

	dates := []time.Time{ago(0), ago(1), ago(2), ago(5)}
	doubled := append(append([]time.Time{}, dates...), dates...)

	assert.Equal(t, CalculateStreak(dates, today), CalculateStreak(doubled, today))

	// Multiple sessions at different times of the same day count once too.
	sameDayTwice := []time.Time{ago(0), ago(0).Add(6 * time.Hour), ago(1)}
	assert.Equal(t, 2, CalculateStreak(sameDayTwice, today))
}

func TestWeeklyCounts(t *testing.T) {
	today := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)
	ago := func(n int) time.Time { return today.AddDate(0, 0, -n) }

	dates := []time.Time{
		ago(0), ago(2), ago(6), // this week
		ago(7), ago(13), // last week
		ago(14),  // two weeks back, excluded at weeks=2
		ago(-1),  // future-dated, excluded defensively
		ago(100), // ancient, excluded
	}

	got := WeeklyCounts(dates, 2, today)
	assert.Equal(t, []int{3, 2}, got, "most-recent-week first")

	got = WeeklyCounts(dates, 3, today)
	assert.Equal(t, []int{3, 2, 1}, got)

	// Sessions are counted individually, not deduplicated per day.
	twoToday := []time.Time{ago(0), ago(0).Add(3 * time.Hour)}
	assert.Equal(t, []int{2}, WeeklyCounts(twoToday, 1, today))

	assert.Empty(t, WeeklyCounts(dates, 0, today))

	// A nonsensical week count returns empty instead of panicking.
	assert.NotPanics(t, func() {
		assert.Empty(t, WeeklyCounts(dates, -1, today))
	})
}
