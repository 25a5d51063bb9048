package engine

import (
	"sort"
	"time"
)

// CalculateStreak returns the number of consecutive training days ending today
// or yesterday. Multiple sessions on one calendar day count once; a most
// recent session more than one day old means the streak is broken (0), even
// though the history remains visible.
func CalculateStreak(sessionDates []time.Time, today time.Time) int {
	day := startOfDay(today)

	seen := make(map[time.Time]bool, len(sessionDates))
	var days []time.Time
	for _, t := range sessionDates {
		d := startOfDay(t)
		if d.After(day) {
			// Future-dated entries should not occur; excluded defensively.
			continue
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	if daysBetween(days[0], day) > 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i], days[i-1]) != 1 {
			break
		}
		streak++
	}
	return streak
}

// WeeklyCounts buckets sessions into per-week counts, most recent week first.
// Sessions older than weeks*7 days are excluded, as are future-dated entries.
func WeeklyCounts(sessionDates []time.Time, weeks int, today time.Time) []int {
	if weeks <= 0 {
		return nil
	}
	counts := make([]int, weeks)
	for _, t := range sessionDates {
		age := daysBetween(t, today)
		if age < 0 {
			continue
		}
		bucket := age / 7
		if bucket < weeks {
			counts[bucket]++
		}
	}
	return counts
}
