package engine

import (
	"fmt"
	"math"
	"time"

	"courtsense/training-app/internal/catalog"
	"courtsense/training-app/internal/domain"
)

// startOfDay truncates a timestamp to its UTC calendar day.
func startOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween returns whole calendar days from a to b (negative if b < a).
func daysBetween(a, b time.Time) int {
	return int(startOfDay(b).Sub(startOfDay(a)).Hours() / 24)
}

// pausedDays sums the whole-day spans of every pause window, counting a
// still-open window up to asOf.
func pausedDays(e domain.ArcEnrollment, asOf time.Time) int {
	total := 0
	for _, w := range e.Pauses {
		end := asOf
		if w.ResumedAt != nil {
			resumed := *w.ResumedAt
			if resumed.Before(asOf) {
				end = resumed
			}
		}
		if span := daysBetween(w.PausedAt, end); span > 0 {
			total += span
		}
	}
	return total
}

// DayIndex computes the arc-relative day number for an enrollment: whole
// calendar days elapsed since start, minus days spent paused, floored at 0.
// Pausing never advances the arc-relative day count.
func DayIndex(e domain.ArcEnrollment, asOf time.Time) int {
	idx := daysBetween(e.StartedAt, asOf) - pausedDays(e, asOf)
	if idx < 0 {
		return 0
	}
	return idx
}

// ProgressPercent maps a day index onto 0-100 against the arc's recommended
// duration.
func ProgressPercent(dayIndex int, arc catalog.Arc) int {
	days := float64(arc.RecommendedDurationDays)
	done := math.Min(float64(dayIndex+1), days)
	pct := int(math.Round(100 * done / days))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Pause transitions an active enrollment to paused, recording the window.
func Pause(e domain.ArcEnrollment, now time.Time) (domain.ArcEnrollment, error) {
	if e.Status != domain.EnrollmentActive {
		return e, fmt.Errorf("cannot pause enrollment in status %q", e.Status)
	}
	e.Status = domain.EnrollmentPaused
	e.Pauses = append(e.Pauses, domain.PauseWindow{PausedAt: now})
	return e, nil
}

// Resume transitions a paused enrollment back to active, closing the open
// pause window. The paused span is thereby excluded from day-index math.
func Resume(e domain.ArcEnrollment, now time.Time) (domain.ArcEnrollment, error) {
	if e.Status != domain.EnrollmentPaused {
		return e, fmt.Errorf("cannot resume enrollment in status %q", e.Status)
	}
	if len(e.Pauses) == 0 || e.Pauses[len(e.Pauses)-1].ResumedAt != nil {
		return e, &InvariantViolationError{Msg: "paused enrollment has no open pause window"}
	}
	resumed := now
	e.Pauses[len(e.Pauses)-1].ResumedAt = &resumed
	e.Status = domain.EnrollmentActive
	return e, nil
}

// CompleteIfEligible checks the completion rule and, when it holds, returns
// the enrollment transitioned to completed. Completion requires both elapsed
// time (dayIndex+1 >= recommended days) and actual engagement: at least one
// logged session referencing the arc's drill content on or after the final
// day. Elapsed time alone never completes an arc.
func CompleteIfEligible(e domain.ArcEnrollment, arc catalog.Arc, sessions []domain.TrainingSession, asOf time.Time) (domain.ArcEnrollment, bool) {
	if e.Status != domain.EnrollmentActive {
		return e, false
	}
	if DayIndex(e, asOf)+1 < arc.RecommendedDurationDays {
		return e, false
	}

	arcDrills := make(map[catalog.DrillID]bool, len(arc.DrillIDs))
	for _, id := range arc.DrillIDs {
		arcDrills[id] = true
	}

	finalDayIndex := arc.RecommendedDurationDays - 1
	for _, s := range sessions {
		if s.DrillID == "" || !arcDrills[catalog.DrillID(s.DrillID)] {
			continue
		}
		if DayIndex(e, s.CreatedAt) >= finalDayIndex {
			completedAt := asOf
			e.Status = domain.EnrollmentCompleted
			e.CompletedAt = &completedAt
			return e, true
		}
	}
	return e, false
}

// NextSuggestedArc picks the first arc in default catalog order that the
// child has not completed. The false return is the valid "all arcs complete"
// terminal state, not an error.
func NextSuggestedArc(completed map[catalog.ArcID]bool) (catalog.ArcID, bool) {
	for _, id := range catalog.DefaultArcOrder() {
		if !completed[id] {
			return id, true
		}
	}
	return "", false
}
