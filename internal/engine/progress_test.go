package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/catalog"
	"courtsense/training-app/internal/domain"
)

var t0 = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func day(n int) time.Time { return t0.AddDate(0, 0, n) }

func enrollment(arcID catalog.ArcID, start time.Time) domain.ArcEnrollment {
	return domain.ArcEnrollment{
		ID:        primitive.NewObjectID(),
		ChildID:   primitive.NewObjectID(),
		ArcID:     string(arcID),
		Status:    domain.EnrollmentActive,
		StartedAt: start,
	}
}

func TestDayIndex(t *testing.T) {
	e := enrollment(catalog.ArcFoundations, t0)

	assert.Equal(t, 0, DayIndex(e, t0))
	assert.Equal(t, 0, DayIndex(e, t0.Add(5*time.Hour)))
	assert.Equal(t, 1, DayIndex(e, day(1)))
	assert.Equal(t, 10, DayIndex(e, day(10)))

	// A start in the future never yields a negative index.
	future := enrollment(catalog.ArcFoundations, day(3))
	assert.Equal(t, 0, DayIndex(future, t0))
}

// Pause fairness: an enrollment paused for D days reads exactly D lower than
// it would have without the pause, at any later time.
func TestDayIndexExcludesPausedDays(t *testing.T) {
	e := enrollment(catalog.ArcBallControl, t0)

	paused, err := Pause(e, day(3))
	require.NoError(t, err)
	resumed, err := Resume(paused, day(6))
	require.NoError(t, err)

	baseline := enrollment(catalog.ArcBallControl, t0)
	for _, n := range []int{6, 7, 10, 30} {
		assert.Equal(t, DayIndex(baseline, day(n))-3, DayIndex(resumed, day(n)), "at day %d", n)
	}
}

func TestDayIndexCountsOpenPauseWindow(t *testing.T) {
	e := enrollment(catalog.ArcBallControl, t0)
	paused, err := Pause(e, day(4))
	require.NoError(t, err)

	// Still paused: index is frozen at the pause-day value.
	assert.Equal(t, 4, DayIndex(paused, day(4)))
	assert.Equal(t, 4, DayIndex(paused, day(9)))
}

func TestDayIndexSumsMultiplePauses(t *testing.T) {
	e := enrollment(catalog.ArcCourtVision, t0)
	e, err := Pause(e, day(2))
	require.NoError(t, err)
	e, err = Resume(e, day(4))
	require.NoError(t, err)
	e, err = Pause(e, day(7))
	require.NoError(t, err)
	e, err = Resume(e, day(10))
	require.NoError(t, err)

	// 12 elapsed days minus 2+3 paused.
	assert.Equal(t, 7, DayIndex(e, day(12)))
}

func TestPauseResumeTransitions(t *testing.T) {
	e := enrollment(catalog.ArcFoundations, t0)

	_, err := Resume(e, day(1))
	assert.Error(t, err, "resume of an active enrollment must fail")

	paused, err := Pause(e, day(1))
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentPaused, paused.Status)

	_, err = Pause(paused, day(2))
	assert.Error(t, err, "double pause must fail")

	resumed, err := Resume(paused, day(2))
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentActive, resumed.Status)
	require.Len(t, resumed.Pauses, 1)
	assert.NotNil(t, resumed.Pauses[0].ResumedAt)
}

func TestProgressPercent(t *testing.T) {
	arc, ok := catalog.ArcByID(catalog.ArcFoundations) // 7 days
	require.True(t, ok)

	assert.Equal(t, 14, ProgressPercent(0, arc))
	assert.Equal(t, 57, ProgressPercent(3, arc))
	assert.Equal(t, 100, ProgressPercent(6, arc))
	assert.Equal(t, 100, ProgressPercent(40, arc), "clamped past the end")
}

func TestCompleteIfEligible(t *testing.T) {
	arc, ok := catalog.ArcByID(catalog.ArcFoundations) // 7 days, includes form_shooting
	require.True(t, ok)

	sessionOn := func(d time.Time, drill catalog.DrillID) domain.TrainingSession {
		return domain.TrainingSession{DrillID: string(drill), EffortLevel: 5, CreatedAt: d}
	}

	t.Run("elapsed time alone never completes", func(t *testing.T) {
		e := enrollment(catalog.ArcFoundations, t0)
		got, done := CompleteIfEligible(e, arc, nil, day(20))
		assert.False(t, done)
		assert.Equal(t, domain.EnrollmentActive, got.Status)
	})

	t.Run("session with arc content on the final day completes", func(t *testing.T) {
		e := enrollment(catalog.ArcFoundations, t0)
		sessions := []domain.TrainingSession{sessionOn(day(6), catalog.DrillFormShooting)}
		got, done := CompleteIfEligible(e, arc, sessions, day(7))
		assert.True(t, done)
		assert.Equal(t, domain.EnrollmentCompleted, got.Status)
		require.NotNil(t, got.CompletedAt)
	})

	t.Run("session before the final day does not complete", func(t *testing.T) {
		e := enrollment(catalog.ArcFoundations, t0)
		sessions := []domain.TrainingSession{sessionOn(day(2), catalog.DrillFormShooting)}
		_, done := CompleteIfEligible(e, arc, sessions, day(8))
		assert.False(t, done)
	})

	t.Run("session with unrelated drill does not complete", func(t *testing.T) {
		e := enrollment(catalog.ArcFoundations, t0)
		sessions := []domain.TrainingSession{sessionOn(day(6), catalog.DrillDefensiveSlides)}
		_, done := CompleteIfEligible(e, arc, sessions, day(7))
		assert.False(t, done)
	})

	t.Run("not enough elapsed days", func(t *testing.T) {
		e := enrollment(catalog.ArcFoundations, t0)
		sessions := []domain.TrainingSession{sessionOn(day(3), catalog.DrillFormShooting)}
		_, done := CompleteIfEligible(e, arc, sessions, day(3))
		assert.False(t, done)
	})

	t.Run("paused enrollment never completes", func(t *testing.T) {
		e := enrollment(catalog.ArcFoundations, t0)
		paused, err := Pause(e, day(6))
		require.NoError(t, err)
		sessions := []domain.TrainingSession{sessionOn(day(6), catalog.DrillFormShooting)}
		_, done := CompleteIfEligible(paused, arc, sessions, day(10))
		assert.False(t, done)
	})
}

func TestNextSuggestedArc(t *testing.T) {
	next, ok := NextSuggestedArc(nil)
	require.True(t, ok)
	assert.Equal(t, catalog.ArcFoundations, next, "first arc in default order when nothing is complete")

	next, ok = NextSuggestedArc(map[catalog.ArcID]bool{catalog.ArcFoundations: true})
	require.True(t, ok)
	assert.Equal(t, catalog.ArcBallControl, next)

	all := make(map[catalog.ArcID]bool)
	for _, id := range catalog.DefaultArcOrder() {
		all[id] = true
	}
	_, ok = NextSuggestedArc(all)
	assert.False(t, ok, "all arcs complete is a valid terminal state")
}
