package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/catalog"
	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/repository"
)

// fakeEnrollmentRepo is an in-memory EnrollmentRepository for service tests.
type fakeEnrollmentRepo struct {
	enrollments []*domain.ArcEnrollment
}

func (f *fakeEnrollmentRepo) Create(_ context.Context, enrollment *domain.ArcEnrollment) (primitive.ObjectID, error) {
	stored := *enrollment
	stored.ID = primitive.NewObjectID()
	f.enrollments = append(f.enrollments, &stored)
	return stored.ID, nil
}

func (f *fakeEnrollmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.ArcEnrollment, error) {
	for _, e := range f.enrollments {
		if e.ID == id {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeEnrollmentRepo) GetOpenByChildID(_ context.Context, childID primitive.ObjectID) ([]domain.ArcEnrollment, error) {
	var open []domain.ArcEnrollment
	for _, e := range f.enrollments {
		if e.ChildID != childID {
			continue
		}
		if e.Status == domain.EnrollmentActive || e.Status == domain.EnrollmentPaused {
			open = append(open, *e)
		}
	}
	return open, nil
}

func (f *fakeEnrollmentRepo) GetCompletedArcIDs(_ context.Context, childID primitive.ObjectID) ([]string, error) {
	var ids []string
	for _, e := range f.enrollments {
		if e.ChildID == childID && e.Status == domain.EnrollmentCompleted {
			ids = append(ids, e.ArcID)
		}
	}
	return ids, nil
}

func (f *fakeEnrollmentRepo) Update(_ context.Context, enrollment *domain.ArcEnrollment) error {
	for i, e := range f.enrollments {
		if e.ID == enrollment.ID {
			copied := *enrollment
			f.enrollments[i] = &copied
			return nil
		}
	}
	return repository.ErrUpdateFailed
}

func TestStartArc(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewArcService(repo)
	childID := primitive.NewObjectID()

	t.Run("unknown arc", func(t *testing.T) {
		_, err := svc.StartArc(context.Background(), childID, "dunk_academy")
		assert.ErrorIs(t, err, ErrArcNotFound)
	})

	t.Run("first enrollment", func(t *testing.T) {
		enrollment, err := svc.StartArc(context.Background(), childID, catalog.ArcFoundations)
		require.NoError(t, err)
		assert.Equal(t, domain.EnrollmentActive, enrollment.Status)
		assert.Equal(t, string(catalog.ArcFoundations), enrollment.ArcID)
		assert.False(t, enrollment.ID.IsZero())
	})

	t.Run("second open arc rejected", func(t *testing.T) {
		_, err := svc.StartArc(context.Background(), childID, catalog.ArcBallControl)
		assert.ErrorIs(t, err, ErrArcAlreadyOpen)
	})

	t.Run("paused arc still blocks", func(t *testing.T) {
		_, err := svc.PauseArc(context.Background(), childID)
		require.NoError(t, err)

		_, err = svc.StartArc(context.Background(), childID, catalog.ArcBallControl)
		assert.ErrorIs(t, err, ErrArcAlreadyOpen)
	})
}

func TestPauseResumeLifecycle(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewArcService(repo)
	childID := primitive.NewObjectID()

	_, err := svc.PauseArc(context.Background(), childID)
	assert.ErrorIs(t, err, ErrNoOpenEnrollment, "pause with nothing enrolled")

	_, err = svc.StartArc(context.Background(), childID, catalog.ArcFoundations)
	require.NoError(t, err)

	_, err = svc.ResumeArc(context.Background(), childID)
	require.Error(t, err, "resume an active arc")

	paused, err := svc.PauseArc(context.Background(), childID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentPaused, paused.Status)
	require.Len(t, paused.Pauses, 1)
	assert.Nil(t, paused.Pauses[0].ResumedAt)

	_, err = svc.PauseArc(context.Background(), childID)
	require.Error(t, err, "pause a paused arc")

	resumed, err := svc.ResumeArc(context.Background(), childID)
	require.NoError(t, err)
	assert.Equal(t, domain.EnrollmentActive, resumed.Status)
	require.Len(t, resumed.Pauses, 1)
	assert.NotNil(t, resumed.Pauses[0].ResumedAt)
}

func TestGetProgress(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewArcService(repo)
	childID := primitive.NewObjectID()
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	_, err := svc.GetProgress(context.Background(), childID, now)
	assert.ErrorIs(t, err, ErrNoOpenEnrollment)

	started, err := svc.StartArc(context.Background(), childID, catalog.ArcFoundations)
	require.NoError(t, err)

	// Backdate the start so three full days have elapsed.
	started.StartedAt = now.AddDate(0, 0, -3)
	require.NoError(t, repo.Update(context.Background(), started))

	progress, err := svc.GetProgress(context.Background(), childID, now)
	require.NoError(t, err)
	assert.Equal(t, catalog.ArcFoundations, progress.Arc.ID)
	assert.Equal(t, 3, progress.DayIndex)
	assert.Equal(t, 57, progress.ProgressPercent) // day 4 of 7
}

func TestSuggestNextArc(t *testing.T) {
	repo := &fakeEnrollmentRepo{}
	svc := NewArcService(repo)
	childID := primitive.NewObjectID()

	next, err := svc.SuggestNextArc(context.Background(), childID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ArcFoundations, next.ArcID)
	assert.False(t, next.AllComplete)

	completedAt := time.Now().UTC()
	repo.enrollments = append(repo.enrollments, &domain.ArcEnrollment{
		ID:          primitive.NewObjectID(),
		ChildID:     childID,
		ArcID:       string(catalog.ArcFoundations),
		Status:      domain.EnrollmentCompleted,
		CompletedAt: &completedAt,
	})

	next, err = svc.SuggestNextArc(context.Background(), childID)
	require.NoError(t, err)
	assert.Equal(t, catalog.ArcBallControl, next.ArcID)

	for _, arc := range catalog.Arcs() {
		repo.enrollments = append(repo.enrollments, &domain.ArcEnrollment{
			ID:          primitive.NewObjectID(),
			ChildID:     childID,
			ArcID:       string(arc.ID),
			Status:      domain.EnrollmentCompleted,
			CompletedAt: &completedAt,
		})
	}

	next, err = svc.SuggestNextArc(context.Background(), childID)
	require.NoError(t, err)
	assert.True(t, next.AllComplete)
	assert.Empty(t, next.ArcID)
}
