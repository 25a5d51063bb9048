package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/engine"
	"courtsense/training-app/internal/repository"
)

// fakeCheckInRepo is an in-memory CheckInRepository for service tests.
type fakeCheckInRepo struct {
	checkIns []*domain.CheckIn
}

func (f *fakeCheckInRepo) Create(_ context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	stored := *checkIn
	stored.ID = primitive.NewObjectID()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	f.checkIns = append(f.checkIns, &stored)
	return stored.ID, nil
}

func (f *fakeCheckInRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.CheckIn, error) {
	for _, c := range f.checkIns {
		if c.ID == id {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeCheckInRepo) GetLatestForDay(_ context.Context, childID primitive.ObjectID, dayStart, dayEnd time.Time) (*domain.CheckIn, error) {
	var latest *domain.CheckIn
	for _, c := range f.checkIns {
		if c.ChildID != childID {
			continue
		}
		if c.CreatedAt.Before(dayStart) || !c.CreatedAt.Before(dayEnd) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, repository.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (f *fakeCheckInRepo) SetQualityRating(_ context.Context, id primitive.ObjectID, rating int) error {
	for _, c := range f.checkIns {
		if c.ID == id {
			c.QualityRating = &rating
			return nil
		}
	}
	return repository.ErrUpdateFailed
}

func okayCheckInData() engine.CheckInData {
	return engine.CheckInData{
		Energy:               3,
		Soreness:             domain.SorenessLight,
		Focus:                3,
		Mood:                 domain.MoodOkay,
		TimeAvailableMinutes: 30,
	}
}

func TestSubmitCheckInPersistsModeResult(t *testing.T) {
	repo := &fakeCheckInRepo{}
	svc := NewCheckInService(repo)
	childID := primitive.NewObjectID()

	checkIn, err := svc.SubmitCheckIn(context.Background(), childID, okayCheckInData())
	require.NoError(t, err)
	require.NotNil(t, checkIn)

	assert.False(t, checkIn.ID.IsZero())
	assert.Equal(t, childID, checkIn.ChildID)
	assert.Equal(t, domain.ModeNormal, checkIn.ModeResult.Mode)
	assert.NotEmpty(t, checkIn.ModeResult.Explanation)
	require.Len(t, repo.checkIns, 1)
}

func TestSubmitCheckInRejectsInvalidInput(t *testing.T) {
	repo := &fakeCheckInRepo{}
	svc := NewCheckInService(repo)

	data := okayCheckInData()
	data.Energy = 9

	_, err := svc.SubmitCheckIn(context.Background(), primitive.NewObjectID(), data)
	require.Error(t, err)
	assert.True(t, engine.IsInvalidInput(err))
	assert.Empty(t, repo.checkIns, "invalid check-in must not be persisted")
}

func TestGetTodayCheckInLatestWins(t *testing.T) {
	repo := &fakeCheckInRepo{}
	svc := NewCheckInService(repo)
	childID := primitive.NewObjectID()
	now := time.Date(2026, 3, 20, 18, 0, 0, 0, time.UTC)

	morning := okayCheckInData()
	first, err := svc.SubmitCheckIn(context.Background(), childID, morning)
	require.NoError(t, err)
	repo.checkIns[0].CreatedAt = now.Add(-8 * time.Hour)

	evening := okayCheckInData()
	evening.Energy = 5
	evening.Focus = 5
	evening.Mood = domain.MoodExcited
	evening.Soreness = domain.SorenessNone
	second, err := svc.SubmitCheckIn(context.Background(), childID, evening)
	require.NoError(t, err)
	repo.checkIns[1].CreatedAt = now.Add(-1 * time.Hour)

	today, err := svc.GetTodayCheckIn(context.Background(), childID, now)
	require.NoError(t, err)
	assert.Equal(t, second.ID, today.ID)
	assert.NotEqual(t, first.ID, today.ID)
	assert.Equal(t, domain.ModePeak, today.ModeResult.Mode)
}

func TestGetTodayCheckInIgnoresYesterday(t *testing.T) {
	repo := &fakeCheckInRepo{}
	svc := NewCheckInService(repo)
	childID := primitive.NewObjectID()
	now := time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

	_, err := svc.SubmitCheckIn(context.Background(), childID, okayCheckInData())
	require.NoError(t, err)
	repo.checkIns[0].CreatedAt = now.AddDate(0, 0, -1)

	_, err = svc.GetTodayCheckIn(context.Background(), childID, now)
	assert.ErrorIs(t, err, ErrNoCheckInToday)
}

func TestRateQuality(t *testing.T) {
	repo := &fakeCheckInRepo{}
	svc := NewCheckInService(repo)
	childID := primitive.NewObjectID()

	checkIn, err := svc.SubmitCheckIn(context.Background(), childID, okayCheckInData())
	require.NoError(t, err)

	t.Run("out of range", func(t *testing.T) {
		err := svc.RateQuality(context.Background(), childID, checkIn.ID, 6)
		assert.ErrorIs(t, err, ErrInvalidRating)
	})

	t.Run("unknown check-in", func(t *testing.T) {
		err := svc.RateQuality(context.Background(), childID, primitive.NewObjectID(), 4)
		assert.ErrorIs(t, err, ErrCheckInNotFound)
	})

	t.Run("wrong child", func(t *testing.T) {
		err := svc.RateQuality(context.Background(), primitive.NewObjectID(), checkIn.ID, 4)
		assert.ErrorIs(t, err, ErrCheckInNotOwned)
	})

	t.Run("valid amendment", func(t *testing.T) {
		err := svc.RateQuality(context.Background(), childID, checkIn.ID, 4)
		require.NoError(t, err)

		stored, err := repo.GetByID(context.Background(), checkIn.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.QualityRating)
		assert.Equal(t, 4, *stored.QualityRating)
	})
}
