package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/engine"
	"courtsense/training-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrCheckInNotFound = errors.New("check-in not found")
	ErrCheckInNotOwned = errors.New("check-in does not belong to this child")
	ErrInvalidRating   = errors.New("quality rating must be between 1 and 5")
	ErrNoCheckInToday  = errors.New("no check-in logged for today")
)

// --- Service Interface ---
type CheckInService interface {
	// SubmitCheckIn classifies the self-report and persists the check-in with
	// its mode result embedded. Re-submitting the same day is allowed; the
	// latest check-in wins for plan generation.
	SubmitCheckIn(ctx context.Context, childID primitive.ObjectID, data engine.CheckInData) (*domain.CheckIn, error)

	// GetTodayCheckIn returns the latest check-in for the calendar day of now.
	GetTodayCheckIn(ctx context.Context, childID primitive.ObjectID, now time.Time) (*domain.CheckIn, error)

	// RateQuality records the optional after-session quality amendment, the
	// only mutation a check-in ever receives.
	RateQuality(ctx context.Context, childID, checkInID primitive.ObjectID, rating int) error
}

// --- Service Implementation ---

type checkInService struct {
	checkInRepo repository.CheckInRepository
}

// NewCheckInService creates a new instance of checkInService.
func NewCheckInService(checkInRepo repository.CheckInRepository) CheckInService {
	return &checkInService{checkInRepo: checkInRepo}
}

func (s *checkInService) SubmitCheckIn(ctx context.Context, childID primitive.ObjectID, data engine.CheckInData) (*domain.CheckIn, error) {
	if childID == primitive.NilObjectID {
		return nil, errors.New("child ID is required")
	}

	// Classification validates the input; out-of-range fields are rejected
	// here, never clamped.
	result, err := engine.Classify(data)
	if err != nil {
		return nil, err
	}

	checkIn := &domain.CheckIn{
		ChildID:              childID,
		Energy:               data.Energy,
		Soreness:             data.Soreness,
		Focus:                data.Focus,
		Mood:                 data.Mood,
		TimeAvailableMinutes: data.TimeAvailableMinutes,
		PainFlag:             data.PainFlag,
		ModeResult:           result,
	}

	checkInID, err := s.checkInRepo.Create(ctx, checkIn)
	if err != nil {
		return nil, err
	}
	checkIn.ID = checkInID
	return checkIn, nil
}

func (s *checkInService) GetTodayCheckIn(ctx context.Context, childID primitive.ObjectID, now time.Time) (*domain.CheckIn, error) {
	dayStart, dayEnd := dayBounds(now)
	checkIn, err := s.checkInRepo.GetLatestForDay(ctx, childID, dayStart, dayEnd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoCheckInToday
		}
		return nil, err
	}
	return checkIn, nil
}

func (s *checkInService) RateQuality(ctx context.Context, childID, checkInID primitive.ObjectID, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}

	checkIn, err := s.checkInRepo.GetByID(ctx, checkInID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCheckInNotFound
		}
		return err
	}
	if checkIn.ChildID != childID {
		return ErrCheckInNotOwned
	}

	return s.checkInRepo.SetQualityRating(ctx, checkInID, rating)
}

// dayBounds returns the UTC calendar-day window [start, end) containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}
