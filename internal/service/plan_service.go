package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/engine"
	"courtsense/training-app/internal/repository"
)

// How many recent sessions feed the variety rule.
const planSessionLookback = 5

// --- Service Interface ---
type PlanService interface {
	// GetTodayPlan assembles the child's adaptive plan for the calendar day
	// of now. Requires a check-in from that day.
	GetTodayPlan(ctx context.Context, childID primitive.ObjectID, now time.Time) (*engine.DailyPlan, error)
}

// --- Service Implementation ---

type planService struct {
	userRepo       repository.UserRepository
	checkInRepo    repository.CheckInRepository
	enrollmentRepo repository.EnrollmentRepository
	sessionRepo    repository.SessionRepository
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	userRepo repository.UserRepository,
	checkInRepo repository.CheckInRepository,
	enrollmentRepo repository.EnrollmentRepository,
	sessionRepo repository.SessionRepository,
) PlanService {
	return &planService{
		userRepo:       userRepo,
		checkInRepo:    checkInRepo,
		enrollmentRepo: enrollmentRepo,
		sessionRepo:    sessionRepo,
	}
}

func (s *planService) GetTodayPlan(ctx context.Context, childID primitive.ObjectID, now time.Time) (*engine.DailyPlan, error) {
	child, err := s.userRepo.GetByID(ctx, childID)
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd := dayBounds(now)
	checkIn, err := s.checkInRepo.GetLatestForDay(ctx, childID, dayStart, dayEnd)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoCheckInToday
		}
		return nil, err
	}

	enrollment, err := s.activeEnrollment(ctx, childID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessionRepo.ListRecentByChildID(ctx, childID, planSessionLookback)
	if err != nil {
		return nil, err
	}

	since := now.AddDate(0, 0, -consistencyHistoryDays)
	dates, err := s.sessionRepo.ListDatesByChildID(ctx, childID, since)
	if err != nil {
		return nil, err
	}

	plan, err := engine.BuildTodayPlan(engine.PlanRequest{
		CheckIn:        checkIn,
		Enrollment:     enrollment,
		RecentSessions: sessions,
		Settings:       child.Settings,
		Streak:         engine.CalculateStreak(dates, now),
		Now:            now,
	})
	if err != nil {
		if errors.Is(err, engine.ErrNoCheckIn) {
			return nil, ErrNoCheckInToday
		}
		return nil, err
	}
	return &plan, nil
}

// activeEnrollment returns the child's active enrollment, or nil when there
// is none. A paused enrollment contributes no arc content to the plan. Two
// open enrollments is an upstream data bug; fail fast rather than guess
// which record drives the plan.
func (s *planService) activeEnrollment(ctx context.Context, childID primitive.ObjectID) (*domain.ArcEnrollment, error) {
	open, err := s.enrollmentRepo.GetOpenByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if len(open) > 1 {
		return nil, &engine.InvariantViolationError{
			Msg: fmt.Sprintf("child %s has %d open enrollments", childID.Hex(), len(open)),
		}
	}
	for i := range open {
		if open[i].Status == domain.EnrollmentActive {
			return &open[i], nil
		}
	}
	return nil, nil
}
