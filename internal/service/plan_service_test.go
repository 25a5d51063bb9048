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
	"courtsense/training-app/internal/engine"
	"courtsense/training-app/internal/repository"
)

// fakeUserRepo is an in-memory UserRepository for service tests.
type fakeUserRepo struct {
	users []*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	stored := *user
	stored.ID = primitive.NewObjectID()
	f.users = append(f.users, &stored)
	return stored.ID, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUserRepo) AddChildIDToParent(_ context.Context, parentID, childID primitive.ObjectID) error {
	for _, u := range f.users {
		if u.ID == parentID {
			u.ChildIDs = append(u.ChildIDs, childID)
			return nil
		}
	}
	return repository.ErrUpdateFailed
}

func (f *fakeUserRepo) GetChildrenByParentID(_ context.Context, parentID primitive.ObjectID) ([]domain.User, error) {
	var children []domain.User
	for _, u := range f.users {
		if u.ParentID != nil && *u.ParentID == parentID {
			children = append(children, *u)
		}
	}
	return children, nil
}

func (f *fakeUserRepo) UpdateChildSettings(_ context.Context, childID primitive.ObjectID, settings domain.ChildSettings) error {
	for _, u := range f.users {
		if u.ID == childID {
			s := settings
			u.Settings = &s
			return nil
		}
	}
	return repository.ErrUpdateFailed
}

// fakeSessionRepo is an in-memory SessionRepository for service tests.
type fakeSessionRepo struct {
	sessions []*domain.TrainingSession
}

func (f *fakeSessionRepo) Create(_ context.Context, session *domain.TrainingSession) (primitive.ObjectID, error) {
	stored := *session
	stored.ID = primitive.NewObjectID()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	f.sessions = append(f.sessions, &stored)
	return stored.ID, nil
}

func (f *fakeSessionRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingSession, error) {
	for _, s := range f.sessions {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeSessionRepo) ListRecentByChildID(_ context.Context, childID primitive.ObjectID, limit int) ([]domain.TrainingSession, error) {
	var out []domain.TrainingSession
	for i := len(f.sessions) - 1; i >= 0 && len(out) < limit; i-- {
		if f.sessions[i].ChildID == childID {
			out = append(out, *f.sessions[i])
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListDatesByChildID(_ context.Context, childID primitive.ObjectID, since time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, s := range f.sessions {
		if s.ChildID == childID && !s.CreatedAt.Before(since) {
			out = append(out, s.CreatedAt)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) SetHighlightID(_ context.Context, sessionID, highlightID primitive.ObjectID) error {
	for _, s := range f.sessions {
		if s.ID == sessionID {
			id := highlightID
			s.HighlightID = &id
			return nil
		}
	}
	return repository.ErrUpdateFailed
}

func newPlanFixture(t *testing.T) (PlanService, *fakeUserRepo, *fakeCheckInRepo, *fakeEnrollmentRepo, *fakeSessionRepo, primitive.ObjectID) {
	t.Helper()
	userRepo := &fakeUserRepo{}
	checkInRepo := &fakeCheckInRepo{}
	enrollmentRepo := &fakeEnrollmentRepo{}
	sessionRepo := &fakeSessionRepo{}

	childID, err := userRepo.Create(context.Background(), &domain.User{
		Name: "Jules",
		Role: domain.RoleChild,
	})
	require.NoError(t, err)

	svc := NewPlanService(userRepo, checkInRepo, enrollmentRepo, sessionRepo)
	return svc, userRepo, checkInRepo, enrollmentRepo, sessionRepo, childID
}

func TestGetTodayPlanRequiresCheckIn(t *testing.T) {
	svc, _, _, _, _, childID := newPlanFixture(t)

	_, err := svc.GetTodayPlan(context.Background(), childID, time.Now().UTC())
	assert.ErrorIs(t, err, ErrNoCheckInToday)
}

func TestGetTodayPlanWithActiveArc(t *testing.T) {
	svc, _, checkInRepo, enrollmentRepo, _, childID := newPlanFixture(t)
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	_, err := checkInRepo.Create(context.Background(), &domain.CheckIn{
		ChildID:              childID,
		Energy:               3,
		Soreness:             domain.SorenessLight,
		Focus:                3,
		Mood:                 domain.MoodOkay,
		TimeAvailableMinutes: 30,
		CreatedAt:            now.Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	_, err = enrollmentRepo.Create(context.Background(), &domain.ArcEnrollment{
		ChildID:   childID,
		ArcID:     string(catalog.ArcFoundations),
		Status:    domain.EnrollmentActive,
		StartedAt: now,
	})
	require.NoError(t, err)

	plan, err := svc.GetTodayPlan(context.Background(), childID, now)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeNormal, plan.Mode)
	assert.Equal(t, string(catalog.ArcFoundations), plan.ArcID)
	assert.NotEmpty(t, plan.Items)
}

func TestGetTodayPlanTwoActiveEnrollmentsFailsFast(t *testing.T) {
	svc, _, checkInRepo, enrollmentRepo, _, childID := newPlanFixture(t)
	now := time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC)

	_, err := checkInRepo.Create(context.Background(), &domain.CheckIn{
		ChildID:              childID,
		Energy:               3,
		Soreness:             domain.SorenessLight,
		Focus:                3,
		Mood:                 domain.MoodOkay,
		TimeAvailableMinutes: 30,
		CreatedAt:            now.Add(-2 * time.Hour),
	})
	require.NoError(t, err)

	// Two active enrollments can only come from a store bug; the plan must
	// refuse rather than pick one.
	for _, arcID := range []catalog.ArcID{catalog.ArcFoundations, catalog.ArcBallControl} {
		enrollmentRepo.enrollments = append(enrollmentRepo.enrollments, &domain.ArcEnrollment{
			ID:        primitive.NewObjectID(),
			ChildID:   childID,
			ArcID:     string(arcID),
			Status:    domain.EnrollmentActive,
			StartedAt: now,
		})
	}

	_, err = svc.GetTodayPlan(context.Background(), childID, now)
	require.Error(t, err)
	assert.True(t, engine.IsInvariantViolation(err))
}
