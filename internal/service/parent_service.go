package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/repository"
)

// --- Error Definitions ---
var ErrInvalidSettings = errors.New("invalid child settings")

// ChildOverview is the parent-facing summary of one child's training state.
type ChildOverview struct {
	Child       *domain.User `json:"child"`
	Progress    *ArcProgress `json:"progress,omitempty"` // nil when no open arc
	Consistency *Consistency `json:"consistency"`
}

// --- Service Interface ---
type ParentService interface {
	GetChildren(ctx context.Context, parentID primitive.ObjectID) ([]domain.User, error)

	// UpdateChildSettings replaces a child's parent-managed settings. The
	// child must belong to the calling parent.
	UpdateChildSettings(ctx context.Context, parentID, childID primitive.ObjectID, settings domain.ChildSettings) (*domain.User, error)

	// GetChildOverview bundles the child's arc progress and consistency stats
	// for the parent dashboard.
	GetChildOverview(ctx context.Context, parentID, childID primitive.ObjectID, now time.Time) (*ChildOverview, error)

	// VerifyChildOwnership confirms the child belongs to the parent. Used by
	// handlers that then act on the child's behalf.
	VerifyChildOwnership(ctx context.Context, parentID, childID primitive.ObjectID) error
}

// --- Service Implementation ---

type parentService struct {
	userRepo       repository.UserRepository
	arcService     ArcService
	sessionService SessionService
}

// NewParentService creates a new instance of parentService.
func NewParentService(userRepo repository.UserRepository, arcService ArcService, sessionService SessionService) ParentService {
	return &parentService{
		userRepo:       userRepo,
		arcService:     arcService,
		sessionService: sessionService,
	}
}

func (s *parentService) GetChildren(ctx context.Context, parentID primitive.ObjectID) ([]domain.User, error) {
	return s.userRepo.GetChildrenByParentID(ctx, parentID)
}

func (s *parentService) UpdateChildSettings(ctx context.Context, parentID, childID primitive.ObjectID, settings domain.ChildSettings) (*domain.User, error) {
	if settings.MaxDailyMinutes < 0 {
		return nil, ErrInvalidSettings
	}

	child, err := s.ownedChild(ctx, parentID, childID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateChildSettings(ctx, childID, settings); err != nil {
		return nil, err
	}
	child.Settings = &settings
	return child, nil
}

func (s *parentService) GetChildOverview(ctx context.Context, parentID, childID primitive.ObjectID, now time.Time) (*ChildOverview, error) {
	child, err := s.ownedChild(ctx, parentID, childID)
	if err != nil {
		return nil, err
	}

	overview := &ChildOverview{Child: child}

	progress, err := s.arcService.GetProgress(ctx, childID, now)
	if err != nil && !errors.Is(err, ErrNoOpenEnrollment) {
		return nil, err
	}
	overview.Progress = progress

	consistency, err := s.sessionService.GetConsistency(ctx, childID, 4, now)
	if err != nil {
		return nil, err
	}
	overview.Consistency = consistency

	return overview, nil
}

func (s *parentService) VerifyChildOwnership(ctx context.Context, parentID, childID primitive.ObjectID) error {
	_, err := s.ownedChild(ctx, parentID, childID)
	return err
}

// ownedChild loads a child profile and verifies the parent linkage.
func (s *parentService) ownedChild(ctx context.Context, parentID, childID primitive.ObjectID) (*domain.User, error) {
	child, err := s.userRepo.GetByID(ctx, childID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrChildNotFound
		}
		return nil, err
	}
	if !child.IsChild() || child.ParentID == nil || *child.ParentID != parentID {
		return nil, ErrNotYourChild
	}
	return child, nil
}
