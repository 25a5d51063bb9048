package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/catalog"
	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/engine"
	"courtsense/training-app/internal/repository"
)

// --- Error Definitions ---
var (
	ErrArcNotFound        = errors.New("arc not found in catalog")
	ErrArcAlreadyOpen     = errors.New("child already has an active or paused arc")
	ErrNoOpenEnrollment   = errors.New("child has no active or paused arc")
	ErrEnrollmentNotOwned = errors.New("enrollment does not belong to this child")
)

// ArcProgress is the rendered view of a child's standing in their current arc.
type ArcProgress struct {
	Enrollment      domain.ArcEnrollment `json:"enrollment"`
	Arc             catalog.Arc          `json:"arc"`
	DayIndex        int                  `json:"dayIndex"`
	ProgressPercent int                  `json:"progressPercent"`
}

// NextArc is the suggestion shown after a completion. AllComplete is the
// valid terminal state once every arc is done.
type NextArc struct {
	ArcID       catalog.ArcID `json:"arcId,omitempty"`
	AllComplete bool          `json:"allComplete"`
}

// --- Service Interface ---
type ArcService interface {
	ListArcs(ctx context.Context) []catalog.Arc
	StartArc(ctx context.Context, childID primitive.ObjectID, arcID catalog.ArcID) (*domain.ArcEnrollment, error)
	PauseArc(ctx context.Context, childID primitive.ObjectID) (*domain.ArcEnrollment, error)
	ResumeArc(ctx context.Context, childID primitive.ObjectID) (*domain.ArcEnrollment, error)
	// GetProgress returns the open enrollment's progress, or ErrNoOpenEnrollment.
	GetProgress(ctx context.Context, childID primitive.ObjectID, now time.Time) (*ArcProgress, error)
	// SuggestNextArc picks the first uncompleted arc in catalog order.
	SuggestNextArc(ctx context.Context, childID primitive.ObjectID) (NextArc, error)
}

// --- Service Implementation ---

type arcService struct {
	enrollmentRepo repository.EnrollmentRepository
}

// NewArcService creates a new instance of arcService.
func NewArcService(enrollmentRepo repository.EnrollmentRepository) ArcService {
	return &arcService{enrollmentRepo: enrollmentRepo}
}

func (s *arcService) ListArcs(ctx context.Context) []catalog.Arc {
	return catalog.Arcs()
}

// StartArc enrolls a child into an arc. Re-enrolling in a completed arc
// creates a fresh record; a second open enrollment is rejected.
func (s *arcService) StartArc(ctx context.Context, childID primitive.ObjectID, arcID catalog.ArcID) (*domain.ArcEnrollment, error) {
	if childID == primitive.NilObjectID {
		return nil, errors.New("child ID is required")
	}
	if _, ok := catalog.ArcByID(arcID); !ok {
		return nil, ErrArcNotFound
	}

	open, err := s.openEnrollment(ctx, childID)
	if err != nil && !errors.Is(err, ErrNoOpenEnrollment) {
		return nil, err
	}
	if open != nil {
		return nil, ErrArcAlreadyOpen
	}

	enrollment := &domain.ArcEnrollment{
		ChildID:   childID,
		ArcID:     string(arcID),
		Status:    domain.EnrollmentActive,
		StartedAt: time.Now().UTC(),
	}

	enrollmentID, err := s.enrollmentRepo.Create(ctx, enrollment)
	if err != nil {
		// The partial unique index also guards the race between the open
		// check and this insert.
		return nil, err
	}
	enrollment.ID = enrollmentID
	return enrollment, nil
}

func (s *arcService) PauseArc(ctx context.Context, childID primitive.ObjectID) (*domain.ArcEnrollment, error) {
	enrollment, err := s.openEnrollment(ctx, childID)
	if err != nil {
		return nil, err
	}

	updated, err := engine.Pause(*enrollment, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *arcService) ResumeArc(ctx context.Context, childID primitive.ObjectID) (*domain.ArcEnrollment, error) {
	enrollment, err := s.openEnrollment(ctx, childID)
	if err != nil {
		return nil, err
	}

	updated, err := engine.Resume(*enrollment, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.enrollmentRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *arcService) GetProgress(ctx context.Context, childID primitive.ObjectID, now time.Time) (*ArcProgress, error) {
	enrollment, err := s.openEnrollment(ctx, childID)
	if err != nil {
		return nil, err
	}

	arc, ok := catalog.ArcByID(catalog.ArcID(enrollment.ArcID))
	if !ok {
		return nil, &engine.InvariantViolationError{
			Msg: fmt.Sprintf("enrollment %s references unknown arc %q", enrollment.ID.Hex(), enrollment.ArcID),
		}
	}

	dayIndex := engine.DayIndex(*enrollment, now)
	return &ArcProgress{
		Enrollment:      *enrollment,
		Arc:             arc,
		DayIndex:        dayIndex,
		ProgressPercent: engine.ProgressPercent(dayIndex, arc),
	}, nil
}

func (s *arcService) SuggestNextArc(ctx context.Context, childID primitive.ObjectID) (NextArc, error) {
	completedIDs, err := s.enrollmentRepo.GetCompletedArcIDs(ctx, childID)
	if err != nil {
		return NextArc{}, err
	}

	completed := make(map[catalog.ArcID]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[catalog.ArcID(id)] = true
	}

	next, ok := engine.NextSuggestedArc(completed)
	if !ok {
		return NextArc{AllComplete: true}, nil
	}
	return NextArc{ArcID: next}, nil
}

// openEnrollment fetches the single active-or-paused enrollment. Two open
// enrollments is an upstream data bug, surfaced as an invariant violation
// rather than guessing which record is authoritative.
func (s *arcService) openEnrollment(ctx context.Context, childID primitive.ObjectID) (*domain.ArcEnrollment, error) {
	open, err := s.enrollmentRepo.GetOpenByChildID(ctx, childID)
	if err != nil {
		return nil, err
	}
	switch len(open) {
	case 0:
		return nil, ErrNoOpenEnrollment
	case 1:
		return &open[0], nil
	default:
		return nil, &engine.InvariantViolationError{
			Msg: fmt.Sprintf("child %s has %d open enrollments", childID.Hex(), len(open)),
		}
	}
}
