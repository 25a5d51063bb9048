package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"courtsense/training-app/internal/domain"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	AddChildIDToParent(ctx context.Context, parentID, childID primitive.ObjectID) error
	GetChildrenByParentID(ctx context.Context, parentID primitive.ObjectID) ([]domain.User, error)
	UpdateChildSettings(ctx context.Context, childID primitive.ObjectID, settings domain.ChildSettings) error
}

// CheckInRepository defines the interface for interacting with check-in data.
// The store may hold multiple check-ins per day; the most recent wins for
// plan generation.
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CheckIn, error)
	// GetLatestForDay returns the most recent check-in whose createdAt falls
	// within [dayStart, dayEnd).
	GetLatestForDay(ctx context.Context, childID primitive.ObjectID, dayStart, dayEnd time.Time) (*domain.CheckIn, error)
	SetQualityRating(ctx context.Context, id primitive.ObjectID, rating int) error
}

// EnrollmentRepository defines the interface for interacting with arc
// enrollment data. The store enforces at most one active-or-paused enrollment
// per child via a partial unique index.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.ArcEnrollment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ArcEnrollment, error)
	// GetOpenByChildID returns every active or paused enrollment. More than
	// one element is an upstream invariant violation the caller must surface.
	GetOpenByChildID(ctx context.Context, childID primitive.ObjectID) ([]domain.ArcEnrollment, error)
	GetCompletedArcIDs(ctx context.Context, childID primitive.ObjectID) ([]string, error)
	Update(ctx context.Context, enrollment *domain.ArcEnrollment) error
}

// SessionRepository defines the interface for interacting with logged
// training sessions. Sessions are immutable once created.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.TrainingSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingSession, error)
	ListRecentByChildID(ctx context.Context, childID primitive.ObjectID, limit int) ([]domain.TrainingSession, error)
	ListDatesByChildID(ctx context.Context, childID primitive.ObjectID, since time.Time) ([]time.Time, error)
	SetHighlightID(ctx context.Context, sessionID, highlightID primitive.ObjectID) error
}

// HighlightRepository defines the interface for interacting with highlight
// clip metadata.
type HighlightRepository interface {
	Create(ctx context.Context, highlight *domain.Highlight) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Highlight, error)
	GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) (*domain.Highlight, error)
}
