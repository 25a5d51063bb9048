package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EnrollmentStatus type for arc enrollment lifecycle
type EnrollmentStatus string

const (
	EnrollmentInactive  EnrollmentStatus = "inactive"
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentPaused    EnrollmentStatus = "paused"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// PauseWindow records one pause/resume cycle. ResumedAt is nil while the
// enrollment is still paused.
type PauseWindow struct {
	PausedAt  time.Time  `bson:"pausedAt" json:"pausedAt"`
	ResumedAt *time.Time `bson:"resumedAt,omitempty" json:"resumedAt,omitempty"`
}

// ArcEnrollment is a child's relationship to one Arc instance. At most one
// enrollment per child may be active or paused at a time (store-enforced).
// Re-enrolling in a completed arc creates a new record, never a mutation.
type ArcEnrollment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChildID     primitive.ObjectID `bson:"childId" json:"childId"`
	ArcID       string             `bson:"arcId" json:"arcId"` // catalog.ArcID value
	Status      EnrollmentStatus   `bson:"status" json:"status"`
	StartedAt   time.Time          `bson:"startedAt" json:"startedAt"`
	Pauses      []PauseWindow      `bson:"pauses,omitempty" json:"pauses,omitempty"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}
