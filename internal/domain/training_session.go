package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bounds for the free-text lists a child attaches to a session.
const (
	MaxSessionListEntries    = 3
	MaxSessionListEntryChars = 60
)

// TrainingSession is a logged completed activity. Immutable once created;
// deleted only via the account-deletion cascade.
type TrainingSession struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	ChildID         primitive.ObjectID  `bson:"childId" json:"childId"`
	DrillID         string              `bson:"drillId,omitempty" json:"drillId,omitempty"` // catalog.DrillID value, optional
	ActivityType    string              `bson:"activityType,omitempty" json:"activityType,omitempty"`
	EffortLevel     int                 `bson:"effortLevel" json:"effortLevel"` // 1-10 RPE-like scale
	Mood            Mood                `bson:"mood" json:"mood"`
	DurationMinutes int                 `bson:"durationMinutes" json:"durationMinutes"`
	Wins            []string            `bson:"wins,omitempty" json:"wins,omitempty"`
	FocusAreas      []string            `bson:"focusAreas,omitempty" json:"focusAreas,omitempty"`
	HighlightID     *primitive.ObjectID `bson:"highlightId,omitempty" json:"highlightId,omitempty"` // optional clip
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}
