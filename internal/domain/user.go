package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

// Define constants for roles
const (
	RoleParent Role = "parent"
	RoleChild  Role = "child"
)

// ChildSettings holds the parent-managed permissions for a child account.
// Applied by the plan service on top of the session-mode adjustments.
type ChildSettings struct {
	MaxDailyMinutes        int  `bson:"maxDailyMinutes" json:"maxDailyMinutes"`               // 0 means no cap
	IntenseDrillsPermitted bool `bson:"intenseDrillsPermitted" json:"intenseDrillsPermitted"` // parent veto on high-intensity drills
}

// User represents a user in the system (either a Parent or a Child).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"` // Parents only; unique where present
	PasswordHash string             `bson:"passwordHash" json:"-"`                  // bcrypt of parent password or child passcode
	Role         Role               `bson:"role" json:"role"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Parent-specific ---
	// ObjectIDs of the child profiles managed by this parent.
	ChildIDs []primitive.ObjectID `bson:"childIds,omitempty" json:"childIds,omitempty"`

	// --- Child-specific ---
	ParentID *primitive.ObjectID `bson:"parentId,omitempty" json:"parentId,omitempty"`
	Settings *ChildSettings      `bson:"settings,omitempty" json:"settings,omitempty"`
}

func (u *User) IsParent() bool {
	return u.Role == RoleParent
}

func (u *User) IsChild() bool {
	return u.Role == RoleChild
}
