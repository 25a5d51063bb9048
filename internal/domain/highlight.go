package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Highlight stores metadata about a short video clip a child attaches to a
// logged training session. The actual file resides in S3.
type Highlight struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID   primitive.ObjectID `bson:"sessionId" json:"sessionId"` // Link back to the training session
	ChildID     primitive.ObjectID `bson:"childId" json:"childId"`
	ParentID    primitive.ObjectID `bson:"parentId" json:"parentId"` // Denormalized for parent-side queries
	S3ObjectKey string             `bson:"s3ObjectKey" json:"-"`     // Unique key in the S3 bucket - internal use
	FileName    string             `bson:"fileName" json:"fileName"` // Original filename provided by the app
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"` // File size in bytes
	UploadedAt  time.Time          `bson:"uploadedAt" json:"uploadedAt"`
}
