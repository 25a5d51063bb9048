package mongo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Index creation and the repositories must target the same namespaces, or
// store-level guards like the one-open-enrollment unique index end up on a
// collection nothing writes to. Collection handles are lazy, so no server is
// contacted here.
func TestRepositoriesUseIndexedCollections(t *testing.T) {
	client, err := driver.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	db := client.Database("courtsense_test")

	assert.Equal(t, "users", db.Collection(userCollectionName).Name())
	assert.Equal(t, "checkins", db.Collection(checkInCollectionName).Name())
	assert.Equal(t, "arc_enrollments", db.Collection(enrollmentCollectionName).Name())
	assert.Equal(t, "training_sessions", db.Collection(sessionCollectionName).Name())
	assert.Equal(t, "highlights", db.Collection(highlightCollectionName).Name())

	repos := map[string]*driver.Collection{
		"arc_enrollments":   NewMongoEnrollmentRepository(db).(*mongoEnrollmentRepository).collection,
		"training_sessions": NewMongoSessionRepository(db).(*mongoSessionRepository).collection,
		"users":             NewMongoUserRepository(db).(*mongoUserRepository).collection,
		"checkins":          NewMongoCheckInRepository(db).(*mongoCheckInRepository).collection,
		"highlights":        NewMongoHighlightRepository(db).(*mongoHighlightRepository).collection,
	}
	for name, collection := range repos {
		assert.Equal(t, name, collection.Name())
	}
}
