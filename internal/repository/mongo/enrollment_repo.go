package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"courtsense/training-app/internal/domain"
	"courtsense/training-app/internal/repository"
)

const enrollmentCollectionName = "arc_enrollments"

// mongoEnrollmentRepository implements repository.EnrollmentRepository
type mongoEnrollmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEnrollmentRepository creates a new ArcEnrollment repository.
func NewMongoEnrollmentRepository(db *mongo.Database) repository.EnrollmentRepository {
	return &mongoEnrollmentRepository{
		collection: db.Collection(enrollmentCollectionName),
	}
}

// Create inserts a new enrollment. The partial unique index on open statuses
// rejects a second active-or-paused enrollment for the same child.
func (r *mongoEnrollmentRepository) Create(ctx context.Context, enrollment *domain.ArcEnrollment) (primitive.ObjectID, error) {
	if enrollment.ChildID == primitive.NilObjectID || enrollment.ArcID == "" {
		return primitive.NilObjectID, errors.New("enrollment requires childId and arcId")
	}

	enrollment.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	enrollment.CreatedAt = now
	enrollment.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, enrollment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted enrollment ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single enrollment by its ID.
func (r *mongoEnrollmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ArcEnrollment, error) {
	var enrollment domain.ArcEnrollment
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&enrollment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}

// GetOpenByChildID returns every active or paused enrollment for a child.
// The caller treats more than one element as an invariant violation.
func (r *mongoEnrollmentRepository) GetOpenByChildID(ctx context.Context, childID primitive.ObjectID) ([]domain.ArcEnrollment, error) {
	var enrollments []domain.ArcEnrollment
	filter := bson.M{
		"childId": childID,
		"status":  bson.M{"$in": []domain.EnrollmentStatus{domain.EnrollmentActive, domain.EnrollmentPaused}},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &enrollments); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}

// GetCompletedArcIDs returns the distinct arc ids a child has completed.
func (r *mongoEnrollmentRepository) GetCompletedArcIDs(ctx context.Context, childID primitive.ObjectID) ([]string, error) {
	filter := bson.M{"childId": childID, "status": domain.EnrollmentCompleted}

	raw, err := r.collection.Distinct(ctx, "arcId", filter)
	if err != nil {
		return nil, err
	}

	arcIDs := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			arcIDs = append(arcIDs, s)
		}
	}
	return arcIDs, nil
}

// Update persists status/pause/completion changes to an enrollment.
func (r *mongoEnrollmentRepository) Update(ctx context.Context, enrollment *domain.ArcEnrollment) error {
	if enrollment.ID == primitive.NilObjectID {
		return errors.New("enrollment ID is required for update")
	}

	filter := bson.M{"_id": enrollment.ID}
	// ChildID, ArcID, and StartedAt never change after creation.
	update := bson.M{
		"$set": bson.M{
			"status":      enrollment.Status,
			"pauses":      enrollment.Pauses,
			"completedAt": enrollment.CompletedAt,
			"updatedAt":   time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureEnrollmentIndexes creates necessary indexes. Call during startup.
// Resolves the collection from the same constant the repository uses, so the
// partial unique index lands on the namespace the repository writes to.
func EnsureEnrollmentIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(enrollmentCollectionName)
	indexes := []mongo.IndexModel{
		{
			// At most one active or paused enrollment per child. This is the
			// store-level guard behind the single-open-enrollment invariant.
			Keys: bson.D{{Key: "childId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("one_open_enrollment_per_child").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": []string{
					string(domain.EnrollmentActive), string(domain.EnrollmentPaused),
				}}}),
		},
		{
			// Completed-arc lookups
			Keys:    bson.D{{Key: "childId", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
