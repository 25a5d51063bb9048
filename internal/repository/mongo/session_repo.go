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

const sessionCollectionName = "training_sessions"

// mongoSessionRepository implements repository.SessionRepository
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new TrainingSession repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

// Create inserts a new training session. Sessions are immutable after this.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.TrainingSession) (primitive.ObjectID, error) {
	if session.ChildID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("training session requires a childId")
	}

	session.ID = primitive.NewObjectID()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, session)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted session ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single session by its ID.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.TrainingSession, error) {
	var session domain.TrainingSession
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// ListRecentByChildID returns the child's most recent sessions, newest first.
func (r *mongoSessionRepository) ListRecentByChildID(ctx context.Context, childID primitive.ObjectID, limit int) ([]domain.TrainingSession, error) {
	var sessions []domain.TrainingSession
	filter := bson.M{"childId": childID}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// ListDatesByChildID returns the createdAt timestamps of every session since
// the given time, for streak and weekly-count computation.
func (r *mongoSessionRepository) ListDatesByChildID(ctx context.Context, childID primitive.ObjectID, since time.Time) ([]time.Time, error) {
	filter := bson.M{"childId": childID, "createdAt": bson.M{"$gte": since}}

	findOptions := options.Find().
		SetProjection(bson.M{"createdAt": 1}).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		CreatedAt time.Time `bson:"createdAt"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}

	dates := make([]time.Time, len(docs))
	for i, d := range docs {
		dates[i] = d.CreatedAt
	}
	return dates, nil
}

// SetHighlightID links an uploaded highlight clip to its session.
func (r *mongoSessionRepository) SetHighlightID(ctx context.Context, sessionID, highlightID primitive.ObjectID) error {
	filter := bson.M{"_id": sessionID}
	update := bson.M{"$set": bson.M{"highlightId": highlightID}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureSessionIndexes creates necessary indexes for training sessions.
// Resolves the collection from the same constant the repository uses.
func EnsureSessionIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(sessionCollectionName)
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "childId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
