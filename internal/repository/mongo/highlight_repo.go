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

const highlightCollectionName = "highlights"

// mongoHighlightRepository implements repository.HighlightRepository
type mongoHighlightRepository struct {
	collection *mongo.Collection
}

// NewMongoHighlightRepository creates a new Highlight metadata repository.
func NewMongoHighlightRepository(db *mongo.Database) repository.HighlightRepository {
	return &mongoHighlightRepository{
		collection: db.Collection(highlightCollectionName),
	}
}

// Create inserts highlight clip metadata after a confirmed S3 upload.
func (r *mongoHighlightRepository) Create(ctx context.Context, highlight *domain.Highlight) (primitive.ObjectID, error) {
	if highlight.SessionID == primitive.NilObjectID || highlight.ChildID == primitive.NilObjectID || highlight.S3ObjectKey == "" {
		return primitive.NilObjectID, errors.New("highlight requires sessionId, childId, and s3ObjectKey")
	}

	highlight.ID = primitive.NewObjectID()
	if highlight.UploadedAt.IsZero() {
		highlight.UploadedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, highlight)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted highlight ID")
	}
	return insertedID, nil
}

// GetByID retrieves highlight metadata by its ID.
func (r *mongoHighlightRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Highlight, error) {
	var highlight domain.Highlight
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&highlight)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &highlight, nil
}

// GetBySessionID retrieves the highlight attached to a training session.
func (r *mongoHighlightRepository) GetBySessionID(ctx context.Context, sessionID primitive.ObjectID) (*domain.Highlight, error) {
	var highlight domain.Highlight
	filter := bson.M{"sessionId": sessionID}

	err := r.collection.FindOne(ctx, filter).Decode(&highlight)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &highlight, nil
}

// EnsureHighlightIndexes creates necessary indexes for highlight metadata.
// Resolves the collection from the same constant the repository uses.
func EnsureHighlightIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(highlightCollectionName)
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "parentId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
