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

const checkInCollectionName = "checkins"

// mongoCheckInRepository implements repository.CheckInRepository
type mongoCheckInRepository struct {
	collection *mongo.Collection
}

// NewMongoCheckInRepository creates a new CheckIn repository backed by MongoDB.
func NewMongoCheckInRepository(db *mongo.Database) repository.CheckInRepository {
	return &mongoCheckInRepository{
		collection: db.Collection(checkInCollectionName),
	}
}

// Create inserts a new check-in with its computed mode result.
func (r *mongoCheckInRepository) Create(ctx context.Context, checkIn *domain.CheckIn) (primitive.ObjectID, error) {
	if checkIn.ChildID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("check-in requires a childId")
	}

	checkIn.ID = primitive.NewObjectID()
	if checkIn.CreatedAt.IsZero() {
		checkIn.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, checkIn)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted check-in ID")
	}
	return insertedID, nil
}

// GetByID retrieves a check-in by its ID.
func (r *mongoCheckInRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&checkIn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

// GetLatestForDay returns the most recent check-in within [dayStart, dayEnd).
// The store allows multiple check-ins per day; the latest one wins.
func (r *mongoCheckInRepository) GetLatestForDay(ctx context.Context, childID primitive.ObjectID, dayStart, dayEnd time.Time) (*domain.CheckIn, error) {
	var checkIn domain.CheckIn
	filter := bson.M{
		"childId":   childID,
		"createdAt": bson.M{"$gte": dayStart, "$lt": dayEnd},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&checkIn)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &checkIn, nil
}

// SetQualityRating records the optional after-session quality amendment.
// The only mutation a check-in ever receives.
func (r *mongoCheckInRepository) SetQualityRating(ctx context.Context, id primitive.ObjectID, rating int) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"qualityRating": rating}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCheckInIndexes creates necessary indexes for the checkins collection.
// Resolves the collection from the same constant the repository uses.
func EnsureCheckInIndexes(ctx context.Context, db *mongo.Database) {
	collection := db.Collection(checkInCollectionName)
	indexes := []mongo.IndexModel{
		{
			// Latest-for-day lookups
			Keys:    bson.D{{Key: "childId", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// log.Printf("WARN: Failed to create indexes for collection %s: %v", collection.Name(), err)
	}
}
