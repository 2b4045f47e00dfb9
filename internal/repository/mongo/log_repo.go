package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/repository"
)

// Collection names are shared with the existing deployment data.
const (
	WaterCollectionName   = "water_intake_logs"
	SleepCollectionName   = "sleep_logs"
	WorkoutCollectionName = "workout_logs"
	MealCollectionName    = "meal_logs"
)

// LogCollections lists every tracker collection, for index setup.
var LogCollections = []string{WaterCollectionName, SleepCollectionName, WorkoutCollectionName, MealCollectionName}

// mongoLogRepository implements repository.LogRepository for one tracker.
type mongoLogRepository[E domain.Loggable[E]] struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a log repository backed by collectionName.
func NewMongoLogRepository[E domain.Loggable[E]](db *mongo.Database, collectionName string) repository.LogRepository[E] {
	return &mongoLogRepository[E]{
		collection: db.Collection(collectionName),
	}
}

// Create inserts the entry and returns it with its new ID.
func (r *mongoLogRepository[E]) Create(ctx context.Context, entry E) (E, error) {
	meta := entry.Meta()
	if meta.OwnerEmail == "" {
		var zero E
		return zero, errors.New("log entry requires an owner email")
	}
	meta.ID = primitive.NewObjectID()
	entry = entry.WithMeta(meta)

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		var zero E
		return zero, err
	}
	return entry, nil
}

// ListByOwner retrieves all entries of an owner, newest first.
func (r *mongoLogRepository[E]) ListByOwner(ctx context.Context, ownerEmail string) ([]E, error) {
	filter := bson.M{"ownerEmail": ownerEmail}
	findOptions := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []E{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes one entry; ErrNotFound covers both a missing entry and one
// owned by somebody else.
func (r *mongoLogRepository[E]) Delete(ctx context.Context, ownerEmail string, id primitive.ObjectID) error {
	if id == primitive.NilObjectID || ownerEmail == "" {
		return errors.New("log ID and owner email are required for deletion")
	}
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerEmail": ownerEmail})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureLogIndexes creates the owner/timestamp index used by ListByOwner.
func EnsureLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "ownerEmail", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index(),
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
