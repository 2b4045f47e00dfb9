package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/repository"
)

const goalCollectionName = "goals"

type mongoGoalRepository struct {
	collection *mongo.Collection
}

// NewMongoGoalRepository creates a goal repository on the given database.
func NewMongoGoalRepository(db *mongo.Database) repository.GoalRepository {
	return &mongoGoalRepository{
		collection: db.Collection(goalCollectionName),
	}
}

// List returns the owner's goals in creation order.
func (r *mongoGoalRepository) List(ctx context.Context, ownerEmail string) ([]domain.Goal, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"ownerEmail": ownerEmail}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	goals := []domain.Goal{}
	if err = cursor.All(ctx, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// Put inserts a new goal or replaces an existing one of the same owner.
func (r *mongoGoalRepository) Put(ctx context.Context, goal *domain.Goal) error {
	if goal.OwnerEmail == "" {
		return errors.New("goal requires an owner email")
	}
	now := time.Now().UTC()
	goal.UpdatedAt = now

	if goal.ID == primitive.NilObjectID {
		goal.ID = primitive.NewObjectID()
		goal.CreatedAt = now
		_, err := r.collection.InsertOne(ctx, goal)
		return err
	}

	filter := bson.M{"_id": goal.ID, "ownerEmail": goal.OwnerEmail}
	result, err := r.collection.ReplaceOne(ctx, filter, goal)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *mongoGoalRepository) Delete(ctx context.Context, ownerEmail string, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "ownerEmail": ownerEmail})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureGoalIndexes creates necessary indexes for the goals collection.
func EnsureGoalIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "ownerEmail", Value: 1}, {Key: "createdAt", Value: 1}}},
	})
	return err
}
