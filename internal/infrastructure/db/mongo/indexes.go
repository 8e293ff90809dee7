package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes creates the indexes the query and aggregation paths rely on.
// Called once on startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	users := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}},
	}
	if _, err := db.Collection(collectionUsers).Indexes().CreateMany(ctx, users); err != nil {
		return err
	}

	predictions := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}
	if _, err := db.Collection(collectionPredictions).Indexes().CreateMany(ctx, predictions); err != nil {
		return err
	}

	dataset := []mongo.IndexModel{
		{Keys: bson.D{{Key: "amount", Value: -1}}},
		{Keys: bson.D{{Key: "item", Value: 1}}},
		{Keys: bson.D{{Key: "invoice_type", Value: 1}}},
	}
	if _, err := db.Collection(collectionDataset).Indexes().CreateMany(ctx, dataset); err != nil {
		return err
	}

	return nil
}
