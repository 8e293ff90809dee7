package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

const collectionPredictions = "predictions"

type PredictionRepository struct {
	coll *mongo.Collection
}

func NewPredictionRepository(db *mongo.Database) *PredictionRepository {
	return &PredictionRepository{coll: db.Collection(collectionPredictions)}
}

func (r *PredictionRepository) Insert(ctx context.Context, p *domain.Prediction) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"user_id": p.UserID,
		"input_data": bson.M{
			"quantity":    p.Input.Quantity,
			"sales_price": p.Input.SalesPrice,
		},
		"prediction":    p.Prediction,
		"model_version": p.ModelVersion,
		"created_at":    p.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{"user_id": userID})
}

func (r *PredictionRepository) CountByModelVersion(ctx context.Context) ([]domain.ModelVersionCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$model_version",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate predictions by model version: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []domain.ModelVersionCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode predictions by model version: %w", err)
	}
	return rows, nil
}

func (r *PredictionRepository) TopUsers(ctx context.Context, limit int) ([]domain.UserPredictionCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$user_id",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate top users: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []domain.UserPredictionCount
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("decode top users: %w", err)
	}
	return rows, nil
}
