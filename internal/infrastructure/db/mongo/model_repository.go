package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

const collectionModels = "models"

type ModelRepository struct {
	coll *mongo.Collection
}

func NewModelRepository(db *mongo.Database) *ModelRepository {
	return &ModelRepository{coll: db.Collection(collectionModels)}
}

// Latest returns the most recently trained model.
func (r *ModelRepository) Latest(ctx context.Context) (*domain.Model, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "trained_at", Value: -1}})

	var m domain.Model
	if err := r.coll.FindOne(ctx, bson.M{}, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoModel
		}
		return nil, fmt.Errorf("find latest model: %w", err)
	}
	return &m, nil
}

func (r *ModelRepository) Save(ctx context.Context, m *domain.Model) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, m); err != nil {
		return fmt.Errorf("insert model: %w", err)
	}
	return nil
}

func (r *ModelRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return r.coll.CountDocuments(ctx, bson.M{})
}
