package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/salesai/dashboard-system/internal/core/domain"
)

// AccountRepository deletes a user and their predictions in a single
// multi-document transaction.
type AccountRepository struct {
	client      *mongo.Client
	users       *mongo.Collection
	predictions *mongo.Collection
}

func NewAccountRepository(client *mongo.Client, db *mongo.Database) *AccountRepository {
	return &AccountRepository{
		client:      client,
		users:       db.Collection(collectionUsers),
		predictions: db.Collection(collectionPredictions),
	}
}

func (r *AccountRepository) DeleteUserAndPredictions(ctx context.Context, userID string) (*domain.DeleteResult, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrInvalidUserID
	}

	session, err := r.client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	result, err := session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		userRes, err := r.users.DeleteOne(sc, bson.M{"_id": oid})
		if err != nil {
			return nil, fmt.Errorf("delete user: %w", err)
		}

		// Predictions store the user id as its hex string.
		predRes, err := r.predictions.DeleteMany(sc, bson.M{"user_id": userID})
		if err != nil {
			return nil, fmt.Errorf("delete predictions: %w", err)
		}

		return &domain.DeleteResult{
			UsersDeleted:       userRes.DeletedCount,
			PredictionsDeleted: predRes.DeletedCount,
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete account transaction: %w", err)
	}

	return result.(*domain.DeleteResult), nil
}
