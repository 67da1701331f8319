// File: database/repository/bay/bay.go
package bayRepo

import (
	"context"
	"time"

	"fairway/database"
	"fairway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BayRepository exposes simulator-bay reference data.
type BayRepository interface {
	GetByLocation(ctx context.Context, locationID string) ([]models.Bay, error)
	GetByID(ctx context.Context, id string) (*models.Bay, error)
}

type mongoBayRepo struct {
	coll *mongo.Collection
}

// NewMongoBayRepo constructs a new MongoDB BayRepository.
func NewMongoBayRepo() BayRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBayRepo{coll: db.Collection("bays")}
}

func (r *mongoBayRepo) GetByLocation(ctx context.Context, locationID string) ([]models.Bay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "bay_number", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"location_id": locationID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bays []models.Bay
	if err := cursor.All(ctx, &bays); err != nil {
		return nil, err
	}
	return bays, nil
}

func (r *mongoBayRepo) GetByID(ctx context.Context, id string) (*models.Bay, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var bay models.Bay
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&bay); err != nil {
		return nil, err
	}
	return &bay, nil
}
