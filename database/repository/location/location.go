// File: database/repository/location/location.go
package locationRepo

import (
	"context"
	"time"

	"fairway/database"
	"fairway/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// LocationRepository exposes facility reference data.
type LocationRepository interface {
	GetByID(ctx context.Context, id string) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
}

type mongoLocationRepo struct {
	coll *mongo.Collection
}

// NewMongoLocationRepo constructs a new MongoDB LocationRepository.
func NewMongoLocationRepo() LocationRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoLocationRepo{coll: db.Collection("locations")}
}

func (r *mongoLocationRepo) GetByID(ctx context.Context, id string) (*models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var loc models.Location
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

func (r *mongoLocationRepo) List(ctx context.Context) ([]models.Location, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var locs []models.Location
	if err := cursor.All(ctx, &locs); err != nil {
		return nil, err
	}
	return locs, nil
}
