// File: database/repository/booking/queries.go
package bookingRepo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fairway/models"
)

// GetByLocationAndDate returns the active bookings snapshot the
// availability index is built from.
func (r *mongoBookingRepo) GetByLocationAndDate(ctx context.Context, locationID, date string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"location_id": locationID,
		"date":        date,
		"status":      bson.M{"$in": activeStatuses},
	}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetUserBookings returns the user's booking history, newest first.
func (r *mongoBookingRepo) GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// GetActiveReservation returns the user's current unpaid hold, or nil
// when none exists. Checkout reuses a still-valid hold instead of
// creating a second one.
func (r *mongoBookingRepo) GetActiveReservation(ctx context.Context, userID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"user_id":    userID,
		"status":     models.BookingStatusReserved,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	var b models.Booking
	err := r.coll.FindOne(ctx, filter).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}
