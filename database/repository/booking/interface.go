// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"fairway/database"
	"fairway/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists reservations and answers occupancy queries.
// CreateReservation is the authoritative double-booking guard: the
// in-session availability check is advisory only.
type BookingRepository interface {
	GetByLocationAndDate(ctx context.Context, locationID, date string) ([]models.Booking, error)
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	CreateReservation(ctx context.Context, b *models.Booking) error
	ConfirmPayment(ctx context.Context, id string) error
	CancelByUser(ctx context.Context, id, userID string) error
	ExpireReservation(ctx context.Context, id string) error
	GetUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	GetActiveReservation(ctx context.Context, userID string) (*models.Booking, error)
}

type mongoBookingRepo struct {
	coll   *mongo.Collection
	client *mongo.Client
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database(database.DatabaseName)
	return &mongoBookingRepo{
		coll:   db.Collection("bookings"),
		client: database.MongoClient,
	}
}
