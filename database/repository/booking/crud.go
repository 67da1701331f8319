// File: database/repository/booking/crud.go
package bookingRepo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"fairway/models"
)

// ErrSlotTaken is returned when the reservation would overlap an active
// booking. The server, not the client snapshot, owns this invariant.
var ErrSlotTaken = errors.New("requested slots are no longer available")

var activeStatuses = []string{models.BookingStatusReserved, models.BookingStatusConfirmed}

// CreateReservation inserts a reservation hold after re-checking, inside
// a transaction, that no active booking overlaps the requested minute
// range. A concurrent winner surfaces as ErrSlotTaken.
func (r *mongoBookingRepo) CreateReservation(ctx context.Context, b *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	b.CreatedAt = time.Now()

	session, err := r.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	overlap := bson.M{
		"bay_id": b.BayID,
		"date":   b.Date,
		"status": bson.M{"$in": activeStatuses},
		"start":  bson.M{"$lte": b.End},
		"end":    bson.M{"$gte": b.Start},
	}

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := r.coll.CountDocuments(sc, overlap)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSlotTaken
		}
		return r.coll.InsertOne(sc, b)
	})
	return err
}

func (r *mongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

// ConfirmPayment promotes a still-held reservation to confirmed.
func (r *mongoBookingRepo) ConfirmPayment(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "status": models.BookingStatusReserved},
		bson.M{"$set": bson.M{"status": models.BookingStatusConfirmed}, "$unset": bson.M{"expires_at": ""}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// CancelByUser cancels a booking if it belongs to the user and is still
// active.
func (r *mongoBookingRepo) CancelByUser(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id, "user_id": userID, "status": bson.M{"$in": activeStatuses}},
		bson.M{"$set": bson.M{"status": models.BookingStatusCancelled, "cancelled_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ExpireReservation releases a hold that is past its expiry and was
// never paid. A no-op when the booking was confirmed or cancelled in
// the meantime.
func (r *mongoBookingRepo) ExpireReservation(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.coll.UpdateOne(ctx,
		bson.M{
			"id":         id,
			"status":     models.BookingStatusReserved,
			"expires_at": bson.M{"$lte": time.Now()},
		},
		bson.M{"$set": bson.M{"status": models.BookingStatusExpired}},
	)
	return err
}
