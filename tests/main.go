package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"fairway/config"
	"fairway/database"
	"fairway/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/crypto/bcrypt"
)

// Seeds a single location with a row of bays and a handful of bookings
// so the availability grid has something to render against.
func main() {
	config.LoadConfig()
	database.InitDB()
	client := database.MongoClient
	db := client.Database(database.DatabaseName)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	locationColl := db.Collection("locations")
	bayColl := db.Collection("bays")
	bookingColl := db.Collection("bookings")
	userColl := db.Collection("users")

	for _, coll := range []string{"locations", "bays", "bookings", "users"} {
		if _, err := db.Collection(coll).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", coll, err)
		}
	}

	location := models.Location{
		ID:       uuid.New().String(),
		Name:     "Fairway Downtown",
		Timezone: "America/New_York",
	}
	if _, err := locationColl.InsertOne(ctx, location); err != nil {
		log.Fatalf("Failed to insert location: %v", err)
	}

	// Eight bays; bay 7 is down for maintenance so the grid shows a
	// non-selectable row.
	var bays []interface{}
	var bayIDs []string
	for i := 1; i <= 8; i++ {
		status := models.BayStatusAvailable
		if i == 7 {
			status = models.BayStatusMaintenance
		}
		bay := models.Bay{
			ID:         uuid.New().String(),
			Number:     i,
			Name:       fmt.Sprintf("Bay %d", i),
			Status:     status,
			LocationID: location.ID,
		}
		bayIDs = append(bayIDs, bay.ID)
		bays = append(bays, bay)
	}
	if _, err := bayColl.InsertMany(ctx, bays); err != nil {
		log.Fatalf("Failed to insert bays: %v", err)
	}

	// A test user for authenticated flows.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("fairway-test"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	testUserID := uuid.New().String()
	if _, err := userColl.InsertOne(ctx, bson.M{
		"id":            testUserID,
		"email":         "golfer@example.com",
		"password_hash": string(passwordHash),
		"created_at":    time.Now(),
	}); err != nil {
		log.Fatalf("Failed to insert test user: %v", err)
	}

	// Bookings across the next two days. Minutes are from midnight with
	// the end minute naming the start of the last occupied slot.
	today := time.Now().Format("2006-01-02")
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	seedBookings := []models.Booking{
		{BayID: bayIDs[0], Date: today, Start: 10 * 60, End: 10*60 + 30, Status: models.BookingStatusConfirmed},
		{BayID: bayIDs[2], Date: today, Start: 14 * 60, End: 15*60 + 45, Status: models.BookingStatusConfirmed},
		{BayID: bayIDs[4], Date: today, Start: 21 * 60, End: 23*60 + 45, Status: models.BookingStatusConfirmed},
		{BayID: bayIDs[1], Date: tomorrow, Start: 9 * 60, End: 9*60 + 45, Status: models.BookingStatusConfirmed},
	}

	var docs []interface{}
	for i := range seedBookings {
		b := seedBookings[i]
		b.ID = uuid.New().String()
		b.LocationID = location.ID
		b.UserID = testUserID
		b.TotalCents = 3500
		b.CreatedAt = time.Now()
		docs = append(docs, b)
	}
	if _, err := bookingColl.InsertMany(ctx, docs); err != nil {
		log.Fatalf("Failed to insert bookings: %v", err)
	}

	log.Printf("Seeded location %s with %d bays and %d bookings", location.ID, len(bays), len(docs))
}
