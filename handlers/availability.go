package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"fairway/models"
	"fairway/services/booking"
	"fairway/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ListLocations returns all bookable locations.
func (hb *HandlerBundle) ListLocations(c *gin.Context) {
	locations, err := hb.LocationRepo.List(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch locations", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"locations": locations})
}

// ListBays returns the bays for a location, ordered by bay number.
func (hb *HandlerBundle) ListBays(c *gin.Context) {
	locationID := c.Query("locationId")
	if locationID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "locationId query parameter is required"})
		return
	}

	bays, err := hb.BayRepo.GetByLocation(context.Background(), locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bays", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bays": bays})
}

// GetBay returns a single bay by ID.
func (hb *HandlerBundle) GetBay(c *gin.Context) {
	bay, err := hb.BayRepo.GetByID(context.Background(), c.Param("bayId"))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bay not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bay", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bay": bay})
}

// ListBookings returns the active bookings for a location and date in
// slot-label form, plus the selectable slot labels for that date.
func (hb *HandlerBundle) ListBookings(c *gin.Context) {
	locationID := c.Query("locationId")
	date := c.Query("date")
	if locationID == "" || date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "locationId and date query parameters are required"})
		return
	}

	ctx := context.Background()
	loc, err := hb.LocationRepo.GetByID(ctx, locationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found", "details": err.Error()})
		return
	}
	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "invalid location timezone", err.Error())
		return
	}

	bookings, err := hb.BookingRepo.GetByLocationAndDate(ctx, locationID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings", "details": err.Error()})
		return
	}

	wire := make([]models.BookingWire, 0, len(bookings))
	for _, b := range bookings {
		if w, ok := booking.ToWire(hb.Grid, b); ok {
			wire = append(wire, w)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"bookings":       wire,
		"availableSlots": booking.SelectableSlots(hb.Grid, date, tz, time.Now()),
	})
}
