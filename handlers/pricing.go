package handlers

import (
	"context"
	"net/http"
	"time"

	"fairway/services/booking"
	"fairway/utils"

	"github.com/gin-gonic/gin"
)

// CalculatePrice quotes a bay rental for an explicit time range. The
// range uses the same slot labels the grid serves, with the end label
// naming the first slot after the rental.
func (hb *HandlerBundle) CalculatePrice(c *gin.Context) {
	var input struct {
		LocationID string `json:"locationId" binding:"required"`
		Date       string `json:"date" binding:"required"`
		StartTime  string `json:"startTime" binding:"required"`
		EndTime    string `json:"endTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	loc, err := hb.LocationRepo.GetByID(context.Background(), input.LocationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "location not found", "details": err.Error()})
		return
	}
	tz, err := time.LoadLocation(loc.Timezone)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "invalid location timezone", err.Error())
		return
	}

	// Callers send grid labels, "HH:MM" or RFC3339 interchangeably.
	start, err := booking.ParseWireTime(hb.Grid, input.StartTime, input.Date, tz)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start time", "details": err.Error()})
		return
	}
	end, err := booking.ParseWireTime(hb.Grid, input.EndTime, input.Date, tz)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end time", "details": err.Error()})
		return
	}

	quote, err := hb.Pricing.Quote(hb.Grid, input.Date, tz, start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to compute price", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, quote)
}
