package handlers

import (
	"errors"
	"net/http"

	"fairway/models"
	"fairway/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// InitiateSession creates a new selection session for a location and date.
func (hb *HandlerBundle) InitiateSession(c *gin.Context) {
	var input struct {
		LocationID string `json:"locationId" binding:"required"`
		Date       string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	user := models.SessionInfo{UserID: c.GetString("userID")}
	session, err := hb.Sessions.InitiateSession(input.LocationID, input.Date, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start selection session", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionView(session))
}

// GetSession returns the current state of a selection session.
func (hb *HandlerBundle) GetSession(c *gin.Context) {
	session, err := hb.Sessions.GetSession(c.Param("sessionID"))
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

// ClickSlot applies a single slot click to the session's selection.
// Rejected clicks are not HTTP failures; the selection machine resets
// and the response carries the updated state plus a warning.
func (hb *HandlerBundle) ClickSlot(c *gin.Context) {
	var input struct {
		BayID     string `json:"bayId" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, notice, err := hb.Sessions.ClickSlot(c.Param("sessionID"), input.BayID, input.StartTime)
	if err != nil {
		respondSessionError(c, err)
		return
	}

	resp := sessionView(session)
	if notice != nil {
		resp["warning"] = notice
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeDate switches the session to another date, clearing the
// selection before the new availability snapshot is loaded.
func (hb *HandlerBundle) ChangeDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := hb.Sessions.ChangeDate(c.Param("sessionID"), input.Date)
	if err != nil {
		respondSessionError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessionView(session))
}

// ConfirmBooking places a reservation hold for the completed selection
// and returns the checkout handoff payload.
func (hb *HandlerBundle) ConfirmBooking(c *gin.Context) {
	handoff, err := hb.Sessions.Confirm(c.Param("sessionID"))
	if err != nil {
		respondConfirmError(c, err)
		return
	}
	c.JSON(http.StatusOK, handoff)
}

// CancelSession discards a selection session.
func (hb *HandlerBundle) CancelSession(c *gin.Context) {
	if err := hb.Sessions.CancelSession(c.Param("sessionID")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel session", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func sessionView(session *models.SelectionSession) gin.H {
	return gin.H{
		"sessionID": session.SessionID,
		"date":      session.Date,
		"selection": session.Selection,
		"bays":      session.Bays,
		"bookings":  session.Bookings,
		"quote":     session.Quote,
	}
}

func respondSessionError(c *gin.Context, err error) {
	if errors.Is(err, redis.Nil) {
		c.JSON(http.StatusNotFound, gin.H{"error": "selection session not found or expired"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func respondConfirmError(c *gin.Context, err error) {
	if errors.Is(err, redis.Nil) {
		c.JSON(http.StatusNotFound, gin.H{"error": "selection session not found or expired"})
		return
	}
	switch booking.ErrCode(err) {
	case booking.CodeSlotUnavailable:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "code": booking.CodeSlotUnavailable})
	case booking.CodeIncompleteSelection:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "code": booking.CodeIncompleteSelection})
	case booking.CodePriceComputation:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "code": booking.CodePriceComputation})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
