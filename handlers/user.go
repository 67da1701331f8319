package handlers

import (
	"context"
	"errors"
	"net/http"

	"fairway/services/booking"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetUserBookings returns a user's booking history, newest first.
func (hb *HandlerBundle) GetUserBookings(c *gin.Context) {
	userID := c.Param("userId")
	if userID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot access another user's bookings"})
		return
	}

	bookings, err := hb.BookingRepo.GetUserBookings(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch bookings", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// GetReservedBooking returns the user's current unpaid hold, if any.
func (hb *HandlerBundle) GetReservedBooking(c *gin.Context) {
	userID := c.Param("userId")
	if userID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot access another user's bookings"})
		return
	}

	hold, err := hb.BookingRepo.GetActiveReservation(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch reservation", "details": err.Error()})
		return
	}
	if hold == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active reservation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": hold})
}

// ConfirmBookingPayment promotes the caller's reservation hold to a
// confirmed booking after verifying the payment intent settled. The
// checkout return page polls this until it stops answering 402.
func (hb *HandlerBundle) ConfirmBookingPayment(c *gin.Context) {
	var input struct {
		PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	confirmed, err := hb.Sessions.CompletePayment(c.Param("bookingId"), c.GetString("userID"), input.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": "cannot confirm another user's booking"})
		case errors.Is(err, mongo.ErrNoDocuments):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		case booking.ErrCode(err) == booking.CodeIncompleteSelection:
			c.JSON(http.StatusPaymentRequired, gin.H{"error": err.Error()})
		case booking.ErrCode(err) == booking.CodeSlotUnavailable:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to confirm payment", "details": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": confirmed})
}

// CancelBooking cancels one of the caller's bookings.
func (hb *HandlerBundle) CancelBooking(c *gin.Context) {
	bookingID := c.Param("bookingId")
	userID := c.GetString("userID")

	err := hb.BookingRepo.CancelByUser(context.Background(), bookingID, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel booking", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}
