package routes

import (
	"net/http"
	"time"

	"fairway/handlers"
	"fairway/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Hi, I'm Fairway"})
	})
}

// RegisterAvailabilityRoutes registers the public grid/availability
// endpoints the booking page renders from.
func RegisterAvailabilityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/locations", hb.ListLocations)
		api.GET("/bays", hb.ListBays)
		api.GET("/bays/:bayId", hb.GetBay)
		api.GET("/bookings", hb.ListBookings)
		api.POST("/pricing/calculate-price", hb.CalculatePrice)
	}
}

// RegisterBookingRoutes sets up the endpoints for the selection engine.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	bookingGroup := r.Group("/api/booking")
	{
		bookingGroup.Use(middleware.JWTAuthMiddleware())
		bookingGroup.POST("/session", hb.InitiateSession)
		bookingGroup.GET("/session/:sessionID", hb.GetSession)
		bookingGroup.POST("/session/:sessionID/click", hb.ClickSlot)
		bookingGroup.PUT("/session/:sessionID/date", hb.ChangeDate)
		bookingGroup.POST("/session/:sessionID/confirm", hb.ConfirmBooking)
		bookingGroup.DELETE("/session/:sessionID", hb.CancelSession)
	}
}

// RegisterUserRoutes registers per-user booking endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.JWTAuthMiddleware())
		api.GET("/users/:userId/bookings", hb.GetUserBookings)
		api.GET("/users/:userId/bookings/reserved", hb.GetReservedBooking)
		api.POST("/bookings/:bookingId/confirm-payment", hb.ConfirmBookingPayment)
		api.PATCH("/bookings/:bookingId/cancel", hb.CancelBooking)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAvailabilityRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterUserRoutes(r, hb)
}
