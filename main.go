// File: fairway/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fairway/config"
	"fairway/cron"
	"fairway/database"
	bayRepoPkg "fairway/database/repository/bay"
	bookingRepoPkg "fairway/database/repository/booking"
	locationRepoPkg "fairway/database/repository/location"
	"fairway/handlers"
	"fairway/routes"
	"fairway/services/booking"
	"fairway/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bayRepo := bayRepoPkg.NewMongoBayRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	locationRepo := locationRepoPkg.NewMongoLocationRepo()

	// booking engine.
	grid := booking.NewSlotGrid(config.AppConfig.SlotGranularityMinutes)
	pricing := &booking.PriceEngine{
		DayRateCents:   int64(config.AppConfig.DayRateCents),
		NightRateCents: int64(config.AppConfig.NightRateCents),
		DayStartHour:   config.AppConfig.DayStartHour,
		DayEndHour:     config.AppConfig.DayEndHour,
	}

	sessionService := &booking.DefaultSelectionSessionService{
		Grid: grid,
		Rules: booking.SelectionRules{
			MinSlots: config.AppConfig.MinSelectionSlots,
			MaxSlots: config.AppConfig.MaxSelectionSlots,
		},
		Pricing:        pricing,
		BookingRepo:    bookingRepo,
		BayRepo:        bayRepo,
		LocationRepo:   locationRepo,
		Payments:       booking.NewStripePaymentHandler(logger),
		Expiry:         booking.NewExpiryScheduler(),
		Store:          booking.NewRedisSessionStore(),
		SessionTTL:     time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
		ReservationTTL: time.Duration(config.AppConfig.ReservationTTLMinutes) * time.Minute,
	}

	// Background worker releasing unpaid holds.
	cron.InitExpiryWorker(bookingRepo)

	handlerBundle := &handlers.HandlerBundle{
		Sessions:     sessionService,
		BookingRepo:  bookingRepo,
		BayRepo:      bayRepo,
		LocationRepo: locationRepo,
		Grid:         grid,
		Pricing:      pricing,
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
