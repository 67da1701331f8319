package handlers

import (
	bayRepoPkg "fairway/database/repository/bay"
	bookingRepoPkg "fairway/database/repository/booking"
	locationRepoPkg "fairway/database/repository/location"
	"fairway/services/booking"
)

// HandlerBundle groups all endpoint handlers and their dependencies.
type HandlerBundle struct {
	Sessions     booking.SelectionSessionService
	BookingRepo  bookingRepoPkg.BookingRepository
	BayRepo      bayRepoPkg.BayRepository
	LocationRepo locationRepoPkg.LocationRepository

	Grid    *booking.SlotGrid
	Pricing *booking.PriceEngine
}
