package booking

import (
	"time"

	bayRepo "fairway/database/repository/bay"
	bookingRepo "fairway/database/repository/booking"
	locationRepo "fairway/database/repository/location"
	"fairway/models"
)

// SelectionSessionService manages a stateful bay/time-range selection
// flow. Every transition is driven by a single external event, a slot
// click, plus date changes and the confirm/cancel lifecycle.
type SelectionSessionService interface {
	InitiateSession(locationID, date string, user models.SessionInfo) (*models.SelectionSession, error)
	GetSession(sessionID string) (*models.SelectionSession, error)
	ClickSlot(sessionID, bayID, slotLabel string) (*models.SelectionSession, *BookingError, error)
	ChangeDate(sessionID, date string) (*models.SelectionSession, error)
	Confirm(sessionID string) (*models.CheckoutHandoff, error)
	CompletePayment(bookingID, userID, paymentIntentID string) (*models.Booking, error)
	CancelSession(sessionID string) error
}

// DefaultSelectionSessionService implements SelectionSessionService on
// top of the Redis session cache and the Mongo repositories.
type DefaultSelectionSessionService struct {
	Grid           *SlotGrid
	Rules          SelectionRules
	Pricing        *PriceEngine
	BookingRepo    bookingRepo.BookingRepository
	BayRepo        bayRepo.BayRepository
	LocationRepo   locationRepo.LocationRepository
	Payments       PaymentHandler
	Expiry         ExpiryScheduler
	Store          SessionStore // nil means the Redis store
	SessionTTL     time.Duration
	ReservationTTL time.Duration

	// Now is the clock used for past-slot filtering; tests override it.
	Now func() time.Time
}

func (s *DefaultSelectionSessionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
