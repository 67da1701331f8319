// File: services/booking/reservation.go
package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "fairway/database/repository/booking"
	"fairway/models"
	"fairway/utils"

	"go.uber.org/zap"
)

// Confirm finalizes the session's selection: it revalidates completeness
// and the quote fingerprint, creates the server-side reservation hold
// (the authoritative double-booking check), schedules its expiry, and
// assembles the checkout handoff with a payment-intent client secret.
//
// The in-session availability check was advisory; losing the race here
// surfaces as SlotUnavailable and the user must reselect.
func (s *DefaultSelectionSessionService) Confirm(sessionID string) (*models.CheckoutHandoff, error) {
	ctx := context.Background()
	logger := utils.GetLogger()

	session, err := s.fetchSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if !session.Selection.IsComplete() {
		return nil, newBookingError(CodeIncompleteSelection, "select a bay, start time and end time before confirming")
	}
	if session.Quote == nil || session.Quote.Fingerprint != selectionFingerprint(session) {
		return nil, newBookingError(CodeIncompleteSelection, "price is still being computed; try again in a moment")
	}

	details, err := s.buildDetails(session)
	if err != nil {
		return nil, err
	}

	// Reuse a still-valid hold for the same range instead of stacking a
	// second one.
	if existing, err := s.BookingRepo.GetActiveReservation(ctx, session.User.UserID); err == nil && existing != nil {
		if s.holdMatches(existing, session) {
			secret, perr := s.Payments.CreateIntent(ctx, existing, details)
			if perr != nil {
				return nil, fmt.Errorf("failed to create payment intent: %w", perr)
			}
			return &models.CheckoutHandoff{
				BookingID:    existing.ID,
				Details:      details,
				ExpiresAt:    *existing.ExpiresAt,
				ClientSecret: secret,
			}, nil
		}
	}

	startMin, endMin, err := SelectionToBookedRange(s.Grid, session.Selection)
	if err != nil {
		return nil, err
	}

	expiresAt := time.Now().Add(s.ReservationTTL)
	hold := &models.Booking{
		BayID:      session.Selection.BayID,
		LocationID: session.Location.LocationID,
		UserID:     session.User.UserID,
		Date:       session.Date,
		Start:      startMin,
		End:        endMin,
		TotalCents: session.Quote.TotalCents,
		Status:     models.BookingStatusReserved,
		ExpiresAt:  &expiresAt,
	}

	if err := s.BookingRepo.CreateReservation(ctx, hold); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			// Someone else won the slot; refresh the snapshot and force
			// a reselection.
			session.Selection.Clear()
			session.Quote = nil
			if lerr := s.loadSnapshots(ctx, session); lerr != nil {
				logger.Warn("failed to refresh snapshot after lost race", zap.Error(lerr))
			}
			if serr := s.saveSession(ctx, session); serr != nil {
				logger.Warn("failed to save session after lost race", zap.Error(serr))
			}
			return nil, newBookingError(CodeSlotUnavailable, "those slots were just taken; please pick another time")
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	if err := s.Expiry.ScheduleExpiry(hold.ID, expiresAt); err != nil {
		// The hold still expires via its expires_at guard; the task is
		// the proactive release path.
		logger.Warn("failed to schedule reservation expiry",
			zap.String("bookingID", hold.ID), zap.Error(err))
	}

	secret, err := s.Payments.CreateIntent(ctx, hold, details)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	// Confirmation returns the machine to Empty; the session remains
	// usable for a further booking.
	session.Selection.Clear()
	session.Quote = nil
	session.Bookings = append(session.Bookings, *hold)
	if err := s.saveSession(ctx, session); err != nil {
		logger.Warn("failed to save session after confirm", zap.Error(err))
	}

	logger.Info("reservation created",
		zap.String("bookingID", hold.ID),
		zap.String("bayID", hold.BayID),
		zap.String("date", hold.Date),
		zap.Int64("totalCents", hold.TotalCents))

	return &models.CheckoutHandoff{
		BookingID:    hold.ID,
		Details:      details,
		ExpiresAt:    expiresAt,
		ClientSecret: secret,
	}, nil
}

// CompletePayment promotes a reservation hold to confirmed once the
// payment processor reports the intent settled. Mirrors the checkout
// return page: the client lands back with the intent ID and polls this
// until the booking flips.
func (s *DefaultSelectionSessionService) CompletePayment(bookingID, userID, paymentIntentID string) (*models.Booking, error) {
	ctx := context.Background()

	hold, err := s.BookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s not found: %w", bookingID, err)
	}
	if hold.UserID != userID {
		return nil, ErrNotOwner
	}
	if hold.Status == models.BookingStatusConfirmed {
		return hold, nil
	}
	if hold.Status != models.BookingStatusReserved {
		return nil, newBookingError(CodeSlotUnavailable, "the reservation hold has lapsed; please rebook")
	}

	ok, err := s.Payments.IntentSucceeded(ctx, paymentIntentID, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to verify payment: %w", err)
	}
	if !ok {
		return nil, newBookingError(CodeIncompleteSelection, "payment has not completed")
	}

	if err := s.BookingRepo.ConfirmPayment(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}
	hold.Status = models.BookingStatusConfirmed
	hold.ExpiresAt = nil

	utils.GetLogger().Info("booking confirmed",
		zap.String("bookingID", hold.ID),
		zap.String("bayID", hold.BayID),
		zap.String("date", hold.Date))
	return hold, nil
}

func (s *DefaultSelectionSessionService) buildDetails(session *models.SelectionSession) (models.BookingDetails, error) {
	minutes := DurationMinutes(s.Grid, session.Selection)
	if minutes <= 0 {
		return models.BookingDetails{}, newBookingError(CodeIncompleteSelection, "selection does not form a valid range")
	}
	return models.BookingDetails{
		SelectedDate: session.Date,
		BayID:        session.Selection.BayID,
		StartTime:    session.Selection.StartTime,
		EndTime:      session.Selection.EndTime,
		Duration:     FormatDuration(minutes),
		PriceCents:   session.Quote.TotalCents,
	}, nil
}

func (s *DefaultSelectionSessionService) holdMatches(b *models.Booking, session *models.SelectionSession) bool {
	if b.ExpiresAt == nil {
		return false
	}
	startMin, endMin, err := SelectionToBookedRange(s.Grid, session.Selection)
	if err != nil {
		return false
	}
	return b.BayID == session.Selection.BayID &&
		b.Date == session.Date &&
		b.Start == startMin && b.End == endMin
}
