// File: services/booking/session.go
package booking

import (
	"context"
	"fmt"
	"time"

	"fairway/models"
	"fairway/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InitiateSession creates a new selection session for a location and
// date, snapshots bays and bookings, and stores the session in Redis.
func (s *DefaultSelectionSessionService) InitiateSession(locationID, date string, user models.SessionInfo) (*models.SelectionSession, error) {
	ctx := context.Background()

	loc, err := s.LocationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("unknown location %s: %w", locationID, err)
	}
	if _, err := time.LoadLocation(loc.Timezone); err != nil {
		return nil, fmt.Errorf("location %s has invalid timezone %q: %w", locationID, loc.Timezone, err)
	}
	if _, err := time.Parse(dateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	session := &models.SelectionSession{
		SessionID: uuid.New().String(),
		Location:  models.LocationConfig{LocationID: loc.ID, Timezone: loc.Timezone},
		User:      user,
		Date:      date,
	}
	if err := s.loadSnapshots(ctx, session); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// GetSession retrieves a live session from the cache.
func (s *DefaultSelectionSessionService) GetSession(sessionID string) (*models.SelectionSession, error) {
	return s.fetchSession(context.Background(), sessionID)
}

// ClickSlot runs one slot-click event through the selection machine and
// persists the outcome. The returned *BookingError is the user-visible
// notice (the selection may still have changed, e.g. a restart); the
// plain error covers infrastructure failures only.
func (s *DefaultSelectionSessionService) ClickSlot(sessionID, bayID, slotLabel string) (*models.SelectionSession, *BookingError, error) {
	ctx := context.Background()
	session, err := s.fetchSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}

	tz, err := time.LoadLocation(session.Location.Timezone)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid session timezone %q: %w", session.Location.Timezone, err)
	}

	notice := s.applyClick(session, tz, bayID, slotLabel)

	if err := s.saveSession(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, notice, nil
}

// applyClick mutates the session in memory: machine transition, then
// quote recomputation. Factored off the cache so the transition logic is
// testable without Redis.
func (s *DefaultSelectionSessionService) applyClick(session *models.SelectionSession, tz *time.Location, bayID, slotLabel string) *BookingError {
	// Past slots are not part of the selectable grid at all.
	if !s.isSelectable(session, tz, slotLabel) {
		return newBookingError(CodeSlotUnavailable, "%s is no longer selectable", slotLabel)
	}

	avail := NewAvailabilityIndex(s.Grid, session.Bookings)
	bay := findBay(session.Bays, bayID)

	next, notice := ApplyClick(s.Grid, avail, bay, s.Rules, session.Selection, bayID, slotLabel)
	session.Selection = next
	s.recomputeQuote(session, tz)
	if notice != nil {
		return notice
	}
	// A complete selection without a committed quote means the price
	// computation failed; the selection stays intact so the user can
	// retry, but confirmation is blocked until a quote lands.
	if session.Selection.IsComplete() && session.Quote == nil {
		return newBookingError(CodePriceComputation, "could not compute a price for the selected range")
	}
	return nil
}

// recomputeQuote re-derives the price for the current selection. A
// quote is only honored at confirm time when its fingerprint still
// matches the selection, so a superseded computation can never leak
// into a newer state.
func (s *DefaultSelectionSessionService) recomputeQuote(session *models.SelectionSession, tz *time.Location) {
	session.Quote = nil
	if !session.Selection.IsComplete() {
		return
	}
	quote, err := s.Pricing.QuoteLabels(s.Grid, session.Date, tz, session.Selection.StartTime, session.Selection.EndTime)
	if err != nil {
		utils.GetLogger().Warn("price computation failed",
			zap.String("sessionID", session.SessionID), zap.Error(err))
		return
	}
	quote.Fingerprint = selectionFingerprint(session)
	session.Quote = quote
}

// ChangeDate resets the selection synchronously, then refreshes the
// bookings snapshot for the new date. Stale availability from the old
// date is discarded before any new data is consulted.
func (s *DefaultSelectionSessionService) ChangeDate(sessionID, date string) (*models.SelectionSession, error) {
	ctx := context.Background()
	session, err := s.fetchSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := time.Parse(dateFormat, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	session.Selection.Clear()
	session.Quote = nil
	session.Date = date

	if err := s.loadSnapshots(ctx, session); err != nil {
		return nil, err
	}
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// CancelSession drops the session from the store.
func (s *DefaultSelectionSessionService) CancelSession(sessionID string) error {
	return s.store().Delete(context.Background(), sessionID)
}

// --- internals ---

func (s *DefaultSelectionSessionService) loadSnapshots(ctx context.Context, session *models.SelectionSession) error {
	bays, err := s.BayRepo.GetByLocation(ctx, session.Location.LocationID)
	if err != nil {
		return fmt.Errorf("failed to load bays: %w", err)
	}
	bookings, err := s.BookingRepo.GetByLocationAndDate(ctx, session.Location.LocationID, session.Date)
	if err != nil {
		return fmt.Errorf("failed to load bookings: %w", err)
	}
	session.Bays = bays
	session.Bookings = bookings
	return nil
}

func (s *DefaultSelectionSessionService) store() SessionStore {
	if s.Store != nil {
		return s.Store
	}
	return RedisSessionStore{}
}

func (s *DefaultSelectionSessionService) fetchSession(ctx context.Context, sessionID string) (*models.SelectionSession, error) {
	return s.store().Fetch(ctx, sessionID)
}

func (s *DefaultSelectionSessionService) saveSession(ctx context.Context, session *models.SelectionSession) error {
	return s.store().Save(ctx, session, s.SessionTTL)
}

func (s *DefaultSelectionSessionService) isSelectable(session *models.SelectionSession, tz *time.Location, slotLabel string) bool {
	for _, label := range SelectableSlots(s.Grid, session.Date, tz, s.now()) {
		if label == slotLabel {
			return true
		}
	}
	return false
}

func findBay(bays []models.Bay, bayID string) *models.Bay {
	for i := range bays {
		if bays[i].ID == bayID {
			return &bays[i]
		}
	}
	return nil
}

func selectionFingerprint(session *models.SelectionSession) string {
	return fmt.Sprintf("%s|%s|%s|%s",
		session.Date, session.Selection.BayID,
		session.Selection.StartTime, session.Selection.EndTime)
}
