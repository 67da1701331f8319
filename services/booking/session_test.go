package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	bookingRepo "fairway/database/repository/booking"
	"fairway/models"
)

// In-memory fakes so session flows run without Redis, Mongo, Stripe or
// asynq.

type fakeStore struct {
	sessions map[string]models.SelectionSession
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]models.SelectionSession)}
}

func (s *fakeStore) Fetch(_ context.Context, sessionID string) (*models.SelectionSession, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("selection session not found or expired")
	}
	out := sess
	return &out, nil
}

func (s *fakeStore) Save(_ context.Context, session *models.SelectionSession, _ time.Duration) error {
	s.sessions[session.SessionID] = *session
	return nil
}

func (s *fakeStore) Delete(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type fakeBookingRepo struct {
	byDate    map[string][]models.Booking
	byID      map[string]*models.Booking
	created   []*models.Booking
	confirmed []string
	createErr error
	active    *models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		byDate: make(map[string][]models.Booking),
		byID:   make(map[string]*models.Booking),
	}
}

func (r *fakeBookingRepo) GetByLocationAndDate(_ context.Context, _, date string) ([]models.Booking, error) {
	return r.byDate[date], nil
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	out := *b
	return &out, nil
}

func (r *fakeBookingRepo) CreateReservation(_ context.Context, b *models.Booking) error {
	if r.createErr != nil {
		return r.createErr
	}
	if b.ID == "" {
		b.ID = fmt.Sprintf("hold-%d", len(r.created)+1)
	}
	r.created = append(r.created, b)
	r.byID[b.ID] = b
	return nil
}

func (r *fakeBookingRepo) ConfirmPayment(_ context.Context, id string) error {
	r.confirmed = append(r.confirmed, id)
	return nil
}

func (r *fakeBookingRepo) CancelByUser(_ context.Context, _, _ string) error { return nil }

func (r *fakeBookingRepo) ExpireReservation(_ context.Context, _ string) error { return nil }

func (r *fakeBookingRepo) GetUserBookings(_ context.Context, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (r *fakeBookingRepo) GetActiveReservation(_ context.Context, _ string) (*models.Booking, error) {
	return r.active, nil
}

type fakeBayRepo struct {
	bays []models.Bay
}

func (r *fakeBayRepo) GetByLocation(_ context.Context, _ string) ([]models.Bay, error) {
	return r.bays, nil
}

func (r *fakeBayRepo) GetByID(_ context.Context, id string) (*models.Bay, error) {
	for i := range r.bays {
		if r.bays[i].ID == id {
			return &r.bays[i], nil
		}
	}
	return nil, errors.New("bay not found")
}

type fakeLocationRepo struct {
	loc models.Location
}

func (r *fakeLocationRepo) GetByID(_ context.Context, _ string) (*models.Location, error) {
	return &r.loc, nil
}

func (r *fakeLocationRepo) List(_ context.Context) ([]models.Location, error) {
	return []models.Location{r.loc}, nil
}

type fakePayments struct {
	secret    string
	succeeded bool
	intents   []string
	verified  []string
}

func (p *fakePayments) CreateIntent(_ context.Context, hold *models.Booking, _ models.BookingDetails) (string, error) {
	p.intents = append(p.intents, hold.ID)
	return p.secret, nil
}

func (p *fakePayments) IntentSucceeded(_ context.Context, paymentIntentID, _ string) (bool, error) {
	p.verified = append(p.verified, paymentIntentID)
	return p.succeeded, nil
}

type fakeExpiry struct {
	scheduled []string
}

func (e *fakeExpiry) ScheduleExpiry(bookingID string, _ time.Time) error {
	e.scheduled = append(e.scheduled, bookingID)
	return nil
}

type sessionFixtureDeps struct {
	svc      *DefaultSelectionSessionService
	store    *fakeStore
	repo     *fakeBookingRepo
	payments *fakePayments
	expiry   *fakeExpiry
}

func newSessionFixture(now time.Time) sessionFixtureDeps {
	store := newFakeStore()
	repo := newFakeBookingRepo()
	payments := &fakePayments{secret: "cs_test_secret", succeeded: true}
	expiry := &fakeExpiry{}

	svc := &DefaultSelectionSessionService{
		Grid:  NewSlotGrid(15),
		Rules: SelectionRules{MinSlots: 1, MaxSlots: 96},
		Pricing: &PriceEngine{
			DayRateCents:   3500,
			NightRateCents: 2500,
			DayStartHour:   9,
			DayEndHour:     22,
		},
		BookingRepo: repo,
		BayRepo: &fakeBayRepo{bays: []models.Bay{
			{ID: "b1", Number: 1, Name: "Bay 1", Status: models.BayStatusAvailable},
			{ID: "b2", Number: 2, Name: "Bay 2", Status: models.BayStatusAvailable},
		}},
		LocationRepo:   &fakeLocationRepo{loc: models.Location{ID: "loc1", Name: "Test", Timezone: "UTC"}},
		Payments:       payments,
		Expiry:         expiry,
		Store:          store,
		SessionTTL:     30 * time.Minute,
		ReservationTTL: 10 * time.Minute,
		Now:            func() time.Time { return now },
	}
	return sessionFixtureDeps{svc: svc, store: store, repo: repo, payments: payments, expiry: expiry}
}

// The clock sits the day before the booked date so no slot is in the
// past.
var dayBefore = time.Date(2026, 3, 13, 12, 0, 0, 0, time.UTC)

const bookDate = "2026-03-14"

func TestInitiateSessionSnapshots(t *testing.T) {
	f := newSessionFixture(dayBefore)
	f.repo.byDate[bookDate] = []models.Booking{
		{ID: "bk1", BayID: "b1", Date: bookDate, Start: 10 * 60, End: 10*60 + 30, Status: models.BookingStatusConfirmed},
	}

	session, err := f.svc.InitiateSession("loc1", bookDate, models.SessionInfo{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitiateSession: %v", err)
	}
	if len(session.Bays) != 2 || len(session.Bookings) != 1 {
		t.Fatalf("snapshot has %d bays and %d bookings, want 2 and 1", len(session.Bays), len(session.Bookings))
	}
	if _, err := f.store.Fetch(context.Background(), session.SessionID); err != nil {
		t.Fatalf("session was not persisted: %v", err)
	}
}

func TestClickFlowComputesQuote(t *testing.T) {
	f := newSessionFixture(dayBefore)
	session, err := f.svc.InitiateSession("loc1", bookDate, models.SessionInfo{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitiateSession: %v", err)
	}

	session, notice, err := f.svc.ClickSlot(session.SessionID, "b1", "2:00 PM")
	if err != nil || notice != nil {
		t.Fatalf("first click: err=%v notice=%v", err, notice)
	}
	if session.Quote != nil {
		t.Fatal("incomplete selection must not carry a quote")
	}

	session, notice, err = f.svc.ClickSlot(session.SessionID, "b1", "3:00 PM")
	if err != nil || notice != nil {
		t.Fatalf("second click: err=%v notice=%v", err, notice)
	}
	if !session.Selection.IsComplete() {
		t.Fatalf("selection incomplete after two clicks: %+v", session.Selection)
	}
	if session.Quote == nil {
		t.Fatal("complete selection must carry a quote")
	}
	if session.Quote.TotalCents != 3500 {
		t.Fatalf("quote total = %d, want 3500", session.Quote.TotalCents)
	}
	if session.Quote.Fingerprint != selectionFingerprint(session) {
		t.Fatalf("quote fingerprint %q does not match selection", session.Quote.Fingerprint)
	}
}

func TestClickPastSlotRejected(t *testing.T) {
	// 2:30 PM on the booked date itself; 2:00 PM is already past.
	f := newSessionFixture(time.Date(2026, 3, 14, 14, 30, 0, 0, time.UTC))
	session, err := f.svc.InitiateSession("loc1", bookDate, models.SessionInfo{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitiateSession: %v", err)
	}

	session, notice, err := f.svc.ClickSlot(session.SessionID, "b1", "2:00 PM")
	if err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}
	if notice == nil || notice.Code != CodeSlotUnavailable {
		t.Fatalf("expected %s for past slot, got %v", CodeSlotUnavailable, notice)
	}
	if !session.Selection.IsEmpty() {
		t.Fatalf("past-slot click changed selection: %+v", session.Selection)
	}

	// A slot after the current time is still clickable.
	session, notice, err = f.svc.ClickSlot(session.SessionID, "b1", "3:00 PM")
	if err != nil || notice != nil {
		t.Fatalf("future click: err=%v notice=%v", err, notice)
	}
	if session.Selection.StartTime != "3:00 PM" {
		t.Fatalf("selection = %+v, want start 3:00 PM", session.Selection)
	}
}

func TestChangeDateClearsSelectionBeforeRefetch(t *testing.T) {
	f := newSessionFixture(dayBefore)
	const nextDate = "2026-03-15"
	f.repo.byDate[nextDate] = []models.Booking{
		{ID: "bk2", BayID: "b2", Date: nextDate, Start: 9 * 60, End: 9*60 + 45, Status: models.BookingStatusConfirmed},
	}

	session, err := f.svc.InitiateSession("loc1", bookDate, models.SessionInfo{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitiateSession: %v", err)
	}
	if _, _, err := f.svc.ClickSlot(session.SessionID, "b1", "2:00 PM"); err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}
	if _, _, err := f.svc.ClickSlot(session.SessionID, "b1", "3:00 PM"); err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}

	session, err = f.svc.ChangeDate(session.SessionID, nextDate)
	if err != nil {
		t.Fatalf("ChangeDate: %v", err)
	}
	if !session.Selection.IsEmpty() {
		t.Fatalf("selection survived a date change: %+v", session.Selection)
	}
	if session.Quote != nil {
		t.Fatal("quote survived a date change")
	}
	if session.Date != nextDate {
		t.Fatalf("date = %q, want %q", session.Date, nextDate)
	}
	if len(session.Bookings) != 1 || session.Bookings[0].ID != "bk2" {
		t.Fatalf("snapshot not refreshed for the new date: %+v", session.Bookings)
	}

	if _, err := f.svc.ChangeDate(session.SessionID, "14-03-2026"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestConfirmRequiresCompleteSelection(t *testing.T) {
	f := newSessionFixture(dayBefore)
	session, err := f.svc.InitiateSession("loc1", bookDate, models.SessionInfo{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitiateSession: %v", err)
	}
	if _, _, err := f.svc.ClickSlot(session.SessionID, "b1", "2:00 PM"); err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}

	_, err = f.svc.Confirm(session.SessionID)
	if ErrCode(err) != CodeIncompleteSelection {
		t.Fatalf("expected %s, got %v", CodeIncompleteSelection, err)
	}
	if len(f.repo.created) != 0 {
		t.Fatal("no reservation may be created for an incomplete selection")
	}
}

func TestConfirmRejectsStaleQuote(t *testing.T) {
	f := newSessionFixture(dayBefore)
	session, err := f.svc.InitiateSession("loc1", bookDate, models.SessionInfo{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitiateSession: %v", err)
	}
	if _, _, err := f.svc.ClickSlot(session.SessionID, "b1", "2:00 PM"); err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}
	session, _, err = f.svc.ClickSlot(session.SessionID, "b1", "3:00 PM")
	if err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}

	// Simulate a quote left over from an earlier selection: complete
	// selection, fingerprint pointing at a different range.
	session.Quote.Fingerprint = bookDate + "|b1|1:00 PM|2:00 PM"
	if err := f.store.Save(context.Background(), session, time.Minute); err != nil {
		t.Fatalf("Save: %v", err)
	}

	_, err = f.svc.Confirm(session.SessionID)
	if ErrCode(err) != CodeIncompleteSelection {
		t.Fatalf("expected %s for stale quote, got %v", CodeIncompleteSelection, err)
	}
	if len(f.repo.created) != 0 {
		t.Fatal("a stale quote must never reach the reservation step")
	}
	if len(f.payments.intents) != 0 {
		t.Fatal("a stale quote must never reach the payment step")
	}
}

func TestConfirmCreatesHold(t *testing.T) {
	f := newSessionFixture(dayBefore)
	session, err := f.svc.InitiateSession("loc1", bookDate, models.SessionInfo{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitiateSession: %v", err)
	}
	if _, _, err := f.svc.ClickSlot(session.SessionID, "b1", "2:00 PM"); err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}
	if _, _, err := f.svc.ClickSlot(session.SessionID, "b1", "3:30 PM"); err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}

	handoff, err := f.svc.Confirm(session.SessionID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	if len(f.repo.created) != 1 {
		t.Fatalf("expected 1 reservation, got %d", len(f.repo.created))
	}
	hold := f.repo.created[0]
	// The selection 2:00 PM-3:30 PM is end-exclusive; the persisted
	// range ends at the 3:15 PM slot.
	if hold.Start != 14*60 || hold.End != 15*60+15 {
		t.Fatalf("hold range %d-%d, want 840-915", hold.Start, hold.End)
	}
	if hold.Status != models.BookingStatusReserved {
		t.Fatalf("hold status = %q, want reserved", hold.Status)
	}
	if hold.TotalCents != 5250 { // 1.5h at $35/hr
		t.Fatalf("hold total = %d, want 5250", hold.TotalCents)
	}
	if hold.ExpiresAt == nil {
		t.Fatal("hold has no expiry")
	}

	if len(f.expiry.scheduled) != 1 || f.expiry.scheduled[0] != hold.ID {
		t.Fatalf("expiry scheduled for %v, want [%s]", f.expiry.scheduled, hold.ID)
	}
	if handoff.ClientSecret != "cs_test_secret" {
		t.Fatalf("handoff secret = %q", handoff.ClientSecret)
	}
	if handoff.BookingID != hold.ID {
		t.Fatalf("handoff booking = %q, want %q", handoff.BookingID, hold.ID)
	}
	if handoff.Details.Duration != "1h 30m" {
		t.Fatalf("handoff duration = %q, want 1h 30m", handoff.Details.Duration)
	}

	// Confirmation returns the machine to empty and the hold shows up
	// in the session's snapshot.
	stored, err := f.store.Fetch(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !stored.Selection.IsEmpty() || stored.Quote != nil {
		t.Fatalf("session not reset after confirm: %+v", stored.Selection)
	}
	if len(stored.Bookings) != 1 || stored.Bookings[0].ID != hold.ID {
		t.Fatalf("hold missing from session snapshot: %+v", stored.Bookings)
	}
}

func TestConfirmLostRaceClearsSelection(t *testing.T) {
	f := newSessionFixture(dayBefore)
	f.repo.createErr = bookingRepo.ErrSlotTaken

	session, err := f.svc.InitiateSession("loc1", bookDate, models.SessionInfo{UserID: "u1"})
	if err != nil {
		t.Fatalf("InitiateSession: %v", err)
	}
	if _, _, err := f.svc.ClickSlot(session.SessionID, "b1", "2:00 PM"); err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}
	if _, _, err := f.svc.ClickSlot(session.SessionID, "b1", "3:00 PM"); err != nil {
		t.Fatalf("ClickSlot: %v", err)
	}

	_, err = f.svc.Confirm(session.SessionID)
	if ErrCode(err) != CodeSlotUnavailable {
		t.Fatalf("expected %s on lost race, got %v", CodeSlotUnavailable, err)
	}
	if len(f.payments.intents) != 0 {
		t.Fatal("no payment intent may be created on a lost race")
	}

	stored, err := f.store.Fetch(context.Background(), session.SessionID)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if !stored.Selection.IsEmpty() || stored.Quote != nil {
		t.Fatalf("selection not cleared after lost race: %+v", stored.Selection)
	}
}

func TestCompletePayment(t *testing.T) {
	f := newSessionFixture(dayBefore)
	expiresAt := dayBefore.Add(10 * time.Minute)
	f.repo.byID["hold-1"] = &models.Booking{
		ID: "hold-1", BayID: "b1", UserID: "u1", Date: bookDate,
		Start: 14 * 60, End: 15 * 60,
		Status: models.BookingStatusReserved, ExpiresAt: &expiresAt,
	}

	confirmed, err := f.svc.CompletePayment("hold-1", "u1", "pi_1")
	if err != nil {
		t.Fatalf("CompletePayment: %v", err)
	}
	if confirmed.Status != models.BookingStatusConfirmed {
		t.Fatalf("status = %q, want confirmed", confirmed.Status)
	}
	if len(f.repo.confirmed) != 1 || f.repo.confirmed[0] != "hold-1" {
		t.Fatalf("ConfirmPayment calls = %v, want [hold-1]", f.repo.confirmed)
	}
	if len(f.payments.verified) != 1 || f.payments.verified[0] != "pi_1" {
		t.Fatalf("verified intents = %v, want [pi_1]", f.payments.verified)
	}
}

func TestCompletePaymentGuards(t *testing.T) {
	f := newSessionFixture(dayBefore)
	f.repo.byID["hold-1"] = &models.Booking{
		ID: "hold-1", BayID: "b1", UserID: "u1", Date: bookDate,
		Start: 14 * 60, End: 15 * 60, Status: models.BookingStatusReserved,
	}

	if _, err := f.svc.CompletePayment("hold-1", "u2", "pi_1"); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner for another user, got %v", err)
	}

	f.payments.succeeded = false
	if _, err := f.svc.CompletePayment("hold-1", "u1", "pi_1"); ErrCode(err) != CodeIncompleteSelection {
		t.Fatalf("expected %s for unsettled intent, got %v", CodeIncompleteSelection, err)
	}
	if len(f.repo.confirmed) != 0 {
		t.Fatal("an unsettled intent must not confirm the booking")
	}

	f.repo.byID["hold-1"].Status = models.BookingStatusExpired
	f.payments.succeeded = true
	if _, err := f.svc.CompletePayment("hold-1", "u1", "pi_1"); ErrCode(err) != CodeSlotUnavailable {
		t.Fatalf("expected %s for lapsed hold, got %v", CodeSlotUnavailable, err)
	}

	// An already confirmed booking is idempotent and skips verification.
	f.repo.byID["hold-1"].Status = models.BookingStatusConfirmed
	verifiedBefore := len(f.payments.verified)
	confirmed, err := f.svc.CompletePayment("hold-1", "u1", "pi_1")
	if err != nil || confirmed.Status != models.BookingStatusConfirmed {
		t.Fatalf("repeat confirm: %v (%+v)", err, confirmed)
	}
	if len(f.payments.verified) != verifiedBefore {
		t.Fatal("repeat confirm must not re-verify the intent")
	}
}
