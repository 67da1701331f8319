package models

import "time"

// Booking statuses.
const (
	BookingStatusReserved  = "reserved"  // hold created, payment pending
	BookingStatusConfirmed = "confirmed" // payment completed
	BookingStatusCancelled = "cancelled"
	BookingStatusExpired   = "expired" // hold released, never paid
)

// Booking represents a persisted reservation of one bay for a span of
// slots on a date. Start and End are minutes from midnight in the
// location's timezone; End is the start minute of the LAST occupied
// slot (inclusive), matching the wire format the availability index
// consumes.
type Booking struct {
	ID          string     `bson:"id" json:"id"`
	BayID       string     `bson:"bay_id" json:"bay_id"`
	LocationID  string     `bson:"location_id" json:"location_id"`
	UserID      string     `bson:"user_id" json:"user_id"`
	Date        string     `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start       int        `bson:"start" json:"start"`
	End         int        `bson:"end" json:"end"`
	TotalCents  int64      `bson:"total_cents" json:"total_cents"`
	Status      string     `bson:"status" json:"status"`
	ExpiresAt   *time.Time `bson:"expires_at,omitempty" json:"expires_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

// IsActive reports whether the booking still occupies its slots.
func (b *Booking) IsActive() bool {
	return b.Status == BookingStatusReserved || b.Status == BookingStatusConfirmed
}

// BookingWire is the transport projection of a booking. StartTime and
// EndTime are grid labels ("1:15 PM"); conversion from the canonical
// minute representation happens only at this boundary.
type BookingWire struct {
	ID        string `json:"id"`
	BayID     string `json:"bayId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Date      string `json:"date"`
	Status    string `json:"status"`
}
