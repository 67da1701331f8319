package models

// SelectionState is the user's in-progress choice of bay and time range.
// Empty strings stand for "not set". Invariants, enforced by the
// selection machine:
//
//	EndTime set  => StartTime and BayID set.
//	Both set     => index(StartTime) < index(EndTime); EndTime is the
//	                first unoccupied slot (end-exclusive).
//	BayID change => StartTime and EndTime reset.
type SelectionState struct {
	BayID     string `json:"bayId,omitempty"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// IsEmpty reports whether nothing is selected.
func (s SelectionState) IsEmpty() bool {
	return s.BayID == "" && s.StartTime == "" && s.EndTime == ""
}

// IsComplete reports whether the selection forms a committed range.
func (s SelectionState) IsComplete() bool {
	return s.BayID != "" && s.StartTime != "" && s.EndTime != ""
}

// Clear resets the selection to empty.
func (s *SelectionState) Clear() {
	s.BayID = ""
	s.StartTime = ""
	s.EndTime = ""
}

// SelectionSession carries one user's selection flow between requests.
// Bookings and Bays are read-only snapshots refreshed wholesale on date
// change, never patched incrementally.
type SelectionSession struct {
	SessionID string         `json:"sessionId"`
	Location  LocationConfig `json:"location"`
	User      SessionInfo    `json:"user"`
	Date      string         `json:"date"` // "YYYY-MM-DD"
	Selection SelectionState `json:"selection"`
	Bays      []Bay          `json:"bays"`
	Bookings  []Booking      `json:"bookings"`

	// Quote is the last committed price computation for the current
	// selection, nil while the selection is incomplete. Its fingerprint
	// ties it to the exact selection it priced; a quote whose
	// fingerprint no longer matches is never honored.
	Quote *PriceQuote `json:"quote,omitempty"`
}
