package models

import "time"

// PriceBreakdownSegment is one contiguous run of slots billed at the
// same rate. Start and End are absolute timestamps in the location's
// timezone; Rate is the hourly rate in cents.
type PriceBreakdownSegment struct {
	RateName string    `json:"rateName"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Rate     int64     `json:"rate"`
}

// PriceQuote is the derived price for a committed selection. It is
// recomputed whenever the selection's start, end or date changes and is
// never edited in place.
type PriceQuote struct {
	TotalCents  int64                   `json:"total"`
	Breakdown   []PriceBreakdownSegment `json:"breakdown"`
	Fingerprint string                  `json:"fingerprint"`
}
