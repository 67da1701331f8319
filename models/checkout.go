package models

import "time"

// BookingDetails is the finalized selection handed to the checkout flow.
// The booking engine's responsibility ends once this object is assembled
// and validated as non-partial.
type BookingDetails struct {
	SelectedDate string `json:"selectedDate"`
	BayID        string `json:"bayId"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Duration     string `json:"duration"` // "1h 30m"
	PriceCents   int64  `json:"price"`
}

// CheckoutHandoff is returned from a confirmed session: the reservation
// hold plus everything the external payment form needs.
type CheckoutHandoff struct {
	BookingID    string         `json:"bookingId"`
	Details      BookingDetails `json:"bookingDetails"`
	ExpiresAt    time.Time      `json:"expiresAt"`
	ClientSecret string         `json:"clientSecret,omitempty"`
}
