package booking

import (
	"testing"
	"time"

	"fairway/models"
)

func TestParseWireTimeShapes(t *testing.T) {
	grid := NewSlotGrid(15)
	const date = "2026-03-14"

	cases := []struct {
		value string
		want  int
	}{
		{"1:15 PM", 53},
		{"13:15", 53},
		{"2026-03-14T13:15:00Z", 53},
		{"12:00 AM", 0},
		{"00:00", 0},
	}
	for _, tc := range cases {
		got, err := ParseWireTime(grid, tc.value, date, time.UTC)
		if err != nil {
			t.Fatalf("ParseWireTime(%q): %v", tc.value, err)
		}
		if got != tc.want {
			t.Fatalf("ParseWireTime(%q) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestParseWireTimeRejects(t *testing.T) {
	grid := NewSlotGrid(15)
	const date = "2026-03-14"

	for _, value := range []string{
		"13:10",                 // off-grid minute
		"2026-03-15T13:15:00Z",  // wrong date
		"2026-03-14T13:10:00Z",  // off-grid timestamp
		"half past one",         // nonsense
		"",                      // empty
	} {
		if _, err := ParseWireTime(grid, value, date, time.UTC); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}

func TestParseWireTimeTimestampTimezone(t *testing.T) {
	grid := NewSlotGrid(15)
	tz := time.FixedZone("UTC-5", -5*60*60)

	// 18:15 UTC is 13:15 local.
	got, err := ParseWireTime(grid, "2026-03-14T18:15:00Z", "2026-03-14", tz)
	if err != nil {
		t.Fatalf("ParseWireTime: %v", err)
	}
	if got != 53 {
		t.Fatalf("got index %d, want 53 (1:15 PM local)", got)
	}
}

func TestSelectionToBookedRange(t *testing.T) {
	grid := NewSlotGrid(15)
	sel := models.SelectionState{BayID: "b1", StartTime: "2:00 PM", EndTime: "3:30 PM"}

	start, end, err := SelectionToBookedRange(grid, sel)
	if err != nil {
		t.Fatalf("SelectionToBookedRange: %v", err)
	}
	if start != 14*60 {
		t.Fatalf("start = %d, want %d", start, 14*60)
	}
	// The stored end is the start minute of the last occupied slot,
	// one slot before the end-exclusive selection boundary.
	if end != 15*60+15 {
		t.Fatalf("end = %d, want %d", end, 15*60+15)
	}
}

func TestSelectionToBookedRangeRejectsIncomplete(t *testing.T) {
	grid := NewSlotGrid(15)

	if _, _, err := SelectionToBookedRange(grid, models.SelectionState{BayID: "b1", StartTime: "2:00 PM"}); err == nil {
		t.Fatal("expected error for incomplete selection")
	}
	if _, _, err := SelectionToBookedRange(grid, models.SelectionState{BayID: "b1", StartTime: "3:00 PM", EndTime: "2:00 PM"}); err == nil {
		t.Fatal("expected error for inverted selection")
	}
}

func TestToWireRoundTrip(t *testing.T) {
	grid := NewSlotGrid(15)
	b := models.Booking{
		ID:     "bk1",
		BayID:  "b1",
		Date:   "2026-03-14",
		Start:  14 * 60,
		End:    15*60 + 15,
		Status: models.BookingStatusConfirmed,
	}

	wire, ok := ToWire(grid, b)
	if !ok {
		t.Fatal("expected on-grid booking to convert")
	}
	if wire.StartTime != "2:00 PM" {
		t.Fatalf("StartTime = %q, want 2:00 PM", wire.StartTime)
	}
	if wire.EndTime != "3:15 PM" {
		t.Fatalf("EndTime = %q, want 3:15 PM", wire.EndTime)
	}

	// The wire form feeds the availability index symmetrically: the
	// booking still occupies 2:00 PM through 3:15 PM inclusive.
	idx := NewAvailabilityIndex(grid, []models.Booking{b})
	if !idx.IsSlotBooked("b1", "3:15 PM") {
		t.Fatal("expected 3:15 PM booked")
	}
	if idx.IsSlotBooked("b1", "3:30 PM") {
		t.Fatal("expected 3:30 PM free")
	}
}

func TestToWireRejectsOffGridMinutes(t *testing.T) {
	grid := NewSlotGrid(15)

	offGrid := []models.Booking{
		{ID: "bk2", BayID: "b1", Start: 14*60 + 7, End: 15 * 60, Status: models.BookingStatusConfirmed},
		{ID: "bk3", BayID: "b1", Start: 14 * 60, End: 24 * 60, Status: models.BookingStatusConfirmed},
	}
	for _, b := range offGrid {
		if _, ok := ToWire(grid, b); ok {
			t.Fatalf("booking %s with minutes %d-%d must not convert", b.ID, b.Start, b.End)
		}
	}
}

func TestSlotTimestamp(t *testing.T) {
	grid := NewSlotGrid(15)
	tz := time.FixedZone("UTC-5", -5*60*60)

	ts, err := SlotTimestamp(grid, "2026-03-14", tz, 53)
	if err != nil {
		t.Fatalf("SlotTimestamp: %v", err)
	}
	want := time.Date(2026, 3, 14, 13, 15, 0, 0, tz)
	if !ts.Equal(want) {
		t.Fatalf("SlotTimestamp = %v, want %v", ts, want)
	}
}
