package booking

import (
	"testing"
	"time"
)

func testEngine() *PriceEngine {
	return &PriceEngine{
		DayRateCents:   3500,
		NightRateCents: 2500,
		DayStartHour:   9,
		DayEndHour:     22,
	}
}

func TestQuoteSingleDaySegment(t *testing.T) {
	grid := NewSlotGrid(15)
	engine := testEngine()

	// One full hour at the day rate, 10:00 AM to 11:00 AM.
	quote, err := engine.QuoteLabels(grid, "2026-03-14", time.UTC, "10:00 AM", "11:00 AM")
	if err != nil {
		t.Fatalf("QuoteLabels: %v", err)
	}
	if quote.TotalCents != 3500 {
		t.Fatalf("TotalCents = %d, want 3500", quote.TotalCents)
	}
	if len(quote.Breakdown) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(quote.Breakdown))
	}
	seg := quote.Breakdown[0]
	if seg.RateName != RateNameDay || seg.Rate != 3500 {
		t.Fatalf("segment = %+v, want day rate 3500", seg)
	}
	if seg.Start.Hour() != 10 || seg.End.Hour() != 11 {
		t.Fatalf("segment spans %v-%v, want 10:00-11:00", seg.Start, seg.End)
	}
}

func TestQuoteCrossesRateBoundary(t *testing.T) {
	grid := NewSlotGrid(15)
	engine := testEngine()

	// 9:00 PM to 11:00 PM straddles the 10:00 PM day/night boundary:
	// one hour at $35 plus one hour at $25.
	quote, err := engine.QuoteLabels(grid, "2026-03-14", time.UTC, "9:00 PM", "11:00 PM")
	if err != nil {
		t.Fatalf("QuoteLabels: %v", err)
	}
	if quote.TotalCents != 6000 {
		t.Fatalf("TotalCents = %d, want 6000", quote.TotalCents)
	}
	if len(quote.Breakdown) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(quote.Breakdown))
	}
	if quote.Breakdown[0].RateName != RateNameDay || quote.Breakdown[1].RateName != RateNameNight {
		t.Fatalf("segments = %+v, want day then night", quote.Breakdown)
	}
	// Segments meet exactly at the boundary.
	if !quote.Breakdown[0].End.Equal(quote.Breakdown[1].Start) {
		t.Fatalf("segments do not meet: %v vs %v", quote.Breakdown[0].End, quote.Breakdown[1].Start)
	}
	if quote.Breakdown[1].Start.Hour() != 22 {
		t.Fatalf("night segment starts at %v, want 10:00 PM", quote.Breakdown[1].Start)
	}
}

func TestQuoteFractionalHour(t *testing.T) {
	grid := NewSlotGrid(15)
	engine := testEngine()

	// 45 minutes at the night rate: 2500 * 3/4 = 1875, exact in cents.
	quote, err := engine.QuoteLabels(grid, "2026-03-14", time.UTC, "1:00 AM", "1:45 AM")
	if err != nil {
		t.Fatalf("QuoteLabels: %v", err)
	}
	if quote.TotalCents != 1875 {
		t.Fatalf("TotalCents = %d, want 1875", quote.TotalCents)
	}
}

func TestQuoteBreakdownTimezone(t *testing.T) {
	grid := NewSlotGrid(15)
	engine := testEngine()
	tz := time.FixedZone("UTC-5", -5*60*60)

	quote, err := engine.QuoteLabels(grid, "2026-03-14", tz, "10:00 AM", "11:00 AM")
	if err != nil {
		t.Fatalf("QuoteLabels: %v", err)
	}
	seg := quote.Breakdown[0]
	if seg.Start.Hour() != 10 {
		t.Fatalf("breakdown must carry local wall-clock time, got hour %d", seg.Start.Hour())
	}
	if _, offset := seg.Start.Zone(); offset != -5*60*60 {
		t.Fatalf("breakdown timestamp offset = %d, want -18000", offset)
	}
}

func TestQuoteRejectsBadRanges(t *testing.T) {
	grid := NewSlotGrid(15)
	engine := testEngine()

	if _, err := engine.QuoteLabels(grid, "2026-03-14", time.UTC, "11:00 AM", "10:00 AM"); err == nil {
		t.Fatal("expected error for inverted range")
	}
	if _, err := engine.QuoteLabels(grid, "2026-03-14", time.UTC, "10:00 AM", "10:00 AM"); err == nil {
		t.Fatal("expected error for empty range")
	}
	if _, err := engine.QuoteLabels(grid, "2026-03-14", time.UTC, "10:07 AM", "11:00 AM"); err == nil {
		t.Fatal("expected error for off-grid label")
	}
	if _, err := engine.QuoteLabels(grid, "not-a-date", time.UTC, "10:00 AM", "11:00 AM"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{45, "45m"},
		{60, "1h"},
		{90, "1h 30m"},
		{135, "2h 15m"},
		{0, "0m"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.minutes); got != tc.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}
