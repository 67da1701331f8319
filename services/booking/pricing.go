package booking

import (
	"fmt"
	"time"

	"fairway/models"
)

// Rate names used in price breakdowns.
const (
	RateNameDay   = "day"
	RateNameNight = "night"
)

// PriceEngine computes segmented day/night pricing. Slots whose hour
// falls inside [DayStartHour, DayEndHour) bill at the day rate, all
// others at the night rate; each slot accrues rate/slotsPerHour.
type PriceEngine struct {
	DayRateCents   int64
	NightRateCents int64
	DayStartHour   int
	DayEndHour     int
}

func (e *PriceEngine) rateFor(hour int) (string, int64) {
	if hour >= e.DayStartHour && hour < e.DayEndHour {
		return RateNameDay, e.DayRateCents
	}
	return RateNameNight, e.NightRateCents
}

// Quote prices the half-open slot range [startIdx, endIdx) for the given
// date, producing absolute breakdown timestamps in the location's
// timezone. The end slot itself is a boundary, not billed.
func (e *PriceEngine) Quote(grid *SlotGrid, date string, tz *time.Location, startIdx, endIdx int) (*models.PriceQuote, error) {
	if startIdx < 0 || endIdx > grid.Len() || endIdx <= startIdx {
		return nil, fmt.Errorf("invalid slot range [%d, %d)", startIdx, endIdx)
	}
	dayStart, err := time.ParseInLocation(dateFormat, date, tz)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	slotAt := func(i int) time.Time {
		return dayStart.Add(time.Duration(grid.MinuteAt(i)) * time.Minute)
	}

	var (
		quote    models.PriceQuote
		segStart = startIdx
		segName  string
		segRate  int64
	)
	segName, segRate = e.rateFor(grid.HourAt(startIdx))

	flush := func(endExclusive int) {
		slots := int64(endExclusive - segStart)
		quote.TotalCents += segRate * slots / int64(grid.SlotsPerHour())
		quote.Breakdown = append(quote.Breakdown, models.PriceBreakdownSegment{
			RateName: segName,
			Start:    slotAt(segStart),
			End:      slotAt(endExclusive),
			Rate:     segRate,
		})
	}

	for i := startIdx + 1; i < endIdx; i++ {
		name, rate := e.rateFor(grid.HourAt(i))
		if name == segName {
			continue
		}
		flush(i)
		segStart, segName, segRate = i, name, rate
	}
	flush(endIdx)

	return &quote, nil
}

// QuoteLabels is Quote for wire labels; it resolves both labels through
// the grid first.
func (e *PriceEngine) QuoteLabels(grid *SlotGrid, date string, tz *time.Location, startLabel, endLabel string) (*models.PriceQuote, error) {
	start := grid.TimeToIndex(startLabel)
	end := grid.TimeToIndex(endLabel)
	if start == -1 || end == -1 {
		return nil, fmt.Errorf("time %q-%q is not on the booking grid", startLabel, endLabel)
	}
	return e.Quote(grid, date, tz, start, end)
}

// FormatDuration renders minutes as "2h 15m", "2h" or "45m".
func FormatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
