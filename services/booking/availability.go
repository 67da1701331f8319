package booking

import (
	"time"

	"fairway/models"
)

const dateFormat = "2006-01-02"

// AvailabilityIndex answers slot-occupancy questions against a read-only
// snapshot of one date's bookings. Build a fresh index whenever the
// snapshot is refreshed; it is never patched incrementally.
type AvailabilityIndex struct {
	grid  *SlotGrid
	byBay map[string][][2]int // [startIndex, endIndex], both inclusive
}

// NewAvailabilityIndex resolves each active booking's [start, end] slot
// range. The stored end minute is the last occupied slot, so containment
// is inclusive on both ends. Bookings whose times don't land on the grid
// are skipped rather than misreported.
func NewAvailabilityIndex(grid *SlotGrid, bookings []models.Booking) *AvailabilityIndex {
	idx := &AvailabilityIndex{
		grid:  grid,
		byBay: make(map[string][][2]int),
	}
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		start := grid.IndexOfMinute(b.Start)
		end := grid.IndexOfMinute(b.End)
		if start == -1 || end == -1 || end < start {
			continue
		}
		idx.byBay[b.BayID] = append(idx.byBay[b.BayID], [2]int{start, end})
	}
	return idx
}

// IsSlotBooked reports whether the labeled slot falls inside any booking
// for the bay. A label unknown to the grid is never reported booked.
func (a *AvailabilityIndex) IsSlotBooked(bayID, slotLabel string) bool {
	target := a.grid.TimeToIndex(slotLabel)
	if target == -1 {
		return false
	}
	return a.IsIndexBooked(bayID, target)
}

// IsIndexBooked is IsSlotBooked for an already-resolved grid index.
func (a *AvailabilityIndex) IsIndexBooked(bayID string, target int) bool {
	for _, r := range a.byBay[bayID] {
		if r[0] <= target && target <= r[1] {
			return true
		}
	}
	return false
}

// SelectableSlots returns the labels a user may still click for the given
// date. For the current calendar day in the location's timezone, slots at
// or before "now" are excluded entirely, so neither the selection machine
// nor the price calculator ever sees them.
func SelectableSlots(grid *SlotGrid, date string, tz *time.Location, now time.Time) []string {
	labels := grid.Labels()
	localNow := now.In(tz)
	if localNow.Format(dateFormat) != date {
		out := make([]string, len(labels))
		copy(out, labels)
		return out
	}
	nowMinute := localNow.Hour()*60 + localNow.Minute()
	var out []string
	for i, label := range labels {
		if grid.MinuteAt(i) <= nowMinute {
			continue
		}
		out = append(out, label)
	}
	return out
}
