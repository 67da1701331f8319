package booking

import (
	"fmt"
	"time"

	"fairway/models"
)

// The wire formats for booking times drifted over the system's life:
// pre-formatted 12-hour labels, "HH:MM", and RFC3339 timestamps all
// appear. Conversion to the canonical internal form (slot index + date)
// happens here and nowhere else.

// ParseWireTime resolves any supported wire time shape to a grid index
// for the given date and timezone. Returns -1 with an error when the
// value does not land on the grid.
func ParseWireTime(grid *SlotGrid, value, date string, tz *time.Location) (int, error) {
	if i := grid.TimeToIndex(value); i != -1 {
		return i, nil
	}
	if t, err := time.Parse("15:04", value); err == nil {
		if i := grid.IndexOfMinute(t.Hour()*60 + t.Minute()); i != -1 {
			return i, nil
		}
		return -1, fmt.Errorf("time %q is not on the booking grid", value)
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		local := t.In(tz)
		if local.Format(dateFormat) != date {
			return -1, fmt.Errorf("timestamp %q is not on date %s", value, date)
		}
		if i := grid.IndexOfMinute(local.Hour()*60 + local.Minute()); i != -1 {
			return i, nil
		}
		return -1, fmt.Errorf("timestamp %q is not on the booking grid", value)
	}
	return -1, fmt.Errorf("unrecognized time value %q", value)
}

// SlotTimestamp combines the date and the slot's wall-clock time in the
// location's timezone into an absolute timestamp.
func SlotTimestamp(grid *SlotGrid, date string, tz *time.Location, index int) (time.Time, error) {
	dayStart, err := time.ParseInLocation(dateFormat, date, tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return dayStart.Add(time.Duration(grid.MinuteAt(index)) * time.Minute), nil
}

// ToWire converts a persisted booking to its transport projection with
// grid labels. Reports false when the booking's minutes do not land on
// the grid, mirroring how the availability index skips such bookings.
func ToWire(grid *SlotGrid, b models.Booking) (models.BookingWire, bool) {
	start, startOK := grid.IndexToTime(grid.IndexOfMinute(b.Start))
	end, endOK := grid.IndexToTime(grid.IndexOfMinute(b.End))
	if !startOK || !endOK {
		return models.BookingWire{}, false
	}
	return models.BookingWire{
		ID:        b.ID,
		BayID:     b.BayID,
		StartTime: start,
		EndTime:   end,
		Date:      b.Date,
		Status:    b.Status,
	}, true
}

// SelectionToBookedRange converts a committed selection (end-exclusive)
// to the persisted inclusive minute range: the stored end is the start
// minute of the last occupied slot. This is the single point where the
// two end conventions meet.
func SelectionToBookedRange(grid *SlotGrid, sel models.SelectionState) (startMinute, endMinute int, err error) {
	start := grid.TimeToIndex(sel.StartTime)
	end := grid.TimeToIndex(sel.EndTime)
	if start == -1 || end == -1 || end <= start {
		return 0, 0, fmt.Errorf("selection %q-%q is not a valid range", sel.StartTime, sel.EndTime)
	}
	return grid.MinuteAt(start), grid.MinuteAt(end - 1), nil
}
