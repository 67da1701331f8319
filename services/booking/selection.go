package booking

import "fairway/models"

// SelectionRules bounds the length of a committed range, counted in
// slots between start and end (end-exclusive).
type SelectionRules struct {
	MinSlots int
	MaxSlots int
}

// ApplyClick evaluates one "slot clicked for (bay, label)" event against
// the current selection and returns the next selection state.
//
// The machine is deliberately forgiving: every rejected end-time
// proposal restarts the selection at the clicked slot, so the UI always
// shows the last thing the user pointed at as an actionable start. The
// returned error, when non-nil, is the user-visible explanation; the
// returned state is authoritative either way.
func ApplyClick(
	grid *SlotGrid,
	avail *AvailabilityIndex,
	bay *models.Bay,
	rules SelectionRules,
	sel models.SelectionState,
	bayID, slotLabel string,
) (models.SelectionState, *BookingError) {
	// Gate checks: these reject without touching the selection.
	if bay == nil || bay.ID != bayID {
		return sel, newBookingError(CodeSlotUnavailable, "unknown bay")
	}
	if !bay.IsSelectable() {
		return sel, newBookingError(CodeSlotUnavailable, "bay %d is not available for booking", bay.Number)
	}
	if avail.IsSlotBooked(bayID, slotLabel) {
		return sel, newBookingError(CodeSlotUnavailable, "%s is already booked", slotLabel)
	}
	clicked := grid.TimeToIndex(slotLabel)
	if clicked == -1 {
		return sel, newBookingError(CodeSlotUnavailable, "%s is not a bookable time", slotLabel)
	}

	// Fresh start: nothing selected yet, or the click targets another
	// bay. Any prior range in the old bay is discarded.
	if sel.StartTime == "" || sel.BayID != bayID {
		return models.SelectionState{BayID: bayID, StartTime: slotLabel}, nil
	}

	start := grid.TimeToIndex(sel.StartTime)

	switch {
	case clicked == start:
		// Clicking the start slot again cancels the whole selection.
		return models.SelectionState{}, nil

	case clicked < start:
		// Move the start earlier; a previously chosen end is discarded.
		return models.SelectionState{BayID: bayID, StartTime: slotLabel}, nil

	default:
		// End-time candidate: validate the range (start, clicked].
		restart := models.SelectionState{BayID: bayID, StartTime: slotLabel}

		for i := start + 1; i <= clicked; i++ {
			if avail.IsIndexBooked(bayID, i) {
				return restart, newBookingError(CodeRangeConflict,
					"the selected range contains a booked slot; selection restarted at %s", slotLabel)
			}
		}

		spanned := clicked - start
		if spanned < rules.MinSlots {
			return restart, newBookingError(CodeDurationTooShort,
				"selection must cover at least %d minutes", rules.MinSlots*grid.Granularity())
		}
		if rules.MaxSlots > 0 && spanned > rules.MaxSlots {
			return restart, newBookingError(CodeDurationTooLong,
				"selection may cover at most %d minutes", rules.MaxSlots*grid.Granularity())
		}

		return models.SelectionState{BayID: bayID, StartTime: sel.StartTime, EndTime: slotLabel}, nil
	}
}

// DurationMinutes derives the selected duration from the grid. Returns 0
// for an incomplete selection.
func DurationMinutes(grid *SlotGrid, sel models.SelectionState) int {
	if !sel.IsComplete() {
		return 0
	}
	start := grid.TimeToIndex(sel.StartTime)
	end := grid.TimeToIndex(sel.EndTime)
	if start == -1 || end == -1 || end <= start {
		return 0
	}
	return (end - start) * grid.Granularity()
}
