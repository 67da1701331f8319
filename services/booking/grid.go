package booking

import "time"

// slotLabelFormat renders grid labels the way the booking surface shows
// them: 12-hour clock with meridiem ("1:15 PM").
const slotLabelFormat = "3:04 PM"

// SlotGrid is the fixed ordered sequence of bookable time labels for one
// day at a given granularity. It is immutable; changing granularity means
// building a new grid.
type SlotGrid struct {
	granularity int // minutes
	labels      []string
	index       map[string]int
}

// NewSlotGrid generates labels for every granularity interval from 00:00
// up to but not including 24:00.
func NewSlotGrid(granularityMinutes int) *SlotGrid {
	if granularityMinutes <= 0 {
		granularityMinutes = 15
	}
	count := (24 * 60) / granularityMinutes
	g := &SlotGrid{
		granularity: granularityMinutes,
		labels:      make([]string, 0, count),
		index:       make(map[string]int, count),
	}
	day := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	for m := 0; m < 24*60; m += granularityMinutes {
		label := day.Add(time.Duration(m) * time.Minute).Format(slotLabelFormat)
		g.index[label] = len(g.labels)
		g.labels = append(g.labels, label)
	}
	return g
}

// Len returns the number of slots in the grid.
func (g *SlotGrid) Len() int {
	return len(g.labels)
}

// Granularity returns the slot duration in minutes.
func (g *SlotGrid) Granularity() int {
	return g.granularity
}

// Labels returns the full ordered label sequence. Callers must not
// mutate the returned slice.
func (g *SlotGrid) Labels() []string {
	return g.labels
}

// TimeToIndex resolves a label to its grid position, or -1 when the
// label is not part of this grid. -1 is a sentinel, never a position.
func (g *SlotGrid) TimeToIndex(label string) int {
	if i, ok := g.index[label]; ok {
		return i
	}
	return -1
}

// IndexToTime is the inverse of TimeToIndex.
func (g *SlotGrid) IndexToTime(i int) (string, bool) {
	if i < 0 || i >= len(g.labels) {
		return "", false
	}
	return g.labels[i], true
}

// MinuteAt returns the minutes-from-midnight value of slot i.
func (g *SlotGrid) MinuteAt(i int) int {
	return i * g.granularity
}

// IndexOfMinute resolves a minutes-from-midnight value to its grid
// position, or -1 when it does not fall on a slot boundary.
func (g *SlotGrid) IndexOfMinute(minute int) int {
	if minute < 0 || minute >= 24*60 || minute%g.granularity != 0 {
		return -1
	}
	return minute / g.granularity
}

// HourAt returns the wall-clock hour of slot i.
func (g *SlotGrid) HourAt(i int) int {
	return g.MinuteAt(i) / 60
}

// SlotsPerHour returns how many slots make up one hour.
func (g *SlotGrid) SlotsPerHour() int {
	return 60 / g.granularity
}
