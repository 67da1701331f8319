package models

// Bay statuses. Only an available bay is selectable, regardless of slot
// occupancy.
const (
	BayStatusAvailable   = "available"
	BayStatusMaintenance = "maintenance"
	BayStatusClosed      = "closed"
)

// Bay represents one independently schedulable simulator stall.
type Bay struct {
	ID         string `bson:"id" json:"id"`
	Number     int    `bson:"bay_number" json:"bay_number"`
	Name       string `bson:"name" json:"name"`
	Status     string `bson:"status" json:"status"`
	LocationID string `bson:"location_id" json:"location_id"`
}

// IsSelectable reports whether the bay may participate in a selection.
func (b *Bay) IsSelectable() bool {
	return b.Status == BayStatusAvailable
}
