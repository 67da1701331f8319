package models

// Location is reference data for one facility. Timezone is an IANA zone
// name and drives every slot-to-timestamp conversion for the location.
type Location struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Timezone string `bson:"timezone" json:"timezone"`
}

// LocationConfig is the explicit per-session location context handed to
// the booking engine. It is resolved once from the location record and
// never read from ambient state.
type LocationConfig struct {
	LocationID string `json:"locationId"`
	Timezone   string `json:"timezone"`
}

// SessionInfo identifies the user driving a selection session. Identity
// itself is owned by the external auth service.
type SessionInfo struct {
	UserID string `json:"userId"`
}
