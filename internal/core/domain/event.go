package domain

import "time"

// EntityType identifies which aggregate a status event belongs to.
type EntityType string

const (
	EntityRequest EntityType = "transport_request"
	EntityTrip    EntityType = "trip"
	EntityPayment EntityType = "payment"
)

// StatusEvent is an audit-trail record of a single status transition. Events
// originate either from API actions or from the driver-app event pipeline.
type StatusEvent struct {
	EntityType EntityType
	EntityID   string
	FromStatus string
	ToStatus   string
	Source     string
	Timestamp  time.Time
	Location   *Coordinates // optional, driver-app events only
}

// Coordinates represents a geographic point reported alongside an event.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}
