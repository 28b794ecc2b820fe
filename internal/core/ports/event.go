package ports

import (
	"context"
	"time"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

// LocationInput carries optional geographic coordinates for a trip event.
type LocationInput struct {
	Lat float64
	Lng float64
}

// TripEventInput is the DTO passed from the transport layer to the event
// pipeline. Events are reported by the driver app against a trip number.
type TripEventInput struct {
	TripNumber string
	Status     string
	Timestamp  time.Time
	Source     string
	Location   *LocationInput // optional
}

// TripEventService processes incoming trip status events.
type TripEventService interface {
	Process(ctx context.Context, event TripEventInput) error
}

// EventRepository persists the status-transition audit trail.
type EventRepository interface {
	// Insert appends an event to the status_events audit collection.
	Insert(ctx context.Context, event *domain.StatusEvent) error
}
