package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

const collectionStatusEvents = "status_events"

// EventRepository implements ports.EventRepository using MongoDB.
type EventRepository struct {
	col *mongo.Collection
}

// NewEventRepository creates a new EventRepository.
func NewEventRepository(db *mongo.Database) ports.EventRepository {
	return &EventRepository{col: db.Collection(collectionStatusEvents)}
}

// Insert persists a status transition to the status_events audit collection.
func (r *EventRepository) Insert(ctx context.Context, event *domain.StatusEvent) error {
	doc := bson.M{
		"entity_type":  string(event.EntityType),
		"entity_id":    event.EntityID,
		"from_status":  event.FromStatus,
		"to_status":    event.ToStatus,
		"source":       event.Source,
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.Location != nil {
		doc["location"] = bson.M{
			"lat": event.Location.Lat,
			"lng": event.Location.Lng,
		}
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}
