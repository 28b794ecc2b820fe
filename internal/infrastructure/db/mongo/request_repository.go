package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

const (
	collectionRequests = "transport_requests"
	collectionTrips    = "trips"
)

type RequestRepository struct {
	col   *mongo.Collection
	trips *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{
		col:   db.Collection(collectionRequests),
		trips: db.Collection(collectionTrips),
	}
}

// Create inserts a new transport request document.
func (r *RequestRepository) Create(ctx context.Context, req *domain.TransportRequest) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if req.ID == "" {
		req.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.col.InsertOne(ctx, req)
	return err
}

// FindByID retrieves a request by id. When companyID is non-empty, an
// additional filter by company_id is applied (role scoping).
func (r *RequestRepository) FindByID(ctx context.Context, id string, companyID string) (*domain.TransportRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if companyID != "" {
		filter["company_id"] = companyID
	}

	var req domain.TransportRequest
	if err := r.col.FindOne(ctx, filter).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// List returns a page of requests matching the filter, newest first.
func (r *RequestRepository) List(ctx context.Context, f ports.ListRequestsFilter) ([]*domain.TransportRequest, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.CompanyID != "" {
		filter["company_id"] = f.CompanyID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Urgency != "" {
		filter["urgency"] = f.Urgency
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((f.Page - 1) * f.Limit)).
		SetLimit(int64(f.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	var items []*domain.TransportRequest
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStatus applies a status transition to the request.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, update ports.RequestStatusUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     update.Status,
		"updated_at": time.Now().UTC(),
	}
	if update.AdminNotes != "" {
		set["admin_notes"] = update.AdminNotes
	}
	if update.AssignedTripID != "" {
		set["assigned_trip_id"] = update.AssignedTripID
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrRequestNotFound
	}
	return nil
}

// AssignTrip creates the trip and links it to the request inside a single
// transaction, so a partial failure cannot leave an approved request pointing
// at a trip that was never created.
func (r *RequestRepository) AssignTrip(ctx context.Context, requestID string, trip *domain.Trip, adminNotes string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if trip.ID == "" {
		trip.ID = primitive.NewObjectID().Hex()
	}

	session, err := r.col.Database().Client().StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if _, err := r.trips.InsertOne(sc, trip); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, domain.ErrDuplicateTrip
			}
			return nil, err
		}

		set := bson.M{
			"status":           domain.RequestAssigned,
			"assigned_trip_id": trip.ID,
			"updated_at":       time.Now().UTC(),
		}
		if adminNotes != "" {
			set["admin_notes"] = adminNotes
		}
		res, err := r.col.UpdateOne(sc, bson.M{"_id": requestID}, bson.M{"$set": set})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, domain.ErrRequestNotFound
		}
		return nil, nil
	})
	return err
}

// Stats returns grouped counts and estimated-cost sums over all requests.
func (r *RequestRepository) Stats(ctx context.Context) (*ports.RequestStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	byStatus := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":                "$status",
			"count":              bson.M{"$sum": 1},
			"estimated_cost_sum": bson.M{"$sum": "$estimated_cost"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cur, err := r.col.Aggregate(ctx, byStatus)
	if err != nil {
		return nil, err
	}
	var statusBuckets []ports.RequestStatusCount
	if err := cur.All(ctx, &statusBuckets); err != nil {
		return nil, err
	}

	byUrgency := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$urgency",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cur, err = r.col.Aggregate(ctx, byUrgency)
	if err != nil {
		return nil, err
	}
	var urgencyBuckets []ports.RequestUrgencyCount
	if err := cur.All(ctx, &urgencyBuckets); err != nil {
		return nil, err
	}

	stats := &ports.RequestStats{
		ByStatus:  statusBuckets,
		ByUrgency: urgencyBuckets,
	}
	for _, b := range statusBuckets {
		stats.TotalRequests += b.Count
		stats.TotalEstimatedCost += b.EstimatedCostSum
	}
	return stats, nil
}

// EnsureIndexes creates the indexes on the transport_requests collection.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "request_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
