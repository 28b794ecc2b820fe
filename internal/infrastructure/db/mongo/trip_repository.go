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

type TripRepository struct {
	col *mongo.Collection
}

func NewTripRepository(db *mongo.Database) *TripRepository {
	return &TripRepository{col: db.Collection(collectionTrips)}
}

// Create inserts a new trip document. The unique index on trip_number turns a
// concurrent duplicate into ErrDuplicateTrip.
func (r *TripRepository) Create(ctx context.Context, t *domain.Trip) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if t.ID == "" {
		t.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, t); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateTrip
		}
		return err
	}
	return nil
}

func (r *TripRepository) FindByID(ctx context.Context, id string) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Trip
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TripRepository) FindByTripNumber(ctx context.Context, tripNumber string) (*domain.Trip, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Trip
	if err := r.col.FindOne(ctx, bson.M{"trip_number": tripNumber}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTripNotFound
		}
		return nil, err
	}
	return &t, nil
}

// List returns a page of trips matching the filter, newest first.
func (r *TripRepository) List(ctx context.Context, f ports.ListTripsFilter) ([]*domain.Trip, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.CompanyID != "" {
		filter["company_id"] = f.CompanyID
	}
	if f.VehicleOwnerID != "" {
		filter["vehicle_owner_id"] = f.VehicleOwnerID
	}
	if f.DriverID != "" {
		filter["driver_id"] = f.DriverID
	}
	if f.ManagerID != "" {
		filter["manager_id"] = f.ManagerID
	}
	if f.Status != "" {
		filter["status"] = f.Status
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

	var items []*domain.Trip
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStatus sets the new status together with any derived timestamps.
func (r *TripRepository) UpdateStatus(ctx context.Context, id string, status domain.TripStatus, startDate, actualDeliveryDate *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if startDate != nil {
		set["start_date"] = startDate.UTC()
	}
	if actualDeliveryDate != nil {
		set["actual_delivery_date"] = actualDeliveryDate.UTC()
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

// Update applies a partial patch. The caller has already recomputed
// total_amount; the repo persists what it is given.
func (r *TripRepository) Update(ctx context.Context, id string, patch ports.TripPatch, totalAmount float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"total_amount": totalAmount,
		"updated_at":   time.Now().UTC(),
	}
	if patch.Route != nil {
		set["route"] = *patch.Route
	}
	if patch.ManagerID != nil {
		set["manager_id"] = *patch.ManagerID
	}
	if patch.EstimatedDeliveryDate != nil {
		set["estimated_delivery_date"] = patch.EstimatedDeliveryDate.UTC()
	}
	if patch.BaseAmount != nil {
		set["base_amount"] = *patch.BaseAmount
	}
	if patch.ServiceCharge != nil {
		set["service_charge"] = *patch.ServiceCharge
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTripNotFound
	}
	return nil
}

// Stats returns grouped counts and amount sums, plus the average amount of
// completed trips.
func (r *TripRepository) Stats(ctx context.Context) (*ports.TripStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":          "$status",
			"count":        bson.M{"$sum": 1},
			"total_amount": bson.M{"$sum": "$total_amount"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var buckets []ports.TripStatusCount
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}

	stats := &ports.TripStats{ByStatus: buckets}
	var completedSum float64
	var completedCount int64
	for _, b := range buckets {
		stats.TotalTrips += b.Count
		stats.TotalRevenue += b.TotalAmount
		if b.Status == domain.TripCompleted {
			completedSum += b.TotalAmount
			completedCount += b.Count
		}
	}
	if completedCount > 0 {
		stats.CompletedAvgAmount = completedSum / float64(completedCount)
	}
	return stats, nil
}

// EnsureIndexes creates the indexes on the trips collection.
func (r *TripRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "trip_number", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "vehicle_owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "driver_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
