package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

// DashboardRepository runs the grouped aggregations behind the per-role
// dashboard rollups. Nothing here is cached; every call hits the collections.
type DashboardRepository struct {
	trips    *mongo.Collection
	payments *mongo.Collection
}

func NewDashboardRepository(db *mongo.Database) *DashboardRepository {
	return &DashboardRepository{
		trips:    db.Collection(collectionTrips),
		payments: db.Collection(collectionPayments),
	}
}

// TripsByStatus groups the owner's trips by status.
func (r *DashboardRepository) TripsByStatus(ctx context.Context, scope ports.DashboardScope, ownerID string) ([]ports.TripStatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{string(scope): ownerID}}},
		{{Key: "$group", Value: bson.M{
			"_id":          "$status",
			"count":        bson.M{"$sum": 1},
			"total_amount": bson.M{"$sum": "$total_amount"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cur, err := r.trips.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var buckets []ports.TripStatusCount
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// PaymentsByStatus groups the owner's payments by status. Payments carry no
// manager or driver reference, so those scopes resolve through the payment's
// trip with a $lookup.
func (r *DashboardRepository) PaymentsByStatus(ctx context.Context, scope ports.DashboardScope, ownerID string) ([]ports.PaymentStatusCount, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := paymentScopePipeline(scope, ownerID)
	pipeline = append(pipeline,
		bson.D{{Key: "$group", Value: bson.M{
			"_id":          "$status",
			"count":        bson.M{"$sum": 1},
			"total_amount": bson.M{"$sum": "$total_amount"},
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"_id": 1}}},
	)

	cur, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var buckets []ports.PaymentStatusCount
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}
	return buckets, nil
}

// PaidBetween sums completed payments whose payment_date falls in [from, to).
func (r *DashboardRepository) PaidBetween(ctx context.Context, scope ports.DashboardScope, ownerID string, from, to time.Time) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := paymentScopePipeline(scope, ownerID)
	pipeline = append(pipeline,
		bson.D{{Key: "$match", Value: bson.M{
			"status":       domain.PaymentCompleted,
			"payment_date": bson.M{"$gte": from, "$lt": to},
		}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$total_amount"},
		}}},
	)

	cur, err := r.payments.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	var out []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &out); err != nil {
		return 0, err
	}
	if len(out) == 0 {
		return 0, nil
	}
	return out[0].Total, nil
}

// paymentScopePipeline returns the match stages that restrict the payments
// collection to one owner. Direct fields match in place; manager and driver
// scopes join through the trips collection first.
func paymentScopePipeline(scope ports.DashboardScope, ownerID string) mongo.Pipeline {
	switch scope {
	case ports.ScopeCompany, ports.ScopeVehicleOwner:
		return mongo.Pipeline{
			{{Key: "$match", Value: bson.M{string(scope): ownerID}}},
		}
	default:
		return mongo.Pipeline{
			{{Key: "$lookup", Value: bson.M{
				"from":         collectionTrips,
				"localField":   "trip_id",
				"foreignField": "_id",
				"as":           "trip",
			}}},
			{{Key: "$unwind", Value: "$trip"}},
			{{Key: "$match", Value: bson.M{"trip." + string(scope): ownerID}}},
		}
	}
}
