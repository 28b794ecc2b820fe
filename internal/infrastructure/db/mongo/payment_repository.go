package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

const collectionPayments = "payments"

type PaymentRepository struct {
	col *mongo.Collection
}

func NewPaymentRepository(db *mongo.Database) *PaymentRepository {
	return &PaymentRepository{col: db.Collection(collectionPayments)}
}

// Create inserts a new payment document. The service has already assigned the
// PAY-prefixed id.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, p)
	return err
}

func (r *PaymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var p domain.Payment
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List returns a page of payments matching the filter, newest first.
func (r *PaymentRepository) List(ctx context.Context, f ports.ListPaymentsFilter) ([]*domain.Payment, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.CompanyID != "" {
		filter["company_id"] = f.CompanyID
	}
	if f.VehicleOwnerID != "" {
		filter["vehicle_owner_id"] = f.VehicleOwnerID
	}
	if f.TripID != "" {
		filter["trip_id"] = f.TripID
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

	var items []*domain.Payment
	if err := cur.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// UpdateStatus sets the new status, the optional transaction id, and the
// payment date when the transition completes the payment.
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus, transactionID string, paymentDate *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if transactionID != "" {
		set["transaction_id"] = transactionID
	}
	if paymentDate != nil {
		set["payment_date"] = paymentDate.UTC()
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

// CountByTrip reports how many payments reference the given trip.
func (r *PaymentRepository) CountByTrip(ctx context.Context, tripID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{"trip_id": tripID})
}

// Stats returns grouped counts and amount sums over all payments.
func (r *PaymentRepository) Stats(ctx context.Context) (*ports.PaymentStats, error) {
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
	var buckets []ports.PaymentStatusCount
	if err := cur.All(ctx, &buckets); err != nil {
		return nil, err
	}

	stats := &ports.PaymentStats{ByStatus: buckets}
	for _, b := range buckets {
		stats.TotalPayments += b.Count
		stats.TotalAmount += b.TotalAmount
	}
	if stats.TotalPayments > 0 {
		stats.AverageAmount = stats.TotalAmount / float64(stats.TotalPayments)
	}
	return stats, nil
}

// EnsureIndexes creates the indexes on the payments collection.
func (r *PaymentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "trip_id", Value: 1}}},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "vehicle_owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "payment_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
