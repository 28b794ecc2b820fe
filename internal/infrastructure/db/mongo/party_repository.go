package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petrohaul/transport-system/internal/core/domain"
	"github.com/petrohaul/transport-system/internal/core/ports"
)

const (
	collectionCompanies     = "companies"
	collectionVehicleOwners = "vehicle_owners"
	collectionDrivers       = "drivers"
)

// PartyRepository resolves the reference-data entities (companies, vehicle
// owners, drivers) that requests, trips and payments point at.
type PartyRepository struct {
	companies *mongo.Collection
	owners    *mongo.Collection
	drivers   *mongo.Collection
}

func NewPartyRepository(db *mongo.Database) *PartyRepository {
	return &PartyRepository{
		companies: db.Collection(collectionCompanies),
		owners:    db.Collection(collectionVehicleOwners),
		drivers:   db.Collection(collectionDrivers),
	}
}

func (r *PartyRepository) CompanyExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, r.companies, id)
}

func (r *PartyRepository) VehicleOwnerExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, r.owners, id)
}

func (r *PartyRepository) DriverExists(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, r.drivers, id)
}

// CompanyContact returns the company's display name and email.
func (r *PartyRepository) CompanyContact(ctx context.Context, id string) (*ports.CompanyContact, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Name  string `bson:"name"`
		Email string `bson:"email"`
	}
	if err := r.companies.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, err
	}
	return &ports.CompanyContact{Name: doc.Name, Email: doc.Email}, nil
}

func (r *PartyRepository) exists(ctx context.Context, col *mongo.Collection, id string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
