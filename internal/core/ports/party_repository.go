package ports

import "context"

// CompanyContact is the minimal company projection joined into request responses.
type CompanyContact struct {
	Name  string
	Email string
}

// PartyRepository is the thin read-only view over the externally managed
// company / vehicle-owner / driver entities. Their CRUD lives outside this
// service; we only need existence checks and contact lookups.
type PartyRepository interface {
	CompanyExists(ctx context.Context, id string) (bool, error)
	VehicleOwnerExists(ctx context.Context, id string) (bool, error)
	DriverExists(ctx context.Context, id string) (bool, error)
	// CompanyContact returns the company's display name and email, or
	// domain.ErrCompanyNotFound.
	CompanyContact(ctx context.Context, id string) (*CompanyContact, error)
}
