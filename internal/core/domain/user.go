package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin        = "admin"
	RoleCompany      = "company"
	RoleManager      = "manager"
	RoleVehicleOwner = "vehicle_owner"
	RoleDriver       = "driver"
)

var (
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
)

// KnownRole reports whether role is one of the five supported roles.
func KnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleCompany, RoleManager, RoleVehicleOwner, RoleDriver:
		return true
	}
	return false
}

// User models an authenticated actor in the system. ActorID is the role-scoped
// owner identifier: the company id for company users, the driver id for
// drivers, and so on. Admins have no ActorID.
type User struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	ActorID      string    `json:"actor_id,omitempty" bson:"actor_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
