package ports

import (
	"context"

	"github.com/petrohaul/transport-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email, role, actorID string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
