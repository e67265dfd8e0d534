package repo

import (
	"context"
	"time"

	"github.com/2tzz/Wheather-App-Fidenz/internal/domain/auth/model"
	"github.com/google/uuid"
)

type UserRepo interface {
	CreateUser(ctx context.Context, u model.User) (uuid.UUID, error)

	GetUserByEmail(ctx context.Context, email string) (model.User, error)

	GetUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// TokenRepo отслеживает выпущенные refresh-JTI и отозванные access-JTI.
// Refresh-токен без записи Store считается отозванным.
type TokenRepo interface {
	Store(ctx context.Context, jti string, expiresAt time.Time) error

	Revoke(ctx context.Context, jti string, expiresAt time.Time) error

	IsRevoked(ctx context.Context, jti string) (bool, error)

	RevokeAccess(ctx context.Context, jti string, expiresAt time.Time) error

	IsAccessRevoked(ctx context.Context, jti string) (bool, error)
}
