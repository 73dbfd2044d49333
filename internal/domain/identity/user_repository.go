package identity

import (
	"context"

	"github.com/storefront/backend/internal/domain/shared"
)

// UserRepository is the storage port for users
type UserRepository interface {
	shared.Repository[*User]

	// GetByEmail finds a user by e-mail address or returns a NotFound failure
	GetByEmail(ctx context.Context, email string) (shared.Outcome[*User], error)
}
