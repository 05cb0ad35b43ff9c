package ports

import (
	"context"

	"github.com/greencode/platform/internal/core/domain"
)

// UserRepository defines read/create access to the user store. The auth core
// never updates or deletes users.
type UserRepository interface {
	// FindByUsernameOrEmail matches either column exactly (case-sensitive).
	FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
