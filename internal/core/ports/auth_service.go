package ports

import (
	"context"

	"github.com/greencode/platform/internal/core/domain"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// IdentitySummary is the public view of the authenticated user returned
// alongside tokens.
type IdentitySummary struct {
	ID       string      `json:"id"`
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
}

// AuthService implements the login path of the auth core plus account
// registration and refresh issuance.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*TokenPair, *IdentitySummary, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, *IdentitySummary, error)
}
