package ports

import (
	"time"

	"github.com/greencode/platform/internal/core/domain"
)

// TokenPair carries an access token and its companion refresh token.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// AccessClaims are the validated contents of an access token.
type AccessClaims struct {
	Subject   string
	Role      domain.Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// RefreshClaims are the validated contents of a refresh token.
type RefreshClaims struct {
	Subject   string
	TokenID   string
	ExpiresAt time.Time
}

// TokenService mints and validates signed tokens. Issuance snapshots the
// user's id and role; validation is a pure function of the token string, the
// verification key and the current time, with no store lookups.
type TokenService interface {
	IssuePair(user *domain.User) (*TokenPair, error)
	ValidateAccess(token string) (*AccessClaims, error)
	ValidateRefresh(token string) (*RefreshClaims, error)
}
