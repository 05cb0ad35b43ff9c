package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
)

// dummyHash is a valid bcrypt hash compared against on the unknown-user and
// disabled paths so their latency matches the wrong-password path.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// AuthService implements registration, login and refresh issuance.
type AuthService struct {
	users  ports.UserRepository
	tokens ports.TokenService
	audit  ports.AuditRecorder
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, audit ports.AuditRecorder, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, audit: audit, logger: logger}
}

// Register creates a new account with the USER role. Role elevation is an
// administrative operation outside this service.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         domain.RoleUser,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.record(ctx, created.ID, "register", "success")
	return created, nil
}

// Login verifies credentials and mints a token pair. The three failure kinds
// stay distinct here; the API boundary collapses them into one response.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail, password string) (*ports.TokenPair, *ports.IdentitySummary, error) {
	if usernameOrEmail == "" || password == "" {
		// Burn a comparison here as well: empty-credential probes must not
		// return faster than wrong-password ones.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		// Burn a comparison so an unknown name costs the same as a bad password.
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		s.record(ctx, usernameOrEmail, "login", "unknown_user")
		return nil, nil, err
	}

	if !user.Enabled {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		s.record(ctx, user.ID, "login", "disabled")
		return nil, nil, domain.ErrUserDisabled
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.record(ctx, user.ID, "login", "bad_password")
		return nil, nil, domain.ErrInvalidCredentials
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return nil, nil, err
	}

	s.record(ctx, user.ID, "login", "success")
	return pair, summary(user), nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The user is
// re-read so the new claims snapshot current state; a since-disabled user
// cannot refresh.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*ports.TokenPair, *ports.IdentitySummary, error) {
	claims, err := s.tokens.ValidateRefresh(refreshToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		s.record(ctx, claims.Subject, "refresh", "unknown_user")
		return nil, nil, err
	}
	if !user.Enabled {
		s.record(ctx, user.ID, "refresh", "disabled")
		return nil, nil, domain.ErrUserDisabled
	}

	pair, err := s.tokens.IssuePair(user)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("token issuance failed")
		return nil, nil, err
	}

	s.record(ctx, user.ID, "refresh", "success")
	return pair, summary(user), nil
}

func summary(user *domain.User) *ports.IdentitySummary {
	return &ports.IdentitySummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

// record sends an audit event down the side channel. Failures are logged and
// swallowed: auditing never changes an auth outcome.
func (s *AuthService) record(ctx context.Context, actor, action, outcome string) {
	if s.audit == nil {
		return
	}
	event := domain.AuditEvent{
		Actor:     actor,
		Action:    action,
		Outcome:   outcome,
		Timestamp: time.Now().UTC(),
	}
	if err := s.audit.Record(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Msg("audit record failed")
	}
}
