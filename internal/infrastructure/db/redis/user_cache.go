package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/greencode/platform/internal/api/metrics"
	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
)

const defaultUserCacheTTL = 5 * time.Minute

// UserCache is a cache-aside decorator over a UserRepository: reads check
// Redis first, fall back to the source of truth, then populate the cache.
// It is a performance optimization only: any cache failure falls through
// to the source and is never surfaced as a lookup error.
//
// Entries expire after ttl; a login within the TTL window may therefore see
// a stale enabled flag, which is acceptable since token validity already
// ignores post-issuance mutation.
type UserCache struct {
	client *redis.Client
	source ports.UserRepository
	ttl    time.Duration
}

// NewUserCache wraps source with a Redis cache. A non-positive ttl falls
// back to the default.
func NewUserCache(client *redis.Client, source ports.UserRepository, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = defaultUserCacheTTL
	}
	return &UserCache{client: client, source: source, ttl: ttl}
}

// cachedUser is the cache wire format. It carries the password hash, which
// domain.User deliberately excludes from its JSON form; the cache lives next
// to the primary store and holds nothing the store does not.
type cachedUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         string    `json:"role"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func toCached(u *domain.User) cachedUser {
	return cachedUser{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		Enabled:      u.Enabled,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (cu cachedUser) toDomain() *domain.User {
	return &domain.User{
		ID:           cu.ID,
		Username:     cu.Username,
		Email:        cu.Email,
		PasswordHash: cu.PasswordHash,
		FirstName:    cu.FirstName,
		LastName:     cu.LastName,
		Role:         domain.Role(cu.Role),
		Enabled:      cu.Enabled,
		CreatedAt:    cu.CreatedAt,
		UpdatedAt:    cu.UpdatedAt,
	}
}

func (c *UserCache) FindByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	return c.lookup(ctx, c.key("login", usernameOrEmail), func() (*domain.User, error) {
		return c.source.FindByUsernameOrEmail(ctx, usernameOrEmail)
	})
}

func (c *UserCache) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return c.lookup(ctx, c.key("id", id), func() (*domain.User, error) {
		return c.source.FindByID(ctx, id)
	})
}

// Create writes through to the source. Nothing is cached on the write path;
// the next read populates the entry.
func (c *UserCache) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	return c.source.Create(ctx, user)
}

func (c *UserCache) lookup(ctx context.Context, key string, fetch func() (*domain.User, error)) (*domain.User, error) {
	if payload, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cu cachedUser
		if err := json.Unmarshal(payload, &cu); err == nil {
			metrics.UserCacheRequestsTotal.WithLabelValues("hit").Inc()
			return cu.toDomain(), nil
		}
		metrics.UserCacheRequestsTotal.WithLabelValues("error").Inc()
	} else if err != redis.Nil {
		metrics.UserCacheRequestsTotal.WithLabelValues("error").Inc()
	} else {
		metrics.UserCacheRequestsTotal.WithLabelValues("miss").Inc()
	}

	user, err := fetch()
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(toCached(user)); err == nil {
		_ = c.client.Set(ctx, key, payload, c.ttl).Err()
	}
	return user, nil
}

func (c *UserCache) key(kind, value string) string {
	return fmt.Sprintf("user:%s:%s", kind, value)
}
