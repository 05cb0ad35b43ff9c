package ports

import (
	"context"

	"github.com/greencode/platform/internal/core/domain"
)

// ListProjectsFilter carries all query parameters for listing projects.
// Visibility scoping (public-only vs. everything) is decided by the service
// layer from the caller's role and passed down here.
type ListProjectsFilter struct {
	Category string // optional: filter by project category
	Status   string // optional: filter by project status
	// VisibleTo scopes results to public projects plus those managed by the
	// given user id. Empty = no visibility restriction (moderator/admin).
	VisibleTo string
	Page      int // 1-based
	Limit     int // max rows per page (capped at 100 by service)
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	// List returns a page of projects matching filter and the total count.
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, int64, error)
}
