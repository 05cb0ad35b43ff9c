package ports

import (
	"context"
	"time"

	"github.com/greencode/platform/internal/core/domain"
)

// Caller identifies the authenticated user performing a project operation,
// taken from validated token claims.
type Caller struct {
	Subject string
	Role    domain.Role
}

// CreateProjectInput carries all data needed to create a project. The caller
// becomes the project's manager.
type CreateProjectInput struct {
	Name                 string
	Description          string
	Category             string
	StartDate            time.Time
	EndDate              time.Time
	Budget               float64
	Location             string
	Coordinates          *domain.Coordinates
	ImpactScore          int
	SustainabilityRating int
	TeamSize             int
	Public               bool
}

// UpdateProjectInput carries mutable project fields. Nil pointers leave the
// stored value untouched.
type UpdateProjectInput struct {
	Name                 *string
	Description          *string
	Status               *string
	EndDate              *time.Time
	Budget               *float64
	ActualCost           *float64
	Location             *string
	ImpactScore          *int
	SustainabilityRating *int
	TeamSize             *int
	Public               *bool
}

// ListProjectsInput carries all parameters for the list endpoint.
type ListProjectsInput struct {
	Category string
	Status   string
	Page     int
	Limit    int
}

// ListProjectsResult is returned by ListProjects.
type ListProjectsResult struct {
	Items      []*domain.Project
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ProjectService defines use-case operations for projects. Role-level
// permission is checked by the HTTP layer; the service performs the
// instance-level ownership checks.
type ProjectService interface {
	CreateProject(ctx context.Context, caller Caller, input CreateProjectInput) (*domain.Project, error)
	GetProject(ctx context.Context, caller Caller, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, caller Caller, input ListProjectsInput) (*ListProjectsResult, error)
	UpdateProject(ctx context.Context, caller Caller, id string, input UpdateProjectInput) (*domain.Project, error)
	DeleteProject(ctx context.Context, caller Caller, id string) error
}
