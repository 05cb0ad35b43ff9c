package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ProjectService implements project use cases. Role-level permission is
// enforced by the HTTP layer before these methods run; this service adds the
// instance-level ownership checks (subject id vs. manager id).
type ProjectService struct {
	repo   ports.ProjectRepository
	logger zerolog.Logger
}

func NewProjectService(repo ports.ProjectRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, logger: logger}
}

// CreateProject stores a new project managed by the caller.
func (s *ProjectService) CreateProject(ctx context.Context, caller ports.Caller, input ports.CreateProjectInput) (*domain.Project, error) {
	now := time.Now().UTC()
	project := &domain.Project{
		Name:                 input.Name,
		Description:          input.Description,
		Category:             domain.ProjectCategory(input.Category),
		Status:               domain.StatusPlanned,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		Budget:               input.Budget,
		Location:             input.Location,
		Coordinates:          input.Coordinates,
		ImpactScore:          input.ImpactScore,
		SustainabilityRating: input.SustainabilityRating,
		ManagerID:            caller.Subject,
		TeamSize:             input.TeamSize,
		Public:               input.Public,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	created, err := s.repo.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", created.ID).Str("manager_id", caller.Subject).Msg("project created")
	return created, nil
}

// GetProject returns one project. Non-public projects are visible only to
// their manager and to moderators/admins; a hidden project reads as not
// found so its existence does not leak.
func (s *ProjectService) GetProject(ctx context.Context, caller ports.Caller, id string) (*domain.Project, error) {
	return s.visibleProject(ctx, caller, id)
}

// ListProjects returns a page of projects visible to the caller.
func (s *ProjectService) ListProjects(ctx context.Context, caller ports.Caller, input ports.ListProjectsInput) (*ports.ListProjectsResult, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	filter := ports.ListProjectsFilter{
		Category: input.Category,
		Status:   input.Status,
		Page:     page,
		Limit:    limit,
	}
	if !s.canSeeAll(caller) {
		filter.VisibleTo = caller.Subject
	}

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list projects")
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ports.ListProjectsResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateProject applies the non-nil fields of input. Callers without the
// update-any permission may only touch projects they manage. Projects the
// caller cannot see read as not found here too, never as forbidden.
func (s *ProjectService) UpdateProject(ctx context.Context, caller ports.Caller, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	project, err := s.visibleProject(ctx, caller, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwnership(caller, project); err != nil {
		return nil, err
	}

	applyProjectUpdate(project, input)
	project.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, project); err != nil {
		s.logger.Error().Err(err).Str("project_id", id).Msg("failed to update project")
		return nil, err
	}
	return project, nil
}

// DeleteProject removes a project, subject to the same ownership rule as
// UpdateProject.
func (s *ProjectService) DeleteProject(ctx context.Context, caller ports.Caller, id string) error {
	project, err := s.visibleProject(ctx, caller, id)
	if err != nil {
		return err
	}
	if err := s.checkOwnership(caller, project); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("project_id", id).Msg("failed to delete project")
		return err
	}
	s.logger.Info().Str("project_id", id).Str("subject", caller.Subject).Msg("project deleted")
	return nil
}

// visibleProject loads a project and applies the visibility rule shared by
// every per-project operation: a project the caller cannot see is not found,
// on reads and writes alike, so no response distinguishes hidden from absent.
func (s *ProjectService) visibleProject(ctx context.Context, caller ports.Caller, id string) (*domain.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !project.Public && !s.canSeeAll(caller) && project.ManagerID != caller.Subject {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

// canSeeAll reports whether the caller's role bypasses visibility and
// ownership scoping.
func (s *ProjectService) canSeeAll(caller ports.Caller) bool {
	return caller.Role == domain.RoleModerator || caller.Role == domain.RoleAdmin
}

func (s *ProjectService) checkOwnership(caller ports.Caller, project *domain.Project) error {
	if s.canSeeAll(caller) {
		return nil
	}
	if project.ManagerID != caller.Subject {
		return domain.ErrForbidden
	}
	return nil
}

func applyProjectUpdate(project *domain.Project, input ports.UpdateProjectInput) {
	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		project.Status = domain.ProjectStatus(*input.Status)
	}
	if input.EndDate != nil {
		project.EndDate = *input.EndDate
	}
	if input.Budget != nil {
		project.Budget = *input.Budget
	}
	if input.ActualCost != nil {
		project.ActualCost = *input.ActualCost
	}
	if input.Location != nil {
		project.Location = *input.Location
	}
	if input.ImpactScore != nil {
		project.ImpactScore = *input.ImpactScore
	}
	if input.SustainabilityRating != nil {
		project.SustainabilityRating = *input.SustainabilityRating
	}
	if input.TeamSize != nil {
		project.TeamSize = *input.TeamSize
	}
	if input.Public != nil {
		project.Public = *input.Public
	}
}
