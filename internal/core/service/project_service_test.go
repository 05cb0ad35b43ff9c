package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/greencode/platform/internal/core/domain"
	"github.com/greencode/platform/internal/core/ports"
	"github.com/greencode/platform/pkg/logger"
)

type stubProjectRepo struct {
	projects map[string]*domain.Project
	nextID   int
}

func newStubProjectRepo() *stubProjectRepo {
	return &stubProjectRepo{projects: make(map[string]*domain.Project), nextID: 1}
}

func cloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubProjectRepo) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	created := cloneProject(p)
	created.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.projects[created.ID] = cloneProject(created)
	return created, nil
}

func (r *stubProjectRepo) FindByID(_ context.Context, id string) (*domain.Project, error) {
	if p, ok := r.projects[id]; ok {
		return cloneProject(p), nil
	}
	return nil, domain.ErrProjectNotFound
}

func (r *stubProjectRepo) Update(_ context.Context, p *domain.Project) error {
	if _, ok := r.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *stubProjectRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

func (r *stubProjectRepo) List(_ context.Context, filter ports.ListProjectsFilter) ([]*domain.Project, int64, error) {
	var matched []*domain.Project
	for _, p := range r.projects {
		if filter.Category != "" && string(p.Category) != filter.Category {
			continue
		}
		if filter.Status != "" && string(p.Status) != filter.Status {
			continue
		}
		if filter.VisibleTo != "" && !p.Public && p.ManagerID != filter.VisibleTo {
			continue
		}
		matched = append(matched, cloneProject(p))
	}
	return matched, int64(len(matched)), nil
}

func newProjectFixture(t *testing.T) (*ProjectService, *stubProjectRepo) {
	t.Helper()
	repo := newStubProjectRepo()
	return NewProjectService(repo, logger.Init(logger.Options{Level: "error"})), repo
}

func asUser(id string) ports.Caller {
	return ports.Caller{Subject: id, Role: domain.RoleUser}
}

func TestProjectService_CreateAssignsManager(t *testing.T) {
	svc, _ := newProjectFixture(t)

	created, err := svc.CreateProject(context.Background(), asUser("7"), ports.CreateProjectInput{
		Name:     "River cleanup",
		Category: string(domain.CategoryWaterConservation),
		Public:   true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ManagerID != "7" {
		t.Fatalf("caller must become manager, got %q", created.ManagerID)
	}
	if created.Status != domain.StatusPlanned {
		t.Fatalf("new projects must start planned, got %s", created.Status)
	}
}

func TestProjectService_GetHidesPrivateProjects(t *testing.T) {
	svc, _ := newProjectFixture(t)

	created, err := svc.CreateProject(context.Background(), asUser("7"), ports.CreateProjectInput{
		Name:     "Secret grove",
		Category: string(domain.CategoryForestry),
		Public:   false,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Owner sees it.
	if _, err := svc.GetProject(context.Background(), asUser("7"), created.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}

	// Another user gets not-found, not forbidden: existence must not leak.
	if _, err := svc.GetProject(context.Background(), asUser("8"), created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}

	// Moderators see everything.
	mod := ports.Caller{Subject: "9", Role: domain.RoleModerator}
	if _, err := svc.GetProject(context.Background(), mod, created.ID); err != nil {
		t.Fatalf("moderator read failed: %v", err)
	}
}

func TestProjectService_WritesHidePrivateProjects(t *testing.T) {
	svc, _ := newProjectFixture(t)
	ctx := context.Background()

	created, err := svc.CreateProject(ctx, asUser("7"), ports.CreateProjectInput{
		Name:     "Hidden wetland",
		Category: string(domain.CategoryWaterConservation),
		Public:   false,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// A stranger must get the same not-found on every path; a forbidden on
	// update or delete would confirm the hidden project exists.
	name := "renamed"
	if _, err := svc.UpdateProject(ctx, asUser("8"), created.ID, ports.UpdateProjectInput{Name: &name}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("update of hidden project must read as not found, got %v", err)
	}
	if err := svc.DeleteProject(ctx, asUser("8"), created.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("delete of hidden project must read as not found, got %v", err)
	}

	// The owner's writes are unaffected.
	if _, err := svc.UpdateProject(ctx, asUser("7"), created.ID, ports.UpdateProjectInput{Name: &name}); err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if err := svc.DeleteProject(ctx, asUser("7"), created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestProjectService_UpdateOwnership(t *testing.T) {
	svc, _ := newProjectFixture(t)

	created, err := svc.CreateProject(context.Background(), asUser("7"), ports.CreateProjectInput{
		Name:     "Solar roofs",
		Category: string(domain.CategoryRenewableEnergy),
		Public:   true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	name := "Solar roofs II"
	if _, err := svc.UpdateProject(context.Background(), asUser("8"), created.ID, ports.UpdateProjectInput{Name: &name}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	updated, err := svc.UpdateProject(context.Background(), asUser("7"), created.ID, ports.UpdateProjectInput{Name: &name})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != name {
		t.Fatalf("update not applied: %q", updated.Name)
	}

	// Moderator may update any project.
	status := string(domain.StatusInProgress)
	mod := ports.Caller{Subject: "9", Role: domain.RoleModerator}
	if _, err := svc.UpdateProject(context.Background(), mod, created.ID, ports.UpdateProjectInput{Status: &status}); err != nil {
		t.Fatalf("moderator update failed: %v", err)
	}
}

func TestProjectService_DeleteOwnership(t *testing.T) {
	svc, repo := newProjectFixture(t)

	created, err := svc.CreateProject(context.Background(), asUser("7"), ports.CreateProjectInput{
		Name:     "Compost hub",
		Category: string(domain.CategoryWasteManagement),
		Public:   true,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.DeleteProject(context.Background(), asUser("8"), created.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}
	if err := svc.DeleteProject(context.Background(), asUser("7"), created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, ok := repo.projects[created.ID]; ok {
		t.Fatalf("project still present after delete")
	}
}

func TestProjectService_ListScopesVisibility(t *testing.T) {
	svc, _ := newProjectFixture(t)
	ctx := context.Background()

	mustCreate := func(caller ports.Caller, name string, public bool) {
		t.Helper()
		if _, err := svc.CreateProject(ctx, caller, ports.CreateProjectInput{
			Name:     name,
			Category: string(domain.CategoryOther),
			Public:   public,
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	mustCreate(asUser("7"), "mine-private", false)
	mustCreate(asUser("7"), "mine-public", true)
	mustCreate(asUser("8"), "theirs-private", false)
	mustCreate(asUser("8"), "theirs-public", true)

	result, err := svc.ListProjects(ctx, asUser("7"), ports.ListProjectsInput{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("user 7 should see 3 projects, got %d", result.Total)
	}

	admin := ports.Caller{Subject: "1", Role: domain.RoleAdmin}
	result, err = svc.ListProjects(ctx, admin, ports.ListProjectsInput{})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if result.Total != 4 {
		t.Fatalf("admin should see all 4 projects, got %d", result.Total)
	}
}

func TestProjectService_ListCapsLimit(t *testing.T) {
	svc, _ := newProjectFixture(t)

	result, err := svc.ListProjects(context.Background(), asUser("7"), ports.ListProjectsInput{Page: -3, Limit: 10_000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if result.Page != 1 {
		t.Fatalf("page should clamp to 1, got %d", result.Page)
	}
	if result.Limit != maxPageLimit {
		t.Fatalf("limit should cap at %d, got %d", maxPageLimit, result.Limit)
	}
}
