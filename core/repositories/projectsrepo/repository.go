// Package projectsrepo stores user projects and enforces the default
// project rules: one per user, never renamed, never deleted.
package projectsrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/sdk/logger"
)

// Storer is the persistence contract for projects. Every lookup is scoped
// to the owning user, so a foreign id behaves like a missing one.
type Storer interface {
	Create(ctx context.Context, project Project) (Project, error)
	Get(ctx context.Context, projectID string, userID string) (Project, error)
	GetWithCounts(ctx context.Context, projectID string, userID string) (ProjectWithCounts, error)
	GetDefault(ctx context.Context, userID string) (Project, error)
	List(ctx context.Context, userID string) ([]ProjectWithCounts, error)
	Update(ctx context.Context, projectID string, update UpdateProject, updatedAt time.Time) error
	Delete(ctx context.Context, projectID string) error
}

type Repository struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
}

func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
		now:    time.Now,
	}
}

// Create inserts a non-default project.
func (r *Repository) Create(ctx context.Context, input CreateProject) (ProjectWithCounts, error) {
	showInToday := true
	if input.ShowInToday != nil {
		showInToday = *input.ShowInToday
	}

	project, err := r.insert(ctx, input.UserID, input.Name, false, showInToday)
	if err != nil {
		return ProjectWithCounts{}, fmt.Errorf("create project: %w", err)
	}

	r.log.InfoContext(ctx, "project created", "project_id", project.ProjectID, "user_id", project.UserID)
	return ProjectWithCounts{Project: project}, nil
}

// CreateDefault inserts the user's default project. Registration calls it
// inside the same transaction that creates the user.
func (r *Repository) CreateDefault(ctx context.Context, userID string) (Project, error) {
	project, err := r.insert(ctx, userID, DefaultProjectName, true, true)
	if err != nil {
		return Project{}, fmt.Errorf("create default project: %w", err)
	}
	return project, nil
}

func (r *Repository) insert(ctx context.Context, userID, name string, isDefault, showInToday bool) (Project, error) {
	now := r.now().UTC()
	return r.storer.Create(ctx, Project{
		ProjectID:   uuid.NewString(),
		UserID:      userID,
		Name:        name,
		IsDefault:   isDefault,
		ShowInToday: showInToday,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// List returns the user's projects, default first, then oldest first.
func (r *Repository) List(ctx context.Context, userID string) ([]ProjectWithCounts, error) {
	projects, err := r.storer.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Get returns the project with task counts.
func (r *Repository) Get(ctx context.Context, projectID, userID string) (ProjectWithCounts, error) {
	project, err := r.storer.GetWithCounts(ctx, projectID, userID)
	if err != nil {
		return ProjectWithCounts{}, fmt.Errorf("get project %s: %w", projectID, err)
	}
	return project, nil
}

// Lookup returns the bare project, used for ownership checks.
func (r *Repository) Lookup(ctx context.Context, projectID, userID string) (Project, error) {
	project, err := r.storer.Get(ctx, projectID, userID)
	if err != nil {
		return Project{}, fmt.Errorf("lookup project %s: %w", projectID, err)
	}
	return project, nil
}

func (r *Repository) GetDefault(ctx context.Context, userID string) (Project, error) {
	project, err := r.storer.GetDefault(ctx, userID)
	if err != nil {
		return Project{}, fmt.Errorf("get default project: %w", err)
	}
	return project, nil
}

// Update applies field changes. The default project rejects any change.
func (r *Repository) Update(ctx context.Context, projectID, userID string, input UpdateProject) (ProjectWithCounts, error) {
	project, err := r.storer.Get(ctx, projectID, userID)
	if err != nil {
		return ProjectWithCounts{}, fmt.Errorf("update project %s: %w", projectID, err)
	}

	if input.IsEmpty() {
		return r.Get(ctx, projectID, userID)
	}
	if project.IsDefault {
		return ProjectWithCounts{}, repositories.Deny("the default project cannot be modified")
	}

	if err := r.storer.Update(ctx, projectID, input, r.now().UTC()); err != nil {
		return ProjectWithCounts{}, fmt.Errorf("update project %s: %w", projectID, err)
	}

	r.log.InfoContext(ctx, "project updated", "project_id", projectID)
	return r.Get(ctx, projectID, userID)
}

// Delete removes a non-default project and, through the foreign key
// cascade, all of its tasks.
func (r *Repository) Delete(ctx context.Context, projectID, userID string) error {
	project, err := r.storer.Get(ctx, projectID, userID)
	if err != nil {
		return fmt.Errorf("delete project %s: %w", projectID, err)
	}
	if project.IsDefault {
		return repositories.Deny("the default project cannot be deleted")
	}

	if err := r.storer.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("delete project %s: %w", projectID, err)
	}

	r.log.InfoContext(ctx, "project deleted", "project_id", projectID)
	return nil
}
