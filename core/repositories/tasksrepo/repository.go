// Package tasksrepo owns the task lifecycle: creation at the end of a
// project's manual order, filtered listing, field updates, bulk
// re-sequencing and the today and upcoming views.
package tasksrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/core/scaffolding/fop"
	"github.com/jrazmi/zentask/sdk/logger"
)

// Storer is the persistence contract for tasks. Reads return tasks joined
// with their project.
type Storer interface {
	Create(ctx context.Context, task Task) (Task, error)
	Get(ctx context.Context, taskID string, userID string) (Task, error)
	List(ctx context.Context, filter QueryFilter, orderBy fop.By, page fop.Page) ([]Task, error)
	Count(ctx context.Context, filter QueryFilter) (int, error)
	Update(ctx context.Context, taskID string, update UpdateTask, updatedAt time.Time) error
	Delete(ctx context.Context, taskID string) error
	MaxSortOrder(ctx context.Context, projectID string) (int, error)
	CountOwned(ctx context.Context, userID string, taskIDs []string) (int, error)
	SetSortOrder(ctx context.Context, taskID string, sortOrder int, updatedAt time.Time) error
	ListToday(ctx context.Context, userID string, window Window) ([]Task, error)
	ListUpcoming(ctx context.Context, userID string, window Window) ([]Task, error)
}

// ProjectFinder resolves a project owned by a user.
type ProjectFinder interface {
	Lookup(ctx context.Context, projectID, userID string) (projectsrepo.Project, error)
}

type Option func(*Repository)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// WithLocation sets the time zone that defines "today".
func WithLocation(loc *time.Location) Option {
	return func(r *Repository) {
		if loc != nil {
			r.loc = loc
		}
	}
}

type Repository struct {
	log      *logger.Logger
	storer   Storer
	projects ProjectFinder
	tx       repositories.Transactor
	now      func() time.Time
	loc      *time.Location
}

func NewRepository(log *logger.Logger, storer Storer, projects ProjectFinder, tx repositories.Transactor, opts ...Option) *Repository {
	r := &Repository{
		log:      log,
		storer:   storer,
		projects: projects,
		tx:       tx,
		now:      time.Now,
		loc:      time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create appends a task to the end of its project's manual order.
func (r *Repository) Create(ctx context.Context, input CreateTask) (Task, error) {
	if _, err := r.projects.Lookup(ctx, input.ProjectID, input.UserID); err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	priority := PriorityMedium
	if input.Priority != nil {
		priority = *input.Priority
	}

	now := r.now().UTC()
	task := Task{
		TaskID:      uuid.NewString(),
		UserID:      input.UserID,
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		Status:      StatusPending,
		Priority:    priority,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created Task
	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		maxSort, err := r.storer.MaxSortOrder(ctx, input.ProjectID)
		if err != nil {
			return fmt.Errorf("max sort order: %w", err)
		}
		task.SortOrder = maxSort + 1

		created, err = r.storer.Create(ctx, task)
		return err
	})
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", created.TaskID, "project_id", created.ProjectID, "sort_order", created.SortOrder)
	return created, nil
}

// List returns one page of the user's tasks and the total match count.
// The two reads are not taken from one snapshot.
func (r *Repository) List(ctx context.Context, filter QueryFilter, orderBy fop.By, page fop.Page) (fop.PageResult[Task], error) {
	tasks, err := r.storer.List(ctx, filter, orderBy, page)
	if err != nil {
		return fop.PageResult[Task]{}, fmt.Errorf("list tasks: %w", err)
	}

	total, err := r.storer.Count(ctx, filter)
	if err != nil {
		return fop.PageResult[Task]{}, fmt.Errorf("count tasks: %w", err)
	}

	return fop.PageResult[Task]{Items: tasks, Total: total, Page: page}, nil
}

func (r *Repository) Get(ctx context.Context, taskID, userID string) (Task, error) {
	task, err := r.storer.Get(ctx, taskID, userID)
	if err != nil {
		return Task{}, fmt.Errorf("get task %s: %w", taskID, err)
	}
	return task, nil
}

// Update applies the given field changes and returns the stored task.
func (r *Repository) Update(ctx context.Context, taskID, userID string, input UpdateTask) (Task, error) {
	if _, err := r.storer.Get(ctx, taskID, userID); err != nil {
		return Task{}, fmt.Errorf("update task %s: %w", taskID, err)
	}

	if !input.IsEmpty() {
		if err := r.storer.Update(ctx, taskID, input, r.now().UTC()); err != nil {
			return Task{}, fmt.Errorf("update task %s: %w", taskID, err)
		}
		r.log.InfoContext(ctx, "task updated", "task_id", taskID)
	}

	return r.Get(ctx, taskID, userID)
}

func (r *Repository) Delete(ctx context.Context, taskID, userID string) error {
	if _, err := r.storer.Get(ctx, taskID, userID); err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}
	if err := r.storer.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("delete task %s: %w", taskID, err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", taskID)
	return nil
}

// Reorder assigns sort keys in bulk. Every id must belong to the user or
// nothing is written. Values are applied as given; when an id repeats the
// last pair wins.
func (r *Repository) Reorder(ctx context.Context, userID string, items []ReorderItem) error {
	if len(items) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.TaskID]; ok {
			continue
		}
		seen[item.TaskID] = struct{}{}
		ids = append(ids, item.TaskID)
	}

	err := r.tx.WithinTx(ctx, func(ctx context.Context) error {
		owned, err := r.storer.CountOwned(ctx, userID, ids)
		if err != nil {
			return fmt.Errorf("count owned: %w", err)
		}
		if owned != len(ids) {
			return repositories.Deny("one or more tasks do not belong to the current user")
		}

		now := r.now().UTC()
		for _, item := range items {
			if err := r.storer.SetSortOrder(ctx, item.TaskID, item.SortOrder, now); err != nil {
				return fmt.Errorf("set sort order %s: %w", item.TaskID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reorder tasks: %w", err)
	}

	r.log.InfoContext(ctx, "tasks reordered", "user_id", userID, "count", len(items))
	return nil
}

// Today returns tasks due today, plus undated tasks created today, from
// projects shown in the today view.
func (r *Repository) Today(ctx context.Context, userID string) ([]Task, error) {
	tasks, err := r.storer.ListToday(ctx, userID, TodayWindow(r.now(), r.loc))
	if err != nil {
		return nil, fmt.Errorf("today tasks: %w", err)
	}
	return tasks, nil
}

// Upcoming returns pending tasks due within the next seven local days,
// today included. The project today flag is not consulted.
func (r *Repository) Upcoming(ctx context.Context, userID string) ([]Task, error) {
	tasks, err := r.storer.ListUpcoming(ctx, userID, UpcomingWindow(r.now(), r.loc))
	if err != nil {
		return nil, fmt.Errorf("upcoming tasks: %w", err)
	}
	return tasks, nil
}
