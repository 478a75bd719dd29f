package tasksrepobridge

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jrazmi/zentask/core/repositories/tasksrepo"
	"github.com/jrazmi/zentask/sdk/validation"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 2000
)

// ProjectSummary is the slice of the owning project shown on each task.
type ProjectSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsDefault   bool   `json:"isDefault"`
	ShowInToday bool   `json:"showInToday"`
}

type Task struct {
	ID          string         `json:"id"`
	UserID      string         `json:"userId"`
	ProjectID   string         `json:"projectId"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Status      string         `json:"status"`
	Priority    string         `json:"priority"`
	DueDate     *string        `json:"dueDate"`
	SortOrder   int            `json:"sortOrder"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	Project     ProjectSummary `json:"project"`
}

func MarshalToBridge(t tasksrepo.Task) Task {
	return Task{
		ID:          t.TaskID,
		UserID:      t.UserID,
		ProjectID:   t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		Priority:    t.Priority.String(),
		DueDate:     validation.FormatDatePtr(t.DueDate),
		SortOrder:   t.SortOrder,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		Project: ProjectSummary{
			ID:          t.ProjectID,
			Name:        t.ProjectName,
			IsDefault:   t.ProjectIsDefault,
			ShowInToday: t.ProjectShowInToday,
		},
	}
}

func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = MarshalToBridge(t)
	}
	return out
}

// =============================================================================
// Inputs

type CreateTaskInput struct {
	ProjectID   string  `json:"projectId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

func (in CreateTaskInput) Validate() error {
	_, err := in.toRepository("")
	return err
}

func (in CreateTaskInput) toRepository(userID string) (tasksrepo.CreateTask, error) {
	var fe validation.FieldErrors

	if _, err := uuid.Parse(in.ProjectID); err != nil {
		fe.Add("projectId", "must be a valid id")
	}
	title := checkTitle(&fe, in.Title)
	checkDescription(&fe, in.Description)
	priority := parsePriority(&fe, in.Priority)
	due := parseDueDate(&fe, in.DueDate)

	if err := fe.Err(); err != nil {
		return tasksrepo.CreateTask{}, err
	}

	return tasksrepo.CreateTask{
		UserID:      userID,
		ProjectID:   in.ProjectID,
		Title:       title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     due,
	}, nil
}

type UpdateTaskInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"dueDate"`
}

func (in UpdateTaskInput) Validate() error {
	_, err := in.toRepository()
	return err
}

func (in UpdateTaskInput) toRepository() (tasksrepo.UpdateTask, error) {
	var fe validation.FieldErrors
	var out tasksrepo.UpdateTask

	if in.Title != nil {
		out.Title = validation.StringPtr(checkTitle(&fe, *in.Title))
	}
	checkDescription(&fe, in.Description)
	out.Description = in.Description

	if in.Status != nil {
		s, err := tasksrepo.ParseStatus(*in.Status)
		if err != nil {
			fe.Add("status", "must be one of pending, completed")
		}
		out.Status = &s
	}
	out.Priority = parsePriority(&fe, in.Priority)
	out.DueDate = parseDueDate(&fe, in.DueDate)

	if err := fe.Err(); err != nil {
		return tasksrepo.UpdateTask{}, err
	}
	return out, nil
}

type ReorderItemInput struct {
	ID        string `json:"id"`
	SortOrder *int   `json:"sortOrder"`
}

type ReorderInput struct {
	Tasks []ReorderItemInput `json:"tasks"`
}

func (in ReorderInput) Validate() error {
	var fe validation.FieldErrors
	if len(in.Tasks) == 0 {
		fe.Add("tasks", "should not be empty")
	}
	for i, t := range in.Tasks {
		if _, err := uuid.Parse(t.ID); err != nil {
			fe.Add(fmt.Sprintf("tasks.%d.id", i), "must be a valid id")
		}
		if t.SortOrder == nil {
			fe.Add(fmt.Sprintf("tasks.%d.sortOrder", i), "must be an integer")
		}
	}
	return fe.Err()
}

func (in ReorderInput) toRepository() []tasksrepo.ReorderItem {
	items := make([]tasksrepo.ReorderItem, len(in.Tasks))
	for i, t := range in.Tasks {
		items[i] = tasksrepo.ReorderItem{TaskID: t.ID, SortOrder: *t.SortOrder}
	}
	return items
}

// =============================================================================
// Field checks

func checkTitle(fe *validation.FieldErrors, title string) string {
	title = strings.TrimSpace(title)
	switch {
	case title == "":
		fe.Add("title", "should not be empty")
	case utf8.RuneCountInString(title) > maxTitleLength:
		fe.Addf("title", "must be at most %d characters", maxTitleLength)
	}
	return title
}

func checkDescription(fe *validation.FieldErrors, description *string) {
	if description != nil && utf8.RuneCountInString(*description) > maxDescriptionLength {
		fe.Addf("description", "must be at most %d characters", maxDescriptionLength)
	}
}

func parsePriority(fe *validation.FieldErrors, s *string) *tasksrepo.Priority {
	if s == nil {
		return nil
	}
	p, err := tasksrepo.ParsePriority(*s)
	if err != nil {
		fe.Add("priority", "must be one of low, medium, high")
		return nil
	}
	return &p
}

func parseDueDate(fe *validation.FieldErrors, s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, err := validation.ParseCalendarDate(*s)
	if err != nil {
		fe.Add("dueDate", "must be a valid ISO 8601 date string")
		return nil
	}
	return &d
}
