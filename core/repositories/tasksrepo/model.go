package tasksrepo

import (
	"fmt"
	"time"
)

// Status is stored as a small integer. Pending sorts before completed.
type Status int16

const (
	StatusPending   Status = 0
	StatusCompleted Status = 1
)

var statusNames = map[Status]string{
	StatusPending:   "pending",
	StatusCompleted: "completed",
}

// ParseStatus maps the external lowercase name to a Status.
func ParseStatus(s string) (Status, error) {
	for k, v := range statusNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", s)
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int16(s))
}

// Priority is stored as a small integer, so ordering by it ranks low < high.
type Priority int16

const (
	PriorityLow    Priority = 1
	PriorityMedium Priority = 2
	PriorityHigh   Priority = 3
)

var priorityNames = map[Priority]string{
	PriorityLow:    "low",
	PriorityMedium: "medium",
	PriorityHigh:   "high",
}

// ParsePriority maps the external lowercase name to a Priority.
func ParsePriority(s string) (Priority, error) {
	for k, v := range priorityNames {
		if v == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown priority %q", s)
}

func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return fmt.Sprintf("priority(%d)", int16(p))
}

// Task is a task row joined with the fields of its project that callers
// display alongside it.
type Task struct {
	TaskID      string     `db:"task_id"`
	UserID      string     `db:"user_id"`
	ProjectID   string     `db:"project_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Status      Status     `db:"status"`
	Priority    Priority   `db:"priority"`
	DueDate     *time.Time `db:"due_date"`
	SortOrder   int        `db:"sort_order"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`

	ProjectName        string `db:"project_name"`
	ProjectIsDefault   bool   `db:"project_is_default"`
	ProjectShowInToday bool   `db:"project_show_in_today"`
}

// CreateTask holds caller input. DueDate must already be a calendar date
// at UTC midnight. Priority defaults to medium.
type CreateTask struct {
	UserID      string
	ProjectID   string
	Title       string
	Description *string
	Priority    *Priority
	DueDate     *time.Time
}

// UpdateTask carries optional field changes. Nil fields are untouched.
type UpdateTask struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	DueDate     *time.Time
}

func (u UpdateTask) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Status == nil && u.Priority == nil && u.DueDate == nil
}

// QueryFilter narrows List. UserID is always required.
type QueryFilter struct {
	UserID    string
	ProjectID *string
	Status    *Status
	Priority  *Priority
	DueDate   *time.Time
}

// ReorderItem assigns a sort key to one task.
type ReorderItem struct {
	TaskID    string
	SortOrder int
}

// Window bounds a derived view. Due bounds are calendar dates at UTC
// midnight; created bounds are instants.
type Window struct {
	DueFrom     time.Time
	DueTo       time.Time
	CreatedFrom time.Time
	CreatedTo   time.Time
}
