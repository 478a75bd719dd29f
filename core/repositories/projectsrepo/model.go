package projectsrepo

import "time"

// DefaultProjectName names the project every user receives at registration.
const DefaultProjectName = "Inbox"

type Project struct {
	ProjectID   string    `db:"project_id"`
	UserID      string    `db:"user_id"`
	Name        string    `db:"name"`
	IsDefault   bool      `db:"is_default"`
	ShowInToday bool      `db:"show_in_today"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ProjectWithCounts annotates a project with its task totals.
type ProjectWithCounts struct {
	Project
	TaskCount            int `db:"task_count"`
	UncompletedTaskCount int `db:"uncompleted_task_count"`
}

type CreateProject struct {
	UserID      string
	Name        string
	ShowInToday *bool
}

// UpdateProject carries optional field changes. Nil fields are untouched.
type UpdateProject struct {
	Name        *string
	ShowInToday *bool
}

// IsEmpty reports whether no field is being changed.
func (u UpdateProject) IsEmpty() bool {
	return u.Name == nil && u.ShowInToday == nil
}
