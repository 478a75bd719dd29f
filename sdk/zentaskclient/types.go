package zentaskclient

import "time"

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type Verification struct {
	Valid bool `json:"valid"`
	User  struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

type Project struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	IsDefault            bool      `json:"isDefault"`
	ShowInToday          bool      `json:"showInToday"`
	TaskCount            int       `json:"taskCount"`
	UncompletedTaskCount int       `json:"uncompletedTaskCount"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

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

// Page is one page of a task listing.
type Page struct {
	Data       []Task `json:"data"`
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

type CreateProject struct {
	Name        string `json:"name"`
	ShowInToday *bool  `json:"showInToday,omitempty"`
}

type UpdateProject struct {
	Name        *string `json:"name,omitempty"`
	ShowInToday *bool   `json:"showInToday,omitempty"`
}

type CreateTask struct {
	ProjectID   string  `json:"projectId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

type UpdateTask struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	DueDate     *string `json:"dueDate,omitempty"`
}

type ReorderItem struct {
	ID        string `json:"id"`
	SortOrder int    `json:"sortOrder"`
}

// TaskQuery filters, sorts and pages a task listing. Zero values are
// left off the request.
type TaskQuery struct {
	ProjectID string
	Status    string
	Priority  string
	DueDate   string
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}
