package zentaskclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// =============================================================================
// Auth

func (c *Client) Register(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]any{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, email, password string, rememberMe bool) (AuthResponse, error) {
	var out AuthResponse
	body := map[string]any{"email": email, "password": password, "rememberMe": rememberMe}
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &out)
	return out, err
}

func (c *Client) Verify(ctx context.Context) (Verification, error) {
	var out Verification
	err := c.do(ctx, http.MethodGet, "/auth/verify", nil, nil, &out)
	return out, err
}

func (c *Client) Profile(ctx context.Context) (User, error) {
	var out User
	err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out)
	return out, err
}

// =============================================================================
// Projects

func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out []Project
	err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &out)
	return out, err
}

func (c *Client) GetProject(ctx context.Context, id string) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, in CreateProject) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPost, "/projects", nil, in, &out)
	return out, err
}

func (c *Client) UpdateProject(ctx context.Context, id string, in UpdateProject) (Project, error) {
	var out Project
	err := c.do(ctx, http.MethodPatch, "/projects/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil, nil)
}

// =============================================================================
// Tasks

func (c *Client) ListTasks(ctx context.Context, q TaskQuery) (Page, error) {
	var out Page
	err := c.do(ctx, http.MethodGet, "/tasks", q.values(), nil, &out)
	return out, err
}

func (c *Client) TodayTasks(ctx context.Context) ([]Task, error) {
	var out []Task
	err := c.do(ctx, http.MethodGet, "/tasks/today", nil, nil, &out)
	return out, err
}

func (c *Client) UpcomingTasks(ctx context.Context) ([]Task, error) {
	var out []Task
	err := c.do(ctx, http.MethodGet, "/tasks/upcoming", nil, nil, &out)
	return out, err
}

func (c *Client) GetTask(ctx context.Context, id string) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, in CreateTask) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPost, "/tasks", nil, in, &out)
	return out, err
}

func (c *Client) UpdateTask(ctx context.Context, id string, in UpdateTask) (Task, error) {
	var out Task
	err := c.do(ctx, http.MethodPatch, "/tasks/"+url.PathEscape(id), nil, in, &out)
	return out, err
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) ReorderTasks(ctx context.Context, items []ReorderItem) error {
	body := map[string]any{"tasks": items}
	return c.do(ctx, http.MethodPost, "/tasks/reorder", nil, body, nil)
}

func (q TaskQuery) values() url.Values {
	v := url.Values{}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("projectId", q.ProjectID)
	set("status", q.Status)
	set("priority", q.Priority)
	set("dueDate", q.DueDate)
	set("sortBy", q.SortBy)
	set("sortOrder", q.SortOrder)
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}
