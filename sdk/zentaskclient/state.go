package zentaskclient

import (
	"context"
	"slices"
	"sync"
)

// Fallback messages used when a failure carries no server message.
const (
	msgLogin         = "login failed"
	msgRegister      = "registration failed"
	msgFetchProjects = "failed to load projects"
	msgFetchProject  = "failed to load project"
	msgCreateProject = "failed to create project"
	msgUpdateProject = "failed to update project"
	msgDeleteProject = "failed to delete project"
	msgFetchTasks    = "failed to load tasks"
	msgFetchToday    = "failed to load today's tasks"
	msgFetchUpcoming = "failed to load upcoming tasks"
	msgFetchTask     = "failed to load task"
	msgCreateTask    = "failed to create task"
	msgUpdateTask    = "failed to update task"
	msgDeleteTask    = "failed to delete task"
	msgReorderTasks  = "failed to reorder tasks"
)

// State ties the containers to one client. Mutations refresh the
// containers that depend on them, Logout clears everything and a 401 on
// an authenticated call logs out.
type State struct {
	Client   *Client
	Session  *Session
	Projects *ProjectList
	Tasks    *TaskList
}

func NewState(client *Client) *State {
	projects := NewProjectList(client)
	s := &State{
		Client:   client,
		Session:  NewSession(client),
		Projects: projects,
		Tasks:    NewTaskList(client, projects),
	}
	client.OnUnauthorized(s.Logout)
	return s
}

// Logout drops the token and every cached resource.
func (s *State) Logout() {
	s.Session.Clear()
	s.Projects.Clear()
	s.Tasks.Clear()
}

// =============================================================================
// Session

type Session struct {
	client *Client

	mu   sync.RWMutex
	user *User
	err  string
}

func NewSession(client *Client) *Session {
	return &Session{client: client}
}

func (s *Session) Login(ctx context.Context, email, password string, rememberMe bool) error {
	res, err := s.client.Login(ctx, email, password, rememberMe)
	return s.apply(res, err, msgLogin)
}

func (s *Session) Register(ctx context.Context, email, password string) error {
	res, err := s.client.Register(ctx, email, password)
	return s.apply(res, err, msgRegister)
}

func (s *Session) apply(res AuthResponse, err error, fallback string) error {
	if err != nil {
		s.mu.Lock()
		s.err = Message(err, fallback)
		s.mu.Unlock()
		return err
	}

	s.client.SetToken(res.Token)
	s.mu.Lock()
	s.user = &res.User
	s.err = ""
	s.mu.Unlock()
	return nil
}

// Restore resumes a session saved by the caller.
func (s *Session) Restore(token string, user User) {
	s.client.SetToken(token)
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// Clear forgets the user and token.
func (s *Session) Clear() {
	s.client.SetToken("")
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.User()
	return ok && s.client.Token() != ""
}

func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Session) ClearError() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// =============================================================================
// Projects

type ProjectList struct {
	client *Client

	mu       sync.RWMutex
	projects []Project
	current  *Project
	err      string
}

func NewProjectList(client *Client) *ProjectList {
	return &ProjectList{client: client}
}

// Invalidate reloads the list so task counts follow task mutations.
func (p *ProjectList) Invalidate(ctx context.Context) error {
	return p.Fetch(ctx)
}

func (p *ProjectList) Fetch(ctx context.Context) error {
	projects, err := p.client.ListProjects(ctx)
	if err != nil {
		return p.fail(err, msgFetchProjects)
	}
	p.mu.Lock()
	p.projects = projects
	p.err = ""
	p.mu.Unlock()
	return nil
}

func (p *ProjectList) FetchOne(ctx context.Context, id string) error {
	project, err := p.client.GetProject(ctx, id)
	if err != nil {
		return p.fail(err, msgFetchProject)
	}
	p.mu.Lock()
	p.current = &project
	p.err = ""
	p.mu.Unlock()
	return nil
}

func (p *ProjectList) Create(ctx context.Context, in CreateProject) (Project, error) {
	project, err := p.client.CreateProject(ctx, in)
	if err != nil {
		return Project{}, p.fail(err, msgCreateProject)
	}
	p.mu.Lock()
	p.projects = append(p.projects, project)
	p.err = ""
	p.mu.Unlock()
	return project, nil
}

func (p *ProjectList) Update(ctx context.Context, id string, in UpdateProject) (Project, error) {
	project, err := p.client.UpdateProject(ctx, id, in)
	if err != nil {
		return Project{}, p.fail(err, msgUpdateProject)
	}
	p.mu.Lock()
	if i := slices.IndexFunc(p.projects, func(x Project) bool { return x.ID == id }); i >= 0 {
		p.projects[i] = project
	}
	if p.current != nil && p.current.ID == id {
		p.current = &project
	}
	p.err = ""
	p.mu.Unlock()
	return project, nil
}

func (p *ProjectList) Delete(ctx context.Context, id string) error {
	if err := p.client.DeleteProject(ctx, id); err != nil {
		return p.fail(err, msgDeleteProject)
	}
	p.mu.Lock()
	p.projects = slices.DeleteFunc(p.projects, func(x Project) bool { return x.ID == id })
	if p.current != nil && p.current.ID == id {
		p.current = nil
	}
	p.err = ""
	p.mu.Unlock()
	return nil
}

func (p *ProjectList) fail(err error, fallback string) error {
	p.mu.Lock()
	p.err = Message(err, fallback)
	p.mu.Unlock()
	return err
}

func (p *ProjectList) Projects() []Project {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.projects)
}

func (p *ProjectList) Current() (Project, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return Project{}, false
	}
	return *p.current, true
}

func (p *ProjectList) SetCurrent(project *Project) {
	p.mu.Lock()
	p.current = project
	p.mu.Unlock()
}

func (p *ProjectList) Err() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.err
}

func (p *ProjectList) Clear() {
	p.mu.Lock()
	p.projects = nil
	p.current = nil
	p.err = ""
	p.mu.Unlock()
}

// =============================================================================
// Tasks

// Pagination mirrors the paging fields of the last listing.
type Pagination struct {
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

type TaskList struct {
	client   *Client
	projects *ProjectList

	mu         sync.RWMutex
	tasks      []Task
	today      []Task
	upcoming   []Task
	current    *Task
	pagination Pagination
	err        string
}

// NewTaskList returns a task container that refreshes projects after
// mutations that change task counts. projects may be nil.
func NewTaskList(client *Client, projects *ProjectList) *TaskList {
	return &TaskList{
		client:     client,
		projects:   projects,
		pagination: Pagination{Page: 1, Limit: 20},
	}
}

func (t *TaskList) Fetch(ctx context.Context, q TaskQuery) error {
	page, err := t.client.ListTasks(ctx, q)
	if err != nil {
		return t.fail(err, msgFetchTasks)
	}

	totalPages := page.TotalPages
	if totalPages == 0 && page.Limit > 0 {
		totalPages = (page.Total + page.Limit - 1) / page.Limit
	}

	t.mu.Lock()
	t.tasks = page.Data
	t.pagination = Pagination{Total: page.Total, Page: page.Page, Limit: page.Limit, TotalPages: totalPages}
	t.err = ""
	t.mu.Unlock()
	return nil
}

func (t *TaskList) FetchToday(ctx context.Context) error {
	tasks, err := t.client.TodayTasks(ctx)
	if err != nil {
		return t.fail(err, msgFetchToday)
	}
	t.mu.Lock()
	t.today = tasks
	t.err = ""
	t.mu.Unlock()
	return nil
}

func (t *TaskList) FetchUpcoming(ctx context.Context) error {
	tasks, err := t.client.UpcomingTasks(ctx)
	if err != nil {
		return t.fail(err, msgFetchUpcoming)
	}
	t.mu.Lock()
	t.upcoming = tasks
	t.err = ""
	t.mu.Unlock()
	return nil
}

func (t *TaskList) FetchOne(ctx context.Context, id string) error {
	task, err := t.client.GetTask(ctx, id)
	if err != nil {
		return t.fail(err, msgFetchTask)
	}
	t.mu.Lock()
	t.current = &task
	t.err = ""
	t.mu.Unlock()
	return nil
}

// Create prepends the new task and refreshes project counts.
func (t *TaskList) Create(ctx context.Context, in CreateTask) (Task, error) {
	task, err := t.client.CreateTask(ctx, in)
	if err != nil {
		return Task{}, t.fail(err, msgCreateTask)
	}
	t.mu.Lock()
	t.tasks = append([]Task{task}, t.tasks...)
	t.err = ""
	t.mu.Unlock()

	return task, t.invalidateProjects(ctx)
}

// Update replaces the cached copy. A status change refreshes project
// counts.
func (t *TaskList) Update(ctx context.Context, id string, in UpdateTask) (Task, error) {
	task, err := t.client.UpdateTask(ctx, id, in)
	if err != nil {
		return Task{}, t.fail(err, msgUpdateTask)
	}
	t.mu.Lock()
	if i := indexOf(t.tasks, id); i >= 0 {
		t.tasks[i] = task
	}
	if t.current != nil && t.current.ID == id {
		t.current = &task
	}
	t.err = ""
	t.mu.Unlock()

	if in.Status != nil {
		return task, t.invalidateProjects(ctx)
	}
	return task, nil
}

// ToggleStatus flips a cached task between pending and completed. Tasks
// not in the list are ignored.
func (t *TaskList) ToggleStatus(ctx context.Context, id string) error {
	t.mu.RLock()
	i := indexOf(t.tasks, id)
	var status string
	if i >= 0 {
		status = t.tasks[i].Status
	}
	t.mu.RUnlock()
	if i < 0 {
		return nil
	}

	next := StatusCompleted
	if status == StatusCompleted {
		next = StatusPending
	}
	_, err := t.Update(ctx, id, UpdateTask{Status: &next})
	return err
}

// Delete removes the task from every cached view and refreshes project
// counts.
func (t *TaskList) Delete(ctx context.Context, id string) error {
	if err := t.client.DeleteTask(ctx, id); err != nil {
		return t.fail(err, msgDeleteTask)
	}
	t.InvalidateTask(id)
	return t.invalidateProjects(ctx)
}

// InvalidateTask drops id from the list, today, upcoming and current.
func (t *TaskList) InvalidateTask(id string) {
	match := func(x Task) bool { return x.ID == id }

	t.mu.Lock()
	t.tasks = slices.DeleteFunc(t.tasks, match)
	t.today = slices.DeleteFunc(t.today, match)
	t.upcoming = slices.DeleteFunc(t.upcoming, match)
	if t.current != nil && t.current.ID == id {
		t.current = nil
	}
	t.err = ""
	t.mu.Unlock()
}

// Reorder sends the new sort orders and re-sorts the cached list.
func (t *TaskList) Reorder(ctx context.Context, items []ReorderItem) error {
	if err := t.client.ReorderTasks(ctx, items); err != nil {
		return t.fail(err, msgReorderTasks)
	}

	t.mu.Lock()
	for _, item := range items {
		if i := indexOf(t.tasks, item.ID); i >= 0 {
			t.tasks[i].SortOrder = item.SortOrder
		}
	}
	slices.SortStableFunc(t.tasks, func(a, b Task) int { return a.SortOrder - b.SortOrder })
	t.err = ""
	t.mu.Unlock()
	return nil
}

func (t *TaskList) invalidateProjects(ctx context.Context) error {
	if t.projects == nil {
		return nil
	}
	return t.projects.Invalidate(ctx)
}

func (t *TaskList) fail(err error, fallback string) error {
	t.mu.Lock()
	t.err = Message(err, fallback)
	t.mu.Unlock()
	return err
}

func (t *TaskList) Tasks() []Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.tasks)
}

func (t *TaskList) Today() []Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.today)
}

func (t *TaskList) Upcoming() []Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.upcoming)
}

func (t *TaskList) Current() (Task, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.current == nil {
		return Task{}, false
	}
	return *t.current, true
}

func (t *TaskList) SetCurrent(task *Task) {
	t.mu.Lock()
	t.current = task
	t.mu.Unlock()
}

func (t *TaskList) Pagination() Pagination {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pagination
}

// Pending filters the cached list.
func (t *TaskList) Pending() []Task {
	return t.withStatus(StatusPending)
}

func (t *TaskList) Completed() []Task {
	return t.withStatus(StatusCompleted)
}

func (t *TaskList) withStatus(status string) []Task {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []Task
	for _, task := range t.tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

func (t *TaskList) Err() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.err
}

func (t *TaskList) Clear() {
	t.mu.Lock()
	t.tasks = nil
	t.today = nil
	t.upcoming = nil
	t.current = nil
	t.pagination = Pagination{Page: 1, Limit: 20}
	t.err = ""
	t.mu.Unlock()
}

func indexOf(tasks []Task, id string) int {
	return slices.IndexFunc(tasks, func(x Task) bool { return x.ID == id })
}
