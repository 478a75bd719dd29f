package projectsrepobridge

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/sdk/validation"
)

const maxNameLength = 100

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

func MarshalToBridge(p projectsrepo.ProjectWithCounts) Project {
	return Project{
		ID:                   p.ProjectID,
		Name:                 p.Name,
		IsDefault:            p.IsDefault,
		ShowInToday:          p.ShowInToday,
		TaskCount:            p.TaskCount,
		UncompletedTaskCount: p.UncompletedTaskCount,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func MarshalListToBridge(projects []projectsrepo.ProjectWithCounts) []Project {
	out := make([]Project, len(projects))
	for i, p := range projects {
		out[i] = MarshalToBridge(p)
	}
	return out
}

type CreateProjectInput struct {
	Name        string `json:"name"`
	ShowInToday *bool  `json:"showInToday"`
}

func (in CreateProjectInput) Validate() error {
	var fe validation.FieldErrors
	validateName(&fe, in.Name)
	return fe.Err()
}

func (in CreateProjectInput) toRepository(userID string) projectsrepo.CreateProject {
	return projectsrepo.CreateProject{
		UserID:      userID,
		Name:        strings.TrimSpace(in.Name),
		ShowInToday: in.ShowInToday,
	}
}

type UpdateProjectInput struct {
	Name        *string `json:"name"`
	ShowInToday *bool   `json:"showInToday"`
}

func (in UpdateProjectInput) Validate() error {
	var fe validation.FieldErrors
	if in.Name != nil {
		validateName(&fe, *in.Name)
	}
	return fe.Err()
}

func (in UpdateProjectInput) toRepository() projectsrepo.UpdateProject {
	var name *string
	if in.Name != nil {
		name = validation.StringPtr(strings.TrimSpace(*in.Name))
	}
	return projectsrepo.UpdateProject{Name: name, ShowInToday: in.ShowInToday}
}

func validateName(fe *validation.FieldErrors, name string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		fe.Add("name", "should not be empty")
	case utf8.RuneCountInString(name) > maxNameLength:
		fe.Addf("name", "must be at most %d characters", maxNameLength)
	}
}
