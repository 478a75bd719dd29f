package projectsrepobridge

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrazmi/zentask/bridge/scaffolding/errs"
	"github.com/jrazmi/zentask/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/zentask/bridge/scaffolding/mid"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/infrastructure/web"
)

const notFound = "project not found"

type bridge struct {
	projectRepository *projectsrepo.Repository
}

func newBridge(projectRepository *projectsrepo.Repository) *bridge {
	return &bridge{projectRepository: projectRepository}
}

// scope returns the caller and, when the route has one, the project id.
// A malformed id cannot name a stored project.
func scope(ctx context.Context, r *http.Request) (userID, projectID string, errResp *errs.Error) {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return "", "", errs.New(errs.Unauthenticated, err)
	}

	projectID = web.Param(r, "project_id")
	if projectID != "" {
		if _, err := uuid.Parse(projectID); err != nil {
			return "", "", errs.Newf(errs.NotFound, notFound)
		}
	}
	return userID, projectID, nil
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, _, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	var input CreateProjectInput
	if err := web.Decode(r, &input); err != nil {
		return errs.FromCore(err)
	}

	project, err := b.projectRepository.Create(ctx, input.toRepository(userID))
	if err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.Created(r, MarshalToBridge(project))
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	userID, _, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	projects, err := b.projectRepository.List(ctx, userID)
	if err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.OK(r, MarshalListToBridge(projects))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, projectID, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	project, err := b.projectRepository.Get(ctx, projectID, userID)
	if err != nil {
		return errs.FromCore(err).NotFoundAs(notFound)
	}

	return fopbridge.OK(r, MarshalToBridge(project))
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID, projectID, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	var input UpdateProjectInput
	if err := web.Decode(r, &input); err != nil {
		return errs.FromCore(err)
	}

	project, err := b.projectRepository.Update(ctx, projectID, userID, input.toRepository())
	if err != nil {
		return errs.FromCore(err).NotFoundAs(notFound)
	}

	return fopbridge.OK(r, MarshalToBridge(project))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, projectID, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := b.projectRepository.Delete(ctx, projectID, userID); err != nil {
		return errs.FromCore(err).NotFoundAs(notFound)
	}

	return fopbridge.OK(r, fopbridge.MessageResponse{Message: "Project deleted successfully"})
}
