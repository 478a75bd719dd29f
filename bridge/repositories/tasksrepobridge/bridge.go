package tasksrepobridge

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrazmi/zentask/bridge/scaffolding/errs"
	"github.com/jrazmi/zentask/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/zentask/bridge/scaffolding/mid"
	"github.com/jrazmi/zentask/core/repositories/tasksrepo"
	"github.com/jrazmi/zentask/infrastructure/web"
)

const notFound = "task not found"

type bridge struct {
	taskRepository *tasksrepo.Repository
}

func newBridge(taskRepository *tasksrepo.Repository) *bridge {
	return &bridge{taskRepository: taskRepository}
}

// scope returns the caller and, when the route has one, the task id.
func scope(ctx context.Context, r *http.Request) (userID, taskID string, errResp *errs.Error) {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return "", "", errs.New(errs.Unauthenticated, err)
	}

	taskID = web.Param(r, "task_id")
	if taskID != "" {
		if _, err := uuid.Parse(taskID); err != nil {
			return "", "", errs.Newf(errs.NotFound, notFound)
		}
	}
	return userID, taskID, nil
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, _, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	var input CreateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.FromCore(err)
	}
	create, err := input.toRepository(userID)
	if err != nil {
		return errs.FromCore(err)
	}

	task, err := b.taskRepository.Create(ctx, create)
	if err != nil {
		return errs.FromCore(err).NotFoundAs("project not found")
	}

	return fopbridge.Created(r, MarshalToBridge(task))
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	userID, _, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	lq, err := parseListQuery(userID, parseQueryParams(r))
	if err != nil {
		return errs.FromCore(err)
	}

	res, err := b.taskRepository.List(ctx, lq.filter, lq.orderBy, lq.page)
	if err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.OK(r, fopbridge.NewPageResponse(res, MarshalToBridge))
}

func (b *bridge) httpToday(ctx context.Context, r *http.Request) web.Encoder {
	userID, _, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	tasks, err := b.taskRepository.Today(ctx, userID)
	if err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.OK(r, MarshalListToBridge(tasks))
}

func (b *bridge) httpUpcoming(ctx context.Context, r *http.Request) web.Encoder {
	userID, _, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	tasks, err := b.taskRepository.Upcoming(ctx, userID)
	if err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.OK(r, MarshalListToBridge(tasks))
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, taskID, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	task, err := b.taskRepository.Get(ctx, taskID, userID)
	if err != nil {
		return errs.FromCore(err).NotFoundAs(notFound)
	}

	return fopbridge.OK(r, MarshalToBridge(task))
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID, taskID, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	var input UpdateTaskInput
	if err := web.Decode(r, &input); err != nil {
		return errs.FromCore(err)
	}
	update, err := input.toRepository()
	if err != nil {
		return errs.FromCore(err)
	}

	task, err := b.taskRepository.Update(ctx, taskID, userID, update)
	if err != nil {
		return errs.FromCore(err).NotFoundAs(notFound)
	}

	return fopbridge.OK(r, MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, taskID, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	if err := b.taskRepository.Delete(ctx, taskID, userID); err != nil {
		return errs.FromCore(err).NotFoundAs(notFound)
	}

	return fopbridge.OK(r, fopbridge.MessageResponse{Message: "Task deleted successfully"})
}

func (b *bridge) httpReorder(ctx context.Context, r *http.Request) web.Encoder {
	userID, _, errResp := scope(ctx, r)
	if errResp != nil {
		return errResp
	}

	var input ReorderInput
	if err := web.Decode(r, &input); err != nil {
		return errs.FromCore(err)
	}

	if err := b.taskRepository.Reorder(ctx, userID, input.toRepository()); err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.OK(r, fopbridge.MessageResponse{Message: "Tasks reordered successfully"})
}

