package authbridge

import (
	"context"
	"net/http"

	"github.com/jrazmi/zentask/bridge/scaffolding/errs"
	"github.com/jrazmi/zentask/bridge/scaffolding/fopbridge"
	"github.com/jrazmi/zentask/bridge/scaffolding/mid"
	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/infrastructure/web"
)

type bridge struct {
	auth *authcase.Case
}

func newBridge(auth *authcase.Case) *bridge {
	return &bridge{auth: auth}
}

func (b *bridge) httpRegister(ctx context.Context, r *http.Request) web.Encoder {
	var input RegisterInput
	if err := web.Decode(r, &input); err != nil {
		return errs.FromCore(err)
	}

	res, err := b.auth.Register(ctx, input.Email, input.Password)
	if err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.Created(r, toAuthResponse(res))
}

func (b *bridge) httpLogin(ctx context.Context, r *http.Request) web.Encoder {
	var input LoginInput
	if err := web.Decode(r, &input); err != nil {
		return errs.FromCore(err)
	}

	res, err := b.auth.Login(ctx, input.Email, input.Password, input.RememberMe)
	if err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.OK(r, toAuthResponse(res))
}

func (b *bridge) httpVerify(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	return fopbridge.OK(r, VerifyResponse{
		Valid: true,
		User:  VerifiedUser{ID: userID, Email: mid.GetEmail(ctx)},
	})
}

func (b *bridge) httpProfile(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	profile, err := b.auth.Profile(ctx, userID)
	if err != nil {
		return errs.FromCore(err)
	}

	return fopbridge.OK(r, toUser(profile))
}
