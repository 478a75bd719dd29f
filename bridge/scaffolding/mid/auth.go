package mid

import (
	"context"
	"net/http"
	"strings"

	"github.com/jrazmi/zentask/bridge/scaffolding/errs"
	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/infrastructure/web"
)

// TokenVerifier resolves a bearer token to an identity.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (authcase.Identity, error)
}

// Authenticate requires a valid bearer token and puts its user id and
// email in the context.
func Authenticate(verifier TokenVerifier) web.Middleware {
	return func(next web.HandlerFunc) web.HandlerFunc {
		return func(ctx context.Context, r *http.Request) web.Encoder {
			token, ok := bearerToken(r)
			if !ok {
				return errs.Newf(errs.Unauthenticated, "missing bearer token")
			}

			id, err := verifier.VerifyToken(ctx, token)
			if err != nil {
				return errs.Newf(errs.Unauthenticated, "invalid or expired token")
			}

			return next(setUser(ctx, id.UserID, id.Email), r)
		}
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
