// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/jrazmi/zentask/infrastructure/web"
)

type ctxKey int

const (
	userIDKey ctxKey = iota + 1
	emailKey
)

func setUser(ctx context.Context, userID, email string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, emailKey, email)
}

// GetUserID returns the authenticated user id from the context.
func GetUserID(ctx context.Context) (string, error) {
	v, ok := ctx.Value(userIDKey).(string)
	if !ok || v == "" {
		return "", errors.New("user id not found in context")
	}
	return v, nil
}

// GetEmail returns the authenticated email from the context.
func GetEmail(ctx context.Context) string {
	v, _ := ctx.Value(emailKey).(string)
	return v
}

// isError tests if the Encoder has an error inside of it.
func isError(e web.Encoder) error {
	err, isError := e.(error)
	if isError {
		return err
	}
	return nil
}
