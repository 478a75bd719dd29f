// Package repositories holds the errors and contracts shared by every
// repository package.
package repositories

import (
	"context"
	"errors"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrForbidden = errors.New("operation not permitted")
	ErrConflict  = errors.New("record already exists")
)

// Denial is a forbidden operation whose Reason is safe to show callers.
// It matches ErrForbidden.
type Denial struct {
	Reason string
}

func Deny(reason string) *Denial {
	return &Denial{Reason: reason}
}

func (d *Denial) Error() string {
	return d.Reason
}

func (d *Denial) Is(target error) bool {
	return target == ErrForbidden
}

// Transactor runs fn so that every store call made with the ctx it
// receives shares one transaction. A non-nil error rolls it back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
