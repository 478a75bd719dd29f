// Package usersrepo stores user identities.
package usersrepo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jrazmi/zentask/sdk/logger"
)

// Storer is the persistence contract for users.
type Storer interface {
	Create(ctx context.Context, user User) (User, error)
	GetByID(ctx context.Context, userID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}

type Repository struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
}

func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
		now:    time.Now,
	}
}

// Create inserts a user. A duplicate email fails with repositories.ErrConflict.
func (r *Repository) Create(ctx context.Context, input CreateUser) (User, error) {
	now := r.now().UTC()
	user, err := r.storer.Create(ctx, User{
		UserID:       uuid.NewString(),
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}

	r.log.InfoContext(ctx, "user created", "user_id", user.UserID)
	return user, nil
}

func (r *Repository) GetByID(ctx context.Context, userID string) (User, error) {
	user, err := r.storer.GetByID(ctx, userID)
	if err != nil {
		return User{}, fmt.Errorf("get user %s: %w", userID, err)
	}
	return user, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	user, err := r.storer.GetByEmail(ctx, email)
	if err != nil {
		return User{}, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}
