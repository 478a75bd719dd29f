package userssqlitestore_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/usersrepo"
	"github.com/jrazmi/zentask/core/repositories/usersrepo/stores/userssqlitestore"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
	"github.com/jrazmi/zentask/sdk/logger"
)

func TestStore(t *testing.T) {
	db := sqlitedb.NewTestDB(t)
	log := logger.NewDiscard()
	repo := usersrepo.NewRepository(log, userssqlitestore.NewStore(log, db))
	ctx := context.Background()

	created, err := repo.Create(ctx, usersrepo.CreateUser{Email: "ada@example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.UserID == "" || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected user %+v", created)
	}

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if byEmail.UserID != created.UserID || byEmail.PasswordHash != "hash" {
		t.Errorf("GetByEmail() = %+v", byEmail)
	}
	if !byEmail.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("CreatedAt round trip %v != %v", byEmail.CreatedAt, created.CreatedAt)
	}

	_, err = repo.Create(ctx, usersrepo.CreateUser{Email: "ada@example.com", PasswordHash: "other"})
	if !errors.Is(err, repositories.ErrConflict) {
		t.Errorf("duplicate Create() error = %v, want ErrConflict", err)
	}

	_, err = repo.GetByID(ctx, "missing")
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("GetByID(missing) error = %v, want ErrNotFound", err)
	}
}
