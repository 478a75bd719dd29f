package storeerrs_test

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
)

func TestFromPostgres(t *testing.T) {
	if !errors.Is(storeerrs.FromPostgres(pgx.ErrNoRows), repositories.ErrNotFound) {
		t.Error("no rows should map to ErrNotFound")
	}
	if !errors.Is(storeerrs.FromPostgres(&pgconn.PgError{Code: "23505"}), repositories.ErrConflict) {
		t.Error("unique violation should map to ErrConflict")
	}
	if !errors.Is(storeerrs.FromPostgres(&pgconn.PgError{Code: "23503"}), repositories.ErrNotFound) {
		t.Error("fk violation should map to ErrNotFound")
	}
	other := errors.New("connection reset")
	if !errors.Is(storeerrs.FromPostgres(other), other) {
		t.Error("unknown errors should pass through")
	}
	if storeerrs.FromPostgres(nil) != nil {
		t.Error("nil should stay nil")
	}
}

func TestFromSQLite(t *testing.T) {
	if !errors.Is(storeerrs.FromSQLite(sql.ErrNoRows), repositories.ErrNotFound) {
		t.Error("no rows should map to ErrNotFound")
	}
	dup := errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)")
	if !errors.Is(storeerrs.FromSQLite(dup), repositories.ErrConflict) {
		t.Error("unique failure should map to ErrConflict")
	}
}
