package userssqlitestore

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
	"github.com/jrazmi/zentask/core/repositories/usersrepo"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
	"github.com/jrazmi/zentask/sdk/logger"
)

const userColumns = `user_id, email, password_hash, created_at, updated_at`

type Store struct {
	log *logger.Logger
	db  *sqlx.DB
}

func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

func (s *Store) Create(ctx context.Context, user usersrepo.User) (usersrepo.User, error) {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES (:user_id, :email, :password_hash, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, sqlitedb.Querier(ctx, s.db), query, user); err != nil {
		return usersrepo.User{}, storeerrs.FromSQLite(err)
	}
	return s.GetByID(ctx, user.UserID)
}

func (s *Store) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	var user usersrepo.User
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = ?`
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &user, query, userID); err != nil {
		return usersrepo.User{}, storeerrs.FromSQLite(err)
	}
	return user, nil
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	var user usersrepo.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	if err := sqlx.GetContext(ctx, sqlitedb.Querier(ctx, s.db), &user, query, email); err != nil {
		return usersrepo.User{}, storeerrs.FromSQLite(err)
	}
	return user, nil
}
