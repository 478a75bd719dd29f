package userspgxstore

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/zentask/core/repositories/storeerrs"
	"github.com/jrazmi/zentask/core/repositories/usersrepo"
	"github.com/jrazmi/zentask/infrastructure/postgresdb"
	"github.com/jrazmi/zentask/sdk/logger"
)

const userColumns = `user_id, email, password_hash, created_at, updated_at`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, user usersrepo.User) (usersrepo.User, error) {
	query := `INSERT INTO users (` + userColumns + `)
		VALUES (@user_id, @email, @password_hash, @created_at, @updated_at)
		RETURNING ` + userColumns

	args := pgx.NamedArgs{
		"user_id":       user.UserID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt,
		"updated_at":    user.UpdatedAt,
	}

	return s.one(ctx, query, args)
}

func (s *Store) GetByID(ctx context.Context, userID string) (usersrepo.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = @user_id`
	return s.one(ctx, query, pgx.NamedArgs{"user_id": userID})
}

func (s *Store) GetByEmail(ctx context.Context, email string) (usersrepo.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = @email`
	return s.one(ctx, query, pgx.NamedArgs{"email": email})
}

func (s *Store) one(ctx context.Context, query string, args pgx.NamedArgs) (usersrepo.User, error) {
	rows, err := postgresdb.Querier(ctx, s.pool).Query(ctx, query, args)
	if err != nil {
		return usersrepo.User{}, storeerrs.FromPostgres(err)
	}
	defer rows.Close()

	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[usersrepo.User])
	if err != nil {
		return usersrepo.User{}, storeerrs.FromPostgres(err)
	}
	return user, nil
}
