package usersrepo

import "time"

// User is an identity record. PasswordHash never leaves the core layer.
type User struct {
	UserID       string    `db:"user_id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// CreateUser holds the fields supplied by registration.
type CreateUser struct {
	Email        string
	PasswordHash string
}
