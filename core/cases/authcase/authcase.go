// Package authcase registers users, logs them in and resolves bearer
// tokens back to identities.
package authcase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/core/repositories/usersrepo"
	"github.com/jrazmi/zentask/sdk/logger"
	"github.com/jrazmi/zentask/sdk/passwords"
	"github.com/jrazmi/zentask/sdk/tokens"
	"github.com/jrazmi/zentask/sdk/validation"
)

// ErrUnauthorized is returned for bad credentials and bad tokens. The
// message never says which part was wrong.
var ErrUnauthorized = errors.New("invalid email or password")

const (
	DefaultTokenTTL    = 168 * time.Hour
	DefaultRememberTTL = 720 * time.Hour
)

type Users interface {
	Create(ctx context.Context, input usersrepo.CreateUser) (usersrepo.User, error)
	GetByID(ctx context.Context, userID string) (usersrepo.User, error)
	GetByEmail(ctx context.Context, email string) (usersrepo.User, error)
}

type Projects interface {
	CreateDefault(ctx context.Context, userID string) (projectsrepo.Project, error)
}

type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
	CompareDummy(password string)
}

type TokenIssuer interface {
	Issue(userID, email string, ttl time.Duration) (string, error)
	Verify(token string) (tokens.Claims, error)
}

// Config holds token lifetimes.
type Config struct {
	TokenTTL    time.Duration
	RememberTTL time.Duration
}

// UserSummary is the public view of a user.
type UserSummary struct {
	ID        string
	Email     string
	CreatedAt time.Time
}

// Result is returned by Register and Login.
type Result struct {
	User  UserSummary
	Token string
}

// Identity is what a verified token resolves to.
type Identity struct {
	UserID string
	Email  string
}

type Case struct {
	log      *logger.Logger
	users    Users
	projects Projects
	tx       repositories.Transactor
	hasher   Hasher
	tokens   TokenIssuer
	cfg      Config
}

func NewCase(log *logger.Logger, users Users, projects Projects, tx repositories.Transactor, hasher Hasher, issuer TokenIssuer, cfg Config) *Case {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultTokenTTL
	}
	if cfg.RememberTTL <= 0 {
		cfg.RememberTTL = DefaultRememberTTL
	}
	return &Case{
		log:      log,
		users:    users,
		projects: projects,
		tx:       tx,
		hasher:   hasher,
		tokens:   issuer,
		cfg:      cfg,
	}
}

// Register creates the user and their default project atomically and
// returns a token with the standard lifetime.
func (c *Case) Register(ctx context.Context, email, password string) (Result, error) {
	email = validation.NormalizeEmail(email)

	_, err := c.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return Result{}, fmt.Errorf("register %s: %w", email, repositories.ErrConflict)
	case !errors.Is(err, repositories.ErrNotFound):
		return Result{}, fmt.Errorf("register: %w", err)
	}

	hash, err := c.hasher.Hash(password)
	if err != nil {
		return Result{}, fmt.Errorf("register: %w", err)
	}

	var user usersrepo.User
	err = c.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = c.users.Create(ctx, usersrepo.CreateUser{Email: email, PasswordHash: hash})
		if err != nil {
			return err
		}
		_, err = c.projects.CreateDefault(ctx, user.UserID)
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("register: %w", err)
	}

	token, err := c.tokens.Issue(user.UserID, user.Email, c.cfg.TokenTTL)
	if err != nil {
		return Result{}, fmt.Errorf("register: %w", err)
	}

	c.log.InfoContext(ctx, "user registered", "user_id", user.UserID)
	return Result{User: summary(user), Token: token}, nil
}

// Login checks credentials. Unknown emails and wrong passwords fail the
// same way and take about the same time.
func (c *Case) Login(ctx context.Context, email, password string, rememberMe bool) (Result, error) {
	user, err := c.users.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.hasher.CompareDummy(password)
			return Result{}, ErrUnauthorized
		}
		return Result{}, fmt.Errorf("login: %w", err)
	}

	if err := c.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, passwords.ErrMismatch) {
			return Result{}, ErrUnauthorized
		}
		return Result{}, fmt.Errorf("login: %w", err)
	}

	ttl := c.cfg.TokenTTL
	if rememberMe {
		ttl = c.cfg.RememberTTL
	}

	token, err := c.tokens.Issue(user.UserID, user.Email, ttl)
	if err != nil {
		return Result{}, fmt.Errorf("login: %w", err)
	}

	c.log.InfoContext(ctx, "user logged in", "user_id", user.UserID, "remember_me", rememberMe)
	return Result{User: summary(user), Token: token}, nil
}

// VerifyToken resolves a bearer token without touching the store.
func (c *Case) VerifyToken(ctx context.Context, token string) (Identity, error) {
	claims, err := c.tokens.Verify(token)
	if err != nil {
		c.log.DebugContext(ctx, "token rejected", "error", err)
		return Identity{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return Identity{UserID: claims.UserID(), Email: claims.Email}, nil
}

// Profile loads the current user. A token for a deleted user is
// unauthorized.
func (c *Case) Profile(ctx context.Context, userID string) (UserSummary, error) {
	user, err := c.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return UserSummary{}, ErrUnauthorized
		}
		return UserSummary{}, fmt.Errorf("profile: %w", err)
	}
	return summary(user), nil
}

// IssueToken mints a token for an existing user. Used by operator tooling.
func (c *Case) IssueToken(ctx context.Context, email string, ttl time.Duration) (string, error) {
	user, err := c.users.GetByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	if ttl <= 0 {
		ttl = c.cfg.TokenTTL
	}
	return c.tokens.Issue(user.UserID, user.Email, ttl)
}

func summary(u usersrepo.User) UserSummary {
	return UserSummary{ID: u.UserID, Email: u.Email, CreatedAt: u.CreatedAt}
}
