package authcase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/core/repositories"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo"
	"github.com/jrazmi/zentask/core/repositories/projectsrepo/stores/projectssqlitestore"
	"github.com/jrazmi/zentask/core/repositories/usersrepo"
	"github.com/jrazmi/zentask/core/repositories/usersrepo/stores/userssqlitestore"
	"github.com/jrazmi/zentask/infrastructure/sqlitedb"
	"github.com/jrazmi/zentask/sdk/logger"
	"github.com/jrazmi/zentask/sdk/passwords"
	"github.com/jrazmi/zentask/sdk/tokens"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	auth     *authcase.Case
	projects *projectsrepo.Repository
	issuer   *tokens.Issuer
}

func setup(t *testing.T) fixture {
	t.Helper()
	db := sqlitedb.NewTestDB(t)
	log := logger.NewDiscard()

	users := usersrepo.NewRepository(log, userssqlitestore.NewStore(log, db))
	projects := projectsrepo.NewRepository(log, projectssqlitestore.NewStore(log, db))
	issuer, err := tokens.NewIssuer("test-key", "zentask")
	if err != nil {
		t.Fatal(err)
	}

	auth := authcase.NewCase(log, users, projects, sqlitedb.NewTransactor(db),
		passwords.NewHasher(bcrypt.MinCost), issuer, authcase.Config{})
	return fixture{auth: auth, projects: projects, issuer: issuer}
}

func TestRegister(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, err := f.auth.Register(ctx, "  Ada@Example.com ", "secret1")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if res.User.Email != "ada@example.com" {
		t.Errorf("Email = %q, want normalized", res.User.Email)
	}

	claims, err := f.issuer.Verify(res.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.UserID() != res.User.ID {
		t.Errorf("token subject = %q, want %q", claims.UserID(), res.User.ID)
	}
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != authcase.DefaultTokenTTL {
		t.Errorf("ttl = %v, want %v", ttl, authcase.DefaultTokenTTL)
	}

	list, err := f.projects.List(ctx, res.User.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || !list[0].IsDefault || list[0].Name != projectsrepo.DefaultProjectName {
		t.Errorf("projects after register = %+v, want one default", list)
	}

	if _, err := f.auth.Register(ctx, "ada@example.com", "other12"); !errors.Is(err, repositories.ErrConflict) {
		t.Errorf("duplicate Register() error = %v, want ErrConflict", err)
	}
}

func TestLogin(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	reg, err := f.auth.Register(ctx, "bob@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	res, err := f.auth.Login(ctx, "BOB@example.com", "secret1", false)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Errorf("Login() user = %q, want %q", res.User.ID, reg.User.ID)
	}

	remembered, err := f.auth.Login(ctx, "bob@example.com", "secret1", true)
	if err != nil {
		t.Fatal(err)
	}
	claims, _ := f.issuer.Verify(remembered.Token)
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != authcase.DefaultRememberTTL {
		t.Errorf("remember ttl = %v, want %v", ttl, authcase.DefaultRememberTTL)
	}

	_, wrongPassword := f.auth.Login(ctx, "bob@example.com", "nope123", false)
	_, unknownEmail := f.auth.Login(ctx, "nobody@example.com", "secret1", false)
	for name, err := range map[string]error{"wrong password": wrongPassword, "unknown email": unknownEmail} {
		if !errors.Is(err, authcase.ErrUnauthorized) {
			t.Errorf("%s error = %v, want ErrUnauthorized", name, err)
		}
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Errorf("messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestVerifyAndProfile(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	reg, err := f.auth.Register(ctx, "cy@example.com", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	id, err := f.auth.VerifyToken(ctx, reg.Token)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}
	if id.UserID != reg.User.ID || id.Email != "cy@example.com" {
		t.Errorf("identity = %+v", id)
	}
	if _, err := f.auth.VerifyToken(ctx, "garbage"); !errors.Is(err, authcase.ErrUnauthorized) {
		t.Errorf("VerifyToken(garbage) error = %v, want ErrUnauthorized", err)
	}

	profile, err := f.auth.Profile(ctx, reg.User.ID)
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if profile.Email != "cy@example.com" || profile.CreatedAt.IsZero() {
		t.Errorf("profile = %+v", profile)
	}
	if _, err := f.auth.Profile(ctx, "missing"); !errors.Is(err, authcase.ErrUnauthorized) {
		t.Errorf("Profile(missing) error = %v, want ErrUnauthorized", err)
	}

	token, err := f.auth.IssueToken(ctx, "cy@example.com", time.Minute)
	if err != nil {
		t.Fatalf("IssueToken() error = %v", err)
	}
	if _, err := f.auth.VerifyToken(ctx, token); err != nil {
		t.Errorf("issued token rejected: %v", err)
	}
}
