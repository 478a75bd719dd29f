package authbridge

import (
	"strings"
	"time"

	"github.com/jrazmi/zentask/core/cases/authcase"
	"github.com/jrazmi/zentask/sdk/passwords"
	"github.com/jrazmi/zentask/sdk/validation"
)

const minPasswordLength = 6

type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegisterInput) Validate() error {
	var fe validation.FieldErrors
	if !validation.IsEmail(strings.TrimSpace(in.Email)) {
		fe.Add("email", "must be a valid email address")
	}
	switch {
	case len(in.Password) < minPasswordLength:
		fe.Addf("password", "must be at least %d characters", minPasswordLength)
	case len(in.Password) > passwords.MaxLength:
		fe.Addf("password", "must be at most %d bytes", passwords.MaxLength)
	}
	return fe.Err()
}

type LoginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (in LoginInput) Validate() error {
	var fe validation.FieldErrors
	if !validation.IsEmail(strings.TrimSpace(in.Email)) {
		fe.Add("email", "must be a valid email address")
	}
	if in.Password == "" {
		fe.Add("password", "is required")
	}
	return fe.Err()
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type VerifiedUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type VerifyResponse struct {
	Valid bool         `json:"valid"`
	User  VerifiedUser `json:"user"`
}

func toUser(u authcase.UserSummary) User {
	return User{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

func toAuthResponse(res authcase.Result) AuthResponse {
	return AuthResponse{User: toUser(res.User), Token: res.Token}
}
