// Package validation holds request validation helpers shared by the
// HTTP bridges: field error aggregation, pointer helpers and date parsing.
package validation

import (
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (fe FieldError) String() string {
	return fmt.Sprintf("%s %s", fe.Field, fe.Message)
}

// FieldErrors collects every problem found in a request body or query.
type FieldErrors []FieldError

// Add records a field failure.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// Addf records a field failure with a formatted message.
func (fe *FieldErrors) Addf(field, format string, args ...any) {
	fe.Add(field, fmt.Sprintf(format, args...))
}

func (fe FieldErrors) Error() string {
	parts := make([]string, len(fe))
	for i, f := range fe {
		parts[i] = f.String()
	}
	return strings.Join(parts, "; ")
}

// Messages flattens the errors into human readable strings.
func (fe FieldErrors) Messages() []string {
	out := make([]string, len(fe))
	for i, f := range fe {
		out[i] = f.String()
	}
	return out
}

// Err returns nil when nothing was recorded.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// IsEmail reports whether s is a bare email address.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && strings.Contains(s, "@")
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func StringPtr(s string) *string {
	return &s
}

func BoolPtr(b bool) *bool {
	return &b
}

// FormatDatePtr renders a calendar date as YYYY-MM-DD, or nil.
func FormatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.DateOnly)
	return &s
}
