package validation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/zentask/sdk/validation"
)

func TestFieldErrors(t *testing.T) {
	var fe validation.FieldErrors
	if fe.Err() != nil {
		t.Fatal("empty FieldErrors should produce nil error")
	}

	fe.Add("title", "must not be empty")
	fe.Addf("priority", "must be one of %s", "low, medium, high")

	err := fe.Err()
	if err == nil {
		t.Fatal("expected error")
	}
	var got validation.FieldErrors
	if !errors.As(err, &got) || len(got) != 2 {
		t.Fatalf("errors.As failed: %v", err)
	}
	msgs := got.Messages()
	if msgs[0] != "title must not be empty" {
		t.Errorf("msgs[0] = %q", msgs[0])
	}
}

func TestParseCalendarDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-01", "2025-03-01"},
		{"2025-03-01T23:30:00-05:00", "2025-03-01"},
		{"2025-03-01T10:00:00Z", "2025-03-01"},
		{"2025-03-01T10:00:00", "2025-03-01"},
	}
	for _, tt := range tests {
		got, err := validation.ParseCalendarDate(tt.in)
		if err != nil {
			t.Fatalf("ParseCalendarDate(%q) error = %v", tt.in, err)
		}
		if got.Format(time.DateOnly) != tt.want || got.Location() != time.UTC || got.Hour() != 0 {
			t.Errorf("ParseCalendarDate(%q) = %v, want %s UTC midnight", tt.in, got, tt.want)
		}
	}

	if _, err := validation.ParseCalendarDate("next tuesday"); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestIsEmail(t *testing.T) {
	if !validation.IsEmail("a@b.co") {
		t.Error("a@b.co should be valid")
	}
	for _, s := range []string{"", "nope", "Name <a@b.co>"} {
		if validation.IsEmail(s) {
			t.Errorf("%q should be invalid", s)
		}
	}
	if got := validation.NormalizeEmail("  A@B.Co "); got != "a@b.co" {
		t.Errorf("NormalizeEmail = %q", got)
	}
}
