package tasksrepo_test

import (
	"testing"
	"time"

	"github.com/jrazmi/zentask/core/repositories/tasksrepo"
)

func TestStatusNames(t *testing.T) {
	for _, name := range []string{"pending", "completed"} {
		s, err := tasksrepo.ParseStatus(name)
		if err != nil {
			t.Fatalf("ParseStatus(%q) error = %v", name, err)
		}
		if s.String() != name {
			t.Errorf("round trip %q = %q", name, s.String())
		}
	}
	if _, err := tasksrepo.ParseStatus("PENDING"); err == nil {
		t.Error("expected error for upper case status")
	}
}

func TestPriorityNames(t *testing.T) {
	tests := map[string]tasksrepo.Priority{
		"low":    tasksrepo.PriorityLow,
		"medium": tasksrepo.PriorityMedium,
		"high":   tasksrepo.PriorityHigh,
	}
	for name, want := range tests {
		got, err := tasksrepo.ParsePriority(name)
		if err != nil || got != want {
			t.Errorf("ParsePriority(%q) = %v, %v", name, got, err)
		}
		if want.String() != name {
			t.Errorf("%d.String() = %q", want, want.String())
		}
	}
	if _, err := tasksrepo.ParsePriority("urgent"); err == nil {
		t.Error("expected error for unknown priority")
	}
	if !(tasksrepo.PriorityLow < tasksrepo.PriorityMedium && tasksrepo.PriorityMedium < tasksrepo.PriorityHigh) {
		t.Error("priorities must order low < medium < high")
	}
}

func TestTodayWindow(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	// 02:00 UTC on the 10th is still the 9th five hours west.
	now := time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC)

	w := tasksrepo.TodayWindow(now, loc)

	if want := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC); !w.DueFrom.Equal(want) {
		t.Errorf("DueFrom = %v, want %v", w.DueFrom, want)
	}
	if want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC); !w.DueTo.Equal(want) {
		t.Errorf("DueTo = %v, want %v", w.DueTo, want)
	}
	if want := time.Date(2026, 3, 9, 5, 0, 0, 0, time.UTC); !w.CreatedFrom.Equal(want) {
		t.Errorf("CreatedFrom = %v, want %v", w.CreatedFrom, want)
	}
	if want := time.Date(2026, 3, 10, 5, 0, 0, 0, time.UTC); !w.CreatedTo.Equal(want) {
		t.Errorf("CreatedTo = %v, want %v", w.CreatedTo, want)
	}
}

func TestUpcomingWindow(t *testing.T) {
	now := time.Date(2026, 12, 29, 12, 0, 0, 0, time.UTC)
	w := tasksrepo.UpcomingWindow(now, time.UTC)

	if want := time.Date(2026, 12, 29, 0, 0, 0, 0, time.UTC); !w.DueFrom.Equal(want) {
		t.Errorf("DueFrom = %v, want %v", w.DueFrom, want)
	}
	if want := time.Date(2027, 1, 5, 0, 0, 0, 0, time.UTC); !w.DueTo.Equal(want) {
		t.Errorf("DueTo = %v, want %v", w.DueTo, want)
	}
}
