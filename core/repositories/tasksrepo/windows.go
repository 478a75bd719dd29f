package tasksrepo

import (
	"time"

	"github.com/jrazmi/zentask/sdk/validation"
)

// UpcomingDays is the width of the upcoming view.
const UpcomingDays = 7

// TodayWindow covers the local calendar day containing now.
func TodayWindow(now time.Time, loc *time.Location) Window {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	day := validation.CalendarDate(local)

	return Window{
		DueFrom:     day,
		DueTo:       day.AddDate(0, 0, 1),
		CreatedFrom: start.UTC(),
		CreatedTo:   start.AddDate(0, 0, 1).UTC(),
	}
}

// UpcomingWindow covers the local day containing now plus the following
// six days. Only due dates are bounded.
func UpcomingWindow(now time.Time, loc *time.Location) Window {
	w := TodayWindow(now, loc)
	w.DueTo = w.DueFrom.AddDate(0, 0, UpcomingDays)
	return w
}
