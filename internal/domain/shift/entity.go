package shift

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/pkg/timewindow"
)

// Shift is immutable reference data: a named daily time window. StartTime and
// EndTime carry only a clock reading; the date part is ignored. EndTime may
// read earlier than StartTime, meaning the shift crosses midnight.
type Shift struct {
	ID        string
	Name      string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// CrossesMidnight reports whether the shift ends on the calendar day after it
// starts.
func (s Shift) CrossesMidnight() bool {
	return timewindow.MinutesOfDay(s.EndTime) <= timewindow.MinutesOfDay(s.StartTime)
}

// DurationMinutes is the shift length in minutes, overnight-safe.
func (s Shift) DurationMinutes() int {
	return timewindow.DurationMinutes(s.StartTime, s.EndTime)
}

// StartOn anchors the shift start to a calendar date in UTC.
func (s Shift) StartOn(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		s.StartTime.Hour(), s.StartTime.Minute(), 0, 0, time.UTC)
}

// EndOn anchors the shift end to a calendar date in UTC, rolling to the next
// day for overnight shifts.
func (s Shift) EndOn(date time.Time) time.Time {
	end := time.Date(date.Year(), date.Month(), date.Day(),
		s.EndTime.Hour(), s.EndTime.Minute(), 0, 0, time.UTC)
	if s.CrossesMidnight() {
		end = end.AddDate(0, 0, 1)
	}
	return end
}
