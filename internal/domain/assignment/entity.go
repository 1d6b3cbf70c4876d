package assignment

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
)

// PatrolAssignment binds a guard, a patrol route, and a shift to a calendar
// date. Soft-deleted (never hard-deleted) so visit history survives.
type PatrolAssignment struct {
	ID       string
	GuardID  string
	PatrolID string
	ShiftID  string
	Date     time.Time // calendar day, UTC midnight
	Rounds   int       // full traversals of the route within the shift, >= 1

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Detail is an assignment with its shift and route fully populated. Detail
// queries return value objects; the core never lazy-loads relations.
type Detail struct {
	PatrolAssignment
	Shift     shift.Shift
	Patrol    patrol.Patrol
	GuardName string
}
