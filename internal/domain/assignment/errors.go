package assignment

import (
	"errors"
	"fmt"
)

var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrShiftConflict      = errors.New("guard already has an overlapping shift on this date")

	// ErrScheduleStarted blocks schedule-affecting updates once a visit has
	// been marked.
	ErrScheduleStarted = errors.New("assignment schedule already has marked visits")
)

// ConflictError identifies the existing assignment whose shift window
// overlaps the candidate's.
type ConflictError struct {
	Conflicting Detail
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("shift overlaps existing assignment to shift %q on %s",
		e.Conflicting.Shift.Name, e.Conflicting.Date.Format("2006-01-02"))
}

func (e *ConflictError) Unwrap() error { return ErrShiftConflict }
