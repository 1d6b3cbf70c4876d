package patrolrecord

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrRecordNotFound    = errors.New("patrol record not found")
	ErrNoAssignmentToday = errors.New("guard has no assignment for this date")
	ErrTooEarlyToStart   = errors.New("too early to start the shift")

	// ErrShiftStillInProgress is informational: the punch was understood but
	// the shift has not reached its end time yet.
	ErrShiftStillInProgress = errors.New("shift is still in progress")

	ErrShiftAlreadyCompleted = errors.New("shift already completed")
	ErrShiftCancelled        = errors.New("shift was cancelled")

	// ErrStatusConflict is a race loss: the record moved out of the expected
	// state between read and update. Terminal, not retryable.
	ErrStatusConflict = errors.New("patrol record status changed concurrently")
)

// BoundaryError carries the shift boundary the punch has not reached.
type BoundaryError struct {
	Kind     error // ErrTooEarlyToStart or ErrShiftStillInProgress
	Boundary time.Time
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("%s (boundary %s)", e.Kind, e.Boundary.Format("15:04"))
}

func (e *BoundaryError) Unwrap() error { return e.Kind }
