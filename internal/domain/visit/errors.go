package visit

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoActiveShift        = errors.New("guard has no shift in progress")
	ErrCheckpointNotFound   = errors.New("checkpoint not found")
	ErrForbiddenCheckpoint  = errors.New("checkpoint does not belong to any of the guard's branches")
	ErrCheckpointNotOnRoute = errors.New("checkpoint is not on the active patrol route")
	ErrOutOfSequence        = errors.New("checkpoint scanned out of sequence")
	ErrAlreadyMarked        = errors.New("checkpoint already marked for this round")
	ErrTooEarly             = errors.New("too early to mark this checkpoint")

	// ErrScheduleMissing means the pre-generated schedule has no record for
	// an on-route, in-sequence checkpoint. That is an internal-consistency
	// bug, not a user-facing validation failure.
	ErrScheduleMissing = errors.New("visit record missing for on-route checkpoint")

	ErrVisitNotFound = errors.New("visit record not found")
)

// OutOfSequenceError names the checkpoint that must be visited first.
type OutOfSequenceError struct {
	ExpectedCheckpointID   string
	ExpectedCheckpointName string
	ExpectedOrder          int
}

func (e *OutOfSequenceError) Error() string {
	return fmt.Sprintf("out of sequence: checkpoint %q (order %d) must be visited first",
		e.ExpectedCheckpointName, e.ExpectedOrder)
}

func (e *OutOfSequenceError) Unwrap() error { return ErrOutOfSequence }

// TooEarlyError carries the instant the scan window opens.
type TooEarlyError struct {
	OpensAt time.Time
}

func (e *TooEarlyError) Error() string {
	return fmt.Sprintf("too early: window opens at %s", e.OpensAt.Format("15:04"))
}

func (e *TooEarlyError) Unwrap() error { return ErrTooEarly }
