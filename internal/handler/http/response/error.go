package response

import (
	"errors"
	"net/http"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/auth"
	"github.com/guardtrack/patrol-backend-go/internal/domain/branch"
	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/domain/notification"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. Errors that carry context
// (shift conflicts, sequence violations, timing windows) surface their own
// message so the client can show the guard what to do instead.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// Guards
	case errors.Is(err, guard.ErrGuardNotFound):
		NotFound(w, "Guard not found")
	case errors.Is(err, guard.ErrUnknownBiometric):
		NotFound(w, "No guard registered for this biometric id")
	case errors.Is(err, guard.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, guard.ErrBiometricIDExists):
		Conflict(w, "Biometric id already registered")

	// Reference data
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrNameExists):
		Conflict(w, "Shift name already exists")
	case errors.Is(err, checkpoint.ErrCheckpointNotFound):
		NotFound(w, "Checkpoint not found")
	case errors.Is(err, checkpoint.ErrTagUIDExists):
		Conflict(w, "NFC tag uid already registered")
	case errors.Is(err, patrol.ErrPatrolNotFound):
		NotFound(w, "Patrol not found")
	case errors.Is(err, patrol.ErrInvalidRouteOrder):
		BadRequest(w, "Route point orders must be unique and 1..N", nil)

	// Assignments
	case errors.Is(err, assignment.ErrAssignmentNotFound):
		NotFound(w, "Assignment not found")
	case errors.Is(err, assignment.ErrShiftConflict):
		Conflict(w, err.Error())
	case errors.Is(err, assignment.ErrScheduleStarted):
		Conflict(w, "Schedule already has marked visits")

	// Checkpoint visits
	case errors.Is(err, visit.ErrNoActiveShift):
		Conflict(w, "No shift in progress")
	case errors.Is(err, visit.ErrCheckpointNotFound):
		NotFound(w, "Checkpoint not found")
	case errors.Is(err, visit.ErrForbiddenCheckpoint):
		Forbidden(w, "Checkpoint does not belong to any of your branches")
	case errors.Is(err, visit.ErrCheckpointNotOnRoute):
		BadRequest(w, "Checkpoint is not on the active patrol route", nil)
	case errors.Is(err, visit.ErrOutOfSequence):
		Conflict(w, err.Error())
	case errors.Is(err, visit.ErrAlreadyMarked):
		Conflict(w, "Checkpoint already marked for this round")
	case errors.Is(err, visit.ErrTooEarly):
		Conflict(w, err.Error())
	case errors.Is(err, visit.ErrVisitNotFound):
		NotFound(w, "Visit record not found")

	// Patrol records
	case errors.Is(err, patrolrecord.ErrRecordNotFound):
		NotFound(w, "Patrol record not found")
	case errors.Is(err, patrolrecord.ErrNoAssignmentToday):
		NotFound(w, "No assignment for this date")
	case errors.Is(err, patrolrecord.ErrTooEarlyToStart),
		errors.Is(err, patrolrecord.ErrShiftStillInProgress):
		Conflict(w, err.Error())
	case errors.Is(err, patrolrecord.ErrShiftAlreadyCompleted):
		Conflict(w, "Shift already completed")
	case errors.Is(err, patrolrecord.ErrShiftCancelled):
		Conflict(w, "Shift was cancelled")
	case errors.Is(err, patrolrecord.ErrStatusConflict):
		Conflict(w, "Patrol record changed concurrently, reload and retry")

	// Notifications
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
