package patrolrecord

import (
	"context"
	"time"
)

// PatrolRecordRepository defines data access for patrol records. All reads
// exclude soft-deleted rows.
type PatrolRecordRepository interface {
	Create(ctx context.Context, r PatrolRecord) (PatrolRecord, error)

	// GetActiveByAssignment returns the assignment's non-cancelled record.
	GetActiveByAssignment(ctx context.Context, assignmentID string) (PatrolRecord, error)

	// GetInProgressByGuard finds the guard's en_progreso record, if any. The
	// visit tracker keys on it to locate the active assignment.
	GetInProgressByGuard(ctx context.Context, guardID string) (PatrolRecord, error)

	ListByGuardAndStatus(ctx context.Context, guardID, status string) ([]PatrolRecord, error)

	// ListByStatus returns every record in a status, across guards. Used by
	// the stale-patrol sweep.
	ListByStatus(ctx context.Context, status string) ([]PatrolRecord, error)

	// Transition moves the record from one status to another with a
	// conditional update keyed on the expected current status. Zero matched
	// rows means a concurrent punch won; callers get ErrStatusConflict.
	Transition(ctx context.Context, id, fromStatus, toStatus string, actualStart, actualEnd *time.Time) error

	// Cancel marks the record cancelado (assignment deletion path).
	Cancel(ctx context.Context, assignmentID string) error
}
