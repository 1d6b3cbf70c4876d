package visit

import (
	"context"
	"time"
)

// VisitRepository defines data access for checkpoint visit records. All reads
// exclude soft-deleted rows.
type VisitRepository interface {
	// CreateBatch inserts a generated schedule in one statement. Called
	// inside the assignment-creation transaction.
	CreateBatch(ctx context.Context, visits []CheckpointVisit) error

	// ListByAssignment returns the assignment's records sorted by round then
	// check_time.
	ListByAssignment(ctx context.Context, assignmentID string) ([]CheckpointVisit, error)

	List(ctx context.Context, filter Filter) ([]CheckpointVisit, int64, error)

	// Mark sets real_check and the final status, but only while the record is
	// still pending: the conditional update is the single-winner guarantee
	// when two scans race. Returns ErrAlreadyMarked when zero rows match.
	Mark(ctx context.Context, id string, status string, realCheck time.Time) error

	// MarkOverduePending flips pending records whose check_time is more than
	// cutoff minutes in the past to missed, returning how many were flipped.
	MarkOverduePending(ctx context.Context, now time.Time, cutoffMinutes int) (int64, error)

	// SoftDeleteByAssignment cascades an assignment soft delete.
	SoftDeleteByAssignment(ctx context.Context, assignmentID string) error
}
