package assignment

import (
	"context"
	"time"
)

// AssignmentRepository defines data access for patrol assignments. All reads
// exclude soft-deleted rows; Delete sets deleted_at and does not remove the
// row.
type AssignmentRepository interface {
	Create(ctx context.Context, a PatrolAssignment) (PatrolAssignment, error)
	GetByID(ctx context.Context, id string) (PatrolAssignment, error)

	// GetDetail returns the assignment with shift and route (ordered points,
	// checkpoints) populated.
	GetDetail(ctx context.Context, id string) (Detail, error)

	// ListByGuardAndDate returns the guard's assignments for a calendar date,
	// shifts populated. Used by the conflict guard and the punch lookup.
	ListByGuardAndDate(ctx context.Context, guardID string, date time.Time) ([]Detail, error)

	// LockGuardDate takes a transaction-scoped advisory lock on the
	// (guard, date) pair. Must run inside a transaction, before the conflict
	// guard reads the guard's assignments: it serializes concurrent
	// schedule writes that read-committed visibility would otherwise let
	// both pass.
	LockGuardDate(ctx context.Context, guardID string, date time.Time) error

	List(ctx context.Context, filter Filter) ([]Detail, int64, error)
	Update(ctx context.Context, a PatrolAssignment) error
	SoftDelete(ctx context.Context, id string) error
}
