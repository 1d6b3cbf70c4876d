package checkpoint

import "context"

// CheckpointRepository defines data access for checkpoints. All reads exclude
// soft-deleted rows.
type CheckpointRepository interface {
	Create(ctx context.Context, c Checkpoint) (Checkpoint, error)
	GetByID(ctx context.Context, id string) (Checkpoint, error)

	// GetByTagUID resolves a scanned NFC tag to its checkpoint.
	GetByTagUID(ctx context.Context, tagUID string) (Checkpoint, error)

	ListByBranch(ctx context.Context, branchID string) ([]Checkpoint, error)
	SoftDelete(ctx context.Context, id string) error
}
