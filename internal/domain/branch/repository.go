package branch

import "context"

// BranchRepository defines data access for branches. All reads exclude
// soft-deleted rows.
type BranchRepository interface {
	Create(ctx context.Context, b Branch) (Branch, error)
	GetByID(ctx context.Context, id string) (Branch, error)
	List(ctx context.Context) ([]Branch, error)
}
