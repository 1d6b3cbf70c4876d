package patrol

import "context"

// PatrolRepository defines data access for patrols and their route points.
// All reads exclude soft-deleted rows; GetByID returns the patrol with its
// route points sorted by order, checkpoints populated.
type PatrolRepository interface {
	Create(ctx context.Context, p Patrol) (Patrol, error)
	GetByID(ctx context.Context, id string) (Patrol, error)
	ListByBranch(ctx context.Context, branchID string) ([]Patrol, error)

	// ReplaceRoutePoints swaps the patrol's route for a new ordered set.
	ReplaceRoutePoints(ctx context.Context, patrolID string, points []RoutePoint) error

	SoftDelete(ctx context.Context, id string) error
}
