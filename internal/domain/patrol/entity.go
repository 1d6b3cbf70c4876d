package patrol

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
)

// Patrol is a route: an ordered sequence of checkpoints a guard must visit
// during a shift.
type Patrol struct {
	ID        string
	BranchID  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time

	// RoutePoints sorted by Order ascending. Populated by detail queries.
	RoutePoints []RoutePoint
}

// RoutePoint is a checkpoint's position within a route. Order is 1-based and
// unique within the patrol; it defines the visit sequence.
type RoutePoint struct {
	ID           string
	PatrolID     string
	CheckpointID string
	Order        int
	Latitude     *float64
	Longitude    *float64

	// Populated by detail queries.
	Checkpoint *checkpoint.Checkpoint
}
