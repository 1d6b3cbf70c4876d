package visit

import "time"

// Visit statuses. A record starts pending when the schedule is generated and
// is marked exactly once per round.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusLate      = "late"
	StatusMissed    = "missed"
)

// CheckpointVisit is the scheduled-vs-actual tracking row for one
// (assignment, checkpoint, round). CheckTime is the expected visit instant;
// RealCheck is the actual scan instant, nil until the guard scans.
type CheckpointVisit struct {
	ID           string
	AssignmentID string
	CheckpointID string
	RoundNumber  int
	Status       string
	CheckTime    time.Time
	RealCheck    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	// Populated by list queries.
	CheckpointName *string
	GuardName      *string
}
