package patrolrecord

import "context"

// LifecycleService drives patrol records through
// pendiente -> en_progreso -> completado from biometric punch events.
type LifecycleService interface {
	Punch(ctx context.Context, req PunchRequest) (PunchOutcome, error)

	// GetCurrent returns the guard's in-progress record.
	GetCurrent(ctx context.Context, guardID string) (RecordResponse, error)

	ListByStatus(ctx context.Context, guardID, status string) ([]RecordResponse, error)
}
