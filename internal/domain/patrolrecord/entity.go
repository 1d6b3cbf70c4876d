package patrolrecord

import "time"

// Patrol record states. Status names are kept exactly as the mobile clients
// expect them.
const (
	StatusPendiente  = "pendiente"
	StatusEnProgreso = "en_progreso"
	StatusCompletado = "completado"
	StatusCancelado  = "cancelado"
)

// PatrolRecord is the shift-execution record for one assignment: at most one
// active (non-cancelled) record per assignment. Created pendiente alongside
// the assignment; punch events drive the transitions.
type PatrolRecord struct {
	ID           string
	AssignmentID string
	Status       string
	ActualStart  *time.Time
	ActualEnd    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Terminal reports whether no further punch can move the record.
func (r PatrolRecord) Terminal() bool {
	return r.Status == StatusCompletado || r.Status == StatusCancelado
}
