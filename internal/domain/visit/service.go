package visit

import "context"

// VisitService is the checkpoint-sequencing engine plus its read side.
type VisitService interface {
	// RecordVisit validates a scan against the guard's active assignment
	// (ownership, route membership, strict order, timing window) and marks
	// the matching schedule record exactly once.
	RecordVisit(ctx context.Context, req RecordVisitRequest) (VisitOutcome, error)

	ListByAssignment(ctx context.Context, assignmentID string) ([]VisitResponse, error)
	List(ctx context.Context, filter Filter) (ListVisitsResponse, error)
}
