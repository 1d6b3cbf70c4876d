package assignment

import "context"

// AssignmentService is the scheduling surface: creating an assignment runs
// the conflict guard, materializes the checkpoint visit schedule, and opens a
// pending patrol record, all in one transaction.
type AssignmentService interface {
	Create(ctx context.Context, req CreateAssignmentRequest) (AssignmentResponse, error)
	Get(ctx context.Context, id string) (AssignmentResponse, error)
	List(ctx context.Context, filter Filter) (ListAssignmentsResponse, error)
	Update(ctx context.Context, req UpdateAssignmentRequest) (AssignmentResponse, error)

	// Delete soft-deletes the assignment, cascades the soft delete to its
	// visit records, and cancels (not deletes) the patrol record.
	Delete(ctx context.Context, id string) error
}
