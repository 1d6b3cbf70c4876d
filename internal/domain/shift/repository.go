package shift

import "context"

// ShiftRepository defines data access for shifts. Shifts are reference data:
// created and read, never updated. All reads exclude soft-deleted rows.
type ShiftRepository interface {
	Create(ctx context.Context, s Shift) (Shift, error)
	GetByID(ctx context.Context, id string) (Shift, error)
	List(ctx context.Context) ([]Shift, error)
}
