package guard

import "context"

// GuardRepository defines data access for guard accounts. All reads exclude
// soft-deleted rows.
type GuardRepository interface {
	Create(ctx context.Context, g Guard) (Guard, error)
	GetByID(ctx context.Context, id string) (Guard, error)
	GetByEmail(ctx context.Context, email string) (Guard, error)

	// GetByBiometricID resolves a biometric punch to a guard. Returns
	// ErrUnknownBiometric when no guard carries the id.
	GetByBiometricID(ctx context.Context, biometricID string) (Guard, error)

	// GetBranchIDs returns the ids of the branches the guard is assigned to.
	GetBranchIDs(ctx context.Context, guardID string) ([]string, error)

	SetBranches(ctx context.Context, guardID string, branchIDs []string) error
	List(ctx context.Context) ([]Guard, error)
}
