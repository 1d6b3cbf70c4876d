package guard

import "time"

// Role of an account in the system.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleGuard Role = "guard"
)

// Guard is a security guard account. BiometricID is the identifier reported
// by the fingerprint reader on shift punches; it is unique across guards.
type Guard struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	BiometricID  *string
	Phone        *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time

	// Branches the guard is allowed to patrol. Populated by detail queries.
	BranchIDs []string
}
