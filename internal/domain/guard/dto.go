package guard

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type CreateGuardRequest struct {
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Password    string   `json:"password"`
	Role        string   `json:"role,omitempty"` // default "guard"
	BiometricID *string  `json:"biometric_id,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	BranchIDs   []string `json:"branch_ids,omitempty"`
}

func (r CreateGuardRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if r.Role != "" && r.Role != string(RoleAdmin) && r.Role != string(RoleGuard) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "must be admin or guard"})
	}
	for _, id := range r.BranchIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{Field: "branch_ids", Message: "must be valid uuids"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetBranchesRequest struct {
	GuardID   string   `json:"-"`
	BranchIDs []string `json:"branch_ids"`
}

func (r SetBranchesRequest) Validate() error {
	for _, id := range r.BranchIDs {
		if !validator.IsValidUUID(id) {
			return validator.ValidationErrors{{Field: "branch_ids", Message: "must be valid uuids"}}
		}
	}
	return nil
}

type GuardResponse struct {
	ID          string   `json:"id"`
	FullName    string   `json:"full_name"`
	Email       string   `json:"email"`
	Role        string   `json:"role"`
	BiometricID *string  `json:"biometric_id,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	BranchIDs   []string `json:"branch_ids,omitempty"`
	CreatedAt   string   `json:"created_at"`
}

func ToResponse(g Guard) GuardResponse {
	return GuardResponse{
		ID:          g.ID,
		FullName:    g.FullName,
		Email:       g.Email,
		Role:        string(g.Role),
		BiometricID: g.BiometricID,
		Phone:       g.Phone,
		BranchIDs:   g.BranchIDs,
		CreatedAt:   g.CreatedAt.Format(time.RFC3339),
	}
}
