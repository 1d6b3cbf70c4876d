package branch

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type CreateBranchRequest struct {
	Name     string  `json:"name"`
	Address  *string `json:"address,omitempty"`
	Timezone string  `json:"timezone,omitempty"` // IANA name, default UTC
}

func (r CreateBranchRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.Timezone != "" {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{Field: "timezone", Message: "must be a valid IANA timezone"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BranchResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   *string `json:"address,omitempty"`
	Timezone  string  `json:"timezone"`
	CreatedAt string  `json:"created_at"`
}

func ToResponse(b Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Timezone:  b.Timezone,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
