package checkpoint

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type CreateCheckpointRequest struct {
	BranchID  string   `json:"branch_id"`
	Name      string   `json:"name"`
	TagUID    string   `json:"tag_uid"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (r CreateCheckpointRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.BranchID) {
		errs = append(errs, validator.ValidationError{Field: "branch_id", Message: "must be a valid uuid"})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if validator.IsEmpty(r.TagUID) {
		errs = append(errs, validator.ValidationError{Field: "tag_uid", Message: "tag_uid is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckpointResponse struct {
	ID        string   `json:"id"`
	BranchID  string   `json:"branch_id"`
	Name      string   `json:"name"`
	TagUID    string   `json:"tag_uid"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	CreatedAt string   `json:"created_at"`
}

func ToResponse(c Checkpoint) CheckpointResponse {
	return CheckpointResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Name:      c.Name,
		TagUID:    c.TagUID,
		Latitude:  c.Latitude,
		Longitude: c.Longitude,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
	}
}
