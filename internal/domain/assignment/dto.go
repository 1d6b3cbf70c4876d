package assignment

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type CreateAssignmentRequest struct {
	GuardID  string `json:"guard_id"`
	PatrolID string `json:"patrol_id"`
	ShiftID  string `json:"shift_id"`
	Date     string `json:"date"` // "YYYY-MM-DD"
	Rounds   int    `json:"rounds,omitempty"`
}

func (r CreateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors
	if !validator.IsValidUUID(r.GuardID) {
		errs = append(errs, validator.ValidationError{Field: "guard_id", Message: "must be a valid uuid"})
	}
	if !validator.IsValidUUID(r.PatrolID) {
		errs = append(errs, validator.ValidationError{Field: "patrol_id", Message: "must be a valid uuid"})
	}
	if !validator.IsValidUUID(r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "must be a valid uuid"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	if r.Rounds < 0 {
		errs = append(errs, validator.ValidationError{Field: "rounds", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateAssignmentRequest is an exhaustively-typed partial update: nil fields
// are left unchanged.
type UpdateAssignmentRequest struct {
	ID       string  `json:"-"`
	PatrolID *string `json:"patrol_id,omitempty"`
	ShiftID  *string `json:"shift_id,omitempty"`
	Date     *string `json:"date,omitempty"`
	Rounds   *int    `json:"rounds,omitempty"`
}

func (r UpdateAssignmentRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.PatrolID != nil && !validator.IsValidUUID(*r.PatrolID) {
		errs = append(errs, validator.ValidationError{Field: "patrol_id", Message: "must be a valid uuid"})
	}
	if r.ShiftID != nil && !validator.IsValidUUID(*r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "must be a valid uuid"})
	}
	if r.Date != nil {
		if _, ok := validator.IsValidDate(*r.Date); !ok {
			errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
		}
	}
	if r.Rounds != nil && *r.Rounds < 1 {
		errs = append(errs, validator.ValidationError{Field: "rounds", Message: "must be positive"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	GuardID   *string
	BranchID  *string
	StartDate *string
	EndDate   *string
	Page      int
	Limit     int
}

type AssignmentResponse struct {
	ID        string                 `json:"id"`
	GuardID   string                 `json:"guard_id"`
	GuardName string                 `json:"guard_name,omitempty"`
	Date      string                 `json:"date"`
	Rounds    int                    `json:"rounds"`
	Shift     *shift.ShiftResponse   `json:"shift,omitempty"`
	Patrol    *patrol.PatrolResponse `json:"patrol,omitempty"`
	CreatedAt string                 `json:"created_at"`
}

type ListAssignmentsResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Assignments []AssignmentResponse `json:"assignments"`
}

func ToResponse(d Detail) AssignmentResponse {
	shiftResp := shift.ToResponse(d.Shift)
	patrolResp := patrol.ToResponse(d.Patrol)
	return AssignmentResponse{
		ID:        d.ID,
		GuardID:   d.GuardID,
		GuardName: d.GuardName,
		Date:      d.Date.Format("2006-01-02"),
		Rounds:    d.Rounds,
		Shift:     &shiftResp,
		Patrol:    &patrolResp,
		CreatedAt: d.CreatedAt.Format(time.RFC3339),
	}
}
