package patrolrecord

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type PunchRequest struct {
	BiometricID string `json:"biometric_id"`
	Timestamp   string `json:"timestamp,omitempty"` // RFC3339; empty means now
}

func (r PunchRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.BiometricID) {
		errs = append(errs, validator.ValidationError{Field: "biometric_id", Message: "biometric_id is required"})
	}
	if r.Timestamp != "" {
		if _, ok := validator.IsValidDateTime(r.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{Field: "timestamp", Message: "must be RFC3339"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID           string  `json:"id"`
	AssignmentID string  `json:"assignment_id"`
	Status       string  `json:"status"`
	ActualStart  *string `json:"actual_start,omitempty"`
	ActualEnd    *string `json:"actual_end,omitempty"`
}

// PunchOutcome returns the record and shift for client display on every
// outcome, success or informational failure.
type PunchOutcome struct {
	Record  RecordResponse      `json:"record"`
	Shift   shift.ShiftResponse `json:"shift"`
	Message string              `json:"message"`
}

func ToResponse(r PatrolRecord) RecordResponse {
	resp := RecordResponse{
		ID:           r.ID,
		AssignmentID: r.AssignmentID,
		Status:       r.Status,
	}
	if r.ActualStart != nil {
		s := r.ActualStart.Format(time.RFC3339)
		resp.ActualStart = &s
	}
	if r.ActualEnd != nil {
		s := r.ActualEnd.Format(time.RFC3339)
		resp.ActualEnd = &s
	}
	return resp
}
