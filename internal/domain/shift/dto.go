package shift

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"` // "HH:MM"
	EndTime   string `json:"end_time"`
}

func (r CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if _, ok := validator.ParseClock(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM"})
	}
	if _, ok := validator.ParseClock(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	CrossesMidnight bool   `json:"crosses_midnight"`
	DurationMinutes int    `json:"duration_minutes"`
	CreatedAt       string `json:"created_at"`
}

func ToResponse(s Shift) ShiftResponse {
	return ShiftResponse{
		ID:              s.ID,
		Name:            s.Name,
		StartTime:       s.StartTime.Format("15:04"),
		EndTime:         s.EndTime.Format("15:04"),
		CrossesMidnight: s.CrossesMidnight(),
		DurationMinutes: s.DurationMinutes(),
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
	}
}
