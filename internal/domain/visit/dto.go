package visit

import (
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

// Policy holds the classification thresholds in minutes. The three-tier
// on-time/late/missed split is fixed; the boundaries are configuration.
type Policy struct {
	EarlyGraceMinutes int // scans earlier than -EarlyGrace are rejected
	OnTimeMinutes     int // |delta| <= OnTime classifies completed
	LateMinutes       int // delta <= Late classifies late, beyond is missed
}

// DefaultPolicy mirrors the -5/+5/+15 minute windows.
func DefaultPolicy() Policy {
	return Policy{EarlyGraceMinutes: 5, OnTimeMinutes: 5, LateMinutes: 15}
}

// Classify buckets a scan delta (minutes relative to the scheduled instant,
// negative when early). ok is false when the scan is too early to accept.
func (p Policy) Classify(deltaMinutes int) (status string, ok bool) {
	switch {
	case deltaMinutes < -p.EarlyGraceMinutes:
		return "", false
	case deltaMinutes <= p.OnTimeMinutes:
		return StatusCompleted, true
	case deltaMinutes <= p.LateMinutes:
		return StatusLate, true
	default:
		return StatusMissed, true
	}
}

// RecordVisitRequest is a scan event. Exactly one of CheckpointID or TagUID
// must be set; GuardID comes from the authenticated context.
type RecordVisitRequest struct {
	GuardID      string `json:"-"`
	CheckpointID string `json:"checkpoint_id,omitempty"`
	TagUID       string `json:"tag_uid,omitempty"`
	ScanTime     string `json:"scan_time,omitempty"` // RFC3339; empty means now
}

func (r RecordVisitRequest) Validate() error {
	var errs validator.ValidationErrors
	if r.CheckpointID == "" && r.TagUID == "" {
		errs = append(errs, validator.ValidationError{Field: "checkpoint_id", Message: "checkpoint_id or tag_uid is required"})
	}
	if r.CheckpointID != "" && !validator.IsValidUUID(r.CheckpointID) {
		errs = append(errs, validator.ValidationError{Field: "checkpoint_id", Message: "must be a valid uuid"})
	}
	if r.ScanTime != "" {
		if _, ok := validator.IsValidDateTime(r.ScanTime); !ok {
			errs = append(errs, validator.ValidationError{Field: "scan_time", Message: "must be RFC3339"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	AssignmentID *string
	BranchID     *string
	Status       *string
	StartDate    *string
	EndDate      *string
	Page         int
	Limit        int
}

func (f Filter) Validate() error {
	var errs validator.ValidationErrors
	if f.Status != nil {
		switch *f.Status {
		case StatusPending, StatusCompleted, StatusLate, StatusMissed:
		default:
			errs = append(errs, validator.ValidationError{Field: "status", Message: "unknown status"})
		}
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type VisitResponse struct {
	ID             string  `json:"id"`
	AssignmentID   string  `json:"assignment_id"`
	CheckpointID   string  `json:"checkpoint_id"`
	CheckpointName *string `json:"checkpoint_name,omitempty"`
	GuardName      *string `json:"guard_name,omitempty"`
	RoundNumber    int     `json:"round_number"`
	Status         string  `json:"status"`
	CheckTime      string  `json:"check_time"`
	RealCheck      *string `json:"real_check,omitempty"`
}

// VisitOutcome is what a successful scan returns: the final classification
// plus a message the mobile client shows verbatim.
type VisitOutcome struct {
	Visit        VisitResponse `json:"visit"`
	DeltaMinutes int           `json:"delta_minutes"`
	Message      string        `json:"message"`
}

type ListVisitsResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Visits     []VisitResponse `json:"visits"`
}

func ToResponse(v CheckpointVisit) VisitResponse {
	resp := VisitResponse{
		ID:             v.ID,
		AssignmentID:   v.AssignmentID,
		CheckpointID:   v.CheckpointID,
		CheckpointName: v.CheckpointName,
		GuardName:      v.GuardName,
		RoundNumber:    v.RoundNumber,
		Status:         v.Status,
		CheckTime:      v.CheckTime.Format(time.RFC3339),
	}
	if v.RealCheck != nil {
		s := v.RealCheck.Format(time.RFC3339)
		resp.RealCheck = &s
	}
	return resp
}
