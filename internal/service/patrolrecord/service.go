package patrolrecord

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type LifecycleServiceImpl struct {
	recordRepo     patrolrecord.PatrolRecordRepository
	guardRepo      guard.GuardRepository
	assignmentRepo assignment.AssignmentRepository
}

func NewLifecycleService(
	recordRepo patrolrecord.PatrolRecordRepository,
	guardRepo guard.GuardRepository,
	assignmentRepo assignment.AssignmentRepository,
) patrolrecord.LifecycleService {
	return &LifecycleServiceImpl{
		recordRepo:     recordRepo,
		guardRepo:      guardRepo,
		assignmentRepo: assignmentRepo,
	}
}

// Punch resolves a biometric event to the guard's patrol record and advances
// it. A guard with an en_progreso record is punching out; otherwise the punch
// is an entry against today's assignment, or yesterday's when an overnight
// shift anchored on the previous date is still running. Informational
// failures (too early, shift still in progress) return the record alongside
// the error so the terminal can show the state.
func (s *LifecycleServiceImpl) Punch(ctx context.Context, req patrolrecord.PunchRequest) (patrolrecord.PunchOutcome, error) {
	if err := req.Validate(); err != nil {
		return patrolrecord.PunchOutcome{}, err
	}

	punchTime := time.Now().UTC()
	if req.Timestamp != "" {
		t, _ := validator.IsValidDateTime(req.Timestamp)
		punchTime = t.UTC()
	}

	g, err := s.guardRepo.GetByBiometricID(ctx, req.BiometricID)
	if err != nil {
		return patrolrecord.PunchOutcome{}, err
	}

	rec, err := s.recordRepo.GetInProgressByGuard(ctx, g.ID)
	if err == nil {
		return s.punchOut(ctx, rec, punchTime)
	}
	if !errors.Is(err, patrolrecord.ErrRecordNotFound) {
		return patrolrecord.PunchOutcome{}, fmt.Errorf("failed to find in-progress record: %w", err)
	}
	return s.punchIn(ctx, g.ID, punchTime)
}

func (s *LifecycleServiceImpl) punchOut(ctx context.Context, rec patrolrecord.PatrolRecord, punchTime time.Time) (patrolrecord.PunchOutcome, error) {
	detail, err := s.assignmentRepo.GetDetail(ctx, rec.AssignmentID)
	if err != nil {
		return patrolrecord.PunchOutcome{}, fmt.Errorf("failed to load assignment: %w", err)
	}

	scheduledEnd := detail.Shift.EndOn(detail.Date)
	if punchTime.Before(scheduledEnd) {
		return patrolrecord.PunchOutcome{
				Record:  patrolrecord.ToResponse(rec),
				Shift:   shift.ToResponse(detail.Shift),
				Message: fmt.Sprintf("Shift runs until %s.", scheduledEnd.Format("15:04")),
			}, &patrolrecord.BoundaryError{
				Kind:     patrolrecord.ErrShiftStillInProgress,
				Boundary: scheduledEnd,
			}
	}

	err = s.recordRepo.Transition(ctx, rec.ID,
		patrolrecord.StatusEnProgreso, patrolrecord.StatusCompletado, nil, &punchTime)
	if err != nil {
		return patrolrecord.PunchOutcome{}, err
	}

	rec.Status = patrolrecord.StatusCompletado
	rec.ActualEnd = &punchTime
	return patrolrecord.PunchOutcome{
		Record:  patrolrecord.ToResponse(rec),
		Shift:   shift.ToResponse(detail.Shift),
		Message: "Shift completed.",
	}, nil
}

func (s *LifecycleServiceImpl) punchIn(ctx context.Context, guardID string, punchTime time.Time) (patrolrecord.PunchOutcome, error) {
	candidates, err := s.entryCandidates(ctx, guardID, punchTime)
	if err != nil {
		return patrolrecord.PunchOutcome{}, err
	}
	if len(candidates) == 0 {
		return patrolrecord.PunchOutcome{}, patrolrecord.ErrNoAssignmentToday
	}

	// A pendiente record accepts an entry punch from its shift start onward,
	// however late. Among several started shifts the latest start wins; when
	// every pending shift is still ahead the punch is too early, reported
	// against the nearest one. When every candidate's record is terminal,
	// report the state of the last one.
	var (
		best        *entryCandidate
		upcoming    *entryCandidate
		terminalErr error
		terminal    *entryCandidate
	)
	for i := range candidates {
		c := &candidates[i]
		switch c.record.Status {
		case patrolrecord.StatusPendiente:
			if punchTime.Before(c.start) {
				if upcoming == nil || c.start.Before(upcoming.start) {
					upcoming = c
				}
				continue
			}
			if best == nil || c.start.After(best.start) {
				best = c
			}
		case patrolrecord.StatusCompletado:
			terminal, terminalErr = c, patrolrecord.ErrShiftAlreadyCompleted
		case patrolrecord.StatusCancelado:
			terminal, terminalErr = c, patrolrecord.ErrShiftCancelled
		}
	}

	if best == nil {
		if upcoming != nil {
			return patrolrecord.PunchOutcome{
					Record:  patrolrecord.ToResponse(upcoming.record),
					Shift:   shift.ToResponse(upcoming.detail.Shift),
					Message: fmt.Sprintf("Shift starts at %s.", upcoming.start.Format("15:04")),
				}, &patrolrecord.BoundaryError{
					Kind:     patrolrecord.ErrTooEarlyToStart,
					Boundary: upcoming.start,
				}
		}
		if terminalErr != nil {
			return patrolrecord.PunchOutcome{
				Record: patrolrecord.ToResponse(terminal.record),
				Shift:  shift.ToResponse(terminal.detail.Shift),
			}, terminalErr
		}
		return patrolrecord.PunchOutcome{}, patrolrecord.ErrNoAssignmentToday
	}

	err = s.recordRepo.Transition(ctx, best.record.ID,
		patrolrecord.StatusPendiente, patrolrecord.StatusEnProgreso, &punchTime, nil)
	if err != nil {
		return patrolrecord.PunchOutcome{}, err
	}

	rec := best.record
	rec.Status = patrolrecord.StatusEnProgreso
	rec.ActualStart = &punchTime
	return patrolrecord.PunchOutcome{
		Record:  patrolrecord.ToResponse(rec),
		Shift:   shift.ToResponse(best.detail.Shift),
		Message: "Shift started.",
	}, nil
}

type entryCandidate struct {
	detail assignment.Detail
	record patrolrecord.PatrolRecord
	start  time.Time
}

// entryCandidates gathers the guard's assignments an entry punch at punchTime
// could belong to: today's, plus yesterday's whose overnight shift window
// reaches past midnight into today.
func (s *LifecycleServiceImpl) entryCandidates(ctx context.Context, guardID string, punchTime time.Time) ([]entryCandidate, error) {
	today := time.Date(punchTime.Year(), punchTime.Month(), punchTime.Day(), 0, 0, 0, 0, time.UTC)
	yesterday := today.AddDate(0, 0, -1)

	var candidates []entryCandidate
	for _, date := range []time.Time{today, yesterday} {
		details, err := s.assignmentRepo.ListByGuardAndDate(ctx, guardID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to list assignments: %w", err)
		}
		for _, d := range details {
			end := d.Shift.EndOn(d.Date)
			if date.Equal(yesterday) && (!d.Shift.CrossesMidnight() || punchTime.After(end)) {
				continue
			}
			rec, err := s.recordRepo.GetActiveByAssignment(ctx, d.ID)
			if err != nil {
				if errors.Is(err, patrolrecord.ErrRecordNotFound) {
					continue
				}
				return nil, fmt.Errorf("failed to load patrol record: %w", err)
			}
			candidates = append(candidates, entryCandidate{
				detail: d,
				record: rec,
				start:  d.Shift.StartOn(d.Date),
			})
		}
	}
	return candidates, nil
}

func (s *LifecycleServiceImpl) GetCurrent(ctx context.Context, guardID string) (patrolrecord.RecordResponse, error) {
	rec, err := s.recordRepo.GetInProgressByGuard(ctx, guardID)
	if err != nil {
		return patrolrecord.RecordResponse{}, err
	}
	return patrolrecord.ToResponse(rec), nil
}

func (s *LifecycleServiceImpl) ListByStatus(ctx context.Context, guardID, status string) ([]patrolrecord.RecordResponse, error) {
	switch status {
	case patrolrecord.StatusPendiente, patrolrecord.StatusEnProgreso,
		patrolrecord.StatusCompletado, patrolrecord.StatusCancelado:
	default:
		return nil, validator.ValidationErrors{{Field: "status", Message: "unknown status"}}
	}

	records, err := s.recordRepo.ListByGuardAndStatus(ctx, guardID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrol records: %w", err)
	}
	resp := make([]patrolrecord.RecordResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, patrolrecord.ToResponse(r))
	}
	return resp, nil
}
