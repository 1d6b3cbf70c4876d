package assignment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/domain/notification"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/database"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
	"github.com/guardtrack/patrol-backend-go/internal/repository/postgresql"
)

type AssignmentServiceImpl struct {
	db              *database.DB
	assignmentRepo  assignment.AssignmentRepository
	guardRepo       guard.GuardRepository
	patrolRepo      patrol.PatrolRepository
	shiftRepo       shift.ShiftRepository
	visitRepo       visit.VisitRepository
	recordRepo      patrolrecord.PatrolRecordRepository
	notificationSvc notification.Service
}

func NewAssignmentService(
	db *database.DB,
	assignmentRepo assignment.AssignmentRepository,
	guardRepo guard.GuardRepository,
	patrolRepo patrol.PatrolRepository,
	shiftRepo shift.ShiftRepository,
	visitRepo visit.VisitRepository,
	recordRepo patrolrecord.PatrolRecordRepository,
	notificationSvc notification.Service,
) assignment.AssignmentService {
	return &AssignmentServiceImpl{
		db:              db,
		assignmentRepo:  assignmentRepo,
		guardRepo:       guardRepo,
		patrolRepo:      patrolRepo,
		shiftRepo:       shiftRepo,
		visitRepo:       visitRepo,
		recordRepo:      recordRepo,
		notificationSvc: notificationSvc,
	}
}

// Create validates the referenced guard, patrol and shift, runs the shift
// conflict guard, then atomically inserts the assignment, its generated visit
// schedule, and a pendiente patrol record. Inside the transaction an advisory
// lock on (guard, date) is taken before the conflict guard re-reads the
// guard's assignments; without it two concurrent creations would each see
// the pre-insert state under read committed and both pass.
func (s *AssignmentServiceImpl) Create(ctx context.Context, req assignment.CreateAssignmentRequest) (assignment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}
	date, _ := validator.IsValidDate(req.Date)

	g, err := s.guardRepo.GetByID(ctx, req.GuardID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	p, err := s.patrolRepo.GetByID(ctx, req.PatrolID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	sh, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	rounds := req.Rounds
	if rounds < 1 {
		rounds = 1
	}

	now := time.Now().UTC()
	a := assignment.PatrolAssignment{
		ID:        uuid.NewString(),
		GuardID:   g.ID,
		PatrolID:  p.ID,
		ShiftID:   sh.ID,
		Date:      date,
		Rounds:    rounds,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.assignmentRepo.LockGuardDate(txCtx, g.ID, date); err != nil {
			return err
		}
		existing, err := s.assignmentRepo.ListByGuardAndDate(txCtx, g.ID, date)
		if err != nil {
			return fmt.Errorf("failed to list assignments for conflict check: %w", err)
		}
		if err := checkShiftConflict(sh, existing, ""); err != nil {
			return err
		}

		created, err := s.assignmentRepo.Create(txCtx, a)
		if err != nil {
			return fmt.Errorf("failed to create assignment: %w", err)
		}

		schedule := generateVisitSchedule(created, p.RoutePoints, sh, now)
		if err := s.visitRepo.CreateBatch(txCtx, schedule); err != nil {
			return fmt.Errorf("failed to create visit schedule: %w", err)
		}

		_, err = s.recordRepo.Create(txCtx, patrolrecord.PatrolRecord{
			ID:           uuid.NewString(),
			AssignmentID: created.ID,
			Status:       patrolrecord.StatusPendiente,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to create patrol record: %w", err)
		}
		return nil
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	// Best effort; the assignment stands whether or not the guard is told.
	_ = s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
		RecipientID: g.ID,
		Type:        notification.TypeAssignmentCreated,
		Title:       "New patrol assignment",
		Message: fmt.Sprintf("You are assigned to %s on %s, %s shift.",
			p.Name, date.Format("2006-01-02"), sh.Name),
		Data: map[string]interface{}{"assignment_id": a.ID},
	})

	detail, err := s.assignmentRepo.GetDetail(ctx, a.ID)
	if err != nil {
		return assignment.AssignmentResponse{}, fmt.Errorf("failed to load created assignment: %w", err)
	}
	return assignment.ToResponse(detail), nil
}

func (s *AssignmentServiceImpl) Get(ctx context.Context, id string) (assignment.AssignmentResponse, error) {
	detail, err := s.assignmentRepo.GetDetail(ctx, id)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	return assignment.ToResponse(detail), nil
}

func (s *AssignmentServiceImpl) List(ctx context.Context, filter assignment.Filter) (assignment.ListAssignmentsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	details, total, err := s.assignmentRepo.List(ctx, filter)
	if err != nil {
		return assignment.ListAssignmentsResponse{}, fmt.Errorf("failed to list assignments: %w", err)
	}

	resp := assignment.ListAssignmentsResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Assignments: make([]assignment.AssignmentResponse, 0, len(details)),
	}
	for _, d := range details {
		resp.Assignments = append(resp.Assignments, assignment.ToResponse(d))
	}
	return resp, nil
}

// Update applies a partial update. Changing the patrol, shift, date or rounds
// regenerates the visit schedule, which is only allowed while every visit is
// still pending; once a guard has started scanning the schedule is history
// and the update is rejected with ErrScheduleStarted.
func (s *AssignmentServiceImpl) Update(ctx context.Context, req assignment.UpdateAssignmentRequest) (assignment.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return assignment.AssignmentResponse{}, err
	}

	detail, err := s.assignmentRepo.GetDetail(ctx, req.ID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	updated := detail.PatrolAssignment
	scheduleAffected := false

	if req.PatrolID != nil && *req.PatrolID != updated.PatrolID {
		updated.PatrolID = *req.PatrolID
		scheduleAffected = true
	}
	if req.ShiftID != nil && *req.ShiftID != updated.ShiftID {
		updated.ShiftID = *req.ShiftID
		scheduleAffected = true
	}
	if req.Date != nil {
		date, _ := validator.IsValidDate(*req.Date)
		if !date.Equal(updated.Date) {
			updated.Date = date
			scheduleAffected = true
		}
	}
	if req.Rounds != nil && *req.Rounds != updated.Rounds {
		updated.Rounds = *req.Rounds
		scheduleAffected = true
	}
	if !scheduleAffected {
		return assignment.ToResponse(detail), nil
	}

	p, err := s.patrolRepo.GetByID(ctx, updated.PatrolID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}
	sh, err := s.shiftRepo.GetByID(ctx, updated.ShiftID)
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	visits, err := s.visitRepo.ListByAssignment(ctx, updated.ID)
	if err != nil {
		return assignment.AssignmentResponse{}, fmt.Errorf("failed to load visit schedule: %w", err)
	}
	for _, v := range visits {
		if v.Status != visit.StatusPending {
			return assignment.AssignmentResponse{}, assignment.ErrScheduleStarted
		}
	}

	now := time.Now().UTC()
	updated.UpdatedAt = now

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.assignmentRepo.LockGuardDate(txCtx, updated.GuardID, updated.Date); err != nil {
			return err
		}
		existing, err := s.assignmentRepo.ListByGuardAndDate(txCtx, updated.GuardID, updated.Date)
		if err != nil {
			return fmt.Errorf("failed to list assignments for conflict check: %w", err)
		}
		if err := checkShiftConflict(sh, existing, updated.ID); err != nil {
			return err
		}

		if err := s.assignmentRepo.Update(txCtx, updated); err != nil {
			return fmt.Errorf("failed to update assignment: %w", err)
		}
		if err := s.visitRepo.SoftDeleteByAssignment(txCtx, updated.ID); err != nil {
			return fmt.Errorf("failed to retire old visit schedule: %w", err)
		}
		schedule := generateVisitSchedule(updated, p.RoutePoints, sh, now)
		if err := s.visitRepo.CreateBatch(txCtx, schedule); err != nil {
			return fmt.Errorf("failed to create visit schedule: %w", err)
		}
		return nil
	})
	if err != nil {
		return assignment.AssignmentResponse{}, err
	}

	fresh, err := s.assignmentRepo.GetDetail(ctx, updated.ID)
	if err != nil {
		return assignment.AssignmentResponse{}, fmt.Errorf("failed to load updated assignment: %w", err)
	}
	return assignment.ToResponse(fresh), nil
}

// Delete soft-deletes the assignment and its visit schedule and cancels the
// patrol record, preserving all rows for history.
func (s *AssignmentServiceImpl) Delete(ctx context.Context, id string) error {
	detail, err := s.assignmentRepo.GetDetail(ctx, id)
	if err != nil {
		return err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.assignmentRepo.SoftDelete(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete assignment: %w", err)
		}
		if err := s.visitRepo.SoftDeleteByAssignment(txCtx, id); err != nil {
			return fmt.Errorf("failed to delete visit schedule: %w", err)
		}
		if err := s.recordRepo.Cancel(txCtx, id); err != nil {
			return fmt.Errorf("failed to cancel patrol record: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = s.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
		RecipientID: detail.GuardID,
		Type:        notification.TypeAssignmentCancelled,
		Title:       "Assignment cancelled",
		Message: fmt.Sprintf("Your assignment to %s on %s was cancelled.",
			detail.Patrol.Name, detail.Date.Format("2006-01-02")),
		Data: map[string]interface{}{"assignment_id": id},
	})
	return nil
}
