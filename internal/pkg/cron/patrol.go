package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/notification"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
)

// staleCutoff is how long after the scheduled shift end an en_progreso
// record is left alone before the sweep closes it.
const staleCutoff = 2 * time.Hour

// PatrolJobs holds the periodic sweeps over visit records and patrol records.
type PatrolJobs struct {
	visitRepo       visit.VisitRepository
	recordRepo      patrolrecord.PatrolRecordRepository
	assignmentRepo  assignment.AssignmentRepository
	notificationSvc notification.Service
	lateThreshold   int
}

func NewPatrolJobs(
	visitRepo visit.VisitRepository,
	recordRepo patrolrecord.PatrolRecordRepository,
	assignmentRepo assignment.AssignmentRepository,
	notificationSvc notification.Service,
	lateThresholdMinutes int,
) *PatrolJobs {
	return &PatrolJobs{
		visitRepo:       visitRepo,
		recordRepo:      recordRepo,
		assignmentRepo:  assignmentRepo,
		notificationSvc: notificationSvc,
		lateThreshold:   lateThresholdMinutes,
	}
}

func (j *PatrolJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_overdue_visits", 10*time.Minute, j.MarkOverdueVisits)
	scheduler.AddJob("auto_close_stale_patrols", 30*time.Minute, j.AutoCloseStalePatrols)
}

// MarkOverdueVisits flips pending visit records whose scan window has fully
// passed to missed, so dashboards do not show stale pending checkpoints for
// guards who never scanned.
func (j *PatrolJobs) MarkOverdueVisits(ctx context.Context) error {
	count, err := j.visitRepo.MarkOverduePending(ctx, time.Now().UTC(), j.lateThreshold)
	if err != nil {
		return fmt.Errorf("failed to mark overdue visits: %w", err)
	}
	if count > 0 {
		slog.Info("Cron: marked overdue visits missed", "count", count)
	}
	return nil
}

// AutoCloseStalePatrols completes en_progreso records whose shift ended more
// than staleCutoff ago, setting actual_end to the scheduled shift end. The
// guard is notified best-effort.
func (j *PatrolJobs) AutoCloseStalePatrols(ctx context.Context) error {
	records, err := j.recordRepo.ListByStatus(ctx, patrolrecord.StatusEnProgreso)
	if err != nil {
		return fmt.Errorf("failed to list in-progress records: %w", err)
	}

	now := time.Now().UTC()
	closed := 0
	for _, rec := range records {
		detail, err := j.assignmentRepo.GetDetail(ctx, rec.AssignmentID)
		if err != nil {
			slog.Error("Cron: failed to load assignment for stale record",
				"record_id", rec.ID, "error", err)
			continue
		}

		scheduledEnd := detail.Shift.EndOn(detail.Date)
		if now.Sub(scheduledEnd) < staleCutoff {
			continue
		}

		end := scheduledEnd
		err = j.recordRepo.Transition(ctx, rec.ID,
			patrolrecord.StatusEnProgreso, patrolrecord.StatusCompletado, nil, &end)
		if err != nil {
			// A concurrent punch may have closed it already.
			slog.Warn("Cron: could not auto-close patrol record",
				"record_id", rec.ID, "error", err)
			continue
		}
		closed++

		if j.notificationSvc != nil {
			_ = j.notificationSvc.Queue(ctx, notification.CreateNotificationRequest{
				RecipientID: detail.GuardID,
				Type:        notification.TypePatrolAutoClosed,
				Title:       "Shift auto-closed",
				Message: fmt.Sprintf("Your %s shift on %s was closed automatically; no exit punch was recorded.",
					detail.Shift.Name, detail.Date.Format("2006-01-02")),
				Data: map[string]interface{}{
					"assignment_id": detail.ID,
					"record_id":     rec.ID,
				},
			})
		}
	}

	if closed > 0 {
		slog.Info("Cron: auto-closed stale patrol records", "count", closed)
	}
	return nil
}
