package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/notification"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
)

type stubVisitRepo struct {
	visit.VisitRepository
	cutoffMinutes int
	flipped       int64
}

func (s *stubVisitRepo) MarkOverduePending(ctx context.Context, now time.Time, cutoffMinutes int) (int64, error) {
	s.cutoffMinutes = cutoffMinutes
	return s.flipped, nil
}

type stubRecordRepo struct {
	patrolrecord.PatrolRecordRepository
	records     []patrolrecord.PatrolRecord
	transitions []string
}

func (s *stubRecordRepo) ListByStatus(ctx context.Context, status string) ([]patrolrecord.PatrolRecord, error) {
	return s.records, nil
}

func (s *stubRecordRepo) Transition(ctx context.Context, id, fromStatus, toStatus string, actualStart, actualEnd *time.Time) error {
	s.transitions = append(s.transitions, id)
	return nil
}

type stubAssignmentRepo struct {
	assignment.AssignmentRepository
	details map[string]assignment.Detail
}

func (s *stubAssignmentRepo) GetDetail(ctx context.Context, id string) (assignment.Detail, error) {
	d, ok := s.details[id]
	if !ok {
		return assignment.Detail{}, assignment.ErrAssignmentNotFound
	}
	return d, nil
}

type stubNotifier struct {
	notification.Service
	queued []notification.CreateNotificationRequest
}

func (s *stubNotifier) Queue(ctx context.Context, req notification.CreateNotificationRequest) error {
	s.queued = append(s.queued, req)
	return nil
}

func dayShiftOn(date time.Time) (assignment.Detail, shift.Shift) {
	s := shift.Shift{
		ID:        "shift-1",
		Name:      "Day",
		StartTime: time.Date(2000, 1, 1, 8, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2000, 1, 1, 16, 0, 0, 0, time.UTC),
	}
	return assignment.Detail{
		PatrolAssignment: assignment.PatrolAssignment{ID: "a-" + date.Format("0102"), GuardID: "guard-1", Date: date},
		Shift:            s,
	}, s
}

func TestMarkOverdueVisits(t *testing.T) {
	visitRepo := &stubVisitRepo{flipped: 3}
	jobs := NewPatrolJobs(visitRepo, &stubRecordRepo{}, &stubAssignmentRepo{}, nil, 15)

	err := jobs.MarkOverdueVisits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 15, visitRepo.cutoffMinutes)
}

func TestAutoCloseStalePatrols(t *testing.T) {
	now := time.Now().UTC()
	staleDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -3)
	freshDate := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	staleDetail, _ := dayShiftOn(staleDate)
	freshDetail, _ := dayShiftOn(freshDate)

	recordRepo := &stubRecordRepo{records: []patrolrecord.PatrolRecord{
		{ID: "r-stale", AssignmentID: staleDetail.ID, Status: patrolrecord.StatusEnProgreso},
		{ID: "r-fresh", AssignmentID: freshDetail.ID, Status: patrolrecord.StatusEnProgreso},
	}}
	assignmentRepo := &stubAssignmentRepo{details: map[string]assignment.Detail{
		staleDetail.ID: staleDetail,
		freshDetail.ID: freshDetail,
	}}
	notifier := &stubNotifier{}

	jobs := NewPatrolJobs(&stubVisitRepo{}, recordRepo, assignmentRepo, notifier, 15)
	err := jobs.AutoCloseStalePatrols(context.Background())
	require.NoError(t, err)

	// Only the record whose shift ended days ago is closed.
	assert.Equal(t, []string{"r-stale"}, recordRepo.transitions)

	require.Len(t, notifier.queued, 1)
	assert.Equal(t, "guard-1", notifier.queued[0].RecipientID)
	assert.Equal(t, notification.TypePatrolAutoClosed, notifier.queued[0].Type)
}

func TestSchedulerRunOnce(t *testing.T) {
	scheduler := NewScheduler()
	defer scheduler.Stop()

	ran := 0
	scheduler.AddJob("count", time.Hour, func(ctx context.Context) error {
		ran++
		return nil
	})

	scheduler.RunOnce(context.Background())
	scheduler.RunOnce(context.Background())
	assert.Equal(t, 2, ran)
}
