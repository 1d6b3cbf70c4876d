package visit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
)

const (
	testGuardID      = "guard-1"
	testAssignmentID = "assign-1"
	testBranchID     = "branch-1"

	cpGateID    = "aaaaaaaa-aaaa-4aaa-8aaa-aaaaaaaaaaaa" // order 1
	cpLobbyID   = "bbbbbbbb-bbbb-4bbb-8bbb-bbbbbbbbbbbb" // order 2
	cpRoofID    = "cccccccc-cccc-4ccc-8ccc-cccccccccccc" // order 3
	cpOffRoute  = "dddddddd-dddd-4ddd-8ddd-dddddddddddd" // same branch, not on route
	cpForeignID = "eeeeeeee-eeee-4eee-8eee-eeeeeeeeeeee" // other branch
	cpUnknownID = "ffffffff-ffff-4fff-8fff-ffffffffffff"
)

type markCall struct {
	id        string
	status    string
	realCheck time.Time
}

type stubVisitRepo struct {
	visit.VisitRepository
	visits  []visit.CheckpointVisit
	markErr error
	marked  []markCall
}

func (s *stubVisitRepo) ListByAssignment(ctx context.Context, assignmentID string) ([]visit.CheckpointVisit, error) {
	return s.visits, nil
}

func (s *stubVisitRepo) Mark(ctx context.Context, id string, status string, realCheck time.Time) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.marked = append(s.marked, markCall{id: id, status: status, realCheck: realCheck})
	return nil
}

type stubGuardRepo struct {
	guard.GuardRepository
	branchIDs []string
}

func (s *stubGuardRepo) GetBranchIDs(ctx context.Context, guardID string) ([]string, error) {
	return s.branchIDs, nil
}

type stubCheckpointRepo struct {
	checkpoint.CheckpointRepository
	checkpoints []checkpoint.Checkpoint
}

func (s *stubCheckpointRepo) GetByID(ctx context.Context, id string) (checkpoint.Checkpoint, error) {
	for _, cp := range s.checkpoints {
		if cp.ID == id {
			return cp, nil
		}
	}
	return checkpoint.Checkpoint{}, checkpoint.ErrCheckpointNotFound
}

func (s *stubCheckpointRepo) GetByTagUID(ctx context.Context, tagUID string) (checkpoint.Checkpoint, error) {
	for _, cp := range s.checkpoints {
		if cp.TagUID == tagUID {
			return cp, nil
		}
	}
	return checkpoint.Checkpoint{}, checkpoint.ErrCheckpointNotFound
}

type stubAssignmentRepo struct {
	assignment.AssignmentRepository
	detail assignment.Detail
}

func (s *stubAssignmentRepo) GetDetail(ctx context.Context, id string) (assignment.Detail, error) {
	return s.detail, nil
}

type stubRecordRepo struct {
	patrolrecord.PatrolRecordRepository
	record patrolrecord.PatrolRecord
	err    error
}

func (s *stubRecordRepo) GetInProgressByGuard(ctx context.Context, guardID string) (patrolrecord.PatrolRecord, error) {
	if s.err != nil {
		return patrolrecord.PatrolRecord{}, s.err
	}
	return s.record, nil
}

type visitTestEnv struct {
	visitRepo *stubVisitRepo
	svc       visit.VisitService
}

func newVisitTestEnv(visits []visit.CheckpointVisit) *visitTestEnv {
	cp := func(id, name, tagUID, branchID string) checkpoint.Checkpoint {
		return checkpoint.Checkpoint{ID: id, BranchID: branchID, Name: name, TagUID: tagUID}
	}
	checkpoints := []checkpoint.Checkpoint{
		cp(cpGateID, "Main Gate", "TAG-GATE", testBranchID),
		cp(cpLobbyID, "Lobby", "TAG-LOBBY", testBranchID),
		cp(cpRoofID, "Roof Access", "TAG-ROOF", testBranchID),
		cp(cpOffRoute, "Parking", "TAG-PARK", testBranchID),
		cp(cpForeignID, "Other Site Gate", "TAG-OTHER", "branch-2"),
	}

	route := []patrol.RoutePoint{
		{CheckpointID: cpGateID, Order: 1, Checkpoint: &checkpoints[0]},
		{CheckpointID: cpLobbyID, Order: 2, Checkpoint: &checkpoints[1]},
		{CheckpointID: cpRoofID, Order: 3, Checkpoint: &checkpoints[2]},
	}

	visitRepo := &stubVisitRepo{visits: visits}
	env := &visitTestEnv{
		visitRepo: visitRepo,
		svc: NewVisitService(
			visitRepo,
			&stubGuardRepo{branchIDs: []string{testBranchID}},
			&stubCheckpointRepo{checkpoints: checkpoints},
			&stubAssignmentRepo{detail: assignment.Detail{
				PatrolAssignment: assignment.PatrolAssignment{
					ID:      testAssignmentID,
					GuardID: testGuardID,
					Date:    time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
					Rounds:  2,
				},
				Shift:  shift.Shift{ID: "shift-1", Name: "Day"},
				Patrol: patrol.Patrol{ID: "patrol-1", BranchID: testBranchID, RoutePoints: route},
			}},
			&stubRecordRepo{record: patrolrecord.PatrolRecord{
				ID:           "record-1",
				AssignmentID: testAssignmentID,
				Status:       patrolrecord.StatusEnProgreso,
			}},
			visit.DefaultPolicy(),
		),
	}
	return env
}

func visitRec(id, checkpointID string, round int, status string, checkHour, checkMin int) visit.CheckpointVisit {
	return visit.CheckpointVisit{
		ID:           id,
		AssignmentID: testAssignmentID,
		CheckpointID: checkpointID,
		RoundNumber:  round,
		Status:       status,
		CheckTime:    time.Date(2025, 3, 14, checkHour, checkMin, 0, 0, time.UTC),
	}
}

// Round 1 schedule, everything pending: Gate 10:00, Lobby 12:00, Roof 14:00.
func pendingRound() []visit.CheckpointVisit {
	return []visit.CheckpointVisit{
		visitRec("v1", cpGateID, 1, visit.StatusPending, 10, 0),
		visitRec("v2", cpLobbyID, 1, visit.StatusPending, 12, 0),
		visitRec("v3", cpRoofID, 1, visit.StatusPending, 14, 0),
	}
}

func scanReq(checkpointID, scanTime string) visit.RecordVisitRequest {
	return visit.RecordVisitRequest{
		GuardID:      testGuardID,
		CheckpointID: checkpointID,
		ScanTime:     scanTime,
	}
}

func TestRecordVisitValidation(t *testing.T) {
	env := newVisitTestEnv(pendingRound())

	_, err := env.svc.RecordVisit(context.Background(), visit.RecordVisitRequest{GuardID: testGuardID})
	assert.Error(t, err)
	assert.Empty(t, env.visitRepo.marked)
}

func TestRecordVisitNoActiveShift(t *testing.T) {
	env := newVisitTestEnv(pendingRound())
	env.svc.(*VisitServiceImpl).recordRepo = &stubRecordRepo{err: patrolrecord.ErrRecordNotFound}

	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpGateID, "2025-03-14T10:00:00Z"))
	assert.ErrorIs(t, err, visit.ErrNoActiveShift)
}

func TestRecordVisitUnknownCheckpoint(t *testing.T) {
	env := newVisitTestEnv(pendingRound())

	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpUnknownID, "2025-03-14T10:00:00Z"))
	assert.ErrorIs(t, err, visit.ErrCheckpointNotFound)
}

func TestRecordVisitForeignBranch(t *testing.T) {
	env := newVisitTestEnv(pendingRound())

	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpForeignID, "2025-03-14T10:00:00Z"))
	assert.ErrorIs(t, err, visit.ErrForbiddenCheckpoint)
}

func TestRecordVisitOffRoute(t *testing.T) {
	env := newVisitTestEnv(pendingRound())

	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpOffRoute, "2025-03-14T10:00:00Z"))
	assert.ErrorIs(t, err, visit.ErrCheckpointNotOnRoute)
}

func TestRecordVisitOutOfSequence(t *testing.T) {
	env := newVisitTestEnv(pendingRound())

	// Lobby scanned while the gate is still pending.
	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpLobbyID, "2025-03-14T12:00:00Z"))
	require.ErrorIs(t, err, visit.ErrOutOfSequence)

	var seqErr *visit.OutOfSequenceError
	require.True(t, errors.As(err, &seqErr))
	assert.Equal(t, cpGateID, seqErr.ExpectedCheckpointID)
	assert.Equal(t, "Main Gate", seqErr.ExpectedCheckpointName)
	assert.Equal(t, 1, seqErr.ExpectedOrder)
	assert.Empty(t, env.visitRepo.marked)
}

func TestRecordVisitDuplicate(t *testing.T) {
	visits := pendingRound()
	visits[0].Status = visit.StatusCompleted
	env := newVisitTestEnv(visits)

	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpGateID, "2025-03-14T10:05:00Z"))
	assert.ErrorIs(t, err, visit.ErrAlreadyMarked)
	assert.Empty(t, env.visitRepo.marked)
}

func TestRecordVisitAllMarked(t *testing.T) {
	visits := pendingRound()
	for i := range visits {
		visits[i].Status = visit.StatusCompleted
	}
	env := newVisitTestEnv(visits)

	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpGateID, "2025-03-14T15:00:00Z"))
	assert.ErrorIs(t, err, visit.ErrAlreadyMarked)
}

func TestRecordVisitTooEarly(t *testing.T) {
	env := newVisitTestEnv(pendingRound())

	// 09:54 is one minute past the 5-minute grace before the 10:00 check.
	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpGateID, "2025-03-14T09:54:00Z"))
	require.ErrorIs(t, err, visit.ErrTooEarly)

	// 09:54:01 is 5m59s early, already inside minute -6: still rejected.
	_, err = env.svc.RecordVisit(context.Background(), scanReq(cpGateID, "2025-03-14T09:54:01Z"))
	require.ErrorIs(t, err, visit.ErrTooEarly)

	var earlyErr *visit.TooEarlyError
	require.True(t, errors.As(err, &earlyErr))
	assert.Equal(t, time.Date(2025, 3, 14, 9, 55, 0, 0, time.UTC), earlyErr.OpensAt)
	assert.Empty(t, env.visitRepo.marked)
}

func TestRecordVisitClassification(t *testing.T) {
	cases := []struct {
		name       string
		scanTime   string
		wantStatus string
		wantDelta  int
	}{
		{"grace boundary counts as on time", "2025-03-14T09:55:00Z", visit.StatusCompleted, -5},
		{"exactly on schedule", "2025-03-14T10:00:00Z", visit.StatusCompleted, 0},
		{"on-time upper boundary", "2025-03-14T10:05:00Z", visit.StatusCompleted, 5},
		{"seconds floor toward the earlier minute", "2025-03-14T10:05:59Z", visit.StatusCompleted, 5},
		{"late scan", "2025-03-14T10:10:00Z", visit.StatusLate, 10},
		{"late boundary", "2025-03-14T10:15:00Z", visit.StatusLate, 15},
		{"missed scan", "2025-03-14T10:30:00Z", visit.StatusMissed, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newVisitTestEnv(pendingRound())

			outcome, err := env.svc.RecordVisit(context.Background(), scanReq(cpGateID, tc.scanTime))
			require.NoError(t, err)

			assert.Equal(t, tc.wantStatus, outcome.Visit.Status)
			assert.Equal(t, tc.wantDelta, outcome.DeltaMinutes)
			assert.NotEmpty(t, outcome.Message)
			require.NotNil(t, outcome.Visit.RealCheck)

			require.Len(t, env.visitRepo.marked, 1)
			assert.Equal(t, "v1", env.visitRepo.marked[0].id)
			assert.Equal(t, tc.wantStatus, env.visitRepo.marked[0].status)
		})
	}
}

func TestRecordVisitRoundProgression(t *testing.T) {
	visits := []visit.CheckpointVisit{
		visitRec("v1", cpGateID, 1, visit.StatusCompleted, 10, 0),
		visitRec("v2", cpLobbyID, 1, visit.StatusLate, 11, 0),
		visitRec("v3", cpRoofID, 1, visit.StatusCompleted, 12, 0),
		visitRec("v4", cpGateID, 2, visit.StatusPending, 13, 0),
		visitRec("v5", cpLobbyID, 2, visit.StatusPending, 14, 0),
		visitRec("v6", cpRoofID, 2, visit.StatusPending, 15, 0),
	}
	env := newVisitTestEnv(visits)

	// Round 1 is done; the gate scan lands on the round 2 record.
	outcome, err := env.svc.RecordVisit(context.Background(), scanReq(cpGateID, "2025-03-14T13:00:00Z"))
	require.NoError(t, err)
	assert.Equal(t, "v4", outcome.Visit.ID)
	assert.Equal(t, 2, outcome.Visit.RoundNumber)
}

func TestRecordVisitSecondRoundOutOfSequence(t *testing.T) {
	visits := []visit.CheckpointVisit{
		visitRec("v1", cpGateID, 1, visit.StatusCompleted, 10, 0),
		visitRec("v2", cpLobbyID, 1, visit.StatusCompleted, 11, 0),
		visitRec("v3", cpGateID, 2, visit.StatusPending, 13, 0),
		visitRec("v4", cpLobbyID, 2, visit.StatusPending, 14, 0),
	}
	env := newVisitTestEnv(visits)

	// The sequence restarts each round: lobby before gate is out of order
	// even though round 1 visited the lobby already.
	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpLobbyID, "2025-03-14T14:00:00Z"))
	assert.ErrorIs(t, err, visit.ErrOutOfSequence)
}

func TestRecordVisitByTagUID(t *testing.T) {
	env := newVisitTestEnv(pendingRound())

	outcome, err := env.svc.RecordVisit(context.Background(), visit.RecordVisitRequest{
		GuardID:  testGuardID,
		TagUID:   "TAG-GATE",
		ScanTime: "2025-03-14T10:00:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, cpGateID, outcome.Visit.CheckpointID)
}

func TestRecordVisitMarkRace(t *testing.T) {
	env := newVisitTestEnv(pendingRound())
	env.visitRepo.markErr = visit.ErrAlreadyMarked

	// Another scan won the conditional update between read and mark.
	_, err := env.svc.RecordVisit(context.Background(), scanReq(cpGateID, "2025-03-14T10:00:00Z"))
	assert.ErrorIs(t, err, visit.ErrAlreadyMarked)
}

func TestListDefaultsPagination(t *testing.T) {
	env := newVisitTestEnv(nil)
	env.svc.(*VisitServiceImpl).visitRepo = &stubListRepo{}

	resp, err := env.svc.List(context.Background(), visit.Filter{Page: 0, Limit: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}

type stubListRepo struct {
	visit.VisitRepository
}

func (s *stubListRepo) List(ctx context.Context, filter visit.Filter) ([]visit.CheckpointVisit, int64, error) {
	return nil, 0, nil
}
