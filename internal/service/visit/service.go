package visit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/guardtrack/patrol-backend-go/internal/domain/assignment"
	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type VisitServiceImpl struct {
	visitRepo      visit.VisitRepository
	guardRepo      guard.GuardRepository
	checkpointRepo checkpoint.CheckpointRepository
	assignmentRepo assignment.AssignmentRepository
	recordRepo     patrolrecord.PatrolRecordRepository
	policy         visit.Policy
}

func NewVisitService(
	visitRepo visit.VisitRepository,
	guardRepo guard.GuardRepository,
	checkpointRepo checkpoint.CheckpointRepository,
	assignmentRepo assignment.AssignmentRepository,
	recordRepo patrolrecord.PatrolRecordRepository,
	policy visit.Policy,
) visit.VisitService {
	return &VisitServiceImpl{
		visitRepo:      visitRepo,
		guardRepo:      guardRepo,
		checkpointRepo: checkpointRepo,
		assignmentRepo: assignmentRepo,
		recordRepo:     recordRepo,
		policy:         policy,
	}
}

// RecordVisit runs a scan through the validation chain in a fixed order:
// active shift, checkpoint existence, branch ownership, route membership,
// visit order, duplicate detection, and finally the timing window. The first
// failing check decides the error, so a scan of an unknown tag during no
// active shift reports the missing shift, not the unknown tag.
func (s *VisitServiceImpl) RecordVisit(ctx context.Context, req visit.RecordVisitRequest) (visit.VisitOutcome, error) {
	if err := req.Validate(); err != nil {
		return visit.VisitOutcome{}, err
	}

	scanTime := time.Now().UTC()
	if req.ScanTime != "" {
		t, _ := validator.IsValidDateTime(req.ScanTime)
		scanTime = t.UTC()
	}

	record, err := s.recordRepo.GetInProgressByGuard(ctx, req.GuardID)
	if err != nil {
		if errors.Is(err, patrolrecord.ErrRecordNotFound) {
			return visit.VisitOutcome{}, visit.ErrNoActiveShift
		}
		return visit.VisitOutcome{}, fmt.Errorf("failed to find active shift: %w", err)
	}

	cp, err := s.resolveCheckpoint(ctx, req)
	if err != nil {
		return visit.VisitOutcome{}, err
	}

	branchIDs, err := s.guardRepo.GetBranchIDs(ctx, req.GuardID)
	if err != nil {
		return visit.VisitOutcome{}, fmt.Errorf("failed to load guard branches: %w", err)
	}
	if !contains(branchIDs, cp.BranchID) {
		return visit.VisitOutcome{}, visit.ErrForbiddenCheckpoint
	}

	detail, err := s.assignmentRepo.GetDetail(ctx, record.AssignmentID)
	if err != nil {
		return visit.VisitOutcome{}, fmt.Errorf("failed to load assignment: %w", err)
	}
	if !routeContains(detail.Patrol.RoutePoints, cp.ID) {
		return visit.VisitOutcome{}, visit.ErrCheckpointNotOnRoute
	}

	visits, err := s.visitRepo.ListByAssignment(ctx, record.AssignmentID)
	if err != nil {
		return visit.VisitOutcome{}, fmt.Errorf("failed to load visit schedule: %w", err)
	}
	if len(visits) == 0 {
		return visit.VisitOutcome{}, visit.ErrScheduleMissing
	}

	target, err := s.pickTarget(visits, detail, cp.ID)
	if err != nil {
		return visit.VisitOutcome{}, err
	}

	// Floor rather than truncate: a scan 5m59s early is already in minute
	// -6, so the early-grace boundary cuts in the same place on both sides
	// of the scheduled instant.
	deltaMinutes := int(math.Floor(scanTime.Sub(target.CheckTime).Minutes()))
	status, ok := s.policy.Classify(deltaMinutes)
	if !ok {
		return visit.VisitOutcome{}, &visit.TooEarlyError{
			OpensAt: target.CheckTime.Add(-time.Duration(s.policy.EarlyGraceMinutes) * time.Minute),
		}
	}

	// Conditional update: only one of two racing scans lands.
	if err := s.visitRepo.Mark(ctx, target.ID, status, scanTime); err != nil {
		return visit.VisitOutcome{}, err
	}

	target.Status = status
	target.RealCheck = &scanTime
	return visit.VisitOutcome{
		Visit:        visit.ToResponse(target),
		DeltaMinutes: deltaMinutes,
		Message:      outcomeMessage(status, deltaMinutes, cp.Name),
	}, nil
}

func (s *VisitServiceImpl) resolveCheckpoint(ctx context.Context, req visit.RecordVisitRequest) (checkpoint.Checkpoint, error) {
	var (
		cp  checkpoint.Checkpoint
		err error
	)
	if req.CheckpointID != "" {
		cp, err = s.checkpointRepo.GetByID(ctx, req.CheckpointID)
	} else {
		cp, err = s.checkpointRepo.GetByTagUID(ctx, req.TagUID)
	}
	if err != nil {
		if errors.Is(err, checkpoint.ErrCheckpointNotFound) {
			return checkpoint.Checkpoint{}, visit.ErrCheckpointNotFound
		}
		return checkpoint.Checkpoint{}, fmt.Errorf("failed to resolve checkpoint: %w", err)
	}
	return cp, nil
}

// pickTarget finds the visit record a scan of checkpointID should mark. The
// current round is the lowest round that still has a pending record; within
// it the expected checkpoint is the pending record with the lowest route
// order. A scan of a checkpoint already marked in the current round is a
// duplicate; a scan of any other pending checkpoint is out of sequence.
func (s *VisitServiceImpl) pickTarget(visits []visit.CheckpointVisit, detail assignment.Detail, checkpointID string) (visit.CheckpointVisit, error) {
	order := make(map[string]int, len(detail.Patrol.RoutePoints))
	names := make(map[string]string, len(detail.Patrol.RoutePoints))
	for _, rp := range detail.Patrol.RoutePoints {
		order[rp.CheckpointID] = rp.Order
		if rp.Checkpoint != nil {
			names[rp.CheckpointID] = rp.Checkpoint.Name
		}
	}

	currentRound := 0
	for _, v := range visits {
		if v.Status != visit.StatusPending {
			continue
		}
		if currentRound == 0 || v.RoundNumber < currentRound {
			currentRound = v.RoundNumber
		}
	}
	if currentRound == 0 {
		// Every record is marked; any further scan is a repeat.
		return visit.CheckpointVisit{}, visit.ErrAlreadyMarked
	}

	var scanned, expected *visit.CheckpointVisit
	for i := range visits {
		v := &visits[i]
		if v.RoundNumber != currentRound {
			continue
		}
		if v.CheckpointID == checkpointID {
			scanned = v
		}
		if v.Status != visit.StatusPending {
			continue
		}
		if expected == nil || order[v.CheckpointID] < order[expected.CheckpointID] {
			expected = v
		}
	}

	if scanned == nil {
		return visit.CheckpointVisit{}, visit.ErrScheduleMissing
	}
	if scanned.Status != visit.StatusPending {
		return visit.CheckpointVisit{}, visit.ErrAlreadyMarked
	}
	if scanned.ID != expected.ID {
		return visit.CheckpointVisit{}, &visit.OutOfSequenceError{
			ExpectedCheckpointID:   expected.CheckpointID,
			ExpectedCheckpointName: names[expected.CheckpointID],
			ExpectedOrder:          order[expected.CheckpointID],
		}
	}
	return *scanned, nil
}

func (s *VisitServiceImpl) ListByAssignment(ctx context.Context, assignmentID string) ([]visit.VisitResponse, error) {
	visits, err := s.visitRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	resp := make([]visit.VisitResponse, 0, len(visits))
	for _, v := range visits {
		resp = append(resp, visit.ToResponse(v))
	}
	return resp, nil
}

func (s *VisitServiceImpl) List(ctx context.Context, filter visit.Filter) (visit.ListVisitsResponse, error) {
	if err := filter.Validate(); err != nil {
		return visit.ListVisitsResponse{}, err
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	visits, total, err := s.visitRepo.List(ctx, filter)
	if err != nil {
		return visit.ListVisitsResponse{}, fmt.Errorf("failed to list visits: %w", err)
	}

	resp := visit.ListVisitsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Visits:     make([]visit.VisitResponse, 0, len(visits)),
	}
	for _, v := range visits {
		resp.Visits = append(resp.Visits, visit.ToResponse(v))
	}
	return resp, nil
}

func outcomeMessage(status string, deltaMinutes int, checkpointName string) string {
	switch status {
	case visit.StatusCompleted:
		return fmt.Sprintf("Checkpoint %s marked on time.", checkpointName)
	case visit.StatusLate:
		return fmt.Sprintf("Checkpoint %s marked late (%d min past schedule).", checkpointName, deltaMinutes)
	default:
		return fmt.Sprintf("Checkpoint %s marked missed (%d min past schedule).", checkpointName, deltaMinutes)
	}
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func routeContains(points []patrol.RoutePoint, checkpointID string) bool {
	for _, rp := range points {
		if rp.CheckpointID == checkpointID {
			return true
		}
	}
	return false
}
