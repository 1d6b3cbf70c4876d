// Package master bundles the reference-data operations: branches,
// checkpoints, patrol routes, shifts and guard accounts. These are low-churn
// admin surfaces; the scheduling and tracking engines consume what is
// created here.
package master

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/guardtrack/patrol-backend-go/internal/domain/branch"
	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/pkg/validator"
)

type MasterService interface {
	CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error)
	GetBranch(ctx context.Context, id string) (branch.BranchResponse, error)
	ListBranches(ctx context.Context) ([]branch.BranchResponse, error)

	CreateCheckpoint(ctx context.Context, req checkpoint.CreateCheckpointRequest) (checkpoint.CheckpointResponse, error)
	ListCheckpoints(ctx context.Context, branchID string) ([]checkpoint.CheckpointResponse, error)
	DeleteCheckpoint(ctx context.Context, id string) error

	CreatePatrol(ctx context.Context, req patrol.CreatePatrolRequest) (patrol.PatrolResponse, error)
	GetPatrol(ctx context.Context, id string) (patrol.PatrolResponse, error)
	ListPatrols(ctx context.Context, branchID string) ([]patrol.PatrolResponse, error)
	UpdateRoute(ctx context.Context, req patrol.UpdateRouteRequest) (patrol.PatrolResponse, error)
	DeletePatrol(ctx context.Context, id string) error

	CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error)
	ListShifts(ctx context.Context) ([]shift.ShiftResponse, error)

	CreateGuard(ctx context.Context, req guard.CreateGuardRequest) (guard.GuardResponse, error)
	ListGuards(ctx context.Context) ([]guard.GuardResponse, error)
	SetGuardBranches(ctx context.Context, req guard.SetBranchesRequest) error
}

type MasterServiceImpl struct {
	branchRepo     branch.BranchRepository
	checkpointRepo checkpoint.CheckpointRepository
	patrolRepo     patrol.PatrolRepository
	shiftRepo      shift.ShiftRepository
	guardRepo      guard.GuardRepository
}

func NewMasterService(
	branchRepo branch.BranchRepository,
	checkpointRepo checkpoint.CheckpointRepository,
	patrolRepo patrol.PatrolRepository,
	shiftRepo shift.ShiftRepository,
	guardRepo guard.GuardRepository,
) MasterService {
	return &MasterServiceImpl{
		branchRepo:     branchRepo,
		checkpointRepo: checkpointRepo,
		patrolRepo:     patrolRepo,
		shiftRepo:      shiftRepo,
		guardRepo:      guardRepo,
	}
}

func (s *MasterServiceImpl) CreateBranch(ctx context.Context, req branch.CreateBranchRequest) (branch.BranchResponse, error) {
	if err := req.Validate(); err != nil {
		return branch.BranchResponse{}, err
	}

	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	now := time.Now().UTC()
	created, err := s.branchRepo.Create(ctx, branch.Branch{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Address:   req.Address,
		Timezone:  tz,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return branch.BranchResponse{}, fmt.Errorf("failed to create branch: %w", err)
	}
	return branch.ToResponse(created), nil
}

func (s *MasterServiceImpl) GetBranch(ctx context.Context, id string) (branch.BranchResponse, error) {
	b, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return branch.BranchResponse{}, err
	}
	return branch.ToResponse(b), nil
}

func (s *MasterServiceImpl) ListBranches(ctx context.Context) ([]branch.BranchResponse, error) {
	branches, err := s.branchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	resp := make([]branch.BranchResponse, 0, len(branches))
	for _, b := range branches {
		resp = append(resp, branch.ToResponse(b))
	}
	return resp, nil
}

func (s *MasterServiceImpl) CreateCheckpoint(ctx context.Context, req checkpoint.CreateCheckpointRequest) (checkpoint.CheckpointResponse, error) {
	if err := req.Validate(); err != nil {
		return checkpoint.CheckpointResponse{}, err
	}
	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return checkpoint.CheckpointResponse{}, err
	}

	now := time.Now().UTC()
	created, err := s.checkpointRepo.Create(ctx, checkpoint.Checkpoint{
		ID:        uuid.NewString(),
		BranchID:  req.BranchID,
		Name:      req.Name,
		TagUID:    req.TagUID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return checkpoint.CheckpointResponse{}, err
	}
	return checkpoint.ToResponse(created), nil
}

func (s *MasterServiceImpl) ListCheckpoints(ctx context.Context, branchID string) ([]checkpoint.CheckpointResponse, error) {
	checkpoints, err := s.checkpointRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	resp := make([]checkpoint.CheckpointResponse, 0, len(checkpoints))
	for _, c := range checkpoints {
		resp = append(resp, checkpoint.ToResponse(c))
	}
	return resp, nil
}

func (s *MasterServiceImpl) DeleteCheckpoint(ctx context.Context, id string) error {
	if _, err := s.checkpointRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.checkpointRepo.SoftDelete(ctx, id)
}

func (s *MasterServiceImpl) CreatePatrol(ctx context.Context, req patrol.CreatePatrolRequest) (patrol.PatrolResponse, error) {
	if err := req.Validate(); err != nil {
		return patrol.PatrolResponse{}, err
	}
	if _, err := s.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return patrol.PatrolResponse{}, err
	}

	points, err := s.buildRoutePoints(ctx, req.BranchID, req.RoutePoints)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}

	now := time.Now().UTC()
	created, err := s.patrolRepo.Create(ctx, patrol.Patrol{
		ID:          uuid.NewString(),
		BranchID:    req.BranchID,
		Name:        req.Name,
		CreatedAt:   now,
		UpdatedAt:   now,
		RoutePoints: points,
	})
	if err != nil {
		return patrol.PatrolResponse{}, fmt.Errorf("failed to create patrol: %w", err)
	}

	full, err := s.patrolRepo.GetByID(ctx, created.ID)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}
	return patrol.ToResponse(full), nil
}

// buildRoutePoints validates that every referenced checkpoint exists and
// belongs to the patrol's branch.
func (s *MasterServiceImpl) buildRoutePoints(ctx context.Context, branchID string, inputs []patrol.RoutePointInput) ([]patrol.RoutePoint, error) {
	points := make([]patrol.RoutePoint, 0, len(inputs))
	for _, in := range inputs {
		cp, err := s.checkpointRepo.GetByID(ctx, in.CheckpointID)
		if err != nil {
			return nil, err
		}
		if cp.BranchID != branchID {
			return nil, validator.ValidationErrors{{
				Field:   "route_points",
				Message: fmt.Sprintf("checkpoint %s belongs to another branch", cp.ID),
			}}
		}
		points = append(points, patrol.RoutePoint{
			ID:           uuid.NewString(),
			CheckpointID: in.CheckpointID,
			Order:        in.Order,
			Latitude:     in.Latitude,
			Longitude:    in.Longitude,
		})
	}
	return points, nil
}

func (s *MasterServiceImpl) GetPatrol(ctx context.Context, id string) (patrol.PatrolResponse, error) {
	p, err := s.patrolRepo.GetByID(ctx, id)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}
	return patrol.ToResponse(p), nil
}

func (s *MasterServiceImpl) ListPatrols(ctx context.Context, branchID string) ([]patrol.PatrolResponse, error) {
	patrols, err := s.patrolRepo.ListByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patrols: %w", err)
	}
	resp := make([]patrol.PatrolResponse, 0, len(patrols))
	for _, p := range patrols {
		resp = append(resp, patrol.ToResponse(p))
	}
	return resp, nil
}

func (s *MasterServiceImpl) UpdateRoute(ctx context.Context, req patrol.UpdateRouteRequest) (patrol.PatrolResponse, error) {
	if err := req.Validate(); err != nil {
		return patrol.PatrolResponse{}, err
	}

	p, err := s.patrolRepo.GetByID(ctx, req.PatrolID)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}

	points, err := s.buildRoutePoints(ctx, p.BranchID, req.RoutePoints)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}
	if err := s.patrolRepo.ReplaceRoutePoints(ctx, p.ID, points); err != nil {
		return patrol.PatrolResponse{}, fmt.Errorf("failed to replace route points: %w", err)
	}

	full, err := s.patrolRepo.GetByID(ctx, p.ID)
	if err != nil {
		return patrol.PatrolResponse{}, err
	}
	return patrol.ToResponse(full), nil
}

func (s *MasterServiceImpl) DeletePatrol(ctx context.Context, id string) error {
	if _, err := s.patrolRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.patrolRepo.SoftDelete(ctx, id)
}

func (s *MasterServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	start, _ := validator.ParseClock(req.StartTime)
	end, _ := validator.ParseClock(req.EndTime)

	now := time.Now().UTC()
	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartTime: start,
		EndTime:   end,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return shift.ToResponse(created), nil
}

func (s *MasterServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	shifts, err := s.shiftRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	resp := make([]shift.ShiftResponse, 0, len(shifts))
	for _, sh := range shifts {
		resp = append(resp, shift.ToResponse(sh))
	}
	return resp, nil
}

func (s *MasterServiceImpl) CreateGuard(ctx context.Context, req guard.CreateGuardRequest) (guard.GuardResponse, error) {
	if err := req.Validate(); err != nil {
		return guard.GuardResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return guard.GuardResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	role := guard.RoleGuard
	if req.Role == string(guard.RoleAdmin) {
		role = guard.RoleAdmin
	}

	now := time.Now().UTC()
	created, err := s.guardRepo.Create(ctx, guard.Guard{
		ID:           uuid.NewString(),
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
		BiometricID:  req.BiometricID,
		Phone:        req.Phone,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return guard.GuardResponse{}, err
	}

	if len(req.BranchIDs) > 0 {
		if err := s.guardRepo.SetBranches(ctx, created.ID, req.BranchIDs); err != nil {
			return guard.GuardResponse{}, fmt.Errorf("failed to set guard branches: %w", err)
		}
		created.BranchIDs = req.BranchIDs
	}
	return guard.ToResponse(created), nil
}

func (s *MasterServiceImpl) ListGuards(ctx context.Context) ([]guard.GuardResponse, error) {
	guards, err := s.guardRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list guards: %w", err)
	}
	resp := make([]guard.GuardResponse, 0, len(guards))
	for _, g := range guards {
		resp = append(resp, guard.ToResponse(g))
	}
	return resp, nil
}

func (s *MasterServiceImpl) SetGuardBranches(ctx context.Context, req guard.SetBranchesRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if _, err := s.guardRepo.GetByID(ctx, req.GuardID); err != nil {
		return err
	}
	for _, id := range req.BranchIDs {
		if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return s.guardRepo.SetBranches(ctx, req.GuardID, req.BranchIDs)
}
