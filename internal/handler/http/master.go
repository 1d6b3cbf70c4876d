package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/guardtrack/patrol-backend-go/internal/domain/branch"
	"github.com/guardtrack/patrol-backend-go/internal/domain/checkpoint"
	"github.com/guardtrack/patrol-backend-go/internal/domain/guard"
	"github.com/guardtrack/patrol-backend-go/internal/domain/patrol"
	"github.com/guardtrack/patrol-backend-go/internal/domain/shift"
	"github.com/guardtrack/patrol-backend-go/internal/handler/http/response"
	"github.com/guardtrack/patrol-backend-go/internal/service/master"
)

// MasterHandler serves the reference-data admin endpoints.
type MasterHandler interface {
	CreateBranch(w http.ResponseWriter, r *http.Request)
	GetBranch(w http.ResponseWriter, r *http.Request)
	ListBranches(w http.ResponseWriter, r *http.Request)

	CreateCheckpoint(w http.ResponseWriter, r *http.Request)
	ListCheckpoints(w http.ResponseWriter, r *http.Request)
	DeleteCheckpoint(w http.ResponseWriter, r *http.Request)

	CreatePatrol(w http.ResponseWriter, r *http.Request)
	GetPatrol(w http.ResponseWriter, r *http.Request)
	ListPatrols(w http.ResponseWriter, r *http.Request)
	UpdateRoute(w http.ResponseWriter, r *http.Request)
	DeletePatrol(w http.ResponseWriter, r *http.Request)

	CreateShift(w http.ResponseWriter, r *http.Request)
	ListShifts(w http.ResponseWriter, r *http.Request)

	CreateGuard(w http.ResponseWriter, r *http.Request)
	ListGuards(w http.ResponseWriter, r *http.Request)
	SetGuardBranches(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &MasterHandlerImpl{masterService: masterService}
}

func (h *MasterHandlerImpl) CreateBranch(w http.ResponseWriter, r *http.Request) {
	var req branch.CreateBranchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateBranch(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Branch created", result)
}

func (h *MasterHandlerImpl) GetBranch(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetBranch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *MasterHandlerImpl) ListBranches(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListBranches(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *MasterHandlerImpl) CreateCheckpoint(w http.ResponseWriter, r *http.Request) {
	var req checkpoint.CreateCheckpointRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateCheckpoint(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Checkpoint created", result)
}

func (h *MasterHandlerImpl) ListCheckpoints(w http.ResponseWriter, r *http.Request) {
	branchID := r.URL.Query().Get("branch_id")
	if branchID == "" {
		response.BadRequest(w, "branch_id is required", nil)
		return
	}

	result, err := h.masterService.ListCheckpoints(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *MasterHandlerImpl) DeleteCheckpoint(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeleteCheckpoint(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Checkpoint deleted", nil)
}

func (h *MasterHandlerImpl) CreatePatrol(w http.ResponseWriter, r *http.Request) {
	var req patrol.CreatePatrolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreatePatrol(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Patrol created", result)
}

func (h *MasterHandlerImpl) GetPatrol(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.GetPatrol(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *MasterHandlerImpl) ListPatrols(w http.ResponseWriter, r *http.Request) {
	branchID := r.URL.Query().Get("branch_id")
	if branchID == "" {
		response.BadRequest(w, "branch_id is required", nil)
		return
	}

	result, err := h.masterService.ListPatrols(r.Context(), branchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *MasterHandlerImpl) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	var req patrol.UpdateRouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.PatrolID = chi.URLParam(r, "id")

	result, err := h.masterService.UpdateRoute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Route updated", result)
}

func (h *MasterHandlerImpl) DeletePatrol(w http.ResponseWriter, r *http.Request) {
	if err := h.masterService.DeletePatrol(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Patrol deleted", nil)
}

func (h *MasterHandlerImpl) CreateShift(w http.ResponseWriter, r *http.Request) {
	var req shift.CreateShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateShift(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Shift created", result)
}

func (h *MasterHandlerImpl) ListShifts(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListShifts(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *MasterHandlerImpl) CreateGuard(w http.ResponseWriter, r *http.Request) {
	var req guard.CreateGuardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateGuard(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Guard created", result)
}

func (h *MasterHandlerImpl) ListGuards(w http.ResponseWriter, r *http.Request) {
	result, err := h.masterService.ListGuards(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *MasterHandlerImpl) SetGuardBranches(w http.ResponseWriter, r *http.Request) {
	var req guard.SetBranchesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GuardID = chi.URLParam(r, "id")

	if err := h.masterService.SetGuardBranches(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Guard branches updated", nil)
}
