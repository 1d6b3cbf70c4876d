package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/guardtrack/patrol-backend-go/internal/domain/patrolrecord"
	"github.com/guardtrack/patrol-backend-go/internal/handler/http/middleware"
	"github.com/guardtrack/patrol-backend-go/internal/handler/http/response"
)

type PatrolRecordHandler interface {
	Punch(w http.ResponseWriter, r *http.Request)
	GetCurrent(w http.ResponseWriter, r *http.Request)
	ListByStatus(w http.ResponseWriter, r *http.Request)
}

type PatrolRecordHandlerImpl struct {
	lifecycleService patrolrecord.LifecycleService
}

func NewPatrolRecordHandler(lifecycleService patrolrecord.LifecycleService) PatrolRecordHandler {
	return &PatrolRecordHandlerImpl{lifecycleService: lifecycleService}
}

// Punch receives a biometric terminal event. Boundary failures (too early,
// shift still running) come back 409 but still include the record so the
// terminal can display the shift state.
func (h *PatrolRecordHandlerImpl) Punch(w http.ResponseWriter, r *http.Request) {
	var req patrolrecord.PunchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	outcome, err := h.lifecycleService.Punch(r.Context(), req)
	if err != nil {
		var boundaryErr *patrolrecord.BoundaryError
		if errors.As(err, &boundaryErr) {
			response.ConflictWithData(w, boundaryErr.Error(), outcome)
			return
		}
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, outcome.Message, outcome)
}

func (h *PatrolRecordHandlerImpl) GetCurrent(w http.ResponseWriter, r *http.Request) {
	result, err := h.lifecycleService.GetCurrent(r.Context(), middleware.GuardID(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *PatrolRecordHandlerImpl) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		response.BadRequest(w, "status is required", nil)
		return
	}

	result, err := h.lifecycleService.ListByStatus(r.Context(), middleware.GuardID(r), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}
