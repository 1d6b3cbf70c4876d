package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/guardtrack/patrol-backend-go/internal/domain/visit"
	"github.com/guardtrack/patrol-backend-go/internal/handler/http/middleware"
	"github.com/guardtrack/patrol-backend-go/internal/handler/http/response"
)

type VisitHandler interface {
	Scan(w http.ResponseWriter, r *http.Request)
	ListByAssignment(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type VisitHandlerImpl struct {
	visitService visit.VisitService
}

func NewVisitHandler(visitService visit.VisitService) VisitHandler {
	return &VisitHandlerImpl{visitService: visitService}
}

// Scan records an NFC checkpoint scan for the authenticated guard.
func (h *VisitHandlerImpl) Scan(w http.ResponseWriter, r *http.Request) {
	var req visit.RecordVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.GuardID = middleware.GuardID(r)

	outcome, err := h.visitService.RecordVisit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, outcome.Message, outcome)
}

func (h *VisitHandlerImpl) ListByAssignment(w http.ResponseWriter, r *http.Request) {
	result, err := h.visitService.ListByAssignment(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, result)
}

func (h *VisitHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	filter := visit.Filter{}
	if v := query.Get("assignment_id"); v != "" {
		filter.AssignmentID = &v
	}
	if v := query.Get("branch_id"); v != "" {
		filter.BranchID = &v
	}
	if v := query.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := query.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := query.Get("end_date"); v != "" {
		filter.EndDate = &v
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.visitService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int(result.TotalCount) / result.Limit
	if int(result.TotalCount)%result.Limit > 0 {
		totalPages++
	}
	response.SuccessWithMeta(w, result.Visits, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}
