package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rosterlab/shift-backend-go/internal/domain/schedule"
	"github.com/rosterlab/shift-backend-go/internal/handler/http/response"
	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
)

type ScheduleHandler interface {
	Propose(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ValidateWeek(w http.ResponseWriter, r *http.Request)
}

type scheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &scheduleHandlerImpl{
		scheduleService: scheduleService,
	}
}

// Propose implements ScheduleHandler.
func (h *scheduleHandlerImpl) Propose(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProposal(w, r)
	if !ok {
		return
	}

	result, err := h.scheduleService.Propose(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeProposalResult(w, result)
}

// Confirm implements ScheduleHandler.
func (h *scheduleHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeProposal(w, r)
	if !ok {
		return
	}

	result, err := h.scheduleService.Confirm(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	h.writeProposalResult(w, result)
}

// List implements ScheduleHandler.
func (h *scheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter schedule.ListFilter

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("department_id"); v != "" {
		filter.DepartmentID = &v
	}
	if v := r.URL.Query().Get("from"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "from must be in YYYY-MM-DD format", nil)
			return
		}
		filter.From = &d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			response.BadRequest(w, "to must be in YYYY-MM-DD format", nil)
			return
		}
		filter.To = &d
	}

	result, err := h.scheduleService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ValidateWeek implements ScheduleHandler.
func (h *scheduleHandlerImpl) ValidateWeek(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	weekStart, ok := parseWeekStart(r)
	if !ok {
		response.BadRequest(w, "week_start must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.scheduleService.ValidateWeek(r.Context(), employeeID, weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *scheduleHandlerImpl) decodeProposal(w http.ResponseWriter, r *http.Request) (schedule.ProposeShiftRequest, bool) {
	var req schedule.ProposeShiftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return schedule.ProposeShiftRequest{}, false
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return schedule.ProposeShiftRequest{}, false
	}

	return req, true
}

func (h *scheduleHandlerImpl) writeProposalResult(w http.ResponseWriter, result schedule.ProposalResult) {
	switch result.Decision {
	case schedule.DecisionAccepted:
		response.Created(w, "Shift assigned", result)
	case schedule.DecisionRejected:
		response.PolicyViolation(w, result, result.Reason)
	default:
		response.Success(w, result)
	}
}

func parseWeekStart(r *http.Request) (time.Time, bool) {
	v := r.URL.Query().Get("week_start")
	if v == "" {
		return time.Time{}, false
	}
	return validator.IsValidDate(v)
}
