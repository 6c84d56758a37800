package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"
	"github.com/rosterlab/shift-backend-go/internal/domain/overtime"
	"github.com/rosterlab/shift-backend-go/internal/handler/http/response"
	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
)

type OvertimeHandler interface {
	Approve(w http.ResponseWriter, r *http.Request)
	Lookup(w http.ResponseWriter, r *http.Request)
	Tracking(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.OvertimeService
}

func NewOvertimeHandler(overtimeService overtime.OvertimeService) OvertimeHandler {
	return &overtimeHandlerImpl{
		overtimeService: overtimeService,
	}
}

// Approve implements OvertimeHandler.
func (h *overtimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	var req overtime.ApproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}
	if managerID, ok := claims["user_id"].(string); ok {
		req.ManagerID = managerID
	}

	result, err := h.overtimeService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime approved", result)
}

// Lookup implements OvertimeHandler.
func (h *overtimeHandlerImpl) Lookup(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	date, ok := validator.IsValidDate(r.URL.Query().Get("date"))
	if !ok {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.overtimeService.Lookup(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if result == nil {
		response.NotFound(w, "Overtime approval not found")
		return
	}

	response.Success(w, result)
}

// Tracking implements OvertimeHandler.
func (h *overtimeHandlerImpl) Tracking(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id is required", nil)
		return
	}

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 2000 || year > 2100 {
		response.BadRequest(w, "year must be a valid four-digit year", nil)
		return
	}

	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		response.BadRequest(w, "month must be between 1 and 12", nil)
		return
	}

	result, err := h.overtimeService.Tracking(r.Context(), employeeID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
