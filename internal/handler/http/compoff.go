package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rosterlab/shift-backend-go/internal/domain/compoff"
	"github.com/rosterlab/shift-backend-go/internal/handler/http/response"
)

type CompOffHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	Use(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	MonthlyBreakdown(w http.ResponseWriter, r *http.Request)
}

type compOffHandlerImpl struct {
	compOffService compoff.CompOffService
}

func NewCompOffHandler(compOffService compoff.CompOffService) CompOffHandler {
	return &compOffHandlerImpl{
		compOffService: compOffService,
	}
}

// CreateRequest implements CompOffHandler.
func (h *compOffHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var req compoff.CreateRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.EmployeeID == "" {
		if employeeID, ok := claimString(r, "employee_id"); ok {
			req.EmployeeID = employeeID
		}
	}

	result, err := h.compOffService.RequestEarn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comp-off request submitted", result)
}

// ApproveRequest implements CompOffHandler.
func (h *compOffHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReview(w, r)
	if !ok {
		return
	}

	result, err := h.compOffService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comp-off request approved", result)
}

// RejectRequest implements CompOffHandler.
func (h *compOffHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReview(w, r)
	if !ok {
		return
	}

	result, err := h.compOffService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comp-off request rejected", result)
}

// Use implements CompOffHandler.
func (h *compOffHandlerImpl) Use(w http.ResponseWriter, r *http.Request) {
	var req compoff.UseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.EmployeeID == "" {
		if employeeID, ok := claimString(r, "employee_id"); ok {
			req.EmployeeID = employeeID
		}
	}

	result, err := h.compOffService.Use(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Comp-off used", result)
}

// Balance implements CompOffHandler.
func (h *compOffHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		var ok bool
		employeeID, ok = claimString(r, "employee_id")
		if !ok {
			response.BadRequest(w, "employee_id is required", nil)
			return
		}
	}

	result, err := h.compOffService.Balance(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MonthlyBreakdown implements CompOffHandler.
func (h *compOffHandlerImpl) MonthlyBreakdown(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		var ok bool
		employeeID, ok = claimString(r, "employee_id")
		if !ok {
			response.BadRequest(w, "employee_id is required", nil)
			return
		}
	}

	result, err := h.compOffService.MonthlyBreakdown(r.Context(), employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *compOffHandlerImpl) decodeReview(w http.ResponseWriter, r *http.Request) (compoff.ReviewRequest, bool) {
	var req compoff.ReviewRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return compoff.ReviewRequest{}, false
		}
	}

	req.RequestID = chi.URLParam(r, "requestID")
	if req.RequestID == "" {
		response.BadRequest(w, "request id is required", nil)
		return compoff.ReviewRequest{}, false
	}

	if reviewerID, ok := claimString(r, "user_id"); ok {
		req.ReviewerID = reviewerID
	}

	return req, true
}

func claimString(r *http.Request, key string) (string, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	value, ok := claims[key].(string)
	return value, ok && value != ""
}
