package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rosterlab/shift-backend-go/internal/domain/attendance"
	"github.com/rosterlab/shift-backend-go/internal/handler/http/response"
	"github.com/rosterlab/shift-backend-go/internal/pkg/validator"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	GetRecord(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Check-in successful", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.CheckOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Check-out successful", result)
}

// ListMy implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseDateRange(r)
	if !ok {
		response.BadRequest(w, "from and to must be in YYYY-MM-DD format", nil)
		return
	}

	result, err := h.attendanceService.ListMyRecords(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetRecord implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceService.GetRecord(r.Context(), chi.URLParam(r, "recordID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// parseDateRange reads from/to query params, defaulting to the current
// month when absent.
func parseDateRange(r *http.Request) (time.Time, time.Time, bool) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, -1)

	if v := r.URL.Query().Get("from"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
		from = d
	}
	if v := r.URL.Query().Get("to"); v != "" {
		d, ok := validator.IsValidDate(v)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
		to = d
	}
	return from, to, true
}
