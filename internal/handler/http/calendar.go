package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rosterlab/shift-backend-go/internal/handler/http/response"
	"github.com/rosterlab/shift-backend-go/internal/pkg/calendar"
)

type CalendarHandler interface {
	Holidays(w http.ResponseWriter, r *http.Request)
	WeekInfo(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	cal *calendar.Calendar
}

func NewCalendarHandler(cal *calendar.Calendar) CalendarHandler {
	return &calendarHandlerImpl{cal: cal}
}

// Holidays implements CalendarHandler.
func (h *calendarHandlerImpl) Holidays(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1950 || year > 2100 {
		response.BadRequest(w, "year must be a valid four-digit year", nil)
		return
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	response.Success(w, h.cal.HolidaysInRange(from, to))
}

// WeekInfo implements CalendarHandler.
func (h *calendarHandlerImpl) WeekInfo(w http.ResponseWriter, r *http.Request) {
	weekStart, ok := parseWeekStart(r)
	if !ok {
		response.BadRequest(w, "week_start must be in YYYY-MM-DD format", nil)
		return
	}

	response.Success(w, h.cal.WeekInfo(calendar.WeekStart(weekStart)))
}
