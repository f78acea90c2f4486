package http

import (
	"net/http"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/handler/http/response"
	"github.com/cleandash/scheduler-backend-go/internal/service/calendar"
)

type SchedulerHandler interface {
	DayView(w http.ResponseWriter, r *http.Request)
	RangeView(w http.ResponseWriter, r *http.Request)
}

type schedulerHandlerImpl struct {
	viewService *calendar.ViewService
}

func NewSchedulerHandler(viewService *calendar.ViewService) SchedulerHandler {
	return &schedulerHandlerImpl{
		viewService: viewService,
	}
}

// DayView implements SchedulerHandler.
func (h *schedulerHandlerImpl) DayView(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	state, ok := viewStateFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.viewService.DayView(r.Context(), owner, state)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RangeView implements SchedulerHandler.
func (h *schedulerHandlerImpl) RangeView(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	state, ok := viewStateFromQuery(w, r)
	if !ok {
		return
	}

	result, err := h.viewService.RangeView(r.Context(), owner, state)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// viewStateFromQuery decodes the scheduler page state from query parameters.
// Writes the error response itself when the date is malformed.
func viewStateFromQuery(w http.ResponseWriter, r *http.Request) (calendar.ViewState, bool) {
	state := calendar.ViewState{
		View: calendar.ViewDay,
		Date: time.Now(),
	}

	if v := r.URL.Query().Get("view"); v != "" {
		state.View = v
	}
	if v := r.URL.Query().Get("date"); v != "" {
		date, err := time.Parse("2006-01-02", v)
		if err != nil {
			response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
			return calendar.ViewState{}, false
		}
		state.Date = date
	}
	if v := r.URL.Query().Get("employee_id"); v != "" {
		state.EmployeeID = &v
	}
	if v := r.URL.Query().Get("account_id"); v != "" {
		state.AccountID = &v
	}

	return state, true
}
