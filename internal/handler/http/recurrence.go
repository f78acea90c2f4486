package http

import (
	"net/http"
	"time"

	"github.com/cleandash/scheduler-backend-go/internal/domain/shift"
	"github.com/cleandash/scheduler-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type RecurrenceHandler interface {
	Resync(w http.ResponseWriter, r *http.Request)
	Extend(w http.ResponseWriter, r *http.Request)
}

type recurrenceHandlerImpl struct {
	recurrenceService shift.RecurrenceService
}

func NewRecurrenceHandler(recurrenceService shift.RecurrenceService) RecurrenceHandler {
	return &recurrenceHandlerImpl{
		recurrenceService: recurrenceService,
	}
}

// Resync implements RecurrenceHandler.
func (h *recurrenceHandlerImpl) Resync(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	count, err := h.recurrenceService.Resync(r.Context(), owner, chi.URLParam(r, "accountID"), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule regenerated", map[string]int{"shifts_written": count})
}

// Extend implements RecurrenceHandler.
func (h *recurrenceHandlerImpl) Extend(w http.ResponseWriter, r *http.Request) {
	owner, err := ownerFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	count, err := h.recurrenceService.Extend(r.Context(), owner, chi.URLParam(r, "accountID"), time.Now())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Schedule extended", map[string]int{"shifts_added": count})
}
