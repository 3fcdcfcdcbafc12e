package adaptor

import (
	"fmt"
	"net/http"

	"azhaboost/internal/usecase"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

type CalendarHandler struct {
	service usecase.CalendarService
	log     *zap.Logger
}

func NewCalendarHandler(service usecase.CalendarService, log *zap.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log.With(zap.String("handler", "calendar")),
	}
}

// SyncCalendars handles POST /api/calendar/sync
func (h *CalendarHandler) SyncCalendars(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.SyncCalendars(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "sync calendars", "Failed to sync calendars")
		return
	}

	message := fmt.Sprintf("Synced %d new bookings from %d properties", result.Synced, result.Properties)
	utils.ResponseSuccess(w, message, result)
}
