package adaptor

import (
	"errors"
	"net/http"

	"azhaboost/internal/usecase"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Language     *LanguageHandler
	Optimization *OptimizationHandler
	Calendar     *CalendarHandler
	Cleaning     *CleaningHandler
	Lock         *LockHandler
	CheckIn      *CheckInHandler
	Dashboard    *DashboardHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Language:     NewLanguageHandler(service.Language, log),
		Optimization: NewOptimizationHandler(service.Optimization, log),
		Calendar:     NewCalendarHandler(service.Calendar, log),
		Cleaning:     NewCleaningHandler(service.Cleaning, log),
		Lock:         NewLockHandler(service.Lock, log),
		CheckIn:      NewCheckInHandler(service.CheckIn, log),
		Dashboard:    NewDashboardHandler(service.Dashboard, log),
	}
}

// handleServiceError maps usecase error kinds to status codes. Anything
// without a kind is an upstream or storage failure and gets failMessage.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation, failMessage string) {
	var svcErr *usecase.Error
	if !errors.As(err, &svcErr) {
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, failMessage)
		return
	}

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, svcErr.Message)

	case errors.Is(err, usecase.ErrConfiguration):
		log.Warn(operation+" failed - not configured",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, svcErr.Message, nil)

	case errors.Is(err, usecase.ErrValidation), errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, svcErr.Message, nil)

	default:
		log.Error(operation+" failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, failMessage)
	}
}

func sessionID(r *http.Request) string {
	id, _ := utils.GetSessionIDFromContext(r.Context())
	return id
}
