package adaptor

import (
	"encoding/json"
	"net/http"

	"azhaboost/internal/dto/request"
	"azhaboost/internal/usecase"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

type LockHandler struct {
	service usecase.LockService
	log     *zap.Logger
}

func NewLockHandler(service usecase.LockService, log *zap.Logger) *LockHandler {
	return &LockHandler{
		service: service,
		log:     log.With(zap.String("handler", "lock")),
	}
}

// GeneratePIN handles POST /api/smart-lock/generate-pin
func (h *LockHandler) GeneratePIN(w http.ResponseWriter, r *http.Request) {
	var req request.GeneratePINRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	pin, err := h.service.GeneratePIN(r.Context(), req.BookingID)
	if err != nil {
		handleServiceError(w, h.log, err, "generate smart lock PIN", "Failed to generate smart lock PIN")
		return
	}

	utils.ResponseSuccess(w, "Smart lock PIN generated", pin)
}
