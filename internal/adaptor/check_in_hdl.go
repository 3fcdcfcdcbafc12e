package adaptor

import (
	"encoding/json"
	"net/http"

	"azhaboost/internal/dto/request"
	"azhaboost/internal/dto/response"
	"azhaboost/internal/usecase"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

type CheckInHandler struct {
	service usecase.CheckInService
	log     *zap.Logger
}

func NewCheckInHandler(service usecase.CheckInService, log *zap.Logger) *CheckInHandler {
	return &CheckInHandler{
		service: service,
		log:     log.With(zap.String("handler", "check_in")),
	}
}

// Start handles POST /api/check-in
func (h *CheckInHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req request.StartCheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	state, err := h.service.Start(r.Context(), sessionID(r), req.BookingReference)
	h.respond(w, state, err, "start check-in")
}

// Get handles GET /api/check-in
func (h *CheckInHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Get(r.Context(), sessionID(r))
	h.respond(w, state, err, "get check-in")
}

// Contract handles POST /api/check-in/contract
func (h *CheckInHandler) Contract(w http.ResponseWriter, r *http.Request) {
	var req request.ContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	state, err := h.service.AcceptContract(r.Context(), sessionID(r), req.Accepted)
	h.respond(w, state, err, "sign contract")
}

// Next handles POST /api/check-in/next
func (h *CheckInHandler) Next(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Next(r.Context(), sessionID(r))
	h.respond(w, state, err, "check-in next step")
}

// Back handles POST /api/check-in/back
func (h *CheckInHandler) Back(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Back(r.Context(), sessionID(r))
	h.respond(w, state, err, "check-in previous step")
}

// Deposit handles POST /api/check-in/deposit
func (h *CheckInHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.PayDeposit(r.Context(), sessionID(r))
	h.respond(w, state, err, "pay deposit")
}

// Complete handles POST /api/check-in/complete
func (h *CheckInHandler) Complete(w http.ResponseWriter, r *http.Request) {
	state, err := h.service.Complete(r.Context(), sessionID(r))
	h.respond(w, state, err, "complete check-in")
}

func (h *CheckInHandler) respond(w http.ResponseWriter, state *response.CheckInResponse, err error, operation string) {
	if err != nil {
		handleServiceError(w, h.log, err, operation, "Failed to "+operation)
		return
	}
	utils.ResponseSuccess(w, "Check-in updated", state)
}
