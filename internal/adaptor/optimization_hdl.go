package adaptor

import (
	"fmt"
	"net/http"

	"azhaboost/internal/usecase"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

type OptimizationHandler struct {
	service usecase.OptimizationService
	log     *zap.Logger
}

func NewOptimizationHandler(service usecase.OptimizationService, log *zap.Logger) *OptimizationHandler {
	return &OptimizationHandler{
		service: service,
		log:     log.With(zap.String("handler", "optimization")),
	}
}

// OptimizeListings handles POST /api/ai/optimize-listings
func (h *OptimizationHandler) OptimizeListings(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.OptimizeListings(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "optimize listings", "Failed to optimize listings")
		return
	}

	utils.ResponseSuccess(w, fmt.Sprintf("Processed %d properties", result.Processed), result)
}
