package adaptor

import (
	"net/http"

	"azhaboost/internal/dto/request"
	"azhaboost/internal/dto/response"
	"azhaboost/internal/usecase"
	"azhaboost/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	service usecase.DashboardService
	log     *zap.Logger
}

func NewDashboardHandler(service usecase.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		log:     log.With(zap.String("handler", "dashboard")),
	}
}

// Dashboard handles GET /api/dashboard
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "load dashboard", "Failed to load dashboard")
		return
	}
	utils.ResponseSuccess(w, "Dashboard retrieved", dashboard)
}

// Properties handles GET /api/properties
func (h *DashboardHandler) Properties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.service.Properties(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "list properties", "Failed to list properties")
		return
	}
	utils.ResponseSuccess(w, "Properties retrieved", properties)
}

// PropertyPricing handles GET /api/properties/{id}/pricing?days=30
func (h *DashboardHandler) PropertyPricing(w http.ResponseWriter, r *http.Request) {
	days := utils.ParseInt(r.URL.Query().Get("days"), 30)

	pricing, err := h.service.PropertyPricing(r.Context(), chi.URLParam(r, "id"), days)
	if err != nil {
		handleServiceError(w, h.log, err, "load property pricing", "Failed to load property pricing")
		return
	}
	utils.ResponseSuccess(w, "Property pricing retrieved", pricing)
}

// ListAIEdits handles GET /api/ai-edits
func (h *DashboardHandler) ListAIEdits(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &request.ListAIEditsRequest{
		PaginatedRequest: request.PaginatedRequest{
			Page:    utils.ParseInt(query.Get("page"), 1),
			PerPage: utils.ParseInt(query.Get("per_page"), request.DefaultPerPage),
		},
		Status: query.Get("status"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	edits, err := h.service.ListAIEdits(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list ai edits", "Failed to list AI edits")
		return
	}
	utils.ResponseSuccess(w, "AI edits retrieved", edits)
}

// Approve handles POST /api/ai-edits/{id}/approve
func (h *DashboardHandler) Approve(w http.ResponseWriter, r *http.Request) {
	edit, err := h.service.ApproveEdit(r.Context(), chi.URLParam(r, "id"))
	h.respondEdit(w, edit, err, "approve ai edit", "AI edit approved")
}

// Reject handles POST /api/ai-edits/{id}/reject
func (h *DashboardHandler) Reject(w http.ResponseWriter, r *http.Request) {
	edit, err := h.service.RejectEdit(r.Context(), chi.URLParam(r, "id"))
	h.respondEdit(w, edit, err, "reject ai edit", "AI edit rejected")
}

// Apply handles POST /api/ai-edits/{id}/apply
func (h *DashboardHandler) Apply(w http.ResponseWriter, r *http.Request) {
	edit, err := h.service.ApplyEdit(r.Context(), chi.URLParam(r, "id"))
	h.respondEdit(w, edit, err, "apply ai edit", "AI edit applied")
}

func (h *DashboardHandler) respondEdit(w http.ResponseWriter, edit *response.AIEditResponse, err error, operation, message string) {
	if err != nil {
		handleServiceError(w, h.log, err, operation, "Failed to update AI edit")
		return
	}
	utils.ResponseSuccess(w, message, edit)
}
