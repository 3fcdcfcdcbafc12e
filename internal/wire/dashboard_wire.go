package wire

import (
	"azhaboost/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler) {
	r.Get("/api/dashboard", dashboardHandler.Dashboard)
	r.Get("/api/properties", dashboardHandler.Properties)
	r.Get("/api/properties/{id}/pricing", dashboardHandler.PropertyPricing)

	r.Route("/api/ai-edits", func(r chi.Router) {
		r.Get("/", dashboardHandler.ListAIEdits)
		r.Post("/{id}/approve", dashboardHandler.Approve)
		r.Post("/{id}/reject", dashboardHandler.Reject)
		r.Post("/{id}/apply", dashboardHandler.Apply)
	})
}
