package wire

import (
	"azhaboost/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireOrchestrators(r chi.Router, handler *adaptor.Handler) {
	r.Post("/api/ai/optimize-listings", handler.Optimization.OptimizeListings)
	r.Post("/api/calendar/sync", handler.Calendar.SyncCalendars)
	r.Post("/api/smart-lock/generate-pin", handler.Lock.GeneratePIN)

	r.Post("/api/cleaning/trigger-task", handler.Cleaning.TriggerTask)
	r.Route("/api/cleaning-tasks", func(r chi.Router) {
		r.Get("/", handler.Cleaning.ListTasks)
		r.Post("/{id}/photos", handler.Cleaning.UploadPhoto) // multipart field "photo"
	})
}
