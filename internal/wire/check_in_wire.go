package wire

import (
	"azhaboost/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireCheckIn registers the guest flow. State is keyed by the client session.
func wireCheckIn(r chi.Router, checkInHandler *adaptor.CheckInHandler) {
	r.Route("/api/check-in", func(r chi.Router) {
		r.Post("/", checkInHandler.Start)
		r.Get("/", checkInHandler.Get)
		r.Post("/contract", checkInHandler.Contract)
		r.Post("/next", checkInHandler.Next)
		r.Post("/back", checkInHandler.Back)
		r.Post("/deposit", checkInHandler.Deposit)
		r.Post("/complete", checkInHandler.Complete)
	})
}
