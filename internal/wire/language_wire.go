package wire

import (
	"azhaboost/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireLanguage(r chi.Router, languageHandler *adaptor.LanguageHandler) {
	r.Get("/api/preferences/language", languageHandler.GetLanguage)
	r.Put("/api/preferences/language", languageHandler.SetLanguage)

	// GET /api/translations?lang=ar - full table for the client
	r.Get("/api/translations", languageHandler.GetTranslations)
}
