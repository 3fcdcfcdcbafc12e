package adaptor

import (
	"encoding/json"
	"net/http"

	"azhaboost/internal/dto/request"
	"azhaboost/internal/usecase"
	"azhaboost/pkg/i18n"
	"azhaboost/pkg/middleware"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

type LanguageHandler struct {
	service usecase.LanguageService
	log     *zap.Logger
}

func NewLanguageHandler(service usecase.LanguageService, log *zap.Logger) *LanguageHandler {
	return &LanguageHandler{
		service: service,
		log:     log.With(zap.String("handler", "language")),
	}
}

// GetLanguage handles GET /api/preferences/language
func (h *LanguageHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	utils.ResponseSuccess(w, "Language preference retrieved", h.service.Current(r.Context(), sessionID(r)))
}

// SetLanguage handles PUT /api/preferences/language
func (h *LanguageHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req request.SetLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	pref, err := h.service.Set(r.Context(), sessionID(r), req.Language)
	if err != nil {
		handleServiceError(w, h.log, err, "set language", "Failed to save language preference")
		return
	}

	// the middleware already advertised the previous language
	middleware.SetLanguageHeaders(w, i18n.Language(pref.Language))

	utils.ResponseSuccess(w, "Language preference saved", pref)
}

// GetTranslations handles GET /api/translations. ?lang= overrides the session language.
func (h *LanguageHandler) GetTranslations(w http.ResponseWriter, r *http.Request) {
	lang := i18n.FromContext(r.Context())
	if override, ok := i18n.ParseLanguage(r.URL.Query().Get("lang")); ok {
		lang = override
	}
	utils.ResponseSuccess(w, "Translations retrieved", h.service.Translations(lang))
}
