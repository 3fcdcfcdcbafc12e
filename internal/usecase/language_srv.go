package usecase

import (
	"context"

	"azhaboost/internal/data/repository"
	"azhaboost/internal/dto/response"
	"azhaboost/pkg/i18n"

	"go.uber.org/zap"
)

type LanguageService interface {
	Current(ctx context.Context, sessionID string) *response.PreferenceResponse
	Set(ctx context.Context, sessionID, language string) (*response.PreferenceResponse, error)
	Translations(lang i18n.Language) *response.TranslationsResponse

	// Resolve satisfies the HTTP language middleware.
	Resolve(ctx context.Context, sessionID string) i18n.Language
}

type languageService struct {
	prefs repository.PreferenceRepository
	log   *zap.Logger
}

func NewLanguageService(prefs repository.PreferenceRepository, log *zap.Logger) LanguageService {
	return &languageService{
		prefs: prefs,
		log:   log.With(zap.String("service", "language")),
	}
}

// Resolve never fails: storage errors and unknown values give the default language.
func (s *languageService) Resolve(ctx context.Context, sessionID string) i18n.Language {
	if sessionID == "" {
		return i18n.Default
	}
	stored, err := s.prefs.Get(ctx, sessionID)
	if err != nil {
		s.log.Warn("Falling back to default language", zap.Error(err), zap.String("session_id", sessionID))
		return i18n.Default
	}
	return i18n.Language(stored).OrDefault()
}

func (s *languageService) Current(ctx context.Context, sessionID string) *response.PreferenceResponse {
	return preferenceResponse(s.Resolve(ctx, sessionID))
}

func (s *languageService) Set(ctx context.Context, sessionID, language string) (*response.PreferenceResponse, error) {
	lang, ok := i18n.ParseLanguage(language)
	if !ok {
		return nil, newError(ErrValidation, "unsupported language %q", language)
	}
	if sessionID == "" {
		return nil, newError(ErrValidation, "session is required")
	}

	if err := s.prefs.Set(ctx, sessionID, lang); err != nil {
		return nil, err
	}

	s.log.Info("Language preference changed",
		zap.String("session_id", sessionID),
		zap.String("language", string(lang)),
	)
	return preferenceResponse(lang), nil
}

func (s *languageService) Translations(lang i18n.Language) *response.TranslationsResponse {
	lang = lang.OrDefault()
	return &response.TranslationsResponse{
		Language:     string(lang),
		Dir:          lang.Dir(),
		Translations: i18n.Table(lang),
	}
}

func preferenceResponse(lang i18n.Language) *response.PreferenceResponse {
	return &response.PreferenceResponse{
		Language: string(lang),
		IsRTL:    lang.IsRTL(),
		Dir:      lang.Dir(),
	}
}
