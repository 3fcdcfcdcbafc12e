package middleware

import (
	"context"
	"net/http"
	"strings"

	"azhaboost/pkg/i18n"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

const (
	SessionHeader       = "X-Session-ID"
	TextDirectionHeader = "X-Text-Direction"
)

// Session resolves the client session from the X-Session-ID header or the
// session cookie, minting one when the client has none. Language preference
// and check-in state are keyed by it.
func Session(cookieName string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
			if sessionID == "" {
				if cookie, err := r.Cookie(cookieName); err == nil {
					sessionID = cookie.Value
				}
			}

			if sessionID == "" {
				sessionID = utils.GenerateSessionID()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    sessionID,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
				logger.Debug("New client session", zap.String("session_id", sessionID))
			}

			w.Header().Set(SessionHeader, sessionID)
			next.ServeHTTP(w, r.WithContext(utils.SetSessionContext(r.Context(), sessionID)))
		})
	}
}

// LanguageResolver returns the stored language preference of a session.
type LanguageResolver interface {
	Resolve(ctx context.Context, sessionID string) i18n.Language
}

// Language puts the session's language into the request context and
// advertises the write direction to the client. Must run after Session.
func Language(resolver LanguageResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID, _ := utils.GetSessionIDFromContext(r.Context())
			lang := resolver.Resolve(r.Context(), sessionID)

			SetLanguageHeaders(w, lang)
			next.ServeHTTP(w, r.WithContext(i18n.WithLanguage(r.Context(), lang)))
		})
	}
}

// SetLanguageHeaders advertises lang and its write direction on the response.
func SetLanguageHeaders(w http.ResponseWriter, lang i18n.Language) {
	w.Header().Set("Content-Language", string(lang.OrDefault()))
	w.Header().Set(TextDirectionHeader, lang.Dir())
}
