package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"azhaboost/pkg/i18n"
	"azhaboost/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

type staticResolver map[string]i18n.Language

func (s staticResolver) Resolve(_ context.Context, sessionID string) i18n.Language {
	if lang, ok := s[sessionID]; ok {
		return lang
	}
	return i18n.Default
}

func TestSessionAndLanguage(t *testing.T) {
	log := zaptest.NewLogger(t)

	var gotSession string
	var gotLang i18n.Language
	handler := Session("sid", log)(Language(staticResolver{"s-ar": i18n.Arabic})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotSession, _ = utils.GetSessionIDFromContext(r.Context())
			gotLang = i18n.FromContext(r.Context())
		}),
	))

	t.Run("header session with arabic preference", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(SessionHeader, "s-ar")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "s-ar", gotSession)
		assert.Equal(t, i18n.Arabic, gotLang)
		assert.Equal(t, "rtl", rec.Header().Get("X-Text-Direction"))
		assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
	})

	t.Run("cookie session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "sid", Value: "from-cookie"})
		handler.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "from-cookie", gotSession)
		assert.Equal(t, i18n.English, gotLang)
	})

	t.Run("new session is minted", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, gotSession)
		assert.Equal(t, gotSession, rec.Header().Get(SessionHeader))
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, gotSession, cookies[0].Value)
	})
}

func TestRecover(t *testing.T) {
	handler := Recover(zaptest.NewLogger(t))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	called := false
	handler := CORS()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "/api/dashboard", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.False(t, called)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) { w.Write([]byte("OK")) })
	mux.HandleFunc("/api/dashboard", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/api/check-in", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := Logger(zap.New(core))(Session("sid", zaptest.NewLogger(t))(mux))

	for _, path := range []string{"/health", "/api/dashboard", "/api/check-in"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(SessionHeader, "s1")
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
	assert.Equal(t, "s1", entries[1].ContextMap()["session_id"])
	assert.Equal(t, int64(http.StatusInternalServerError), entries[1].ContextMap()["status"])
}
