package wire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"azhaboost/internal/adaptor"
	"azhaboost/internal/usecase"
	"azhaboost/pkg/i18n"
	"azhaboost/pkg/middleware"
	"azhaboost/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type arabicResolver struct{}

func (arabicResolver) Resolve(context.Context, string) i18n.Language { return i18n.Arabic }

func testRouter(t *testing.T) *chi.Mux {
	t.Helper()
	log := zaptest.NewLogger(t)
	config := &utils.Config{Session: utils.SessionConfig{CookieName: "sid"}}
	handler := adaptor.NewHandler(&usecase.Service{}, log)
	return setupRouter(handler, arabicResolver{}, config, prometheus.NewRegistry(), log)
}

func TestSetupRouter_Routes(t *testing.T) {
	r := testRouter(t)

	var routes []string
	require.NoError(t, chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	}))
	sort.Strings(routes)

	for _, want := range []string{
		"POST /api/ai/optimize-listings",
		"POST /api/calendar/sync",
		"POST /api/cleaning/trigger-task",
		"POST /api/smart-lock/generate-pin",
		"GET /api/cleaning-tasks/",
		"POST /api/cleaning-tasks/{id}/photos",
		"POST /api/check-in/",
		"GET /api/check-in/",
		"POST /api/check-in/complete",
		"GET /api/dashboard",
		"GET /api/properties",
		"GET /api/properties/{id}/pricing",
		"GET /api/ai-edits/",
		"POST /api/ai-edits/{id}/approve",
		"POST /api/ai-edits/{id}/reject",
		"POST /api/ai-edits/{id}/apply",
		"GET /api/preferences/language",
		"PUT /api/preferences/language",
		"GET /api/translations",
		"GET /health",
	} {
		assert.Contains(t, routes, want)
	}
}

func TestSetupRouter_Middleware(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(middleware.SessionHeader))
	assert.Equal(t, "ar", rec.Header().Get("Content-Language"))
	assert.Equal(t, "rtl", rec.Header().Get(middleware.TextDirectionHeader))
}

func TestSetupRouter_Metrics(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}
