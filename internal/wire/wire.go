// internal/wire/wire.go
package wire

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"azhaboost/internal/adaptor"
	"azhaboost/internal/data/repository"
	"azhaboost/internal/integration/ai"
	"azhaboost/internal/integration/calendar"
	"azhaboost/internal/integration/lock"
	"azhaboost/internal/integration/market"
	"azhaboost/internal/integration/notify"
	"azhaboost/internal/integration/storage"
	"azhaboost/internal/integration/tracker"
	"azhaboost/internal/scheduler"
	"azhaboost/internal/usecase"
	"azhaboost/pkg/metrics"
	"azhaboost/pkg/middleware"
	"azhaboost/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const outboundTimeout = 30 * time.Second

// App holds what main needs to run and shut down the process.
type App struct {
	Router    *chi.Mux
	Scheduler *scheduler.Scheduler
}

// Wiring builds the outside collaborators, services, handlers and router.
func Wiring(ctx context.Context, repo *repository.Repository, config *utils.Config, logger *zap.Logger) (*App, error) {
	deps, err := dependencies(ctx, config, prometheus.DefaultRegisterer, logger)
	if err != nil {
		return nil, err
	}

	service := usecase.NewService(repo, deps, logger)
	handler := adaptor.NewHandler(service, logger)

	app := &App{
		Router: setupRouter(handler, service.Language, config, prometheus.DefaultGatherer, logger),
	}
	if config.Scheduler.Enabled {
		app.Scheduler = scheduler.New(scheduler.ConfigFrom(config.Scheduler),
			service.Optimization, service.Calendar, repo.JobLock, logger)
	}

	return app, nil
}

// dependencies falls back to local stand-ins for integrations without credentials.
func dependencies(ctx context.Context, config *utils.Config, reg prometheus.Registerer, logger *zap.Logger) (usecase.Dependencies, error) {
	httpClient := &http.Client{Timeout: outboundTimeout}

	taskTracker, err := tracker.NewTracker(ctx, config.Tracker, logger)
	if err != nil {
		return usecase.Dependencies{}, fmt.Errorf("init task tracker: %w", err)
	}

	notifier, err := notify.NewNotifier(config.Telegram, logger)
	if err != nil {
		return usecase.Dependencies{}, fmt.Errorf("init notifier: %w", err)
	}

	photos, err := storage.NewPhotoStore(ctx, config.Storage, logger)
	if err != nil {
		return usecase.Dependencies{}, fmt.Errorf("init photo storage: %w", err)
	}

	return usecase.Dependencies{
		Generator: ai.NewGenerator(config.AI, logger),
		Ranking:   market.NewRankingSource(config.Market, logger),
		Pricing:   market.NewPricingSource(config.Market),
		Feeds:     calendar.NewICalFetcher(httpClient, logger),
		Tracker:   taskTracker,
		Notifier:  notifier,
		Photos:    photos,
		Locks:     lock.NewVendor(config.Lock, logger),
		Metrics:   metrics.NewMetrics(reg),
	}, nil
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	languages middleware.LanguageResolver,
	config *utils.Config,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Session(config.Session.CookieName, logger))
	r.Use(middleware.Language(languages))

	// Apply routes
	wireLanguage(r, handler.Language)
	wireOrchestrators(r, handler)
	wireCheckIn(r, handler.CheckIn)
	wireDashboard(r, handler.Dashboard)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
