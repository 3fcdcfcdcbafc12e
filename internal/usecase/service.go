package usecase

import (
	"azhaboost/internal/data/repository"
	"azhaboost/internal/integration/ai"
	"azhaboost/internal/integration/calendar"
	"azhaboost/internal/integration/lock"
	"azhaboost/internal/integration/market"
	"azhaboost/internal/integration/notify"
	"azhaboost/internal/integration/storage"
	"azhaboost/internal/integration/tracker"
	"azhaboost/pkg/metrics"

	"go.uber.org/zap"
)

// Dependencies are the outside collaborators the services call.
type Dependencies struct {
	Generator ai.Generator
	Ranking   market.RankingSource
	Pricing   market.PricingSource
	Feeds     calendar.FeedFetcher
	Tracker   tracker.Tracker
	Notifier  notify.Notifier
	Photos    storage.PhotoStore
	Locks     lock.Vendor
	Metrics   *metrics.Metrics
}

type Service struct {
	Language     LanguageService
	Optimization OptimizationService
	Calendar     CalendarService
	Cleaning     CleaningService
	Lock         LockService
	CheckIn      CheckInService
	Dashboard    DashboardService
}

func NewService(repo *repository.Repository, deps Dependencies, log *zap.Logger) *Service {
	lockService := NewLockService(repo, deps.Locks, log)

	return &Service{
		Language:     NewLanguageService(repo.Preference, log),
		Optimization: NewOptimizationService(repo, deps.Ranking, deps.Pricing, deps.Generator, deps.Metrics, log),
		Calendar:     NewCalendarService(repo, deps.Feeds, deps.Metrics, log),
		Cleaning:     NewCleaningService(repo, deps.Tracker, deps.Notifier, deps.Photos, deps.Metrics, log),
		Lock:         lockService,
		CheckIn:      NewCheckInService(repo, lockService, log),
		Dashboard:    NewDashboardService(repo, log),
	}
}
