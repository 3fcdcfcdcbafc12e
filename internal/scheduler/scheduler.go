// Package scheduler runs the listing optimization and calendar sync jobs on a timer.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"azhaboost/internal/data/repository"
	"azhaboost/internal/usecase"
	"azhaboost/pkg/utils"

	"go.uber.org/zap"
)

type Config struct {
	// OptimizeHour and OptimizeMinute are UTC.
	OptimizeHour   int
	OptimizeMinute int

	CalendarSyncEvery time.Duration
	CheckInterval     time.Duration
	LockTTL           time.Duration
}

func ConfigFrom(cfg utils.SchedulerConfig) Config {
	c := Config{
		OptimizeHour:      cfg.OptimizeHour,
		OptimizeMinute:    cfg.OptimizeMinute,
		CalendarSyncEvery: cfg.CalendarSyncEvery,
		CheckInterval:     cfg.CheckInterval,
		LockTTL:           cfg.JobLockTTL,
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = time.Minute
	}
	if c.LockTTL <= 0 {
		c.LockTTL = 30 * time.Minute
	}
	return c
}

// Scheduler triggers the daily optimization and the periodic calendar sync.
// Each run holds a job lock so only one instance works on a job at a time.
type Scheduler struct {
	config    Config
	optimizer usecase.OptimizationService
	calendar  usecase.CalendarService
	locks     repository.JobLockRepository
	logger    *zap.Logger
	now       func() time.Time

	cancel           context.CancelFunc
	wg               sync.WaitGroup
	mu               sync.Mutex
	isRunning        bool
	lastOptimizeDate string
	lastCalendarSync time.Time
}

func New(
	config Config,
	optimizer usecase.OptimizationService,
	calendar usecase.CalendarService,
	locks repository.JobLockRepository,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		config:    config,
		optimizer: optimizer,
		calendar:  calendar,
		locks:     locks,
		logger:    logger.With(zap.String("component", "scheduler")),
		now:       time.Now,
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.runLoop(ctx)

	s.logger.Info("Scheduler started",
		zap.Int("optimize_hour", s.config.OptimizeHour),
		zap.Int("optimize_minute", s.config.OptimizeMinute),
		zap.Duration("calendar_sync_every", s.config.CalendarSyncEvery),
		zap.Duration("check_interval", s.config.CheckInterval),
	)
	return nil
}

// Stop cancels the loop and waits for a running job, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.checkAndTrigger(ctx)
		}
	}
}

func (s *Scheduler) checkAndTrigger(ctx context.Context) {
	now := s.now().UTC()

	if s.calendarDue(now) {
		s.runJob(ctx, usecase.JobCalendarSync, func(ctx context.Context) error {
			_, err := s.calendar.SyncCalendars(ctx)
			return err
		})
	}

	// The sync may have taken a while.
	if s.optimizeDue(s.now().UTC()) {
		s.runJob(ctx, usecase.JobOptimizeListings, func(ctx context.Context) error {
			_, err := s.optimizer.OptimizeListings(ctx)
			return err
		})
	}
}

// calendarDue marks the sync as started when it returns true.
func (s *Scheduler) calendarDue(now time.Time) bool {
	if s.config.CalendarSyncEvery <= 0 {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastCalendarSync.IsZero() && now.Sub(s.lastCalendarSync) < s.config.CalendarSyncEvery {
		return false
	}
	s.lastCalendarSync = now
	return true
}

// optimizeDue fires once per UTC date, on the first check at or after the
// configured time. A late tick still runs that day's optimization.
func (s *Scheduler) optimizeDue(now time.Time) bool {
	currentDate := now.Format("2006-01-02")
	scheduled := time.Date(now.Year(), now.Month(), now.Day(),
		s.config.OptimizeHour, s.config.OptimizeMinute, 0, 0, time.UTC)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastOptimizeDate == currentDate || now.Before(scheduled) {
		return false
	}
	s.lastOptimizeDate = currentDate
	return true
}

// runJob reports whether the job ran on this instance.
func (s *Scheduler) runJob(ctx context.Context, job string, fn func(context.Context) error) bool {
	log := s.logger.With(zap.String("job", job))

	token, err := s.locks.Acquire(ctx, job, s.config.LockTTL)
	if err != nil {
		log.Error("Failed to acquire job lock", zap.Error(err))
		return false
	}
	if token == "" {
		log.Info("Job already running elsewhere, skipping")
		return false
	}
	defer func() {
		if err := s.locks.Release(context.WithoutCancel(ctx), job, token); err != nil {
			log.Warn("Failed to release job lock", zap.Error(err))
		}
	}()

	log.Info("Running scheduled job")
	if err := fn(ctx); err != nil {
		if errors.Is(err, usecase.ErrConfiguration) {
			log.Warn("Scheduled job not configured", zap.Error(err))
		} else {
			log.Error("Scheduled job failed", zap.Error(err))
		}
	}
	return true
}
