package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/internal/data/repository"
	"azhaboost/internal/dto/response"
	"azhaboost/internal/integration/calendar"
	"azhaboost/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	JobCalendarSync = "calendar_sync"

	unknownGuest   = "Unknown Guest"
	unknownBooking = "Unknown Booking"
)

// Strips labels such as "Reserved - " or "Airbnb: " from event summaries.
var summaryLabel = regexp.MustCompile(`^\w+\s*[-:]?\s*`)

type CalendarService interface {
	SyncCalendars(ctx context.Context) (*response.CalendarSyncResult, error)
}

type calendarService struct {
	repo    *repository.Repository
	feeds   calendar.FeedFetcher
	metrics *metrics.Metrics
	now     func() time.Time
	log     *zap.Logger
}

func NewCalendarService(repo *repository.Repository, feeds calendar.FeedFetcher, m *metrics.Metrics, log *zap.Logger) CalendarService {
	return &calendarService{
		repo:    repo,
		feeds:   feeds,
		metrics: m,
		now:     time.Now,
		log:     log.With(zap.String("service", "calendar")),
	}
}

func (s *calendarService) SyncCalendars(ctx context.Context) (*response.CalendarSyncResult, error) {
	done := s.metrics.ObserveRun(JobCalendarSync)
	defer done()

	properties, err := s.repo.Property.FindWithCalendar(ctx)
	if err != nil {
		s.log.Error("Failed to load properties with calendars", zap.Error(err))
		return nil, fmt.Errorf("load properties: %w", err)
	}

	result := &response.CalendarSyncResult{Properties: len(properties)}
	for _, property := range properties {
		synced, err := s.syncProperty(ctx, property)
		if err != nil {
			s.log.Error("Skipping property calendar",
				zap.Error(err),
				zap.String("property_id", property.ID.String()),
			)
			result.FailedProperties++
			s.metrics.Item(JobCalendarSync, metrics.OutcomeFailed)
			continue
		}
		result.Synced += synced
	}

	s.log.Info("Calendar sync finished",
		zap.Int("properties", result.Properties),
		zap.Int("synced", result.Synced),
		zap.Int("failed_properties", result.FailedProperties),
	)
	return result, nil
}

// syncProperty inserts bookings for events whose reference is new. Per-event
// insert failures are logged and do not fail the property.
func (s *calendarService) syncProperty(ctx context.Context, property *entity.Property) (int, error) {
	events, err := s.feeds.Fetch(ctx, *property.CalendarURL)
	if err != nil {
		return 0, fmt.Errorf("fetch calendar: %w", err)
	}

	synced := 0
	for _, ev := range events {
		booking := BookingFromEvent(property.ID, ev, s.now())

		created, err := s.repo.Booking.CreateIfAbsent(ctx, booking)
		if err != nil {
			s.log.Error("Failed to insert calendar booking",
				zap.Error(err),
				zap.String("property_id", property.ID.String()),
				zap.String("event_uid", ev.UID),
			)
			s.metrics.Item(JobCalendarSync, metrics.OutcomeFailed)
			continue
		}
		if !created {
			s.metrics.Item(JobCalendarSync, metrics.OutcomeSkipped)
			continue
		}

		synced++
		s.metrics.Item(JobCalendarSync, metrics.OutcomeCreated)
	}

	return synced, nil
}

// BookingFromEvent maps a feed event to a confirmed booking. The guest email
// is not present in feeds and stays empty.
func BookingFromEvent(propertyID uuid.UUID, ev calendar.Event, now time.Time) *entity.Booking {
	return &entity.Booking{
		Base:             entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PropertyID:       propertyID,
		GuestName:        GuestName(ev.Summary),
		CheckInDate:      calendar.CalendarDate(ev.Start),
		CheckOutDate:     calendar.CalendarDate(ev.End),
		BookingReference: BookingReference(ev.UID),
		Status:           entity.BookingStatusConfirmed,
		DepositAmount:    decimal.Zero,
	}
}

func GuestName(summary string) string {
	if strings.TrimSpace(summary) == "" {
		summary = unknownBooking
	}
	name := strings.TrimSpace(summaryLabel.ReplaceAllString(summary, ""))
	if name == "" {
		return unknownGuest
	}
	return name
}

// BookingReference is the uid up to its first "@", or the whole uid when that prefix is empty.
func BookingReference(uid string) string {
	if i := strings.IndexByte(uid, '@'); i > 0 {
		return uid[:i]
	}
	return uid
}
