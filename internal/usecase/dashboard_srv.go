package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/internal/data/repository"
	"azhaboost/internal/dto/request"
	"azhaboost/internal/dto/response"
	"azhaboost/pkg/i18n"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dashboardListLimit = 5

type DashboardService interface {
	Dashboard(ctx context.Context) (*response.DashboardResponse, error)
	Properties(ctx context.Context) (*response.PropertiesResponse, error)
	ListAIEdits(ctx context.Context, req *request.ListAIEditsRequest) (*response.PaginatedResponse[response.AIEditResponse], error)
	ApproveEdit(ctx context.Context, editID string) (*response.AIEditResponse, error)
	RejectEdit(ctx context.Context, editID string) (*response.AIEditResponse, error)
	ApplyEdit(ctx context.Context, editID string) (*response.AIEditResponse, error)
	PropertyPricing(ctx context.Context, propertyID string, days int) (*response.PropertyPricingResponse, error)
}

type dashboardService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewDashboardService(repo *repository.Repository, log *zap.Logger) DashboardService {
	return &dashboardService{
		repo: repo,
		now:  time.Now,
		log:  log.With(zap.String("service", "dashboard")),
	}
}

func (s *dashboardService) Dashboard(ctx context.Context) (*response.DashboardResponse, error) {
	lang := i18n.FromContext(ctx)
	today := startOfDay(s.now())

	edits, err := s.repo.AIEdit.FindByStatus(ctx, entity.AIEditStatusPending, dashboardListLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("list pending edits: %w", err)
	}
	pendingEdits, err := s.repo.AIEdit.CountByStatus(ctx, entity.AIEditStatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending edits: %w", err)
	}

	bookings, err := s.repo.Booking.FindUpcoming(ctx, today, dashboardListLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming bookings: %w", err)
	}
	upcoming, err := s.repo.Booking.CountUpcoming(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("count upcoming bookings: %w", err)
	}

	tasks, err := s.repo.CleaningTask.FindByStatus(ctx, entity.CleaningStatusPending, dashboardListLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("list pending tasks: %w", err)
	}
	pendingTasks, err := s.repo.CleaningTask.CountByStatus(ctx, entity.CleaningStatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending tasks: %w", err)
	}

	properties, err := s.repo.Property.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	from := today.AddDate(0, 0, -(occupancyWindowDays - 1))
	samples, err := s.pricingWindow(ctx, properties, from, today)
	if err != nil {
		return nil, err
	}
	occupancy, totals := dailyPerformance(samples, from, occupancyWindowDays, lang)

	kpis := totals.kpis(lang)
	kpis = append(kpis,
		kpi("properties", int64(len(properties)), lang),
		kpi("upcomingCheckIns", upcoming, lang),
		kpi("pendingTasks", pendingTasks, lang),
		kpi("aiOptimizations", pendingEdits, lang),
	)

	resp := &response.DashboardResponse{
		Language:         string(lang.OrDefault()),
		Dir:              lang.Dir(),
		KPIs:             kpis,
		Occupancy:        occupancy,
		OccupancyTitle:   i18n.T("occupancy7Days", lang),
		PendingAIEdits:   make([]response.AIEditResponse, 0, len(edits)),
		UpcomingBookings: make([]response.BookingCard, 0, len(bookings)),
		PendingTasks:     make([]response.CleaningTaskResponse, 0, len(tasks)),
		Labels:           i18n.Table(lang),
	}
	for _, edit := range edits {
		resp.PendingAIEdits = append(resp.PendingAIEdits, AIEditView(edit, lang))
	}
	for _, booking := range bookings {
		resp.UpcomingBookings = append(resp.UpcomingBookings, BookingCardView(booking, lang))
	}
	for _, task := range tasks {
		resp.PendingTasks = append(resp.PendingTasks, CleaningTaskView(task, lang))
	}

	return resp, nil
}

func (s *dashboardService) Properties(ctx context.Context) (*response.PropertiesResponse, error) {
	lang := i18n.FromContext(ctx)

	properties, err := s.repo.Property.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}

	resp := &response.PropertiesResponse{
		Properties: make([]response.PropertyCard, 0, len(properties)),
		Total:      len(properties),
	}
	rankSum := 0
	for _, p := range properties {
		rankSum += p.CurrentRank
		resp.Properties = append(resp.Properties, response.PropertyCard{
			ID:          p.ID.String(),
			Name:        i18n.LocalizedField(p, "name", lang),
			Address:     p.Address,
			City:        p.City,
			CurrentRank: p.CurrentRank,
			TargetRank:  p.TargetRank,
			HasListing:  p.AirbnbListingID != nil && *p.AirbnbListingID != "",
			HasLock:     p.HasLockDevice(),
			HasCalendar: p.CalendarURL != nil && *p.CalendarURL != "",
		})
	}
	if len(properties) > 0 {
		resp.AverageRank = math.Round(float64(rankSum)/float64(len(properties))*10) / 10
	}

	return resp, nil
}

// PropertyPricing returns the daily occupancy and ADR of one property for the
// last days days, today included.
func (s *dashboardService) PropertyPricing(ctx context.Context, propertyID string, days int) (*response.PropertyPricingResponse, error) {
	id, err := uuid.Parse(propertyID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid property ID format")
	}
	if days < 1 {
		days = defaultPricingDays
	}
	if days > maxPricingDays {
		days = maxPricingDays
	}

	property, err := s.repo.Property.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load property: %w", err)
	}
	if property == nil {
		return nil, newError(ErrNotFound, "Property not found")
	}

	lang := i18n.FromContext(ctx)
	today := startOfDay(s.now())
	from := today.AddDate(0, 0, -(days - 1))
	samples, err := s.pricingWindow(ctx, []*entity.Property{property}, from, today)
	if err != nil {
		return nil, err
	}
	points, totals := dailyPerformance(samples, from, days, lang)

	return &response.PropertyPricingResponse{
		PropertyID:   property.ID.String(),
		PropertyName: i18n.LocalizedField(property, "name", lang),
		Days:         days,
		Points:       points,
		KPIs:         totals.kpis(lang),
	}, nil
}

func (s *dashboardService) ListAIEdits(ctx context.Context, req *request.ListAIEditsRequest) (*response.PaginatedResponse[response.AIEditResponse], error) {
	status := entity.AIEditStatus(req.Status)

	edits, err := s.repo.AIEdit.FindByStatus(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list ai edits: %w", err)
	}
	total, err := s.repo.AIEdit.CountByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count ai edits: %w", err)
	}

	lang := i18n.FromContext(ctx)
	items := make([]response.AIEditResponse, 0, len(edits))
	for _, edit := range edits {
		items = append(items, AIEditView(edit, lang))
	}
	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *dashboardService) ApproveEdit(ctx context.Context, editID string) (*response.AIEditResponse, error) {
	return s.transition(ctx, editID, entity.AIEditStatusApproved)
}

func (s *dashboardService) RejectEdit(ctx context.Context, editID string) (*response.AIEditResponse, error) {
	return s.transition(ctx, editID, entity.AIEditStatusRejected)
}

func (s *dashboardService) ApplyEdit(ctx context.Context, editID string) (*response.AIEditResponse, error) {
	return s.transition(ctx, editID, entity.AIEditStatusApplied)
}

// transition moves an edit one step along its workflow. Approve and apply
// both stamp applied_at.
func (s *dashboardService) transition(ctx context.Context, editID string, next entity.AIEditStatus) (*response.AIEditResponse, error) {
	id, err := uuid.Parse(editID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid edit ID format")
	}

	edit, err := s.repo.AIEdit.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load ai edit: %w", err)
	}
	if edit == nil {
		return nil, newError(ErrNotFound, "AI edit not found")
	}
	if !edit.Status.CanTransition(next) {
		return nil, newError(ErrInvalidTransition, "cannot move edit from %s to %s", edit.Status, next)
	}

	var appliedAt *time.Time
	if next != entity.AIEditStatusRejected {
		now := s.now().UTC()
		appliedAt = &now
		edit.AppliedAt = appliedAt
	}
	if err := s.repo.AIEdit.UpdateStatus(ctx, edit.ID, next, appliedAt); err != nil {
		return nil, fmt.Errorf("update ai edit: %w", err)
	}

	s.log.Info("AI edit status changed",
		zap.String("edit_id", edit.ID.String()),
		zap.String("from", string(edit.Status)),
		zap.String("to", string(next)),
	)
	edit.Status = next

	view := AIEditView(edit, i18n.FromContext(ctx))
	return &view, nil
}

// AIEditView localizes an edit. Arabic bullets fall back to English when empty.
func AIEditView(edit *entity.AIEdit, lang i18n.Language) response.AIEditResponse {
	bullets := edit.BulletsEn
	if lang.OrDefault() == i18n.Arabic && len(edit.BulletsAr) > 0 {
		bullets = edit.BulletsAr
	}
	analysis := edit.CompetitorAnalysis

	view := response.AIEditResponse{
		ID:                    edit.ID.String(),
		PropertyID:            edit.PropertyID.String(),
		Title:                 i18n.LocalizedField(edit, "title", lang),
		Bullets:               nonNil(bullets),
		SuggestedPrice:        edit.SuggestedPrice,
		SuggestedPriceDisplay: i18n.FormatCurrency(edit.SuggestedPrice, lang),
		CurrentRank:           edit.CurrentRank,
		TargetRank:            edit.TargetRank,
		Confidence:            edit.ConfidenceScore,
		Status:                edit.Status,
		StatusLabel:           i18n.T(string(edit.Status), lang),
		CompetitorAnalysis:    &analysis,
		CreatedAt:             edit.CreatedAt,
		AppliedAt:             edit.AppliedAt,
	}
	if edit.Property != nil {
		view.PropertyName = i18n.LocalizedField(edit.Property, "name", lang)
	}
	return view
}

func BookingCardView(b *entity.Booking, lang i18n.Language) response.BookingCard {
	card := response.BookingCard{
		ID:               b.ID.String(),
		BookingReference: b.BookingReference,
		GuestName:        b.GuestName,
		PropertyID:       b.PropertyID.String(),
		CheckInDate:      i18n.FormatDate(b.CheckInDate, lang),
		CheckOutDate:     i18n.FormatDate(b.CheckOutDate, lang),
		Status:           b.Status,
		StatusLabel:      i18n.T(i18n.StatusKey(string(b.Status)), lang),
	}
	if b.Property != nil {
		card.PropertyName = i18n.LocalizedField(b.Property, "name", lang)
	}
	return card
}

func kpi(key string, value int64, lang i18n.Language) response.KPI {
	return response.KPI{
		Key:     key,
		Label:   i18n.T(key, lang),
		Value:   value,
		Display: i18n.FormatNumber(value, lang),
	}
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
