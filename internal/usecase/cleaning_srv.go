package usecase

import (
	"context"
	"errors"
	"fmt"
	"html"
	"io"
	"path"
	"strings"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/internal/data/repository"
	"azhaboost/internal/dto/request"
	"azhaboost/internal/dto/response"
	"azhaboost/internal/integration/notify"
	"azhaboost/internal/integration/storage"
	"azhaboost/internal/integration/tracker"
	"azhaboost/pkg/i18n"
	"azhaboost/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	cleaningOffset            = 2 * time.Hour
	cleaningEstimatedDuration = 180 // minutes
)

type CleaningService interface {
	TriggerTask(ctx context.Context, req *request.TriggerCleaningRequest) (*response.TriggerCleaningResponse, error)
	ListTasks(ctx context.Context, req *request.ListCleaningTasksRequest) (*response.PaginatedResponse[response.CleaningTaskResponse], error)
	UploadPhoto(ctx context.Context, taskID, filename, contentType string, body io.Reader, size int64) (*response.PhotoUploadResponse, error)
}

type cleaningService struct {
	repo     *repository.Repository
	tracker  tracker.Tracker
	notifier notify.Notifier
	photos   storage.PhotoStore
	metrics  *metrics.Metrics
	now      func() time.Time
	log      *zap.Logger
}

func NewCleaningService(repo *repository.Repository, tr tracker.Tracker, notifier notify.Notifier,
	photos storage.PhotoStore, m *metrics.Metrics, log *zap.Logger) CleaningService {
	return &cleaningService{
		repo:     repo,
		tracker:  tr,
		notifier: notifier,
		photos:   photos,
		metrics:  m,
		now:      time.Now,
		log:      log.With(zap.String("service", "cleaning")),
	}
}

func (s *cleaningService) TriggerTask(ctx context.Context, req *request.TriggerCleaningRequest) (*response.TriggerCleaningResponse, error) {
	if strings.TrimSpace(req.BookingID) == "" || strings.TrimSpace(req.Trigger) == "" {
		return nil, newError(ErrValidation, "Booking ID and trigger are required")
	}
	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid booking ID format")
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "Booking not found")
	}

	task := NewCheckoutCleaningTask(booking, s.now())
	if err := s.repo.CleaningTask.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create cleaning task: %w", err)
	}

	log := s.log.With(
		zap.String("task_id", task.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("trigger", req.Trigger),
	)
	log.Info("Cleaning task created")

	summary := response.CleaningTaskSummary{
		ID:            task.ID.String(),
		Title:         task.TitleEn,
		ScheduledDate: *task.ScheduledDate,
	}

	if trackerID, ok := s.mirrorTask(ctx, task, booking, log); ok {
		summary.TrackerTaskID = &trackerID
	}

	notified := s.notifyCleaners(ctx, task, booking, log)

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCheckedOut); err != nil {
		log.Error("Failed to mark booking checked out", zap.Error(err))
	}

	return &response.TriggerCleaningResponse{Task: summary, Notified: notified}, nil
}

// mirrorTask copies the task to the tracker. A failure leaves the task without a tracker id.
func (s *cleaningService) mirrorTask(ctx context.Context, task *entity.CleaningTask, booking *entity.Booking, log *zap.Logger) (string, bool) {
	trackerID, err := s.tracker.CreateTask(ctx, tracker.Task{
		Title:       task.TitleEn,
		Description: deref(task.DescriptionEn),
		Property:    propertyNameEn(booking),
		DueDate:     *task.ScheduledDate,
		Priority:    string(task.Priority),
	})
	if err != nil {
		log.Error("Failed to mirror task to tracker", zap.Error(err))
		return "", false
	}

	if err := s.repo.CleaningTask.SetTrackerID(ctx, task.ID, trackerID); err != nil {
		log.Error("Failed to store tracker id", zap.Error(err), zap.String("tracker_task_id", trackerID))
		return "", false
	}
	return trackerID, true
}

// notifyCleaners messages every active cleaner with a chat id and returns how many got it.
func (s *cleaningService) notifyCleaners(ctx context.Context, task *entity.CleaningTask, booking *entity.Booking, log *zap.Logger) int {
	cleaners, err := s.repo.Cleaner.FindActive(ctx)
	if err != nil {
		log.Error("Failed to load cleaners", zap.Error(err))
		return 0
	}

	message := CleaningTaskMessage(task, booking)
	sent := 0
	for _, cleaner := range cleaners {
		if cleaner.TelegramChatID == nil || *cleaner.TelegramChatID == "" {
			continue
		}
		if err := s.notifier.Notify(ctx, *cleaner.TelegramChatID, message); err != nil {
			log.Error("Failed to notify cleaner",
				zap.Error(err),
				zap.String("cleaner_id", cleaner.ID.String()),
			)
			s.metrics.Notification(metrics.OutcomeFailed)
			continue
		}
		sent++
		s.metrics.Notification(metrics.OutcomeSent)
	}
	return sent
}

// NewCheckoutCleaningTask builds the bilingual post-checkout task for booking.
func NewCheckoutCleaningTask(booking *entity.Booking, now time.Time) *entity.CleaningTask {
	property := booking.Property
	if property == nil {
		property = &entity.Property{}
	}
	checkout := booking.CheckOutDate.Format("2006-01-02")
	descEn := fmt.Sprintf("Clean property after guest checkout. Guest: %s, Checkout: %s", booking.GuestName, checkout)
	descAr := fmt.Sprintf("تنظيف العقار بعد مغادرة النزيل. النزيل: %s، المغادرة: %s", booking.GuestName, checkout)
	scheduled := now.Add(cleaningOffset).UTC()
	bookingID := booking.ID

	return &entity.CleaningTask{
		Base:              entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		PropertyID:        booking.PropertyID,
		BookingID:         &bookingID,
		TitleEn:           "Post-checkout cleaning - " + property.NameEn,
		TitleAr:           "تنظيف ما بعد المغادرة - " + property.NameAr,
		DescriptionEn:     &descEn,
		DescriptionAr:     &descAr,
		Status:            entity.CleaningStatusPending,
		Priority:          entity.PriorityHigh,
		ScheduledDate:     &scheduled,
		PhotosRequired:    true,
		PhotosUploaded:    []string{},
		EstimatedDuration: cleaningEstimatedDuration,
	}
}

func propertyNameEn(booking *entity.Booking) string {
	if booking.Property == nil {
		return ""
	}
	return booking.Property.NameEn
}

// CleaningTaskMessage renders the Telegram HTML notification.
func CleaningTaskMessage(task *entity.CleaningTask, booking *entity.Booking) string {
	propertyName := propertyNameEn(booking)
	scheduled := ""
	if task.ScheduledDate != nil {
		scheduled = task.ScheduledDate.Format("2006-01-02 15:04 MST")
	}

	var b strings.Builder
	b.WriteString("🧹 <b>New Cleaning Task</b>\n\n")
	fmt.Fprintf(&b, "📍 <b>Property:</b> %s\n", html.EscapeString(propertyName))
	fmt.Fprintf(&b, "👤 <b>Guest:</b> %s\n", html.EscapeString(booking.GuestName))
	fmt.Fprintf(&b, "📅 <b>Scheduled:</b> %s\n", scheduled)
	fmt.Fprintf(&b, "⏱️ <b>Estimated Duration:</b> %g hours\n", float64(task.EstimatedDuration)/60)
	fmt.Fprintf(&b, "🔥 <b>Priority:</b> %s\n\n", strings.ToUpper(string(task.Priority)))
	b.WriteString("📝 <b>Description:</b>\n")
	b.WriteString(html.EscapeString(deref(task.DescriptionEn)))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Click to accept this task: /accept_%s\n", task.ID.String())
	return b.String()
}

func (s *cleaningService) ListTasks(ctx context.Context, req *request.ListCleaningTasksRequest) (*response.PaginatedResponse[response.CleaningTaskResponse], error) {
	status := entity.CleaningStatus(req.Status)

	tasks, err := s.repo.CleaningTask.FindByStatus(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("list cleaning tasks: %w", err)
	}
	total, err := s.repo.CleaningTask.CountByStatus(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count cleaning tasks: %w", err)
	}

	lang := i18n.FromContext(ctx)
	items := make([]response.CleaningTaskResponse, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, CleaningTaskView(task, lang))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

// CleaningTaskView localizes a task for display.
func CleaningTaskView(task *entity.CleaningTask, lang i18n.Language) response.CleaningTaskResponse {
	view := response.CleaningTaskResponse{
		ID:                task.ID.String(),
		PropertyID:        task.PropertyID.String(),
		Title:             i18n.LocalizedField(task, "title", lang),
		Description:       i18n.LocalizedField(task, "description", lang),
		Status:            task.Status,
		StatusLabel:       i18n.T(i18n.StatusKey(string(task.Status)), lang),
		Priority:          task.Priority,
		PriorityLabel:     i18n.T(string(task.Priority), lang),
		TrackerTaskID:     task.TrackerTaskID,
		PhotosRequired:    task.PhotosRequired,
		PhotosUploaded:    nonNil(task.PhotosUploaded),
		EstimatedDuration: task.EstimatedDuration,
	}
	if task.BookingID != nil {
		id := task.BookingID.String()
		view.BookingID = &id
	}
	if task.ScheduledDate != nil {
		view.ScheduledDate = i18n.FormatDate(*task.ScheduledDate, lang)
		view.ScheduledTime = i18n.FormatTime(*task.ScheduledDate, lang)
	}
	return view
}

func (s *cleaningService) UploadPhoto(ctx context.Context, taskID, filename, contentType string, body io.Reader, size int64) (*response.PhotoUploadResponse, error) {
	id, err := uuid.Parse(taskID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid task ID format")
	}
	if !strings.HasPrefix(contentType, "image/") {
		return nil, newError(ErrValidation, "photo must be an image")
	}

	task, err := s.repo.CleaningTask.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load cleaning task: %w", err)
	}
	if task == nil {
		return nil, newError(ErrNotFound, "Cleaning task not found")
	}

	key := fmt.Sprintf("cleaning/%s/%s%s", task.ID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
	url, err := s.photos.Upload(ctx, key, contentType, body, size)
	if errors.Is(err, storage.ErrNotConfigured) {
		return nil, newError(ErrConfiguration, "Photo storage is not configured")
	}
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	photos, err := s.repo.CleaningTask.AppendPhoto(ctx, task.ID, url)
	if err != nil {
		return nil, fmt.Errorf("record photo: %w", err)
	}
	if photos == nil {
		return nil, newError(ErrNotFound, "Cleaning task not found")
	}

	s.log.Info("Cleaning photo uploaded",
		zap.String("task_id", task.ID.String()),
		zap.Int("photos", len(photos)),
	)
	return &response.PhotoUploadResponse{TaskID: task.ID.String(), URL: url, Photos: photos}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
