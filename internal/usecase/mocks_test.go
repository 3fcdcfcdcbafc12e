package usecase

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/internal/data/repository"
	"azhaboost/internal/integration/ai"
	"azhaboost/internal/integration/calendar"
	"azhaboost/internal/integration/tracker"
	"azhaboost/pkg/i18n"
	"azhaboost/pkg/metrics"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

// ============================================================================
// In-memory store
// ============================================================================

type memStore struct {
	mu         sync.Mutex
	properties map[uuid.UUID]*entity.Property
	bookings   map[uuid.UUID]*entity.Booking
	tasks      map[uuid.UUID]*entity.CleaningTask
	edits      map[uuid.UUID]*entity.AIEdit
	pricing    map[string]*entity.PricingData
	cleaners   []*entity.Cleaner
	prefs      map[string]string
	checkIns   map[string]entity.CheckInSession
	locks      map[string]string

	bookingStatusErr error
	pricingErr       error
}

func newMemStore() *memStore {
	return &memStore{
		properties: map[uuid.UUID]*entity.Property{},
		bookings:   map[uuid.UUID]*entity.Booking{},
		tasks:      map[uuid.UUID]*entity.CleaningTask{},
		edits:      map[uuid.UUID]*entity.AIEdit{},
		pricing:    map[string]*entity.PricingData{},
		prefs:      map[string]string{},
		checkIns:   map[string]entity.CheckInSession{},
		locks:      map[string]string{},
	}
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		Property:     memProperties{s},
		Booking:      memBookings{s},
		CleaningTask: memTasks{s},
		AIEdit:       memEdits{s},
		PricingData:  memPricing{s},
		Cleaner:      memCleaners{s},
		Preference:   memPrefs{s},
		CheckIn:      memCheckIns{s},
		JobLock:      memLocks{s},
	}
}

func (s *memStore) addProperty(p *entity.Property) *entity.Property {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	s.properties[p.ID] = p
	return p
}

func (s *memStore) addBooking(b *entity.Booking) *entity.Booking {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	s.bookings[b.ID] = b
	return b
}

func (s *memStore) withProperty(b *entity.Booking) *entity.Booking {
	out := *b
	if p, ok := s.properties[b.PropertyID]; ok {
		cp := *p
		out.Property = &cp
	}
	return &out
}

type memProperties struct{ s *memStore }

func (r memProperties) FindByID(_ context.Context, id uuid.UUID) (*entity.Property, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.properties[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r memProperties) FindAll(context.Context) ([]*entity.Property, error) {
	return r.filter(func(*entity.Property) bool { return true }), nil
}

func (r memProperties) FindWithListing(context.Context) ([]*entity.Property, error) {
	return r.filter(func(p *entity.Property) bool {
		return p.AirbnbListingID != nil && *p.AirbnbListingID != ""
	}), nil
}

func (r memProperties) FindWithCalendar(context.Context) ([]*entity.Property, error) {
	return r.filter(func(p *entity.Property) bool {
		return p.CalendarURL != nil && *p.CalendarURL != ""
	}), nil
}

func (r memProperties) filter(keep func(*entity.Property) bool) []*entity.Property {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Property
	for _, p := range r.s.properties {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NameEn < out[j].NameEn })
	return out
}

type memBookings struct{ s *memStore }

func (r memBookings) CreateIfAbsent(_ context.Context, b *entity.Booking) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.bookings {
		if existing.BookingReference == b.BookingReference {
			return false, nil
		}
	}
	cp := *b
	r.s.bookings[b.ID] = &cp
	return true, nil
}

func (r memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	return r.s.withProperty(b), nil
}

func (r memBookings) FindByReference(_ context.Context, reference string) (*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.bookings {
		if b.BookingReference == reference {
			return r.s.withProperty(b), nil
		}
	}
	return nil, nil
}

func (r memBookings) Update(_ context.Context, b *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.bookings[b.ID]; !ok {
		return errors.New("booking not found")
	}
	cp := *b
	r.s.bookings[b.ID] = &cp
	return nil
}

func (r memBookings) upcoming(from time.Time) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if !b.CheckInDate.Before(from) && b.Status != entity.BookingStatusCancelled {
			out = append(out, r.s.withProperty(b))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CheckInDate.Before(out[j].CheckInDate) })
	return out
}

func (r memBookings) FindUpcoming(_ context.Context, from time.Time, limit int) ([]*entity.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := r.upcoming(from)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r memBookings) CountUpcoming(_ context.Context, from time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.upcoming(from))), nil
}

func (r memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.bookingStatusErr != nil {
		return r.s.bookingStatusErr
	}
	b, ok := r.s.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	return nil
}

func (r memBookings) UpdateLockPIN(_ context.Context, id uuid.UUID, pin string, expiresAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.SmartLockPIN = &pin
	b.PINExpiresAt = &expiresAt
	return nil
}

type memTasks struct{ s *memStore }

func (r memTasks) Create(_ context.Context, task *entity.CleaningTask) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *task
	r.s.tasks[task.ID] = &cp
	return nil
}

func (r memTasks) FindByID(_ context.Context, id uuid.UUID) (*entity.CleaningTask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r memTasks) byStatus(status entity.CleaningStatus) []*entity.CleaningTask {
	var out []*entity.CleaningTask
	for _, t := range r.s.tasks {
		if status == "" || t.Status == status {
			cp := *t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memTasks) FindByStatus(_ context.Context, status entity.CleaningStatus, limit, offset int) ([]*entity.CleaningTask, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.byStatus(status), limit, offset), nil
}

func (r memTasks) CountByStatus(_ context.Context, status entity.CleaningStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.byStatus(status))), nil
}

func (r memTasks) SetTrackerID(_ context.Context, id uuid.UUID, trackerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return errors.New("task not found")
	}
	t.TrackerTaskID = &trackerID
	return nil
}

func (r memTasks) AppendPhoto(_ context.Context, id uuid.UUID, url string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, nil
	}
	t.PhotosUploaded = append(t.PhotosUploaded, url)
	return append([]string(nil), t.PhotosUploaded...), nil
}

type memEdits struct{ s *memStore }

func (r memEdits) Create(_ context.Context, edit *entity.AIEdit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *edit
	r.s.edits[edit.ID] = &cp
	return nil
}

func (r memEdits) FindByID(_ context.Context, id uuid.UUID) (*entity.AIEdit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.edits[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r memEdits) byStatus(status entity.AIEditStatus) []*entity.AIEdit {
	var out []*entity.AIEdit
	for _, e := range r.s.edits {
		if status == "" || e.Status == status {
			cp := *e
			if p, ok := r.s.properties[e.PropertyID]; ok {
				cp.Property = &entity.Property{Base: p.Base, NameEn: p.NameEn, NameAr: p.NameAr}
			}
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memEdits) FindByStatus(_ context.Context, status entity.AIEditStatus, limit, offset int) ([]*entity.AIEdit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return page(r.byStatus(status), limit, offset), nil
}

func (r memEdits) CountByStatus(_ context.Context, status entity.AIEditStatus) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.byStatus(status))), nil
}

func (r memEdits) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AIEditStatus, appliedAt *time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.edits[id]
	if !ok {
		return errors.New("ai edit not found")
	}
	e.Status = status
	if appliedAt != nil {
		e.AppliedAt = appliedAt
	}
	return nil
}

type memPricing struct{ s *memStore }

func (r memPricing) Upsert(_ context.Context, data *entity.PricingData) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.pricingErr != nil {
		return r.s.pricingErr
	}
	cp := *data
	r.s.pricing[data.PropertyID.String()+data.Date.Format("2006-01-02")] = &cp
	return nil
}

func (r memPricing) FindByPropertyRange(_ context.Context, propertyID uuid.UUID, from, to time.Time) ([]*entity.PricingData, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.PricingData
	for _, d := range r.s.pricing {
		if d.PropertyID == propertyID && !d.Date.Before(from) && !d.Date.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

type memCleaners struct{ s *memStore }

func (r memCleaners) FindActive(context.Context) ([]*entity.Cleaner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Cleaner
	for _, c := range r.s.cleaners {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

type memPrefs struct{ s *memStore }

func (r memPrefs) Get(_ context.Context, sessionID string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.prefs[sessionID], nil
}

func (r memPrefs) Set(_ context.Context, sessionID string, lang i18n.Language) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.prefs[sessionID] = string(lang)
	return nil
}

type memCheckIns struct{ s *memStore }

func (r memCheckIns) Find(_ context.Context, sessionID string) (*entity.CheckInSession, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	session, ok := r.s.checkIns[sessionID]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (r memCheckIns) Save(_ context.Context, session *entity.CheckInSession) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.checkIns[session.SessionID] = *session
	return nil
}

func (r memCheckIns) Delete(_ context.Context, sessionID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.checkIns, sessionID)
	return nil
}

type memLocks struct{ s *memStore }

func (r memLocks) Acquire(_ context.Context, job string, _ time.Duration) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, held := r.s.locks[job]; held {
		return "", nil
	}
	token := uuid.NewString()
	r.s.locks[job] = token
	return token, nil
}

func (r memLocks) Release(_ context.Context, job, token string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.locks[job] == token {
		delete(r.s.locks, job)
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

// ============================================================================
// Mock collaborators
// ============================================================================

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) ([]ai.ContentPart, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ai.ContentPart), args.Error(1)
}

type MockFeedFetcher struct {
	mock.Mock
}

func (m *MockFeedFetcher) Fetch(ctx context.Context, url string) ([]calendar.Event, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]calendar.Event), args.Error(1)
}

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) CreateTask(ctx context.Context, task tracker.Task) (string, error) {
	args := m.Called(ctx, task)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, chatID, html string) error {
	args := m.Called(ctx, chatID, html)
	return args.Error(0)
}

type MockPhotoStore struct {
	mock.Mock
}

func (m *MockPhotoStore) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	args := m.Called(ctx, key, contentType, body, size)
	return args.String(0), args.Error(1)
}

type MockVendor struct {
	mock.Mock
}

func (m *MockVendor) GenerateCode(ctx context.Context, deviceID string) (string, error) {
	args := m.Called(ctx, deviceID)
	return args.String(0), args.Error(1)
}

func (m *MockVendor) SetExpiration(ctx context.Context, deviceID, code string, expiresAt time.Time) error {
	args := m.Called(ctx, deviceID, code, expiresAt)
	return args.Error(0)
}

func newTestMetrics(t *testing.T) *metrics.Metrics {
	t.Helper()
	return metrics.NewMetrics(prometheus.NewRegistry())
}

func strPtr(s string) *string { return &s }
