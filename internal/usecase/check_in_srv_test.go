package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/i18n"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type checkInFixture struct {
	store   *memStore
	vendor  *MockVendor
	svc     CheckInService
	booking *entity.Booking
}

func newCheckInFixture(t *testing.T) *checkInFixture {
	t.Helper()
	store := newMemStore()
	vendor := new(MockVendor)
	log := zaptest.NewLogger(t)
	locks := NewLockService(store.repository(), vendor, log)

	property := store.addProperty(&entity.Property{NameEn: "Azha Villa", NameAr: "فيلا أزها", LockDeviceID: strPtr("dev-1")})
	booking := store.addBooking(&entity.Booking{
		PropertyID:       property.ID,
		GuestName:        "Mona",
		CheckInDate:      time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOutDate:     time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
		BookingReference: "HMCHECK",
		Status:           entity.BookingStatusConfirmed,
		DepositAmount:    decimal.NewFromInt(500),
	})

	return &checkInFixture{
		store:   store,
		vendor:  vendor,
		svc:     NewCheckInService(store.repository(), locks, log),
		booking: booking,
	}
}

func TestCheckIn_HappyPath(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()
	expires := time.Date(2025, 7, 5, 2, 0, 0, 0, time.UTC)
	f.vendor.On("GenerateCode", mock.Anything, "dev-1").Return("654321", nil).Once()
	f.vendor.On("SetExpiration", mock.Anything, "dev-1", "654321", expires).Return(nil).Once()

	resp, err := f.svc.Start(ctx, "s1", " HMCHECK ")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Step)
	assert.True(t, resp.CanGoNext)
	assert.False(t, resp.CanGoBack)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, "Mona", resp.Booking.GuestName)
	assert.Equal(t, "Azha Villa", resp.Booking.PropertyName)
	require.Len(t, resp.Steps, 3)
	assert.Equal(t, "Booking Lookup", resp.Steps[0].Title)

	resp, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Step)
	assert.False(t, resp.CanGoNext)

	resp, err = f.svc.AcceptContract(ctx, "s1", true)
	require.NoError(t, err)
	assert.True(t, resp.ContractAccepted)
	assert.True(t, resp.CanGoNext)

	resp, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Step)

	_, err = f.svc.Complete(ctx, "s1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	resp, err = f.svc.PayDeposit(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, resp.DepositPaid)

	resp, err = f.svc.Complete(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	assert.Equal(t, "654321", resp.PIN)
	require.NotNil(t, resp.PINExpiresAt)
	assert.Equal(t, expires, *resp.PINExpiresAt)
	assert.False(t, resp.CanGoBack)
	for _, step := range resp.Steps {
		assert.True(t, step.Done)
	}

	again, err := f.svc.Complete(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "654321", again.PIN)
	f.vendor.AssertNumberOfCalls(t, "GenerateCode", 1)

	stored := f.store.bookings[f.booking.ID]
	assert.Equal(t, "654321", *stored.SmartLockPIN)
	assert.True(t, stored.ContractSigned)
	assert.True(t, stored.DepositPaid)
	assert.Equal(t, entity.BookingStatusCheckedIn, stored.Status)
}

func TestCheckIn_Gates(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, "unknown")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.svc.Start(ctx, "s1", "MISSING")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = f.svc.Start(ctx, "", "HMCHECK")
	assert.True(t, errors.Is(err, ErrValidation))

	_, err = f.svc.Start(ctx, "s1", "HMCHECK")
	require.NoError(t, err)

	_, err = f.svc.Back(ctx, "s1")
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = f.svc.AcceptContract(ctx, "s1", true)
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = f.svc.PayDeposit(ctx, "s1")
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = f.svc.Next(ctx, "s1")
	require.NoError(t, err)

	_, err = f.svc.Next(ctx, "s1")
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = f.svc.AcceptContract(ctx, "s1", false)
	assert.True(t, errors.Is(err, ErrValidation))

	resp, err := f.svc.Back(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Step)
}

func TestCheckIn_CancelledBooking(t *testing.T) {
	f := newCheckInFixture(t)
	f.store.bookings[f.booking.ID].Status = entity.BookingStatusCancelled

	_, err := f.svc.Start(context.Background(), "s1", "HMCHECK")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestCheckIn_LocalizedView(t *testing.T) {
	f := newCheckInFixture(t)
	ctx := i18n.WithLanguage(context.Background(), i18n.Arabic)

	resp, err := f.svc.Start(ctx, "s1", "HMCHECK")
	require.NoError(t, err)

	assert.Equal(t, "فيلا أزها", resp.Booking.PropertyName)
	assert.Equal(t, "١ يوليو ٢٠٢٥", resp.Booking.CheckInDate)
	assert.Equal(t, "٥٠٠ US$", resp.Booking.Deposit)
	assert.Equal(t, "البحث عن الحجز", resp.Steps[0].Title)
	assert.Equal(t, "توقيع العقد", resp.Steps[1].Title)
}

func TestCheckInFlow(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	flow := NewCheckInFlow(&entity.CheckInSession{}, func() time.Time { return now })

	assert.Equal(t, entity.StepLookup, flow.Session().Step)
	assert.False(t, flow.CanGoNext())
	assert.Error(t, flow.Next())

	bookingID := uuid.New()
	flow.Session().BookingID = &bookingID
	require.NoError(t, flow.Next())
	require.NoError(t, flow.AcceptContract(true))
	require.NoError(t, flow.Next())
	assert.Error(t, flow.Next())
	assert.Error(t, flow.ReadyToComplete())
	require.NoError(t, flow.PayDeposit())
	require.NoError(t, flow.ReadyToComplete())

	flow.Complete("123456", now)
	assert.True(t, flow.Session().Completed)
	assert.False(t, flow.CanGoBack())
	assert.Equal(t, now, flow.Session().UpdatedAt)
}
