package usecase

import (
	"context"
	"fmt"
	"time"

	"azhaboost/internal/data/repository"
	"azhaboost/internal/dto/response"
	"azhaboost/internal/integration/lock"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const pinGrace = 2 * time.Hour

type LockService interface {
	// GeneratePIN issues a new code and overwrites any stored one; prior codes are not revoked.
	GeneratePIN(ctx context.Context, bookingID string) (*response.PINResponse, error)
}

type lockService struct {
	repo   *repository.Repository
	vendor lock.Vendor
	log    *zap.Logger
}

func NewLockService(repo *repository.Repository, vendor lock.Vendor, log *zap.Logger) LockService {
	return &lockService{
		repo:   repo,
		vendor: vendor,
		log:    log.With(zap.String("service", "lock")),
	}
}

func (s *lockService) GeneratePIN(ctx context.Context, bookingID string) (*response.PINResponse, error) {
	if bookingID == "" {
		return nil, newError(ErrValidation, "Booking ID is required")
	}
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, newError(ErrValidation, "invalid booking ID format")
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "Booking not found")
	}
	if !booking.Property.HasLockDevice() {
		return nil, newError(ErrConfiguration, "Smart lock device not configured for this property")
	}
	deviceID := *booking.Property.LockDeviceID

	pin, err := s.vendor.GenerateCode(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("generate lock code: %w", err)
	}

	expiresAt := PINExpiry(booking.CheckOutDate)
	if err := s.vendor.SetExpiration(ctx, deviceID, pin, expiresAt); err != nil {
		return nil, fmt.Errorf("set lock code expiration: %w", err)
	}

	if err := s.repo.Booking.UpdateLockPIN(ctx, booking.ID, pin, expiresAt); err != nil {
		return nil, fmt.Errorf("store lock code: %w", err)
	}

	s.log.Info("Smart lock PIN generated",
		zap.String("booking_id", booking.ID.String()),
		zap.String("device_id", deviceID),
		zap.Time("expires_at", expiresAt),
	)
	return &response.PINResponse{PIN: pin, ExpiresAt: expiresAt}, nil
}

// PINExpiry is two hours after the checkout date at 00:00 UTC.
func PINExpiry(checkout time.Time) time.Time {
	day := time.Date(checkout.Year(), checkout.Month(), checkout.Day(), 0, 0, 0, 0, time.UTC)
	return day.Add(pinGrace)
}
