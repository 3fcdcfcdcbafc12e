package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/internal/data/repository"
	"azhaboost/internal/dto/response"
	"azhaboost/pkg/i18n"

	"go.uber.org/zap"
)

type CheckInService interface {
	Start(ctx context.Context, sessionID, reference string) (*response.CheckInResponse, error)
	Get(ctx context.Context, sessionID string) (*response.CheckInResponse, error)
	AcceptContract(ctx context.Context, sessionID string, accepted bool) (*response.CheckInResponse, error)
	Next(ctx context.Context, sessionID string) (*response.CheckInResponse, error)
	Back(ctx context.Context, sessionID string) (*response.CheckInResponse, error)
	PayDeposit(ctx context.Context, sessionID string) (*response.CheckInResponse, error)
	Complete(ctx context.Context, sessionID string) (*response.CheckInResponse, error)
}

type checkInService struct {
	repo  *repository.Repository
	locks LockService
	now   func() time.Time
	log   *zap.Logger
}

func NewCheckInService(repo *repository.Repository, locks LockService, log *zap.Logger) CheckInService {
	return &checkInService{
		repo:  repo,
		locks: locks,
		now:   time.Now,
		log:   log.With(zap.String("service", "check_in")),
	}
}

// Start resolves the booking and begins a fresh flow for the session,
// discarding any earlier progress.
func (s *checkInService) Start(ctx context.Context, sessionID, reference string) (*response.CheckInResponse, error) {
	if sessionID == "" {
		return nil, newError(ErrValidation, "session is required")
	}
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, newError(ErrValidation, "Booking reference is required")
	}

	booking, err := s.repo.Booking.FindByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("look up booking: %w", err)
	}
	if booking == nil {
		return nil, newError(ErrNotFound, "Booking not found")
	}
	if booking.Status == entity.BookingStatusCancelled {
		return nil, newError(ErrValidation, "Booking is cancelled")
	}

	bookingID := booking.ID
	session := &entity.CheckInSession{
		SessionID:        sessionID,
		Step:             entity.StepLookup,
		BookingID:        &bookingID,
		BookingReference: booking.BookingReference,
		UpdatedAt:        s.now(),
	}
	if err := s.repo.CheckIn.Save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("Check-in started",
		zap.String("session_id", sessionID),
		zap.String("booking_id", booking.ID.String()),
	)
	return s.view(ctx, NewCheckInFlow(session, s.now), booking), nil
}

func (s *checkInService) Get(ctx context.Context, sessionID string) (*response.CheckInResponse, error) {
	flow, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, flow, nil), nil
}

func (s *checkInService) AcceptContract(ctx context.Context, sessionID string, accepted bool) (*response.CheckInResponse, error) {
	return s.apply(ctx, sessionID, func(f *CheckInFlow) error { return f.AcceptContract(accepted) })
}

func (s *checkInService) Next(ctx context.Context, sessionID string) (*response.CheckInResponse, error) {
	return s.apply(ctx, sessionID, (*CheckInFlow).Next)
}

func (s *checkInService) Back(ctx context.Context, sessionID string) (*response.CheckInResponse, error) {
	return s.apply(ctx, sessionID, (*CheckInFlow).Back)
}

func (s *checkInService) PayDeposit(ctx context.Context, sessionID string) (*response.CheckInResponse, error) {
	return s.apply(ctx, sessionID, (*CheckInFlow).PayDeposit)
}

// Complete issues the PIN through the lock service. Repeating it returns the issued PIN.
func (s *checkInService) Complete(ctx context.Context, sessionID string) (*response.CheckInResponse, error) {
	flow, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	session := flow.Session()
	if session.Completed {
		return s.view(ctx, flow, nil), nil
	}
	if err := flow.ReadyToComplete(); err != nil {
		return nil, err
	}

	pin, err := s.locks.GeneratePIN(ctx, session.BookingID.String())
	if err != nil {
		return nil, err
	}
	if err := s.recordCheckIn(ctx, session); err != nil {
		return nil, err
	}
	flow.Complete(pin.PIN, pin.ExpiresAt)

	if err := s.repo.CheckIn.Save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Info("Check-in completed",
		zap.String("session_id", sessionID),
		zap.String("booking_id", session.BookingID.String()),
	)
	return s.view(ctx, flow, nil), nil
}

// recordCheckIn stores the signed contract and paid deposit on the booking and
// marks a confirmed booking as checked in.
func (s *checkInService) recordCheckIn(ctx context.Context, session *entity.CheckInSession) error {
	booking, err := s.repo.Booking.FindByID(ctx, *session.BookingID)
	if err != nil {
		return fmt.Errorf("load booking: %w", err)
	}
	if booking == nil {
		return newError(ErrNotFound, "Booking not found")
	}

	booking.ContractSigned = session.ContractAccepted
	booking.DepositPaid = session.DepositPaid
	if booking.Status == entity.BookingStatusConfirmed {
		booking.Status = entity.BookingStatusCheckedIn
	}
	if err := s.repo.Booking.Update(ctx, booking); err != nil {
		return fmt.Errorf("record check-in: %w", err)
	}
	return nil
}

func (s *checkInService) apply(ctx context.Context, sessionID string, step func(*CheckInFlow) error) (*response.CheckInResponse, error) {
	flow, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := step(flow); err != nil {
		return nil, err
	}
	if err := s.repo.CheckIn.Save(ctx, flow.Session()); err != nil {
		return nil, err
	}
	return s.view(ctx, flow, nil), nil
}

func (s *checkInService) load(ctx context.Context, sessionID string) (*CheckInFlow, error) {
	if sessionID == "" {
		return nil, newError(ErrValidation, "session is required")
	}
	session, err := s.repo.CheckIn.Find(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil || session.BookingID == nil {
		return nil, newError(ErrNotFound, "Check-in not found for this session")
	}
	return NewCheckInFlow(session, s.now), nil
}

// view renders the flow in the request language. booking is loaded when nil.
func (s *checkInService) view(ctx context.Context, flow *CheckInFlow, booking *entity.Booking) *response.CheckInResponse {
	lang := i18n.FromContext(ctx)
	session := flow.Session()

	resp := &response.CheckInResponse{
		Step:             int(session.Step),
		ContractAccepted: session.ContractAccepted,
		DepositPaid:      session.DepositPaid,
		PIN:              session.PIN,
		PINExpiresAt:     session.PINExpiresAt,
		Completed:        session.Completed,
		CanGoBack:        flow.CanGoBack(),
		CanGoNext:        flow.CanGoNext(),
	}
	for step := entity.StepLookup; step <= entity.StepPayment; step++ {
		resp.Steps = append(resp.Steps, response.CheckInStepInfo{
			Step:   int(step),
			Key:    checkInStepKeys[step],
			Title:  i18n.T(checkInStepKeys[step], lang),
			Active: step == session.Step,
			Done:   step < session.Step || session.Completed,
		})
	}

	if booking == nil && session.BookingID != nil {
		var err error
		booking, err = s.repo.Booking.FindByID(ctx, *session.BookingID)
		if err != nil {
			s.log.Warn("Failed to load booking for check-in view", zap.Error(err))
		}
	}
	if booking != nil {
		card := &response.CheckInBooking{
			BookingReference: booking.BookingReference,
			GuestName:        booking.GuestName,
			CheckInDate:      i18n.FormatDate(booking.CheckInDate, lang),
			CheckOutDate:     i18n.FormatDate(booking.CheckOutDate, lang),
			Deposit:          i18n.FormatCurrency(booking.DepositAmount, lang),
		}
		if booking.Property != nil {
			card.PropertyName = i18n.LocalizedField(booking.Property, "name", lang)
		}
		resp.Booking = card
	}

	return resp
}
