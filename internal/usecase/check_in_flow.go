package usecase

import (
	"time"

	"azhaboost/internal/data/entity"
)

var checkInStepKeys = map[entity.CheckInStep]string{
	entity.StepLookup:   "bookingLookup",
	entity.StepContract: "contractSigning",
	entity.StepPayment:  "pinAndPayment",
}

// CheckInFlow enforces the three step sequence on a session. Moves go one
// step at a time; lookup, contract and payment each gate the way forward.
type CheckInFlow struct {
	s   *entity.CheckInSession
	now func() time.Time
}

func NewCheckInFlow(s *entity.CheckInSession, now func() time.Time) *CheckInFlow {
	if !s.Step.Valid() {
		s.Step = entity.StepLookup
	}
	return &CheckInFlow{s: s, now: now}
}

func (f *CheckInFlow) Session() *entity.CheckInSession { return f.s }

func (f *CheckInFlow) CanGoBack() bool {
	return f.s.Step > entity.StepLookup && !f.s.Completed
}

func (f *CheckInFlow) CanGoNext() bool {
	switch f.s.Step {
	case entity.StepLookup:
		return f.s.BookingID != nil
	case entity.StepContract:
		return f.s.ContractAccepted
	default:
		return false
	}
}

func (f *CheckInFlow) Next() error {
	if f.s.Step == entity.StepPayment {
		return newError(ErrInvalidTransition, "Already at the last step")
	}
	if !f.CanGoNext() {
		if f.s.Step == entity.StepLookup {
			return newError(ErrInvalidTransition, "Look up a booking before continuing")
		}
		return newError(ErrInvalidTransition, "The contract must be accepted before continuing")
	}
	f.s.Step++
	f.touch()
	return nil
}

func (f *CheckInFlow) Back() error {
	if !f.CanGoBack() {
		return newError(ErrInvalidTransition, "Cannot go back from this step")
	}
	f.s.Step--
	f.touch()
	return nil
}

// AcceptContract records the guest's answer. Only an explicit yes counts.
func (f *CheckInFlow) AcceptContract(accepted bool) error {
	if f.s.Step != entity.StepContract {
		return newError(ErrInvalidTransition, "Contract can only be signed at the contract step")
	}
	if !accepted {
		return newError(ErrValidation, "The contract must be accepted")
	}
	f.s.ContractAccepted = true
	f.touch()
	return nil
}

func (f *CheckInFlow) PayDeposit() error {
	if f.s.Step != entity.StepPayment {
		return newError(ErrInvalidTransition, "Deposit can only be paid at the payment step")
	}
	f.s.DepositPaid = true
	f.touch()
	return nil
}

// ReadyToComplete reports whether a PIN may be issued.
func (f *CheckInFlow) ReadyToComplete() error {
	if f.s.Step != entity.StepPayment {
		return newError(ErrInvalidTransition, "Check-in can only be completed at the payment step")
	}
	if !f.s.DepositPaid {
		return newError(ErrInvalidTransition, "The deposit must be paid before the PIN is issued")
	}
	return nil
}

func (f *CheckInFlow) Complete(pin string, expiresAt time.Time) {
	f.s.PIN = pin
	f.s.PINExpiresAt = &expiresAt
	f.s.Completed = true
	f.touch()
}

func (f *CheckInFlow) touch() {
	f.s.UpdatedAt = f.now()
}
