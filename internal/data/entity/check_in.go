package entity

import (
	"time"

	"github.com/google/uuid"
)

type CheckInStep int

const (
	StepLookup CheckInStep = iota + 1
	StepContract
	StepPayment
)

func (s CheckInStep) Valid() bool {
	return s >= StepLookup && s <= StepPayment
}

// CheckInSession is the per-browser-session state of the guest check-in flow.
// It is kept in Redis, not in PostgreSQL.
type CheckInSession struct {
	SessionID        string      `json:"session_id"`
	Step             CheckInStep `json:"step"`
	BookingID        *uuid.UUID  `json:"booking_id,omitempty"`
	BookingReference string      `json:"booking_reference,omitempty"`
	ContractAccepted bool        `json:"contract_accepted"`
	DepositPaid      bool        `json:"deposit_paid"`
	PIN              string      `json:"pin,omitempty"`
	PINExpiresAt     *time.Time  `json:"pin_expires_at,omitempty"`
	Completed        bool        `json:"completed"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
