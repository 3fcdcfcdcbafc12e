package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusCheckedIn  BookingStatus = "checked_in"
	BookingStatusCheckedOut BookingStatus = "checked_out"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking dates are calendar dates stored at 00:00 UTC.
type Booking struct {
	Base
	PropertyID       uuid.UUID       `db:"property_id"`
	GuestName        string          `db:"guest_name"`
	GuestEmail       string          `db:"guest_email"`
	GuestPhone       *string         `db:"guest_phone"`
	CheckInDate      time.Time       `db:"check_in_date"`
	CheckOutDate     time.Time       `db:"check_out_date"`
	BookingReference string          `db:"booking_reference"`
	Status           BookingStatus   `db:"status"`
	SmartLockPIN     *string         `db:"smart_lock_pin"`
	PINExpiresAt     *time.Time      `db:"pin_expires_at"`
	DepositAmount    decimal.Decimal `db:"deposit_amount"`
	DepositPaid      bool            `db:"deposit_paid"`
	ContractSigned   bool            `db:"contract_signed"`

	// Loaded by joins, not a column.
	Property *Property `db:"-"`
}
