package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BookingRepository interface {
	CreateIfAbsent(ctx context.Context, booking *entity.Booking) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByReference(ctx context.Context, reference string) (*entity.Booking, error)
	Update(ctx context.Context, booking *entity.Booking) error

	// Business queries
	FindUpcoming(ctx context.Context, from time.Time, limit int) ([]*entity.Booking, error)
	CountUpcoming(ctx context.Context, from time.Time) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error
	UpdateLockPIN(ctx context.Context, bookingID uuid.UUID, pin string, expiresAt time.Time) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `b.id, b.property_id, b.guest_name, b.guest_email, b.guest_phone, b.check_in_date,
		b.check_out_date, b.booking_reference, b.status, b.smart_lock_pin, b.pin_expires_at,
		b.deposit_amount, b.deposit_paid, b.contract_signed, b.created_at, b.updated_at`

const bookingPropertyColumns = `p.id, p.owner_id, p.name_en, p.name_ar, p.address, p.city, p.airbnb_listing_id,
		p.tuya_device_id, p.calendar_url, p.current_rank, p.target_rank, p.created_at, p.updated_at`

func bookingDest(b *entity.Booking) []any {
	return []any{
		&b.ID,
		&b.PropertyID,
		&b.GuestName,
		&b.GuestEmail,
		&b.GuestPhone,
		&b.CheckInDate,
		&b.CheckOutDate,
		&b.BookingReference,
		&b.Status,
		&b.SmartLockPIN,
		&b.PINExpiresAt,
		&b.DepositAmount,
		&b.DepositPaid,
		&b.ContractSigned,
		&b.CreatedAt,
		&b.UpdatedAt,
	}
}

// scanBookingWithProperty scans bookingColumns followed by bookingPropertyColumns.
func scanBookingWithProperty(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	var p entity.Property
	dest := append(bookingDest(&b),
		&p.ID,
		&p.OwnerID,
		&p.NameEn,
		&p.NameAr,
		&p.Address,
		&p.City,
		&p.AirbnbListingID,
		&p.LockDeviceID,
		&p.CalendarURL,
		&p.CurrentRank,
		&p.TargetRank,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	b.Property = &p
	return &b, nil
}

// CreateIfAbsent inserts the booking unless its reference already exists.
// It reports whether a row was written.
func (r *bookingRepository) CreateIfAbsent(ctx context.Context, booking *entity.Booking) (bool, error) {
	query := `
		INSERT INTO bookings (id, property_id, guest_name, guest_email, guest_phone, check_in_date, check_out_date,
		    booking_reference, status, deposit_amount, deposit_paid, contract_signed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (booking_reference) DO NOTHING
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, r.insertArgs(booking)...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("booking_reference", booking.BookingReference),
			zap.String("property_id", booking.PropertyID.String()),
		)
		return false, fmt.Errorf("insert booking %s: %w", booking.BookingReference, err)
	}

	return true, nil
}

func (r *bookingRepository) insertArgs(b *entity.Booking) []any {
	return []any{
		b.ID,
		b.PropertyID,
		b.GuestName,
		b.GuestEmail,
		b.GuestPhone,
		b.CheckInDate,
		b.CheckOutDate,
		b.BookingReference,
		b.Status,
		b.DepositAmount,
		b.DepositPaid,
		b.ContractSigned,
		b.CreatedAt,
		b.UpdatedAt,
	}
}

// FindByID loads the booking together with its property.
func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `, ` + bookingPropertyColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1
	`

	booking, err := scanBookingWithProperty(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByReference(ctx context.Context, reference string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `, ` + bookingPropertyColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.booking_reference = $1
	`

	booking, err := scanBookingWithProperty(r.db.QueryRow(ctx, query, reference))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("booking_reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET guest_name = $2, guest_email = $3, guest_phone = $4, check_in_date = $5, check_out_date = $6,
		    status = $7, deposit_amount = $8, deposit_paid = $9, contract_signed = $10, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.GuestName,
		booking.GuestEmail,
		booking.GuestPhone,
		booking.CheckInDate,
		booking.CheckOutDate,
		booking.Status,
		booking.DepositAmount,
		booking.DepositPaid,
		booking.ContractSigned,
	)
	if err != nil {
		r.log.Error("Failed to update booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

// FindUpcoming returns bookings checking in on or after from, soonest first.
func (r *bookingRepository) FindUpcoming(ctx context.Context, from time.Time, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `, ` + bookingPropertyColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.check_in_date >= $1
		ORDER BY b.check_in_date ASC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, from, limit)
	if err != nil {
		r.log.Error("Failed to find upcoming bookings",
			zap.Error(err),
			zap.Time("from", from),
			zap.Int("limit", limit),
		)
		return nil, fmt.Errorf("find upcoming bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBookingWithProperty(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}

	return bookings, nil
}

func (r *bookingRepository) CountUpcoming(ctx context.Context, from time.Time) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE check_in_date >= $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, from).Scan(&count); err != nil {
		r.log.Error("Failed to count upcoming bookings", zap.Error(err))
		return 0, fmt.Errorf("count upcoming bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking status %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// UpdateLockPIN overwrites any previous PIN and expiry.
func (r *bookingRepository) UpdateLockPIN(ctx context.Context, bookingID uuid.UUID, pin string, expiresAt time.Time) error {
	query := `UPDATE bookings SET smart_lock_pin = $2, pin_expires_at = $3, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, pin, expiresAt)
	if err != nil {
		r.log.Error("Failed to store smart lock PIN",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return fmt.Errorf("update booking PIN %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}
