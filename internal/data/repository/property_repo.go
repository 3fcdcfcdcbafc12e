package repository

import (
	"context"
	"errors"
	"fmt"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	FindAll(ctx context.Context) ([]*entity.Property, error)

	// Business queries
	FindWithListing(ctx context.Context) ([]*entity.Property, error)
	FindWithCalendar(ctx context.Context) ([]*entity.Property, error)
}

type propertyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPropertyRepository(db database.PgxIface, log *zap.Logger) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: log.With(zap.String("repository", "property")),
	}
}

const propertyColumns = `id, owner_id, name_en, name_ar, address, city, airbnb_listing_id, tuya_device_id,
		calendar_url, current_rank, target_rank, created_at, updated_at`

func scanProperty(row pgx.Row) (*entity.Property, error) {
	var p entity.Property
	err := row.Scan(
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
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`

	property, err := scanProperty(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find property by ID",
			zap.Error(err),
			zap.String("property_id", id.String()),
		)
		return nil, fmt.Errorf("find property by ID %s: %w", id.String(), err)
	}

	return property, nil
}

func (r *propertyRepository) FindAll(ctx context.Context) ([]*entity.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties ORDER BY created_at DESC`
	return r.list(ctx, "all", query)
}

// FindWithListing returns properties that have a marketplace listing id.
func (r *propertyRepository) FindWithListing(ctx context.Context) ([]*entity.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE airbnb_listing_id IS NOT NULL AND airbnb_listing_id <> ''
		ORDER BY created_at
	`
	return r.list(ctx, "with_listing", query)
}

// FindWithCalendar returns properties that have a calendar feed url.
func (r *propertyRepository) FindWithCalendar(ctx context.Context) ([]*entity.Property, error) {
	query := `
		SELECT ` + propertyColumns + `
		FROM properties
		WHERE calendar_url IS NOT NULL AND calendar_url <> ''
		ORDER BY created_at
	`
	return r.list(ctx, "with_calendar", query)
}

func (r *propertyRepository) list(ctx context.Context, filter, query string, args ...any) ([]*entity.Property, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list properties",
			zap.Error(err),
			zap.String("filter", filter),
		)
		return nil, fmt.Errorf("list properties (%s): %w", filter, err)
	}
	defer rows.Close()

	var properties []*entity.Property
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			r.log.Error("Failed to scan property row", zap.Error(err))
			return nil, fmt.Errorf("scan property row: %w", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate property rows: %w", err)
	}

	return properties, nil
}
