package repository

import (
	"context"
	"fmt"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PricingDataRepository interface {
	// Upsert writes the sample for (property, date), replacing an existing one.
	Upsert(ctx context.Context, data *entity.PricingData) error
	FindByPropertyRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]*entity.PricingData, error)
}

type pricingDataRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPricingDataRepository(db database.PgxIface, log *zap.Logger) PricingDataRepository {
	return &pricingDataRepository{
		db:  db,
		log: log.With(zap.String("repository", "pricing_data")),
	}
}

func (r *pricingDataRepository) Upsert(ctx context.Context, data *entity.PricingData) error {
	query := `
		INSERT INTO pricing_data (id, property_id, date, suggested_price, competitor_avg_price, occupancy_rate,
		    adr, market_demand, source, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (property_id, date) DO UPDATE
		SET suggested_price = EXCLUDED.suggested_price,
		    competitor_avg_price = EXCLUDED.competitor_avg_price,
		    occupancy_rate = EXCLUDED.occupancy_rate,
		    adr = EXCLUDED.adr,
		    market_demand = EXCLUDED.market_demand,
		    source = EXCLUDED.source
	`

	_, err := r.db.Exec(ctx, query,
		data.ID,
		data.PropertyID,
		data.Date,
		data.SuggestedPrice,
		data.CompetitorAvgPrice,
		data.OccupancyRate,
		data.ADR,
		data.MarketDemand,
		data.Source,
		data.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert pricing data",
			zap.Error(err),
			zap.String("property_id", data.PropertyID.String()),
			zap.Time("date", data.Date),
		)
		return fmt.Errorf("upsert pricing data for property %s: %w", data.PropertyID.String(), err)
	}

	return nil
}

func (r *pricingDataRepository) FindByPropertyRange(ctx context.Context, propertyID uuid.UUID, from, to time.Time) ([]*entity.PricingData, error) {
	query := `
		SELECT id, property_id, date, suggested_price, competitor_avg_price, occupancy_rate, adr,
		       market_demand, source, created_at
		FROM pricing_data
		WHERE property_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date ASC
	`

	rows, err := r.db.Query(ctx, query, propertyID, from, to)
	if err != nil {
		r.log.Error("Failed to find pricing data",
			zap.Error(err),
			zap.String("property_id", propertyID.String()),
		)
		return nil, fmt.Errorf("find pricing data for property %s: %w", propertyID.String(), err)
	}
	defer rows.Close()

	var samples []*entity.PricingData
	for rows.Next() {
		var d entity.PricingData
		err := rows.Scan(
			&d.ID,
			&d.PropertyID,
			&d.Date,
			&d.SuggestedPrice,
			&d.CompetitorAvgPrice,
			&d.OccupancyRate,
			&d.ADR,
			&d.MarketDemand,
			&d.Source,
			&d.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan pricing data row", zap.Error(err))
			return nil, fmt.Errorf("scan pricing data row: %w", err)
		}
		samples = append(samples, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pricing data rows: %w", err)
	}

	return samples, nil
}
