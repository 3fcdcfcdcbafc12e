package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PricingSource string

const (
	PricingSourcePriceLabs PricingSource = "pricelabs"
	PricingSourceAirbnb    PricingSource = "airbnb"
	PricingSourceManual    PricingSource = "manual"
)

type MarketDemand string

const (
	DemandLow    MarketDemand = "low"
	DemandMedium MarketDemand = "medium"
	DemandHigh   MarketDemand = "high"
)

// PricingData is one sample per property per day.
type PricingData struct {
	BaseSimple
	PropertyID         uuid.UUID        `db:"property_id"`
	Date               time.Time        `db:"date"`
	SuggestedPrice     decimal.Decimal  `db:"suggested_price"`
	CompetitorAvgPrice *decimal.Decimal `db:"competitor_avg_price"`
	OccupancyRate      *float64         `db:"occupancy_rate"`
	ADR                *decimal.Decimal `db:"adr"`
	MarketDemand       *MarketDemand    `db:"market_demand"`
	Source             PricingSource    `db:"source"`
}
