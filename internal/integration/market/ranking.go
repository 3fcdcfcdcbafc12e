// Package market supplies competitor rankings and price recommendations for listing optimization.
package market

import (
	"context"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TopN is the number of competitors kept in a snapshot.
const TopN = 5

type RankingSource interface {
	// Competitors returns up to TopN competing listings, best ranked first.
	Competitors(ctx context.Context, property *entity.Property) ([]entity.Competitor, error)
}

// NewRankingSource picks the headless browser scraper when enabled, the fixture otherwise.
func NewRankingSource(cfg utils.MarketConfig, log *zap.Logger) RankingSource {
	if cfg.ScraperEnabled {
		return NewChromeRanking(cfg.SearchURL, cfg.ScrapeIntervalMs, log)
	}
	return FixtureRanking{}
}

// FixtureRanking returns a fixed Azha market snapshot.
type FixtureRanking struct{}

func (FixtureRanking) Competitors(context.Context, *entity.Property) ([]entity.Competitor, error) {
	return []entity.Competitor{
		{Rank: 1, Title: "Luxury Azha Villa with Private Pool", Price: decimal.NewFromInt(250)},
		{Rank: 2, Title: "Beachfront Azha Retreat - Premium Location", Price: decimal.NewFromInt(230)},
		{Rank: 3, Title: "Modern Azha Villa - Perfect for Families", Price: decimal.NewFromInt(210)},
		{Rank: 4, Title: "Stunning Azha Property with Sea Views", Price: decimal.NewFromInt(195)},
		{Rank: 5, Title: "Elegant Azha Villa - Walking Distance to Beach", Price: decimal.NewFromInt(180)},
	}, nil
}
