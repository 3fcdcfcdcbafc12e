package market

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/utils"

	"github.com/shopspring/decimal"
)

type PricingSource interface {
	RecommendedPrice(ctx context.Context, property *entity.Property) (decimal.Decimal, error)
}

func NewPricingSource(cfg utils.MarketConfig) PricingSource {
	return NewRandomPricing(cfg.PricingMin, cfg.PricingSpread, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// RandomPricing recommends a whole-dollar price in [min, min+spread).
type RandomPricing struct {
	min    int
	spread int

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomPricing(min, spread int, rnd *rand.Rand) *RandomPricing {
	if spread <= 0 {
		spread = 1
	}
	return &RandomPricing{min: min, spread: spread, rnd: rnd}
}

func (p *RandomPricing) RecommendedPrice(context.Context, *entity.Property) (decimal.Decimal, error) {
	p.mu.Lock()
	n := p.rnd.Intn(p.spread)
	p.mu.Unlock()
	return decimal.NewFromInt(int64(p.min + n)), nil
}

type FixedPricing struct {
	Price decimal.Decimal
}

func (f FixedPricing) RecommendedPrice(context.Context, *entity.Property) (decimal.Decimal, error) {
	return f.Price, nil
}
