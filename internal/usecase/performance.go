package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/internal/dto/response"
	"azhaboost/pkg/i18n"

	"github.com/shopspring/decimal"
)

const (
	occupancyWindowDays = 7

	defaultPricingDays = 30
	maxPricingDays     = 90
)

// performance accumulates occupancy and ADR over pricing samples.
// Revenue is estimated per property-night as ADR x occupancy.
type performance struct {
	revenue  decimal.Decimal
	adrSum   decimal.Decimal
	adrCount int64
	occSum   float64
	occCount int
	samples  int
}

func (p *performance) add(d *entity.PricingData) {
	p.samples++
	if d.OccupancyRate != nil {
		p.occSum += *d.OccupancyRate
		p.occCount++
	}
	if d.ADR != nil {
		p.adrSum = p.adrSum.Add(*d.ADR)
		p.adrCount++
		if d.OccupancyRate != nil {
			p.revenue = p.revenue.Add(d.ADR.Mul(decimal.NewFromFloat(*d.OccupancyRate)).Div(decimal.NewFromInt(100)))
		}
	}
}

func (p *performance) occupancy() float64 {
	if p.occCount == 0 {
		return 0
	}
	return math.Round(p.occSum/float64(p.occCount)*10) / 10
}

func (p *performance) averageDailyRate() decimal.Decimal {
	if p.adrCount == 0 {
		return decimal.Zero
	}
	return p.adrSum.Div(decimal.NewFromInt(p.adrCount)).Round(2)
}

func (p *performance) kpis(lang i18n.Language) []response.KPI {
	revenue := p.revenue.Round(0)
	adr := p.averageDailyRate()
	occupancy := p.occupancy()
	return []response.KPI{
		{Key: "totalRevenue", Label: i18n.T("totalRevenue", lang), Value: revenue.IntPart(), Display: i18n.FormatCurrency(revenue, lang)},
		{Key: "occupancyRate", Label: i18n.T("occupancyRate", lang), Value: int64(math.Round(occupancy)), Display: i18n.FormatPercent(occupancy, lang)},
		{Key: "averageDailyRate", Label: i18n.T("averageDailyRate", lang), Value: adr.Round(0).IntPart(), Display: i18n.FormatCurrency(adr, lang)},
	}
}

// dailyPerformance buckets samples by UTC date and returns one point per day
// of [from, from+days), empty days included, plus the totals over the window.
func dailyPerformance(samples []*entity.PricingData, from time.Time, days int, lang i18n.Language) ([]response.OccupancyPoint, *performance) {
	byDate := make(map[string]*performance, days)
	total := &performance{}
	for _, d := range samples {
		key := d.Date.UTC().Format(time.DateOnly)
		day, ok := byDate[key]
		if !ok {
			day = &performance{}
			byDate[key] = day
		}
		day.add(d)
		total.add(d)
	}

	points := make([]response.OccupancyPoint, 0, days)
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		day, ok := byDate[date.Format(time.DateOnly)]
		if !ok {
			day = &performance{}
		}
		adr := day.averageDailyRate()
		points = append(points, response.OccupancyPoint{
			Date:       date.Format(time.DateOnly),
			Label:      i18n.FormatDate(date, lang),
			Occupancy:  day.occupancy(),
			ADR:        adr,
			ADRDisplay: i18n.FormatCurrency(adr, lang),
			Samples:    day.samples,
		})
	}
	return points, total
}

// pricingWindow loads the samples of every given property for [from, to].
func (s *dashboardService) pricingWindow(ctx context.Context, properties []*entity.Property, from, to time.Time) ([]*entity.PricingData, error) {
	var samples []*entity.PricingData
	for _, p := range properties {
		rows, err := s.repo.PricingData.FindByPropertyRange(ctx, p.ID, from, to)
		if err != nil {
			return nil, fmt.Errorf("load pricing for property %s: %w", p.ID.String(), err)
		}
		samples = append(samples, rows...)
	}
	return samples, nil
}
