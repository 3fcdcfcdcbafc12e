package market

import (
	"context"
	"math/rand"
	"testing"

	"azhaboost/internal/data/entity"
	"azhaboost/pkg/utils"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestFixtureRanking(t *testing.T) {
	comps, err := FixtureRanking{}.Competitors(context.Background(), &entity.Property{})
	require.NoError(t, err)
	require.Len(t, comps, TopN)

	assert.Equal(t, "Luxury Azha Villa with Private Pool", comps[0].Title)
	assert.True(t, comps[0].Price.Equal(decimal.NewFromInt(250)))
	assert.Equal(t, 5, comps[4].Rank)
	assert.True(t, comps[4].Price.Equal(decimal.NewFromInt(180)))

	avg := entity.CompetitorAnalysis{TopCompetitors: comps}.AveragePrice()
	assert.Equal(t, "213", avg.String())
}

func TestNewRankingSource(t *testing.T) {
	log := zaptest.NewLogger(t)

	assert.IsType(t, FixtureRanking{}, NewRankingSource(utils.MarketConfig{}, log))
	assert.IsType(t, &ChromeRanking{}, NewRankingSource(utils.MarketConfig{ScraperEnabled: true}, log))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"$250", "250", true},
		{"$1,250 night", "1250", true},
		{"$710 for 5 nights", "142", true},
		{"$100 for 3 nights", "33.33", true},
		{"Price unavailable", "0", false},
		{"", "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParsePrice(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestRankCards(t *testing.T) {
	cards := []Card{
		{Title: "Our own villa", Price: "$200", URL: "https://www.airbnb.com/rooms/123?x=1"},
		{Title: "Sea view", Price: "$220", URL: "https://www.airbnb.com/rooms/456"},
		{Title: "", Price: "$190", URL: "https://www.airbnb.com/rooms/789"},
		{Title: "No price", Price: "", URL: "https://www.airbnb.com/rooms/1"},
		{Title: "Pool house", Price: "$600 for 3 nights", URL: "https://www.airbnb.com/rooms/2"},
		{Title: "Chalet", Price: "$150", URL: "https://www.airbnb.com/rooms/3"},
	}

	got := RankCards(cards, "123", 2)

	require.Len(t, got, 2)
	assert.Equal(t, "Sea view", got[0].Title)
	assert.Equal(t, "220", got[0].Price.String())
	assert.Equal(t, 1, got[0].Rank)
	assert.Equal(t, "Pool house", got[1].Title)
	assert.Equal(t, 2, got[1].Rank)
	assert.Equal(t, "200", got[1].Price.String())
}

func TestRandomPricing_StaysInBounds(t *testing.T) {
	p := NewRandomPricing(180, 50, rand.New(rand.NewSource(1)))

	for i := 0; i < 200; i++ {
		price, err := p.RecommendedPrice(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, price.GreaterThanOrEqual(decimal.NewFromInt(180)), price.String())
		assert.True(t, price.LessThan(decimal.NewFromInt(230)), price.String())
		assert.True(t, price.Equal(price.Truncate(0)))
	}
}

func TestFixedPricing(t *testing.T) {
	price, err := FixedPricing{Price: decimal.NewFromInt(199)}.RecommendedPrice(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "199", price.String())
}
