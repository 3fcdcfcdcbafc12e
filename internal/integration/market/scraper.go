package market

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"azhaboost/internal/data/entity"

	"github.com/chromedp/chromedp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var (
	priceRegex  = regexp.MustCompile(`\$\s*(\d+(?:\.\d+)?)`)
	nightsRegex = regexp.MustCompile(`for\s+(\d+)\s+night`)
)

// Card is one search result as rendered on the marketplace page.
type Card struct {
	Title string `json:"title"`
	Price string `json:"price"`
	URL   string `json:"url"`
}

// ChromeRanking reads the marketplace search page with a headless browser.
type ChromeRanking struct {
	searchURL string
	limiter   *rate.Limiter
	log       *zap.Logger
}

func NewChromeRanking(searchURL string, intervalMs int, log *zap.Logger) *ChromeRanking {
	if intervalMs <= 0 {
		intervalMs = 3000
	}
	return &ChromeRanking{
		searchURL: searchURL,
		limiter:   rate.NewLimiter(rate.Every(time.Duration(intervalMs)*time.Millisecond), 1),
		log:       log.With(zap.String("integration", "chrome_ranking")),
	}
}

func (s *ChromeRanking) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		chromedp.WindowSize(1280, 900),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, opts...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	return ctx, func() {
		cancelCtx()
		cancelAlloc()
	}
}

func (s *ChromeRanking) Competitors(ctx context.Context, property *entity.Property) ([]entity.Competitor, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("wait for scrape slot: %w", err)
	}

	ctx, cancel := s.newContext(ctx)
	defer cancel()

	ctx, cancelTimeout := context.WithTimeout(ctx, 90*time.Second)
	defer cancelTimeout()

	var cards []Card
	err := chromedp.Run(ctx,
		chromedp.Navigate(s.searchURL),
		chromedp.Sleep(4*time.Second),
		chromedp.Evaluate(`
			(function() {
				var cards = [];
				var containers = document.querySelectorAll('[data-testid="card-container"]');
				if (containers.length === 0) {
					containers = document.querySelectorAll('[itemprop="itemListElement"]');
				}
				containers.forEach(function(c) {
					var title = c.querySelector('[data-testid="listing-card-title"]') || c.querySelector('[id^="title_"]');
					var price = c.querySelector('span._11jcbg2') || c.querySelector('[data-testid="price-availability-row"]');
					var link = c.querySelector('a[href*="/rooms/"]');
					cards.push({
						title: title ? title.innerText.trim() : '',
						price: price ? price.innerText.trim() : '',
						url: link ? link.href : ''
					});
				});
				return cards;
			})()
		`, &cards),
	)
	if err != nil {
		s.log.Error("Search page scrape failed", zap.Error(err), zap.String("url", s.searchURL))
		return nil, fmt.Errorf("scrape search page: %w", err)
	}

	listingID := ""
	if property != nil && property.AirbnbListingID != nil {
		listingID = *property.AirbnbListingID
	}

	competitors := RankCards(cards, listingID, TopN)
	s.log.Debug("Scraped competitors",
		zap.Int("cards", len(cards)),
		zap.Int("kept", len(competitors)),
	)
	return competitors, nil
}

// RankCards keeps priced cards in page order, skips the property's own listing
// and numbers the survivors from 1.
func RankCards(cards []Card, ownListingID string, limit int) []entity.Competitor {
	var out []entity.Competitor
	for _, c := range cards {
		if len(out) >= limit {
			break
		}
		if ownListingID != "" && strings.Contains(c.URL, "/rooms/"+ownListingID) {
			continue
		}
		title := strings.TrimSpace(c.Title)
		price, ok := ParsePrice(c.Price)
		if title == "" || !ok {
			continue
		}
		out = append(out, entity.Competitor{Rank: len(out) + 1, Title: title, Price: price})
	}
	return out
}

// ParsePrice extracts a per-night price from strings like "$710 for 5 nights".
func ParsePrice(raw string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(raw, ",", "")

	m := priceRegex.FindStringSubmatch(cleaned)
	if len(m) < 2 {
		return decimal.Zero, false
	}
	val, err := decimal.NewFromString(m[1])
	if err != nil {
		return decimal.Zero, false
	}

	if n := nightsRegex.FindStringSubmatch(cleaned); len(n) >= 2 {
		nights, err := decimal.NewFromString(n[1])
		if err == nil && nights.IsPositive() {
			val = val.Div(nights).Round(2)
		}
	}
	return val, true
}
