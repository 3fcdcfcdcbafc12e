package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"azhaboost/internal/data/entity"
	"azhaboost/internal/data/repository"
	"azhaboost/internal/dto/response"
	"azhaboost/internal/integration/ai"
	"azhaboost/internal/integration/market"
	"azhaboost/pkg/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	JobOptimizeListings = "optimize_listings"

	defaultConfidence = 0.85
)

type OptimizationService interface {
	OptimizeListings(ctx context.Context) (*response.OptimizationResult, error)
}

type optimizationService struct {
	repo      *repository.Repository
	ranking   market.RankingSource
	pricing   market.PricingSource
	generator ai.Generator
	metrics   *metrics.Metrics
	now       func() time.Time
	log       *zap.Logger
}

func NewOptimizationService(repo *repository.Repository, ranking market.RankingSource, pricing market.PricingSource,
	generator ai.Generator, m *metrics.Metrics, log *zap.Logger) OptimizationService {
	return &optimizationService{
		repo:      repo,
		ranking:   ranking,
		pricing:   pricing,
		generator: generator,
		metrics:   m,
		now:       time.Now,
		log:       log.With(zap.String("service", "optimization")),
	}
}

// ListingSuggestion is the JSON shape requested from the generator.
type ListingSuggestion struct {
	TitleEn    string           `json:"titleEn"`
	TitleAr    string           `json:"titleAr"`
	BulletsEn  []string         `json:"bulletsEn"`
	BulletsAr  []string         `json:"bulletsAr"`
	Price      *decimal.Decimal `json:"price"`
	Confidence *float64         `json:"confidence"`
	Reasoning  string           `json:"reasoning"`
}

func (s *optimizationService) OptimizeListings(ctx context.Context) (*response.OptimizationResult, error) {
	if _, disabled := s.generator.(ai.Disabled); disabled {
		return nil, newError(ErrConfiguration, "Text generation service is not configured")
	}

	done := s.metrics.ObserveRun(JobOptimizeListings)
	defer done()

	properties, err := s.repo.Property.FindWithListing(ctx)
	if err != nil {
		s.log.Error("Failed to load properties with listings", zap.Error(err))
		return nil, fmt.Errorf("load properties: %w", err)
	}

	result := &response.OptimizationResult{}
	for _, property := range properties {
		result.Processed++

		outcome := s.optimizeProperty(ctx, property)
		s.metrics.Item(JobOptimizeListings, outcome)
		switch outcome {
		case metrics.OutcomeCreated:
			result.Created++
		case metrics.OutcomeSkipped:
			result.Skipped++
		default:
			result.Failed++
		}
	}

	s.log.Info("Listing optimization finished",
		zap.Int("processed", result.Processed),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	return result, nil
}

// optimizeProperty handles one property in isolation and reports its outcome.
func (s *optimizationService) optimizeProperty(ctx context.Context, property *entity.Property) string {
	log := s.log.With(zap.String("property_id", property.ID.String()))

	competitors, err := s.ranking.Competitors(ctx, property)
	if err != nil {
		log.Error("Failed to fetch competitor ranking", zap.Error(err))
		return metrics.OutcomeFailed
	}
	analysis := entity.CompetitorAnalysis{
		CurrentRank:    property.CurrentRank,
		TargetRank:     property.TargetRank,
		TopCompetitors: competitors,
	}

	recommended, err := s.pricing.RecommendedPrice(ctx, property)
	if err != nil {
		log.Error("Failed to fetch recommended price", zap.Error(err))
		return metrics.OutcomeFailed
	}

	parts, err := s.generator.Generate(ctx, BuildOptimizationPrompt(property, analysis, recommended))
	if err != nil {
		log.Error("Text generation failed", zap.Error(err))
		return metrics.OutcomeFailed
	}

	suggestion, err := ParseSuggestion(parts)
	if err != nil {
		log.Warn("Skipping property, unusable generator response", zap.Error(err))
		return metrics.OutcomeSkipped
	}

	price := recommended
	if suggestion.Price != nil {
		price = *suggestion.Price
	}
	confidence := defaultConfidence
	if suggestion.Confidence != nil {
		confidence = *suggestion.Confidence
	}

	now := s.now()
	edit := &entity.AIEdit{
		BaseSimple:         entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		PropertyID:         property.ID,
		TitleEn:            suggestion.TitleEn,
		TitleAr:            suggestion.TitleAr,
		BulletsEn:          nonNil(suggestion.BulletsEn),
		BulletsAr:          nonNil(suggestion.BulletsAr),
		SuggestedPrice:     price,
		CurrentRank:        analysis.CurrentRank,
		TargetRank:         property.TargetRank,
		CompetitorAnalysis: analysis,
		Status:             entity.AIEditStatusPending,
		ConfidenceScore:    confidence,
		CreatedBy:          "ai",
	}
	if err := s.repo.AIEdit.Create(ctx, edit); err != nil {
		log.Error("Failed to store AI edit", zap.Error(err))
		return metrics.OutcomeFailed
	}

	avg := analysis.AveragePrice()
	pricing := &entity.PricingData{
		BaseSimple:         entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		PropertyID:         property.ID,
		Date:               time.Date(now.UTC().Year(), now.UTC().Month(), now.UTC().Day(), 0, 0, 0, 0, time.UTC),
		SuggestedPrice:     price,
		CompetitorAvgPrice: &avg,
		Source:             entity.PricingSourcePriceLabs,
	}
	if err := s.repo.PricingData.Upsert(ctx, pricing); err != nil {
		// the edit is already stored, so the property still counts as created
		log.Error("Failed to store pricing sample", zap.Error(err))
	}

	log.Info("AI edit created",
		zap.String("ai_edit_id", edit.ID.String()),
		zap.String("suggested_price", price.String()),
	)
	return metrics.OutcomeCreated
}

// BuildOptimizationPrompt renders the instruction sent to the generator.
func BuildOptimizationPrompt(p *entity.Property, analysis entity.CompetitorAnalysis, recommended decimal.Decimal) string {
	var b strings.Builder

	b.WriteString("You are an Airbnb listing optimization expert. Analyze the competition and rewrite the listing ")
	b.WriteString("to beat the top 5 properties above the current rank.\n\n")

	b.WriteString("Current Property:\n")
	fmt.Fprintf(&b, "- Name: %s / %s\n", p.NameEn, p.NameAr)
	fmt.Fprintf(&b, "- Current Rank: %d\n", analysis.CurrentRank)
	fmt.Fprintf(&b, "- Target Rank: %d\n\n", p.TargetRank)

	fmt.Fprintf(&b, "Top %d Competitors:\n", len(analysis.TopCompetitors))
	for i, c := range analysis.TopCompetitors {
		fmt.Fprintf(&b, "%d. Rank %d: %q - $%s/night\n", i+1, c.Rank, c.Title, c.Price.String())
	}

	fmt.Fprintf(&b, "\nRecommended Price: $%s\n\n", recommended.String())

	b.WriteString("Instructions:\n")
	b.WriteString("1. Create compelling titles in both English and Arabic that highlight unique selling points\n")
	b.WriteString("2. Focus on keywords that competitors are missing\n")
	b.WriteString("3. Emphasize luxury, location, and unique amenities\n")
	b.WriteString("4. Output must be valid JSON format\n\n")

	b.WriteString("Respond with JSON in this exact format:\n")
	b.WriteString("{\n")
	b.WriteString(`  "titleEn": "Optimized English title",` + "\n")
	b.WriteString(`  "titleAr": "عنوان محسن باللغة العربية",` + "\n")
	b.WriteString(`  "bulletsEn": ["English bullet point 1", "English bullet point 2", "English bullet point 3"],` + "\n")
	b.WriteString(`  "bulletsAr": ["نقطة عربية 1", "نقطة عربية 2", "نقطة عربية 3"],` + "\n")
	fmt.Fprintf(&b, "  \"price\": %s,\n", recommended.String())
	b.WriteString(`  "confidence": 0.85,` + "\n")
	b.WriteString(`  "reasoning": "Brief explanation of optimization strategy"` + "\n")
	b.WriteString("}\n")

	return b.String()
}

// ParseSuggestion requires the first part to be text holding the JSON object.
// A surrounding markdown code fence is tolerated.
func ParseSuggestion(parts []ai.ContentPart) (*ListingSuggestion, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty response")
	}
	if parts[0].Type != "text" {
		return nil, fmt.Errorf("first content part is %q, not text", parts[0].Type)
	}

	raw := stripCodeFence(parts[0].Text)

	var suggestion ListingSuggestion
	if err := json.Unmarshal([]byte(raw), &suggestion); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}
	if strings.TrimSpace(suggestion.TitleEn) == "" || strings.TrimSpace(suggestion.TitleAr) == "" {
		return nil, fmt.Errorf("suggestion is missing a title")
	}
	return &suggestion, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
