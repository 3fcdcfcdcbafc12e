package response

import (
	"time"

	"azhaboost/internal/data/entity"

	"github.com/shopspring/decimal"
)

type AIEditResponse struct {
	ID                    string                     `json:"id"`
	PropertyID            string                     `json:"property_id"`
	PropertyName          string                     `json:"property_name,omitempty"`
	Title                 string                     `json:"title"`
	Bullets               []string                   `json:"bullets"`
	SuggestedPrice        decimal.Decimal            `json:"suggested_price"`
	SuggestedPriceDisplay string                     `json:"suggested_price_display"`
	CurrentRank           int                        `json:"current_rank"`
	TargetRank            int                        `json:"target_rank"`
	Confidence            float64                    `json:"confidence"`
	Status                entity.AIEditStatus        `json:"status"`
	StatusLabel           string                     `json:"status_label"`
	CompetitorAnalysis    *entity.CompetitorAnalysis `json:"competitor_analysis,omitempty"`
	CreatedAt             time.Time                  `json:"created_at"`
	AppliedAt             *time.Time                 `json:"applied_at,omitempty"`
}

type OptimizationResult struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Skipped   int `json:"skipped"`
	Failed    int `json:"failed"`
}
