package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AIEditStatus string

const (
	AIEditStatusPending  AIEditStatus = "pending"
	AIEditStatusApproved AIEditStatus = "approved"
	AIEditStatusRejected AIEditStatus = "rejected"
	AIEditStatusApplied  AIEditStatus = "applied"
)

// CanTransition reports whether the one-way workflow allows moving to next:
// pending -> approved|rejected, approved -> applied.
func (s AIEditStatus) CanTransition(next AIEditStatus) bool {
	switch s {
	case AIEditStatusPending:
		return next == AIEditStatusApproved || next == AIEditStatusRejected
	case AIEditStatusApproved:
		return next == AIEditStatusApplied
	default:
		return false
	}
}

type Competitor struct {
	Rank  int             `json:"rank"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// CompetitorAnalysis is stored verbatim on each AI edit.
type CompetitorAnalysis struct {
	CurrentRank    int          `json:"currentRank"`
	TargetRank     int          `json:"targetRank"`
	TopCompetitors []Competitor `json:"topCompetitors"`
}

// AveragePrice is the mean competitor price, zero when there are none.
func (c CompetitorAnalysis) AveragePrice() decimal.Decimal {
	if len(c.TopCompetitors) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, comp := range c.TopCompetitors {
		sum = sum.Add(comp.Price)
	}
	return sum.Div(decimal.NewFromInt(int64(len(c.TopCompetitors))))
}

type AIEdit struct {
	BaseSimple
	PropertyID         uuid.UUID          `db:"property_id"`
	TitleEn            string             `db:"title_en"`
	TitleAr            string             `db:"title_ar"`
	BulletsEn          []string           `db:"bullets_en"`
	BulletsAr          []string           `db:"bullets_ar"`
	SuggestedPrice     decimal.Decimal    `db:"suggested_price"`
	CurrentRank        int                `db:"current_rank"`
	TargetRank         int                `db:"target_rank"`
	CompetitorAnalysis CompetitorAnalysis `db:"competitor_analysis"`
	Status             AIEditStatus       `db:"status"`
	ConfidenceScore    float64            `db:"ai_confidence_score"`
	CreatedBy          string             `db:"created_by"`
	AppliedAt          *time.Time         `db:"applied_at"`

	Property *Property `db:"-"`
}
