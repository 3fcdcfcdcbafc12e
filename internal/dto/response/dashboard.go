package response

import "github.com/shopspring/decimal"

type KPI struct {
	Key     string `json:"key"`
	Label   string `json:"label"`
	Value   int64  `json:"value"`
	Display string `json:"display"`
}

type DashboardResponse struct {
	Language         string                 `json:"language"`
	Dir              string                 `json:"dir"`
	KPIs             []KPI                  `json:"kpis"`
	Occupancy        []OccupancyPoint       `json:"occupancy"`
	OccupancyTitle   string                 `json:"occupancy_title"`
	PendingAIEdits   []AIEditResponse       `json:"pending_ai_edits"`
	UpcomingBookings []BookingCard          `json:"upcoming_bookings"`
	PendingTasks     []CleaningTaskResponse `json:"pending_tasks"`
	Labels           map[string]string      `json:"labels"`
}

type PropertyCard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	CurrentRank int    `json:"current_rank"`
	TargetRank  int    `json:"target_rank"`
	HasListing  bool   `json:"has_listing"`
	HasLock     bool   `json:"has_lock"`
	HasCalendar bool   `json:"has_calendar"`
}

type PropertiesResponse struct {
	Properties  []PropertyCard `json:"properties"`
	Total       int            `json:"total"`
	AverageRank float64        `json:"average_rank"`
}

// OccupancyPoint aggregates the pricing samples of one day.
type OccupancyPoint struct {
	Date       string          `json:"date"`
	Label      string          `json:"label"`
	Occupancy  float64         `json:"occupancy"`
	ADR        decimal.Decimal `json:"adr"`
	ADRDisplay string          `json:"adr_display"`
	Samples    int             `json:"samples"`
}

type PropertyPricingResponse struct {
	PropertyID   string           `json:"property_id"`
	PropertyName string           `json:"property_name"`
	Days         int              `json:"days"`
	Points       []OccupancyPoint `json:"points"`
	KPIs         []KPI            `json:"kpis"`
}
