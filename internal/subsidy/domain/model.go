// Package domain contains core types for the subsidy journey service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/lib/pq"
	"github.com/solarishq/solaris/internal/estimate"
	"github.com/solarishq/solaris/internal/journey"
	"github.com/solarishq/solaris/internal/scheme"
	"github.com/solarishq/solaris/internal/scoring"
)

// Submission is the durable snapshot of a completed journey. Written once
// when results are first computed; later visits replay from the live
// journey, not from this row.
type Submission struct {
	ID     snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID snowflake.ID `gorm:"column:user_id;not null;index" json:"-"`

	State           string   `gorm:"column:state;type:text;not null" json:"state"`
	ConsumerSegment string   `gorm:"column:consumer_segment;type:text;not null" json:"consumer_segment"`
	Provider        string   `gorm:"column:provider;type:text" json:"provider,omitempty"`
	MonthlyBillINR  *float64 `gorm:"column:monthly_bill_inr" json:"monthly_bill_inr,omitempty"`
	RoofAreaM2      *float64 `gorm:"column:roof_area_m2" json:"roof_area_m2,omitempty"`
	RoofType        string   `gorm:"column:roof_type;type:text" json:"roof_type,omitempty"`
	GridConnection  bool     `gorm:"column:grid_connection;not null" json:"grid_connection"`

	MonthlyUnitsKwh      *float64 `gorm:"column:monthly_units_kwh" json:"monthly_units_kwh,omitempty"`
	AnnualConsumptionKwh *float64 `gorm:"column:annual_consumption_kwh" json:"annual_consumption_kwh,omitempty"`
	SystemSizeKw         float64  `gorm:"column:system_size_kw;not null" json:"system_size_kw"`
	GrossCostINR         float64  `gorm:"column:gross_cost_inr;not null" json:"gross_cost_inr"`
	CentralSubsidyINR    float64  `gorm:"column:central_subsidy_inr;not null" json:"central_subsidy_inr"`
	StateSubsidyINR      float64  `gorm:"column:state_subsidy_inr;not null" json:"state_subsidy_inr"`
	NetCostINR           float64  `gorm:"column:net_cost_inr;not null" json:"net_cost_inr"`
	AnnualSavingsINR     float64  `gorm:"column:annual_savings_inr;not null" json:"annual_savings_inr"`
	PaybackYears         *float64 `gorm:"column:payback_years" json:"payback_years,omitempty"`

	MatchedSchemes pq.StringArray `gorm:"column:matched_schemes;type:text[]" json:"matched_schemes"`
	TopSchemeID    string         `gorm:"column:top_scheme_id;type:text" json:"top_scheme_id,omitempty"`
	TopSchemeScore float64        `gorm:"column:top_scheme_score" json:"top_scheme_score"`
	ProfileTags    pq.StringArray `gorm:"column:profile_tags;type:text[]" json:"profile_tags"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Submission) TableName() string { return "subsidy_submissions" }

// ScoredScheme pairs a matched scheme with its ranking score.
type ScoredScheme struct {
	scheme.Scheme
	Score float64 `json:"score"`
}

// ResultBundle is everything the results page needs.
type ResultBundle struct {
	Journey journey.Journey `json:"journey"`

	MonthlyUnitsKwh      *float64 `json:"monthly_units_kwh,omitempty"`
	AnnualConsumptionKwh *float64 `json:"annual_consumption_kwh,omitempty"`
	TariffINRPerKwh      float64  `json:"tariff_inr_per_kwh"`
	SystemSizeKw         float64  `json:"system_size_kw"`
	AnnualOutputKwh      float64  `json:"annual_output_kwh"`

	Subsidy   estimate.Result   `json:"subsidy"`
	Financial scoring.Financial `json:"financial"`

	Schemes       []ScoredScheme `json:"schemes"`
	FilterOptions []string       `json:"filter_options"`
	ProfileTags   []string       `json:"profile_tags"`
}
