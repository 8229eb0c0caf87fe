// Package domain contains core types for the energy tracker.
package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Entry types. Anything unrecognized is counted as consumption.
const (
	EntryGeneration  = "generation"
	EntryConsumption = "consumption"
	EntryExport      = "export"
	EntryOther       = "other"
)

// EnergyLog is a single meter reading or manual entry.
type EnergyLog struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID     snowflake.ID `gorm:"column:user_id;not null;index" json:"-"`
	Date       time.Time    `gorm:"column:date;not null;index" json:"date"`
	EntryType  string       `gorm:"column:entry_type;type:text;not null" json:"entry_type"`
	AmountKwh  float64      `gorm:"column:amount_kwh;not null" json:"amount_kwh"`
	RevenueINR *float64     `gorm:"column:revenue_inr" json:"revenue_inr,omitempty"`
	Notes      string       `gorm:"column:notes;type:text" json:"notes,omitempty"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (EnergyLog) TableName() string { return "energy_logs" }

// DaySummary is one aggregated day of the tracker series.
type DaySummary struct {
	Date           string  `json:"date"`
	GenerationKwh  float64 `json:"generation_kwh"`
	ConsumptionKwh float64 `json:"consumption_kwh"`
	ExportKwh      float64 `json:"export_kwh"`
	RevenueINR     float64 `json:"revenue_inr"`
}

// Totals aggregates the whole log history.
type Totals struct {
	GenerationKwh  float64 `json:"generation_kwh"`
	ConsumptionKwh float64 `json:"consumption_kwh"`
	ExportKwh      float64 `json:"export_kwh"`
	RevenueINR     float64 `json:"revenue_inr"`
	Entries        int     `json:"entries"`
	Days           int     `json:"days"`
}

// Context is the tracker page payload.
type Context struct {
	Days     []DaySummary `json:"days"`
	Totals   Totals       `json:"totals"`
	Insights []string     `json:"insights"`
	Recent   []EnergyLog  `json:"recent"`
}

type Repository interface {
	Create(ctx context.Context, e *EnergyLog) error
	ListByUser(ctx context.Context, userID snowflake.ID) ([]EnergyLog, error)
}

type Service interface {
	AddEntry(ctx context.Context, userID snowflake.ID, req EntryRequest) (*EnergyLog, error)
	BuildContext(ctx context.Context, userID snowflake.ID) (*Context, error)
}

type EntryRequest struct {
	Date       *time.Time
	EntryType  string
	AmountKwh  float64
	RevenueINR *float64
	Notes      string
}
