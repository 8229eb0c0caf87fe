// Package domain contains core types for the auth service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// User represents a registered account. The Last* columns cache the outcome
// of the most recent feasibility estimate so the dashboard can render
// without replaying the wizard.
type User struct {
	ID                  snowflake.ID      `gorm:"primaryKey"`
	Email               string            `gorm:"column:email;type:text;not null;uniqueIndex"`
	Name                string            `gorm:"column:name;type:text;not null"`
	Phone               string            `gorm:"column:phone;type:text"`
	DateOfBirth         *time.Time        `gorm:"column:date_of_birth"`
	PasswordHash        *string           `gorm:"type:text"`
	LastPasswordChanged *time.Time        `gorm:"column:last_password_changed"`
	JourneyCompleted    bool              `gorm:"column:journey_completed;not null;default:false"`

	LastSystemKw            *float64   `gorm:"column:last_system_kw"`
	LastNetCostINR          *float64   `gorm:"column:last_net_cost_inr"`
	LastEstimatedSavingsINR *float64   `gorm:"column:last_estimated_savings_inr"`
	LastEstimateUpdatedAt   *time.Time `gorm:"column:last_estimate_updated_at"`

	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (User) TableName() string { return "users" }

// Session represents a persisted login session. Only the SHA-256 hash of the
// cookie token is stored.
type Session struct {
	ID               snowflake.ID `gorm:"primaryKey"`
	UserID           snowflake.ID `gorm:"column:user_id;not null;index"`
	SessionTokenHash string       `gorm:"column:session_token_hash;type:text;not null;uniqueIndex"`
	UserAgent        string       `gorm:"column:user_agent;type:text"`
	IPAddress        string       `gorm:"column:ip_address;type:text"`
	ExpiresAt        time.Time    `gorm:"column:expires_at;not null;index"`
	RevokedAt        *time.Time   `gorm:"column:revoked_at"`
	CreatedAt        time.Time    `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP"`
	LastSeenAt       time.Time    `gorm:"column:last_seen_at;not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
