package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, rawToken string) error
	Authenticate(ctx context.Context, rawToken string) (*Session, error)
	GetUser(ctx context.Context, id snowflake.ID) (*User, error)
	UpdateProfile(ctx context.Context, id snowflake.ID, req UpdateProfileRequest) (*User, error)
	SaveEstimate(ctx context.Context, id snowflake.ID, snap EstimateSnapshot) error
}

type RegisterRequest struct {
	Email    string
	Name     string
	Phone    string
	Password string
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

type LoginResult struct {
	User      *User
	RawToken  string
	ExpiresAt time.Time
	SessionID snowflake.ID
}

type UpdateProfileRequest struct {
	Name        *string
	Phone       *string
	DateOfBirth *time.Time
}

// EstimateSnapshot caches the headline figures of a completed estimate on
// the user row.
type EstimateSnapshot struct {
	SystemKw            float64
	NetCostINR          float64
	EstimatedSavingsINR float64
}
