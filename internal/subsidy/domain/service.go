package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/solarishq/solaris/internal/journey"
	"github.com/solarishq/solaris/internal/scheme"
)

type Service interface {
	// Journey returns the caller's current wizard state, nil when none exists.
	Journey(ctx context.Context, userID snowflake.ID) (*journey.Journey, error)
	SaveProfile(ctx context.Context, userID snowflake.ID, req ProfileRequest) error
	SaveSite(ctx context.Context, userID snowflake.ID, req SiteRequest) error
	Results(ctx context.Context, userID snowflake.ID, filters scheme.ResultFilters) (*ResultBundle, error)
	Restart(ctx context.Context, userID snowflake.ID) error

	ListSubmissions(ctx context.Context, userID snowflake.ID) ([]Submission, error)
	GetSubmission(ctx context.Context, userID, id snowflake.ID) (*Submission, error)
}

// ProfileRequest is step one of the wizard.
type ProfileRequest struct {
	State           string
	ConsumerSegment string
	MonthlyBillINR  *float64
	Provider        string
	GridConnection  bool
}

// SiteRequest is step two.
type SiteRequest struct {
	RoofAreaM2 *float64
	RoofType   string
}
