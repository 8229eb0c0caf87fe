package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
	authrepository "github.com/solarishq/solaris/internal/auth/repository"
	authservice "github.com/solarishq/solaris/internal/auth/service"
	"github.com/solarishq/solaris/internal/config"
	"github.com/solarishq/solaris/internal/journey"
	"github.com/solarishq/solaris/internal/scheme"
	"github.com/solarishq/solaris/internal/subsidy/domain"
	"github.com/solarishq/solaris/internal/subsidy/repository"
	"github.com/solarishq/solaris/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	svc    domain.Service
	users  authdomain.Service
	userID snowflake.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(&authdomain.User{}, &authdomain.Session{}, &domain.Submission{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	userRepo, sessionRepo := authrepository.New(conn)
	users := authservice.New(zap.NewNop(), userRepo, sessionRepo, node)

	user, err := users.Register(context.Background(), authdomain.RegisterRequest{
		Email:    "journey@example.com",
		Password: "sunny-roof-9",
	})
	require.NoError(t, err)

	svc := New(
		zap.NewNop(),
		journey.NewMemoryStore(time.Minute),
		repository.New(conn),
		users,
		config.StaticPolicyHolder(config.DefaultPolicy()),
		nil,
		node,
	)

	return &fixture{svc: svc, users: users, userID: user.ID}
}

func (f *fixture) completeJourney(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	bill := 2000.0
	require.NoError(t, f.svc.SaveProfile(ctx, f.userID, domain.ProfileRequest{
		State:           "Delhi",
		ConsumerSegment: "residential",
		MonthlyBillINR:  &bill,
		Provider:        "avg",
		GridConnection:  true,
	}))

	area := 30.0
	require.NoError(t, f.svc.SaveSite(ctx, f.userID, domain.SiteRequest{RoofAreaM2: &area, RoofType: "rcc"}))
}

func TestResultsRequireEachStep(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.ErrorIs(t, err, domain.ErrProfileIncomplete)

	area := 30.0
	err = f.svc.SaveSite(ctx, f.userID, domain.SiteRequest{RoofAreaM2: &area})
	require.ErrorIs(t, err, domain.ErrProfileIncomplete)

	bill := 2000.0
	require.NoError(t, f.svc.SaveProfile(ctx, f.userID, domain.ProfileRequest{
		State:           "Delhi",
		ConsumerSegment: "residential",
		MonthlyBillINR:  &bill,
		Provider:        "avg",
		GridConnection:  true,
	}))

	// The bill entered on the profile step does not stand in for the site
	// step; results stay gated until the site is saved.
	_, err = f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.ErrorIs(t, err, domain.ErrJourneyIncomplete)

	subs, err := f.svc.ListSubmissions(ctx, f.userID)
	require.NoError(t, err)
	assert.Empty(t, subs, "a gated results request must not snapshot")

	// Saving the site with no roof area is allowed; the bill remains the
	// sizing input.
	require.NoError(t, f.svc.SaveSite(ctx, f.userID, domain.SiteRequest{}))
	_, err = f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.NoError(t, err)
}

func TestResultsReferenceScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.completeJourney(t)

	bundle, err := f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.NoError(t, err)

	require.NotNil(t, bundle.MonthlyUnitsKwh)
	assert.Greater(t, *bundle.MonthlyUnitsKwh, 0.0)
	assert.Greater(t, bundle.SystemSizeKw, 0.0)
	assert.GreaterOrEqual(t, bundle.Subsidy.NetCostINR, 0.0)
	assert.Greater(t, bundle.Financial.AnnualSavingsINR, 0.0)

	var national bool
	for _, sc := range bundle.Schemes {
		assert.GreaterOrEqual(t, sc.Score, 0.0, sc.ID)
		assert.LessOrEqual(t, sc.Score, 100.0, sc.ID)
		if sc.Coverage == scheme.CoverageNational {
			national = true
		}
	}
	assert.True(t, national, "the national scheme should match this profile")

	for i := 1; i < len(bundle.Schemes); i++ {
		assert.LessOrEqual(t, bundle.Schemes[i].Score, bundle.Schemes[i-1].Score, "schemes not sorted by score")
	}
}

func TestResultsSnapshotWrittenOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.completeJourney(t)

	_, err := f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.NoError(t, err)
	_, err = f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.NoError(t, err)

	subs, err := f.svc.ListSubmissions(ctx, f.userID)
	require.NoError(t, err)
	assert.Len(t, subs, 1, "revisiting results must not duplicate the snapshot")

	user, err := f.users.GetUser(ctx, f.userID)
	require.NoError(t, err)
	assert.True(t, user.JourneyCompleted, "first results visit should complete the journey")
	require.NotNil(t, user.LastSystemKw)
	assert.Greater(t, *user.LastSystemKw, 0.0)
}

func TestEditedJourneySnapshotsAgain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.completeJourney(t)
	_, err := f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.NoError(t, err)

	// Changing the site resets the snapshot lifecycle.
	area := 60.0
	require.NoError(t, f.svc.SaveSite(ctx, f.userID, domain.SiteRequest{RoofAreaM2: &area, RoofType: "rcc"}))
	_, err = f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.NoError(t, err)

	subs, err := f.svc.ListSubmissions(ctx, f.userID)
	require.NoError(t, err)
	assert.Len(t, subs, 2, "an edited journey should snapshot again")
}

func TestResultsCoverageFilter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.completeJourney(t)

	bundle, err := f.svc.Results(ctx, f.userID, scheme.ResultFilters{Coverage: "national"})
	require.NoError(t, err)
	require.NotEmpty(t, bundle.Schemes)
	for _, sc := range bundle.Schemes {
		assert.Equal(t, scheme.CoverageNational, sc.Coverage, sc.ID)
	}
}

func TestRestartClearsJourney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.completeJourney(t)
	require.NoError(t, f.svc.Restart(ctx, f.userID))

	j, err := f.svc.Journey(ctx, f.userID)
	require.NoError(t, err)
	assert.Nil(t, j, "restart should clear the journey")
}

func TestSaveProfileValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.SaveProfile(ctx, f.userID, domain.ProfileRequest{State: "", ConsumerSegment: "residential"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	bad := -10.0
	err = f.svc.SaveProfile(ctx, f.userID, domain.ProfileRequest{State: "Delhi", ConsumerSegment: "residential", MonthlyBillINR: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSubmissionScopedToOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.completeJourney(t)
	_, err := f.svc.Results(ctx, f.userID, scheme.ResultFilters{})
	require.NoError(t, err)

	subs, err := f.svc.ListSubmissions(ctx, f.userID)
	require.NoError(t, err)
	require.NotEmpty(t, subs)

	got, err := f.svc.GetSubmission(ctx, f.userID, subs[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Delhi", got.State)

	other := snowflake.ID(999999)
	_, err = f.svc.GetSubmission(ctx, other, subs[0].ID)
	require.ErrorIs(t, err, domain.ErrSubmissionNotFound)
}
