package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/lib/pq"
	authdomain "github.com/solarishq/solaris/internal/auth/domain"
	"github.com/solarishq/solaris/internal/config"
	"github.com/solarishq/solaris/internal/estimate"
	"github.com/solarishq/solaris/internal/journey"
	"github.com/solarishq/solaris/internal/observability/metrics"
	"github.com/solarishq/solaris/internal/scheme"
	"github.com/solarishq/solaris/internal/scoring"
	"github.com/solarishq/solaris/internal/subsidy/domain"
	"github.com/solarishq/solaris/internal/tariff"
	"go.uber.org/zap"
)

type Service struct {
	log     *zap.Logger
	store   journey.Store
	repo    domain.Repository
	users   authdomain.Service
	policy  *config.PolicyHolder
	metrics *metrics.Metrics
	genID   *snowflake.Node
}

func New(
	log *zap.Logger,
	store journey.Store,
	repo domain.Repository,
	users authdomain.Service,
	policy *config.PolicyHolder,
	m *metrics.Metrics,
	genID *snowflake.Node,
) domain.Service {
	return &Service{
		log:     log.Named("subsidy.service"),
		store:   store,
		repo:    repo,
		users:   users,
		policy:  policy,
		metrics: m,
		genID:   genID,
	}
}

func (s *Service) Journey(ctx context.Context, userID snowflake.ID) (*journey.Journey, error) {
	j, err := s.store.Get(ctx, userID.String())
	if errors.Is(err, journey.ErrNotFound) {
		return nil, nil
	}
	return j, err
}

func (s *Service) SaveProfile(ctx context.Context, userID snowflake.ID, req domain.ProfileRequest) error {
	state := strings.TrimSpace(req.State)
	segment := strings.ToLower(strings.TrimSpace(req.ConsumerSegment))
	if state == "" || segment == "" {
		return domain.ErrInvalidInput
	}
	if req.MonthlyBillINR != nil && *req.MonthlyBillINR <= 0 {
		return domain.ErrInvalidInput
	}

	j, err := s.Journey(ctx, userID)
	if err != nil {
		return err
	}
	if j == nil {
		j = &journey.Journey{}
	}

	j.State = state
	j.ConsumerSegment = segment
	j.MonthlyBillINR = req.MonthlyBillINR
	j.Provider = strings.TrimSpace(req.Provider)
	j.GridConnection = req.GridConnection
	// Changing the profile restarts the snapshot lifecycle.
	j.Submitted = false

	return s.store.Put(ctx, userID.String(), j)
}

func (s *Service) SaveSite(ctx context.Context, userID snowflake.ID, req domain.SiteRequest) error {
	if req.RoofAreaM2 != nil && *req.RoofAreaM2 <= 0 {
		return domain.ErrInvalidInput
	}

	j, err := s.Journey(ctx, userID)
	if err != nil {
		return err
	}
	if j == nil || !j.HasProfile() {
		return domain.ErrProfileIncomplete
	}

	j.RoofAreaM2 = req.RoofAreaM2
	j.RoofType = strings.TrimSpace(req.RoofType)
	j.SiteSaved = true
	j.Submitted = false

	return s.store.Put(ctx, userID.String(), j)
}

func (s *Service) Restart(ctx context.Context, userID snowflake.ID) error {
	return s.store.Clear(ctx, userID.String())
}

func (s *Service) Results(ctx context.Context, userID snowflake.ID, filters scheme.ResultFilters) (*domain.ResultBundle, error) {
	j, err := s.Journey(ctx, userID)
	if err != nil {
		return nil, err
	}
	if j == nil || !j.HasProfile() {
		return nil, domain.ErrProfileIncomplete
	}
	if !j.HasSite() {
		return nil, domain.ErrJourneyIncomplete
	}

	policy := s.policy.Get()
	bundle := s.compute(j, policy)

	if !j.Submitted {
		if err := s.snapshot(ctx, userID, j, bundle); err != nil {
			return nil, err
		}
		j.Submitted = true
		if err := s.store.Put(ctx, userID.String(), j); err != nil {
			return nil, err
		}
		s.metrics.RecordSubmission()
	}
	s.metrics.RecordEstimate()

	if len(bundle.Schemes) > 0 {
		filtered := make([]domain.ScoredScheme, 0, len(bundle.Schemes))
		kept := filters.Apply(schemesOf(bundle.Schemes))
		keep := make(map[string]bool, len(kept))
		for _, sc := range kept {
			keep[sc.ID] = true
		}
		for _, sc := range bundle.Schemes {
			if keep[sc.ID] {
				filtered = append(filtered, sc)
			}
		}
		bundle.Schemes = filtered
	}

	return bundle, nil
}

// compute runs the estimation pipeline over the journey: bill → units →
// annual consumption → system size → subsidy → matched schemes → scores →
// financial projection.
func (s *Service) compute(j *journey.Journey, policy config.Policy) *domain.ResultBundle {
	rate := tariff.Rate(j.Provider, policy.Factors.AverageTariffINRPerKwh)

	var monthlyUnits, annualConsumption *float64
	if j.MonthlyBillINR != nil && j.Provider != "" {
		if units, ok := tariff.UnitsFromBill(*j.MonthlyBillINR, j.Provider, policy.Factors.AverageTariffINRPerKwh); ok {
			annual := round2(units * 12)
			units = round2(units)
			monthlyUnits = &units
			annualConsumption = &annual
		}
	}

	kw := estimate.SystemSizeKW(policy.Sizing, j.RoofAreaM2, annualConsumption)
	sub := estimate.Subsidy(policy.Cost, kw)
	annualOutput := round2(kw * policy.Sizing.SpecificYieldKwhPerKw)

	matches := scheme.Match(scheme.Criteria{
		State:                j.State,
		ConsumerSegment:      j.ConsumerSegment,
		GridConnected:        j.GridConnection,
		RoofAreaM2:           j.RoofAreaM2,
		AnnualConsumptionKwh: annualConsumption,
	})

	scored := make([]domain.ScoredScheme, 0, len(matches))
	for _, m := range matches {
		score := scoring.SubsidyMatchScore(scoring.MatchInputs{
			Scheme:               m,
			SystemSizeKW:         kw,
			AnnualConsumptionKwh: annualConsumption,
			State:                j.State,
			ConsumerSegment:      j.ConsumerSegment,
			GrossCostINR:         sub.GrossCostINR,
			SubsidyINR:           sub.SubsidyINR(),
		}, policy.Factors)
		scored = append(scored, domain.ScoredScheme{Scheme: m, Score: score})
	}
	sort.SliceStable(scored, func(i, k int) bool { return scored[i].Score > scored[k].Score })

	fin := s.financial(j, policy, kw, annualOutput, rate, annualConsumption, sub)

	return &domain.ResultBundle{
		Journey:              *j,
		MonthlyUnitsKwh:      monthlyUnits,
		AnnualConsumptionKwh: annualConsumption,
		TariffINRPerKwh:      rate,
		SystemSizeKw:         kw,
		AnnualOutputKwh:      annualOutput,
		Subsidy:              sub,
		Financial:            fin,
		Schemes:              scored,
		FilterOptions:        scheme.FilterOptions(matches),
		ProfileTags:          profileTags(j, kw),
	}
}

// financial picks the savings basis in order of confidence: metered tariff
// offset, bill heuristic, export value.
func (s *Service) financial(
	j *journey.Journey,
	policy config.Policy,
	kw, annualOutput, rate float64,
	annualConsumption *float64,
	sub estimate.Result,
) scoring.Financial {
	if annualConsumption != nil {
		return scoring.FinancialPredictions(scoring.FinancialInputs{
			SystemSizeKW:        kw,
			AnnualGenerationKwh: annualOutput,
			TariffINRPerKwh:     rate,
			GrossCostINR:        sub.GrossCostINR,
			SubsidyINR:          sub.SubsidyINR(),
		}, policy.Factors)
	}

	var annualSavings float64
	if j.MonthlyBillINR != nil && *j.MonthlyBillINR > 0 {
		annualSavings = *j.MonthlyBillINR * 12 * policy.Savings.BillOffsetFactor
	} else {
		annualSavings = annualOutput * policy.Savings.ExportValueINRPerKwh
	}

	fin := scoring.Financial{
		MonthlySavingsINR:   round2(annualSavings / 12),
		AnnualSavingsINR:    round2(annualSavings),
		CO2AvoidedKgPerYear: round2(annualOutput * policy.Factors.CO2PerKwhKg),
		NetCostINR:          round2(sub.NetCostINR),
		SelfConsumedKwh:     round2(annualOutput * policy.Factors.SelfConsumptionRatio),
	}
	if annualSavings > 0 {
		payback := round2(sub.NetCostINR / annualSavings)
		fin.PaybackYears = &payback
	}
	return fin
}

func (s *Service) snapshot(ctx context.Context, userID snowflake.ID, j *journey.Journey, b *domain.ResultBundle) error {
	matched := make(pq.StringArray, 0, len(b.Schemes))
	for _, sc := range b.Schemes {
		matched = append(matched, sc.ID)
	}

	sub := &domain.Submission{
		ID:     s.genID.Generate(),
		UserID: userID,

		State:           j.State,
		ConsumerSegment: j.ConsumerSegment,
		Provider:        j.Provider,
		MonthlyBillINR:  j.MonthlyBillINR,
		RoofAreaM2:      j.RoofAreaM2,
		RoofType:        j.RoofType,
		GridConnection:  j.GridConnection,

		MonthlyUnitsKwh:      b.MonthlyUnitsKwh,
		AnnualConsumptionKwh: b.AnnualConsumptionKwh,
		SystemSizeKw:         b.SystemSizeKw,
		GrossCostINR:         b.Subsidy.GrossCostINR,
		CentralSubsidyINR:    b.Subsidy.CentralINR,
		StateSubsidyINR:      b.Subsidy.StateINR,
		NetCostINR:           b.Subsidy.NetCostINR,
		AnnualSavingsINR:     b.Financial.AnnualSavingsINR,
		PaybackYears:         b.Financial.PaybackYears,

		MatchedSchemes: matched,
		ProfileTags:    pq.StringArray(b.ProfileTags),
	}
	if len(b.Schemes) > 0 {
		sub.TopSchemeID = b.Schemes[0].ID
		sub.TopSchemeScore = b.Schemes[0].Score
	}

	if err := s.repo.CreateSubmission(ctx, sub); err != nil {
		return err
	}

	if err := s.users.SaveEstimate(ctx, userID, authdomain.EstimateSnapshot{
		SystemKw:            b.SystemSizeKw,
		NetCostINR:          b.Subsidy.NetCostINR,
		EstimatedSavingsINR: b.Financial.AnnualSavingsINR,
	}); err != nil {
		return err
	}

	s.log.Info("submission recorded",
		zap.String("user_id", userID.String()),
		zap.Float64("system_kw", b.SystemSizeKw),
		zap.Int("schemes", len(b.Schemes)),
	)
	return nil
}

func (s *Service) ListSubmissions(ctx context.Context, userID snowflake.ID) ([]domain.Submission, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) GetSubmission(ctx context.Context, userID, id snowflake.ID) (*domain.Submission, error) {
	return s.repo.FindByID(ctx, userID, id)
}

func profileTags(j *journey.Journey, kw float64) []string {
	tags := []string{
		j.ConsumerSegment,
		slug.Make(j.State),
	}
	if j.GridConnection {
		tags = append(tags, "grid-connected")
	} else {
		tags = append(tags, "off-grid")
	}
	switch {
	case kw < 3:
		tags = append(tags, "small-system")
	case kw <= 5:
		tags = append(tags, "standard-system")
	default:
		tags = append(tags, "large-system")
	}
	if j.RoofType != "" {
		tags = append(tags, fmt.Sprintf("roof-%s", slug.Make(j.RoofType)))
	}
	return tags
}

func schemesOf(scored []domain.ScoredScheme) []scheme.Scheme {
	out := make([]scheme.Scheme, 0, len(scored))
	for _, sc := range scored {
		out = append(out, sc.Scheme)
	}
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
