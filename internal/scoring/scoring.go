// Package scoring implements the weighted-sum policy formulas used to rank
// scheme matches and project financial outcomes. The weights are fixed
// configuration, not learned parameters, despite the product naming.
package scoring

import (
	"math"
	"strings"

	"github.com/solarishq/solaris/internal/scheme"
)

// Factors are the shared projection constants, hot-reloadable via policy.
type Factors struct {
	// Average retail tariff used when the caller has no provider rate.
	AverageTariffINRPerKwh float64 `mapstructure:"average_tariff_inr_per_kwh"`
	// Share of generation consumed on-site rather than exported.
	SelfConsumptionRatio float64 `mapstructure:"self_consumption_ratio"`
	// Grid emission factor for India.
	CO2PerKwhKg float64 `mapstructure:"co2_per_kwh_kg"`
}

// DefaultFactors mirrors the national averages used across the product.
func DefaultFactors() Factors {
	return Factors{
		AverageTariffINRPerKwh: 6.0,
		SelfConsumptionRatio:   0.8,
		CO2PerKwhKg:            0.82,
	}
}

// MatchInputs feeds SubsidyMatchScore.
type MatchInputs struct {
	Scheme               scheme.Scheme
	SystemSizeKW         float64
	AnnualConsumptionKwh *float64
	State                string
	ConsumerSegment      string
	GrossCostINR         float64
	SubsidyINR           float64
}

// SubsidyMatchScore ranks a matched scheme for a user profile on a 0-100
// scale. Components: catalog base score, subsidy-benefit ratio (≤30),
// state/national bonus (15/10), segment bonus (10), size fit peaked at
// 5 kW (≤20), ease of claim (≤10) and payback fit (≤15). Clamped to
// [0,100], rounded to one decimal.
func SubsidyMatchScore(in MatchInputs, f Factors) float64 {
	score := in.Scheme.BaseScore * 10

	if in.GrossCostINR > 0 {
		ratio := math.Min(in.SubsidyINR/in.GrossCostINR, 1.0)
		score += ratio * 30
	}

	switch in.Scheme.Coverage {
	case scheme.CoverageState:
		if containsFold(in.Scheme.States, in.State) {
			score += 15
		}
	case scheme.CoverageNational:
		score += 10
	}

	if containsFold(in.Scheme.ConsumerSegments, in.ConsumerSegment) {
		score += 10
	}

	if in.SystemSizeKW >= 1 && in.SystemSizeKW <= 10 {
		// Peak at the typical 5 kW residential install.
		fit := 20 * (1 - math.Abs(in.SystemSizeKW-5)/5)
		score += math.Max(0, fit)
	} else {
		score += 10
	}

	score += in.Scheme.EaseOfClaim * 10

	if in.GrossCostINR > 0 && in.AnnualConsumptionKwh != nil && *in.AnnualConsumptionKwh > 0 {
		annualSavings := *in.AnnualConsumptionKwh * f.SelfConsumptionRatio * f.AverageTariffINRPerKwh
		if annualSavings > 0 {
			payback := (in.GrossCostINR - in.SubsidyINR) / annualSavings
			// 5 years earns the full 15 points, fading to zero at 20.
			score += math.Max(0, 15*(1-(payback-5)/15))
		}
	}

	return round1(clamp(score, 0, 100))
}

// SentimentFromTags is a deterministic keyword-count sentiment proxy over
// vendor highlight text. Returns 0.5 when the text carries no signal.
func SentimentFromTags(text string) float64 {
	if strings.TrimSpace(text) == "" {
		return 0.5
	}
	lower := strings.ToLower(text)

	positive := []string{
		"empanelled", "verified", "monitoring", "support", "warranty",
		"included", "expert", "rapid", "smart", "real-time", "service",
		"turnkey", "certified",
	}
	negative := []string{
		"delayed", "pending", "limited", "basic", "extra cost", "waitlist",
	}

	var pos, neg int
	for _, w := range positive {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negative {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	total := pos + neg
	if total == 0 {
		return 0.5
	}
	return clamp(float64(pos)/float64(total)*1.2, 0, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func containsFold(values []string, want string) bool {
	want = strings.TrimSpace(want)
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}
