package config

import (
	"errors"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/solarishq/solaris/internal/estimate"
	"github.com/solarishq/solaris/internal/scoring"
)

// SavingsPolicy configures the savings fallback chain used when the
// estimation pipeline lacks a consumption figure.
type SavingsPolicy struct {
	// Share of the monthly bill assumed offset when only the bill is known.
	BillOffsetFactor float64 `mapstructure:"bill_offset_factor"`
	// Flat per-kWh value used when neither bill nor consumption is known.
	ExportValueINRPerKwh float64 `mapstructure:"export_value_inr_per_kwh"`
}

// VendorPolicy configures marketplace ranking.
type VendorPolicy struct {
	// Vendors scoring at or above this share of the top score are flagged.
	RecommendedShare float64 `mapstructure:"recommended_share"`
}

// Policy bundles every tunable constant of the estimation pipeline. It is
// read from policy.yml and hot-reloaded, so operators can adjust subsidy
// slabs without a deploy.
type Policy struct {
	Sizing  estimate.SizingPolicy `mapstructure:"sizing"`
	Cost    estimate.CostPolicy   `mapstructure:"cost"`
	Factors scoring.Factors       `mapstructure:"factors"`
	Savings SavingsPolicy         `mapstructure:"savings"`
	Vendor  VendorPolicy          `mapstructure:"vendor"`
}

func DefaultPolicy() Policy {
	return Policy{
		Sizing:  estimate.DefaultSizing(),
		Cost:    estimate.DefaultCost(),
		Factors: scoring.DefaultFactors(),
		Savings: SavingsPolicy{
			BillOffsetFactor:     0.6,
			ExportValueINRPerKwh: 6.0,
		},
		Vendor: VendorPolicy{
			RecommendedShare: 0.85,
		},
	}
}

type PolicyHolder struct {
	current atomic.Value // holds Policy
}

func NewPolicyHolder(cfg Config, log *zap.Logger) (*PolicyHolder, error) {
	log = log.Named("policy")
	v := viper.New()

	v.SetConfigName("policy")
	v.SetConfigType("yml")
	if cfg.PolicyPath != "" {
		v.AddConfigPath(filepath.Dir(cfg.PolicyPath))
	}
	v.AddConfigPath("/var/lib/solaris/config") // Volume-mounted config
	v.AddConfigPath("/etc/solaris")            // System config
	v.AddConfigPath(".")                       // Current directory (dev mode)

	v.SetEnvPrefix("SOLARIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	policy := DefaultPolicy()
	if err := v.UnmarshalKey("policy", &policy); err != nil {
		return nil, err
	}
	if err := validatePolicy(policy); err != nil {
		return nil, err
	}

	holder := &PolicyHolder{}
	holder.current.Store(policy)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated := DefaultPolicy()
		if err := v.UnmarshalKey("policy", &updated); err != nil {
			log.Error("policy reload failed", zap.Error(err))
			return
		}
		if err := validatePolicy(updated); err != nil {
			log.Warn("invalid policy ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		log.Info("policy reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

func (h *PolicyHolder) Get() Policy {
	return h.current.Load().(Policy)
}

// StaticPolicyHolder wraps a fixed policy for tests.
func StaticPolicyHolder(p Policy) *PolicyHolder {
	h := &PolicyHolder{}
	h.current.Store(p)
	return h
}

func validatePolicy(p Policy) error {
	if p.Sizing.AreaPerKwM2 <= 0 {
		return errors.New("policy.sizing.area_per_kw_m2 must be positive")
	}
	if p.Sizing.SpecificYieldKwhPerKw <= 0 {
		return errors.New("policy.sizing.specific_yield_kwh_per_kw must be positive")
	}
	if p.Sizing.MinKw <= 0 || p.Sizing.MaxKw < p.Sizing.MinKw {
		return errors.New("policy.sizing kw bounds are inconsistent")
	}
	if p.Cost.BasePerKwINR <= 0 {
		return errors.New("policy.cost.base_per_kw_inr must be positive")
	}
	if p.Factors.AverageTariffINRPerKwh <= 0 {
		return errors.New("policy.factors.average_tariff_inr_per_kwh must be positive")
	}
	if p.Factors.SelfConsumptionRatio <= 0 || p.Factors.SelfConsumptionRatio > 1 {
		return errors.New("policy.factors.self_consumption_ratio must be in (0,1]")
	}
	if p.Vendor.RecommendedShare <= 0 || p.Vendor.RecommendedShare > 1 {
		return errors.New("policy.vendor.recommended_share must be in (0,1]")
	}
	return nil
}
