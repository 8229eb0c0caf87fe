package estimate

import "math"

// CentralSubsidyPolicy is the tiered central (PM Surya Ghar style) slab.
type CentralSubsidyPolicy struct {
	// Full-rate slab: the first SlabKw kilowatts earn SlabPerKwINR each.
	SlabKw       float64 `mapstructure:"slab_kw"`
	SlabPerKwINR float64 `mapstructure:"slab_per_kw_inr"`
	// Capacity beyond the slab earns the reduced rate, up to the cap.
	ExtraPerKwINR float64 `mapstructure:"extra_per_kw_inr"`
	CapINR        float64 `mapstructure:"cap_inr"`
}

// StateSubsidyPolicy is the simpler per-kW state top-up.
type StateSubsidyPolicy struct {
	PerKwINR float64 `mapstructure:"per_kw_inr"`
	CapINR   float64 `mapstructure:"cap_inr"`
}

// CostPolicy bundles the installation-cost and subsidy constants.
type CostPolicy struct {
	BasePerKwINR float64              `mapstructure:"base_per_kw_inr"`
	Central      CentralSubsidyPolicy `mapstructure:"central"`
	State        StateSubsidyPolicy   `mapstructure:"state"`
}

// DefaultCost mirrors the 2024 central slab: 30k/kW for the first 2 kW,
// 18k for the third, capped at 78k.
func DefaultCost() CostPolicy {
	return CostPolicy{
		BasePerKwINR: 58000,
		Central: CentralSubsidyPolicy{
			SlabKw:        2,
			SlabPerKwINR:  30000,
			ExtraPerKwINR: 18000,
			CapINR:        78000,
		},
		State: StateSubsidyPolicy{
			PerKwINR: 5000,
			CapINR:   15000,
		},
	}
}

// Result is the per-request cost breakdown. Never stored; recomputed from
// the recommended kW on each request.
type Result struct {
	GrossCostINR float64 `json:"gross_cost_inr"`
	CentralINR   float64 `json:"central_subsidy_inr"`
	StateINR     float64 `json:"state_subsidy_inr"`
	NetCostINR   float64 `json:"net_cost_inr"`
}

// SubsidyINR is the combined benefit.
func (r Result) SubsidyINR() float64 { return r.CentralINR + r.StateINR }

// Subsidy applies the tiered slab rules to a recommended capacity.
// NetCost is floored at zero.
func Subsidy(p CostPolicy, kw float64) Result {
	if kw <= 0 {
		return Result{}
	}

	gross := round2(kw * p.BasePerKwINR)

	slabKw := math.Min(kw, p.Central.SlabKw)
	central := slabKw * p.Central.SlabPerKwINR
	if kw > p.Central.SlabKw {
		central += (kw - p.Central.SlabKw) * p.Central.ExtraPerKwINR
	}
	if p.Central.CapINR > 0 && central > p.Central.CapINR {
		central = p.Central.CapINR
	}
	central = round2(central)

	state := kw * p.State.PerKwINR
	if p.State.CapINR > 0 && state > p.State.CapINR {
		state = p.State.CapINR
	}
	state = round2(state)

	net := gross - central - state
	if net < 0 {
		net = 0
	}

	return Result{
		GrossCostINR: gross,
		CentralINR:   central,
		StateINR:     state,
		NetCostINR:   round2(net),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
