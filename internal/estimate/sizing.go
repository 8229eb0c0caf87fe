// Package estimate implements the sizing and subsidy-cost formulas at the
// heart of the eligibility journey. Everything here is a pure function of
// its inputs and the active policy values.
package estimate

// SizingPolicy holds the constants behind the system-size recommendation.
type SizingPolicy struct {
	// Usable rooftop area needed per installed kW.
	AreaPerKwM2 float64 `mapstructure:"area_per_kw_m2"`
	// Expected annual generation per installed kW.
	SpecificYieldKwhPerKw float64 `mapstructure:"specific_yield_kwh_per_kw"`
	// Recommended size is clamped into [MinKw, MaxKw].
	MinKw float64 `mapstructure:"min_kw"`
	MaxKw float64 `mapstructure:"max_kw"`
}

// DefaultSizing mirrors typical Indian residential rooftop assumptions.
func DefaultSizing() SizingPolicy {
	return SizingPolicy{
		AreaPerKwM2:           10,
		SpecificYieldKwhPerKw: 1100,
		MinKw:                 1,
		MaxKw:                 15,
	}
}

// SystemSizeKW recommends an installed capacity from rooftop area and/or
// annual consumption. With both inputs present the recommendation is the
// smaller of the area-constrained and demand-driven capacities; with one
// input it follows that input alone. The result is clamped into the policy
// band and is strictly positive whenever at least one input is positive.
func SystemSizeKW(p SizingPolicy, roofAreaM2, annualConsumptionKwh *float64) float64 {
	var areaKw, demandKw float64
	if roofAreaM2 != nil && *roofAreaM2 > 0 && p.AreaPerKwM2 > 0 {
		areaKw = *roofAreaM2 / p.AreaPerKwM2
	}
	if annualConsumptionKwh != nil && *annualConsumptionKwh > 0 && p.SpecificYieldKwhPerKw > 0 {
		demandKw = *annualConsumptionKwh / p.SpecificYieldKwhPerKw
	}

	var kw float64
	switch {
	case areaKw > 0 && demandKw > 0:
		kw = min(areaKw, demandKw)
	case areaKw > 0:
		kw = areaKw
	case demandKw > 0:
		kw = demandKw
	default:
		return 0
	}

	if kw < p.MinKw {
		kw = p.MinKw
	}
	if p.MaxKw > 0 && kw > p.MaxKw {
		kw = p.MaxKw
	}
	return kw
}
