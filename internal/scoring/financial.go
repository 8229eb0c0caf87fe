package scoring

// FinancialInputs feeds the savings / payback / CO₂ projection.
type FinancialInputs struct {
	SystemSizeKW        float64
	AnnualGenerationKwh float64
	TariffINRPerKwh     float64
	GrossCostINR        float64
	SubsidyINR          float64
}

// Financial is the projection bundle. PaybackYears is nil, not an error,
// when annual savings is zero.
type Financial struct {
	MonthlySavingsINR   float64  `json:"monthly_savings_inr"`
	AnnualSavingsINR    float64  `json:"annual_savings_inr"`
	PaybackYears        *float64 `json:"payback_period_years"`
	CO2AvoidedKgPerYear float64  `json:"co2_avoided_kg_per_year"`
	NetCostINR          float64  `json:"net_cost_inr"`
	SelfConsumedKwh     float64  `json:"self_consumed_kwh"`
}

// FinancialPredictions runs the linear projection: self-consumed generation
// saves at the retail tariff, payback is net cost over annual savings, CO₂
// uses the grid emission factor.
func FinancialPredictions(in FinancialInputs, f Factors) Financial {
	netCost := in.GrossCostINR - in.SubsidyINR
	if netCost < 0 {
		netCost = 0
	}

	selfConsumed := in.AnnualGenerationKwh * f.SelfConsumptionRatio
	annualSavings := selfConsumed * in.TariffINRPerKwh

	var payback *float64
	if annualSavings > 0 {
		years := round2(netCost / annualSavings)
		payback = &years
	}

	return Financial{
		MonthlySavingsINR:   round2(annualSavings / 12),
		AnnualSavingsINR:    round2(annualSavings),
		PaybackYears:        payback,
		CO2AvoidedKgPerYear: round2(in.AnnualGenerationKwh * f.CO2PerKwhKg),
		NetCostINR:          round2(netCost),
		SelfConsumedKwh:     round2(selfConsumed),
	}
}
