// Package finance lists the rooftop-solar loan products surfaced on the
// financing page. Static reference data, refreshed with releases.
package finance

import "github.com/gosimple/slug"

// Bank is one loan product.
type Bank struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Product         string  `json:"product"`
	InterestRateMin float64 `json:"interest_rate_min"`
	InterestRateMax float64 `json:"interest_rate_max"`
	MaxAmountINR    float64 `json:"max_amount_inr"`
	TenureYearsMax  int     `json:"tenure_years_max"`
	Collateral      bool    `json:"collateral_required"`
	Notes           string  `json:"notes"`
}

var banks = []Bank{
	{
		ID:              slug.Make("SBI Surya Ghar Loan"),
		Name:            "State Bank of India",
		Product:         "SBI Surya Ghar Loan",
		InterestRateMin: 9.15, InterestRateMax: 10.15,
		MaxAmountINR: 600000, TenureYearsMax: 10,
		Notes: "Tied to the PM Surya Ghar portal; subsidy adjusted against principal.",
	},
	{
		ID:              slug.Make("Union Solar Vahan"),
		Name:            "Union Bank of India",
		Product:         "Union Roof Top Solar",
		InterestRateMin: 9.4, InterestRateMax: 10.9,
		MaxAmountINR: 500000, TenureYearsMax: 9,
		Notes: "No processing fee for loans under ₹2 lakh.",
	},
	{
		ID:              slug.Make("HDFC Green Home Top-up"),
		Name:            "HDFC Bank",
		Product:         "Green Home Top-up Loan",
		InterestRateMin: 10.25, InterestRateMax: 11.5,
		MaxAmountINR: 1000000, TenureYearsMax: 15,
		Collateral: true,
		Notes:      "Available as a top-up on an existing home loan.",
	},
	{
		ID:              slug.Make("Canara Solar Scheme"),
		Name:            "Canara Bank",
		Product:         "Canara Solar Rooftop",
		InterestRateMin: 9.25, InterestRateMax: 10.75,
		MaxAmountINR: 600000, TenureYearsMax: 10,
		Notes: "Margin money as low as 10% for systems up to 3 kW.",
	},
	{
		ID:              slug.Make("ICICI Instant Solar Loan"),
		Name:            "ICICI Bank",
		Product:         "Instant Solar Loan",
		InterestRateMin: 10.5, InterestRateMax: 12.0,
		MaxAmountINR: 400000, TenureYearsMax: 7,
		Notes: "Pre-approved digital sanction for existing customers.",
	},
	{
		ID:              slug.Make("PNB Saur Urja"),
		Name:            "Punjab National Bank",
		Product:         "PNB Saur Urja Scheme",
		InterestRateMin: 9.5, InterestRateMax: 11.0,
		MaxAmountINR: 500000, TenureYearsMax: 10,
		Notes: "Concessional rate for agricultural pump conversions.",
	},
	{
		ID:              slug.Make("Axis Eco Loan"),
		Name:            "Axis Bank",
		Product:         "Axis Eco Personal Loan",
		InterestRateMin: 11.0, InterestRateMax: 13.5,
		MaxAmountINR: 300000, TenureYearsMax: 5,
		Notes: "Unsecured, fastest disbursal of the set.",
	},
}

// Banks returns the loan catalog in presentation order.
func Banks() []Bank {
	out := make([]Bank, len(banks))
	copy(out, banks)
	return out
}
