// Package tariff holds the static DISCOM reference table used to turn a
// monthly bill into an estimated consumption figure.
package tariff

import "strings"

// Provider is a single electricity distribution company entry.
type Provider struct {
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	RateINRPerKwh float64 `json:"rate_inr_per_kwh"`
}

// Catalog order is the order options are presented to the user.
var providers = []Provider{
	{Key: "avg", Label: "Average / not sure", RateINRPerKwh: 6.0},
	{Key: "tata-power-ddl", Label: "Tata Power (Delhi)", RateINRPerKwh: 8.0},
	{Key: "bses-rajdhani", Label: "BSES Rajdhani (Delhi)", RateINRPerKwh: 7.5},
	{Key: "adani-mumbai", Label: "Adani Electricity (Mumbai)", RateINRPerKwh: 8.5},
	{Key: "msedcl", Label: "MSEDCL (Maharashtra)", RateINRPerKwh: 7.2},
	{Key: "bescom", Label: "BESCOM (Karnataka)", RateINRPerKwh: 6.9},
	{Key: "tneb", Label: "TNEB (Tamil Nadu)", RateINRPerKwh: 6.5},
	{Key: "uppcl", Label: "UPPCL (Uttar Pradesh)", RateINRPerKwh: 6.8},
	{Key: "pspcl", Label: "PSPCL (Punjab)", RateINRPerKwh: 6.3},
	{Key: "ugvcl", Label: "UGVCL (Gujarat)", RateINRPerKwh: 6.2},
	{Key: "wbsedcl", Label: "WBSEDCL (West Bengal)", RateINRPerKwh: 7.0},
	{Key: "tsspdcl", Label: "TSSPDCL (Telangana)", RateINRPerKwh: 6.6},
}

var byKey = func() map[string]Provider {
	m := make(map[string]Provider, len(providers))
	for _, p := range providers {
		m[p.Key] = p
	}
	return m
}()

// Providers returns the catalog in presentation order.
func Providers() []Provider {
	out := make([]Provider, len(providers))
	copy(out, providers)
	return out
}

// Rate returns the provider tariff, or the fallback when unknown.
// Unknown input degrades gracefully, it is never an error.
func Rate(key string, fallback float64) float64 {
	if p, ok := byKey[normalize(key)]; ok {
		return p.RateINRPerKwh
	}
	return fallback
}

// Label returns the display label for a provider key.
func Label(key string) (string, bool) {
	p, ok := byKey[normalize(key)]
	if !ok {
		return "", false
	}
	return p.Label, true
}

// UnitsFromBill estimates monthly consumption in kWh from an average bill.
// Returns false when the bill is not positive.
func UnitsFromBill(billINR float64, provider string, fallback float64) (float64, bool) {
	if billINR <= 0 {
		return 0, false
	}
	rate := Rate(provider, fallback)
	if rate <= 0 {
		return 0, false
	}
	return billINR / rate, true
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
