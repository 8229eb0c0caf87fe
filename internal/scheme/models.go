// Package scheme holds the static government/CSR subsidy scheme catalog and
// the eligibility matcher that filters it for a given site profile.
package scheme

// Coverage describes who runs a scheme.
type Coverage string

const (
	CoverageNational Coverage = "national"
	CoverageState    Coverage = "state"
	CoverageCSR      Coverage = "csr"
)

// Scheme is a single reference entry. The catalog is read-only
// configuration, only the per-request match score varies.
type Scheme struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Coverage         Coverage `json:"coverage"`
	ConsumerSegments []string `json:"consumer_segments"`
	// States applies when Coverage is state.
	States []string `json:"states,omitempty"`
	// Tri-state requirements: nil means the scheme does not declare one.
	RequiresOwnership      *bool   `json:"requires_ownership,omitempty"`
	RequiresGridConnection *bool   `json:"requires_grid_connection,omitempty"`
	Benefit                string  `json:"benefit"`
	BaseScore              float64 `json:"base_score"`
	// Manual 0-1 encoding of how painful the application process is.
	EaseOfClaim float64 `json:"ease_of_claim"`
}

// Criteria is the site/billing profile a scheme is matched against.
type Criteria struct {
	State           string
	ConsumerSegment string
	// OwnsProperty is nil when the wizard did not collect it.
	OwnsProperty         *bool
	GridConnected        bool
	RoofAreaM2           *float64
	AnnualConsumptionKwh *float64
}
