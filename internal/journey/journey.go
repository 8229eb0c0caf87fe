// Package journey holds the transient wizard state a user accumulates while
// walking the subsidy flow. State is keyed per user and expires; the durable
// record is the submission snapshot written when the journey completes.
package journey

import "time"

// Journey is the wizard state. Pointer fields distinguish "not answered"
// from zero values.
type Journey struct {
	State           string   `json:"state"`
	ConsumerSegment string   `json:"consumer_segment"`
	MonthlyBillINR  *float64 `json:"monthly_bill_inr,omitempty"`
	Provider        string   `json:"provider,omitempty"`
	GridConnection  bool     `json:"grid_connection"`

	RoofAreaM2 *float64 `json:"roof_area_m2,omitempty"`
	RoofType   string   `json:"roof_type,omitempty"`
	SiteSaved  bool     `json:"site_saved"`

	Submitted bool      `json:"submitted"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasProfile reports whether the first wizard step is complete.
func (j *Journey) HasProfile() bool {
	return j != nil && j.State != "" && j.ConsumerSegment != ""
}

// HasSite reports whether the second wizard step is complete. The step must
// have been saved explicitly; a bill entered on the profile step does not
// stand in for it. At least one sizing input must also exist or the estimate
// would be vacuous.
func (j *Journey) HasSite() bool {
	if j == nil || !j.HasProfile() || !j.SiteSaved {
		return false
	}
	return j.RoofAreaM2 != nil || j.MonthlyBillINR != nil
}
