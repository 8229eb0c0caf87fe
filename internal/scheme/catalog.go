package scheme

import "github.com/gosimple/slug"

func boolPtr(v bool) *bool { return &v }

// catalog order is the pre-scoring presentation order.
var catalog = []Scheme{
	{
		ID:                     slug.Make("PM Surya Ghar Muft Bijli Yojana"),
		Name:                   "PM Surya Ghar: Muft Bijli Yojana",
		Coverage:               CoverageNational,
		ConsumerSegments:       []string{"residential"},
		RequiresOwnership:      boolPtr(true),
		RequiresGridConnection: boolPtr(true),
		Benefit:                "Central subsidy up to ₹78,000 plus 300 units of free electricity per month for grid-connected rooftops.",
		BaseScore:              9.5,
		EaseOfClaim:            0.7,
	},
	{
		ID:                     slug.Make("PM-KUSUM Component B"),
		Name:                   "PM-KUSUM (Component B)",
		Coverage:               CoverageNational,
		ConsumerSegments:       []string{"agricultural"},
		RequiresGridConnection: boolPtr(false),
		Benefit:                "60% subsidy on standalone solar agricultural pumps for off-grid farms.",
		BaseScore:              8.5,
		EaseOfClaim:            0.4,
	},
	{
		ID:               slug.Make("Grid Connected Rooftop Programme Phase II"),
		Name:             "Grid-Connected Rooftop Programme Phase II",
		Coverage:         CoverageNational,
		ConsumerSegments: []string{"residential", "community"},
		Benefit:          "CFA for group housing societies and resident welfare associations up to 500 kW.",
		BaseScore:        7.5,
		EaseOfClaim:      0.5,
	},
	{
		ID:                slug.Make("Gujarat Surya Urja Rooftop Yojana"),
		Name:              "Gujarat Surya Urja Rooftop Yojana",
		Coverage:          CoverageState,
		ConsumerSegments:  []string{"residential"},
		States:            []string{"Gujarat"},
		RequiresOwnership: boolPtr(true),
		Benefit:           "40% state subsidy up to 3 kW, 20% from 3 to 10 kW, stacked on the central benefit.",
		BaseScore:         8.8,
		EaseOfClaim:       0.8,
	},
	{
		ID:                     slug.Make("Delhi Solar Policy Incentive"),
		Name:                   "Delhi Solar Policy Incentive",
		Coverage:               CoverageState,
		ConsumerSegments:       []string{"residential", "community"},
		States:                 []string{"Delhi"},
		RequiresGridConnection: boolPtr(true),
		Benefit:                "Generation-based incentive of ₹3/kWh for five years on net-metered rooftops.",
		BaseScore:              8.2,
		EaseOfClaim:            0.6,
	},
	{
		ID:               slug.Make("Maharashtra Agriculture Solar Feeder"),
		Name:             "Maharashtra Agriculture Solar Feeder Scheme",
		Coverage:         CoverageState,
		ConsumerSegments: []string{"agricultural"},
		States:           []string{"Maharashtra"},
		Benefit:          "Daytime solar feeder power plus capital support for pump-set conversion.",
		BaseScore:        7.8,
		EaseOfClaim:      0.5,
	},
	{
		ID:               slug.Make("Kerala Soura Subsidy"),
		Name:             "Kerala Soura Rooftop Programme",
		Coverage:         CoverageState,
		ConsumerSegments: []string{"residential"},
		States:           []string{"Kerala"},
		Benefit:          "KSEB-run rooftop programme with additional state top-up over the central CFA.",
		BaseScore:        7.6,
		EaseOfClaim:      0.6,
	},
	{
		ID:               slug.Make("CSR Community Solar Grant"),
		Name:             "CSR Community Solar Grant",
		Coverage:         CoverageCSR,
		ConsumerSegments: []string{"community"},
		Benefit:          "Corporate CSR grants covering 30-50% of shared installations for housing cooperatives.",
		BaseScore:        6.5,
		EaseOfClaim:      0.3,
	},
}

// Catalog returns the reference table in presentation order.
func Catalog() []Scheme {
	out := make([]Scheme, len(catalog))
	copy(out, catalog)
	return out
}
