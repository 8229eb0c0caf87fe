package scheme

import "strings"

// Match filters the catalog by the eligibility predicates. Catalog order is
// preserved; ranking happens later in scoring. An empty result is a normal
// outcome, not an error.
func Match(c Criteria) []Scheme {
	segment := strings.ToLower(strings.TrimSpace(c.ConsumerSegment))
	if segment == "" {
		segment = "residential"
	}
	state := strings.ToLower(strings.TrimSpace(c.State))

	var out []Scheme
	for _, s := range Catalog() {
		if !containsFold(s.ConsumerSegments, segment) {
			continue
		}
		if s.Coverage == CoverageState && !containsFold(s.States, state) {
			continue
		}
		// Requirements only disqualify when declared by the scheme and
		// contradicted by a known answer.
		if s.RequiresOwnership != nil && *s.RequiresOwnership && c.OwnsProperty != nil && !*c.OwnsProperty {
			continue
		}
		if s.RequiresGridConnection != nil && *s.RequiresGridConnection && !c.GridConnected {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterOptions reports the coverage values present in a match set, in
// catalog order, for building results-page filter links.
func FilterOptions(matches []Scheme) []string {
	seen := make(map[Coverage]bool, 3)
	var out []string
	for _, s := range matches {
		if !seen[s.Coverage] {
			seen[s.Coverage] = true
			out = append(out, string(s.Coverage))
		}
	}
	return out
}

// ResultFilters are the query-param driven filters applied after matching.
type ResultFilters struct {
	Coverage  string // all | national | state | csr
	Ownership string // all | owner | tenant
	Grid      string // all | grid | off-grid
}

// Apply narrows a match set by the user-selected result filters.
func (f ResultFilters) Apply(matches []Scheme) []Scheme {
	out := make([]Scheme, 0, len(matches))
	for _, s := range matches {
		if f.Coverage != "" && f.Coverage != "all" && string(s.Coverage) != f.Coverage {
			continue
		}
		if f.Ownership == "owner" && s.RequiresOwnership != nil && !*s.RequiresOwnership {
			continue
		}
		if f.Ownership == "tenant" && s.RequiresOwnership != nil && *s.RequiresOwnership {
			continue
		}
		if f.Grid == "grid" && s.RequiresGridConnection != nil && !*s.RequiresGridConnection {
			continue
		}
		if f.Grid == "off-grid" && (s.RequiresGridConnection == nil || *s.RequiresGridConnection) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func containsFold(values []string, want string) bool {
	for _, v := range values {
		if strings.EqualFold(strings.TrimSpace(v), want) {
			return true
		}
	}
	return false
}
