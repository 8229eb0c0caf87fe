package estimate

import "testing"

func TestSubsidyZeroCapacity(t *testing.T) {
	r := Subsidy(DefaultCost(), 0)
	if r != (Result{}) {
		t.Fatalf("zero capacity should produce an empty result, got %+v", r)
	}
}

func TestSubsidySlabRates(t *testing.T) {
	p := DefaultCost()

	// 2 kW sits entirely inside the full-rate slab.
	r := Subsidy(p, 2)
	if r.CentralINR != 60000 {
		t.Fatalf("2 kW central subsidy = %v, want 60000", r.CentralINR)
	}

	// The third kW earns the reduced rate.
	r = Subsidy(p, 3)
	if r.CentralINR != 78000 {
		t.Fatalf("3 kW central subsidy = %v, want 78000", r.CentralINR)
	}

	// Beyond 3 kW the cap holds the benefit flat.
	r = Subsidy(p, 10)
	if r.CentralINR != p.Central.CapINR {
		t.Fatalf("10 kW central subsidy = %v, want cap %v", r.CentralINR, p.Central.CapINR)
	}
}

func TestSubsidyStateCap(t *testing.T) {
	p := DefaultCost()

	r := Subsidy(p, 2)
	if r.StateINR != 10000 {
		t.Fatalf("2 kW state subsidy = %v, want 10000", r.StateINR)
	}

	r = Subsidy(p, 10)
	if r.StateINR != p.State.CapINR {
		t.Fatalf("10 kW state subsidy = %v, want cap %v", r.StateINR, p.State.CapINR)
	}
}

func TestSubsidyNetCostIdentity(t *testing.T) {
	p := DefaultCost()

	for _, kw := range []float64{0.5, 1, 2, 3, 3.7, 5, 10, 15} {
		r := Subsidy(p, kw)

		want := r.GrossCostINR - r.CentralINR - r.StateINR
		if want < 0 {
			want = 0
		}
		if r.NetCostINR != want {
			t.Fatalf("kw=%v: net %v != max(0, gross-central-state) %v", kw, r.NetCostINR, want)
		}
		if r.NetCostINR < 0 {
			t.Fatalf("kw=%v: negative net cost %v", kw, r.NetCostINR)
		}
		if r.SubsidyINR() != r.CentralINR+r.StateINR {
			t.Fatalf("kw=%v: combined subsidy mismatch", kw)
		}
	}
}

func TestSubsidyNetCostFloorsAtZero(t *testing.T) {
	p := CostPolicy{
		BasePerKwINR: 1000,
		Central:      CentralSubsidyPolicy{SlabKw: 2, SlabPerKwINR: 30000, ExtraPerKwINR: 18000, CapINR: 78000},
		State:        StateSubsidyPolicy{PerKwINR: 5000, CapINR: 15000},
	}

	r := Subsidy(p, 1)
	if r.NetCostINR != 0 {
		t.Fatalf("subsidy above gross must floor net at 0, got %v", r.NetCostINR)
	}
}
