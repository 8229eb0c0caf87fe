package estimate

import "testing"

func f(v float64) *float64 { return &v }

func TestSystemSizeKWAreaOnly(t *testing.T) {
	p := DefaultSizing()

	kw := SystemSizeKW(p, f(30), nil)
	if kw != 3 {
		t.Fatalf("expected 3 kW from 30 m2, got %v", kw)
	}
}

func TestSystemSizeKWDemandOnly(t *testing.T) {
	p := DefaultSizing()

	kw := SystemSizeKW(p, nil, f(4400))
	if kw != 4 {
		t.Fatalf("expected 4 kW from 4400 kWh/yr, got %v", kw)
	}
}

func TestSystemSizeKWTakesSmallerConstraint(t *testing.T) {
	p := DefaultSizing()

	// Area supports 10 kW but demand only justifies 2.
	kw := SystemSizeKW(p, f(100), f(2200))
	if kw != 2 {
		t.Fatalf("expected demand-bound 2 kW, got %v", kw)
	}
}

func TestSystemSizeKWClamps(t *testing.T) {
	p := DefaultSizing()

	if kw := SystemSizeKW(p, f(2), nil); kw != p.MinKw {
		t.Fatalf("tiny roof should clamp to min %v, got %v", p.MinKw, kw)
	}
	if kw := SystemSizeKW(p, f(1000), nil); kw != p.MaxKw {
		t.Fatalf("huge roof should clamp to max %v, got %v", p.MaxKw, kw)
	}
}

func TestSystemSizeKWNoInputs(t *testing.T) {
	if kw := SystemSizeKW(DefaultSizing(), nil, nil); kw != 0 {
		t.Fatalf("no inputs should size to 0, got %v", kw)
	}
}

func TestSystemSizeKWPositiveWheneverInputPositive(t *testing.T) {
	p := DefaultSizing()
	for _, area := range []float64{0.5, 1, 7, 42, 300} {
		if kw := SystemSizeKW(p, f(area), nil); kw <= 0 {
			t.Fatalf("area %v produced non-positive size %v", area, kw)
		}
	}
	for _, demand := range []float64{10, 500, 1100, 90000} {
		if kw := SystemSizeKW(p, nil, f(demand)); kw <= 0 {
			t.Fatalf("demand %v produced non-positive size %v", demand, kw)
		}
	}
}

func TestSystemSizeKWMonotone(t *testing.T) {
	p := DefaultSizing()

	var prev float64
	for area := 5.0; area <= 200; area += 5 {
		kw := SystemSizeKW(p, f(area), nil)
		if kw < prev {
			t.Fatalf("size decreased from %v to %v at area %v", prev, kw, area)
		}
		prev = kw
	}

	prev = 0
	for demand := 500.0; demand <= 20000; demand += 500 {
		kw := SystemSizeKW(p, f(60), f(demand))
		if kw < prev {
			t.Fatalf("size decreased from %v to %v at demand %v", prev, kw, demand)
		}
		prev = kw
	}
}
