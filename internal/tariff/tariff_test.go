package tariff

import "testing"

func TestRateKnownProvider(t *testing.T) {
	if got := Rate("tata-power-ddl", 6.0); got != 8.0 {
		t.Fatalf("Rate(tata-power-ddl) = %v, want 8.0", got)
	}
	if got := Rate("  TATA-POWER-DDL ", 6.0); got != 8.0 {
		t.Fatalf("provider keys should be case and space insensitive, got %v", got)
	}
}

func TestRateUnknownProviderFallsBack(t *testing.T) {
	if got := Rate("no-such-discom", 6.5); got != 6.5 {
		t.Fatalf("unknown provider should use fallback, got %v", got)
	}
}

func TestUnitsFromBill(t *testing.T) {
	units, ok := UnitsFromBill(2000, "avg", 6.0)
	if !ok {
		t.Fatal("positive bill should convert")
	}
	if units <= 0 {
		t.Fatalf("units must be positive, got %v", units)
	}
	// 2000 / 6.0
	if units < 333 || units > 334 {
		t.Fatalf("units = %v, want ~333.3", units)
	}
}

func TestUnitsFromBillRejectsNonPositive(t *testing.T) {
	if _, ok := UnitsFromBill(0, "avg", 6.0); ok {
		t.Fatal("zero bill must not convert")
	}
	if _, ok := UnitsFromBill(-50, "avg", 6.0); ok {
		t.Fatal("negative bill must not convert")
	}
}

func TestProvidersCatalog(t *testing.T) {
	list := Providers()
	if len(list) == 0 {
		t.Fatal("catalog is empty")
	}
	if list[0].Key != "avg" {
		t.Fatalf("first option should be the average fallback, got %q", list[0].Key)
	}
	for _, p := range list {
		if p.RateINRPerKwh <= 0 {
			t.Fatalf("provider %q has non-positive tariff", p.Key)
		}
		label, ok := Label(p.Key)
		if !ok || label == "" {
			t.Fatalf("provider %q has no label", p.Key)
		}
	}
}
