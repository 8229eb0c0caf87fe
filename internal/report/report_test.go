package report

import (
	"bytes"
	"io"
	"testing"

	"github.com/solarishq/solaris/internal/estimate"
	"github.com/solarishq/solaris/internal/journey"
	"github.com/solarishq/solaris/internal/scheme"
	"github.com/solarishq/solaris/internal/scoring"
	"github.com/solarishq/solaris/internal/subsidy/domain"
)

func sampleBundle() *domain.ResultBundle {
	payback := 3.84
	return &domain.ResultBundle{
		Journey: journey.Journey{
			State:           "Delhi",
			ConsumerSegment: "residential",
		},
		TariffINRPerKwh: 6,
		SystemSizeKw:    3,
		AnnualOutputKwh: 3300,
		Subsidy: estimate.Result{
			GrossCostINR: 174000,
			CentralINR:   78000,
			StateINR:     15000,
			NetCostINR:   81000,
		},
		Financial: scoring.Financial{
			MonthlySavingsINR:   1760,
			AnnualSavingsINR:    21120,
			PaybackYears:        &payback,
			CO2AvoidedKgPerYear: 2706,
		},
		Schemes: []domain.ScoredScheme{
			{Scheme: scheme.Scheme{ID: "pm-surya-ghar", Name: "PM Surya Ghar"}, Score: 88.5},
		},
	}
}

func TestEstimatePDF(t *testing.T) {
	g := NewGenerator()

	r, err := g.EstimatePDF("Asha", sampleBundle())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty document")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("not a PDF, starts with %q", data[:min(8, len(data))])
	}
}

func TestEstimatePDFWithoutPayback(t *testing.T) {
	g := NewGenerator()

	b := sampleBundle()
	b.Financial.PaybackYears = nil
	b.Schemes = nil

	if _, err := g.EstimatePDF("Asha", b); err != nil {
		t.Fatalf("generate without payback: %v", err)
	}
}
