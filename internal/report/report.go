// Package report renders the downloadable PDF estimate for a completed
// subsidy journey.
package report

import (
	"bytes"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/solarishq/solaris/internal/subsidy/domain"
)

const maxSchemesInReport = 5

// Generator builds estimate PDFs.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// EstimatePDF renders the result bundle for download.
func (g *Generator) EstimatePDF(userName string, b *domain.ResultBundle) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Solaris Rooftop Estimate", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Prepared for: "+userName, props.Text{Top: 0}),
			text.New("State: "+b.Journey.State, props.Text{Top: 4}),
			text.New("Segment: "+b.Journey.ConsumerSegment, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Recommended system: %.1f kW", b.SystemSizeKw), props.Text{Top: 0, Style: fontstyle.Bold}),
			text.New(fmt.Sprintf("Annual output: %.0f kWh", b.AnnualOutputKwh), props.Text{Top: 4}),
		),
	)

	m.AddRow(10,
		text.NewCol(12, "Cost breakdown", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}),
	)
	addMoneyRow(m, "Gross system cost", b.Subsidy.GrossCostINR)
	addMoneyRow(m, "Central subsidy", -b.Subsidy.CentralINR)
	addMoneyRow(m, "State subsidy", -b.Subsidy.StateINR)
	addMoneyRow(m, "Net cost", b.Subsidy.NetCostINR)

	m.AddRow(10,
		text.NewCol(12, "Savings projection", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}),
	)
	addMoneyRow(m, "Monthly savings", b.Financial.MonthlySavingsINR)
	addMoneyRow(m, "Annual savings", b.Financial.AnnualSavingsINR)
	if b.Financial.PaybackYears != nil {
		m.AddRow(8,
			text.NewCol(8, "Payback period", props.Text{Size: 9}),
			text.NewCol(4, fmt.Sprintf("%.1f years", *b.Financial.PaybackYears), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(8,
		text.NewCol(8, "CO2 avoided per year", props.Text{Size: 9}),
		text.NewCol(4, fmt.Sprintf("%.0f kg", b.Financial.CO2AvoidedKgPerYear), props.Text{Size: 9, Align: align.Right}),
	)

	if len(b.Schemes) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Top matched schemes", props.Text{Size: 12, Style: fontstyle.Bold, Top: 2}),
		)
		m.AddRow(8,
			text.NewCol(8, "Scheme", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(4, "Match score", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		schemes := b.Schemes
		if len(schemes) > maxSchemesInReport {
			schemes = schemes[:maxSchemesInReport]
		}
		for _, sc := range schemes {
			m.AddRow(8,
				text.NewCol(8, sc.Name, props.Text{Size: 9}),
				text.NewCol(4, fmt.Sprintf("%.1f", sc.Score), props.Text{Size: 9, Align: align.Right}),
			)
		}
	}

	m.AddRow(14,
		text.NewCol(12, "Figures are indicative. Final pricing depends on vendor quotes and DISCOM approval.", props.Text{Size: 8, Top: 6}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func addMoneyRow(m core.Maroto, label string, amount float64) {
	m.AddRow(8,
		text.NewCol(8, label, props.Text{Size: 9}),
		text.NewCol(4, formatINR(amount), props.Text{Size: 9, Align: align.Right}),
	)
}

func formatINR(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-₹%.0f", -v)
	}
	return fmt.Sprintf("₹%.0f", v)
}
