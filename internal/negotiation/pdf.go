package negotiation

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFGenerator renders a negotiation brief as a printable one-pager the
// buyer can take to the dealership.
type PDFGenerator struct {
	pdf *gofpdf.Fpdf
}

// NewPDFGenerator creates a PDF generator with the standard page setup.
func NewPDFGenerator() *PDFGenerator {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	return &PDFGenerator{pdf: pdf}
}

// Generate renders the brief for a vehicle and returns the PDF bytes.
func (g *PDFGenerator) Generate(in Input, brief *Brief) ([]byte, error) {
	g.pdf.AddPage()

	g.addTitle(fmt.Sprintf("Negotiation Brief: %d %s %s", in.Year, in.Make, in.Model))

	g.addSection("Dealer Economics")
	econ := brief.DealerEconomics
	g.addKeyValue("Invoice Price", money(econ.InvoicePrice))
	g.addKeyValue("Holdback", money(econ.Holdback))
	g.addKeyValue("True Dealer Cost", money(econ.TrueDealerCost))
	g.addKeyValue("Carrying Costs", money(econ.CarryingCosts))
	g.addKeyValue("Curtailment Estimate", money(econ.CurtailmentEstimate))
	g.addKeyValue("Dealer Breakeven", money(econ.DealerBreakeven))
	g.addKeyValue("Asking vs True Cost", money(econ.AskingVsTrueCost))

	g.addSection("Offer Targets")
	g.addKeyValue("Aggressive", money(brief.OfferTargets.Aggressive))
	g.addKeyValue("Reasonable", money(brief.OfferTargets.Reasonable))
	g.addKeyValue("Likely Settlement", money(brief.OfferTargets.LikelySettlement))

	g.addSection("Talking Points")
	for _, tp := range brief.TalkingPoints {
		g.addTalkingPoint(tp)
	}

	var buf bytes.Buffer
	if err := g.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render brief PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (g *PDFGenerator) addTitle(title string) {
	g.pdf.SetFont("Arial", "B", 16)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	g.pdf.Ln(4)
}

func (g *PDFGenerator) addSection(title string) {
	g.pdf.Ln(4)
	g.pdf.SetFont("Arial", "B", 12)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	g.pdf.Ln(1)
}

func (g *PDFGenerator) addKeyValue(key, value string) {
	g.pdf.SetFont("Arial", "B", 10)
	g.pdf.CellFormat(60, 6, key+":", "", 0, "L", false, 0, "")
	g.pdf.SetFont("Arial", "", 10)
	g.pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *PDFGenerator) addTalkingPoint(tp TalkingPoint) {
	g.pdf.SetFont("Arial", "B", 10)
	g.pdf.CellFormat(0, 6, fmt.Sprintf("%s (leverage: %s)", tp.Category, tp.Leverage), "", 1, "L", false, 0, "")
	g.pdf.SetFont("Arial", "", 9)
	g.pdf.MultiCell(0, 5, tp.Point, "", "L", false)
	g.pdf.SetFont("Arial", "I", 9)
	g.pdf.SetTextColor(80, 80, 80)
	g.pdf.MultiCell(0, 5, tp.Script, "", "L", false)
	g.pdf.SetTextColor(0, 0, 0)
	g.pdf.Ln(2)
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
