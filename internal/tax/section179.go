package tax

import (
	"fmt"
	"math"
	"strings"
)

// Request holds the inputs to a Section 179 calculation. GVWROverride, when
// positive, takes precedence over the model-derived weight rating. An omitted
// LoanTermMonths defaults to 60.
type Request struct {
	VehiclePrice     float64 `json:"vehicle_price" binding:"required,gt=0"`
	BusinessUsePct   float64 `json:"business_use_pct" binding:"gte=0,lte=100"`
	TaxBracket       float64 `json:"tax_bracket" binding:"gte=0,lte=50"`
	StateTaxRate     float64 `json:"state_tax_rate"`
	DownPayment      float64 `json:"down_payment"`
	LoanInterestRate float64 `json:"loan_interest_rate"`
	LoanTermMonths   int     `json:"loan_term_months" binding:"omitempty,gte=12,lte=120"`
	Model            string  `json:"model"`
	GVWROverride     int     `json:"gvwr_override"`
}

// Financing breaks a loan scenario into monthly terms with the first-year
// tax benefit spread across twelve months for comparison.
type Financing struct {
	DownPayment          float64 `json:"down_payment"`
	LoanAmount           float64 `json:"loan_amount"`
	MonthlyPayment       float64 `json:"monthly_payment"`
	TotalInterest        float64 `json:"total_interest"`
	TotalLoanCost        float64 `json:"total_loan_cost"`
	MonthlyTaxBenefit    float64 `json:"monthly_tax_benefit"`
	EffectiveMonthlyCost float64 `json:"effective_monthly_cost"`
}

// Result reports qualification, the first-year deduction, tax savings, and
// effective cost. GVWR is zero when the weight rating is unknown.
type Result struct {
	Qualifies             bool       `json:"qualifies"`
	Reason                string     `json:"reason,omitempty"`
	VehiclePrice          float64    `json:"vehicle_price"`
	BusinessUsePct        float64    `json:"business_use_pct"`
	GVWR                  int        `json:"gvwr,omitempty"`
	GVWRNote              string     `json:"gvwr_note,omitempty"`
	CapNote               string     `json:"cap_note,omitempty"`
	FirstYearDeduction    float64    `json:"first_year_deduction"`
	FederalTaxSavings     float64    `json:"federal_tax_savings"`
	StateTaxSavings       float64    `json:"state_tax_savings"`
	TotalTaxSavings       float64    `json:"total_tax_savings"`
	EffectiveCostAfterTax float64    `json:"effective_cost_after_tax"`
	Financing             *Financing `json:"financing,omitempty"`
	TaxYear               int        `json:"tax_year"`
	Section179Limit       float64    `json:"section_179_limit"`
	BonusDepreciationRate float64    `json:"bonus_depreciation_rate"`
}

// LookupGVWR finds weight rating info for a model, falling back to a
// substring match in either direction so listing names like "Ram Ram 2500"
// still resolve.
func LookupGVWR(model string) (GVWRInfo, bool) {
	if model == "" {
		return GVWRInfo{}, false
	}
	for _, m := range modelGVWRTable {
		if m.Model == model {
			return m.Info, true
		}
	}
	for _, m := range modelGVWRTable {
		if strings.Contains(model, m.Model) || strings.Contains(m.Model, model) {
			return m.Info, true
		}
	}
	return GVWRInfo{}, false
}

// Calculate runs the Section 179 deduction analysis for a business vehicle.
func Calculate(req Request) Result {
	if req.LoanTermMonths == 0 {
		req.LoanTermMonths = 60
	}

	if req.BusinessUsePct < BusinessUseMinimum {
		return Result{
			Qualifies: false,
			Reason: fmt.Sprintf("Business use must be at least %d%%. You entered %g%%.",
				BusinessUseMinimum, req.BusinessUsePct),
			VehiclePrice:   req.VehiclePrice,
			BusinessUsePct: req.BusinessUsePct,
		}
	}

	gvwr := 0
	gvwrKnown := false
	gvwrNote := ""
	isPickup := false

	if req.GVWROverride > 0 {
		gvwr = req.GVWROverride
		gvwrKnown = true
		gvwrNote = "Using manually entered GVWR"
		// The model still decides pickup status under a manual GVWR
		if info, ok := LookupGVWR(req.Model); ok {
			isPickup = info.IsPickup6ftTB
		}
	} else if info, ok := LookupGVWR(req.Model); ok {
		gvwr = info.GVWRMin
		gvwrKnown = true
		isPickup = info.IsPickup6ftTB
		gvwrNote = fmt.Sprintf("Estimated GVWR range: %s-%s lbs",
			commas(info.GVWRMin), commas(info.GVWRMax))
	} else {
		gvwrNote = "Model not in database. Enter GVWR manually for accurate calculation."
	}

	exceedsGVWR := gvwrKnown && gvwr > GVWRThreshold

	var deductionCap float64
	var capNote string
	switch {
	case exceedsGVWR && isPickup:
		deductionCap = Section179Limit
		capNote = "Pickup truck with 6ft+ bed: exempt from $32K SUV cap. Full Section 179 limit applies."
	case exceedsGVWR:
		deductionCap = HeavySUVCap
		capNote = fmt.Sprintf("Non-pickup vehicle over %s lbs: heavy SUV cap of $%s applies.",
			commas(GVWRThreshold), commas(HeavySUVCap))
	case gvwrKnown:
		deductionCap = LuxuryAutoFirstYearCap
		capNote = fmt.Sprintf("Vehicle under %s lbs GVWR. IRC 280F luxury auto limit of $%s applies (first year with bonus depreciation).",
			commas(GVWRThreshold), commas(LuxuryAutoFirstYearCap))
	default:
		deductionCap = Section179Limit
		capNote = "GVWR unknown. Assuming full Section 179 eligibility. Verify GVWR for accuracy."
	}

	businessPortion := req.VehiclePrice * (req.BusinessUsePct / 100)
	deduction := math.Min(businessPortion, math.Min(deductionCap, Section179Limit))

	federalSavings := deduction * (req.TaxBracket / 100)
	stateSavings := deduction * (req.StateTaxRate / 100)
	totalSavings := federalSavings + stateSavings

	return Result{
		Qualifies:             true,
		VehiclePrice:          req.VehiclePrice,
		BusinessUsePct:        req.BusinessUsePct,
		GVWR:                  gvwr,
		GVWRNote:              gvwrNote,
		CapNote:               capNote,
		FirstYearDeduction:    round2(deduction),
		FederalTaxSavings:     round2(federalSavings),
		StateTaxSavings:       round2(stateSavings),
		TotalTaxSavings:       round2(totalSavings),
		EffectiveCostAfterTax: round2(req.VehiclePrice - totalSavings),
		Financing:             calculateFinancing(req, totalSavings),
		TaxYear:               TaxYear,
		Section179Limit:       Section179Limit,
		BonusDepreciationRate: BonusDepreciationRate,
	}
}

// calculateFinancing returns loan terms when the request describes a
// financed purchase, covering both interest-bearing and 0% APR loans.
func calculateFinancing(req Request, totalSavings float64) *Financing {
	if req.LoanTermMonths <= 0 {
		return nil
	}
	loanAmount := req.VehiclePrice - req.DownPayment
	if loanAmount <= 0 {
		return nil
	}

	monthlyTaxBenefit := totalSavings / 12

	if req.LoanInterestRate > 0 {
		monthlyRate := req.LoanInterestRate / 100 / 12
		growth := math.Pow(1+monthlyRate, float64(req.LoanTermMonths))
		monthlyPayment := loanAmount * (monthlyRate * growth) / (growth - 1)
		totalInterest := monthlyPayment*float64(req.LoanTermMonths) - loanAmount

		return &Financing{
			DownPayment:          round2(req.DownPayment),
			LoanAmount:           round2(loanAmount),
			MonthlyPayment:       round2(monthlyPayment),
			TotalInterest:        round2(totalInterest),
			TotalLoanCost:        round2(loanAmount + totalInterest),
			MonthlyTaxBenefit:    round2(monthlyTaxBenefit),
			EffectiveMonthlyCost: round2(monthlyPayment - monthlyTaxBenefit),
		}
	}

	monthlyPayment := loanAmount / float64(req.LoanTermMonths)
	return &Financing{
		DownPayment:          round2(req.DownPayment),
		LoanAmount:           round2(loanAmount),
		MonthlyPayment:       round2(monthlyPayment),
		TotalInterest:        0,
		TotalLoanCost:        round2(loanAmount),
		MonthlyTaxBenefit:    round2(monthlyTaxBenefit),
		EffectiveMonthlyCost: round2(monthlyPayment - monthlyTaxBenefit),
	}
}

func commas(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
