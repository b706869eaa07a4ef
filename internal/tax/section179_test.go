package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBusinessUseGate(t *testing.T) {
	result := Calculate(Request{
		VehiclePrice:   80000,
		BusinessUsePct: 40,
		TaxBracket:     35,
		Model:          "Ram 2500",
	})

	assert.False(t, result.Qualifies)
	assert.Contains(t, result.Reason, "at least 50%")
	assert.Contains(t, result.Reason, "40%")
	assert.Zero(t, result.FirstYearDeduction)
}

func TestCalculateHeavyPickupFullDeduction(t *testing.T) {
	result := Calculate(Request{
		VehiclePrice:   80000,
		BusinessUsePct: 100,
		TaxBracket:     35,
		StateTaxRate:   5,
		Model:          "Ram 2500",
	})

	require.True(t, result.Qualifies)
	assert.Equal(t, 9000, result.GVWR)
	assert.Contains(t, result.CapNote, "exempt from $32K SUV cap")
	assert.Equal(t, 80000.0, result.FirstYearDeduction)
	assert.Equal(t, 28000.0, result.FederalTaxSavings)
	assert.Equal(t, 4000.0, result.StateTaxSavings)
	assert.Equal(t, 32000.0, result.TotalTaxSavings)
	assert.Equal(t, 48000.0, result.EffectiveCostAfterTax)
	assert.Equal(t, 2026, result.TaxYear)
}

func TestCalculatePartialBusinessUse(t *testing.T) {
	result := Calculate(Request{
		VehiclePrice:   100000,
		BusinessUsePct: 80,
		TaxBracket:     24,
		Model:          "F-350",
	})

	require.True(t, result.Qualifies)
	assert.Equal(t, 80000.0, result.FirstYearDeduction)
	assert.Equal(t, 19200.0, result.FederalTaxSavings)
}

func TestCalculateHeavySUVCap(t *testing.T) {
	// Over the weight threshold but not a 6ft-bed pickup
	result := Calculate(Request{
		VehiclePrice:   90000,
		BusinessUsePct: 100,
		TaxBracket:     32,
		Model:          "4Runner",
		GVWROverride:   7000,
	})

	require.True(t, result.Qualifies)
	assert.Equal(t, 7000, result.GVWR)
	assert.Equal(t, "Using manually entered GVWR", result.GVWRNote)
	assert.Contains(t, result.CapNote, "heavy SUV cap of $32,000")
	assert.Equal(t, 32000.0, result.FirstYearDeduction)
}

func TestCalculateOverrideKeepsPickupStatus(t *testing.T) {
	// Manual GVWR with a known pickup model still earns the cap exemption
	result := Calculate(Request{
		VehiclePrice:   70000,
		BusinessUsePct: 100,
		TaxBracket:     35,
		Model:          "F-150",
		GVWROverride:   7000,
	})

	require.True(t, result.Qualifies)
	assert.Contains(t, result.CapNote, "Full Section 179 limit applies")
	assert.Equal(t, 70000.0, result.FirstYearDeduction)
}

func TestCalculateLuxuryAutoCap(t *testing.T) {
	// Tacoma's minimum GVWR sits under 6,000 lbs
	result := Calculate(Request{
		VehiclePrice:   45000,
		BusinessUsePct: 100,
		TaxBracket:     24,
		Model:          "Tacoma",
	})

	require.True(t, result.Qualifies)
	assert.Equal(t, 5400, result.GVWR)
	assert.Contains(t, result.CapNote, "luxury auto limit of $20,400")
	assert.Equal(t, 20400.0, result.FirstYearDeduction)
	assert.Equal(t, 4896.0, result.FederalTaxSavings)
}

func TestCalculateUnknownModelAssumesEligible(t *testing.T) {
	result := Calculate(Request{
		VehiclePrice:   85000,
		BusinessUsePct: 100,
		TaxBracket:     35,
		Model:          "Cybertruck",
	})

	require.True(t, result.Qualifies)
	assert.Zero(t, result.GVWR)
	assert.Contains(t, result.GVWRNote, "Enter GVWR manually")
	assert.Contains(t, result.CapNote, "Assuming full Section 179 eligibility")
	assert.Equal(t, 85000.0, result.FirstYearDeduction)
}

func TestCalculateDeductionNeverExceedsLimit(t *testing.T) {
	result := Calculate(Request{
		VehiclePrice:   2_000_000,
		BusinessUsePct: 100,
		TaxBracket:     37,
		Model:          "F-450",
	})

	require.True(t, result.Qualifies)
	assert.Equal(t, 1_250_000.0, result.FirstYearDeduction)
}

func TestCalculateFinancingWithInterest(t *testing.T) {
	result := Calculate(Request{
		VehiclePrice:     80000,
		BusinessUsePct:   100,
		TaxBracket:       35,
		DownPayment:      10000,
		LoanInterestRate: 6,
		LoanTermMonths:   60,
		Model:            "Ram 2500",
	})

	require.NotNil(t, result.Financing)
	fin := result.Financing
	assert.Equal(t, 10000.0, fin.DownPayment)
	assert.Equal(t, 70000.0, fin.LoanAmount)
	assert.InDelta(t, 1353.30, fin.MonthlyPayment, 0.5)
	assert.InDelta(t, fin.MonthlyPayment*60-70000, fin.TotalInterest, 0.5)
	assert.Equal(t, round2(result.TotalTaxSavings/12), fin.MonthlyTaxBenefit)
}

func TestCalculateFinancingZeroAPR(t *testing.T) {
	result := Calculate(Request{
		VehiclePrice:   60000,
		BusinessUsePct: 100,
		TaxBracket:     30,
		LoanTermMonths: 60,
		Model:          "Cybertruck",
	})

	require.NotNil(t, result.Financing)
	fin := result.Financing
	assert.Equal(t, 1000.0, fin.MonthlyPayment)
	assert.Zero(t, fin.TotalInterest)
	assert.Equal(t, 60000.0, fin.TotalLoanCost)
	assert.Equal(t, 1500.0, fin.MonthlyTaxBenefit)
	assert.Equal(t, -500.0, fin.EffectiveMonthlyCost)
}

func TestCalculateFinancingDefaultTerm(t *testing.T) {
	// Omitted loan term means a 60-month 0% APR loan
	result := Calculate(Request{
		VehiclePrice:   72000,
		BusinessUsePct: 100,
		TaxBracket:     25,
		Model:          "Cybertruck",
	})

	require.NotNil(t, result.Financing)
	fin := result.Financing
	assert.Equal(t, 72000.0, fin.LoanAmount)
	assert.Equal(t, 1200.0, fin.MonthlyPayment)
	assert.Equal(t, 1500.0, fin.MonthlyTaxBenefit)
	assert.Equal(t, -300.0, fin.EffectiveMonthlyCost)
}

func TestCalculateNoFinancingWhenPaidCash(t *testing.T) {
	result := Calculate(Request{
		VehiclePrice:   60000,
		BusinessUsePct: 100,
		TaxBracket:     30,
		DownPayment:    60000,
		LoanTermMonths: 60,
		Model:          "Tundra",
	})

	assert.Nil(t, result.Financing)
}

func TestLookupGVWRPartialMatch(t *testing.T) {
	info, ok := LookupGVWR("Ram Ram 2500")

	require.True(t, ok)
	assert.Equal(t, 9000, info.GVWRMin)
	assert.True(t, info.IsPickup6ftTB)
}

func TestLookupGVWRUnknown(t *testing.T) {
	_, ok := LookupGVWR("Model S")
	assert.False(t, ok)

	_, ok = LookupGVWR("")
	assert.False(t, ok)
}
