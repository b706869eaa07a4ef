package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateFromTables(t *testing.T) {
	result := Estimate(Request{
		Year:  2026,
		Make:  "Ram",
		Model: "Ram 2500",
		MSRP:  65000,
	})

	assert.Equal(t, 58500.0, result.InvoicePrice)
	assert.Equal(t, 1950.0, result.Holdback)
	assert.Equal(t, 56550.0, result.TrueDealerCost)
	assert.Equal(t, 8450.0, result.MarginFromMSRP)
	assert.Equal(t, 13.0, result.MarginPct)
	assert.Equal(t, SourceEstimated, result.Source)
}

func TestEstimateUsesCachedVerbatim(t *testing.T) {
	result := Estimate(Request{
		Year:       2026,
		Make:       "Ram",
		Model:      "Ram 2500",
		MSRP:       65000,
		DealerCash: 1000,
		Cached:     &CachedInvoice{InvoicePrice: 59000, Holdback: 2000},
	})

	assert.Equal(t, 59000.0, result.InvoicePrice)
	assert.Equal(t, 2000.0, result.Holdback)
	assert.Equal(t, 56000.0, result.TrueDealerCost)
	assert.Equal(t, SourceCached, result.Source)
}

func TestEstimateCostInvariant(t *testing.T) {
	result := Estimate(Request{
		Make:       "Ford",
		Model:      "F-250",
		MSRP:       72000,
		DealerCash: 1500,
	})

	assert.InDelta(t, result.InvoicePrice-result.Holdback-result.DealerCash,
		result.TrueDealerCost, 0.01)
	assert.InDelta(t, result.MSRP-result.TrueDealerCost, result.MarginFromMSRP, 0.01)
}

func TestEstimateZeroMSRP(t *testing.T) {
	// Malformed input still yields a defined result, not a crash
	result := Estimate(Request{Make: "Ford", Model: "F-150", MSRP: 0})
	assert.Equal(t, 0.0, result.MarginPct)
}

func TestEstimateDealerCashReducesTrueCost(t *testing.T) {
	without := Estimate(Request{Make: "Ram", Model: "Ram 2500", MSRP: 65000})
	with := Estimate(Request{Make: "Ram", Model: "Ram 2500", MSRP: 65000, DealerCash: 2500})

	assert.Equal(t, without.TrueDealerCost-2500, with.TrueDealerCost)
}
