package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateOffersDiscountTiers(t *testing.T) {
	// Fresh inventory: shallow discounts, floor not in play
	offers := calculateOffers(50000, 44000, 10, 0)

	assert.Equal(t, 45000.0, offers.Aggressive) // 10% off
	assert.Equal(t, 46500.0, offers.Reasonable) // 7% off
	assert.Equal(t, 47500.0, offers.Likely)     // 5% off
	assert.Equal(t, 79.0, offers.CarryingCosts)
}

func TestCalculateOffersRebatesSubtracted(t *testing.T) {
	with := calculateOffers(50000, 40000, 10, 2000)
	without := calculateOffers(50000, 40000, 10, 0)

	assert.Equal(t, without.Aggressive-2000, with.Aggressive)
	assert.Equal(t, without.Likely-2000, with.Likely)
}

func TestCalculateOffersOrdering(t *testing.T) {
	cases := []struct {
		msrp, trueCost float64
		days           int
		rebates        float64
	}{
		{65000, 56550, 318, 10000},
		{50000, 44000, 10, 0},
		{45000, 41000, 95, 1500},
		{80000, 70000, 200, 5000},
		{40000, 36000, 61, 0},
	}

	for _, tc := range cases {
		offers := calculateOffers(tc.msrp, tc.trueCost, tc.days, tc.rebates)
		assert.LessOrEqual(t, offers.Aggressive, offers.Reasonable)
		assert.LessOrEqual(t, offers.Reasonable, offers.Likely)
	}
}

func TestCalculateOffersFloorProperty(t *testing.T) {
	// Deep discounts on an aged unit would undercut the dealer's breakeven;
	// all three targets clamp to the floor
	offers := calculateOffers(65000, 56550, 318, 10000)

	floor := 56550 - 318*CarryingCostPerDay
	assert.InDelta(t, floor, offers.FloorPrice, 0.01)
	assert.GreaterOrEqual(t, offers.Aggressive, offers.FloorPrice)
	assert.GreaterOrEqual(t, offers.Reasonable, offers.FloorPrice)
	assert.GreaterOrEqual(t, offers.Likely, offers.FloorPrice)
	assert.Equal(t, offers.FloorPrice, offers.Aggressive)
}

func TestCalculateOffersTierSelection(t *testing.T) {
	cases := []struct {
		days          int
		aggressivePct float64
	}{
		{0, 10}, {59, 10}, {60, 12}, {90, 17}, {179, 17},
		{180, 23}, {299, 23}, {300, 28}, {400, 28},
	}

	for _, tc := range cases {
		offers := calculateOffers(100000, 1000, tc.days, 0)
		assert.Equal(t, tc.aggressivePct, offers.AggressiveDiscountPct, "days %d", tc.days)
	}
}
