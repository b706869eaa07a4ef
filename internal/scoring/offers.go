package scoring

import "math"

// discountTier maps a days-on-lot threshold to the discount percentages used
// for the three offer targets. Aged inventory supports deeper discounts.
type discountTier struct {
	MinDays    int
	Aggressive float64
	Reasonable float64
	Likely     float64
}

var discountTiers = []discountTier{
	{300, 0.28, 0.23, 0.20},
	{180, 0.23, 0.18, 0.15},
	{90, 0.17, 0.13, 0.10},
	{60, 0.12, 0.09, 0.07},
}

var defaultDiscountTier = discountTier{0, 0.10, 0.07, 0.05}

// calculateOffers generates three offer targets from MSRP discounts, floored
// at the dealer's breakeven (true cost minus carrying costs) so we never
// recommend a number that leaves the dealer underwater net of holding costs.
// The floor is identical across all three targets, so ordering is preserved.
func calculateOffers(msrp, trueCost float64, daysOnLot int, rebates float64) OfferTargets {
	carryingCosts := float64(daysOnLot) * CarryingCostPerDay

	tier := defaultDiscountTier
	for _, t := range discountTiers {
		if daysOnLot >= t.MinDays {
			tier = t
			break
		}
	}

	aggressive := msrp*(1-tier.Aggressive) - rebates
	reasonable := msrp*(1-tier.Reasonable) - rebates
	likely := msrp*(1-tier.Likely) - rebates

	floor := trueCost - carryingCosts
	aggressive = math.Max(aggressive, floor)
	reasonable = math.Max(reasonable, floor)
	likely = math.Max(likely, floor)

	return OfferTargets{
		Aggressive:            round2(aggressive),
		Reasonable:            round2(reasonable),
		Likely:                round2(likely),
		CarryingCosts:         round2(carryingCosts),
		AggressiveDiscountPct: tier.Aggressive * 100,
		ReasonableDiscountPct: tier.Reasonable * 100,
		LikelyDiscountPct:     tier.Likely * 100,
		FloorPrice:            round2(floor),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
