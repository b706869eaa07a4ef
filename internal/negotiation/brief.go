package negotiation

import (
	"fmt"
	"math"

	"dealhawk/backend/internal/scoring"
)

// curtailmentStep maps a days-on-lot threshold to the fraction of invoice a
// floor-plan lender typically forces the dealer to pay down once a unit ages
// past it.
type curtailmentStep struct {
	MinDays int
	Rate    float64
}

var curtailmentSteps = []curtailmentStep{
	{180, 0.15},
	{120, 0.10},
	{90, 0.05},
}

// GenerateBrief builds a full negotiation brief: dealer cost analysis, offer
// targets, and scripted talking points the buyer can use at the dealership.
func GenerateBrief(in Input) *Brief {
	carryingCosts := round2(float64(in.DaysOnLot) * scoring.CarryingCostPerDay)
	curtailment := estimateCurtailment(in.InvoicePrice, in.DaysOnLot)

	totalCostToHold := carryingCosts + curtailment
	dealerBreakeven := in.TrueDealerCost - totalCostToHold

	aggressive := math.Max(dealerBreakeven, in.TrueDealerCost*0.95)
	reasonable := in.TrueDealerCost
	// Weighted toward dealer cost: settlements skew closer to the dealer's
	// number than a straight midpoint.
	likely := round2((in.TrueDealerCost + in.AskingPrice) * 0.45)

	return &Brief{
		DealerEconomics: DealerEconomics{
			InvoicePrice:         in.InvoicePrice,
			Holdback:             in.Holdback,
			TrueDealerCost:       in.TrueDealerCost,
			CarryingCosts:        carryingCosts,
			CurtailmentEstimate:  curtailment,
			TotalCostToHold:      totalCostToHold,
			DealerBreakeven:      round2(dealerBreakeven),
			AskingVsInvoice:      round2(in.AskingPrice - in.InvoicePrice),
			AskingVsTrueCost:     round2(in.AskingPrice - in.TrueDealerCost),
			DealerMarginAtAsking: round2(in.AskingPrice - in.TrueDealerCost),
		},
		OfferTargets: OfferTargets{
			Aggressive:       round2(aggressive),
			Reasonable:       round2(reasonable),
			LikelySettlement: likely,
		},
		TalkingPoints:    buildTalkingPoints(in, carryingCosts, curtailment),
		RebatesAvailable: in.RebatesAvailable,
	}
}

// estimateCurtailment returns the estimated forced paydown on this unit.
// Nothing is due inside the lender's 90-day grace window.
func estimateCurtailment(invoicePrice float64, daysOnLot int) float64 {
	for _, s := range curtailmentSteps {
		if daysOnLot > s.MinDays {
			return round2(invoicePrice * s.Rate)
		}
	}
	return 0
}

// buildTalkingPoints assembles the scripted arguments in a fixed category
// order. Each point is conditional on the listing's facts except the two
// closers, which always apply.
func buildTalkingPoints(in Input, carryingCosts, curtailment float64) []TalkingPoint {
	var points []TalkingPoint

	if in.DaysOnLot > 30 {
		leverage := LeverageMedium
		if in.DaysOnLot > 90 {
			leverage = LeverageHigh
		}
		points = append(points, TalkingPoint{
			Category: "Floor Plan Costs",
			Leverage: leverage,
			Point: fmt.Sprintf("This %d %s %s has been on your lot for %d days. "+
				"At roughly $%.2f/day in floor plan interest, that's approximately "+
				"$%.0f in carrying costs alone.",
				in.Year, in.Make, in.Model, in.DaysOnLot, scoring.CarryingCostPerDay, carryingCosts),
			Script: fmt.Sprintf("\"I know this truck has been here for %d days. "+
				"The floor plan costs on that have to be significant. "+
				"I'd like to help you move it today.\"", in.DaysOnLot),
		})
	}

	if curtailment > 0 {
		points = append(points, TalkingPoint{
			Category: "Curtailment Pressure",
			Leverage: LeverageHigh,
			Point: fmt.Sprintf("After 90 days, your floor plan lender likely requires "+
				"curtailment payments. Estimated curtailment on this unit: $%.0f.", curtailment),
			Script: "\"I understand that units past 90 days start triggering curtailment. " +
				"Let's find a number that works for both of us so we can close this today.\"",
		})
	}

	if in.AskingPrice > in.InvoicePrice {
		points = append(points, TalkingPoint{
			Category: "Invoice Reference",
			Leverage: LeverageMedium,
			Point: fmt.Sprintf("The asking price is $%.0f above invoice. With holdback "+
				"and dealer cash, your actual cost is closer to $%.0f.",
				in.AskingPrice-in.InvoicePrice, in.TrueDealerCost),
			Script: fmt.Sprintf("\"I've done my research and I know the invoice on this "+
				"truck is around $%.0f. With holdback, your true cost is lower than that. "+
				"I'm looking for a fair deal for both of us.\"", in.InvoicePrice),
		})
	}

	if in.RebatesAvailable > 0 {
		points = append(points, TalkingPoint{
			Category: "Available Rebates",
			Leverage: LeverageMedium,
			Point: fmt.Sprintf("There are $%.0f in manufacturer rebates/incentives "+
				"available on this model right now.", in.RebatesAvailable),
			Script: fmt.Sprintf("\"I want to make sure I'm getting all available incentives. "+
				"I see there's up to $%.0f in current rebates for this model. "+
				"Can you walk me through which ones apply to this VIN?\"", in.RebatesAvailable),
		})
	}

	points = append(points, TalkingPoint{
		Category: "Competing Offers",
		Leverage: LeverageHigh,
		Point:    "Always mention you're getting quotes from multiple dealers.",
		Script: "\"I'm looking at similar trucks at two other dealerships in the area. " +
			"I'd prefer to buy from you, but I need the numbers to make sense. " +
			"What's your best out-the-door price?\"",
	})

	points = append(points, TalkingPoint{
		Category: "Closing Today",
		Leverage: LeverageMedium,
		Point:    "Signal that you're a serious buyer ready to close immediately.",
		Script: "\"I'm ready to sign today if we can agree on a number. " +
			"I have financing arranged. What can you do for me?\"",
	})

	return points
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
