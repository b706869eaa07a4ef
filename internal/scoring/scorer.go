package scoring

import (
	"math"
	"time"

	"dealhawk/backend/internal/pricing"
	"dealhawk/backend/internal/refdata"
)

// CarryingCostPerDay is the average daily floor-plan interest a dealer pays
// on financed inventory while a unit sits unsold.
const CarryingCostPerDay = 7.90

// Factor weights. Price dominates because margin capture is what the buyer
// actually takes home; the rest measure leverage.
const (
	priceWeight     = 0.35
	daysWeight      = 0.25
	incentiveWeight = 0.20
	supplyWeight    = 0.12
	timingWeight    = 0.08
)

// scoreStep maps a raw signal threshold to a factor score. Each factor is an
// ordered list evaluated top-down; the first threshold the signal meets wins.
// Negotiation leverage in this market moves in visible tiers, not smoothly,
// so the tiers are deliberate business data rather than a curve.
type scoreStep struct {
	Threshold float64
	Score     float64
}

// Margin capture percentage tiers for the price factor.
var priceSteps = []scoreStep{
	{80, 90},
	{60, 75},
	{40, 55},
	{20, 35},
	{0, 15},
}

// Days-on-lot tiers. More days = more dealer pain = better for the buyer.
var daysSteps = []scoreStep{
	{270, 100},
	{180, 80},
	{120, 65},
	{90, 50},
	{60, 35},
	{30, 20},
}

// Rebates as a percentage of MSRP.
var incentiveSteps = []scoreStep{
	{15, 100},
	{10, 85},
	{7, 70},
	{5, 55},
	{3, 40},
	{1, 25},
}

// Model days supply relative to the industry average.
var supplySteps = []scoreStep{
	{4, 100},
	{2.5, 85},
	{1.5, 65},
	{1.0, 45},
	{0.7, 25},
}

var gradeSteps = []struct {
	Threshold int
	Grade     string
}{
	{90, "A+"},
	{80, "A"},
	{70, "B+"},
	{60, "B"},
	{50, "C+"},
	{40, "C"},
	{30, "D"},
}

// ScoreDeal scores a vehicle deal from 0-100; higher scores mean a better
// deal for the buyer. A zero scoreDate means today. When the caller has a
// cached invoice/holdback pair from the persistence layer it is used
// verbatim and carried through to the result's pricing block.
func ScoreDeal(listing ListingFacts, scoreDate time.Time, cached *pricing.CachedInvoice) Result {
	if scoreDate.IsZero() {
		scoreDate = time.Now()
	}

	pr := pricing.Estimate(pricing.Request{
		Year:       listing.Year,
		Make:       listing.Make,
		Model:      listing.Model,
		Trim:       listing.Trim,
		MSRP:       listing.MSRP,
		DealerCash: listing.DealerCash,
		Cached:     cached,
	})
	trueCost := pr.TrueDealerCost

	priceScore := scorePrice(listing.AskingPrice, trueCost, listing.MSRP)
	daysScore := scoreDaysOnLot(listing.DaysOnLot)
	incentiveScore := scoreIncentives(listing.RebatesAvailable, listing.MSRP)
	supplyScore := scoreMarketSupply(listing.Model)
	timingScore := scoreTiming(scoreDate)

	total := priceScore*priceWeight +
		daysScore*daysWeight +
		incentiveScore*incentiveWeight +
		supplyScore*supplyWeight +
		timingScore*timingWeight
	totalScore := int(math.Round(total))
	if totalScore > 100 {
		totalScore = 100
	}
	if totalScore < 0 {
		totalScore = 0
	}

	offers := calculateOffers(listing.MSRP, trueCost, listing.DaysOnLot, listing.RebatesAvailable)

	return Result{
		Score: totalScore,
		Grade: scoreToGrade(totalScore),
		Breakdown: Breakdown{
			Price:        FactorScore{Score: round1(priceScore), Weight: priceWeight, Max: 100},
			DaysOnLot:    FactorScore{Score: round1(daysScore), Weight: daysWeight, Max: 100},
			Incentives:   FactorScore{Score: round1(incentiveScore), Weight: incentiveWeight, Max: 100},
			MarketSupply: FactorScore{Score: round1(supplyScore), Weight: supplyWeight, Max: 100},
			Timing:       FactorScore{Score: round1(timingScore), Weight: timingWeight, Max: 100},
		},
		Pricing: pr,
		Offers:  offers,
	}
}

// scorePrice measures what fraction of the dealer's available margin the
// buyer is capturing at the asking price.
func scorePrice(asking, trueCost, msrp float64) float64 {
	if trueCost <= 0 || msrp <= 0 {
		return 50 // no data, neutral score
	}

	margin := msrp - trueCost
	if margin <= 0 {
		return 50
	}

	if asking <= trueCost {
		return 100 // below dealer cost
	}

	capturePct := (msrp - asking) / margin * 100
	if capturePct < 0 {
		return 5 // above MSRP
	}
	return stepScore(priceSteps, capturePct, 5)
}

func scoreDaysOnLot(days int) float64 {
	return stepScore(daysSteps, float64(days), 10)
}

func scoreIncentives(rebates, msrp float64) float64 {
	if msrp <= 0 {
		return 0
	}
	return stepScore(incentiveSteps, rebates/msrp*100, 10)
}

func scoreMarketSupply(model string) float64 {
	ratio := float64(refdata.DaysSupply(model)) / refdata.IndustryAvgDaysSupply
	return stepScore(supplySteps, ratio, 10)
}

// scoreTiming rewards month-end, quarter-end, and year-end shopping, when
// dealer sales targets bite hardest.
func scoreTiming(d time.Time) float64 {
	score := 30.0

	day := d.Day()
	month := int(d.Month())

	switch {
	case day >= 26:
		score += 30
	case day >= 20:
		score += 15
	}

	if month%3 == 0 {
		score += 25 // quarter-end month
	}
	if month == 12 {
		score += 15
	}

	if score > 100 {
		score = 100
	}
	return score
}

// stepScore walks an ordered step table top-down and returns the score of
// the first tier the signal meets, or the floor when none match.
func stepScore(steps []scoreStep, signal, floor float64) float64 {
	for _, s := range steps {
		if signal >= s.Threshold {
			return s.Score
		}
	}
	return floor
}

func scoreToGrade(score int) string {
	for _, g := range gradeSteps {
		if score >= g.Threshold {
			return g.Grade
		}
	}
	return "F"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
