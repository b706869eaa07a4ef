package scoring

import (
	"dealhawk/backend/internal/pricing"
)

// ListingFacts are the raw facts about a listing as supplied by the caller.
// Absent trim and days-on-lot default to zero values, never an error.
type ListingFacts struct {
	AskingPrice      float64 `json:"asking_price"`
	MSRP             float64 `json:"msrp"`
	Make             string  `json:"make"`
	Model            string  `json:"model"`
	Year             int     `json:"year"`
	Trim             string  `json:"trim,omitempty"`
	DaysOnLot        int     `json:"days_on_lot"`
	DealerCash       float64 `json:"dealer_cash"`
	RebatesAvailable float64 `json:"rebates_available"`
}

// FactorScore is one factor's contribution to the total score.
type FactorScore struct {
	Score  float64 `json:"score"`
	Weight float64 `json:"weight"`
	Max    int     `json:"max"`
}

// Breakdown lists the five scoring factors. Weights are fixed:
// 35/25/20/12/8 percent.
type Breakdown struct {
	Price        FactorScore `json:"price"`
	DaysOnLot    FactorScore `json:"days_on_lot"`
	Incentives   FactorScore `json:"incentives"`
	MarketSupply FactorScore `json:"market_supply"`
	Timing       FactorScore `json:"timing"`
}

// OfferTargets are the three suggested offers, each floored at the dealer's
// breakeven (true cost minus carrying costs).
type OfferTargets struct {
	Aggressive            float64 `json:"aggressive"`
	Reasonable            float64 `json:"reasonable"`
	Likely                float64 `json:"likely"`
	CarryingCosts         float64 `json:"carrying_costs"`
	AggressiveDiscountPct float64 `json:"aggressive_discount_pct"`
	ReasonableDiscountPct float64 `json:"reasonable_discount_pct"`
	LikelyDiscountPct     float64 `json:"likely_discount_pct"`
	FloorPrice            float64 `json:"floor_price"`
}

// Result is the full scoring output for a listing.
type Result struct {
	Score     int            `json:"score"`
	Grade     string         `json:"grade"`
	Breakdown Breakdown      `json:"breakdown"`
	Pricing   pricing.Result `json:"pricing"`
	Offers    OfferTargets   `json:"offers"`
}
