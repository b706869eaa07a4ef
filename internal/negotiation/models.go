package negotiation

// Input carries the listing facts and resolved dealer cost a brief is built
// from. Pricing fields come from the pricing estimator; the rest are raw
// listing facts.
type Input struct {
	AskingPrice      float64
	MSRP             float64
	InvoicePrice     float64
	Holdback         float64
	TrueDealerCost   float64
	DaysOnLot        int
	RebatesAvailable float64
	Make             string
	Model            string
	Year             int
}

// DealerEconomics lays out what this unit is actually costing the dealer.
type DealerEconomics struct {
	InvoicePrice         float64 `json:"invoice_price"`
	Holdback             float64 `json:"holdback"`
	TrueDealerCost       float64 `json:"true_dealer_cost"`
	CarryingCosts        float64 `json:"carrying_costs"`
	CurtailmentEstimate  float64 `json:"curtailment_estimate"`
	TotalCostToHold      float64 `json:"total_cost_to_hold"`
	DealerBreakeven      float64 `json:"dealer_breakeven"`
	AskingVsInvoice      float64 `json:"asking_vs_invoice"`
	AskingVsTrueCost     float64 `json:"asking_vs_true_cost"`
	DealerMarginAtAsking float64 `json:"dealer_margin_at_asking"`
}

// OfferTargets are the brief's three negotiation anchors.
type OfferTargets struct {
	Aggressive       float64 `json:"aggressive"`
	Reasonable       float64 `json:"reasonable"`
	LikelySettlement float64 `json:"likely_settlement"`
}

// Leverage tiers for talking points.
const (
	LeverageLow    = "low"
	LeverageMedium = "medium"
	LeverageHigh   = "high"
)

// TalkingPoint is one scripted argument the buyer can use at the dealership.
type TalkingPoint struct {
	Category string `json:"category"`
	Leverage string `json:"leverage"`
	Point    string `json:"point"`
	Script   string `json:"script"`
}

// Brief is the full negotiation package for a listing.
type Brief struct {
	DealerEconomics  DealerEconomics `json:"dealer_economics"`
	OfferTargets     OfferTargets    `json:"offer_targets"`
	TalkingPoints    []TalkingPoint  `json:"talking_points"`
	RebatesAvailable float64         `json:"rebates_available"`
}
