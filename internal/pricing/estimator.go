package pricing

import (
	"math"

	"dealhawk/backend/internal/refdata"
)

// Source values for a pricing result.
const (
	SourceCached    = "cached"
	SourceEstimated = "estimated"
)

// CachedInvoice is a known invoice/holdback pair supplied by the persistence
// layer. When present it is used verbatim instead of table estimates.
type CachedInvoice struct {
	InvoicePrice float64 `json:"invoice_price"`
	Holdback     float64 `json:"holdback"`
}

// Request carries the listing facts needed to resolve dealer cost.
type Request struct {
	Year       int
	Make       string
	Model      string
	Trim       string
	MSRP       float64
	DealerCash float64
	Cached     *CachedInvoice
}

// Result is the resolved dealer cost picture for a vehicle. The core
// invariant: TrueDealerCost = InvoicePrice - Holdback - DealerCash.
type Result struct {
	MSRP           float64 `json:"msrp"`
	InvoicePrice   float64 `json:"invoice_price"`
	Holdback       float64 `json:"holdback"`
	DealerCash     float64 `json:"dealer_cash"`
	TrueDealerCost float64 `json:"true_dealer_cost"`
	MarginFromMSRP float64 `json:"margin_from_msrp"`
	MarginPct      float64 `json:"margin_pct"`
	Source         string  `json:"source"`
}

// Estimate looks up or estimates the true dealer cost for a vehicle. There
// are no error paths: unknown makes and models fall back to default ratios
// so the caller always gets a best-effort estimate. TrueDealerCost is not
// clamped and can go negative on pathological inputs.
func Estimate(req Request) Result {
	var invoice, holdback float64
	source := SourceEstimated

	if req.Cached != nil {
		invoice = req.Cached.InvoicePrice
		holdback = req.Cached.Holdback
		source = SourceCached
	} else {
		invoice = refdata.EstimateInvoice(req.Make, req.Model, req.MSRP)
		holdback = refdata.GetHoldback(req.Make, req.MSRP, invoice)
	}

	trueCost := invoice - holdback - req.DealerCash
	margin := req.MSRP - trueCost
	marginPct := 0.0
	if req.MSRP > 0 {
		marginPct = margin / req.MSRP * 100
	}

	return Result{
		MSRP:           req.MSRP,
		InvoicePrice:   round2(invoice),
		Holdback:       round2(holdback),
		DealerCash:     req.DealerCash,
		TrueDealerCost: round2(trueCost),
		MarginFromMSRP: round2(margin),
		MarginPct:      math.Round(marginPct*10) / 10,
		Source:         source,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
