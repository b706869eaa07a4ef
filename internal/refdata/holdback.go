package refdata

import "math"

// HoldbackBasis indicates which price the holdback percentage is applied to.
type HoldbackBasis string

const (
	BasisMSRP    HoldbackBasis = "msrp"
	BasisInvoice HoldbackBasis = "invoice"
)

// HoldbackRate describes a manufacturer's holdback program. Holdback is a
// hidden refund from the manufacturer to the dealer, typically paid quarterly,
// and is part of the dealer's true cost that they won't voluntarily disclose.
type HoldbackRate struct {
	Rate  float64
	Basis HoldbackBasis
}

// defaultHoldback is used for makes we have no data for.
var defaultHoldback = HoldbackRate{Rate: 0.02, Basis: BasisMSRP}

var holdbackRates = map[string]HoldbackRate{
	"Ram":       {Rate: 0.03, Basis: BasisMSRP},
	"Dodge":     {Rate: 0.03, Basis: BasisMSRP},
	"Jeep":      {Rate: 0.03, Basis: BasisMSRP},
	"Chrysler":  {Rate: 0.03, Basis: BasisMSRP},
	"Ford":      {Rate: 0.03, Basis: BasisMSRP},
	"Lincoln":   {Rate: 0.02, Basis: BasisMSRP},
	"Chevrolet": {Rate: 0.03, Basis: BasisInvoice},
	"GMC":       {Rate: 0.03, Basis: BasisInvoice},
	"Buick":     {Rate: 0.03, Basis: BasisInvoice},
	"Cadillac":  {Rate: 0.03, Basis: BasisInvoice},
	"Toyota":    {Rate: 0.02, Basis: BasisMSRP},
	"Nissan":    {Rate: 0.03, Basis: BasisInvoice},
	"Honda":     {Rate: 0.02, Basis: BasisMSRP},
	"Hyundai":   {Rate: 0.02, Basis: BasisInvoice},
	"Kia":       {Rate: 0.02, Basis: BasisInvoice},
}

// GetHoldback calculates the holdback amount for a given make and pricing.
// Unknown makes fall back to 2% of MSRP so scoring stays total on sparse data.
func GetHoldback(make string, msrp, invoice float64) float64 {
	info, ok := holdbackRates[make]
	if !ok {
		info = defaultHoldback
	}

	basisValue := msrp
	if info.Basis == BasisInvoice {
		basisValue = invoice
	}
	return math.Round(basisValue*info.Rate*100) / 100
}
