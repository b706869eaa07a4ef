package refdata

import "math"

// InvoiceRatios describes invoice price as a fraction of MSRP across trim
// tiers. Trucks typically carry 5-10% markup from invoice to MSRP, with
// higher trims and HD models having larger margins.
type InvoiceRatios struct {
	Base float64
	Mid  float64
	High float64
}

// TrimThresholds classifies a vehicle into a trim tier by MSRP: at or below
// BaseMax is base trim, at or above HighMin is high trim, anything between
// is mid.
type TrimThresholds struct {
	BaseMax float64
	HighMin float64
}

// DefaultInvoiceRatio applies when we have no segment data for the vehicle.
const DefaultInvoiceRatio = 0.92

var defaultTrimThresholds = TrimThresholds{BaseMax: 45000, HighMin: 70000}

var invoiceRatios = map[string]InvoiceRatios{
	// Ford
	"Ford F-150": {Base: 0.93, Mid: 0.91, High: 0.89},
	"Ford F-250": {Base: 0.93, Mid: 0.91, High: 0.89},
	"Ford F-350": {Base: 0.93, Mid: 0.91, High: 0.88},
	"Ford F-450": {Base: 0.92, Mid: 0.90, High: 0.88},
	// Ram
	"Ram 1500": {Base: 0.92, Mid: 0.90, High: 0.88},
	"Ram 2500": {Base: 0.92, Mid: 0.90, High: 0.88},
	"Ram 3500": {Base: 0.92, Mid: 0.90, High: 0.87},
	// GM
	"Chevrolet Silverado 1500":   {Base: 0.93, Mid: 0.91, High: 0.89},
	"Chevrolet Silverado 2500HD": {Base: 0.92, Mid: 0.90, High: 0.88},
	"Chevrolet Silverado 3500HD": {Base: 0.92, Mid: 0.90, High: 0.87},
	"GMC Sierra 1500":            {Base: 0.92, Mid: 0.90, High: 0.88},
	"GMC Sierra 2500HD":          {Base: 0.92, Mid: 0.90, High: 0.88},
	"GMC Sierra 3500HD":          {Base: 0.92, Mid: 0.90, High: 0.87},
	// Toyota
	"Toyota Tundra": {Base: 0.94, Mid: 0.92, High: 0.91},
	"Toyota Tacoma": {Base: 0.95, Mid: 0.93, High: 0.92},
	// Nissan
	"Nissan Titan":    {Base: 0.92, Mid: 0.90, High: 0.88},
	"Nissan Frontier": {Base: 0.94, Mid: 0.92, High: 0.90},
}

var trimThresholds = map[string]TrimThresholds{
	"F-150":            {BaseMax: 42000, HighMin: 65000},
	"F-250":            {BaseMax: 50000, HighMin: 75000},
	"F-350":            {BaseMax: 52000, HighMin: 80000},
	"Ram 1500":         {BaseMax: 42000, HighMin: 60000},
	"Ram 2500":         {BaseMax: 48000, HighMin: 72000},
	"Ram 3500":         {BaseMax: 50000, HighMin: 78000},
	"Silverado 1500":   {BaseMax: 42000, HighMin: 62000},
	"Silverado 2500HD": {BaseMax: 48000, HighMin: 72000},
	"Sierra 1500":      {BaseMax: 44000, HighMin: 65000},
	"Sierra 2500HD":    {BaseMax: 50000, HighMin: 75000},
}

// EstimateInvoice estimates invoice price from MSRP using known ratios.
// Lookup tries "Make Model" first, then the bare model name (listing feeds
// sometimes produce "Ram Ram 2500" style names). Unknown vehicles fall back
// to the flat default ratio.
func EstimateInvoice(make, model string, msrp float64) float64 {
	ratios, ok := LookupInvoiceRatios(make, model)

	ratio := DefaultInvoiceRatio
	if ok {
		thresholds := LookupTrimThresholds(model)
		switch {
		case msrp <= thresholds.BaseMax:
			ratio = ratios.Base
		case msrp >= thresholds.HighMin:
			ratio = ratios.High
		default:
			ratio = ratios.Mid
		}
	}

	return math.Round(msrp*ratio*100) / 100
}

// LookupInvoiceRatios finds segment ratios by "Make Model", then the bare
// model name.
func LookupInvoiceRatios(make, model string) (InvoiceRatios, bool) {
	if ratios, ok := invoiceRatios[make+" "+model]; ok {
		return ratios, true
	}
	ratios, ok := invoiceRatios[model]
	return ratios, ok
}

// LookupTrimThresholds returns the MSRP tier cutoffs for a model.
func LookupTrimThresholds(model string) TrimThresholds {
	if thresholds, ok := trimThresholds[model]; ok {
		return thresholds
	}
	return defaultTrimThresholds
}
