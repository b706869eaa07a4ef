package tax

// 2026 Section 179 limits per IRS inflation adjustments and the OBBBA
// bonus depreciation restoration.
const (
	Section179Limit       = 1_250_000
	BonusDepreciationRate = 1.0
	HeavySUVCap           = 32_000
	GVWRThreshold         = 6_000 // lbs
	BusinessUseMinimum    = 50    // percent
	// IRC 280F first-year limit for vehicles under 6,000 lbs GVWR,
	// with bonus depreciation.
	LuxuryAutoFirstYearCap = 20_400

	TaxYear = 2026
)

// GVWRInfo describes a model's gross vehicle weight rating range and whether
// it is a pickup with a 6ft+ bed, which exempts it from the heavy SUV cap.
type GVWRInfo struct {
	GVWRMin       int
	GVWRMax       int
	IsPickup6ftTB bool
}

type modelGVWR struct {
	Model string
	Info  GVWRInfo
}

// Ordered so the partial-match fallback scan is deterministic.
var modelGVWRTable = []modelGVWR{
	{"F-150", GVWRInfo{6100, 7850, true}},
	{"F-250", GVWRInfo{9900, 10400, true}},
	{"F-350", GVWRInfo{11200, 14000, true}},
	{"F-450", GVWRInfo{14000, 16500, true}},
	{"Ram 1500", GVWRInfo{6500, 7100, true}},
	{"Ram 2500", GVWRInfo{9000, 10000, true}},
	{"Ram 3500", GVWRInfo{11000, 14000, true}},
	{"Silverado 1500", GVWRInfo{6600, 7400, true}},
	{"Silverado 2500HD", GVWRInfo{9500, 10650, true}},
	{"Silverado 3500HD", GVWRInfo{11000, 14000, true}},
	{"Sierra 1500", GVWRInfo{6600, 7400, true}},
	{"Sierra 2500HD", GVWRInfo{9500, 10650, true}},
	{"Sierra 3500HD", GVWRInfo{11000, 14000, true}},
	{"Tundra", GVWRInfo{6400, 7200, true}},
	{"Tacoma", GVWRInfo{5400, 6100, true}},
	{"Titan", GVWRInfo{7100, 8800, true}},
	{"Frontier", GVWRInfo{5500, 6200, true}},
}
