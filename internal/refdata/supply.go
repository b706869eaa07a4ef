package refdata

import "strings"

// IndustryAvgDaysSupply is the industry-wide average days supply across all
// models. Unknown models fall back to this, which lands the supply factor on
// a neutral score.
const IndustryAvgDaysSupply = 76

type modelSupply struct {
	Model string
	Days  int
}

// Known days supply by model (February 2026 inventory data). Kept as an
// ordered list so the substring fallback scan is deterministic.
var modelDaysSupply = []modelSupply{
	{"Ram 3500", 342},
	{"Ram 2500", 318},
	{"Ram 1500", 120},
	{"F-150", 100},
	{"F-250", 90},
	{"F-350", 85},
	{"F-450", 60},
	{"Sierra 1500", 85},
	{"Sierra 2500HD", 80},
	{"Silverado 1500", 85},
	{"Silverado 2500HD", 80},
	{"Tundra", 33},
	{"Tacoma", 30},
}

// DaysSupply returns the days supply figure for a model. Lookup is two-phase:
// exact match first, then a linear substring scan in either direction to
// absorb naming variants like "Ram Ram 2500" vs "Ram 2500".
func DaysSupply(model string) int {
	for _, entry := range modelDaysSupply {
		if entry.Model == model {
			return entry.Days
		}
	}
	for _, entry := range modelDaysSupply {
		if strings.Contains(model, entry.Model) || strings.Contains(entry.Model, model) {
			return entry.Days
		}
	}
	return IndustryAvgDaysSupply
}
