package market

// Trends describes supply and incentive conditions for a make/model.
type Trends struct {
	Make                  string  `json:"make"`
	Model                 string  `json:"model"`
	DaysSupply            int     `json:"days_supply"`
	IndustryAvgDaysSupply int     `json:"industry_avg_days_supply"`
	SupplyRatio           float64 `json:"supply_ratio"`
	SupplyLevel           string  `json:"supply_level"`
	PriceTrend            string  `json:"price_trend"`
	ActiveIncentiveCount  int     `json:"active_incentive_count"`
	TotalIncentiveValue   float64 `json:"total_incentive_value"`
	InventoryLevel        string  `json:"inventory_level"`
	Source                string  `json:"source"`
	AsOf                  string  `json:"as_of"`
}

// Stats describes transaction pricing for a make/model.
type Stats struct {
	Make                string  `json:"make"`
	Model               string  `json:"model"`
	AvgPrice            float64 `json:"avg_price"`
	PriceRangeLow       float64 `json:"price_range_low"`
	PriceRangeHigh      float64 `json:"price_range_high"`
	MedianDaysOnLot     int     `json:"median_days_on_lot"`
	TotalActiveListings int     `json:"total_active_listings"`
	Source              string  `json:"source"`
	AsOf                string  `json:"as_of"`
}

// Incentive is a manufacturer rebate or cash program. A blank model applies
// make-wide.
type Incentive struct {
	Make   string
	Model  string
	Name   string
	Amount float64
}

// Seeded incentive programs used when no live data feed is configured.
var seededIncentives = []Incentive{
	{"Ram", "Ram 2500", "National Retail Cash", 3000},
	{"Ram", "Ram 2500", "Heavy Duty Bonus Cash", 2000},
	{"Ram", "Ram 1500", "National Retail Cash", 2500},
	{"Ram", "", "Chrysler Capital Finance Cash", 1000},
	{"Ford", "F-150", "Retail Customer Cash", 2000},
	{"Ford", "F-250", "Super Duty Bonus Cash", 1500},
	{"Chevrolet", "Silverado 1500", "Customer Cash Allowance", 2000},
	{"GMC", "Sierra 1500", "Customer Cash Allowance", 2000},
	{"Toyota", "Tundra", "Customer Cash", 500},
}

// activeIncentives returns programs for a make, scoped to the model when one
// is given (make-wide programs always apply).
func activeIncentives(make, model string) []Incentive {
	var matched []Incentive
	for _, inc := range seededIncentives {
		if inc.Make != make {
			continue
		}
		if model != "" && inc.Model != "" && inc.Model != model {
			continue
		}
		matched = append(matched, inc)
	}
	return matched
}
