// Package calc provides deterministic store and portfolio financial
// calculations over the reference catalog.
package calc

import "trade_planning/pkg/models"

// WeeksPerYear annualizes weekly velocity.
const WeeksPerYear = 52

// Financials is an annual revenue and gross profit estimate.
type Financials struct {
	Revenue float64 `json:"revenue"`
	Profit  float64 `json:"profit"`
}

// Add returns the element-wise sum.
func (f Financials) Add(o Financials) Financials {
	return Financials{Revenue: f.Revenue + o.Revenue, Profit: f.Profit + o.Profit}
}

// UnitEconomics is the catalog-average per-unit price and cost used as a
// proxy for every store (per-store SKU mix is not tracked).
type UnitEconomics struct {
	AvgWholesalePrice float64 `json:"avg_wholesale_price"`
	AvgCOGS           float64 `json:"avg_cogs"`
}

// Margin is the average per-unit gross margin.
func (u UnitEconomics) Margin() float64 {
	return u.AvgWholesalePrice - u.AvgCOGS
}

// RetailerTotal is one row of the retailer ranking.
type RetailerTotal struct {
	RetailerID   string     `json:"retailer_id"`
	RetailerName string     `json:"retailer_name"`
	StoreCount   int        `json:"store_count"`
	Financials   Financials `json:"financials"`
}

// StoreTotal is one row of the store velocity ranking.
type StoreTotal struct {
	StoreID      string     `json:"store_id"`
	StoreName    string     `json:"store_name"`
	RetailerID   string     `json:"retailer_id"`
	State        string     `json:"state"`
	BaseVelocity float64    `json:"base_velocity"`
	Financials   Financials `json:"financials"`
}

// PortfolioSummary is the dashboard view of a filtered store collection.
type PortfolioSummary struct {
	Totals       Financials                    `json:"totals"`
	StoreCount   int                           `json:"store_count"`
	AvgVelocity  float64                       `json:"avg_velocity"`
	ByChannel    map[models.Channel]Financials `json:"by_channel"`
	TopRetailers []RetailerTotal               `json:"top_retailers"`
	TopStores    []StoreTotal                  `json:"top_stores"`
	Unit         UnitEconomics                 `json:"unit_economics"`
}
