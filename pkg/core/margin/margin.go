// Package margin decomposes a selling price into unit costs and net margin.
package margin

import (
	"trade_planning/pkg/core/royalty"
	"trade_planning/pkg/models"
)

const (
	DefaultCOGS          = 4.34
	DefaultMarketingRate = 0.05
)

// Breakdown is the unit economics of one unit sold at a given ASP.
// COGS + Marketing + Royalty.Total + NetMarginDollars == ASP.
type Breakdown struct {
	COGS             float64           `json:"cogs"`
	Marketing        float64           `json:"marketing"`
	Royalty          royalty.Breakdown `json:"royalty"`
	TotalCost        float64           `json:"total_cost"`
	NetMarginDollars float64           `json:"net_margin_dollars"`
	NetMarginPercent float64           `json:"net_margin_percent"`
}

// Calculator holds the fixed cost assumptions used for the decomposition.
type Calculator struct {
	Royalty       royalty.Table
	COGS          float64
	MarketingRate float64
}

// NewCalculator returns a calculator on the default royalty table and costs.
func NewCalculator() Calculator {
	return Calculator{
		Royalty:       royalty.DefaultTable(),
		COGS:          DefaultCOGS,
		MarketingRate: DefaultMarketingRate,
	}
}

// WithCOGS returns a copy using cogs in place of the fixed unit cost.
func (c Calculator) WithCOGS(cogs float64) Calculator {
	c.COGS = cogs
	return c
}

// Calculate decomposes asp with the default assumptions.
func Calculate(asp float64, channel models.Channel) Breakdown {
	return NewCalculator().Calculate(asp, channel)
}

// Calculate decomposes asp for channel. A negative net margin is a valid
// result. NetMarginPercent is 0 when asp is 0.
func (c Calculator) Calculate(asp float64, channel models.Channel) Breakdown {
	table := c.Royalty
	if table == nil {
		table = royalty.DefaultTable()
	}

	marketing := asp * c.MarketingRate
	r := table.Calculate(asp, channel)

	totalCost := c.COGS + marketing + r.Total
	net := asp - totalCost

	pct := 0.0
	if asp != 0 {
		pct = net / asp * 100
	}

	return Breakdown{
		COGS:             c.COGS,
		Marketing:        marketing,
		Royalty:          r,
		TotalCost:        totalCost,
		NetMarginDollars: net,
		NetMarginPercent: pct,
	}
}
