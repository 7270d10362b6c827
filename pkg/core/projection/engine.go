package projection

import (
	"fmt"
	"math"

	"trade_planning/pkg/core/calc"
	"trade_planning/pkg/core/margin"
	"trade_planning/pkg/core/validate"
	"trade_planning/pkg/models"
)

// complianceEpsilon absorbs float noise in the margin requirement gate.
const complianceEpsilon = 1e-9

// Catalog is the read-only reference data the engine resolves against.
type Catalog interface {
	Retailer(id string) (models.Retailer, bool)
	Product(id string) (models.Product, bool)
	Products() []models.Product
}

// Engine projects scenarios against a catalog.
type Engine struct {
	Catalog         Catalog
	Margin          margin.Calculator
	DefaultVelocity float64
}

// NewEngine creates an engine with the default margin assumptions.
func NewEngine(cat Catalog) *Engine {
	return &Engine{
		Catalog:         cat,
		Margin:          margin.NewCalculator(),
		DefaultVelocity: DefaultVelocity,
	}
}

// Project validates, resolves and projects a configuration.
func (e *Engine) Project(cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	in, err := e.Resolve(cfg)
	if err != nil {
		return Result{}, err
	}
	return Project(in, StrategyFor(cfg.Mode, e.Margin)), nil
}

// Resolve looks up the retailer and products and applies overrides.
// With several target products, price, MSRP and COGS are averaged.
// With none, the whole catalog is averaged.
func (e *Engine) Resolve(cfg Config) (Inputs, error) {
	retailer, ok := e.Catalog.Retailer(cfg.RetailerID)
	if !ok {
		return Inputs{}, fmt.Errorf("%w: %s", ErrUnknownRetailer, cfg.RetailerID)
	}

	products, err := e.products(cfg.ProductIDs)
	if err != nil {
		return Inputs{}, err
	}

	var price, msrp, cogs float64
	for _, p := range products {
		price += p.WholesalePrice
		msrp += p.MSRP
		cogs += p.COGS
	}
	n := float64(len(products))
	price = validate.SafeRatio(price, n)
	msrp = validate.SafeRatio(msrp, n)
	cogs = validate.SafeRatio(cogs, n)

	in := Inputs{
		Channel:           retailer.Channel,
		MarginRequirement: retailer.MarginRequirement,
		Velocity:          e.DefaultVelocity,
		StoreCount:        cfg.StoreCount,
		PromoWeeks:        cfg.PromoWeeks,
		LiftPercent:       cfg.LiftPercent,
		UnitPrice:         price,
		MSRP:              msrp,
		COGS:              cogs,
	}
	if in.Channel == "" {
		in.Channel = models.ChannelWarehouse
	}
	if cfg.Velocity != nil {
		in.Velocity = *cfg.Velocity
	}

	o := cfg.Overrides
	if o.WholesalePrice != nil {
		in.UnitPrice = *o.WholesalePrice
	}
	if o.MSRP != nil {
		in.MSRP = *o.MSRP
	}
	if o.COGS != nil {
		in.COGS = *o.COGS
		in.COGSOverridden = true
	}
	if o.SlottingFees != nil {
		in.SlottingFees = *o.SlottingFees
	}
	return in, nil
}

func (e *Engine) products(ids []string) ([]models.Product, error) {
	if len(ids) == 0 {
		return e.Catalog.Products(), nil
	}
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, ok := e.Catalog.Product(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
		out = append(out, p)
	}
	return out, nil
}

// Project computes the scenario outcome for resolved inputs. It never fails:
// a zero baseline yields 0% lift and a zero MSRP yields 0% retailer margin.
func Project(in Inputs, strategy MarginStrategy) Result {
	// Weekly units across the target stores
	units := in.Velocity * float64(in.StoreCount)
	annualUnits := units * calc.WeeksPerYear
	promoUnits := units * float64(in.PromoWeeks) * (in.LiftPercent / 100)

	unitMargin := strategy.UnitMargin(in)

	r := Result{
		Channel:    in.Channel,
		Strategy:   strategy.Name(),
		Velocity:   in.Velocity,
		UnitPrice:  in.UnitPrice,
		UnitMargin: unitMargin,

		AnnualBaseRevenue: annualUnits * in.UnitPrice,
		PromoRevenue:      promoUnits * in.UnitPrice,

		AnnualBaseProfit: annualUnits * unitMargin,
		PromoProfit:      promoUnits * unitMargin,
		SlottingFees:     in.SlottingFees,

		MarginRequirement: in.MarginRequirement,
	}
	r.TotalRevenue = r.AnnualBaseRevenue + r.PromoRevenue
	// Slotting is a one-time fee, charged once against the year
	r.TotalProfit = r.AnnualBaseProfit + r.PromoProfit - in.SlottingFees

	r.LiftPercentage = validate.PercentChange(r.TotalRevenue, r.AnnualBaseRevenue)

	r.RetailerMarginPercent = RetailerMarginPercent(in.MSRP, in.UnitPrice)
	r.MarginCompliant = r.RetailerMarginPercent/100+complianceEpsilon >= in.MarginRequirement

	return r
}

// RetailerMarginPercent is the retailer's markup share of shelf price,
// (msrp − price) / msrp × 100, or 0 when msrp is 0.
func RetailerMarginPercent(msrp, price float64) float64 {
	if msrp == 0 || math.IsNaN(msrp) {
		return 0
	}
	return (msrp - price) / msrp * 100
}
