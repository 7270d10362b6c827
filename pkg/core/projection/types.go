package projection

import "trade_planning/pkg/models"

// MarginMode selects how unit margin is derived.
type MarginMode string

const (
	// MarginRoyaltyAware deducts COGS, marketing and the channel royalty.
	MarginRoyaltyAware MarginMode = "royalty_aware"
	// MarginSimple deducts COGS only.
	MarginSimple MarginMode = "simple"
)

// DefaultVelocity is the assumed units/store/week when none is supplied.
const DefaultVelocity = 12.0

// Overrides are optional pricing inputs that replace catalog values.
type Overrides struct {
	WholesalePrice *float64 `json:"custom_wholesale_price,omitempty" yaml:"custom_wholesale_price,omitempty"` // ASP
	MSRP           *float64 `json:"custom_msrp,omitempty" yaml:"custom_msrp,omitempty"`
	COGS           *float64 `json:"custom_cogs,omitempty" yaml:"custom_cogs,omitempty"`
	SlottingFees   *float64 `json:"slotting_fees,omitempty" yaml:"slotting_fees,omitempty"`
}

// Config is a scenario request as entered by the planner.
type Config struct {
	RetailerID  string     `json:"retailer_id" yaml:"retailer_id"`
	ProductIDs  []string   `json:"product_ids,omitempty" yaml:"product_ids,omitempty"`
	Velocity    *float64   `json:"velocity,omitempty" yaml:"velocity,omitempty"` // nil = DefaultVelocity
	StoreCount  int        `json:"store_count" yaml:"store_count"`
	PromoWeeks  int        `json:"promo_weeks" yaml:"promo_weeks"`
	LiftPercent float64    `json:"lift_percent" yaml:"lift_percent"`
	Mode        MarginMode `json:"margin_mode,omitempty" yaml:"margin_mode,omitempty"` // empty = royalty aware
	Overrides   Overrides  `json:"overrides" yaml:"overrides"`
}

// Inputs is a fully resolved projection request: every catalog lookup has
// happened and every override has been applied.
type Inputs struct {
	Channel           models.Channel
	MarginRequirement float64
	Velocity          float64
	StoreCount        int
	PromoWeeks        int
	LiftPercent       float64
	UnitPrice         float64
	MSRP              float64
	COGS              float64 // product COGS, or the override
	COGSOverridden    bool
	SlottingFees      float64
}

// Result is the projected outcome of one configuration.
type Result struct {
	Channel  models.Channel `json:"channel"`
	Strategy string         `json:"margin_strategy"`

	Velocity   float64 `json:"velocity"`
	UnitPrice  float64 `json:"unit_price"`
	UnitMargin float64 `json:"unit_margin"`

	AnnualBaseRevenue float64 `json:"annual_base_revenue"`
	PromoRevenue      float64 `json:"promo_revenue"`
	TotalRevenue      float64 `json:"total_revenue"`

	AnnualBaseProfit float64 `json:"annual_base_profit"`
	PromoProfit      float64 `json:"promo_profit"`
	SlottingFees     float64 `json:"slotting_fees"`
	TotalProfit      float64 `json:"total_profit"`

	LiftPercentage float64 `json:"lift_percentage"`

	RetailerMarginPercent float64 `json:"retailer_margin_percent"`
	MarginRequirement     float64 `json:"margin_requirement"`
	MarginCompliant       bool    `json:"margin_compliant"`
}

// PromoLiftMultiplier returns 1 + lift/100.
func (c Config) PromoLiftMultiplier() float64 {
	return 1 + c.LiftPercent/100
}

// IncrementalRevenue is the revenue attributable to the promotion.
func (r Result) IncrementalRevenue() float64 {
	return r.PromoRevenue
}

// IncrementalProfit is total profit over the baseline, net of slotting fees.
func (r Result) IncrementalProfit() float64 {
	return r.TotalProfit - r.AnnualBaseProfit
}
