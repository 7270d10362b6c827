package models

import (
	"fmt"
	"strings"
	"time"
)

// Channel is the distribution route a retailer buys through.
// It selects the royalty tier applied to the retailer's selling price.
type Channel string

const (
	ChannelDSD       Channel = "DSD"
	ChannelWarehouse Channel = "Warehouse"
)

// ParseChannel maps free-form channel labels to a Channel.
// "National Account" is the legacy label for the warehouse route.
func ParseChannel(s string) (Channel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dsd", "direct-store-delivery", "direct store delivery":
		return ChannelDSD, true
	case "warehouse", "national account", "national_account", "na":
		return ChannelWarehouse, true
	}
	return ChannelWarehouse, false
}

// UnmarshalText lets catalog files use any label ParseChannel accepts.
func (c *Channel) UnmarshalText(text []byte) error {
	ch, ok := ParseChannel(string(text))
	if !ok {
		return fmt.Errorf("unknown channel %q", string(text))
	}
	*c = ch
	return nil
}

type Product struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	WholesalePrice float64 `json:"wholesale_price" yaml:"wholesale_price"`
	MSRP           float64 `json:"msrp" yaml:"msrp"`
	COGS           float64 `json:"cogs" yaml:"cogs"`
	CaseCount      int     `json:"case_count" yaml:"case_count"`
	CasesPerPallet int     `json:"cases_per_pallet,omitempty" yaml:"cases_per_pallet"`
}

type Retailer struct {
	ID                string  `json:"id" yaml:"id"`
	Name              string  `json:"name" yaml:"name"`
	Channel           Channel `json:"channel" yaml:"channel"`
	MarginRequirement float64 `json:"margin_requirement" yaml:"margin_requirement"` // fraction of MSRP, e.g. 0.35
	PaymentTerms      string  `json:"payment_terms" yaml:"payment_terms"`
	RegionFocus       string  `json:"region_focus" yaml:"region_focus"`
}

// Store is a single retail location. Only CurrentSkuCount changes after load.
type Store struct {
	ID              string  `json:"id" yaml:"id"`
	RetailerID      string  `json:"retailer_id" yaml:"retailer_id"`
	Name            string  `json:"name" yaml:"name"`
	Latitude        float64 `json:"lat" yaml:"lat"`
	Longitude       float64 `json:"lng" yaml:"lng"`
	State           string  `json:"state" yaml:"state"`
	CurrentSkuCount int     `json:"current_sku_count" yaml:"current_sku_count"`
	BaseVelocity    float64 `json:"base_velocity" yaml:"base_velocity"` // units per store per week
}

// Scenario is a saved what-if projection. Values are captured at save time
// and never recomputed.
type Scenario struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	TargetRetailerID    string    `json:"target_retailer_id"`
	TargetProductIDs    []string  `json:"target_product_ids"`
	Channel             Channel   `json:"channel"`
	RoyaltyAware        bool      `json:"royalty_aware"`
	Velocity            float64   `json:"velocity"`
	StoreCount          int       `json:"store_count"`
	PromoWeeks          int       `json:"promo_weeks"`
	PromoLiftMultiplier float64   `json:"promo_lift_multiplier"`
	IncrementalRevenue  float64   `json:"incremental_revenue"`
	IncrementalProfit   float64   `json:"incremental_profit"`
	CreatedAt           time.Time `json:"created_at"`

	// Custom pricing overrides
	CustomWholesalePrice *float64 `json:"custom_wholesale_price,omitempty"`
	CustomMSRP           *float64 `json:"custom_msrp,omitempty"`
	CustomCOGS           *float64 `json:"custom_cogs,omitempty"`
	SlottingFees         *float64 `json:"slotting_fees,omitempty"`

	// Projection captured at save time
	AnnualBaseRevenue     float64 `json:"annual_base_revenue"`
	PromoRevenue          float64 `json:"promo_revenue"`
	TotalRevenue          float64 `json:"total_revenue"`
	AnnualBaseProfit      float64 `json:"annual_base_profit"`
	PromoProfit           float64 `json:"promo_profit"`
	TotalProfit           float64 `json:"total_profit"`
	LiftPercentage        float64 `json:"lift_percentage"`
	RetailerMarginPercent float64 `json:"retailer_margin_percent"`
	MarginCompliant       bool    `json:"margin_compliant"`
}
