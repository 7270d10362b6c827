// Package royalty computes the per-unit royalty owed to the brand holder.
//
// The royalty has a fixed base and an additional component that scales with
// the average selling price (ASP). Each channel has its own tier: above the
// ceiling price the additional royalty is capped, below the floor price it is
// zero, and in between it falls linearly from the ceiling.
package royalty

import (
	"fmt"
	"math"

	"trade_planning/pkg/models"
)

// Breakdown is the per-unit royalty for one ASP. Total == Base + Additional.
type Breakdown struct {
	Base       float64 `json:"base"`
	Additional float64 `json:"additional"`
	Total      float64 `json:"total"`
}

// Tier holds the interpolation breakpoints for one channel.
type Tier struct {
	BaseRoyalty    float64 `json:"base_royalty" yaml:"base_royalty"`
	CeilingPrice   float64 `json:"ceiling_price" yaml:"ceiling_price"`
	CeilingRoyalty float64 `json:"ceiling_royalty" yaml:"ceiling_royalty"`
	FloorPrice     float64 `json:"floor_price" yaml:"floor_price"`
	FloorRoyalty   float64 `json:"floor_royalty" yaml:"floor_royalty"`
	Slope          float64 `json:"slope" yaml:"slope"` // royalty dollars lost per dollar below the ceiling
}

// Table maps each channel to its tier.
type Table map[models.Channel]Tier

// DefaultTable returns the tier schedule currently in force.
// The slopes approximate the published schedule and are pending validation
// against the royalty agreement.
func DefaultTable() Table {
	return Table{
		models.ChannelDSD: {
			BaseRoyalty:    0.50,
			CeilingPrice:   9.36,
			CeilingRoyalty: 0.50,
			FloorPrice:     8.38,
			FloorRoyalty:   0,
			Slope:          0.5,
		},
		models.ChannelWarehouse: {
			BaseRoyalty:    0.50,
			CeilingPrice:   8.49,
			CeilingRoyalty: 0.90,
			FloorPrice:     6.91,
			FloorRoyalty:   0,
			Slope:          0.57,
		},
	}
}

var defaultTable = DefaultTable()

// Calculate returns the royalty for asp on channel using the default table.
func Calculate(asp float64, channel models.Channel) Breakdown {
	return defaultTable.Calculate(asp, channel)
}

// Calculate returns the royalty for asp on channel. It never fails: prices
// outside the tier saturate at the nearest breakpoint. A channel missing from
// the table is priced on the warehouse tier.
func (t Table) Calculate(asp float64, channel models.Channel) Breakdown {
	tier := t.Tier(channel)
	additional := tier.Additional(asp)

	additional = Round2(additional)
	return Breakdown{
		Base:       tier.BaseRoyalty,
		Additional: additional,
		Total:      Round2(tier.BaseRoyalty + additional),
	}
}

// Tier resolves the tier for channel.
func (t Table) Tier(channel models.Channel) Tier {
	if tier, ok := t[channel]; ok {
		return tier
	}
	if tier, ok := t[models.ChannelWarehouse]; ok {
		return tier
	}
	return defaultTable[models.ChannelWarehouse]
}

// Additional is the unrounded variable royalty for asp.
func (tier Tier) Additional(asp float64) float64 {
	switch {
	case asp >= tier.CeilingPrice:
		return tier.CeilingRoyalty
	case asp <= tier.FloorPrice:
		return tier.FloorRoyalty
	}
	drop := (tier.CeilingPrice - asp) * tier.Slope
	return clamp(tier.CeilingRoyalty-drop, tier.FloorRoyalty, tier.CeilingRoyalty)
}

// Validate reports tiers whose breakpoints cannot describe a falling schedule.
func (t Table) Validate() error {
	for ch, tier := range t {
		if _, ok := models.ParseChannel(string(ch)); !ok {
			return fmt.Errorf("royalty table: unknown channel %q", ch)
		}
		if tier.CeilingPrice <= tier.FloorPrice {
			return fmt.Errorf("royalty table: %s ceiling price %.2f must exceed floor price %.2f", ch, tier.CeilingPrice, tier.FloorPrice)
		}
		if tier.CeilingRoyalty < tier.FloorRoyalty {
			return fmt.Errorf("royalty table: %s ceiling royalty below floor royalty", ch)
		}
		if tier.Slope < 0 || tier.BaseRoyalty < 0 || tier.FloorRoyalty < 0 {
			return fmt.Errorf("royalty table: %s has a negative slope or royalty", ch)
		}
	}
	return nil
}

// Round2 rounds to cent precision.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
