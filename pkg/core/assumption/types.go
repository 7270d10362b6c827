// Package assumption holds the fixed business constants of the planning
// engine as one data-driven set, loadable from YAML so a tier or cost change
// is a data edit rather than a code change.
package assumption

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"trade_planning/pkg/core/margin"
	"trade_planning/pkg/core/royalty"
)

// Set is the full assumption set used by the engine.
type Set struct {
	Royalty royalty.Table `json:"royalty" yaml:"royalty"`

	// Unit costs
	COGS          float64 `json:"cogs" yaml:"cogs"`
	MarketingRate float64 `json:"marketing_rate" yaml:"marketing_rate"` // fraction of ASP

	// Projection default
	DefaultVelocity float64 `json:"default_velocity" yaml:"default_velocity"` // units/store/week

	// TAM estimate
	TAMUnitPrice   float64 `json:"tam_unit_price" yaml:"tam_unit_price"`
	TAMRadiusMiles float64 `json:"tam_radius_miles" yaml:"tam_radius_miles"`
}

// Defaults returns the assumptions in force when no file is supplied.
func Defaults() Set {
	return Set{
		Royalty:         royalty.DefaultTable(),
		COGS:            margin.DefaultCOGS,
		MarketingRate:   margin.DefaultMarketingRate,
		DefaultVelocity: 12,
		TAMUnitPrice:    4.50,
		TAMRadiusMiles:  50,
	}
}

// Load reads a YAML assumption file. Keys missing from the file keep their
// default values.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Set{}, fmt.Errorf("read assumptions %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. A key
// present in the file wins even when its value is zero; a royalty channel
// missing from the file keeps its default tier.
func Parse(data []byte) (Set, error) {
	set := Defaults()
	if err := yaml.Unmarshal(data, &set); err != nil {
		return Set{}, fmt.Errorf("parse assumptions: %w", err)
	}

	if set.Royalty == nil {
		set.Royalty = royalty.Table{}
	}
	for ch, tier := range royalty.DefaultTable() {
		if _, ok := set.Royalty[ch]; !ok {
			set.Royalty[ch] = tier
		}
	}

	if err := set.Validate(); err != nil {
		return Set{}, err
	}
	return set, nil
}

// Validate rejects sets the engine cannot price with.
func (s Set) Validate() error {
	if err := s.Royalty.Validate(); err != nil {
		return err
	}
	if s.COGS < 0 {
		return fmt.Errorf("assumptions: cogs cannot be negative")
	}
	if s.MarketingRate < 0 || s.MarketingRate >= 1 {
		return fmt.Errorf("assumptions: marketing rate %.4f must be in [0, 1)", s.MarketingRate)
	}
	if s.DefaultVelocity < 0 || s.TAMUnitPrice < 0 || s.TAMRadiusMiles < 0 {
		return fmt.Errorf("assumptions: velocity, TAM price and radius cannot be negative")
	}
	return nil
}

// MarginCalculator builds the margin decomposer for this set.
func (s Set) MarginCalculator() margin.Calculator {
	return margin.Calculator{
		Royalty:       s.Royalty,
		COGS:          s.COGS,
		MarketingRate: s.MarketingRate,
	}
}
