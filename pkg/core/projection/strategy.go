// Package projection implements the promotional scenario projector.
// Revenue follows velocity × stores × price; unit margin is pluggable so the
// same projection runs with or without the channel royalty.
package projection

import (
	"trade_planning/pkg/core/margin"
)

// =============================================================================
// MARGIN STRATEGY INTERFACE
// =============================================================================

// MarginStrategy derives the per-unit margin for a resolved request.
type MarginStrategy interface {
	// Name returns the strategy identifier
	Name() string

	// UnitMargin returns price minus the per-unit costs this strategy counts
	UnitMargin(in Inputs) float64
}

// =============================================================================
// BUILT-IN STRATEGIES
// =============================================================================

// RoyaltyAwareStrategy uses the margin decomposer:
// price − COGS − marketing − royalty(price, channel).
// COGS is the override when supplied, else the calculator's fixed COGS.
type RoyaltyAwareStrategy struct {
	Calculator margin.Calculator
}

func (s RoyaltyAwareStrategy) Name() string { return string(MarginRoyaltyAware) }

func (s RoyaltyAwareStrategy) UnitMargin(in Inputs) float64 {
	calc := s.Calculator
	if in.COGSOverridden {
		calc = calc.WithCOGS(in.COGS)
	}
	return calc.Calculate(in.UnitPrice, in.Channel).NetMarginDollars
}

// SimpleStrategy ignores royalty and marketing: price − COGS.
type SimpleStrategy struct{}

func (SimpleStrategy) Name() string { return string(MarginSimple) }

func (SimpleStrategy) UnitMargin(in Inputs) float64 {
	return in.UnitPrice - in.COGS
}

// StrategyFor maps a mode to its strategy. Unknown or empty modes are
// royalty aware.
func StrategyFor(mode MarginMode, calc margin.Calculator) MarginStrategy {
	if mode == MarginSimple {
		return SimpleStrategy{}
	}
	return RoyaltyAwareStrategy{Calculator: calc}
}
