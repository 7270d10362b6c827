package projection

import (
	"errors"
	"fmt"

	"trade_planning/pkg/core/validate"
)

var (
	ErrInvalidConfig   = errors.New("invalid scenario config")
	ErrUnknownRetailer = errors.New("unknown retailer")
	ErrUnknownProduct  = errors.New("unknown product")
)

// MaxPromoWeeks bounds a promotion to one year.
const MaxPromoWeeks = 52

// Validate checks raw planner input before it reaches the engine.
func (c Config) Validate() error {
	if c.RetailerID == "" {
		return fmt.Errorf("%w: retailer is required", ErrInvalidConfig)
	}
	if c.StoreCount < 0 {
		return fmt.Errorf("%w: store count cannot be negative", ErrInvalidConfig)
	}
	if c.PromoWeeks < 0 || c.PromoWeeks > MaxPromoWeeks {
		return fmt.Errorf("%w: promo weeks must be between 0 and %d", ErrInvalidConfig, MaxPromoWeeks)
	}
	if err := validate.Finite("lift_percent", c.LiftPercent); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch c.Mode {
	case "", MarginRoyaltyAware, MarginSimple:
	default:
		return fmt.Errorf("%w: unknown margin mode %q", ErrInvalidConfig, c.Mode)
	}

	checks := []struct {
		name string
		v    *float64
	}{
		{"velocity", c.Velocity},
		{"custom_wholesale_price", c.Overrides.WholesalePrice},
		{"custom_msrp", c.Overrides.MSRP},
		{"custom_cogs", c.Overrides.COGS},
		{"slotting_fees", c.Overrides.SlottingFees},
	}
	for _, chk := range checks {
		if chk.v == nil {
			continue
		}
		if err := validate.NonNegative(chk.name, *chk.v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}
