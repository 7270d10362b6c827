// Package validate provides reusable numeric guards and boundary checks.
// The calculators never call these on their own inputs; they are applied
// where raw user values enter the engine.
package validate

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidNumber is wrapped by every boundary check failure.
var ErrInvalidNumber = errors.New("invalid number")

// =============================================================================
// GUARDED RATIOS
// =============================================================================

// PercentChange returns (current - base) / base * 100, or 0 when base is 0.
// Unlike a raw ratio it never yields NaN or Inf for display.
func PercentChange(current, base float64) float64 {
	if base == 0 {
		return 0
	}
	return (current - base) / base * 100
}

// SafeRatio returns num / den, or 0 when den is 0.
func SafeRatio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// =============================================================================
// BOUNDARY CHECKS
// =============================================================================

// Finite rejects NaN and ±Inf.
func Finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s must be a finite number: %w", name, ErrInvalidNumber)
	}
	return nil
}

// NonNegative rejects NaN, ±Inf and values below zero.
func NonNegative(name string, v float64) error {
	if err := Finite(name, v); err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("%s cannot be negative (got %g): %w", name, v, ErrInvalidNumber)
	}
	return nil
}

// InRange rejects values outside [lo, hi].
func InRange(name string, v, lo, hi float64) error {
	if err := Finite(name, v); err != nil {
		return err
	}
	if v < lo || v > hi {
		return fmt.Errorf("%s must be between %g and %g (got %g): %w", name, lo, hi, v, ErrInvalidNumber)
	}
	return nil
}

// Latitude and Longitude check map coordinates.
func Latitude(v float64) error  { return InRange("latitude", v, -90, 90) }
func Longitude(v float64) error { return InRange("longitude", v, -180, 180) }
