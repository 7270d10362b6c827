package validate

import (
	"errors"
	"math"
	"testing"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		current, base, want float64
	}{
		{110, 100, 10},
		{90, 100, -10},
		{100, 100, 0},
		{50, 0, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		got := PercentChange(tt.current, tt.base)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("PercentChange(%v, %v) = %v, expected %v", tt.current, tt.base, got, tt.want)
		}
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("PercentChange(%v, %v) must be finite", tt.current, tt.base)
		}
	}
}

func TestSafeRatio(t *testing.T) {
	if got := SafeRatio(3, 4); got != 0.75 {
		t.Errorf("expected 0.75, got %v", got)
	}
	if got := SafeRatio(3, 0); got != 0 {
		t.Errorf("expected 0 for zero denominator, got %v", got)
	}
}

func TestBoundaryChecks(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{"finite ok", Finite("asp", 9.3), false},
		{"nan", Finite("asp", math.NaN()), true},
		{"inf", Finite("asp", math.Inf(1)), true},
		{"non-negative zero", NonNegative("weeks", 0), false},
		{"negative", NonNegative("weeks", -1), true},
		{"in range", InRange("weeks", 12, 0, 52), false},
		{"above range", InRange("weeks", 53, 0, 52), true},
		{"latitude", Latitude(44.5), false},
		{"bad latitude", Latitude(91), true},
		{"bad longitude", Longitude(-181), true},
	}

	for _, tt := range tests {
		if (tt.err != nil) != tt.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tt.name, tt.wantErr, tt.err)
		}
		if tt.err != nil && !errors.Is(tt.err, ErrInvalidNumber) {
			t.Errorf("%s: expected ErrInvalidNumber, got %v", tt.name, tt.err)
		}
	}
}
