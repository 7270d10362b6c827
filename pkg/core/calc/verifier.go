package calc

import (
	"fmt"
	"math"

	"trade_planning/pkg/core/margin"
	"trade_planning/pkg/core/royalty"
)

// Tolerance is the largest gap accepted as rounding noise (half a cent).
const Tolerance = 0.005

// VerificationResult holds the status of an integrity check.
type VerificationResult struct {
	IsBalanced bool     `json:"is_balanced"`
	Gap        float64  `json:"gap"`
	Warnings   []string `json:"warnings,omitempty"`
}

// CheckRoyalty verifies Total = Base + Additional.
func CheckRoyalty(b royalty.Breakdown) VerificationResult {
	gap := b.Total - (b.Base + b.Additional)
	return result(gap, "royalty total differs from base + additional by %.4f")
}

// CheckMarginDecomposition verifies COGS + Marketing + Royalty + Net = ASP.
func CheckMarginDecomposition(asp float64, b margin.Breakdown) VerificationResult {
	gap := asp - (b.COGS + b.Marketing + b.Royalty.Total + b.NetMarginDollars)
	res := result(gap, "margin decomposition out of balance by %.4f")

	if r := CheckRoyalty(b.Royalty); !r.IsBalanced {
		res.IsBalanced = false
		res.Warnings = append(res.Warnings, r.Warnings...)
	}
	return res
}

func result(gap float64, format string) VerificationResult {
	balanced := math.Abs(gap) < Tolerance

	var warnings []string
	if !balanced {
		warnings = append(warnings, fmt.Sprintf(format, gap))
	}
	return VerificationResult{
		IsBalanced: balanced,
		Gap:        gap,
		Warnings:   warnings,
	}
}
