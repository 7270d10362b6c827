package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"

	"trade_planning/pkg/core/assumption"
	"trade_planning/pkg/core/calc"
	"trade_planning/pkg/core/royalty"
	"trade_planning/pkg/models"
)

// ErrInvalidStep is returned for a sweep step that cannot advance the price.
var ErrInvalidStep = errors.New("step must be a positive finite number")

// Finding is one failed property at one price point.
type Finding struct {
	Channel models.Channel
	ASP     float64
	Problem string
}

func main() {
	assumptionsPath := flag.String("assumptions", "", "Assumptions YAML file (default: built-in)")
	step := flag.Float64("step", 0.01, "ASP sweep step")
	flag.Parse()

	if err := checkStep(*step); err != nil {
		fmt.Printf("Error: -step %v: %v\n", *step, err)
		os.Exit(2)
	}

	set := assumption.Defaults()
	if *assumptionsPath != "" {
		var err error
		if set, err = assumption.Load(*assumptionsPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(2)
		}
	}

	channels := make([]models.Channel, 0, len(set.Royalty))
	for ch := range set.Royalty {
		channels = append(channels, ch)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })

	var all []Finding
	for _, ch := range channels {
		tier := set.Royalty.Tier(ch)
		fmt.Printf("--- %s: floor %.2f, ceiling %.2f, max additional %.2f ---\n",
			ch, tier.FloorPrice, tier.CeilingPrice, tier.CeilingRoyalty)

		findings, err := Sweep(set, ch, *step)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(2)
		}
		for _, f := range findings {
			fmt.Printf("  [FAIL] ASP %.2f: %s\n", f.ASP, f.Problem)
		}
		if len(findings) == 0 {
			fmt.Println("  [OK] identity, bounds, monotonicity and decomposition hold")
		}
		all = append(all, findings...)
	}

	if len(all) > 0 {
		os.Exit(1)
	}
}

// Sweep walks ASP from one dollar below the floor to one dollar above the
// ceiling and checks the royalty and margin properties at each step.
func Sweep(set assumption.Set, ch models.Channel, step float64) ([]Finding, error) {
	if err := checkStep(step); err != nil {
		return nil, err
	}
	tier := set.Royalty.Tier(ch)
	calculator := set.MarginCalculator()

	var findings []Finding
	prev := math.Inf(-1)
	steps := int(math.Round((tier.CeilingPrice - tier.FloorPrice + 2) / step))

	for i := 0; i <= steps; i++ {
		asp := royalty.Round2(tier.FloorPrice - 1 + float64(i)*step)
		b := set.Royalty.Calculate(asp, ch)

		if r := calc.CheckRoyalty(b); !r.IsBalanced {
			findings = append(findings, Finding{ch, asp, r.Warnings[0]})
		}
		if b.Additional < tier.FloorRoyalty || b.Additional > tier.CeilingRoyalty {
			findings = append(findings, Finding{ch, asp, fmt.Sprintf("additional %.2f outside [%.2f, %.2f]", b.Additional, tier.FloorRoyalty, tier.CeilingRoyalty)})
		}
		if b.Additional < prev {
			findings = append(findings, Finding{ch, asp, fmt.Sprintf("additional fell from %.2f to %.2f", prev, b.Additional)})
		}
		prev = b.Additional

		if m := calc.CheckMarginDecomposition(asp, calculator.Calculate(asp, ch)); !m.IsBalanced {
			findings = append(findings, Finding{ch, asp, m.Warnings[0]})
		}
	}
	return findings, nil
}

func checkStep(step float64) error {
	if !(step > 0) || math.IsInf(step, 1) {
		return ErrInvalidStep
	}
	return nil
}
