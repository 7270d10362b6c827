package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"trade_planning/pkg/core/assumption"
	"trade_planning/pkg/core/calc"
	"trade_planning/pkg/core/utils"
	"trade_planning/pkg/core/validate"
	"trade_planning/pkg/models"
)

// Payload is the -data argument. Lenient JSON is accepted so shell quoting
// mistakes (single quotes, unquoted keys) still parse.
type Payload struct {
	ASP     float64  `json:"asp"`
	Channel string   `json:"channel"`
	COGS    *float64 `json:"cogs,omitempty"`
}

func main() {
	mode := flag.String("mode", "margin", "Mode: royalty, margin or check")
	dataStr := flag.String("data", "", "JSON data payload, e.g. '{\"asp\":9.3,\"channel\":\"DSD\"}'")
	assumptionsPath := flag.String("assumptions", "", "Optional assumptions YAML file")
	flag.Parse()

	if *dataStr == "" {
		fmt.Fprintln(os.Stderr, "Error: No data provided")
		os.Exit(1)
	}

	set := assumption.Defaults()
	if *assumptionsPath != "" {
		var err error
		if set, err = assumption.Load(*assumptionsPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	ok, err := run(*mode, *dataStr, set, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		os.Exit(2)
	}
}

// run executes one mode and writes JSON to out. It reports false when a
// check finds an imbalance.
func run(mode, data string, set assumption.Set, out io.Writer) (bool, error) {
	var p Payload
	if _, err := utils.SmartParse([]byte(data), &p); err != nil {
		return false, fmt.Errorf("unmarshaling data: %w", err)
	}
	if err := validate.Finite("asp", p.ASP); err != nil {
		return false, err
	}
	ch, known := models.ParseChannel(p.Channel)
	if !known {
		return false, fmt.Errorf("unknown channel %q", p.Channel)
	}

	calculator := set.MarginCalculator()
	if p.COGS != nil {
		calculator = calculator.WithCOGS(*p.COGS)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")

	switch mode {
	case "royalty":
		return true, enc.Encode(set.Royalty.Calculate(p.ASP, ch))
	case "margin":
		return true, enc.Encode(calculator.Calculate(p.ASP, ch))
	case "check":
		res := calc.CheckMarginDecomposition(p.ASP, calculator.Calculate(p.ASP, ch))
		return res.IsBalanced, enc.Encode(res)
	default:
		return false, fmt.Errorf("unknown mode: %s", mode)
	}
}
