// Package report renders saved scenarios as planner-facing briefs.
package report

import (
	"fmt"
	"strings"

	"trade_planning/pkg/core/utils"
	"trade_planning/pkg/models"
)

// ScenarioBrief renders a saved scenario as Markdown.
func ScenarioBrief(s models.Scenario, retailerName string) string {
	if retailerName == "" {
		retailerName = s.TargetRetailerID
	}
	mode := "simple (price − COGS)"
	if s.RoyaltyAware {
		mode = "royalty aware"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", s.Name)
	if s.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", s.Description)
	}
	fmt.Fprintf(&b, "**Retailer:** %s (%s)  \n", retailerName, s.Channel)
	fmt.Fprintf(&b, "**Saved:** %s  \n", s.CreatedAt.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "**Margin mode:** %s\n\n", mode)

	b.WriteString("## Inputs\n\n")
	b.WriteString("| Input | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Stores | %d |\n", s.StoreCount)
	fmt.Fprintf(&b, "| Velocity (U/S/W) | %.1f |\n", s.Velocity)
	fmt.Fprintf(&b, "| Promo weeks | %d |\n", s.PromoWeeks)
	fmt.Fprintf(&b, "| Lift multiplier | %.2fx |\n", s.PromoLiftMultiplier)
	if len(s.TargetProductIDs) > 0 {
		fmt.Fprintf(&b, "| Products | %s |\n", strings.Join(s.TargetProductIDs, ", "))
	}
	optional(&b, "Wholesale price (override)", s.CustomWholesalePrice)
	optional(&b, "MSRP (override)", s.CustomMSRP)
	optional(&b, "COGS (override)", s.CustomCOGS)
	optional(&b, "Slotting fees", s.SlottingFees)

	b.WriteString("\n## Projection\n\n")
	b.WriteString("| | Revenue | Profit |\n|---|---:|---:|\n")
	fmt.Fprintf(&b, "| Annual base | %s | %s |\n", money(s.AnnualBaseRevenue), money(s.AnnualBaseProfit))
	fmt.Fprintf(&b, "| Promotion | %s | %s |\n", money(s.PromoRevenue), money(s.PromoProfit))
	fmt.Fprintf(&b, "| Total | %s | %s |\n", money(s.TotalRevenue), money(s.TotalProfit))
	fmt.Fprintf(&b, "| Incremental | %s | %s |\n\n", money(s.IncrementalRevenue), money(s.IncrementalProfit))

	fmt.Fprintf(&b, "Revenue lift: **%.1f%%**\n\n", s.LiftPercentage)

	if s.MarginCompliant {
		fmt.Fprintf(&b, "Retailer margin %.1f%% meets the retailer requirement.\n", s.RetailerMarginPercent)
	} else {
		fmt.Fprintf(&b, "> **Warning:** retailer margin %.1f%% is below the retailer requirement.\n", s.RetailerMarginPercent)
	}
	return b.String()
}

// ScenarioBriefHTML renders the brief to HTML.
func ScenarioBriefHTML(s models.Scenario, retailerName string) (string, error) {
	return utils.RenderMarkdown(ScenarioBrief(s, retailerName))
}

func optional(b *strings.Builder, label string, v *float64) {
	if v != nil {
		fmt.Fprintf(b, "| %s | %s |\n", label, money(*v))
	}
}

func money(v float64) string {
	if v < 0 {
		return fmt.Sprintf("-$%.2f", -v)
	}
	return fmt.Sprintf("$%.2f", v)
}
