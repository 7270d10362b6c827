package report

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"trade_planning/pkg/models"
)

func sampleScenario() models.Scenario {
	fees := 5000.0
	return models.Scenario{
		ID:                    "abc",
		Name:                  "Hy-Vee Summer",
		Description:           "Endcap push",
		TargetRetailerID:      "r_hyvee",
		TargetProductIDs:      []string{"p1", "p3"},
		Channel:               models.ChannelDSD,
		RoyaltyAware:          true,
		Velocity:              10,
		StoreCount:            100,
		PromoWeeks:            4,
		PromoLiftMultiplier:   1.4,
		SlottingFees:          &fees,
		AnnualBaseRevenue:     483600,
		PromoRevenue:          14880,
		TotalRevenue:          498480,
		AnnualBaseProfit:      183300,
		PromoProfit:           5640,
		TotalProfit:           183940,
		IncrementalRevenue:    14880,
		IncrementalProfit:     640,
		LiftPercentage:        3.0769,
		RetailerMarginPercent: 37.96,
		MarginCompliant:       true,
		CreatedAt:             time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestScenarioBrief_Markdown(t *testing.T) {
	md := ScenarioBrief(sampleScenario(), "Hy-Vee")

	for _, want := range []string{
		"# Hy-Vee Summer",
		"**Retailer:** Hy-Vee (DSD)",
		"| Slotting fees | $5000.00 |",
		"| Total | $498480.00 | $183940.00 |",
		"Revenue lift: **3.1%**",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("brief missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Warning") {
		t.Error("compliant scenario must not carry a warning")
	}
}

func TestScenarioBriefHTML(t *testing.T) {
	s := sampleScenario()
	s.MarginCompliant = false
	s.TotalProfit = -250

	html, err := ScenarioBriefHTML(s, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("failed to parse HTML: %v", err)
	}

	if got := doc.Find("h1").First().Text(); got != "Hy-Vee Summer" {
		t.Errorf("expected title, got %q", got)
	}
	if n := doc.Find("table").Length(); n != 2 {
		t.Errorf("expected 2 tables, got %d", n)
	}

	var totalProfit string
	doc.Find("table").Eq(1).Find("tr").Each(func(_ int, row *goquery.Selection) {
		if row.Find("td").First().Text() == "Total" {
			totalProfit = row.Find("td").Eq(2).Text()
		}
	})
	if totalProfit != "-$250.00" {
		t.Errorf("expected total profit -$250.00, got %q", totalProfit)
	}

	if !strings.Contains(doc.Find("blockquote").Text(), "below the retailer requirement") {
		t.Error("expected non-compliance warning")
	}
	if !strings.Contains(doc.Find("p").Text(), "r_hyvee") {
		t.Error("expected retailer id when name is unknown")
	}
}
