package calc

import (
	"math"
	"testing"

	"trade_planning/pkg/core/royalty"
	"trade_planning/pkg/models"
)

func TestRollupRoyalty(t *testing.T) {
	channels := map[string]models.Channel{
		"r_hyvee":  models.ChannelDSD,
		"r_costco": models.ChannelWarehouse,
	}
	names := map[string]string{"r_hyvee": "Hy-Vee", "r_costco": "Costco"}

	rows := []RoyaltyRow{
		{RetailerID: "r_hyvee", Units: 1000, ASP: 9.45},  // above ceiling: 1.00
		{RetailerID: "r_hyvee", Units: 500, ASP: 9.28},   // 0.50 + 0.46
		{RetailerID: "r_costco", Units: 2000, ASP: 8.29}, // 0.50 + 0.79
	}

	got := RollupRoyalty(rows, royalty.DefaultTable(),
		func(id string) models.Channel { return channels[id] },
		func(id string) string { return names[id] },
	)

	if len(got.Retailers) != 2 {
		t.Fatalf("expected 2 retailers, got %d", len(got.Retailers))
	}

	costco, hyvee := got.Retailers[0], got.Retailers[1]
	if costco.RetailerName != "Costco" || hyvee.RetailerName != "Hy-Vee" {
		t.Fatalf("expected retailers ranked by royalty, got %+v", got.Retailers)
	}
	if math.Abs(costco.Royalty-2580) > 1e-6 {
		t.Errorf("expected Costco royalty 2580, got %f", costco.Royalty)
	}
	if math.Abs(costco.EffectiveRate-1.29) > 1e-9 {
		t.Errorf("expected Costco rate 1.29, got %f", costco.EffectiveRate)
	}
	if math.Abs(hyvee.Royalty-1480) > 1e-6 {
		t.Errorf("expected Hy-Vee royalty 1480, got %f", hyvee.Royalty)
	}
	if hyvee.Units != 1500 {
		t.Errorf("expected Hy-Vee units 1500, got %f", hyvee.Units)
	}
	if math.Abs(hyvee.WeightedASP-14090.0/1500) > 1e-9 {
		t.Errorf("expected weighted ASP %.4f, got %.4f", 14090.0/1500, hyvee.WeightedASP)
	}

	if math.Abs(got.ByChannel[models.ChannelDSD].Royalty-1480) > 1e-6 {
		t.Errorf("expected DSD royalty 1480, got %f", got.ByChannel[models.ChannelDSD].Royalty)
	}
	if math.Abs(got.ByChannel[models.ChannelWarehouse].Royalty-2580) > 1e-6 {
		t.Errorf("expected Warehouse royalty 2580, got %f", got.ByChannel[models.ChannelWarehouse].Royalty)
	}
	if math.Abs(got.TotalRoyalty-4060) > 1e-6 || got.TotalUnits != 3500 {
		t.Errorf("expected totals 3500 units / 4060, got %f / %f", got.TotalUnits, got.TotalRoyalty)
	}
}

func TestRollupRoyalty_RowsPricedIndividually(t *testing.T) {
	// Averaging the two prices first (8.38) would give the floor royalty 0.50.
	rows := []RoyaltyRow{
		{RetailerID: "r_1", Units: 100, ASP: 7.40},
		{RetailerID: "r_1", Units: 100, ASP: 9.36},
	}
	got := RollupRoyalty(rows, royalty.DefaultTable(),
		func(string) models.Channel { return models.ChannelDSD }, nil)

	// 100 * 0.50 + 100 * 1.00
	if math.Abs(got.TotalRoyalty-150) > 1e-6 {
		t.Errorf("expected 150, got %f", got.TotalRoyalty)
	}
	if got.Retailers[0].RetailerName != "r_1" {
		t.Errorf("expected id as fallback name, got %q", got.Retailers[0].RetailerName)
	}
}

func TestRollupRoyalty_Empty(t *testing.T) {
	got := RollupRoyalty(nil, royalty.DefaultTable(), nil, nil)
	if got.TotalRoyalty != 0 || got.TotalUnits != 0 || got.Retailers == nil {
		t.Errorf("expected empty non-nil rollup, got %+v", got)
	}
	if len(got.ByChannel) != 2 {
		t.Errorf("expected both channels present, got %v", got.ByChannel)
	}
}
