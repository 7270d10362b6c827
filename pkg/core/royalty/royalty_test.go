package royalty

import (
	"math"
	"testing"

	"trade_planning/pkg/models"
)

func TestCalculate_Boundaries(t *testing.T) {
	tests := []struct {
		name           string
		channel        models.Channel
		asp            float64
		wantAdditional float64
		wantTotal      float64
	}{
		{"DSD ceiling", models.ChannelDSD, 9.36, 0.50, 1.00},
		{"DSD above ceiling", models.ChannelDSD, 12.00, 0.50, 1.00},
		{"DSD floor", models.ChannelDSD, 8.38, 0.00, 0.50},
		{"DSD below floor", models.ChannelDSD, 5.00, 0.00, 0.50},
		{"DSD near ceiling", models.ChannelDSD, 9.30, 0.47, 0.97},
		{"Warehouse ceiling", models.ChannelWarehouse, 8.49, 0.90, 1.40},
		{"Warehouse floor", models.ChannelWarehouse, 6.91, 0.00, 0.50},
		{"Warehouse weighted ASP", models.ChannelWarehouse, 8.29, 0.79, 1.29},
		{"negative price saturates", models.ChannelWarehouse, -3, 0.00, 0.50},
		{"zero price saturates", models.ChannelDSD, 0, 0.00, 0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.asp, tt.channel)
			if got.Base != 0.50 {
				t.Errorf("expected base 0.50, got %f", got.Base)
			}
			if math.Abs(got.Additional-tt.wantAdditional) > 1e-9 {
				t.Errorf("expected additional %.2f, got %f", tt.wantAdditional, got.Additional)
			}
			if math.Abs(got.Total-tt.wantTotal) > 1e-9 {
				t.Errorf("expected total %.2f, got %f", tt.wantTotal, got.Total)
			}
		})
	}
}

func TestTierAdditional_Midpoint(t *testing.T) {
	// dropFromMax = 9.36 - 8.87 = 0.49, royaltyDrop = 0.245
	tier := DefaultTable()[models.ChannelDSD]
	raw := tier.Additional(8.87)
	if math.Abs(raw-0.255) > 1e-9 {
		t.Errorf("expected unrounded additional 0.255, got %f", raw)
	}

	got := Calculate(8.87, models.ChannelDSD)
	if got.Additional != 0.26 {
		t.Errorf("expected rounded additional 0.26, got %f", got.Additional)
	}
	if got.Total != 0.76 {
		t.Errorf("expected rounded total 0.76, got %f", got.Total)
	}
}

func TestCalculate_IdentityAndMonotonic(t *testing.T) {
	for _, ch := range []models.Channel{models.ChannelDSD, models.ChannelWarehouse} {
		prev := -1.0
		max := DefaultTable()[ch].CeilingRoyalty
		for cents := 500; cents <= 1100; cents++ {
			asp := float64(cents) / 100
			b := Calculate(asp, ch)

			if math.Abs(b.Total-(b.Base+b.Additional)) > 1e-9 {
				t.Fatalf("%s asp %.2f: total %f != base %f + additional %f", ch, asp, b.Total, b.Base, b.Additional)
			}
			if b.Additional < 0 || b.Additional > max {
				t.Fatalf("%s asp %.2f: additional %f outside [0, %f]", ch, asp, b.Additional, max)
			}
			if b.Additional < prev {
				t.Fatalf("%s asp %.2f: additional decreased from %f to %f", ch, asp, prev, b.Additional)
			}
			prev = b.Additional
		}
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	a := Calculate(8.91, models.ChannelDSD)
	b := Calculate(8.91, models.ChannelDSD)
	if a != b {
		t.Errorf("expected identical results, got %+v and %+v", a, b)
	}
}

func TestTable_UnknownChannelFallsBackToWarehouse(t *testing.T) {
	got := DefaultTable().Calculate(8.49, models.Channel("Club"))
	if got.Total != 1.40 {
		t.Errorf("expected warehouse total 1.40, got %f", got.Total)
	}
}

func TestTable_DataDrivenChannel(t *testing.T) {
	table := DefaultTable()
	table[models.ChannelDSD] = Tier{BaseRoyalty: 0.25, CeilingPrice: 10, CeilingRoyalty: 1.0, FloorPrice: 8, FloorRoyalty: 0.2, Slope: 0.4}

	got := table.Calculate(9, models.ChannelDSD)
	// 1.0 - (10 - 9) * 0.4 = 0.6
	if got.Additional != 0.6 || got.Total != 0.85 {
		t.Errorf("expected 0.60/0.85, got %f/%f", got.Additional, got.Total)
	}

	got = table.Calculate(7, models.ChannelDSD)
	if got.Additional != 0.2 {
		t.Errorf("expected floor royalty 0.20, got %f", got.Additional)
	}
}

func TestTable_Validate(t *testing.T) {
	if err := DefaultTable().Validate(); err != nil {
		t.Fatalf("default table should validate: %v", err)
	}

	bad := Table{models.ChannelDSD: {CeilingPrice: 8, FloorPrice: 9, CeilingRoyalty: 0.5}}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for inverted breakpoints, got nil")
	}

	bad = Table{models.ChannelDSD: {CeilingPrice: 9, FloorPrice: 8, CeilingRoyalty: 0.5, Slope: -1}}
	if err := bad.Validate(); err == nil {
		t.Error("expected error for negative slope, got nil")
	}
}
