package calc

import (
	"sort"

	"trade_planning/pkg/core/royalty"
	"trade_planning/pkg/core/validate"
	"trade_planning/pkg/models"
)

// RoyaltyRow is units sold by one retailer at one average selling price.
// A retailer may appear in several rows (one per price point or period).
type RoyaltyRow struct {
	RetailerID string  `json:"retailer_id"`
	Units      float64 `json:"units"`
	ASP        float64 `json:"asp"`
}

// RetailerRoyalty is the royalty owed on one retailer's rows.
type RetailerRoyalty struct {
	RetailerID    string         `json:"retailer_id"`
	RetailerName  string         `json:"retailer_name"`
	Channel       models.Channel `json:"channel"`
	Units         float64        `json:"units"`
	WeightedASP   float64        `json:"weighted_asp"`
	EffectiveRate float64        `json:"effective_rate"` // royalty per unit
	Royalty       float64        `json:"royalty"`
}

// ChannelRoyalty is the royalty owed across one channel.
type ChannelRoyalty struct {
	Units       float64 `json:"units"`
	WeightedASP float64 `json:"weighted_asp"`
	Royalty     float64 `json:"royalty"`
}

// RoyaltyRollup is the royalty statement for a set of rows.
type RoyaltyRollup struct {
	Retailers    []RetailerRoyalty                 `json:"retailers"`
	ByChannel    map[models.Channel]ChannelRoyalty `json:"by_channel"`
	TotalUnits   float64                           `json:"total_units"`
	TotalRoyalty float64                           `json:"total_royalty"`
}

// RollupRoyalty prices every row on its own ASP (royalty is not linear in
// price, so rows are never averaged first) and sums the owed amount per
// retailer, per channel and overall. Retailers are ranked by royalty owed.
// channelOf and retailerName resolve reference data; either may be nil.
func RollupRoyalty(
	rows []RoyaltyRow,
	table royalty.Table,
	channelOf func(retailerID string) models.Channel,
	retailerName func(retailerID string) string,
) RoyaltyRollup {
	out := RoyaltyRollup{
		Retailers: []RetailerRoyalty{},
		ByChannel: map[models.Channel]ChannelRoyalty{
			models.ChannelDSD:       {},
			models.ChannelWarehouse: {},
		},
	}

	byRetailer := make(map[string]*RetailerRoyalty)
	revenue := make(map[string]float64)
	channelRevenue := make(map[models.Channel]float64)

	for _, row := range rows {
		ch := models.ChannelWarehouse
		if channelOf != nil {
			ch = channelOf(row.RetailerID)
		}
		owed := royalty.Round2(row.Units * table.Calculate(row.ASP, ch).Total)

		rr, ok := byRetailer[row.RetailerID]
		if !ok {
			name := row.RetailerID
			if retailerName != nil {
				if n := retailerName(row.RetailerID); n != "" {
					name = n
				}
			}
			rr = &RetailerRoyalty{RetailerID: row.RetailerID, RetailerName: name, Channel: ch}
			byRetailer[row.RetailerID] = rr
		}
		rr.Units += row.Units
		rr.Royalty += owed
		revenue[row.RetailerID] += row.Units * row.ASP

		c := out.ByChannel[ch]
		c.Units += row.Units
		c.Royalty += owed
		out.ByChannel[ch] = c
		channelRevenue[ch] += row.Units * row.ASP

		out.TotalUnits += row.Units
		out.TotalRoyalty += owed
	}

	for id, rr := range byRetailer {
		rr.Royalty = royalty.Round2(rr.Royalty)
		rr.WeightedASP = validate.SafeRatio(revenue[id], rr.Units)
		rr.EffectiveRate = validate.SafeRatio(rr.Royalty, rr.Units)
		out.Retailers = append(out.Retailers, *rr)
	}
	for ch, c := range out.ByChannel {
		c.Royalty = royalty.Round2(c.Royalty)
		c.WeightedASP = validate.SafeRatio(channelRevenue[ch], c.Units)
		out.ByChannel[ch] = c
	}
	out.TotalRoyalty = royalty.Round2(out.TotalRoyalty)

	sort.Slice(out.Retailers, func(i, j int) bool {
		if out.Retailers[i].Royalty != out.Retailers[j].Royalty {
			return out.Retailers[i].Royalty > out.Retailers[j].Royalty
		}
		return out.Retailers[i].RetailerID < out.Retailers[j].RetailerID
	})
	return out
}
