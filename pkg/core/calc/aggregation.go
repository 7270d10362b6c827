package calc

import (
	"sort"

	"trade_planning/pkg/models"
)

// AverageUnitEconomics averages wholesale price and COGS across products.
// An empty catalog yields zeros rather than NaN.
func AverageUnitEconomics(products []models.Product) UnitEconomics {
	if len(products) == 0 {
		return UnitEconomics{}
	}
	var price, cogs float64
	for _, p := range products {
		price += p.WholesalePrice
		cogs += p.COGS
	}
	n := float64(len(products))
	return UnitEconomics{
		AvgWholesalePrice: price / n,
		AvgCOGS:           cogs / n,
	}
}

// AnnualUnits is the yearly unit throughput of a store.
func AnnualUnits(store models.Store) float64 {
	return store.BaseVelocity * float64(store.CurrentSkuCount) * WeeksPerYear
}

// StoreFinancials estimates one store's annual revenue and profit.
func StoreFinancials(store models.Store, products []models.Product) Financials {
	return storeFinancials(store, AverageUnitEconomics(products))
}

func storeFinancials(store models.Store, unit UnitEconomics) Financials {
	units := AnnualUnits(store)
	return Financials{
		Revenue: units * unit.AvgWholesalePrice,
		Profit:  units * unit.Margin(),
	}
}

// AggregateStoreFinancials sums StoreFinancials over stores.
func AggregateStoreFinancials(stores []models.Store, products []models.Product) Financials {
	unit := AverageUnitEconomics(products)
	var total Financials
	for _, s := range stores {
		total = total.Add(storeFinancials(s, unit))
	}
	return total
}

// Summarize builds the portfolio view of stores: totals, per-channel split,
// the topN retailers by revenue and the topN stores by base velocity (all
// of them when topN <= 0).
// channelOf and retailerName resolve reference data; either may be nil.
func Summarize(
	stores []models.Store,
	products []models.Product,
	channelOf func(retailerID string) models.Channel,
	retailerName func(retailerID string) string,
	topN int,
) PortfolioSummary {
	unit := AverageUnitEconomics(products)

	summary := PortfolioSummary{
		StoreCount: len(stores),
		Unit:       unit,
		ByChannel: map[models.Channel]Financials{
			models.ChannelDSD:       {},
			models.ChannelWarehouse: {},
		},
	}

	byRetailer := make(map[string]*RetailerTotal)
	topStores := make([]StoreTotal, 0, len(stores))
	var velocity float64

	for _, s := range stores {
		fin := storeFinancials(s, unit)
		summary.Totals = summary.Totals.Add(fin)
		velocity += s.BaseVelocity
		topStores = append(topStores, StoreTotal{
			StoreID:      s.ID,
			StoreName:    s.Name,
			RetailerID:   s.RetailerID,
			State:        s.State,
			BaseVelocity: s.BaseVelocity,
			Financials:   fin,
		})

		ch := models.ChannelWarehouse
		if channelOf != nil {
			ch = channelOf(s.RetailerID)
		}
		summary.ByChannel[ch] = summary.ByChannel[ch].Add(fin)

		rt, ok := byRetailer[s.RetailerID]
		if !ok {
			name := s.RetailerID
			if retailerName != nil {
				if n := retailerName(s.RetailerID); n != "" {
					name = n
				}
			}
			rt = &RetailerTotal{RetailerID: s.RetailerID, RetailerName: name}
			byRetailer[s.RetailerID] = rt
		}
		rt.StoreCount++
		rt.Financials = rt.Financials.Add(fin)
	}

	if len(stores) > 0 {
		summary.AvgVelocity = velocity / float64(len(stores))
	}

	ranked := make([]RetailerTotal, 0, len(byRetailer))
	for _, rt := range byRetailer {
		ranked = append(ranked, *rt)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Financials.Revenue != ranked[j].Financials.Revenue {
			return ranked[i].Financials.Revenue > ranked[j].Financials.Revenue
		}
		return ranked[i].RetailerID < ranked[j].RetailerID
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	summary.TopRetailers = ranked

	sort.Slice(topStores, func(i, j int) bool {
		if topStores[i].BaseVelocity != topStores[j].BaseVelocity {
			return topStores[i].BaseVelocity > topStores[j].BaseVelocity
		}
		return topStores[i].StoreID < topStores[j].StoreID
	})
	if topN > 0 && len(topStores) > topN {
		topStores = topStores[:topN]
	}
	summary.TopStores = topStores

	return summary
}
