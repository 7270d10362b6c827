// Package geo estimates total addressable market around a map point.
package geo

import (
	"math"

	"trade_planning/pkg/core/calc"
	"trade_planning/pkg/models"
)

const (
	// EarthRadiusMiles is the sphere radius used for great-circle distance.
	EarthRadiusMiles = 3958.8
	// DefaultRadiusMiles is the TAM tool radius.
	DefaultRadiusMiles = 50.0
	// DefaultUnitPrice is the flat per-unit price of the TAM revenue proxy.
	DefaultUnitPrice = 4.50
)

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TAMResult is the market inside one radius.
type TAMResult struct {
	TotalRevenue float64  `json:"total_revenue"`
	StoreCount   int      `json:"store_count"`
	StoreIDs     []string `json:"store_ids"`
}

// Haversine returns the great-circle distance in miles.
func Haversine(a, b Point) float64 {
	lat1 := deg2rad(a.Lat)
	lat2 := deg2rad(b.Lat)
	dLat := lat2 - lat1
	dLng := deg2rad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// Rounding can push h just past 1 for antipodal points
	h = math.Min(math.Max(h, 0), 1)
	return 2 * EarthRadiusMiles * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// QueryTAM sums the revenue proxy velocity × SKUs × unitPrice × 52 over every
// store within radiusMiles of center. A store exactly on the radius counts;
// a store whose distance cannot be computed does not.
func QueryTAM(center Point, radiusMiles float64, stores []models.Store, unitPrice float64) TAMResult {
	res := TAMResult{StoreIDs: []string{}}
	for _, s := range stores {
		d := Haversine(center, Point{Lat: s.Latitude, Lng: s.Longitude})
		if !(d <= radiusMiles) {
			continue
		}
		res.TotalRevenue += calc.AnnualUnits(s) * unitPrice
		res.StoreCount++
		res.StoreIDs = append(res.StoreIDs, s.ID)
	}
	return res
}

func deg2rad(d float64) float64 {
	return d * math.Pi / 180
}
