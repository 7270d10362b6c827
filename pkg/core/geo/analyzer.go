package geo

import (
	"sync"
	"time"

	"trade_planning/pkg/models"
)

// Selection is one TAM computation for a chosen center.
type Selection struct {
	Seq         uint64    `json:"seq"`
	Center      Point     `json:"center"`
	RadiusMiles float64   `json:"radius_miles"`
	Result      TAMResult `json:"result"`
	ComputedAt  time.Time `json:"computed_at"`
}

// Analyzer holds the current TAM selection for a session. Each Select
// replaces the previous result; a computation that finishes after a newer
// one started is discarded.
type Analyzer struct {
	stores      func() []models.Store
	radiusMiles float64
	unitPrice   float64

	mu     sync.Mutex
	seq    uint64
	latest *Selection
}

// NewAnalyzer creates an analyzer over a store source. The source is called
// once per selection and must return a snapshot the caller will not mutate.
func NewAnalyzer(stores func() []models.Store, radiusMiles, unitPrice float64) *Analyzer {
	if radiusMiles <= 0 {
		radiusMiles = DefaultRadiusMiles
	}
	if unitPrice <= 0 {
		unitPrice = DefaultUnitPrice
	}
	return &Analyzer{stores: stores, radiusMiles: radiusMiles, unitPrice: unitPrice}
}

// RadiusMiles returns the analyzer's default radius.
func (a *Analyzer) RadiusMiles() float64 { return a.radiusMiles }

// Select computes the TAM around center at the default radius.
func (a *Analyzer) Select(center Point) Selection {
	return a.SelectRadius(center, a.radiusMiles)
}

// SelectRadius computes the TAM around center at radiusMiles over every
// store from the analyzer's source.
func (a *Analyzer) SelectRadius(center Point, radiusMiles float64) Selection {
	return a.SelectStores(center, radiusMiles, a.stores())
}

// SelectStores computes the TAM over an already filtered store list, such as
// the stores of one channel, state or retailer.
func (a *Analyzer) SelectStores(center Point, radiusMiles float64, stores []models.Store) Selection {
	a.mu.Lock()
	a.seq++
	seq := a.seq
	a.mu.Unlock()

	sel := Selection{
		Seq:         seq,
		Center:      center,
		RadiusMiles: radiusMiles,
		Result:      QueryTAM(center, radiusMiles, stores, a.unitPrice),
		ComputedAt:  time.Now().UTC(),
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.latest == nil || seq > a.latest.Seq {
		a.latest = &sel
	}
	return sel
}

// Latest returns the most recent selection, if any.
func (a *Analyzer) Latest() (Selection, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.latest == nil {
		return Selection{}, false
	}
	return *a.latest, true
}
