// Package catalog holds the session's reference data: products and
// retailers (read-only) and stores (SKU count is editable).
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"trade_planning/pkg/models"
)

var (
	ErrStoreNotFound   = errors.New("store not found")
	ErrInvalidSkuCount = errors.New("sku count cannot be negative")
	ErrUnknownRetailer = errors.New("store references an unknown retailer")
)

// Data is the serialized form of a catalog.
type Data struct {
	Products  []models.Product  `json:"products" yaml:"products"`
	Retailers []models.Retailer `json:"retailers" yaml:"retailers"`
	Stores    []models.Store    `json:"stores" yaml:"stores"`
}

// Catalog is safe for concurrent use. Getters return copies so an
// aggregation in flight never sees a half-applied edit.
type Catalog struct {
	mu         sync.RWMutex
	products   []models.Product
	retailers  []models.Retailer
	stores     []models.Store
	storeIndex map[string]int
}

// New builds a catalog from loaded data.
func New(d Data) *Catalog {
	c := &Catalog{
		products:   append([]models.Product(nil), d.Products...),
		retailers:  append([]models.Retailer(nil), d.Retailers...),
		stores:     append([]models.Store(nil), d.Stores...),
		storeIndex: make(map[string]int, len(d.Stores)),
	}
	for i, s := range c.stores {
		c.storeIndex[s.ID] = i
	}
	return c
}

// Products returns the product list.
func (c *Catalog) Products() []models.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Product(nil), c.products...)
}

// Retailers returns the retailer list.
func (c *Catalog) Retailers() []models.Retailer {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Retailer(nil), c.retailers...)
}

// Stores returns a snapshot of every store.
func (c *Catalog) Stores() []models.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Store(nil), c.stores...)
}

func (c *Catalog) Product(id string) (models.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

func (c *Catalog) Retailer(id string) (models.Retailer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.retailers {
		if r.ID == id {
			return r, true
		}
	}
	return models.Retailer{}, false
}

func (c *Catalog) Store(id string) (models.Store, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.storeIndex[id]
	if !ok {
		return models.Store{}, false
	}
	return c.stores[i], true
}

// ChannelOf resolves a retailer's channel. Unknown retailers are Warehouse.
func (c *Catalog) ChannelOf(retailerID string) models.Channel {
	r, ok := c.Retailer(retailerID)
	if !ok || r.Channel == "" {
		return models.ChannelWarehouse
	}
	return r.Channel
}

// RetailerName returns the display name, or the ID when unknown.
func (c *Catalog) RetailerName(retailerID string) string {
	if r, ok := c.Retailer(retailerID); ok {
		return r.Name
	}
	return retailerID
}

// States lists the distinct store states, sorted.
func (c *Catalog) States() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, s := range c.stores {
		if s.State != "" && !seen[s.State] {
			seen[s.State] = true
			out = append(out, s.State)
		}
	}
	sort.Strings(out)
	return out
}

// UpdateStoreSkuCount sets the SKU count of one store.
func (c *Catalog) UpdateStoreSkuCount(id string, n int) (models.Store, error) {
	if n < 0 {
		return models.Store{}, fmt.Errorf("%w (got %d)", ErrInvalidSkuCount, n)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.storeIndex[id]
	if !ok {
		return models.Store{}, fmt.Errorf("%w: %s", ErrStoreNotFound, id)
	}
	c.stores[i].CurrentSkuCount = n
	return c.stores[i], nil
}

// =============================================================================
// FILTERING
// =============================================================================

// StoreFilter narrows the store list. Empty fields match everything.
type StoreFilter struct {
	Channel    models.Channel
	State      string
	RetailerID string
	Search     string // case-insensitive match on store name or state
}

// Filter returns the stores matching f.
func (c *Catalog) Filter(f StoreFilter) []models.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()

	channels := make(map[string]models.Channel, len(c.retailers))
	for _, r := range c.retailers {
		channels[r.ID] = r.Channel
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := []models.Store{}
	for _, s := range c.stores {
		if f.Channel != "" {
			ch, ok := channels[s.RetailerID]
			if !ok || ch == "" {
				ch = models.ChannelWarehouse
			}
			if ch != f.Channel {
				continue
			}
		}
		if f.State != "" && !strings.EqualFold(s.State, f.State) {
			continue
		}
		if f.RetailerID != "" && s.RetailerID != f.RetailerID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(strings.ToLower(s.State), search) {
			continue
		}
		out = append(out, s)
	}
	return out
}
