// Package scenario keeps saved what-if projections for the session.
// Saved scenarios are snapshots: no field refers back to the config or
// result they were built from.
package scenario

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"trade_planning/pkg/core/projection"
	"trade_planning/pkg/models"
)

var (
	ErrNotFound    = errors.New("scenario not found")
	ErrNameMissing = errors.New("scenario name is required")
)

// Repository stores saved scenarios. There is no edit or delete.
type Repository interface {
	Add(s models.Scenario) error
	List() []models.Scenario
	Get(id string) (models.Scenario, error)
}

// =============================================================================
// IN-MEMORY REPOSITORY
// =============================================================================

// MemoryRepository implements Repository for one session.
type MemoryRepository struct {
	mu        sync.RWMutex
	scenarios []models.Scenario
	byID      map[string]int
}

// NewMemoryRepository creates an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byID: make(map[string]int)}
}

// Add appends a snapshot.
func (r *MemoryRepository) Add(s models.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[s.ID]; exists {
		return fmt.Errorf("scenario '%s' already exists", s.ID)
	}
	r.byID[s.ID] = len(r.scenarios)
	r.scenarios = append(r.scenarios, clone(s))
	return nil
}

// List returns all scenarios in save order.
func (r *MemoryRepository) List() []models.Scenario {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Scenario, len(r.scenarios))
	for i, s := range r.scenarios {
		out[i] = clone(s)
	}
	return out
}

// Get retrieves a scenario by ID.
func (r *MemoryRepository) Get(id string) (models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byID[id]
	if !ok {
		return models.Scenario{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return clone(r.scenarios[i]), nil
}

// =============================================================================
// SAVE
// =============================================================================

// Save snapshots a configuration and its projection into repo.
func Save(repo Repository, name, description string, cfg projection.Config, res projection.Result) (models.Scenario, error) {
	if name == "" {
		return models.Scenario{}, ErrNameMissing
	}

	s := models.Scenario{
		ID:                  uuid.New().String(),
		Name:                name,
		Description:         description,
		TargetRetailerID:    cfg.RetailerID,
		TargetProductIDs:    append([]string(nil), cfg.ProductIDs...),
		Channel:             res.Channel,
		RoyaltyAware:        res.Strategy == string(projection.MarginRoyaltyAware),
		Velocity:            res.Velocity,
		StoreCount:          cfg.StoreCount,
		PromoWeeks:          cfg.PromoWeeks,
		PromoLiftMultiplier: cfg.PromoLiftMultiplier(),
		IncrementalRevenue:  res.IncrementalRevenue(),
		IncrementalProfit:   res.IncrementalProfit(),
		CreatedAt:           time.Now().UTC(),

		CustomWholesalePrice: copyFloat(cfg.Overrides.WholesalePrice),
		CustomMSRP:           copyFloat(cfg.Overrides.MSRP),
		CustomCOGS:           copyFloat(cfg.Overrides.COGS),
		SlottingFees:         copyFloat(cfg.Overrides.SlottingFees),

		AnnualBaseRevenue:     res.AnnualBaseRevenue,
		PromoRevenue:          res.PromoRevenue,
		TotalRevenue:          res.TotalRevenue,
		AnnualBaseProfit:      res.AnnualBaseProfit,
		PromoProfit:           res.PromoProfit,
		TotalProfit:           res.TotalProfit,
		LiftPercentage:        res.LiftPercentage,
		RetailerMarginPercent: res.RetailerMarginPercent,
		MarginCompliant:       res.MarginCompliant,
	}

	if err := repo.Add(s); err != nil {
		return models.Scenario{}, err
	}
	return clone(s), nil
}

func clone(s models.Scenario) models.Scenario {
	s.TargetProductIDs = append([]string(nil), s.TargetProductIDs...)
	s.CustomWholesalePrice = copyFloat(s.CustomWholesalePrice)
	s.CustomMSRP = copyFloat(s.CustomMSRP)
	s.CustomCOGS = copyFloat(s.CustomCOGS)
	s.SlottingFees = copyFloat(s.SlottingFees)
	return s
}

func copyFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
