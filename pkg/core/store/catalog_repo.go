package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"trade_planning/pkg/core/catalog"
	"trade_planning/pkg/models"
)

// CatalogRepo reads reference data from Postgres. It never writes: store
// edits stay in the session catalog.
type CatalogRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogRepo creates a new catalog repository
func NewCatalogRepo(pool *pgxpool.Pool) *CatalogRepo {
	return &CatalogRepo{pool: pool}
}

const (
	productsQuery = `
		SELECT id, name, wholesale_price, msrp, cogs, case_count, cases_per_pallet
		FROM products ORDER BY id`
	retailersQuery = `
		SELECT id, name, channel, margin_requirement, payment_terms, region_focus
		FROM retailers ORDER BY id`
	storesQuery = `
		SELECT id, retailer_id, name, lat, lng, state, current_sku_count, base_velocity
		FROM stores ORDER BY id`
)

// Load reads products, retailers and stores in one repeatable-read
// transaction so the three lists are consistent.
func (r *CatalogRepo) Load(ctx context.Context) (catalog.Data, error) {
	if r.pool == nil {
		return catalog.Data{}, fmt.Errorf("database pool not configured")
	}

	var d catalog.Data
	err := pgx.BeginTxFunc(ctx, r.pool, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	}, func(tx pgx.Tx) error {
		var err error
		if d.Products, err = queryProducts(ctx, tx); err != nil {
			return err
		}
		if d.Retailers, err = queryRetailers(ctx, tx); err != nil {
			return err
		}
		d.Stores, err = queryStores(ctx, tx)
		return err
	})
	if err != nil {
		return catalog.Data{}, err
	}

	if err := d.Validate(); err != nil {
		return catalog.Data{}, fmt.Errorf("database catalog: %w", err)
	}
	return d, nil
}

func queryProducts(ctx context.Context, tx pgx.Tx) ([]models.Product, error) {
	rows, err := tx.Query(ctx, productsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Product, error) {
		var p models.Product
		err := row.Scan(&p.ID, &p.Name, &p.WholesalePrice, &p.MSRP, &p.COGS, &p.CaseCount, &p.CasesPerPallet)
		return p, err
	})
}

func queryRetailers(ctx context.Context, tx pgx.Tx) ([]models.Retailer, error) {
	rows, err := tx.Query(ctx, retailersQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query retailers: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Retailer, error) {
		var (
			rt      models.Retailer
			channel string
		)
		if err := row.Scan(&rt.ID, &rt.Name, &channel, &rt.MarginRequirement, &rt.PaymentTerms, &rt.RegionFocus); err != nil {
			return rt, err
		}
		// Unrecognized labels resolve to Warehouse
		rt.Channel, _ = models.ParseChannel(channel)
		return rt, nil
	})
}

func queryStores(ctx context.Context, tx pgx.Tx) ([]models.Store, error) {
	rows, err := tx.Query(ctx, storesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Store, error) {
		var s models.Store
		err := row.Scan(&s.ID, &s.RetailerID, &s.Name, &s.Latitude, &s.Longitude, &s.State, &s.CurrentSkuCount, &s.BaseVelocity)
		return s, err
	})
}
