package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"trade_planning/pkg/core/utils"
	"trade_planning/pkg/core/validate"
	"trade_planning/pkg/models"
)

// LoadFile reads a catalog from YAML (.yaml, .yml), JSON (.json) or Hjson
// (.hjson). JSON files are parsed leniently so hand-edited data files load.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var d Data
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &d); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	case ".json":
		if _, err := utils.SmartParse(raw, &d); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	case ".hjson":
		if err := utils.DecodeHJSON(raw, &d); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("catalog %s: unsupported extension %q", path, ext)
	}

	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return New(d), nil
}

// Validate checks identity and store invariants.
func (d Data) Validate() error {
	seen := make(map[string]bool)
	for _, p := range d.Products {
		if p.ID == "" || seen["p:"+p.ID] {
			return fmt.Errorf("product id %q is empty or duplicated", p.ID)
		}
		seen["p:"+p.ID] = true
		if err := validate.NonNegative("product "+p.ID+" wholesale_price", p.WholesalePrice); err != nil {
			return err
		}
		if err := validate.NonNegative("product "+p.ID+" msrp", p.MSRP); err != nil {
			return err
		}
		if err := validate.NonNegative("product "+p.ID+" cogs", p.COGS); err != nil {
			return err
		}
	}
	for _, r := range d.Retailers {
		if r.ID == "" || seen["r:"+r.ID] {
			return fmt.Errorf("retailer id %q is empty or duplicated", r.ID)
		}
		seen["r:"+r.ID] = true
		if err := validate.InRange("retailer "+r.ID+" margin_requirement", r.MarginRequirement, 0, 1); err != nil {
			return err
		}
	}
	for _, s := range d.Stores {
		if s.ID == "" || seen["s:"+s.ID] {
			return fmt.Errorf("store id %q is empty or duplicated", s.ID)
		}
		seen["s:"+s.ID] = true
		if !seen["r:"+s.RetailerID] {
			return fmt.Errorf("store %s retailer %q: %w", s.ID, s.RetailerID, ErrUnknownRetailer)
		}
		if s.CurrentSkuCount < 0 {
			return fmt.Errorf("store %s: %w", s.ID, ErrInvalidSkuCount)
		}
		if err := validate.NonNegative("store "+s.ID+" base_velocity", s.BaseVelocity); err != nil {
			return err
		}
		if err := validate.Latitude(s.Latitude); err != nil {
			return fmt.Errorf("store %s: %w", s.ID, err)
		}
		if err := validate.Longitude(s.Longitude); err != nil {
			return fmt.Errorf("store %s: %w", s.ID, err)
		}
	}
	return nil
}

// Default returns the reference product and retailer catalog with no stores.
func Default() *Catalog {
	return New(DefaultData())
}

// DefaultData is the built-in reference data.
func DefaultData() Data {
	return Data{
		Products: []models.Product{
			{ID: "p1", Name: "Wisco Kid", WholesalePrice: 4.50, MSRP: 7.99, COGS: 2.10, CaseCount: 12, CasesPerPallet: 60},
			{ID: "p2", Name: "Peppin' Ain't Easy", WholesalePrice: 5.00, MSRP: 8.99, COGS: 2.25, CaseCount: 12, CasesPerPallet: 60},
			{ID: "p3", Name: "Lost in the Sausage", WholesalePrice: 5.50, MSRP: 9.49, COGS: 2.60, CaseCount: 12, CasesPerPallet: 60},
			{ID: "p4", Name: "Curd Your Enthusiasm", WholesalePrice: 5.75, MSRP: 9.99, COGS: 2.80, CaseCount: 12, CasesPerPallet: 60},
			{ID: "p5", Name: "Okie Dokie Artichokie", WholesalePrice: 6.00, MSRP: 10.99, COGS: 3.10, CaseCount: 10, CasesPerPallet: 80},
		},
		Retailers: []models.Retailer{
			{ID: "r_hyvee", Name: "Hy-Vee", Channel: models.ChannelDSD, MarginRequirement: 0.32, PaymentTerms: "Net 30", RegionFocus: "MIDWEST"},
			{ID: "r_meijer", Name: "Meijer", Channel: models.ChannelDSD, MarginRequirement: 0.34, PaymentTerms: "Net 45", RegionFocus: "MIDWEST_EAST"},
			{ID: "r_cashwise", Name: "Cash Wise", Channel: models.ChannelDSD, MarginRequirement: 0.30, PaymentTerms: "Net 15", RegionFocus: "UPPER_MIDWEST"},
			{ID: "r_woodmans", Name: "Woodman's", Channel: models.ChannelDSD, MarginRequirement: 0.28, PaymentTerms: "Net 15", RegionFocus: "WI_IL"},
			{ID: "r_festival", Name: "Festival Foods", Channel: models.ChannelDSD, MarginRequirement: 0.30, PaymentTerms: "Net 30", RegionFocus: "WI"},
			{ID: "r_sprouts", Name: "Sprouts", Channel: models.ChannelWarehouse, MarginRequirement: 0.38, PaymentTerms: "Net 60", RegionFocus: "NATIONAL_SCATTERED"},
			{ID: "r_ht", Name: "Harris Teeter", Channel: models.ChannelWarehouse, MarginRequirement: 0.36, PaymentTerms: "Net 45", RegionFocus: "MID_ATLANTIC"},
			{ID: "r_publix", Name: "Publix", Channel: models.ChannelWarehouse, MarginRequirement: 0.35, PaymentTerms: "Net 30", RegionFocus: "SOUTHEAST"},
			{ID: "r_costco", Name: "Costco", Channel: models.ChannelWarehouse, MarginRequirement: 0.14, PaymentTerms: "Net 30", RegionFocus: "NATIONAL_URBAN"},
		},
	}
}
