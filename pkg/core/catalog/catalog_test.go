package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"trade_planning/pkg/models"
)

func testData() Data {
	d := DefaultData()
	d.Stores = []models.Store{
		{ID: "s_1", RetailerID: "r_hyvee", Name: "Hy-Vee #101", State: "IA", Latitude: 41.6, Longitude: -93.6, CurrentSkuCount: 3, BaseVelocity: 10},
		{ID: "s_2", RetailerID: "r_hyvee", Name: "Hy-Vee #202", State: "MO", Latitude: 39.1, Longitude: -94.5, CurrentSkuCount: 2, BaseVelocity: 8},
		{ID: "s_3", RetailerID: "r_costco", Name: "Costco #303", State: "IA", Latitude: 41.5, Longitude: -93.7, CurrentSkuCount: 1, BaseVelocity: 40},
		{ID: "s_4", RetailerID: "r_gone", Name: "Orphan #404", State: "WI", Latitude: 43.0, Longitude: -89.4, CurrentSkuCount: 1, BaseVelocity: 5},
	}
	return d
}

func TestDefault(t *testing.T) {
	c := Default()
	if n := len(c.Products()); n != 5 {
		t.Errorf("expected 5 products, got %d", n)
	}
	if n := len(c.Retailers()); n != 9 {
		t.Errorf("expected 9 retailers, got %d", n)
	}
	if n := len(c.Stores()); n != 0 {
		t.Errorf("expected no stores, got %d", n)
	}
	if err := DefaultData().Validate(); err != nil {
		t.Errorf("default data should validate: %v", err)
	}
}

func TestLookups(t *testing.T) {
	c := New(testData())

	if r, ok := c.Retailer("r_costco"); !ok || r.Name != "Costco" {
		t.Errorf("unexpected retailer lookup: %+v %v", r, ok)
	}
	if _, ok := c.Product("p9"); ok {
		t.Error("expected missing product")
	}
	if c.ChannelOf("r_hyvee") != models.ChannelDSD {
		t.Error("expected Hy-Vee to be DSD")
	}
	if c.ChannelOf("r_gone") != models.ChannelWarehouse {
		t.Error("unknown retailer should default to Warehouse")
	}
	if c.RetailerName("r_gone") != "r_gone" {
		t.Error("unknown retailer name should fall back to id")
	}
	if got := c.States(); len(got) != 3 || got[0] != "IA" || got[2] != "WI" {
		t.Errorf("unexpected states: %v", got)
	}
}

func TestFilter(t *testing.T) {
	c := New(testData())

	tests := []struct {
		name   string
		filter StoreFilter
		want   []string
	}{
		{"all", StoreFilter{}, []string{"s_1", "s_2", "s_3", "s_4"}},
		{"dsd", StoreFilter{Channel: models.ChannelDSD}, []string{"s_1", "s_2"}},
		{"warehouse includes unresolved", StoreFilter{Channel: models.ChannelWarehouse}, []string{"s_3", "s_4"}},
		{"state", StoreFilter{State: "ia"}, []string{"s_1", "s_3"}},
		{"retailer", StoreFilter{RetailerID: "r_hyvee", State: "MO"}, []string{"s_2"}},
		{"search name", StoreFilter{Search: "costco"}, []string{"s_3"}},
		{"search state", StoreFilter{Search: "wi"}, []string{"s_4"}},
		{"no match", StoreFilter{Search: "zzz"}, []string{}},
	}

	for _, tt := range tests {
		got := c.Filter(tt.filter)
		if len(got) != len(tt.want) {
			t.Errorf("%s: expected %v, got %d stores", tt.name, tt.want, len(got))
			continue
		}
		for i, s := range got {
			if s.ID != tt.want[i] {
				t.Errorf("%s: expected %v at %d, got %s", tt.name, tt.want[i], i, s.ID)
			}
		}
	}
}

func TestUpdateStoreSkuCount(t *testing.T) {
	c := New(testData())
	before := c.Stores()

	s, err := c.UpdateStoreSkuCount("s_1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.CurrentSkuCount != 5 {
		t.Errorf("expected 5, got %d", s.CurrentSkuCount)
	}
	if got, _ := c.Store("s_1"); got.CurrentSkuCount != 5 {
		t.Errorf("edit not applied: %+v", got)
	}
	if before[0].CurrentSkuCount != 3 {
		t.Error("earlier snapshot must not change")
	}

	if _, err := c.UpdateStoreSkuCount("s_1", -1); !errors.Is(err, ErrInvalidSkuCount) {
		t.Errorf("expected ErrInvalidSkuCount, got %v", err)
	}
	if _, err := c.UpdateStoreSkuCount("s_99", 1); !errors.Is(err, ErrStoreNotFound) {
		t.Errorf("expected ErrStoreNotFound, got %v", err)
	}
}

func TestLoadFile_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := `
products:
  - id: p1
    name: Wisco Kid
    wholesale_price: 4.50
    msrp: 7.99
    cogs: 2.10
retailers:
  - id: r_costco
    name: Costco
    channel: National Account
    margin_requirement: 0.14
stores:
  - id: s_1
    retailer_id: r_costco
    name: "Costco #1"
    lat: 41.6
    lng: -93.6
    state: IA
    current_sku_count: 1
    base_velocity: 30
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.ChannelOf("r_costco") != models.ChannelWarehouse {
		t.Error("expected National Account to load as Warehouse")
	}
	if s, ok := c.Store("s_1"); !ok || s.BaseVelocity != 30 {
		t.Errorf("unexpected store: %+v", s)
	}
}

func TestLoadFile_HJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.hjson")
	data := `{
  # hand-edited
  products: [
    {
      id: p1
      name: Wisco Kid
      wholesale_price: 4.5
      msrp: 7.99
      cogs: 2.1
    }
  ]
  retailers: [
    {
      id: r_hyvee
      name: Hy-Vee
      channel: DSD
      margin_requirement: 0.32
    }
  ]
}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, ok := c.Product("p1"); !ok || p.WholesalePrice != 4.5 {
		t.Errorf("unexpected product: %+v", p)
	}
	if c.ChannelOf("r_hyvee") != models.ChannelDSD {
		t.Error("expected DSD")
	}
}

func TestLoadFile_TrailingCommaJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{"products": [{"id": "p2", "wholesale_price": 5.0, "cogs": 2.25,},],}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p, ok := c.Product("p2"); !ok || p.COGS != 2.25 {
		t.Errorf("unexpected product: %+v", p)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	bad := map[string]string{
		"neg.yaml":     "stores:\n  - id: s1\n    current_sku_count: -2\n",
		"lat.yaml":     "stores:\n  - id: s1\n    lat: 120\n",
		"dup.yaml":     "products:\n  - id: p1\n  - id: p1\n",
		"channel.yaml": "retailers:\n  - id: r1\n    channel: pigeon\n",
		"msrp.yaml":    "products:\n  - id: p1\n    msrp: -7.99\n",
		"cogs.yaml":    "products:\n  - id: p1\n    cogs: -2.10\n",
		"req.yaml":     "retailers:\n  - id: r1\n    channel: DSD\n    margin_requirement: 32\n",
		"catalog.csv":  "id,name\n",
	}
	for name, data := range bad {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate_StoreRetailerMustExist(t *testing.T) {
	d := Data{
		Retailers: []models.Retailer{{ID: "r_hyvee", Channel: models.ChannelDSD}},
		Stores: []models.Store{
			{ID: "s_1", RetailerID: "r_hyvee", Latitude: 41.6, Longitude: -93.6},
			{ID: "s_2", RetailerID: "r_gone", Latitude: 41.6, Longitude: -93.6},
		},
	}
	if err := d.Validate(); !errors.Is(err, ErrUnknownRetailer) {
		t.Errorf("expected ErrUnknownRetailer, got %v", err)
	}

	d.Stores = d.Stores[:1]
	if err := d.Validate(); err != nil {
		t.Errorf("expected valid catalog, got %v", err)
	}
}

func TestLoadFile_SampleCatalog(t *testing.T) {
	c, err := LoadFile(filepath.Join("..", "..", "..", "config", "catalog.yaml"))
	if err != nil {
		t.Fatalf("sample catalog should load: %v", err)
	}
	if n := len(c.Stores()); n != 5 {
		t.Errorf("expected 5 sample stores, got %d", n)
	}
	if c.ChannelOf("r_publix") != models.ChannelWarehouse {
		t.Error("expected Publix to be Warehouse")
	}
}
