package tam

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"trade_planning/pkg/api/httpx"
	"trade_planning/pkg/core/catalog"
	"trade_planning/pkg/core/geo"
	"trade_planning/pkg/core/validate"
	"trade_planning/pkg/models"
)

// Request selects a TAM center. RadiusMiles defaults to the analyzer radius.
// Channel, State and Retailer narrow the stores the same way the store list
// filter does; empty or "ALL" means no restriction.
type Request struct {
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	RadiusMiles *float64 `json:"radius_miles,omitempty"`
	Channel     string   `json:"channel,omitempty"`
	State       string   `json:"state,omitempty"`
	Retailer    string   `json:"retailer,omitempty"`
}

// StoreFilterer returns the stores matching a filter.
type StoreFilterer interface {
	Filter(f catalog.StoreFilter) []models.Store
}

// Handler holds dependencies for TAM endpoints
type Handler struct {
	Analyzer *geo.Analyzer
	Stores   StoreFilterer
	Logger   *zap.Logger
}

// NewHandler creates a new TAM handler
func NewHandler(analyzer *geo.Analyzer, stores StoreFilterer, logger *zap.Logger) *Handler {
	return &Handler{Analyzer: analyzer, Stores: stores, Logger: logger}
}

func (h *Handler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}
	if req.Lat == nil || req.Lng == nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest("lat and lng are required"))
		return
	}
	if err := validate.Latitude(*req.Lat); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}
	if err := validate.Longitude(*req.Lng); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}

	radius := h.Analyzer.RadiusMiles()
	if req.RadiusMiles != nil {
		if err := validate.NonNegative("radius_miles", *req.RadiusMiles); err != nil {
			httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
			return
		}
		radius = *req.RadiusMiles
	}

	f, filtered, err := req.filter()
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}

	center := geo.Point{Lat: *req.Lat, Lng: *req.Lng}
	var sel geo.Selection
	if filtered {
		sel = h.Analyzer.SelectStores(center, radius, h.Stores.Filter(f))
	} else {
		sel = h.Analyzer.SelectRadius(center, radius)
	}
	h.Logger.Debug("tam selection",
		zap.Uint64("seq", sel.Seq),
		zap.Float64("radius_miles", radius),
		zap.Int("store_count", sel.Result.StoreCount))
	httpx.WriteJSON(w, http.StatusOK, sel)
}

func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.Analyzer.Latest()
	if !ok {
		httpx.WriteError(r.Context(), w, httpx.NotFound("no TAM center selected"))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, sel)
}

func (req Request) filter() (catalog.StoreFilter, bool, error) {
	f := catalog.StoreFilter{
		State:      all(req.State),
		RetailerID: all(req.Retailer),
	}
	if c := all(req.Channel); c != "" {
		ch, ok := models.ParseChannel(c)
		if !ok {
			return f, false, fmt.Errorf("unknown channel %s", c)
		}
		f.Channel = ch
	}
	return f, f != (catalog.StoreFilter{}), nil
}

func all(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}
