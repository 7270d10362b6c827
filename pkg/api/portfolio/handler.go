package portfolio

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trade_planning/pkg/api/httpx"
	"trade_planning/pkg/core/calc"
	"trade_planning/pkg/core/catalog"
	"trade_planning/pkg/models"
)

const defaultTopN = 5

// SkuCountRequest edits one store's SKU count.
type SkuCountRequest struct {
	SkuCount *int `json:"sku_count"`
}

// StoreFinancialsResponse is the annual estimate for one store.
type StoreFinancialsResponse struct {
	Store      models.Store       `json:"store"`
	Channel    models.Channel     `json:"channel"`
	Financials calc.Financials    `json:"financials"`
	Unit       calc.UnitEconomics `json:"unit_economics"`
}

// Handler holds dependencies for catalog and portfolio endpoints
type Handler struct {
	Catalog *catalog.Catalog
	Logger  *zap.Logger
}

// NewHandler creates a new portfolio handler
func NewHandler(cat *catalog.Catalog, logger *zap.Logger) *Handler {
	return &Handler{Catalog: cat, Logger: logger}
}

func (h *Handler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Catalog.Products())
}

func (h *Handler) HandleRetailers(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Catalog.Retailers())
}

func (h *Handler) HandleStates(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, h.Catalog.States())
}

func (h *Handler) HandleStores(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}
	httpx.WriteJSON(w, http.StatusOK, h.Catalog.Filter(f))
}

func (h *Handler) HandleUpdateSkuCount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req SkuCountRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}
	if req.SkuCount == nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest("sku_count is required"))
		return
	}

	store, err := h.Catalog.UpdateStoreSkuCount(id, *req.SkuCount)
	switch {
	case errors.Is(err, catalog.ErrStoreNotFound):
		httpx.WriteError(r.Context(), w, httpx.NotFound(err.Error()))
		return
	case err != nil:
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}

	h.Logger.Info("store sku count updated",
		zap.String("store_id", id),
		zap.Int("sku_count", store.CurrentSkuCount))
	httpx.WriteJSON(w, http.StatusOK, store)
}

func (h *Handler) HandleStoreFinancials(w http.ResponseWriter, r *http.Request) {
	store, ok := h.Catalog.Store(chi.URLParam(r, "id"))
	if !ok {
		httpx.WriteError(r.Context(), w, httpx.NotFound("store not found"))
		return
	}

	products := h.Catalog.Products()
	httpx.WriteJSON(w, http.StatusOK, StoreFinancialsResponse{
		Store:      store,
		Channel:    h.Catalog.ChannelOf(store.RetailerID),
		Financials: calc.StoreFinancials(store, products),
		Unit:       calc.AverageUnitEconomics(products),
	})
}

func (h *Handler) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}

	topN := defaultTopN
	if v := r.URL.Query().Get("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			httpx.WriteError(r.Context(), w, httpx.BadRequest("top must be a non-negative integer"))
			return
		}
		topN = n
	}

	summary := calc.Summarize(
		h.Catalog.Filter(f),
		h.Catalog.Products(),
		h.Catalog.ChannelOf,
		h.Catalog.RetailerName,
		topN,
	)
	httpx.WriteJSON(w, http.StatusOK, summary)
}

// parseFilter reads channel, state, retailer and q. "ALL" or empty means no
// restriction.
func parseFilter(r *http.Request) (catalog.StoreFilter, error) {
	q := r.URL.Query()
	f := catalog.StoreFilter{
		State:      all(q.Get("state")),
		RetailerID: all(q.Get("retailer")),
		Search:     q.Get("q"),
	}
	if c := all(q.Get("channel")); c != "" {
		ch, ok := models.ParseChannel(c)
		if !ok {
			return f, errors.New("unknown channel " + c)
		}
		f.Channel = ch
	}
	return f, nil
}

func all(v string) string {
	if v == "ALL" || v == "all" {
		return ""
	}
	return v
}
