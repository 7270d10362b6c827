package config

import (
	"net/http"

	"trade_planning/pkg/api/httpx"
	"trade_planning/pkg/core/assumption"
)

// Response describes the assumptions and data source in force.
type Response struct {
	Assumptions   assumption.Set `json:"assumptions"`
	CatalogSource string         `json:"catalog_source"`
}

// Handler holds dependencies for config endpoints
type Handler struct {
	Assumptions   assumption.Set
	CatalogSource string
}

// NewHandler creates a new config handler
func NewHandler(set assumption.Set, catalogSource string) *Handler {
	return &Handler{
		Assumptions:   set,
		CatalogSource: catalogSource,
	}
}

func (h *Handler) HandleConfig(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, Response{
		Assumptions:   h.Assumptions,
		CatalogSource: h.CatalogSource,
	})
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
