package scenario

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trade_planning/pkg/api/httpx"
	"trade_planning/pkg/core/projection"
	"trade_planning/pkg/core/report"
	coreScenario "trade_planning/pkg/core/scenario"
	"trade_planning/pkg/models"
)

// SaveRequest projects a configuration and saves the snapshot.
type SaveRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Config      projection.Config `json:"config"`
}

// RetailerNamer resolves retailer display names for briefs.
type RetailerNamer interface {
	RetailerName(id string) string
}

// Handler holds dependencies for scenario endpoints
type Handler struct {
	Engine *projection.Engine
	Repo   coreScenario.Repository
	Names  RetailerNamer
	Logger *zap.Logger
}

// NewHandler creates a new scenario handler
func NewHandler(engine *projection.Engine, repo coreScenario.Repository, names RetailerNamer, logger *zap.Logger) *Handler {
	return &Handler{Engine: engine, Repo: repo, Names: names, Logger: logger}
}

// HandleProject returns a projection without saving it.
func (h *Handler) HandleProject(w http.ResponseWriter, r *http.Request) {
	var cfg projection.Config
	if err := httpx.DecodeJSON(r, &cfg); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}

	res, err := h.Engine.Project(cfg)
	if err != nil {
		writeProjectionError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// HandleSave re-projects the configuration server side and stores the
// snapshot, so a saved scenario never carries client-computed numbers.
func (h *Handler) HandleSave(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}

	res, err := h.Engine.Project(req.Config)
	if err != nil {
		writeProjectionError(w, r, err)
		return
	}

	saved, err := coreScenario.Save(h.Repo, req.Name, req.Description, req.Config, res)
	if err != nil {
		if errors.Is(err, coreScenario.ErrNameMissing) {
			httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
			return
		}
		h.Logger.Error("failed to save scenario", zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("internal", "failed to save scenario", http.StatusInternalServerError))
		return
	}

	h.Logger.Info("scenario saved",
		zap.String("scenario_id", saved.ID),
		zap.String("retailer_id", saved.TargetRetailerID),
		zap.Bool("margin_compliant", saved.MarginCompliant))
	httpx.WriteJSON(w, http.StatusCreated, saved)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	list := h.Repo.List()
	if list == nil {
		list = []models.Scenario{}
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s)
}

// HandleBrief renders a saved scenario as HTML, or Markdown with
// ?format=md.
func (h *Handler) HandleBrief(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	name := h.Names.RetailerName(s.TargetRetailerID)

	if r.URL.Query().Get("format") == "md" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = w.Write([]byte(report.ScenarioBrief(s, name)))
		return
	}

	html, err := report.ScenarioBriefHTML(s, name)
	if err != nil {
		h.Logger.Error("failed to render brief", zap.String("scenario_id", s.ID), zap.Error(err))
		httpx.WriteError(r.Context(), w, httpx.NewError("internal", "failed to render brief", http.StatusInternalServerError))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(html))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (models.Scenario, bool) {
	s, err := h.Repo.Get(chi.URLParam(r, "id"))
	if err != nil {
		httpx.WriteError(r.Context(), w, httpx.NotFound(err.Error()))
		return models.Scenario{}, false
	}
	return s, true
}

func writeProjectionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, projection.ErrUnknownRetailer), errors.Is(err, projection.ErrUnknownProduct):
		httpx.WriteError(r.Context(), w, httpx.NotFound(err.Error()))
	default:
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
	}
}
