package pricing

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"trade_planning/pkg/api/httpx"
	"trade_planning/pkg/core/assumption"
	"trade_planning/pkg/core/calc"
	"trade_planning/pkg/core/margin"
	"trade_planning/pkg/core/royalty"
	"trade_planning/pkg/core/validate"
	"trade_planning/pkg/models"
)

// Request prices one unit at asp through channel.
type Request struct {
	ASP     float64  `json:"asp"`
	Channel string   `json:"channel"`
	COGS    *float64 `json:"cogs,omitempty"`
}

// MarginResponse pairs the decomposition with its balance check.
type MarginResponse struct {
	Channel      models.Channel          `json:"channel"`
	ASP          float64                 `json:"asp"`
	Breakdown    margin.Breakdown        `json:"breakdown"`
	Verification calc.VerificationResult `json:"verification"`
}

// RoyaltyResponse is the royalty breakdown for one price.
type RoyaltyResponse struct {
	Channel   models.Channel    `json:"channel"`
	ASP       float64           `json:"asp"`
	Breakdown royalty.Breakdown `json:"breakdown"`
}

// RollupRequest lists the units sold per retailer and price.
type RollupRequest struct {
	Rows []calc.RoyaltyRow `json:"rows"`
}

// RetailerLookup resolves retailer reference data.
type RetailerLookup interface {
	Retailer(id string) (models.Retailer, bool)
	ChannelOf(retailerID string) models.Channel
	RetailerName(retailerID string) string
}

// Handler holds dependencies for pricing endpoints
type Handler struct {
	Assumptions assumption.Set
	Retailers   RetailerLookup
	Logger      *zap.Logger
}

// NewHandler creates a new pricing handler
func NewHandler(set assumption.Set, retailers RetailerLookup, logger *zap.Logger) *Handler {
	return &Handler{Assumptions: set, Retailers: retailers, Logger: logger}
}

func (h *Handler) HandleRoyalty(w http.ResponseWriter, r *http.Request) {
	req, ch, ok := h.decode(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, RoyaltyResponse{
		Channel:   ch,
		ASP:       req.ASP,
		Breakdown: h.Assumptions.Royalty.Calculate(req.ASP, ch),
	})
}

func (h *Handler) HandleMargin(w http.ResponseWriter, r *http.Request) {
	req, ch, ok := h.decode(w, r)
	if !ok {
		return
	}

	calculator := h.Assumptions.MarginCalculator()
	if req.COGS != nil {
		if err := validate.NonNegative("cogs", *req.COGS); err != nil {
			httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
			return
		}
		calculator = calculator.WithCOGS(*req.COGS)
	}

	b := calculator.Calculate(req.ASP, ch)
	check := calc.CheckMarginDecomposition(req.ASP, b)
	if !check.IsBalanced {
		h.Logger.Error("margin decomposition out of balance",
			zap.Float64("asp", req.ASP),
			zap.String("channel", string(ch)),
			zap.Float64("gap", check.Gap))
	}

	httpx.WriteJSON(w, http.StatusOK, MarginResponse{
		Channel:      ch,
		ASP:          req.ASP,
		Breakdown:    b,
		Verification: check,
	})
}

// HandleRoyaltyRollup totals the royalty owed per retailer, per channel and
// overall. Every row must name a known retailer.
func (h *Handler) HandleRoyaltyRollup(w http.ResponseWriter, r *http.Request) {
	var req RollupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return
	}

	for i, row := range req.Rows {
		if _, ok := h.Retailers.Retailer(row.RetailerID); !ok {
			httpx.WriteError(r.Context(), w, httpx.BadRequest(fmt.Sprintf("rows[%d]: unknown retailer %q", i, row.RetailerID)))
			return
		}
		if err := validate.NonNegative("units", row.Units); err != nil {
			httpx.WriteError(r.Context(), w, httpx.BadRequest(fmt.Sprintf("rows[%d]: %v", i, err)))
			return
		}
		if err := validate.Finite("asp", row.ASP); err != nil {
			httpx.WriteError(r.Context(), w, httpx.BadRequest(fmt.Sprintf("rows[%d]: %v", i, err)))
			return
		}
	}

	rollup := calc.RollupRoyalty(req.Rows, h.Assumptions.Royalty, h.Retailers.ChannelOf, h.Retailers.RetailerName)
	h.Logger.Debug("royalty rollup",
		zap.Int("rows", len(req.Rows)),
		zap.Float64("total_royalty", rollup.TotalRoyalty))
	httpx.WriteJSON(w, http.StatusOK, rollup)
}

// decode parses the request and resolves the channel. Out-of-range prices
// are accepted and saturate; only non-finite numbers are rejected.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Request, models.Channel, bool) {
	var req Request
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return req, "", false
	}
	if err := validate.Finite("asp", req.ASP); err != nil {
		httpx.WriteError(r.Context(), w, httpx.BadRequest(err.Error()))
		return req, "", false
	}
	ch, ok := models.ParseChannel(req.Channel)
	if !ok {
		httpx.WriteError(r.Context(), w, httpx.BadRequest("unknown channel "+req.Channel))
		return req, "", false
	}
	return req, ch, true
}
