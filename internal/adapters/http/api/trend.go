// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/talentbench/internal/domain/model"
	"github.com/okian/talentbench/internal/domain/trend"
)

// TrendDependencies defines the interface for trend reads.
type TrendDependencies interface {
	Trend(ctx context.Context, playerID string) ([]trend.Point, error)
}

// TrendHandler serves a player's progress series.
type TrendHandler struct {
	deps TrendDependencies
}

// NewTrendHandler creates a new trend handler.
func NewTrendHandler(deps TrendDependencies) *TrendHandler {
	return &TrendHandler{deps: deps}
}

// trendResponse is the wire shape of GET /trend/{player_id}.
// Slope is points per day fitted over the valid composites; SlopeValid is
// false when fewer than two valid points exist.
type trendResponse struct {
	PlayerID       string                     `json:"player_id"`
	Points         []trend.Point              `json:"points"`
	Slope          float64                    `json:"slope"`
	SlopeValid     bool                       `json:"slope_valid"`
	CategorySlopes map[model.Category]float64 `json:"category_slopes,omitempty"`
}

// HandleGetTrend handles GET /trend/{player_id} requests.
func (h *TrendHandler) HandleGetTrend(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_trend"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	playerID := strings.TrimPrefix(r.URL.Path, "/trend/")
	if playerID == "" || strings.Contains(playerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	points, err := h.deps.Trend(r.Context(), playerID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	slope, slopeValid := trend.Slope(points)
	categorySlopes := make(map[model.Category]float64)
	for _, cat := range []model.Category{
		model.Physical, model.Technical, model.Tactical, model.Psychological,
	} {
		if beta, ok := trend.CategorySlope(points, cat); ok {
			categorySlopes[cat] = beta
		}
	}
	writeJSON(w, http.StatusOK, trendResponse{
		PlayerID:       playerID,
		Points:         points,
		Slope:          slope,
		SlopeValid:     slopeValid,
		CategorySlopes: categorySlopes,
	})
}
