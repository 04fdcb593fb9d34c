// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/okian/talentbench/internal/domain/achievement"
)

// AchievementDependencies defines the interface for badge reads.
type AchievementDependencies interface {
	Achievements(ctx context.Context, playerID string) ([]achievement.Earned, error)
}

// AchievementsHandler serves a player's unlocked badges.
type AchievementsHandler struct {
	deps AchievementDependencies
}

// NewAchievementsHandler creates a new achievements handler.
func NewAchievementsHandler(deps AchievementDependencies) *AchievementsHandler {
	return &AchievementsHandler{deps: deps}
}

// achievementsResponse is the wire shape of GET /achievements/{player_id}.
type achievementsResponse struct {
	PlayerID string               `json:"player_id"`
	Earned   []achievement.Earned `json:"earned"`
}

// HandleGetAchievements handles GET /achievements/{player_id} requests.
func (h *AchievementsHandler) HandleGetAchievements(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_achievements"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	playerID := strings.TrimPrefix(r.URL.Path, "/achievements/")
	if playerID == "" || strings.Contains(playerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	earned, err := h.deps.Achievements(r.Context(), playerID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, achievementsResponse{
		PlayerID: playerID,
		Earned:   earned,
	})
}
