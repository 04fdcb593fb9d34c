// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/okian/talentbench/internal/domain/model"
)

// ReportDependencies defines the interface for report reads.
type ReportDependencies interface {
	Report(ctx context.Context, playerID string) (model.Benchmark, error)
}

// ReportHandler serves the latest scored report for a player.
type ReportHandler struct {
	deps ReportDependencies
}

// NewReportHandler creates a new report handler.
func NewReportHandler(deps ReportDependencies) *ReportHandler {
	return &ReportHandler{deps: deps}
}

// reportResponse is the wire shape of GET /report/{player_id}.
type reportResponse struct {
	AssessmentID string       `json:"assessment_id"`
	PlayerID     string       `json:"player_id"`
	TS           time.Time    `json:"ts"`
	Report       model.Report `json:"report"`
}

// HandleGetReport handles GET /report/{player_id} requests.
func (h *ReportHandler) HandleGetReport(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_report"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	playerID := strings.TrimPrefix(r.URL.Path, "/report/")
	if playerID == "" || strings.Contains(playerID, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	b, err := h.deps.Report(r.Context(), playerID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, reportResponse{
		AssessmentID: b.AssessmentID,
		PlayerID:     b.PlayerID,
		TS:           b.TS,
		Report:       b.Report,
	})
}
