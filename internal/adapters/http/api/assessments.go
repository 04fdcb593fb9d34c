// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/okian/talentbench/internal/domain/dedupe"
	"github.com/okian/talentbench/internal/domain/model"
)

// AssessmentDependencies defines the interface for assessment intake.
type AssessmentDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, a model.Assessment) bool
}

// AssessmentsHandler handles assessment submissions.
type AssessmentsHandler struct {
	deps AssessmentDependencies
}

// NewAssessmentsHandler creates a new assessments handler.
func NewAssessmentsHandler(deps AssessmentDependencies) *AssessmentsHandler {
	return &AssessmentsHandler{deps: deps}
}

// HandlePostAssessment handles POST /assessments requests.
func (h *AssessmentsHandler) HandlePostAssessment(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_assessment"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req assessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if req.AssessmentID == "" {
		req.AssessmentID = uuid.NewString()
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.AssessmentID) {
		writeJSON(w, http.StatusOK, ackResponse{
			AssessmentID: req.AssessmentID,
			Status:       "duplicate",
			Duplicate:    true,
		})
		return
	}

	if ok := h.deps.Enqueue(r.Context(), req.toAssessment()); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.AssessmentID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{
		AssessmentID: req.AssessmentID,
		Status:       "accepted",
		Duplicate:    false,
	})
}
