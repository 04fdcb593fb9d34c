// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	repository "github.com/okian/talentbench/internal/adapters/repository"
	"github.com/okian/talentbench/internal/domain/achievement"
	"github.com/okian/talentbench/internal/domain/dedupe"
	"github.com/okian/talentbench/internal/domain/fitness"
	"github.com/okian/talentbench/internal/domain/metric"
	"github.com/okian/talentbench/internal/domain/model"
	"github.com/okian/talentbench/internal/domain/trend"
	"github.com/okian/talentbench/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes an assessment for async scoring. Returns false on
	// backpressure.
	Enqueue(ctx context.Context, a model.Assessment) bool

	// Read operations expose scored data.
	Report(ctx context.Context, playerID string) (model.Benchmark, error)
	Trend(ctx context.Context, playerID string) ([]trend.Point, error)
	Achievements(ctx context.Context, playerID string) ([]achievement.Earned, error)
	TopN(ctx context.Context, n int) ([]Entry, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler       *HealthHandler
	statsHandler        *StatsHandler
	assessmentsHandler  *AssessmentsHandler
	reportHandler       *ReportHandler
	trendHandler        *TrendHandler
	achievementsHandler *AchievementsHandler
	leaderboardHandler  *LeaderboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLeaderboardLimit int) *Server {
	return &Server{
		healthHandler:       NewHealthHandler(),
		statsHandler:        NewStatsHandler(statsProvider),
		assessmentsHandler:  NewAssessmentsHandler(deps),
		reportHandler:       NewReportHandler(deps),
		trendHandler:        NewTrendHandler(deps),
		achievementsHandler: NewAchievementsHandler(deps),
		leaderboardHandler:  NewLeaderboardHandler(deps, maxLeaderboardLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, deps Dependencies) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/assessments", MetricsMiddleware(s.assessmentsHandler.HandlePostAssessment, "assessments"))
	mux.HandleFunc("/report/", MetricsMiddleware(s.reportHandler.HandleGetReport, "report"))
	mux.HandleFunc("/trend/", MetricsMiddleware(s.trendHandler.HandleGetTrend, "trend"))
	mux.HandleFunc("/achievements/", MetricsMiddleware(s.achievementsHandler.HandleGetAchievements, "achievements"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
}

// assessmentRequest mirrors the wire schema for POST /assessments. The
// heart-rate fields are optional; when both are present and no direct
// aerobic_capacity measurement was taken, VO2max is estimated from them.
type assessmentRequest struct {
	AssessmentID string             `json:"assessment_id"`
	PlayerID     string             `json:"player_id"`
	Age          int                `json:"age,omitempty"`
	Position     string             `json:"position,omitempty"`
	Sex          string             `json:"sex,omitempty"`
	RestingHR    float64            `json:"resting_hr,omitempty"`
	MaxHR        float64            `json:"max_hr,omitempty"`
	TS           string             `json:"ts"`
	Metrics      map[string]float64 `json:"metrics"`
}

func (a assessmentRequest) validate() error {
	switch {
	case strings.TrimSpace(a.PlayerID) == "":
		return errors.New("missing player_id")
	case strings.TrimSpace(a.TS) == "":
		return errors.New("missing ts")
	}
	if _, err := time.Parse(time.RFC3339, a.TS); err != nil {
		return errors.New("invalid ts; must be RFC3339")
	}
	if a.RestingHR != 0 || a.MaxHR != 0 {
		if math.IsNaN(a.RestingHR) || math.IsInf(a.RestingHR, 0) ||
			math.IsNaN(a.MaxHR) || math.IsInf(a.MaxHR, 0) {
			return errors.New("heart rate must be a finite number")
		}
		if _, err := fitness.EstimateVO2MaxHR(a.Sex, a.RestingHR, a.MaxHR); err != nil {
			return err
		}
	}
	for name, value := range a.Metrics {
		if _, err := metric.ParseID(name); err != nil {
			return err
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return errors.New("metric value must be a finite number")
		}
	}
	return nil
}

// toAssessment converts a validated request into the domain shape.
// validate must have succeeded before calling this.
func (a assessmentRequest) toAssessment() model.Assessment {
	ts, _ := time.Parse(time.RFC3339, a.TS)
	metrics := make(map[metric.ID]float64, len(a.Metrics)+1)
	for name, value := range a.Metrics {
		id, _ := metric.ParseID(name)
		metrics[id] = value
	}
	if _, ok := metrics[metric.AerobicCapacity]; !ok && (a.RestingHR != 0 || a.MaxHR != 0) {
		// A direct measurement always wins over the estimate.
		if vo2, err := fitness.EstimateVO2MaxHR(a.Sex, a.RestingHR, a.MaxHR); err == nil {
			metrics[metric.AerobicCapacity] = vo2
		}
	}
	return model.Assessment{
		AssessmentID: a.AssessmentID,
		PlayerID:     a.PlayerID,
		Age:          a.Age,
		Position:     a.Position,
		TS:           ts,
		Metrics:      metrics,
	}
}

type ackResponse struct {
	AssessmentID string `json:"assessment_id"`
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
