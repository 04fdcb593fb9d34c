package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/talentbench/internal/adapters/http/api"
	repository "github.com/okian/talentbench/internal/adapters/repository"
	"github.com/okian/talentbench/internal/domain/achievement"
	"github.com/okian/talentbench/internal/domain/metric"
	"github.com/okian/talentbench/internal/domain/model"
	"github.com/okian/talentbench/internal/domain/trend"
	"github.com/okian/talentbench/internal/domain/types"
)

// Mock implementations for testing.
type mockDeduper struct {
	seen map[string]bool
}

func (m *mockDeduper) SeenAndRecord(ctx context.Context, id string) bool {
	if m.seen == nil {
		m.seen = make(map[string]bool)
	}
	if m.seen[id] {
		return true
	}
	m.seen[id] = true
	return false
}

func (m *mockDeduper) Unrecord(ctx context.Context, id string) {
	if m.seen != nil {
		delete(m.seen, id)
	}
}

func (m *mockDeduper) Size() int64 {
	return int64(len(m.seen))
}

type mockQueue struct {
	enqueueSuccess bool
	enqueued       []model.Assessment
}

func (m *mockQueue) Enqueue(ctx context.Context, a model.Assessment) bool {
	if m.enqueueSuccess {
		m.enqueued = append(m.enqueued, a)
		return true
	}
	return false
}

type mockReads struct {
	report          model.Benchmark
	reportErr       error
	trendPoints     []trend.Point
	trendErr        error
	achievements    []achievement.Earned
	achievementsErr error
	topN            []types.Entry
	topNErr         error
}

func (m *mockReads) Report(ctx context.Context, playerID string) (model.Benchmark, error) {
	if m.reportErr != nil {
		return model.Benchmark{}, m.reportErr
	}
	return m.report, nil
}

func (m *mockReads) Trend(ctx context.Context, playerID string) ([]trend.Point, error) {
	if m.trendErr != nil {
		return nil, m.trendErr
	}
	return m.trendPoints, nil
}

func (m *mockReads) Achievements(ctx context.Context, playerID string) ([]achievement.Earned, error) {
	if m.achievementsErr != nil {
		return nil, m.achievementsErr
	}
	return m.achievements, nil
}

func (m *mockReads) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	if m.topNErr != nil {
		return nil, m.topNErr
	}
	if n > len(m.topN) {
		return m.topN, nil
	}
	return m.topN[:n], nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

// Mock dependencies bundle implementing the Dependencies interface.
type mockDependencies struct {
	dedupe *mockDeduper
	queue  *mockQueue
	reads  *mockReads
}

func (m *mockDependencies) SeenAndRecord(ctx context.Context, id string) bool {
	return m.dedupe.SeenAndRecord(ctx, id)
}

func (m *mockDependencies) Unrecord(ctx context.Context, id string) {
	m.dedupe.Unrecord(ctx, id)
}

func (m *mockDependencies) Size() int64 {
	return m.dedupe.Size()
}

func (m *mockDependencies) Enqueue(ctx context.Context, a model.Assessment) bool {
	return m.queue.Enqueue(ctx, a)
}

func (m *mockDependencies) Report(ctx context.Context, playerID string) (model.Benchmark, error) {
	return m.reads.Report(ctx, playerID)
}

func (m *mockDependencies) Trend(ctx context.Context, playerID string) ([]trend.Point, error) {
	return m.reads.Trend(ctx, playerID)
}

func (m *mockDependencies) Achievements(ctx context.Context, playerID string) ([]achievement.Earned, error) {
	return m.reads.Achievements(ctx, playerID)
}

func (m *mockDependencies) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	return m.reads.TopN(ctx, n)
}

// Local mirrors of wire shapes.
type ackResponse struct {
	AssessmentID string `json:"assessment_id"`
	Status       string `json:"status"`
	Duplicate    bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newDeps() *mockDependencies {
	return &mockDependencies{
		dedupe: &mockDeduper{},
		queue:  &mockQueue{enqueueSuccess: true},
		reads:  &mockReads{},
	}
}

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		deps := newDeps()
		statsProvider := &mockStatsProvider{}
		server := api.NewServer(deps, statsProvider, 100)
		mux := http.NewServeMux()

		Convey("When registering routes", func() {
			server.Register(context.Background(), mux, deps)

			Convey("Then all expected routes should be registered", func() {
				So(mux, ShouldNotBeNil)
			})

			Convey("And health endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/healthz", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And stats endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/stats", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And assessments endpoint should be accessible", func() {
				req := httptest.NewRequest("POST", "/assessments", strings.NewReader(`{}`))
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest) // Invalid request
			})

			Convey("And leaderboard endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/leaderboard?limit=10", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And report endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/report/player-1", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And trend endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/trend/player-1", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And achievements endpoint should be accessible", func() {
				req := httptest.NewRequest("GET", "/achievements/player-1", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})

			Convey("And root endpoint should catch everything else", func() {
				req := httptest.NewRequest("GET", "/unknown", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAssessmentsHandler_HandlePostAssessment(t *testing.T) {
	Convey("Given an assessments handler", t, func() {
		deps := newDeps()
		handler := api.NewAssessmentsHandler(deps)

		Convey("When handling a valid POST request", func() {
			valid := `{
				"assessment_id": "assessment-123",
				"player_id": "player-456",
				"ts": "2026-01-01T12:00:00Z",
				"metrics": {"passing_accuracy": 85.5, "sprint_30m": 4.2}
			}`

			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(valid))
			w := httptest.NewRecorder()

			Convey("Then it should return accepted status", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusAccepted)

				var response ackResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Status, ShouldEqual, "accepted")
				So(response.Duplicate, ShouldBeFalse)
				So(response.AssessmentID, ShouldEqual, "assessment-123")
			})

			Convey("And the enqueued assessment should carry parsed metrics", func() {
				handler.HandlePostAssessment(w, req)
				So(len(deps.queue.enqueued), ShouldEqual, 1)
				a := deps.queue.enqueued[0]
				So(a.PlayerID, ShouldEqual, "player-456")
				So(len(a.Metrics), ShouldEqual, 2)
			})
		})

		Convey("When the assessment id is omitted", func() {
			valid := `{
				"player_id": "player-456",
				"ts": "2026-01-01T12:00:00Z",
				"metrics": {"passing_accuracy": 85.5}
			}`

			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(valid))
			w := httptest.NewRecorder()

			Convey("Then one should be generated", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusAccepted)

				var response ackResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.AssessmentID, ShouldNotBeEmpty)
			})
		})

		Convey("When heart rates are supplied without a direct VO2max measurement", func() {
			valid := `{
				"assessment_id": "assessment-hr",
				"player_id": "player-456",
				"sex": "female",
				"resting_hr": 60,
				"max_hr": 190,
				"ts": "2026-01-01T12:00:00Z",
				"metrics": {"sprint_30m": 4.2}
			}`

			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(valid))
			w := httptest.NewRecorder()

			Convey("Then aerobic capacity should be estimated from the ratio", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(len(deps.queue.enqueued), ShouldEqual, 1)
				a := deps.queue.enqueued[0]
				So(a.Metrics[metric.AerobicCapacity], ShouldAlmostEqual, 14.7*(190.0/60.0), 0.0001)
			})
		})

		Convey("When heart rates accompany a direct VO2max measurement", func() {
			valid := `{
				"assessment_id": "assessment-hr-direct",
				"player_id": "player-456",
				"resting_hr": 60,
				"max_hr": 190,
				"ts": "2026-01-01T12:00:00Z",
				"metrics": {"aerobic_capacity": 58}
			}`

			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(valid))
			w := httptest.NewRecorder()

			Convey("Then the direct measurement should win", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusAccepted)
				So(len(deps.queue.enqueued), ShouldEqual, 1)
				So(deps.queue.enqueued[0].Metrics[metric.AerobicCapacity], ShouldEqual, 58)
			})
		})

		Convey("When the max heart rate does not exceed the resting rate", func() {
			invalid := `{
				"player_id": "player-456",
				"resting_hr": 190,
				"max_hr": 60,
				"ts": "2026-01-01T12:00:00Z",
				"metrics": {}
			}`

			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(invalid))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When handling a duplicate assessment", func() {
			valid := `{
				"assessment_id": "assessment-123",
				"player_id": "player-456",
				"ts": "2026-01-01T12:00:00Z",
				"metrics": {"passing_accuracy": 85.5}
			}`

			req1 := httptest.NewRequest("POST", "/assessments", strings.NewReader(valid))
			w1 := httptest.NewRecorder()
			handler.HandlePostAssessment(w1, req1)

			req2 := httptest.NewRequest("POST", "/assessments", strings.NewReader(valid))
			w2 := httptest.NewRecorder()

			Convey("Then it should return duplicate status", func() {
				handler.HandlePostAssessment(w2, req2)
				So(w2.Code, ShouldEqual, http.StatusOK)

				var response ackResponse
				err := json.NewDecoder(w2.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Status, ShouldEqual, "duplicate")
				So(response.Duplicate, ShouldBeTrue)
			})
		})

		Convey("When handling an invalid JSON request", func() {
			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(`{invalid json`))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When handling a request with missing required fields", func() {
			incomplete := `{"assessment_id": "assessment-123"}`
			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(incomplete))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When handling a request with an unknown metric key", func() {
			unknown := `{
				"player_id": "player-456",
				"ts": "2026-01-01T12:00:00Z",
				"metrics": {"teleportation": 99}
			}`
			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(unknown))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When handling a request with an invalid timestamp", func() {
			bad := `{
				"player_id": "player-456",
				"ts": "yesterday",
				"metrics": {"passing_accuracy": 85.5}
			}`
			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(bad))
			w := httptest.NewRecorder()

			Convey("Then it should return bad request status", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When handling a non-POST request", func() {
			req := httptest.NewRequest("GET", "/assessments", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return not found status", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When enqueue fails due to backpressure", func() {
			deps.queue.enqueueSuccess = false
			valid := `{
				"assessment_id": "assessment-456",
				"player_id": "player-789",
				"ts": "2026-01-01T12:00:00Z",
				"metrics": {"passing_accuracy": 85.5}
			}`

			req := httptest.NewRequest("POST", "/assessments", strings.NewReader(valid))
			w := httptest.NewRecorder()

			Convey("Then it should return too many requests status", func() {
				handler.HandlePostAssessment(w, req)
				So(w.Code, ShouldEqual, http.StatusTooManyRequests)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Code, ShouldEqual, "backpressure")
			})

			Convey("And the assessment id should be retryable", func() {
				handler.HandlePostAssessment(w, req)
				So(deps.dedupe.SeenAndRecord(context.Background(), "assessment-456"), ShouldBeFalse)
			})
		})
	})
}

func TestReportHandler_HandleGetReport(t *testing.T) {
	Convey("Given a report handler", t, func() {
		reads := &mockReads{
			report: model.Benchmark{
				Assessment: model.Assessment{
					AssessmentID: "assessment-1",
					PlayerID:     "player-123",
					TS:           time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
				},
				Report: model.Report{
					Composite: model.Score{Value: 82.5, Valid: true},
					Tier:      "Advanced",
					Categories: map[model.Category]model.Score{
						model.Technical: {Value: 82.5, Valid: true},
					},
					Strengths:       []string{},
					Weaknesses:      []string{"no major weaknesses identified"},
					Recommendations: []string{},
				},
			},
		}
		handler := api.NewReportHandler(reads)

		Convey("When requesting a report for an existing player", func() {
			req := httptest.NewRequest("GET", "/report/player-123", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the latest report", func() {
				handler.HandleGetReport(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var response struct {
					AssessmentID string       `json:"assessment_id"`
					PlayerID     string       `json:"player_id"`
					Report       model.Report `json:"report"`
				}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.PlayerID, ShouldEqual, "player-123")
				So(response.Report.Composite.Valid, ShouldBeTrue)
				So(response.Report.Composite.Value, ShouldEqual, 82.5)
				So(response.Report.Tier, ShouldEqual, "Advanced")
			})
		})

		Convey("When requesting a report for an unknown player", func() {
			reads.reportErr = repository.ErrNotFound
			req := httptest.NewRequest("GET", "/report/nonexistent", nil)
			w := httptest.NewRecorder()

			handler.HandleGetReport(w, req)

			Convey("Then it should return not found status", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When the store returns another error", func() {
			reads.reportErr = fmt.Errorf("store error")
			req := httptest.NewRequest("GET", "/report/player-123", nil)
			w := httptest.NewRecorder()

			handler.HandleGetReport(w, req)

			Convey("Then it should return internal server error", func() {
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})

		Convey("When the path has no player id", func() {
			req := httptest.NewRequest("GET", "/report/", nil)
			w := httptest.NewRecorder()

			handler.HandleGetReport(w, req)

			Convey("Then it should return bad request status", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestTrendHandler_HandleGetTrend(t *testing.T) {
	Convey("Given a trend handler", t, func() {
		day1 := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
		day2 := time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)
		reads := &mockReads{
			trendPoints: []trend.Point{
				{
					TS:        day1,
					Composite: model.Score{Value: 55, Valid: true},
					Categories: map[model.Category]model.Score{
						model.Physical: {Value: 50, Valid: true},
					},
				},
				{
					TS:        day2,
					Composite: model.Score{Value: 65, Valid: true},
					Categories: map[model.Category]model.Score{
						model.Physical: {Value: 70, Valid: true},
					},
				},
			},
		}
		handler := api.NewTrendHandler(reads)

		Convey("When requesting a trend for an existing player", func() {
			req := httptest.NewRequest("GET", "/trend/player-123", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return points and a fitted slope", func() {
				handler.HandleGetTrend(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response struct {
					PlayerID       string             `json:"player_id"`
					Points         []trend.Point      `json:"points"`
					Slope          float64            `json:"slope"`
					SlopeValid     bool               `json:"slope_valid"`
					CategorySlopes map[string]float64 `json:"category_slopes"`
				}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.PlayerID, ShouldEqual, "player-123")
				So(len(response.Points), ShouldEqual, 2)
				So(response.SlopeValid, ShouldBeTrue)
				So(response.Slope, ShouldAlmostEqual, 1.0, 0.0001) // 10 points over 10 days
				So(response.CategorySlopes["physical"], ShouldAlmostEqual, 2.0, 0.0001)
				So(response.CategorySlopes, ShouldNotContainKey, "technical")
			})
		})

		Convey("When the player has a single assessment", func() {
			reads.trendPoints = reads.trendPoints[:1]
			req := httptest.NewRequest("GET", "/trend/player-123", nil)
			w := httptest.NewRecorder()

			Convey("Then the slope should be reported as undefined", func() {
				handler.HandleGetTrend(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response struct {
					SlopeValid bool `json:"slope_valid"`
				}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.SlopeValid, ShouldBeFalse)
			})
		})

		Convey("When requesting a trend for an unknown player", func() {
			reads.trendErr = repository.ErrNotFound
			req := httptest.NewRequest("GET", "/trend/nonexistent", nil)
			w := httptest.NewRecorder()

			handler.HandleGetTrend(w, req)

			Convey("Then it should return not found status", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestAchievementsHandler_HandleGetAchievements(t *testing.T) {
	Convey("Given an achievements handler", t, func() {
		reads := &mockReads{
			achievements: []achievement.Earned{
				{RuleID: "first_assessment", Label: "First Assessment", EarnedAt: time.Now()},
			},
		}
		handler := api.NewAchievementsHandler(reads)

		Convey("When requesting achievements for an existing player", func() {
			req := httptest.NewRequest("GET", "/achievements/player-123", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the earned badges", func() {
				handler.HandleGetAchievements(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response struct {
					PlayerID string               `json:"player_id"`
					Earned   []achievement.Earned `json:"earned"`
				}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.PlayerID, ShouldEqual, "player-123")
				So(len(response.Earned), ShouldEqual, 1)
				So(response.Earned[0].RuleID, ShouldEqual, "first_assessment")
			})
		})

		Convey("When requesting achievements for an unknown player", func() {
			reads.achievementsErr = repository.ErrNotFound
			req := httptest.NewRequest("GET", "/achievements/nonexistent", nil)
			w := httptest.NewRecorder()

			handler.HandleGetAchievements(w, req)

			Convey("Then it should return not found status", func() {
				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestLeaderboardHandler_HandleGetLeaderboard(t *testing.T) {
	Convey("Given a leaderboard handler", t, func() {
		reads := &mockReads{
			topN: []types.Entry{
				{Rank: 1, PlayerID: "player-1", Composite: 92.0, Tier: "Elite"},
				{Rank: 2, PlayerID: "player-2", Composite: 81.0, Tier: "Advanced"},
				{Rank: 3, PlayerID: "player-3", Composite: 74.0, Tier: "Advanced"},
			},
		}
		handler := api.NewLeaderboardHandler(reads, 100)

		Convey("When requesting top N entries", func() {
			req := httptest.NewRequest("GET", "/leaderboard?limit=2", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return the top N entries", func() {
				handler.HandleGetLeaderboard(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response []types.Entry
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(len(response), ShouldEqual, 2)
				So(response[0].PlayerID, ShouldEqual, "player-1")
				So(response[1].PlayerID, ShouldEqual, "player-2")
			})
		})

		Convey("When no limit is specified", func() {
			req := httptest.NewRequest("GET", "/leaderboard", nil)
			w := httptest.NewRecorder()

			handler.HandleGetLeaderboard(w, req)

			Convey("Then it should return 400 Bad Request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the limit exceeds the maximum", func() {
			req := httptest.NewRequest("GET", "/leaderboard?limit=101", nil)
			w := httptest.NewRecorder()

			handler.HandleGetLeaderboard(w, req)

			Convey("Then it should return 400 Bad Request", func() {
				So(w.Code, ShouldEqual, http.StatusBadRequest)

				var response errorResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response.Code, ShouldEqual, "limit_exceeded")
			})
		})

		Convey("When the store returns an error", func() {
			reads.topNErr = fmt.Errorf("store error")
			req := httptest.NewRequest("GET", "/leaderboard?limit=10", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return internal server error", func() {
				handler.HandleGetLeaderboard(w, req)
				So(w.Code, ShouldEqual, http.StatusInternalServerError)
			})
		})
	})
}

func TestHealthHandler_HandleHealth(t *testing.T) {
	Convey("Given a health handler", t, func() {
		handler := api.NewHealthHandler()

		Convey("When handling health check request", func() {
			req := httptest.NewRequest("GET", "/healthz", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return OK status", func() {
				handler.HandleHealth(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
			})
		})
	})
}

func TestStatsHandler_HandleStats(t *testing.T) {
	Convey("Given a stats handler", t, func() {
		mockStats := &mockStatsProvider{
			stats: map[string]interface{}{
				"totalPlayers": 1000,
				"queueLength":  150,
			},
		}
		handler := api.NewStatsHandler(mockStats)

		Convey("When handling stats request", func() {
			req := httptest.NewRequest("GET", "/stats", nil)
			w := httptest.NewRecorder()

			Convey("Then it should return stats", func() {
				handler.HandleStats(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)

				var response map[string]interface{}
				err := json.NewDecoder(w.Body).Decode(&response)
				So(err, ShouldBeNil)
				So(response["totalPlayers"], ShouldEqual, 1000)
				So(response["queueLength"], ShouldEqual, 150)
			})
		})
	})
}
