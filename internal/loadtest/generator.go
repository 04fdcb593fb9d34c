package loadtest

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/okian/talentbench/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor  = 1000000
	assessmentIDDivisor = 10000
	profileTypeDivisor  = 8
)

// Performance profile cases. Each generated player is drawn from one of
// these bands so the leaderboard ends up with a realistic spread of tiers.
const (
	caseAveragePerformer = 0
	caseStrongPerformer  = 1
	caseWeakPerformer    = 2
	caseElitePerformer   = 3
	caseVeryWeak         = 4
	caseUpperMiddle      = 5
	caseLowerMiddle      = 6
	caseWildcard         = 7
)

// positions drawn at random for generated players.
var positions = []string{"goalkeeper", "defender", "midfielder", "forward"}

// metricBand describes the raw-value range one metric spans and whether a
// lower raw value is the better result.
type metricBand struct {
	id          string
	worst, best float64
}

// metricBands covers every intake metric with realistic raw ranges.
var metricBands = []metricBand{
	{"sprint_30m", 5.5, 3.8},
	{"agility_5_10_5", 6.5, 4.2},
	{"vertical_jump", 20, 75},
	{"cooper_distance", 1800, 3400},
	{"aerobic_capacity", 35, 65},
	{"ball_control", 1, 5},
	{"dribbling", 1, 5},
	{"first_touch", 1, 5},
	{"passing_accuracy", 30, 95},
	{"shooting_accuracy", 20, 90},
	{"positioning", 1, 5},
	{"decision_making", 1, 5},
	{"off_ball_movement", 1, 5},
	{"defensive_awareness", 1, 5},
	{"motivation", 1, 5},
	{"confidence", 1, 5},
	{"focus", 1, 5},
	{"coachability", 1, 5},
}

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// generateAssessments creates the specified number of assessments with unique player IDs.
func generateAssessments(ctx context.Context, config *Config, stats *Stats) ([]Assessment, error) {
	logger.Get().Info(ctx, "generating assessments with unique player IDs", logger.Int("numAssessments", config.NumAssessments))

	assessments := make([]Assessment, config.NumAssessments)

	// Pre-allocate player IDs to ensure uniqueness
	playerIDs := make([]string, config.NumAssessments)
	for i := 0; i < config.NumAssessments; i++ {
		playerIDs[i] = uuid.New().String()
	}

	// Generate assessments concurrently
	type genResult struct {
		index      int
		assessment Assessment
		err        error
	}

	resultChan := make(chan genResult, config.NumAssessments)

	// Use worker pool for assessment generation
	workerCount := minInt(config.Workers, config.NumAssessments)
	perWorker := config.NumAssessments / workerCount

	for worker := 0; worker < workerCount; worker++ {
		start := worker * perWorker
		end := start + perWorker
		if worker == workerCount-1 {
			end = config.NumAssessments // Last worker gets the remainder
		}

		go func(start, end int) {
			for i := start; i < end; i++ {
				select {
				case <-ctx.Done():
					resultChan <- genResult{index: i, err: ctx.Err()}
					return
				default:
					a := generateSingleAssessment(i, playerIDs[i])
					resultChan <- genResult{index: i, assessment: a, err: nil}
				}
			}
		}(start, end)
	}

	// Collect results
	for i := 0; i < config.NumAssessments; i++ {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled during assessment generation: %w", ctx.Err())
		case result := <-resultChan:
			if result.err != nil {
				return nil, fmt.Errorf("failed to generate assessment %d: %w", result.index, result.err)
			}
			assessments[result.index] = result.assessment
		}
	}

	stats.AssessmentsGenerated = len(assessments)
	logger.Get().Info(ctx, "generated assessments successfully", logger.Int("count", len(assessments)))

	return assessments, nil
}

// generateSingleAssessment creates a single assessment with the given index and player ID.
func generateSingleAssessment(index int, playerID string) Assessment {
	// Draw a performance band, then fill every metric within it
	ability := drawAbility()
	metrics := make(map[string]float64, len(metricBands))
	for _, band := range metricBands {
		metrics[band.id] = band.sample(ability)
	}

	posIdx, _ := rand.Int(rand.Reader, big.NewInt(int64(len(positions))))
	ageOffset, _ := rand.Int(rand.Reader, big.NewInt(10))

	timestamp := time.Now().UTC().Format(time.RFC3339)

	randNum, _ := rand.Int(rand.Reader, big.NewInt(assessmentIDDivisor))
	assessmentID := "assessment_" + strconv.FormatInt(int64(index), 10) + "_" + strconv.FormatInt(time.Now().Unix(), 10) + "_" + strconv.FormatInt(randNum.Int64(), 10)

	return Assessment{
		AssessmentID: assessmentID,
		PlayerID:     playerID,
		Age:          14 + int(ageOffset.Int64()),
		Position:     positions[posIdx.Int64()],
		TS:           timestamp,
		Metrics:      metrics,
	}
}

// drawAbility picks an ability level in [0,1] from a banded distribution so
// generated players cluster the way a real intake population does.
func drawAbility() float64 {
	randNum, _ := rand.Int(rand.Reader, big.NewInt(profileTypeDivisor))
	switch randNum.Int64() {
	case caseAveragePerformer:
		// Average performers (0.35 - 0.65) - most common
		return 0.35 + getRandomFloat()*0.30
	case caseStrongPerformer:
		// Strong performers (0.65 - 0.85)
		return 0.65 + getRandomFloat()*0.20
	case caseWeakPerformer:
		// Weak performers (0.10 - 0.35)
		return 0.10 + getRandomFloat()*0.25
	case caseElitePerformer:
		// Elite performers (0.85 - 1.0) - rare
		return 0.85 + getRandomFloat()*0.15
	case caseVeryWeak:
		// Very weak performers (0.0 - 0.10) - rare
		return getRandomFloat() * 0.10
	case caseUpperMiddle:
		// Upper-middle performers (0.55 - 0.75)
		return 0.55 + getRandomFloat()*0.20
	case caseLowerMiddle:
		// Lower-middle performers (0.20 - 0.45)
		return 0.20 + getRandomFloat()*0.25
	case caseWildcard:
		// Random across the full range
		return getRandomFloat()
	default:
		return getRandomFloat()
	}
}

// sample draws a raw value for the band at the given ability level, with a
// little per-metric jitter so no two metrics land on the same percentile.
func (b metricBand) sample(ability float64) float64 {
	jittered := ability + (getRandomFloat()-0.5)*0.15
	if jittered < 0 {
		jittered = 0
	}
	if jittered > 1 {
		jittered = 1
	}
	return b.worst + (b.best-b.worst)*jittered
}

// minInt returns the minimum of two integers.
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
