package loadtest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/talentbench/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete assessment test.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting talentbench assessment test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("assessments", config.NumAssessments),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()),
		logger.Int("topN", config.TopN),
		logger.String("logFile", config.LogFile),
		logger.Any("verbose", config.Verbose))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate assessments
	assessments, err := generateAssessments(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("assessment generation failed: %w", err)
	}

	// Step 3: Submit assessments concurrently
	if err := submitAssessments(ctx, config, assessments, stats); err != nil {
		return fmt.Errorf("assessment submission failed: %w", err)
	}

	// Step 4: Wait for scoring
	logger.Get().Info(ctx, "waiting for assessments to be scored")
	time.Sleep(ProcessingDelay)

	// Step 5: Retrieve reports concurrently
	reports, err := retrieveReports(ctx, config, assessments, stats)
	if err != nil {
		return fmt.Errorf("report retrieval failed: %w", err)
	}

	// Step 6: Get leaderboard
	leaderboard, err := getLeaderboard(ctx, config, stats)
	if err != nil {
		return fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(config, reports, leaderboard, stats); err != nil {
		return fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save assessments to file
	if err := saveAssessmentsToFile(ctx, config, assessments); err != nil {
		logger.Get().Warn(ctx, "failed to save assessments to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	client := newHTTPClient(config.Timeout)
	url := config.BaseURL + "/healthz"

	resp, err := client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveAssessmentsToFile saves the generated assessments to a JSON file.
func saveAssessmentsToFile(ctx context.Context, config *Config, assessments []Assessment) error {
	if len(assessments) == 0 {
		return fmt.Errorf("no assessments to save")
	}

	// Determine output filename
	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_assessments_" + timestamp + ".json"
	}

	// Ensure the directory exists
	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Write assessments to file
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	// Write JSON array
	if _, err := file.WriteString("[\n"); err != nil {
		return fmt.Errorf("failed to write opening bracket: %w", err)
	}

	for i, a := range assessments {
		jsonData, err := marshalJSON(a)
		if err != nil {
			return fmt.Errorf("failed to marshal assessment %d: %w", i, err)
		}

		if _, err := file.Write(jsonData); err != nil {
			return fmt.Errorf("failed to write assessment %d: %w", i, err)
		}

		// Add comma except for last assessment
		if i < len(assessments)-1 {
			if _, err := file.WriteString(","); err != nil {
				return fmt.Errorf("failed to write comma: %w", err)
			}
		}
		_, _ = file.WriteString("\n")
	}

	if _, err := file.WriteString("]\n"); err != nil {
		return fmt.Errorf("failed to write closing bracket: %w", err)
	}

	logger.Get().Info(ctx, "assessments saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, assessmentsPerSecond float64

	if stats.AssessmentsSubmitted > 0 {
		successRate = float64(stats.AssessmentsSuccessful) / float64(stats.AssessmentsSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		assessmentsPerSecond = float64(stats.AssessmentsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("assessmentsGenerated", stats.AssessmentsGenerated),
		logger.Int("assessmentsSubmitted", stats.AssessmentsSubmitted),
		logger.Int("assessmentsSuccessful", stats.AssessmentsSuccessful),
		logger.Int("assessmentsDuplicate", stats.AssessmentsDuplicate),
		logger.Int("assessmentsFailed", stats.AssessmentsFailed),
		logger.Int("reportsRetrieved", stats.ReportsRetrieved),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("assessmentsPerSecond", assessmentsPerSecond))
}
