package loadtest

import (
	"context"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// retrieveReports retrieves scored reports for all players concurrently.
func retrieveReports(ctx context.Context, config *Config, assessments []Assessment, stats *Stats) ([]ReportResponse, error) {
	log.Printf("🏆 Retrieving reports for %d players with %d workers...", len(assessments), config.Workers)

	client := newHTTPClient(config.Timeout)

	// Extract player IDs
	playerIDs := make([]string, len(assessments))
	for i, a := range assessments {
		playerIDs[i] = a.PlayerID
	}

	// Results storage
	reports := make([]ReportResponse, len(playerIDs))
	var (
		retrieved int64
		failed    int64
	)

	// Progress reporting
	var lastReport time.Time
	reportInterval := 1 * time.Second

	// Create worker pool
	playerChan := make(chan int, config.Workers*WorkerChannelMultiplier) // Send indices instead of IDs
	var wg sync.WaitGroup

	// Start workers
	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for index := range playerChan {
				select {
				case <-ctx.Done():
					return
				default:
					playerID := playerIDs[index]
					report, err := retrieveSingleReport(ctx, client, config.BaseURL, playerID)

					if err != nil {
						atomic.AddInt64(&failed, 1)
						if config.Verbose {
							log.Printf("⚠️  Failed to get report for %s: %v", playerID, err)
						}
					} else {
						reports[index] = report
						atomic.AddInt64(&retrieved, 1)
					}

					// Progress reporting
					if time.Since(lastReport) >= reportInterval {
						lastReport = time.Now()
						total := atomic.LoadInt64(&retrieved) + atomic.LoadInt64(&failed)
						ret := atomic.LoadInt64(&retrieved)
						fail := atomic.LoadInt64(&failed)

						if config.Verbose {
							log.Printf("📊 Report progress: %d/%d retrieved (success: %d, failed: %d)",
								total, len(playerIDs), ret, fail)
						} else {
							log.Printf("\r🏆 Reports: %d/%d retrieved (success: %d, failed: %d)",
								total, len(playerIDs), ret, fail)
						}
					}
				}
			}
		}()
	}

	// Send player indices to workers
	go func() {
		defer close(playerChan)
		for i := range playerIDs {
			select {
			case <-ctx.Done():
				return
			case playerChan <- i:
			}
		}
	}()

	// Wait for all workers to complete
	wg.Wait()

	// Final progress report
	if !config.Verbose {
		log.Println() // New line after progress indicator
	}

	// Filter out empty entries (failed retrievals)
	validReports := make([]ReportResponse, 0, len(reports))
	for _, r := range reports {
		if r.PlayerID != "" { // Empty PlayerID indicates failed retrieval
			validReports = append(validReports, r)
		}
	}

	// Update stats
	stats.ReportsRetrieved = len(validReports)

	log.Printf(`✅ Report retrieval completed:
   Retrieved: %d
   Failed: %d
`, len(validReports), int(atomic.LoadInt64(&failed)))

	return validReports, nil
}

// retrieveSingleReport retrieves the latest report for a single player.
func retrieveSingleReport(ctx context.Context, client *HTTPClient, baseURL, playerID string) (ReportResponse, error) {
	url := fmt.Sprintf("%s/report/%s", baseURL, playerID)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return ReportResponse{}, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return ReportResponse{}, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return ReportResponse{}, fmt.Errorf("failed to read response: %w", err)
	}

	var report ReportResponse
	if err := unmarshalJSON(body, &report); err != nil {
		return ReportResponse{}, fmt.Errorf("failed to parse response: %w", err)
	}

	return report, nil
}

// getLeaderboard retrieves the top N leaderboard entries.
func getLeaderboard(ctx context.Context, config *Config, stats *Stats) ([]Entry, error) {
	log.Printf("🥇 Getting top %d leaderboard entries...", config.TopN)

	client := newHTTPClient(config.Timeout)
	url := fmt.Sprintf("%s/leaderboard?limit=%d", config.BaseURL, config.TopN)

	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode != StatusOK {
		body, _ := readResponseBody(resp)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var leaderboard []Entry
	if err := unmarshalJSON(body, &leaderboard); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	stats.LeaderboardEntries = len(leaderboard)
	log.Printf("✅ Retrieved %d leaderboard entries", len(leaderboard))

	return leaderboard, nil
}
