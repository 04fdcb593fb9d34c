package loadtest

import (
	"fmt"
	"log"
	"sort"
)

// verifyResults verifies the consistency of reports and leaderboard.
func verifyResults(config *Config, reports []ReportResponse, leaderboard []Entry, stats *Stats) error {
	log.Println("🔍 Verifying results...")

	if len(reports) == 0 {
		return fmt.Errorf("no reports to verify")
	}

	// Composite scores must sit inside the 0-100 scale
	for _, r := range reports {
		if !r.Report.Composite.Valid {
			return fmt.Errorf("player %s has no valid composite despite a full assessment", r.PlayerID)
		}
		if r.Report.Composite.Value < 0 || r.Report.Composite.Value > 100 {
			return fmt.Errorf("player %s composite %.3f out of range", r.PlayerID, r.Report.Composite.Value)
		}
	}

	// Sort reports by composite (descending) to get top performers
	sortedReports := make([]ReportResponse, len(reports))
	copy(sortedReports, reports)
	sort.Slice(sortedReports, func(i, j int) bool {
		return sortedReports[i].Report.Composite.Value > sortedReports[j].Report.Composite.Value
	})

	// Verify leaderboard consistency if we have leaderboard data
	if len(leaderboard) > 0 {
		if err := verifyLeaderboardConsistency(sortedReports, leaderboard); err != nil {
			log.Printf("⚠️  Leaderboard consistency warning: %v", err)
		} else {
			log.Println("✅ Leaderboard consistency verified")
		}
	}

	// Display top performers
	displayTopPerformers(sortedReports, leaderboard, config.Verbose)

	log.Println("✅ Result verification completed")
	return nil
}

// verifyLeaderboardConsistency checks if leaderboard matches top reports.
func verifyLeaderboardConsistency(sortedReports []ReportResponse, leaderboard []Entry) error {
	if len(leaderboard) == 0 {
		return fmt.Errorf("empty leaderboard")
	}

	// Check if top entry in leaderboard matches highest scored player
	topReport := sortedReports[0]
	topLeaderboard := leaderboard[0]

	if topReport.PlayerID != topLeaderboard.PlayerID {
		return fmt.Errorf("top leaderboard entry (%s) does not match top scored player (%s)",
			topLeaderboard.PlayerID, topReport.PlayerID)
	}

	if topReport.Report.Composite.Value != topLeaderboard.Composite {
		return fmt.Errorf("top leaderboard composite (%.3f) does not match top report composite (%.3f)",
			topLeaderboard.Composite, topReport.Report.Composite.Value)
	}

	// Check if leaderboard is properly sorted
	for i := 1; i < len(leaderboard); i++ {
		if leaderboard[i].Composite > leaderboard[i-1].Composite {
			return fmt.Errorf("leaderboard not properly sorted: entry %d has higher composite than entry %d",
				i, i-1)
		}
	}

	// Check ranks are dense and 1-based
	for i, entry := range leaderboard {
		if entry.Rank != i+1 {
			return fmt.Errorf("leaderboard entry %d carries rank %d", i, entry.Rank)
		}
	}

	return nil
}

// displayTopPerformers shows the top performers from reports and leaderboard.
func displayTopPerformers(sortedReports []ReportResponse, leaderboard []Entry, verbose bool) {
	topN := 10
	if len(sortedReports) < topN {
		topN = len(sortedReports)
	}

	log.Printf("🏆 Top %d performers from reports:", topN)
	for i := 0; i < topN; i++ {
		r := sortedReports[i]
		log.Printf("   %d. %s - Composite: %.3f (%s)", i+1, r.PlayerID, r.Report.Composite.Value, r.Report.Tier)
	}

	if len(leaderboard) > 0 {
		leaderboardTopN := topN
		if len(leaderboard) < leaderboardTopN {
			leaderboardTopN = len(leaderboard)
		}

		log.Printf("🥇 Top %d performers from leaderboard:", leaderboardTopN)
		for i := 0; i < leaderboardTopN; i++ {
			entry := leaderboard[i]
			log.Printf("   %d. %s - Composite: %.3f (%s)", i+1, entry.PlayerID, entry.Composite, entry.Tier)
		}
	}

	if verbose {
		// Show some statistics
		if len(sortedReports) > 0 {
			avgComposite := calculateAverageComposite(sortedReports)
			maxComposite := sortedReports[0].Report.Composite.Value
			minComposite := sortedReports[len(sortedReports)-1].Report.Composite.Value

			log.Printf(`📊 Composite statistics:
   Average: %.3f
   Maximum: %.3f
   Minimum: %.3f
`, avgComposite, maxComposite, minComposite)
		}
	}
}

// calculateAverageComposite calculates the average composite from reports.
func calculateAverageComposite(reports []ReportResponse) float64 {
	if len(reports) == 0 {
		return 0
	}

	sum := 0.0
	for _, r := range reports {
		sum += r.Report.Composite.Value
	}

	return sum / float64(len(reports))
}
