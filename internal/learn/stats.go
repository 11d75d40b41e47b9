package learn

import (
	"sort"

	"github.com/runger/revlearn/internal/feedback"
)

// topContributorCount is how many contributors the leaderboard carries.
const topContributorCount = 5

// ContributorCount is one leaderboard entry.
type ContributorCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// GlobalStats is an unconditional full-corpus summary of the feedback set.
// Like patterns, it is recomputed on every query and never stored.
type GlobalStats struct {
	TotalFeedback        int                `json:"total_feedback"`
	HelpfulCount         int                `json:"helpful_count"`
	NotHelpfulCount      int                `json:"not_helpful_count"`
	HelpfulRatePercent   float64            `json:"helpful_rate_percent"`
	DistinctPatterns     int                `json:"distinct_patterns"`
	DistinctContributors int                `json:"distinct_contributors"`
	ByExtension          map[string]int     `json:"by_extension"`
	TopContributors      []ContributorCount `json:"top_contributors"`
}

// GlobalStatsFrom computes corpus-wide counters in a single pass over the
// full feedback set. Contributors with empty names are counted in the
// totals but excluded from the distinct count and the leaderboard.
// Leaderboard ties are broken by first-encountered order.
func GlobalStatsFrom(events []feedback.Event) GlobalStats {
	stats := GlobalStats{
		TotalFeedback: len(events),
		ByExtension:   make(map[string]int),
	}

	patternKeys := make(map[string]struct{})
	contribCounts := make(map[string]int)
	var contribOrder []string

	for _, ev := range events {
		if ev.IsHelpful {
			stats.HelpfulCount++
		} else {
			stats.NotHelpfulCount++
		}
		patternKeys[ev.PatternKey()] = struct{}{}
		stats.ByExtension[ev.FileExtension]++
		if ev.Contributor != "" {
			if _, seen := contribCounts[ev.Contributor]; !seen {
				contribOrder = append(contribOrder, ev.Contributor)
			}
			contribCounts[ev.Contributor]++
		}
	}

	stats.DistinctPatterns = len(patternKeys)
	stats.DistinctContributors = len(contribCounts)
	stats.HelpfulRatePercent = accuracyPercent(stats.HelpfulCount, stats.TotalFeedback)

	firstSeen := make(map[string]int, len(contribOrder))
	for i, name := range contribOrder {
		firstSeen[name] = i
	}
	leaderboard := make([]ContributorCount, 0, len(contribOrder))
	for _, name := range contribOrder {
		leaderboard = append(leaderboard, ContributorCount{Name: name, Count: contribCounts[name]})
	}
	sort.SliceStable(leaderboard, func(i, j int) bool {
		if leaderboard[i].Count != leaderboard[j].Count {
			return leaderboard[i].Count > leaderboard[j].Count
		}
		return firstSeen[leaderboard[i].Name] < firstSeen[leaderboard[j].Name]
	})
	if len(leaderboard) > topContributorCount {
		leaderboard = leaderboard[:topContributorCount]
	}
	stats.TopContributors = leaderboard
	return stats
}
