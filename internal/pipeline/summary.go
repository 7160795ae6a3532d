// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// topSourcesLimit caps the most-frequent-sources list in the summary.
const topSourcesLimit = 5

// BuildSummary reduces the final ranked set to aggregate statistics. It is
// pure: no I/O, and an empty input yields a fully-populated zero-state with
// non-nil maps.
func BuildSummary(results []types.ScoredResult, query string) types.SummaryStats {
	stats := types.SummaryStats{
		SourceBreakdown:     map[string]int{},
		SourceTypeBreakdown: map[types.SourceType]int{},
	}

	if len(results) == 0 {
		stats.Overview = fmt.Sprintf("No relevant results found for %q.", query)
		return stats
	}

	var total float64
	minDate, maxDate := "", ""
	for _, r := range results {
		stats.SourceTypeBreakdown[r.SourceType]++
		if r.SourceName != "" {
			stats.SourceBreakdown[r.SourceName]++
		}
		total += r.RelevanceScore

		if r.PublishedDate == "" {
			continue
		}
		// Lexicographic min/max is enough because known dates are
		// ISO-prefixed.
		if minDate == "" || r.PublishedDate < minDate {
			minDate = r.PublishedDate
		}
		if r.PublishedDate > maxDate {
			maxDate = r.PublishedDate
		}
	}

	stats.TotalSources = len(results)
	stats.AvgRelevance = math.Round(total/float64(len(results))*1000) / 1000
	stats.TopSources = topSources(stats.SourceBreakdown)

	if minDate != "" {
		stats.DateRange = minDate + " to " + maxDate
	} else {
		stats.DateRange = "Various dates"
	}

	stats.Overview = fmt.Sprintf(
		"Found %d highly relevant sources on %q across academic databases, news outlets, blogs, and archives.",
		len(results), query)
	return stats
}

// topSources returns the most frequent source names, count descending with
// name as the tie-break so the listing is deterministic.
func topSources(counts map[string]int) []types.SourceCount {
	ranked := make([]types.SourceCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, types.SourceCount{Name: name, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > topSourcesLimit {
		ranked = ranked[:topSourcesLimit]
	}
	return ranked
}
