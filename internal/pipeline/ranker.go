// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"sort"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// previewMax bounds the content preview attached to scored results.
const previewMax = 200

// Rank scores every input, drops results below minRelevance, and sorts the
// rest descending by score. The sort is stable, so equal scores keep their
// input order and ranking an already-ranked set reproduces it. Truncation to
// the requested count is the orchestrator's job; Rank returns everything
// that clears the threshold.
func Rank(results []types.NormalizedResult, query string, minRelevance float64, cfg types.ScoringConfig) []types.ScoredResult {
	scored := make([]types.ScoredResult, 0, len(results))
	for _, r := range results {
		score := Score(r, query, cfg)
		if score < minRelevance {
			continue
		}
		scored = append(scored, types.ScoredResult{
			NormalizedResult: r,
			RelevanceScore:   score,
			ContentPreview:   preview(r.Snippet),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})
	return scored
}

// DedupeByURL keeps the first occurrence of each URL, so the copy from the
// highest-priority provider wins. Returns the survivors and the number of
// duplicates dropped. Opt-in: the pipeline runs without it by default.
func DedupeByURL(results []types.NormalizedResult) ([]types.NormalizedResult, int) {
	seen := make(map[string]struct{}, len(results))
	deduped := results[:0:0]
	removed := 0
	for _, r := range results {
		if _, ok := seen[r.URL]; ok {
			removed++
			continue
		}
		seen[r.URL] = struct{}{}
		deduped = append(deduped, r)
	}
	return deduped, removed
}

// preview returns the first previewMax characters of the snippet.
func preview(snippet string) string {
	if len(snippet) <= previewMax {
		return snippet
	}
	return snippet[:previewMax]
}
