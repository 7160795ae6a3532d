// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Default lexical weights: title matches are a stronger relevance signal
// than snippet matches.
const (
	defaultTitleWeight   = 0.6
	defaultSnippetWeight = 0.4
)

// sourceMultipliers weight the lexical score by source type. Multiplicative,
// not additive, so the boost scales with how well the text actually matches.
var sourceMultipliers = map[types.SourceType]float64{
	types.SourceAcademic: 1.3,
	types.SourceNews:     1.1,
	types.SourceBlog:     1.0,
	types.SourceArchive:  0.9,
	types.SourceWeb:      0.8,
	types.SourceOther:    0.8,
}

// dateFormats are the accepted published-date layouts, tried in order
// against the first ten characters of the field.
var dateFormats = []string{"2006-01-02", "2006-01", "2006", "2006/01/02"}

// Score computes the relevance of a result to the query: lexical overlap of
// the query terms with title and snippet, a source-type multiplier, and a
// recency multiplier. The result is clamped to [0, 1]. Same inputs always
// produce the same score.
func Score(result types.NormalizedResult, query string, cfg types.ScoringConfig) float64 {
	return scoreAt(result, query, cfg, time.Now())
}

func scoreAt(result types.NormalizedResult, query string, cfg types.ScoringConfig, now time.Time) float64 {
	titleWeight, snippetWeight := cfg.TitleWeight, cfg.SnippetWeight
	if titleWeight == 0 && snippetWeight == 0 {
		titleWeight, snippetWeight = defaultTitleWeight, defaultSnippetWeight
	}

	queryTerms := tokenSet(query)
	score := titleWeight*overlap(queryTerms, tokenSet(result.Title)) +
		snippetWeight*overlap(queryTerms, tokenSet(result.Snippet))

	if m, ok := sourceMultipliers[result.SourceType]; ok {
		score *= m
	}

	score *= recencyMultiplier(result.PublishedDate, now)

	if score > 1.0 {
		score = 1.0
	}
	if score < 0.0 {
		score = 0.0
	}
	return score
}

// tokenSet lowercases and splits on whitespace into a term set.
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// overlap returns |query ∩ text| / |query|, or 0 for an empty query.
func overlap(query, text map[string]struct{}) float64 {
	if len(query) == 0 {
		return 0
	}
	matched := 0
	for term := range query {
		if _, ok := text[term]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(query))
}

// recencyMultiplier boosts documents published within the last two years.
// Missing or unparseable dates get 1.0: absence of information is never
// scored as irrelevance.
func recencyMultiplier(published string, now time.Time) float64 {
	published = strings.TrimSpace(published)
	if published == "" {
		return 1.0
	}
	if len(published) > 10 {
		published = published[:10]
	}

	for _, layout := range dateFormats {
		t, err := time.Parse(layout, published)
		if err != nil {
			continue
		}
		age := now.Sub(t)
		switch {
		case age < 365*24*time.Hour:
			return 1.1
		case age < 730*24*time.Hour:
			return 1.05
		default:
			return 1.0
		}
	}
	return 1.0
}
