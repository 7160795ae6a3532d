// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"math"
	"testing"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// scoreNow fixes the clock so recency boosts are reproducible.
var scoreNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScoreLexicalOverlap(t *testing.T) {
	cfg := types.ScoringConfig{TitleWeight: 0.6, SnippetWeight: 0.4}

	tests := []struct {
		name   string
		result types.NormalizedResult
		query  string
		want   float64
	}{
		{
			name: "full title and snippet match",
			result: types.NormalizedResult{
				Title: "quantum computing", Snippet: "quantum computing advances",
				SourceType: types.SourceBlog, // multiplier 1.0
			},
			query: "quantum computing",
			want:  1.0, // 0.6*1 + 0.4*1
		},
		{
			name: "half the query terms in the title only",
			result: types.NormalizedResult{
				Title: "quantum hardware", Snippet: "cryogenic control systems",
				SourceType: types.SourceBlog,
			},
			query: "quantum computing",
			want:  0.3, // 0.6*0.5
		},
		{
			name:   "no overlap",
			result: types.NormalizedResult{Title: "gardening tips", Snippet: "roses", SourceType: types.SourceBlog},
			query:  "quantum computing",
			want:   0,
		},
		{
			name:   "empty query scores zero",
			result: types.NormalizedResult{Title: "anything", SourceType: types.SourceBlog},
			query:  "   ",
			want:   0,
		},
		{
			name: "case insensitive",
			result: types.NormalizedResult{
				Title: "Quantum Computing", SourceType: types.SourceBlog,
			},
			query: "QUANTUM computing",
			want:  0.6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreAt(tt.result, tt.query, cfg, scoreNow)
			if !almostEqual(got, tt.want) {
				t.Errorf("scoreAt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreSourceMultipliers(t *testing.T) {
	cfg := types.ScoringConfig{TitleWeight: 0.6, SnippetWeight: 0.4}
	base := types.NormalizedResult{Title: "quantum"} // full title match: 0.6

	tests := []struct {
		sourceType types.SourceType
		want       float64
	}{
		{types.SourceAcademic, 0.78}, // 0.6 * 1.3
		{types.SourceNews, 0.66},     // 0.6 * 1.1
		{types.SourceBlog, 0.6},
		{types.SourceArchive, 0.54}, // 0.6 * 0.9
		{types.SourceWeb, 0.48},     // 0.6 * 0.8
		{types.SourceOther, 0.48},
	}
	for _, tt := range tests {
		t.Run(string(tt.sourceType), func(t *testing.T) {
			r := base
			r.SourceType = tt.sourceType
			got := scoreAt(r, "quantum", cfg, scoreNow)
			if !almostEqual(got, tt.want) {
				t.Errorf("scoreAt(%s) = %v, want %v", tt.sourceType, got, tt.want)
			}
		})
	}
}

func TestScoreClampedToOne(t *testing.T) {
	cfg := types.ScoringConfig{TitleWeight: 0.6, SnippetWeight: 0.4}
	r := types.NormalizedResult{
		Title:         "quantum computing",
		Snippet:       "quantum computing",
		SourceType:    types.SourceAcademic,
		PublishedDate: scoreNow.AddDate(0, -1, 0).Format("2006-01-02"),
	}
	// 1.0 * 1.3 * 1.1 would exceed 1 without the clamp.
	got := scoreAt(r, "quantum computing", cfg, scoreNow)
	if got != 1.0 {
		t.Errorf("scoreAt() = %v, want clamp at 1.0", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	cfg := types.ScoringConfig{TitleWeight: 0.6, SnippetWeight: 0.4}
	r := types.NormalizedResult{
		Title: "neural scaling laws", Snippet: "empirical study of scaling",
		SourceType: types.SourceAcademic, PublishedDate: "2024-05-01",
	}
	first := scoreAt(r, "scaling laws", cfg, scoreNow)
	for i := 0; i < 10; i++ {
		if got := scoreAt(r, "scaling laws", cfg, scoreNow); got != first {
			t.Fatalf("scoreAt() = %v on run %d, want %v every time", got, i, first)
		}
	}
}

func TestScoreZeroWeightsFallBackToDefaults(t *testing.T) {
	r := types.NormalizedResult{Title: "quantum", SourceType: types.SourceBlog}
	got := scoreAt(r, "quantum", types.ScoringConfig{}, scoreNow)
	if !almostEqual(got, 0.6) {
		t.Errorf("scoreAt() with zero weights = %v, want default title weight 0.6", got)
	}
}

func TestRecencyMultiplier(t *testing.T) {
	tests := []struct {
		name      string
		published string
		want      float64
	}{
		{"recent full date", scoreNow.AddDate(0, -3, 0).Format("2006-01-02"), 1.1},
		{"between one and two years", scoreNow.AddDate(-1, -6, 0).Format("2006-01-02"), 1.05},
		{"older than two years", "2020-01-01", 1.0},
		{"year-month layout", scoreNow.AddDate(0, -2, 0).Format("2006-01"), 1.1},
		{"bare recent year", scoreNow.Format("2006"), 1.1},
		{"slash layout", scoreNow.AddDate(0, -1, 0).Format("2006/01/02"), 1.1},
		{"timestamp prefix parsed", scoreNow.AddDate(0, -1, 0).Format("2006-01-02") + "T10:00:00Z", 1.1},
		{"empty", "", 1.0},
		{"unparseable", "2 weeks ago", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recencyMultiplier(tt.published, scoreNow); got != tt.want {
				t.Errorf("recencyMultiplier(%q) = %v, want %v", tt.published, got, tt.want)
			}
		})
	}
}

func TestOverlapMonotonicInMatches(t *testing.T) {
	query := tokenSet("large language model alignment")
	none := tokenSet("unrelated words entirely")
	some := tokenSet("language model training")
	all := tokenSet("large language model alignment research")

	a, b, c := overlap(query, none), overlap(query, some), overlap(query, all)
	if !(a < b && b < c) {
		t.Errorf("overlap not monotonic: none=%v some=%v all=%v", a, b, c)
	}
	if c != 1.0 {
		t.Errorf("full containment overlap = %v, want 1.0", c)
	}
}
