// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// fakeSearcher records the fan-out call and returns scripted results.
type fakeSearcher struct {
	results   []types.NormalizedResult
	gotQuery  string
	gotTotal  int
	gotFilter types.SourceType
	calls     int
}

func (f *fakeSearcher) SearchAll(ctx context.Context, query string, totalDesired int, filter types.SourceType) []types.NormalizedResult {
	f.calls++
	f.gotQuery, f.gotTotal, f.gotFilter = query, totalDesired, filter
	return f.results
}

// fakeEnricher stamps a marker summary on everything it is given.
type fakeEnricher struct {
	gotCount int
}

func (f *fakeEnricher) Enrich(ctx context.Context, results []types.ScoredResult, query string) []types.ScoredResult {
	f.gotCount = len(results)
	out := make([]types.ScoredResult, len(results))
	copy(out, results)
	for i := range out {
		out[i].AISummary = "enriched"
	}
	return out
}

func relevantResults(n int) []types.NormalizedResult {
	out := make([]types.NormalizedResult, n)
	for i := range out {
		out[i] = types.NormalizedResult{
			Title:      "quantum computing study",
			URL:        fmt.Sprintf("https://example.org/%d", i),
			SourceType: types.SourceAcademic,
			SourceName: "arXiv",
		}
	}
	return out
}

func newTestOrchestrator(s Searcher, e Enricher) *Orchestrator {
	return NewOrchestrator(s, e, types.Defaults(), nil)
}

func TestResearchValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{"empty query", Request{Query: ""}},
		{"whitespace query", Request{Query: "   "}},
		{"too short after trim", Request{Query: " ab "}},
		{"num results too large", Request{Query: "quantum", NumResults: 51}},
		{"negative num results", Request{Query: "quantum", NumResults: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher := &fakeSearcher{}
			o := newTestOrchestrator(searcher, nil)

			_, err := o.Research(context.Background(), tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Research() error = %v, want ValidationError", err)
			}
			if searcher.calls != 0 {
				t.Error("validation failure still reached the searcher")
			}
		})
	}
}

func TestResearchDefaultsAndOverfetch(t *testing.T) {
	searcher := &fakeSearcher{results: relevantResults(5)}
	o := newTestOrchestrator(searcher, nil)

	resp, err := o.Research(context.Background(), Request{Query: "quantum computing"})
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}

	if searcher.gotTotal != 45 { // default 15, overfetched 3x
		t.Errorf("searcher total = %d, want 45", searcher.gotTotal)
	}
	if searcher.gotQuery != "quantum computing" {
		t.Errorf("searcher query = %q", searcher.gotQuery)
	}
	if len(resp.Results) != 5 {
		t.Errorf("results = %d, want all 5 (below requested count)", len(resp.Results))
	}
	if resp.AIPowered {
		t.Error("AIPowered = true without an enricher")
	}
	if resp.Timestamp == "" {
		t.Error("Timestamp missing")
	}
}

func TestResearchTruncatesToRequestedCount(t *testing.T) {
	searcher := &fakeSearcher{results: relevantResults(30)}
	o := newTestOrchestrator(searcher, nil)

	resp, err := o.Research(context.Background(), Request{Query: "quantum computing", NumResults: 10})
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}
	if len(resp.Results) != 10 {
		t.Errorf("results = %d, want 10", len(resp.Results))
	}
	if resp.Summary.TotalSources != 10 {
		t.Errorf("summary counts %d sources, want the returned 10 only", resp.Summary.TotalSources)
	}
}

func TestResearchEmptyProvidersSucceed(t *testing.T) {
	o := newTestOrchestrator(&fakeSearcher{}, nil)

	resp, err := o.Research(context.Background(), Request{Query: "quantum computing"})
	if err != nil {
		t.Fatalf("Research() error = %v, want nil for empty result set", err)
	}
	if resp.Results == nil {
		t.Error("Results = nil, want empty non-nil slice")
	}
	if len(resp.Results) != 0 || resp.Summary.TotalSources != 0 {
		t.Errorf("results = %d, total = %d, want 0", len(resp.Results), resp.Summary.TotalSources)
	}
	if resp.Summary.Overview == "" {
		t.Error("empty run still needs an overview line")
	}
}

func TestResearchEnrichmentPrefix(t *testing.T) {
	searcher := &fakeSearcher{results: relevantResults(30)}
	enricher := &fakeEnricher{}
	o := newTestOrchestrator(searcher, enricher)

	resp, err := o.Research(context.Background(), Request{Query: "quantum computing", NumResults: 5})
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}

	// The enrichment prefix is twice the requested count.
	if enricher.gotCount != 10 {
		t.Errorf("enricher saw %d results, want 10", enricher.gotCount)
	}
	if len(resp.Results) != 5 {
		t.Fatalf("results = %d, want 5", len(resp.Results))
	}
	for i, r := range resp.Results {
		if r.AISummary != "enriched" {
			t.Errorf("results[%d] not enriched", i)
		}
	}
	if !resp.AIPowered {
		t.Error("AIPowered = false with an enricher configured")
	}
}

func TestResearchEnrichmentPrefixCappedByRanked(t *testing.T) {
	searcher := &fakeSearcher{results: relevantResults(3)}
	enricher := &fakeEnricher{}
	o := newTestOrchestrator(searcher, enricher)

	if _, err := o.Research(context.Background(), Request{Query: "quantum computing", NumResults: 10}); err != nil {
		t.Fatalf("Research() error = %v", err)
	}
	if enricher.gotCount != 3 {
		t.Errorf("enricher saw %d results, want all 3 available", enricher.gotCount)
	}
}

func TestResearchTypeFilterForwarded(t *testing.T) {
	searcher := &fakeSearcher{}
	o := newTestOrchestrator(searcher, nil)

	_, err := o.Research(context.Background(), Request{Query: "quantum", TypeFilter: types.SourceAcademic})
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}
	if searcher.gotFilter != types.SourceAcademic {
		t.Errorf("filter = %q, want academic", searcher.gotFilter)
	}
}

func TestResearchMinRelevanceOverride(t *testing.T) {
	// All results score ~0.78 (academic full-title match); an override above
	// that must filter everything out.
	searcher := &fakeSearcher{results: relevantResults(5)}
	o := newTestOrchestrator(searcher, nil)

	resp, err := o.Research(context.Background(), Request{Query: "quantum computing study", MinRelevance: 0.99})
	if err != nil {
		t.Fatalf("Research() error = %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("results = %d, want 0 with min_relevance 0.99", len(resp.Results))
	}
}

func TestResearchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	o := newTestOrchestrator(&fakeSearcher{}, nil)
	if _, err := o.Research(ctx, Request{Query: "quantum computing"}); !errors.Is(err, context.Canceled) {
		t.Errorf("Research() error = %v, want context.Canceled", err)
	}
}
