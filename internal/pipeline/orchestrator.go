// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Request limits.
const (
	minQueryLen       = 3
	maxNumResults     = 50
	defaultNumResults = 15
)

// searchOverfetch asks providers for a multiple of the requested count so
// the threshold filter still leaves enough candidates.
const searchOverfetch = 3

// enrichFactor bounds the enrichment prefix at this multiple of the
// requested count.
const enrichFactor = 2

// ValidationError reports a malformed request. The pipeline never starts
// when validation fails.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Request is one research invocation.
type Request struct {
	// Query is the free-text research question. Trimmed length must be at
	// least 3 characters.
	Query string

	// NumResults is the requested result count in [1, 50]; 0 selects the
	// default of 15.
	NumResults int

	// MinRelevance overrides the configured ranking threshold when positive.
	MinRelevance float64

	// TypeFilter restricts the run to providers of one source type
	// (e.g. academic-only search); empty means all providers.
	TypeFilter types.SourceType
}

// Searcher is the fan-out stage as the orchestrator sees it.
type Searcher interface {
	SearchAll(ctx context.Context, query string, totalDesired int, filter types.SourceType) []types.NormalizedResult
}

// Enricher attaches AI summaries to a ranked prefix without changing scores
// or order.
type Enricher interface {
	Enrich(ctx context.Context, results []types.ScoredResult, query string) []types.ScoredResult
}

// Orchestrator sequences search, scoring, ranking, optional enrichment, and
// summary for one query. One orchestrator value is constructed at startup
// and shared by the CLI and the HTTP server; requests share no mutable
// state, so concurrent runs are independent.
type Orchestrator struct {
	searcher Searcher
	enricher Enricher // nil when no AI backend is configured
	scoring  types.ScoringConfig
	dedupe   bool
	logger   *slog.Logger
	now      func() time.Time
}

// NewOrchestrator wires the pipeline stages. enricher may be nil, which
// turns the enrichment stage off and marks responses as not AI-powered.
func NewOrchestrator(searcher Searcher, enricher Enricher, cfg types.Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		searcher: searcher,
		enricher: enricher,
		scoring:  cfg.Scoring,
		dedupe:   cfg.Search.DedupeByURL,
		logger:   logger,
		now:      time.Now,
	}
}

// AIPowered reports whether an enrichment backend is configured.
func (o *Orchestrator) AIPowered() bool { return o.enricher != nil }

// Research runs the full pipeline for one query. Provider and enrichment
// failures are absorbed upstream; a run over failing providers yields a
// valid empty response. The only error returned for a well-formed request
// is a cancelled context.
func (o *Orchestrator) Research(ctx context.Context, req Request) (types.ResearchResponse, error) {
	query := strings.TrimSpace(req.Query)
	if len(query) < minQueryLen {
		return types.ResearchResponse{}, &ValidationError{
			Reason: fmt.Sprintf("query must be at least %d characters", minQueryLen),
		}
	}

	numResults := req.NumResults
	if numResults == 0 {
		numResults = defaultNumResults
	}
	if numResults < 1 || numResults > maxNumResults {
		return types.ResearchResponse{}, &ValidationError{
			Reason: fmt.Sprintf("num_results must be between 1 and %d", maxNumResults),
		}
	}

	minRelevance := req.MinRelevance
	if minRelevance <= 0 {
		minRelevance = o.scoring.MinRelevance
	}

	logger := o.logger.With("run_id", uuid.NewString(), "query", query)
	logger.Info("research started", "num_results", numResults, "min_relevance", minRelevance)

	raw := o.searcher.SearchAll(ctx, query, numResults*searchOverfetch, req.TypeFilter)

	if o.dedupe {
		var removed int
		raw, removed = DedupeByURL(raw)
		if removed > 0 {
			logger.Debug("duplicate URLs dropped", "removed", removed)
		}
	}

	ranked := Rank(raw, query, minRelevance, o.scoring)
	logger.Info("ranking complete", "raw", len(raw), "ranked", len(ranked))

	if o.enricher != nil && len(ranked) > 0 {
		k := enrichFactor * numResults
		if k > len(ranked) {
			k = len(ranked)
		}
		enriched := o.enricher.Enrich(ctx, ranked[:k], query)
		ranked = append(enriched, ranked[k:]...)
	}

	if len(ranked) > numResults {
		ranked = ranked[:numResults]
	}
	if ranked == nil {
		ranked = []types.ScoredResult{}
	}

	if err := ctx.Err(); err != nil {
		return types.ResearchResponse{}, err
	}

	logger.Info("research complete", "results", len(ranked))
	return types.ResearchResponse{
		Query:     query,
		Timestamp: o.now().Format(time.RFC3339),
		Summary:   BuildSummary(ranked, query),
		Results:   ranked,
		AIPowered: o.enricher != nil,
	}, nil
}
