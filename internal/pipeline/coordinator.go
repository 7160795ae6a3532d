// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline implements the research pipeline: concurrent provider
// fan-out, relevance scoring, ranking, summary statistics, and the
// orchestrator that sequences the stages for one query.
package pipeline

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/research-assistant/internal/provider"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Coordinator fans a query out to the registered providers concurrently and
// merges their output in registry priority order.
type Coordinator struct {
	registry *provider.Registry
	cfg      types.SearchConfig
	logger   *slog.Logger
}

// NewCoordinator returns a coordinator over the given provider table.
func NewCoordinator(registry *provider.Registry, cfg types.SearchConfig, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{registry: registry, cfg: cfg, logger: logger}
}

// SearchAll queries every registered provider (restricted to filter when
// non-empty) concurrently and concatenates whatever each returned. A failing
// or slow provider contributes nothing and never delays the others beyond
// its own timeout. Concatenation order is the registry's fixed priority
// order, not completion order, so downstream ranking is reproducible for a
// fixed provider set. No deduplication happens here.
func (c *Coordinator) SearchAll(ctx context.Context, query string, totalDesired int, filter types.SourceType) []types.NormalizedResult {
	providers := c.registry.ByType(filter)
	if len(providers) == 0 {
		return nil
	}

	quota := perProviderQuota(totalDesired, len(providers), c.cfg.MinPerSource)

	// One slot per provider keeps the merge order independent of
	// completion order.
	slots := make([][]types.NormalizedResult, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			results, err := p.Search(gctx, query, quota)
			if err != nil {
				c.logger.Warn("provider search failed",
					"provider", p.Name(), "error", err)
				return nil
			}
			slots[i] = results
			return nil
		})
	}
	g.Wait()

	var all []types.NormalizedResult
	for i, batch := range slots {
		kept := 0
		for _, r := range batch {
			// Providers drop malformed records already; this is the last
			// gate before scoring, which requires title and URL.
			if r.Title == "" || r.URL == "" {
				continue
			}
			all = append(all, r)
			kept++
		}
		if kept > 0 {
			c.logger.Debug("provider results collected",
				"provider", providers[i].Name(), "count", kept)
		}
	}

	c.logger.Info("search fan-out complete",
		"providers", len(providers), "quota", quota, "results", len(all))
	return all
}

// perProviderQuota splits totalDesired across providers with a floor so a
// large provider table never starves a source down to zero requests.
func perProviderQuota(totalDesired, providerCount, minPerSource int) int {
	if minPerSource < 1 {
		minPerSource = 1
	}
	quota := totalDesired / providerCount
	if quota < minPerSource {
		quota = minPerSource
	}
	return quota
}
