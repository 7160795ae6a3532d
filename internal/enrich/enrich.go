// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich attaches AI-generated summaries and relevance explanations
// to top-ranked results. Enrichment is strictly additive: it never changes
// scores or ordering, and a failed item keeps empty enrichment fields while
// the batch continues.
package enrich

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Output caps, applied after parsing the model response.
const (
	summaryMax   = 500
	relevanceMax = 300
)

// Section markers the model is instructed to emit.
const (
	summaryMarker   = "SUMMARY:"
	relevanceMarker = "RELEVANCE:"
)

// TextGenerator abstracts the AI text-generation backend so tests can supply
// a mock.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Coordinator runs the enrichment stage over a ranked prefix. Calls are
// deliberately sequential with a fixed pause in between: the upstream quota
// is per key, and rate-limit compliance matters more than latency here.
type Coordinator struct {
	gen    TextGenerator
	cfg    types.EnrichConfig
	logger *slog.Logger
}

// New returns an enrichment coordinator over the given backend.
func New(gen TextGenerator, cfg types.EnrichConfig, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.InterCallDelay <= 0 {
		cfg.InterCallDelay = 500 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Coordinator{gen: gen, cfg: cfg, logger: logger}
}

// Enrich generates a summary and a relevance explanation for each result,
// returning a new slice in the same order. An individual failure leaves that
// item's enrichment fields empty and moves on; the inter-call delay applies
// after every call regardless of outcome. A cancelled context stops the
// remaining calls and returns the items processed so far plus the untouched
// tail.
func (c *Coordinator) Enrich(ctx context.Context, results []types.ScoredResult, query string) []types.ScoredResult {
	out := make([]types.ScoredResult, len(results))
	copy(out, results)

	for i := range out {
		if err := ctx.Err(); err != nil {
			c.logger.Warn("enrichment cancelled", "processed", i, "total", len(out))
			break
		}

		summary, relevance, err := c.enrichOne(ctx, out[i], query)
		if err != nil {
			c.logger.Warn("enrichment failed for item",
				"url", out[i].URL, "error", err)
		} else {
			out[i].AISummary = summary
			out[i].RelevanceExplanation = relevance
		}

		if i < len(out)-1 {
			if !sleepCtx(ctx, c.cfg.InterCallDelay) {
				break
			}
		}
	}
	return out
}

func (c *Coordinator) enrichOne(ctx context.Context, result types.ScoredResult, query string) (string, string, error) {
	prompt, err := renderPrompt(result, query)
	if err != nil {
		return "", "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	text, err := c.gen.GenerateText(callCtx, prompt)
	if err != nil {
		return "", "", err
	}

	summary, relevance := parseSections(text)
	return clamp(summary, summaryMax), clamp(relevance, relevanceMax), nil
}

// parseSections splits the model response at the fixed markers. When the
// markers are missing it falls back to treating the first three lines as the
// summary and the rest as the relevance explanation.
func parseSections(text string) (summary, relevance string) {
	text = strings.TrimSpace(text)

	if strings.Contains(text, summaryMarker) && strings.Contains(text, relevanceMarker) {
		parts := strings.SplitN(text, relevanceMarker, 2)
		summary = strings.TrimSpace(strings.Replace(parts[0], summaryMarker, "", 1))
		relevance = strings.TrimSpace(parts[1])
		return summary, relevance
	}

	lines := strings.Split(text, "\n")
	if len(lines) <= 3 {
		return strings.TrimSpace(strings.Join(lines, " ")), ""
	}
	summary = strings.TrimSpace(strings.Join(lines[:3], " "))
	relevance = strings.TrimSpace(strings.Join(lines[3:], " "))
	return summary, relevance
}

func clamp(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// sleepCtx waits for d or until the context is cancelled; it reports whether
// the full delay elapsed.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
