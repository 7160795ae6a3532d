// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the research-assistant pipeline.
package types

// SourceType classifies a provider by the kind of content it returns.
type SourceType string

const (
	SourceAcademic SourceType = "academic"
	SourceNews     SourceType = "news"
	SourceBlog     SourceType = "blog"
	SourceArchive  SourceType = "archive"
	SourceWeb      SourceType = "web"
	SourceOther    SourceType = "other"
)

// NormalizedResult is the provider-agnostic record every provider client
// produces. Title and URL are required; clients drop upstream records that
// lack either. All other fields are empty strings when the upstream source
// does not supply them.
type NormalizedResult struct {
	// Title is the document title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// URL is the canonical link to the document and the dedup identity key.
	URL string `json:"url" yaml:"url"`

	// Snippet is a short excerpt or abstract, truncated to 300 characters
	// with a trailing ellipsis at normalization time.
	Snippet string `json:"snippet" yaml:"snippet"`

	// SourceType classifies the provider (academic, news, blog, archive, web).
	SourceType SourceType `json:"source_type" yaml:"source_type"`

	// SourceName is the human-readable provider or venue name (e.g. "arXiv",
	// "Reuters"). May be empty.
	SourceName string `json:"source_name" yaml:"source_name"`

	// PublishedDate is the publication date as reported upstream, ISO-prefixed
	// when known (e.g. "2024-03-01"). Empty when unknown.
	PublishedDate string `json:"published_date" yaml:"published_date"`

	// Authors is a comma-joined author list, possibly ending in "et al.".
	Authors string `json:"authors" yaml:"authors"`
}

// ScoredResult is a NormalizedResult with a relevance score and optional
// AI enrichment text. Enrichment fields are empty strings unless the
// enrichment stage ran and succeeded for this item.
type ScoredResult struct {
	NormalizedResult `yaml:",inline"`

	// RelevanceScore is in [0.0, 1.0], recomputed by the scorer for every run.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// AISummary is a short AI-generated summary of the document.
	AISummary string `json:"ai_summary" yaml:"ai_summary,omitempty"`

	// RelevanceExplanation is a short AI-generated note on why the document
	// is (or is not) relevant to the query.
	RelevanceExplanation string `json:"relevance_explanation" yaml:"relevance_explanation,omitempty"`

	// ContentPreview is the first 200 characters of the snippet.
	ContentPreview string `json:"content_preview" yaml:"content_preview,omitempty"`
}

// SourceCount pairs a source name with its result count.
type SourceCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// SummaryStats holds aggregate statistics over a final result set.
type SummaryStats struct {
	// Overview is a one-line human-readable description of the result set.
	Overview string `json:"overview" yaml:"overview"`

	// TotalSources is the number of results in the set.
	TotalSources int `json:"total_sources" yaml:"total_sources"`

	// SourceBreakdown counts results per source name.
	SourceBreakdown map[string]int `json:"source_breakdown" yaml:"source_breakdown"`

	// SourceTypeBreakdown counts results per source type.
	SourceTypeBreakdown map[SourceType]int `json:"source_type_breakdown" yaml:"source_type_breakdown"`

	// AvgRelevance is the mean relevance score, 0 for an empty set.
	AvgRelevance float64 `json:"avg_relevance" yaml:"avg_relevance"`

	// DateRange is "min to max" over the non-empty published dates
	// (lexicographic, valid because dates are ISO-prefixed), or
	// "Various dates" when no result carries a date.
	DateRange string `json:"date_range" yaml:"date_range"`

	// TopSources lists the five most frequent source names.
	TopSources []SourceCount `json:"top_sources" yaml:"top_sources,omitempty"`
}

// ResearchResponse is the externally visible result of one pipeline run.
// Results are ordered best-first; the order is the final rank order.
type ResearchResponse struct {
	Query     string         `json:"query" yaml:"query"`
	Timestamp string         `json:"timestamp" yaml:"timestamp"`
	Summary   SummaryStats   `json:"summary" yaml:"summary"`
	Results   []ScoredResult `json:"results" yaml:"results"`
	AIPowered bool           `json:"ai_powered" yaml:"ai_powered"`
}
