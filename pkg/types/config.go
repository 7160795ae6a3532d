// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by every provider client.
type HTTPConfig struct {
	// Timeout is the per-request timeout for provider calls (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with provider requests
	// (e.g. "research-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the search fan-out stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MinPerSource is the per-provider quota floor. The quota for each
	// provider is max(MinPerSource, totalDesired/providerCount) and is
	// always at least 1. Default 2.
	MinPerSource int `json:"min_per_source" yaml:"min_per_source"`

	// DedupeByURL drops results whose URL was already produced by a
	// higher-priority provider. Off by default: identical articles indexed
	// by two providers both reach the ranked list, matching upstream
	// behavior.
	DedupeByURL bool `json:"dedupe_by_url" yaml:"dedupe_by_url"`

	// Provider enable flags. A provider also needs its credential (when it
	// requires one) to be registered.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`
	EnableArxiv           bool `json:"enable_arxiv" yaml:"enable_arxiv"`
	EnablePubMed          bool `json:"enable_pubmed" yaml:"enable_pubmed"`
	EnableGoogleScholar   bool `json:"enable_google_scholar" yaml:"enable_google_scholar"`
	EnableGoogleNews      bool `json:"enable_google_news" yaml:"enable_google_news"`
	EnableNewsAPI         bool `json:"enable_newsapi" yaml:"enable_newsapi"`
	EnableSubstack        bool `json:"enable_substack" yaml:"enable_substack"`
	EnableMedium          bool `json:"enable_medium" yaml:"enable_medium"`
	EnableInternetArchive bool `json:"enable_internet_archive" yaml:"enable_internet_archive"`
	EnableWeb             bool `json:"enable_web" yaml:"enable_web"`

	// API credentials. Empty means the providers that need the key stay
	// disabled.
	SerperAPIKey          string `json:"serper_api_key,omitempty" yaml:"serper_api_key,omitempty"`
	BraveAPIKey           string `json:"brave_api_key,omitempty" yaml:"brave_api_key,omitempty"`
	NewsAPIKey            string `json:"newsapi_key,omitempty" yaml:"newsapi_key,omitempty"`
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// ScoringConfig holds the relevance scoring weights and the ranking threshold.
type ScoringConfig struct {
	// TitleWeight and SnippetWeight combine the lexical overlap signals.
	// Title dominates by default (0.6 vs 0.4).
	TitleWeight   float64 `json:"title_weight" yaml:"title_weight"`
	SnippetWeight float64 `json:"snippet_weight" yaml:"snippet_weight"`

	// MinRelevance is the default ranking threshold (default 0.15). Results
	// scoring below it are dropped.
	MinRelevance float64 `json:"min_relevance" yaml:"min_relevance"`
}

// EnrichConfig holds settings for the AI enrichment stage.
type EnrichConfig struct {
	// Model is the text-generation model identifier (default
	// "gemini-2.0-flash-exp").
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the AI API. Empty disables enrichment.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// InterCallDelay is the fixed pause between successive enrichment calls,
	// enforced regardless of success, to stay under upstream rate limits
	// (default 500ms).
	InterCallDelay time.Duration `json:"inter_call_delay" yaml:"inter_call_delay"`

	// Timeout is the per-item generation timeout (default 10s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// ServerConfig holds settings for the HTTP API server.
type ServerConfig struct {
	// Port is the listen port (default 5000).
	Port int `json:"port" yaml:"port"`
}

// Config groups all stage configurations.
type Config struct {
	Search  SearchConfig  `json:"search" yaml:"search"`
	Scoring ScoringConfig `json:"scoring" yaml:"scoring"`
	Enrich  EnrichConfig  `json:"enrich" yaml:"enrich"`
	Server  ServerConfig  `json:"server" yaml:"server"`
}

// Defaults returns a Config with every provider that needs no credential
// enabled and all tunables at their default values. Credentialed providers
// are enabled too; the registry skips them while their key is absent.
func Defaults() Config {
	return Config{
		Search: SearchConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   10 * time.Second,
				UserAgent: "research-assistant/0.1",
			},
			MinPerSource:          2,
			EnableSemanticScholar: true,
			EnableArxiv:           true,
			EnablePubMed:          true,
			EnableGoogleScholar:   true,
			EnableGoogleNews:      true,
			EnableNewsAPI:         true,
			EnableSubstack:        true,
			EnableMedium:          true,
			EnableInternetArchive: true,
			EnableWeb:             true,
		},
		Scoring: ScoringConfig{
			TitleWeight:   0.6,
			SnippetWeight: 0.4,
			MinRelevance:  0.15,
		},
		Enrich: EnrichConfig{
			Model:          "gemini-2.0-flash-exp",
			InterCallDelay: 500 * time.Millisecond,
			Timeout:        10 * time.Second,
		},
		Server: ServerConfig{
			Port: 5000,
		},
	}
}
