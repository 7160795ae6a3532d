// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the research-assistant CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/research-assistant/internal/enrich"
	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/internal/provider"
	"github.com/pdiddy/research-assistant/internal/secrets"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the research-assistant CLI.
var rootCmd = &cobra.Command{
	Use:   "research-assistant",
	Short: "Multi-source research aggregation and ranking",
	Long: `research-assistant fans a research question out to academic indexes, news
APIs, blog platforms, archives, and web search, normalizes and ranks the
results, and optionally attaches AI-generated summaries to the top hits.

Run it as a one-shot CLI query (search) or as an HTTP API (serve).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./research-assistant.yaml or ~/.config/research-assistant/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("research-assistant")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "research-assistant"))
		}
	}

	viper.SetEnvPrefix("RESEARCH_ASSISTANT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// secretOr returns the first non-empty of: explicit value (from config or
// env), then the .secrets/ file.
func secretOr(explicit, key string) string {
	if explicit != "" {
		return explicit
	}
	return loadedSecrets[key]
}

// buildConfig merges defaults, the viper config file/env, and loaded secrets.
func buildConfig() types.Config {
	cfg := types.Defaults()

	if v := viper.GetDuration("search.timeout"); v > 0 {
		cfg.Search.Timeout = v
	}
	if v := viper.GetString("search.user_agent"); v != "" {
		cfg.Search.UserAgent = v
	}
	if v := viper.GetInt("search.min_per_source"); v > 0 {
		cfg.Search.MinPerSource = v
	}
	if viper.IsSet("search.dedupe_by_url") {
		cfg.Search.DedupeByURL = viper.GetBool("search.dedupe_by_url")
	}
	for key, flag := range map[string]*bool{
		"search.enable_semantic_scholar": &cfg.Search.EnableSemanticScholar,
		"search.enable_arxiv":            &cfg.Search.EnableArxiv,
		"search.enable_pubmed":           &cfg.Search.EnablePubMed,
		"search.enable_google_scholar":   &cfg.Search.EnableGoogleScholar,
		"search.enable_google_news":      &cfg.Search.EnableGoogleNews,
		"search.enable_newsapi":          &cfg.Search.EnableNewsAPI,
		"search.enable_substack":         &cfg.Search.EnableSubstack,
		"search.enable_medium":           &cfg.Search.EnableMedium,
		"search.enable_internet_archive": &cfg.Search.EnableInternetArchive,
		"search.enable_web":              &cfg.Search.EnableWeb,
	} {
		if viper.IsSet(key) {
			*flag = viper.GetBool(key)
		}
	}

	cfg.Search.SerperAPIKey = secretOr(viper.GetString("search.serper_api_key"), secrets.KeySerper)
	cfg.Search.BraveAPIKey = secretOr(viper.GetString("search.brave_api_key"), secrets.KeyBrave)
	cfg.Search.NewsAPIKey = secretOr(viper.GetString("search.newsapi_key"), secrets.KeyNewsAPI)
	cfg.Search.SemanticScholarAPIKey = secretOr(viper.GetString("search.semantic_scholar_api_key"), secrets.KeySemanticScholar)

	if v := viper.GetFloat64("scoring.title_weight"); v > 0 {
		cfg.Scoring.TitleWeight = v
	}
	if v := viper.GetFloat64("scoring.snippet_weight"); v > 0 {
		cfg.Scoring.SnippetWeight = v
	}
	if v := viper.GetFloat64("scoring.min_relevance"); v > 0 {
		cfg.Scoring.MinRelevance = v
	}

	if v := viper.GetString("enrich.model"); v != "" {
		cfg.Enrich.Model = v
	}
	if v := viper.GetDuration("enrich.inter_call_delay"); v > 0 {
		cfg.Enrich.InterCallDelay = v
	}
	if v := viper.GetDuration("enrich.timeout"); v > 0 {
		cfg.Enrich.Timeout = v
	}
	cfg.Enrich.APIKey = secretOr(viper.GetString("enrich.api_key"), secrets.KeyGemini)

	if v := viper.GetInt("server.port"); v > 0 {
		cfg.Server.Port = v
	}

	return cfg
}

// buildOrchestrator assembles the pipeline from the merged configuration.
func buildOrchestrator(ctx context.Context, cfg types.Config, logger *slog.Logger) *pipeline.Orchestrator {
	client := &http.Client{Timeout: cfg.Search.Timeout}
	registry := provider.NewRegistry(cfg.Search, client)
	coordinator := pipeline.NewCoordinator(registry, cfg.Search, logger)

	var enricher pipeline.Enricher
	if cfg.Enrich.APIKey != "" {
		gen, err := enrich.NewGoogleAIGenerator(ctx, cfg.Enrich)
		if err != nil {
			logger.Warn("AI enrichment disabled", "error", err)
		} else {
			enricher = enrich.New(gen, cfg.Enrich, logger)
		}
	}

	logger.Info("pipeline assembled",
		"providers", registry.Len(),
		"ai_enabled", enricher != nil)
	return pipeline.NewOrchestrator(coordinator, enricher, cfg, logger)
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
