// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one research query from the command line",
	Long: `Search runs the full pipeline once: fan-out across the configured
providers, relevance scoring and ranking, optional AI enrichment, and a
summary. Results print as a table by default, as JSON with --json, and can
be saved to a YAML report with --out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		numResults, _ := cmd.Flags().GetInt("num-results")
		minRelevance, _ := cmd.Flags().GetFloat64("min-relevance")
		sourceType, _ := cmd.Flags().GetString("type")
		asJSON, _ := cmd.Flags().GetBool("json")
		outPath, _ := cmd.Flags().GetString("out")

		logger := newLogger()
		cfg := buildConfig()
		orch := buildOrchestrator(cmd.Context(), cfg, logger)

		req := pipeline.Request{
			Query:        query,
			NumResults:   numResults,
			MinRelevance: minRelevance,
			TypeFilter:   types.SourceType(sourceType),
		}

		resp, err := orch.Research(cmd.Context(), req)
		if err != nil {
			return err
		}

		if asJSON {
			if err := pipeline.FormatJSON(resp, os.Stdout); err != nil {
				return err
			}
		} else {
			pipeline.FormatTable(resp, os.Stdout)
		}

		if outPath != "" {
			if err := pipeline.WriteReport(outPath, req, resp); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, "Report saved to", outPath)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().String("query", "", "free-text research question (required)")
	searchCmd.Flags().Int("num-results", 0, "number of results to return (default 15, max 50)")
	searchCmd.Flags().Float64("min-relevance", 0, "minimum relevance score (default 0.15)")
	searchCmd.Flags().String("type", "", "restrict to one source type (academic, news, blog, archive, web)")
	searchCmd.Flags().Bool("json", false, "output the response as JSON")
	searchCmd.Flags().String("out", "", "save the run to a YAML report file")
	searchCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(searchCmd)
}
