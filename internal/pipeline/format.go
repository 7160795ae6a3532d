// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// FormatTable writes the response as a human-readable table to w.
func FormatTable(resp types.ResearchResponse, w io.Writer) {
	if len(resp.Results) == 0 {
		fmt.Fprintln(w, resp.Summary.Overview)
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-10s  %-6s  %s\n",
		"Rank", "Title", "Source", "Date", "Score", "Type")
	fmt.Fprintln(w, strings.Repeat("-", 115))

	for i, r := range resp.Results {
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-10s  %-6.2f  %s\n",
			i+1,
			clip(r.Title, 60),
			clip(r.SourceName, 20),
			clip(r.PublishedDate, 10),
			r.RelevanceScore,
			r.SourceType)
		if r.AISummary != "" {
			fmt.Fprintf(w, "      summary: %s\n", clip(r.AISummary, 100))
		}
	}

	fmt.Fprintf(w, "\n%s\n", resp.Summary.Overview)
	fmt.Fprintf(w, "avg relevance %.3f, dates %s\n", resp.Summary.AvgRelevance, resp.Summary.DateRange)
}

// FormatJSON writes the response as indented JSON to w.
func FormatJSON(resp types.ResearchResponse, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
