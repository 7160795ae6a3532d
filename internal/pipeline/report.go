// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// ReportFile is the on-disk representation of one research run. A run can be
// saved to a file and reloaded later without re-querying the providers.
type ReportFile struct {
	Query        string               `yaml:"query"`
	Timestamp    string               `yaml:"timestamp"`
	NumResults   int                  `yaml:"num_results"`
	MinRelevance float64              `yaml:"min_relevance"`
	AIPowered    bool                 `yaml:"ai_powered"`
	Summary      types.SummaryStats   `yaml:"summary"`
	Results      []types.ScoredResult `yaml:"results"`
}

// WriteReport saves the request parameters and response to a YAML file.
func WriteReport(path string, req Request, resp types.ResearchResponse) error {
	rf := ReportFile{
		Query:        resp.Query,
		Timestamp:    resp.Timestamp,
		NumResults:   req.NumResults,
		MinRelevance: req.MinRelevance,
		AIPowered:    resp.AIPowered,
		Summary:      resp.Summary,
		Results:      resp.Results,
	}

	data, err := yaml.Marshal(rf)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}
	return nil
}

// ReadReport loads a saved research run from a YAML file.
func ReadReport(path string) (*ReportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report %s: %w", path, err)
	}
	var rf ReportFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &rf, nil
}
