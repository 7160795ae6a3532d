// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package enrich

import (
	"bytes"
	"text/template"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// enrichPromptTmpl asks the model for a two-section response the parser can
// split on the fixed markers.
var enrichPromptTmpl = template.Must(template.New("enrich").Parse(`Analyze this search result in relation to the query: "{{.Query}}"

ARTICLE DETAILS:
Title: {{.Title}}
Source: {{.Source}}
Snippet: {{.Snippet}}
Type: {{.Type}}

TASK:
1. Write a concise 2-3 sentence summary of what this article is about
2. Explain in 1-2 sentences why this article is relevant (or not) to the query "{{.Query}}"

FORMAT YOUR RESPONSE AS:
SUMMARY: [your summary here]
RELEVANCE: [your relevance explanation here]

Be specific, analytical, and honest about relevance.`))

type promptData struct {
	Query   string
	Title   string
	Source  string
	Snippet string
	Type    types.SourceType
}

// renderPrompt executes the enrichment template for one result.
func renderPrompt(result types.ScoredResult, query string) (string, error) {
	source := result.SourceName
	if source == "" {
		source = "Unknown"
	}

	var buf bytes.Buffer
	err := enrichPromptTmpl.Execute(&buf, promptData{
		Query:   query,
		Title:   result.Title,
		Source:  source,
		Snippet: result.Snippet,
		Type:    result.SourceType,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
