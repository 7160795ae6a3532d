// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmcdole/gofeed"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// arxivAPIBase is the arXiv Atom search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// Arxiv queries the arXiv API. The Atom feed is parsed with gofeed rather
// than hand-rolled XML structures.
type Arxiv struct {
	parser *gofeed.Parser
}

// NewArxiv returns an arXiv provider backed by the given HTTP client.
func NewArxiv(client *http.Client, userAgent string) *Arxiv {
	p := gofeed.NewParser()
	p.Client = client
	p.UserAgent = userAgent
	return &Arxiv{parser: p}
}

// Name returns the provider identifier.
func (a *Arxiv) Name() string { return "arxiv" }

// Type returns the source type.
func (a *Arxiv) Type() types.SourceType { return types.SourceAcademic }

// Search queries arXiv sorted by relevance and maps the feed entries.
func (a *Arxiv) Search(ctx context.Context, query string, limit int) ([]types.NormalizedResult, error) {
	params := url.Values{
		"search_query": {"all:" + query},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(limit)},
		"sortBy":       {"relevance"},
	}

	feed, err := a.parser.ParseURLWithContext(arxivAPIBase+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("arXiv query: %w", err)
	}

	var results []types.NormalizedResult
	for _, item := range feed.Items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		published := ""
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.Format("2006-01-02")
		} else if item.Published != "" {
			published = datePrefix(item.Published)
		}

		names := make([]string, 0, len(item.Authors))
		for _, person := range item.Authors {
			if person != nil {
				names = append(names, person.Name)
			}
		}

		results = append(results, types.NormalizedResult{
			Title:         item.Title,
			URL:           item.Link,
			Snippet:       truncateSnippet(item.Description),
			SourceType:    types.SourceAcademic,
			SourceName:    "arXiv",
			PublishedDate: published,
			Authors:       joinAuthors(names),
		})
	}
	return results, nil
}
