// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// newsAPIBase is the NewsAPI everything endpoint. Declared as a var so tests
// can substitute an httptest server.
var newsAPIBase = "https://newsapi.org/v2/everything"

// NewsAPI queries newsapi.org across its aggregated news outlets.
type NewsAPI struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// NewNewsAPI returns a NewsAPI provider.
func NewNewsAPI(client *http.Client, apiKey, userAgent string) *NewsAPI {
	return &NewsAPI{Client: client, APIKey: apiKey, UserAgent: userAgent}
}

// Name returns the provider identifier.
func (n *NewsAPI) Name() string { return "newsapi" }

// Type returns the source type.
func (n *NewsAPI) Type() types.SourceType { return types.SourceNews }

// Search queries the everything endpoint sorted by relevancy.
func (n *NewsAPI) Search(ctx context.Context, query string, limit int) ([]types.NormalizedResult, error) {
	if n.APIKey == "" {
		return nil, nil // source disabled
	}

	params := url.Values{
		"q":        {query},
		"pageSize": {strconv.Itoa(limit)},
		"sortBy":   {"relevancy"},
		"language": {"en"},
		"apiKey":   {n.APIKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, newsAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", n.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, n.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("NewsAPI request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("NewsAPI returned HTTP %d", resp.StatusCode)
	}

	var nr newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&nr); err != nil {
		return nil, fmt.Errorf("parsing NewsAPI response: %w", err)
	}

	articles := nr.Articles
	if len(articles) > limit {
		articles = articles[:limit]
	}

	var results []types.NormalizedResult
	for _, a := range articles {
		if a.Title == "" || a.URL == "" {
			continue
		}

		snippet := a.Description
		if snippet == "" {
			snippet = a.Content
		}

		sourceName := a.Source.Name
		if sourceName == "" {
			sourceName = "News"
		}

		results = append(results, types.NormalizedResult{
			Title:         a.Title,
			URL:           a.URL,
			Snippet:       truncateSnippet(snippet),
			SourceType:    types.SourceNews,
			SourceName:    sourceName,
			PublishedDate: datePrefix(a.PublishedAt),
			Authors:       a.Author,
		})
	}
	return results, nil
}

// NewsAPI JSON structures.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}
