// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// braveAPIBase is the Brave web search endpoint. Declared as a var so tests
// can substitute an httptest server.
var braveAPIBase = "https://api.search.brave.com/res/v1/web/search"

// Brave queries the Brave Search API. It fills the general-web slot when no
// Serper key is configured.
type Brave struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// NewBrave returns a Brave web search provider.
func NewBrave(client *http.Client, apiKey, userAgent string) *Brave {
	return &Brave{Client: client, APIKey: apiKey, UserAgent: userAgent}
}

// Name returns the provider identifier.
func (b *Brave) Name() string { return "web" }

// Type returns the source type.
func (b *Brave) Type() types.SourceType { return types.SourceWeb }

// Search queries Brave web search and maps the results.
func (b *Brave) Search(ctx context.Context, query string, limit int) ([]types.NormalizedResult, error) {
	if b.APIKey == "" {
		return nil, nil // source disabled
	}

	params := url.Values{
		"q":     {query},
		"count": {strconv.Itoa(limit)},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, braveAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.APIKey)
	req.Header.Set("User-Agent", b.UserAgent)

	resp, err := b.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Brave search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Brave search returned HTTP %d", resp.StatusCode)
	}

	var br braveResponse
	if err := json.NewDecoder(resp.Body).Decode(&br); err != nil {
		return nil, fmt.Errorf("parsing Brave response: %w", err)
	}

	items := br.Web.Results
	if len(items) > limit {
		items = items[:limit]
	}

	var results []types.NormalizedResult
	for _, item := range items {
		if item.Title == "" || item.URL == "" {
			continue
		}
		results = append(results, types.NormalizedResult{
			Title:      item.Title,
			URL:        item.URL,
			Snippet:    truncateSnippet(item.Description),
			SourceType: types.SourceWeb,
			SourceName: "Web",
			// Brave reports relative ages ("2 days ago"); kept verbatim, the
			// scorer treats unparseable dates as unknown.
			PublishedDate: item.Age,
		})
	}
	return results, nil
}

// Brave Search API JSON structures.
type braveResponse struct {
	Web struct {
		Results []braveItem `json:"results"`
	} `json:"web"`
}

type braveItem struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Age         string `json:"age"`
}
