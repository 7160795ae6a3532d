// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// serperAPIBase is the Serper.dev API root. Declared as a var so tests can
// substitute an httptest server.
var serperAPIBase = "https://google.serper.dev"

// SerperClient queries one Serper.dev endpoint. A single adapter type covers
// Google Scholar, Google News, general web search, and the site-scoped blog
// searches (Substack, Medium); the registry registers one instance per
// variant.
type SerperClient struct {
	Client *http.Client
	APIKey string

	name       string
	sourceType types.SourceType
	sourceName string
	path       string // "/scholar", "/news", or "/search"
	siteFilter string // appended to the query, e.g. "site:substack.com"
}

// NewSerperScholar returns the Google Scholar variant.
func NewSerperScholar(client *http.Client, apiKey string) *SerperClient {
	return &SerperClient{Client: client, APIKey: apiKey,
		name: "google_scholar", sourceType: types.SourceAcademic, sourceName: "Google Scholar", path: "/scholar"}
}

// NewSerperNews returns the Google News variant.
func NewSerperNews(client *http.Client, apiKey string) *SerperClient {
	return &SerperClient{Client: client, APIKey: apiKey,
		name: "google_news", sourceType: types.SourceNews, sourceName: "News", path: "/news"}
}

// NewSerperSubstack returns the Substack-scoped web search variant.
func NewSerperSubstack(client *http.Client, apiKey string) *SerperClient {
	return &SerperClient{Client: client, APIKey: apiKey,
		name: "substack", sourceType: types.SourceBlog, sourceName: "Substack", path: "/search", siteFilter: "site:substack.com"}
}

// NewSerperMedium returns the Medium-scoped web search variant.
func NewSerperMedium(client *http.Client, apiKey string) *SerperClient {
	return &SerperClient{Client: client, APIKey: apiKey,
		name: "medium", sourceType: types.SourceBlog, sourceName: "Medium", path: "/search", siteFilter: "site:medium.com"}
}

// NewSerperWeb returns the general web search variant.
func NewSerperWeb(client *http.Client, apiKey string) *SerperClient {
	return &SerperClient{Client: client, APIKey: apiKey,
		name: "web", sourceType: types.SourceWeb, sourceName: "Web", path: "/search"}
}

// Name returns the provider identifier.
func (s *SerperClient) Name() string { return s.name }

// Type returns the source type of this variant.
func (s *SerperClient) Type() types.SourceType { return s.sourceType }

// Search posts the query to the Serper endpoint and maps the response.
func (s *SerperClient) Search(ctx context.Context, query string, limit int) ([]types.NormalizedResult, error) {
	if s.APIKey == "" {
		return nil, nil // source disabled
	}

	q := query
	if s.siteFilter != "" {
		q = query + " " + s.siteFilter
	}

	body, err := json.Marshal(serperRequest{Q: q, Num: limit})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, serperAPIBase+s.path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Serper %s request: %w", s.path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Serper %s returned HTTP %d", s.path, resp.StatusCode)
	}

	var sr serperResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Serper response: %w", err)
	}

	items := sr.Organic
	if s.path == "/news" {
		items = sr.News
	}
	if len(items) > limit {
		items = items[:limit]
	}

	var results []types.NormalizedResult
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}
		r := types.NormalizedResult{
			Title:         item.Title,
			URL:           item.Link,
			Snippet:       truncateSnippet(item.Snippet),
			SourceType:    s.sourceType,
			SourceName:    s.sourceName,
			PublishedDate: item.Date,
		}
		switch s.name {
		case "google_scholar":
			// Scholar items carry a year and a publication/venue string
			// instead of a date and an author list.
			r.PublishedDate = item.Year.String()
			r.Authors = item.Publication
		case "google_news":
			if item.Source != "" {
				r.SourceName = item.Source
			}
		}
		results = append(results, r)
	}
	return results, nil
}

// serperRequest is the POST body shared by all Serper endpoints.
type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

// serperResponse covers the /scholar, /search, and /news payloads. The
// organic and news arrays never appear together.
type serperResponse struct {
	Organic []serperItem `json:"organic"`
	News    []serperItem `json:"news"`
}

type serperItem struct {
	Title       string      `json:"title"`
	Link        string      `json:"link"`
	Snippet     string      `json:"snippet"`
	Date        string      `json:"date"`
	Year        json.Number `json:"year"`
	Publication string      `json:"publication"`
	Source      string      `json:"source"`
}
