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

// semanticAPIBase is the Semantic Scholar paper search endpoint. Declared
// as a var so tests can substitute an httptest server.
var semanticAPIBase = "https://api.semanticscholar.org/graph/v1/paper/search"

const semanticFields = "title,authors,year,abstract,url,publicationDate,venue"

// SemanticScholar queries the Semantic Scholar Graph API. The API works
// without a key at a lower rate limit, so the provider is always registered;
// the key only raises the quota.
type SemanticScholar struct {
	Client    *http.Client
	APIKey    string
	UserAgent string
}

// NewSemanticScholar returns a Semantic Scholar provider.
func NewSemanticScholar(client *http.Client, apiKey, userAgent string) *SemanticScholar {
	return &SemanticScholar{Client: client, APIKey: apiKey, UserAgent: userAgent}
}

// Name returns the provider identifier.
func (s *SemanticScholar) Name() string { return "semantic_scholar" }

// Type returns the source type.
func (s *SemanticScholar) Type() types.SourceType { return types.SourceAcademic }

// Search queries the paper search endpoint and maps the papers.
func (s *SemanticScholar) Search(ctx context.Context, query string, limit int) ([]types.NormalizedResult, error) {
	params := url.Values{
		"query":  {query},
		"limit":  {strconv.Itoa(limit)},
		"fields": {semanticFields},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, semanticAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.UserAgent)
	if s.APIKey != "" {
		req.Header.Set("x-api-key", s.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, s.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Semantic Scholar request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Semantic Scholar returned HTTP %d", resp.StatusCode)
	}

	var sr semanticResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var results []types.NormalizedResult
	for _, paper := range sr.Data {
		if paper.Title == "" || paper.URL == "" {
			continue
		}

		names := make([]string, 0, len(paper.Authors))
		for _, a := range paper.Authors {
			names = append(names, a.Name)
		}

		published := paper.PublicationDate
		if published == "" && paper.Year > 0 {
			published = strconv.Itoa(paper.Year)
		}

		venue := paper.Venue
		if venue == "" {
			venue = "Semantic Scholar"
		}

		results = append(results, types.NormalizedResult{
			Title:         paper.Title,
			URL:           paper.URL,
			Snippet:       truncateSnippet(paper.Abstract),
			SourceType:    types.SourceAcademic,
			SourceName:    venue,
			PublishedDate: published,
			Authors:       joinAuthors(names),
		})
	}
	return results, nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total int             `json:"total"`
	Data  []semanticPaper `json:"data"`
}

type semanticPaper struct {
	Title           string           `json:"title"`
	Abstract        string           `json:"abstract"`
	URL             string           `json:"url"`
	Year            int              `json:"year"`
	PublicationDate string           `json:"publicationDate"`
	Venue           string           `json:"venue"`
	Authors         []semanticAuthor `json:"authors"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}
