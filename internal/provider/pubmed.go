// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// PubMed endpoint vars for httptest substitution.
var (
	pubmedSearchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	pubmedSummaryBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esummary.fcgi"
)

// PubMed queries the NCBI eutils API in two steps: esearch for PMIDs, then
// esummary for the article metadata.
type PubMed struct {
	Client    *http.Client
	UserAgent string
}

// NewPubMed returns a PubMed provider.
func NewPubMed(client *http.Client, userAgent string) *PubMed {
	return &PubMed{Client: client, UserAgent: userAgent}
}

// Name returns the provider identifier.
func (p *PubMed) Name() string { return "pubmed" }

// Type returns the source type.
func (p *PubMed) Type() types.SourceType { return types.SourceAcademic }

// Search resolves PMIDs for the query and fetches their summaries.
func (p *PubMed) Search(ctx context.Context, query string, limit int) ([]types.NormalizedResult, error) {
	ids, err := p.searchIDs(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	return p.fetchSummaries(ctx, ids)
}

func (p *PubMed) searchIDs(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"term":    {query},
		"retmax":  {strconv.Itoa(limit)},
		"retmode": {"json"},
	}

	var sr pubmedSearchResponse
	if err := p.getJSON(ctx, pubmedSearchBase+"?"+params.Encode(), &sr); err != nil {
		return nil, fmt.Errorf("PubMed esearch: %w", err)
	}
	return sr.ESearchResult.IDList, nil
}

func (p *PubMed) fetchSummaries(ctx context.Context, ids []string) ([]types.NormalizedResult, error) {
	params := url.Values{
		"db":      {"pubmed"},
		"id":      {strings.Join(ids, ",")},
		"retmode": {"json"},
	}

	var sr pubmedSummaryResponse
	if err := p.getJSON(ctx, pubmedSummaryBase+"?"+params.Encode(), &sr); err != nil {
		return nil, fmt.Errorf("PubMed esummary: %w", err)
	}

	// Iterate the esearch ID order, not the map, so output is deterministic.
	var results []types.NormalizedResult
	for _, pmid := range ids {
		raw, ok := sr.Result[pmid]
		if !ok {
			continue
		}
		var article pubmedArticle
		if err := json.Unmarshal(raw, &article); err != nil {
			continue
		}
		if article.Title == "" {
			continue
		}

		names := make([]string, 0, len(article.Authors))
		for _, a := range article.Authors {
			names = append(names, a.Name)
		}

		results = append(results, types.NormalizedResult{
			Title:         article.Title,
			URL:           fmt.Sprintf("https://pubmed.ncbi.nlm.nih.gov/%s/", pmid),
			Snippet:       truncateSnippet(article.Source),
			SourceType:    types.SourceAcademic,
			SourceName:    "PubMed",
			PublishedDate: article.PubDate,
			Authors:       joinAuthors(names),
		})
	}
	return results, nil
}

func (p *PubMed) getJSON(ctx context.Context, rawURL string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", p.UserAgent)

	resp, err := p.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// NCBI eutils JSON structures.
type pubmedSearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// The esummary result object maps each PMID to its article plus an "uids"
// bookkeeping array, so the articles are decoded lazily per PMID.
type pubmedSummaryResponse struct {
	Result map[string]json.RawMessage `json:"result"`
}

type pubmedArticle struct {
	Title   string         `json:"title"`
	Source  string         `json:"source"`
	PubDate string         `json:"pubdate"`
	Authors []pubmedAuthor `json:"authors"`
}

type pubmedAuthor struct {
	Name string `json:"name"`
}
