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

// archiveAPIBase is the Internet Archive advanced search endpoint. Declared
// as a var so tests can substitute an httptest server.
var archiveAPIBase = "https://archive.org/advancedsearch.php"

// InternetArchive queries the archive.org advanced search API.
type InternetArchive struct {
	Client    *http.Client
	UserAgent string
}

// NewInternetArchive returns an Internet Archive provider.
func NewInternetArchive(client *http.Client, userAgent string) *InternetArchive {
	return &InternetArchive{Client: client, UserAgent: userAgent}
}

// Name returns the provider identifier.
func (i *InternetArchive) Name() string { return "internet_archive" }

// Type returns the source type.
func (i *InternetArchive) Type() types.SourceType { return types.SourceArchive }

// Search queries the advanced search endpoint and maps the documents.
func (i *InternetArchive) Search(ctx context.Context, query string, limit int) ([]types.NormalizedResult, error) {
	params := url.Values{
		"q":      {query},
		"rows":   {strconv.Itoa(limit)},
		"page":   {"1"},
		"output": {"json"},
	}
	for _, field := range []string{"identifier", "title", "description", "date", "creator"} {
		params.Add("fl[]", field)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", i.UserAgent)

	resp, err := i.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Internet Archive request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Internet Archive returned HTTP %d", resp.StatusCode)
	}

	var ar archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&ar); err != nil {
		return nil, fmt.Errorf("parsing Internet Archive response: %w", err)
	}

	docs := ar.Response.Docs
	if len(docs) > limit {
		docs = docs[:limit]
	}

	var results []types.NormalizedResult
	for _, doc := range docs {
		title := doc.Title.First()
		if title == "" || doc.Identifier == "" {
			continue
		}
		results = append(results, types.NormalizedResult{
			Title:         title,
			URL:           "https://archive.org/details/" + doc.Identifier,
			Snippet:       truncateSnippet(doc.Description.First()),
			SourceType:    types.SourceArchive,
			SourceName:    "Internet Archive",
			PublishedDate: datePrefix(doc.Date),
			Authors:       doc.Creator.First(),
		})
	}
	return results, nil
}

// Internet Archive JSON structures. Several metadata fields come back as
// either a bare string or an array of strings depending on the item.
type archiveResponse struct {
	Response struct {
		Docs []archiveDoc `json:"docs"`
	} `json:"response"`
}

type archiveDoc struct {
	Identifier  string       `json:"identifier"`
	Title       stringOrList `json:"title"`
	Description stringOrList `json:"description"`
	Date        string       `json:"date"`
	Creator     stringOrList `json:"creator"`
}

// stringOrList accepts both "x" and ["x", "y"] JSON encodings.
type stringOrList []string

func (s *stringOrList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = stringOrList{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = stringOrList(list)
	return nil
}

// First returns the first value, or "" when empty.
func (s stringOrList) First() string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}
