// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider contains the clients for the external content sources and
// the registry that assembles them into a fixed-priority provider table.
// Each client maps one upstream API onto the normalized result shape; the
// pipeline treats them as interchangeable adapters.
package provider

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// Provider searches a single external content source. Implementations
// translate the query into a provider-specific request and map the response
// into normalized results, dropping upstream records that lack a title or
// URL. A provider whose credential is absent returns (nil, nil): the source
// is disabled, not failing.
type Provider interface {
	Name() string
	Type() types.SourceType
	Search(ctx context.Context, query string, limit int) ([]types.NormalizedResult, error)
}

// snippetMax bounds free-text fields at normalization time. Longer text is
// cut and marked with a trailing ellipsis; nothing downstream re-truncates.
const snippetMax = 300

// maxAuthors is how many names appear before "et al." takes over.
const maxAuthors = 3

// truncateSnippet collapses whitespace runs and cuts the text at snippetMax.
func truncateSnippet(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= snippetMax {
		return s
	}
	return s[:snippetMax] + "..."
}

// joinAuthors renders up to maxAuthors names comma-joined, appending
// "et al." when the list is longer.
func joinAuthors(names []string) string {
	var kept []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		kept = append(kept, n)
	}
	if len(kept) == 0 {
		return ""
	}
	if len(kept) <= maxAuthors {
		return strings.Join(kept, ", ")
	}
	return strings.Join(kept[:maxAuthors], ", ") + " et al."
}

// datePrefix keeps the ISO date portion of upstream timestamps
// (e.g. "2024-03-01T09:30:00Z" becomes "2024-03-01").
func datePrefix(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

// Registry is the ordered provider table. Registration order is the fixed
// priority order; the coordinator concatenates provider output in this order
// so ranking tie-breaks are reproducible for a fixed provider set.
type Registry struct {
	providers []Provider
}

// NewRegistry builds the provider table from the search configuration.
// Providers are registered academic first, then news, blogs, archive, and
// general web. Providers that require a missing credential are skipped.
func NewRegistry(cfg types.SearchConfig, client *http.Client) *Registry {
	r := &Registry{}

	if cfg.EnableSemanticScholar {
		r.Register(NewSemanticScholar(client, cfg.SemanticScholarAPIKey, cfg.UserAgent))
	}
	if cfg.EnableArxiv {
		r.Register(NewArxiv(client, cfg.UserAgent))
	}
	if cfg.EnablePubMed {
		r.Register(NewPubMed(client, cfg.UserAgent))
	}
	if cfg.EnableGoogleScholar && cfg.SerperAPIKey != "" {
		r.Register(NewSerperScholar(client, cfg.SerperAPIKey))
	}
	if cfg.EnableGoogleNews && cfg.SerperAPIKey != "" {
		r.Register(NewSerperNews(client, cfg.SerperAPIKey))
	}
	if cfg.EnableNewsAPI && cfg.NewsAPIKey != "" {
		r.Register(NewNewsAPI(client, cfg.NewsAPIKey, cfg.UserAgent))
	}
	if cfg.EnableSubstack && cfg.SerperAPIKey != "" {
		r.Register(NewSerperSubstack(client, cfg.SerperAPIKey))
	}
	if cfg.EnableMedium && cfg.SerperAPIKey != "" {
		r.Register(NewSerperMedium(client, cfg.SerperAPIKey))
	}
	if cfg.EnableInternetArchive {
		r.Register(NewInternetArchive(client, cfg.UserAgent))
	}
	if cfg.EnableWeb {
		switch {
		case cfg.SerperAPIKey != "":
			r.Register(NewSerperWeb(client, cfg.SerperAPIKey))
		case cfg.BraveAPIKey != "":
			r.Register(NewBrave(client, cfg.BraveAPIKey, cfg.UserAgent))
		}
	}

	return r
}

// Register appends a provider at the lowest remaining priority.
func (r *Registry) Register(p Provider) {
	r.providers = append(r.providers, p)
}

// Providers returns the table in priority order. Callers must not mutate it.
func (r *Registry) Providers() []Provider {
	return r.providers
}

// ByType returns the providers of the given source type, preserving priority
// order. An empty filter returns the whole table.
func (r *Registry) ByType(t types.SourceType) []Provider {
	if t == "" {
		return r.providers
	}
	var out []Provider
	for _, p := range r.providers {
		if p.Type() == t {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of registered providers.
func (r *Registry) Len() int { return len(r.providers) }

// Info describes one known provider for status listings.
type Info struct {
	Name   string           `json:"name"`
	Type   types.SourceType `json:"type"`
	Free   bool             `json:"free"`
	Active bool             `json:"active"`
}

// Catalog lists every known provider with its availability under cfg,
// including the ones that stay disabled for want of a credential.
func Catalog(cfg types.SearchConfig) []Info {
	serper := cfg.SerperAPIKey != ""
	return []Info{
		{Name: "semantic_scholar", Type: types.SourceAcademic, Free: true, Active: cfg.EnableSemanticScholar},
		{Name: "arxiv", Type: types.SourceAcademic, Free: true, Active: cfg.EnableArxiv},
		{Name: "pubmed", Type: types.SourceAcademic, Free: true, Active: cfg.EnablePubMed},
		{Name: "google_scholar", Type: types.SourceAcademic, Free: false, Active: cfg.EnableGoogleScholar && serper},
		{Name: "google_news", Type: types.SourceNews, Free: false, Active: cfg.EnableGoogleNews && serper},
		{Name: "newsapi", Type: types.SourceNews, Free: false, Active: cfg.EnableNewsAPI && cfg.NewsAPIKey != ""},
		{Name: "substack", Type: types.SourceBlog, Free: false, Active: cfg.EnableSubstack && serper},
		{Name: "medium", Type: types.SourceBlog, Free: false, Active: cfg.EnableMedium && serper},
		{Name: "internet_archive", Type: types.SourceArchive, Free: true, Active: cfg.EnableInternetArchive},
		{Name: "web", Type: types.SourceWeb, Free: false, Active: cfg.EnableWeb && (serper || cfg.BraveAPIKey != "")},
	}
}
