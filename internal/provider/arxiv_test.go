// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/research-assistant/pkg/types"
)

const arxivFeedFixture = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query: search_query=all:diffusion</title>
  <entry>
    <id>http://arxiv.org/abs/2301.00001v1</id>
    <title>Scaling Diffusion Models</title>
    <link href="http://arxiv.org/abs/2301.00001v1" rel="alternate" type="text/html"/>
    <summary>We study the scaling behavior of diffusion models.</summary>
    <published>2023-01-02T18:00:00Z</published>
    <author><name>A. Researcher</name></author>
    <author><name>B. Colleague</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2301.00002v1</id>
    <title>Sampling Tricks</title>
    <link href="http://arxiv.org/abs/2301.00002v1" rel="alternate" type="text/html"/>
    <summary>Faster samplers for score-based models.</summary>
    <published>2023-01-05T18:00:00Z</published>
    <author><name>C. Author</name></author>
  </entry>
</feed>`

func TestArxivSearch(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("search_query")
		w.Header().Set("Content-Type", "application/atom+xml")
		w.Write([]byte(arxivFeedFixture))
	}))
	defer srv.Close()

	oldBase := arxivAPIBase
	arxivAPIBase = srv.URL
	defer func() { arxivAPIBase = oldBase }()

	p := NewArxiv(srv.Client(), "test-agent")
	results, err := p.Search(context.Background(), "diffusion", 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery != "all:diffusion" {
		t.Errorf("search_query = %q, want all: prefix", gotQuery)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	r := results[0]
	if r.Title != "Scaling Diffusion Models" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.URL != "http://arxiv.org/abs/2301.00001v1" {
		t.Errorf("URL = %q", r.URL)
	}
	if r.SourceType != types.SourceAcademic || r.SourceName != "arXiv" {
		t.Errorf("source = %s/%s, want academic/arXiv", r.SourceType, r.SourceName)
	}
	if r.PublishedDate != "2023-01-02" {
		t.Errorf("PublishedDate = %q, want 2023-01-02", r.PublishedDate)
	}
	if r.Authors != "A. Researcher, B. Colleague" {
		t.Errorf("Authors = %q", r.Authors)
	}
}

func TestArxivParseFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	oldBase := arxivAPIBase
	arxivAPIBase = srv.URL
	defer func() { arxivAPIBase = oldBase }()

	p := NewArxiv(srv.Client(), "test-agent")
	if _, err := p.Search(context.Background(), "diffusion", 10); err == nil {
		t.Error("Search() error = nil, want feed fetch failure")
	}
}
