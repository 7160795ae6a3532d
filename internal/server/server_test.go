// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// stubResearcher returns a canned response and records the request it saw.
type stubResearcher struct {
	resp    types.ResearchResponse
	err     error
	gotReq  pipeline.Request
	powered bool
}

func (s *stubResearcher) Research(ctx context.Context, req pipeline.Request) (types.ResearchResponse, error) {
	s.gotReq = req
	if s.err != nil {
		return types.ResearchResponse{}, s.err
	}
	return s.resp, nil
}

func (s *stubResearcher) AIPowered() bool { return s.powered }

func newTestServer(stub *stubResearcher) *Server {
	return New(stub, types.Defaults().Search, nil)
}

func doJSON(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestSearchEndpoint(t *testing.T) {
	stub := &stubResearcher{
		powered: true,
		resp: types.ResearchResponse{
			Query:     "quantum computing",
			Timestamp: "2026-06-01T12:00:00Z",
			AIPowered: true,
			Summary: types.SummaryStats{
				Overview:            "Found 1 highly relevant sources...",
				TotalSources:        1,
				SourceBreakdown:     map[string]int{"arXiv": 1},
				SourceTypeBreakdown: map[types.SourceType]int{types.SourceAcademic: 1},
				AvgRelevance:        0.78,
				DateRange:           "Various dates",
			},
			Results: []types.ScoredResult{{
				NormalizedResult: types.NormalizedResult{
					Title: "Quantum study", URL: "https://example.org/q",
					SourceType: types.SourceAcademic, SourceName: "arXiv",
				},
				RelevanceScore: 0.78,
			}},
		},
	}
	srv := newTestServer(stub)

	rec := doJSON(t, srv, http.MethodPost, "/api/search",
		`{"query": "quantum computing", "num_results": 5, "min_relevance": 0.2}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}
	if stub.gotReq.Query != "quantum computing" || stub.gotReq.NumResults != 5 {
		t.Errorf("forwarded request = %+v", stub.gotReq)
	}
	if stub.gotReq.TypeFilter != "" {
		t.Errorf("TypeFilter = %q, want empty for the general endpoint", stub.gotReq.TypeFilter)
	}

	var body struct {
		Query     string `json:"query"`
		AIPowered bool   `json:"ai_powered"`
		Summary   struct {
			TotalSources int `json:"total_sources"`
		} `json:"summary"`
		Results []struct {
			Title          string  `json:"title"`
			RelevanceScore float64 `json:"relevance_score"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Query != "quantum computing" || !body.AIPowered {
		t.Errorf("response header fields = %+v", body)
	}
	if body.Summary.TotalSources != 1 || len(body.Results) != 1 {
		t.Errorf("response payload = %+v", body)
	}
	if body.Results[0].RelevanceScore != 0.78 {
		t.Errorf("relevance_score = %v", body.Results[0].RelevanceScore)
	}
}

func TestSearchValidationError(t *testing.T) {
	stub := &stubResearcher{err: &pipeline.ValidationError{Reason: "query must be at least 3 characters"}}
	srv := newTestServer(stub)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", `{"query": "ab"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Error != "query must be at least 3 characters" {
		t.Errorf("error = %q", body.Error)
	}
}

func TestSearchInternalError(t *testing.T) {
	stub := &stubResearcher{err: context.DeadlineExceeded}
	srv := newTestServer(stub)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", `{"query": "quantum"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "search failed") {
		t.Errorf("body = %s, want generic error message", rec.Body.String())
	}
}

func TestSearchMalformedBody(t *testing.T) {
	srv := newTestServer(&stubResearcher{})
	rec := doJSON(t, srv, http.MethodPost, "/api/search", `{"query": `)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for malformed JSON", rec.Code)
	}
}

func TestTypedSearchEndpoints(t *testing.T) {
	tests := []struct {
		path string
		want types.SourceType
	}{
		{"/api/search/academic", types.SourceAcademic},
		{"/api/search/news", types.SourceNews},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			stub := &stubResearcher{resp: types.ResearchResponse{Results: []types.ScoredResult{}}}
			srv := newTestServer(stub)

			rec := doJSON(t, srv, http.MethodPost, tt.path, `{"query": "quantum"}`)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			if stub.gotReq.TypeFilter != tt.want {
				t.Errorf("TypeFilter = %q, want %q", stub.gotReq.TypeFilter, tt.want)
			}
		})
	}
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(&stubResearcher{powered: true})

	rec := doJSON(t, srv, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Status           string `json:"status"`
		AIConfigured     bool   `json:"ai_configured"`
		SourcesAvailable int    `json:"sources_available"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.Status != "healthy" || !body.AIConfigured {
		t.Errorf("health = %+v", body)
	}
	// Free sources are active under the default config.
	if body.SourcesAvailable != 4 {
		t.Errorf("sources_available = %d, want 4", body.SourcesAvailable)
	}
}

func TestSourcesEndpoint(t *testing.T) {
	srv := newTestServer(&stubResearcher{})

	rec := doJSON(t, srv, http.MethodGet, "/api/sources", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Sources []struct {
			Name   string `json:"name"`
			Active bool   `json:"active"`
		} `json:"sources"`
		TotalActive int `json:"total_active"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(body.Sources) != 10 {
		t.Errorf("sources listed = %d, want the full catalog of 10", len(body.Sources))
	}
	if body.TotalActive != 4 {
		t.Errorf("total_active = %d, want 4 free sources", body.TotalActive)
	}
}

func TestHomeEndpoint(t *testing.T) {
	srv := newTestServer(&stubResearcher{})
	rec := doJSON(t, srv, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/api/search") {
		t.Error("home response missing endpoint listing")
	}
}
