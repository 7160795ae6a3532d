// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/internal/provider"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// searchRequest is the POST /api/search body.
type searchRequest struct {
	Query        string  `json:"query"`
	NumResults   int     `json:"num_results"`
	MinRelevance float64 `json:"min_relevance"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSearch(c echo.Context) error {
	return s.runSearch(c, "")
}

// handleSearchType returns a handler restricted to one source type.
func (s *Server) handleSearchType(t types.SourceType) echo.HandlerFunc {
	return func(c echo.Context) error {
		return s.runSearch(c, t)
	}
}

func (s *Server) runSearch(c echo.Context, filter types.SourceType) error {
	var body searchRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	resp, err := s.orch.Research(c.Request().Context(), pipeline.Request{
		Query:        body.Query,
		NumResults:   body.NumResults,
		MinRelevance: body.MinRelevance,
		TypeFilter:   filter,
	})
	if err != nil {
		var verr *pipeline.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: verr.Reason})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "search failed"})
	}

	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleSources(c echo.Context) error {
	catalog := provider.Catalog(s.searchCfg)

	active := 0
	for _, info := range catalog {
		if info.Active {
			active++
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"sources":      catalog,
		"total_active": active,
	})
}

func (s *Server) handleHealth(c echo.Context) error {
	active := 0
	for _, info := range provider.Catalog(s.searchCfg) {
		if info.Active {
			active++
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status":            "healthy",
		"timestamp":         time.Now().Format(time.RFC3339),
		"ai_configured":     s.orch.AIPowered(),
		"sources_available": active,
	})
}

func (s *Server) handleHome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "research-assistant API",
		"features": []string{
			"Multi-source search (academic, news, blogs, archives, web)",
			"AI-powered summaries and relevance explanations",
			"Deterministic relevance scoring and ranking",
		},
		"endpoints": map[string]string{
			"POST /api/search":          "research across all sources",
			"POST /api/search/academic": "academic sources only",
			"POST /api/search/news":     "news sources only",
			"GET /api/sources":          "list providers and availability",
			"GET /health":               "health check",
		},
	})
}
