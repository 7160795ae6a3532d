// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the research pipeline over HTTP.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Researcher is the orchestrator as the handlers see it.
type Researcher interface {
	Research(ctx context.Context, req pipeline.Request) (types.ResearchResponse, error)
	AIPowered() bool
}

// Server wraps the echo instance and its dependencies.
type Server struct {
	echo      *echo.Echo
	orch      Researcher
	searchCfg types.SearchConfig
	logger    *slog.Logger
}

// New assembles the HTTP server: CORS, panic recovery, request IDs, and a
// request logger feeding slog.
func New(orch Researcher, searchCfg types.SearchConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogError:     true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				logger.InfoContext(ctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				logger.ErrorContext(ctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"request_id", v.RequestID,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	s := &Server{echo: e, orch: orch, searchCfg: searchCfg, logger: logger}

	e.GET("/", s.handleHome)
	e.GET("/health", s.handleHealth)
	e.GET("/api/sources", s.handleSources)
	e.POST("/api/search", s.handleSearch)
	e.POST("/api/search/academic", s.handleSearchType(types.SourceAcademic))
	e.POST("/api/search/news", s.handleSearchType(types.SourceNews))

	return s
}

// Start listens on the given port and blocks until the server stops.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("http server listening", "addr", addr)
	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the echo instance for tests.
func (s *Server) Handler() http.Handler { return s.echo }
