// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the research HTTP API",
	Long: `Serve exposes the research pipeline over HTTP: POST /api/search runs a
full multi-source research query, /api/sources lists provider availability,
and /health reports readiness.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		logger := newLogger()
		cfg := buildConfig()

		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}

		orch := buildOrchestrator(ctx, cfg, logger)
		srv := server.New(orch, cfg.Search, logger)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start(cfg.Server.Port)
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case sig := <-stop:
			logger.Info("shutting down", "signal", sig.String())
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		}
	},
}

func init() {
	serveCmd.Flags().Int("port", 0, "listen port (default from config, 5000)")

	rootCmd.AddCommand(serveCmd)
}
