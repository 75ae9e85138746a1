package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ascension/internal/api"
	"github.com/vovakirdan/ascension/internal/leads"
	"github.com/vovakirdan/ascension/internal/storage"
)

var (
	flagAPIAddr string
	flagAPICORS string
)

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing the mazes, the tool catalog, the results
analyzer, stored sessions and e-mail capture.

Endpoints:
  GET  /healthz
  GET  /v1/levels
  GET  /v1/levels/{level}/maze
  GET  /v1/tools
  POST /v1/analyze
  GET  /v1/results?limit=N
  GET  /v1/results/profiles
  GET  /v1/results/{sessionID}
  POST /v1/leads

Examples:
  ascension api
  ascension api --addr :9090
  ascension api --cors https://example.org`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAPIAddr, "addr", "", "Listen address (default: config api.addr)")
	apiCmd.Flags().StringVar(&flagAPICORS, "cors", "", "Allowed CORS origin (default: config api.cors_origin)")
}

func runAPI(_ *cobra.Command, _ []string) {
	cfg := mustLoadConfig()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "ascension-api",
	})

	addr := cfg.API.Addr
	if flagAPIAddr != "" {
		addr = flagAPIAddr
	}
	corsOrigin := cfg.API.CORSOrigin
	if flagAPICORS != "" {
		corsOrigin = flagAPICORS
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database; results endpoints disabled", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var submitter leads.Submitter
	if store != nil || cfg.Leads.Endpoint != "" {
		submitter = leads.New(cfg.Leads.Endpoint, cfg.Leads.Timeout, store, logger)
	}

	handler := api.NewHandler(logger, store, submitter, corsOrigin)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-sigCh:
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("http server failed", "error", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
