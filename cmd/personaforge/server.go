package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"personaforge/internal/api"
	"personaforge/internal/config"
	"personaforge/internal/gemini"
	"personaforge/internal/pipeline"
	"personaforge/internal/scrape"
	"personaforge/internal/speech"
)

const shutdownTimeout = 10 * time.Second

func runServer() error {
	fmt.Fprintf(os.Stderr, "personaforge version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	geminiClient, err := gemini.NewClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		return fmt.Errorf("initializing Gemini client: %w", err)
	}

	scraper := scrape.NewClient(cfg.Scrape.APIKey)
	if cfg.Scrape.BaseURL != "" {
		scraper = scrape.NewClientWithBaseURL(cfg.Scrape.APIKey, cfg.Scrape.BaseURL)
	}
	synthesizer := speech.NewClient(cfg.Speech.APIKey, cfg.Speech.VoiceID, cfg.Speech.Model)

	runner := pipeline.NewRunner(scraper, geminiClient, synthesizer)
	handler := api.NewHandler(api.Deps{
		Runner:     runner,
		Token:      cfg.APIToken,
		Production: cfg.Production(),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	// The pipeline itself has no per-stage timeouts; the server's write
	// timeout is the outer backstop for a hung upstream call.
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      2 * time.Minute,
		IdleTimeout:       time.Minute,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("personaforge listening", "addr", addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
