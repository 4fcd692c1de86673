// Command server runs the reference authoritative game server.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"geminus.dev/internal/auth"
	"geminus.dev/internal/config"
	"geminus.dev/internal/handlers"
	"geminus.dev/internal/telemetry"
)

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, "geminus-server")
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	cat, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		config.Exitf("Error: load catalog: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Println("GEMINUS_JWT_SECRET not set, using an ephemeral signing key")
	}
	tokens, err := auth.NewSessions(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handlers.SetupRoutes(cfg, cat, tokens),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown: %v", err)
		}
	}()

	log.Printf("Serving %d zones on %s", cat.Len(), cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
