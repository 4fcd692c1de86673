// Command client runs the client core: it owns the game state, reconciles it
// with the server and serves the presentation layer.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"geminus.dev/internal/config"
	"geminus.dev/internal/reconciler"
	"geminus.dev/internal/remote"
	"geminus.dev/internal/render"
	"geminus.dev/internal/services"
	"geminus.dev/internal/storage"
	boltstore "geminus.dev/internal/storage/bbolt"
	"geminus.dev/internal/storage/sqlite"
	"geminus.dev/internal/store"
	"geminus.dev/internal/telemetry"
	"geminus.dev/internal/toast"
)

func main() {
	cfg, err := config.LoadClient()
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, "geminus-client")
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

	blobs, err := openBlobs(cfg)
	if err != nil {
		config.Exitf("Error: %v", err)
	}
	defer blobs.Close()

	st := store.New(blobs)
	restore(ctx, st)

	toasts := toast.NewScheduler()
	go toasts.Run(ctx, 100*time.Millisecond)

	rules := services.NewGameService(services.NewZoneService(cat))
	rec := reconciler.New(st, remote.New(cfg.APIBase, cfg.HTTPTimeout), rules, toasts)
	bridge := render.NewBridge(st, rec, toasts)
	defer bridge.Close()

	mode, err := rec.Init(ctx)
	if err != nil {
		log.Printf("init: %v (actions disabled until the server accepts a session)", err)
	} else {
		log.Printf("mode: %s", mode)
	}

	if cfg.Autosave > 0 {
		go autosave(ctx, st, cfg.Autosave)
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           bridge.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("bridge shutdown: %v", err)
		}
	}()

	log.Printf("Presentation bridge on %s", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("bridge: %v", err)
	}

	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := st.SaveSnapshot(saveCtx); err != nil {
		log.Printf("final save: %v", err)
	}
}

func openBlobs(cfg config.ClientConfig) (storage.BlobStore, error) {
	switch cfg.StorageDriver {
	case config.DriverBolt:
		return boltstore.Open(cfg.StoragePath)
	default:
		return sqlite.Open(cfg.StoragePath)
	}
}

// restore loads the saved snapshot. A missing or corrupt save starts from defaults.
func restore(ctx context.Context, st *store.GameStateStore) {
	err := st.LoadSnapshot(ctx)
	var corrupt *store.CorruptStateError
	switch {
	case err == nil:
		log.Println("restored saved game")
	case errors.Is(err, store.ErrNoSnapshot):
		log.Println("no saved game, starting fresh")
	case errors.As(err, &corrupt):
		log.Printf("saved game unreadable, starting fresh: %v", err)
	default:
		log.Printf("load saved game: %v", err)
	}
}

func autosave(ctx context.Context, st *store.GameStateStore, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := st.SaveSnapshot(ctx); err != nil {
				log.Printf("autosave: %v", err)
			}
		}
	}
}
