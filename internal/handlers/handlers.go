package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"geminus.dev/internal/auth"
	"geminus.dev/internal/catalog"
	"geminus.dev/internal/config"
	"geminus.dev/internal/middleware"
	"geminus.dev/internal/models"
	"geminus.dev/internal/services"
)

// SetupRoutes configures all routes and returns the router
func SetupRoutes(cfg config.ServerConfig, cat *catalog.Catalog, tokens *auth.Sessions) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)
	r.Use(middleware.Tracing("geminus-server"))
	r.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateBurst))

	// Initialize services
	zoneService := services.NewZoneService(cat)
	gameService := services.NewGameService(zoneService)
	sessionService := services.NewSessionService(gameService)

	// Initialize handlers
	gameHandler := NewGameHandler(gameService, sessionService, tokens)
	zoneHandler := NewZoneHandler(zoneService, sessionService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/game/init", gameHandler.InitGame)

		r.Group(func(r chi.Router) {
			r.Use(tokens.RequireSession)
			r.Get("/game/state", gameHandler.GetState)
			r.Post("/game/teleport", gameHandler.Teleport)
			r.Post("/game/move", gameHandler.Move)
			r.Get("/game/zones", zoneHandler.ListZones)
			r.Get("/game/current-zone", zoneHandler.CurrentZone)
		})

		// Health check
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON: %v", err)
	}
}

// respondError writes an error JSON response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, models.ErrorResponse{Error: message})
}
