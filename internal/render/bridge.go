// Package render serves the presentation layer: a render-state read, a
// state-changed event stream and the player action endpoints.
package render

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"geminus.dev/internal/middleware"
	"geminus.dev/internal/models"
	"geminus.dev/internal/reconciler"
	"geminus.dev/internal/store"
	"geminus.dev/internal/toast"
)

// Actions is the reconciler surface the bridge routes player input to
type Actions interface {
	Mode() reconciler.Mode
	Teleport(ctx context.Context, zoneID int) (models.GameState, error)
	Move(ctx context.Context, deltaQ, deltaR int) (models.GameState, error)
	Refresh(ctx context.Context) error
	CurrentZone(ctx context.Context) (models.Zone, error)
}

// State is the render-state read
type State struct {
	Snapshot models.Snapshot `json:"snapshot"`
	Mode     reconciler.Mode `json:"mode"`
	Toasts   []toast.Toast   `json:"toasts"`
}

// StateChanged is the payload of a state_changed event
type StateChanged struct {
	Snapshot models.Snapshot `json:"snapshot"`
	Mode     reconciler.Mode `json:"mode"`
}

// Bridge connects the store, reconciler and toasts to HTTP
type Bridge struct {
	store   *store.GameStateStore
	actions Actions
	toasts  *toast.Scheduler
	hub     *Hub
	cancel  func()
}

// NewBridge wires store and toast notifications into the event hub
func NewBridge(st *store.GameStateStore, actions Actions, toasts *toast.Scheduler) *Bridge {
	b := &Bridge{
		store:   st,
		actions: actions,
		toasts:  toasts,
		hub:     NewHub(),
	}
	b.cancel = st.Subscribe(func(snap models.Snapshot) {
		b.hub.Broadcast(TypeStateChanged, StateChanged{Snapshot: snap, Mode: b.actions.Mode()})
	})
	toasts.OnChange(func(t toast.Toast) {
		b.hub.Broadcast(TypeToast, t)
	})
	return b
}

// Hub exposes the event hub
func (b *Bridge) Hub() *Hub {
	return b.hub
}

// Close stops listening to the store and disconnects event clients
func (b *Bridge) Close() {
	b.cancel()
	b.hub.Close()
}

// Routes returns the bridge router
func (b *Bridge) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery)
	r.Use(middleware.Logger)

	r.Route("/render", func(r chi.Router) {
		r.Get("/state", b.getState)
		r.Get("/zone", b.getZone)
		r.Get("/events", b.hub.ServeWS)
	})

	r.Route("/actions", func(r chi.Router) {
		r.Post("/teleport", b.teleport)
		r.Post("/move", b.move)
		r.Post("/keys", b.keys)
		r.Post("/ui", b.ui)
		r.Post("/save", b.save)
		r.Post("/refresh", b.refresh)
		r.Post("/toasts/{id}/dismiss", b.dismissToast)
	})

	return r
}

func (b *Bridge) getState(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, State{
		Snapshot: b.store.Snapshot(),
		Mode:     b.actions.Mode(),
		Toasts:   b.toasts.Active(),
	})
}

func (b *Bridge) getZone(w http.ResponseWriter, r *http.Request) {
	zone, err := b.actions.CurrentZone(r.Context())
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ZoneResponse{Zone: zone})
}

func (b *Bridge) teleport(w http.ResponseWriter, r *http.Request) {
	var req models.TeleportRequest
	if !decode(w, r, &req) {
		return
	}
	game, err := b.actions.Teleport(r.Context(), req.ZoneID)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, game)
}

func (b *Bridge) move(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if !decode(w, r, &req) {
		return
	}
	game, err := b.actions.Move(r.Context(), req.DeltaQ, req.DeltaR)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, game)
}

func (b *Bridge) keys(w http.ResponseWriter, r *http.Request) {
	var patch models.KeyStatePatch
	if !decode(w, r, &patch) {
		return
	}
	respondJSON(w, http.StatusOK, b.store.UpdateKeyState(patch))
}

func (b *Bridge) ui(w http.ResponseWriter, r *http.Request) {
	var patch models.UIPatch
	if !decode(w, r, &patch) {
		return
	}
	respondJSON(w, http.StatusOK, b.store.UpdateUI(patch))
}

func (b *Bridge) save(w http.ResponseWriter, r *http.Request) {
	if err := b.store.SaveSnapshot(r.Context()); err != nil {
		log.Printf("render: save: %v", err)
		b.toasts.Error("Could not save game")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	b.toasts.Success("Game saved")
	respondJSON(w, http.StatusOK, map[string]string{"status": "saved"})
}

func (b *Bridge) refresh(w http.ResponseWriter, r *http.Request) {
	if err := b.actions.Refresh(r.Context()); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b.store.Snapshot())
}

func (b *Bridge) dismissToast(w http.ResponseWriter, r *http.Request) {
	if !b.toasts.Dismiss(chi.URLParam(r, "id")) {
		respondError(w, http.StatusNotFound, "toast not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondActionError maps reconciler errors onto HTTP statuses
func respondActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, reconciler.ErrNotInitialized):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		// Rule violations and server refusals reach the player as toasts too
		respondError(w, http.StatusConflict, err.Error())
	}
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
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
