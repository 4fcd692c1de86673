// Package reconciler decides once per session whether the server or the
// local store is authoritative and routes player actions accordingly.
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"geminus.dev/internal/models"
	"geminus.dev/internal/remote"
	"geminus.dev/internal/services"
	"geminus.dev/internal/store"
)

// ErrNotInitialized is returned for actions issued before Init settles a mode
var ErrNotInitialized = errors.New("reconciler not initialized")

// Mode is the session's operating mode
type Mode string

const (
	Unknown             Mode = "unknown"
	ServerAuthoritative Mode = "server_authoritative"
	LocalOnly           Mode = "local_only"
)

// GameClient is the subset of the remote client the reconciler drives
type GameClient interface {
	Init(ctx context.Context) (models.StateDelta, error)
	State(ctx context.Context) (models.StateDelta, error)
	Teleport(ctx context.Context, zoneID int) (models.ActionResponse, error)
	Move(ctx context.Context, deltaQ, deltaR int) (models.ActionResponse, error)
	CurrentZone(ctx context.Context) (models.Zone, error)
}

// Notifier raises user-visible toasts
type Notifier interface {
	Push(message string, kind models.ToastKind) models.ToastMessage
}

// Reconciler routes actions to the server or applies them to the store
type Reconciler struct {
	initMu sync.Mutex // serializes Init
	mu     sync.RWMutex
	mode   Mode
	store  *store.GameStateStore
	client GameClient
	rules  *services.GameService
	toasts Notifier
}

// New creates a reconciler in Unknown mode
func New(st *store.GameStateStore, client GameClient, rules *services.GameService, toasts Notifier) *Reconciler {
	return &Reconciler{
		mode:   Unknown,
		store:  st,
		client: client,
		rules:  rules,
		toasts: toasts,
	}
}

// Mode returns the current operating mode
func (r *Reconciler) Mode() Mode {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mode
}

func (r *Reconciler) setMode(m Mode) {
	r.mu.Lock()
	r.mode = m
	r.mu.Unlock()
}

// Init contacts the server once and settles the mode. A reachable server makes
// its state authoritative; an unavailable one switches to local play. A server
// that rejects the session leaves the mode Unknown so Init can be retried.
// Once settled, further calls return the settled mode.
func (r *Reconciler) Init(ctx context.Context) (Mode, error) {
	r.initMu.Lock()
	defer r.initMu.Unlock()
	if m := r.Mode(); m != Unknown {
		return m, nil
	}

	state, err := r.client.Init(ctx)
	switch {
	case err == nil:
		r.setMode(ServerAuthoritative)
		r.adopt(state)
		log.Printf("reconciler: server authoritative (player %s)", r.store.Player().ID)
		r.toasts.Push("Connected to server", models.ToastSuccess)
	case errors.Is(err, remote.ErrUnavailable):
		r.setMode(LocalOnly)
		r.repairLocal()
		log.Printf("reconciler: local only: %v", err)
		r.toasts.Push("Server unavailable, playing offline", models.ToastWarning)
	default:
		log.Printf("reconciler: init rejected: %v", err)
		r.toasts.Push(userMessage(err), models.ToastError)
		return Unknown, fmt.Errorf("init: %w", err)
	}
	return r.Mode(), nil
}

// Teleport moves the player to another zone's teleporter
func (r *Reconciler) Teleport(ctx context.Context, zoneID int) (models.GameState, error) {
	switch r.Mode() {
	case ServerAuthoritative:
		res, err := r.client.Teleport(ctx, zoneID)
		if err != nil {
			return r.fail("teleport", err)
		}
		if res.GameState != nil {
			r.adopt(*res.GameState)
		}
		if res.Message != "" {
			r.toasts.Push(res.Message, models.ToastSuccess)
		}
		return r.store.Game(), nil
	case LocalOnly:
		game, err := r.rules.Teleport(r.store.Player(), r.store.Game(), zoneID)
		if err != nil {
			return r.fail("teleport", err)
		}
		next := r.store.UpdateGame(models.FullGamePatch(game))
		if zone, err := r.rules.CurrentZone(next); err == nil {
			r.toasts.Push("Teleported to "+zone.Name, models.ToastSuccess)
		}
		return next, nil
	default:
		return r.store.Game(), ErrNotInitialized
	}
}

// Move steps the player one hex inside the current zone
func (r *Reconciler) Move(ctx context.Context, deltaQ, deltaR int) (models.GameState, error) {
	switch r.Mode() {
	case ServerAuthoritative:
		res, err := r.client.Move(ctx, deltaQ, deltaR)
		if err != nil {
			return r.fail("move", err)
		}
		if res.GameState != nil {
			r.adopt(*res.GameState)
		}
		return r.store.Game(), nil
	case LocalOnly:
		game, err := r.rules.Move(r.store.Game(), deltaQ, deltaR)
		if err != nil {
			return r.fail("move", err)
		}
		return r.store.UpdateGame(models.FullGamePatch(game)), nil
	default:
		return r.store.Game(), ErrNotInitialized
	}
}

// Refresh re-adopts the server's state. It is a no-op in local play.
func (r *Reconciler) Refresh(ctx context.Context) error {
	switch r.Mode() {
	case ServerAuthoritative:
		state, err := r.client.State(ctx)
		if err != nil {
			_, err = r.fail("refresh", err)
			return err
		}
		r.adopt(state)
		return nil
	case LocalOnly:
		return nil
	default:
		return ErrNotInitialized
	}
}

// CurrentZone returns the zone the player stands in
func (r *Reconciler) CurrentZone(ctx context.Context) (models.Zone, error) {
	switch r.Mode() {
	case ServerAuthoritative:
		zone, err := r.client.CurrentZone(ctx)
		if err != nil {
			return models.Zone{}, fmt.Errorf("current zone: %w", err)
		}
		return zone, nil
	case LocalOnly:
		return r.rules.CurrentZone(r.store.Game())
	default:
		return models.Zone{}, ErrNotInitialized
	}
}

// adopt merges the server's reply into the store. Fields the server left out
// keep their local values.
func (r *Reconciler) adopt(delta models.StateDelta) {
	if delta.Player != nil {
		r.store.UpdatePlayer(*delta.Player)
	}
	if delta.Game != nil {
		r.store.UpdateGame(*delta.Game)
	}
}

// repairLocal resets a restored game state that points outside the local catalog
func (r *Reconciler) repairLocal() {
	if _, err := r.rules.CurrentZone(r.store.Game()); err != nil {
		log.Printf("reconciler: saved zone invalid, resetting game state: %v", err)
		r.store.UpdateGame(models.FullGamePatch(r.rules.NewGame("").Game))
	}
}

// fail surfaces an action error as a toast and leaves state untouched
func (r *Reconciler) fail(op string, err error) (models.GameState, error) {
	kind := models.ToastWarning
	if errors.Is(err, remote.ErrUnavailable) {
		kind = models.ToastError
	}
	r.toasts.Push(userMessage(err), kind)
	return r.store.Game(), fmt.Errorf("%s: %w", op, err)
}

func userMessage(err error) string {
	var remoteErr *remote.RemoteError
	switch {
	case errors.As(err, &remoteErr):
		return remoteErr.Message
	case errors.Is(err, remote.ErrUnavailable):
		return "Server unreachable, action not applied"
	default:
		return err.Error()
	}
}
