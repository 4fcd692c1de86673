// Package store holds the client's single game state container. All mutation
// goes through the typed Update/Reset methods, each of which runs under one
// mutex; readers get value copies.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"geminus.dev/internal/models"
	"geminus.dev/internal/storage"
)

// SnapshotKey is the storage key the client state is saved under
const SnapshotKey = "geminus_gamestate"

// Listener is notified with a copy of the state after every change
type Listener func(models.Snapshot)

// GameStateStore owns the live client snapshot
type GameStateStore struct {
	mu        sync.Mutex
	state     models.Snapshot
	blobs     storage.BlobStore
	listeners map[int]Listener
	nextID    int
}

// New creates a store holding the default snapshot. blobs may be nil, in
// which case Save/Load report a PersistenceError.
func New(blobs storage.BlobStore) *GameStateStore {
	return &GameStateStore{
		state:     models.DefaultSnapshot(),
		blobs:     blobs,
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers a listener and returns a function that removes it
func (s *GameStateStore) Subscribe(fn Listener) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Snapshot returns an independent copy of the full state
func (s *GameStateStore) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Player returns a copy of the player sub-state
func (s *GameStateStore) Player() models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Player.Clone()
}

// UI returns the UI sub-state
func (s *GameStateStore) UI() models.UIState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.UI
}

// Game returns a copy of the game sub-state
func (s *GameStateStore) Game() models.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Game.Clone()
}

// KeyState returns the input sub-state
func (s *GameStateStore) KeyState() models.KeyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.KeyState
}

// UpdatePlayer shallow-merges patch into the player (last writer wins)
func (s *GameStateStore) UpdatePlayer(patch models.PlayerPatch) models.Player {
	var out models.Player
	s.mutate(func(st *models.Snapshot) {
		st.Player = patch.Apply(st.Player).Normalize()
		out = st.Player.Clone()
	})
	return out
}

// UpdateUI shallow-merges patch into the UI state
func (s *GameStateStore) UpdateUI(patch models.UIPatch) models.UIState {
	var out models.UIState
	s.mutate(func(st *models.Snapshot) {
		st.UI = patch.Apply(st.UI)
		out = st.UI
	})
	return out
}

// UpdateGame shallow-merges patch into the game state
func (s *GameStateStore) UpdateGame(patch models.GamePatch) models.GameState {
	var out models.GameState
	s.mutate(func(st *models.Snapshot) {
		st.Game = patch.Apply(st.Game)
		out = st.Game.Clone()
	})
	return out
}

// UpdateKeyState shallow-merges patch into the key state
func (s *GameStateStore) UpdateKeyState(patch models.KeyStatePatch) models.KeyState {
	var out models.KeyState
	s.mutate(func(st *models.Snapshot) {
		st.KeyState = patch.Apply(st.KeyState)
		out = st.KeyState
	})
	return out
}

// ResetPlayer replaces the player with a fresh default
func (s *GameStateStore) ResetPlayer() {
	s.mutate(func(st *models.Snapshot) {
		st.Player = models.DefaultPlayer()
	})
}

// ResetGame replaces the game state with a fresh default
func (s *GameStateStore) ResetGame() {
	s.mutate(func(st *models.Snapshot) {
		st.Game = models.DefaultGame()
	})
}

// SaveSnapshot writes the full state under SnapshotKey. On failure the
// in-memory state stays as it was.
func (s *GameStateStore) SaveSnapshot(ctx context.Context) error {
	snap := s.Snapshot()
	if s.blobs == nil {
		return &PersistenceError{Op: "save", Err: errors.New("no storage configured")}
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	if err := s.blobs.Put(ctx, SnapshotKey, payload); err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

// LoadSnapshot reads the saved state and merges it onto defaults, so fields
// the save predates keep their default value. A corrupt payload leaves the
// store untouched.
func (s *GameStateStore) LoadSnapshot(ctx context.Context) error {
	if s.blobs == nil {
		return &PersistenceError{Op: "load", Err: errors.New("no storage configured")}
	}

	payload, err := s.blobs.Get(ctx, SnapshotKey)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrNoSnapshot
	}
	if err != nil {
		return &PersistenceError{Op: "load", Err: err}
	}

	loaded, err := decodeSnapshot(payload)
	if err != nil {
		return &CorruptStateError{Err: err}
	}

	s.mutate(func(st *models.Snapshot) {
		*st = loaded
	})
	return nil
}

func decodeSnapshot(payload []byte) (models.Snapshot, error) {
	snap := models.DefaultSnapshot()
	if err := json.Unmarshal(payload, &snap); err != nil {
		return models.Snapshot{}, err
	}
	snap.Player = snap.Player.Normalize()
	if snap.Game.VisitedZones == nil {
		snap.Game.VisitedZones = []int{}
	}
	return snap, nil
}

// mutate applies fn under the lock, then notifies listeners outside it
func (s *GameStateStore) mutate(fn func(*models.Snapshot)) {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.Clone()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap.Clone())
	}
}
