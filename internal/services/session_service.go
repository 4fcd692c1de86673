package services

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"geminus.dev/internal/models"
)

// ErrUnknownSession is returned for a session id the server never issued
var ErrUnknownSession = errors.New("unknown session")

// SessionService keeps the authoritative state of every player session
type SessionService struct {
	mu       sync.Mutex
	game     *GameService
	sessions map[string]models.ServerState
}

// NewSessionService creates an empty session table
func NewSessionService(gs *GameService) *SessionService {
	return &SessionService{
		game:     gs,
		sessions: make(map[string]models.ServerState),
	}
}

// Create starts a new session and returns its id and initial state
func (s *SessionService) Create() (string, models.ServerState) {
	id := uuid.NewString()
	state := s.game.NewGame(id)

	s.mu.Lock()
	s.sessions[id] = state
	s.mu.Unlock()
	return id, cloneState(state)
}

// Get returns the state of a session
func (s *SessionService) Get(id string) (models.ServerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[id]
	if !ok {
		return models.ServerState{}, ErrUnknownSession
	}
	return cloneState(state), nil
}

// Update runs fn against a session's state and stores the result if fn succeeds
func (s *SessionService) Update(id string, fn func(models.ServerState) (models.ServerState, error)) (models.ServerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.sessions[id]
	if !ok {
		return models.ServerState{}, ErrUnknownSession
	}
	next, err := fn(cloneState(state))
	if err != nil {
		return cloneState(state), err
	}
	s.sessions[id] = next
	return cloneState(next), nil
}

func cloneState(st models.ServerState) models.ServerState {
	return models.ServerState{Player: st.Player.Clone(), Game: st.Game.Clone()}
}
