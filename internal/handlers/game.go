package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"geminus.dev/internal/auth"
	"geminus.dev/internal/catalog"
	"geminus.dev/internal/models"
	"geminus.dev/internal/services"
)

// GameHandler handles session and action endpoints
type GameHandler struct {
	gameService    *services.GameService
	sessionService *services.SessionService
	tokens         *auth.Sessions
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gs *services.GameService, ss *services.SessionService, tokens *auth.Sessions) *GameHandler {
	return &GameHandler{
		gameService:    gs,
		sessionService: ss,
		tokens:         tokens,
	}
}

// InitGame handles POST /api/game/init
func (h *GameHandler) InitGame(w http.ResponseWriter, r *http.Request) {
	id, state := h.sessionService.Create()
	token, err := h.tokens.Issue(id)
	if err != nil {
		log.Printf("Error issuing token: %v", err)
		respondError(w, http.StatusInternalServerError, "could not start session")
		return
	}
	respondJSON(w, http.StatusOK, models.InitResponse{GameState: models.DeltaOf(state), Token: token})
}

// GetState handles GET /api/game/state
func (h *GameHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, err := h.sessionService.Get(auth.SessionID(r.Context()))
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.StateResponse{GameState: models.DeltaOf(state)})
}

// Teleport handles POST /api/game/teleport
func (h *GameHandler) Teleport(w http.ResponseWriter, r *http.Request) {
	var req models.TeleportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var arrived models.Zone
	state, err := h.sessionService.Update(auth.SessionID(r.Context()), func(st models.ServerState) (models.ServerState, error) {
		game, err := h.gameService.Teleport(st.Player, st.Game, req.ZoneID)
		if err != nil {
			return st, err
		}
		arrived, err = h.gameService.CurrentZone(game)
		if err != nil {
			return st, err
		}
		st.Game = game
		return st, nil
	})
	if err != nil {
		respondActionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ActionResponse{
		Success:   true,
		Message:   fmt.Sprintf("Teleported to %s", arrived.Name),
		GameState: models.GameDeltaOf(state.Game),
	})
}

// Move handles POST /api/game/move
func (h *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	var req models.MoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	state, err := h.sessionService.Update(auth.SessionID(r.Context()), func(st models.ServerState) (models.ServerState, error) {
		game, err := h.gameService.Move(st.Game, req.DeltaQ, req.DeltaR)
		if err != nil {
			return st, err
		}
		st.Game = game
		return st, nil
	})
	if err != nil {
		respondActionError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.ActionResponse{
		Success:   true,
		Message:   fmt.Sprintf("Moved to (%d, %d)", state.Game.Position.Q, state.Game.Position.R),
		GameState: models.GameDeltaOf(state.Game),
	})
}

// respondActionError maps service errors onto HTTP statuses
func respondActionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrUnknownSession):
		respondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, catalog.ErrZoneNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrLevelTooLow):
		respondError(w, http.StatusForbidden, err.Error())
	case services.IsRuleViolation(err):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Printf("Error handling action: %v", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
