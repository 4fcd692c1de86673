package services

import (
	"errors"
	"fmt"

	"geminus.dev/internal/catalog"
	"geminus.dev/internal/models"
)

var (
	// ErrInvalidMove is returned for a step that is not a single hex neighbor
	ErrInvalidMove = errors.New("invalid move")
	// ErrOutOfBounds is returned when a step would leave the current zone
	ErrOutOfBounds = errors.New("cannot walk there")
	// ErrLevelTooLow is returned when the player may not enter a zone yet
	ErrLevelTooLow = errors.New("level too low")
	// ErrNoTeleporter is returned when either end of a teleport lacks a Teleporter
	ErrNoTeleporter = errors.New("no teleporter")
)

// GameService applies the movement and travel rules. The authoritative server
// and the client's local-only mode share it.
type GameService struct {
	zones *ZoneService
}

// NewGameService creates a new GameService
func NewGameService(zs *ZoneService) *GameService {
	return &GameService{zones: zs}
}

// NewGame returns the starting state for a new player at the first zone's teleporter
func (s *GameService) NewGame(playerID string) models.ServerState {
	player := models.DefaultPlayer()
	player.ID = playerID

	game := models.DefaultGame()
	if ids := s.zones.IDs(); len(ids) > 0 {
		game.CurrentZoneID = ids[0]
		game.VisitedZones = []int{ids[0]}
		if spawn, err := s.zones.Spawn(ids[0]); err == nil {
			game.Position = spawn
		}
	}
	return models.ServerState{Player: player, Game: game}
}

// Teleport moves the player to the teleporter of another zone
func (s *GameService) Teleport(player models.Player, game models.GameState, zoneID int) (models.GameState, error) {
	from, err := s.zones.Get(game.CurrentZoneID)
	if err != nil {
		return game, err
	}
	to, err := s.zones.Get(zoneID)
	if err != nil {
		return game, err
	}
	if player.Level < to.LevelRequirement {
		return game, fmt.Errorf("%w: %s requires level %d", ErrLevelTooLow, to.Name, to.LevelRequirement)
	}
	if _, ok := from.Building(models.Teleporter); !ok {
		return game, fmt.Errorf("%w in %s", ErrNoTeleporter, from.Name)
	}
	gate, ok := to.Building(models.Teleporter)
	if !ok {
		return game, fmt.Errorf("%w in %s", ErrNoTeleporter, to.Name)
	}

	next := game.Clone()
	next.CurrentZoneID = to.ID
	next.Position = gate.Position
	next.Visit(to.ID)
	return next, nil
}

// Move steps the player one hex within the current zone.
// Returns the new state and any error.
func (s *GameService) Move(game models.GameState, deltaQ, deltaR int) (models.GameState, error) {
	step := models.HexCoord{Q: deltaQ, R: deltaR}
	if !step.IsNeighborOffset() {
		return game, fmt.Errorf("%w: (%d, %d) is not a single hex step", ErrInvalidMove, deltaQ, deltaR)
	}

	zone, err := s.zones.Get(game.CurrentZoneID)
	if err != nil {
		return game, err
	}

	pos := game.Position.Add(step)
	if !zone.Contains(pos) {
		return game, ErrOutOfBounds
	}

	next := game.Clone()
	next.Position = pos
	return next, nil
}

// CurrentZone returns the zone the game state points at
func (s *GameService) CurrentZone(game models.GameState) (models.Zone, error) {
	return s.zones.Get(game.CurrentZoneID)
}

// IsRuleViolation reports whether err is a rejected action rather than an internal failure
func IsRuleViolation(err error) bool {
	return errors.Is(err, ErrInvalidMove) ||
		errors.Is(err, ErrOutOfBounds) ||
		errors.Is(err, ErrLevelTooLow) ||
		errors.Is(err, ErrNoTeleporter) ||
		errors.Is(err, catalog.ErrZoneNotFound)
}
