package models

// Wire shapes of the /api/game endpoints, shared by the server and the client

// StateDelta is the state carried by server replies. Absent sections and
// fields leave the receiver's values untouched.
type StateDelta struct {
	Player *PlayerPatch `json:"player,omitempty"`
	Game   *GamePatch   `json:"game,omitempty"`
}

// DeltaOf builds a delta that overwrites every field with st's values
func DeltaOf(st ServerState) StateDelta {
	return StateDelta{
		Player: Ptr(FullPlayerPatch(st.Player)),
		Game:   Ptr(FullGamePatch(st.Game)),
	}
}

// Apply merges the delta onto st
func (d StateDelta) Apply(st ServerState) ServerState {
	if d.Player != nil {
		st.Player = d.Player.Apply(st.Player)
	}
	if d.Game != nil {
		st.Game = d.Game.Apply(st.Game)
	}
	return st
}

// GameDeltaOf builds a delta carrying only the game sub-state
func GameDeltaOf(g GameState) *StateDelta {
	return &StateDelta{Game: Ptr(FullGamePatch(g))}
}

// InitResponse is returned by POST /api/game/init
type InitResponse struct {
	GameState StateDelta `json:"gameState"`
	Token     string     `json:"token"`
}

// StateResponse is returned by GET /api/game/state
type StateResponse struct {
	GameState StateDelta `json:"gameState"`
}

// ZonesResponse is returned by GET /api/game/zones
type ZonesResponse struct {
	Zones []Zone `json:"zones"`
}

// ZoneResponse is returned by GET /api/game/current-zone
type ZoneResponse struct {
	Zone Zone `json:"zone"`
}

// TeleportRequest is the body of POST /api/game/teleport
type TeleportRequest struct {
	ZoneID int `json:"zoneId"`
}

// MoveRequest is the body of POST /api/game/move
type MoveRequest struct {
	DeltaQ int `json:"deltaQ"`
	DeltaR int `json:"deltaR"`
}

// ActionResponse is returned by the teleport and move endpoints. A bare
// ack carries no GameState.
type ActionResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	GameState *StateDelta `json:"gameState,omitempty"`
}

// ErrorResponse is the body of every 4xx and 5xx answer
type ErrorResponse struct {
	Error string `json:"error"`
}
