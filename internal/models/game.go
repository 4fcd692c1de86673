package models

import "slices"

// Attributes are the player's base stats
type Attributes struct {
	Strength     int `json:"strength"`
	Agility      int `json:"agility"`
	Intelligence int `json:"intelligence"`
	Vitality     int `json:"vitality"`
}

// Player is the player character's progression state
type Player struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Level       int        `json:"level"`
	Health      int        `json:"health"`
	MaxHealth   int        `json:"maxHealth"`
	Gold        int        `json:"gold"`
	Experience  int        `json:"experience"`
	Attributes  Attributes `json:"attributes"`
	KnownSpells []string   `json:"knownSpells"`
}

// UIState holds the presentation flags the client persists between sessions
type UIState struct {
	ActivePanel   string  `json:"activePanel"`
	ShowInventory bool    `json:"showInventory"`
	ShowSpellbook bool    `json:"showSpellbook"`
	ShowMap       bool    `json:"showMap"`
	Zoom          float64 `json:"zoom"`
}

// GameState represents where the player is in the world
type GameState struct {
	CurrentZoneID int      `json:"currentZoneId"`
	Position      HexCoord `json:"position"`
	VisitedZones  []int    `json:"visitedZones"`
	Paused        bool     `json:"paused"`
}

// KeyState tracks which movement keys are held
type KeyState struct {
	Up       bool `json:"up"`
	Down     bool `json:"down"`
	Left     bool `json:"left"`
	Right    bool `json:"right"`
	Interact bool `json:"interact"`
}

// Snapshot is the full serializable client state
type Snapshot struct {
	Player   Player    `json:"player"`
	UI       UIState   `json:"ui"`
	Game     GameState `json:"game"`
	KeyState KeyState  `json:"keyState"`
}

// ServerState is the authoritative subset of state the server owns
type ServerState struct {
	Player Player    `json:"player"`
	Game   GameState `json:"game"`
}

// DefaultPlayer returns a fresh level 1 character
func DefaultPlayer() Player {
	return Player{
		Name:        "Wanderer",
		Level:       1,
		Health:      100,
		MaxHealth:   100,
		Attributes:  Attributes{Strength: 5, Agility: 5, Intelligence: 5, Vitality: 5},
		KnownSpells: []string{},
	}
}

// DefaultUI returns the initial UI layout
func DefaultUI() UIState {
	return UIState{ActivePanel: "world", Zoom: 1}
}

// DefaultGame places the player at the center of the first zone
func DefaultGame() GameState {
	return GameState{CurrentZoneID: 1, VisitedZones: []int{1}}
}

// DefaultSnapshot returns the state a brand new client starts with
func DefaultSnapshot() Snapshot {
	return Snapshot{
		Player: DefaultPlayer(),
		UI:     DefaultUI(),
		Game:   DefaultGame(),
	}
}

// Clone returns a copy that shares no slices with p
func (p Player) Clone() Player {
	p.KnownSpells = slices.Clone(p.KnownSpells)
	return p
}

// Clone returns a copy that shares no slices with g
func (g GameState) Clone() GameState {
	g.VisitedZones = slices.Clone(g.VisitedZones)
	return g
}

// Clone returns an independent value copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	s.Player = s.Player.Clone()
	s.Game = s.Game.Clone()
	return s
}

// Visit records a zone in the visited list, keeping it sorted and unique
func (g *GameState) Visit(zoneID int) {
	if idx, found := slices.BinarySearch(g.VisitedZones, zoneID); !found {
		g.VisitedZones = slices.Insert(g.VisitedZones, idx, zoneID)
	}
}

// Normalize clamps p into its valid ranges: level >= 1, 0 <= health <= maxHealth,
// non-negative gold and experience, and a duplicate-free spell list.
func (p Player) Normalize() Player {
	p.Level = max(p.Level, 1)
	p.MaxHealth = max(p.MaxHealth, 1)
	p.Health = min(max(p.Health, 0), p.MaxHealth)
	p.Gold = max(p.Gold, 0)
	p.Experience = max(p.Experience, 0)
	if p.KnownSpells == nil {
		p.KnownSpells = []string{}
	} else {
		p.KnownSpells = uniqueSorted(p.KnownSpells)
	}
	return p
}
