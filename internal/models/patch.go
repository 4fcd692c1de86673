package models

import (
	"slices"
)

// PlayerPatch is a partial Player update. Nil fields are left untouched.
type PlayerPatch struct {
	ID          *string     `json:"id,omitempty"`
	Name        *string     `json:"name,omitempty"`
	Level       *int        `json:"level,omitempty"`
	Health      *int        `json:"health,omitempty"`
	MaxHealth   *int        `json:"maxHealth,omitempty"`
	Gold        *int        `json:"gold,omitempty"`
	Experience  *int        `json:"experience,omitempty"`
	Attributes  *Attributes `json:"attributes,omitempty"`
	KnownSpells []string    `json:"knownSpells,omitempty"`
}

// Apply merges the patch onto p, last writer wins
func (pp PlayerPatch) Apply(p Player) Player {
	setIf(&p.ID, pp.ID)
	setIf(&p.Name, pp.Name)
	setIf(&p.Level, pp.Level)
	setIf(&p.MaxHealth, pp.MaxHealth)
	setIf(&p.Health, pp.Health)
	setIf(&p.Gold, pp.Gold)
	setIf(&p.Experience, pp.Experience)
	setIf(&p.Attributes, pp.Attributes)
	if pp.KnownSpells != nil {
		p.KnownSpells = uniqueSorted(pp.KnownSpells)
	}
	return p
}

// FullPlayerPatch builds a patch that overwrites every field with p's values
func FullPlayerPatch(p Player) PlayerPatch {
	spells := p.KnownSpells
	if spells == nil {
		spells = []string{}
	}
	return PlayerPatch{
		ID:          &p.ID,
		Name:        &p.Name,
		Level:       &p.Level,
		Health:      &p.Health,
		MaxHealth:   &p.MaxHealth,
		Gold:        &p.Gold,
		Experience:  &p.Experience,
		Attributes:  &p.Attributes,
		KnownSpells: slices.Clone(spells),
	}
}

// UIPatch is a partial UIState update
type UIPatch struct {
	ActivePanel   *string  `json:"activePanel,omitempty"`
	ShowInventory *bool    `json:"showInventory,omitempty"`
	ShowSpellbook *bool    `json:"showSpellbook,omitempty"`
	ShowMap       *bool    `json:"showMap,omitempty"`
	Zoom          *float64 `json:"zoom,omitempty"`
}

// Apply merges the patch onto u
func (up UIPatch) Apply(u UIState) UIState {
	setIf(&u.ActivePanel, up.ActivePanel)
	setIf(&u.ShowInventory, up.ShowInventory)
	setIf(&u.ShowSpellbook, up.ShowSpellbook)
	setIf(&u.ShowMap, up.ShowMap)
	setIf(&u.Zoom, up.Zoom)
	return u
}

// GamePatch is a partial GameState update
type GamePatch struct {
	CurrentZoneID *int      `json:"currentZoneId,omitempty"`
	Position      *HexCoord `json:"position,omitempty"`
	VisitedZones  []int     `json:"visitedZones,omitempty"`
	Paused        *bool     `json:"paused,omitempty"`
}

// Apply merges the patch onto g
func (gp GamePatch) Apply(g GameState) GameState {
	setIf(&g.CurrentZoneID, gp.CurrentZoneID)
	setIf(&g.Position, gp.Position)
	setIf(&g.Paused, gp.Paused)
	if gp.VisitedZones != nil {
		g.VisitedZones = uniqueSorted(gp.VisitedZones)
	}
	return g
}

// FullGamePatch builds a patch that overwrites every field with g's values
func FullGamePatch(g GameState) GamePatch {
	visited := g.VisitedZones
	if visited == nil {
		visited = []int{}
	}
	return GamePatch{
		CurrentZoneID: &g.CurrentZoneID,
		Position:      &g.Position,
		VisitedZones:  slices.Clone(visited),
		Paused:        &g.Paused,
	}
}

// KeyStatePatch is a partial KeyState update
type KeyStatePatch struct {
	Up       *bool `json:"up,omitempty"`
	Down     *bool `json:"down,omitempty"`
	Left     *bool `json:"left,omitempty"`
	Right    *bool `json:"right,omitempty"`
	Interact *bool `json:"interact,omitempty"`
}

// Apply merges the patch onto k
func (kp KeyStatePatch) Apply(k KeyState) KeyState {
	setIf(&k.Up, kp.Up)
	setIf(&k.Down, kp.Down)
	setIf(&k.Left, kp.Left)
	setIf(&k.Right, kp.Right)
	setIf(&k.Interact, kp.Interact)
	return k
}

// Ptr returns a pointer to v, for building patches inline
func Ptr[T any](v T) *T {
	return &v
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func uniqueSorted[T int | string](in []T) []T {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}
