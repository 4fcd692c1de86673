package models

// HexCoord is an axial hex coordinate (pointy top)
type HexCoord struct {
	Q int `json:"q"`
	R int `json:"r"`
}

// HexDirections are the six axial neighbor offsets, starting East and going counter-clockwise
var HexDirections = []HexCoord{
	{Q: 1, R: 0}, {Q: 1, R: -1}, {Q: 0, R: -1},
	{Q: -1, R: 0}, {Q: -1, R: 1}, {Q: 0, R: 1},
}

// Add returns the sum of two coordinates
func (h HexCoord) Add(other HexCoord) HexCoord {
	return HexCoord{Q: h.Q + other.Q, R: h.R + other.R}
}

// Scale multiplies both axes by k
func (h HexCoord) Scale(k int) HexCoord {
	return HexCoord{Q: h.Q * k, R: h.R * k}
}

// Distance returns the hex distance between two coordinates
func (h HexCoord) Distance(to HexCoord) int {
	dq := abs(h.Q - to.Q)
	dr := abs(h.R - to.R)
	ds := abs((-h.Q - h.R) - (-to.Q - to.R))
	return max(dq, dr, ds)
}

// IsNeighborOffset reports whether h is one of the six unit steps
func (h HexCoord) IsNeighborOffset() bool {
	for _, d := range HexDirections {
		if d == h {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// BuildingKind names a building type every zone must offer
type BuildingKind string

const (
	Sanctuary        BuildingKind = "Sanctuary"
	Armory           BuildingKind = "Armory"
	Arcanum          BuildingKind = "Arcanum"
	AetheriumConduit BuildingKind = "AetheriumConduit"
	Teleporter       BuildingKind = "Teleporter"
)

// RequiredBuildings lists the kinds a complete zone contains, in display order
var RequiredBuildings = []BuildingKind{Sanctuary, Armory, Arcanum, AetheriumConduit, Teleporter}

// Building is a structure placed inside a zone
type Building struct {
	Kind     BuildingKind `json:"kind"`
	Name     string       `json:"name"`
	Position HexCoord     `json:"position"`
}

// Tier distinguishes regular monsters from the zone boss
type Tier string

const (
	TierRegular Tier = "regular"
	TierBoss    Tier = "boss"
)

// Stats is a monster's combat triple
type Stats struct {
	HP      int `json:"hp"`
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
}

// AtLeast reports whether every stat of s is >= the matching stat of o
func (s Stats) AtLeast(o Stats) bool {
	return s.HP >= o.HP && s.Attack >= o.Attack && s.Defense >= o.Defense
}

// Exceeds reports whether every stat of s is strictly greater than o
func (s Stats) Exceeds(o Stats) bool {
	return s.HP > o.HP && s.Attack > o.Attack && s.Defense > o.Defense
}

// Monster is one entry of a zone roster
type Monster struct {
	Name  string `json:"name"`
	Stats Stats  `json:"stats"`
	Tier  Tier   `json:"tier"`
}

// RosterSize is the number of monsters in every zone: 10 regular plus the boss
const RosterSize = 11

// Zone is a discrete game area with buildings and a monster roster
type Zone struct {
	ID               int        `json:"id"`
	Name             string     `json:"name"`
	LevelRequirement int        `json:"levelRequirement"`
	Radius           int        `json:"radius"`
	Buildings        []Building `json:"buildings"`
	Monsters         []Monster  `json:"monsters"`
}

// Contains reports whether a position lies inside the zone's hex extent
func (z Zone) Contains(pos HexCoord) bool {
	return pos.Distance(HexCoord{}) <= z.Radius
}

// Building returns the first building of the given kind
func (z Zone) Building(kind BuildingKind) (Building, bool) {
	for _, b := range z.Buildings {
		if b.Kind == kind {
			return b, true
		}
	}
	return Building{}, false
}
