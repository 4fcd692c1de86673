package generation

import (
	"fmt"
	"math"
	"slices"

	"geminus.dev/internal/models"
)

// BossMultiplier scales the last regular monster's stats into the boss entry
const BossMultiplier = 2.5

// DuplicateNameError reports a name collision inside one generated roster.
// The generator never renames to resolve it.
type DuplicateNameError struct {
	ZoneID int
	Name   string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("zone %d: duplicate monster name %q", e.ZoneID, e.Name)
}

// RosterGenerator builds zone monster rosters from name pools
type RosterGenerator struct {
	Prefixes   []string
	Creatures  []string
	BossTitles []string
}

// NewRosterGenerator creates a generator using the default name pools
func NewRosterGenerator() *RosterGenerator {
	return &RosterGenerator{
		Prefixes:   DefaultPrefixes,
		Creatures:  DefaultCreatures,
		BossTitles: DefaultBossTitles,
	}
}

// BaseStats returns the stats of the first regular monster for a level
func BaseStats(level int) models.Stats {
	return models.Stats{
		HP:      20 + 12*level,
		Attack:  4 + 2*level,
		Defense: 2 + level,
	}
}

// TierIncrement is added to each successive regular monster's stats
func TierIncrement(level int) models.Stats {
	return models.Stats{
		HP:      5 + level,
		Attack:  1 + level/5,
		Defense: 1 + level/10,
	}
}

// BossStats applies BossMultiplier to the last regular monster, rounding up
func BossStats(last models.Stats) models.Stats {
	scale := func(v int) int { return int(math.Ceil(float64(v) * BossMultiplier)) }
	return models.Stats{
		HP:      scale(last.HP),
		Attack:  scale(last.Attack),
		Defense: scale(last.Defense),
	}
}

// Generate produces the 11-monster roster for a zone. The output depends only
// on (zoneID, levelRequirement).
func (g *RosterGenerator) Generate(zoneID, levelRequirement int) ([]models.Monster, error) {
	if zoneID < 1 {
		return nil, fmt.Errorf("invalid zone id %d", zoneID)
	}
	if levelRequirement < 1 {
		return nil, fmt.Errorf("zone %d: invalid level requirement %d", zoneID, levelRequirement)
	}
	if len(g.Creatures) < models.RosterSize {
		return nil, fmt.Errorf("creature pool has %d entries, need %d", len(g.Creatures), models.RosterSize)
	}

	rng := NewRNG(SeedFor(zoneID, levelRequirement))
	creatures := slices.Clone(g.Creatures)
	Shuffle(rng, creatures)

	base := BaseStats(levelRequirement)
	inc := TierIncrement(levelRequirement)

	roster := make([]models.Monster, 0, models.RosterSize)
	seen := make(map[string]bool, models.RosterSize)
	add := func(m models.Monster) error {
		if seen[m.Name] {
			return &DuplicateNameError{ZoneID: zoneID, Name: m.Name}
		}
		seen[m.Name] = true
		roster = append(roster, m)
		return nil
	}

	stats := base
	for i := 0; i < models.RosterSize-1; i++ {
		if i > 0 {
			stats = models.Stats{
				HP:      stats.HP + inc.HP,
				Attack:  stats.Attack + inc.Attack,
				Defense: stats.Defense + inc.Defense,
			}
		}
		m := models.Monster{
			Name:  joinName(rng.Choice(g.Prefixes), creatures[i]),
			Stats: stats,
			Tier:  models.TierRegular,
		}
		if err := add(m); err != nil {
			return nil, err
		}
	}

	boss := models.Monster{
		Name:  joinName(rng.Choice(g.BossTitles), creatures[models.RosterSize-1]),
		Stats: BossStats(stats),
		Tier:  models.TierBoss,
	}
	if err := add(boss); err != nil {
		return nil, err
	}

	return roster, nil
}

func joinName(prefix, creature string) string {
	if prefix == "" {
		return creature
	}
	return prefix + " " + creature
}
