package catalog

import (
	"fmt"

	"geminus.dev/internal/generation"
	"geminus.dev/internal/models"
)

const (
	// ZoneCount is the number of zones in the built-in catalog
	ZoneCount = 101
	// StarterZones share one monster pool; every zone after them has its own roster
	StarterZones = 24
)

var regions = []string{
	"Verdant", "Mirefen", "Ashfall", "Gloamwood", "Saltmarsh", "Duskridge",
	"Frostmere", "Emberwake", "Thornvale", "Stormcrest", "Voidreach",
}

var landmarks = []string{
	"Meadow", "Hollow", "Crossing", "Barrows", "Spire",
	"Basin", "Expanse", "Citadel", "Depths", "Summit",
}

// ZoneName returns the display name of a built-in zone
func ZoneName(id int) string {
	i := id - 1
	return fmt.Sprintf("%s %s", regions[(i/len(landmarks))%len(regions)], landmarks[i%len(landmarks)])
}

// LevelRequirement returns the minimum player level to enter a built-in zone
func LevelRequirement(id int) int {
	if id <= StarterZones {
		return id
	}
	return (id-StarterZones)*3 + StarterZones
}

// ZoneRadius returns the hex extent of a built-in zone
func ZoneRadius(id int) int {
	return 5 + id/25
}

// Builtin builds the default catalog: zones 1..ZoneCount with generated
// rosters and building layouts.
func Builtin() (*Catalog, error) {
	zones, err := BuildZones(generation.NewRosterGenerator(), ZoneCount)
	if err != nil {
		return nil, err
	}
	return New(zones)
}

// BuildZones generates zone definitions 1..count. Starter zones reuse the
// roster generated for zone 1 at level 1.
func BuildZones(gen *generation.RosterGenerator, count int) ([]models.Zone, error) {
	starter, err := gen.Generate(1, 1)
	if err != nil {
		return nil, fmt.Errorf("starter pool: %w", err)
	}

	zones := make([]models.Zone, 0, count)
	for id := 1; id <= count; id++ {
		name := ZoneName(id)
		radius := ZoneRadius(id)
		level := LevelRequirement(id)

		roster := starter
		if id > StarterZones {
			roster, err = gen.Generate(id, level)
			if err != nil {
				return nil, fmt.Errorf("zone %d roster: %w", id, err)
			}
		}

		zones = append(zones, models.Zone{
			ID:               id,
			Name:             name,
			LevelRequirement: level,
			Radius:           radius,
			Buildings:        generation.LayoutBuildings(id, name, radius),
			Monsters:         roster,
		})
	}
	return zones, nil
}
