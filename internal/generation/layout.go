package generation

import (
	"fmt"

	"geminus.dev/internal/models"
)

var buildingNames = map[models.BuildingKind]string{
	models.Sanctuary:        "%s Sanctuary",
	models.Armory:           "%s Armory",
	models.Arcanum:          "Arcanum of %s",
	models.AetheriumConduit: "%s Aetherium Conduit",
	models.Teleporter:       "%s Waygate",
}

// LayoutBuildings places one building of every required kind in a zone.
// The teleporter sits at the center (where arrivals land); the others go on a
// ring whose starting direction rotates with the zone id.
func LayoutBuildings(zoneID int, zoneName string, radius int) []models.Building {
	ring := max(1, radius/3)
	rot := zoneID % len(models.HexDirections)

	buildings := make([]models.Building, 0, len(models.RequiredBuildings))
	slot := 0
	for _, kind := range models.RequiredBuildings {
		pos := models.HexCoord{}
		if kind != models.Teleporter {
			dir := models.HexDirections[(rot+slot)%len(models.HexDirections)]
			pos = dir.Scale(ring)
			slot++
		}
		buildings = append(buildings, models.Building{
			Kind:     kind,
			Name:     fmt.Sprintf(buildingNames[kind], zoneName),
			Position: pos,
		})
	}
	return buildings
}
