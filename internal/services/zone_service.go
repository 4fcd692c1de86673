package services

import (
	"geminus.dev/internal/catalog"
	"geminus.dev/internal/models"
)

// ZoneService handles zone lookups against the catalog
type ZoneService struct {
	catalog *catalog.Catalog
}

// NewZoneService creates a new ZoneService
func NewZoneService(c *catalog.Catalog) *ZoneService {
	return &ZoneService{catalog: c}
}

// Get returns a zone by id
func (s *ZoneService) Get(id int) (models.Zone, error) {
	return s.catalog.Zone(id)
}

// IDs returns every zone id in order
func (s *ZoneService) IDs() []int {
	return s.catalog.IDs()
}

// All returns every zone ordered by id
func (s *ZoneService) All() []models.Zone {
	return s.catalog.Zones()
}

// Spawn returns the arrival position of a zone: its teleporter, or the center
func (s *ZoneService) Spawn(id int) (models.HexCoord, error) {
	zone, err := s.catalog.Zone(id)
	if err != nil {
		return models.HexCoord{}, err
	}
	if gate, ok := zone.Building(models.Teleporter); ok {
		return gate.Position, nil
	}
	return models.HexCoord{}, nil
}

// BuildingAt returns the building standing on a position, or nil if none
func (s *ZoneService) BuildingAt(id int, pos models.HexCoord) *models.Building {
	zone, err := s.catalog.Zone(id)
	if err != nil {
		return nil
	}
	for i := range zone.Buildings {
		if zone.Buildings[i].Position == pos {
			return &zone.Buildings[i]
		}
	}
	return nil
}
