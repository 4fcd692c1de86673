package catalog

import (
	"errors"
	"fmt"
	"slices"

	"geminus.dev/internal/models"
)

// ErrZoneNotFound is returned when a zone id is not in the catalog
var ErrZoneNotFound = errors.New("zone not found")

// Catalog is the immutable table of zone definitions. Every accessor hands
// out copies so callers can never mutate the loaded data.
type Catalog struct {
	zones map[int]models.Zone
	ids   []int
}

// New builds a catalog from a list of zones. Ids must be positive and unique.
func New(zones []models.Zone) (*Catalog, error) {
	c := &Catalog{
		zones: make(map[int]models.Zone, len(zones)),
		ids:   make([]int, 0, len(zones)),
	}
	for _, z := range zones {
		if z.ID < 1 {
			return nil, fmt.Errorf("zone %q: invalid id %d", z.Name, z.ID)
		}
		if _, exists := c.zones[z.ID]; exists {
			return nil, fmt.Errorf("duplicate zone id %d", z.ID)
		}
		c.zones[z.ID] = cloneZone(z)
		c.ids = append(c.ids, z.ID)
	}
	slices.Sort(c.ids)
	return c, nil
}

// Zone returns the zone with the given id
func (c *Catalog) Zone(id int) (models.Zone, error) {
	z, ok := c.zones[id]
	if !ok {
		return models.Zone{}, fmt.Errorf("zone %d: %w", id, ErrZoneNotFound)
	}
	return cloneZone(z), nil
}

// IDs returns every zone id in ascending order
func (c *Catalog) IDs() []int {
	return slices.Clone(c.ids)
}

// Zones returns every zone ordered by id
func (c *Catalog) Zones() []models.Zone {
	out := make([]models.Zone, 0, len(c.ids))
	for _, id := range c.ids {
		out = append(out, cloneZone(c.zones[id]))
	}
	return out
}

// Len returns the number of zones
func (c *Catalog) Len() int {
	return len(c.ids)
}

func cloneZone(z models.Zone) models.Zone {
	z.Buildings = slices.Clone(z.Buildings)
	z.Monsters = slices.Clone(z.Monsters)
	return z
}
