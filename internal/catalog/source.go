package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"geminus.dev/internal/models"
)

// Source is the on-disk catalog format
type Source struct {
	Zones []models.Zone `json:"zones"`
}

// Parse decodes a catalog source document
func Parse(r io.Reader) (*Catalog, error) {
	var src Source
	if err := json.NewDecoder(r).Decode(&src); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(src.Zones)
}

// Load reads a catalog source file
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// WriteJSON writes the catalog in source format
func (c *Catalog) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Source{Zones: c.Zones()})
}
