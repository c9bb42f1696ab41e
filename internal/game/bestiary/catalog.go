package bestiary

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the normalized on-disk form of a parsed bestiary, written by
// the import pipeline and read back by the tracker's fast path.
type Catalog struct {
	Enemies []Enemy `yaml:"enemies"`
}

// Validate checks catalog invariants: every enemy has an id and name, and
// variation names are unique within their owning enemy.
//
// Postcondition: Returns nil iff the catalog is loadable by the tracker.
func (c *Catalog) Validate() error {
	for i := range c.Enemies {
		e := &c.Enemies[i]
		if e.ID == "" {
			return fmt.Errorf("enemy %d: id must not be empty", i)
		}
		if e.Name == "" {
			return fmt.Errorf("enemy %q: name must not be empty", e.ID)
		}
		seen := make(map[string]bool, len(e.Variations))
		for _, v := range e.Variations {
			if v.Name == "" {
				return fmt.Errorf("enemy %q: variation name must not be empty", e.ID)
			}
			if seen[v.Name] {
				return fmt.Errorf("enemy %q: duplicate variation %q", e.ID, v.Name)
			}
			seen[v.Name] = true
		}
	}
	return nil
}

// LoadCatalogFromBytes parses a normalized enemy catalog from YAML.
//
// Precondition: data must be valid YAML.
// Postcondition: Returns a validated non-nil Catalog or a non-nil error.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing enemy catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog reads a normalized enemy catalog from a YAML file. This is the
// tracker's fast path: it skips re-parsing the raw bestiary document.
//
// Postcondition: Returns a validated non-nil Catalog or a non-nil error.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading enemy catalog %s: %w", path, err)
	}
	return LoadCatalogFromBytes(data)
}
