package loadout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the normalized on-disk form of a parsed loadout sheet.
type Catalog struct {
	Cards []LoadoutCard `yaml:"cards"`
}

// Validate checks catalog invariants: every card has an id and name, and
// item ids are unique within their owning card.
func (c *Catalog) Validate() error {
	for i := range c.Cards {
		card := &c.Cards[i]
		if card.ID == "" {
			return fmt.Errorf("card %d: id must not be empty", i)
		}
		if card.Name == "" {
			return fmt.Errorf("card %q: name must not be empty", card.ID)
		}
		seen := make(map[string]bool, len(card.Items))
		for _, item := range card.Items {
			if item.ID == "" {
				return fmt.Errorf("card %q: item id must not be empty", card.ID)
			}
			if seen[item.ID] {
				return fmt.Errorf("card %q: duplicate item id %q", card.ID, item.ID)
			}
			seen[item.ID] = true
		}
	}
	return nil
}

// LoadCatalogFromBytes parses a normalized card catalog from YAML.
//
// Precondition: data must be valid YAML.
// Postcondition: Returns a validated non-nil Catalog or a non-nil error.
func LoadCatalogFromBytes(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing card catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalog reads a normalized card catalog from a YAML file.
//
// Postcondition: Returns a validated non-nil Catalog or a non-nil error.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card catalog %s: %w", path, err)
	}
	return LoadCatalogFromBytes(data)
}
