// Package catalog holds the closed set of waste categories and waste types
// a user can pick from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrSelectionMissing = errors.New("please select a waste type first")
	ErrUnknownCategory  = errors.New("unknown waste category")
	ErrUnknownWasteType = errors.New("unknown waste type")
)

// Category is one top-level waste category and the types it offers.
type Category struct {
	Name  string   `yaml:"name" json:"name"`
	Label string   `yaml:"label" json:"label"`
	Types []string `yaml:"types" json:"types"`
}

// Has reports whether wasteType is one of the category's options.
func (c Category) Has(wasteType string) bool {
	for _, t := range c.Types {
		if t == wasteType {
			return true
		}
	}
	return false
}

// Selection is a resolved category/type choice.
type Selection struct {
	Category  string `json:"category"`
	WasteType string `json:"waste_type"`
}

// IsZero reports whether no waste type has been chosen.
func (s Selection) IsZero() bool {
	return s.WasteType == ""
}

// Catalog is an ordered, read-only list of categories.
type Catalog struct {
	Categories []Category `yaml:"categories" json:"categories"`

	byType map[string]string
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog is invalid: %v", err))
	}
	return c
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) index() error {
	if len(c.Categories) == 0 {
		return fmt.Errorf("catalog has no categories")
	}

	seen := make(map[string]bool, len(c.Categories))
	c.byType = make(map[string]string)
	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("category %d has no name", i)
		}
		if seen[cat.Name] {
			return fmt.Errorf("duplicate category %q", cat.Name)
		}
		seen[cat.Name] = true

		if len(cat.Types) == 0 {
			return fmt.Errorf("category %q has no waste types", cat.Name)
		}
		for _, t := range cat.Types {
			if strings.TrimSpace(t) == "" {
				return fmt.Errorf("category %q has an empty waste type", cat.Name)
			}
			if owner, ok := c.byType[t]; ok {
				return fmt.Errorf("waste type %q listed under both %q and %q", t, owner, cat.Name)
			}
			c.byType[t] = cat.Name
		}
	}
	return nil
}

// Category looks a category up by name.
func (c *Catalog) Category(name string) (Category, bool) {
	for _, cat := range c.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Find returns the category that offers wasteType.
func (c *Catalog) Find(wasteType string) (Category, bool) {
	name, ok := c.byType[wasteType]
	if !ok {
		return Category{}, false
	}
	return c.Category(name)
}

// Resolve turns a raw category/type pair into a Selection. The category may
// be left empty, in which case it is inferred from the waste type.
func (c *Catalog) Resolve(category, wasteType string) (Selection, error) {
	if wasteType == "" {
		return Selection{}, ErrSelectionMissing
	}

	if category == "" {
		cat, ok := c.Find(wasteType)
		if !ok {
			return Selection{}, fmt.Errorf("%w: %q", ErrUnknownWasteType, wasteType)
		}
		return Selection{Category: cat.Name, WasteType: wasteType}, nil
	}

	cat, ok := c.Category(category)
	if !ok {
		return Selection{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if !cat.Has(wasteType) {
		return Selection{}, fmt.Errorf("%w: %q is not a %s option", ErrUnknownWasteType, wasteType, cat.Name)
	}
	return Selection{Category: cat.Name, WasteType: wasteType}, nil
}
