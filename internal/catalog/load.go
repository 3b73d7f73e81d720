package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a catalog from a YAML file. Sections left out of the file
// fall back to the built-in defaults.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	defaults := DefaultData()
	if data.Pricing == (Pricing{}) {
		data.Pricing = defaults.Pricing
	}
	if len(data.Bricks) == 0 {
		data.Bricks = defaults.Bricks
	}
	if len(data.Mixes) == 0 {
		data.Mixes = defaults.Mixes
	}
	if len(data.Systems) == 0 {
		data.Systems = defaults.Systems
	}
	if len(data.Materials) == 0 {
		data.Materials = defaults.Materials
	}
	if len(data.FAQs) == 0 {
		data.FAQs = defaults.FAQs
	}

	c, err := New(data)
	if err != nil {
		return nil, fmt.Errorf("validating catalog %s: %w", path, err)
	}
	return c, nil
}

// LoadOrDefault loads path when set and returns the built-in catalog otherwise.
func LoadOrDefault(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
