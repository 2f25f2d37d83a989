package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the YAML shape of a catalog file:
//
//	lenses:
//	  - id: forecast
//	    name: Revenue Forecaster
//	    domain_tags: [finance, modeling]
//	    intent_tags: [simulate]
//	    cost: med
//	    actions: [simulate]
//	    scope: local
type file struct {
	Lenses []Entry `yaml:"lenses"`
}

// LoadFile reads and validates a YAML catalog file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(f.Lenses) == 0 {
		return nil, fmt.Errorf("catalog %s: no lenses defined", path)
	}

	cat, err := New(f.Lenses)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return cat, nil
}
