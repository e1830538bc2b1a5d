// Package mapping loads declarative record pair mappings from YAML and
// resolves them against a catalog of described records.
package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type (
	// Document is the root of a YAML mapping definition.
	Document struct {
		Mappings []*Mapping `yaml:"mappings"`
	}

	// Mapping declares one source to target record conversion with
	// optional per field rules; unlisted fields map by name.
	Mapping struct {
		Source string           `yaml:"source"`
		Target string           `yaml:"target"`
		Fields map[string]*Rule `yaml:"fields,omitempty"`
	}

	// Rule overrides one target field origin: another source field or
	// the target declared default.
	Rule struct {
		From    string `yaml:"from,omitempty"`
		Default bool   `yaml:"default,omitempty"`
	}
)

// Validate checks structural document consistency.
func (d *Document) Validate() error {
	for i, mapping := range d.Mappings {
		if mapping.Source == "" || mapping.Target == "" {
			return fmt.Errorf("mapping[%v]: source and target are required", i)
		}
		for name, rule := range mapping.Fields {
			if rule == nil {
				return fmt.Errorf("mapping %v->%v: field %q rule was empty", mapping.Source, mapping.Target, name)
			}
			if rule.From != "" && rule.Default {
				return fmt.Errorf("mapping %v->%v: field %q uses both from and default", mapping.Source, mapping.Target, name)
			}
			if rule.From == "" && !rule.Default {
				return fmt.Errorf("mapping %v->%v: field %q needs from or default", mapping.Source, mapping.Target, name)
			}
		}
	}
	return nil
}

// Parse decodes and validates a YAML mapping document.
func Parse(data []byte) (*Document, error) {
	document := &Document{}
	if err := yaml.Unmarshal(data, document); err != nil {
		return nil, fmt.Errorf("failed to parse mapping document: %w", err)
	}
	if err := document.Validate(); err != nil {
		return nil, err
	}
	return document, nil
}

// Load reads and parses a YAML mapping document from a file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping document: %w", err)
	}
	return Parse(data)
}
