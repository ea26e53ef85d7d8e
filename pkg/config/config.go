// Package config loads intrinsic attribute defaults from YAML, the
// small amount of static configuration the parser needs to seed a
// document's attribute table before any header or body text has been
// read.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AttributeDefault is one entry in an intrinsic attribute defaults
// file: the attribute's initial value and the modification context
// that governs whether document text is later allowed to change it.
type AttributeDefault struct {
	Value string `yaml:"value"`

	// Context is one of "anywhere", "header", or "api"; an empty or
	// unrecognized value defaults to "anywhere" when cmd/adoc maps it
	// to a document.ModificationContext.
	Context string `yaml:"context,omitempty"`
}

// IntrinsicAttributes is a named set of attribute defaults, keyed by
// attribute name.
type IntrinsicAttributes map[string]AttributeDefault

// Load reads and parses an intrinsic attribute defaults file.
func Load(path string) (IntrinsicAttributes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses raw YAML into a set of attribute defaults. The document
// root must be a mapping of attribute name to either a scalar value
// (equivalent to {value: <scalar>, context: "anywhere"}) or a
// {value, context} mapping.
func Parse(data []byte) (IntrinsicAttributes, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config: parsing attribute defaults: %w", err)
	}

	out := make(IntrinsicAttributes, len(raw))
	for name, node := range raw {
		var def AttributeDefault
		switch node.Kind {
		case yaml.ScalarNode:
			if err := node.Decode(&def.Value); err != nil {
				return nil, fmt.Errorf("config: attribute %q: %w", name, err)
			}
		case yaml.MappingNode:
			if err := node.Decode(&def); err != nil {
				return nil, fmt.Errorf("config: attribute %q: %w", name, err)
			}
		default:
			return nil, fmt.Errorf("config: attribute %q: unsupported YAML node kind", name)
		}
		out[name] = def
	}
	return out, nil
}

// ExpandEnv expands ${VAR} / $VAR references in every default value in
// place.
func (a IntrinsicAttributes) ExpandEnv() {
	for name, def := range a {
		def.Value = os.ExpandEnv(def.Value)
		a[name] = def
	}
}
