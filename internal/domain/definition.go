package domain

import "sort"

type GlobalType string

const (
	GlobalTypeGroup GlobalType = "group"
	GlobalTypeField GlobalType = "field"
)

// Definition describes one ACF field group or field, keyed by its ACF key
// (group_xxxxxxxxxxxxx / field_xxxxxxxxxxxxx).
type Definition struct {
	Key        string     `json:"key"`
	GlobalType GlobalType `json:"global_type"`

	// Groups only
	Active bool `json:"active,omitempty"`

	// Fields only
	Type     FieldType `json:"type,omitempty"`
	RawType  string    `json:"raw_type,omitempty"` // Tag as stored, kept for unknown types
	Name     string    `json:"name,omitempty"`     // Unqualified field name
	Parent   string    `json:"parent,omitempty"`   // Key of the enclosing group or field
	Taxonomy string    `json:"taxonomy,omitempty"` // Only known for local taxonomy fields
}

func (d Definition) IsGroup() bool {
	return d.GlobalType == GlobalTypeGroup
}

func (d Definition) IsField() bool {
	return d.GlobalType == GlobalTypeField
}

// NewGroup builds a group definition.
func NewGroup(key string, active bool) Definition {
	return Definition{Key: key, GlobalType: GlobalTypeGroup, Active: active}
}

// NewField builds a field definition from a raw ACF type tag.
func NewField(key, rawType, name, parent string) Definition {
	return Definition{
		Key:        key,
		GlobalType: GlobalTypeField,
		Type:       ParseFieldType(rawType),
		RawType:    rawType,
		Name:       name,
		Parent:     parent,
	}
}

// DefinitionSet maps definition keys to definitions.
type DefinitionSet map[string]Definition

func (s DefinitionSet) Add(def Definition) {
	s[def.Key] = def
}

// Keys returns the set's keys in sorted order.
func (s DefinitionSet) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a new set holding every definition of sets, applied in order.
// Later sets win on key collision.
func Merge(sets ...DefinitionSet) DefinitionSet {
	size := 0
	for _, s := range sets {
		size += len(s)
	}

	merged := make(DefinitionSet, size)
	for _, s := range sets {
		for k, def := range s {
			merged[k] = def
		}
	}
	return merged
}
