package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Sentinel values used by the data generator for "intentionally absent"
const (
	UnknownName = "<unknown>"
	NoSlot      = "None"
	CustomClass = "Custom"
)

// Item is a single catalog entry as exported by the data generator.
// Items are immutable once loaded.
type Item struct {
	ID            int           `json:"id" yaml:"id"`
	Name          string        `json:"name" yaml:"name"`
	Class         ItemClass     `json:"class" yaml:"class"`
	Subclass      string        `json:"subclass" yaml:"subclass"`
	InventoryIcon string        `json:"inventory_icon" yaml:"inventory_icon"`
	InventoryType string        `json:"inventory_type" yaml:"inventory_type"`
	Set           *EquipmentSet `json:"set" yaml:"set"`
	RequiredLevel int           `json:"required_level" yaml:"required_level"`
	Stats         []string      `json:"stats" yaml:"stats"`
	Spells        []string      `json:"spells" yaml:"spells"`
	Requires      []string      `json:"requires" yaml:"requires"`
	Rarity        Rarity        `json:"rarity" yaml:"rarity"`

	// Display-only fields
	Damage      string `json:"damage" yaml:"damage,omitempty"`
	AddedDamage string `json:"added_damage" yaml:"added_damage,omitempty"`
	Armor       string `json:"armor" yaml:"armor,omitempty"`
	Speed       string `json:"speed" yaml:"speed,omitempty"`
	DPS         string `json:"dps" yaml:"dps,omitempty"`
	Bonding     string `json:"bonding" yaml:"bonding,omitempty"`
	Hands       string `json:"hands" yaml:"hands,omitempty"`
}

// EquipmentSet is a named grouping of items granting bonuses at membership tiers
type EquipmentSet struct {
	Name   string     `json:"name" yaml:"name"`
	ID     int        `json:"id" yaml:"id"`
	Spells []SetBonus `json:"spells" yaml:"spells"`
}

// SetBonus is a (tier, description) pair, encoded as a two element JSON array
type SetBonus struct {
	Tier        int
	Description string
}

// UnmarshalJSON decodes a [tier, "description"] pair
func (b *SetBonus) UnmarshalJSON(data []byte) error {
	var pair []json.RawMessage
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("set bonus must be a [tier, description] pair: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("set bonus must have 2 elements, got %d", len(pair))
	}
	if err := json.Unmarshal(pair[0], &b.Tier); err != nil {
		return fmt.Errorf("invalid set bonus tier: %w", err)
	}
	if err := json.Unmarshal(pair[1], &b.Description); err != nil {
		return fmt.Errorf("invalid set bonus description: %w", err)
	}
	return nil
}

// MarshalJSON encodes the bonus back into its pair form
func (b SetBonus) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{b.Tier, b.Description})
}

// MarshalYAML renders the bonus as a flow sequence
func (b SetBonus) MarshalYAML() (interface{}, error) {
	return []interface{}{b.Tier, b.Description}, nil
}

// String renders the bonus the way the item tooltip shows it
func (b SetBonus) String() string {
	return fmt.Sprintf("(%d) Set: %s", b.Tier, b.Description)
}

// ClassKind tags the two shapes an item class can take
type ClassKind int

const (
	// ClassNamed is a plain class label such as "Weapon"
	ClassNamed ClassKind = iota
	// ClassCustom is a server-specific class exported as a mapping
	ClassCustom
)

// ItemClass is either a named class or a custom mapping. The JSON shape is
// decided once at decode time; everything downstream switches on Kind.
type ItemClass struct {
	kind   ClassKind
	name   string
	custom map[string]float64
}

// NamedClass builds a plain class label
func NamedClass(name string) ItemClass {
	return ItemClass{kind: ClassNamed, name: name}
}

// CustomClassOf builds a custom class with the given mapping
func CustomClassOf(mapping map[string]float64) ItemClass {
	return ItemClass{kind: ClassCustom, custom: mapping}
}

// Kind reports which variant the class holds
func (c ItemClass) Kind() ClassKind {
	return c.kind
}

// Label returns the normalized class label: the name for named classes,
// "Custom" otherwise.
func (c ItemClass) Label() string {
	if c.kind == ClassCustom {
		return CustomClass
	}
	return c.name
}

// Code returns the numeric code of a custom class, if it carries one
func (c ItemClass) Code() (int, bool) {
	if c.kind != ClassCustom {
		return 0, false
	}
	v, ok := c.custom[CustomClass]
	return int(v), ok
}

// UnmarshalJSON accepts a string or an object
func (c *ItemClass) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty class value")
	}

	switch trimmed[0] {
	case '"':
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return fmt.Errorf("invalid class name: %w", err)
		}
		*c = NamedClass(name)
		return nil
	case '{':
		mapping := make(map[string]float64)
		if err := json.Unmarshal(trimmed, &mapping); err != nil {
			return fmt.Errorf("invalid custom class mapping: %w", err)
		}
		*c = CustomClassOf(mapping)
		return nil
	default:
		return fmt.Errorf("class must be a string or an object, got %s", string(trimmed))
	}
}

// MarshalJSON writes the class back in its original shape
func (c ItemClass) MarshalJSON() ([]byte, error) {
	if c.kind == ClassCustom {
		if c.custom == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(c.custom)
	}
	return json.Marshal(c.name)
}

// MarshalYAML writes the normalized label
func (c ItemClass) MarshalYAML() (interface{}, error) {
	return c.Label(), nil
}

// HasName reports whether the item carries a real name
func (i Item) HasName() bool {
	return i.Name != UnknownName
}

// DisplayName returns the name shown on cards. Unnamed items get a
// placeholder that still tells them apart.
func (i Item) DisplayName() string {
	if !i.HasName() {
		return "<unknown_" + strconv.Itoa(i.ID) + ">"
	}
	return i.Name
}

// TypeLine is the class line of the tooltip. Weapons show their handedness
// instead of the class when the generator knows it.
func (i Item) TypeLine() string {
	label := i.Class.Label()
	if i.Class.Kind() == ClassNamed && label == "Weapon" && i.Hands != "" {
		return i.Hands
	}
	return label
}

// LevelLine renders the level requirement
func (i Item) LevelLine() string {
	if i.RequiredLevel > 0 {
		return "Requires level: " + strconv.Itoa(i.RequiredLevel)
	}
	return "Requires level: N/A"
}
