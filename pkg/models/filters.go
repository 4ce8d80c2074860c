package models

// SearchFilters is the sparse set of structured filters the user has chosen.
// A nil field is "not applied"; a string filter set to "" behaves exactly
// like nil.
type SearchFilters struct {
	Class            *string `json:"class,omitempty" yaml:"class,omitempty"`
	Subclass         *string `json:"subclass,omitempty" yaml:"subclass,omitempty"`
	Rarity           *string `json:"rarity,omitempty" yaml:"rarity,omitempty"`
	InventoryType    *string `json:"inventory_type,omitempty" yaml:"inventory_type,omitempty"`
	RequiredLevelMin *int    `json:"required_level_min,omitempty" yaml:"required_level_min,omitempty"`
	RequiredLevelMax *int    `json:"required_level_max,omitempty" yaml:"required_level_max,omitempty"`
	HasSet           *bool   `json:"has_set,omitempty" yaml:"has_set,omitempty"`
	HasName          *bool   `json:"has_name,omitempty" yaml:"has_name,omitempty"`
	HasIcon          *bool   `json:"has_icon,omitempty" yaml:"has_icon,omitempty"`
	HasSpells        *bool   `json:"has_spells,omitempty" yaml:"has_spells,omitempty"`
}

// Filter field names, matching the JSON keys
const (
	FieldClass            = "class"
	FieldSubclass         = "subclass"
	FieldRarity           = "rarity"
	FieldInventoryType    = "inventory_type"
	FieldRequiredLevelMin = "required_level_min"
	FieldRequiredLevelMax = "required_level_max"
	FieldHasSet           = "has_set"
	FieldHasName          = "has_name"
	FieldHasIcon          = "has_icon"
	FieldHasSpells        = "has_spells"
)

// StringPtr returns a pointer to s
func StringPtr(s string) *string { return &s }

// IntPtr returns a pointer to n
func IntPtr(n int) *int { return &n }

// BoolPtr returns a pointer to b
func BoolPtr(b bool) *bool { return &b }
