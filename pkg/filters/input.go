package filters

import (
	"strconv"
	"strings"

	"github.com/partialepoch/epochdb/pkg/models"
)

// ParseLevel parses a level input field. It reads the leading integer of
// the trimmed text, so "12abc" is 12; empty or non-numeric text is nil.
func ParseLevel(s string) *int {
	s = strings.TrimSpace(s)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}

// SetString returns a copy of f with a string field set. An empty value
// clears the field.
func SetString(f models.SearchFilters, field, value string) models.SearchFilters {
	var v *string
	if value != "" {
		v = models.StringPtr(value)
	}

	switch field {
	case models.FieldClass:
		f.Class = v
	case models.FieldSubclass:
		f.Subclass = v
	case models.FieldRarity:
		f.Rarity = v
	case models.FieldInventoryType:
		f.InventoryType = v
	}
	return f
}

// SetLevel returns a copy of f with a level bound parsed from text
func SetLevel(f models.SearchFilters, field, text string) models.SearchFilters {
	switch field {
	case models.FieldRequiredLevelMin:
		f.RequiredLevelMin = ParseLevel(text)
	case models.FieldRequiredLevelMax:
		f.RequiredLevelMax = ParseLevel(text)
	}
	return f
}

// ToggleBool returns a copy of f with a boolean field flipped between
// unset and true
func ToggleBool(f models.SearchFilters, field string) models.SearchFilters {
	toggle := func(b *bool) *bool {
		if isTrue(b) {
			return nil
		}
		return models.BoolPtr(true)
	}

	switch field {
	case models.FieldHasSet:
		f.HasSet = toggle(f.HasSet)
	case models.FieldHasName:
		f.HasName = toggle(f.HasName)
	case models.FieldHasIcon:
		f.HasIcon = toggle(f.HasIcon)
	case models.FieldHasSpells:
		f.HasSpells = toggle(f.HasSpells)
	}
	return f
}

// Clear returns the empty filter set
func Clear() models.SearchFilters {
	return models.SearchFilters{}
}

// StringValue returns the current value of a string field, "" when unset
func StringValue(f models.SearchFilters, field string) string {
	var v *string
	switch field {
	case models.FieldClass:
		v = f.Class
	case models.FieldSubclass:
		v = f.Subclass
	case models.FieldRarity:
		v = f.Rarity
	case models.FieldInventoryType:
		v = f.InventoryType
	}
	if v == nil {
		return ""
	}
	return *v
}

// CycleString moves a string field to the next option: unset -> first
// option -> ... -> last option -> unset. A value that is not among the
// options restarts at the first one.
func CycleString(f models.SearchFilters, field string, options []string) models.SearchFilters {
	if len(options) == 0 {
		return SetString(f, field, "")
	}

	current := StringValue(f, field)
	order := append([]string{""}, options...)

	currentIndex := 0
	for i, v := range order {
		if v == current {
			currentIndex = i
			break
		}
	}

	return SetString(f, field, order[(currentIndex+1)%len(order)])
}

// Equal reports whether two filter sets select the same fields and values
func Equal(a, b models.SearchFilters) bool {
	return eqString(a.Class, b.Class) &&
		eqString(a.Subclass, b.Subclass) &&
		eqString(a.Rarity, b.Rarity) &&
		eqString(a.InventoryType, b.InventoryType) &&
		eqInt(a.RequiredLevelMin, b.RequiredLevelMin) &&
		eqInt(a.RequiredLevelMax, b.RequiredLevelMax) &&
		eqBool(a.HasSet, b.HasSet) &&
		eqBool(a.HasName, b.HasName) &&
		eqBool(a.HasIcon, b.HasIcon) &&
		eqBool(a.HasSpells, b.HasSpells)
}

func eqString(a, b *string) bool {
	return (a == nil) == (b == nil) && (a == nil || *a == *b)
}

func eqInt(a, b *int) bool {
	return (a == nil) == (b == nil) && (a == nil || *a == *b)
}

func eqBool(a, b *bool) bool {
	return (a == nil) == (b == nil) && (a == nil || *a == *b)
}
