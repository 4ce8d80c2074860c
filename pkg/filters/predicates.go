// Package filters turns a sparse SearchFilters value into the ordered list
// of item predicates the evaluator applies, and builds the option lists the
// filter controls offer.
package filters

import (
	"strings"

	"github.com/partialepoch/epochdb/pkg/models"
)

// Predicate is one active filter
type Predicate struct {
	Field string
	Match func(models.Item) bool
}

// Predicates returns the active predicates of f in their fixed application
// order. Inactive fields contribute nothing.
func Predicates(f models.SearchFilters) []Predicate {
	var preds []Predicate

	if v, ok := activeString(f.Class); ok {
		preds = append(preds, Predicate{
			Field: models.FieldClass,
			Match: func(item models.Item) bool { return item.Class.Label() == v },
		})
	}
	if v, ok := activeString(f.Subclass); ok {
		preds = append(preds, Predicate{
			Field: models.FieldSubclass,
			Match: func(item models.Item) bool { return item.Subclass == v },
		})
	}
	if v, ok := activeString(f.Rarity); ok {
		preds = append(preds, Predicate{
			Field: models.FieldRarity,
			Match: func(item models.Item) bool { return string(item.Rarity) == v },
		})
	}
	if v, ok := activeString(f.InventoryType); ok {
		preds = append(preds, Predicate{
			Field: models.FieldInventoryType,
			Match: func(item models.Item) bool { return item.InventoryType == v },
		})
	}
	if f.RequiredLevelMin != nil {
		lo := *f.RequiredLevelMin
		preds = append(preds, Predicate{
			Field: models.FieldRequiredLevelMin,
			Match: func(item models.Item) bool { return item.RequiredLevel >= lo },
		})
	}
	if f.RequiredLevelMax != nil {
		hi := *f.RequiredLevelMax
		preds = append(preds, Predicate{
			Field: models.FieldRequiredLevelMax,
			Match: func(item models.Item) bool { return item.RequiredLevel <= hi },
		})
	}
	if isTrue(f.HasSet) {
		preds = append(preds, Predicate{
			Field: models.FieldHasSet,
			Match: func(item models.Item) bool { return item.Set != nil },
		})
	}
	if isTrue(f.HasName) {
		preds = append(preds, Predicate{
			Field: models.FieldHasName,
			Match: func(item models.Item) bool { return item.HasName() },
		})
	}
	if isTrue(f.HasIcon) {
		preds = append(preds, Predicate{
			Field: models.FieldHasIcon,
			Match: func(item models.Item) bool { return strings.TrimSpace(item.InventoryIcon) != "" },
		})
	}
	if isTrue(f.HasSpells) {
		preds = append(preds, Predicate{
			Field: models.FieldHasSpells,
			Match: func(item models.Item) bool { return len(item.Spells) > 0 },
		})
	}

	return preds
}

// Apply narrows items by every active predicate of f, preserving order
func Apply(items []models.Item, f models.SearchFilters) []models.Item {
	for _, p := range Predicates(f) {
		kept := make([]models.Item, 0, len(items))
		for _, item := range items {
			if p.Match(item) {
				kept = append(kept, item)
			}
		}
		items = kept
	}
	return items
}

// HasActiveFilters reports whether any field of f is set. A boolean set to
// false counts as set here even though its predicate is inactive.
func HasActiveFilters(f models.SearchFilters) bool {
	for _, s := range []*string{f.Class, f.Subclass, f.Rarity, f.InventoryType} {
		if s != nil && *s != "" {
			return true
		}
	}
	if f.RequiredLevelMin != nil || f.RequiredLevelMax != nil {
		return true
	}
	for _, b := range []*bool{f.HasSet, f.HasName, f.HasIcon, f.HasSpells} {
		if b != nil {
			return true
		}
	}
	return false
}

func activeString(s *string) (string, bool) {
	if s == nil || *s == "" {
		return "", false
	}
	return *s, true
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
