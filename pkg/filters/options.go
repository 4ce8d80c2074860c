package filters

import (
	"sort"

	"github.com/partialepoch/epochdb/pkg/models"
)

// OptionSet holds the distinct values each filter control can choose from
type OptionSet struct {
	Classes        []string `json:"classes" yaml:"classes"`
	Subclasses     []string `json:"subclasses" yaml:"subclasses"`
	Rarities       []string `json:"rarities" yaml:"rarities"`
	InventoryTypes []string `json:"inventory_types" yaml:"inventory_types"`
}

// Options derives the option vocabularies from items. Classes, subclasses
// and inventory types sort alphabetically; rarities sort by tier. Empty
// values and the "None" slot are skipped.
func Options(items []models.Item) OptionSet {
	classes := make(map[string]bool)
	subclasses := make(map[string]bool)
	rarities := make(map[string]bool)
	inventoryTypes := make(map[string]bool)

	for _, item := range items {
		if label := item.Class.Label(); label != "" {
			classes[label] = true
		}
		if item.Subclass != "" {
			subclasses[item.Subclass] = true
		}
		if item.Rarity != "" {
			rarities[string(item.Rarity)] = true
		}
		if item.InventoryType != "" && item.InventoryType != models.NoSlot {
			inventoryTypes[item.InventoryType] = true
		}
	}

	rarityList := keys(rarities)
	sort.SliceStable(rarityList, func(i, j int) bool {
		return models.Rarity(rarityList[i]).Rank() < models.Rarity(rarityList[j]).Rank()
	})

	return OptionSet{
		Classes:        keys(classes),
		Subclasses:     keys(subclasses),
		Rarities:       rarityList,
		InventoryTypes: keys(inventoryTypes),
	}
}

// ForField returns the options for a string filter field
func (o OptionSet) ForField(field string) []string {
	switch field {
	case models.FieldClass:
		return o.Classes
	case models.FieldSubclass:
		return o.Subclasses
	case models.FieldRarity:
		return o.Rarities
	case models.FieldInventoryType:
		return o.InventoryTypes
	default:
		return nil
	}
}

// keys returns the sorted keys of set
func keys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
